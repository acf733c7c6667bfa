package signal

import "fmt"

// Role identifies what a measured signal represents in an acquisition set.
type Role int

// Acquisition roles.
const (
	RoleUnknown Role = iota
	RoleFID          // free induction decay of the sample
	RoleFIDEmpty     // FID of the empty probe
	RoleFIDWater     // FID of the water reference
	RoleSE           // solid echo of the sample at one echo time
	RoleSEEmpty      // solid echo of the empty probe at one echo time
)

// String returns the role name.
func (r Role) String() string {
	switch r {
	case RoleFID:
		return "FID"
	case RoleFIDEmpty:
		return "FID-Empty"
	case RoleFIDWater:
		return "FID-Water"
	case RoleSE:
		return "SE"
	case RoleSEEmpty:
		return "SE-Empty"
	default:
		return fmt.Sprintf("Role(%d)", int(r))
	}
}

// Echo reports whether the role carries an echo-time label.
func (r Role) Echo() bool { return r == RoleSE || r == RoleSEEmpty }

// Curve is an amplitude-only curve tagged by role. EchoTime is only meaningful
// for solid echo roles.
type Curve struct {
	Role     Role
	EchoTime int
	Time     []float64
	Amp      []float64
}

// Label returns a short human-readable identifier such as "SE[12]".
func (c Curve) Label() string {
	if c.Role.Echo() {
		return fmt.Sprintf("%s[%d]", c.Role, c.EchoTime)
	}
	return c.Role.String()
}

// Len returns the number of samples.
func (c Curve) Len() int { return len(c.Amp) }

// Labeled is a complex signal tagged by role, as read from one acquisition file.
type Labeled struct {
	Role     Role
	EchoTime int
	// Source names where the signal came from, typically a file name.
	Source string
	Signal
}

// Label returns a short identifier such as "SE-Empty[9]".
func (l Labeled) Label() string {
	return Curve{Role: l.Role, EchoTime: l.EchoTime}.Label()
}

// Curve returns the amplitude curve of l.
func (l Labeled) Curve() (Curve, error) {
	if err := l.Validate(); err != nil {
		return Curve{}, fmt.Errorf("%s: %w", l.Label(), err)
	}
	amp, err := l.Amplitude()
	if err != nil {
		return Curve{}, err
	}
	return Curve{Role: l.Role, EchoTime: l.EchoTime, Time: l.Time, Amp: amp}, nil
}
