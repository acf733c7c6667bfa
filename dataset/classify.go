package dataset

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"github.com/cwbudde/algo-nmr/dsp/signal"
)

// ErrMissingLabel is returned when a solid echo file name carries no echo-time suffix.
var ErrMissingLabel = errors.New("dataset: file name has no echo-time label")

var (
	patternFID      = regexp.MustCompile(`^FID_C.*\.dat$`)
	patternFIDEmpty = regexp.MustCompile(`^FID_Empty.*\.dat$`)
	patternFIDWater = regexp.MustCompile(`^FID_Water.*\.dat$`)
	patternSE       = regexp.MustCompile(`^Cellulose.*\.dat$`)
	patternSEEmpty  = regexp.MustCompile(`^Empty.*\.dat$`)
	patternEchoTime = regexp.MustCompile(`_\s*(\d+)_c\.dat$`)
)

// Classify returns the role encoded in a file name. ok is false for names
// matching no role; err is [ErrMissingLabel] for a solid echo name without
// an echo-time suffix.
func Classify(name string) (role signal.Role, echoTime int, ok bool, err error) {
	switch {
	case patternFID.MatchString(name):
		return signal.RoleFID, 0, true, nil
	case patternFIDEmpty.MatchString(name):
		return signal.RoleFIDEmpty, 0, true, nil
	case patternFIDWater.MatchString(name):
		return signal.RoleFIDWater, 0, true, nil
	case patternSE.MatchString(name):
		role = signal.RoleSE
	case patternSEEmpty.MatchString(name):
		role = signal.RoleSEEmpty
	default:
		return signal.RoleUnknown, 0, false, nil
	}

	m := patternEchoTime.FindStringSubmatch(name)
	if m == nil {
		return role, 0, true, fmt.Errorf("%w: %s", ErrMissingLabel, name)
	}
	echoTime, err = strconv.Atoi(m[1])
	if err != nil {
		return role, 0, true, fmt.Errorf("%w: %s: %w", ErrMissingLabel, name, err)
	}
	return role, echoTime, true, nil
}

// FileName returns the canonical file name for a labeled signal, one that
// [Classify] maps back to the same role and echo time.
func FileName(role signal.Role, echoTime int) (string, error) {
	switch role {
	case signal.RoleFID:
		return "FID_Cellulose.dat", nil
	case signal.RoleFIDEmpty:
		return "FID_Empty.dat", nil
	case signal.RoleFIDWater:
		return "FID_Water.dat", nil
	case signal.RoleSE:
		return fmt.Sprintf("Cellulose_SE_%d_c.dat", echoTime), nil
	case signal.RoleSEEmpty:
		return fmt.Sprintf("Empty_SE_%d_c.dat", echoTime), nil
	default:
		return "", fmt.Errorf("dataset: no file name for role %s", role)
	}
}
