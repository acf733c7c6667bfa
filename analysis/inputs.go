package analysis

import (
	"fmt"

	"go.uber.org/multierr"

	"github.com/cwbudde/algo-nmr/dsp/signal"
)

// Inputs are the raw signals of one acquisition directory.
type Inputs struct {
	FID      signal.Labeled
	FIDEmpty signal.Labeled
	FIDWater signal.Labeled
	SE       []signal.Labeled
	SEEmpty  []signal.Labeled
}

// Collect sorts labeled signals into Inputs. Each FID role must occur
// exactly once and at least one solid echo and one echo baseline must be
// present; every violation is reported in one [*StageError].
func Collect(set []signal.Labeled) (Inputs, error) {
	var (
		in   Inputs
		err  error
		seen = make(map[signal.Role]string, 3)
	)
	single := func(dst *signal.Labeled, l signal.Labeled) {
		if prev, dup := seen[l.Role]; dup {
			err = multierr.Append(err, fmt.Errorf("%w: %s in %s and %s", ErrDuplicateRole, l.Role, prev, l.Source))
			return
		}
		seen[l.Role] = l.Source
		*dst = l
	}

	for _, l := range set {
		switch l.Role {
		case signal.RoleFID:
			single(&in.FID, l)
		case signal.RoleFIDEmpty:
			single(&in.FIDEmpty, l)
		case signal.RoleFIDWater:
			single(&in.FIDWater, l)
		case signal.RoleSE:
			in.SE = append(in.SE, l)
		case signal.RoleSEEmpty:
			in.SEEmpty = append(in.SEEmpty, l)
		}
	}

	for _, role := range []signal.Role{signal.RoleFID, signal.RoleFIDEmpty, signal.RoleFIDWater} {
		if _, ok := seen[role]; !ok {
			err = multierr.Append(err, fmt.Errorf("%w: %s", ErrMissingRole, role))
		}
	}
	if len(in.SE) == 0 {
		err = multierr.Append(err, fmt.Errorf("%w: %s", ErrMissingRole, signal.RoleSE))
	}
	if len(in.SEEmpty) == 0 {
		err = multierr.Append(err, fmt.Errorf("%w: %s", ErrMissingRole, signal.RoleSEEmpty))
	}
	if err != nil {
		return Inputs{}, stageError(StageInput, "", err)
	}
	return in, nil
}
