package market

import "errors"

var (
	// ErrInvalidParameter is returned at construction time for
	// out-of-domain inputs. No partial state is created.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrNumericalInstability is returned when an intermediate
	// computation produces a non-finite value. The offending tick is not
	// applied and the simulation halts.
	ErrNumericalInstability = errors.New("numerical instability")
)
