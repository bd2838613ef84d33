package phragmen

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedStake     = errors.New("stake is not a base-10 integer")
	ErrNegativeStake      = errors.New("stake is negative")
	ErrNegativeCount      = errors.New("number of seats is negative")
	ErrNegativeIterations = errors.New("number of equalise iterations is negative")
)

// InvalidInputError is returned when the voter list or election parameters
// violate a precondition of the election. No partial result is produced.
type InvalidInputError struct {
	NominatorID string //empty when the error isn't about a specific voter
	Err         error
}

func (e *InvalidInputError) Error() string {
	if e.NominatorID == "" {
		return fmt.Sprintf("invalid input: %v", e.Err)
	}

	return fmt.Sprintf("invalid input for nominator '%s': %v", e.NominatorID, e.Err)
}

//Unwrap returns the underlying cause
func (e *InvalidInputError) Unwrap() error { return e.Err }
