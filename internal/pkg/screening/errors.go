package screening

import (
	"errors"
	"fmt"
)

// ErrUnavailable the toxicity scorer could not produce a verdict
var ErrUnavailable = errors.New("content verification unavailable")

func unavailable(cause error) error {
	return fmt.Errorf("%w: %v", ErrUnavailable, cause)
}

// ViolationError text was blocked by the gate
type ViolationError struct {
	Reason string
}

func (e *ViolationError) Error() string {
	switch e.Reason {
	case ReasonHateSpeech:
		return "Content violates community guidelines (hate-speech)."
	case ReasonToxic:
		return "Content appears toxic and cannot be posted."
	default:
		return e.Reason
	}
}

// AsViolation unwraps a ViolationError
func AsViolation(err error) (*ViolationError, bool) {
	var v *ViolationError
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}
