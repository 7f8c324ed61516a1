package errors

import "errors"

// SkipMessageError tells a queue consumer to ack and drop a message
// instead of requeueing it, e.g. on a duplicate delivery.
type SkipMessageError struct {
	Reason string
}

func (e *SkipMessageError) Error() string {
	return "skip message: " + e.Reason
}

func IsSkipMessageError(err error) bool {
	var skip *SkipMessageError
	return errors.As(err, &skip)
}
