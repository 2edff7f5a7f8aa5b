package quiz

import "errors"

var (
	ErrFlowComplete   = errors.New("quiz is already complete")
	ErrWrongKind      = errors.New("input does not match question kind")
	ErrUnknownOption  = errors.New("unknown option")
	ErrUnknownSubject = errors.New("unknown subject")
	ErrRatingRange    = errors.New("rating out of range")
)
