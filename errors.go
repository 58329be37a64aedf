package geocell

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is wrapped by errors caused by malformed cell keys or
// mismatched query corners.
var ErrInvalidArgument = errors.New("invalid argument")

func invalidArgf(format string, args ...any) error {
	return fmt.Errorf("geocell: %s: %w", fmt.Sprintf(format, args...), ErrInvalidArgument)
}

func invalidResolution(res int) error {
	return fmt.Errorf("geocell: resolution %d outside 0..%d: %w", res, MaxResolution, ErrInvalidArgument)
}

// ParseError is returned by ParsePoint.
type ParseError struct {
	Input string
	Msg   string
	Err   error
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("geocell: cannot parse point %q: %s: %v", e.Input, e.Msg, e.Err)
	}
	return fmt.Sprintf("geocell: cannot parse point %q: %s", e.Input, e.Msg)
}
