package errors

import (
	"errors"
	"fmt"
)

// ErrShape is matched by errors raised when a value's runtime shape does not
// fit the declared field kind, e.g. a map where a scalar was expected.
var ErrShape = fmt.Errorf("shape error")

// ErrRange is matched by errors raised when a value has the right shape but
// violates a domain constraint, such as a negative non-negative integer.
var ErrRange = fmt.Errorf("range error")

// ErrConfiguration is matched by errors raised when caller supplied
// configuration conflicts with reserved or hard-coded state.
var ErrConfiguration = fmt.Errorf("configuration error")

type myError struct {
	field  string
	msg    string
	target error
}

func (m myError) Error() string {
	if m.field == "" {
		return m.msg
	}
	return fmt.Sprintf("%s: %s", m.field, m.msg)
}

func (m myError) Is(target error) bool { return target == m.target }

func NewShapeError(field, msg string) error {
	return &myError{
		field:  field,
		msg:    msg,
		target: ErrShape,
	}
}

func NewRangeError(field, msg string) error {
	return &myError{
		field:  field,
		msg:    msg,
		target: ErrRange,
	}
}

func NewConfigurationError(msg string) error {
	return &myError{
		msg:    msg,
		target: ErrConfiguration,
	}
}

// FieldOf returns the name of the field an error was raised for, or an empty
// string if the error does not carry one.
func FieldOf(err error) string {
	var me *myError
	if errors.As(err, &me) {
		return me.field
	}
	return ""
}
