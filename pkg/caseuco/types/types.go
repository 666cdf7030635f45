package types

import "reflect"

// Identifiable is anything that exposes a graph node identifier.
type Identifiable interface {
	ID() string
}

type Fragment interface {
	ForEachField(func(fieldName string, contents any)) error
	MarshalJSON() ([]byte, error)
}

type Document interface {
	Fragment
	Identifiable

	Type() string
}

type Literal interface {
	Datatype() string
	Lexical() string
	Value() any
}

type Reference interface {
	Identifiers() []string
}

// IsAbsent reports whether v carries no value at all: a nil interface or a
// nil pointer, map, slice, func or channel.
func IsAbsent(v any) bool {
	if v == nil {
		return true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}

	return false
}
