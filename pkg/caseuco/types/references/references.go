package references

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/diwise/case-mapping/pkg/caseuco/errors"
	"github.com/diwise/case-mapping/pkg/caseuco/types"
)

// SingleObjectReference points at exactly one node in the graph
type SingleObjectReference struct {
	Obj string
}

func (sor *SingleObjectReference) Identifiers() []string {
	return []string{sor.Obj}
}

func (sor *SingleObjectReference) MarshalJSON() ([]byte, error) {
	return json.Marshal(sor.Obj)
}

// NewSingleObjectReference accepts a node identifier and returns a new SingleObjectReference
func NewSingleObjectReference(object string) *SingleObjectReference {
	return &SingleObjectReference{Obj: object}
}

// MultiObjectReference points at an ordered list of nodes
type MultiObjectReference struct {
	Obj []string
}

func (mor *MultiObjectReference) Identifiers() []string {
	ids := make([]string, len(mor.Obj))
	copy(ids, mor.Obj)
	return ids
}

func (mor *MultiObjectReference) MarshalJSON() ([]byte, error) {
	if mor.Obj == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(mor.Obj)
}

// NewMultiObjectReference accepts a list of node identifiers and returns a new MultiObjectReference
func NewMultiObjectReference(objects []string) *MultiObjectReference {
	obj := make([]string, len(objects))
	copy(obj, objects)
	return &MultiObjectReference{Obj: obj}
}

// Resolve turns raw into a reference. raw may be anything implementing
// types.Identifiable, an identifier string, or a slice or array mixing both.
// Absent input and empty lists resolve to a nil reference and no error.
func Resolve(field string, raw any) (types.Reference, error) {
	if types.IsAbsent(raw) {
		return nil, nil
	}

	if id, ok, err := identifierOf(field, raw); ok || err != nil {
		if err != nil {
			return nil, err
		}
		return NewSingleObjectReference(id), nil
	}

	rv := reflect.ValueOf(raw)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, errors.NewShapeError(field, fmt.Sprintf("values of type %T can not be used as a node reference", raw))
	}

	if rv.Len() == 0 {
		return nil, nil
	}

	objects := make([]string, 0, rv.Len())

	for idx := range rv.Len() {
		element := rv.Index(idx).Interface()
		elementField := fmt.Sprintf("%s[%d]", field, idx)

		if types.IsAbsent(element) {
			return nil, errors.NewShapeError(elementField, "list elements must be entities or identifiers")
		}

		id, ok, err := identifierOf(elementField, element)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, errors.NewShapeError(elementField, fmt.Sprintf("values of type %T can not be used as a node reference", element))
		}

		objects = append(objects, id)
	}

	return &MultiObjectReference{Obj: objects}, nil
}

func identifierOf(field string, raw any) (string, bool, error) {
	var id string

	switch v := raw.(type) {
	case types.Identifiable:
		id = v.ID()
	case string:
		id = v
	default:
		return "", false, nil
	}

	if id == "" {
		return "", true, errors.NewShapeError(field, "node references can not be empty")
	}

	return id, true, nil
}

// Append returns a multi object reference holding the identifiers of existing
// followed by those of more. Neither argument is modified.
func Append(existing types.Reference, more types.Reference) types.Reference {
	if more == nil {
		return existing
	}

	objects := []string{}
	if existing != nil {
		objects = append(objects, existing.Identifiers()...)
	}
	objects = append(objects, more.Identifiers()...)

	return &MultiObjectReference{Obj: objects}
}

// Unmarshal rebuilds a reference from decoded JSON, i.e. a string or a list of strings
func Unmarshal(field string, body any) (types.Reference, error) {
	switch typedObject := body.(type) {
	case string:
		return Resolve(field, typedObject)
	case []any:
		objects := []string{}
		for idx, o := range typedObject {
			str, ok := o.(string)
			if !ok {
				return nil, errors.NewShapeError(fmt.Sprintf("%s[%d]", field, idx), fmt.Sprintf("expected an identifier, got %T", o))
			}
			objects = append(objects, str)
		}
		return NewMultiObjectReference(objects), nil
	case []string:
		return NewMultiObjectReference(typedObject), nil
	default:
		return nil, errors.NewShapeError(field, fmt.Sprintf("support for type %T not implemented", typedObject))
	}
}
