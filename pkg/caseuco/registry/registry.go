package registry

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/diwise/case-mapping/pkg/caseuco/errors"
	"github.com/diwise/case-mapping/pkg/caseuco/identifiers"
	"github.com/diwise/case-mapping/pkg/caseuco/types/literals"
)

// KeySeparator joins the components of a composite key
const KeySeparator string = "#"

// Factory builds the object registered for a new key. It receives the key
// components in the order they were passed to CheckOrCreate.
type Factory[T any] func(parts []any, id string) (T, error)

// separators and escape characters inside a component are escaped so that
// Key("a#b") and Key("a", "b") differ
var componentEscaper = strings.NewReplacer(`\`, `\\`, KeySeparator, `\`+KeySeparator)

// Key joins parts into a comparison key. Components are rendered in order, so
// (a, b) and (b, a) produce different keys.
func Key(parts ...any) (string, error) {
	if len(parts) == 0 {
		return "", errors.NewShapeError("key", "at least one key component is required")
	}

	rendered := make([]string, 0, len(parts))

	for idx, p := range parts {
		s, err := component(p)
		if err != nil {
			return "", errors.NewShapeError(fmt.Sprintf("key[%d]", idx), err.Error())
		}
		rendered = append(rendered, componentEscaper.Replace(s))
	}

	return strings.Join(rendered, KeySeparator), nil
}

func component(p any) (string, error) {
	switch v := p.(type) {
	case nil:
		return "", fmt.Errorf("key components can not be nil")
	case string:
		return v, nil
	case float64:
		return literals.FormatDecimal(v), nil
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), nil
	case bool:
		return strconv.FormatBool(v), nil
	case time.Time:
		return v.Format(time.RFC3339Nano), nil
	case fmt.Stringer:
		return v.String(), nil
	}

	rv := reflect.ValueOf(p)
	switch rv.Kind() {
	case reflect.String:
		return rv.String(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10), nil
	}

	return "", fmt.Errorf("values of type %T can not be used as key components", p)
}

// CheckOrCreate returns the object already registered under the key built from
// parts, or mints an identifier, builds a new object and registers it. keys and
// objects are owned by the caller and must stay index aligned. Nothing is
// appended unless both the identifier and the object were produced.
func CheckOrCreate[T any](parts []any, keys *[]string, objects *[]T, newID identifiers.Func, build Factory[T]) (T, error) {
	var zero T

	if len(*keys) != len(*objects) {
		return zero, fmt.Errorf("registry is corrupt: %d keys but %d objects", len(*keys), len(*objects))
	}

	key, err := Key(parts...)
	if err != nil {
		return zero, err
	}

	for idx, k := range *keys {
		if k == key {
			return (*objects)[idx], nil
		}
	}

	id, err := newID()
	if err != nil {
		return zero, err
	}

	object, err := build(parts, id)
	if err != nil {
		return zero, err
	}

	*keys = append(*keys, key)
	*objects = append(*objects, object)

	return object, nil
}

// Backing holds the index aligned key and object lists of one registry. It is
// allocated and owned by the caller and may outlive any Registry using it.
type Backing[T any] struct {
	Keys    []string
	Objects []T
}

// Registry deduplicates objects of one category, e.g. application names or
// coordinate pairs. It does no locking of its own; see Synchronized.
type Registry[T any] struct {
	backing *Backing[T]
	newID   identifiers.Func
	build   Factory[T]
}

func New[T any](backing *Backing[T], newID identifiers.Func, build Factory[T]) *Registry[T] {
	return &Registry[T]{
		backing: backing,
		newID:   newID,
		build:   build,
	}
}

func (r *Registry[T]) CheckOrCreate(parts ...any) (T, error) {
	return CheckOrCreate(parts, &r.backing.Keys, &r.backing.Objects, r.newID, r.build)
}

// CheckOrCreateWithID behaves like CheckOrCreate but names a new object id
// instead of asking the registry's identifier source. id is discarded when the
// key is already registered.
func (r *Registry[T]) CheckOrCreateWithID(id string, parts ...any) (T, error) {
	return CheckOrCreate(parts, &r.backing.Keys, &r.backing.Objects, identifiers.Fixed(id), r.build)
}

func (r *Registry[T]) Len() int {
	return len(r.backing.Keys)
}

// Keys returns a copy of the registered keys in first seen order
func (r *Registry[T]) Keys() []string {
	keys := make([]string, len(r.backing.Keys))
	copy(keys, r.backing.Keys)
	return keys
}

// Objects returns a copy of the list of registered objects in first seen order
func (r *Registry[T]) Objects() []T {
	objects := make([]T, len(r.backing.Objects))
	copy(objects, r.backing.Objects)
	return objects
}

// Synchronized wraps a Registry with a mutex held across each complete
// check or create call, for registries shared between goroutines.
type Synchronized[T any] struct {
	mu       sync.Mutex
	registry *Registry[T]
}

func NewSynchronized[T any](registry *Registry[T]) *Synchronized[T] {
	return &Synchronized[T]{registry: registry}
}

func (s *Synchronized[T]) CheckOrCreate(parts ...any) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.registry.CheckOrCreate(parts...)
}

func (s *Synchronized[T]) CheckOrCreateWithID(id string, parts ...any) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.registry.CheckOrCreateWithID(id, parts...)
}

func (s *Synchronized[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.registry.Len()
}

func (s *Synchronized[T]) Objects() []T {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.registry.Objects()
}
