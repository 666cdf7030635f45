package references

import (
	"encoding/json"
	"errors"
	"testing"

	caseerrors "github.com/diwise/case-mapping/pkg/caseuco/errors"
	"github.com/matryer/is"
)

type node string

func (n node) ID() string { return string(n) }

func TestResolveEntity(t *testing.T) {
	is := is.New(t)
	ref, err := Resolve("uco-action:performer", node("kb:organization-1"))
	is.NoErr(err)

	b, _ := json.Marshal(ref)
	is.Equal(string(b), `"kb:organization-1"`)
}

func TestResolveIdentifierString(t *testing.T) {
	is := is.New(t)
	ref, err := Resolve("uco-action:instrument", "kb:tool-1")
	is.NoErr(err)
	is.Equal(ref.Identifiers(), []string{"kb:tool-1"})
}

func TestResolveMixedListPreservesOrder(t *testing.T) {
	is := is.New(t)
	ref, err := Resolve("uco-action:object", []any{"kb:a", node("kb:b"), "kb:c"})
	is.NoErr(err)

	b, _ := json.Marshal(ref)
	is.Equal(string(b), `["kb:a","kb:b","kb:c"]`)
}

func TestResolveTypedSliceOfEntities(t *testing.T) {
	is := is.New(t)
	ref, err := Resolve("uco-action:result", []node{"kb:x", "kb:y"})
	is.NoErr(err)
	is.Equal(ref.Identifiers(), []string{"kb:x", "kb:y"})
}

func TestAbsentInputsResolveToNothing(t *testing.T) {
	is := is.New(t)
	var missing *string

	for _, raw := range []any{nil, missing, []any{}, []string{}} {
		ref, err := Resolve("uco-action:environment", raw)
		is.NoErr(err)
		is.True(ref == nil)
	}
}

func TestNonReferencesAreShapeErrors(t *testing.T) {
	is := is.New(t)

	_, err := Resolve("uco-action:object", []any{"kb:a", 17})
	is.True(errors.Is(err, caseerrors.ErrShape))
	is.Equal(caseerrors.FieldOf(err), "uco-action:object[1]")

	_, err = Resolve("uco-action:object", map[string]any{"@id": "kb:a"})
	is.True(errors.Is(err, caseerrors.ErrShape))

	_, err = Resolve("uco-action:object", "")
	is.True(errors.Is(err, caseerrors.ErrShape))
}

func TestAppendDoesNotModifyExisting(t *testing.T) {
	is := is.New(t)
	existing := NewSingleObjectReference("kb:a")
	more, _ := Resolve("uco-core:object", []string{"kb:b", "kb:c"})

	combined := Append(existing, more)

	is.Equal(combined.Identifiers(), []string{"kb:a", "kb:b", "kb:c"})
	is.Equal(existing.Identifiers(), []string{"kb:a"})
}

func TestUnmarshalFromDecodedJSON(t *testing.T) {
	is := is.New(t)

	var body any
	is.NoErr(json.Unmarshal([]byte(`["kb:a","kb:b"]`), &body))

	ref, err := Unmarshal("uco-core:object", body)
	is.NoErr(err)
	is.Equal(ref.Identifiers(), []string{"kb:a", "kb:b"})

	ref, err = Unmarshal("uco-core:object", "kb:a")
	is.NoErr(err)
	is.Equal(ref.Identifiers(), []string{"kb:a"})

	_, err = Unmarshal("uco-core:object", 12.0)
	is.True(errors.Is(err, caseerrors.ErrShape))
}
