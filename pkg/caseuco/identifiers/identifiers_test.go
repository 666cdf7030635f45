package identifiers

import (
	"errors"
	"strings"
	"testing"

	caseerrors "github.com/diwise/case-mapping/pkg/caseuco/errors"
	"github.com/google/uuid"
	"github.com/matryer/is"
)

func TestSequenceCountsFromOne(t *testing.T) {
	is := is.New(t)
	next, err := NewSequence("kb")
	is.NoErr(err)

	first, _ := next()
	second, _ := next()

	is.Equal(first, "kb:1")
	is.Equal(second, "kb:2")
}

func TestUUIDIdentifiersArePrefixedAndUnique(t *testing.T) {
	is := is.New(t)
	next, err := NewUUID(DefaultPrefix)
	is.NoErr(err)

	a, err := next()
	is.NoErr(err)
	b, _ := next()

	is.True(strings.HasPrefix(a, "kb:"))
	is.True(a != b)

	_, err = uuid.Parse(strings.TrimPrefix(a, "kb:"))
	is.NoErr(err)
}

func TestDeterministicIdentifiersRepeatForSameSeed(t *testing.T) {
	is := is.New(t)
	first, _ := NewDeterministic("kb", "example")
	second, _ := NewDeterministic("kb", "example")
	other, _ := NewDeterministic("kb", "another")

	a1, _ := first()
	a2, _ := first()
	b1, _ := second()
	c1, _ := other()

	is.Equal(a1, b1)
	is.True(a1 != a2)
	is.True(a1 != c1)
}

func TestEmptyPrefixIsAConfigurationError(t *testing.T) {
	is := is.New(t)
	_, err := NewUUID("")
	is.True(errors.Is(err, caseerrors.ErrConfiguration))

	_, err = NewSequence("not a label")
	is.True(errors.Is(err, caseerrors.ErrConfiguration))
}

func TestUnknownModeIsRejected(t *testing.T) {
	is := is.New(t)
	_, err := New("random", "kb", "")
	is.True(errors.Is(err, caseerrors.ErrConfiguration))
}

func TestFailingPropagatesError(t *testing.T) {
	is := is.New(t)
	boom := errors.New("out of identifiers")

	id, err := Failing(boom)()
	is.Equal(id, "")
	is.True(errors.Is(err, boom))
}
