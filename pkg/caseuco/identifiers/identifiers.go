package identifiers

import (
	"fmt"
	"regexp"
	"strconv"
	"sync/atomic"

	"github.com/diwise/case-mapping/pkg/caseuco/errors"
	"github.com/google/uuid"
)

// Func returns a fresh node identifier on every call
type Func func() (string, error)

// DefaultPrefix is the namespace label used for minted identifiers unless
// the caller configures another one.
const DefaultPrefix string = "kb"

var prefixPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_.-]*$`)

// ValidatePrefix checks that prefix is usable as a compact IRI prefix label
func ValidatePrefix(prefix string) error {
	if prefix == "" {
		return errors.NewConfigurationError("identifier prefix must not be empty")
	}

	if !prefixPattern.MatchString(prefix) {
		return errors.NewConfigurationError(fmt.Sprintf("identifier prefix %q is not a valid prefix label", prefix))
	}

	return nil
}

// NewUUID returns a Func minting prefix:<random uuid> identifiers
func NewUUID(prefix string) (Func, error) {
	if err := ValidatePrefix(prefix); err != nil {
		return nil, err
	}

	return func() (string, error) {
		id, err := uuid.NewRandom()
		if err != nil {
			return "", fmt.Errorf("failed to generate identifier: %w", err)
		}
		return prefix + ":" + id.String(), nil
	}, nil
}

// NewDeterministic returns a Func minting name based uuids derived from seed
// and a running counter, so that two runs with the same seed produce the same
// sequence of identifiers.
func NewDeterministic(prefix, seed string) (Func, error) {
	if err := ValidatePrefix(prefix); err != nil {
		return nil, err
	}

	namespace := uuid.NewSHA1(uuid.NameSpaceURL, []byte(seed))
	var counter atomic.Uint64

	return func() (string, error) {
		n := counter.Add(1)
		id := uuid.NewSHA1(namespace, []byte(strconv.FormatUint(n, 10)))
		return prefix + ":" + id.String(), nil
	}, nil
}

// NewSequence returns a Func minting prefix:1, prefix:2 and so on
func NewSequence(prefix string) (Func, error) {
	if err := ValidatePrefix(prefix); err != nil {
		return nil, err
	}

	var counter atomic.Uint64

	return func() (string, error) {
		return prefix + ":" + strconv.FormatUint(counter.Add(1), 10), nil
	}, nil
}

// Fixed always returns id. Useful for passing a single candidate identifier
// to a registry lookup.
func Fixed(id string) Func {
	return func() (string, error) {
		return id, nil
	}
}

// Failing always returns err
func Failing(err error) Func {
	return func() (string, error) {
		return "", err
	}
}

// New selects an identifier Func by mode name: "uuid", "deterministic" or "sequence"
func New(mode, prefix, seed string) (Func, error) {
	switch mode {
	case "", "uuid":
		return NewUUID(prefix)
	case "deterministic":
		return NewDeterministic(prefix, seed)
	case "sequence":
		return NewSequence(prefix)
	}

	return nil, errors.NewConfigurationError(fmt.Sprintf("unknown identifier mode %q", mode))
}
