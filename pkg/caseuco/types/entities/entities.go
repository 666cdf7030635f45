package entities

import (
	"encoding/json"
	"fmt"
	"slices"
	"sort"

	"github.com/diwise/case-mapping/pkg/caseuco/errors"
	"github.com/diwise/case-mapping/pkg/caseuco/identifiers"
	"github.com/diwise/case-mapping/pkg/caseuco/types"
	"github.com/diwise/case-mapping/pkg/caseuco/types/literals"
	"github.com/diwise/case-mapping/pkg/caseuco/types/references"
)

type DocumentDecoratorFunc func(d *DocumentImpl) error

// New creates a document fragment and applies the decorators in order. The
// first failing decorator aborts construction.
func New(documentID, documentType string, decorators ...DocumentDecoratorFunc) (*DocumentImpl, error) {
	if documentType == "" {
		return nil, errors.NewShapeError("@type", "documents must have a type")
	}

	d := &DocumentImpl{
		documentID:   documentID,
		documentType: documentType,
		coercer:      literals.Default(),
		fields:       map[string]any{},
	}

	if err := d.Apply(decorators...); err != nil {
		return nil, err
	}

	return d, nil
}

// Builder creates documents with freshly minted identifiers
type Builder struct {
	newID   identifiers.Func
	coercer *literals.Coercer
}

type BuilderOption func(b *Builder)

func WithCoercer(c *literals.Coercer) BuilderOption {
	return func(b *Builder) {
		b.coercer = c
	}
}

func NewBuilder(newID identifiers.Func, options ...BuilderOption) *Builder {
	b := &Builder{
		newID:   newID,
		coercer: literals.Default(),
	}

	for _, option := range options {
		option(b)
	}

	return b
}

func (b *Builder) New(documentType string, decorators ...DocumentDecoratorFunc) (*DocumentImpl, error) {
	id, err := b.newID()
	if err != nil {
		return nil, fmt.Errorf("failed to create identifier for %s: %w", documentType, err)
	}

	return New(id, documentType, append([]DocumentDecoratorFunc{Coercer(b.coercer)}, decorators...)...)
}

func (b *Builder) NewID() (string, error) {
	return b.newID()
}

func (b *Builder) Coercer() *literals.Coercer {
	return b.coercer
}

// DocumentImpl is a node of the output graph: an identifier, a type and a set
// of ontology qualified fields holding literals, references or nested nodes.
type DocumentImpl struct {
	documentID   string
	documentType string

	coercer *literals.Coercer
	fields  map[string]any
}

func (d *DocumentImpl) ID() string {
	return d.documentID
}

func (d *DocumentImpl) Type() string {
	return d.documentType
}

// Apply runs decorators against an existing document
func (d *DocumentImpl) Apply(decorators ...DocumentDecoratorFunc) error {
	for _, decorator := range decorators {
		if err := decorator(d); err != nil {
			return err
		}
	}
	return nil
}

// Get returns the contents of a field
func (d *DocumentImpl) Get(fieldName string) (any, bool) {
	v, ok := d.fields[fieldName]
	return v, ok
}

// ForEachField calls callback for every field in name order
func (d *DocumentImpl) ForEachField(callback func(fieldName string, contents any)) error {
	for _, k := range d.fieldNames() {
		callback(k, d.fields[k])
	}
	return nil
}

func (d *DocumentImpl) fieldNames() []string {
	names := make([]string, 0, len(d.fields))
	for k := range d.fields {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// RemoveFields deletes every field for which shouldRemove returns true
func (d *DocumentImpl) RemoveFields(shouldRemove func(fieldName string, contents any) bool) {
	for _, k := range d.fieldNames() {
		if shouldRemove(k, d.fields[k]) {
			delete(d.fields, k)
		}
	}
}

func (d *DocumentImpl) RemoveField(fieldName string) {
	delete(d.fields, fieldName)
}

// AppendRefs adds references to a reference field, turning a single
// reference into a list. An argument that is itself a list contributes each
// of its elements.
func (d *DocumentImpl) AppendRefs(fieldName string, raws ...any) error {
	var more types.Reference

	for idx, raw := range raws {
		rawField := fmt.Sprintf("%s[%d]", fieldName, idx)
		if types.IsAbsent(raw) {
			return errors.NewShapeError(rawField, "list elements must be entities or identifiers")
		}

		resolved, err := references.Resolve(rawField, raw)
		if err != nil {
			return err
		}

		more = references.Append(more, resolved)
	}

	if more == nil {
		return nil
	}

	var existing types.Reference

	if current, ok := d.fields[fieldName]; ok {
		existing, ok = current.(types.Reference)
		if !ok {
			return errors.NewShapeError(fieldName, fmt.Sprintf("can not append references to a field holding %T", current))
		}
	}

	d.fields[fieldName] = references.Append(existing, more)

	return nil
}

// AppendStrings adds string literals to a list field
func (d *DocumentImpl) AppendStrings(fieldName string, values ...string) error {
	more, err := d.coercer.CoerceMany(literals.String, fieldName, values)
	if err != nil {
		return err
	}

	return d.appendLiterals(fieldName, more)
}

func (d *DocumentImpl) appendLiterals(fieldName string, more []literals.Literal) error {
	if len(more) == 0 {
		return nil
	}

	var list []literals.Literal

	switch current := d.fields[fieldName].(type) {
	case nil:
	case literals.Literal:
		list = append(list, current)
	case []literals.Literal:
		list = append(list, current...)
	default:
		return errors.NewShapeError(fieldName, fmt.Sprintf("can not append literals to a field holding %T", current))
	}

	d.fields[fieldName] = append(list, more...)

	return nil
}

// AppendObjects adds embedded nodes to a list field
func (d *DocumentImpl) AppendObjects(fieldName string, fragments ...types.Fragment) error {
	more := slices.DeleteFunc(slices.Clone(fragments), func(f types.Fragment) bool {
		return types.IsAbsent(f)
	})

	if len(more) == 0 {
		return nil
	}

	var list []types.Fragment

	switch current := d.fields[fieldName].(type) {
	case nil:
	case types.Fragment:
		list = append(list, current)
	case []types.Fragment:
		list = append(list, current...)
	default:
		return errors.NewShapeError(fieldName, fmt.Sprintf("can not append objects to a field holding %T", current))
	}

	d.fields[fieldName] = append(list, more...)

	return nil
}

// AppendFacets adds facets to the uco-core:hasFacet list
func (d *DocumentImpl) AppendFacets(facets ...types.Fragment) error {
	return d.AppendObjects(HasFacet, facets...)
}

func (d *DocumentImpl) MarshalJSON() ([]byte, error) {
	contents := map[string]any{
		"@type": d.Type(),
	}

	if d.documentID != "" {
		contents["@id"] = d.documentID
	}

	for k, v := range d.fields {
		contents[k] = v
	}

	return json.Marshal(&contents)
}

var _ types.Document = &DocumentImpl{}

// Coercer selects the value coercer used by decorators applied after it
func Coercer(c *literals.Coercer) DocumentDecoratorFunc {
	return func(d *DocumentImpl) error {
		if c != nil {
			d.coercer = c
		}
		return nil
	}
}

const HasFacet string = "uco-core:hasFacet"

type readConfig struct {
	coercer    *literals.Coercer
	references map[string]bool
}

type ReadOption func(cfg *readConfig)

// ReadWithCoercer selects the coercer used to validate literals while reading
func ReadWithCoercer(c *literals.Coercer) ReadOption {
	return func(cfg *readConfig) {
		cfg.coercer = c
	}
}

// ReferenceFields names the fields whose bare strings are node references.
// Bare strings in any other field are read as string literals.
func ReferenceFields(names ...string) ReadOption {
	return func(cfg *readConfig) {
		for _, n := range names {
			cfg.references[n] = true
		}
	}
}

func NewFromJSON(body []byte, options ...ReadOption) (*DocumentImpl, error) {
	cfg := &readConfig{
		coercer:    literals.Default(),
		references: map[string]bool{},
	}

	for _, option := range options {
		option(cfg)
	}

	var contents map[string]any
	if err := json.Unmarshal(body, &contents); err != nil {
		return nil, fmt.Errorf("failed to unmarshal document: %w", err)
	}

	d, err := cfg.document(contents)
	if err != nil {
		return nil, err
	}

	if d.ID() == "" {
		return nil, errors.NewShapeError("@id", "failed to parse document")
	}

	return d, nil
}

func (cfg *readConfig) document(contents map[string]any) (*DocumentImpl, error) {
	documentID, _ := contents["@id"].(string)
	documentType, _ := contents["@type"].(string)

	d, err := New(documentID, documentType, Coercer(cfg.coercer))
	if err != nil {
		return nil, err
	}

	for k, v := range contents {
		if k == "@id" || k == "@type" {
			continue
		}

		value, err := cfg.value(k, v)
		if err != nil {
			return nil, err
		}

		d.fields[k] = value
	}

	return d, nil
}

func (cfg *readConfig) value(name string, v any) (any, error) {
	switch typed := v.(type) {
	case string:
		if cfg.references[name] {
			return references.Unmarshal(name, typed)
		}
		return cfg.coercer.Coerce(literals.String, name, typed)

	case map[string]any:
		if _, ok := typed["@value"]; ok {
			return cfg.literal(name, typed)
		}
		if _, ok := typed["@type"]; ok {
			return cfg.document(typed)
		}
		return typed, nil

	case []any:
		return cfg.list(name, typed)
	}

	return v, nil
}

func (cfg *readConfig) literal(name string, body map[string]any) (literals.Literal, error) {
	tag, _ := body["@type"].(string)

	kind, ok := cfg.coercer.KindOf(tag)
	if !ok {
		return literals.Literal{}, errors.NewShapeError(name, fmt.Sprintf("unsupported datatype %q", tag))
	}

	return cfg.coercer.Unmarshal(kind, name, body)
}

func (cfg *readConfig) list(name string, items []any) (any, error) {
	if cfg.references[name] {
		return references.Unmarshal(name, items)
	}

	if len(items) == 0 {
		return items, nil
	}

	values := make([]any, 0, len(items))
	for _, item := range items {
		value, err := cfg.value(name, item)
		if err != nil {
			return nil, err
		}
		values = append(values, value)
	}

	if ls, ok := allOf[literals.Literal](values); ok {
		return ls, nil
	}

	if docs, ok := allOf[*DocumentImpl](values); ok {
		fragments := make([]types.Fragment, 0, len(docs))
		for _, doc := range docs {
			fragments = append(fragments, doc)
		}
		return fragments, nil
	}

	return values, nil
}

func allOf[T any](values []any) ([]T, bool) {
	result := make([]T, 0, len(values))
	for _, v := range values {
		t, ok := v.(T)
		if !ok {
			return nil, false
		}
		result = append(result, t)
	}
	return result, true
}
