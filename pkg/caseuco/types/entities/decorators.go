package entities

import (
	"sort"

	"github.com/diwise/case-mapping/pkg/caseuco/types"
	"github.com/diwise/case-mapping/pkg/caseuco/types/literals"
	"github.com/diwise/case-mapping/pkg/caseuco/types/references"
)

// Literal sets name to raw coerced to kind. Absent values leave the field unset.
func Literal(kind literals.Kind, name string, raw any) DocumentDecoratorFunc {
	return func(d *DocumentImpl) error {
		if types.IsAbsent(raw) {
			return nil
		}

		l, err := d.coercer.Coerce(kind, name, raw)
		if err != nil {
			return err
		}

		d.fields[name] = l
		return nil
	}
}

// LiteralList sets name to the list of raws coerced to kind. Absent elements
// are dropped and an empty result leaves the field unset.
func LiteralList(kind literals.Kind, name string, raws any) DocumentDecoratorFunc {
	return func(d *DocumentImpl) error {
		l, err := d.coercer.CoerceMany(kind, name, raws)
		if err != nil {
			return err
		}

		if len(l) > 0 {
			d.fields[name] = l
		}
		return nil
	}
}

// Literals sets every field in fields to a literal of kind, skipping absent values
func Literals(kind literals.Kind, fields map[string]any) DocumentDecoratorFunc {
	return func(d *DocumentImpl) error {
		for _, name := range sortedKeys(fields) {
			if err := Literal(kind, name, fields[name])(d); err != nil {
				return err
			}
		}
		return nil
	}
}

// Text sets a string field. Empty strings are treated as absent.
func Text(name string, value string) DocumentDecoratorFunc {
	if value == "" {
		return nop
	}
	return Literal(literals.String, name, value)
}

func DateTime(name string, raw any) DocumentDecoratorFunc {
	return Literal(literals.DateTime, name, raw)
}

func Boolean(name string, raw any) DocumentDecoratorFunc {
	return Literal(literals.Boolean, name, raw)
}

func Integer(name string, raw any) DocumentDecoratorFunc {
	return Literal(literals.Integer, name, raw)
}

func NonNegativeInteger(name string, raw any) DocumentDecoratorFunc {
	return Literal(literals.NonNegativeInteger, name, raw)
}

func Decimal(name string, raw any) DocumentDecoratorFunc {
	return Literal(literals.Decimal, name, raw)
}

// Ref sets name to a reference to the node or nodes in raw
func Ref(name string, raw any) DocumentDecoratorFunc {
	return func(d *DocumentImpl) error {
		r, err := references.Resolve(name, raw)
		if err != nil {
			return err
		}

		if r != nil {
			d.fields[name] = r
		}
		return nil
	}
}

func Refs(fields map[string]any) DocumentDecoratorFunc {
	return func(d *DocumentImpl) error {
		for _, name := range sortedKeys(fields) {
			if err := Ref(name, fields[name])(d); err != nil {
				return err
			}
		}
		return nil
	}
}

// Facets attaches facets through uco-core:hasFacet
func Facets(facets ...types.Fragment) DocumentDecoratorFunc {
	return func(d *DocumentImpl) error {
		return d.AppendFacets(facets...)
	}
}

// Objects embeds fragments in the list field name
func Objects(name string, fragments ...types.Fragment) DocumentDecoratorFunc {
	return func(d *DocumentImpl) error {
		return d.AppendObjects(name, fragments...)
	}
}

// Field sets name to value as is. It is meant for contents that are already in
// their serialized shape.
func Field(name string, value any) DocumentDecoratorFunc {
	return func(d *DocumentImpl) error {
		if !types.IsAbsent(value) {
			d.fields[name] = value
		}
		return nil
	}
}

// Identifier replaces the document identifier. Empty identifiers are ignored.
func Identifier(id string) DocumentDecoratorFunc {
	return func(d *DocumentImpl) error {
		if id != "" {
			d.documentID = id
		}
		return nil
	}
}

func Name(name string) DocumentDecoratorFunc {
	return Text("uco-core:name", name)
}

func Description(description string) DocumentDecoratorFunc {
	return Text("uco-core:description", description)
}

func Tags(tags ...string) DocumentDecoratorFunc {
	return LiteralList(literals.String, "uco-core:tag", tags)
}

func nop(*DocumentImpl) error {
	return nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
