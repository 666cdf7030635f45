package uco

import (
	"fmt"
	"maps"

	"github.com/diwise/case-mapping/pkg/caseuco/errors"
	"github.com/diwise/case-mapping/pkg/caseuco/identifiers"
	"github.com/diwise/case-mapping/pkg/caseuco/types"
	"github.com/diwise/case-mapping/pkg/caseuco/types/entities"
)

// Prefix is the caller selectable namespace for the nodes of a bundle
type Prefix struct {
	Label string `yaml:"label"`
	IRI   string `yaml:"iri"`
}

const DefaultPrefixIRI string = "http://example.org/kb/"

func DefaultPrefix() Prefix {
	return Prefix{Label: identifiers.DefaultPrefix, IRI: DefaultPrefixIRI}
}

var builtinContext = map[string]string{
	"@vocab":             "http://caseontology.org/core#",
	"case-investigation": "https://ontology.caseontology.org/case/investigation/",
	"co":                 "http://purl.org/co/",
	"rdf":                "http://www.w3.org/1999/02/22-rdf-syntax-ns#",
	"rdfs":               "http://www.w3.org/2000/01/rdf-schema#",
	"uco-action":         "https://ontology.unifiedcyberontology.org/uco/action/",
	"uco-core":           "https://ontology.unifiedcyberontology.org/uco/core/",
	"uco-identity":       "https://ontology.unifiedcyberontology.org/uco/identity/",
	"uco-location":       "https://ontology.unifiedcyberontology.org/uco/location/",
	"uco-role":           "https://ontology.unifiedcyberontology.org/uco/role/",
	"uco-observable":     "https://ontology.unifiedcyberontology.org/uco/observable/",
	"uco-tool":           "https://ontology.unifiedcyberontology.org/uco/tool/",
	"uco-types":          "https://ontology.unifiedcyberontology.org/uco/types/",
	"uco-vocabulary":     "https://ontology.unifiedcyberontology.org/uco/vocabulary/",
	"xsd":                "http://www.w3.org/2001/XMLSchema#",
}

// Context returns the @context of a bundle using prefix for its own nodes. A
// prefix label that is already bound by the built in table is refused.
func Context(prefix Prefix) (map[string]string, error) {
	if err := identifiers.ValidatePrefix(prefix.Label); err != nil {
		return nil, err
	}

	if _, ok := builtinContext[prefix.Label]; ok {
		return nil, errors.NewConfigurationError(
			fmt.Sprintf("requested prefix label already in use in hard-coded dictionary: %q, please use another label", prefix.Label),
		)
	}

	if prefix.IRI == "" {
		return nil, errors.NewConfigurationError(fmt.Sprintf("prefix %q has no IRI", prefix.Label))
	}

	ctx := maps.Clone(builtinContext)
	ctx[prefix.Label] = prefix.IRI

	return ctx, nil
}

// Bundle is the top level document of a case and holds every other object
type Bundle struct {
	*entities.DocumentImpl
}

func NewBundle(b *entities.Builder, prefix Prefix, decorators ...entities.DocumentDecoratorFunc) (*Bundle, error) {
	ctx, err := Context(prefix)
	if err != nil {
		return nil, err
	}

	decorators = append([]entities.DocumentDecoratorFunc{entities.Field("@context", ctx)}, decorators...)

	d, err := b.New(BundleTypeName, decorators...)
	if err != nil {
		return nil, err
	}

	return &Bundle{DocumentImpl: d}, nil
}

func CaseIdentifier(id string) entities.DocumentDecoratorFunc {
	return entities.Identifier(id)
}

func SpecVersion(version string) entities.DocumentDecoratorFunc {
	return entities.Text("uco-core:specVersion", version)
}

// AppendToGraph adds top level nodes to the @graph of the bundle
func (b *Bundle) AppendToGraph(objects ...types.Fragment) error {
	return b.AppendObjects(Graph, objects...)
}

// AppendToObjects adds nodes to uco-core:object
func (b *Bundle) AppendToObjects(objects ...types.Fragment) error {
	return b.AppendObjects(CoreObject, objects...)
}

func (b *Bundle) AppendComments(comments ...string) error {
	return b.AppendStrings(Comment, comments...)
}

func (b *Bundle) AppendDescriptions(descriptions ...string) error {
	return b.AppendStrings(Description, descriptions...)
}
