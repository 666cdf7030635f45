package uco

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	caseerrors "github.com/diwise/case-mapping/pkg/caseuco/errors"
	"github.com/diwise/case-mapping/pkg/caseuco/identifiers"
	"github.com/diwise/case-mapping/pkg/caseuco/registry"
	"github.com/diwise/case-mapping/pkg/caseuco/types/entities"
	"github.com/matryer/is"
)

func testBuilder() *entities.Builder {
	next, _ := identifiers.NewSequence("kb")
	return entities.NewBuilder(next)
}

func TestBundleContextContainsCallerPrefix(t *testing.T) {
	is := is.New(t)
	bundle, err := NewBundle(testBuilder(), DefaultPrefix(), entities.Description("An Example Case File"))
	is.NoErr(err)

	b, _ := json.Marshal(bundle)
	s := string(b)

	is.True(strings.Contains(s, `"kb":"http://example.org/kb/"`))
	is.True(strings.Contains(s, `"uco-core":"https://ontology.unifiedcyberontology.org/uco/core/"`))
	is.True(strings.Contains(s, `"@type":"uco-core:Bundle"`))
	is.True(strings.Contains(s, `"uco-core:description":"An Example Case File"`))
}

func TestBundlePrefixCollision(t *testing.T) {
	is := is.New(t)

	_, err := NewBundle(testBuilder(), Prefix{Label: "uco-core", IRI: "http://example.org/mine/"})
	is.True(errors.Is(err, caseerrors.ErrConfiguration))

	_, err = NewBundle(testBuilder(), Prefix{Label: "mine"})
	is.True(errors.Is(err, caseerrors.ErrConfiguration))
}

func TestBundleCaseIdentifier(t *testing.T) {
	is := is.New(t)
	bundle, err := NewBundle(testBuilder(), DefaultPrefix(), CaseIdentifier("kb:case-1"))
	is.NoErr(err)
	is.Equal(bundle.ID(), "kb:case-1")
}

func TestBundleAppends(t *testing.T) {
	is := is.New(t)
	b := testBuilder()

	bundle, _ := NewBundle(b, DefaultPrefix(), entities.Description("first"))
	org, _ := NewOrganization(b, "Nikon")

	is.NoErr(bundle.AppendToObjects(org))
	is.NoErr(bundle.AppendDescriptions("second"))
	is.NoErr(bundle.AppendComments("a comment"))

	descriptions, _ := bundle.Get(Description)
	raw, _ := json.Marshal(descriptions)
	is.Equal(string(raw), `["first","second"]`)

	objects, _ := bundle.Get(CoreObject)
	raw, _ = json.Marshal(objects)
	is.Equal(string(raw), `[{"@id":"kb:2","@type":"uco-identity:Organization","uco-core:name":"Nikon"}]`)
}

func TestActionWithReferences(t *testing.T) {
	is := is.New(t)
	b := testBuilder()

	tool, _ := NewTool(b, "exiftool", ToolVersion("12.0"))
	org, _ := NewOrganization(b, "Police")

	action, err := NewAction(b,
		entities.Name("extraction"),
		StartTimeAt("2023-01-01T01:02:02Z"),
		ActionPerformer(org),
		ActionInstrument([]any{tool}),
	)
	is.NoErr(err)
	is.NoErr(action.AppendResults("kb:result-1"))

	raw, _ := json.Marshal(action)
	is.Equal(string(raw), `{"@id":"kb:3","@type":"uco-action:Action","uco-action:instrument":["kb:1"],"uco-action:performer":"kb:2","uco-action:result":["kb:result-1"],"uco-action:startTime":{"@type":"xsd:dateTime","@value":"2023-01-01T01:02:02Z"},"uco-core:name":"extraction"}`)
}

func TestActionAppendsUnpackListArguments(t *testing.T) {
	is := is.New(t)
	b := testBuilder()

	first, _ := NewObservableObject(b)
	second, _ := NewObservableObject(b)
	action, _ := NewAction(b)

	is.NoErr(action.AppendResults([]*entities.DocumentImpl{first, second}))
	is.NoErr(action.AppendResults("kb:result-3", []string{"kb:result-4"}))
	is.NoErr(action.AppendActionObjects([]any{"kb:evidence-1"}, first))

	raw, _ := json.Marshal(action)
	is.Equal(string(raw), `{"@id":"kb:3","@type":"uco-action:Action","uco-action:object":["kb:evidence-1","kb:1"],"uco-action:result":["kb:1","kb:2","kb:result-3","kb:result-4"]}`)

	err := action.AppendResults("kb:result-5", []any{"kb:result-6", nil})
	is.True(errors.Is(err, caseerrors.ErrShape))
	is.Equal(caseerrors.FieldOf(err), "uco-action:result[1][1]")
}

func TestActionKeepsEmbeddedObjectAppend(t *testing.T) {
	is := is.New(t)
	b := testBuilder()

	action, _ := NewAction(b)
	facet, _ := NewApplicationFacet(b, "Safari")

	is.NoErr(action.AppendObjects("uco-core:hasFacet", facet))

	raw, _ := json.Marshal(action)
	is.Equal(string(raw), `{"@id":"kb:1","@type":"uco-action:Action","uco-core:hasFacet":[{"@id":"kb:2","@type":"uco-observable:ApplicationFacet","uco-core:name":"Safari"}]}`)
}

func TestActionTimesUseClock(t *testing.T) {
	is := is.New(t)
	fixed := time.Date(2023, 1, 1, 1, 2, 2, 2000, time.FixedZone("CET", 3600))

	action, _ := NewAction(testBuilder())
	action.WithClock(func() time.Time { return fixed })

	start, err := action.SetStartTime()
	is.NoErr(err)
	is.Equal(start.Location(), time.UTC)

	_, err = action.SetEndTime()
	is.NoErr(err)

	raw, _ := json.Marshal(action)
	is.Equal(string(raw), `{"@id":"kb:1","@type":"uco-action:Action","uco-action:endTime":{"@type":"xsd:dateTime","@value":"2023-01-01T00:02:02.000002Z"},"uco-action:startTime":{"@type":"xsd:dateTime","@value":"2023-01-01T00:02:02.000002Z"}}`)
}

func TestApplicationNamesRegistry(t *testing.T) {
	is := is.New(t)
	backing := &registry.Backing[*entities.DocumentImpl]{}
	apps := NewApplicationNames(testBuilder(), backing)

	safari, err := apps.CheckOrCreate("Safari")
	is.NoErr(err)
	chrome, _ := apps.CheckOrCreate("Chrome")
	again, _ := apps.CheckOrCreateWithID("kb:unused", "Safari")

	is.True(again == safari)
	is.True(chrome != safari)
	is.Equal(backing.Keys, []string{"Safari", "Chrome"})

	raw, _ := json.Marshal(backing.Objects)
	is.Equal(string(raw), `[{"@id":"kb:1","@type":"uco-observable:ApplicationFacet","uco-core:name":"Safari"},{"@id":"kb:2","@type":"uco-observable:ApplicationFacet","uco-core:name":"Chrome"}]`)
}

func TestCoordinatesRegistry(t *testing.T) {
	is := is.New(t)
	backing := &registry.Backing[*entities.DocumentImpl]{}
	coords := NewCoordinates(testBuilder(), backing)

	first, err := coords.CheckOrCreate(56.47267913, -71.17069244)
	is.NoErr(err)
	again, _ := coords.CheckOrCreate(56.47267913, -71.17069244)
	is.True(again == first)

	_, err = coords.CheckOrCreate(57.0, -71.17069244)
	is.NoErr(err)

	is.Equal(backing.Keys, []string{"56.47267913#-71.17069244", "57#-71.17069244"})

	raw, _ := json.Marshal(first)
	is.Equal(string(raw), `{"@id":"kb:1","@type":"uco-location:LatLongCoordinatesFacet","uco-location:latitude":{"@type":"xsd:decimal","@value":"56.47267913"},"uco-location:longitude":{"@type":"xsd:decimal","@value":"-71.17069244"}}`)
}

func TestCoordinatesRegistryRejectsBadCoordinates(t *testing.T) {
	is := is.New(t)
	backing := &registry.Backing[*entities.DocumentImpl]{}
	coords := NewCoordinates(testBuilder(), backing)

	_, err := coords.CheckOrCreate("north", -71.17069244)
	is.True(errors.Is(err, caseerrors.ErrShape))
	is.Equal(len(backing.Keys), 0)
	is.Equal(len(backing.Objects), 0)
}

func TestRegistriesRejectWrongNumberOfKeyParts(t *testing.T) {
	is := is.New(t)
	backing := &registry.Backing[*entities.DocumentImpl]{}

	coords := NewCoordinates(testBuilder(), backing)
	_, err := coords.CheckOrCreate(56.47267913)
	is.True(errors.Is(err, caseerrors.ErrShape))
	is.Equal(caseerrors.FieldOf(err), "key")

	apps := NewApplicationNames(testBuilder(), backing)
	_, err = apps.CheckOrCreate("Safari", "17.0")
	is.True(errors.Is(err, caseerrors.ErrShape))

	is.Equal(len(backing.Keys), 0)
	is.Equal(len(backing.Objects), 0)
}

func TestLocationWithFacets(t *testing.T) {
	is := is.New(t)
	b := testBuilder()
	altitude := 12.5

	latlong, err := NewLatLongCoordinatesFacet(b, 59.3293, 18.0686, &altitude)
	is.NoErr(err)
	address, _ := NewSimpleAddressFacet(b, SimpleAddress{Country: "Sweden", Locality: "Stockholm"})

	location, err := NewLocation(b, entities.Facets(latlong, address))
	is.NoErr(err)

	raw, _ := json.Marshal(location)
	is.Equal(string(raw), `{"@id":"kb:3","@type":"uco-location:Location","uco-core:hasFacet":[{"@id":"kb:1","@type":"uco-location:LatLongCoordinatesFacet","uco-location:altitude":{"@type":"xsd:decimal","@value":"12.5"},"uco-location:latitude":{"@type":"xsd:decimal","@value":"59.3293"},"uco-location:longitude":{"@type":"xsd:decimal","@value":"18.0686"}},{"@id":"kb:2","@type":"uco-location:SimpleAddressFacet","uco-location:country":"Sweden","uco-location:locality":"Stockholm"}]}`)
}

func TestObservableWithFacets(t *testing.T) {
	is := is.New(t)
	b := testBuilder()

	apple, _ := NewOrganization(b, "Apple")
	device, _ := NewDeviceFacet(b, DeviceType("iPhone"), Manufacturer(apple), Model("6XS"), SerialNumber("77"))
	url, _ := NewURLFacet(b, "https://example.org/a", URLHost("example.org"))

	object, err := NewObservableObject(b, State("seized"), entities.Facets(device, url))
	is.NoErr(err)

	raw, _ := json.Marshal(object)
	is.Equal(string(raw), `{"@id":"kb:4","@type":"uco-observable:ObservableObject","uco-core:hasFacet":[{"@id":"kb:2","@type":"uco-observable:DeviceFacet","uco-observable:deviceType":"iPhone","uco-observable:manufacturer":"kb:1","uco-observable:model":"6XS","uco-observable:serialNumber":"77"},{"@id":"kb:3","@type":"uco-observable:URLFacet","uco-observable:fullValue":"https://example.org/a","uco-observable:host":"example.org"}],"uco-observable:state":"seized"}`)
}
