package drafting

import (
	"encoding/json"
	"errors"
	"testing"

	caseerrors "github.com/diwise/case-mapping/pkg/caseuco/errors"
	"github.com/diwise/case-mapping/pkg/caseuco/identifiers"
	"github.com/diwise/case-mapping/pkg/caseuco/types/entities"
	"github.com/diwise/case-mapping/pkg/caseuco/types/literals"
	"github.com/matryer/is"
)

func testBuilder(options ...entities.BuilderOption) *entities.Builder {
	next, _ := identifiers.NewSequence("kb")
	return entities.NewBuilder(next, options...)
}

func ptr[T any](v T) *T {
	return &v
}

func TestSocialMediaActivityOmitsNilFields(t *testing.T) {
	is := is.New(t)

	facet, err := NewSocialMediaActivityFacet(testBuilder(), SocialMediaActivity{
		Body:          ptr("hello world"),
		AuthorName:    ptr("alice"),
		SharesCount:   ptr(3),
		CommentsCount: ptr(0),
		CreatedTime:   "2024-04-18T12:06:33Z",
		Application:   "kb:application-1",
	})
	is.NoErr(err)

	raw, _ := json.Marshal(facet)
	is.Equal(string(raw), `{"@id":"kb:1","@type":"drafting:SocialMediaActivityFacet","drafting:authorName":"alice","drafting:commentsCount":{"@type":"xsd:nonNegativeInteger","@value":"0"},"drafting:sharesCount":{"@type":"xsd:nonNegativeInteger","@value":"3"},"uco-observable:application":"kb:application-1","uco-observable:body":"hello world","uco-observable:observableCreatedTime":{"@type":"xsd:dateTime","@value":"2024-04-18T12:06:33Z"}}`)
}

func TestSocialMediaActivityRejectsNegativeCounts(t *testing.T) {
	is := is.New(t)

	_, err := NewSocialMediaActivityFacet(testBuilder(), SocialMediaActivity{ReactionsCount: ptr(-1)})
	is.True(errors.Is(err, caseerrors.ErrRange))
	is.Equal(caseerrors.FieldOf(err), "drafting:reactionsCount")
}

func TestNetworkPort(t *testing.T) {
	is := is.New(t)
	b := testBuilder(entities.WithCoercer(literals.New(literals.IntegerWidth(literals.LongWidth))))

	port, err := NewNetworkPort(b, 443, ptr(false), "open")
	is.NoErr(err)

	raw, _ := json.Marshal(port)
	is.Equal(string(raw), `{"@id":"kb:1","@type":"drafting:NetworkPort","uco-observable:hasChanged":{"@type":"xsd:boolean","@value":"false"},"uco-observable:port":{"@type":"xsd:long","@value":"443"},"uco-observable:state":"open"}`)
}

func TestTextInterval(t *testing.T) {
	is := is.New(t)

	facet, err := NewTextIntervalFacet(testBuilder(), 4, 10, nil)
	is.NoErr(err)

	raw, _ := json.Marshal(facet)
	is.Equal(string(raw), `{"@id":"kb:1","@type":"drafting:TextIntervalFacet","drafting:endIndex":{"@type":"xsd:integer","@value":"10"},"drafting:startIndex":{"@type":"xsd:integer","@value":"4"}}`)

	_, err = NewTextIntervalFacet(testBuilder(), 10, 4, nil)
	is.True(errors.Is(err, caseerrors.ErrRange))
}

func TestDumpFacet(t *testing.T) {
	is := is.New(t)

	facet, err := NewDumpFacet(testBuilder(), map[string]any{
		"state":   "corrupted",
		"notable": true,
		"blank":   " ",
		"missing": nil,
		"parts":   map[string]any{"1": "second", "0": "first"},
	})
	is.NoErr(err)

	raw, _ := json.Marshal(facet)
	is.Equal(string(raw), `{"@id":"kb:1","@type":"drafting:dump","drafting:dumpResults":{"@type":"drafting:dumpResultsDictionary","drafting:entry":[{"@type":"drafting:dumpResultsDictionaryEntry","drafting:key":"notable","drafting:stringValue":"true"},{"@type":"drafting:dumpResultsDictionaryEntry","drafting:dictionaryListValue":["first","second"],"drafting:key":"parts"},{"@type":"drafting:dumpResultsDictionaryEntry","drafting:key":"state","drafting:stringValue":"corrupted"}]}}`)
}
