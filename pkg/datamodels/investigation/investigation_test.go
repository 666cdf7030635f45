package investigation

import (
	"encoding/json"
	"testing"

	"github.com/diwise/case-mapping/pkg/caseuco/identifiers"
	"github.com/diwise/case-mapping/pkg/caseuco/types/entities"
	"github.com/diwise/case-mapping/pkg/datamodels/uco"
	"github.com/matryer/is"
)

func testBuilder() *entities.Builder {
	next, _ := identifiers.NewSequence("kb")
	return entities.NewBuilder(next)
}

func TestInvestigativeAction(t *testing.T) {
	is := is.New(t)
	b := testBuilder()

	action, err := NewInvestigativeAction(b,
		entities.Name("annotated"),
		uco.StartTimeAt("2023-01-01T01:02:02.000001Z"),
		uco.EndTimeAt("2023-01-01T01:03:03.000002Z"),
	)
	is.NoErr(err)
	is.Equal(action.Type(), InvestigativeActionTypeName)

	raw, _ := json.Marshal(action)
	is.Equal(string(raw), `{"@id":"kb:1","@type":"case-investigation:InvestigativeAction","uco-action:endTime":{"@type":"xsd:dateTime","@value":"2023-01-01T01:03:03.000002Z"},"uco-action:startTime":{"@type":"xsd:dateTime","@value":"2023-01-01T01:02:02.000001Z"},"uco-core:name":"annotated"}`)
}

func TestInvestigationCoreObjects(t *testing.T) {
	is := is.New(t)
	b := testBuilder()

	action, _ := NewInvestigativeAction(b)
	investigation, err := NewInvestigation(b,
		entities.Name("Crime A"),
		InvestigationFocus("Murder"),
		CoreObjects([]any{action}),
	)
	is.NoErr(err)
	is.NoErr(investigation.AppendCoreObjects("kb:person-1"))

	raw, _ := json.Marshal(investigation)
	is.Equal(string(raw), `{"@id":"kb:2","@type":"case-investigation:Investigation","case-investigation:focus":"Murder","uco-core:name":"Crime A","uco-core:object":["kb:1","kb:person-1"]}`)
}

func TestProvenanceRecord(t *testing.T) {
	is := is.New(t)
	b := testBuilder()

	record, err := NewProvenanceRecord(b, "1", "kb:sd-card")
	is.NoErr(err)

	raw, _ := json.Marshal(record)
	is.Equal(string(raw), `{"@id":"kb:1","@type":"case-investigation:ProvenanceRecord","case-investigation:exhibitNumber":"1","uco-core:object":"kb:sd-card"}`)
}
