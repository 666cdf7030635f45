package investigation

import (
	"github.com/diwise/case-mapping/pkg/caseuco/types/entities"
	"github.com/diwise/case-mapping/pkg/datamodels/uco"
)

// NewInvestigativeAction creates an action that records who did what, when and
// with which outcome during an investigation
func NewInvestigativeAction(b *entities.Builder, decorators ...entities.DocumentDecoratorFunc) (*uco.Action, error) {
	return uco.NewActionOfType(b, InvestigativeActionTypeName, decorators...)
}

// Investigation groups the objects taking part in an investigation
type Investigation struct {
	*entities.DocumentImpl
}

func NewInvestigation(b *entities.Builder, decorators ...entities.DocumentDecoratorFunc) (*Investigation, error) {
	d, err := b.New(InvestigationTypeName, decorators...)
	if err != nil {
		return nil, err
	}
	return &Investigation{DocumentImpl: d}, nil
}

func InvestigationFocus(focus string) entities.DocumentDecoratorFunc {
	return entities.Text(Focus, focus)
}

// CoreObjects refers to the persons, items and actions of an investigation
func CoreObjects(objects any) entities.DocumentDecoratorFunc {
	return entities.Ref(uco.CoreObject, objects)
}

func (i *Investigation) AppendCoreObjects(objects ...any) error {
	return i.AppendRefs(uco.CoreObject, objects...)
}

//NewProvenanceRecord creates a new instance of ProvenanceRecord
func NewProvenanceRecord(b *entities.Builder, exhibitNumber string, objects any) (*entities.DocumentImpl, error) {
	return b.New(ProvenanceRecordTypeName,
		entities.Text(ExhibitNumber, exhibitNumber),
		CoreObjects(objects),
	)
}
