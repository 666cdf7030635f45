package investigation

const (
	//InvestigativeActionTypeName is a type name constant for InvestigativeAction
	InvestigativeActionTypeName string = "case-investigation:InvestigativeAction"
	//InvestigationTypeName is a type name constant for Investigation
	InvestigationTypeName string = "case-investigation:Investigation"
	//ProvenanceRecordTypeName is a type name constant for ProvenanceRecord
	ProvenanceRecordTypeName string = "case-investigation:ProvenanceRecord"
)

const (
	Focus         string = "case-investigation:focus"
	ExhibitNumber string = "case-investigation:exhibitNumber"
)
