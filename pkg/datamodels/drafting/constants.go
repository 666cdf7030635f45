package drafting

const (
	//SocialMediaActivityFacetTypeName is a type name constant for SocialMediaActivityFacet
	SocialMediaActivityFacetTypeName string = "drafting:SocialMediaActivityFacet"
	//NetworkPortTypeName is a type name constant for NetworkPort
	NetworkPortTypeName string = "drafting:NetworkPort"
	//TextIntervalFacetTypeName is a type name constant for TextIntervalFacet
	TextIntervalFacetTypeName string = "drafting:TextIntervalFacet"
	//DumpFacetTypeName is a type name constant for the facet holding data the ontology has no terms for
	DumpFacetTypeName string = "drafting:dump"

	dumpResultsDictionaryTypeName string = "drafting:dumpResultsDictionary"
	dumpResultsEntryTypeName      string = "drafting:dumpResultsDictionaryEntry"
)
