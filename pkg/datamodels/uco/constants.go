package uco

const (
	//BundleTypeName is the type of the top level document of a case
	BundleTypeName string = "uco-core:Bundle"
	//ActionTypeName is a type name constant for Action
	ActionTypeName string = "uco-action:Action"
	//ObservableObjectTypeName is a type name constant for ObservableObject
	ObservableObjectTypeName string = "uco-observable:ObservableObject"
	//ApplicationFacetTypeName is a type name constant for ApplicationFacet
	ApplicationFacetTypeName string = "uco-observable:ApplicationFacet"
	//URLFacetTypeName is a type name constant for URLFacet
	URLFacetTypeName string = "uco-observable:URLFacet"
	//DeviceFacetTypeName is a type name constant for DeviceFacet
	DeviceFacetTypeName string = "uco-observable:DeviceFacet"
	//LocationTypeName is a type name constant for Location
	LocationTypeName string = "uco-location:Location"
	//LatLongCoordinatesFacetTypeName is a type name constant for LatLongCoordinatesFacet
	LatLongCoordinatesFacetTypeName string = "uco-location:LatLongCoordinatesFacet"
	//SimpleAddressFacetTypeName is a type name constant for SimpleAddressFacet
	SimpleAddressFacetTypeName string = "uco-location:SimpleAddressFacet"
	//ToolTypeName is a type name constant for Tool
	ToolTypeName string = "uco-tool:Tool"
	//OrganizationTypeName is a type name constant for Organization
	OrganizationTypeName string = "uco-identity:Organization"
)

const (
	StartTime   string = "uco-action:startTime"
	EndTime     string = "uco-action:endTime"
	Environment string = "uco-action:environment"
	Performer   string = "uco-action:performer"
	Instrument  string = "uco-action:instrument"
	Location    string = "uco-action:location"
	Result      string = "uco-action:result"
	Object      string = "uco-action:object"

	CoreObject  string = "uco-core:object"
	Comment     string = "rdfs:comment"
	Description string = "uco-core:description"
	Graph       string = "@graph"
)
