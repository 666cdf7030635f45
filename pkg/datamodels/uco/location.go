package uco

import (
	"github.com/diwise/case-mapping/pkg/caseuco/registry"
	"github.com/diwise/case-mapping/pkg/caseuco/types/entities"
)

const (
	Latitude  string = "uco-location:latitude"
	Longitude string = "uco-location:longitude"
	Altitude  string = "uco-location:altitude"
)

//NewLocation creates a new instance of Location
func NewLocation(b *entities.Builder, decorators ...entities.DocumentDecoratorFunc) (*entities.DocumentImpl, error) {
	return b.New(LocationTypeName, decorators...)
}

//NewLatLongCoordinatesFacet creates a new instance of LatLongCoordinatesFacet.
//Coordinates are nil, a float or a pointer to a float. Absent coordinates are left out.
func NewLatLongCoordinatesFacet(b *entities.Builder, latitude, longitude, altitude any) (*entities.DocumentImpl, error) {
	return b.New(LatLongCoordinatesFacetTypeName, coordinates(latitude, longitude, altitude))
}

func coordinates(latitude, longitude, altitude any) entities.DocumentDecoratorFunc {
	return func(d *entities.DocumentImpl) error {
		return d.Apply(
			entities.Decimal(Latitude, latitude),
			entities.Decimal(Longitude, longitude),
			entities.Decimal(Altitude, altitude),
		)
	}
}

// NewCoordinates returns a registry of coordinate facets keyed by
// latitude#longitude, so that a position mentioned several times is
// described only once.
func NewCoordinates(b *entities.Builder, backing *registry.Backing[*entities.DocumentImpl]) *Facets {
	return registry.New(backing, b.NewID, func(parts []any, id string) (*entities.DocumentImpl, error) {
		if err := expectKeyParts(parts, 2, "a latitude and a longitude"); err != nil {
			return nil, err
		}
		return entities.New(id, LatLongCoordinatesFacetTypeName,
			entities.Coercer(b.Coercer()),
			coordinates(parts[0], parts[1], nil),
		)
	})
}

//NewSimpleAddressFacet creates a new instance of SimpleAddressFacet
func NewSimpleAddressFacet(b *entities.Builder, address SimpleAddress) (*entities.DocumentImpl, error) {
	return b.New(SimpleAddressFacetTypeName,
		entities.Text("uco-location:addressType", address.AddressType),
		entities.Text("uco-location:country", address.Country),
		entities.Text("uco-location:locality", address.Locality),
		entities.Text("uco-location:postalCode", address.PostalCode),
		entities.Text("uco-location:region", address.Region),
		entities.Text("uco-location:street", address.Street),
	)
}

type SimpleAddress struct {
	AddressType string
	Country     string
	Locality    string
	PostalCode  string
	Region      string
	Street      string
}
