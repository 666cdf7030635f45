package uco

import (
	"fmt"

	"github.com/diwise/case-mapping/pkg/caseuco/errors"
	"github.com/diwise/case-mapping/pkg/caseuco/registry"
	"github.com/diwise/case-mapping/pkg/caseuco/types/entities"
	"github.com/diwise/case-mapping/pkg/caseuco/types/literals"
)

//NewObservableObject creates a new instance of ObservableObject
func NewObservableObject(b *entities.Builder, decorators ...entities.DocumentDecoratorFunc) (*entities.DocumentImpl, error) {
	return b.New(ObservableObjectTypeName, decorators...)
}

func State(state string) entities.DocumentDecoratorFunc {
	return entities.Text("uco-observable:state", state)
}

//NewApplicationFacet creates a new instance of ApplicationFacet
func NewApplicationFacet(b *entities.Builder, name string, decorators ...entities.DocumentDecoratorFunc) (*entities.DocumentImpl, error) {
	decorators = append([]entities.DocumentDecoratorFunc{entities.Name(name)}, decorators...)
	return b.New(ApplicationFacetTypeName, decorators...)
}

func ApplicationVersion(version string) entities.DocumentDecoratorFunc {
	return entities.Text("uco-observable:version", version)
}

//NewURLFacet creates a new instance of URLFacet
func NewURLFacet(b *entities.Builder, fullValue string, decorators ...entities.DocumentDecoratorFunc) (*entities.DocumentImpl, error) {
	decorators = append([]entities.DocumentDecoratorFunc{entities.Text("uco-observable:fullValue", fullValue)}, decorators...)
	return b.New(URLFacetTypeName, decorators...)
}

func URLHost(host string) entities.DocumentDecoratorFunc {
	return entities.Text("uco-observable:host", host)
}

func URLScheme(scheme string) entities.DocumentDecoratorFunc {
	return entities.Text("uco-observable:scheme", scheme)
}

//NewDeviceFacet creates a new instance of DeviceFacet
func NewDeviceFacet(b *entities.Builder, decorators ...entities.DocumentDecoratorFunc) (*entities.DocumentImpl, error) {
	return b.New(DeviceFacetTypeName, decorators...)
}

func DeviceType(deviceType string) entities.DocumentDecoratorFunc {
	return entities.Text("uco-observable:deviceType", deviceType)
}

func Manufacturer(manufacturer any) entities.DocumentDecoratorFunc {
	return entities.Ref("uco-observable:manufacturer", manufacturer)
}

func Model(model string) entities.DocumentDecoratorFunc {
	return entities.Text("uco-observable:model", model)
}

func SerialNumber(serial string) entities.DocumentDecoratorFunc {
	return entities.Text("uco-observable:serialNumber", serial)
}

// Facets is the registry type used for deduplicated leaf facets
type Facets = registry.Registry[*entities.DocumentImpl]

// NewApplicationNames returns a registry of application facets keyed by
// application name, so that every application is described only once.
func NewApplicationNames(b *entities.Builder, backing *registry.Backing[*entities.DocumentImpl]) *Facets {
	return registry.New(backing, b.NewID, func(parts []any, id string) (*entities.DocumentImpl, error) {
		if err := expectKeyParts(parts, 1, "an application name"); err != nil {
			return nil, err
		}
		return entities.New(id, ApplicationFacetTypeName,
			entities.Coercer(b.Coercer()),
			entities.Literal(literals.String, "uco-core:name", parts[0]),
		)
	})
}

func expectKeyParts(parts []any, count int, what string) error {
	if len(parts) != count {
		return errors.NewShapeError("key", fmt.Sprintf("expected %s as key, got %d components", what, len(parts)))
	}
	return nil
}
