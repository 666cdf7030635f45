package uco

import (
	"github.com/diwise/case-mapping/pkg/caseuco/types/entities"
)

//NewTool creates a new instance of Tool
func NewTool(b *entities.Builder, name string, decorators ...entities.DocumentDecoratorFunc) (*entities.DocumentImpl, error) {
	decorators = append([]entities.DocumentDecoratorFunc{entities.Name(name)}, decorators...)
	return b.New(ToolTypeName, decorators...)
}

func ToolVersion(version string) entities.DocumentDecoratorFunc {
	return entities.Text("uco-tool:version", version)
}

func ToolType(toolType string) entities.DocumentDecoratorFunc {
	return entities.Text("uco-tool:toolType", toolType)
}

func ToolCreator(creator any) entities.DocumentDecoratorFunc {
	return entities.Ref("uco-tool:creator", creator)
}

//NewOrganization creates a new instance of Organization
func NewOrganization(b *entities.Builder, name string, decorators ...entities.DocumentDecoratorFunc) (*entities.DocumentImpl, error) {
	decorators = append([]entities.DocumentDecoratorFunc{entities.Name(name)}, decorators...)
	return b.New(OrganizationTypeName, decorators...)
}
