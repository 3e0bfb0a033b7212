package manifest

import (
	"context"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/horizonsvc/horizon/internal/ctxlog"
)

// rootSchema defines the top-level structure of a manifest file: any number
// of 'module' and 'interface' blocks.
type rootSchema struct {
	Modules    []*hclModule    `hcl:"module,block"`
	Interfaces []*hclInterface `hcl:"interface,block"`
}

// hclModule represents a single 'module' block for decoding purposes. The
// body is decoded attribute by attribute so each one can default and produce
// a targeted diagnostic.
type hclModule struct {
	Identity string   `hcl:"identity,label"`
	Body     hcl.Body `hcl:",remain"`
}

// hclInterface represents a single 'interface' block.
type hclInterface struct {
	Identity string   `hcl:"identity,label"`
	Extends  []string `hcl:"extends,optional"`
}

// moduleBodySchema describes the attributes allowed inside a 'module' block.
var moduleBodySchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "description"},
		{Name: "category"},
		{Name: "group"},
		{Name: "lazy"},
		{Name: "priority"},
		{Name: "implements"},
	},
}

// parseFile decodes one manifest file into module and interface declarations.
func parseFile(ctx context.Context, hclFile *hcl.File) ([]*Module, []*hclInterface, hcl.Diagnostics) {
	logger := ctxlog.FromContext(ctx)

	var allDiags hcl.Diagnostics
	if hclFile == nil {
		allDiags = append(allDiags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "HCL file is nil",
		})
		return nil, nil, allDiags
	}

	schema := &rootSchema{}
	diags := gohcl.DecodeBody(hclFile.Body, nil, schema)
	allDiags = append(allDiags, diags...)
	if diags.HasErrors() {
		return nil, nil, allDiags
	}

	modules := make([]*Module, 0, len(schema.Modules))
	for _, parsed := range schema.Modules {
		bodyContent, contentDiags := parsed.Body.Content(moduleBodySchema)
		allDiags = append(allDiags, contentDiags...)
		if contentDiags.HasErrors() {
			continue // Skip this module but keep parsing the others.
		}

		mod := &Module{
			Identity: parsed.Identity,
			Lazy:     true,
		}

		if attr, exists := bodyContent.Attributes["description"]; exists {
			allDiags = append(allDiags, gohcl.DecodeExpression(attr.Expr, nil, &mod.Description)...)
		}
		if attr, exists := bodyContent.Attributes["category"]; exists {
			allDiags = append(allDiags, gohcl.DecodeExpression(attr.Expr, nil, &mod.Category)...)
		}
		if attr, exists := bodyContent.Attributes["group"]; exists {
			allDiags = append(allDiags, gohcl.DecodeExpression(attr.Expr, nil, &mod.Group)...)
		}
		if attr, exists := bodyContent.Attributes["lazy"]; exists {
			allDiags = append(allDiags, decodeTyped(attr, cty.Bool, &mod.Lazy)...)
		}
		if attr, exists := bodyContent.Attributes["priority"]; exists {
			allDiags = append(allDiags, decodeTyped(attr, cty.Number, &mod.Priority)...)
		}
		if attr, exists := bodyContent.Attributes["implements"]; exists {
			allDiags = append(allDiags, gohcl.DecodeExpression(attr.Expr, nil, &mod.Implements)...)
		}

		modules = append(modules, mod)
	}

	if allDiags.HasErrors() {
		return nil, nil, allDiags
	}

	logger.Debug("Parsed manifest declarations.",
		"modules", len(modules), "interfaces", len(schema.Interfaces))
	return modules, schema.Interfaces, allDiags
}

// decodeTyped evaluates an attribute expression, checks it against the
// expected cty type, and converts it into the Go target. It produces a
// friendlier diagnostic than raw gohcl decoding when the manifest author
// wrote the wrong type.
func decodeTyped(attr *hcl.Attribute, want cty.Type, target any) hcl.Diagnostics {
	val, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		return diags
	}

	if !val.Type().Equals(want) {
		return hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid attribute type",
			Detail: "Attribute \"" + attr.Name + "\" requires " + want.FriendlyName() +
				", but the manifest provides " + val.Type().FriendlyName() + ".",
			Subject: attr.Expr.Range().Ptr(),
		}}
	}

	if err := gocty.FromCtyValue(val, target); err != nil {
		return hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid attribute value",
			Detail:   "Attribute \"" + attr.Name + "\": " + err.Error(),
			Subject:  attr.Expr.Range().Ptr(),
		}}
	}
	return nil
}
