package manifest

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/horizonsvc/horizon/internal/ctxlog"
	"github.com/horizonsvc/horizon/internal/fsutil"
)

// Load parses every manifest reachable from the given paths into a single
// Model. A path may be a single .hcl file or a directory that is searched
// recursively. Duplicate module or interface identities across files are
// rejected.
func Load(ctx context.Context, paths ...string) (*Model, error) {
	logger := ctxlog.FromContext(ctx)

	var filePaths []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("manifest path %s: %w", path, err)
		}
		if !info.IsDir() {
			filePaths = append(filePaths, path)
			continue
		}
		found, err := fsutil.FindFilesByExtension(path, ".hcl")
		if err != nil {
			logger.Error("Failed to walk manifest directory.", "path", path, "error", err)
			return nil, err
		}
		filePaths = append(filePaths, found...)
	}

	if len(filePaths) == 0 {
		logger.Warn("No .hcl manifest files found.", "paths", paths)
	}

	model := newModel()
	parser := hclparse.NewParser()

	for _, filePath := range filePaths {
		hclFile, diags := parser.ParseHCLFile(filePath)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse manifest %s: %w", filePath, diags)
		}
		if err := decodeFile(ctx, model, hclFile, filePath); err != nil {
			return nil, err
		}
		logger.Debug("Loaded manifest file.", "file", filePath)
	}

	logger.Info("Manifests loaded.",
		"files", len(filePaths), "modules", len(model.Modules), "interfaces", len(model.parents))
	return model, nil
}

func decodeFile(ctx context.Context, model *Model, hclFile *hcl.File, filePath string) error {
	modules, interfaces, diags := parseFile(ctx, hclFile)
	if diags.HasErrors() {
		return fmt.Errorf("invalid manifest %s: %w", filePath, diags)
	}

	for _, mod := range modules {
		mod.Source = filePath
		if existing, ok := model.moduleIndex[mod.Identity]; ok {
			return fmt.Errorf("module '%s' declared in both %s and %s",
				mod.Identity, existing.Source, filePath)
		}
		model.Modules = append(model.Modules, mod)
		model.moduleIndex[mod.Identity] = mod
	}

	for _, iface := range interfaces {
		if existing, ok := model.interfaceSources[iface.Identity]; ok {
			return fmt.Errorf("interface '%s' declared in both %s and %s",
				iface.Identity, existing, filePath)
		}
		model.interfaceSources[iface.Identity] = filePath
		model.parents[iface.Identity] = iface.Extends
	}

	return nil
}
