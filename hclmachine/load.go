package hclmachine

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/atlekbai/statepaths"
)

// Load reads every machine declared in paths. A path is a .hcl file or a
// directory searched recursively for .hcl files. Machine names must be
// unique across all files.
func Load(paths ...string) ([]*Definition, error) {
	logger := statepaths.Logger
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := findHCLFiles(paths)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	parser := hclparse.NewParser()
	var defs []*Definition
	seen := make(map[string]string)

	for _, path := range files {
		file, diags := parser.ParseHCLFile(path)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
		}

		fileDefs, err := decode(file, path)
		if err != nil {
			return nil, err
		}
		for _, def := range fileDefs {
			if other, ok := seen[def.Name]; ok {
				return nil, fmt.Errorf("%w: %q in %s and %s", ErrDuplicateMachine, def.Name, other, path)
			}
			seen[def.Name] = path
			defs = append(defs, def)
		}
	}

	logger.Debug("HCL loading complete.", "machines", len(defs))
	return defs, nil
}

// Parse reads the machines declared in src. filename is used in diagnostics.
func Parse(src []byte, filename string) ([]*Definition, error) {
	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}
	return decode(file, filename)
}

// Find returns the definition named name.
func Find(defs []*Definition, name string) (*Definition, error) {
	for _, def := range defs {
		if def.Name == name {
			return def, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrMachineNotFound, name)
}

func decode(file *hcl.File, path string) ([]*Definition, error) {
	var root fileRoot
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", path, diags)
	}

	defs := make([]*Definition, 0, len(root.Machines))
	for _, block := range root.Machines {
		def, err := newDefinition(block, path, file.Bytes)
		if err != nil {
			return nil, fmt.Errorf("%s: machine %q: %w", path, block.Name, err)
		}
		defs = append(defs, def)
	}
	return defs, nil
}

// findHCLFiles returns the .hcl files named by paths or found below them, in
// walk order and without duplicates.
func findHCLFiles(paths []string) ([]string, error) {
	var files []string
	seen := make(map[string]struct{})
	add := func(p string) {
		if _, ok := seen[p]; !ok {
			seen[p] = struct{}{}
			files = append(files, p)
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}

		if !info.IsDir() {
			add(path)
			continue
		}
		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && filepath.Ext(p) == ".hcl" {
				add(p)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}
