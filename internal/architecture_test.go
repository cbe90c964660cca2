package internal_test

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestFormCoreImportRestrictions ensures internal/form — the core
// engine — never depends on the catalog, UI, CLI or configuration
// packages. The ambient logger internal/formlog is allowed.
func TestFormCoreImportRestrictions(t *testing.T) {
	forbiddenPrefixes := []string{
		"github.com/mrdon/birocrat/internal/catalog",
		"github.com/mrdon/birocrat/internal/tui",
		"github.com/mrdon/birocrat/internal/formcli",
		"github.com/mrdon/birocrat/internal/formconfig",
	}

	checkImports(t, "./form", nil, forbiddenPrefixes)
}

// TestCatalogImportRestrictions ensures the script catalog never reaches
// up into the UI layer.
func TestCatalogImportRestrictions(t *testing.T) {
	forbiddenPrefixes := []string{
		"github.com/mrdon/birocrat/internal/tui",
		"github.com/mrdon/birocrat/internal/formcli",
	}

	checkImports(t, "./catalog", nil, forbiddenPrefixes)
}

func checkImports(t *testing.T, packageDir string, allowedPrefixes, forbiddenPrefixes []string) {
	err := filepath.Walk(packageDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}

		fset := token.NewFileSet()
		node, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if err != nil {
			t.Errorf("failed to parse %s: %v", path, err)
			return nil
		}

		for _, imp := range node.Imports {
			importPath := strings.Trim(imp.Path.Value, `"`)

			if !strings.Contains(importPath, "mrdon/birocrat/internal") {
				continue
			}

			for _, forbidden := range forbiddenPrefixes {
				if strings.HasPrefix(importPath, forbidden) {
					t.Errorf("forbidden import in %s: %s", path, importPath)
				}
			}

			if len(allowedPrefixes) > 0 {
				allowed := false
				for _, prefix := range allowedPrefixes {
					if strings.HasPrefix(importPath, prefix) {
						allowed = true
						break
					}
				}
				if !allowed {
					t.Errorf("disallowed import in %s: %s (not in allowed list)", path, importPath)
				}
			}
		}

		return nil
	})

	if err != nil {
		t.Errorf("failed to walk directory %s: %v", packageDir, err)
	}
}
