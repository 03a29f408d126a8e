package internal_test

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestStatusImportRestrictions keeps the projector free of concrete
// collaborators; settings, writer, formatter and ship names are injected.
func TestStatusImportRestrictions(t *testing.T) {
	allowedPrefixes := []string{
		"streamsource/internal/api",
		"streamsource/internal/log",
	}

	checkImports(t, "./status", allowedPrefixes, nil)
}

// TestJournalImportRestrictions ensures the host side talks to the plugin
// only through the api package
func TestJournalImportRestrictions(t *testing.T) {
	forbiddenPrefixes := []string{
		"streamsource/internal/status",
		"streamsource/internal/output",
		"streamsource/internal/config",
	}

	checkImports(t, "./journal", nil, forbiddenPrefixes)
}

// TestLeafPackages ensures collaborator packages do not depend on each other
func TestLeafPackages(t *testing.T) {
	for _, dir := range []string{"./api", "./output", "./locale", "./ships"} {
		checkImports(t, dir, []string{}, []string{"streamsource/internal/"})
	}
	checkImports(t, "./config", []string{"streamsource/internal/log"}, nil)
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
			t.Errorf("Failed to parse %s: %v", path, err)
			return nil
		}

		for _, imp := range node.Imports {
			importPath := strings.Trim(imp.Path.Value, `"`)

			// Skip standard library and third-party imports
			if !strings.HasPrefix(importPath, "streamsource/internal") {
				continue
			}

			for _, forbidden := range forbiddenPrefixes {
				if strings.HasPrefix(importPath, forbidden) {
					t.Errorf("FORBIDDEN import in %s: %s", path, importPath)
				}
			}

			// A non-nil allowed list, even an empty one, restricts internal imports
			if allowedPrefixes != nil {
				allowed := false
				for _, prefix := range allowedPrefixes {
					if strings.HasPrefix(importPath, prefix) {
						allowed = true
						break
					}
				}
				if !allowed {
					t.Errorf("DISALLOWED import in %s: %s (not in allowed list)", path, importPath)
				}
			}
		}

		return nil
	})

	if err != nil {
		t.Errorf("Failed to walk directory %s: %v", packageDir, err)
	}
}
