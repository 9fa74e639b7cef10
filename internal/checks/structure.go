package checks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// RequiredPaths lists the project files the server is built from.
var RequiredPaths = []string{
	"go.mod",
	"cmd/elevenlabs-mcp/main.go",
	"internal/tools/tools.go",
	"internal/elevenlabs/client.go",
	"internal/config/config.go",
	"README.md",
	".env.example",
}

// StructureChecker verifies that each required path exists under Dir.
type StructureChecker struct {
	Dir string
	// Paths defaults to RequiredPaths.
	Paths []string
}

func (c *StructureChecker) Name() string  { return "project-structure" }
func (c *StructureChecker) Title() string { return "Checking project structure..." }

func (c *StructureChecker) Check(_ context.Context) (*CheckResult, error) {
	paths := c.Paths
	if paths == nil {
		paths = RequiredPaths
	}

	r := &CheckResult{Name: c.Name(), Title: c.Title(), Passed: true}
	var missing []string
	for _, p := range paths {
		if _, err := os.Stat(filepath.Join(c.Dir, filepath.FromSlash(p))); err != nil {
			r.Passed = false
			missing = append(missing, p)
			r.fail("%s", p)
			continue
		}
		r.ok("%s", p)
	}

	if r.Passed {
		r.Summary = fmt.Sprintf("all %d project files present", len(paths))
	} else {
		r.Summary = fmt.Sprintf("%d of %d project files missing", len(missing), len(paths))
		r.Hints = []string{"Run the check from the repository root or pass --dir"}
	}
	r.Data = map[string]any{"missing": missing}
	return r, nil
}
