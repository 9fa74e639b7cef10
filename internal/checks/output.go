package checks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

const probeFileName = "test_write.tmp"

// OutputDirChecker creates the audio output directory if needed and proves
// it is writable by writing and removing a probe file.
type OutputDirChecker struct {
	Path string
}

func (c *OutputDirChecker) Name() string  { return "output-directory" }
func (c *OutputDirChecker) Title() string { return "Checking output directory..." }

func (c *OutputDirChecker) Check(_ context.Context) (*CheckResult, error) {
	r := &CheckResult{Name: c.Name(), Title: c.Title()}

	abs, err := c.probe()
	if err != nil {
		r.fail("Cannot create/write to output directory: %v", err)
		r.Summary = err.Error()
		return r, nil
	}

	r.Passed = true
	r.ok("Output directory is writable: %s", abs)
	r.Summary = "writable: " + abs
	r.Data = map[string]string{"path": abs}
	return r, nil
}

func (c *OutputDirChecker) probe() (string, error) {
	abs, err := filepath.Abs(c.Path)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", c.Path, err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return "", err
	}
	probe := filepath.Join(abs, probeFileName)
	if err := os.WriteFile(probe, []byte("test"), 0o644); err != nil {
		return "", err
	}
	if err := os.Remove(probe); err != nil {
		return "", err
	}
	return abs, nil
}
