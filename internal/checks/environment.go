package checks

import (
	"context"
	"go/version"
	"runtime"
	"runtime/debug"
	"strings"
)

// MinimumGoVersion is the oldest toolchain accepted by RuntimeChecker.
const MinimumGoVersion = "go1.24"

// RuntimeChecker verifies the Go toolchain that built the running binary.
type RuntimeChecker struct {
	// GoVersion reports the toolchain version; defaults to runtime.Version.
	GoVersion func() string
	// Minimum defaults to MinimumGoVersion.
	Minimum string
}

func (c *RuntimeChecker) Name() string  { return "runtime-version" }
func (c *RuntimeChecker) Title() string { return "Checking Go version..." }

func (c *RuntimeChecker) Check(_ context.Context) (*CheckResult, error) {
	goVersion := runtime.Version
	if c.GoVersion != nil {
		goVersion = c.GoVersion
	}
	minimum := c.Minimum
	if minimum == "" {
		minimum = MinimumGoVersion
	}

	v := goVersion()
	r := &CheckResult{Name: c.Name(), Title: c.Title(), Data: map[string]string{"version": v, "minimum": minimum}}

	// Development builds ("devel go1.x-abcdef") have no comparable version.
	lang := version.Lang(v)
	switch {
	case strings.HasPrefix(v, "devel"):
		r.Passed = true
		r.ok("%s (development toolchain)", v)
	case lang == "":
		r.fail("%s (unrecognized version, requires >= %s)", v, minimum)
	case version.Compare(v, minimum) >= 0:
		r.Passed = true
		r.ok("%s (compatible)", v)
	default:
		r.fail("%s (requires >= %s)", v, minimum)
	}
	r.Summary = r.Items[0].Text
	return r, nil
}

// RequiredModules are the modules the server cannot run without.
var RequiredModules = []string{
	"github.com/mark3labs/mcp-go",
	"github.com/spf13/cobra",
	"github.com/joho/godotenv",
	"github.com/shouni/go-http-kit",
	"go.uber.org/zap",
}

// DependencyChecker verifies that the required modules are linked into the
// running binary.
type DependencyChecker struct {
	// ReadBuildInfo defaults to debug.ReadBuildInfo.
	ReadBuildInfo func() (*debug.BuildInfo, bool)
	// Modules defaults to RequiredModules.
	Modules []string
}

func (c *DependencyChecker) Name() string  { return "dependencies" }
func (c *DependencyChecker) Title() string { return "Checking dependencies..." }

func (c *DependencyChecker) Check(_ context.Context) (*CheckResult, error) {
	readBuildInfo := debug.ReadBuildInfo
	if c.ReadBuildInfo != nil {
		readBuildInfo = c.ReadBuildInfo
	}
	modules := c.Modules
	if modules == nil {
		modules = RequiredModules
	}

	r := &CheckResult{Name: c.Name(), Title: c.Title()}
	info, ok := readBuildInfo()
	if !ok {
		r.fail("build information is not available")
		r.Summary = "build information is not available"
		r.Hints = []string{"Rebuild with module support: go build ./cmd/elevenlabs-mcp"}
		return r, nil
	}

	linked := make(map[string]string, len(info.Deps))
	for _, d := range info.Deps {
		m := d
		if d.Replace != nil {
			m = d.Replace
		}
		linked[d.Path] = m.Version
	}

	found := map[string]string{}
	var missing []string
	for _, path := range modules {
		if v, ok := linked[path]; ok {
			found[path] = v
			r.ok("%s %s is linked", path, v)
			continue
		}
		missing = append(missing, path)
		r.fail("%s is not linked", path)
	}

	r.Passed = len(missing) == 0
	r.Data = found
	if r.Passed {
		r.Summary = "all required modules are linked"
	} else {
		r.Summary = strings.Join(missing, ", ") + " not linked"
		r.Hints = []string{"Install missing dependencies: go mod download && go build ./cmd/elevenlabs-mcp"}
	}
	return r, nil
}
