package checks

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spboyer/elevenlabs-mcp/internal/config"
)

// CredentialChecker looks for ELEVENLABS_API_KEY in the process environment
// and then in the .env file. The process environment is never modified.
type CredentialChecker struct {
	Dir string
	// EnvFile defaults to config.DefaultEnvFile, relative to Dir.
	EnvFile string
	// Getenv defaults to os.Getenv.
	Getenv func(string) string
	// ConfigErr is the error config.Load returned, if any. Each problem it
	// joins is reported as a failed item.
	ConfigErr error
}

func (c *CredentialChecker) Name() string  { return "api-key" }
func (c *CredentialChecker) Title() string { return "Checking API key..." }

func (c *CredentialChecker) Check(_ context.Context) (*CheckResult, error) {
	getenv := os.Getenv
	if c.Getenv != nil {
		getenv = c.Getenv
	}
	envFile := c.EnvFile
	if envFile == "" {
		envFile = config.DefaultEnvFile
	}
	if !filepath.IsAbs(envFile) {
		envFile = filepath.Join(c.Dir, envFile)
	}

	r := &CheckResult{Name: c.Name(), Title: c.Title()}

	var fileValues map[string]string
	var readErr error
	if _, err := os.Stat(envFile); err == nil {
		r.ok("%s file found", filepath.Base(envFile))
		fileValues, _, readErr = config.ReadEnvFile(envFile)
		if readErr != nil {
			r.fail("cannot read %s: %v", filepath.Base(envFile), readErr)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		r.fail("cannot access %s: %v", envFile, err)
	}

	for _, err := range unjoin(c.ConfigErr) {
		if readErr != nil && err.Error() == readErr.Error() {
			continue
		}
		r.fail("configuration error: %v", err)
	}

	key := getenv(config.EnvAPIKey)
	source := "environment"
	if key == "" {
		key = fileValues[config.EnvAPIKey]
		source = filepath.Base(envFile)
	}

	if key == "" {
		r.fail("%s is not set", config.EnvAPIKey)
		r.Summary = config.EnvAPIKey + " is not set"
		r.Hints = []string{
			fmt.Sprintf("Option 1: Set environment variable: export %s='your_api_key_here'", config.EnvAPIKey),
			"Option 2: Create .env file: cp .env.example .env (then edit with your key)",
		}
		return r, nil
	}

	masked := MaskKey(key)
	r.ok("%s is set (%s)", config.EnvAPIKey, masked)
	r.Data = map[string]string{"masked": masked, "source": source}
	if failed := r.failedItems(); failed > 0 {
		r.Summary = fmt.Sprintf("%s is set but the configuration has %d error(s)", config.EnvAPIKey, failed)
		r.Hints = []string{"Fix the reported values, or rewrite .env with: elevenlabs-mcp init --force"}
		return r, nil
	}
	r.Passed = true
	r.Summary = fmt.Sprintf("%s is set (%s)", config.EnvAPIKey, masked)
	return r, nil
}

// unjoin flattens an errors.Join tree into its leaves.
func unjoin(err error) []error {
	if err == nil {
		return nil
	}
	joined, ok := err.(interface{ Unwrap() []error })
	if !ok {
		return []error{err}
	}
	var out []error
	for _, e := range joined.Unwrap() {
		out = append(out, unjoin(e)...)
	}
	return out
}

// MaskKey hides all but the first 8 and last 4 characters of keys longer
// than 12 characters; shorter keys are fully hidden. Lengths count runes.
func MaskKey(key string) string {
	runes := []rune(key)
	if len(runes) > 12 {
		return string(runes[:8]) + "..." + string(runes[len(runes)-4:])
	}
	return "***"
}
