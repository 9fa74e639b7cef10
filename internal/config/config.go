// Package config loads elevenlabs-mcp settings from built-in defaults, an
// optional .elevenlabs-mcp.yaml project file, an optional .env file and the
// process environment, in increasing order of precedence.
//
// Loading never mutates the process environment: the .env file is read into
// a map and consulted after os.Getenv.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/spboyer/elevenlabs-mcp/internal/validation"
)

// Default values. These are the single source of truth; New() references
// them and no other code should duplicate them.
const (
	DefaultBaseURL           = "https://api.elevenlabs.io"
	DefaultVoiceID           = "JBFqnCBsd6RMkjVDRZzb" // George
	DefaultModelID           = "eleven_multilingual_v2"
	DefaultOutputFormat      = "mp3_44100_128"
	DefaultOutputDir         = "./audio_output"
	DefaultTimeout           = 60 * time.Second
	DefaultRequestsPerSecond = 2.0
	DefaultLogLevel          = "info"

	DefaultEnvFile     = ".env"
	ProjectConfigFile  = ".elevenlabs-mcp.yaml"
	maxConfigWalkDepth = 10
)

// Environment variable names.
const (
	EnvAPIKey            = "ELEVENLABS_API_KEY"
	EnvBaseURL           = "ELEVENLABS_BASE_URL"
	EnvDefaultVoiceID    = "ELEVENLABS_DEFAULT_VOICE_ID"
	EnvDefaultModelID    = "ELEVENLABS_DEFAULT_MODEL_ID"
	EnvOutputFormat      = "ELEVENLABS_OUTPUT_FORMAT"
	EnvOutputDir         = "ELEVENLABS_OUTPUT_DIR"
	EnvTimeoutSeconds    = "ELEVENLABS_TIMEOUT_SECONDS"
	EnvRequestsPerSecond = "ELEVENLABS_REQUESTS_PER_SECOND"
	EnvLogLevel          = "LOG_LEVEL"
)

// Config is the fully resolved runtime configuration.
type Config struct {
	APIKey            string
	BaseURL           string
	DefaultVoiceID    string
	DefaultModelID    string
	OutputFormat      string
	OutputDir         string
	Timeout           time.Duration
	RequestsPerSecond float64
	LogLevel          string

	// EnvFile is the .env path that was consulted and EnvFileFound reports
	// whether it existed.
	EnvFile      string
	EnvFileFound bool
}

// HasAPIKey reports whether an API key was resolved from any source.
func (c *Config) HasAPIKey() bool {
	return c.APIKey != ""
}

// ProjectConfig mirrors .elevenlabs-mcp.yaml. Only non-zero fields override
// the defaults.
type ProjectConfig struct {
	BaseURL           string  `yaml:"base_url,omitempty"`
	DefaultVoiceID    string  `yaml:"default_voice_id,omitempty"`
	DefaultModelID    string  `yaml:"default_model_id,omitempty"`
	OutputFormat      string  `yaml:"output_format,omitempty"`
	OutputDir         string  `yaml:"output_dir,omitempty"`
	TimeoutSeconds    int     `yaml:"timeout_seconds,omitempty"`
	RequestsPerSecond float64 `yaml:"requests_per_second,omitempty"`
	LogLevel          string  `yaml:"log_level,omitempty"`
}

// Options controls where Load looks for its inputs.
type Options struct {
	// Dir is the working directory used to resolve relative paths and to
	// start the project file search. Defaults to ".".
	Dir string
	// EnvFile is the .env path. Relative paths are resolved against Dir.
	// Defaults to DefaultEnvFile.
	EnvFile string
	// Getenv defaults to os.Getenv.
	Getenv func(string) string
}

// New returns a Config with all hard-coded defaults populated.
func New() *Config {
	return &Config{
		BaseURL:           DefaultBaseURL,
		DefaultVoiceID:    DefaultVoiceID,
		DefaultModelID:    DefaultModelID,
		OutputFormat:      DefaultOutputFormat,
		OutputDir:         DefaultOutputDir,
		Timeout:           DefaultTimeout,
		RequestsPerSecond: DefaultRequestsPerSecond,
		LogLevel:          DefaultLogLevel,
		EnvFile:           DefaultEnvFile,
	}
}

// Load resolves the configuration. A missing .env or project file is not an
// error; unreadable or malformed ones are. Load always returns a usable
// Config: a source that fails is skipped, invalid values keep their
// defaults, and every problem is reported in the joined error.
func Load(opts Options) (*Config, error) {
	if opts.Dir == "" {
		opts.Dir = "."
	}
	if opts.EnvFile == "" {
		opts.EnvFile = DefaultEnvFile
	}
	if opts.Getenv == nil {
		opts.Getenv = os.Getenv
	}

	cfg := New()
	var errs []error

	project, err := loadProjectConfig(opts.Dir)
	if err != nil {
		errs = append(errs, err)
	}
	if project != nil {
		mergeProject(cfg, project)
	}

	envPath := opts.EnvFile
	if !filepath.IsAbs(envPath) {
		envPath = filepath.Join(opts.Dir, envPath)
	}
	cfg.EnvFile = envPath

	dotenv, found, err := ReadEnvFile(envPath)
	if err != nil {
		errs = append(errs, err)
	}
	cfg.EnvFileFound = found

	lookup := func(key string) string {
		if v := opts.Getenv(key); v != "" {
			return v
		}
		return dotenv[key]
	}

	cfg.APIKey = lookup(EnvAPIKey)
	setString(&cfg.BaseURL, lookup(EnvBaseURL))
	setString(&cfg.DefaultVoiceID, lookup(EnvDefaultVoiceID))
	setString(&cfg.DefaultModelID, lookup(EnvDefaultModelID))
	setString(&cfg.OutputFormat, lookup(EnvOutputFormat))
	setString(&cfg.OutputDir, lookup(EnvOutputDir))
	setString(&cfg.LogLevel, lookup(EnvLogLevel))

	if v := lookup(EnvTimeoutSeconds); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil || secs <= 0 {
			errs = append(errs, fmt.Errorf("%s must be a positive integer, got %q", EnvTimeoutSeconds, v))
		} else {
			cfg.Timeout = time.Duration(secs) * time.Second
		}
	}
	if v := lookup(EnvRequestsPerSecond); v != "" {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil || rps <= 0 {
			errs = append(errs, fmt.Errorf("%s must be a positive number, got %q", EnvRequestsPerSecond, v))
		} else {
			cfg.RequestsPerSecond = rps
		}
	}

	if !filepath.IsAbs(cfg.OutputDir) {
		cfg.OutputDir = filepath.Join(opts.Dir, cfg.OutputDir)
	}

	return cfg, errors.Join(errs...)
}

// ReadEnvFile parses a .env file into a map. found is false when the file
// does not exist.
func ReadEnvFile(path string) (values map[string]string, found bool, err error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, false, nil
		}
		return nil, false, fmt.Errorf("checking %s: %w", path, err)
	}
	values, err = godotenv.Read(path)
	if err != nil {
		return nil, true, fmt.Errorf("parsing %s: %w", path, err)
	}
	return values, true, nil
}

// loadProjectConfig walks up from dir looking for ProjectConfigFile.
// Returns nil with no error when none is found.
func loadProjectConfig(dir string) (*ProjectConfig, error) {
	data, err := findProjectFile(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("loading %s: %w", ProjectConfigFile, err)
	}

	if errs := validation.ValidateProjectConfigBytes(data); len(errs) > 0 {
		return nil, fmt.Errorf("invalid %s: %s", ProjectConfigFile, strings.Join(errs, "; "))
	}

	var pc ProjectConfig
	if err := yaml.Unmarshal(data, &pc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", ProjectConfigFile, err)
	}
	return &pc, nil
}

func findProjectFile(dir string) ([]byte, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path %q: %w", dir, err)
	}
	dir = absDir

	for i := 0; i < maxConfigWalkDepth; i++ {
		p := filepath.Join(dir, ProjectConfigFile)
		data, err := os.ReadFile(p)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading %q: %w", p, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return nil, os.ErrNotExist
}

func mergeProject(dst *Config, src *ProjectConfig) {
	setString(&dst.BaseURL, src.BaseURL)
	setString(&dst.DefaultVoiceID, src.DefaultVoiceID)
	setString(&dst.DefaultModelID, src.DefaultModelID)
	setString(&dst.OutputFormat, src.OutputFormat)
	setString(&dst.OutputDir, src.OutputDir)
	setString(&dst.LogLevel, src.LogLevel)
	if src.TimeoutSeconds > 0 {
		dst.Timeout = time.Duration(src.TimeoutSeconds) * time.Second
	}
	if src.RequestsPerSecond > 0 {
		dst.RequestsPerSecond = src.RequestsPerSecond
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
