// Package wizard collects ElevenLabs settings interactively and writes them
// to a .env file.
package wizard

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/joho/godotenv"
	"golang.org/x/term"

	"github.com/spboyer/elevenlabs-mcp/internal/config"
	"github.com/spboyer/elevenlabs-mcp/internal/elevenlabs"
)

// ErrEnvFileExists is returned by WriteEnvFile when the target exists and
// overwriting was not requested.
var ErrEnvFileExists = errors.New("env file already exists")

// Answers holds the values collected by the wizard.
type Answers struct {
	APIKey       string
	VoiceID      string
	ModelID      string
	OutputFormat string
	OutputDir    string
}

// DefaultAnswers returns Answers prefilled from cfg.
func DefaultAnswers(cfg *config.Config) Answers {
	return Answers{
		APIKey:       cfg.APIKey,
		VoiceID:      cfg.DefaultVoiceID,
		ModelID:      cfg.DefaultModelID,
		OutputFormat: cfg.OutputFormat,
		OutputDir:    config.DefaultOutputDir,
	}
}

// Run shows the settings form on out, reading answers from in. Fields
// start from defaults.
func Run(in io.Reader, out io.Writer, defaults Answers) (*Answers, error) {
	a := defaults
	tty := isTerminal(in)

	formatOptions := make([]huh.Option[string], 0, len(elevenlabs.OutputFormats))
	for _, f := range elevenlabs.OutputFormats {
		formatOptions = append(formatOptions, huh.NewOption(f, f))
	}

	key := huh.NewInput().
		Title("ElevenLabs API key").
		Description("Find it at https://elevenlabs.io/app/speech-synthesis").
		Value(&a.APIKey).
		Validate(func(s string) error {
			if strings.TrimSpace(s) == "" {
				return errors.New("API key is required")
			}
			return nil
		})
	// Masked input needs a terminal in accessible mode.
	if tty {
		key = key.EchoMode(huh.EchoModePassword)
	}

	form := huh.NewForm(
		huh.NewGroup(
			key,
			huh.NewInput().
				Title("Default voice ID").
				Value(&a.VoiceID),
			huh.NewInput().
				Title("Default model ID").
				Value(&a.ModelID),
			huh.NewSelect[string]().
				Title("Output format").
				Options(formatOptions...).
				Value(&a.OutputFormat),
			huh.NewInput().
				Title("Output directory").
				Value(&a.OutputDir),
		),
	).
		WithInput(in).
		WithOutput(out)

	if !tty {
		form = form.WithAccessible(true)
	}

	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("wizard failed: %w", err)
	}
	a.APIKey = strings.TrimSpace(a.APIKey)
	return &a, nil
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Entries maps the answers onto environment variable names. Empty values
// are left out.
func (a Answers) Entries() map[string]string {
	entries := map[string]string{}
	for k, v := range map[string]string{
		config.EnvAPIKey:         a.APIKey,
		config.EnvDefaultVoiceID: a.VoiceID,
		config.EnvDefaultModelID: a.ModelID,
		config.EnvOutputFormat:   a.OutputFormat,
		config.EnvOutputDir:      a.OutputDir,
	} {
		if v = strings.TrimSpace(v); v != "" {
			entries[k] = v
		}
	}
	return entries
}

// WriteEnvFile writes the answers to path. An existing file is only
// replaced when force is set.
func WriteEnvFile(path string, a Answers, force bool) error {
	if a.APIKey == "" {
		return errors.New("API key is required")
	}
	if a.OutputFormat != "" && !elevenlabs.IsOutputFormat(a.OutputFormat) {
		return fmt.Errorf("unsupported output format %q", a.OutputFormat)
	}
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s (use --force to overwrite)", ErrEnvFileExists, path)
		}
	}
	if err := godotenv.Write(a.Entries(), path); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return os.Chmod(path, 0o600)
}
