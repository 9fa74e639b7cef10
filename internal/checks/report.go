package checks

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Report is the JSON form of a check run.
type Report struct {
	Passed  bool           `json:"passed"`
	Tally   Tally          `json:"tally"`
	Results []*CheckResult `json:"results"`
}

// NewReport tallies results into a Report.
func NewReport(results []*CheckResult) Report {
	t := Summarize(results)
	return Report{Passed: t.AllPassed(), Tally: t, Results: results}
}

// WriteJSON writes the report as indented JSON.
func (r Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteText writes each check's items followed by the summary and next steps.
func (r Report) WriteText(w io.Writer) error {
	var b strings.Builder
	b.WriteString("ElevenLabs MCP Server - Setup Validation\n")
	b.WriteString(strings.Repeat("=", 40) + "\n")

	for i, res := range r.Results {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(res.Title + "\n")
		for _, item := range res.Items {
			b.WriteString(mark(item.OK) + " " + item.Text + "\n")
		}
		for _, h := range res.Hints {
			b.WriteString("  " + h + "\n")
		}
	}

	rule := strings.Repeat("=", 50)
	fmt.Fprintf(&b, "\n%s\nTest Summary:\n%s\n", rule, rule)
	if r.Tally.AllPassed() {
		fmt.Fprintf(&b, "✓ All tests passed (%d/%d)\n", r.Tally.Passed, r.Tally.Total)
		b.WriteString("\nYou're ready to run the server!\n")
		b.WriteString("Start with: elevenlabs-mcp serve\n")
	} else {
		fmt.Fprintf(&b, "✗ %d test(s) failed (%d/%d passed)\n", r.Tally.Failed(), r.Tally.Passed, r.Tally.Total)
		b.WriteString("\nPlease fix the issues above before running the server.\n")
	}

	b.WriteString("\nNext Steps:\n")
	if !r.keyFound() {
		b.WriteString("1. Get your API key from: https://elevenlabs.io/app/speech-synthesis\n")
		b.WriteString("2. Set the environment variable: export ELEVENLABS_API_KEY='your_key'\n")
	}
	if !r.Tally.AllPassed() {
		b.WriteString("3. Install missing dependencies: go mod download\n")
	}
	b.WriteString("4. Run the server: elevenlabs-mcp serve\n")
	b.WriteString("5. Test with examples: elevenlabs-mcp examples\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func (r Report) keyFound() bool {
	for _, res := range r.Results {
		if res.Name == "api-key" {
			return res.Passed
		}
	}
	return false
}

func mark(ok bool) string {
	if ok {
		return "✓"
	}
	return "✗"
}
