// Package validation checks MCP tool arguments and the project config file
// against JSON Schemas.
package validation

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

// defaultPrinter is used to format schema validation error messages.
var defaultPrinter = message.NewPrinter(language.English)

// projectConfigSchemaJSON describes .elevenlabs-mcp.yaml.
const projectConfigSchemaJSON = `{
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "base_url":            {"type": "string", "pattern": "^https?://"},
    "default_voice_id":    {"type": "string", "minLength": 1},
    "default_model_id":    {"type": "string", "minLength": 1},
    "output_format":       {"type": "string", "pattern": "^[a-z0-9]+(_[0-9]+)*$"},
    "output_dir":          {"type": "string", "minLength": 1},
    "timeout_seconds":     {"type": "integer", "minimum": 1},
    "requests_per_second": {"type": "number", "exclusiveMinimum": 0},
    "log_level":           {"enum": ["debug", "info", "warn", "error"]}
  }
}`

// projectConfigSchema is the compiled schema for .elevenlabs-mcp.yaml.
var projectConfigSchema *jsonschema.Schema

func init() {
	projectConfigSchema = mustCompileSchema(projectConfigSchemaJSON, "project-config.schema.json")
}

func mustCompileSchema(raw string, name string) *jsonschema.Schema {
	sch, err := compileSchema([]byte(raw), name)
	if err != nil {
		panic(err.Error())
	}
	return sch
}

func compileSchema(raw []byte, name string) (*jsonschema.Schema, error) {
	var schemaDoc any
	if err := json.Unmarshal(raw, &schemaDoc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, schemaDoc); err != nil {
		return nil, fmt.Errorf("failed to add %s resource: %w", name, err)
	}

	sch, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to compile %s: %w", name, err)
	}
	return sch, nil
}

// ToolValidator validates tools/call arguments against each tool's input
// schema.
type ToolValidator struct {
	schemas map[string]*jsonschema.Schema
}

// NewToolValidator compiles the input schema of every tool.
func NewToolValidator(tools []mcp.Tool) (*ToolValidator, error) {
	v := &ToolValidator{schemas: make(map[string]*jsonschema.Schema, len(tools))}
	for _, tool := range tools {
		data, err := json.Marshal(tool)
		if err != nil {
			return nil, fmt.Errorf("encoding tool %s: %w", tool.Name, err)
		}
		var doc struct {
			InputSchema json.RawMessage `json:"inputSchema"`
		}
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decoding tool %s: %w", tool.Name, err)
		}
		sch, err := compileSchema(doc.InputSchema, tool.Name+".schema.json")
		if err != nil {
			return nil, err
		}
		v.schemas[tool.Name] = sch
	}
	return v, nil
}

// Validate returns one message per violation, or nil when args conform.
// Unknown tools are not validated.
func (v *ToolValidator) Validate(tool string, args map[string]any) []string {
	sch, ok := v.schemas[tool]
	if !ok {
		return nil
	}
	if args == nil {
		args = map[string]any{}
	}
	return validateAgainstSchema(sch, convertToJSONCompatible(args))
}

// ValidateProjectConfigBytes validates raw .elevenlabs-mcp.yaml contents.
func ValidateProjectConfigBytes(data []byte) []string {
	return validateYAMLBytes(projectConfigSchema, data)
}

func validateYAMLBytes(schema *jsonschema.Schema, data []byte) []string {
	var yamlDoc any
	if err := yaml.Unmarshal(data, &yamlDoc); err != nil {
		return []string{fmt.Sprintf("YAML parse error: %v", err)}
	}
	if yamlDoc == nil {
		// Empty file.
		yamlDoc = map[string]any{}
	}

	return validateAgainstSchema(schema, convertToJSONCompatible(yamlDoc))
}

func validateAgainstSchema(schema *jsonschema.Schema, instance any) []string {
	err := schema.Validate(instance)
	if err == nil {
		return nil
	}
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return []string{fmt.Sprintf("schema: %v", err)}
	}
	var errs []string
	collectSchemaErrors(ve, &errs)
	return errs
}

func collectSchemaErrors(ve *jsonschema.ValidationError, errs *[]string) {
	if len(ve.Causes) == 0 {
		loc := "/"
		if len(ve.InstanceLocation) > 0 {
			loc = "/" + strings.Join(ve.InstanceLocation, "/")
		}
		*errs = append(*errs, fmt.Sprintf("%s: %s", loc, ve.ErrorKind.LocalizedString(defaultPrinter)))
		return
	}
	for _, c := range ve.Causes {
		collectSchemaErrors(c, errs)
	}
}

// convertToJSONCompatible normalizes decoded values into the shapes the
// validator understands: map[string]any, []any and scalars.
func convertToJSONCompatible(v any) any {
	switch val := v.(type) {
	case map[string]any:
		result := make(map[string]any, len(val))
		for k, v2 := range val {
			result[k] = convertToJSONCompatible(v2)
		}
		return result
	case map[string]string:
		result := make(map[string]any, len(val))
		for k, v2 := range val {
			result[k] = v2
		}
		return result
	case []any:
		result := make([]any, len(val))
		for i, v2 := range val {
			result[i] = convertToJSONCompatible(v2)
		}
		return result
	case []string:
		result := make([]any, len(val))
		for i, v2 := range val {
			result[i] = v2
		}
		return result
	default:
		return val
	}
}
