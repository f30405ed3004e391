package validate

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Schema is a compiled JSON schema for one tool's arguments
type Schema struct {
	schema *gojsonschema.Schema
}

// CompileSchema compiles a tool input schema
func CompileSchema(def map[string]any) (*Schema, error) {
	s, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(def))
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}
	return &Schema{schema: s}, nil
}

// Validate checks args structurally: required fields, primitive types and
// enumerations. Value rules (ranges, non-empty text) are left to the Args
// accessors.
func (s *Schema) Validate(args Args) error {
	if s == nil {
		return nil
	}
	if args == nil {
		args = Args{}
	}

	result, err := s.schema.Validate(gojsonschema.NewGoLoader(map[string]any(args)))
	if err != nil {
		return &ParameterError{Reason: fmt.Sprintf("arguments are not valid JSON: %v", err)}
	}
	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, re := range result.Errors() {
		msgs = append(msgs, re.String())
	}
	return &ParameterError{Reason: strings.Join(msgs, "; ")}
}
