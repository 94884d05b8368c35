package reasoning

import (
	"fmt"

	"cloud.google.com/go/vertexai/genai"
	"github.com/google/jsonschema-go/jsonschema"
)

// toGenaiSchema maps the JSON Schema subset produced for tool arguments onto
// the OpenAPI flavour Vertex accepts. A "null" alternative becomes Nullable;
// maps (additionalProperties only) degrade to a bare object.
func toGenaiSchema(s *jsonschema.Schema) *genai.Schema {
	if s == nil {
		return nil
	}
	out := &genai.Schema{Description: s.Description}

	typ := s.Type
	for _, t := range s.Types {
		if t == "null" {
			out.Nullable = true
			continue
		}
		if typ == "" {
			typ = t
		}
	}

	switch typ {
	case "object":
		out.Type = genai.TypeObject
		if len(s.Properties) > 0 {
			out.Properties = make(map[string]*genai.Schema, len(s.Properties))
			for name, prop := range s.Properties {
				out.Properties[name] = toGenaiSchema(prop)
			}
		}
		if len(s.Required) > 0 {
			out.Required = append([]string(nil), s.Required...)
		}
	case "array":
		out.Type = genai.TypeArray
		out.Items = toGenaiSchema(s.Items)
	case "string":
		out.Type = genai.TypeString
	case "integer":
		out.Type = genai.TypeInteger
	case "number":
		out.Type = genai.TypeNumber
	case "boolean":
		out.Type = genai.TypeBoolean
	}

	for _, e := range s.Enum {
		out.Enum = append(out.Enum, fmt.Sprint(e))
	}
	return out
}

func toFunctionDeclarations(tools []ToolSchema) []*genai.FunctionDeclaration {
	out := make([]*genai.FunctionDeclaration, 0, len(tools))
	for _, t := range tools {
		out = append(out, &genai.FunctionDeclaration{
			Name:        t.Name,
			Description: t.Description,
			Parameters:  toGenaiSchema(t.Parameters),
		})
	}
	return out
}
