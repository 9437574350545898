package request

import (
	"maps"
	"slices"

	"google.golang.org/genai"

	"github.com/nao1215/wcagaudit/internal/model"
)

// ReportSchema returns the response schema for model.Report.
// Every object lists all of its properties as required.
func ReportSchema() *genai.Schema {
	return object(map[string]*genai.Schema{
		"meta": object(map[string]*genai.Schema{
			"client":    str(""),
			"website":   str(""),
			"date":      str(""),
			"version":   str(""),
			"inspector": str(""),
		}),
		"executiveSummary": str("Een beknopte samenvatting in het Nederlands van de auditresultaten."),
		"summary": object(map[string]*genai.Schema{
			"wcag21": edition(),
			"wcag22": edition(),
		}),
		"principles": array(object(map[string]*genai.Schema{
			"id":          str(""),
			"name":        str(""),
			"description": str(""),
			"criteria": array(object(map[string]*genai.Schema{
				"id":          str(""),
				"name":        str(""),
				"description": str(""),
				"level":       enum(string(model.LevelA), string(model.LevelAA)),
				"result":      enum(resultValues()...),
				"findings": array(object(map[string]*genai.Schema{
					"description":      str(""),
					"location":         str(""),
					"technicalDetails": str(""),
					"solution":         str(""),
				})),
			})),
		})),
	})
}

func edition() *genai.Schema {
	return object(map[string]*genai.Schema{
		"levelA":  score(),
		"levelAA": score(),
		"total":   score(),
	})
}

func score() *genai.Schema {
	zero := 0.0
	return object(map[string]*genai.Schema{
		"passed": {Type: genai.TypeInteger, Minimum: &zero},
		"total":  {Type: genai.TypeInteger, Minimum: &zero},
	})
}

func object(props map[string]*genai.Schema) *genai.Schema {
	return &genai.Schema{
		Type:       genai.TypeObject,
		Properties: props,
		Required:   sortedKeys(props),
	}
}

func array(items *genai.Schema) *genai.Schema {
	return &genai.Schema{Type: genai.TypeArray, Items: items}
}

func str(description string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeString, Description: description}
}

func enum(values ...string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeString, Format: "enum", Enum: values}
}

func resultValues() []string {
	results := model.Results()
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = string(r)
	}
	return out
}

func sortedKeys(m map[string]*genai.Schema) []string {
	return slices.Sorted(maps.Keys(m))
}
