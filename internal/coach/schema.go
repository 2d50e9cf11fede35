package coach

import "github.com/JeyrellT/pl300/internal/llm"

// ExplanationSchema defines the JSON schema for coach responses.
var ExplanationSchema = &llm.Schema{
	Name:        "question-explanation",
	Description: "An in-depth explanation of a PL-300 practice question",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"summary": map[string]any{
				"type":        "string",
				"description": "One or two sentences stating the core idea the question tests, in Spanish",
			},
			"why_correct": map[string]any{
				"type":        "string",
				"description": "Why the correct option is right, in Spanish",
			},
			"why_others_wrong": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "string",
				},
				"description": "One entry per incorrect option explaining why it is wrong, in option order",
			},
			"key_concepts": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "string",
				},
				"description": "Short names of the Power BI concepts involved",
			},
			"study_tip": map[string]any{
				"type":        "string",
				"description": "A concrete suggestion for practicing this topic",
			},
		},
		"required":             []any{"summary", "why_correct", "why_others_wrong", "key_concepts", "study_tip"},
		"additionalProperties": false,
	},
}
