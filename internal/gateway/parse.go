package gateway

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/skillcheck-ai/skillcheck-api/internal/ingestion"
	"github.com/skillcheck-ai/skillcheck-api/internal/quiz"
	"github.com/xeipuuv/gojsonschema"
)

const resumeSchema = `{
	"type": "object",
	"properties": {
		"name": {"type": "string", "minLength": 1},
		"skills": {"type": "array", "items": {"type": "string"}},
		"experience": {"type": "array", "items": {"type": "string"}}
	},
	"required": ["name", "skills", "experience"]
}`

const closedQuizSchema = `{
	"type": "object",
	"properties": {
		"questions": {
			"type": "array",
			"minItems": 1,
			"items": {
				"type": "object",
				"properties": {
					"question": {"type": "string", "minLength": 1},
					"options": {
						"type": "array",
						"minItems": 4,
						"maxItems": 4,
						"items": {"type": "string"}
					},
					"correctAnswer": {"type": "string"}
				},
				"required": ["question", "options", "correctAnswer"]
			}
		}
	},
	"required": ["questions"]
}`

const openQuizSchema = `{
	"type": "object",
	"properties": {
		"questions": {
			"type": "array",
			"minItems": 1,
			"items": {
				"type": "object",
				"properties": {
					"question": {"type": "string", "minLength": 1}
				},
				"required": ["question"]
			}
		}
	},
	"required": ["questions"]
}`

const scoresSchema = `{
	"type": "object",
	"properties": {
		"scores": {
			"type": "array",
			"items": {"type": "integer", "minimum": 0, "maximum": 10}
		}
	},
	"required": ["scores"]
}`

// stripFences removes the markdown code fences models like to wrap JSON in.
func stripFences(raw string) string {
	clean := strings.TrimSpace(raw)
	clean = strings.TrimPrefix(clean, "```json")
	clean = strings.TrimSuffix(clean, "```")
	return strings.Trim(clean, "` \n")
}

// decodeValidated checks the payload against the schema before unmarshaling.
func decodeValidated(raw, schema string, v any) error {
	clean := stripFences(raw)
	if clean == "" {
		return fmt.Errorf("empty model response")
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schema),
		gojsonschema.NewStringLoader(clean),
	)
	if err != nil {
		return fmt.Errorf("response is not valid JSON: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return fmt.Errorf("response failed schema validation: %s", strings.Join(msgs, "; "))
	}

	return json.Unmarshal([]byte(clean), v)
}

func parseResume(raw string) (ingestion.ResumeData, error) {
	var data ingestion.ResumeData
	if err := decodeValidated(raw, resumeSchema, &data); err != nil {
		return ingestion.ResumeData{}, err
	}
	return data, nil
}

func parseClosedQuestions(raw string) ([]quiz.Question, error) {
	var payload struct {
		Questions []quiz.ClosedQuestion `json:"questions"`
	}
	if err := decodeValidated(raw, closedQuizSchema, &payload); err != nil {
		return nil, err
	}

	questions := make([]quiz.Question, 0, len(payload.Questions))
	for i, q := range payload.Questions {
		if !containsOption(q.Options, q.CorrectAnswer) {
			return nil, fmt.Errorf("question %d: correct answer not among the options", i+1)
		}
		questions = append(questions, q)
	}
	return questions, nil
}

func parseOpenQuestions(raw string) ([]quiz.Question, error) {
	var payload struct {
		Questions []quiz.OpenQuestion `json:"questions"`
	}
	if err := decodeValidated(raw, openQuizSchema, &payload); err != nil {
		return nil, err
	}

	questions := make([]quiz.Question, 0, len(payload.Questions))
	for _, q := range payload.Questions {
		questions = append(questions, q)
	}
	return questions, nil
}

func parseScores(raw string, want int) ([]int, error) {
	var payload struct {
		Scores []int `json:"scores"`
	}
	if err := decodeValidated(raw, scoresSchema, &payload); err != nil {
		return nil, err
	}
	if len(payload.Scores) != want {
		return nil, fmt.Errorf("got %d scores for %d answers", len(payload.Scores), want)
	}
	return payload.Scores, nil
}

func containsOption(options []string, answer string) bool {
	for _, option := range options {
		if option == answer {
			return true
		}
	}
	return false
}
