package generate

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Response schemas, one per generation variant. Validation happens before
// unmarshaling so a structurally wrong response never reaches the typed
// domain records.

const careerAnalysisSchema = `{
	"type": "object",
	"required": ["roles"],
	"properties": {
		"roles": {
			"type": "object",
			"required": ["short", "mid", "long"],
			"properties": {
				"short": {"$ref": "#/definitions/roleList"},
				"mid": {"$ref": "#/definitions/roleList"},
				"long": {"$ref": "#/definitions/roleList"}
			}
		},
		"summary": {"type": "string"},
		"current_level": {"type": "string"}
	},
	"definitions": {
		"roleList": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["title"],
				"properties": {
					"title": {"type": "string", "minLength": 1},
					"domain": {"type": "string"},
					"salary_range": {"type": "string"},
					"match_score": {"type": "number"}
				}
			}
		}
	}
}`

const skillValidationSchema = `{
	"type": "object",
	"required": ["readiness_score", "matched_skills", "missing_skills"],
	"properties": {
		"readiness_score": {"type": "number", "minimum": 0, "maximum": 100},
		"matched_skills": {"type": "array", "items": {"type": "string"}},
		"missing_skills": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["skill"],
				"properties": {
					"skill": {"type": "string", "minLength": 1},
					"category": {"type": "string"},
					"priority": {"type": "string"},
					"learning_time": {"type": "string"}
				}
			}
		},
		"summary": {"type": "string"}
	}
}`

const learningPlanSchema = `{
	"type": "object",
	"required": ["steps"],
	"properties": {
		"steps": {
			"type": "array",
			"minItems": 1,
			"items": {
				"type": "object",
				"required": ["title"],
				"properties": {"title": {"type": "string", "minLength": 1}}
			}
		}
	}
}`

const projectIdeasSchema = `{
	"type": "object",
	"required": ["projects"],
	"properties": {
		"projects": {
			"type": "array",
			"minItems": 1,
			"items": {
				"type": "object",
				"required": ["title"],
				"properties": {
					"title": {"type": "string", "minLength": 1},
					"domain": {"type": "string"},
					"description": {"type": "string"}
				}
			}
		}
	}
}`

const projectPlanSchema = `{
	"type": "object",
	"required": ["phases"],
	"properties": {
		"phases": {
			"type": "array",
			"minItems": 1,
			"items": {
				"type": "object",
				"required": ["name", "tasks"],
				"properties": {
					"name": {"type": "string", "minLength": 1},
					"duration": {"type": "string"},
					"tasks": {
						"type": "array",
						"minItems": 1,
						"items": {
							"type": "object",
							"required": ["title"],
							"properties": {"title": {"type": "string", "minLength": 1}}
						}
					}
				}
			}
		}
	}
}`

const buildReviewSchema = `{
	"type": "object",
	"required": ["review"],
	"properties": {"review": {"type": "string", "minLength": 1}}
}`

const resumeUpgradeSchema = `{
	"type": "object",
	"required": ["content"],
	"properties": {"content": {"type": "string", "minLength": 1}}
}`

const jobMatchingSchema = `{
	"type": "object",
	"required": ["jobs"],
	"properties": {
		"jobs": {
			"type": "array",
			"minItems": 1,
			"items": {
				"type": "object",
				"required": ["title", "company"],
				"properties": {
					"title": {"type": "string", "minLength": 1},
					"company": {"type": "string", "minLength": 1},
					"location": {"type": "string"},
					"url": {"type": "string"},
					"relevance_score": {"type": "number"}
				}
			}
		}
	}
}`

const interviewPrepSchema = `{
	"type": "object",
	"required": ["questions"],
	"properties": {
		"questions": {
			"type": "array",
			"minItems": 1,
			"items": {
				"type": "object",
				"required": ["category", "question"],
				"properties": {
					"category": {"type": "string"},
					"question": {"type": "string", "minLength": 1},
					"model_answer": {"type": "string"},
					"tips": {"type": "string"}
				}
			}
		},
		"readiness_score": {"type": "number", "minimum": 0, "maximum": 100}
	}
}`

var schemasByAction = map[Action]*gojsonschema.Schema{
	ActionCareerAnalysis:  mustSchema(careerAnalysisSchema),
	ActionSkillValidation: mustSchema(skillValidationSchema),
	ActionLearningPlan:    mustSchema(learningPlanSchema),
	ActionProjectIdeas:    mustSchema(projectIdeasSchema),
	ActionProjectPlan:     mustSchema(projectPlanSchema),
	ActionProjectBuild:    mustSchema(buildReviewSchema),
	ActionResumeUpgrade:   mustSchema(resumeUpgradeSchema),
	ActionJobMatching:     mustSchema(jobMatchingSchema),
	ActionInterviewPrep:   mustSchema(interviewPrepSchema),
}

func mustSchema(raw string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(raw))
	if err != nil {
		panic(fmt.Sprintf("invalid embedded schema: %v", err))
	}
	return schema
}

// validateShape checks a raw response against the action's schema and
// converts any failure into InvalidResponseShapeError.
func validateShape(action Action, raw string) error {
	schema, ok := schemasByAction[action]
	if !ok {
		return fmt.Errorf("no schema registered for action %s", action)
	}
	result, err := schema.Validate(gojsonschema.NewStringLoader(raw))
	if err != nil {
		return &InvalidResponseShapeError{Action: action, Reason: err.Error()}
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return &InvalidResponseShapeError{Action: action, Reason: strings.Join(msgs, "; ")}
	}
	return nil
}
