package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/prepwise/prepwise/config"
	"github.com/prepwise/prepwise/internal/dto"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

const geminiModelName = "gemini-2.0-flash-001"

// feedbackSchema declares the exact shape structured feedback generation must
// return: field names, types, and the enum domains for priority and
// performanceLevel. The backend is asked for JSON conforming to this schema;
// anything else fails the call.
var feedbackSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"totalScore": {Type: genai.TypeNumber, Description: "Overall score from 0 to 100"},
		"categoryScores": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"name":      {Type: genai.TypeString},
					"score":     {Type: genai.TypeNumber, Description: "Category score from 0 to 100"},
					"comment":   {Type: genai.TypeString},
					"keyPoints": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
					"priority":  {Type: genai.TypeString, Enum: []string{"high", "medium", "low"}},
				},
				Required: []string{"name", "score", "comment"},
			},
		},
		"strengths":           {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		"areasForImprovement": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		"finalAssessment":     {Type: genai.TypeString},
		"detailedInsights": {
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"communicationStyle":     {Type: genai.TypeString},
				"technicalDepth":         {Type: genai.TypeString},
				"problemSolvingApproach": {Type: genai.TypeString},
				"overallReadiness":       {Type: genai.TypeString},
			},
		},
		"nextSteps": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		"industryBenchmark": {
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"performanceLevel": {
					Type: genai.TypeString,
					Enum: []string{"below_average", "average", "above_average", "excellent"},
				},
				"comparison": {Type: genai.TypeString},
			},
			Required: []string{"performanceLevel"},
		},
	},
	Required: []string{"totalScore", "categoryScores", "strengths", "areasForImprovement", "finalAssessment"},
}

// GeminiLLMService wraps the text-generation backend. Every call is a single
// attempt; failures surface as ErrGeneration, never as partial objects.
type GeminiLLMService interface {
	GenerateStructuredFeedback(prompt, system string) (*dto.GeneratedFeedback, error)
	GenerateText(prompt, system string) (string, error)
}

type geminiLLMService struct {
	client *genai.Client
	cfg    *config.Config
}

func NewGeminiLLMService(cfg *config.Config) (GeminiLLMService, error) {
	if cfg.GeminiApiKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set. GeminiLLMService will be non-functional.")
		return &geminiLLMService{cfg: cfg, client: nil}, nil
	}
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiApiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	return &geminiLLMService{client: client, cfg: cfg}, nil
}

// GenerateStructuredFeedback requests JSON output conforming to
// feedbackSchema and parses it. Range/enum validation happens one layer up in
// FeedbackValidator; this method only guarantees structural JSON.
func (s *geminiLLMService) GenerateStructuredFeedback(prompt, system string) (*dto.GeneratedFeedback, error) {
	if s.client == nil {
		return nil, fmt.Errorf("%w: gemini client not initialized", ErrGeneration)
	}

	ctx := context.Background()
	model := s.client.GenerativeModel(geminiModelName)
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = feedbackSchema
	if system != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(system)}}
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		log.Error().Err(err).Msg("Gemini API error during structured feedback generation")
		return nil, fmt.Errorf("%w: %s", ErrGeneration, err.Error())
	}

	raw, err := responseText(resp)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrGeneration, err.Error())
	}

	var feedback dto.GeneratedFeedback
	if err := json.Unmarshal([]byte(StripCodeFences(raw)), &feedback); err != nil {
		log.Warn().Err(err).Str("rawResponse", raw).Msg("Failed to parse structured feedback from Gemini response")
		return nil, fmt.Errorf("%w: response did not conform to the feedback schema", ErrGeneration)
	}
	return &feedback, nil
}

func (s *geminiLLMService) GenerateText(prompt, system string) (string, error) {
	if s.client == nil {
		return "", fmt.Errorf("%w: gemini client not initialized", ErrGeneration)
	}

	ctx := context.Background()
	model := s.client.GenerativeModel(geminiModelName)
	if system != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(system)}}
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		log.Error().Err(err).Msg("Gemini API error during text generation")
		return "", fmt.Errorf("%w: %s", ErrGeneration, err.Error())
	}

	return responseText(resp)
}

// responseText concatenates the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		log.Warn().Msg("Gemini returned no candidates or parts in response.")
		return "", fmt.Errorf("%w: gemini returned no content", ErrGeneration)
	}

	fullResponseText := ""
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			fullResponseText += string(txt)
		}
	}
	if fullResponseText == "" {
		return "", fmt.Errorf("%w: gemini returned no text content", ErrGeneration)
	}
	return fullResponseText, nil
}

// StripCodeFences removes a leading ```json (or bare ```) fence and a
// trailing ``` so fenced model output still parses as JSON.
func StripCodeFences(raw string) string {
	cleaned := strings.TrimSpace(raw)
	if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimPrefix(cleaned, "```JSON")
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSuffix(strings.TrimSpace(cleaned), "```")
	}
	return strings.TrimSpace(cleaned)
}
