package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/akash62835/ResumeRAG/internal/domain"
)

// extractMaxChars caps the resume text sent to the chat model.
const extractMaxChars = 15000

const extractPrompt = `Extract structured information from the following resume text. Return ONLY valid JSON with no additional text or markdown formatting.

Resume Text:
%s

Extract and return a JSON object with this exact structure:
{
  "name": "Full name of the candidate",
  "email": "Email address",
  "phone": "Phone number",
  "location": "City, State or location",
  "summary": "Professional summary or objective",
  "skills": ["skill1", "skill2"],
  "experience": [
    {"company": "", "position": "", "start_date": "", "end_date": "", "description": ""}
  ],
  "education": [
    {"institution": "", "degree": "", "field": "", "graduation_date": ""}
  ],
  "certifications": ["cert1"],
  "languages": ["language1"]
}

If a field is not found, use an empty string for strings and an empty array for arrays.`

// Extractor extracts structured resume fields via chat completions.
type Extractor struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

// ExtractorConfig holds the chat extraction settings.
type ExtractorConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Logger  *zap.Logger
}

// NewExtractor creates a chat-completion resume extractor.
func NewExtractor(cfg *ExtractorConfig) *Extractor {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
		logger: logger,
	}
}

// Extract asks the chat model for structured fields. Model chatter around the
// JSON (code fences, prose) is stripped before unmarshaling.
func (e *Extractor) Extract(ctx context.Context, resumeText string) (domain.ParsedData, error) {
	if len(resumeText) > extractMaxChars {
		cut := extractMaxChars
		for cut > 0 && !utf8.RuneStart(resumeText[cut]) {
			cut--
		}
		resumeText = resumeText[:cut]
	}

	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: e.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf(extractPrompt, resumeText),
			},
		},
	})
	if err != nil {
		return domain.ParsedData{}, fmt.Errorf("chat completion: %w: %w", domain.ErrExtractionFailed, err)
	}
	if len(resp.Choices) == 0 {
		return domain.ParsedData{}, fmt.Errorf("empty chat response: %w", domain.ErrExtractionFailed)
	}

	var parsed domain.ParsedData
	raw := stripCodeFences(resp.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		e.logger.Warn("extraction response is not valid JSON", zap.Error(err))
		return domain.ParsedData{}, fmt.Errorf("parse extraction response: %w: %w", domain.ErrExtractionFailed, err)
	}
	return parsed, nil
}

// stripCodeFences removes markdown code fences the model wraps JSON in.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}
