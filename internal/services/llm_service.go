package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"go.uber.org/zap"

	"github.com/jobtrail/jobtrail/internal/apperr"
	"github.com/jobtrail/jobtrail/internal/config"
	"github.com/jobtrail/jobtrail/internal/models"
)

// Input bounds keep request cost down; anything past the prefix is cut.
const (
	maxPostingLen     = 20000
	maxEmailLen       = 12000
	maxDescriptionLen = 4000
)

// LLMService is the stateless client for the structured-generation
// service. Each call is one request/response exchange: no retries, no
// caching. Service errors propagate so the caller can tell the operator
// to fill in manually.
type LLMService struct {
	client llms.Model
	log    *zap.Logger
}

// NewLLMService initializes the Gemini client. A missing API key is a
// configuration error, not something to retry around.
func NewLLMService(ctx context.Context, cfg config.LLMConfig, log *zap.Logger) (*LLMService, error) {
	if cfg.APIKey == "" {
		return nil, apperr.New(apperr.CodeConfigMissing, "LLM API key is not set (JOBTRAIL_LLM_API_KEY)")
	}

	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(cfg.APIKey),
		googleai.WithDefaultModel(cfg.Model),
	)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeServiceFailed, "create Gemini client", err)
	}
	return &LLMService{client: llm, log: log}, nil
}

// NewLLMServiceFromModel wraps an already constructed model, which also
// lets tests substitute a canned one.
func NewLLMServiceFromModel(model llms.Model, log *zap.Logger) *LLMService {
	return &LLMService{client: model, log: log}
}

// JobExtraction is the structured result of parsing a free-text posting.
type JobExtraction struct {
	Company     string           `json:"company"`
	Role        string           `json:"role"`
	Location    string           `json:"location"`
	Description string           `json:"description"`
	KeySkills   []string         `json:"keySkills"`
	Contacts    []models.Contact `json:"contacts"`
}

// EmailAnalysis summarizes one piece of correspondence and may suggest a
// calendar event found in it.
type EmailAnalysis struct {
	Summary        string          `json:"summary"`
	SuggestedEvent *SuggestedEvent `json:"suggestedEvent,omitempty"`
}

type SuggestedEvent struct {
	Type  string `json:"type"`
	Title string `json:"title"`
	Date  string `json:"date"`
}

const jobExtractionPrompt = `You are an expert job-data extraction agent. Analyze the provided raw text of a job posting and extract structured data.

### INSTRUCTIONS:
1. Ignore navigation menus, footers, "similar jobs" lists and advertisements.
2. Extract the fields below strictly.
3. Format the output as valid JSON only. Do not wrap the output in markdown code blocks.

### OUTPUT SCHEMA:
{
    "company": "Name of the company",
    "role": "Job title (e.g. Senior Backend Engineer)",
    "location": "Job location or 'Remote'",
    "description": "A clean summary of the job. Focus on responsibilities and requirements.",
    "keySkills": ["Array", "of", "technologies", "mentioned"],
    "contacts": [{"name": "", "role": "", "email": "", "phone": "", "linkedin": "", "organization": ""}]
}

### CONSTRAINT:
If a piece of information is missing, use an empty string or empty array. Do not hallucinate or guess.

### RAW CONTENT:
%s
`

// ParseJobPosting extracts structured job fields from free text.
func (s *LLMService) ParseJobPosting(ctx context.Context, text string) (*JobExtraction, error) {
	text = truncate(text, maxPostingLen)

	var out JobExtraction
	if err := s.generateJSON(ctx, fmt.Sprintf(jobExtractionPrompt, text), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

const emailAnalysisPrompt = `You are a job-application assistant. Analyze the following email received during a job application process.

### INSTRUCTIONS:
1. Summarize the email in 1-2 sentences.
2. If the email proposes or confirms a concrete appointment or deadline, describe it as a suggested event; otherwise omit suggestedEvent.
3. Format the output as valid JSON only. Do not wrap the output in markdown code blocks.

### OUTPUT SCHEMA:
{
    "summary": "1-2 sentence summary",
    "suggestedEvent": {"type": "interview|deadline|follow-up|other", "title": "short title", "date": "RFC3339 timestamp or empty string"}
}

### EMAIL BODY:
%s
`

// AnalyzeEmail summarizes correspondence and surfaces a suggested event.
func (s *LLMService) AnalyzeEmail(ctx context.Context, body string) (*EmailAnalysis, error) {
	body = truncate(body, maxEmailLen)

	var out EmailAnalysis
	if err := s.generateJSON(ctx, fmt.Sprintf(emailAnalysisPrompt, body), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

const questionsPrompt = `You are an interview coach. Generate likely interview questions for this application.

### INSTRUCTIONS:
1. Generate 8-10 questions tailored to the role, company and description.
2. Mix technical and behavioral questions.
3. Format the output as valid JSON only. Do not wrap the output in markdown code blocks.

### OUTPUT SCHEMA:
{"questions": ["question 1", "question 2"]}

### APPLICATION:
Company: %s
Role: %s
Description: %s
`

// SuggestQuestions generates candidate interview questions. The
// description is truncated to a bounded prefix before being sent.
func (s *LLMService) SuggestQuestions(ctx context.Context, role, company, description string) ([]string, error) {
	description = truncate(description, maxDescriptionLen)

	var out struct {
		Questions []string `json:"questions"`
	}
	if err := s.generateJSON(ctx, fmt.Sprintf(questionsPrompt, company, role, description), &out); err != nil {
		return nil, err
	}
	return out.Questions, nil
}

func (s *LLMService) generateJSON(ctx context.Context, prompt string, out interface{}) error {
	resp, err := llms.GenerateFromSinglePrompt(ctx, s.client, prompt)
	if err != nil {
		return apperr.Wrap(apperr.CodeServiceFailed, "LLM request failed", err)
	}

	cleaned := stripFences(resp)
	if err := json.Unmarshal([]byte(cleaned), out); err != nil {
		s.log.Warn("LLM returned unparseable JSON", zap.String("response", truncate(resp, 500)))
		return apperr.Wrap(apperr.CodeServiceFailed, "LLM response was not valid JSON", err)
	}
	return nil
}

// stripFences removes a markdown code fence the model sometimes adds
// despite instructions.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func truncate(s string, max int) string {
	if len(s) > max {
		return s[:max]
	}
	return s
}
