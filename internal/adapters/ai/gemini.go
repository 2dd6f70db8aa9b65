package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/patroldesk/core/internal/domain/entities"
	"github.com/patroldesk/core/internal/infrastructure/logger"
	"github.com/patroldesk/core/internal/ports"
)

// Client wraps the Gemini API client
type Client struct {
	genaiClient *genai.Client
	modelName   string
	logger      *logger.Logger
}

// Ensure Client implements the generator port
var _ ports.Generator = (*Client)(nil)

// NewClient creates a new Gemini client
func NewClient(ctx context.Context, apiKey, modelName string, appLogger *logger.Logger) (*Client, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &Client{
		genaiClient: client,
		modelName:   modelName,
		logger:      appLogger,
	}, nil
}

// Close closes the client
func (c *Client) Close() error {
	return c.genaiClient.Close()
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("no candidates returned")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	return sb.String(), nil
}

// stripFences removes markdown code fences the model sometimes wraps HTML in
func stripFences(s string) string {
	s = strings.ReplaceAll(s, "```html", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

// ExtractVerificationInfo runs OCR extraction over a document image
func (c *Client) ExtractVerificationInfo(ctx context.Context, imageJPEG []byte) (*ports.ExtractedVerification, error) {
	model := c.genaiClient.GenerativeModel(c.modelName)
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"dispatchNumber":   {Type: genai.TypeString},
			"date":             {Type: genai.TypeString},
			"offenderName":     {Type: genai.TypeString},
			"idCard":           {Type: genai.TypeString},
			"yob":              {Type: genai.TypeString},
			"address":          {Type: genai.TypeString},
			"violationContent": {Type: genai.TypeString},
		},
	}

	resp, err := model.GenerateContent(ctx,
		genai.ImageData("jpeg", imageJPEG),
		genai.Text(extractPrompt),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	text, err := responseText(resp)
	if err != nil {
		return nil, err
	}

	var extracted ports.ExtractedVerification
	if err := json.Unmarshal([]byte(text), &extracted); err != nil {
		return nil, fmt.Errorf("failed to decode extraction result: %w", err)
	}
	return &extracted, nil
}

// ReconstructDocument rebuilds scanned document pages into printable HTML
func (c *Client) ReconstructDocument(ctx context.Context, pagesJPEG [][]byte) (string, error) {
	model := c.genaiClient.GenerativeModel(c.modelName)

	parts := make([]genai.Part, 0, len(pagesJPEG)+1)
	for _, page := range pagesJPEG {
		parts = append(parts, genai.ImageData("jpeg", page))
	}
	parts = append(parts, genai.Text(reconstructPrompt))

	resp, err := model.GenerateContent(ctx, parts...)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	text, err := responseText(resp)
	if err != nil {
		return "", err
	}
	return stripFences(text), nil
}

// GenerateResponseLetter drafts a verification response letter. When a
// template is given the model only fills its placeholders; otherwise it
// drafts the whole letter.
func (c *Client) GenerateResponseLetter(ctx context.Context, req *entities.VerificationRequest, tpl string) (string, error) {
	model := c.genaiClient.GenerativeModel(c.modelName)

	var prompt string
	if tpl != "" {
		prompt = fillTemplatePrompt(req, tpl)
	} else {
		prompt = draftLetterPrompt(req)
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	return responseText(resp)
}

// GenerateReport writes the narrative report body from the aggregated context
func (c *Client) GenerateReport(ctx context.Context, reportCtx interface{}, suggestions, directions string) (string, error) {
	model := c.genaiClient.GenerativeModel(c.modelName)

	data, err := json.Marshal(reportCtx)
	if err != nil {
		return "", fmt.Errorf("failed to encode report context: %w", err)
	}

	resp, err := model.GenerateContent(ctx, genai.Text(reportPrompt(string(data), suggestions, directions)))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	text, err := responseText(resp)
	if err != nil {
		return "", err
	}
	return stripFences(text), nil
}
