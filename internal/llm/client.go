package llm

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Client is an abstraction over multimodal LLM providers
type Client interface {
	// ClassifyImage sends a page image plus an instruction and returns the
	// model's text verdict
	ClassifyImage(ctx context.Context, imagePath string, prompt string, tier ModelTier) (string, error)
	// GenerateFromPDF sends a PDF document plus an instruction and returns
	// the model's raw text response
	GenerateFromPDF(ctx context.Context, pdfPath string, prompt string, tier ModelTier) (string, error)
	// GetModel names the provider model backing a tier
	GetModel(tier ModelTier) string
	// Close releases the underlying provider connection
	Close() error
}

// NewClient builds the client for the configured provider. Only Gemini is
// wired up today; the other Provider constants are reserved.
func NewClient(ctx context.Context, config *Config, apiKey string) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if config.Provider != ProviderGemini {
		return nil, fmt.Errorf("unsupported provider %q", config.Provider)
	}
	return NewGeminiClient(ctx, config, apiKey)
}

// GeminiClient talks to the Gemini API through the official SDK.
type GeminiClient struct {
	client *genai.Client
	config *Config
}

// NewGeminiClient opens a Gemini connection with the given key.
func NewGeminiClient(ctx context.Context, config *Config, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("missing Gemini API key")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiClient{client: client, config: config}, nil
}

// model resolves the tier and prepares a generative model for it. Low
// temperature keeps classification verdicts and extracted tables stable
// across reruns.
func (c *GeminiClient) model(tier ModelTier) (*genai.GenerativeModel, error) {
	name := c.config.GetModel(tier)
	if name == "" {
		return nil, fmt.Errorf("no model configured for tier %s", tier)
	}
	m := c.client.GenerativeModel(name)
	m.SetTemperature(0.1)
	return m, nil
}

// ClassifyImage sends the JPEG at imagePath together with prompt and returns
// the model's text verdict
func (c *GeminiClient) ClassifyImage(ctx context.Context, imagePath string, prompt string, tier ModelTier) (string, error) {
	model, err := c.model(tier)
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(imagePath)
	if err != nil {
		return "", fmt.Errorf("failed to read page image: %w", err)
	}

	resp, err := model.GenerateContent(ctx, genai.ImageData("jpeg", data), genai.Text(prompt))
	if err != nil {
		return "", wrapAPIError("classify page image", err)
	}
	return responseText(resp)
}

// GenerateFromPDF sends the PDF at pdfPath together with prompt and returns
// the model's raw text response
func (c *GeminiClient) GenerateFromPDF(ctx context.Context, pdfPath string, prompt string, tier ModelTier) (string, error) {
	model, err := c.model(tier)
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(pdfPath)
	if err != nil {
		return "", fmt.Errorf("failed to read document: %w", err)
	}

	resp, err := model.GenerateContent(ctx,
		genai.Blob{MIMEType: "application/pdf", Data: data},
		genai.Text(prompt),
	)
	if err != nil {
		return "", wrapAPIError("generate from document", err)
	}
	return responseText(resp)
}

// GetModel names the provider model backing a tier.
func (c *GeminiClient) GetModel(tier ModelTier) string {
	return c.config.GetModel(tier)
}

// Close releases the underlying connection.
func (c *GeminiClient) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}

// responseText flattens the text parts of a Gemini reply into one string.
// Safety blocks and empty candidates surface as errors rather than "".
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("model returned no candidates")
	}

	content := resp.Candidates[0].Content
	if content == nil {
		return "", fmt.Errorf("model returned an empty candidate")
	}

	var b strings.Builder
	for _, part := range content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("model reply carries no text parts")
	}
	return b.String(), nil
}
