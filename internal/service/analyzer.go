package service

import (
	"context"
	"encoding/json"
	"errors"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"example/screenshot-batch/internal/gemini"
	"example/screenshot-batch/internal/model"

	"google.golang.org/genai"
)

// Analysis is one well-formed model response: the full structured response as
// JSON plus the extracted text field.
type Analysis struct {
	RawJSON []byte
	Text    string
}

// Analyzer is the inference collaborator seam. Tests substitute a stub.
type Analyzer interface {
	Analyze(ctx context.Context, path string) (*Analysis, error)
}

type ImageAnalyzer struct {
	client *genai.Client
	model  string
}

func NewImageAnalyzer(client *genai.Client, model string) *ImageAnalyzer {
	return &ImageAnalyzer{
		client: client,
		model:  model,
	}
}

// Analyze reads one image and submits it with the fixed prompt and generation
// parameters. Every error is tagged with its failure kind.
func (a *ImageAnalyzer) Analyze(ctx context.Context, path string) (*Analysis, error) {
	imageBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, &model.ItemError{Kind: model.FailureInputUnreadable, Err: err}
	}

	parts := []*genai.Part{
		{Text: gemini.Prompt()},
		{InlineData: &genai.Blob{Data: imageBytes, MIMEType: MIMETypeOf(path)}},
	}

	result, err := a.client.Models.GenerateContent(ctx, a.model, []*genai.Content{{Parts: parts}}, gemini.GenerationConfig())
	if err != nil {
		return nil, &model.ItemError{Kind: model.FailureTransport, Err: err}
	}

	text, err := result.Text()
	if err != nil {
		return nil, &model.ItemError{Kind: model.FailureMalformedResponse, Err: err}
	}
	if text == "" {
		return nil, &model.ItemError{Kind: model.FailureMalformedResponse, Err: errors.New("response contains no text content")}
	}

	raw, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, &model.ItemError{Kind: model.FailureMalformedResponse, Err: err}
	}

	return &Analysis{RawJSON: raw, Text: text}, nil
}

// MIMETypeOf guesses the image MIME type from the extension, defaulting to
// JPEG the way the upstream request format expects.
func MIMETypeOf(path string) string {
	t := mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
	if t != "" && strings.HasPrefix(t, "image/") {
		return t
	}
	return "image/jpeg"
}
