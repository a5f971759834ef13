package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// SetupClient builds a Vertex AI backed client. Project may be empty, in
// which case the client resolves it from the environment.
func SetupClient(ctx context.Context, project, location string) (*genai.Client, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Project:  project,
		Location: location,
		Backend:  genai.BackendVertexAI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating inference client: %w", err)
	}
	return client, nil
}

// GenerationConfig returns the fixed inference parameters used for every
// request in a run.
func GenerationConfig() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		MaxOutputTokens: ptr[int64](3000),
		TopP:            ptr[float64](0.1),
		TopK:            ptr[float64](20),
		Temperature:     ptr[float64](0.3),
	}
}

func ptr[T any](v T) *T { return &v }

// Prompt returns the fixed instruction sent with every screenshot.
func Prompt() string {
	return `You are an AI assistant specialized in analyzing screenshots from Zoom meeting calls. Your task is to extract OCR text, generate captions, and provide this information in a structured XML format.
Please follow these steps to analyze the screenshot and generate your response:

1. Extract OCR Text:
- Carefully examine the screenshot and identify all visible text.
- Include text from tables, charts, images, and any other elements present.
- This text will be used to extract keywords and provide context for your analysis.

2. Determine Screenshot Type:
- Identify whether the screenshot is of an interactive session (e.g., coding environment, terminal) or a document/slide.

3. Generate Captions:
- Create two captions: a detailed long caption and a concise short caption.
- Adjust the level of detail based on the complexity of the screenshot.

For interactive sessions:
- Provide a brief, high-level description (1-3 sentences).
- Focus on the environment or tools being used (e.g., IDE, terminal).
- Avoid describing specific content or sensitive information.

For documents or slides:
- For text-heavy slides:
    * Describe key elements such as titles, dates, names, and terms visible in the slide.
    * Include section headers, bullet points, agenda items, project names, timelines, deliverables, performance metrics, recommendations, meeting objectives, key terms, calls to action, presenter or team information, citations, and status updates.
- For slides with visual elements (graphs, charts, tables):
    * Describe all visible elements in detail, including chart titles, axis labels, legends, data points, and visual highlights.
    * Include exact numbers when relevant.
    * If there are multiple figures or graphs, describe each one in detail.

4. Format Your Response:
Present your analysis and output in the following XML structure:

<ocr>
[All extracted OCR text]
</ocr>

<caption>
[Detailed caption describing the screenshot content]
</caption>

<short_caption>
[Concise summary of the screenshot (1-2 sentences)]
</short_caption>

Study the following examples carefully. They illustrate the expected level of detail and format for different types of screenshots. Use these examples as a guide for your own analysis and output generation.`
}
