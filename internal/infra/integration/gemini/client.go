package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/pipewise/pipewise/internal/entity"
	"github.com/pipewise/pipewise/internal/usecase"
)

// Client implements usecase.Summarizer against the Gemini API. It is the
// only package that knows which LLM provider backs report generation.
type Client struct {
	client *genai.Client
	model  string
}

func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Client{client: client, model: model}, nil
}

func (c *Client) Summarize(ctx context.Context, summary usecase.PipelineSummary) (string, error) {
	result, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(BuildPrompt(summary)), nil)
	if err != nil {
		return "", fmt.Errorf("text generation request failed: %w", err)
	}

	text := result.Text()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("text generation returned an empty response")
	}
	return text, nil
}

// BuildPrompt renders the aggregate metrics into the instruction the model
// receives. Deterministic: map iteration is avoided via the sorted status
// order and TopSources.
func BuildPrompt(summary usecase.PipelineSummary) string {
	var b strings.Builder

	b.WriteString("You are a sales analyst. Write a concise narrative report (3-5 paragraphs) ")
	b.WriteString("for the sales team based on the pipeline metrics below. Mention the conversion ")
	b.WriteString("rate, the trend versus the previous period, and the strongest source channels. ")
	b.WriteString("Do not invent numbers.\n\n")

	fmt.Fprintf(&b, "Window: %s to %s\n",
		summary.Window.From.Format("2006-01-02"), summary.Window.To.Format("2006-01-02"))
	fmt.Fprintf(&b, "Total leads: %d\n", summary.TotalLeads)

	for _, status := range []string{
		entity.StatusNew, entity.StatusContacted, entity.StatusQualified,
		entity.StatusConverted, entity.StatusLost,
	} {
		breakdown := summary.ByStatus[status]
		fmt.Fprintf(&b, "%s: %d leads, value %.2f\n", status, breakdown.Count, float64(breakdown.ValueCents)/100)
	}

	fmt.Fprintf(&b, "Conversion rate: %.1f%%\n", summary.ConversionRate*100)
	fmt.Fprintf(&b, "Open pipeline value: %.2f\n", float64(summary.PipelineCents)/100)
	fmt.Fprintf(&b, "Change vs previous period: %+d leads, %+d converted, %+.1f%% conversion rate\n",
		summary.TrendDeltas.Leads, summary.TrendDeltas.Converted, summary.TrendDeltas.ConversionRate*100)

	if sources := summary.TopSources(); len(sources) > 0 {
		b.WriteString("Leads by source:\n")
		for _, source := range sources {
			fmt.Fprintf(&b, "  %s: %d\n", source, summary.BySource[source])
		}
	}

	return b.String()
}
