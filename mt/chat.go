package mt

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// SystemPrompt instructs chat models to answer with the bare translation.
// {{targetLang}} is replaced with the English name of the target language.
const SystemPrompt = `You translate user interface captions of a business application (Microsoft Dynamics NAV) into {{targetLang}}.

RULES:
- Reply with the translated caption only: no quotes, no explanations, no alternatives
- Keep placeholders such as %1, #1#### and & exactly as they are
- Use the established ERP/accounting terminology of {{targetLang}}
- Keep the caption short; it is shown on forms, reports and menus
- Preserve the capitalization style of the source where {{targetLang}} allows it`

// chat translates through an OpenAI-compatible chat completions endpoint.
type chat struct {
	prov   Provider
	client openai.Client
}

func newChat(prov Provider) (*chat, error) {
	if prov.BaseURL == "" {
		return nil, fmt.Errorf("%s: base URL required", prov.ID)
	}
	if prov.Model == "" {
		return nil, fmt.Errorf("%s: model required", prov.ID)
	}
	opts := []option.RequestOption{
		option.WithBaseURL(prov.BaseURL),
		option.WithHTTPClient(makeHTTPClient(prov.Proxy, prov.Timeout)),
		option.WithMaxRetries(0),
	}
	// Local servers accept any key but the client insists on one.
	key := prov.APIKey
	if key == "" {
		key = "captrans"
	}
	opts = append(opts, option.WithAPIKey(key))

	return &chat{prov: prov, client: openai.NewClient(opts...)}, nil
}

func (c *chat) Translate(ctx context.Context, text, targetISO string) (string, error) {
	prompt := strings.ReplaceAll(SystemPrompt, "{{targetLang}}", languageName(targetISO))

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.prov.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(prompt),
			openai.UserMessage(text),
		},
		Temperature: openai.Float(0),
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", c.prov.Name, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%s: no choices in response", c.prov.Name)
	}
	return cleanReply(resp.Choices[0].Message.Content), nil
}

// cleanReply strips whitespace and one pair of wrapping quotes models like
// to add.
func cleanReply(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			s = strings.TrimSpace(s[1 : len(s)-1])
		}
	}
	return s
}

func languageName(iso string) string {
	tag, err := language.Parse(iso)
	if err != nil {
		return iso
	}
	if name := display.English.Tags().Name(tag); name != "" {
		return name
	}
	return iso
}
