package mt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const (
	deeplFreeBaseURL = "https://api-free.deepl.com"
	deeplFreeSuffix  = ":fx"
)

// deepl calls the DeepL v2 translate endpoint.
type deepl struct {
	prov   Provider
	client *http.Client
}

func newDeepL(prov Provider) *deepl {
	// Free-tier keys only work against the free host.
	if prov.BaseURL == DefaultProviders()[ProviderDeepL].BaseURL && strings.HasSuffix(prov.APIKey, deeplFreeSuffix) {
		prov.BaseURL = deeplFreeBaseURL
	}
	return &deepl{prov: prov, client: makeHTTPClient(prov.Proxy, prov.Timeout)}
}

type deeplRequest struct {
	Text       []string `json:"text"`
	TargetLang string   `json:"target_lang"`
}

type deeplResponse struct {
	Translations []struct {
		DetectedSourceLanguage string `json:"detected_source_language"`
		Text                   string `json:"text"`
	} `json:"translations"`
	Message string `json:"message"`
}

func (d *deepl) Translate(ctx context.Context, text, targetISO string) (string, error) {
	body, err := json.Marshal(deeplRequest{
		Text:       []string{text},
		TargetLang: strings.ToUpper(targetISO),
	})
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}

	headers := map[string]string{
		"Authorization": "DeepL-Auth-Key " + d.prov.APIKey,
	}
	var resp deeplResponse
	endpoint := strings.TrimRight(d.prov.BaseURL, "/") + "/v2/translate"
	if err := postJSON(ctx, d.client, endpoint, headers, body, &resp); err != nil {
		return "", fmt.Errorf("%s: %w", d.prov.Name, err)
	}
	if len(resp.Translations) == 0 {
		return "", fmt.Errorf("%s: empty translation list", d.prov.Name)
	}
	return strings.TrimSpace(resp.Translations[0].Text), nil
}

// google calls the Cloud Translation v2 (basic) REST endpoint with an API key.
type google struct {
	prov   Provider
	client *http.Client
}

func newGoogle(prov Provider) *google {
	return &google{prov: prov, client: makeHTTPClient(prov.Proxy, prov.Timeout)}
}

type googleRequest struct {
	Q      []string `json:"q"`
	Target string   `json:"target"`
	Format string   `json:"format"`
}

type googleResponse struct {
	Data struct {
		Translations []struct {
			TranslatedText string `json:"translatedText"`
		} `json:"translations"`
	} `json:"data"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (g *google) Translate(ctx context.Context, text, targetISO string) (string, error) {
	body, err := json.Marshal(googleRequest{
		Q:      []string{text},
		Target: strings.ToLower(targetISO),
		Format: "text",
	})
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}

	endpoint := strings.TrimRight(g.prov.BaseURL, "/") + "/language/translate/v2?key=" + g.prov.APIKey
	var resp googleResponse
	if err := postJSON(ctx, g.client, endpoint, nil, body, &resp); err != nil {
		return "", fmt.Errorf("%s: %w", g.prov.Name, err)
	}
	if resp.Error != nil {
		return "", fmt.Errorf("%s: API error: %s", g.prov.Name, resp.Error.Message)
	}
	if len(resp.Data.Translations) == 0 {
		return "", fmt.Errorf("%s: empty translation list", g.prov.Name)
	}
	return strings.TrimSpace(resp.Data.Translations[0].TranslatedText), nil
}

// postJSON sends body to endpoint and decodes a 200 answer into out.
func postJSON(ctx context.Context, client *http.Client, endpoint string, headers map[string]string, body []byte, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("API returned status %d: %s", resp.StatusCode, truncate(string(respBody), 500))
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("invalid JSON response: %w", err)
	}
	return nil
}
