// Package mt implements machine translation of single captions through
// DeepL, Google Cloud Translation and OpenAI-compatible chat providers
// (OpenAI, Groq, Ollama, custom endpoints).
//
// Every provider answers one caption per call. Nothing is retried: a failed
// call surfaces to the caller, which falls back to manual entry.
package mt

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"
)

// Translator translates a single text into the language identified by a
// two-letter ISO 639-1 code.
type Translator interface {
	Translate(ctx context.Context, text, targetISO string) (string, error)
}

// ---------------------------------------------------------------------------
// Provider IDs
// ---------------------------------------------------------------------------

const (
	ProviderDeepL        = "deepl"
	ProviderGoogle       = "google"
	ProviderOpenAI       = "openai"
	ProviderGroq         = "groq"
	ProviderOllama       = "ollama"
	ProviderCustomOpenAI = "custom-openai"
)

// ---------------------------------------------------------------------------
// Provider configuration
// ---------------------------------------------------------------------------

// Provider holds the configuration for a translation service.
type Provider struct {
	// ID is the provider identifier (deepl, google, openai, ...).
	ID string
	// Name is the display name.
	Name string
	// BaseURL is the API base URL.
	BaseURL string
	// APIKey is the authentication key (empty for local services).
	APIKey string
	// Model is the chat model; ignored by DeepL and Google.
	Model string
	// Proxy is an optional HTTP/HTTPS proxy URL.
	Proxy string
	// Timeout is the request timeout.
	Timeout time.Duration
}

// DefaultProviders returns the pre-configured provider definitions.
func DefaultProviders() map[string]Provider {
	return map[string]Provider{
		ProviderDeepL: {
			ID:      ProviderDeepL,
			Name:    "DeepL",
			BaseURL: "https://api.deepl.com",
			Timeout: 30 * time.Second,
		},
		ProviderGoogle: {
			ID:      ProviderGoogle,
			Name:    "Google Cloud Translation",
			BaseURL: "https://translation.googleapis.com",
			Timeout: 30 * time.Second,
		},
		ProviderOpenAI: {
			ID:      ProviderOpenAI,
			Name:    "OpenAI",
			BaseURL: "https://api.openai.com/v1",
			Model:   "gpt-4o-mini",
			Timeout: 60 * time.Second,
		},
		ProviderGroq: {
			ID:      ProviderGroq,
			Name:    "Groq",
			BaseURL: "https://api.groq.com/openai/v1",
			Model:   "llama-3.3-70b-versatile",
			Timeout: 60 * time.Second,
		},
		ProviderOllama: {
			ID:      ProviderOllama,
			Name:    "Ollama",
			BaseURL: "http://localhost:11434/v1",
			Timeout: 120 * time.Second,
		},
		ProviderCustomOpenAI: {
			ID:      ProviderCustomOpenAI,
			Name:    "Custom OpenAI",
			Timeout: 60 * time.Second,
		},
	}
}

// ProviderIDs returns the known provider IDs, sorted.
func ProviderIDs() []string {
	providers := DefaultProviders()
	ids := make([]string, 0, len(providers))
	for id := range providers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Lookup returns the default definition of id merged with the non-empty
// fields of override.
func Lookup(id string, override Provider) (Provider, error) {
	prov, ok := DefaultProviders()[id]
	if !ok {
		return Provider{}, fmt.Errorf("unknown provider %q (valid: %s)", id, strings.Join(ProviderIDs(), ", "))
	}
	if override.BaseURL != "" {
		prov.BaseURL = override.BaseURL
	}
	if override.APIKey != "" {
		prov.APIKey = override.APIKey
	}
	if override.Model != "" {
		prov.Model = override.Model
	}
	if override.Proxy != "" {
		prov.Proxy = override.Proxy
	}
	if override.Timeout > 0 {
		prov.Timeout = override.Timeout
	}
	return prov, nil
}

// New returns the Translator for prov.ID.
func New(prov Provider) (Translator, error) {
	switch prov.ID {
	case ProviderDeepL:
		if prov.APIKey == "" {
			return nil, fmt.Errorf("%s: API key required", prov.ID)
		}
		return newDeepL(prov), nil
	case ProviderGoogle:
		if prov.APIKey == "" {
			return nil, fmt.Errorf("%s: API key required", prov.ID)
		}
		return newGoogle(prov), nil
	case ProviderOpenAI, ProviderGroq:
		if prov.APIKey == "" {
			return nil, fmt.Errorf("%s: API key required", prov.ID)
		}
		return newChat(prov)
	case ProviderOllama, ProviderCustomOpenAI:
		return newChat(prov)
	default:
		return nil, fmt.Errorf("unknown provider %q", prov.ID)
	}
}

// ---------------------------------------------------------------------------
// HTTP client with proxy support
// ---------------------------------------------------------------------------

func makeHTTPClient(proxyURL string, timeout time.Duration) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()

	// --proxy wins over HTTP_PROXY/HTTPS_PROXY
	if proxyURL != "" {
		parsed, err := url.Parse(proxyURL)
		if err == nil {
			transport.Proxy = http.ProxyURL(parsed)
		}
	} else {
		transport.Proxy = http.ProxyFromEnvironment
	}

	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &http.Client{
		Transport: transport,
		Timeout:   timeout,
	}
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
