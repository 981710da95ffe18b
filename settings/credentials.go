// Package settings stores captrans user settings in the XDG data directory:
//
//	$XDG_DATA_HOME/captrans/  (default: ~/.local/share/captrans/)
//
// Files stored:
//   - auth.json                       API keys of machine-translation providers
//   - dictionary-<base>-<work>.csv    default translation memories (see config)
//
// auth.json is a JSON object keyed by provider ID:
//
//	{"deepl": {"key": "..."}, "custom-openai": {"key": "...", "baseUrl": "..."}}
//
// File permissions are 0600 (owner read/write only).
//
// Lookup order for API keys:
//  1. --api-key flag (highest priority)
//  2. CAPTRANS_API_KEY, then the provider's own variable (DEEPL_AUTH_KEY, ...)
//  3. This credential store
package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

const (
	dataDirName = "captrans"
	fileName    = "auth.json"
)

// EnvAPIKey overrides the stored key of whatever provider is in use.
const EnvAPIKey = "CAPTRANS_API_KEY"

// Info is the stored credential of one provider.
type Info struct {
	Key string `json:"key,omitempty"`
	// BaseURL is only used by self-hosted endpoints (custom-openai, ollama).
	BaseURL string `json:"baseUrl,omitempty"`
}

// Store holds all provider credentials, keyed by provider ID.
type Store map[string]*Info

// ---------------------------------------------------------------------------
// Paths
// ---------------------------------------------------------------------------

// DataDir returns the captrans data directory, respecting $XDG_DATA_HOME.
func DataDir() (string, error) {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, dataDirName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share", dataDirName), nil
}

func filePath() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fileName), nil
}

// FilePath returns the auth.json path for display purposes.
func FilePath() string {
	p, err := filePath()
	if err != nil {
		return ""
	}
	return p
}

// ---------------------------------------------------------------------------
// Load / Save
// ---------------------------------------------------------------------------

// Load reads the credential store. A missing or unreadable file yields an
// empty store.
func Load() Store {
	path, err := filePath()
	if err != nil {
		return make(Store)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return make(Store)
	}
	var store Store
	if err := json.Unmarshal(data, &store); err != nil || store == nil {
		return make(Store)
	}
	return store
}

// Save writes the credential store with 0600 permissions.
func Save(store Store) error {
	path, err := filePath()
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(store, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling credentials: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing auth file: %w", err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

// Get returns the entry of a provider, or nil.
func Get(providerID string) *Info {
	return Load()[providerID]
}

// SetAPIKey stores key (and an optional base URL) for a provider.
func SetAPIKey(providerID, key, baseURL string) error {
	store := Load()
	store[providerID] = &Info{Key: key, BaseURL: baseURL}
	return Save(store)
}

// Remove deletes the entry of a provider. Removing an unknown provider is
// not an error.
func Remove(providerID string) error {
	store := Load()
	if _, ok := store[providerID]; !ok {
		return nil
	}
	delete(store, providerID)
	return Save(store)
}

// Providers returns the IDs with stored credentials, sorted.
func Providers() []string {
	store := Load()
	ids := make([]string, 0, len(store))
	for id := range store {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// EnvVarForProvider returns the provider's conventional API key variable.
func EnvVarForProvider(providerID string) string {
	switch providerID {
	case "deepl":
		return "DEEPL_AUTH_KEY"
	case "google":
		return "GOOGLE_API_KEY"
	case "openai", "custom-openai":
		return "OPENAI_API_KEY"
	case "groq":
		return "GROQ_API_KEY"
	}
	return ""
}

// ResolveAPIKey returns the API key to use for providerID: flag, then
// environment, then the store.
func ResolveAPIKey(providerID, flag string) string {
	if flag != "" {
		return flag
	}
	if v := os.Getenv(EnvAPIKey); v != "" {
		return v
	}
	if env := EnvVarForProvider(providerID); env != "" {
		if v := os.Getenv(env); v != "" {
			return v
		}
	}
	if info := Get(providerID); info != nil {
		return info.Key
	}
	return ""
}

// ResolveBaseURL returns the stored base URL when flag is empty.
func ResolveBaseURL(providerID, flag string) string {
	if flag != "" {
		return flag
	}
	if info := Get(providerID); info != nil {
		return info.BaseURL
	}
	return ""
}

// MaskKey returns a masked version of a key for display.
func MaskKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
