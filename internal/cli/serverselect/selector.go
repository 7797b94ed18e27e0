package serverselect

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/manifoldco/promptui"

	"github.com/flightdeck360/flightdeck/internal/cli/userconfig"
	"github.com/flightdeck360/flightdeck/internal/config"
)

// Backend is a named API base URL
type Backend struct {
	Alias string
	URL   string
}

// LocalURL is where cmd/server listens by default
const LocalURL = "http://localhost:5000/api"

// Backends are the well-known API endpoints offered by the selector
var Backends = []Backend{
	{Alias: "hosted", URL: config.DefaultAPIURL},
	{Alias: "local", URL: LocalURL},
}

// ResolveBaseURL determines which backend to use based on the following priority:
// 1. FLIGHTDECK_API_URL, then FLIGHTDECK_BACKEND_URL
// 2. The api_url saved in the user config
// 3. The hosted backend
func ResolveBaseURL(cfg *config.ClientConfig) (string, error) {
	saved, err := userconfig.Get(userconfig.KeyAPIURL)
	if err != nil {
		return "", fmt.Errorf("failed to load user config: %w", err)
	}
	return cfg.BaseURL(saved), nil
}

// Lookup resolves an alias or an absolute http(s) URL to a base URL
func Lookup(aliasOrURL string) (string, error) {
	aliasOrURL = strings.TrimSpace(aliasOrURL)
	for _, b := range Backends {
		if b.Alias == aliasOrURL {
			return b.URL, nil
		}
	}

	u, err := url.Parse(aliasOrURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("backend %q is neither a known alias nor an http(s) URL", aliasOrURL)
	}
	return strings.TrimRight(aliasOrURL, "/"), nil
}

// Select saves aliasOrURL as the preferred backend
func Select(aliasOrURL string) (string, error) {
	baseURL, err := Lookup(aliasOrURL)
	if err != nil {
		return "", err
	}
	if err := userconfig.Set(userconfig.KeyAPIURL, baseURL); err != nil {
		return "", err
	}
	return baseURL, nil
}

// PromptBackendSelection shows an interactive prompt for the user to select a backend
func PromptBackendSelection() (string, error) {
	type backendOption struct {
		Label string
		URL   string
	}

	options := make([]backendOption, 0, len(Backends)+1)
	for _, b := range Backends {
		options = append(options, backendOption{
			Label: fmt.Sprintf("%s (%s)", b.Alias, b.URL),
			URL:   b.URL,
		})
	}
	options = append(options, backendOption{Label: "Custom URL..."})

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "> {{ .Label | cyan }}",
		Inactive: "  {{ .Label }}",
		Selected: "{{ .Label | green }}",
	}

	prompt := promptui.Select{
		Label:     "Select a backend",
		Items:     options,
		Templates: templates,
		Size:      10,
	}

	index, _, err := prompt.Run()
	if err != nil {
		return "", fmt.Errorf("backend selection cancelled: %w", err)
	}

	if options[index].URL != "" {
		return options[index].URL, nil
	}

	custom := promptui.Prompt{
		Label: "API base URL",
		Validate: func(input string) error {
			_, err := Lookup(input)
			return err
		},
	}
	value, err := custom.Run()
	if err != nil {
		return "", fmt.Errorf("backend selection cancelled: %w", err)
	}
	return Lookup(value)
}
