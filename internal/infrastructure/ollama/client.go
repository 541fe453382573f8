// Package ollama implements the model client against a local Ollama server.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"runtime"
	"strings"

	"github.com/doeshing/deskcommander/internal/domain"
	"github.com/doeshing/deskcommander/internal/ports"
)

// promptTemplate instructs the model to answer with a bare command.
const promptTemplate = `You are a helpful shell command expert. Generate a single shell command.
User request: %s
Operating system: %s
Important: Respond with ONLY the command, no explanations or markdown.`

// Client issues synchronous requests against the configured generation endpoint.
type Client struct {
	httpClient *http.Client
}

// NewClient builds a client. A nil http.Client falls back to the default.
func NewClient(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{httpClient: httpClient}
}

type generateRequest struct {
	Model       string          `json:"model"`
	Prompt      string          `json:"prompt"`
	Stream      bool            `json:"stream"`
	Temperature float64         `json:"temperature"`
	Options     generateOptions `json:"options"`
}

type generateOptions struct {
	NumPredict int `json:"num_predict"`
}

type generateResponse struct {
	Response string `json:"response"`
}

type tagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

// Generate implements ports.ModelClient. Connectivity failures surface as
// domain.ErrConnectivity, non-success statuses as domain.ErrModel.
func (c *Client) Generate(ctx context.Context, cfg domain.Config, prompt string) (domain.Generation, error) {
	payload := generateRequest{
		Model:       cfg.OllamaModel,
		Prompt:      BuildPrompt(prompt),
		Stream:      false,
		Temperature: domain.DefaultTemperature,
		Options:     generateOptions{NumPredict: domain.DefaultNumPredict},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return domain.Generation{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cfg.OllamaURL, bytes.NewReader(body))
	if err != nil {
		return domain.Generation{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.Generation{}, fmt.Errorf("%w: %v", domain.ErrConnectivity, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return domain.Generation{}, fmt.Errorf("%w: HTTP %d", domain.ErrModel, resp.StatusCode)
	}

	var decoded generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.Generation{}, fmt.Errorf("%w: %v", domain.ErrModel, err)
	}
	command := ExtractCommand(decoded.Response)
	if command == "" {
		return domain.Generation{}, fmt.Errorf("%w: empty completion", domain.ErrModel)
	}
	return domain.Generation{Command: command, Raw: decoded.Response}, nil
}

// ListModels returns the names of the models installed on the server.
func (c *Client) ListModels(ctx context.Context, cfg domain.Config) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, domain.DefaultTagsTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, tagsEndpoint(cfg.OllamaURL), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrConnectivity, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: HTTP %d", domain.ErrModel, resp.StatusCode)
	}
	var decoded tagsResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrModel, err)
	}
	names := make([]string, 0, len(decoded.Models))
	for _, m := range decoded.Models {
		if m.Name != "" {
			names = append(names, m.Name)
		}
	}
	return names, nil
}

// Check reports whether the server is reachable and the configured model installed.
func (c *Client) Check(ctx context.Context, cfg domain.Config) domain.ModelStatus {
	ctx, cancel := context.WithTimeout(ctx, domain.DefaultStatusProbeTimeout)
	defer cancel()

	names, err := c.ListModels(ctx, cfg)
	if err != nil {
		return domain.ModelStatus{Message: "Ollama offline"}
	}
	for _, name := range names {
		if name == cfg.OllamaModel {
			return domain.ModelStatus{
				Reachable:  true,
				ModelFound: true,
				Message:    fmt.Sprintf("Ollama ready (%s)", cfg.OllamaModel),
			}
		}
	}
	return domain.ModelStatus{
		Reachable: true,
		Message:   fmt.Sprintf("Model %s not found", cfg.OllamaModel),
	}
}

// BuildPrompt renders the user request into the generation prompt.
func BuildPrompt(userPrompt string) string {
	return fmt.Sprintf(promptTemplate, strings.TrimSpace(userPrompt), runtime.GOOS)
}

// tagsEndpoint derives the /api/tags URL from the configured generate URL.
func tagsEndpoint(generateURL string) string {
	u, err := url.Parse(generateURL)
	if err != nil || u.Host == "" {
		return "http://localhost:11434/api/tags"
	}
	u.Path = "/api/tags"
	u.RawQuery = ""
	return u.String()
}

var _ ports.ModelClient = (*Client)(nil)
