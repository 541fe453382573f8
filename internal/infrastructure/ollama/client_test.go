package ollama

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/doeshing/deskcommander/internal/domain"
)

func testConfig(url string) domain.Config {
	return domain.Config{
		OllamaURL:      url + "/api/generate",
		OllamaModel:    "gemma3:4b",
		TimeoutSeconds: 5,
	}
}

func TestGenerateExtractsCommand(t *testing.T) {
	var gotBody map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]string{"response": "ls -la\n"})
	}))
	defer server.Close()

	client := NewClient(server.Client())
	gen, err := client.Generate(context.Background(), testConfig(server.URL), "list files")
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if gen.Command != "ls -la" {
		t.Fatalf("command = %q, want ls -la", gen.Command)
	}

	if gotBody["model"] != "gemma3:4b" {
		t.Errorf("request model = %v", gotBody["model"])
	}
	if gotBody["stream"] != false {
		t.Errorf("request stream = %v, want false", gotBody["stream"])
	}
	prompt, _ := gotBody["prompt"].(string)
	if !strings.Contains(prompt, "list files") {
		t.Errorf("prompt missing user request: %q", prompt)
	}
}

func TestGenerateConnectivityError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // nothing listening anymore

	client := NewClient(http.DefaultClient)
	_, err := client.Generate(context.Background(), testConfig(server.URL), "list files")
	if !errors.Is(err, domain.ErrConnectivity) {
		t.Fatalf("err = %v, want ErrConnectivity", err)
	}
}

func TestGenerateModelError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.Client())
	_, err := client.Generate(context.Background(), testConfig(server.URL), "list files")
	if !errors.Is(err, domain.ErrModel) {
		t.Fatalf("err = %v, want ErrModel", err)
	}
}

func TestListModels(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"models": []map[string]string{
				{"name": "gemma3:4b"},
				{"name": "codellama:7b"},
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.Client())
	names, err := client.ListModels(context.Background(), testConfig(server.URL))
	if err != nil {
		t.Fatalf("ListModels error: %v", err)
	}
	if len(names) != 2 || names[0] != "gemma3:4b" {
		t.Fatalf("names = %v", names)
	}
}

func TestCheckReportsModelPresence(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"models": []map[string]string{{"name": "codellama:7b"}},
		})
	}))
	defer server.Close()

	client := NewClient(server.Client())

	status := client.Check(context.Background(), testConfig(server.URL))
	if !status.Reachable || status.ModelFound {
		t.Fatalf("status = %+v, want reachable without model", status)
	}
	if !strings.Contains(status.Message, "not found") {
		t.Fatalf("message = %q", status.Message)
	}

	cfg := testConfig(server.URL)
	cfg.OllamaModel = "codellama:7b"
	status = client.Check(context.Background(), cfg)
	if !status.ModelFound {
		t.Fatalf("status = %+v, want model found", status)
	}
}

func TestCheckOffline(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(http.DefaultClient)
	status := client.Check(context.Background(), testConfig(server.URL))
	if status.Reachable {
		t.Fatalf("status = %+v, want offline", status)
	}
	if status.Message != "Ollama offline" {
		t.Fatalf("message = %q", status.Message)
	}
}
