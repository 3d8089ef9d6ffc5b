package cli

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/ppiankov/realitycheck/internal/model"
)

const endpointReply = `{"overallVerdict":"FALSE","overallConfidence":90,"overallSummary":"A popular myth.","claims":[{"text":"The Great Wall is visible from the Moon.","verdict":"FALSE","confidence":90,"explanation":"Far too narrow.","sources":[{"title":"NASA","url":"https://www.nasa.gov/great-wall","excerpt":""}]}]}`

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("REALITYCHECK_LLM_MODEL", "openai/gpt-4o-mini")
	t.Setenv("REALITYCHECK_SERVER_PORT", "9090")
	t.Setenv("LOVABLE_API_KEY", "lovable-key")
	initConfig()

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}

	if cfg.LLM.Model != "openai/gpt-4o-mini" {
		t.Errorf("Expected model from env, got %s", cfg.LLM.Model)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.LLM.APIKey != "lovable-key" {
		t.Errorf("Expected API key from LOVABLE_API_KEY, got %q", cfg.LLM.APIKey)
	}
	if cfg.LLM.Temperature != 0.3 {
		t.Errorf("Expected default temperature 0.3, got %v", cfg.LLM.Temperature)
	}
	if cfg.Client.MinTextLength != 20 {
		t.Errorf("Expected default min length 20, got %d", cfg.Client.MinTextLength)
	}
}

func TestAPIKeyFromEnv(t *testing.T) {
	t.Setenv("LOVABLE_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "openai-key")
	t.Setenv("ANTHROPIC_API_KEY", "anthropic-key")

	tests := []struct {
		provider string
		want     string
	}{
		{"openai", "openai-key"},
		{"", "openai-key"},
		{"anthropic", "anthropic-key"},
		{"claude", "anthropic-key"},
		{"ollama", ""},
	}

	for _, tt := range tests {
		if got := apiKeyFromEnv(tt.provider); got != tt.want {
			t.Errorf("apiKeyFromEnv(%q) = %q, want %q", tt.provider, got, tt.want)
		}
	}

	t.Setenv("LOVABLE_API_KEY", "lovable-key")
	if got := apiKeyFromEnv("openai"); got != "lovable-key" {
		t.Errorf("LOVABLE_API_KEY should take precedence, got %q", got)
	}
}

func TestWriteDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".realitycheck", "config.yaml")

	if err := writeDefaultConfig(path); err != nil {
		t.Fatalf("writeDefaultConfig failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}

	var cfg model.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		t.Fatalf("Written config is not valid YAML: %v", err)
	}
	if cfg.LLM.Model != "google/gemini-2.5-flash" {
		t.Errorf("Unexpected model %q", cfg.LLM.Model)
	}
	if strings.Contains(string(data), "api_key") {
		t.Error("Default config must not contain an api_key entry")
	}

	if err := writeDefaultConfig(path); err == nil {
		t.Error("Expected error when config already exists")
	}
}

func TestReadInput(t *testing.T) {
	cfg := model.DefaultConfig()
	file := filepath.Join(t.TempDir(), "claim.txt")
	if err := os.WriteFile(file, []byte("from file"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	got, err := readInput(context.Background(), cfg, []string{"from", "args"}, strings.NewReader("from stdin"))
	if err != nil || got != "from args" {
		t.Errorf("Expected args text, got %q (%v)", got, err)
	}

	got, err = readInput(context.Background(), cfg, nil, strings.NewReader("from stdin"))
	if err != nil || got != "from stdin" {
		t.Errorf("Expected stdin text, got %q (%v)", got, err)
	}

	checkFile = file
	defer func() { checkFile = "" }()
	got, err = readInput(context.Background(), cfg, []string{"ignored"}, nil)
	if err != nil || got != "from file" {
		t.Errorf("Expected file text, got %q (%v)", got, err)
	}
}

func TestReadInput_URL(t *testing.T) {
	page := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`<html><head><title>Myths</title></head><body><p>The Great Wall is visible from the Moon.</p></body></html>`))
	}))
	defer page.Close()

	checkURL = page.URL + "/article"
	defer func() { checkURL = "" }()

	got, err := readInput(context.Background(), model.DefaultConfig(), nil, nil)
	if err != nil {
		t.Fatalf("readInput failed: %v", err)
	}
	if got != "Myths\nThe Great Wall is visible from the Moon." {
		t.Errorf("Unexpected text %q", got)
	}
}

func executeCheck(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(append([]string{"check"}, args...))
	defer func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestCheckCommand_RoundTrip(t *testing.T) {
	var requests atomic.Int32
	endpoint := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(endpointReply))
	}))
	defer endpoint.Close()

	mdPath := filepath.Join(t.TempDir(), "report.md")
	stdout, stderr, err := executeCheck(t, "--endpoint", endpoint.URL, "--expand", "--md", mdPath,
		"The Great Wall of China is visible from the Moon.")
	outMD = ""
	checkExpand = false
	if err != nil {
		t.Fatalf("check failed: %v\nstderr: %s", err, stderr)
	}

	if requests.Load() != 1 {
		t.Errorf("Expected 1 endpoint request, got %d", requests.Load())
	}
	if !strings.Contains(stdout, "Likely False (90%)") {
		t.Errorf("Expected overall badge in output:\n%s", stdout)
	}
	if !strings.Contains(stdout, "Based on analysis of 1 claim") {
		t.Errorf("Expected claim count in output:\n%s", stdout)
	}
	if !strings.Contains(stdout, "NASA <https://www.nasa.gov/great-wall>") {
		t.Errorf("Expected expanded sources in output:\n%s", stdout)
	}
	if !strings.Contains(stderr, "✓ Analysis complete!") {
		t.Errorf("Expected success notification, got:\n%s", stderr)
	}

	md, err := os.ReadFile(mdPath)
	if err != nil {
		t.Fatalf("Markdown report not written: %v", err)
	}
	if !strings.Contains(string(md), "[NASA](https://www.nasa.gov/great-wall)") {
		t.Errorf("Unexpected markdown:\n%s", md)
	}
}

func TestCheckCommand_ShortTextRejected(t *testing.T) {
	var requests atomic.Int32
	endpoint := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
	}))
	defer endpoint.Close()

	_, stderr, err := executeCheck(t, "--endpoint", endpoint.URL, "too short")
	if !errors.Is(err, ErrReported) {
		t.Fatalf("Expected ErrReported, got %v", err)
	}
	if !strings.Contains(stderr, "✗ Please enter at least 20 characters for meaningful analysis") {
		t.Errorf("Unexpected stderr:\n%s", stderr)
	}
	if requests.Load() != 0 {
		t.Error("Short text must not reach the endpoint")
	}
}

func TestCheckCommand_EndpointError(t *testing.T) {
	endpoint := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":"Rate limit exceeded. Please try again later."}`))
	}))
	defer endpoint.Close()

	_, stderr, err := executeCheck(t, "--endpoint", endpoint.URL, "The Great Wall of China is visible from the Moon.")
	if !errors.Is(err, ErrReported) {
		t.Fatalf("Expected ErrReported, got %v", err)
	}
	if !strings.Contains(stderr, "✗ Rate limit exceeded. Please try again later.") {
		t.Errorf("Unexpected stderr:\n%s", stderr)
	}
}

func TestVersionCommand(t *testing.T) {
	var stdout bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetArgs([]string{"version"})
	defer func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	}()

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if got := stdout.String(); got != "realitycheck v"+Version+"\n" {
		t.Errorf("Unexpected version output %q", got)
	}
}
