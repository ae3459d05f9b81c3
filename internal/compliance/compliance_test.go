package compliance

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	ssmtypes "github.com/aws/aws-sdk-go-v2/service/ssm/types"

	"github.com/K0NGR3SS/codesentry/internal/config"
)

func TestBuildPromptNumbersLines(t *testing.T) {
	got := BuildPrompt("app.py", strings.Repeat("x\n", 9)+"last")
	if !strings.HasPrefix(got, "File: app.py\n\n") {
		t.Fatalf("missing header: %q", got)
	}
	if !strings.Contains(got, " 1| x\n") || !strings.Contains(got, "10| last\n") {
		t.Fatalf("lines not numbered with padding: %q", got)
	}
}

func TestFailure(t *testing.T) {
	if got := Failure(errors.New("timeout")); got != "Error analyzing code: timeout" {
		t.Fatalf("Failure = %q", got)
	}
}

type chatRequest struct {
	Model     string `json:"model"`
	MaxTokens int    `json:"max_tokens"`
	Messages  []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func newChatServer(t *testing.T, status int, reply string, seen *chatRequest) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sk-test" {
			t.Errorf("authorization header = %q", got)
		}
		if seen != nil {
			_ = json.NewDecoder(r.Body).Decode(seen)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status != http.StatusOK {
			_, _ = w.Write([]byte(`{"error":{"message":"rate limited","type":"rate_limit"}}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-1",
			"object":  "chat.completion",
			"model":   "gpt-4o-mini",
			"choices": []map[string]any{{"index": 0, "message": map[string]string{"role": "assistant", "content": reply}}},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestOpenAIReviewer(t *testing.T) {
	var seen chatRequest
	srv := newChatServer(t, http.StatusOK, "  2: eval on user input. Fix: use json.loads\n", &seen)

	r, err := NewOpenAIReviewer(OpenAIOptions{
		APIKey:    "sk-test",
		BaseURL:   srv.URL + "/v1",
		Model:     "gpt-4o-mini",
		MaxTokens: 500,
		Timeout:   5 * time.Second,
	})
	if err != nil {
		t.Fatalf("NewOpenAIReviewer: %v", err)
	}

	got, err := r.Review(context.Background(), "app.py", "import os\neval(x)")
	if err != nil {
		t.Fatalf("Review: %v", err)
	}
	if got != "2: eval on user input. Fix: use json.loads" {
		t.Fatalf("reply = %q", got)
	}

	if seen.Model != "gpt-4o-mini" || seen.MaxTokens != 500 {
		t.Errorf("request = %+v", seen)
	}
	if len(seen.Messages) != 2 || seen.Messages[0].Role != "system" || !strings.Contains(seen.Messages[1].Content, "2| eval(x)") {
		t.Errorf("messages = %+v", seen.Messages)
	}
}

func TestOpenAIReviewerErrors(t *testing.T) {
	srv := newChatServer(t, http.StatusTooManyRequests, "", nil)
	r, _ := NewOpenAIReviewer(OpenAIOptions{APIKey: "sk-test", BaseURL: srv.URL + "/v1", Model: "m", MaxTokens: 10})
	if _, err := r.Review(context.Background(), "a.py", "x"); err == nil {
		t.Fatal("expected error for non-200 response")
	}

	empty := newChatServer(t, http.StatusOK, "   ", nil)
	r, _ = NewOpenAIReviewer(OpenAIOptions{APIKey: "sk-test", BaseURL: empty.URL + "/v1", Model: "m", MaxTokens: 10})
	if _, err := r.Review(context.Background(), "a.py", "x"); !errors.Is(err, ErrEmptyResponse) {
		t.Fatalf("expected ErrEmptyResponse, got %v", err)
	}

	if _, err := NewOpenAIReviewer(OpenAIOptions{}); !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}
}

type fakeConverse struct {
	out   *bedrockruntime.ConverseOutput
	err   error
	input *bedrockruntime.ConverseInput
}

func (f *fakeConverse) Converse(_ context.Context, in *bedrockruntime.ConverseInput, _ ...func(*bedrockruntime.Options)) (*bedrockruntime.ConverseOutput, error) {
	f.input = in
	return f.out, f.err
}

func textOutput(parts ...string) *bedrockruntime.ConverseOutput {
	var blocks []types.ContentBlock
	for _, p := range parts {
		blocks = append(blocks, &types.ContentBlockMemberText{Value: p})
	}
	return &bedrockruntime.ConverseOutput{
		Output: &types.ConverseOutputMemberMessage{
			Value: types.Message{Role: types.ConversationRoleAssistant, Content: blocks},
		},
	}
}

func TestBedrockReviewer(t *testing.T) {
	api := &fakeConverse{out: textOutput("3: hardcoded password.", " Fix: read it from the environment\n")}
	r := NewBedrockReviewer(api, "model-x", 300, time.Second)

	got, err := r.Review(context.Background(), "db.py", "a\nb\npassword = 'x'")
	if err != nil {
		t.Fatalf("Review: %v", err)
	}
	if got != "3: hardcoded password. Fix: read it from the environment" {
		t.Fatalf("reply = %q", got)
	}
	if aws.ToString(api.input.ModelId) != "model-x" || aws.ToInt32(api.input.InferenceConfig.MaxTokens) != 300 {
		t.Errorf("unexpected input: %+v", api.input)
	}
	if len(api.input.System) != 1 || len(api.input.Messages) != 1 {
		t.Errorf("unexpected messages: %+v", api.input)
	}
}

func TestBedrockReviewerErrors(t *testing.T) {
	r := NewBedrockReviewer(&fakeConverse{err: errors.New("throttled")}, "m", 10, 0)
	if _, err := r.Review(context.Background(), "a", "b"); err == nil || !strings.Contains(err.Error(), "throttled") {
		t.Fatalf("expected wrapped API error, got %v", err)
	}

	r = NewBedrockReviewer(&fakeConverse{out: &bedrockruntime.ConverseOutput{}}, "m", 10, 0)
	if _, err := r.Review(context.Background(), "a", "b"); !errors.Is(err, ErrEmptyResponse) {
		t.Fatalf("expected ErrEmptyResponse, got %v", err)
	}
}

type fakeSSM struct{ value string }

func (f fakeSSM) GetParameter(context.Context, *ssm.GetParameterInput, ...func(*ssm.Options)) (*ssm.GetParameterOutput, error) {
	return &ssm.GetParameterOutput{Parameter: &ssmtypes.Parameter{Value: aws.String(f.value)}}, nil
}

func TestNew(t *testing.T) {
	cfg := config.Default().Compliance
	env := func(k string) string {
		if k == "OPENAI_API_KEY" {
			return "sk-env"
		}
		return ""
	}

	r, err := New(context.Background(), cfg, Deps{Getenv: env})
	if err != nil {
		t.Fatalf("New(openai): %v", err)
	}
	if _, ok := r.(*OpenAIReviewer); !ok {
		t.Fatalf("expected *OpenAIReviewer, got %T", r)
	}

	noKey := func(string) string { return "" }
	if _, err := New(context.Background(), cfg, Deps{Getenv: noKey}); !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}

	ssmCfg := cfg
	ssmCfg.APIKeySSMParameter = "/codesentry/key"
	if _, err := New(context.Background(), ssmCfg, Deps{Getenv: noKey, SSM: fakeSSM{value: "sk-ssm"}}); err != nil {
		t.Fatalf("New with SSM key: %v", err)
	}
	if _, err := New(context.Background(), ssmCfg, Deps{Getenv: noKey}); err == nil {
		t.Fatal("expected error when SSM parameter is set without a client")
	}

	bedrockCfg := cfg
	bedrockCfg.Provider = config.ProviderBedrock
	r, err = New(context.Background(), bedrockCfg, Deps{Bedrock: &fakeConverse{}})
	if err != nil {
		t.Fatalf("New(bedrock): %v", err)
	}
	if _, ok := r.(*BedrockReviewer); !ok {
		t.Fatalf("expected *BedrockReviewer, got %T", r)
	}
	if _, err := New(context.Background(), bedrockCfg, Deps{}); err == nil {
		t.Fatal("expected error without bedrock client")
	}

	badCfg := cfg
	badCfg.Provider = "davinci-codex"
	if _, err := New(context.Background(), badCfg, Deps{}); !errors.Is(err, ErrUnknownProvider) {
		t.Fatalf("expected ErrUnknownProvider, got %v", err)
	}
}
