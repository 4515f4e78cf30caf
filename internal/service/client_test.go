package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/f3rmion/smt/internal/apperrors"
	"github.com/f3rmion/smt/internal/smt"
)

func newTestClient(t *testing.T, h http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	server := httptest.NewServer(h)
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, opts...)
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	return c
}

func TestNewClientRejectsBadURL(t *testing.T) {
	for _, raw := range []string{"", "ftp://example.com", "http://", "::bad"} {
		if _, err := NewClient(raw); err == nil {
			t.Errorf("NewClient(%q) expected error", raw)
		}
	}
}

func TestTranslateSuccess(t *testing.T) {
	var got smt.TranslationRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/translate" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"translated_text":"Hola mundo","source_lang":"en","target_lang":"es"}`))
	})

	resp, err := c.Translate(context.Background(), smt.TranslationRequest{SourceText: "Hello world", SourceLang: "en", TargetLang: "es"})
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	if resp.TranslatedText != "Hola mundo" {
		t.Errorf("TranslatedText = %q", resp.TranslatedText)
	}
	want := smt.TranslationRequest{SourceText: "Hello world", SourceLang: "en", TargetLang: "es"}
	if got != want {
		t.Errorf("request payload = %+v, want %+v", got, want)
	}
}

func TestEvaluateSuccess(t *testing.T) {
	var got smt.EvaluationRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/evaluate_bleu" {
			t.Errorf("path = %s", r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&got)
		w.Write([]byte(`{"bleu_score":1.0,"precision_details":{"1-gram":1.0,"2-gram":1.0},"brevity_penalty":1.0,"candidate_length":2,"reference_length":2}`))
	})

	res, err := c.Evaluate(context.Background(), smt.EvaluationRequest{Candidate: "Hola mundo", References: []string{"Hola mundo"}})
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if res.BLEUScore != 1.0 || len(res.PrecisionDetails) != 2 || res.PrecisionDetails[0].Label != "1-gram" {
		t.Errorf("result = %+v", res)
	}
	if !reflect.DeepEqual(got.References, []string{"Hola mundo"}) || got.Candidate != "Hola mundo" {
		t.Errorf("payload = %+v", got)
	}
}

func TestServiceErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		kind    apperrors.Kind
		message string
	}{
		{"server message", http.StatusBadRequest, `{"error":"Source text is required"}`, apperrors.KindService, "Source text is required"},
		{"no message", http.StatusInternalServerError, `{}`, apperrors.KindService, TranslateFailed},
		{"malformed error body", http.StatusBadGateway, `<html>bad gateway</html>`, apperrors.KindTransport, ""},
		{"malformed success body", http.StatusOK, `not json`, apperrors.KindTransport, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			_, err := c.Translate(context.Background(), smt.TranslationRequest{SourceText: "x", SourceLang: "en", TargetLang: "fr"})
			if !apperrors.Is(err, tt.kind) {
				t.Fatalf("error = %v, want kind %s", err, tt.kind)
			}
			msg := apperrors.PublicMessage(err)
			if tt.message != "" && msg != tt.message {
				t.Errorf("message = %q, want %q", msg, tt.message)
			}
			if tt.kind == apperrors.KindTransport && !strings.HasPrefix(msg, "Network error: ") {
				t.Errorf("transport message = %q", msg)
			}
		})
	}
}

func TestEvaluateFallbackMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":""}`))
	})
	_, err := c.Evaluate(context.Background(), smt.EvaluationRequest{Candidate: "a", References: []string{"a"}})
	if got := apperrors.PublicMessage(err); got != EvaluateFailed {
		t.Errorf("message = %q, want %q", got, EvaluateFailed)
	}
}

func TestTransportErrorOnUnreachableHost(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := server.URL
	server.Close()

	c, err := NewClient(url)
	if err != nil {
		t.Fatal(err)
	}
	_, err = c.Translate(context.Background(), smt.TranslationRequest{SourceText: "x", SourceLang: "en", TargetLang: "fr"})
	if !apperrors.Is(err, apperrors.KindTransport) {
		t.Fatalf("error = %v, want transport", err)
	}
}

func TestTimeout(t *testing.T) {
	release := make(chan struct{})
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}, WithTimeout(50*time.Millisecond))
	defer close(release)

	_, err := c.Translate(context.Background(), smt.TranslationRequest{SourceText: "x", SourceLang: "en", TargetLang: "fr"})
	if !apperrors.Is(err, apperrors.KindTransport) {
		t.Fatalf("error = %v, want transport", err)
	}
}

func TestBreakerOpensOnTransportFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := server.URL
	server.Close()

	c, err := NewClient(url, WithBreaker(2, time.Minute))
	if err != nil {
		t.Fatal(err)
	}

	req := smt.TranslationRequest{SourceText: "x", SourceLang: "en", TargetLang: "fr"}
	for i := 0; i < 2; i++ {
		c.Translate(context.Background(), req)
	}
	_, err = c.Translate(context.Background(), req)
	if !apperrors.Is(err, apperrors.KindTransport) {
		t.Fatalf("error = %v, want transport", err)
	}
	if !strings.Contains(apperrors.PublicMessage(err), "service unavailable") {
		t.Errorf("expected open breaker message, got %q", apperrors.PublicMessage(err))
	}
}

func TestBreakerIgnoresServiceErrors(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"nope"}`))
	}, WithBreaker(1, time.Minute))

	for i := 0; i < 3; i++ {
		_, err := c.Evaluate(context.Background(), smt.EvaluationRequest{Candidate: "a", References: []string{"b"}})
		if !apperrors.Is(err, apperrors.KindService) {
			t.Fatalf("call %d: error = %v, want service", i, err)
		}
	}
}

func TestTranslateAndEvaluate(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/translate_and_evaluate" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Write([]byte(`{"translated_text":"Bonjour","source_lang":"en","target_lang":"fr","bleu_evaluation":{"bleu_score":0.5,"precision_details":{"1-gram":0.5},"brevity_penalty":1,"candidate_length":1,"reference_length":1}}`))
	})

	resp, err := c.TranslateAndEvaluate(context.Background(), smt.CombinedRequest{SourceText: "Hello", SourceLang: "en", TargetLang: "fr", References: []string{"Salut"}})
	if err != nil {
		t.Fatalf("TranslateAndEvaluate() error = %v", err)
	}
	if resp.TranslatedText != "Bonjour" || resp.Evaluation == nil || resp.Evaluation.BLEUScore != 0.5 {
		t.Errorf("response = %+v", resp)
	}
}

func TestEndpointKeepsBasePath(t *testing.T) {
	c, err := NewClient("http://localhost:5000/api/")
	if err != nil {
		t.Fatal(err)
	}
	if got := c.endpoint(translatePath); got != "http://localhost:5000/api/translate" {
		t.Errorf("endpoint() = %q", got)
	}
}
