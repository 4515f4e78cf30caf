package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/f3rmion/smt/internal/config"
	"github.com/f3rmion/smt/internal/smt"
)

func fakeService(t *testing.T) string {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/translate", func(w http.ResponseWriter, r *http.Request) {
		var req smt.TranslationRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.SourceText != "Hello world" {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"Unsupported phrase"}`))
			return
		}
		json.NewEncoder(w).Encode(smt.TranslationResponse{TranslatedText: "Hola mundo"})
	})
	mux.HandleFunc("/evaluate_bleu", func(w http.ResponseWriter, r *http.Request) {
		var req smt.EvaluationRequest
		json.NewDecoder(r.Body).Decode(&req)
		score := 0.0
		for _, ref := range req.References {
			if ref == req.Candidate {
				score = 1
			}
		}
		json.NewEncoder(w).Encode(smt.EvaluationResult{
			BLEUScore:        score,
			PrecisionDetails: smt.Precisions{{Label: "1-gram", Value: score}},
			BrevityPenalty:   1,
			CandidateLength:  2,
			ReferenceLength:  2,
		})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv.URL
}

// resetFlags restores every flag in the tree to its default so runs do not
// leak into each other.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			sv.Replace(nil)
		} else {
			f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	// cobra keeps the first context it hands a subcommand; clear it so the
	// next Execute does not inherit the previous run's cancelled context.
	c.SetContext(nil)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// run executes the CLI with a fresh config file and returns its output.
func run(t *testing.T, serviceURL string, args ...string) (string, error) {
	t.Helper()
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	cfg := config.DefaultConfig()
	cfg.Service.URL = serviceURL
	cfg.Log.Level = "error"
	if err := config.Save(cfgPath, cfg); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	stdout = &out
	t.Cleanup(func() {
		stdout = os.Stdout
		resetFlags(rootCmd)
	})

	rootCmd.SetArgs(append([]string{"--config", cfgPath}, args...))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	err := Execute()
	return out.String(), err
}

func TestTranslateCommand(t *testing.T) {
	url := fakeService(t)
	out, err := run(t, url, "translate", "--to", "es", "Hello", "world")
	if err != nil {
		t.Fatalf("translate: %v\n%s", err, out)
	}
	if strings.TrimSpace(out) != "Hola mundo" {
		t.Errorf("output = %q", out)
	}
}

func TestTranslateCommandSameLanguage(t *testing.T) {
	url := fakeService(t)
	_, err := run(t, url, "translate", "--from", "en", "--to", "en", "Hello")
	if err == nil || err.Error() != "Source and target languages must be different" {
		t.Errorf("err = %v", err)
	}
}

func TestTranslateCommandServiceError(t *testing.T) {
	url := fakeService(t)
	_, err := run(t, url, "translate", "--to", "es", "Goodbye")
	if err == nil || err.Error() != "Unsupported phrase" {
		t.Errorf("err = %v", err)
	}
}

func TestEvaluateCommandTranslatesFirst(t *testing.T) {
	url := fakeService(t)
	out, err := run(t, url, "evaluate", "Hello world", "--to", "es", "--ref", "Hola mundo")
	if err != nil {
		t.Fatalf("evaluate: %v\n%s", err, out)
	}
	for _, want := range []string{"Translation: Hola mundo", "1.0000", "Excellent Quality"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestEvaluateCommandCandidateAndFile(t *testing.T) {
	url := fakeService(t)
	refs := filepath.Join(t.TempDir(), "refs.txt")
	if err := os.WriteFile(refs, []byte("\nSaludos\n  Hola mundo  \n"), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, url, "evaluate", "--candidate", "Hola mundo", "--refs-file", refs)
	if err != nil {
		t.Fatalf("evaluate: %v\n%s", err, out)
	}
	if strings.Contains(out, "Translation:") {
		t.Error("candidate mode should not translate")
	}
	if !strings.Contains(out, "1.0000") {
		t.Errorf("output = %s", out)
	}
}

func TestEvaluateCommandNoReferences(t *testing.T) {
	url := fakeService(t)
	_, err := run(t, url, "evaluate", "--candidate", "Hola mundo")
	if err == nil || err.Error() != "Please provide at least one reference translation" {
		t.Errorf("err = %v", err)
	}
}

func TestInitCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "smt", "config.yaml")
	var out bytes.Buffer
	stdout = &out
	t.Cleanup(func() {
		stdout = os.Stdout
		resetFlags(rootCmd)
	})

	rootCmd.SetArgs([]string{"--config", path, "init"})
	if err := Execute(); err != nil {
		t.Fatalf("init: %v", err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Service.URL != config.DefaultConfig().Service.URL {
		t.Errorf("URL = %q", cfg.Service.URL)
	}

	resetFlags(rootCmd)
	rootCmd.SetArgs([]string{"--config", path, "init"})
	if err := Execute(); err == nil {
		t.Error("second init without --force should fail")
	}
}

func TestHistoryCommandDisabled(t *testing.T) {
	url := fakeService(t)
	_, err := run(t, url, "history")
	if err == nil || !strings.Contains(err.Error(), "history is disabled") {
		t.Errorf("err = %v", err)
	}
}

func TestEvaluateRecordsHistory(t *testing.T) {
	url := fakeService(t)
	t.Setenv("SMT_HISTORY_PATH", filepath.Join(t.TempDir(), "history.db"))

	if out, err := run(t, url, "evaluate", "Hello world", "--to", "es", "--ref", "Hola mundo"); err != nil {
		t.Fatalf("evaluate: %v\n%s", err, out)
	}
	out, err := run(t, url, "history")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	for _, want := range []string{"en → es", "Hola mundo", "1.0000"} {
		if !strings.Contains(out, want) {
			t.Errorf("history missing %q:\n%s", want, out)
		}
	}
}
