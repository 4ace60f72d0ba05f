package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"modelhub/internal/fakehub"
	"modelhub/pkg/types"
)

// clearEnv keeps MODELHUB_* variables from the developer's shell out of tests.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"MODELHUB_BASE_URL", "MODELHUB_TOKEN", "MODELHUB_TOKEN_TYPE", "MODELHUB_SOURCE", "MODELHUB_LOG_LEVEL", "MODELHUB_REQUEST_TIMEOUT_SECONDS"} {
		t.Setenv(k, "")
	}
}

func startHub(t *testing.T) (*fakehub.Server, string) {
	t.Helper()
	hub := fakehub.New()
	ts := httptest.NewServer(hub.Handler())
	t.Cleanup(ts.Close)
	return hub, ts.URL
}

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code := MainWithArgs(context.Background(), args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestUploadUpdateGetReady(t *testing.T) {
	clearEnv(t)
	hub, base := startHub(t)
	file := filepath.Join(t.TempDir(), "bridge.glb")
	if err := os.WriteFile(file, []byte("glTF-binary"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	code, out, errOut := runCLI(t, "--base-url", base, "--token", "tok", "--token-type", "token",
		"upload", file, "--name", "Bridge", "--tag", "stone", "--tag", "old", "--source", "cli-test", "--private")
	if code != exitOK {
		t.Fatalf("upload exit=%d stderr=%s", code, errOut)
	}
	var res uploadResult
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("decode upload output %q: %v", out, err)
	}
	if res.ModelID == "" || res.StatusCode != 201 {
		t.Fatalf("unexpected upload result: %+v", res)
	}
	subs := hub.Submissions(res.ModelID)
	if len(subs) != 1 {
		t.Fatalf("expected one submission, got %d", len(subs))
	}
	s := subs[0]
	if s.Authorization != "Token tok" || s.Fields["source"][0] != "cli-test" || s.Fields["private"][0] != "1" {
		t.Fatalf("unexpected submission: %+v", s)
	}
	if _, ok := s.Fields["isPublished"]; ok {
		t.Fatalf("--published was not given and must not be sent")
	}

	code, _, errOut = runCLI(t, "--base-url", base, "--token", "tok", "update", res.ModelID, "--name", "Old Bridge", "--published")
	if code != exitOK {
		t.Fatalf("update exit=%d stderr=%s", code, errOut)
	}

	code, _, _ = runCLI(t, "--base-url", base, "ready", res.ModelID)
	if code != exitNotReady {
		t.Fatalf("expected not-ready exit code, got %d", code)
	}
	hub.SetProcessing(res.ModelID, types.ProcessingSucceeded)
	code, out, _ = runCLI(t, "--base-url", base, "ready", res.ModelID)
	if code != exitOK || !strings.Contains(out, `"ready": true`) {
		t.Fatalf("ready exit=%d out=%s", code, out)
	}

	code, out, errOut = runCLI(t, "--base-url", base, "get", res.ModelID)
	if code != exitOK {
		t.Fatalf("get exit=%d stderr=%s", code, errOut)
	}
	var m types.Model
	if err := json.Unmarshal([]byte(out), &m); err != nil {
		t.Fatalf("decode model: %v", err)
	}
	if m.Name != "Old Bridge" || !m.IsPublished || !m.IsPrivate || len(m.Tags) != 2 {
		t.Fatalf("unexpected model: %+v", m)
	}
}

func TestUpload_RequiresToken(t *testing.T) {
	clearEnv(t)
	_, base := startHub(t)
	code, _, errOut := runCLI(t, "--base-url", base, "upload", "/tmp/whatever.glb")
	if code != exitError || !strings.Contains(errOut, "token is required") {
		t.Fatalf("exit=%d stderr=%s", code, errOut)
	}
}

func TestUpload_MissingFile(t *testing.T) {
	clearEnv(t)
	hub, base := startHub(t)
	code, _, errOut := runCLI(t, "--base-url", base, "--token", "t", "upload", filepath.Join(t.TempDir(), "nope.obj"))
	if code != exitError || !strings.Contains(errOut, "not found") {
		t.Fatalf("exit=%d stderr=%s", code, errOut)
	}
	if hub.Len() != 0 {
		t.Fatalf("nothing should be uploaded")
	}
}

func TestGet_UnknownModelFails(t *testing.T) {
	clearEnv(t)
	_, base := startHub(t)
	code, _, errOut := runCLI(t, "--base-url", base, "get", "missing")
	if code != exitError || !strings.Contains(errOut, "404") {
		t.Fatalf("exit=%d stderr=%s", code, errOut)
	}
}

func TestConfigFileAndEnv(t *testing.T) {
	clearEnv(t)
	hub, base := startHub(t)
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "modelhub.yaml")
	cfg := "base_url: http://127.0.0.1:1/unused\ntoken: from-file\nsource: file-source\nlog_level: \"off\"\n"
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o644); err != nil {
		t.Fatalf("write cfg: %v", err)
	}
	file := filepath.Join(dir, "m.obj")
	_ = os.WriteFile(file, []byte("v 0 0 0"), 0o644)
	// env overrides the file, flags would override env
	t.Setenv("MODELHUB_BASE_URL", base)

	code, out, errOut := runCLI(t, "--config", cfgPath, "upload", file)
	if code != exitOK {
		t.Fatalf("exit=%d stderr=%s", code, errOut)
	}
	if errOut != "" {
		t.Fatalf("log_level off should silence logs, got %q", errOut)
	}
	var res uploadResult
	_ = json.Unmarshal([]byte(out), &res)
	subs := hub.Submissions(res.ModelID)
	if len(subs) != 1 || subs[0].Authorization != "Bearer from-file" || subs[0].Fields["source"][0] != "file-source" {
		t.Fatalf("unexpected submission: %+v", subs)
	}
}

func TestBadTokenType(t *testing.T) {
	clearEnv(t)
	code, _, errOut := runCLI(t, "--token-type", "basic", "get", "x")
	if code != exitError || !strings.Contains(errOut, "unknown token type") {
		t.Fatalf("exit=%d stderr=%s", code, errOut)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]string{"": "info", "debug": "debug", "WARN": "warn", "err": "error", "off": "disabled", "weird": "info"}
	for in, want := range cases {
		if got := parseLevel(in).String(); got != want {
			t.Fatalf("parseLevel(%q) = %s, want %s", in, got, want)
		}
	}
}
