package blackbox

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"

	"modelhub/internal/fakehub"
	"modelhub/pkg/types"
)

func projectRootFromThisFile(t *testing.T) string {
	t.Helper()
	_, thisFile, _, ok := runtime.Caller(0)
	if !ok { t.Fatal("runtime.Caller failed") }
	// this file: <root>/tests/blackbox/blackbox_test.go
	bbDir := filepath.Dir(thisFile)
	return filepath.Dir(filepath.Dir(bbDir))
}

func buildBinary(t *testing.T) string {
	t.Helper()
	root := projectRootFromThisFile(t)
	binPath := filepath.Join(t.TempDir(), "modelhub")
	cmd := exec.Command("go", "build", "-o", binPath, "./cmd/modelhub")
	cmd.Dir = root
	cmd.Env = append(os.Environ(), "CGO_ENABLED=0")
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("go build failed: %v\n%s", err, string(out))
	}
	return binPath
}

// runBin executes the binary with a clean MODELHUB_* environment.
func runBin(t *testing.T, bin string, args ...string) (int, []byte, []byte) {
	t.Helper()
	cmd := exec.Command(bin, args...)
	var env []string
	for _, kv := range os.Environ() {
		if len(kv) >= 9 && kv[:9] == "MODELHUB_" { continue }
		env = append(env, kv)
	}
	cmd.Env = env
	var stdout, stderr bytes.Buffer
	cmd.Stdout, cmd.Stderr = &stdout, &stderr
	err := cmd.Run()
	code := 0
	if ee, ok := err.(*exec.ExitError); ok {
		code = ee.ExitCode()
	} else if err != nil {
		t.Fatalf("run %v: %v", args, err)
	}
	return code, stdout.Bytes(), stderr.Bytes()
}

func TestBlackbox_Flow(t *testing.T) {
	bin := buildBinary(t)
	hub := fakehub.New()
	ts := httptest.NewServer(hub.Handler())
	defer ts.Close()

	model := filepath.Join(t.TempDir(), "crate.obj")
	if err := os.WriteFile(model, []byte("v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"), 0o644); err != nil {
		t.Fatalf("write model: %v", err)
	}

	code, out, errOut := runBin(t, bin, "--base-url", ts.URL, "--token", "tok", "upload", model, "--name", "Crate", "--source", "blackbox")
	if code != 0 { t.Fatalf("upload exit=%d stderr=%s", code, errOut) }
	var up struct {
		ModelID string `json:"model_id"`
	}
	if err := json.Unmarshal(out, &up); err != nil || up.ModelID == "" {
		t.Fatalf("upload output %q: %v", out, err)
	}

	// freshly uploaded models are still processing
	code, _, _ = runBin(t, bin, "--base-url", ts.URL, "ready", up.ModelID)
	if code != 3 { t.Fatalf("expected exit 3 while processing, got %d", code) }

	hub.SetProcessing(up.ModelID, types.ProcessingSucceeded)
	code, _, errOut = runBin(t, bin, "--base-url", ts.URL, "ready", up.ModelID)
	if code != 0 { t.Fatalf("ready exit=%d stderr=%s", code, errOut) }

	code, out, errOut = runBin(t, bin, "--base-url", ts.URL, "get", up.ModelID)
	if code != 0 { t.Fatalf("get exit=%d stderr=%s", code, errOut) }
	var m types.Model
	if err := json.Unmarshal(out, &m); err != nil { t.Fatalf("get json: %v body=%s", err, out) }
	if m.UID != up.ModelID || m.Name != "Crate" { t.Fatalf("unexpected model: %+v", m) }
}

func TestBlackbox_Update_UnknownModel(t *testing.T) {
	bin := buildBinary(t)
	hub := fakehub.New()
	ts := httptest.NewServer(hub.Handler())
	defer ts.Close()

	code, _, errOut := runBin(t, bin, "--base-url", ts.URL, "--token", "tok", "update", "missing", "--name", "x")
	if code != 1 { t.Fatalf("expected exit 1, got %d stderr=%s", code, errOut) }
	if !bytes.Contains(errOut, []byte("404")) { t.Fatalf("expected 404 in stderr, got %s", errOut) }
}
