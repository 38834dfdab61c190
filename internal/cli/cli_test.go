package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"folio-cli/internal/store"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
)

func runCLI(t *testing.T, args []string) (stdout []byte, stderr []byte, err error) {
	t.Helper()

	cmd := NewRootCmd()

	var outBuf bytes.Buffer
	var errBuf bytes.Buffer
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)

	e := cmd.Execute()
	return outBuf.Bytes(), errBuf.Bytes(), e
}

// isolate points config and data at temp dirs so a developer's own setup
// never leaks into a test.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", home)
	t.Setenv("FOLIO_HOME", filepath.Join(home, ".folio"))
	t.Setenv("FOLIO_CONFIG", "")
	t.Setenv("FOLIO_CONTENT", "")
	t.Setenv("FOLIO_FORMAT", "")
	return filepath.Join(home, ".folio")
}

func mustEnvelope(t *testing.T, args ...string) map[string]any {
	t.Helper()
	stdout, stderr, err := runCLI(t, args)
	if err != nil {
		t.Fatalf("folio %v: %v\nstderr:\n%s", args, err, stderr)
	}
	var env map[string]any
	if err := json.Unmarshal(stdout, &env); err != nil {
		t.Fatalf("unmarshal envelope: %v\nstdout:\n%s", err, stdout)
	}
	if _, ok := env["data"]; !ok {
		t.Fatalf("expected data key; got %v", env)
	}
	if hints, ok := env["_hints"]; ok && hints != nil {
		if _, ok := hints.([]any); !ok {
			t.Fatalf("expected _hints to be list; got %T", hints)
		}
	}
	return env
}

func titles(t *testing.T, data any) []string {
	t.Helper()
	m, _ := data.(map[string]any)
	list, ok := m["actions"].([]any)
	if !ok {
		t.Fatalf("expected actions list; got %#v", m["actions"])
	}
	out := []string{}
	for _, a := range list {
		am, _ := a.(map[string]any)
		s, _ := am["title"].(string)
		out = append(out, s)
	}
	return out
}

func TestActions_Filter(t *testing.T) {
	isolate(t)

	tests := []struct {
		name   string
		filter []string
		want   []string
	}{
		{name: "all", want: []string{"Request a Build Sprint", "Explore Selected Work", "View Tooling Stack", "Open GitHub"}},
		{name: "title", filter: []string{"GIT"}, want: []string{"Open GitHub"}},
		{name: "description", filter: []string{"copilots"}, want: []string{"View Tooling Stack"}},
		{name: "none", filter: []string{"zzz"}, want: []string{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			env := mustEnvelope(t, append([]string{"actions"}, tc.filter...)...)
			if diff := cmp.Diff(tc.want, titles(t, env["data"])); diff != "" {
				t.Fatalf("titles (-want +got):\n%s", diff)
			}
		})
	}
}

func TestActions_RunFirstMatch(t *testing.T) {
	isolate(t)

	env := mustEnvelope(t, "actions", "work", "--run")
	data := env["data"].(map[string]any)
	raw, _ := json.Marshal(data["effects"])
	var got []effectOut
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("unmarshal effects: %v", err)
	}
	want := []effectOut{
		{Kind: "hide"},
		{Kind: "focus-trigger"},
		{Kind: "navigate", Target: "#projects"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("effects (-want +got):\n%s", diff)
	}
	if opened, _ := data["opened"].(bool); opened {
		t.Fatalf("expected opened=false without --open")
	}
}

func TestActions_RunExternal(t *testing.T) {
	isolate(t)

	env := mustEnvelope(t, "actions", "github", "--run")
	data := env["data"].(map[string]any)
	effects := data["effects"].([]any)
	last := effects[len(effects)-1].(map[string]any)
	if last["kind"] != "open-external" || last["target"] != "https://github.com" {
		t.Fatalf("unexpected last effect: %#v", last)
	}
}

func TestActions_RunNoMatch(t *testing.T) {
	isolate(t)

	_, stderr, err := runCLI(t, []string{"actions", "zzz", "--run"})
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(string(stderr), `no action matches "zzz"`) {
		t.Fatalf("unexpected stderr: %s", stderr)
	}
}

func TestActions_YAMLFormat(t *testing.T) {
	isolate(t)

	stdout, stderr, err := runCLI(t, []string{"--format", "yaml", "actions", "git"})
	if err != nil {
		t.Fatalf("actions: %v\n%s", err, stderr)
	}
	if !strings.Contains(string(stdout), "title: Open GitHub") {
		t.Fatalf("expected yaml output; got:\n%s", stdout)
	}
}

func TestContent_InitValidateAndOverride(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "site", "content.yaml")
	env := mustEnvelope(t, "content", "init", path)
	if got := env["data"].(map[string]any)["format"]; got != "yaml" {
		t.Fatalf("format: got %v", got)
	}

	if _, _, err := runCLI(t, []string{"content", "init", path}); err == nil {
		t.Fatalf("expected init to refuse an existing file")
	}
	mustEnvelope(t, "content", "init", path, "--force")

	env = mustEnvelope(t, "content", "validate", path)
	if valid, _ := env["data"].(map[string]any)["valid"].(bool); !valid {
		t.Fatalf("expected valid; got %#v", env["data"])
	}

	override := filepath.Join(t.TempDir(), "brand.yaml")
	if err := os.WriteFile(override, []byte("brand: acme.studio\nactions:\n  - title: Ping\n    description: Say hi\n    destination: contact\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	env = mustEnvelope(t, "--content", override, "content", "show")
	if got := env["data"].(map[string]any)["brand"]; got != "acme.studio" {
		t.Fatalf("brand: got %v", got)
	}
	if diff := cmp.Diff([]string{"Ping"}, titles(t, env["data"])); diff != "" {
		t.Fatalf("actions (-want +got):\n%s", diff)
	}

	env = mustEnvelope(t, "--content", override, "actions", "ping", "--run")
	effects := env["data"].(map[string]any)["effects"].([]any)
	last := effects[len(effects)-1].(map[string]any)
	if last["target"] != "#contact" {
		t.Fatalf("expected normalized anchor; got %#v", last)
	}
}

func TestContent_ValidateRejectsBadFile(t *testing.T) {
	isolate(t)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("sections:\n  - id: hero\n    title: A\n  - id: hero\n    title: B\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := runCLI(t, []string{"content", "validate", bad}); err == nil {
		t.Fatalf("expected duplicate section ids to fail validation")
	}
	if _, _, err := runCLI(t, []string{"content", "validate"}); err == nil {
		t.Fatalf("expected missing path to fail")
	}
}

func TestInbox_ListsStoredRequests(t *testing.T) {
	dataDir := isolate(t)

	env := mustEnvelope(t, "inbox")
	data := env["data"].(map[string]any)
	if data["count"].(float64) != 0 {
		t.Fatalf("expected empty inbox; got %#v", data)
	}
	if reqs, ok := data["requests"].([]any); !ok || len(reqs) != 0 {
		t.Fatalf("expected empty list, not null; got %#v", data["requests"])
	}

	ctx := context.Background()
	in, err := store.Store{Dir: dataDir}.Open(ctx)
	if err != nil {
		t.Fatalf("open inbox: %v", err)
	}
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	for i, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		if _, err := in.Add(ctx, email, store.SourceWeb, base.Add(time.Duration(i)*time.Minute)); err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	_ = in.Close()

	env = mustEnvelope(t, "inbox", "--limit", "2")
	data = env["data"].(map[string]any)
	if data["count"].(float64) != 3 {
		t.Fatalf("count: got %v", data["count"])
	}
	reqs := data["requests"].([]any)
	if len(reqs) != 2 {
		t.Fatalf("expected 2 requests; got %d", len(reqs))
	}
	if got := reqs[0].(map[string]any)["email"]; got != "c@example.com" {
		t.Fatalf("expected newest first; got %v", got)
	}

	if _, _, err := runCLI(t, []string{"inbox", "--limit", "-1"}); err == nil {
		t.Fatalf("expected negative limit to fail")
	}
}

func TestChildArgs(t *testing.T) {
	t.Parallel()

	app := &App{ConfigPath: "/etc/folio.yaml"}
	app.cfg.Content = "site.yaml"
	app.cfg.DataDir = "/tmp/folio"
	want := []string{"--config", "/etc/folio.yaml", "--content", "site.yaml", "--data-dir", "/tmp/folio"}
	if diff := cmp.Diff(want, app.childArgs()); diff != "" {
		t.Fatalf("childArgs (-want +got):\n%s", diff)
	}
	if got := (&App{}).childArgs(); len(got) != 0 {
		t.Fatalf("expected no args; got %v", got)
	}
}

func TestListen_RequiresAddr(t *testing.T) {
	t.Parallel()

	if _, err := listen("  ", false, "/"); err == nil {
		t.Fatalf("expected error")
	}
	l, err := listen("127.0.0.1:0", false, "/terminal")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer l.ln.Close()
	if !strings.HasPrefix(l.url, "http://127.0.0.1:") || !strings.HasSuffix(l.url, "/terminal") {
		t.Fatalf("unexpected url %q", l.url)
	}
}

func TestDocs(t *testing.T) {
	isolate(t)

	env := mustEnvelope(t, "docs")
	topics, _ := env["data"].(map[string]any)["topics"].([]any)
	if len(topics) == 0 {
		t.Fatalf("expected topics; got %#v", env["data"])
	}

	stdout, _, err := runCLI(t, []string{"docs", "palette", "--raw"})
	if err != nil {
		t.Fatalf("docs palette: %v", err)
	}
	if !strings.HasPrefix(string(stdout), "# The command palette") {
		t.Fatalf("unexpected raw output:\n%s", stdout)
	}

	if _, _, err := runCLI(t, []string{"docs", "nope"}); err == nil {
		t.Fatalf("expected unknown topic to fail")
	}
}

func TestServe_StopsOnCancel(t *testing.T) {
	t.Parallel()

	l, err := listen("127.0.0.1:0", false, "/")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	workerStopped := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- serve(ctx, zap.NewNop(), l, http.NotFoundHandler(), func(ctx context.Context) error {
			<-ctx.Done()
			close(workerStopped)
			return nil
		})
	}()

	resp, err := http.Get(l.url)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status: got %d", resp.StatusCode)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("serve: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("serve did not stop")
	}
	<-workerStopped
}
