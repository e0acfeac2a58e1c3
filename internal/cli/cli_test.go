package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/dhvcc/github-contribution-treemap-generator/pkg/cache"
	"github.com/dhvcc/github-contribution-treemap-generator/pkg/integrations/github"
)

// fakeGitHub serves the viewer and search queries. Searches for "ghost"
// fail with NOT_FOUND.
type fakeGitHub struct {
	*httptest.Server
	viewerCalls atomic.Int32
	searchCalls atomic.Int32
}

func newFakeGitHub(t *testing.T) *fakeGitHub {
	t.Helper()
	f := &fakeGitHub{}
	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Query     string         `json:"query"`
			Variables map[string]any `json:"variables"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if r.Header.Get("Authorization") == "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		if strings.Contains(req.Query, "viewer") {
			f.viewerCalls.Add(1)
			json.NewEncoder(w).Encode(map[string]any{
				"data": map[string]any{"viewer": map[string]any{"login": "octocat"}},
			})
			return
		}

		f.searchCalls.Add(1)
		q, _ := req.Variables["q"].(string)
		if strings.HasPrefix(q, "author:ghost ") {
			json.NewEncoder(w).Encode(map[string]any{
				"data":   nil,
				"errors": []any{map[string]any{"type": "NOT_FOUND", "message": "Could not resolve to a User"}},
			})
			return
		}
		json.NewEncoder(w).Encode(searchPage(
			repoNode("golang/go", 120000),
			repoNode("golang/go", 120000),
			repoNode("spf13/cobra", 38000),
			repoNode("octocat/hello", 5),
		))
	}))
	t.Cleanup(f.Close)
	return f
}

func repoNode(repo string, stars int) map[string]any {
	owner, name, _ := strings.Cut(repo, "/")
	return map[string]any{
		"number":   1,
		"title":    "Fix " + name,
		"url":      "https://github.com/" + repo + "/pull/1",
		"mergedAt": "2024-05-01T10:00:00Z",
		"repository": map[string]any{
			"nameWithOwner":  repo,
			"name":           name,
			"owner":          map[string]any{"login": owner},
			"stargazerCount": stars,
		},
	}
}

func searchPage(nodes ...map[string]any) map[string]any {
	return map[string]any{
		"data": map[string]any{
			"search": map[string]any{
				"issueCount": len(nodes),
				"pageInfo":   map[string]any{"hasNextPage": false, "endCursor": ""},
				"nodes":      nodes,
			},
		},
	}
}

// testCLI is a CLI wired to buffers, a fake environment and a fake GitHub.
type testCLI struct {
	*CLI
	stdout bytes.Buffer
	stderr bytes.Buffer
	env    map[string]string
}

func newTestCLI(t *testing.T, endpoint string) *testCLI {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	tc := &testCLI{env: map[string]string{}}
	tc.CLI = New(&tc.stderr, LogInfo)
	tc.out = &tc.stdout
	tc.getenv = func(k string) string { return tc.env[k] }
	if endpoint != "" {
		tc.githubOpts = []github.Option{github.WithEndpoint(endpoint)}
	}
	return tc
}

func (tc *testCLI) run(args ...string) error {
	root := tc.RootCommand()
	root.SetOut(&tc.stdout)
	root.SetErr(&tc.stderr)
	root.SetArgs(args)
	return root.ExecuteContext(context.Background())
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "svg"},
		{"svg", "svg"},
		{"svg,png", "svg,png"},
		{" SVG , json ,", "svg,json"},
		{"png,png,svg", "png,svg"},
		{",,", "svg"},
	}
	for _, tt := range tests {
		if got := strings.Join(parseFormats(tt.in), ","); got != tt.want {
			t.Errorf("parseFormats(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFirstNonEmpty(t *testing.T) {
	if got := firstNonEmpty("", "  ", " env "); got != "env" {
		t.Errorf("got %q, want env", got)
	}
	if got := firstNonEmpty("flag", "env"); got != "flag" {
		t.Errorf("flag should win, got %q", got)
	}
	if got := firstNonEmpty(); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}

func TestTokenKeyer(t *testing.T) {
	plain := tokenKeyer("")
	if got := plain.PRKey("octocat"); got != cache.NewDefaultKeyer().PRKey("octocat") {
		t.Errorf("empty token should use the default keyer, got %q", got)
	}

	a, b := tokenKeyer("token-a").PRKey("octocat"), tokenKeyer("token-b").PRKey("octocat")
	if a == b {
		t.Error("different tokens should produce different keys")
	}
	if strings.Contains(a, "token-a") {
		t.Error("keys must not contain the token")
	}
	if a != tokenKeyer("token-a").PRKey("octocat") {
		t.Error("keys should be stable for a token")
	}
}

func TestCacheDir(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", xdg)

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if !strings.HasPrefix(dir, xdg) || !strings.HasSuffix(dir, appName) {
		t.Errorf("cacheDir() = %q, want %s/%s", dir, xdg, appName)
	}
}

func TestCacheDirDefault(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")

	dir, err := cacheDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}
	if !strings.Contains(dir, ".cache") || !strings.HasSuffix(dir, appName) {
		t.Errorf("cacheDir() = %q, want ~/.cache/%s", dir, appName)
	}
}

func TestNewCache(t *testing.T) {
	tc := newTestCLI(t, "")
	ctx := context.Background()

	c, err := tc.newCache(ctx, true, "")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := c.(*cache.NullCache); !ok {
		t.Errorf("--no-cache should give a NullCache, got %T", c)
	}

	c, err = tc.newCache(ctx, false, "")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := c.(*cache.FileCache); !ok {
		t.Errorf("default should be a FileCache, got %T", c)
	}

	if _, err := tc.newCache(ctx, false, "127.0.0.1:1"); err == nil {
		t.Error("unreachable Redis should fail")
	}
}

func TestVersionFlag(t *testing.T) {
	tc := newTestCLI(t, "")
	if err := tc.run("--version"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(tc.stdout.String(), appName+" version ") {
		t.Errorf("version output = %q", tc.stdout.String())
	}
}

func TestCompletionCommand(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			tc := newTestCLI(t, "")
			if err := tc.run("completion", shell); err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(tc.stdout.String(), appName) {
				t.Errorf("%s completion does not mention %s", shell, appName)
			}
		})
	}

	tc := newTestCLI(t, "")
	if err := tc.run("completion", "tcsh"); err == nil {
		t.Error("unknown shell should fail")
	}
}
