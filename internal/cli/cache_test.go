package cli

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/dhvcc/github-contribution-treemap-generator/pkg/cache"
)

func TestCachePathCommand(t *testing.T) {
	tc := newTestCLI(t, "")
	if err := tc.run("cache", "path"); err != nil {
		t.Fatal(err)
	}
	dir, _ := cacheDir()
	if got := strings.TrimSpace(tc.stdout.String()); got != dir {
		t.Errorf("cache path = %q, want %q", got, dir)
	}
}

func TestCacheClearCommand(t *testing.T) {
	tc := newTestCLI(t, "")

	if err := tc.run("cache", "clear"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(tc.stderr.String(), "Cache is empty") {
		t.Errorf("output = %q", tc.stderr.String())
	}

	dir, _ := cacheDir()
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	for _, k := range []string{"prs:octocat", "artifact:abc"} {
		if err := fc.Set(ctx, k, []byte("{}"), time.Hour); err != nil {
			t.Fatal(err)
		}
	}

	tc.stderr.Reset()
	if err := tc.run("cache", "clear"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(tc.stderr.String(), "Cleared 2 cached entries") {
		t.Errorf("output = %q", tc.stderr.String())
	}
	if _, ok, _ := fc.Get(ctx, "prs:octocat"); ok {
		t.Error("entry should be gone after clear")
	}
}
