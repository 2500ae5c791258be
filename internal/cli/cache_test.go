package cli

import (
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/lineagekit/lineage/pkg/cache"
)

// seedCache writes one layout and one render artifact into the
// XDG-resolved cache directory.
func seedCache(t *testing.T) {
	t.Helper()
	fc, err := openFileCache()
	if err != nil {
		t.Fatalf("openFileCache error: %v", err)
	}
	defer fc.Close()

	ctx := context.Background()
	k := cache.NewDefaultKeyer()
	if err := fc.Set(ctx, k.LayoutKey("g", cache.LayoutKeyOpts{Root: "r"}), []byte("layout"), 0); err != nil {
		t.Fatalf("Set layout: %v", err)
	}
	if err := fc.Set(ctx, k.RenderKey("l", cache.RenderKeyOpts{Format: "svg"}), []byte("<svg/>"), cache.TTLRender); err != nil {
		t.Fatalf("Set render: %v", err)
	}
}

func TestCacheInfoCommand(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	seedCache(t)

	c := New(io.Discard, log.InfoLevel)
	cmd := c.cacheInfoCommand()
	if err := cmd.RunE(cmd, nil); err != nil {
		t.Fatalf("cache info error: %v", err)
	}
}

func TestCacheClearCommand(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	seedCache(t)

	c := New(io.Discard, log.InfoLevel)
	cmd := c.cacheClearCommand()
	if err := cmd.RunE(cmd, nil); err != nil {
		t.Fatalf("cache clear error: %v", err)
	}

	fc, err := openFileCache()
	if err != nil {
		t.Fatalf("openFileCache error: %v", err)
	}
	defer fc.Close()
	stats, err := fc.Stats()
	if err != nil {
		t.Fatalf("Stats error: %v", err)
	}
	for kind, s := range stats {
		if s.Entries != 0 {
			t.Errorf("%s entries after clear = %d, want 0", kind, s.Entries)
		}
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{2048, "2.0 KiB"},
		{5 * 1024 * 1024, "5.0 MiB"},
	}
	for _, tt := range tests {
		if got := formatBytes(tt.in); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestArtifactExt(t *testing.T) {
	if got := artifactExt("svg"); got != "svg" {
		t.Errorf("artifactExt(svg) = %q", got)
	}
	if got := artifactExt("nodelink"); got != "nodelink.svg" {
		t.Errorf("artifactExt(nodelink) = %q", got)
	}
}
