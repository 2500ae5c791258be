package cli

import (
	"io"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/charmbracelet/log"
)

func TestCacheDirXDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	want := filepath.Join("/tmp/xdg-cache", appName)
	if dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestCacheDirDefault(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")
	t.Setenv("HOME", "/home/testuser")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	want := filepath.Join("/home/testuser", ".cache", appName)
	if dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{name: "empty defaults to svg", in: "", want: []string{"svg"}},
		{name: "single", in: "json", want: []string{"json"}},
		{name: "multiple", in: "svg,json,dot", want: []string{"svg", "json", "dot"}},
		{name: "whitespace trimmed", in: " svg , dot ", want: []string{"svg", "dot"}},
		{name: "empty entries dropped", in: "svg,,json", want: []string{"svg", "json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFormats(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseFormats(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestRootCommand(t *testing.T) {
	c := New(io.Discard, log.InfoLevel)
	root := c.RootCommand()

	if root.Use != "lineage" {
		t.Errorf("root.Use = %q, want %q", root.Use, "lineage")
	}

	wantCommands := []string{"layout", "render", "serve", "cache", "completion"}
	for _, name := range wantCommands {
		found := false
		for _, cmd := range root.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command missing subcommand %q", name)
		}
	}
}

func TestNewRunnerNoCache(t *testing.T) {
	c := New(io.Discard, log.InfoLevel)

	runner, err := c.newRunner(true)
	if err != nil {
		t.Fatalf("newRunner(true) error: %v", err)
	}
	defer runner.Close()

	if runner == nil {
		t.Fatal("newRunner(true) returned nil runner")
	}
}

func TestSetLogLevel(t *testing.T) {
	c := New(io.Discard, log.InfoLevel)

	c.SetLogLevel(log.DebugLevel)
	if c.Logger.GetLevel() != log.DebugLevel {
		t.Errorf("level = %v, want %v", c.Logger.GetLevel(), log.DebugLevel)
	}
}
