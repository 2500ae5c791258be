package cli

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/lineagekit/lineage/pkg/pipeline"
)

// defaultConfigFile is looked up in the working directory when --config is not set.
const defaultConfigFile = "lineage.toml"

// Config holds settings loaded from a lineage.toml file. Values act as
// defaults: explicitly set command-line flags always win.
type Config struct {
	Root   string       `toml:"root"`
	Layout LayoutConfig `toml:"layout"`
	Render RenderConfig `toml:"render"`
	Source SourceConfig `toml:"source"`
	Serve  ServeConfig  `toml:"serve"`
}

// LayoutConfig holds layout dimension overrides.
type LayoutConfig struct {
	NodeWidth     float64 `toml:"node_width"`
	NodeHeight    float64 `toml:"node_height"`
	HorizontalGap float64 `toml:"horizontal_gap"`
}

// RenderConfig holds render output settings.
type RenderConfig struct {
	Formats []string `toml:"formats"`
	Labels  bool     `toml:"labels"`
}

// SourceConfig selects where graphs are loaded from.
type SourceConfig struct {
	MongoURI string `toml:"mongo_uri"`
	MongoDB  string `toml:"mongo_db"`
}

// ServeConfig holds HTTP server settings.
type ServeConfig struct {
	Addr      string `toml:"addr"`
	RedisAddr string `toml:"redis_addr"`
}

// loadConfig reads a TOML config file. An explicit path that does not exist
// is an error; a missing default file yields an empty config.
func loadConfig(path string) (*Config, error) {
	explicit := path != ""
	if path == "" {
		path = defaultConfigFile
	}

	var cfg Config
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if explicit {
			return nil, fmt.Errorf("config file %s not found", path)
		}
		return &cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// applyOptions copies config values into opts for every flag the user did
// not set explicitly. Flags beat config, config beats pipeline defaults.
func (c *Config) applyOptions(cmd *cobra.Command, opts *pipeline.Options) {
	flags := cmd.Flags()

	if !flags.Changed("root") && c.Root != "" {
		opts.Root = c.Root
	}
	if !flags.Changed("node-width") && c.Layout.NodeWidth > 0 {
		opts.NodeWidth = c.Layout.NodeWidth
	}
	if !flags.Changed("node-height") && c.Layout.NodeHeight > 0 {
		opts.NodeHeight = c.Layout.NodeHeight
	}
	if !flags.Changed("hgap") && c.Layout.HorizontalGap > 0 {
		opts.HorizontalGap = c.Layout.HorizontalGap
	}
	if f := flags.Lookup("format"); f != nil && !f.Changed && len(c.Render.Formats) > 0 {
		opts.Formats = c.Render.Formats
	}
	if f := flags.Lookup("labels"); f != nil && !f.Changed && c.Render.Labels {
		opts.Labels = true
	}
}
