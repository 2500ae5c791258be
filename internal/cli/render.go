package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lineagekit/lineage/pkg/pipeline"
	"github.com/lineagekit/lineage/pkg/source"
	"github.com/lineagekit/lineage/pkg/source/local"
	"github.com/lineagekit/lineage/pkg/source/mongodb"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output     string // output base path (extension added per format)
	formatsStr string // comma-separated output formats: svg, json, dot, nodelink
	noCache    bool   // disable artifact caching
	pick       bool   // pick the root person interactively
	configPath string // explicit config file path
	mongoURI   string // load the graph from MongoDB instead of a file
	mongoDB    string // MongoDB database name
}

// renderCommand creates the render command for producing chart artifacts.
func (c *CLI) renderCommand() *cobra.Command {
	var ro renderOpts
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "render [graph.json]",
		Short: "Render a pedigree chart to SVG, JSON, or DOT",
		Long: `Render a pedigree chart to SVG, JSON, or DOT.

The render command loads a genealogical graph from a file or from MongoDB,
computes the pedigree layout around the root person, and writes one output
file per requested format. The nodelink format runs the DOT graph through
Graphviz and writes the node-link view as SVG. Rendered artifacts are
cached locally by graph content, so repeat runs with unchanged inputs are
fast.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(ro.configPath)
			if err != nil {
				return err
			}
			cfg.applyOptions(cmd, &opts)
			if !cmd.Flags().Changed("mongo-uri") && cfg.Source.MongoURI != "" {
				ro.mongoURI = cfg.Source.MongoURI
			}
			if !cmd.Flags().Changed("mongo-db") && cfg.Source.MongoDB != "" {
				ro.mongoDB = cfg.Source.MongoDB
			}
			if cmd.Flags().Changed("format") {
				opts.Formats = parseFormats(ro.formatsStr)
			}

			input := ""
			if len(args) > 0 {
				input = args[0]
			}
			return c.runRender(cmd.Context(), input, opts, ro)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&ro.output, "output", "o", "", "output base path (default: input name, or 'pedigree')")
	cmd.Flags().StringVarP(&ro.formatsStr, "format", "f", pipeline.FormatSVG, "comma-separated formats: svg, json, dot, nodelink")
	cmd.Flags().BoolVar(&ro.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even if a cached artifact exists")
	cmd.Flags().StringVar(&ro.configPath, "config", "", "config file (default: lineage.toml if present)")

	// Layout flags
	cmd.Flags().StringVarP(&opts.Root, "root", "r", "", "root person id")
	cmd.Flags().BoolVar(&ro.pick, "pick", false, "pick the root person interactively")
	cmd.Flags().Float64Var(&opts.NodeWidth, "node-width", 0, "card width in pixels")
	cmd.Flags().Float64Var(&opts.NodeHeight, "node-height", 0, "card height in pixels")
	cmd.Flags().Float64Var(&opts.HorizontalGap, "hgap", 0, "gap between generation columns")
	cmd.Flags().BoolVar(&opts.Labels, "labels", false, "draw name labels on cards (svg)")

	// Source flags
	cmd.Flags().StringVar(&ro.mongoURI, "mongo-uri", "", "MongoDB connection URI (overrides the file argument)")
	cmd.Flags().StringVar(&ro.mongoDB, "mongo-db", "", "MongoDB database name")

	return cmd
}

// runRender resolves the source, runs the pipeline, and writes one file per format.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, ro renderOpts) error {
	src, cleanup, err := resolveSource(ctx, input, ro)
	if err != nil {
		return err
	}
	defer cleanup()

	if ro.pick {
		if input == "" {
			return fmt.Errorf("--pick needs a graph file")
		}
		root, err := pickRootFromFile(input)
		if err != nil {
			return err
		}
		opts.Root = root
	}
	if opts.Root == "" {
		return fmt.Errorf("no root person: use --root, --pick, or set root in lineage.toml")
	}

	runner, err := c.newRunner(ro.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	if len(opts.Formats) == 0 {
		opts.Formats = parseFormats(ro.formatsStr)
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering pedigree for %s...", opts.Root))
	spinner.Start()

	res, err := runner.Execute(ctx, src, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return fmt.Errorf("render: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	base := ro.output
	if base == "" {
		if input != "" {
			base = strings.TrimSuffix(input, filepath.Ext(input))
		} else {
			base = "pedigree"
		}
	}

	printSuccess("Render complete")
	for _, format := range opts.Formats {
		data, ok := res.Artifacts[format]
		if !ok {
			continue
		}
		path := base + "." + artifactExt(format)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write output %s: %w", path, err)
		}
		printFile(path)
	}
	printStats(res.Stats.PersonCount, res.Stats.LinkCount, res.CacheInfo.RenderHit)

	return nil
}

// artifactExt maps a format to its output file extension. The node-link
// format produces SVG, so it gets a distinguishing suffix.
func artifactExt(format string) string {
	if format == pipeline.FormatNodelink {
		return "nodelink.svg"
	}
	return format
}

// resolveSource picks the graph source: MongoDB when a URI is given,
// otherwise the local file argument.
func resolveSource(ctx context.Context, input string, ro renderOpts) (source.Source, func(), error) {
	if ro.mongoURI != "" {
		if ro.mongoDB == "" {
			return nil, nil, fmt.Errorf("--mongo-uri needs --mongo-db")
		}
		src, err := mongodb.NewSource(ctx, ro.mongoURI, ro.mongoDB)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to MongoDB: %w", err)
		}
		return src, func() { _ = src.Close(context.Background()) }, nil
	}

	if input == "" {
		return nil, nil, fmt.Errorf("a graph file or --mongo-uri is required")
	}
	src, err := local.NewSource(input)
	if err != nil {
		return nil, nil, fmt.Errorf("open graph %s: %w", input, err)
	}
	return src, func() {}, nil
}
