package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lineagekit/lineage/pkg/graph"
	"github.com/lineagekit/lineage/pkg/pipeline"
	"github.com/lineagekit/lineage/pkg/source/local"
)

// layoutCommand creates the layout command for computing pedigree layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output     string
		noCache    bool
		pick       bool
		configPath string
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "layout [graph.json]",
		Short: "Compute a pedigree layout from a genealogical graph",
		Long: `Compute a pedigree layout from a genealogical graph.

The layout command takes a graph.json file with people and relationships and
computes card positions around the chosen root person. The output is a
layout.json file (same format as 'render -f json') with positioned nodes,
links, and family groupings.

The root person is given with --root, picked interactively with --pick, or
read from lineage.toml.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			cfg.applyOptions(cmd, &opts)
			return c.runLayout(cmd.Context(), args[0], opts, output, noCache, pick)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&configPath, "config", "", "config file (default: lineage.toml if present)")

	// Layout flags
	cmd.Flags().StringVarP(&opts.Root, "root", "r", "", "root person id")
	cmd.Flags().BoolVar(&pick, "pick", false, "pick the root person interactively")
	cmd.Flags().Float64Var(&opts.NodeWidth, "node-width", 0, "card width in pixels")
	cmd.Flags().Float64Var(&opts.NodeHeight, "node-height", 0, "card height in pixels")
	cmd.Flags().Float64Var(&opts.HorizontalGap, "hgap", 0, "gap between generation columns")

	return cmd
}

// runLayout loads the graph, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, noCache, pick bool) error {
	src, err := local.NewSource(input)
	if err != nil {
		return fmt.Errorf("open graph %s: %w", input, err)
	}

	if pick {
		root, err := pickRootFromFile(input)
		if err != nil {
			return err
		}
		opts.Root = root
	}
	if opts.Root == "" {
		return fmt.Errorf("no root person: use --root, --pick, or set root in lineage.toml")
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	opts.Formats = []string{pipeline.FormatJSON}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Computing layout for %s...", opts.Root))
	spinner.Start()

	res, err := runner.Execute(ctx, src, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + ".layout.json"
	}

	if err := os.WriteFile(outputPath, res.Artifacts[pipeline.FormatJSON], 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(res.Stats.PersonCount, res.Stats.LinkCount, res.CacheInfo.RenderHit)
	printNewline()
	printNextStep("Render", fmt.Sprintf("lineage render %s -r %s", input, opts.Root))

	return nil
}

// pickRootFromFile reads the graph and runs the interactive root picker.
func pickRootFromFile(input string) (string, error) {
	data, err := os.ReadFile(input)
	if err != nil {
		return "", fmt.Errorf("read graph %s: %w", input, err)
	}
	g, err := graph.UnmarshalGraph(data)
	if err != nil {
		return "", fmt.Errorf("parse graph %s: %w", input, err)
	}
	people, _, err := g.ToEngine()
	if err != nil {
		return "", fmt.Errorf("invalid graph %s: %w", input, err)
	}

	root, err := pickRoot(people)
	if err != nil {
		return "", err
	}
	return string(root), nil
}
