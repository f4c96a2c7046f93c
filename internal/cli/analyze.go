package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/critpathlabs/critpath/pkg/cache"
	"github.com/critpathlabs/critpath/pkg/dag"
	jsonio "github.com/critpathlabs/critpath/pkg/io"
	"github.com/critpathlabs/critpath/pkg/pipeline"
	rdot "github.com/critpathlabs/critpath/pkg/render/dot"
	"github.com/critpathlabs/critpath/pkg/source"
	"github.com/critpathlabs/critpath/pkg/source/dotfile"
	"github.com/critpathlabs/critpath/pkg/weights"
)

// analyzeOpts holds the command-line flags for the analyze command.
type analyzeOpts struct {
	graph        string // dot digraph file
	weights      string // two-column CSV file
	document     string // JSON document carrying graph and weights together
	imageDir     string // output directory for the rendered image; empty skips rendering
	format       string // image format: svg or png
	allowMissing bool   // default-zero policy for unweighted tasks
	noCache      bool   // disable the render cache
	schedule     bool   // print the full per-task schedule table
}

// newAnalyzeCmd creates the analyze command: the Adapter → Engine →
// Formatter → Renderer pipeline over file inputs.
func newAnalyzeCmd(configPath *string) *cobra.Command {
	var opts analyzeOpts

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Compute the critical path from graph and weight files",
		Long: `Compute the critical path through a weighted task graph.

The graph is a Graphviz dot digraph (node and edge statements; attributes
are ignored) and the weights are CSV rows of (task, integer duration), with
an optional header row. Alternatively, --json supplies both in one document.

The command prints every critical edge with its weight (the successor
task's duration) and the total project duration. With --image, a diagram
with the critical path highlighted in red is written to the given
directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			applyConfig(&opts, cfg)
			if err := pipeline.ValidateFormat(opts.format); err != nil {
				return err
			}
			return runAnalyze(cmd.Context(), &opts, cfg)
		},
	}

	cmd.Flags().StringVarP(&opts.graph, "graph", "g", "", "graph dot file")
	cmd.Flags().StringVarP(&opts.weights, "weights", "w", "", "weights CSV file")
	cmd.Flags().StringVar(&opts.document, "json", "", "JSON document with tasks and edges (instead of --graph/--weights)")
	cmd.Flags().StringVarP(&opts.imageDir, "image", "i", "", "directory to write the rendered graph image")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "image format: png (default), svg")
	cmd.Flags().BoolVar(&opts.allowMissing, "allow-missing-weights", false, "schedule unweighted tasks with duration 0 instead of failing")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the render cache")
	cmd.Flags().BoolVar(&opts.schedule, "schedule", false, "print the full per-task schedule table")

	return cmd
}

// applyConfig fills unset flags from the loaded config defaults.
func applyConfig(opts *analyzeOpts, cfg Config) {
	if opts.graph == "" {
		opts.graph = cfg.Graph
	}
	if opts.weights == "" {
		opts.weights = cfg.Weights
	}
	if opts.imageDir == "" {
		opts.imageDir = cfg.ImageDir
	}
	if opts.format == "" {
		opts.format = cfg.Format
	}
	if cfg.AllowMissingWeights {
		opts.allowMissing = true
	}
	if cfg.NoCache {
		opts.noCache = true
	}
}

// loadInputs normalizes the configured input files into a validated DAG
// and a resolved weight map.
func loadInputs(opts *analyzeOpts) (*dag.DAG, map[string]int, error) {
	resolver := weights.Options{AllowMissing: opts.allowMissing}

	if opts.document != "" {
		doc, err := jsonio.ImportJSON(opts.document)
		if err != nil {
			return nil, nil, err
		}
		g, err := source.FromGraph(doc)
		if err != nil {
			return nil, nil, err
		}
		w, err := weights.Resolve(doc.Weights(), g, resolver)
		if err != nil {
			return nil, nil, err
		}
		return g, w, nil
	}

	if opts.graph == "" || opts.weights == "" {
		return nil, nil, fmt.Errorf("either --json, or both --graph and --weights, must be given (or configured)")
	}

	parsed, err := dotfile.ImportFile(opts.graph)
	if err != nil {
		return nil, nil, err
	}
	g, err := source.FromGraph(parsed)
	if err != nil {
		return nil, nil, err
	}
	m, err := weights.ImportCSV(opts.weights)
	if err != nil {
		return nil, nil, err
	}
	w, err := weights.Resolve(m, g, resolver)
	if err != nil {
		return nil, nil, err
	}
	return g, w, nil
}

func runAnalyze(ctx context.Context, opts *analyzeOpts, cfg Config) error {
	logger := loggerFromContext(ctx)

	g, w, err := loadInputs(opts)
	if err != nil {
		return err
	}
	logger.Debug("inputs normalized", "tasks", g.TaskCount(), "edges", g.EdgeCount())

	runner, err := newRunner(cfg, opts.noCache, logger)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(logger)
	result, err := runner.Analyze(ctx, g, w)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Analyzed %d tasks", g.TaskCount()))

	fmt.Print(renderEdgeList(result))
	if opts.schedule {
		fmt.Println(renderScheduleTable(result))
	}

	if opts.imageDir == "" {
		logger.Debug("skipping image creation; pass --image to write a rendered graph")
		return nil
	}

	spinner := newSpinnerWithContext(ctx, "Rendering graph...")
	spinner.Start()
	data, cacheHit, err := runner.RenderImage(ctx, g, w, result, opts.format)
	if err != nil {
		spinner.StopWithError("Rendering failed")
		return err
	}
	spinner.Stop()

	path, err := rdot.SaveImage(opts.imageDir, data, opts.format)
	if err != nil {
		return err
	}
	if cacheHit {
		printSuccess("Saved %s (cached render)", path)
	} else {
		printSuccess("Saved %s", path)
	}
	return nil
}

// newRunner builds a pipeline runner honoring the cache configuration.
func newRunner(cfg Config, noCache bool, logger *log.Logger) (*pipeline.Runner, error) {
	if noCache {
		return pipeline.NewRunner(cache.NewNullCache(), logger), nil
	}
	dir, err := cfg.cacheDir()
	if err != nil {
		return nil, err
	}
	c, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(c, logger), nil
}
