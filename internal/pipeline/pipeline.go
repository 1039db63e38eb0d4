// Package pipeline runs the generator stages in order: load the package,
// read the config, resolve a plan and render files.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"tagmapper/internal/analyze"
	"tagmapper/internal/common"
	"tagmapper/internal/gen"
	"tagmapper/internal/mapping"
	"tagmapper/internal/plan"
)

// ErrPlanFailed is returned when resolution reported errors. The
// diagnostics have been logged.
var ErrPlanFailed = errors.New("planning failed")

// Options configures one run.
type Options struct {
	// Dir is the directory Pkg is resolved against. Empty means the
	// current directory.
	Dir string
	// Pkg is a package pattern matching exactly one package.
	Pkg string
	// Types restricts generation to these structs.
	Types []string
	// ConfigPath is an optional YAML config file.
	ConfigPath string
	// DebugDir receives unformatted output of files that fail formatting.
	DebugDir string
}

// Result is the outcome of Generate.
type Result struct {
	Plan  *plan.Plan
	Files []gen.GeneratedFile
	// OutputDir is the package directory. Files must be written there.
	OutputDir string
}

// Resolve loads the package and config and returns the logged plan.
// A plan with errors is returned together with ErrPlanFailed.
func Resolve(ctx context.Context, logger *slog.Logger, opts Options) (*plan.Plan, error) {
	if opts.Pkg == "" {
		return nil, errors.New("no package given")
	}

	var cfg *mapping.File

	if opts.ConfigPath != "" {
		f, err := mapping.LoadFile(opts.ConfigPath)
		if err != nil {
			return nil, err
		}

		cfg = f

		logger.Debug("loaded config", slog.String("path", opts.ConfigPath), slog.Int("types", len(f.Types)))
	}

	a := analyze.NewAnalyzer()
	a.Dir = opts.Dir

	graph, err := a.LoadPackages(ctx, opts.Pkg)
	if err != nil {
		return nil, err
	}

	if len(graph.Packages) != 1 {
		return nil, fmt.Errorf("pattern %q matched %d packages, want 1", opts.Pkg, len(graph.Packages))
	}

	pkgPath, _ := common.First(slices.Collect(maps.Keys(graph.Packages)))

	logger.Debug("loaded package", slog.String("package", pkgPath), slog.Int("types", len(graph.Types)))

	p := plan.NewResolver(graph, cfg, logger).Resolve(pkgPath, opts.Types)
	p.Diagnostics.Log(ctx, logger)

	if p.Diagnostics.HasErrors() {
		return p, fmt.Errorf("%w: %d errors in %s", ErrPlanFailed, len(p.Diagnostics.Errors), pkgPath)
	}

	return p, nil
}

// Generate resolves the plan and renders its files without writing them.
func Generate(ctx context.Context, logger *slog.Logger, opts Options) (*Result, error) {
	p, err := Resolve(ctx, logger, opts)
	if err != nil {
		return &Result{Plan: p}, err
	}

	files, err := gen.NewGenerator(gen.GeneratorConfig{DebugDir: opts.DebugDir}, logger).Generate(p)
	if err != nil {
		return &Result{Plan: p}, err
	}

	return &Result{Plan: p, Files: files, OutputDir: p.Dir}, nil
}
