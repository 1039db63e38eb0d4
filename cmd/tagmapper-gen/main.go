// tagmapper-gen generates tag aggregation code for Go structs.
//
// A struct is selected with --type, by a config file entry or by a
// //tagmapper:generate line in its doc comment. For every selected struct
// T the tool writes <t>_tags_gen.go next to it, declaring TFromTags,
// T.IntoTags and (*T).UnmarshalTags.
//
// Commands:
//
//	gen     write the generated files
//	check   fail when generated files are missing or out of date
//	export  print a config pinning every resolved key and strategy
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"

	"tagmapper/internal/gen"
	"tagmapper/internal/mapping"
	"tagmapper/internal/pipeline"
	"tagmapper/internal/plan"
)

const (
	exitFailure = 1
	exitUsage   = 2
)

// usageError marks errors caused by invalid invocation.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }
func (usageError) ExitCode() int   { return exitUsage }

func usagef(format string, args ...any) error {
	return usageError{err: fmt.Errorf(format, args...)}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)

		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}

		os.Exit(exitFailure)
	}
}

type options struct {
	pipeline pipeline.Options
	dryRun   bool
	verbose  bool
	output   string
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 || args[0] == "-h" || args[0] == "--help" || args[0] == "help" {
		printHelp(stderr, nil)
		return nil
	}

	command, args := args[0], args[1:]

	var opts options

	flagSet := pflag.NewFlagSet("tagmapper-gen "+command, pflag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	flagSet.StringVar(&opts.pipeline.Pkg, "pkg", ".", "package pattern matching the package to generate for")
	flagSet.StringArrayVar(&opts.pipeline.Types, "type", nil, "struct to generate (repeatable; overrides config and markers)")
	flagSet.StringVar(&opts.pipeline.ConfigPath, "config", "", "YAML config with keys, strategies and ignored fields")
	flagSet.StringVar(&opts.pipeline.DebugDir, "debug-dir", "", "write unformatted output of files that fail formatting here")
	flagSet.BoolVar(&opts.dryRun, "dry-run", false, "print generated code instead of writing it")
	flagSet.StringVarP(&opts.output, "output", "o", "", "export: write the config to this file instead of stdout")
	flagSet.BoolVarP(&opts.verbose, "verbose", "v", false, "log planning details")
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printHelp(stderr, flagSet)
			return nil
		}

		return usagef("%s: %w", command, err)
	}

	if help, _ := flagSet.GetBool("help"); help {
		printHelp(stderr, flagSet)
		return nil
	}

	if rest := flagSet.Args(); len(rest) > 0 {
		return usagef("unexpected argument: %s", rest[0])
	}

	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	switch command {
	case "gen":
		return runGen(ctx, logger, &opts, stdout)
	case "check":
		return runCheck(ctx, logger, &opts, stdout)
	case "export":
		return runExport(ctx, logger, &opts, stdout)
	default:
		return usagef("unknown command %q (want gen, check or export)", command)
	}
}

func runGen(ctx context.Context, logger *slog.Logger, opts *options, stdout io.Writer) error {
	res, err := pipeline.Generate(ctx, logger, opts.pipeline)
	if err != nil {
		return err
	}

	if opts.dryRun {
		for _, f := range res.Files {
			fmt.Fprintf(stdout, "// %s\n%s\n", filepath.Join(res.OutputDir, f.Filename), f.Content)
		}

		return nil
	}

	if err := gen.WriteFiles(res.Files, res.OutputDir); err != nil {
		return err
	}

	for _, f := range res.Files {
		logger.Info("wrote file", slog.String("type", f.TypeName), slog.String("path", filepath.Join(res.OutputDir, f.Filename)))
	}

	return nil
}

func runCheck(ctx context.Context, logger *slog.Logger, opts *options, stdout io.Writer) error {
	res, err := pipeline.Generate(ctx, logger, opts.pipeline)
	if err != nil {
		return err
	}

	stale, err := gen.Stale(res.Files, res.OutputDir)
	if err != nil {
		return err
	}

	if len(stale) > 0 {
		return fmt.Errorf("generated files out of date in %s: %s", res.OutputDir, strings.Join(stale, ", "))
	}

	fmt.Fprintf(stdout, "%d generated files up to date\n", len(res.Files))

	return nil
}

func runExport(ctx context.Context, logger *slog.Logger, opts *options, stdout io.Writer) error {
	p, err := pipeline.Resolve(ctx, logger, opts.pipeline)
	if err != nil {
		return err
	}

	f := plan.Export(p)

	if opts.output != "" {
		return mapping.WriteFile(f, opts.output)
	}

	data, err := mapping.Marshal(f)
	if err != nil {
		return err
	}

	_, err = stdout.Write(data)

	return err
}

func printHelp(w io.Writer, flagSet *pflag.FlagSet) {
	fmt.Fprint(w, `tagmapper-gen generates FromTags, IntoTags and UnmarshalTags for Go structs.

Usage:
  tagmapper-gen <command> [flags]

Commands:
  gen     write <type>_tags_gen.go for every selected struct
  check   fail when generated files are missing or out of date
  export  print a config pinning every resolved key and strategy

Structs are selected by --type, else by the config file and by a
//tagmapper:generate line in their doc comment.

Examples:
  # From a go:generate directive inside the package
  tagmapper-gen gen --pkg . --config tags.yaml

  # Preview the code for one struct
  tagmapper-gen gen --pkg ./internal/fleet --type Host --dry-run

  # Pin the current keys before refactoring
  tagmapper-gen export --pkg ./internal/fleet -o tags.yaml
`)

	if flagSet != nil {
		fmt.Fprint(w, "\nFlags:\n")
		flagSet.SetOutput(w)
		flagSet.PrintDefaults()
	}
}
