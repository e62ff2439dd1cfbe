package cli

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"lulog/internal/logdb"
	"lulog/internal/logdir"
	"lulog/internal/vcs"
)

// describeCheckout is a test seam for labeling runs from git metadata.
var describeCheckout = vcs.DescribeCheckout

// runIndex builds the handler for the index command.
func runIndex(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if len(args) == 0 || isHelpArg(args[0]) {
			printCommandUsage(cmd, stdout)
			if len(args) == 0 {
				return ExitUsage
			}
			return ExitOK
		}
		sub, rest := args[0], args[1:]
		switch sub {
		case "add", "runs", "diff":
		default:
			fmt.Fprintf(stderr, "Unknown index command: %s\n", sub)
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}
		if wantsHelp(rest) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name+" "+sub, flag.ContinueOnError)
		flags.SetOutput(stderr)
		dbPath := flags.String("db", "", "DuckDB file (default: index.database)")
		configPath := flags.String("config", "", "Path to config file (default: search for .lulog/config.yml)")
		label := flags.String("label", "", "Run label for add (default: git branch@commit or the root name)")
		if code, ok := parseCommandFlags(cmd, flags, rest, stdout, stderr); !ok {
			return code
		}

		wantArgs := map[string]int{"add": 1, "runs": 0, "diff": 2}[sub]
		if flags.NArg() != wantArgs {
			fmt.Fprintf(stderr, "index %s expects %d argument(s), got %d\n", sub, wantArgs, flags.NArg())
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}

		path := *dbPath
		if path == "" {
			cfg, err := loadConfigOrDefaults(*configPath)
			if err != nil {
				fmt.Fprintf(stderr, "Config error:\n%v\n", err)
				return ExitError
			}
			path = cfg.resolve(cfg.Index.Database)
		}
		if dir := filepath.Dir(path); dir != "." && !logdir.EnsureDir(filepath.ToSlash(dir)) {
			fmt.Fprintf(stderr, "Failed to create %s\n", dir)
			return ExitError
		}

		ctx := context.Background()
		db, err := logdb.Open(ctx, path)
		if err != nil {
			fmt.Fprintf(stderr, "Open index failed: %v\n", err)
			return ExitError
		}
		defer db.Close()

		switch sub {
		case "add":
			return indexAdd(ctx, db, flags.Arg(0), *label, stdout, stderr)
		case "runs":
			return indexRuns(ctx, db, stdout, stderr)
		default:
			return indexDiff(ctx, db, flags.Arg(0), flags.Arg(1), stdout, stderr)
		}
	}
}

// indexAdd ingests one dump tree as a new run.
func indexAdd(ctx context.Context, db *sql.DB, root, label string, stdout, stderr io.Writer) int {
	if label == "" {
		if described, err := describeCheckout(ctx, root); err == nil && described != "" {
			label = described
		} else {
			label = filepath.Base(filepath.Clean(root))
		}
	}
	logger := newLogger(stderr)
	defer func() { _ = logger.Sync() }()

	result, err := logdb.IngestTree(ctx, db, root, label, logger)
	if err != nil {
		fmt.Fprintf(stderr, "Ingest failed: %v\n", err)
		return ExitError
	}
	fmt.Fprintf(stdout, "Ingested run %s (%s): %d steps, %d files, %d values\n",
		result.RunID, label, result.Steps, result.Files, result.Values)
	return ExitOK
}

// indexRuns lists ingested runs.
func indexRuns(ctx context.Context, db *sql.DB, stdout, stderr io.Writer) int {
	runs, err := logdb.ListRuns(ctx, db)
	if err != nil {
		fmt.Fprintf(stderr, "List runs failed: %v\n", err)
		return ExitError
	}
	if len(runs) == 0 {
		fmt.Fprintln(stdout, "No runs indexed.")
		return ExitOK
	}
	for _, run := range runs {
		fmt.Fprintf(stdout, "%s  %-24s  %s  %s\n", run.RunID, run.Label, run.IngestedAt.Format(time.RFC3339), run.Root)
	}
	return ExitOK
}

// indexDiff prints per-field differences between two runs.
func indexDiff(ctx context.Context, db *sql.DB, base, head string, stdout, stderr io.Writer) int {
	diffs, err := logdb.FieldDiffs(ctx, db, base, head)
	if err != nil {
		fmt.Fprintf(stderr, "Diff failed: %v\n", err)
		return ExitError
	}
	if len(diffs) == 0 {
		fmt.Fprintln(stdout, "No shared fields.")
		return ExitOK
	}
	for _, diff := range diffs {
		fmt.Fprintf(stdout, "%s/%s/%s: paired=%d max_abs=%s\n",
			diff.Step, diff.Kind, diff.Field, diff.Paired, formatSci(diff.MaxAbs))
	}
	return ExitOK
}
