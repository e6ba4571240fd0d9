package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/settle-dev/settle/internal/config"
	"github.com/settle-dev/settle/internal/engine"
	"github.com/settle-dev/settle/internal/gitops"
	"github.com/settle-dev/settle/internal/importer"
	"github.com/settle-dev/settle/internal/ledger"
	"github.com/settle-dev/settle/internal/model"
	"github.com/settle-dev/settle/internal/runlog"
	"github.com/settle-dev/settle/internal/runref"
)

func newProcessCommand() *cobra.Command {
	var (
		accountsOut    string
		failedOut      string
		repoDir        string
		format         string
		allowRedispute bool
	)

	cmd := &cobra.Command{
		Use:   "process [file]",
		Short: "Apply a transaction file and write account and failure reports",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if repoDir != "" {
				if len(args) > 0 {
					return fmt.Errorf("--repo and an input file are mutually exclusive")
				}
				absDir, err := filepath.Abs(repoDir)
				if err != nil {
					return fmt.Errorf("resolving path: %w", err)
				}
				return runProcessRepo(absDir, format)
			}

			if len(args) == 0 {
				return fmt.Errorf("input file required unless --repo is set")
			}
			return runProcessFile(args[0], accountsOut, failedOut, format, allowRedispute)
		},
	}

	cmd.Flags().StringVar(&accountsOut, "accounts", "accounts.csv", "accounts report path")
	cmd.Flags().StringVar(&failedOut, "failed", "failed.csv", "failed-records report path")
	cmd.Flags().StringVar(&repoDir, "repo", "", "process every pending file in a workspace")
	cmd.Flags().StringVar(&format, "format", "generic", "input format")
	cmd.Flags().BoolVar(&allowRedispute, "allow-redispute", false, "honor disputes against already-disputed transactions")

	return cmd
}

// runProcessFile is direct mode: one input, two report files, no workspace.
func runProcessFile(input, accountsOut, failedOut, format string, allowRedispute bool) error {
	log, err := newLogger(envLogLevel())
	if err != nil {
		return err
	}
	defer log.Sync()

	records, err := parseFile(input, format)
	if err != nil {
		return err
	}

	eng := engine.New(engine.Options{AllowRedispute: allowRedispute, Logger: log})
	eng.Run(records)

	if err := writeReports(eng, accountsOut, failedOut); err != nil {
		return err
	}

	fmt.Printf("Processed %s: %d accounts, %d failed records\n",
		filepath.Base(input), len(eng.Accounts()), len(eng.Failed()))
	return nil
}

// runProcessRepo is workspace mode: process every pending file under
// import/, archive each input, record the run, and commit when configured.
func runProcessRepo(root, format string) error {
	cfg, err := config.Load(filepath.Join(root, "settle.yaml"))
	if err != nil {
		return fmt.Errorf("loading workspace config: %w", err)
	}

	log, err := newLogger(cfg.Log.Level)
	if err != nil {
		return err
	}
	defer log.Sync()

	files, err := importer.Scan(root)
	if err != nil {
		return fmt.Errorf("scanning import dir: %w", err)
	}
	if len(files) == 0 {
		fmt.Println("No pending files in import/")
		return nil
	}

	outDir := cfg.Output.Dir
	if outDir == "" {
		outDir = "out"
	}
	if err := os.MkdirAll(filepath.Join(root, outDir), 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}

	for _, file := range files {
		if err := processWorkspaceFile(root, outDir, file, format, cfg, log); err != nil {
			return fmt.Errorf("processing %s: %w", file.Name, err)
		}
	}
	return nil
}

func processWorkspaceFile(root, outDir string, file importer.FileInfo, format string, cfg *config.Config, log *zap.Logger) error {
	records, err := parseFile(file.Path, format)
	if err != nil {
		return err
	}

	eng := engine.New(engine.Options{
		AllowRedispute: cfg.Policy.AllowRedispute,
		Logger:         log.With(zap.String("input", file.Name), zap.Int64("bytes", file.Size)),
	})
	eng.Run(records)

	name := file.Name
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	accountsOut := filepath.Join(root, outDir, stem+"-accounts.csv")
	failedOut := filepath.Join(root, outDir, stem+"-failed.csv")
	if err := writeReports(eng, accountsOut, failedOut); err != nil {
		return err
	}

	if err := importer.MarkProcessed(root, name); err != nil {
		return fmt.Errorf("archiving input: %w", err)
	}

	// Pick the next run reference from the existing log.
	previous, err := runlog.Read(root)
	if err != nil {
		return fmt.Errorf("reading run log: %w", err)
	}
	now := time.Now()
	entry := runlog.Entry{
		Timestamp: now,
		RunID:     runlog.NewRunID(),
		Ref:       runref.Next(runlog.Refs(previous), now.Year(), int(now.Month())),
		Input:     name,
		Accounts:  len(eng.Accounts()),
		Failed:    len(eng.Failed()),
	}

	// Commit before appending so the entry can carry the hash; the log file
	// itself rides along in the next run's commit.
	if cfg.Git.AutoCommit && gitops.IsRepo(root) {
		hash, err := gitops.CommitPaths(root,
			"run "+entry.Ref+": process "+name,
			cfg.Git.AuthorName, cfg.Git.AuthorEmail,
			outDir, "import", "logs")
		if err != nil {
			return fmt.Errorf("committing run: %w", err)
		}
		entry.CommitHash = hash
	}

	if err := runlog.Append(root, []runlog.Entry{entry}); err != nil {
		return fmt.Errorf("writing run log: %w", err)
	}

	fmt.Printf("Processed %s (%s): %d accounts, %d failed records\n",
		name, entry.Ref, len(eng.Accounts()), len(eng.Failed()))
	return nil
}

// parseFile reads one transaction file with the named parser.
func parseFile(path, format string) ([]model.Record, error) {
	p := importer.DefaultRegistry().Get(format)
	if p == nil {
		return nil, fmt.Errorf("unknown input format %q", format)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	records, err := p.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return records, nil
}

// writeReports writes the accounts and failed-records reports.
func writeReports(eng *engine.Engine, accountsOut, failedOut string) error {
	af, err := os.Create(accountsOut)
	if err != nil {
		return fmt.Errorf("creating %s: %w", accountsOut, err)
	}
	defer af.Close()
	if err := ledger.WriteAccounts(af, eng.Accounts()); err != nil {
		return fmt.Errorf("writing accounts report: %w", err)
	}

	ff, err := os.Create(failedOut)
	if err != nil {
		return fmt.Errorf("creating %s: %w", failedOut, err)
	}
	defer ff.Close()
	if err := engine.WriteFailed(ff, eng.Failed()); err != nil {
		return fmt.Errorf("writing failed-records report: %w", err)
	}
	return nil
}
