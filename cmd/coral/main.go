package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/coralsh/coral/internal/config"
	"github.com/coralsh/coral/runtime/executor"
	"github.com/coralsh/coral/runtime/pathindex"
	"github.com/coralsh/coral/runtime/repl"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		noRC       bool
	)

	rootCmd := &cobra.Command{
		Use:   "coral",
		Short: "Interactive command-line interpreter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := runShell(loadConfig(configPath, noRC))
			if err != nil {
				return err
			}
			os.Exit(code)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to the rc file (default ~/"+config.DefaultFileName+")")
	rootCmd.PersistentFlags().BoolVar(&noRC, "no-rc", false, "Skip loading the rc file")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompleteCmd(&configPath, &noRC))

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the coral version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "coral %s\n", version)
		},
	}
}

// newCompleteCmd prints completion candidates for a partial command
// line, one per line. Line editors shell out to it to populate their
// candidate list.
func newCompleteCmd(configPath *string, noRC *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "complete [partial]",
		Short: "Print completion candidates for a partial command line",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			partial := ""
			if len(args) > 0 {
				partial = args[0]
			}

			session, err := executor.NewSession(cmd.OutOrStdout(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			cfg := loadConfig(*configPath, *noRC)
			session.AddPathDirs(cfg.ExtraPath)

			ix := openIndex(session.PathDirs())
			completer := repl.NewCompleter(session.BuiltinNames(), ix)
			for _, candidate := range completer.Complete(partial) {
				fmt.Fprintln(cmd.OutOrStdout(), candidate)
			}
			return nil
		},
	}
}

func runShell(cfg config.Config) (int, error) {
	session, err := executor.NewSession(os.Stdout, os.Stderr)
	if err != nil {
		return 0, err
	}
	session.AddPathDirs(cfg.ExtraPath)

	if cfg.Completion && term.IsTerminal(int(os.Stdin.Fd())) {
		ix := openIndex(session.PathDirs())
		if err := ix.Watch(); err == nil {
			defer func() { _ = ix.Close() }()
		}
		defer saveIndex(ix)
	}

	return repl.New(session, repl.WithPrompt(cfg.Prompt)).Run(context.Background())
}

// loadConfig loads the rc file, falling back to defaults with a warning
// when the file is present but invalid.
func loadConfig(configPath string, noRC bool) config.Config {
	if noRC {
		return config.Default()
	}
	if configPath == "" {
		configPath = config.DefaultPath()
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "coral: %v\n", err)
		return config.Default()
	}
	return cfg
}

// openIndex restores the executable index from its snapshot and
// refreshes it in the background, or scans from scratch when no usable
// snapshot exists.
func openIndex(dirs []string) *pathindex.Index {
	cache := indexCachePath()
	if cache != "" {
		if ix, err := pathindex.FromSnapshot(cache, dirs); err == nil {
			go ix.Rescan()
			return ix
		}
	}
	return pathindex.New(dirs)
}

func saveIndex(ix *pathindex.Index) {
	if cache := indexCachePath(); cache != "" {
		_ = ix.SaveSnapshot(cache)
	}
}

func indexCachePath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "coral", "pathindex.cbor")
}
