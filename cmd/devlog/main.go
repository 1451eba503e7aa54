// Package main is the entry point for devlog, a terminal developer journal.
// The root command runs the carousel TUI; subcommands script the same
// journal from the shell.
package main

import (
	"fmt"
	"os"
	"strings"

	"devlog/internal/carousel"
	"devlog/internal/config"
	"devlog/internal/journal"
	"devlog/internal/logging"
	"devlog/internal/storage"
	"devlog/internal/ui"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Version information - set by GoReleaser during build
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// globalOptions holds the persistent flags shared by every command.
type globalOptions struct {
	configPath string
	dataDir    string
	backend    string
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "devlog",
		Short: "A personal developer journal for your terminal",
		Long: `devlog keeps dated log entries with tags and a mood marker, browsed one
card at a time.

Run without a command to open the journal. Entries are stored in
~/.devlog/ (a JSON file by default, or SQLite with --backend sqlite).

KEYBINDINGS:
    ←/h, →/l     Previous / next entry
    1-9          Jump to entry
    Enter        Expand or collapse the card
    a / e / x    Add / edit / delete
    g            Gallery of all entries
    ?            Help
    q            Quit`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(opts)
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default: ~/.config/devlog/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&opts.dataDir, "data-dir", "", "data directory (overrides config)")
	rootCmd.PersistentFlags().StringVar(&opts.backend, "backend", "", "storage backend: file, sqlite or memory (overrides config)")

	rootCmd.AddCommand(
		newListCmd(opts),
		newShowCmd(opts),
		newAddCmd(opts),
		newExportCmd(opts),
		newBackupCmd(opts),
		newRestoreCmd(opts),
		newConfigCmd(opts),
		newVersionCmd(),
		newCompletionCmd(rootCmd),
	)
	return rootCmd
}

var completionShells = []string{"bash", "zsh", "fish", "powershell"}

func newCompletionCmd(rootCmd *cobra.Command) *cobra.Command {
	return &cobra.Command{
		Use:   fmt.Sprintf("completion %s", strings.Join(completionShells, "|")),
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for devlog.

Examples:

  Bash (current shell):
    $ source <(devlog completion bash)

  Zsh:
    $ devlog completion zsh > "${fpath[1]}/_devlog"

  Fish:
    $ devlog completion fish > ~/.config/fish/completions/devlog.fish`,
		DisableFlagsInUseLine: true,
		ValidArgs:             completionShells,
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return rootCmd.GenBashCompletion(cmd.OutOrStdout())
			case "zsh":
				return rootCmd.GenZshCompletion(cmd.OutOrStdout())
			case "fish":
				return rootCmd.GenFishCompletion(cmd.OutOrStdout(), true)
			case "powershell":
				return rootCmd.GenPowerShellCompletion(cmd.OutOrStdout())
			default:
				return fmt.Errorf("unsupported shell: %s", args[0])
			}
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "devlog version %s\n", version)
			fmt.Fprintf(out, "  commit: %s\n", commit)
			fmt.Fprintf(out, "  built:  %s\n", date)
		},
	}
}

// =============================================================================
// Session wiring
// =============================================================================

// session is everything a command needs to work on the journal.
type session struct {
	cfg      *config.Config
	log      *zap.SugaredLogger
	blob     storage.Blob
	store    *journal.Store
	closeLog func()
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig(opts *globalOptions) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if opts.configPath == "" {
		cfg, err = config.Load()
	} else {
		cfg, err = config.LoadFrom(opts.configPath)
	}
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", configPath(opts), err)
	}
	if opts.dataDir != "" {
		cfg.DataDir = opts.dataDir
	}
	if opts.backend != "" {
		cfg.Storage.Backend = opts.backend
	}
	return cfg, nil
}

// configPath is the config file in effect for opts.
func configPath(opts *globalOptions) string {
	if opts.configPath != "" {
		return opts.configPath
	}
	return config.Path()
}

// openSession loads config, starts the logger and opens the journal.
func openSession(opts *globalOptions) (*session, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}

	log, closeLog, err := logging.New(logging.Options{
		Level:      cfg.Log.Level,
		File:       cfg.GetLogFile(),
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
	})
	if err != nil {
		// Logging is best-effort; the journal still works without it.
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
		log, closeLog = logging.Nop(), func() {}
	}

	blob, err := storage.Open(storage.Options{
		Backend: cfg.Storage.Backend,
		DataDir: cfg.GetDataDir(),
		WAL:     cfg.Storage.SQLiteWAL,
	})
	if err != nil {
		closeLog()
		return nil, fmt.Errorf("open storage: %w", err)
	}
	if fb, ok := blob.(*storage.FileBlob); ok {
		fb.SetOnSave(func(key string) {
			log.Debugw("journal saved", "path", fb.Path(key))
		})
	}

	store := journal.NewStore(blob, cfg.Storage.Key)
	store.SetLogger(log)
	store.SetDefaultMood(cfg.UX.DefaultMood)
	store.Load()

	log.Debugw("journal opened",
		"backend", cfg.Storage.Backend,
		"key", store.Key(),
		"data_dir", cfg.GetDataDir(),
		"entries", store.Len())

	return &session{cfg: cfg, log: log, blob: blob, store: store, closeLog: closeLog}, nil
}

// Close releases storage and flushes the log.
func (s *session) Close() {
	if err := s.blob.Close(); err != nil {
		s.log.Warnw("close storage", "error", err)
	}
	s.closeLog()
}

func runTUI(opts *globalOptions) error {
	s, err := openSession(opts)
	if err != nil {
		return err
	}
	defer s.Close()

	ctrl := carousel.New(s.store)
	s.log.Infow("session started", "entries", ctrl.Len())

	appCfg := &ui.AppConfig{
		Keys:             &s.cfg.Keys,
		ConfirmDeletions: s.cfg.UX.ConfirmDeletions,
		ShowHelpBar:      s.cfg.UX.ShowHelpBar,
		Logger:           s.log,
	}
	if err := ui.Run(ctrl, ui.NewStyles(s.cfg), appCfg); err != nil {
		return fmt.Errorf("run app: %w", err)
	}

	s.log.Infow("session ended", "entries", ctrl.Len())
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
