package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"devlog/internal/backup"
	"devlog/internal/storage"

	"github.com/spf13/cobra"
)

// newManager builds a backup manager for the configured backend.
func newManager(opts *globalOptions) (*backup.Manager, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}

	files := storage.DataFiles(cfg.Storage.Backend, cfg.Storage.Key)
	if len(files) == 0 {
		return nil, fmt.Errorf("the %s backend keeps nothing on disk to back up", cfg.Storage.Backend)
	}
	manager := backup.NewManager(cfg.GetDataDir(), version, files)
	if strings.EqualFold(strings.TrimSpace(cfg.Storage.Backend), storage.BackendSQLite) {
		dbPath := filepath.Join(cfg.GetDataDir(), storage.SQLiteFile)
		manager.SetPrepare(func() error { return storage.CheckpointSQLite(dbPath) })
	}
	return manager, nil
}

func newBackupCmd(opts *globalOptions) *cobra.Command {
	var (
		list  bool
		prune int
	)

	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Create and manage backups",
		Long: `Creates a timestamped backup of the journal data file.
Backups are stored in <data_dir>/backups/ and can be restored later.

Examples:
    # Create a new backup
    devlog backup

    # List all available backups
    devlog backup --list

    # Keep only the five newest backups
    devlog backup --prune 5`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, err := newManager(opts)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			switch {
			case list:
				return listBackups(out, manager)
			case cmd.Flags().Changed("prune"):
				deleted, err := manager.Prune(prune)
				if err != nil {
					return fmt.Errorf("prune backups: %w", err)
				}
				fmt.Fprintf(out, "Removed %d old backup(s).\n", deleted)
				return nil
			default:
				return createBackup(out, manager)
			}
		},
	}

	cmd.Flags().BoolVarP(&list, "list", "l", false, "list available backups")
	cmd.Flags().IntVar(&prune, "prune", 0, "delete all but the N newest backups")
	return cmd
}

// createBackup creates a new backup and displays the result.
func createBackup(out io.Writer, manager *backup.Manager) error {
	name, err := manager.Create()
	if err != nil {
		return fmt.Errorf("create backup: %w", err)
	}

	info, err := manager.GetBackup(name)
	if err != nil {
		return fmt.Errorf("read backup info: %w", err)
	}

	fmt.Fprintf(out, "✓ Backup created: %s\n", name)
	if n := info.Entries(); n >= 0 {
		fmt.Fprintf(out, "  Entries: %d\n", n)
	}
	fmt.Fprintf(out, "  Location: %s\n", info.Path)
	return nil
}

// listBackups lists all available backups.
func listBackups(out io.Writer, manager *backup.Manager) error {
	backups, err := manager.List()
	if err != nil {
		return fmt.Errorf("list backups: %w", err)
	}

	if len(backups) == 0 {
		fmt.Fprintln(out, "No backups available.")
		fmt.Fprintln(out, "Run 'devlog backup' to create one.")
		return nil
	}

	fmt.Fprintln(out, "Available backups:")
	for _, b := range backups {
		line := fmt.Sprintf("  %s  (%s)", b.Name, formatAge(b.CreatedAt))
		if n := b.Entries(); n >= 0 {
			line += fmt.Sprintf("   Entries: %d", n)
		}
		fmt.Fprintln(out, line)
	}
	return nil
}

func newRestoreCmd(opts *globalOptions) *cobra.Command {
	var latest bool

	cmd := &cobra.Command{
		Use:   "restore [NAME]",
		Short: "Restore the journal from a backup",
		Long: `Restores the journal data file from a backup. A safety backup of the
current data is taken first.

Examples:
    devlog restore --latest
    devlog restore 2026-03-14_093000_123`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if latest == (len(args) == 1) {
				return errors.New("pass a backup NAME or --latest")
			}

			manager, err := newManager(opts)
			if err != nil {
				return err
			}

			name := ""
			if latest {
				name, err = manager.RestoreLatest()
			} else {
				name = args[0]
				err = manager.Restore(name)
			}
			if err != nil {
				return fmt.Errorf("restore: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Restored from %s\n", name)
			return nil
		},
	}

	cmd.Flags().BoolVar(&latest, "latest", false, "restore the most recent backup")
	return cmd
}

// formatAge returns a human-readable age string.
func formatAge(t time.Time) string {
	d := time.Since(t)

	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return plural(int(d.Minutes()), "minute")
	case d < 24*time.Hour:
		return plural(int(d.Hours()), "hour")
	case d < 7*24*time.Hour:
		return plural(int(d.Hours()/24), "day")
	default:
		return plural(int(d.Hours()/24/7), "week")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit + " ago"
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
