package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"devlog/internal/export"
	"devlog/internal/fsutil"

	"github.com/spf13/cobra"
)

func newExportCmd(opts *globalOptions) *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the journal as Markdown or JSON",
		Long: `Export every entry, newest first.

Examples:
    # Markdown to stdout
    devlog export

    # JSON to a file
    devlog export --format json --output journal.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}

			s, err := openSession(opts)
			if err != nil {
				return err
			}
			defer s.Close()

			data, err := export.Render(s.store.Entries(), f, time.Now())
			if err != nil {
				return err
			}

			if output == "" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}

			if dir := filepath.Dir(output); dir != "." {
				if err := os.MkdirAll(dir, 0700); err != nil {
					return fmt.Errorf("create output directory: %w", err)
				}
			}
			if err := fsutil.WriteFileAtomic(output, data, 0600); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d entries to %s\n", s.store.Len(), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "markdown", "output format: markdown or json")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")
	return cmd
}
