package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"devlog/internal/export"
	"devlog/internal/journal"

	"github.com/spf13/cobra"
)

func newListCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List journal entries, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(opts)
			if err != nil {
				return err
			}
			defer s.Close()

			printEntries(cmd.OutOrStdout(), s.store.Entries())
			return nil
		},
	}
}

func printEntries(w io.Writer, entries []journal.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No entries yet.")
		fmt.Fprintln(w, "Run 'devlog add' to write one.")
		return
	}

	for i, e := range entries {
		line := fmt.Sprintf("%2d. %s  %s  %s", i+1, e.Date, e.Mood, e.Title)
		if len(e.Tags) > 0 {
			line += "  #" + strings.Join(e.Tags, " #")
		}
		fmt.Fprintln(w, line)
	}
}

func newShowCmd(opts *globalOptions) *cobra.Command {
	var (
		style string
		width int
	)

	cmd := &cobra.Command{
		Use:   "show [N]",
		Short: "Show one entry (1 = newest)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n := 1
			if len(args) == 1 {
				v, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid entry number %q", args[0])
				}
				n = v
			}

			s, err := openSession(opts)
			if err != nil {
				return err
			}
			defer s.Close()

			e, ok := s.store.At(n - 1)
			if !ok {
				return fmt.Errorf("no entry %d (journal has %d)", n, s.store.Len())
			}

			out, err := export.RenderEntry(e, export.RenderOptions{Style: style, Width: width})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&style, "style", "", "glamour style: dark, light or notty (default: detect)")
	cmd.Flags().IntVar(&width, "width", 80, "wrap width")
	return cmd
}

func newAddCmd(opts *globalOptions) *cobra.Command {
	var draft journal.Draft

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an entry without opening the TUI",
		Long: `Add an entry without opening the TUI.

Pass --content - to read the content from stdin:

    git log -1 --format=%B | devlog add --title "Release notes" --content -`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if draft.Content == "-" {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read content: %w", err)
				}
				draft.Content = strings.TrimRight(string(data), "\n")
			}

			s, err := openSession(opts)
			if err != nil {
				return err
			}
			defer s.Close()

			e, err := s.store.Create(draft)
			if err != nil {
				return err
			}
			s.log.Infow("entry added", "id", e.ID)

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Added %s %s (%s)\n", e.Mood, e.Title, e.Date)
			return nil
		},
	}

	cmd.Flags().StringVarP(&draft.Title, "title", "t", "", "entry title")
	cmd.Flags().StringVar(&draft.Tags, "tags", "", "comma-separated tags")
	cmd.Flags().StringVarP(&draft.Mood, "mood", "m", "", "mood glyph (default from config)")
	cmd.Flags().StringVarP(&draft.Content, "content", "c", "", "entry content, or - for stdin")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}
