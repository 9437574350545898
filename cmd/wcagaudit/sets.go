package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/nao1215/wcagaudit/internal/urlset"
)

// NewSetsCmd creates the sets command and its subcommands.
func NewSetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sets",
		Short: "Manage saved URL sets",
		Long: `Sets manages named lists of URLs that can be audited again later.

Saved sets are kept in a SQLite database in the XDG data directory by
default. Use --store file to keep them in a JSON file instead.

Examples:
  # List saved sets, newest first
  wcagaudit sets list

  # Save a set
  wcagaudit sets save "Gemeente site" https://example.nl https://example.nl/contact

  # Show the URLs of a set
  wcagaudit sets show "Gemeente site"

  # Delete a set
  wcagaudit sets delete "Gemeente site"`,
	}

	cmd.AddCommand(newSetsListCmd())
	cmd.AddCommand(newSetsSaveCmd())
	cmd.AddCommand(newSetsShowCmd())
	cmd.AddCommand(newSetsDeleteCmd())

	return cmd
}

// withStore opens the configured store and runs fn against it.
func withStore(cmd *cobra.Command, fn func(ctx context.Context, store *urlset.Store) error) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cfg.Verbose)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	store, slots, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer slots.Close()

	return fn(ctx, store)
}

func newSetsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved URL sets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withStore(cmd, func(_ context.Context, store *urlset.Store) error {
				return printSets(cmd.OutOrStdout(), store)
			})
		},
	}
}

// printSets writes a table of saved sets.
func printSets(out io.Writer, store *urlset.Store) error {
	sets := store.List()
	if len(sets) == 0 {
		_, err := fmt.Fprintln(out, "No saved sets.")
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tURLS\tCREATED")
	for _, set := range sets {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n",
			set.ID, set.Name, len(set.Targets), set.CreatedAt.Local().Format(time.DateTime))
	}
	return tw.Flush()
}

func newSetsSaveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "save <name> <url...>",
		Short: "Save a named URL set",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			auth, err := cmd.Flags().GetStringArray("auth")
			if err != nil {
				return err
			}
			return withStore(cmd, func(ctx context.Context, store *urlset.Store) error {
				list, err := buildTargets(nil, args[1:], auth, nil)
				if err != nil {
					return userError(err)
				}
				set, err := store.Save(ctx, args[0], list.Snapshot())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Saved set %q (%s) with %d URL(s)\n", set.Name, set.ID, len(set.Targets))
				return nil
			})
		},
	}
	cmd.Flags().StringArrayP("auth", "a", nil,
		"Login credentials for a URL as url=user:pass (repeatable)")
	return cmd
}

func newSetsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id|name>",
		Short: "Show the URLs of a saved set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(_ context.Context, store *urlset.Store) error {
				set, err := store.Find(args[0])
				if err != nil {
					return fmt.Errorf("saved set %q: %w", args[0], err)
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "%s (%s), saved %s\n", set.Name, set.ID, set.CreatedAt.Local().Format(time.DateTime))
				for _, t := range set.Targets {
					if t.HasCredentials() {
						fmt.Fprintf(out, "  %s (login: %s)\n", t.URL, t.Username)
						continue
					}
					fmt.Fprintf(out, "  %s\n", t.URL)
				}
				return nil
			})
		},
	}
}

func newSetsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id|name>",
		Short: "Delete a saved set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(ctx context.Context, store *urlset.Store) error {
				set, err := store.Find(args[0])
				if err != nil {
					return fmt.Errorf("saved set %q: %w", args[0], err)
				}
				if err := store.Delete(ctx, set.ID); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted set %q (%s)\n", set.Name, set.ID)
				return nil
			})
		},
	}
}
