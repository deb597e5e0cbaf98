package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Undanomi/OSINT-GAME-sub000/internal/domain/seed"
	"github.com/Undanomi/OSINT-GAME-sub000/internal/infrastructure/config"
	"github.com/Undanomi/OSINT-GAME-sub000/internal/providers/browser"
)

func newSeedCmd(cfg *config.Config, opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "seed <file|dir|glob|url>",
		Short: "Replace the cache with records from YAML, TOML or JSON files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), cfg, opts, func(app *browser.App) error {
				n, err := app.Seed(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d records from %s\n", n, args[0])
				return nil
			})
		},
	}
}

func newInspectCmd(cfg *config.Config, opts *options) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Report the persisted cache entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), cfg, opts, func(app *browser.App) error {
				info, err := app.Cache().Inspect(cmd.Context())
				if err != nil {
					return err
				}
				if asJSON {
					return printJSON(cmd.OutOrStdout(), info)
				}
				out := cmd.OutOrStdout()
				if !info.Present {
					fmt.Fprintln(out, "Cache is empty")
					return nil
				}
				fmt.Fprintf(out, "Records:    %d\n", info.Records)
				fmt.Fprintf(out, "Fetched at: %s\n", info.FetchedAt.Format(time.RFC3339))
				fmt.Fprintf(out, "Expired:    %t\n", info.Expired)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "output JSON")
	return cmd
}

func newPurgeCmd(cfg *config.Config, opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "purge",
		Short: "Delete the persisted cache entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), cfg, opts, func(app *browser.App) error {
				if err := app.Cache().Purge(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Cache purged")
				return nil
			})
		},
	}
}

func newExportCmd(cfg *config.Config, opts *options) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the cached records as a seed document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := seed.ParseFormat(format)
			if err != nil {
				return err
			}
			return withApp(cmd.Context(), cfg, opts, func(app *browser.App) error {
				data, err := seed.Encode(f, app.Cache().Get(cmd.Context()))
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			})
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", string(seed.FormatYAML), "yaml, toml or json")
	return cmd
}

func newResolveCmd(cfg *config.Config, opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <address>",
		Short: "Show the page an address resolves to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), cfg, opts, func(app *browser.App) error {
				return printJSON(cmd.OutOrStdout(), app.Resolve(cmd.Context(), args[0]))
			})
		},
	}
}

func newSearchCmd(cfg *config.Config, opts *options) *cobra.Command {
	var skip bool
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Run a search against the cached records",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			return withApp(cmd.Context(), cfg, opts, func(app *browser.App) error {
				t, err := app.Search(cmd.Context(), "", query, skip)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), t.Page)
			})
		},
	}
	cmd.Flags().BoolVar(&skip, "skip-suggestion", false, "do not correct the query")
	return cmd
}
