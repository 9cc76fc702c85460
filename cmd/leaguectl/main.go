// Command leaguectl runs league maintenance tasks from a terminal.
//
// Usage:
//
//	leaguectl sync
//	leaguectl standings Majors
//	leaguectl import Majors ./majors.csv
//	leaguectl override put "Majors|2024-04-01|6:00 PM|Tigers|Cubs" --home 5 --away 3
//	leaguectl override rm "Majors|2024-04-01|6:00 PM|Tigers|Cubs"
//	leaguectl override list
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"text/tabwriter"

	"github.com/bytedance/sonic"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/riskibarqy/little-league/external/sheets"
	"github.com/riskibarqy/little-league/internal/app"
	"github.com/riskibarqy/little-league/internal/config"
	"github.com/riskibarqy/little-league/internal/domain/game"
	"github.com/riskibarqy/little-league/internal/platform/logging"
	"github.com/riskibarqy/little-league/internal/usecase"
)

var logger = logging.NewConsole(logging.ParseLevel(os.Getenv("APP_LOG_LEVEL")))

func main() {
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:           "leaguectl",
		Short:         "Little league schedule and standings tools",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(syncCmd())
	root.AddCommand(standingsCmd())
	root.AddCommand(importCmd())
	root.AddCommand(overrideCmd())

	if err := root.Execute(); err != nil {
		logger.Error("command failed", "error", err)
		os.Exit(1)
	}
}

func syncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Fetch every division sheet and print the sync report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(ctx context.Context, c *app.Container) error {
				result, err := c.Reconcile.Refresh(ctx)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), result)
			})
		},
	}
}

func standingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "standings [division]",
		Short: "Sync and print standings for one or all scoring divisions",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(ctx context.Context, c *app.Container) error {
				if _, err := c.Reconcile.Refresh(ctx); err != nil {
					return err
				}

				var tables []usecase.DivisionStandings
				if len(args) == 1 {
					item, err := c.Standings.ListByDivision(ctx, args[0])
					if err != nil {
						return err
					}
					tables = append(tables, item)
				} else {
					items, err := c.Standings.ListAll(ctx)
					if err != nil {
						return err
					}
					tables = items
				}

				for _, table := range tables {
					writeStandings(cmd.OutOrStdout(), table)
				}
				return nil
			})
		},
	}
}

func importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <division> <file>",
		Short: "Reconcile a division from a local sheet export",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := sheets.ReadFile(args[1])
			if err != nil {
				return err
			}
			return run(func(ctx context.Context, c *app.Container) error {
				if _, err := c.Reconcile.ApplyOverrides(ctx); err != nil {
					return err
				}
				result, err := c.Reconcile.Reconcile(ctx, map[string][]game.RawRow{args[0]: rows})
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), result)
			})
		},
	}
}

func overrideCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "override",
		Short: "Manage manual score overrides",
	}
	cmd.AddCommand(overridePutCmd())
	cmd.AddCommand(overrideRemoveCmd())
	cmd.AddCommand(overrideListCmd())
	return cmd
}

func overridePutCmd() *cobra.Command {
	var (
		home, away int
		updatedBy  string
	)
	cmd := &cobra.Command{
		Use:   "put <game-key>",
		Short: "Record a score for a scheduled game; omit a side to clear it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := usecase.SubmitScoreInput{GameKey: args[0], UpdatedBy: updatedBy}
			if cmd.Flags().Changed("home") {
				input.HomeScore = game.Score(home)
			}
			if cmd.Flags().Changed("away") {
				input.AwayScore = game.Score(away)
			}

			return run(func(ctx context.Context, c *app.Container) error {
				if _, err := c.Reconcile.Refresh(ctx); err != nil {
					return err
				}
				item, err := c.Scores.SubmitScore(ctx, input)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), item)
			})
		},
	}
	cmd.Flags().IntVar(&home, "home", 0, "Home team runs")
	cmd.Flags().IntVar(&away, "away", 0, "Away team runs")
	cmd.Flags().StringVar(&updatedBy, "by", "leaguectl", "Name recorded with the override")
	return cmd
}

func overrideRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <game-key>",
		Aliases: []string{"remove"},
		Short:   "Delete an override so the sheet score shows again",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(ctx context.Context, c *app.Container) error {
				if _, _, err := c.Scores.RemoveScore(ctx, args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", args[0])
				return nil
			})
		},
	}
}

func overrideListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print every stored override",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(ctx context.Context, c *app.Container) error {
				items, err := c.Scores.ListOverrides(ctx)
				if err != nil {
					return err
				}

				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "GAME\tHOME\tAWAY\tBY\tUPDATED")
				for _, item := range items {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
						item.Key,
						formatScore(item.HomeScore),
						formatScore(item.AwayScore),
						item.UpdatedBy,
						item.UpdatedAt.Format("2006-01-02 15:04"),
					)
				}
				return w.Flush()
			})
		},
	}
}

func run(fn func(ctx context.Context, c *app.Container) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	c, err := app.New(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("build app: %w", err)
	}
	defer c.Close()

	return fn(ctx, c)
}

func writeStandings(out io.Writer, table usecase.DivisionStandings) {
	fmt.Fprintf(out, "%s\n", table.Division)
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "#\tTEAM\tW\tL\tT\tPCT\tRF\tRA\tDIFF\t")
	for i, row := range table.Rows {
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%d\t%s\t%d\t%d\t%+d\t\n",
			i+1, row.Team, row.Wins, row.Losses, row.Ties,
			strconv.FormatFloat(row.WinPct(), 'f', 3, 64),
			row.RunsFor, row.RunsAgainst, row.RunDifferential(),
		)
	}
	_ = w.Flush()
	fmt.Fprintln(out)
}

func writeJSON(out io.Writer, v any) error {
	body, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "%s\n", body)
	return err
}

func formatScore(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v)
}
