package main

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/franz/softball-stats/internal/stats"
	"github.com/franz/softball-stats/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print batting lines for recorded games",
	Long: `Print batting lines aggregated at one level:

  game     one line per player per game
  season   one line per player per team and season (default)
  career   one line per player per team across seasons
  all      one line per player across everything`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().String("league", "", "restrict to a league")
	statsCmd.Flags().String("team", "", "restrict to a team")
	statsCmd.Flags().String("season", "", "restrict to a season")
	statsCmd.Flags().String("player", "", "restrict to a player")
	statsCmd.Flags().String("level", "season", "aggregation level: game, season, career or all")
}

func runStats(cmd *cobra.Command, args []string) error {
	levelName, _ := cmd.Flags().GetString("level")
	level, err := stats.ParseLevel(levelName)
	if err != nil {
		return err
	}

	scope := store.Scope{}
	scope.League, _ = cmd.Flags().GetString("league")
	scope.Team, _ = cmd.Flags().GetString("team")
	scope.Season, _ = cmd.Flags().GetString("season")
	scope.Player, _ = cmd.Flags().GetString("player")

	db, err := store.Open(GetConfigString("db", "data/softball.db"))
	if err != nil {
		return err
	}
	defer db.Close()

	lines, err := db.Query(scope)
	if err != nil {
		return err
	}
	return renderStats(cmd.OutOrStdout(), stats.Fold(lines, level), level)
}

func renderStats(w io.Writer, aggs []stats.Aggregate, level stats.Level) error {
	if len(aggs) == 0 {
		_, _ = fmt.Fprintln(w, "No recorded games match.")
		return nil
	}

	var header table.Row
	if level != stats.LevelAllTime {
		header = append(header, "League", "Team")
	}
	if level == stats.LevelGame || level == stats.LevelSeason {
		header = append(header, "Season")
	}
	if level == stats.LevelGame {
		header = append(header, "Game")
	}
	header = append(header, "Player")
	lead := len(header)
	header = append(header, "G", "PA", "AB", "H", "2B", "3B", "HR", "BB", "SO", "RBI", "R", "BA", "OBP", "SLG", "OPS")

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(header)

	for _, a := range aggs {
		var row table.Row
		if level != stats.LevelAllTime {
			row = append(row, a.League, a.Team)
		}
		if level == stats.LevelGame || level == stats.LevelSeason {
			row = append(row, a.Season)
		}
		if level == stats.LevelGame {
			row = append(row, a.Game)
		}
		row = append(row, a.Player, a.Games)
		row = append(row, lineCells(a.Line)...)
		t.AppendRow(row)
	}

	footer := make(table.Row, lead)
	footer[lead-1] = fmt.Sprintf("%d lines", len(aggs))
	footer = append(footer, "")
	footer = append(footer, lineCells(stats.Total(aggs))...)
	t.AppendFooter(footer)

	cfg := make([]table.ColumnConfig, 0, len(header)-lead)
	for i := lead + 1; i <= len(header); i++ {
		cfg = append(cfg, table.ColumnConfig{Number: i, Align: text.AlignRight, AlignFooter: text.AlignRight})
	}
	t.SetColumnConfigs(cfg)

	t.Render()
	return nil
}

func lineCells(l stats.Line) table.Row {
	r := l.Rates()
	return table.Row{
		l.PA, l.AB, l.H, l.Doubles, l.Triples, l.HR, l.BB, l.SO, l.RBI, l.R,
		r.BA.String(), r.OBP.String(), r.SLG.String(), r.OPS.String(),
	}
}
