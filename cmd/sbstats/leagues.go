package main

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/franz/softball-stats/internal/store"
)

var leaguesCmd = &cobra.Command{
	Use:   "leagues",
	Short: "List recorded leagues",
	Args:  cobra.NoArgs,
	RunE:  runLeagues,
}

var teamsCmd = &cobra.Command{
	Use:   "teams",
	Short: "List the teams of a league",
	Args:  cobra.NoArgs,
	RunE:  runTeams,
}

func init() {
	rootCmd.AddCommand(leaguesCmd)
	rootCmd.AddCommand(teamsCmd)

	teamsCmd.Flags().String("league", "", "league to list")
	teamsCmd.MarkFlagRequired("league")
}

func runLeagues(cmd *cobra.Command, args []string) error {
	db, err := store.Open(GetConfigString("db", "data/softball.db"))
	if err != nil {
		return err
	}
	defer db.Close()

	leagues, err := db.ListLeagues()
	if err != nil {
		return err
	}
	return renderLeagues(cmd.OutOrStdout(), leagues)
}

func runTeams(cmd *cobra.Command, args []string) error {
	league, _ := cmd.Flags().GetString("league")

	db, err := store.Open(GetConfigString("db", "data/softball.db"))
	if err != nil {
		return err
	}
	defer db.Close()

	teams, err := db.ListTeams(league)
	if err != nil {
		return err
	}
	return renderTeams(cmd.OutOrStdout(), league, teams)
}

func renderLeagues(w io.Writer, leagues []store.League) error {
	if len(leagues) == 0 {
		_, _ = fmt.Fprintln(w, "No leagues found.")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"League", "Teams", "Seasons", "Games"})
	for _, l := range leagues {
		t.AppendRow(table.Row{l.Name, l.Teams, l.Seasons, l.Games})
	}
	t.Render()
	return nil
}

func renderTeams(w io.Writer, league string, teams []store.Team) error {
	if len(teams) == 0 {
		_, _ = fmt.Fprintf(w, "No teams found in league '%s'.\n", league)
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.SetTitle("Teams in %s", league)
	t.AppendHeader(table.Row{"Team", "Seasons", "Games", "Players"})
	for _, tm := range teams {
		t.AppendRow(table.Row{tm.Name, tm.Seasons, tm.Games, tm.Players})
	}
	t.Render()
	return nil
}
