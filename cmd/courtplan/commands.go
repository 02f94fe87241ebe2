package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/forgo/courtside/matchmaker/internal/service"
)

// --------------------------------------------------------------------------
// allocate command
// --------------------------------------------------------------------------

func allocateCmd(a *app) *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "allocate",
		Short: "Propose one match per court for the whole bench",
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, settings, err := a.load(path)
			if err != nil {
				return err
			}

			round, err := a.engine(doc).GenerateMatches(cmd.Context(), doc.GenerateRequest(settings))
			if err != nil {
				return fmt.Errorf("generate matches: %w", err)
			}

			a.logger.Info("allocation complete",
				slog.String("round_id", round.ID),
				slog.Int("matches", len(round.Matches)),
				slog.Int("unassigned", len(round.Unassigned)),
			)
			return writeJSON(cmd.OutOrStdout(), round)
		},
	}
	cmd.Flags().StringVarP(&path, "session", "s", "-", "Session document path, or - for stdin")
	return cmd
}

// --------------------------------------------------------------------------
// regenerate command
// --------------------------------------------------------------------------

func regenerateCmd(a *app) *cobra.Command {
	var (
		path      string
		court     int
		committed []string
	)
	cmd := &cobra.Command{
		Use:   "regenerate",
		Short: "Propose a new match for one court, keeping other courts' players",
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, settings, err := a.load(path)
			if err != nil {
				return err
			}

			match, err := a.engine(doc).RegenerateCourt(cmd.Context(), doc.RegenerateRequest(settings, court, committed))
			if err != nil {
				return fmt.Errorf("regenerate court %d: %w", court, err)
			}
			if match == nil {
				a.logger.Info("court cannot be filled", slog.Int("court", court))
			}
			return writeJSON(cmd.OutOrStdout(), match)
		},
	}
	cmd.Flags().StringVarP(&path, "session", "s", "-", "Session document path, or - for stdin")
	cmd.Flags().IntVar(&court, "court", 1, "Court number to regenerate")
	cmd.Flags().StringSliceVar(&committed, "committed", nil, "Player IDs already assigned to other courts")
	return cmd
}

// --------------------------------------------------------------------------
// replace command
// --------------------------------------------------------------------------

func replaceCmd(a *app) *cobra.Command {
	var (
		path      string
		fixed     []string
		committed []string
	)
	cmd := &cobra.Command{
		Use:   "replace",
		Short: "Find the best bench player to fill an open slot",
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, settings, err := a.load(path)
			if err != nil {
				return err
			}

			best, err := a.engine(doc).FindBestReplacement(cmd.Context(), doc.ReplacementRequest(settings, fixed, committed))
			if err != nil {
				return fmt.Errorf("find replacement: %w", err)
			}
			if best == nil {
				a.logger.Info("no replacement available", slog.Any("fixed", fixed))
			}
			return writeJSON(cmd.OutOrStdout(), best)
		},
	}
	cmd.Flags().StringVarP(&path, "session", "s", "-", "Session document path, or - for stdin")
	cmd.Flags().StringSliceVar(&fixed, "fixed", nil, "Player IDs staying in the group")
	cmd.Flags().StringSliceVar(&committed, "committed", nil, "Player IDs assigned to other courts")
	_ = cmd.MarkFlagRequired("fixed")
	return cmd
}

// --------------------------------------------------------------------------
// score command
// --------------------------------------------------------------------------

func scoreCmd(a *app) *cobra.Command {
	var (
		path    string
		players []string
	)
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score a hand-picked group without running generation",
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, settings, err := a.load(path)
			if err != nil {
				return err
			}

			group, err := doc.Lookup(players)
			if err != nil {
				return err
			}

			scored, err := a.engine(doc).ScoreGroup(group, service.BuildHistoryIndex(doc.History), settings.Weights, settings.Policy)
			if err != nil {
				return fmt.Errorf("score group: %w", err)
			}
			return writeJSON(cmd.OutOrStdout(), scored)
		},
	}
	cmd.Flags().StringVarP(&path, "session", "s", "-", "Session document path, or - for stdin")
	cmd.Flags().StringSliceVar(&players, "players", nil, "Player IDs in team order")
	_ = cmd.MarkFlagRequired("players")
	return cmd
}

// --------------------------------------------------------------------------
// profiles command
// --------------------------------------------------------------------------

func profilesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "List the built-in scoring profiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeJSON(cmd.OutOrStdout(), a.registry.List())
		},
	}
}
