// Command courtplan runs the court matchmaking engine against a JSON
// session document.
//
// Usage:
//
//	courtplan allocate --session tonight.json
//	courtplan regenerate --session tonight.json --court 2 --committed ana,ben,cat,dev
//	courtplan replace --session tonight.json --fixed ana,ben,cat
//	courtplan score --session tonight.json --players ana,ben,cat,dev
//	courtplan profiles
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/forgo/courtside/matchmaker/internal/config"
	"github.com/forgo/courtside/matchmaker/internal/service"
	"github.com/forgo/courtside/matchmaker/internal/session"
)

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// app carries the dependencies every subcommand shares
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	registry *service.ProfileRegistry
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:          "courtplan",
		Short:        "Propose badminton court allocations from a session document",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			a.cfg = cfg
			a.logger = cfg.NewLogger()
			slog.SetDefault(a.logger)
			a.registry = service.NewProfileRegistry()
			return nil
		},
	}

	root.AddCommand(allocateCmd(a))
	root.AddCommand(regenerateCmd(a))
	root.AddCommand(replaceCmd(a))
	root.AddCommand(scoreCmd(a))
	root.AddCommand(profilesCmd(a))
	return root
}

// engine builds a matchmaking service configured from the environment,
// pinned to the document's clock when it has one
func (a *app) engine(doc *session.Document) *service.MatchmakingService {
	m := a.cfg.Matchmaking
	return service.NewMatchmakingService(service.MatchmakingServiceConfig{
		Generator: service.GeneratorConfig{
			ExhaustiveThreshold: m.ExhaustiveThreshold,
			SampleBudget:        m.SampleBudget,
			AttemptBudget:       m.AttemptBudget,
		},
		ScoringWorkers:     m.ScoringWorkers,
		DefaultRestMinutes: m.DefaultRestMinutes,
		Seed:               m.Seed,
		Now:                doc.Clock(),
		Logger:             a.logger,
	})
}

// load reads and validates a session document, then resolves its profile
func (a *app) load(path string) (*session.Document, *session.Settings, error) {
	doc, err := session.LoadFile(path)
	if err != nil {
		return nil, nil, err
	}
	if err := doc.Err(); err != nil {
		return nil, nil, err
	}

	settings, err := doc.Resolve(a.registry, a.cfg.Matchmaking.DefaultProfile)
	if err != nil {
		return nil, nil, err
	}

	a.logger.Debug("session loaded",
		slog.String("path", path),
		slog.Int("players", len(doc.Players)),
		slog.Int("courts", len(doc.Courts)),
		slog.String("profile", settings.Profile),
	)
	return doc, settings, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
