package main

import (
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/diegok/blobvolley/internal/bot"
	"github.com/diegok/blobvolley/internal/config"
	"github.com/diegok/blobvolley/internal/game"
	"github.com/diegok/blobvolley/internal/protocol"
	"github.com/diegok/blobvolley/internal/session"
)

const defaultSimulationTicks = 60 * 60 * 10

func newSimulateCmd(configPath *string) *cobra.Command {
	var (
		ticks int
		out   string
		seed  int64
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Play computer against computer without a screen",
		Long: `Runs a match between two computer players as fast as possible and writes
one JSON line per tick with the events, the scores and the ball position.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, *configPath)
			if err != nil {
				return err
			}
			lvl, _ := cfg.Level()
			logger := newLogger(zerolog.ConsoleWriter{Out: os.Stderr}, lvl)

			var w io.Writer = cmd.OutOrStdout()
			if out != "" && out != "-" {
				f, err := os.Create(out)
				if err != nil {
					return eris.Wrapf(err, "create %s", out)
				}
				defer f.Close()
				w = f
			}

			return simulate(w, cfg, ticks, seed, logger)
		},
	}

	cmd.Flags().IntVar(&ticks, "ticks", defaultSimulationTicks, "stop after this many ticks")
	cmd.Flags().StringVarP(&out, "out", "o", "-", "write the tick log here, - for stdout")
	cmd.Flags().Int64Var(&seed, "seed", 1, "seed of the computer players")

	return cmd
}

func simulate(w io.Writer, cfg *config.Config, ticks int, seed int64, logger zerolog.Logger) error {
	if ticks < 1 {
		return eris.Errorf("ticks must be positive, got %d", ticks)
	}

	s := session.New(
		session.WithLogger(logger),
		session.WithBots(func(side protocol.Side) session.Bot {
			return bot.NewSeededBot(side, cfg.BotStrength, seed+int64(side))
		}),
		session.WithMatch(func() *game.Match {
			return game.New(cfg.PointsToWin)
		}),
	)
	s.SetPlayers(protocol.Computer, protocol.Computer)

	played, err := s.Record(protocol.NewEncoder(w), ticks)
	if err != nil {
		return err
	}

	left, right := s.Match().Scores()
	ev := logger.Info().Int("ticks", played).Int("left", left).Int("right", right)
	if winner, ok := s.Match().Winner(); ok {
		ev = ev.Stringer("winner", winner)
	}
	ev.Msg("simulation finished")
	return nil
}
