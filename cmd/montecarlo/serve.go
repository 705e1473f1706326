package main

import (
	"cmp"
	"context"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Ashenafi-pixel/montecarlo-dice/config"
	"github.com/Ashenafi-pixel/montecarlo-dice/die"
	"github.com/Ashenafi-pixel/montecarlo-dice/game"
	"github.com/Ashenafi-pixel/montecarlo-dice/logger"
	"github.com/Ashenafi-pixel/montecarlo-dice/round"
	"github.com/Ashenafi-pixel/montecarlo-dice/server"
)

func newServeCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dice set over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			// flags are bound per command: play and serve share the rolls key
			bind(v, cmd, "port", "port")
			bind(v, cmd, "rolls", "rolls")
			cfg, err := config.FromViper(v)
			if err != nil {
				return err
			}
			ds, err := loadDiceSet(cfg)
			if err != nil {
				return err
			}
			src := sourceFor(cfg)
			if ds.Kind() == config.KindInt {
				dice, err := ds.BuildIntDice(src)
				if err != nil {
					return err
				}
				return runServer(cmd.Context(), cfg, dice, strconv.Atoi)
			}
			dice, err := ds.BuildTextDice(src)
			if err != nil {
				return err
			}
			return runServer(cmd.Context(), cfg, dice, func(s string) (string, error) { return s, nil })
		},
	}
	cmd.Flags().Int("port", 8081, "listen port")
	cmd.Flags().Int("rolls", 1000, "default rolls for a play request without a count")
	return cmd
}

func runServer[F cmp.Ordered](ctx context.Context, cfg *config.Config, dice []*die.Die[F], parseFace func(string) (F, error)) error {
	if ctx == nil {
		ctx = context.Background()
	}
	g, err := game.New(dice)
	if err != nil {
		return err
	}
	store, err := round.Open[F](ctx, cfg)
	if err != nil {
		return err
	}
	srv, err := server.New(cfg, g, store, parseFace, logger.Logger())
	if err != nil {
		return err
	}
	return srv.Run()
}
