package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Ashenafi-pixel/montecarlo-dice/config"
	"github.com/Ashenafi-pixel/montecarlo-dice/gamemath"
	"github.com/Ashenafi-pixel/montecarlo-dice/logger"
)

func newRootCmd() *cobra.Command {
	v := config.NewViper()
	root := &cobra.Command{
		Use:          "montecarlo",
		Short:        "Weighted dice Monte Carlo simulator",
		Long:         `Rolls a set of weighted dice many times and summarizes jackpots, face counts, combinations and permutations.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logCfg, err := logger.LoadConfig(v.GetString("log_config"))
			if err != nil {
				return fmt.Errorf("logging config: %w", err)
			}
			return logger.InitializeWriter(logCfg, cmd.ErrOrStderr())
		},
	}
	pf := root.PersistentFlags()
	pf.String("dice", "dice.yaml", "YAML dice set file")
	pf.String("data-dir", "data", "directory for the file and sqlite stores")
	pf.String("store", config.StoreFile, "recent play store: file, sqlite or postgres")
	pf.Uint64("seed", 0, "random seed (0 uses crypto/rand)")
	pf.String("log-config", "", "YAML logging config")
	bind(v, root, "dice_file", "dice")
	bind(v, root, "data_dir", "data-dir")
	bind(v, root, "store", "store")
	bind(v, root, "seed", "seed")
	bind(v, root, "log_config", "log-config")

	root.AddCommand(newPlayCmd(v), newServeCmd(v), newVersionCmd())
	return root
}

func bind(v *viper.Viper, cmd *cobra.Command, key, flag string) {
	f := cmd.PersistentFlags().Lookup(flag)
	if f == nil {
		f = cmd.Flags().Lookup(flag)
	}
	_ = v.BindPFlag(key, f)
}

// sourceFor returns a seeded source, or nil to keep the CSPRNG default.
func sourceFor(cfg *config.Config) gamemath.Source {
	if cfg.Seed == 0 {
		return nil
	}
	return gamemath.NewSeededSource(cfg.Seed)
}

func loadDiceSet(cfg *config.Config) (*config.DiceSet, error) {
	if cfg.DiceFile == "" {
		return nil, config.ErrNoDiceFile
	}
	return config.LoadDiceSet(cfg.DiceFile)
}
