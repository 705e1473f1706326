package main

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Ashenafi-pixel/montecarlo-dice/analyzer"
	"github.com/Ashenafi-pixel/montecarlo-dice/config"
	"github.com/Ashenafi-pixel/montecarlo-dice/die"
	"github.com/Ashenafi-pixel/montecarlo-dice/game"
	"github.com/Ashenafi-pixel/montecarlo-dice/logger"
	"github.com/Ashenafi-pixel/montecarlo-dice/round"
)

type playOptions struct {
	form string // empty skips printing the table
	save bool
	top  int
}

func newPlayCmd(v *viper.Viper) *cobra.Command {
	var opts playOptions
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Roll the dice set and print its statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
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
			w := cmd.OutOrStdout()
			if ds.Kind() == config.KindInt {
				dice, err := ds.BuildIntDice(src)
				if err != nil {
					return err
				}
				return runPlay(cmd.Context(), w, cfg, dice, opts)
			}
			dice, err := ds.BuildTextDice(src)
			if err != nil {
				return err
			}
			return runPlay(cmd.Context(), w, cfg, dice, opts)
		},
	}
	cmd.Flags().Int("rolls", 1000, "number of rolls")
	cmd.Flags().StringVar(&opts.form, "form", "", "also print the outcome table: wide or narrow")
	cmd.Flags().BoolVar(&opts.save, "save", false, "persist the play to the configured store")
	cmd.Flags().IntVar(&opts.top, "top", 10, "combinations and permutations to print")
	return cmd
}

func runPlay[F cmp.Ordered](ctx context.Context, w io.Writer, cfg *config.Config, dice []*die.Die[F], opts playOptions) error {
	g, err := game.New(dice)
	if err != nil {
		return err
	}
	if err := g.Play(cfg.Rolls); err != nil {
		return err
	}
	a, err := analyzer.New(g)
	if err != nil {
		return err
	}
	logger.Info("played", "dice", len(dice), "rolls", cfg.Rolls, "seed", cfg.Seed)

	if opts.form != "" {
		form, err := game.ParseForm(opts.form)
		if err != nil {
			return err
		}
		table, err := g.RecentPlay(form)
		if err != nil {
			return err
		}
		printFrame(w, table)
		fmt.Fprintln(w)
	}
	printSummary(w, a.Summary(), opts.top)

	if opts.save {
		if ctx == nil {
			ctx = context.Background()
		}
		store, err := round.Open[F](ctx, cfg)
		if err != nil {
			return err
		}
		rec := round.NewRecord(g, a)
		if err := store.Save(ctx, rec); err != nil {
			return err
		}
		logger.Info("saved recent play", "playId", rec.PlayID, "store", cfg.Store)
		fmt.Fprintf(w, "\nsaved play %s\n", rec.PlayID)
	}
	return nil
}

func printFrame[F cmp.Ordered](w io.Writer, f *game.Frame[F]) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\n", strings.Join(f.IndexNames, "\t"), strings.Join(f.Columns, "\t"))
	for i, row := range f.Values {
		cells := make([]string, 0, len(f.Index[i])+len(row))
		for _, ix := range f.Index[i] {
			cells = append(cells, fmt.Sprint(ix))
		}
		for _, v := range row {
			cells = append(cells, fmt.Sprint(v))
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	tw.Flush()
}

func printSummary[F cmp.Ordered](w io.Writer, s analyzer.Summary[F], top int) {
	fmt.Fprintf(w, "rolls: %d  dice: %d  jackpots: %d\n", s.Rolls, s.Dice, s.JackpotCount)

	totals := make([]int, len(s.FaceCounts.Faces))
	for _, row := range s.FaceCounts.Counts {
		for j, c := range row {
			totals[j] += c
		}
	}
	fmt.Fprintln(w, "\nface totals:")
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for j, f := range s.FaceCounts.Faces {
		fmt.Fprintf(tw, "  %v\t%d\n", f, totals[j])
	}
	tw.Flush()

	printFrequencies(w, "combinations", s.Combinations, top)
	printFrequencies(w, "permutations", s.Permutations, top)
}

func printFrequencies[F cmp.Ordered](w io.Writer, title string, fs []analyzer.Frequency[F], top int) {
	fmt.Fprintf(w, "\n%s (%d distinct):\n", title, len(fs))
	if top <= 0 || top > len(fs) {
		top = len(fs)
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, f := range fs[:top] {
		fmt.Fprintf(tw, "  %v\t%d\n", f.Key, f.Count)
	}
	tw.Flush()
}
