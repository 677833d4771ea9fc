package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lleo/go-functional-collections/internal/logutil"
	"github.com/lleo/go-functional-collections/internal/soak"
)

func newTimingCmd() *cobra.Command {
	var count, loops int

	var cmd = &cobra.Command{
		Use:   "timing",
		Short: "Time appending to btreelist, trie32 and a Go slice",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if count <= 0 || loops <= 0 {
				return errors.New("--count and --loops must be positive")
			}

			var log = logutil.BgLogger().Named("timing")
			var timings = soak.AppendTiming(cmd.Context(), count, loops, log)
			for _, t := range timings {
				log.Info("append timing", zap.String("name", t.Name), zap.Int("count", t.Count),
					zap.Int("loops", loops), zap.Duration("elapsed", t.Elapsed))
				fmt.Fprintf(cmd.OutOrStdout(), "%-10s %8d x %d  %v\n", t.Name, t.Count, loops, t.Elapsed)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&count, "count", 250000, "values appended per loop")
	cmd.Flags().IntVar(&loops, "loops", 5, "number of loops")
	return cmd
}
