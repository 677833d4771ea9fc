package main

import (
	"github.com/spf13/cobra"

	"github.com/lleo/go-functional-collections/internal/logutil"
	"github.com/lleo/go-functional-collections/internal/soak"
)

func newSoakCmd() *cobra.Command {
	var cfg soak.Config

	var cmd = &cobra.Command{
		Use:   "soak",
		Short: "Randomly grow and shrink every collection, checking it against an oracle",
		Long: `soak runs rounds of random inserts, lookups and deletes against
btreelist, trie32, btreemap and both hamt32 collision strategies. After every
phase each collection is compared with a Go slice, map or google/btree and
its structural invariants are checked. With --iterations 0 it runs until
interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("seed") {
				cfg.Seed = defaultSeed()
			}
			var r = soak.NewRunner(cfg, logutil.BgLogger().Named("soak"))
			return r.Run(cmd.Context())
		},
	}

	cmd.Flags().Int64Var(&cfg.Seed, "seed", 0, "random seed (default: current time)")
	cmd.Flags().IntVar(&cfg.Iterations, "iterations", 0, "rounds to run; 0 means until interrupted")
	cmd.Flags().IntVar(&cfg.MaxSize, "max-size", soak.DefaultMaxSize, "upper bound on the size of each round")
	return cmd
}
