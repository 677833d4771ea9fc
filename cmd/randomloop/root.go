package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/lleo/go-functional-collections/internal/logutil"
)

// newRootCmd builds the randomloop command tree. The persistent log flags
// configure the background logger before any subcommand runs.
func newRootCmd() *cobra.Command {
	var logCfg logutil.LogConfig

	var root = &cobra.Command{
		Use:           "randomloop",
		Short:         "Soak test and time the persistent collections",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var _, err = logutil.InitLogger(&logCfg)
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logutil.BgLogger().Sync()
		},
	}

	var flags = root.PersistentFlags()
	flags.StringVar(&logCfg.Level, "log-level", "info", "log level: debug, info, warn or error")
	flags.StringVar(&logCfg.File, "log-file", "", "log to this file, rotated by size, instead of stderr")
	flags.IntVar(&logCfg.MaxSizeMB, "log-max-size", 100, "size in megabytes at which the log file is rotated")
	flags.IntVar(&logCfg.MaxBackups, "log-max-backups", 3, "number of rotated log files to keep")
	flags.BoolVar(&logCfg.JSON, "log-json", false, "log JSON instead of console text")

	root.AddCommand(newSoakCmd(), newTimingCmd())
	return root
}

func defaultSeed() int64 {
	return time.Now().UnixNano()
}
