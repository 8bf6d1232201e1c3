package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var verbose bool

func main() {
	rootCmd := &cobra.Command{
		Use:   "foamdump",
		Short: "Inspect OpenFOAM case files",
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log parse progress to stderr")

	rootCmd.AddCommand(newDumpCmd())
	rootCmd.AddCommand(newKeysCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger() zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}
