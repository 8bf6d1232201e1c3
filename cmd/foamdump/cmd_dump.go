package main

import (
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/escad/byteparse"
	"github.com/escad/byteparse/openfoam"
)

func newDumpCmd() *cobra.Command {
	var pretty bool

	cmd := &cobra.Command{
		Use:   "dump <file>",
		Short: "Parse a case file and print it as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger()

			mf, err := byteparse.MapFile(args[0])
			if err != nil {
				return err
			}
			defer mf.Close()
			log.Debug().Str("file", args[0]).Int("size", len(mf.Bytes())).Msg("mapped input")

			start := time.Now()
			doc, err := openfoam.Parse(mf.Bytes())
			if err != nil {
				return fmt.Errorf("parse %s: %w", args[0], err)
			}
			log.Debug().Dur("elapsed", time.Since(start)).Msg("parsed")

			enc := json.NewEncoder(os.Stdout)
			if pretty {
				enc.SetIndent("", "  ")
			}
			return enc.Encode(doc)
		},
	}
	cmd.Flags().BoolVar(&pretty, "pretty", false, "indent the JSON output")
	return cmd
}
