package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/escad/byteparse"
	"github.com/escad/byteparse/openfoam"
)

func newKeysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keys <file>",
		Short: "List the top-level dictionary keys of a case file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger()

			mf, err := byteparse.MapFile(args[0])
			if err != nil {
				return err
			}
			defer mf.Close()

			doc, err := openfoam.Parse(mf.Bytes())
			if err != nil {
				return fmt.Errorf("parse %s: %w", args[0], err)
			}
			log.Debug().Int("entries", len(doc)).Msg("parsed")

			data, ok := doc["data"].(map[string]any)
			if !ok {
				return fmt.Errorf("%s: no top-level data dictionary", args[0])
			}
			keys := make([]string, 0, len(data))
			for k := range data {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				fmt.Println(k)
			}
			return nil
		},
	}
}
