package main

import (
	"github.com/obrok/lens"
	"github.com/obrok/lens/codec"
	"github.com/spf13/cobra"
)

func newPutCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "put FILE PATH VALUE",
		Short: "Replace every value at PATH with VALUE and print the document",
		Long: `VALUE is parsed as YAML, so 3 is a number, true a bool and
'{a: 1}' an object. Missing objects along PATH are created.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := opts.load(cmd, args[0])
			if err != nil {
				return err
			}
			value, err := codec.Decode([]byte(args[2]))
			if err != nil {
				return err
			}
			l, err := opts.pathLens(args[1], true)
			if err != nil {
				return err
			}
			updated, err := lens.Put(l, doc, value)
			if err != nil {
				return err
			}
			c, err := opts.encoder(args[0])
			if err != nil {
				return err
			}
			return writeDocument(cmd.OutOrStdout(), c, updated)
		},
	}
}
