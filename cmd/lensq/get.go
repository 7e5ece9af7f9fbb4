package main

import (
	"fmt"

	"github.com/obrok/lens"
	"github.com/obrok/lens/codec"
	"github.com/spf13/cobra"
)

func newGetCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "get FILE PATH",
		Short: "Print every value at PATH, one JSON document per line",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := opts.load(cmd, args[0])
			if err != nil {
				return err
			}
			l, err := opts.pathLens(args[1], false)
			if err != nil {
				return err
			}
			var encErr error
			err = lens.Each(l, doc, func(v any) {
				if encErr != nil {
					return
				}
				out, err := codec.EncodeJSON(v)
				if err != nil {
					encErr = err
					return
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(out))
			})
			if err != nil {
				return err
			}
			return encErr
		},
	}
}

func newCountCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "count FILE PATH",
		Short: "Print how many values PATH focuses on",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := opts.load(cmd, args[0])
			if err != nil {
				return err
			}
			l, err := opts.pathLens(args[1], false)
			if err != nil {
				return err
			}
			values, err := lens.ToList(l, doc)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), len(values))
			return nil
		},
	}
}
