package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/obrok/lens"
	"github.com/obrok/lens/codec"
	"github.com/spf13/cobra"
)

func newTableCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "table FILE PATH",
		Short: "Print the values at PATH as a table",
		Long: `When every value at PATH is an object, each key becomes a column in
first-seen order. Otherwise the values are listed in a single column.`,
		Args: cobra.ExactArgs(2),
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
			rendered, err := renderTable(values)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return nil
		},
	}
}

func renderTable(values []any) (string, error) {
	tw := table.NewWriter()
	style := table.StyleLight
	style.Format.Header = text.FormatDefault
	tw.SetStyle(style)

	columns, ok := objectColumns(values)
	if !ok {
		tw.AppendHeader(table.Row{"#", "value"})
		for i, v := range values {
			cell, err := cellOf(v)
			if err != nil {
				return "", err
			}
			tw.AppendRow(table.Row{i, cell})
		}
		return tw.Render(), nil
	}

	header := table.Row{}
	for _, c := range columns {
		header = append(header, c)
	}
	tw.AppendHeader(header)
	for _, v := range values {
		row := table.Row{}
		for _, c := range columns {
			found, err := lens.ToList(lens.KeyOptional(c), v)
			if err != nil {
				return "", err
			}
			cell := ""
			if len(found) == 1 {
				if cell, err = cellOf(found[0]); err != nil {
					return "", err
				}
			}
			row = append(row, cell)
		}
		tw.AppendRow(row)
	}
	return tw.Render(), nil
}

// objectColumns collects the keys of values in first-seen order. It reports
// false unless every value is an object.
func objectColumns(values []any) ([]string, bool) {
	if len(values) == 0 {
		return nil, false
	}
	var columns []string
	seen := map[string]bool{}
	for _, v := range values {
		if lens.ShapeOf(v) != lens.ShapeAssoc {
			return nil, false
		}
		keys, err := lens.ToList(lens.MapKeys(), v)
		if err != nil {
			return nil, false
		}
		for _, k := range keys {
			if key := k.(string); !seen[key] {
				seen[key] = true
				columns = append(columns, key)
			}
		}
	}
	return columns, true
}

// cellOf prints strings bare and everything else as compact JSON.
func cellOf(v any) (string, error) {
	if s, ok := v.(string); ok {
		return s, nil
	}
	out, err := codec.EncodeJSON(v)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
