package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/obrok/lens"
	"github.com/obrok/lens/codec"
	"github.com/obrok/lens/config"
	"github.com/obrok/lens/logging"
	"github.com/obrok/lens/observability"
	"github.com/obrok/lens/predicate"
	"github.com/spf13/cobra"
)

// options are the flags shared by every command.
type options struct {
	logLevel  string
	logFormat string
	output    string
	where     string
	logger    *slog.Logger
}

func newRootCmd() *cobra.Command {
	// LENSQ_LOG_LEVEL, LENSQ_LOG_FORMAT and LENSQ_OUTPUT set flag defaults.
	env := config.New().
		WithDefaults(map[string]any{
			"log.level":  "warn",
			"log.format": "text",
			"output":     "",
		}).
		LoadEnv("LENSQ")

	opts := &options{logger: logging.Nop()}
	root := &cobra.Command{
		Use:   "lensq",
		Short: "lensq reads and rewrites JSON and YAML documents with lenses",
		Long: `lensq evaluates dotted paths against JSON and YAML documents.
A path segment is a key, an integer index, or * for every element.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := logging.New(logging.Config{
				Level:  logging.ParseLevel(opts.logLevel),
				Format: logging.Format(opts.logFormat),
				Output: cmd.ErrOrStderr(),
				Redact: true,
			})
			if err != nil {
				return err
			}
			opts.logger = logger
			return nil
		},
	}

	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", env.GetString("log.level"), "Log level: debug, info, warn or error")
	root.PersistentFlags().StringVar(&opts.logFormat, "log-format", env.GetString("log.format"), "Log format: json or text")
	root.PersistentFlags().StringVarP(&opts.output, "output", "o", env.GetString("output"), "Output format: json or yaml (default from the file extension)")
	root.PersistentFlags().StringVarP(&opts.where, "where", "w", "", "CEL expression over it that focused values must satisfy")

	root.AddCommand(newGetCmd(opts), newCountCmd(opts), newPutCmd(opts), newTableCmd(opts))
	return root
}

// load reads and decodes file, or stdin when file is "-".
func (o *options) load(cmd *cobra.Command, file string) (any, error) {
	var r io.Reader = cmd.InOrStdin()
	if file != "-" {
		f, err := os.Open(file)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", file, err)
	}
	doc, err := codec.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	o.logger.Debug("document loaded", "file", file, "shape", lens.ShapeOf(doc).String())
	return doc, nil
}

// pathLens builds the instrumented lens for path, restricted by --where.
func (o *options) pathLens(path string, write bool) (lens.Lens, error) {
	l := config.ReadPath(path)
	if write {
		l = config.WritePath(path)
	}
	if o.where != "" {
		p, err := predicate.Compile(o.where)
		if err != nil {
			return nil, err
		}
		l = lens.Seq(l, p.Filter())
	}
	return observability.Instrument(l, path, observability.WithLogger(o.logger)), nil
}

// encoder picks the output codec from --output or the input file name.
func (o *options) encoder(file string) (codec.Codec, error) {
	var c codec.Codec
	if o.output != "" {
		var err error
		if c, err = codec.ForName(o.output); err != nil {
			return nil, err
		}
	} else {
		c = codec.ForPath(file)
	}
	if j, ok := c.(*codec.JSONCodec); ok {
		j.WithPretty()
	}
	return c, nil
}

func writeDocument(w io.Writer, c codec.Codec, doc any) error {
	out, err := c.Encode(doc)
	if err != nil {
		return err
	}
	if len(out) == 0 || out[len(out)-1] != '\n' {
		out = append(out, '\n')
	}
	_, err = w.Write(out)
	return err
}
