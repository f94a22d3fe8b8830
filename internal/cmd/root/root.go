// Package root provides the root command for the flattag CLI.
package root

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/open-cli-collective/flattag/internal/cmd/completion"
	"github.com/open-cli-collective/flattag/internal/cmd/configcmd"
	"github.com/open-cli-collective/flattag/internal/config"
	"github.com/open-cli-collective/flattag/internal/stream"
	"github.com/open-cli-collective/flattag/internal/version"
	"github.com/open-cli-collective/flattag/internal/view"
	"github.com/open-cli-collective/flattag/pkg/flattag"
)

type rootOptions struct {
	fs        afero.Fs
	newLogger func(debug bool) (*zap.Logger, error)

	configPath  string
	delimiter   string
	attrPrefix  string
	attrInfix   string
	newline     string
	tab         string
	autoClose   []string
	ignoreAttrs bool
	attrLines   bool
	output      string
	encoding    string
	noColor     bool
	debug       bool
}

// NewCmdRoot creates the root command for flattag.
func NewCmdRoot() *cobra.Command {
	return newCmdRoot(&rootOptions{
		fs:        afero.NewOsFs(),
		newLogger: newLogger,
	})
}

func newLogger(debug bool) (*zap.Logger, error) {
	if !debug {
		return zap.NewNop(), nil
	}
	return zap.NewDevelopment()
}

func newCmdRoot(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "flattag [flags] [file]",
		Short: "Flatten tagged markup into delimited lines",
		Long: `flattag reads SGML, XML or HTML-like markup and writes one line per
text run. Each line is prefixed with the names of the enclosing tags, so
the result can be processed with grep, cut, awk and friends.

Input is read from the file argument, or from stdin when no file (or "-")
is given. Settings come from the config file, then FLATTAG_* environment
variables, then flags.`,
		Example: `  # Flatten an HTML table
  echo '<tr><td>aaa</td></tr>' | flattag

  # Comma-separated output, attributes on their own lines
  flattag -d , -L page.xml

  # Close <li> and <p> implicitly, read Shift_JIS input
  flattag -c li,p -e shift_jis -o out.tsv legacy.html`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) > 1 {
				return usageError(fmt.Errorf("accepts at most 1 file, received %d", len(args)))
			}
			return nil
		},
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if opts.noColor {
				color.NoColor = true
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, opts, args)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.Version,
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default: ~/.config/flattag/config.yml)")
	cmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "disable colored output")

	flags := cmd.Flags()
	flags.StringVarP(&opts.delimiter, "delimiter", "d", `\t`, `field delimiter, one character ("\t" for tab)`)
	flags.StringVarP(&opts.attrPrefix, "attr-prefix", "a", "@", "character placed before attribute names")
	flags.StringVarP(&opts.attrInfix, "attr-infix", "i", "=", "character between attribute name and value")
	flags.StringVarP(&opts.newline, "newline", "n", " ", "replacement for newlines inside text")
	flags.StringVarP(&opts.tab, "tab", "t", " ", "replacement for tabs inside text")
	flags.StringArrayVarP(&opts.autoClose, "auto-close", "c", nil, "tag names closed implicitly by a sibling (comma-separated, repeatable)")
	flags.BoolVarP(&opts.ignoreAttrs, "ignore-attributes", "I", false, "drop attributes from the output")
	flags.BoolVarP(&opts.attrLines, "attribute-lines", "L", false, "write each attribute on its own line")
	flags.StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	flags.StringVarP(&opts.encoding, "encoding", "e", "utf-8", "input character encoding")
	flags.BoolVar(&opts.debug, "debug", false, "write debug logs to stderr")
	_ = cmd.RegisterFlagCompletionFunc("encoding", completion.FixedValues(stream.CommonEncodings()...))
	_ = cmd.RegisterFlagCompletionFunc("delimiter", completion.FixedValues(`\t`, ",", ";", "|"))

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	cmd.SetVersionTemplate(version.String() + "\n")

	// Subcommands
	cmd.AddCommand(configcmd.NewCmdConfig())
	cmd.AddCommand(completion.NewCmdCompletion())

	return cmd
}

func runConvert(cmd *cobra.Command, opts *rootOptions, args []string) error {
	if opts.ignoreAttrs && opts.attrLines {
		return usageError(errors.New("--ignore-attributes and --attribute-lines cannot be used together"))
	}

	logger, err := opts.newLogger(opts.debug)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()
	log := logger.Sugar()

	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return failure(err)
	}
	applyFlags(cmd, opts, cfg)

	if err := cfg.Validate(); err != nil {
		return usageError(fmt.Errorf("invalid configuration: %w", err))
	}
	parserOpts, err := cfg.ToOptions()
	if err != nil {
		return usageError(fmt.Errorf("invalid configuration: %w", err))
	}
	enc, err := stream.LookupEncoding(cfg.Encoding)
	if err != nil {
		return usageError(err)
	}

	path := ""
	if len(args) == 1 {
		path = args[0]
	}

	in, err := stream.OpenInput(opts.fs, path, cmd.InOrStdin(), enc)
	if err != nil {
		return failure(err)
	}
	defer func() { _ = in.Close() }()

	out, err := stream.CreateOutput(opts.fs, opts.output, cmd.OutOrStdout())
	if err != nil {
		return failure(err)
	}

	log.Debugw("starting conversion",
		"input", in.Name,
		"output", out.Name,
		"encoding", stream.EncodingName(cfg.Encoding),
		"delimiter", view.Visible(string(parserOpts.Delimiter)),
		"attribute_mode", parserOpts.AttrMode.String(),
		"auto_close", strings.Join(parserOpts.AutoClose, ","),
	)

	p := flattag.New(parserOpts)
	p.SetLogger(log.Named("parser"))
	parseErr := p.Parse(in, out)
	closeErr := out.Close()

	stats := p.Stats()
	log.Debugw("conversion finished",
		"lines", humanize.Comma(int64(stats.Lines)),
		"tags", humanize.Comma(int64(stats.Tags)),
		"read", humanize.Bytes(uint64(in.BytesRead())),
		"written", humanize.Bytes(uint64(stats.BytesWritten)),
	)

	if parseErr != nil {
		return failure(parseErr)
	}
	if closeErr != nil {
		return failure(closeErr)
	}
	return nil
}

// loadConfig reads the config file and environment. An explicit --config
// must exist; the default location may be absent.
func loadConfig(cmd *cobra.Command, opts *rootOptions) (*config.Config, error) {
	path := config.ResolvePath(opts.configPath)
	if !cmd.Flags().Changed("config") {
		return config.LoadWithEnv(path)
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	cfg.LoadFromEnv()
	return cfg, nil
}

// applyFlags overrides cfg with the flags set on the command line.
func applyFlags(cmd *cobra.Command, opts *rootOptions, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("delimiter") {
		cfg.Delimiter = opts.delimiter
	}
	if flags.Changed("attr-prefix") {
		cfg.AttrPrefix = opts.attrPrefix
	}
	if flags.Changed("attr-infix") {
		cfg.AttrInfix = opts.attrInfix
	}
	if flags.Changed("newline") {
		cfg.Newline = config.StringPtr(opts.newline)
	}
	if flags.Changed("tab") {
		cfg.Tab = config.StringPtr(opts.tab)
	}
	if flags.Changed("auto-close") {
		cfg.AutoClose = nil
		for _, v := range opts.autoClose {
			cfg.AutoClose = append(cfg.AutoClose, flattag.SplitTagList(v)...)
		}
	}
	if opts.ignoreAttrs {
		cfg.AttributeMode = flattag.AttrIgnore.String()
	}
	if opts.attrLines {
		cfg.AttributeMode = flattag.AttrLines.String()
	}
	if flags.Changed("encoding") {
		cfg.Encoding = opts.encoding
	}
}

// isParseError reports whether err is a syntax error in the input.
func isParseError(err error) bool {
	var pe *flattag.ParseError
	return errors.As(err, &pe)
}
