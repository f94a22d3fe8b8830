package configcmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/flattag/internal/cmd/completion"
	"github.com/open-cli-collective/flattag/internal/config"
	"github.com/open-cli-collective/flattag/internal/stream"
	"github.com/open-cli-collective/flattag/internal/view"
)

type showOptions struct {
	path    string
	format  string
	noColor bool
}

// NewCmdShow creates the config show command.
func NewCmdShow() *cobra.Command {
	opts := &showOptions{}

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Display effective configuration",
		Long: `Display the settings a conversion would use, with the source of each
value: default, config (the config file), or the environment variable
that set it. Flags given on a conversion are not included.`,
		Example: `  # Show current config
  flattag config show

  # Machine-readable
  flattag config show --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := view.ValidateFormat(opts.format); err != nil {
				return err
			}
			opts.path = configPath(cmd)
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			return runShow(cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "table", "output format: table, json, plain")
	_ = cmd.RegisterFlagCompletionFunc("format", completion.FixedValues(view.ValidFormats()...))

	return cmd
}

func runShow(w io.Writer, opts *showOptions) error {
	fileCfg, err := config.Load(opts.path)
	fileFound := err == nil
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		fileCfg = &config.Config{}
	}

	settings, err := effectiveSettings(fileCfg)
	if err != nil {
		return err
	}

	r := view.NewRenderer(view.Format(opts.format), opts.noColor)
	r.SetWriter(w)
	if err := r.RenderSettings(settings); err != nil {
		return err
	}

	if opts.format == string(view.FormatTable) || opts.format == "" {
		dim := color.New(color.Faint)
		fmt.Fprintln(w)
		_, _ = dim.Fprintf(w, "Config file: %s\n", opts.path)
		if !fileFound {
			_, _ = dim.Fprintln(w, "(file not found)")
		}
	}

	return nil
}

// effectiveSettings merges the environment over fileCfg and reports the
// resulting values with their sources.
func effectiveSettings(fileCfg *config.Config) ([]view.Setting, error) {
	cfg := *fileCfg
	cfg.LoadFromEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	opts, err := cfg.ToOptions()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	source := func(envVar string, inFile bool) string {
		if os.Getenv(envVar) != "" {
			return envVar
		}
		if inFile {
			return "config"
		}
		return "default"
	}

	autoClose := "-"
	if len(opts.AutoClose) > 0 {
		autoClose = strings.Join(opts.AutoClose, ",")
	}

	return []view.Setting{
		{Key: "delimiter", Value: view.Visible(string(opts.Delimiter)), Source: source(config.EnvDelimiter, fileCfg.Delimiter != "")},
		{Key: "attr_prefix", Value: view.Visible(string(opts.AttrPrefix)), Source: source(config.EnvAttrPrefix, fileCfg.AttrPrefix != "")},
		{Key: "attr_infix", Value: view.Visible(string(opts.AttrInfix)), Source: source(config.EnvAttrInfix, fileCfg.AttrInfix != "")},
		{Key: "newline", Value: view.Visible(opts.Newline), Source: source(config.EnvNewline, fileCfg.Newline != nil)},
		{Key: "tab", Value: view.Visible(opts.Tab), Source: source(config.EnvTab, fileCfg.Tab != nil)},
		{Key: "attribute_mode", Value: opts.AttrMode.String(), Source: source(config.EnvAttributeMode, fileCfg.AttributeMode != "")},
		{Key: "auto_close", Value: autoClose, Source: source(config.EnvAutoClose, len(fileCfg.AutoClose) > 0)},
		{Key: "encoding", Value: stream.EncodingName(cfg.Encoding), Source: source(config.EnvEncoding, fileCfg.Encoding != "")},
	}, nil
}
