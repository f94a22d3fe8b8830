package configcmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/flattag/internal/config"
	"github.com/open-cli-collective/flattag/internal/stream"
	"github.com/open-cli-collective/flattag/internal/view"
	"github.com/open-cli-collective/flattag/pkg/flattag"
)

type initOptions struct {
	path    string
	yes     bool
	noColor bool
}

// NewCmdInit creates the config init command.
func NewCmdInit() *cobra.Command {
	opts := &initOptions{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a configuration file",
		Long: `Create the flattag configuration file interactively.

The form is pre-filled with the current values (or the built-in defaults)
and the result is saved to ~/.config/flattag/config.yml unless --config
names another file.`,
		Example: `  # Interactive setup
  flattag config init

  # Write the built-in defaults without prompting
  flattag config init --yes`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.path = configPath(cmd)
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			return runInit(cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.yes, "yes", "y", false, "skip prompts and write the default settings")

	return cmd
}

// formValues holds the form state as plain strings.
type formValues struct {
	delimiter  string
	attrPrefix string
	attrInfix  string
	newline    string
	tab        string
	mode       string
	autoClose  string
	encoding   string
}

func defaultFormValues() formValues {
	d := flattag.DefaultOptions()
	return formValues{
		delimiter:  `\t`,
		attrPrefix: string(d.AttrPrefix),
		attrInfix:  string(d.AttrInfix),
		newline:    d.Newline,
		tab:        d.Tab,
		mode:       d.AttrMode.String(),
		encoding:   "utf-8",
	}
}

// formValuesFrom fills the form from an existing config, keeping defaults
// for unset fields.
func formValuesFrom(cfg *config.Config) formValues {
	v := defaultFormValues()
	if cfg.Delimiter != "" {
		v.delimiter = cfg.Delimiter
	}
	if cfg.AttrPrefix != "" {
		v.attrPrefix = cfg.AttrPrefix
	}
	if cfg.AttrInfix != "" {
		v.attrInfix = cfg.AttrInfix
	}
	if cfg.Newline != nil {
		v.newline = *cfg.Newline
	}
	if cfg.Tab != nil {
		v.tab = *cfg.Tab
	}
	if cfg.AttributeMode != "" {
		if mode, err := flattag.ParseAttrMode(cfg.AttributeMode); err == nil {
			v.mode = mode.String()
		}
	}
	v.autoClose = strings.Join(cfg.AutoClose, ",")
	if cfg.Encoding != "" {
		v.encoding = cfg.Encoding
	}
	return v
}

func (v formValues) toConfig() *config.Config {
	return &config.Config{
		Delimiter:     v.delimiter,
		AttrPrefix:    v.attrPrefix,
		AttrInfix:     v.attrInfix,
		Newline:       config.StringPtr(v.newline),
		Tab:           config.StringPtr(v.tab),
		AttributeMode: v.mode,
		AutoClose:     flattag.SplitTagList(v.autoClose),
		Encoding:      v.encoding,
	}
}

func validateChar(s string) error {
	if s == "" || s == `\t` || utf8.RuneCountInString(s) == 1 {
		return nil
	}
	return errors.New(`must be a single character (or \t)`)
}

func validateEncoding(s string) error {
	_, err := stream.LookupEncoding(s)
	return err
}

func runInit(w io.Writer, opts *initOptions) error {
	r := view.NewRenderer(view.FormatTable, opts.noColor)
	r.SetWriter(w)

	values := defaultFormValues()
	if existing, err := config.Load(opts.path); err == nil {
		values = formValuesFrom(existing)

		if !opts.yes {
			var overwrite bool
			err := huh.NewConfirm().
				Title("Configuration already exists").
				Description(fmt.Sprintf("Overwrite %s?", opts.path)).
				Value(&overwrite).
				Run()
			if err != nil {
				return err
			}
			if !overwrite {
				r.RenderText("Initialization cancelled.")
				return nil
			}
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		r.Warning(fmt.Sprintf("Ignoring unreadable config: %v", err))
	}

	if opts.yes {
		values = defaultFormValues()
	} else if err := buildForm(&values).Run(); err != nil {
		return err
	}

	cfg := values.toConfig()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if _, err := cfg.ToOptions(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if err := cfg.Save(opts.path); err != nil {
		return err
	}

	r.Success(fmt.Sprintf("Configuration saved to %s", opts.path))
	r.RenderText("\nTry it out:")
	r.RenderText("  echo '<tr><td>aaa</td></tr>' | flattag")
	r.RenderText("  flattag config show")

	return nil
}

func buildForm(v *formValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Delimiter").
				Description(`Field separator, one character (\t for tab)`).
				Value(&v.delimiter).
				Validate(validateChar),

			huh.NewInput().
				Title("Attribute prefix").
				Description("Placed before each attribute name").
				Value(&v.attrPrefix).
				Validate(validateChar),

			huh.NewInput().
				Title("Attribute infix").
				Description("Placed between attribute name and value").
				Value(&v.attrInfix).
				Validate(validateChar),

			huh.NewSelect[string]().
				Title("Attributes").
				Options(
					huh.NewOption("Inline in the tag label", flattag.AttrInline.String()),
					huh.NewOption("One line per attribute", flattag.AttrLines.String()),
					huh.NewOption("Ignore", flattag.AttrIgnore.String()),
				).
				Value(&v.mode),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Newline replacement").
				Description("Written in place of newlines inside text").
				Value(&v.newline),

			huh.NewInput().
				Title("Tab replacement").
				Description("Written in place of tabs inside text").
				Value(&v.tab),

			huh.NewInput().
				Title("Auto-close tags (optional)").
				Description("Comma-separated tag names closed by a sibling, e.g. tr,td,li").
				Placeholder("tr,td").
				Value(&v.autoClose),

			huh.NewInput().
				Title("Input encoding").
				Description("WHATWG label such as utf-8, shift_jis, windows-1252").
				Value(&v.encoding).
				Validate(validateEncoding),
		),
	)
}
