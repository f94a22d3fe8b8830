package configcmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/flattag/internal/config"
	"github.com/open-cli-collective/flattag/pkg/flattag"
)

func TestNewCmdInit(t *testing.T) {
	cmd := NewCmdInit()

	assert.Equal(t, "init", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
	assert.NotEmpty(t, cmd.Example)

	flag := cmd.Flags().Lookup("yes")
	require.NotNil(t, flag)
	assert.Equal(t, "y", flag.Shorthand)
	assert.Equal(t, "false", flag.DefValue)
}

func TestRunInit_Defaults(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "flattag", "config.yml")

	var buf bytes.Buffer
	err := runInit(&buf, &initOptions{path: configPath, yes: true, noColor: true})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Configuration saved to "+configPath)

	cfg, err := config.Load(configPath)
	require.NoError(t, err)

	opts, err := cfg.ToOptions()
	require.NoError(t, err)
	assert.Equal(t, flattag.DefaultOptions(), opts)
	assert.Equal(t, `\t`, cfg.Delimiter)
	assert.Equal(t, "utf-8", cfg.Encoding)
}

func TestRunInit_OverwritesWithYes(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, (&config.Config{Delimiter: ",", AttributeMode: "lines"}).Save(configPath))

	err := runInit(new(bytes.Buffer), &initOptions{path: configPath, yes: true, noColor: true})
	require.NoError(t, err)

	cfg, err := config.Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, `\t`, cfg.Delimiter)
	assert.Equal(t, "inline", cfg.AttributeMode)
}

func TestFormValuesFrom(t *testing.T) {
	cfg := &config.Config{
		Delimiter:     ",",
		Newline:       config.StringPtr(""),
		AttributeMode: "LINE",
		AutoClose:     []string{"tr", "td"},
		Encoding:      "shift_jis",
	}

	v := formValuesFrom(cfg)
	assert.Equal(t, ",", v.delimiter)
	assert.Equal(t, "@", v.attrPrefix)
	assert.Equal(t, "=", v.attrInfix)
	assert.Equal(t, "", v.newline)
	assert.Equal(t, " ", v.tab)
	assert.Equal(t, "lines", v.mode)
	assert.Equal(t, "tr,td", v.autoClose)
	assert.Equal(t, "shift_jis", v.encoding)

	back := v.toConfig()
	assert.Equal(t, []string{"tr", "td"}, back.AutoClose)
	assert.Equal(t, "lines", back.AttributeMode)
}

func TestValidateChar(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"", false},
		{",", false},
		{`\t`, false},
		{"é", false},
		{"ab", true},
		{`\n`, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := validateChar(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateEncoding(t *testing.T) {
	assert.NoError(t, validateEncoding("utf-8"))
	assert.NoError(t, validateEncoding("euc-jp"))
	assert.Error(t, validateEncoding("klingon-8"))
}
