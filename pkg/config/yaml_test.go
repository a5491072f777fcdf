package config_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/deb822/pkg/config"
	"github.com/yaklabco/deb822/pkg/deb822"
)

func TestConfigClone(t *testing.T) {
	t.Parallel()

	t.Run("nil config returns nil", func(t *testing.T) {
		t.Parallel()
		var c *config.Config
		assert.Nil(t, c.Clone())
	})

	t.Run("preserves all fields", func(t *testing.T) {
		t.Parallel()
		original := config.NewConfig()
		original.Strict = true
		original.DryRun = true
		original.Format = config.FormatJSON
		original.Style.Indent = "  "

		clone := original.Clone()
		require.NotNil(t, clone)
		assert.NotSame(t, original, clone)
		assert.Equal(t, original, clone)

		clone.Style.Indent = "\t"
		assert.Equal(t, "  ", original.Style.Indent)
	})
}

func TestConfigToYAML(t *testing.T) {
	t.Parallel()

	t.Run("nil config returns nil", func(t *testing.T) {
		t.Parallel()
		var cfg *config.Config
		data, err := cfg.ToYAML()
		require.NoError(t, err)
		assert.Nil(t, data)
	})

	t.Run("omits CLI-only fields", func(t *testing.T) {
		t.Parallel()
		cfg := config.NewConfig()
		cfg.DryRun = true

		data, err := cfg.ToYAML()
		require.NoError(t, err)
		assert.Contains(t, string(data), "line_ending: auto")
		assert.Contains(t, string(data), "strict: false")
		assert.NotContains(t, string(data), "dry")
	})

	t.Run("header", func(t *testing.T) {
		t.Parallel()
		data, err := config.NewConfig().ToYAMLWithHeader("# generated")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(data), "# generated\n\nstyle:"))
	})
}

func TestFromYAML(t *testing.T) {
	t.Parallel()

	t.Run("parses valid YAML", func(t *testing.T) {
		t.Parallel()
		cfg, err := config.FromYAML([]byte(`
style:
  indent: "    "
  line_ending: crlf
strict: true
backups:
  enabled: true
  mode: sidecar
`))
		require.NoError(t, err)
		assert.Equal(t, "    ", cfg.Style.Indent)
		assert.Equal(t, config.LineEndingCRLF, cfg.Style.LineEnding)
		assert.True(t, cfg.Strict)
		assert.True(t, cfg.BackupsEnabled())
	})

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()
		cfg, err := config.FromYAML(nil)
		require.NoError(t, err)
		assert.Equal(t, &config.Config{}, cfg)
	})

	t.Run("unknown key", func(t *testing.T) {
		t.Parallel()
		_, err := config.FromYAML([]byte("flavor: gfm\n"))
		require.Error(t, err)
	})

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()
		want := config.NewConfig()
		want.Format = ""
		data, err := want.ToYAML()
		require.NoError(t, err)

		got, err := config.FromYAML(data)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})
}

func TestDocumentStyle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		style config.StyleConfig
		want  deb822.Style
	}{
		{
			name: "empty falls back to defaults",
			want: deb822.DefaultStyle(),
		},
		{
			name:  "auto line ending observes the document",
			style: config.StyleConfig{Indent: "  ", LineEnding: config.LineEndingAuto},
			want:  deb822.Style{Indent: "  ", Separator: " ", Newline: ""},
		},
		{
			name:  "crlf",
			style: config.StyleConfig{Separator: "\t", LineEnding: config.LineEndingCRLF},
			want:  deb822.Style{Indent: " ", Separator: "\t", Newline: "\r\n"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := &config.Config{Style: tt.style}
			assert.Equal(t, tt.want, cfg.DocumentStyle())
		})
	}
}

func TestLineEndingValidity(t *testing.T) {
	t.Parallel()

	assert.True(t, config.LineEndingLF.IsValid())
	assert.True(t, config.LineEnding("").IsValid())
	assert.False(t, config.LineEnding("cr").IsValid())
	assert.True(t, config.FormatJSON.IsValid())
	assert.False(t, config.OutputFormat("sarif").IsValid())
}

func TestGenerateTemplate(t *testing.T) {
	t.Parallel()

	minimal, err := config.GenerateTemplate(config.TemplateOptions{})
	require.NoError(t, err)
	cfg, err := config.FromYAML(minimal)
	require.NoError(t, err, "the commented template must load")
	assert.Equal(t, &config.Config{}, cfg)

	full, err := config.GenerateTemplate(config.TemplateOptions{Full: true})
	require.NoError(t, err)
	cfg, err = config.FromYAML(full)
	require.NoError(t, err)
	assert.Equal(t, " ", cfg.Style.Indent)
}

func TestMergeYAML(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Strict = true
	cfg.Backups.Enabled = true

	require.NoError(t, cfg.MergeYAML([]byte("strict: false\nstyle:\n  indent: \"\\t\"\n")))
	assert.False(t, cfg.Strict, "explicit false overrides")
	assert.Equal(t, "\t", cfg.Style.Indent)
	assert.Equal(t, " ", cfg.Style.Separator, "absent keys are kept")
	assert.True(t, cfg.Backups.Enabled)

	require.Error(t, cfg.MergeYAML([]byte("jobs: 4\n")))
}
