package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowc-lang/flowc/internal/config"
)

func TestLoadConfig_DefaultsWhenNoFile(t *testing.T) {
	t.Parallel()

	cfg, err := config.LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, config.DefaultMaxExpansionDepth, cfg.MaxExpansionDepth)
	assert.Equal(t, config.DefaultSeparator, cfg.Separator)
	assert.Equal(t, config.DefaultLiteralConstPrefix, cfg.LiteralConstPrefix)
}

func TestValidate_RejectsNonPositiveDepth(t *testing.T) {
	t.Parallel()

	cfg := config.Config{MaxExpansionDepth: 0, Separator: ":", LiteralConstPrefix: "_literal_const_"}
	assert.Error(t, cfg.Validate())
}

func TestValidate_RejectsEmptySeparator(t *testing.T) {
	t.Parallel()

	cfg := config.Config{MaxExpansionDepth: 1024, Separator: "", LiteralConstPrefix: "_literal_const_"}
	assert.Error(t, cfg.Validate())
}
