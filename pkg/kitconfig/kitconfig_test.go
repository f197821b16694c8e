package kitconfig_test

import (
	"os"
	"path/filepath"
	"testing"

	"embedkit/pkg/kitconfig"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.kit")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestParseConfig_Full(t *testing.T) {
	path := writeConfig(t, `# demo scenario
buffer 8 overwrite

timer 5 periodic
filter avg 4
filter exp 1 4
lut 0:0 512:1650 1023:3300
`)

	cfg, err := kitconfig.ParseConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.BufferCapacity)
	assert.True(t, cfg.Overwrite)
	assert.Equal(t, uint32(5), cfg.TimerInterval)
	assert.True(t, cfg.TimerPeriodic)

	require.Len(t, cfg.Filters, 2)
	assert.Equal(t, kitconfig.FilterAvg, cfg.Filters[0].Kind)
	assert.Equal(t, 4, cfg.Filters[0].Window)
	assert.Equal(t, kitconfig.FilterExp, cfg.Filters[1].Kind)
	assert.Equal(t, uint16(1), cfg.Filters[1].AlphaNum)
	assert.Equal(t, uint16(4), cfg.Filters[1].AlphaDen)

	assert.Equal(t, []int32{0, 512, 1023}, cfg.LutX)
	assert.Equal(t, []int32{0, 1650, 3300}, cfg.LutY)
}

func TestParseConfig_Defaults(t *testing.T) {
	cfg, err := kitconfig.ParseConfig(writeConfig(t, "# nothing configured\n"))
	require.NoError(t, err)

	assert.Equal(t, 64, cfg.BufferCapacity)
	assert.False(t, cfg.Overwrite)
	assert.Zero(t, cfg.TimerInterval)
	assert.Empty(t, cfg.Filters)
	assert.Nil(t, cfg.LutX)
}

func TestParseConfig_Errors(t *testing.T) {
	for name, content := range map[string]string{
		"unknown directive": "bufffer 8\n",
		"zero capacity":     "buffer 0\n",
		"bad buffer option": "buffer 8 wrap\n",
		"zero interval":     "timer 0\n",
		"bad filter kind":   "filter median 3\n",
		"bad alpha":         "filter exp 5 4\n",
		"short lut":         "lut 0:0\n",
		"bad lut point":     "lut 0:0 512-1650 1023:3300\n",
		"unsorted lut":      "lut 0:0 512:1650 512:3300\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := kitconfig.ParseConfig(writeConfig(t, content))
			assert.Error(t, err)
		})
	}
}

func TestParseConfig_MissingFile(t *testing.T) {
	_, err := kitconfig.ParseConfig(filepath.Join(t.TempDir(), "missing.kit"))
	assert.Error(t, err)
}
