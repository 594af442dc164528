package providers

import (
	"os"
	"path/filepath"
	"testing"
	"wallfeed/internal/structures"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func logConfig(level, dir string) *structures.Config {
	return &structures.Config{
		Logger: structures.LoggerConfig{Level: level, Mode: 0644, Dir: dir},
	}
}

func TestGetLogTypeByRequestType(t *testing.T) {
	cases := map[string]TypeEnum{
		"GET":    TypeGet,
		"HEAD":   TypeGet,
		"POST":   TypePost,
		"DELETE": TypeGet,
		"":       TypeGet,
	}
	for method, want := range cases {
		assert.Equal(t, want, GetLogTypeByRequestType(method), method)
	}
}

func TestNewLogProvider_WritesPerChannel(t *testing.T) {
	dir := t.TempDir()
	logger, err := NewLogProvider(logConfig("info", dir))
	require.NoError(t, err)

	logger.Infof(TypeApp, "store ready")
	logger.Warnf(TypeGet, "render of %s failed", "alice")
	logger.Debugf(TypeGet, "suppressed at info")
	logger.Errorf(TypePost, "unexpected write")
	logger.Close()

	read := func(name string) string {
		b, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err, name)
		return string(b)
	}

	assert.Contains(t, read("app.log"), "store ready")
	get := read("get.log")
	assert.Contains(t, get, "render of alice failed")
	assert.NotContains(t, get, "suppressed at info")
	assert.Contains(t, read("post.log"), "unexpected write")
}

func TestNewLogProvider_Errors(t *testing.T) {
	tests := []struct {
		name string
		conf *structures.Config
	}{
		{"unknown level", logConfig("verbose", t.TempDir())},
		{"missing dir", logConfig("info", "/nonexistent/wallfeed/logs")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLogProvider(tt.conf)
			assert.Error(t, err)
		})
	}
}
