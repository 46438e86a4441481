package rxhttpgen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyConfigDefaults(t *testing.T) {
	in := &Config{}
	cfg := applyConfigDefaults(in)

	assert.Equal(t, "rxhttp.wrapper.param", cfg.Package)
	assert.Equal(t, RxJava3, cfg.RxJava)
	assert.Equal(t, 4, cfg.IndentSize)
	assert.NotNil(t, cfg.Logger)
	assert.True(t, cfg.RxJavaEnabled())
	assert.True(t, cfg.Overwrites())
	assert.Empty(t, in.Package, "input config is not modified")
	require.NoError(t, cfg.Validate())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		cfg    Config
		errMsg string
	}{
		{"valid", Config{Package: "com.example.http", RxJava: RxJava2, IndentSize: 2}, ""},
		{"none", Config{Package: "a", RxJava: RxJavaNone, IndentSize: 4}, ""},
		{"bad rxjava", Config{Package: "a", RxJava: "rxjava1", IndentSize: 4}, `rxjava must be one of [rxjava3 rxjava2 none], got "rxjava1"`},
		{"bad package", Config{Package: "com..example", RxJava: RxJava3, IndentSize: 4}, `package is not a valid Kotlin package name: "com..example"`},
		{"leading digit", Config{Package: "1com", RxJava: RxJava3, IndentSize: 4}, "package is not a valid Kotlin package name"},
		{"indent", Config{Package: "a", RxJava: RxJava3, IndentSize: 12}, "indent_size must be between 1 and 8"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFile)
	require.NoError(t, os.WriteFile(path, []byte(`
input = "build/declarations.yaml"
out_dir = "/abs/out"
package = "com.example.http"
rxjava = "rxjava2"
indent_size = 2
deps_manifest = true
overwrite = false
`), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "build/declarations.yaml"), cfg.Input)
	assert.Equal(t, "/abs/out", cfg.OutDir)
	assert.Equal(t, "com.example.http", cfg.Package)
	assert.Equal(t, RxJava2, cfg.RxJava)
	assert.Equal(t, 2, cfg.IndentSize)
	assert.True(t, cfg.DepsManifest)
	assert.False(t, cfg.Overwrites())
}

func TestLoadConfig_UnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFile)
	require.NoError(t, os.WriteFile(path, []byte("pakage = \"x\"\n"), 0644))

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown keys pakage")
	assert.Contains(t, errors.FlattenHints(err), "supported keys")
}

func TestLoadConfig_Missing(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}
