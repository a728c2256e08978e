package configs

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeisme/greeter/pkg/greeting"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestResolvePort(t *testing.T) {
	testCases := []struct {
		name     string
		env      map[string]string
		expected int
		fromEnv  bool
	}{
		{"absent", map[string]string{}, DefaultPort, false},
		{"empty", map[string]string{"PORT": ""}, DefaultPort, false},
		{"valid", map[string]string{"PORT": "3000"}, 3000, true},
		{"padded", map[string]string{"PORT": " 3000 "}, 3000, true},
		{"not a number", map[string]string{"PORT": "abc"}, DefaultPort, false},
		{"zero", map[string]string{"PORT": "0"}, DefaultPort, false},
		{"negative", map[string]string{"PORT": "-1"}, DefaultPort, false},
		{"too large", map[string]string{"PORT": "70000"}, DefaultPort, false},
		{"upper bound", map[string]string{"PORT": "65535"}, 65535, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			lookup := func(key string) (string, bool) {
				v, ok := tc.env[key]
				return v, ok
			}
			port, fromEnv := ResolvePort(lookup, DefaultPort)
			assert.Equal(t, tc.expected, port)
			assert.Equal(t, tc.fromEnv, fromEnv)
		})
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, "greeter.yaml", "version: \"1.0\"\n")

	cfg, v, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, path, v.ConfigFileUsed())

	assert.Equal(t, DefaultPort, cfg.Server.Port)
	assert.Equal(t, greeting.DefaultVariant, cfg.Server.Variant)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadHeaderTimeout)
	assert.Equal(t, "greeter", cfg.App.Name)
	assert.Equal(t, "console", cfg.Log.Mode)
	assert.False(t, cfg.Admin.Enabled)

	body, err := cfg.Server.ResolveGreeting()
	require.NoError(t, err)
	assert.Equal(t, "Hello World from Node.js App!", body)
}

func TestLoadConfigFormats(t *testing.T) {
	files := map[string]string{
		"greeter.yaml": "server:\n  port: 3000\n  variant: hrutika\n  shutdown_timeout: 2s\n",
		"greeter.json": `{"server": {"port": 3000, "variant": "hrutika", "shutdown_timeout": "2s"}}`,
		"greeter.toml": "[server]\nport = 3000\nvariant = \"hrutika\"\nshutdown_timeout = \"2s\"\n",
	}

	for name, content := range files {
		t.Run(name, func(t *testing.T) {
			cfg, _, err := LoadConfig(writeConfig(t, name, content))
			require.NoError(t, err)
			assert.Equal(t, 3000, cfg.Server.Port)
			assert.Equal(t, "hrutika", cfg.Server.Variant)
			assert.Equal(t, 2*time.Second, cfg.Server.ShutdownTimeout)
		})
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("GREETER_SERVER_VARIANT", "ratan")
	t.Setenv("GREETER_LOG_LEVEL", "debug")

	cfg, _, err := LoadConfig(writeConfig(t, "greeter.yaml", "server:\n  variant: node\n"))
	require.NoError(t, err)
	assert.Equal(t, "ratan", cfg.Server.Variant)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadConfigValidation(t *testing.T) {
	_, _, err := LoadConfig(writeConfig(t, "greeter.yaml", "server:\n  port: 70000\n"))
	assert.ErrorIs(t, err, ErrInvalidPort)

	_, _, err = LoadConfig(writeConfig(t, "greeter.yaml", "server:\n  variant: express\n"))
	assert.ErrorIs(t, err, greeting.ErrUnknownVariant)

	_, _, err = LoadConfig(writeConfig(t, "greeter.yaml", "admin:\n  enabled: true\n  addr: nonsense\n"))
	assert.Error(t, err)

	// 显式问候语时变体名称不参与校验
	cfg, _, err := LoadConfig(writeConfig(t, "greeter.yaml", "server:\n  variant: express\n  greeting: hi\n"))
	require.NoError(t, err)
	body, err := cfg.Server.ResolveGreeting()
	require.NoError(t, err)
	assert.Equal(t, "hi", body)
}

func TestLoadConfigBrokenFile(t *testing.T) {
	_, _, err := LoadConfig(writeConfig(t, "greeter.yaml", "server: [\n"))
	assert.Error(t, err)
}

func TestParseOutputFormat(t *testing.T) {
	f, err := ParseOutputFormat("YML")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	f, err = ParseOutputFormat("txt")
	require.NoError(t, err)
	assert.Equal(t, FormatText, f)

	_, err = ParseOutputFormat("xml")
	assert.Error(t, err)
}

func TestCreateDefaultConfigRoundTrip(t *testing.T) {
	for _, format := range []OutputFormat{FormatYAML, FormatJSON, FormatTOML} {
		t.Run(string(format), func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "conf", "greeter."+string(format))
			require.NoError(t, CreateDefaultConfig(path, format))

			cfg, _, err := LoadConfig(path)
			require.NoError(t, err)
			assert.Equal(t, DefaultConfig(), *cfg)

			// 已存在时不覆盖
			assert.Error(t, CreateDefaultConfig(path, format))
		})
	}

	assert.Error(t, CreateDefaultConfig(filepath.Join(t.TempDir(), "greeter.txt"), FormatText))
}

func TestGetConfigSection(t *testing.T) {
	v, err := NewViper(writeConfig(t, "greeter.yaml", "server:\n  variant: ratan\n"))
	require.NoError(t, err)

	data, err := GetConfigSection(v, "server", true)
	require.NoError(t, err)
	server, ok := data.(ServerConfig)
	require.True(t, ok)
	assert.Equal(t, "ratan", server.Variant)

	raw, err := GetConfigSection(v, "server.variant", false)
	require.NoError(t, err)
	assert.Equal(t, "ratan", raw)

	_, err = GetConfigSection(v, "nope", true)
	assert.Error(t, err)
}

func TestOutputData(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, OutputData(map[string]int{"port": 8080}, FormatYAML, &buf, false))
	assert.Equal(t, "port: 8080\n", buf.String())

	buf.Reset()
	require.NoError(t, OutputData(map[string]int{"port": 8080}, FormatJSON, &buf, false))
	assert.Equal(t, "{\n  \"port\": 8080\n}\n", buf.String())

	buf.Reset()
	require.NoError(t, OutputData(map[string]int{"port": 8080}, FormatTOML, &buf, false))
	assert.Equal(t, "port = 8080\n", buf.String())
}
