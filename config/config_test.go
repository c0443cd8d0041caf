package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestInitConfigDefaults(t *testing.T) {
	cfg, err := InitConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:3000/", cfg.App.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.App.WaitTimeout())
	assert.Equal(t, DriverPlaywright, cfg.Browser.Driver)
	assert.True(t, cfg.Browser.Headless)
	assert.Equal(t, "testdata/scenarios.yaml", cfg.Scenarios.File)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestInitConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "config.yaml", `
app:
  baseUrl: http://students.test:8080/
  timeout: 3
browser:
  driver: chromedp
  headless: false
log:
  level: debug
`)

	cfg, err := InitConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "http://students.test:8080/", cfg.App.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.App.WaitTimeout())
	assert.Equal(t, DriverChromedp, cfg.Browser.Driver)
	assert.False(t, cfg.Browser.Headless)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestInitConfigEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "config.yaml", "app:\n  timeout: 3\n")
	t.Setenv("STUDENT_E2E_APP_TIMEOUT", "7")
	t.Setenv("STUDENT_E2E_BROWSER_DRIVER", "selenium")

	cfg, err := InitConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.App.Timeout)
	assert.Equal(t, DriverSelenium, cfg.Browser.Driver)
}

func TestInitConfigDotEnv(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".env", "STUDENT_E2E_APP_BASEURL=http://from-dotenv:3000/\n")
	t.Setenv("STUDENT_E2E_APP_BASEURL", "")
	require.NoError(t, os.Unsetenv("STUDENT_E2E_APP_BASEURL"))

	cfg, err := InitConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "http://from-dotenv:3000/", cfg.App.BaseURL)
}

func TestInitConfigRejectsInvalid(t *testing.T) {
	tests := map[string]string{
		"unknown driver":  "browser:\n  driver: netscape\n",
		"zero timeout":    "app:\n  timeout: 0\n",
		"malformed yaml":  "app: [\n",
		"selenium no hub": "browser:\n  driver: selenium\n  seleniumUrl: \"\"\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, "config.yaml", content)
			_, err := InitConfig(dir)
			require.Error(t, err)
		})
	}
}
