package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"backlog/internal/config"
	"backlog/internal/testsupport"
)

type cliEnv struct {
	cfg        *config.Config
	configPath string
	dir        string
}

func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) cliEnv {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("STEAM_API_KEY", "")
	t.Setenv("BACKLOG_NTFY_TOPIC", "")
	t.Setenv("NO_COLOR", "1")

	cfg := testsupport.NewConfig(t, opts...)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	data, err := toml.Marshal(*cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	testsupport.WriteFile(t, path, data)
	return cliEnv{cfg: cfg, configPath: path, dir: dir}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func (e cliEnv) run(t *testing.T, args ...string) string {
	t.Helper()
	out, _, err := runCLI(t, args, e.configPath)
	if err != nil {
		t.Fatalf("backlog %s: %v", strings.Join(args, " "), err)
	}
	return out
}

func (e cliEnv) writeHeroicLibrary(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(e.dir, name)
	testsupport.WriteFile(t, path, []byte(body))
	return path
}

func requireContains(t *testing.T, output, substring string) {
	t.Helper()
	if !strings.Contains(output, substring) {
		t.Fatalf("expected output to contain %q\noutput:\n%s", substring, output)
	}
}

func requireNotContains(t *testing.T, output, substring string) {
	t.Helper()
	if strings.Contains(output, substring) {
		t.Fatalf("expected output not to contain %q\noutput:\n%s", substring, output)
	}
}
