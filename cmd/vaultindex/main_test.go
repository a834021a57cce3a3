package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"vaultindex/internal/testsupport"
)

type cliEnv struct {
	base       string
	vault      string
	output     string
	cache      string
	configPath string
}

func setupCLITestEnv(t *testing.T) cliEnv {
	t.Helper()

	base := t.TempDir()
	t.Setenv("HOME", base)
	t.Setenv("VAULTINDEX_VAULT_DIR", "")

	env := cliEnv{
		base:       base,
		vault:      filepath.Join(base, "vault"),
		output:     filepath.Join(base, "site", "content.json"),
		cache:      filepath.Join(base, "state", "playlist_cache.json"),
		configPath: filepath.Join(base, "vaultindex.toml"),
	}
	if err := os.MkdirAll(env.vault, 0o755); err != nil {
		t.Fatalf("mkdir vault: %v", err)
	}
	writeCLIConfig(t, env.configPath, env.vault, env.output, env.cache)
	return env
}

func writeCLIConfig(t *testing.T, path, vault, output, cache string) {
	t.Helper()

	var b strings.Builder
	b.WriteString("[paths]\n")
	if vault != "" {
		fmt.Fprintf(&b, "vault_dir = %q\n", vault)
	}
	fmt.Fprintf(&b, "output_path = %q\n", output)
	fmt.Fprintf(&b, "cache_path = %q\n", cache)
	b.WriteString("\n[oembed]\nenabled = false\n")
	testsupport.WriteFile(t, path, b.String())
}

func writeSampleVault(t *testing.T, vault string) {
	t.Helper()

	testsupport.WriteDocument(t, vault, "math/derivatives.md", map[string]string{
		"video_id": "abc123",
		"title":    "Derivatives",
		"language": "en",
		"channel":  "math",
		"state":    "published",
	}, "body\n")
	testsupport.WriteDocument(t, vault, "math/french.md", map[string]string{
		"video_id": "fr1",
		"language": "french",
		"channel":  "math",
	}, "")
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

func TestGenerateWritesIndexAndSummary(t *testing.T) {
	env := setupCLITestEnv(t)
	writeSampleVault(t, env.vault)

	stdout, _, err := runCLI(t, []string{"generate"}, env.configPath)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	for _, want := range []string{"Indexed", "English", "Skipped documents", "math/french.md", "unknown_language"} {
		if !strings.Contains(stdout, want) {
			t.Fatalf("summary missing %q:\n%s", want, stdout)
		}
	}

	content := testsupport.ReadFile(t, env.output)
	if !strings.Contains(content, `"video_id": "abc123"`) {
		t.Fatalf("index missing video:\n%s", content)
	}
}

func TestGenerateJSONReport(t *testing.T) {
	env := setupCLITestEnv(t)
	writeSampleVault(t, env.vault)

	stdout, _, err := runCLI(t, []string{"--json", "generate"}, env.configPath)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	var report generateReport
	if err := json.Unmarshal([]byte(stdout), &report); err != nil {
		t.Fatalf("decode report: %v\n%s", err, stdout)
	}
	if report.Indexed != 1 || report.Skipped != 1 {
		t.Fatalf("unexpected counts: %+v", report)
	}
	if report.ByLanguage["en"] != 1 || len(report.ByLanguage) != 1 {
		t.Fatalf("unexpected per-language counts: %v", report.ByLanguage)
	}
	if len(report.SkippedDocs) != 1 || report.SkippedDocs[0].Reason != "unknown_language" {
		t.Fatalf("unexpected skipped documents: %+v", report.SkippedDocs)
	}
	if report.SkippedDocs[0].Path != filepath.Join("math", "french.md") {
		t.Fatalf("expected vault-relative path, got %q", report.SkippedDocs[0].Path)
	}
}

func TestGenerateDryRunWritesNothing(t *testing.T) {
	env := setupCLITestEnv(t)
	writeSampleVault(t, env.vault)

	stdout, _, err := runCLI(t, []string{"generate", "--dry-run"}, env.configPath)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(stdout, "dry run") {
		t.Fatalf("expected dry run marker:\n%s", stdout)
	}
	if _, err := os.Stat(filepath.Dir(env.output)); !os.IsNotExist(err) {
		t.Fatalf("expected output directory to be absent, got %v", err)
	}
}

func TestGenerateFlagsOverrideConfigPaths(t *testing.T) {
	env := setupCLITestEnv(t)
	writeCLIConfig(t, env.configPath, "", env.output, env.cache)

	other := filepath.Join(env.base, "other-vault")
	writeSampleVault(t, other)
	output := filepath.Join(env.base, "custom", "index.json")

	if _, _, err := runCLI(t, []string{"generate", "--vault", other, "--output", output}, env.configPath); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(testsupport.ReadFile(t, output), "abc123") {
		t.Fatal("expected index at overridden output path")
	}
	if _, err := os.Stat(env.output); !os.IsNotExist(err) {
		t.Fatalf("configured output should be untouched, got %v", err)
	}
}

func TestGenerateMissingVaultFails(t *testing.T) {
	env := setupCLITestEnv(t)
	if err := os.RemoveAll(env.vault); err != nil {
		t.Fatalf("remove vault: %v", err)
	}

	_, _, err := runCLI(t, []string{"generate"}, env.configPath)
	if err == nil || !strings.Contains(err.Error(), "vault directory") {
		t.Fatalf("expected vault directory error, got %v", err)
	}
}

func TestCacheCommands(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteFile(t, env.cache, `{"PL1": "Calculus", "PL2": "Algebra"}`)

	stdout, _, err := runCLI(t, []string{"cache", "list"}, env.configPath)
	if err != nil {
		t.Fatalf("cache list: %v", err)
	}
	if !strings.Contains(stdout, "2 entries") || !strings.Contains(stdout, "Calculus") {
		t.Fatalf("unexpected list output:\n%s", stdout)
	}

	stdout, _, err = runCLI(t, []string{"--json", "cache", "list"}, env.configPath)
	if err != nil {
		t.Fatalf("cache list --json: %v", err)
	}
	var entries []map[string]string
	if err := json.Unmarshal([]byte(stdout), &entries); err != nil {
		t.Fatalf("decode entries: %v", err)
	}
	if len(entries) != 2 || entries[0]["playlist_id"] != "PL1" || entries[1]["title"] != "Algebra" {
		t.Fatalf("unexpected entries: %+v", entries)
	}

	stdout, _, err = runCLI(t, []string{"cache", "remove", "PL1"}, env.configPath)
	if err != nil {
		t.Fatalf("cache remove: %v", err)
	}
	if !strings.Contains(stdout, "Removed PL1 (Calculus)") {
		t.Fatalf("unexpected remove output: %q", stdout)
	}
	if strings.Contains(testsupport.ReadFile(t, env.cache), "PL1") {
		t.Fatal("expected PL1 to be removed from the cache file")
	}

	if _, _, err := runCLI(t, []string{"cache", "remove", "PL1"}, env.configPath); err == nil {
		t.Fatal("expected error removing a missing entry")
	}

	stdout, _, err = runCLI(t, []string{"cache", "clear"}, env.configPath)
	if err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	if !strings.Contains(stdout, "Cleared 1 cached titles") {
		t.Fatalf("unexpected clear output: %q", stdout)
	}

	stdout, _, err = runCLI(t, []string{"cache", "list"}, env.configPath)
	if err != nil {
		t.Fatalf("cache list: %v", err)
	}
	if !strings.Contains(stdout, "Title cache: empty") {
		t.Fatalf("expected empty cache, got:\n%s", stdout)
	}
}

func TestConfigInitAndValidate(t *testing.T) {
	base := t.TempDir()
	t.Setenv("HOME", base)
	t.Setenv("VAULTINDEX_VAULT_DIR", "")
	target := filepath.Join(base, "conf", "vaultindex.toml")

	stdout, _, err := runCLI(t, []string{"config", "init", "--path", target}, "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(stdout, target) {
		t.Fatalf("expected target path in output: %q", stdout)
	}

	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, ""); err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("expected already exists error, got %v", err)
	}
	if _, _, err := runCLI(t, []string{"config", "init", "--path", target, "--overwrite"}, ""); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}

	stdout, _, err = runCLI(t, []string{"config", "validate"}, target)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	if !strings.Contains(stdout, "Configuration valid") || strings.Contains(stdout, "did not exist") {
		t.Fatalf("unexpected validate output:\n%s", stdout)
	}
}

func TestConfigValidateReportsErrors(t *testing.T) {
	base := t.TempDir()
	t.Setenv("HOME", base)
	t.Setenv("VAULTINDEX_VAULT_DIR", "")

	_, _, err := runCLI(t, []string{"config", "validate"}, filepath.Join(base, "missing.toml"))
	if err == nil || !strings.Contains(err.Error(), "vault_dir") {
		t.Fatalf("expected vault_dir error, got %v", err)
	}
}

func TestCheckCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	stdout, _, err := runCLI(t, []string{"check"}, env.configPath)
	if err != nil {
		t.Fatalf("check: %v\n%s", err, stdout)
	}
	if !strings.Contains(stdout, "Vault directory:") || !strings.Contains(stdout, "[OK]") {
		t.Fatalf("unexpected check output:\n%s", stdout)
	}

	if err := os.RemoveAll(env.vault); err != nil {
		t.Fatalf("remove vault: %v", err)
	}
	stdout, _, err = runCLI(t, []string{"check"}, env.configPath)
	if err == nil || !strings.Contains(err.Error(), "checks failed") {
		t.Fatalf("expected failed checks, got %v", err)
	}
	if !strings.Contains(stdout, "[ERROR]") {
		t.Fatalf("expected error line:\n%s", stdout)
	}
}

func TestLogFormatFlagRejectsUnknownFormat(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{"--log-format", "xml", "generate"}, env.configPath)
	if err == nil {
		t.Fatal("expected unknown log format to fail")
	}
	if !strings.Contains(err.Error(), "logging.format") {
		t.Fatalf("expected logging.format error, got %v", err)
	}
}
