package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dstepanov/treedump/internal/utils"
)

type configTestCase struct {
	name            string
	globalContent   string
	localContent    string
	explicitPath    string
	expectRoot      string
	expectOutput    string
	expectFormat    string
	expectGitignore *bool
	expectTokens    *bool
	expectModel     string
}

func boolPointer(value bool) *bool {
	pointer := value
	return &pointer
}

func TestLoadApplicationConfigurationMergesSources(t *testing.T) {
	testCases := []configTestCase{
		{
			name:            "local_overrides_global",
			globalContent:   "export:\n  output: global.txt\n  format: text\n  gitignore: true\n",
			localContent:    "export:\n  output: local.txt\n  tokens:\n    enabled: true\n    model: custom\n",
			expectOutput:    "local.txt",
			expectFormat:    "text",
			expectGitignore: boolPointer(true),
			expectTokens:    boolPointer(true),
			expectModel:     "custom",
		},
		{
			name:          "explicit_path_replaces_local_file",
			globalContent: "export:\n  format: json\n",
			localContent:  "",
			explicitPath:  "custom.yaml",
			expectRoot:    "/tmp/project",
			expectFormat:  "json",
		},
		{
			name:          "global_only",
			globalContent: "export:\n  root: /srv/data\n  hide: .git\n",
			expectRoot:    "/srv/data",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			homeDirectory := t.TempDir()
			workingDirectory := t.TempDir()
			configurationDirectory := filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName)
			if err := os.MkdirAll(configurationDirectory, 0o755); err != nil {
				t.Fatalf("create config dir: %v", err)
			}
			if testCase.globalContent != "" {
				globalPath := filepath.Join(configurationDirectory, utils.GlobalConfigFileName)
				if err := os.WriteFile(globalPath, []byte(testCase.globalContent), 0o600); err != nil {
					t.Fatalf("write global config: %v", err)
				}
			}
			if testCase.localContent != "" {
				localPath := filepath.Join(workingDirectory, utils.ConfigFileName)
				if err := os.WriteFile(localPath, []byte(testCase.localContent), 0o600); err != nil {
					t.Fatalf("write local config: %v", err)
				}
			}
			if testCase.explicitPath != "" {
				target := filepath.Join(workingDirectory, testCase.explicitPath)
				if err := os.WriteFile(target, []byte("export:\n  root: /tmp/project\n"), 0o600); err != nil {
					t.Fatalf("write explicit config: %v", err)
				}
			}

			t.Setenv("HOME", homeDirectory)
			t.Setenv("USERPROFILE", homeDirectory)

			loadedConfig, err := LoadApplicationConfiguration(LoadOptions{
				WorkingDirectory: workingDirectory,
				ExplicitFilePath: testCase.explicitPath,
			})
			if err != nil {
				t.Fatalf("LoadApplicationConfiguration error: %v", err)
			}

			if loadedConfig.Export.Root != testCase.expectRoot {
				t.Fatalf("expected root %q, got %q", testCase.expectRoot, loadedConfig.Export.Root)
			}
			if loadedConfig.Export.Output != testCase.expectOutput {
				t.Fatalf("expected output %q, got %q", testCase.expectOutput, loadedConfig.Export.Output)
			}
			if loadedConfig.Export.Format != testCase.expectFormat {
				t.Fatalf("expected format %q, got %q", testCase.expectFormat, loadedConfig.Export.Format)
			}
			if testCase.expectGitignore == nil {
				if loadedConfig.Export.Gitignore != nil {
					t.Fatalf("expected no gitignore override")
				}
			} else {
				if loadedConfig.Export.Gitignore == nil || *loadedConfig.Export.Gitignore != *testCase.expectGitignore {
					t.Fatalf("unexpected gitignore value")
				}
			}
			if testCase.expectTokens == nil {
				if loadedConfig.Export.Tokens.Enabled != nil {
					t.Fatalf("expected no tokens override")
				}
			} else {
				if loadedConfig.Export.Tokens.Enabled == nil || *loadedConfig.Export.Tokens.Enabled != *testCase.expectTokens {
					t.Fatalf("unexpected tokens enabled value")
				}
			}
			if loadedConfig.Export.Tokens.Model != testCase.expectModel {
				t.Fatalf("expected model %q, got %q", testCase.expectModel, loadedConfig.Export.Tokens.Model)
			}
		})
	}
}

func TestEnvironmentOverridesReadsCompatibilityVariables(t *testing.T) {
	t.Setenv("FOLDER", "/srv/project")
	t.Setenv("PRIVATE_LIST", "secrets.env,id_rsa")
	t.Setenv("EXCLUDE_FOLDERS", "node_modules")
	t.Setenv("HIDE_FOLDERS", ".git")
	t.Setenv("OUTPUT", "dump.txt")

	overlay := EnvironmentOverrides()
	if overlay.Export.Root != "/srv/project" {
		t.Fatalf("expected root from FOLDER, got %q", overlay.Export.Root)
	}
	if overlay.Export.Private != "secrets.env,id_rsa" {
		t.Fatalf("expected private from PRIVATE_LIST, got %q", overlay.Export.Private)
	}
	if overlay.Export.Exclude != "node_modules" {
		t.Fatalf("expected exclude from EXCLUDE_FOLDERS, got %q", overlay.Export.Exclude)
	}
	if overlay.Export.Hide != ".git" {
		t.Fatalf("expected hide from HIDE_FOLDERS, got %q", overlay.Export.Hide)
	}
	if overlay.Export.Output != "dump.txt" {
		t.Fatalf("expected output from OUTPUT, got %q", overlay.Export.Output)
	}
}

func TestEnvironmentOverridesLeavesUnsetVariablesEmpty(t *testing.T) {
	for _, variableName := range []string{"FOLDER", "PRIVATE_LIST", "EXCLUDE_FOLDERS", "HIDE_FOLDERS", "OUTPUT"} {
		t.Setenv(variableName, "")
		if unsetError := os.Unsetenv(variableName); unsetError != nil {
			t.Fatalf("unset %s: %v", variableName, unsetError)
		}
	}

	overlay := EnvironmentOverrides()
	if overlay.Export.Root != "" || overlay.Export.Output != "" {
		t.Fatalf("expected empty overlay, got %+v", overlay.Export)
	}
}

func TestResolveAppliesDefaults(t *testing.T) {
	var configuration ApplicationConfiguration
	settings, resolveError := configuration.Resolve()
	if resolveError != nil {
		t.Fatalf("Resolve error: %v", resolveError)
	}
	if settings.OutputPath != DefaultOutputFileName {
		t.Fatalf("expected default output %q, got %q", DefaultOutputFileName, settings.OutputPath)
	}
	if settings.Format != "text" {
		t.Fatalf("expected default format text, got %q", settings.Format)
	}
	if settings.TokenizerModel != DefaultTokenizerModel {
		t.Fatalf("expected default model %q, got %q", DefaultTokenizerModel, settings.TokenizerModel)
	}
	if settings.CountTokens || settings.UseGitignore || settings.CopyToClipboard {
		t.Fatalf("expected boolean settings to default to false")
	}
}

func TestResolveLoadsListValues(t *testing.T) {
	temporaryDirectory := t.TempDir()
	privateListPath := filepath.Join(temporaryDirectory, "private.txt")
	if writeError := os.WriteFile(privateListPath, []byte("secrets.env\ncredentials.json\n"), 0o600); writeError != nil {
		t.Fatalf("write private list: %v", writeError)
	}

	configuration := ApplicationConfiguration{
		Export: ExportConfiguration{
			Root:    "/srv/project",
			Private: privateListPath,
			Exclude: "node_modules,dist",
			Hide:    ".git",
		},
	}
	settings, resolveError := configuration.Resolve()
	if resolveError != nil {
		t.Fatalf("Resolve error: %v", resolveError)
	}
	if len(settings.PrivateEntries) != 2 {
		t.Fatalf("expected 2 private entries, got %v", settings.PrivateEntries)
	}
	if len(settings.ExcludeFolders) != 2 || settings.ExcludeFolders[0] != "node_modules" {
		t.Fatalf("unexpected exclude folders %v", settings.ExcludeFolders)
	}
	if len(settings.HiddenFolders) != 1 || settings.HiddenFolders[0] != ".git" {
		t.Fatalf("unexpected hidden folders %v", settings.HiddenFolders)
	}
	if settings.RootPath != "/srv/project" || settings.RootLabel != "/srv/project" {
		t.Fatalf("unexpected root settings %q %q", settings.RootPath, settings.RootLabel)
	}
}

func TestMergeKeepsBaseWhenOverrideEmpty(t *testing.T) {
	base := ApplicationConfiguration{
		Export: ExportConfiguration{
			Output:    "base.txt",
			Gitignore: boolPointer(true),
		},
	}
	merged := base.Merge(ApplicationConfiguration{})
	if merged.Export.Output != "base.txt" {
		t.Fatalf("expected base output to survive empty override, got %q", merged.Export.Output)
	}
	if merged.Export.Gitignore == nil || !*merged.Export.Gitignore {
		t.Fatalf("expected base gitignore to survive empty override")
	}
}
