package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/dstepanov/treedump/internal/types"
	"github.com/dstepanov/treedump/internal/utils"
)

// Environment variables recognized for compatibility with the original tool.
const (
	envRootVariable    = "FOLDER"
	envPrivateVariable = "PRIVATE_LIST"
	envExcludeVariable = "EXCLUDE_FOLDERS"
	envHideVariable    = "HIDE_FOLDERS"
	envOutputVariable  = "OUTPUT"
)

// Configuration keys used when binding environment variables.
const (
	rootSettingKey    = "export.root"
	privateSettingKey = "export.private"
	excludeSettingKey = "export.exclude"
	hideSettingKey    = "export.hide"
	outputSettingKey  = "export.output"
)

// Defaults applied when neither files, environment, nor flags supply a value.
const (
	// DefaultOutputFileName is the artifact destination used when none is configured.
	DefaultOutputFileName = "output.txt"
	// DefaultTokenizerModel is the tokenizer model used when none is configured.
	DefaultTokenizerModel = "gpt-4o"
)

// LoadOptions controls how application configuration is discovered.
type LoadOptions struct {
	WorkingDirectory string
	ExplicitFilePath string
}

// ApplicationConfiguration holds the configuration file contents.
type ApplicationConfiguration struct {
	Export ExportConfiguration `mapstructure:"export"`
}

// ExportConfiguration defines the options governing an export run. The three
// list-valued fields hold unresolved option strings; LoadListValue turns them
// into entry lists.
type ExportConfiguration struct {
	Root      string             `mapstructure:"root"`
	Private   string             `mapstructure:"private"`
	Exclude   string             `mapstructure:"exclude"`
	Hide      string             `mapstructure:"hide"`
	Output    string             `mapstructure:"output"`
	Format    string             `mapstructure:"format"`
	Gitignore *bool              `mapstructure:"gitignore"`
	Tokens    TokenConfiguration `mapstructure:"tokens"`
	Clipboard *bool              `mapstructure:"clipboard"`
}

// TokenConfiguration controls token counting defaults.
type TokenConfiguration struct {
	Enabled *bool  `mapstructure:"enabled"`
	Model   string `mapstructure:"model"`
}

// Settings is the flat, immutable record a fully resolved run operates on.
type Settings struct {
	RootPath        string
	RootLabel       string
	PrivateEntries  []string
	ExcludeFolders  []string
	HiddenFolders   []string
	OutputPath      string
	Format          string
	UseGitignore    bool
	CountTokens     bool
	TokenizerModel  string
	CopyToClipboard bool
}

// LoadApplicationConfiguration loads configuration from global and local files.
func LoadApplicationConfiguration(options LoadOptions) (ApplicationConfiguration, error) {
	workingDirectory := options.WorkingDirectory
	if workingDirectory == "" {
		currentDirectory, workingDirectoryError := os.Getwd()
		if workingDirectoryError != nil {
			return ApplicationConfiguration{}, fmt.Errorf("determine working directory: %w", workingDirectoryError)
		}
		workingDirectory = currentDirectory
	}

	var merged ApplicationConfiguration

	if homeDirectory, homeError := os.UserHomeDir(); homeError == nil && homeDirectory != "" {
		globalPath := filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName, utils.GlobalConfigFileName)
		globalConfig, loadError := loadConfigurationFromPath(globalPath)
		if loadError != nil {
			return ApplicationConfiguration{}, loadError
		}
		merged = merged.Merge(globalConfig)
	}

	localPath, resolveError := resolveLocalConfigPath(workingDirectory, options.ExplicitFilePath)
	if resolveError != nil {
		return ApplicationConfiguration{}, resolveError
	}
	if localPath != "" {
		localConfig, loadError := loadConfigurationFromPath(localPath)
		if loadError != nil {
			return ApplicationConfiguration{}, loadError
		}
		merged = merged.Merge(localConfig)
	}

	return merged, nil
}

// EnvironmentOverrides reads the compatibility environment variables into a
// configuration overlay. Unset variables leave their fields empty.
func EnvironmentOverrides() ApplicationConfiguration {
	reader := viper.New()
	environmentBindings := map[string]string{
		rootSettingKey:    envRootVariable,
		privateSettingKey: envPrivateVariable,
		excludeSettingKey: envExcludeVariable,
		hideSettingKey:    envHideVariable,
		outputSettingKey:  envOutputVariable,
	}
	for settingKey, variableName := range environmentBindings {
		_ = reader.BindEnv(settingKey, variableName)
	}

	var overlay ApplicationConfiguration
	overlay.Export.Root = reader.GetString(rootSettingKey)
	overlay.Export.Private = reader.GetString(privateSettingKey)
	overlay.Export.Exclude = reader.GetString(excludeSettingKey)
	overlay.Export.Hide = reader.GetString(hideSettingKey)
	overlay.Export.Output = reader.GetString(outputSettingKey)
	return overlay
}

func resolveLocalConfigPath(workingDirectory, explicitPath string) (string, error) {
	if explicitPath != "" {
		if filepath.IsAbs(explicitPath) {
			return explicitPath, nil
		}
		if workingDirectory == "" {
			absolutePath, absoluteError := filepath.Abs(explicitPath)
			if absoluteError != nil {
				return "", fmt.Errorf("resolve configuration path %s: %w", explicitPath, absoluteError)
			}
			return absolutePath, nil
		}
		return filepath.Join(workingDirectory, explicitPath), nil
	}
	if workingDirectory == "" {
		return "", nil
	}
	return filepath.Join(workingDirectory, utils.ConfigFileName), nil
}

func loadConfigurationFromPath(path string) (ApplicationConfiguration, error) {
	if path == "" {
		return ApplicationConfiguration{}, nil
	}
	pathInformation, statError := os.Stat(path)
	if statError != nil {
		if os.IsNotExist(statError) {
			return ApplicationConfiguration{}, nil
		}
		return ApplicationConfiguration{}, fmt.Errorf("stat configuration %s: %w", path, statError)
	}
	if pathInformation.IsDir() {
		return ApplicationConfiguration{}, fmt.Errorf("configuration path %s is a directory", path)
	}

	reader := viper.New()
	reader.SetConfigFile(path)
	if readError := reader.ReadInConfig(); readError != nil {
		return ApplicationConfiguration{}, fmt.Errorf("read configuration from %s: %w", path, readError)
	}
	var configuration ApplicationConfiguration
	if decodeError := reader.Unmarshal(&configuration); decodeError != nil {
		return ApplicationConfiguration{}, fmt.Errorf("decode configuration from %s: %w", path, decodeError)
	}
	return configuration, nil
}

// Merge overlays override onto the receiver returning the combined configuration.
func (configuration ApplicationConfiguration) Merge(override ApplicationConfiguration) ApplicationConfiguration {
	result := configuration
	result.Export = result.Export.merge(override.Export)
	return result
}

func (configuration ExportConfiguration) merge(override ExportConfiguration) ExportConfiguration {
	result := configuration
	if override.Root != "" {
		result.Root = override.Root
	}
	if override.Private != "" {
		result.Private = override.Private
	}
	if override.Exclude != "" {
		result.Exclude = override.Exclude
	}
	if override.Hide != "" {
		result.Hide = override.Hide
	}
	if override.Output != "" {
		result.Output = override.Output
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Gitignore != nil {
		result.Gitignore = cloneBool(override.Gitignore)
	}
	result.Tokens = result.Tokens.merge(override.Tokens)
	if override.Clipboard != nil {
		result.Clipboard = cloneBool(override.Clipboard)
	}
	return result
}

func (configuration TokenConfiguration) merge(override TokenConfiguration) TokenConfiguration {
	result := configuration
	if override.Enabled != nil {
		result.Enabled = cloneBool(override.Enabled)
	}
	if override.Model != "" {
		result.Model = override.Model
	}
	return result
}

func cloneBool(value *bool) *bool {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}

// Resolve converts the merged configuration into run settings, loading the
// three list values and applying final defaults. The root is left as supplied;
// validation happens at the entry point.
func (configuration ApplicationConfiguration) Resolve() (Settings, error) {
	privateEntries, privateError := LoadListValue(configuration.Export.Private)
	if privateError != nil {
		return Settings{}, fmt.Errorf("loading private list %q: %w", configuration.Export.Private, privateError)
	}
	excludeFolders, excludeError := LoadListValue(configuration.Export.Exclude)
	if excludeError != nil {
		return Settings{}, fmt.Errorf("loading exclude list %q: %w", configuration.Export.Exclude, excludeError)
	}
	hiddenFolders, hideError := LoadListValue(configuration.Export.Hide)
	if hideError != nil {
		return Settings{}, fmt.Errorf("loading hide list %q: %w", configuration.Export.Hide, hideError)
	}

	settings := Settings{
		RootPath:       configuration.Export.Root,
		RootLabel:      configuration.Export.Root,
		PrivateEntries: privateEntries,
		ExcludeFolders: excludeFolders,
		HiddenFolders:  hiddenFolders,
		OutputPath:     configuration.Export.Output,
		Format:         configuration.Export.Format,
		TokenizerModel: configuration.Export.Tokens.Model,
	}
	if configuration.Export.Gitignore != nil {
		settings.UseGitignore = *configuration.Export.Gitignore
	}
	if configuration.Export.Tokens.Enabled != nil {
		settings.CountTokens = *configuration.Export.Tokens.Enabled
	}
	if configuration.Export.Clipboard != nil {
		settings.CopyToClipboard = *configuration.Export.Clipboard
	}
	if settings.OutputPath == "" {
		settings.OutputPath = DefaultOutputFileName
	}
	if settings.Format == "" {
		settings.Format = types.FormatText
	}
	if settings.TokenizerModel == "" {
		settings.TokenizerModel = DefaultTokenizerModel
	}
	return settings, nil
}
