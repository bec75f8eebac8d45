// Package cli provides the command line interface.
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/mod/modfile"

	gitignore "github.com/monochromegane/go-gitignore"

	"github.com/dstepanov/treedump/internal/commands"
	"github.com/dstepanov/treedump/internal/config"
	"github.com/dstepanov/treedump/internal/gitsource"
	"github.com/dstepanov/treedump/internal/output"
	"github.com/dstepanov/treedump/internal/services/clipboard"
	"github.com/dstepanov/treedump/internal/tokenizer"
	"github.com/dstepanov/treedump/internal/types"
	"github.com/dstepanov/treedump/internal/utils"
)

const (
	privateFlagName   = "private"
	excludeFlagName   = "exclude"
	hideFlagName      = "hide"
	gitignoreFlagName = "gitignore"
	outputFlagName    = "output"
	outputFlagShort   = "o"
	formatFlagName    = "format"
	tokensFlagName    = "tokens"
	modelFlagName     = "model"
	copyFlagName      = "copy"
	configFlagName    = "config"
	versionFlagName   = "version"
	globalFlagName    = "global"
	forceFlagName     = "force"

	versionTemplate      = "treedump version: %s\n"
	rootUse              = "treedump"
	rootShortDescription = "treedump command line interface"
	rootLongDescription  = `treedump exports a directory tree together with every file's content
into a single text artifact, redacting private files and excluded folders.
Use export to write the combined artifact, or tree/content to print one section.`

	exportUse               = types.CommandExport + " [path]"
	treeUse                 = types.CommandTree + " [path]"
	contentUse              = types.CommandContent + " [path]"
	initUse                 = "init"
	exportAlias             = "e"
	treeAlias               = "t"
	contentAlias            = "c"
	exportShortDescription  = "write the combined tree and contents artifact (" + exportAlias + ")"
	treeShortDescription    = "print the directory tree section (" + treeAlias + ")"
	contentShortDescription = "print the file contents section (" + contentAlias + ")"
	initShortDescription    = "write a starter configuration file"

	// exportLongDescription provides detailed help for the export command.
	exportLongDescription = `Walk the root directory and write the FILE TREE and FILE CONTENTS
sections to the output destination. The root may also be a remote Git
repository URL, which is cloned into a temporary directory for the export.`
	// exportUsageExample demonstrates export command usage.
	exportUsageExample = `  # Export the current project, redacting two files
  treedump export --private "id_rsa,.env" .

  # Export a remote repository as PDF with token counts
  treedump export --format pdf --tokens -o repo.pdf https://github.com/owner/repo.git`

	// treeUsageExample demonstrates tree command usage.
	treeUsageExample = `  # Print the tree with the node_modules folder hidden
  treedump tree --hide node_modules .`

	// contentUsageExample demonstrates content command usage.
	contentUsageExample = `  # Print file contents, excluding everything under vendor
  treedump content --exclude vendor .`

	privateFlagDescription   = "private file names/paths, inline comma-separated or a list file path"
	excludeFlagDescription   = "folder names whose descendants' content is redacted, inline or a list file path"
	hideFlagDescription      = "folder names omitted from the tree and content-redacted, inline or a list file path"
	gitignoreFlagDescription = "fold root .gitignore matches into the content filters"
	outputFlagDescription    = "artifact destination path"
	formatFlagDescription    = "artifact format: text, json, or pdf"
	tokensFlagDescription    = "include token counts in the run summary"
	modelFlagDescription     = "tokenizer model to use for token counting"
	copyFlagDescription      = "copy the text artifact to the system clipboard"
	configFlagDescription    = "configuration file path"
	versionFlagDescription   = "display application version"
	globalFlagDescription    = "write the global configuration file instead of the local one"
	forceFlagDescription     = "overwrite an existing configuration file"

	successMessageFormat    = "Output written to %s\n"
	configInitializedFormat = "Configuration written to %s\n"
	moduleProgressFormat    = "Exporting Go module %s\n"
	warningGitignoreFormat  = "Warning: could not parse %s: %v\n"
	warningClipboardFormat  = "Warning: could not copy to clipboard: %v\n"
	invalidFormatMessage    = "invalid format value '%s'"

	// errorRootNotSpecified reports that no root was supplied anywhere.
	errorRootNotSpecified = "root directory not specified"
	// errorRootMissingFormat reports a missing root path.
	errorRootMissingFormat = "root directory '%s' does not exist"
	// errorRootStatFormat reports failure to retrieve root statistics.
	errorRootStatFormat = "stat failed for '%s': %w"
	// errorRootNotDirectoryFormat reports a root that is not a directory.
	errorRootNotDirectoryFormat = "root path '%s' is not a directory"
)

// isSupportedFormat reports whether the provided format is recognized.
func isSupportedFormat(format string) bool {
	switch format {
	case types.FormatText, types.FormatJSON, types.FormatPDF:
		return true
	default:
		return false
	}
}

// Execute runs the treedump application.
func Execute() error {
	rootCommand := createRootCommand()
	rootCommand.SetArgs(normalizeCopyFlagArguments(os.Args[1:]))
	return rootCommand.Execute()
}

// createRootCommand builds the root Cobra command.
func createRootCommand() *cobra.Command {
	var showVersion bool
	var configurationFilePath string

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortDescription,
		Long:         rootLongDescription,
		SilenceUsage: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			return command.Help()
		},
		PersistentPreRun: func(command *cobra.Command, arguments []string) {
			if showVersion {
				applicationVersion := utils.GetApplicationVersion()
				fmt.Printf(versionTemplate, applicationVersion)
				reportNewerRelease(command.OutOrStdout(), applicationVersion)
				os.Exit(0)
			}
		},
	}
	rootCommand.PersistentFlags().BoolVar(&showVersion, versionFlagName, false, versionFlagDescription)
	rootCommand.PersistentFlags().StringVar(&configurationFilePath, configFlagName, "", configFlagDescription)
	rootCommand.AddCommand(
		createExportCommand(&configurationFilePath),
		createTreeCommand(&configurationFilePath),
		createContentCommand(&configurationFilePath),
		createInitCommand(),
	)
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// filterOptions stores the filter flag values shared by every traversal command.
type filterOptions struct {
	privateList      string
	excludeList      string
	hideList         string
	gitignoreEnabled bool
}

// addFilterFlags registers the shared filter flags on the command.
func addFilterFlags(command *cobra.Command, options *filterOptions) {
	command.Flags().StringVar(&options.privateList, privateFlagName, "", privateFlagDescription)
	command.Flags().StringVar(&options.excludeList, excludeFlagName, "", excludeFlagDescription)
	command.Flags().StringVar(&options.hideList, hideFlagName, "", hideFlagDescription)
	command.Flags().BoolVar(&options.gitignoreEnabled, gitignoreFlagName, false, gitignoreFlagDescription)
}

// createExportCommand returns the export subcommand.
func createExportCommand(configurationFilePath *string) *cobra.Command {
	var filterConfiguration filterOptions
	var outputDestination string
	var outputFormat string
	var tokensEnabled bool
	var tokenizerModel string
	var copyEnabled bool

	exportCommand := &cobra.Command{
		Use:     exportUse,
		Aliases: []string{exportAlias},
		Short:   exportShortDescription,
		Long:    exportLongDescription,
		Example: exportUsageExample,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			settings, settingsError := resolveSettings(command, arguments, *configurationFilePath, filterConfiguration, flagOverrides{
				output: outputDestination,
				format: outputFormat,
				tokens: tokensEnabled,
				model:  tokenizerModel,
				copy:   copyEnabled,
			})
			if settingsError != nil {
				return settingsError
			}
			return runExport(command, settings)
		},
	}

	addFilterFlags(exportCommand, &filterConfiguration)
	exportCommand.Flags().StringVarP(&outputDestination, outputFlagName, outputFlagShort, "", outputFlagDescription)
	exportCommand.Flags().StringVar(&outputFormat, formatFlagName, "", formatFlagDescription)
	exportCommand.Flags().BoolVar(&tokensEnabled, tokensFlagName, false, tokensFlagDescription)
	exportCommand.Flags().StringVar(&tokenizerModel, modelFlagName, "", modelFlagDescription)
	registerCopyFlag(exportCommand.Flags(), &copyEnabled)
	return exportCommand
}

// createTreeCommand returns the tree subcommand.
func createTreeCommand(configurationFilePath *string) *cobra.Command {
	var filterConfiguration filterOptions

	treeCommand := &cobra.Command{
		Use:     treeUse,
		Aliases: []string{treeAlias},
		Short:   treeShortDescription,
		Example: treeUsageExample,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			settings, settingsError := resolveSettings(command, arguments, *configurationFilePath, filterConfiguration, flagOverrides{})
			if settingsError != nil {
				return settingsError
			}
			return runTree(command, settings)
		},
	}

	addFilterFlags(treeCommand, &filterConfiguration)
	return treeCommand
}

// createContentCommand returns the content subcommand.
func createContentCommand(configurationFilePath *string) *cobra.Command {
	var filterConfiguration filterOptions

	contentCommand := &cobra.Command{
		Use:     contentUse,
		Aliases: []string{contentAlias},
		Short:   contentShortDescription,
		Example: contentUsageExample,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			settings, settingsError := resolveSettings(command, arguments, *configurationFilePath, filterConfiguration, flagOverrides{})
			if settingsError != nil {
				return settingsError
			}
			return runContent(command, settings)
		},
	}

	addFilterFlags(contentCommand, &filterConfiguration)
	return contentCommand
}

// createInitCommand returns the init subcommand.
func createInitCommand() *cobra.Command {
	var globalTarget bool
	var forceOverwrite bool

	initCommand := &cobra.Command{
		Use:   initUse,
		Short: initShortDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			target := config.InitTargetLocal
			if globalTarget {
				target = config.InitTargetGlobal
			}
			destinationPath, initializeError := config.InitializeConfiguration(config.InitOptions{
				Target: target,
				Force:  forceOverwrite,
			})
			if initializeError != nil {
				return initializeError
			}
			fmt.Fprintf(command.OutOrStdout(), configInitializedFormat, destinationPath)
			return nil
		},
	}

	initCommand.Flags().BoolVar(&globalTarget, globalFlagName, false, globalFlagDescription)
	initCommand.Flags().BoolVar(&forceOverwrite, forceFlagName, false, forceFlagDescription)
	return initCommand
}

// flagOverrides carries the export-only flag values into settings resolution.
type flagOverrides struct {
	output string
	format string
	tokens bool
	model  string
	copy   bool
}

// resolveSettings merges configuration files, environment variables, and
// command flags into the run settings. Flags have the highest precedence;
// the positional argument overrides any configured root.
func resolveSettings(
	command *cobra.Command,
	arguments []string,
	configurationFilePath string,
	filterConfiguration filterOptions,
	overrides flagOverrides,
) (config.Settings, error) {
	configuration, loadError := config.LoadApplicationConfiguration(config.LoadOptions{
		ExplicitFilePath: configurationFilePath,
	})
	if loadError != nil {
		return config.Settings{}, loadError
	}
	configuration = configuration.Merge(config.EnvironmentOverrides())

	var flagOverlay config.ApplicationConfiguration
	flagOverlay.Export.Private = filterConfiguration.privateList
	flagOverlay.Export.Exclude = filterConfiguration.excludeList
	flagOverlay.Export.Hide = filterConfiguration.hideList
	flagOverlay.Export.Output = overrides.output
	flagOverlay.Export.Format = overrides.format
	flagOverlay.Export.Tokens.Model = overrides.model
	if len(arguments) > 0 {
		flagOverlay.Export.Root = arguments[0]
	}
	if command.Flags().Changed(gitignoreFlagName) {
		flagOverlay.Export.Gitignore = &filterConfiguration.gitignoreEnabled
	}
	if command.Flags().Changed(tokensFlagName) {
		flagOverlay.Export.Tokens.Enabled = &overrides.tokens
	}
	if command.Flags().Changed(copyFlagName) {
		flagOverlay.Export.Clipboard = &overrides.copy
	}
	configuration = configuration.Merge(flagOverlay)

	settings, resolveError := configuration.Resolve()
	if resolveError != nil {
		return config.Settings{}, resolveError
	}
	if !isSupportedFormat(settings.Format) {
		return config.Settings{}, fmt.Errorf(invalidFormatMessage, settings.Format)
	}
	return settings, nil
}

// resolveRoot turns the configured root into a local export directory. Remote
// repository URLs are cloned into a temporary directory removed by the
// returned cleanup function; local paths are validated in place.
func resolveRoot(settings config.Settings) (config.Settings, func(), error) {
	if settings.RootPath == "" {
		return settings, nil, fmt.Errorf(errorRootNotSpecified)
	}

	cleanup := func() {}
	if gitsource.IsRemoteURL(settings.RootPath) {
		clonedDirectory, cloneCleanup, cloneError := gitsource.CloneToTemp(context.Background(), settings.RootPath)
		if cloneError != nil {
			return settings, nil, cloneError
		}
		settings.RootLabel = settings.RootPath
		settings.RootPath = clonedDirectory
		cleanup = cloneCleanup
	}

	rootInformation, rootStatError := os.Stat(settings.RootPath)
	if rootStatError != nil {
		cleanup()
		if os.IsNotExist(rootStatError) {
			return settings, nil, fmt.Errorf(errorRootMissingFormat, settings.RootPath)
		}
		return settings, nil, fmt.Errorf(errorRootStatFormat, settings.RootPath, rootStatError)
	}
	if !rootInformation.IsDir() {
		cleanup()
		return settings, nil, fmt.Errorf(errorRootNotDirectoryFormat, settings.RootPath)
	}
	return settings, cleanup, nil
}

// buildGitignoreMatcher loads the root .gitignore when requested. The root is
// resolved to an absolute path first so the matcher's base directory lines up
// with the absolute paths the content walk visits. A missing file disables
// the matcher; an unparsable file is reported as a warning.
func buildGitignoreMatcher(settings config.Settings, errorWriter *os.File) gitignore.IgnoreMatcher {
	if !settings.UseGitignore {
		return nil
	}
	absoluteRootPath, absolutePathError := filepath.Abs(settings.RootPath)
	if absolutePathError != nil {
		return nil
	}
	gitignorePath := filepath.Join(absoluteRootPath, utils.GitIgnoreFileName)
	if _, statError := os.Stat(gitignorePath); statError != nil {
		return nil
	}
	matcher, parseError := gitignore.NewGitIgnore(gitignorePath)
	if parseError != nil {
		fmt.Fprintf(errorWriter, warningGitignoreFormat, gitignorePath, parseError)
		return nil
	}
	return matcher
}

// reportGoModule prints a progress line naming the exported Go module when
// the root carries a parsable go.mod. Parse failures are ignored.
func reportGoModule(command *cobra.Command, rootPath string) {
	goModPath := filepath.Join(rootPath, utils.GoModFileName)
	goModBytes, readError := os.ReadFile(goModPath)
	if readError != nil {
		return
	}
	parsedModFile, parseError := modfile.Parse(utils.GoModFileName, goModBytes, nil)
	if parseError != nil || parsedModFile == nil || parsedModFile.Module == nil {
		return
	}
	if parsedModFile.Module.Mod.Path != "" {
		fmt.Fprintf(command.OutOrStdout(), moduleProgressFormat, parsedModFile.Module.Mod.Path)
	}
}

// runExport walks the root, assembles the artifact in the configured format,
// writes it to the output destination, and reports the destination and the
// run summary.
func runExport(command *cobra.Command, settings config.Settings) error {
	settings, cleanup, rootError := resolveRoot(settings)
	if rootError != nil {
		return rootError
	}
	defer cleanup()

	reportGoModule(command, settings.RootPath)

	var tokenCounter tokenizer.Counter
	var tokenizerName string
	if settings.CountTokens {
		createdCounter, resolvedName, counterError := tokenizer.NewCounter(settings.TokenizerModel)
		if counterError != nil {
			return counterError
		}
		tokenCounter = createdCounter
		tokenizerName = resolvedName
	}

	treeBuilder := commands.TreeBuilder{HiddenFolders: settings.HiddenFolders}
	treeRoot, treeError := treeBuilder.BuildTree(settings.RootPath, settings.RootLabel)
	if treeError != nil {
		return treeError
	}

	fileRecords, collectError := commands.CollectContents(settings.RootPath, commands.ContentOptions{
		PrivateEntries:   settings.PrivateEntries,
		ExcludeFolders:   settings.ExcludeFolders,
		HiddenFolders:    settings.HiddenFolders,
		GitignoreMatcher: buildGitignoreMatcher(settings, os.Stderr),
		TokenCounter:     tokenCounter,
	})
	if collectError != nil {
		return collectError
	}

	summary := commands.SummarizeRecords(fileRecords)
	summary.Model = tokenizerName

	treeText := output.RenderTreeText(treeRoot)
	assembledText := output.AssembleText(treeText, output.RenderContentsText(fileRecords))

	switch settings.Format {
	case types.FormatJSON:
		artifact := &types.Artifact{
			RootLabel: settings.RootLabel,
			Tree:      treeRoot,
			Records:   fileRecords,
			Summary:   summary,
		}
		renderedJSON, renderError := output.RenderJSON(artifact)
		if renderError != nil {
			return renderError
		}
		if writeError := output.WriteArtifactFile(settings.OutputPath, renderedJSON+"\n"); writeError != nil {
			return writeError
		}
	case types.FormatPDF:
		if pdfError := output.WritePDF(treeText, fileRecords, settings.OutputPath); pdfError != nil {
			return pdfError
		}
	default:
		if writeError := output.WriteArtifactFile(settings.OutputPath, assembledText); writeError != nil {
			return writeError
		}
	}

	if settings.CopyToClipboard {
		clipboardService := clipboard.NewService()
		if copyError := clipboardService.Copy(assembledText); copyError != nil {
			fmt.Fprintf(os.Stderr, warningClipboardFormat, copyError)
		}
	}

	fmt.Fprintf(command.OutOrStdout(), successMessageFormat, settings.OutputPath)
	fmt.Fprintln(command.OutOrStdout(), output.FormatSummaryLine(summary))
	return nil
}

// runTree prints the rendered tree section to standard output.
func runTree(command *cobra.Command, settings config.Settings) error {
	settings, cleanup, rootError := resolveRoot(settings)
	if rootError != nil {
		return rootError
	}
	defer cleanup()

	treeBuilder := commands.TreeBuilder{HiddenFolders: settings.HiddenFolders}
	treeRoot, treeError := treeBuilder.BuildTree(settings.RootPath, settings.RootLabel)
	if treeError != nil {
		return treeError
	}
	fmt.Fprintln(command.OutOrStdout(), output.RenderTreeText(treeRoot))
	return nil
}

// runContent prints the rendered file contents section to standard output.
func runContent(command *cobra.Command, settings config.Settings) error {
	settings, cleanup, rootError := resolveRoot(settings)
	if rootError != nil {
		return rootError
	}
	defer cleanup()

	fileRecords, collectError := commands.CollectContents(settings.RootPath, commands.ContentOptions{
		PrivateEntries:   settings.PrivateEntries,
		ExcludeFolders:   settings.ExcludeFolders,
		HiddenFolders:    settings.HiddenFolders,
		GitignoreMatcher: buildGitignoreMatcher(settings, os.Stderr),
	})
	if collectError != nil {
		return collectError
	}
	fmt.Fprint(command.OutOrStdout(), strings.TrimPrefix(output.RenderContentsText(fileRecords), "\n"))
	return nil
}
