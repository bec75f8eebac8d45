package utils

// Configuration discovery constants shared across the project.
const (
	// ConfigFileName is the name of the workspace configuration file.
	ConfigFileName = ".treedump.yaml"
	// GlobalConfigDirectoryName is the directory under the user home holding the global configuration.
	GlobalConfigDirectoryName = ".config/treedump"
	// GlobalConfigFileName is the name of the configuration file inside the global directory.
	GlobalConfigFileName = "config.yaml"
	// GitDirectoryName is the name of the Git repository directory.
	GitDirectoryName = ".git"
	// GitIgnoreFileName is the name of the Git ignore file.
	GitIgnoreFileName = ".gitignore"
	// GoModFileName is the name of the Go module definition file.
	GoModFileName = "go.mod"
)

// Messages used by the application entry point.
const (
	// LoggerInitializationFailedMessageFormat reports a logger construction failure.
	LoggerInitializationFailedMessageFormat = "failed to initialize logger: %w"
	// ApplicationExecutionFailedMessage prefixes fatal command errors.
	ApplicationExecutionFailedMessage = "treedump execution failed"
)
