package config

const (
	defaultFFprobeBinary = "ffprobe"
	defaultFileBinary    = "file"
	defaultMimeDetector  = DetectorFile
	defaultLogFormat     = "console"
	defaultLogLevel      = "info"
	defaultConfigPath    = "~/.config/mediasort/config.toml"
	projectConfigName    = "mediasort.toml"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Tools: Tools{
			FFprobe: defaultFFprobeBinary,
			File:    defaultFileBinary,
		},
		Classify: Classify{
			MimeDetector: defaultMimeDetector,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
