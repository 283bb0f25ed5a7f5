package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	// Settings of the tool itself. Option configs live in optset.yaml and
	// friends and never pass through viper.
	settingsBaseName   = ".optset"
	settingsFileName   = settingsBaseName + ".yaml"
	settingsFolderPath = "."

	configFlagName = "config"
	formatFlagName = "format"

	logFileFlagName    = "log-file"
	logVerboseFlagName = "log-verbose"

	defaultInitPath = "optset.yaml"
	defaultFormat   = "yaml"

	envPrefix = "OPTSET"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logVerboseKey    = "log.verbose"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogFilename   = ".optset.log"
	defaultLogLevel      = int(slog.LevelInfo)
	defaultLogVerbose    = false
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

// settingsErr is set when .optset.yaml exists but cannot be read. Commands
// report it before they run.
var settingsErr error

func init() {
	viper.SetConfigName(settingsBaseName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(settingsFolderPath)
	viper.SetConfigFile(filepath.Join(settingsFolderPath, settingsFileName))
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	viper.SetDefault(configFlagName, "")
	viper.SetDefault(formatFlagName, defaultFormat)

	viper.SetDefault(logFilenameKey, defaultLogFilename)
	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(logVerboseKey, defaultLogVerbose)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	viper.SetDefault(logCompressKey, defaultLogCompress)

	settingsErr = readSettings()
}

func readSettings() error {
	err := viper.ReadInConfig()

	var notFound viper.ConfigFileNotFoundError
	if err == nil || errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	return fmt.Errorf("read %s: %w", settingsFileName, err)
}

func parseSlogLevel(value string, defaultLevel slog.Level) slog.Level {
	level := strings.ToLower(strings.TrimSpace(value))
	if level == "" {
		return defaultLevel
	}

	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n)
	}

	return defaultLevel
}

// configureLogger points the default slog logger at a rotating log file.
func configureLogger(logPath string, verbose bool) {
	if strings.TrimSpace(logPath) == "" {
		logPath = viper.GetString(logFilenameKey)
	}

	if strings.TrimSpace(logPath) == "" {
		logPath = defaultLogFilename
	}

	logLevel := parseSlogLevel(viper.GetString(logLevelKey), slog.LevelInfo)
	if verbose {
		logLevel = slog.LevelDebug
	}

	logWriter := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    viper.GetInt(logMaxSizeKey),
		MaxBackups: viper.GetInt(logMaxBackupsKey),
		MaxAge:     viper.GetInt(logMaxAgeKey),
		Compress:   viper.GetBool(logCompressKey),
	}

	handler := slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		AddSource: true,
		Level:     logLevel,
	})

	slog.SetDefault(slog.New(handler))
}
