// Package config reads the shell's settings from the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"mazer/pkg/game/animator"
	"mazer/pkg/game/state"
)

// Environment variables read by Load
const (
	EnvTickInterval = "MAZER_TICK_INTERVAL"
	EnvLogLevel     = "MAZER_LOG_LEVEL"
	EnvMazeFile     = "MAZER_MAZE_FILE"
	EnvLocaleDir    = "MAZER_LOCALE_DIR"
	EnvLanguage     = "MAZER_LANGUAGE"
	EnvMessageLimit = "MAZER_MESSAGE_LIMIT"
)

const defaultEnvFile = ".env"

// Settings holds the shell's configuration values.
type Settings struct {
	TickInterval time.Duration // Delay between two animation ticks
	LogLevel     logrus.Level  // Minimum level logged
	MazeFile     string        // YAML maze configuration, empty for the built-in maze
	LocaleDir    string        // Directory holding gotext translations
	Language     string        // Translation language
	MessageLimit int           // How many messages the log pane keeps
}

// Default returns the settings used when nothing is configured
func Default() Settings {
	return Settings{
		TickInterval: animator.DefaultInterval,
		LogLevel:     logrus.WarnLevel,
		LocaleDir:    "locale",
		Language:     "en",
		MessageLimit: state.DefaultMessageLimit,
	}
}

// Load reads settings from the process environment, falling back to values
// from the given dotenv files. With no files, a .env file in the working
// directory is used when present. The process environment always wins.
func Load(logger logrus.FieldLogger, files ...string) (Settings, error) {
	fileValues := map[string]string{}

	if len(files) == 0 {
		values, err := godotenv.Read(defaultEnvFile)
		switch {
		case err == nil:
			fileValues = values
		case errors.Is(err, fs.ErrNotExist):
			logger.WithField("file", defaultEnvFile).Info("env file not found, using environment only")
		default:
			return Settings{}, fmt.Errorf("reading %s: %w", defaultEnvFile, err)
		}
	} else {
		values, err := godotenv.Read(files...)
		if err != nil {
			return Settings{}, fmt.Errorf("reading env files: %w", err)
		}
		fileValues = values
	}

	return FromLookup(func(key string) (string, bool) {
		if value, ok := os.LookupEnv(key); ok {
			return value, true
		}
		value, ok := fileValues[key]
		return value, ok
	})
}

// FromLookup builds settings from lookup, starting from Default.
// Invalid values are errors naming the variable.
func FromLookup(lookup func(string) (string, bool)) (Settings, error) {
	s := Default()

	if value, ok := lookup(EnvTickInterval); ok {
		d, err := time.ParseDuration(value)
		if err != nil {
			return Settings{}, fmt.Errorf("%s: %w", EnvTickInterval, err)
		}
		if d < 0 {
			return Settings{}, fmt.Errorf("%s: must not be negative, got %s", EnvTickInterval, value)
		}
		s.TickInterval = d
	}

	if value, ok := lookup(EnvLogLevel); ok {
		level, err := logrus.ParseLevel(value)
		if err != nil {
			return Settings{}, fmt.Errorf("%s: %w", EnvLogLevel, err)
		}
		s.LogLevel = level
	}

	if value, ok := lookup(EnvMessageLimit); ok {
		n, err := strconv.Atoi(value)
		if err != nil {
			return Settings{}, fmt.Errorf("%s must be an integer: %w", EnvMessageLimit, err)
		}
		if n <= 0 {
			return Settings{}, fmt.Errorf("%s: must be positive, got %d", EnvMessageLimit, n)
		}
		s.MessageLimit = n
	}

	s.MazeFile = getWithDefault(lookup, EnvMazeFile, s.MazeFile)
	s.LocaleDir = getWithDefault(lookup, EnvLocaleDir, s.LocaleDir)
	s.Language = getWithDefault(lookup, EnvLanguage, s.Language)
	return s, nil
}

// getWithDefault retrieves the value of a variable or returns defaultValue if not set.
func getWithDefault(lookup func(string) (string, bool), key, defaultValue string) string {
	if value, ok := lookup(key); ok {
		return value
	}
	return defaultValue
}
