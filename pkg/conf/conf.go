// Package conf is a helper for dbsweep configuration for both the command
// line interface and environment variables.
// It gives the ability to register arguments which will be fetched from
// CLI input OR an environment variable.
// By default it registers the following option:
// <DBSWEEP_LOG> --log <Log level: debug, info, warn, error, fatal, panic> Default: info
//
// When `ParseFlags` is executed, the arguments from both CLI and Env are
// parsed. In case of the --help option it prints help for every registered
// flag, which gives an overview of the whole sweep configuration.
package conf

import (
	"bytes"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/alecthomas/kingpin.v2"
)

// envPrefix is prepended to upper-cased flag names to build environment
// variable names. For instance: "db_path" becomes "DBSWEEP_DB_PATH".
const envPrefix = "DBSWEEP"

var (
	app = kingpin.New("dbsweep", "No help available")

	// Default flags and values.
	logLevelFlag = NewStringFlag(
		"log",
		"Log level: debug, info, warn, error, fatal, panic",
		"info",
	)
	isEnvParsed = false
)

// SetAppName sets application name for CLI output.
func SetAppName(name string) {
	app.Name = name
}

// SetHelp sets the help message for the CLI.
func SetHelp(help string) {
	app.Help = help
}

// AppName returns specified app name.
func AppName() string {
	return app.Name
}

// LogLevel returns configured log level from input option or env variable.
// If it cannot parse the configured level, it falls back to the default.
func LogLevel() logrus.Level {
	level, err := logrus.ParseLevel(logLevelFlag.Value())
	if err == nil {
		return level
	}

	level, err = logrus.ParseLevel(logLevelFlag.defaultValue)
	if err == nil {
		return level
	}

	// Programmer error.
	panic(errors.Wrap(err, "parsing log level failed"))
}

// ParseFlags parses both the command line flags of the process and
// environment variables.
func ParseFlags() error {
	_, err := app.Parse(os.Args[1:])
	if err == nil {
		isEnvParsed = true
		return nil
	}

	return errors.Wrap(err, "could not parse command line flags")
}

// ParseEnv parses only the environment for arguments.
// It can be run multiple times.
func ParseEnv() error {
	_, err := app.Parse([]string{})
	if err == nil {
		isEnvParsed = true
		return nil
	}

	return errors.Wrap(err, "could not parse environment flags")
}

// DumpConfig dumps environment based configuration with current values of
// all registered flags. Includes "allexport" directives for bash.
func DumpConfig() string {
	buffer := &bytes.Buffer{}

	buffer.WriteString("# Exported values.\n")
	buffer.WriteString("set -o allexport\n")

	names := []string{}
	for name := range definedFlags {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		flag := definedFlags[name]
		fmt.Fprintf(buffer, "\n# %s\n", flag.help())
		fmt.Fprintf(buffer, "%s=%v\n", flag.envName(), flag.stringValue())
	}

	buffer.WriteString("set +o allexport")
	return buffer.String()
}

// GetFlags returns all registered flags as a map with current values.
func GetFlags() map[string]string {
	flagsMap := map[string]string{}
	for name, flag := range definedFlags {
		flagsMap[name] = flag.stringValue()
	}
	return flagsMap
}

// envName converts a flag name to its environment variable form.
func envName(flagName string) string {
	return fmt.Sprintf("%s_%s", envPrefix, strings.ToUpper(flagName))
}
