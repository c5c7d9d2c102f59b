package conf

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/alecthomas/kingpin.v2"
)

// flagType is an internal interface for all flags.
// Every flag knows its environment variable name, its help string and can
// serialize its current value for configuration dumps.
type flagType interface {
	envName() string
	help() string
	stringValue() string
	clear()
}

// definedFlags stores all the defined flags. It helps to find duplicates
// when defining a flag with the same name twice.
var definedFlags = map[string]flagType{}

// flagBase represents an option's definition from CLI and environment
// variable. It stores generic data for each defined flag.
type flagBase struct {
	*kingpin.FlagClause
	helpText string
}

func newFlagBase(flagName string, description string, defaultValue string) flagBase {
	if _, exists := definedFlags[flagName]; exists {
		panic(fmt.Sprintf("flag %q was already defined", flagName))
	}

	base := flagBase{FlagClause: app.Flag(flagName, description), helpText: description}
	base.OverrideDefaultFromEnvar(base.envName())
	if defaultValue != "" {
		base.Default(defaultValue)
	}

	return base
}

// envName returns the flag name converted to a dbsweep environment variable
// name.
func (f flagBase) envName() string {
	return envName(f.Model().Name)
}

func (f flagBase) help() string {
	return f.helpText
}

// clear unsets the corresponding environment variable.
func (f flagBase) clear() {
	os.Unsetenv(f.envName())
}

// StringFlag represents a flag with a string value.
type StringFlag struct {
	flagBase
	defaultValue string
	value        *string
}

// NewStringFlag is a constructor of StringFlag struct.
func NewStringFlag(flagName string, description string, defaultValue string) *StringFlag {
	flagDef := &StringFlag{
		flagBase:     newFlagBase(flagName, description, defaultValue),
		defaultValue: defaultValue,
	}
	flagDef.value = flagDef.String()
	definedFlags[flagName] = flagDef
	isEnvParsed = false
	return flagDef
}

// Value returns the value of the defined flag after parse.
// NOTE: If conf is not parsed it returns the default value (!)
func (s StringFlag) Value() string {
	if !isEnvParsed {
		return s.defaultValue
	}

	return *s.value
}

func (s StringFlag) stringValue() string {
	return s.Value()
}

// FileFlag represents a flag whose string value must point to an existing
// file.
type FileFlag struct {
	StringFlag
}

// NewFileFlag is a constructor of FileFlag struct.
func NewFileFlag(flagName string, description string, defaultValue string) *FileFlag {
	flagDef := &FileFlag{
		StringFlag: StringFlag{
			flagBase:     newFlagBase(flagName, description, defaultValue),
			defaultValue: defaultValue,
		},
	}
	flagDef.value = flagDef.ExistingFile()
	definedFlags[flagName] = flagDef
	isEnvParsed = false
	return flagDef
}

// IntFlag represents a flag with an int value.
type IntFlag struct {
	flagBase
	defaultValue int
	value        *int
}

// NewIntFlag is a constructor of IntFlag struct.
func NewIntFlag(flagName string, description string, defaultValue int) *IntFlag {
	flagDef := &IntFlag{
		flagBase:     newFlagBase(flagName, description, strconv.Itoa(defaultValue)),
		defaultValue: defaultValue,
	}
	flagDef.value = flagDef.Int()
	definedFlags[flagName] = flagDef
	isEnvParsed = false
	return flagDef
}

// Value returns the value of the defined flag after parse.
// NOTE: If conf is not parsed it returns the default value (!)
func (i IntFlag) Value() int {
	if !isEnvParsed {
		return i.defaultValue
	}

	return *i.value
}

func (i IntFlag) stringValue() string {
	return strconv.Itoa(i.Value())
}

// BoolFlag represents a flag with a bool value.
type BoolFlag struct {
	flagBase
	defaultValue bool
	value        *bool
}

// NewBoolFlag is a constructor of BoolFlag struct.
func NewBoolFlag(flagName string, description string, defaultValue bool) *BoolFlag {
	flagDef := &BoolFlag{
		flagBase:     newFlagBase(flagName, description, strconv.FormatBool(defaultValue)),
		defaultValue: defaultValue,
	}
	flagDef.value = flagDef.Bool()
	definedFlags[flagName] = flagDef
	isEnvParsed = false
	return flagDef
}

// Value returns the value of the defined flag after parse.
// NOTE: If conf is not parsed it returns the default value (!)
func (b BoolFlag) Value() bool {
	if !isEnvParsed {
		return b.defaultValue
	}

	return *b.value
}

func (b BoolFlag) stringValue() string {
	return strconv.FormatBool(b.Value())
}

// SliceFlag represents a flag with a comma separated list of strings.
type SliceFlag struct {
	flagBase
	defaultValue []string
	value        *string
}

// NewSliceFlag is a constructor of SliceFlag struct.
func NewSliceFlag(flagName string, description string, elemsInDefaultSlice ...string) *SliceFlag {
	flagDef := &SliceFlag{
		flagBase:     newFlagBase(flagName, description, strings.Join(elemsInDefaultSlice, ",")),
		defaultValue: elemsInDefaultSlice,
	}
	flagDef.value = flagDef.String()
	definedFlags[flagName] = flagDef
	isEnvParsed = false
	return flagDef
}

// Value returns the value of the defined flag after parse.
func (s SliceFlag) Value() []string {
	raw := strings.Join(s.defaultValue, ",")
	if isEnvParsed {
		raw = *s.value
	}
	if raw == "" {
		return []string{}
	}

	elems := []string{}
	for _, elem := range strings.Split(raw, ",") {
		elems = append(elems, strings.TrimSpace(elem))
	}
	return elems
}

func (s SliceFlag) stringValue() string {
	return strings.Join(s.Value(), ",")
}

// DurationFlag represents a flag with a duration value.
type DurationFlag struct {
	flagBase
	defaultValue time.Duration
	value        *time.Duration
}

// NewDurationFlag is a constructor of DurationFlag struct.
func NewDurationFlag(flagName string, description string, defaultValue time.Duration) *DurationFlag {
	flagDef := &DurationFlag{
		flagBase:     newFlagBase(flagName, description, defaultValue.String()),
		defaultValue: defaultValue,
	}
	flagDef.value = flagDef.Duration()
	definedFlags[flagName] = flagDef
	isEnvParsed = false
	return flagDef
}

// Value returns the value of the defined flag after parse.
// NOTE: If conf is not parsed it returns the default value (!)
func (d DurationFlag) Value() time.Duration {
	if !isEnvParsed {
		return d.defaultValue
	}

	return *d.value
}

func (d DurationFlag) stringValue() string {
	return d.Value().String()
}
