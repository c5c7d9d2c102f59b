package executor

import (
	"fmt"
	"strconv"
	"strings"
)

// Arg is one typed argument of a command descriptor. Name is the long option
// name without the leading dashes; an Arg with an empty Name renders as a
// positional argument.
type Arg struct {
	Name  string
	Value interface{}
}

// Command is a structured descriptor of one subprocess invocation. Components
// build descriptors instead of interpolating strings so that the final
// command line is rendered, quoted and logged in exactly one place.
type Command struct {
	// Path is the executable to run.
	Path string
	// Args are rendered in order as --name=value pairs.
	Args []Arg
	// StdoutPath, when non empty, makes the runner redirect the process
	// standard output verbatim into the named file.
	StdoutPath string
}

// NewCommand is a constructor for Command.
func NewCommand(path string, args ...Arg) Command {
	return Command{Path: path, Args: args}
}

// WithArgs returns a copy of the command with the given arguments appended.
func (c Command) WithArgs(args ...Arg) Command {
	copied := make([]Arg, 0, len(c.Args)+len(args))
	copied = append(copied, c.Args...)
	copied = append(copied, args...)
	c.Args = copied
	return c
}

// WithStdout returns a copy of the command with standard output redirected
// to the given file.
func (c Command) WithStdout(path string) Command {
	c.StdoutPath = path
	return c
}

// Render serializes the descriptor to the command line handed to the shell.
// It does not include the stdout redirection; the runner wires that up when
// starting the process.
func (c Command) Render() string {
	parts := []string{c.Path}
	for _, arg := range c.Args {
		parts = append(parts, renderArg(arg))
	}
	return strings.Join(parts, " ")
}

func renderArg(arg Arg) string {
	value := renderValue(arg.Value)
	if arg.Name == "" {
		return value
	}
	return fmt.Sprintf("--%s=%s", arg.Name, value)
}

func renderValue(value interface{}) string {
	switch v := value.(type) {
	case string:
		return quote(v)
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	default:
		return quote(fmt.Sprintf("%v", v))
	}
}

// quote single-quotes a string when it contains characters the shell would
// otherwise interpret. Compressor option strings routinely carry ';' and '='.
func quote(value string) string {
	if value == "" {
		return "''"
	}
	if !strings.ContainsAny(value, " \t;&|<>()$`\"'\\*?[]#~") {
		return value
	}
	return "'" + strings.Replace(value, "'", `'\''`, -1) + "'"
}
