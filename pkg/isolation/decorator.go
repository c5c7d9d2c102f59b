// Package isolation provides command decorators which wrap a command line
// with process-launch options like CPU affinity pinning or privilege
// elevation. Decorators are applied uniformly to every subprocess the sweep
// launches.
package isolation

// Decorator allows to decorate a command line before execution.
type Decorator interface {
	Decorate(string) string
}

// Decorators represents an ordered chain of Decorator implementations.
type Decorators []Decorator

// Decorate uses all available decorators to modify the command
// (and implements Decorator interface).
func (d Decorators) Decorate(command string) string {
	for _, decorator := range d {
		command = decorator.Decorate(command)
	}
	return command
}
