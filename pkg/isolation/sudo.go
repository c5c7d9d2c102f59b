package isolation

import "fmt"

// Sudo is a decorator which prefixes the command with a privilege elevation
// prefix. The benchmark binary and the database directory deletion both may
// require elevated privileges depending on how the database path is owned.
type Sudo struct{}

// NewSudo is a constructor for the Sudo decorator.
func NewSudo() Sudo {
	return Sudo{}
}

// Decorate implements Decorator interface.
func (s Sudo) Decorate(command string) string {
	return fmt.Sprintf("sudo %s", command)
}
