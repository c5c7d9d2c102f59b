package isolation

import "fmt"

// Taskset is a decorator which pins the launched process (and its children)
// to the given CPU list using the taskset utility.
type Taskset struct {
	// CPUList is passed verbatim to `taskset -c`. It accepts the usual
	// taskset syntax: "0", "0,2", "0-3", "0-3,8-11".
	CPUList string
}

// NewTaskset is a constructor for the Taskset decorator.
func NewTaskset(cpuList string) Taskset {
	return Taskset{CPUList: cpuList}
}

// Decorate implements Decorator interface.
func (t Taskset) Decorate(command string) string {
	if t.CPUList == "" {
		return command
	}
	return fmt.Sprintf("taskset -c %s %s", t.CPUList, command)
}
