package cmds

// Var defines name taking one argument, and name+"." resetting it to zero.
func Var[T any](name string, desc ...string) *T {
	var value T

	// set
	Define(name, describe(Func(func(v T) {
		value = v
	}), desc))

	// set zero
	var zero T
	Define(name+".", Func(func() {
		value = zero
	}))

	return &value
}

// Switch defines name setting true, and "!"+name setting false.
func Switch(name string, desc ...string) *bool {
	var value bool

	// set true
	Define(name, describe(Func(func() {
		value = true
	}), desc))

	// set false
	Define("!"+name, Func(func() {
		value = false
	}))

	return &value
}

// Collect defines name appending its argument on each use.
func Collect[T any](name string, desc ...string) *[]T {
	var value []T
	// append
	Define(name, describe(Func(func(v T) {
		value = append(value, v)
	}), desc))
	return &value
}

func describe(command *Command, desc []string) *Command {
	if len(desc) > 0 {
		command.Desc(desc[0])
	}
	return command
}
