package cmds

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
)

// PrintUsage lists the commands in name order. Aliases are printed with the command they name.
func (p *Executor) PrintUsage(w io.Writer) {
	printCommands(w, p.commands, 0)
}

func printCommands(w io.Writer, commands map[string]*Command, indent int) {
	for _, name := range slices.Sorted(maps.Keys(commands)) {
		command := commands[name]
		if command == nil || slices.Contains(command.Aliases, name) {
			continue
		}
		names := append([]string{name}, command.Aliases...)
		line := strings.Repeat("  ", indent) + strings.Join(names, ", ")
		if params := command.Params(); params != "" {
			line += " " + params
		}
		if command.Description != "" {
			line += "\t" + command.Description
		}
		fmt.Fprintln(w, line)
		if len(command.Subs) > 0 {
			printCommands(w, command.Subs, indent+1)
		}
	}
}
