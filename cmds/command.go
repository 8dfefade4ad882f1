package cmds

import (
	"fmt"
	"reflect"
	"strings"
)

// Command is a function taking its arguments from the following words, or a set of sub commands made
// visible after it.
type Command struct {
	Func        reflect.Value
	Subs        map[string]*Command
	Description string
	Aliases     []string
}

func (c *Command) Desc(desc string) *Command {
	c.Description = desc
	return c
}

func (c *Command) Alias(names ...string) *Command {
	c.Aliases = append(c.Aliases, names...)
	return c
}

// Params renders the argument types, optional ones in brackets.
func (c *Command) Params() string {
	if !c.Func.IsValid() {
		return ""
	}
	var parts []string
	fnType := c.Func.Type()
	for i := range fnType.NumIn() {
		t := fnType.In(i)
		if t.Kind() == reflect.Pointer {
			parts = append(parts, "["+t.Elem().String()+"]")
		} else {
			parts = append(parts, "<"+t.String()+">")
		}
	}
	return strings.Join(parts, " ")
}

func Func(fn any) *Command {
	fnValue := reflect.ValueOf(fn)

	if fnValue.Kind() != reflect.Func {
		panic(fmt.Errorf("must be function, got %T", fn))
	}

	numRets := fnValue.Type().NumOut()
	if numRets >= 2 {
		panic(fmt.Errorf("must return 0 or 1 value"))
	}
	if numRets == 1 && fnValue.Type().Out(0) != errorType {
		panic(fmt.Errorf("must return error"))
	}

	return &Command{
		Func: fnValue,
	}
}

func Sub(subs map[string]*Command) *Command {
	return &Command{
		Subs: subs,
	}
}
