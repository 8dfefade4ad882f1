package cmds

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/reusee/gtscript/vars"
)

var (
	ErrUnknownCommand    = errors.New("unknown command")
	ErrDuplicatedCommand = errors.New("duplicated command")
	ErrMissingArgument   = errors.New("expecting argument, got nothing")
)

// Executor runs command lines word by word. A command consumes the words its function takes, then the
// next word names the following command.
type Executor struct {
	commands map[string]*Command
}

func NewExecutor() *Executor {
	ret := &Executor{
		commands: make(map[string]*Command),
	}
	ret.Define("-h", Func(func() {
		ret.PrintUsage(os.Stdout)
		os.Exit(0)
	}).
		Desc("print this usage").
		Alias("help", "-help", "--help"))
	return ret
}

// Define panics on a name or alias already taken, since definitions happen in package init.
func (p *Executor) Define(name string, command *Command) {
	for _, name := range append([]string{name}, command.Aliases...) {
		if _, ok := p.commands[name]; ok {
			panic(fmt.Errorf("%w: %s", ErrDuplicatedCommand, name))
		}
		p.commands[name] = command
	}
}

var errorType = reflect.TypeFor[error]()

func (p *Executor) Execute(args []string) (err error) {
	commands := p.commands
	for len(args) > 0 {
		name := strings.TrimSpace(args[0])
		command, ok := commands[name]
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownCommand, name)
		}
		args, err = command.call(name, args[1:])
		if err != nil {
			return err
		}
		if len(command.Subs) > 0 {
			// sub commands are visible for the rest of the line
			commands = maps.Clone(commands)
			for subname, sub := range command.Subs {
				if _, ok := commands[subname]; ok {
					return fmt.Errorf("%w: %s %s", ErrDuplicatedCommand, name, subname)
				}
				commands[subname] = sub
			}
		}
	}
	return nil
}

func (p *Executor) MustExecute(args []string) {
	if err := p.Execute(args); err != nil {
		panic(err)
	}
}

// call runs the function of c, if any, and returns the words left.
func (c *Command) call(name string, args []string) ([]string, error) {
	if !c.Func.IsValid() {
		return args, nil
	}
	fnType := c.Func.Type()
	callArgs := make([]reflect.Value, 0, fnType.NumIn())
	for i := range fnType.NumIn() {
		value, err := parseArg(fnType.In(i), args)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		if len(args) > 0 {
			args = args[1:]
		}
		callArgs = append(callArgs, value)
	}
	rets := c.Func.Call(callArgs)
	if len(rets) > 0 {
		if err, _ := rets[0].Interface().(error); err != nil {
			return nil, err
		}
	}
	return args, nil
}

// parseArg converts the next word to t. Pointer parameters are optional and get a zero value when the
// line is exhausted.
func parseArg(t reflect.Type, args []string) (reflect.Value, error) {
	if t.Kind() == reflect.Pointer {
		if len(args) == 0 {
			return reflect.New(t.Elem()), nil
		}
		elem, err := parseArg(t.Elem(), args)
		if err != nil {
			return reflect.Value{}, err
		}
		return elem.Addr(), nil
	}
	if len(args) == 0 {
		return reflect.Value{}, ErrMissingArgument
	}

	str := args[0]
	ret := reflect.New(t).Elem()
	switch t.Kind() {

	case reflect.Bool:
		ret.SetBool(vars.StrToBool(str))

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v, err := strconv.ParseInt(str, 10, t.Bits())
		if err != nil {
			return ret, fmt.Errorf("convert %s to int: %w", str, err)
		}
		ret.SetInt(v)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v, err := strconv.ParseUint(str, 10, t.Bits())
		if err != nil {
			return ret, fmt.Errorf("convert %s to unsigned int: %w", str, err)
		}
		ret.SetUint(v)

	case reflect.Float32, reflect.Float64:
		v, err := strconv.ParseFloat(str, t.Bits())
		if err != nil {
			return ret, fmt.Errorf("convert %s to float: %w", str, err)
		}
		ret.SetFloat(v)

	case reflect.String:
		ret.SetString(str)

	default:
		return ret, fmt.Errorf("unsupported type: %v", t)
	}
	return ret, nil
}
