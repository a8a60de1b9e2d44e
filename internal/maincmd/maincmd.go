// Package maincmd implements the command-line front end of the lox
// interpreter: a thin dispatcher over the tokenize, parse, interpret and
// repl subcommands.
package maincmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/mna/mainer"
)

const binName = "lox"

// Exit codes follow the sysexits convention used by the interpreter: 65
// for compile-time errors, 70 for runtime errors.
const (
	exitDataErr     = mainer.ExitCode(65)
	exitSoftwareErr = mainer.ExitCode(70)
)

var (
	// errCompile marks scan, parse and resolve failures; the diagnostics
	// are already printed when it is returned.
	errCompile = errors.New("compile error")
	// errRuntime marks runtime faults, likewise already printed.
	errRuntime = errors.New("runtime error")
)

var (
	shortUsage = fmt.Sprintf(`
usage: %s [<option>...] <command> [<path>...]
Run '%[1]s --help' for details.
`, binName)

	longUsage = fmt.Sprintf(`usage: %s [<option>...] <command> [<path>...]
       %[1]s -h|--help
       %[1]s -v|--version

Tree-walking interpreter and all-in-one tool for the Lox programming
language.

The <command> can be one of:
       interpret                 Execute a Lox script.
       parse                     Execute the parser phase and print the
                                 resulting abstract syntax tree (AST) as
                                 S-expressions.
       repl                      Read lines from standard input and
                                 execute each one against a persistent
                                 interpreter.
       tokenize                  Execute the scanner phase and print the
                                 resulting tokens.

File paths may be glob patterns (including '**'), expanded before
processing.

Valid flag options are:
       -h --help                 Show this help and exit.
       -v --version              Print version and exit.

Valid flag options for the <interpret> and <repl> commands are:
       --max-call-depth <n>      Fail with a runtime error when more than
                                 <n> function calls are nested (no limit
                                 by default).
`, binName)
)

// Cmd is the command-line interface, its exported fields parsed from the
// flags and environment (prefix "lox_") by mainer.
type Cmd struct {
	BuildVersion string
	BuildDate    string

	Help    bool `flag:"h,help"`
	Version bool `flag:"v,version"`

	MaxCallDepth int `flag:"max-call-depth"`

	args  []string
	flags map[string]bool
	cmdFn func(context.Context, mainer.Stdio, []string) error
}

// SetArgs implements mainer's argument receiver.
func (c *Cmd) SetArgs(args []string) {
	c.args = args
}

// SetFlags implements mainer's flag receiver.
func (c *Cmd) SetFlags(flags map[string]bool) {
	c.flags = flags
}

// Validate implements mainer's validation hook, checking the command name
// and its arguments.
func (c *Cmd) Validate() error {
	if c.Help || c.Version {
		return nil
	}

	if len(c.args) == 0 {
		return errors.New("no command specified")
	}

	cmdName := c.args[0]

	commands := buildCmds(c)
	c.cmdFn = commands[cmdName]
	if c.cmdFn == nil {
		return fmt.Errorf("unknown command: %s", cmdName)
	}

	switch cmdName {
	case "tokenize", "parse":
		if len(c.args[1:]) == 0 {
			return fmt.Errorf("%s: at least one file must be provided", cmdName)
		}
	case "interpret":
		if len(c.args[1:]) != 1 {
			return fmt.Errorf("%s: a single file must be provided", cmdName)
		}
	case "repl":
		if len(c.args[1:]) != 0 {
			return fmt.Errorf("%s: no file may be provided", cmdName)
		}
	}

	if c.flags["max-call-depth"] && cmdName != "interpret" && cmdName != "repl" {
		return fmt.Errorf("%s: invalid flag 'max-call-depth'", cmdName)
	}
	if c.MaxCallDepth < 0 {
		return errors.New("max-call-depth: must be >= 0")
	}

	return nil
}

func printError(stdio mainer.Stdio, err error) error {
	if err != nil {
		fmt.Fprintf(stdio.Stderr, "%s\n", err)
	}
	return err
}

// Main is the entry point of the command, returning its exit code.
func (c *Cmd) Main(args []string, stdio mainer.Stdio) mainer.ExitCode {
	p := mainer.Parser{
		EnvVars:   true,
		EnvPrefix: binName + "_",
	}
	if err := p.Parse(args, c); err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid arguments: %s\n%s", err, shortUsage)
		return mainer.InvalidArgs
	}

	switch {
	case c.Help:
		fmt.Fprint(stdio.Stdout, longUsage)
		return mainer.Success

	case c.Version:
		fmt.Fprintf(stdio.Stdout, "%s %s %s\n", binName, c.BuildVersion, c.BuildDate)
		return mainer.Success
	}

	ctx := mainer.CancelOnSignal(context.Background(), os.Interrupt)
	if err := c.cmdFn(ctx, stdio, c.args[1:]); err != nil {
		// each command takes care of printing its errors, just map the
		// error kind to the exit code
		switch {
		case errors.Is(err, errCompile):
			return exitDataErr
		case errors.Is(err, errRuntime):
			return exitSoftwareErr
		}
		return mainer.Failure
	}
	return mainer.Success
}

// valid commands are the Cmd methods that take a context, a mainer.Stdio
// and a slice of strings as input, and return an error as output.
func buildCmds(v interface{}) map[string]func(context.Context, mainer.Stdio, []string) error {
	cmds := make(map[string]func(context.Context, mainer.Stdio, []string) error)

	vv := reflect.ValueOf(v)
	vt := vv.Type()
	for i := 0; i < vt.NumMethod(); i++ {
		m := vt.Method(i)
		mt := m.Type

		// must take 4 parameters (including receiver) and return 1
		if mt.NumIn() != 4 || mt.NumOut() != 1 {
			continue
		}

		if rt := mt.Out(0); rt.Kind() != reflect.Interface || rt.Name() != "error" {
			continue
		}
		if p0 := mt.In(0); p0.Kind() != reflect.Ptr || p0.Elem().Name() != "Cmd" {
			continue
		}
		if p1 := mt.In(1); p1.Kind() != reflect.Interface || p1.Name() != "Context" {
			continue
		}
		if p2 := mt.In(2); p2.Kind() != reflect.Struct || p2.Name() != "Stdio" {
			continue
		}
		if p3 := mt.In(3); p3.Kind() != reflect.Slice || p3.Elem().Name() != "string" {
			continue
		}
		cmds[strings.ToLower(m.Name)] = vv.Method(i).Interface().(func(context.Context, mainer.Stdio, []string) error)
	}
	return cmds
}
