package core

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pborman/getopt/v2"
)

// AllBuiltins holds a list of all registered shell builtins
var AllBuiltins = make(map[string]Builtin)

// builtinDocs lists the builtins with their help text in display order.
var builtinDocs = []struct {
	Name string
	Doc  string
}{
	{"?", "show this help menu"},
	{"exit", "exit the command shell"},
	{"cd", "changes the current working directory to the argument taken"},
	{"pwd", "prints the current working directory to standard output"},
	{"wait", "waits until all background jobs have terminated before returning to the prompt"},
}

type Builtin interface {
	Main(s *Shell, args []string) int
}

type BuiltinFunc func(s *Shell, args []string) int

func (f BuiltinFunc) Main(s *Shell, args []string) int {
	return f(s, args)
}

var _ Builtin = (BuiltinFunc)(nil)

// Help prints a one line description of every builtin.
func Help(s *Shell, args []string) int {
	for _, desc := range builtinDocs {
		fmt.Fprintf(s.stdout, "%s - %s\n", desc.Name, desc.Doc)
	}
	return 0
}

// Exit quits the shell immediately with status 0.
func Exit(s *Shell, args []string) int {
	s.exit(0)
	return 0
}

// Cd changes the working directory, falling back to HOME when called with no
// argument.
func Cd(s *Shell, args []string) int {
	dir := os.Getenv("HOME")
	if len(args) > 1 {
		dir = args[1]
	}
	if err := os.Chdir(dir); err != nil {
		fmt.Fprintln(s.stdout, "No such directory")
		return 1
	}
	return 0
}

// Pwd prints the current working directory to standard output.
func Pwd(s *Shell, args []string) int {
	opts := getopt.New()
	opts.Bool('L', "print the logical directory, following symlinks (default)")
	physical := opts.Bool('P', "print the physical directory, without symlinks")
	helpOpt := opts.BoolLong("help", 'h', "show help and exit")

	if err := opts.Getopt(args, nil); err != nil || *helpOpt {
		w := s.stderr
		if err != nil {
			fmt.Fprintln(w, err)
		}
		fmt.Fprintln(w, "usage: pwd [-LP]")
		opts.PrintOptions(w)
		return 1
	}

	wd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(s.stderr, "pwd: %v\n", err)
		return 1
	}
	if *physical {
		if resolved, err := filepath.EvalSymlinks(wd); err == nil {
			wd = resolved
		}
	}

	fmt.Fprintln(s.stdout, wd)
	return 0
}

// Wait blocks until every outstanding child has terminated, no matter how it
// was launched.
func Wait(s *Shell, args []string) int {
	s.Session.WaitAll()
	return 0
}

func init() {
	AllBuiltins["?"] = BuiltinFunc(Help)
	AllBuiltins["exit"] = BuiltinFunc(Exit)
	AllBuiltins["cd"] = BuiltinFunc(Cd)
	AllBuiltins["pwd"] = BuiltinFunc(Pwd)
	AllBuiltins["wait"] = BuiltinFunc(Wait)
}
