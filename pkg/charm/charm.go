// Package charm is a minimalist CLI framework inspired by cobra and
// urfave/cli: a tree of Specs, each constructing a Command that consumes
// its own flags before delegating to a child subcommand.
package charm

import (
	"errors"
	"flag"
	"fmt"
	"io"
)

var (
	NeedHelp   = errors.New("help")
	ErrNoRun   = errors.New("no run method")
	ErrNotLeaf = errors.New("no internal leaf found")
)

type Constructor func(Command, *flag.FlagSet) (Command, error)

type Command interface {
	Run([]string) error
}

// InternalLeaf lets an interior command register flags that apply only
// when it is itself the resolved leaf, not inherited by its children.
type InternalLeaf interface {
	SetLeafFlags(*flag.FlagSet)
}

type Spec struct {
	Name  string
	Usage string
	Short string
	Long  string
	New   Constructor
	// Hidden hides this command from help.
	Hidden bool
	// HiddenFlags is a comma-separated list of flag names to hide from help.
	// displayHelp does not print flags, so this field does not change its
	// output.
	HiddenFlags string
	// RedactedFlags is a comma-separated list of flag names whose default
	// value is hidden from help. displayHelp does not print flags, so this
	// field does not change its output.
	RedactedFlags string
	// InternalLeaf marks a Spec whose command re-exports a parent's flags
	// into children. parse does not read it: leaf detection depends only on
	// whether a Spec has children.
	InternalLeaf bool
	children     []*Spec
	parent       *Spec
}

func (s *Spec) Add(child *Spec) {
	s.children = append(s.children, child)
	child.parent = s
}

func (s *Spec) lookupSub(name string) *Spec {
	for _, child := range s.children {
		if name == child.Name {
			return child
		}
	}
	return nil
}

// node is one resolved step of a command path.
type node struct {
	spec *Spec
	cmd  Command
}

// path is the resolved chain of commands from the root to the command
// that will run.
type path []node

func (p path) run(args []string) error {
	if len(p) == 0 {
		return ErrNoRun
	}
	if p[len(p)-1].cmd == nil {
		return ErrNoRun
	}
	return p[len(p)-1].cmd.Run(args)
}

func (p path) tail() *Spec {
	if len(p) == 0 {
		return nil
	}
	return p[len(p)-1].spec
}

// Exec walks args against s's command tree, constructing and running the
// resolved leaf command. On a help request it prints usage for the
// deepest Spec it could resolve instead of running anything.
func (s *Spec) Exec(args []string) error {
	p, rest, showHidden, err := parse(s, args, nil, true)
	if err == ErrNotLeaf {
		p, rest, showHidden, err = parse(s, args, nil, false)
	}
	if err == nil {
		err = p.run(rest)
	}
	if err == NeedHelp {
		p, perr := parseHelp(s, args)
		if perr != nil {
			return perr
		}
		displayHelp(p, showHidden)
		return nil
	}
	return err
}

// parse walks args against cur's command tree, instantiating a Command at
// each step and consuming that step's own flags before matching the next
// subcommand name. strict requires the resolved path to bottom out at a
// childless Spec; when false, parse is willing to stop at an interior
// Spec and treat it as runnable on its own (e.g. a bare root invocation).
func parse(root *Spec, args []string, parentCmd Command, strict bool) (path, []string, bool, error) {
	showHidden := false
	var p path
	cur := root
	curCmd := parentCmd
	for {
		fs := flag.NewFlagSet(cur.Name, flag.ContinueOnError)
		fs.SetOutput(io.Discard)
		fs.BoolVar(&showHidden, "hidden", showHidden, "show hidden commands and flags in help")

		var cmd Command
		var err error
		if cur.New != nil {
			cmd, err = cur.New(curCmd, fs)
			if err != nil {
				return p, nil, showHidden, err
			}
		}
		if leaf, ok := cmd.(InternalLeaf); ok {
			leaf.SetLeafFlags(fs)
		}
		if err := fs.Parse(args); err != nil {
			if errors.Is(err, flag.ErrHelp) {
				return append(p, node{spec: cur, cmd: cmd}), nil, showHidden, NeedHelp
			}
			return p, nil, showHidden, err
		}
		args = fs.Args()
		p = append(p, node{spec: cur, cmd: cmd})
		curCmd = cmd

		if len(args) > 0 && isHelpToken(args[0]) {
			return p, args, showHidden, NeedHelp
		}
		if len(cur.children) == 0 {
			return p, args, showHidden, nil
		}
		if len(args) == 0 {
			if strict {
				return p, args, showHidden, ErrNotLeaf
			}
			return p, args, showHidden, nil
		}
		next := cur.lookupSub(args[0])
		if next == nil {
			if strict {
				return p, args, showHidden, fmt.Errorf("%s: unknown command %q", cur.Name, args[0])
			}
			return p, args, showHidden, nil
		}
		cur = next
		args = args[1:]
	}
}

func isHelpToken(s string) bool {
	return s == "help" || s == "-h" || s == "--help"
}

// parseHelp resolves as deep a Spec path as it can purely from subcommand
// names, ignoring flags and construction errors, so `x y help` and
// `x y -h` can display help for `y` even when `y`'s own flags or
// constructor would otherwise fail.
func parseHelp(root *Spec, args []string) (path, error) {
	var p path
	cur := root
	for _, a := range args {
		if isHelpToken(a) || len(a) > 0 && a[0] == '-' {
			continue
		}
		next := cur.lookupSub(a)
		if next == nil {
			break
		}
		cur = next
	}
	for sp := cur; sp != nil; sp = sp.parent {
		p = append(path{{spec: sp}}, p...)
	}
	return p, nil
}

func NoRun(args []string) error {
	if len(args) == 0 {
		return NeedHelp
	}
	return ErrNoRun
}
