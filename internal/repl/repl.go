// Package repl implements the interactive command loop spec.md §6
// describes: whitespace-first commands (load, query, rules, derivation,
// quit) read one line at a time from an io.Reader and answered on an
// io.Writer. The read-eval-print structure follows the same
// bufio.Reader-driven loop codenerd's cmd/nerd/cmd_interactive.go uses for
// its own interactive mode, trimmed of that command's task-refinement
// vocabulary and replaced with this engine's five commands.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/AloisRautureau/pif/internal/derivation"
	"github.com/AloisRautureau/pif/internal/pierr"
	"github.com/AloisRautureau/pif/internal/pifsyntax"
	"github.com/AloisRautureau/pif/internal/saturate"
	"github.com/AloisRautureau/pif/internal/term"
)

// REPL owns the engine and symbol table a session operates against, plus
// the I/O it reads commands from and writes answers to.
type REPL struct {
	engine *saturate.Engine
	logger *zap.SugaredLogger
	in     *bufio.Reader
	out    io.Writer

	// lastGoal remembers the most recent successful query's goal clause so
	// that "derivation" with no argument after a query can re-render it
	// without re-running saturation.
	lastGoal *term.Clause
}

// New builds a REPL bound to engine, reading commands from in and writing
// output to out.
func New(engine *saturate.Engine, logger *zap.SugaredLogger, in io.Reader, out io.Writer) *REPL {
	return &REPL{
		engine: engine,
		logger: logger,
		in:     bufio.NewReader(in),
		out:    out,
	}
}

// LoadFile replaces the engine's clause set with the rules parsed from
// path, the same operation the "load" command performs, exposed directly
// so main can apply an optional startup file before entering the loop.
func (r *REPL) LoadFile(path string, readFile func(string) (string, error)) error {
	src, err := readFile(path)
	if err != nil {
		return pierr.Wrap(pierr.File, err, "reading "+path)
	}
	rules, err := pifsyntax.ParseRules(src, r.engine.Symbols)
	if err != nil {
		return err
	}
	r.engine.Load(rules)
	fmt.Fprintf(r.out, "loaded %d rules from %s\n", len(rules), path)
	return nil
}

// Run executes the read-eval-print loop until "quit" or end of input. It
// never returns a non-nil error for anything short of a read failure on
// in: per spec.md §7, every command-level error is caught, printed as a
// short diagnostic, and the loop continues.
func (r *REPL) Run(readFile func(string) (string, error)) error {
	for {
		fmt.Fprint(r.out, "pif> ")
		line, err := r.in.ReadString('\n')
		if err != nil && line == "" {
			if err == io.EOF {
				return nil
			}
			return err
		}

		cmd, arg := splitCommand(line)
		if cmd == "" {
			continue
		}

		switch cmd {
		case "load":
			if err := r.LoadFile(arg, readFile); err != nil {
				fmt.Fprintln(r.out, err)
			}
		case "query":
			r.handleQuery(arg)
		case "rules":
			r.handleRules()
		case "derivation":
			r.handleDerivation(arg)
		case "quit":
			return nil
		default:
			fmt.Fprintf(r.out, "unknown command %q (try load, query, rules, derivation, quit)\n", cmd)
		}

		if err == io.EOF {
			return nil
		}
	}
}

func (r *REPL) handleQuery(arg string) {
	atom, err := pifsyntax.ParseQuery(arg, r.engine.Symbols)
	if err != nil {
		fmt.Fprintln(r.out, err)
		return
	}

	derived, goal := r.engine.Query(atom)
	if !derived {
		fmt.Fprintln(r.out, pierr.New(pierr.Saturated, "query not derivable"))
		return
	}

	r.lastGoal = goal
	fmt.Fprintf(r.out, "derivable: %s\n", atom.String())
	tree := derivation.Build(r.engine.Parents, goal)
	derivation.Render(r.out, tree)
}

func (r *REPL) handleRules() {
	for _, c := range r.engine.Clauses.All() {
		fmt.Fprintln(r.out, c.String())
	}
}

func (r *REPL) handleDerivation(arg string) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		if r.lastGoal == nil {
			for _, c := range r.engine.Clauses.All() {
				tree := derivation.Build(r.engine.Parents, c)
				derivation.Render(r.out, tree)
			}
			return
		}
		tree := derivation.Build(r.engine.Parents, r.lastGoal)
		derivation.Render(r.out, tree)
		return
	}

	atom, err := pifsyntax.ParseQuery(arg, r.engine.Symbols)
	if err != nil {
		fmt.Fprintln(r.out, err)
		return
	}
	goal := term.NewClause(nil, atom)
	if !r.engine.Clauses.Contains(goal) {
		fmt.Fprintln(r.out, pierr.New(pierr.Saturated, "clause not in current set"))
		return
	}
	tree := derivation.Build(r.engine.Parents, goal)
	derivation.Render(r.out, tree)
}

// splitCommand separates a command word from its remaining argument text.
func splitCommand(line string) (cmd, arg string) {
	line = strings.TrimRight(line, "\r\n")
	line = strings.TrimSpace(line)
	if line == "" {
		return "", ""
	}
	parts := strings.SplitN(line, " ", 2)
	cmd = strings.ToLower(parts[0])
	if len(parts) == 2 {
		arg = strings.TrimSpace(parts[1])
	}
	return cmd, arg
}
