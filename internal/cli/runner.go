package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/Makepad-fr/clido/internal/logging"
	"github.com/Makepad-fr/clido/internal/model"
	"github.com/Makepad-fr/clido/internal/store"
	"github.com/Makepad-fr/clido/internal/store/binstore"
	"github.com/Makepad-fr/clido/internal/store/jsonstore"
	"github.com/Makepad-fr/clido/internal/tui"
	"github.com/Makepad-fr/clido/internal/ui"
)

// Version is stamped at build time with -ldflags "-X ...cli.Version=...".
var Version = "0.2.0"

// ErrBadArgument marks a missing or unparsable command argument.
var ErrBadArgument = errors.New("bad argument")

// Options carry everything a command sequence needs from the outside.
type Options struct {
	TodoPath string
	Lock     bool
	Printer  *ui.Printer
	Logger   *log.Logger
	Stdin    io.Reader // read by the shell command

	// Interactive runs the list view; nil means tui.Run.
	Interactive func([]model.Item, ui.Theme) (tui.Result, error)

	inShell bool
}

// Run walks args as a command sequence and returns an exit code
// (0 ok, 1 error). Commands that touch the store end the sequence;
// todo-path only changes the file later commands use.
func Run(args []string, opt Options) int {
	r := newRunner(opt)
	if len(args) == 0 {
		r.p.Plain("A command is required!\nRun clido help to look at usage overview")
		return 1
	}

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "help", "-h", "--help":
			if i == 0 {
				PrintHelp(r.p.Out)
				return 0
			}

		case "version":
			fmt.Fprintf(r.p.Out, "clido v%s - Command Line Interface to DO program\n", Version)
			return 0

		case "todo-path":
			i++
			if i >= len(args) {
				return r.badArgument("No path was provided!")
			}
			r.path = args[i]
			r.log.Debug("todo path set", "path", r.path)

		case "add":
			return r.add(args[i+1:])

		case "show":
			return r.show(false)

		case "show-done":
			return r.show(true)

		case "done":
			return r.done(args[i+1:])

		case "tui":
			return r.interactive()

		case "shell":
			if r.opt.inShell {
				r.p.Fail("already in a shell")
				return 1
			}
			return r.shell()

		case "export":
			if i+1 >= len(args) {
				return r.badArgument("No export path was provided!")
			}
			return r.export(args[i+1])

		case "import":
			if i+1 >= len(args) {
				return r.badArgument("No import path was provided!")
			}
			return r.importFrom(args[i+1])
		}
	}

	r.p.Plain("No valid sequence of commands was specified!\nRun clido help to look at usage overview")
	return 1
}

// PrintHelp writes the usage overview of every command to w.
func PrintHelp(w io.Writer) {
	fmt.Fprint(w, `clido [FLAGS] [COMMAND]

[COMMAND]:
help -> Prints this message and exits
version -> Prints version information and exits
add [todo] -> Writes a new TODO to the TODO file
show -> Outputs current TODOs
show-done -> Outputs TODOs which were done previously
done [index]... -> Marks specified TODO(s) as done
todo-path [path] -> Uses another TODO file for the following command
tui -> Opens an interactive list (space marks done, a adds, q quits)
shell -> Reads commands line by line from standard input
export [path] -> Writes all TODOs to a JSON file
import [path] -> Appends TODOs from a JSON file written by export

[FLAGS]:
-config [path]  -todo-path [path]  -log-level [level]  -theme [name]
-no-color  -no-lock

Examples:
clido add Do the cooking today
clido add Read a book
clido show
clido done 0 1
clido show-done
clido todo-path ./TODOS.bin show
`)
}

type runner struct {
	opt  Options
	p    *ui.Printer
	log  *log.Logger
	path string
}

func newRunner(opt Options) *runner {
	if opt.Logger == nil {
		opt.Logger = logging.Discard()
	}
	if opt.Printer == nil {
		opt.Printer = ui.NewPrinter(io.Discard, io.Discard, "", true)
	}
	if opt.Interactive == nil {
		opt.Interactive = tui.Run
	}
	return &runner{opt: opt, p: opt.Printer, log: opt.Logger, path: opt.TodoPath}
}

func (r *runner) badArgument(msg string) int {
	r.log.Debug("rejected command", "err", fmt.Errorf("%w: %s", ErrBadArgument, msg))
	r.p.Fail(msg)
	return 1
}

func (r *runner) ioFailure(op string, err error) int {
	r.log.Debug(op, "path", r.path, "err", err)
	r.p.Fail(fmt.Sprintf("%s: %v", op, err))
	return 1
}

// withStore opens the TODO file, hands a Store over it to fn, and closes
// the file on every path out.
func (r *runner) withStore(fn func(s *binstore.Store) int) int {
	f, err := store.Open(r.path, store.OpenOptions{Lock: r.opt.Lock, Logger: r.log})
	if err != nil {
		return r.ioFailure("Failed to open TODO file", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			r.log.Warn("closing todo file", "path", r.path, "err", err)
		}
	}()
	return fn(binstore.New(f, r.log))
}

// loadAll reads the store, reporting failures to the user. ok is false when
// the command should stop with code.
func (r *runner) loadAll(s *binstore.Store) (items []model.Item, code int, ok bool) {
	items, err := s.LoadAll()
	if err != nil {
		return nil, r.ioFailure("Failed to read TODOs", err), false
	}
	if len(items) == 0 {
		r.p.Info("No TODOs yet!")
		return nil, 0, false
	}
	return items, 0, true
}

func (r *runner) persist(s *binstore.Store, fn func() error) int {
	if err := fn(); err != nil {
		return r.ioFailure("Failed to write TODOs", err)
	}
	if err := s.Sync(); err != nil {
		return r.ioFailure("Failed to sync TODO file", err)
	}
	return 0
}

// -------------- subcommand impls ----------------

func (r *runner) add(words []string) int {
	if len(words) == 0 {
		return r.badArgument("No TODO text was given!")
	}
	it := model.NewItem(words...)
	return r.withStore(func(s *binstore.Store) int {
		if code := r.persist(s, func() error { return s.AppendOne(it) }); code != 0 {
			return code
		}
		r.p.OK("Added!")
		return 0
	})
}

func (r *runner) show(done bool) int {
	return r.withStore(func(s *binstore.Store) int {
		items, code, ok := r.loadAll(s)
		if !ok {
			return code
		}
		printed := 0
		for i, it := range items {
			if it.Done != done {
				continue
			}
			r.p.Item(i, it)
			printed++
		}
		if printed == 0 {
			if done {
				r.p.Info("No TODOs were done yet!")
			} else {
				r.p.OK("All is done!")
			}
		}
		return 0
	})
}

func (r *runner) done(args []string) int {
	return r.withStore(func(s *binstore.Store) int {
		items, code, ok := r.loadAll(s)
		if !ok {
			return code
		}
		if len(args) == 0 {
			r.p.Info("Not one index was specified!")
			return 0
		}
		indices, err := parseIndices(args)
		if err != nil {
			return r.badArgument(err.Error())
		}

		marked := binstore.MarkDone(items, indices)
		for _, idx := range marked {
			r.p.Marked(items[idx])
		}
		if len(marked) == 0 {
			return 0
		}
		return r.persist(s, func() error { return s.RewriteAll(items) })
	})
}

// parseIndices converts done arguments to indices. A number too large for
// an int can never address a record, so it is dropped like any other
// out-of-range index.
func parseIndices(args []string) ([]int, error) {
	indices := make([]int, 0, len(args))
	for _, a := range args {
		n, err := strconv.Atoi(a)
		if errors.Is(err, strconv.ErrRange) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%w: not an index: %q", ErrBadArgument, a)
		}
		indices = append(indices, n)
	}
	return indices, nil
}

func (r *runner) interactive() int {
	return r.withStore(func(s *binstore.Store) int {
		items, err := s.LoadAll()
		if err != nil {
			return r.ioFailure("Failed to read TODOs", err)
		}
		res, err := r.opt.Interactive(items, r.p.Theme())
		if err != nil {
			return r.ioFailure("Interactive list failed", err)
		}

		if len(res.Marked) > 0 {
			if code := r.persist(s, func() error { return s.RewriteAll(res.Items[:res.Existing]) }); code != 0 {
				return code
			}
		}
		for _, it := range res.Added() {
			if code := r.persist(s, func() error { return s.AppendOne(it) }); code != 0 {
				return code
			}
		}
		if len(res.Marked) > 0 || len(res.Added()) > 0 {
			r.p.OK(fmt.Sprintf("Saved! %d marked done, %d added", len(res.Marked), len(res.Added())))
		}
		return 0
	})
}

func (r *runner) export(path string) int {
	return r.withStore(func(s *binstore.Store) int {
		items, err := s.LoadAll()
		if err != nil {
			return r.ioFailure("Failed to read TODOs", err)
		}
		if err := jsonstore.Save(path, items); err != nil {
			return r.ioFailure("Failed to export TODOs", err)
		}
		r.p.OK(fmt.Sprintf("Exported %d TODOs to %s", len(items), path))
		return 0
	})
}

func (r *runner) importFrom(path string) int {
	items, err := jsonstore.Load(path)
	if err != nil {
		return r.ioFailure("Failed to import TODOs", err)
	}
	return r.withStore(func(s *binstore.Store) int {
		for _, it := range items {
			if code := r.persist(s, func() error { return s.AppendOne(it) }); code != 0 {
				return code
			}
		}
		r.p.OK(fmt.Sprintf("Imported %d TODOs", len(items)))
		return 0
	})
}
