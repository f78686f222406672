package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/kballard/go-shellquote"
)

const prompt = "clido> "

// shell reads command sequences from Stdin, one per line, split with POSIX
// shell quoting rules. Every line gets its own store handle, and the
// todo-path chosen on the command line carries into each line.
func (r *runner) shell() int {
	if r.opt.Stdin == nil {
		r.p.Fail("shell: no input")
		return 1
	}

	lineOpt := r.opt
	lineOpt.TodoPath = r.path
	lineOpt.inShell = true

	sc := bufio.NewScanner(r.opt.Stdin)
	fmt.Fprint(r.p.Out, prompt)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		switch line {
		case "":
		case "exit", "quit":
			return 0
		default:
			words, err := shellquote.Split(line)
			if err != nil {
				r.p.Fail("parse error: " + err.Error())
				break
			}
			code := Run(words, lineOpt)
			r.log.Debug("shell command finished", "line", line, "code", code)
		}
		fmt.Fprint(r.p.Out, prompt)
	}
	fmt.Fprintln(r.p.Out)
	if err := sc.Err(); err != nil {
		return r.ioFailure("shell: read input", err)
	}
	return 0
}
