// cmd/nickel/main.go — the REPL/CLI driver (ambient, out of core scope).
//
// Grounded on the teacher's cmd/msg/main.go: the same liner-based REPL
// shape (history file under the user's home directory, Ctrl-C/Ctrl-D
// handling, a colorized single-line prompt) and the same `run`/`repl`
// subcommand dispatch, trimmed to the two subcommands this language
// actually needs — `fmt`/`test`/`get` in the teacher depend on a
// `canon`/`testing` standard module this spec does not define.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/peterh/liner"

	nickel "github.com/MiSawa/nickel"
)

const (
	appName     = "nickel"
	historyFile = ".nickel_history"
	promptMain  = "nickel> "
	promptCont  = "....... "
)

var banner = "nickel REPL\nCtrl+C cancels input, Ctrl+D exits. Type :quit to exit."

func red(s string) string  { return "\x1b[31m" + s + "\x1b[0m" }
func blue(s string) string { return "\x1b[94m" + s + "\x1b[0m" }

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	switch os.Args[1] {
	case "run":
		os.Exit(cmdRun(os.Args[2:]))
	case "repl":
		os.Exit(cmdRepl())
	case "-h", "--help", "help":
		usage()
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", appName, os.Args[1])
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Printf(`nickel

Usage:
  %s run <file.ncl>     Evaluate a file and print its deeply-forced result.
  %s repl               Start the REPL.

`, appName, appName)
}

// fsResolver resolves import paths against the filesystem, relative to the
// importing file's directory (spec §4.7's host-supplied narrow interface).
type fsResolver struct {
	sm *nickel.SourceMap
}

func (r *fsResolver) Resolve(fromSource nickel.SourceID, path string) (name, text string, err error) {
	dir := "."
	if name := r.sm.Name(fromSource); name != "" {
		dir = filepath.Dir(name)
	}
	full := path
	if !filepath.IsAbs(path) {
		full = filepath.Join(dir, path)
	}
	data, err := os.ReadFile(full)
	if err != nil {
		return "", "", err
	}
	return full, string(data), nil
}

func cmdRun(args []string) int {
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "usage: %s run <file.ncl>\n", appName)
		return 2
	}
	file := args[0]
	src, err := os.ReadFile(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: cannot read %s: %v\n", appName, file, err)
		return 1
	}

	ip := nickel.NewInterpreter(nil)
	ip.Resolver = &fsResolver{sm: ip.Sources}

	result, err := ip.EvalSourceDeep(file, string(src))
	if err != nil {
		fmt.Fprintln(os.Stderr, red(err.Error()))
		return 1
	}
	fmt.Println(blue(nickel.FormatTerm(result)))
	return 0
}

func cmdRepl() (ret int) {
	fmt.Println(banner)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	ip := nickel.NewInterpreter(nil)
	ip.Resolver = &fsResolver{sm: ip.Sources}

	for i := 0; ; i++ {
		code, ok := readByParseProbe(ln)
		if !ok {
			fmt.Println()
			break
		}
		trimmed := strings.TrimSpace(code)
		if trimmed == "" {
			continue
		}
		if trimmed == ":quit" {
			break
		}

		result, err := ip.EvalSourceDeep(fmt.Sprintf("<repl:%d>", i), code)
		if err != nil {
			fmt.Fprintln(os.Stderr, red(err.Error()))
			continue
		}
		fmt.Println(blue(nickel.FormatTerm(result)))
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
	}
	return 0
}

// readByParseProbe reads lines until they form a syntactically complete
// expression, re-parsing after each line the way the teacher's REPL probes
// for balanced input before submitting it for evaluation.
func readByParseProbe(ln *liner.State) (string, bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			return "", true
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") {
			return src, true
		}
		if _, perr := nickel.TryParse(src); perr == nil {
			return src, true
		}
	}
}
