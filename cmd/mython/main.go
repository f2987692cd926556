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

	mython "github.com/ArtoriasKein/cpp-mython"
)

const (
	appName     = "mython"
	historyFile = ".mython_history"
	promptMain  = ">>> "
	promptCont  = "... "
)

var banner = fmt.Sprintf("Mython %s token inspector\nCtrl+C cancels input, Ctrl+D exits. Type :quit to exit.", mython.Version)

func red(s string) string   { return "\x1b[31m" + s + "\x1b[0m" }
func green(s string) string { return "\x1b[32m" + s + "\x1b[0m" }
func blue(s string) string  { return "\x1b[94m" + s + "\x1b[0m" }

func main() {
	if len(os.Args) < 2 {
		os.Exit(cmdRepl(nil))
	}

	switch os.Args[1] {
	case "repl":
		os.Exit(cmdRepl(os.Args[2:]))
	case "version":
		fmt.Println(mython.Version)
	case "-h", "--help", "help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", appName, os.Args[1])
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Printf(`Mython %s

Usage:
  %s                Start the token-inspector REPL.
  %s repl           Same as above.
  %s version        Print the compiled version.

Each entered block is tokenized and its token stream printed. A line
ending in ':' opens a block; finish it with an empty line.
`, mython.Version, appName, appName, appName)
}

func cmdRepl(_ []string) int {
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

	for {
		code, ok := readBlock(ln, promptMain, promptCont)
		if !ok {
			fmt.Println()
			break
		}

		if strings.HasPrefix(strings.TrimSpace(code), ":") {
			switch strings.TrimSpace(strings.ToLower(code)) {
			case ":quit":
				return 0
			default:
				fmt.Printf("unknown command. Type :quit to exit.\n")
			}
			continue
		}

		if strings.TrimSpace(code) == "" {
			continue
		}

		lex, err := mython.NewLexer(code + "\n")
		if err != nil {
			fmt.Fprintln(os.Stderr, red(mython.WrapErrorWithSource(err, code).Error()))
			continue
		}
		fmt.Println(formatTokens(lex.Tokens()))
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
	}

	return 0
}

// readBlock reads one input block: a single line, or — when the first
// line ends in ':' — continuation lines until an empty one.
func readBlock(ln *liner.State, prompt, cont string) (string, bool) {
	var b strings.Builder

	for {
		p := prompt
		if b.Len() > 0 {
			p = cont
		}
		line, err := ln.Prompt(p)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			// Ctrl+C: abandon the current input.
			return "", true
		}

		if b.Len() == 0 {
			b.WriteString(line)
			if !strings.HasSuffix(strings.TrimSpace(line), ":") {
				return b.String(), true
			}
			b.WriteByte('\n')
			continue
		}

		if strings.TrimSpace(line) == "" {
			return b.String(), true
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
}

// formatTokens renders the stream one structural line per source line:
// structural markers green, payload tokens blue.
func formatTokens(tokens []mython.Token) string {
	var b strings.Builder
	atLineStart := true
	for _, tok := range tokens {
		if !atLineStart {
			b.WriteByte(' ')
		}
		atLineStart = false
		switch tok.Type {
		case mython.NEWLINE, mython.INDENT, mython.DEDENT, mython.EOF:
			b.WriteString(green(tok.String()))
			if tok.Type == mython.NEWLINE {
				b.WriteByte('\n')
				atLineStart = true
			}
		default:
			b.WriteString(blue(tok.String()))
		}
	}
	return strings.TrimRight(b.String(), " \n")
}
