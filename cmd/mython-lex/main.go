// mython-lex dumps the token stream of Mython source files (or stdin) as
// text or NDJSON, one token per line.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	mython "github.com/ArtoriasKein/cpp-mython"
)

var (
	flagJSON    = flag.Bool("json", false, "emit NDJSON: one JSON object per token")
	flagWithEOF = flag.Bool("with-eof", false, "include the Eof token in output")
)

func main() {
	flag.Parse()
	args := flag.Args()

	// When no files are given, read stdin.
	if len(args) == 0 {
		if err := process(os.Stdin, "stdin"); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	exit := 0
	for _, path := range args {
		f, err := os.Open(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open %s: %v\n", path, err)
			exit = 1
			continue
		}
		if err := process(f, path); err != nil {
			fmt.Fprintln(os.Stderr, err)
			exit = 1
		}
		f.Close()
	}
	os.Exit(exit)
}

func process(r io.Reader, filename string) error {
	src, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("%s: %w", filename, err)
	}

	lex, err := mython.NewLexer(string(src))
	if err != nil {
		return mython.WrapErrorWithName(err, filename, string(src))
	}

	toks := lex.Tokens()
	if !*flagWithEOF && len(toks) > 0 && toks[len(toks)-1].Type == mython.EOF {
		toks = toks[:len(toks)-1]
	}

	if *flagJSON {
		return emitJSON(toks)
	}
	for _, tok := range toks {
		fmt.Printf("%4d:%-4d %s\n", tok.Line, tok.Col, tok)
	}
	return nil
}

type tokJSON struct {
	Type string `json:"type"`
	Num  *int   `json:"num,omitempty"`
	Text string `json:"text,omitempty"`
	Ch   string `json:"ch,omitempty"`
	Line int    `json:"line"`
	Col  int    `json:"col"`
}

func emitJSON(toks []mython.Token) error {
	enc := json.NewEncoder(os.Stdout)
	for _, tok := range toks {
		out := tokJSON{Type: tok.Type.String(), Line: tok.Line, Col: tok.Col}
		switch tok.Type {
		case mython.NUMBER:
			n := tok.Num
			out.Num = &n
		case mython.ID, mython.STRING:
			out.Text = tok.Text
		case mython.CHAR:
			out.Ch = string(tok.Ch)
		}
		if err := enc.Encode(out); err != nil {
			return err
		}
	}
	return nil
}
