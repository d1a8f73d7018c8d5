package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ergochat/readline"
	"github.com/spf13/cobra"

	"github.com/dhamidi/javacomplete/java/completion"
	"github.com/dhamidi/javacomplete/java/index"
)

const (
	scratchHead = "import java.util.*;\nimport java.util.function.*;\nimport java.util.stream.*;\n\nclass Scratch {\n  void run() throws Exception {\n"
	scratchTail = "\n  }\n}\n"
)

func newReplCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Try completion interactively inside a scratch method",
		Long: `Each line is a statement of a scratch method body. Lines ending in ';',
'{' or '}' are kept, so their declarations stay in scope. TAB completes,
any other line lists its candidates. :show prints the scratch source,
:reset empties it.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := &scratch{engine: completion.NewEngine(index.NewWithJDK()), opts: completionOptions()}
			return runRepl(s, os.Stdout)
		},
	}
}

func runRepl(s *scratch, out io.Writer) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:            "java> ",
		HistoryFile:       historyPath(),
		HistorySearchFold: true,
		AutoComplete:      s,
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	for {
		line, err := rl.ReadLine()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		line = strings.TrimSpace(line)
		switch {
		case line == "":
		case line == ":quit":
			return nil
		case line == ":reset":
			s.lines = nil
		case line == ":show":
			text, _ := s.source("")
			fmt.Fprint(out, string(text))
		case strings.HasSuffix(line, ";"), strings.HasSuffix(line, "{"), strings.HasSuffix(line, "}"):
			s.lines = append(s.lines, line)
		default:
			res, err := s.complete(line, len(line))
			if err != nil {
				fmt.Fprintln(out, err)
				continue
			}
			if res == nil {
				continue
			}
			f := textItems{}
			if res.Env != nil {
				f.symtab = res.Env.Symtab()
			}
			writeText(out, completion.RenderAll[item](f, res.Candidates), 72)
		}
	}
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".javacomplete_history")
}

// scratch is a method body built up line by line.
type scratch struct {
	engine *completion.Engine
	opts   completion.Options
	lines  []string
}

// source returns the scratch class with line as its last statement and
// the offset where line starts.
func (s *scratch) source(line string) ([]byte, int) {
	var b strings.Builder
	b.WriteString(scratchHead)
	for _, l := range s.lines {
		b.WriteString("    ")
		b.WriteString(l)
		b.WriteByte('\n')
	}
	b.WriteString("    ")
	start := b.Len()
	b.WriteString(line)
	b.WriteString(scratchTail)
	return []byte(b.String()), start
}

// complete runs a request with the caret at byte pos of line.
func (s *scratch) complete(line string, pos int) (*completion.Result, error) {
	text, start := s.source(line)
	return s.engine.Complete(completion.Request{
		Text:    text,
		File:    "Scratch.java",
		Caret:   start + pos,
		Options: s.opts,
	})
}

// Do completes the word before pos. Readline appends a suffix to what was
// typed, so only candidates that extend it literally are offered.
func (s *scratch) Do(line []rune, pos int) ([][]rune, int) {
	before := string(line[:pos])
	res, err := s.complete(string(line), len(before))
	if err != nil || res == nil || len(res.Candidates) == 0 {
		return nil, 0
	}
	_, start := s.source("")
	offset := res.Candidates[0].Offset - start
	if offset < 0 || offset > len(before) {
		return nil, 0
	}
	typed := before[offset:]

	seen := make(map[string]bool)
	var out [][]rune
	for _, c := range res.Candidates {
		if c.Offset-start != offset {
			continue
		}
		insert := completion.InsertText(c)
		if insert == "" || !strings.HasPrefix(insert, typed) || seen[insert] {
			continue
		}
		seen[insert] = true
		out = append(out, []rune(insert[len(typed):]))
	}
	return out, utf8.RuneCountInString(typed)
}
