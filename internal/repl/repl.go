// Package repl provides interactive grammar entry for a TTY session with no
// grammar file given on the command line. Grounded on
// github.com/dekarrin/tunaq's internal/input package: a readline.Instance
// wrapped to hand back whole logical units (there, commands; here,
// grammar-production lines) with history and line editing, rather than the
// raw terminal escape sequences a bare os.Stdin read would see.
package repl

import (
	"errors"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

// Reader reads grammar-production lines interactively until the user ends
// entry with a line consisting solely of "." or sends EOF (Ctrl-D).
type Reader struct {
	rl *readline.Instance
}

// NewReader starts a readline session prompting with prompt.
func NewReader(prompt string) (*Reader, error) {
	rl, err := readline.NewEx(&readline.Config{Prompt: prompt})
	if err != nil {
		return nil, err
	}
	return &Reader{rl: rl}, nil
}

// Close releases the underlying readline resources.
func (r *Reader) Close() error {
	return r.rl.Close()
}

// ReadGrammar reads lines until a lone "." line or EOF, and joins them with
// "\n" into the text grammar.Parse expects.
func (r *Reader) ReadGrammar() (string, error) {
	var lines []string
	for {
		line, err := r.rl.Readline()
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, readline.ErrInterrupt) {
				break
			}
			return "", err
		}
		if strings.TrimSpace(line) == "." {
			break
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n"), nil
}
