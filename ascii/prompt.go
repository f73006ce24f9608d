package ascii

import (
	"errors"
	"fmt"
	"io"

	"github.com/chazu/intcode/intcode"
	"github.com/chzyer/readline"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("intcode.ascii")

// LineReader reads one line of input without its trailing newline.
type LineReader interface {
	Readline() (string, error)
}

// Prompt is a source that reads a whole line from a LineReader whenever
// the machine asks for input and has nothing buffered, then feeds it one
// character at a time followed by a newline.
type Prompt struct {
	r   LineReader
	buf []int64
}

// NewPrompt returns a Prompt reading from r.
func NewPrompt(r LineReader) *Prompt {
	return &Prompt{r: r}
}

// Next returns the next character code. End of input and an interrupted
// line both report intcode.ErrInputExhausted.
func (p *Prompt) Next() (int64, error) {
	if len(p.buf) == 0 {
		line, err := p.r.Readline()
		switch {
		case errors.Is(err, io.EOF):
			return 0, fmt.Errorf("end of input: %w", intcode.ErrInputExhausted)
		case errors.Is(err, readline.ErrInterrupt):
			return 0, fmt.Errorf("interrupted: %w", intcode.ErrInputExhausted)
		case err != nil:
			return 0, err
		}
		log.Debugf("input line %q", line)
		for i := 0; i < len(line); i++ {
			p.buf = append(p.buf, int64(line[i]))
		}
		p.buf = append(p.buf, '\n')
	}
	v := p.buf[0]
	p.buf = p.buf[1:]
	return v, nil
}

// Console is an interactive terminal LineReader with line editing and
// history.
type Console struct {
	rl *readline.Instance
}

// NewConsole opens the terminal. An empty historyFile disables history.
func NewConsole(prompt, historyFile string) (*Console, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		HistoryFile:     historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start readline: %w", err)
	}
	return &Console{rl: rl}, nil
}

// Readline reads one line from the terminal.
func (c *Console) Readline() (string, error) {
	return c.rl.Readline()
}

// Stdout returns a writer that does not corrupt the prompt line.
func (c *Console) Stdout() io.Writer {
	return c.rl.Stdout()
}

// Close restores the terminal.
func (c *Console) Close() error {
	return c.rl.Close()
}
