package ascii

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/chazu/intcode/intcode"
	"github.com/chzyer/readline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// upcase echoes one line with lower case letters shifted to upper case,
// then emits 1000 plus the number of letters it changed.
var upcase = intcode.MustParse(
	"3,100," + // 0: in c
		"1008,100,10,101," + // 2: nl = c == '\n'
		"1005,101,29," + // 6: if nl goto 29
		"1007,100,97,101," + // 9: below = c < 'a'
		"1005,101,24," + // 13: if below goto 24
		"1001,100,-32,100," + // 16: c -= 32
		"1001,102,1,102," + // 20: count++
		"4,100," + // 24: out c
		"1105,1,0," + // 26: goto 0
		"104,10," + // 29: out '\n'
		"1001,102,1000,103," + // 31: r = count + 1000
		"4,103," + // 35: out r
		"99", // 37
)

func TestRoundTrip(t *testing.T) {
	var sb strings.Builder
	out := NewOutput(&sb)
	m := intcode.New(upcase)

	_, err := m.Execute(Lines("Hello, world"), out)
	require.NoError(t, err)
	assert.Equal(t, "HELLO, WORLD\n", sb.String())

	v, ok := out.Result()
	require.True(t, ok)
	assert.Equal(t, int64(1009), v)
	assert.Equal(t, []int64{1009}, out.Results())
}

func TestInput(t *testing.T) {
	q := Input("AB\n")
	var got []int64
	for q.Len() > 0 {
		v, err := q.Next()
		require.NoError(t, err)
		got = append(got, v)
	}
	assert.Equal(t, []int64{'A', 'B', '\n'}, got)

	assert.Equal(t, 6, Lines("ab", "c", "").Len())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestOutput(t *testing.T) {
	var sb strings.Builder
	out := NewOutput(&sb)
	for _, v := range []int64{'o', 'k', -5, 19349722} {
		assert.False(t, out.Emit(v), "Output never suspends")
	}
	assert.Equal(t, "ok", sb.String())
	assert.Equal(t, []int64{-5, 19349722}, out.Results())
	assert.NoError(t, out.Err())

	out = NewOutput(failingWriter{})
	out.Emit('x')
	out.Emit(300)
	assert.EqualError(t, out.Err(), "disk full")
	assert.Equal(t, []int64{300}, out.Results())

	out = NewOutput(nil)
	out.Emit('x')
	_, ok := out.Result()
	assert.False(t, ok)
}

type scriptReader struct {
	lines []string
	err   error
}

func (r *scriptReader) Readline() (string, error) {
	if len(r.lines) == 0 {
		return "", r.err
	}
	line := r.lines[0]
	r.lines = r.lines[1:]
	return line, nil
}

func TestPrompt(t *testing.T) {
	p := NewPrompt(&scriptReader{lines: []string{"hi", ""}, err: io.EOF})

	var got []int64
	for {
		v, err := p.Next()
		if err != nil {
			assert.ErrorIs(t, err, intcode.ErrInputExhausted)
			break
		}
		got = append(got, v)
	}
	assert.Equal(t, []int64{'h', 'i', '\n', '\n'}, got)

	p = NewPrompt(&scriptReader{err: readline.ErrInterrupt})
	_, err := p.Next()
	assert.ErrorIs(t, err, intcode.ErrInputExhausted)

	boom := errors.New("boom")
	p = NewPrompt(&scriptReader{err: boom})
	_, err = p.Next()
	assert.ErrorIs(t, err, boom)
}

func TestPromptDrivesMachine(t *testing.T) {
	var sb strings.Builder
	out := NewOutput(&sb)
	m := intcode.New(upcase)

	_, err := m.Execute(NewPrompt(&scriptReader{lines: []string{"go"}, err: io.EOF}), out)
	require.NoError(t, err)
	assert.Equal(t, "GO\n", sb.String())
	assert.Equal(t, []int64{1002}, out.Results())
}
