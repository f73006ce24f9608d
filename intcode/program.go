package intcode

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Parse reads a program in its text form: signed decimal integers
// separated by commas. Whitespace around each value is ignored, so a
// trailing newline is fine. An empty value between two commas is an error.
func Parse(text string) ([]int64, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyProgram
	}
	tokens := strings.Split(text, ",")
	program := make([]int64, 0, len(tokens))
	for i, tok := range tokens {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			return nil, &ParseError{Index: i, Token: tok, Err: errors.New("empty value")}
		}
		v, err := strconv.ParseInt(tok, 10, 64)
		if err != nil {
			var numErr *strconv.NumError
			if errors.As(err, &numErr) {
				err = numErr.Err
			}
			return nil, &ParseError{Index: i, Token: tok, Err: err}
		}
		program = append(program, v)
	}
	return program, nil
}

// MustParse is like Parse but panics on error. It is intended for
// literal programs in tests and examples.
func MustParse(text string) []int64 {
	program, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return program
}

// ReadProgram reads r to the end and parses it.
func ReadProgram(r io.Reader) ([]int64, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read program: %w", err)
	}
	return Parse(string(data))
}

// LoadProgram reads and parses the program file at path.
func LoadProgram(path string) ([]int64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read program: %w", err)
	}
	program, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return program, nil
}

// Format renders a program in its comma-separated text form.
func Format(program []int64) string {
	var sb strings.Builder
	for i, v := range program {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.FormatInt(v, 10))
	}
	return sb.String()
}
