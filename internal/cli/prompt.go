package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrInputClosed is returned when the input stream ends mid-prompt. Every
// prompt loop terminates on it, so a drained input can never spin.
var ErrInputClosed = errors.New("input closed")

// ErrNotYesNo is returned for answers other than exactly "yes" or "no".
var ErrNotYesNo = errors.New(`answer must be "yes" or "no"`)

// Prompter reads validated answers from a line-oriented input stream.
// Invalid input re-prompts; EOF stops the loop with ErrInputClosed.
type Prompter struct {
	sc  *bufio.Scanner
	out io.Writer
}

// NewPrompter creates a Prompter over the given streams.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{sc: bufio.NewScanner(in), out: out}
}

// Line prints the label and returns the next raw line.
func (p *Prompter) Line(label string) (string, error) {
	fmt.Fprint(p.out, label)
	if !p.sc.Scan() {
		if err := p.sc.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return "", ErrInputClosed
	}
	return p.sc.Text(), nil
}

// NonEmpty re-prompts until the answer contains something besides whitespace.
func (p *Prompter) NonEmpty(label, emptyMsg string) (string, error) {
	for {
		s, err := p.Line(label)
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(s) != "" {
			return s, nil
		}
		fmt.Fprintln(p.out, emptyMsg)
	}
}

// Int re-prompts until the answer parses as an integer.
func (p *Prompter) Int(label string) (int, error) {
	for {
		s, err := p.Line(label)
		if err != nil {
			return 0, err
		}
		n, err := ParseInt(s)
		if err != nil {
			fmt.Fprintln(p.out, "Your input is invalid!")
			continue
		}
		return n, nil
	}
}

// Int32 re-prompts until the answer parses as a 32-bit integer, so an
// out-of-range quantity re-prompts instead of wrapping.
func (p *Prompter) Int32(label string) (int32, error) {
	for {
		s, err := p.Line(label)
		if err != nil {
			return 0, err
		}
		n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 32)
		if err != nil {
			fmt.Fprintln(p.out, "Your input is invalid!")
			continue
		}
		return int32(n), nil
	}
}

// Choice reads a numbered menu selection.
func (p *Prompter) Choice() (int, error) {
	return p.Int("Please make your choice: ")
}

// YesNo re-prompts until the answer is exactly "yes" or "no".
func (p *Prompter) YesNo(label string) (bool, error) {
	for {
		s, err := p.Line(label)
		if err != nil {
			return false, err
		}
		v, err := ParseYesNo(s)
		if err != nil {
			fmt.Fprintln(p.out, "Unrecognized choice!")
			continue
		}
		return v, nil
	}
}

// ParseInt validates an integer answer.
func ParseInt(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}

// ParseYesNo accepts exactly "yes" or "no", nothing looser.
func ParseYesNo(s string) (bool, error) {
	switch strings.TrimSpace(s) {
	case "yes":
		return true, nil
	case "no":
		return false, nil
	}
	return false, ErrNotYesNo
}
