package iocli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

type Stdio struct {
	in     *bufio.Reader
	out    io.Writer
	stdin  *os.File
	prompt bool
}

// NewStdio creates IO over os.Stdin and os.Stdout
func NewStdio() IO {
	return &Stdio{
		in:     bufio.NewReader(os.Stdin),
		out:    os.Stdout,
		stdin:  os.Stdin,
		prompt: true,
	}
}

// NewStream creates IO over arbitrary streams; IsTerminal is always false
func NewStream(in io.Reader, out io.Writer) IO {
	return &Stdio{
		in:  bufio.NewReader(in),
		out: out,
	}
}

func (s *Stdio) Println(a ...any) {
	_, _ = fmt.Fprintln(s.out, a...)
}

func (s *Stdio) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(s.out, format, a...)
}

func (s *Stdio) Write(p []byte) (int, error) {
	return s.out.Write(p)
}

// ReadInput печатает prompt и читает одну строку. Reader общий для всех
// вызовов, поэтому буферизованный ввод не теряется между prompt'ами.
func (s *Stdio) ReadInput(prompt string) (string, error) {
	s.Printf("%s", prompt)
	input, err := s.in.ReadString('\n')
	if err != nil && (err != io.EOF || input == "") {
		return "", err
	}
	return strings.TrimSpace(input), nil
}

// IsTerminal reports whether stdin is an interactive terminal
func (s *Stdio) IsTerminal() bool {
	if s.stdin == nil || !s.prompt {
		return false
	}
	return term.IsTerminal(int(s.stdin.Fd()))
}
