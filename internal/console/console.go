// Package console is the operator's terminal: line input, yes/no prompts,
// colored output and interrupt delivery.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

var (
	ErrInterrupted = errors.New("interrupted")
	ErrClosed      = errors.New("input closed")
)

type Style int

const (
	StylePlain Style = iota
	StyleSuccess
	StyleNotice
	StyleFailure
	StyleHeading
	StyleCommand
	StyleParam
)

type line struct {
	text string
	err  error
}

type Console struct {
	out        io.Writer
	lines      <-chan line
	interrupts <-chan os.Signal
	styles     map[Style]*color.Color
}

// New starts reading in line by line in the background. Reads block until
// the caller asks for the next line, so nothing is consumed ahead of time
// beyond a single line.
func New(in io.Reader, out io.Writer, interrupts <-chan os.Signal, useColor bool) *Console {
	lines := make(chan line)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			lines <- line{text: scanner.Text()}
		}
		if err := scanner.Err(); err != nil {
			lines <- line{err: err}
		}
	}()

	styles := map[Style]*color.Color{
		StylePlain:   color.New(color.Reset),
		StyleSuccess: color.New(color.FgGreen),
		StyleNotice:  color.New(color.FgYellow),
		StyleFailure: color.New(color.FgRed),
		StyleHeading: color.New(color.FgGreen, color.Bold),
		StyleCommand: color.New(color.FgBlue),
		StyleParam:   color.New(color.FgCyan),
	}
	for _, c := range styles {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	styles[StylePlain].DisableColor()

	return &Console{
		out:        out,
		lines:      lines,
		interrupts: interrupts,
		styles:     styles,
	}
}

// ReadLine waits for the next input line, an interrupt or ctx.
func (c *Console) ReadLine(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-c.interrupts:
		return "", ErrInterrupted
	case l, ok := <-c.lines:
		if !ok {
			return "", ErrClosed
		}
		if l.err != nil {
			return "", fmt.Errorf("failed to read input: %w", l.err)
		}
		return l.text, nil
	}
}

// Prompt writes question without a newline and returns the trimmed answer.
func (c *Console) Prompt(ctx context.Context, question string) (string, error) {
	fmt.Fprint(c.out, question)
	answer, err := c.ReadLine(ctx)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(answer), nil
}

// Confirm asks a yes/no question. Only y or yes count as yes. When strict,
// an answer that is neither yes nor no is reported as invalid.
func (c *Console) Confirm(ctx context.Context, question string, strict bool) (bool, error) {
	answer, err := c.Prompt(ctx, question)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	}
	if strict {
		c.Failure("invalid input, please try again.")
	}
	return false, nil
}

// Sprint renders a in style without writing it.
func (c *Console) Sprint(style Style, a ...any) string {
	return c.style(style).Sprint(a...)
}

// Print writes one line in style.
func (c *Console) Print(style Style, format string, a ...any) {
	c.style(style).Fprintln(c.out, fmt.Sprintf(format, a...))
}

func (c *Console) Success(format string, a ...any) { c.Print(StyleSuccess, format, a...) }
func (c *Console) Notice(format string, a ...any)  { c.Print(StyleNotice, format, a...) }
func (c *Console) Failure(format string, a ...any) { c.Print(StyleFailure, format, a...) }
func (c *Console) Heading(format string, a ...any) { c.Print(StyleHeading, format, a...) }
func (c *Console) Command(format string, a ...any) { c.Print(StyleCommand, format, a...) }

func (c *Console) Plain(format string, a ...any) {
	fmt.Fprintf(c.out, format+"\n", a...)
}

func (c *Console) style(s Style) *color.Color {
	if st, ok := c.styles[s]; ok {
		return st
	}
	return c.styles[StylePlain]
}
