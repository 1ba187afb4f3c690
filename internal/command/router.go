// Package command maps tokenized input lines to registered operations.
//
// Commands have multi-word names ("order item add"). An input line resolves
// to the command with the longest name that prefixes its tokens; the tokens
// after the name are passed to the command as positional arguments after an
// arity check.
package command

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrArityMismatch  = errors.New("invalid number of arguments")
)

// HandlerFunc runs a command with its positional arguments.
type HandlerFunc func(ctx context.Context, args []string) error

// Param describes one positional parameter for arity checks and help.
type Param struct {
	Name     string
	Optional bool
	// Default is shown in help for optional parameters.
	Default string
}

// Command is a registered command descriptor, built once at registration.
type Command struct {
	Name        string
	Description string
	Params      []Param

	tokens  []string
	minArgs int
	maxArgs int
	run     HandlerFunc
}

func (c *Command) MinArgs() int { return c.minArgs }
func (c *Command) MaxArgs() int { return c.maxArgs }

// Usage renders the command name followed by its parameters, e.g.
// "order item add <itemName (optional)> <quantity 1>".
func (c *Command) Usage() string {
	parts := []string{c.Name}
	for _, p := range c.Params {
		switch {
		case !p.Optional:
			parts = append(parts, "<"+p.Name+">")
		case p.Default != "":
			parts = append(parts, "<"+p.Name+" "+p.Default+">")
		default:
			parts = append(parts, "<"+p.Name+" (optional)>")
		}
	}
	return strings.Join(parts, " ")
}

// ArityError reports an argument count outside the accepted range.
type ArityError struct {
	Command string
	Min     int
	Max     int
	Got     int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("invalid number of arguments for command '%s' (expected %d-%d, got %d)",
		e.Command, e.Min, e.Max, e.Got)
}

func (e *ArityError) Is(target error) bool {
	return target == ErrArityMismatch
}

// Router holds the command table. It performs no I/O of its own.
type Router struct {
	commands []*Command
}

func NewRouter() *Router {
	return &Router{}
}

// Register adds a command. It panics on an empty or duplicate name and on a
// required parameter following an optional one, since both are programming
// errors in the command table.
func (r *Router) Register(name, description string, params []Param, run HandlerFunc) *Command {
	tokens := strings.Fields(strings.ToLower(name))
	if len(tokens) == 0 {
		panic("command: empty command name")
	}
	if run == nil {
		panic(fmt.Sprintf("command: nil handler for %q", name))
	}
	for _, c := range r.commands {
		if equalTokens(c.tokens, tokens) {
			panic(fmt.Sprintf("command: duplicate command %q", name))
		}
	}

	minArgs := 0
	for i, p := range params {
		if p.Optional {
			continue
		}
		if i != minArgs {
			panic(fmt.Sprintf("command: required parameter %q of %q follows an optional one", p.Name, name))
		}
		minArgs++
	}

	cmd := &Command{
		Name:        strings.Join(tokens, " "),
		Description: description,
		Params:      params,
		tokens:      tokens,
		minArgs:     minArgs,
		maxArgs:     len(params),
		run:         run,
	}
	r.commands = append(r.commands, cmd)
	return cmd
}

// Commands returns the table in registration order.
func (r *Router) Commands() []*Command {
	cmds := make([]*Command, len(r.commands))
	copy(cmds, r.commands)
	return cmds
}

// Resolve finds the command for tokens and returns the remaining tokens as
// arguments. The longest matching name wins; ties go to the earlier
// registration.
func (r *Router) Resolve(tokens []string) (*Command, []string, error) {
	var best *Command
	for _, c := range r.commands {
		if !hasPrefix(tokens, c.tokens) {
			continue
		}
		if best == nil || len(c.tokens) > len(best.tokens) {
			best = c
		}
	}
	if best == nil {
		return nil, nil, ErrUnknownCommand
	}
	return best, tokens[len(best.tokens):], nil
}

// Execute tokenizes line, resolves it, checks arity and runs the command.
// An empty line is a no-op.
func (r *Router) Execute(ctx context.Context, line string) error {
	tokens := Tokenize(line)
	if len(tokens) == 0 {
		return nil
	}

	cmd, args, err := r.Resolve(tokens)
	if err != nil {
		return err
	}
	if len(args) < cmd.minArgs || len(args) > cmd.maxArgs {
		return &ArityError{Command: cmd.Name, Min: cmd.minArgs, Max: cmd.maxArgs, Got: len(args)}
	}
	return cmd.run(ctx, args)
}

// Tokenize splits line on whitespace. Double quotes group words into one
// token, so multi-word item names can be passed as a single argument. An
// unterminated quote runs to the end of the line.
func Tokenize(line string) []string {
	var (
		tokens  []string
		current strings.Builder
		inQuote bool
		started bool
	)
	flush := func() {
		if started {
			tokens = append(tokens, current.String())
		}
		current.Reset()
		started = false
	}

	for _, r := range line {
		switch {
		case r == '"':
			inQuote = !inQuote
			started = true
		case !inQuote && (r == ' ' || r == '\t' || r == '\n' || r == '\r'):
			flush()
		default:
			current.WriteRune(r)
			started = true
		}
	}
	flush()
	return tokens
}

func hasPrefix(tokens, name []string) bool {
	if len(tokens) < len(name) {
		return false
	}
	for i := range name {
		if !strings.EqualFold(tokens[i], name[i]) {
			return false
		}
	}
	return true
}

func equalTokens(a, b []string) bool {
	return len(a) == len(b) && hasPrefix(a, b)
}
