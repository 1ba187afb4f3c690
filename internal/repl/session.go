// Package repl runs the operator's read/execute loop on top of a command
// router and a console.
package repl

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"papapizza/internal/command"
	"papapizza/internal/console"
	"papapizza/internal/logger"
)

// ErrQuit is returned by a command to end the session.
var ErrQuit = errors.New("quit")

type Session struct {
	router  *command.Router
	console *console.Console
	log     *logger.Logger

	name    string
	tagline string
}

func NewSession(c *console.Console, log *logger.Logger, name, tagline string) *Session {
	return &Session{
		console: c,
		log:     log,
		name:    name,
		tagline: tagline,
	}
}

// Run prints the banner, executes initial if it is not blank and then
// reads commands for router until the operator quits or input ends.
func (s *Session) Run(ctx context.Context, router *command.Router, initial string) error {
	s.router = router
	s.log.Info("session_started", "session started")
	defer s.log.Info("session_ended", "session ended")

	s.banner()

	if strings.TrimSpace(initial) != "" {
		if done, err := s.execute(ctx, initial); done {
			return err
		}
	}

	for {
		line, err := s.console.Prompt(ctx, "\n"+s.console.Sprint(console.StyleCommand, "> "))
		switch {
		case errors.Is(err, console.ErrClosed):
			return nil
		case errors.Is(err, console.ErrInterrupted):
			if s.interrupted(ctx) {
				return nil
			}
			continue
		case err != nil:
			return err
		}

		if done, err := s.execute(ctx, line); done {
			return err
		}
	}
}

// execute runs one line and reports whether the session is over.
func (s *Session) execute(ctx context.Context, line string) (bool, error) {
	s.log.Debug("command_received", "executing command", slog.String("line", line))

	err := s.router.Execute(ctx, line)

	var arity *command.ArityError
	switch {
	case err == nil:
	case errors.Is(err, ErrQuit), errors.Is(err, console.ErrClosed):
		return true, nil
	case errors.Is(err, console.ErrInterrupted):
		return s.interrupted(ctx), nil
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return true, err
	case errors.Is(err, command.ErrUnknownCommand):
		s.console.Failure("unknown command. type 'help'.")
	case errors.As(err, &arity):
		s.console.Failure("%s", arity.Error())
	default:
		s.log.Error("command_failed", "command failed", err, slog.String("line", line))
		s.console.Failure("something went wrong: %v", err)
	}
	return false, nil
}

// interrupted runs the quit confirmation after Ctrl-C. A second interrupt
// while it is waiting ends the session.
func (s *Session) interrupted(ctx context.Context) bool {
	s.log.Info("interrupt_received", "interrupt received")
	s.console.Plain("")

	quit, err := s.confirmQuit(ctx)
	if err != nil {
		if errors.Is(err, console.ErrInterrupted) {
			s.console.Notice("next time, use quit!")
		}
		return true
	}
	return quit
}

func (s *Session) confirmQuit(ctx context.Context) (bool, error) {
	ok, err := s.console.Confirm(ctx, s.console.Sprint(console.StyleNotice, "are you sure you want to quit? (y/N): "), true)
	if err != nil {
		return false, err
	}
	if ok {
		s.console.Success("okay, see ya!")
		return true, nil
	}
	s.console.Success("okay, continuing...")
	return false, nil
}

// Quit handles `quit`.
func (s *Session) Quit(ctx context.Context, args []string) error {
	ok, err := s.confirmQuit(ctx)
	if errors.Is(err, console.ErrInterrupted) {
		s.console.Notice("next time, use quit!")
		return ErrQuit
	}
	if err != nil {
		return err
	}
	if ok {
		return ErrQuit
	}
	return nil
}

// Exit handles `exit`, which only points at `quit`.
func (s *Session) Exit(ctx context.Context, args []string) error {
	s.console.Notice("use quit to exit")
	return nil
}

// Help lists every registered command with its parameters.
func (s *Session) Help(ctx context.Context, args []string) error {
	cmds := s.router.Commands()

	width := 0
	for _, cmd := range cmds {
		if n := len(cmd.Usage()); n > width {
			width = n
		}
	}

	s.console.Heading("available commands:")
	for _, cmd := range cmds {
		usage := cmd.Usage()
		params := strings.TrimPrefix(usage, cmd.Name)
		pad := strings.Repeat(" ", width-len(usage))
		s.console.Plain("%s%s%s  %s",
			s.console.Sprint(console.StyleCommand, cmd.Name),
			s.console.Sprint(console.StyleParam, params),
			pad,
			cmd.Description,
		)
	}
	return nil
}

func (s *Session) banner() {
	s.console.Heading("\nwelcome to %s 🍕,\n%s\n", s.name, s.tagline)
	s.console.Plain("%s", strings.Join([]string{
		"this is a simple command line interface for ordering pizza.",
		"for more information, type 'help' or 'h' at any time.",
		"to exit the program, type 'quit'.",
	}, "\n"))
}
