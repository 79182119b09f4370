// Package shell is a line-oriented front end for the address book.
//
// Each input line is one command:
//
//	add|a NAME [; PHONES [; EMAILS]]   phones and emails separated by spaces or commas
//	find|f TERM
//	delete|d NAME
//	edit|e OLD NAME => NEW NAME
//	phone NAME OLD => NEW
//	email NAME OLD => NEW
//	show|p
//	save|s
//	help|h
//	quit|q                             saves and exits
//
// Validation and lookup failures are printed and the loop goes on. The book
// is saved when the input ends or on quit; that save error is returned.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/abook/pkg/core"
)

// DefaultPrompt is the prompt printed on interactive terminals.
const DefaultPrompt = "abook> "

// Shell reads commands from in and writes results to out.
type Shell struct {
	svc    *core.Service
	in     io.Reader
	out    io.Writer
	prompt string
	logger *slog.Logger
}

// Option configures a Shell.
type Option func(*Shell)

// WithPrompt prints p before every command. An empty prompt (the default)
// suits piped input.
func WithPrompt(p string) Option {
	return func(s *Shell) {
		s.prompt = p
	}
}

// WithLogger sets the logger used for command tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Shell) {
		s.logger = logger
	}
}

// New creates a shell over svc. The book should already be loaded.
func New(svc *core.Service, in io.Reader, out io.Writer, opts ...Option) *Shell {
	s := &Shell{
		svc:    svc,
		in:     in,
		out:    out,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type handler func(ctx context.Context, s *Shell, args string) error

// errQuit ends the loop; Run then saves.
var errQuit = errors.New("quit")

var commands = map[string]handler{
	"add":    cmdAdd,
	"a":      cmdAdd,
	"find":   cmdFind,
	"f":      cmdFind,
	"delete": cmdDelete,
	"d":      cmdDelete,
	"edit":   cmdEditName,
	"e":      cmdEditName,
	"phone":  cmdEditPhone,
	"email":  cmdEditEmail,
	"show":   cmdShow,
	"p":      cmdShow,
	"save":   cmdSave,
	"s":      cmdSave,
	"help":   cmdHelp,
	"h":      cmdHelp,
	"quit":   cmdQuit,
	"q":      cmdQuit,
}

// Run processes commands until quit, end of input or ctx cancellation.
// A cancelled context returns ctx.Err() without saving, even while a read
// is still pending.
func (s *Shell) Run(ctx context.Context) error {
	done := make(chan struct{})
	defer close(done)
	lines, readErr := s.readLines(ctx, done)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.printPrompt()

		var line string
		select {
		case <-ctx.Done():
			return ctx.Err()
		case l, ok := <-lines:
			if !ok {
				// The reader also stops early on cancellation.
				if err := ctx.Err(); err != nil {
					return err
				}
				return s.endOfInput(ctx, readErr)
			}
			line = strings.TrimSpace(l)
		}
		if line == "" {
			continue
		}
		word, args, _ := strings.Cut(line, " ")
		word = strings.ToLower(word)
		args = strings.TrimSpace(args)

		h, ok := commands[word]
		if !ok {
			s.printf("Unknown command %q. Type help for the list of commands.\n", word)
			continue
		}

		s.logger.Debug("shell command", "command", word)
		err := h(ctx, s, args)
		switch {
		case errors.Is(err, errQuit):
			return s.saveOnExit(ctx)
		case err != nil:
			s.printf("Error: %v\n", err)
		}
	}
}

// readLines scans the input in the background. The error channel holds the
// scanner error once the line channel is closed at end of input.
func (s *Shell) readLines(ctx context.Context, done <-chan struct{}) (<-chan string, <-chan error) {
	lines := make(chan string)
	errc := make(chan error, 1)
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(lines)
		scanner := bufio.NewScanner(s.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				return nil
			case <-ctx.Done():
				return nil
			}
		}
		errc <- scanner.Err()
		return nil
	})
	return lines, errc
}

func (s *Shell) endOfInput(ctx context.Context, readErr <-chan error) error {
	if err := <-readErr; err != nil {
		return fmt.Errorf("failed to read command: %w", err)
	}
	if s.prompt != "" {
		s.printf("\n")
	}
	return s.saveOnExit(ctx)
}

func (s *Shell) printPrompt() {
	if s.prompt != "" {
		fmt.Fprint(s.out, s.prompt)
	}
}

func (s *Shell) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

func (s *Shell) saveOnExit(ctx context.Context) error {
	if !s.svc.Dirty() {
		return nil
	}
	if err := s.svc.Save(ctx); err != nil {
		return err
	}
	s.printf("Address book saved.\n")
	return nil
}

func cmdAdd(_ context.Context, s *Shell, args string) error {
	parts := strings.SplitN(args, ";", 3)
	name := parts[0]
	var phones, emails []string
	if len(parts) > 1 {
		phones = splitList(parts[1])
	}
	if len(parts) > 2 {
		emails = splitList(parts[2])
	}

	rec, err := s.svc.CreateRecord(name, phones, emails)
	if err != nil {
		return err
	}
	s.svc.Add(rec)
	s.printf("Record added.\n")
	return nil
}

func cmdFind(_ context.Context, s *Shell, args string) error {
	if args == "" {
		return errors.New("usage: find TERM")
	}
	found := s.svc.Find(args)
	if len(found) == 0 {
		s.printf("No records found.\n")
		return nil
	}
	for _, rec := range found {
		s.printf("%s\n", rec)
	}
	return nil
}

func cmdDelete(_ context.Context, s *Shell, args string) error {
	if args == "" {
		return errors.New("usage: delete NAME")
	}
	if s.svc.Delete(args) {
		s.printf("Record deleted: %s.\n", args)
	} else {
		s.printf("No record with the name %s exists.\n", args)
	}
	return nil
}

func cmdEditName(_ context.Context, s *Shell, args string) error {
	old, next, ok := splitArrow(args)
	if !ok {
		return errors.New("usage: edit OLD NAME => NEW NAME")
	}
	if err := s.svc.EditName(old, next); err != nil {
		return err
	}
	s.printf("Record updated.\n")
	return nil
}

func cmdEditPhone(_ context.Context, s *Shell, args string) error {
	name, old, next, ok := splitFieldEdit(args)
	if !ok {
		return errors.New("usage: phone NAME OLD => NEW")
	}
	if err := s.svc.EditPhone(name, old, next); err != nil {
		return err
	}
	s.printf("Phone number updated.\n")
	return nil
}

func cmdEditEmail(_ context.Context, s *Shell, args string) error {
	name, old, next, ok := splitFieldEdit(args)
	if !ok {
		return errors.New("usage: email NAME OLD => NEW")
	}
	if err := s.svc.EditEmail(name, old, next); err != nil {
		return err
	}
	s.printf("Email address updated.\n")
	return nil
}

func cmdShow(_ context.Context, s *Shell, _ string) error {
	all := s.svc.ListAll()
	if len(all) == 0 {
		s.printf("Address book is empty.\n")
		return nil
	}
	for _, line := range all {
		s.printf("%s\n", line)
	}
	return nil
}

func cmdSave(ctx context.Context, s *Shell, _ string) error {
	if err := s.svc.Save(ctx); err != nil {
		return err
	}
	s.printf("Address book saved.\n")
	return nil
}

func cmdHelp(_ context.Context, s *Shell, _ string) error {
	s.printf(`Commands:
  add|a NAME [; PHONES [; EMAILS]]  add or replace a contact
  find|f TERM                       search names, phones and emails
  delete|d NAME                     delete a contact
  edit|e OLD NAME => NEW NAME       rename a contact
  phone NAME OLD => NEW             replace a phone number
  email NAME OLD => NEW             replace an email address
  show|p                            list all contacts
  save|s                            save the address book
  help|h                            show this help
  quit|q                            save and exit
`)
	return nil
}

func cmdQuit(context.Context, *Shell, string) error {
	return errQuit
}

// splitList splits "123456789, 987654321" or "a@b.c d@e.f" into values.
func splitList(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
}

func splitArrow(args string) (string, string, bool) {
	left, right, ok := strings.Cut(args, "=>")
	left, right = strings.TrimSpace(left), strings.TrimSpace(right)
	if !ok || left == "" || right == "" {
		return "", "", false
	}
	return left, right, true
}

// splitFieldEdit parses "NAME OLD => NEW". NAME may contain spaces; OLD is
// the last word before the arrow.
func splitFieldEdit(args string) (name, old, next string, ok bool) {
	left, next, ok := splitArrow(args)
	if !ok {
		return "", "", "", false
	}
	i := strings.LastIndexAny(left, " \t")
	if i < 0 {
		return "", "", "", false
	}
	name, old = strings.TrimSpace(left[:i]), left[i+1:]
	if name == "" || old == "" {
		return "", "", "", false
	}
	return name, old, next, true
}
