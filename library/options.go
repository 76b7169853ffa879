package library

import (
	"errors"
	"io"
	"log/slog"
)

// Logger receives operational messages. *slog.Logger satisfies it.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Option configures a Service.
type Option func(*Service) error

// WithPolicy replaces the default circulation rules.
func WithPolicy(p Policy) Option {
	return func(s *Service) error {
		if err := p.Validate(); err != nil {
			return err
		}
		s.policy = p
		return nil
	}
}

// WithClock sets the time source used for checkout, due and return dates.
func WithClock(c Clock) Option {
	return func(s *Service) error {
		if c == nil {
			return errors.New("clock cannot be nil")
		}
		s.clock = c
		return nil
	}
}

// WithLogger sets the logger. Checkouts, returns and catalog changes are
// logged at Debug, silent overwrites at Warn.
func WithLogger(l Logger) Option {
	return func(s *Service) error {
		if l == nil {
			return errors.New("logger cannot be nil")
		}
		s.logger = l
		return nil
	}
}

// WithCatalog seeds the catalog instead of DefaultCatalog. Pass no books for
// an empty library.
func WithCatalog(books ...Book) Option {
	return func(s *Service) error {
		s.seed = books
		return nil
	}
}

func discardLogger() Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
