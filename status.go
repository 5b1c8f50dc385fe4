package tracker

import (
	"errors"
	"fmt"
	"log/slog"
)

var (
	ErrNotFound = Statusf(404, "Not found")

	ErrUnknownStage     = Statusf(500, "Unknown proposal stage")
	ErrMissingChampions = Statusf(500, "Proposal has no champions")
	ErrInvalidBaseURL   = Statusf(500, "Invalid README base URL")
	ErrInvalidVariant   = Statusf(400, "Unknown theme variant")
)

var _ error = &statusError{}

type statusError struct {
	Code int
	Text string

	WrappedError error
}

func (s *statusError) LogValue() slog.Value {
	if s == nil {
		return slog.Value{}
	}
	if s.WrappedError != nil {
		return slog.StringValue(s.Text + ": " + s.WrappedError.Error())
	}
	return slog.StringValue(s.Text)
}

func (s *statusError) Error() string {
	if s.WrappedError != nil {
		return s.Text + ": " + s.WrappedError.Error()
	}
	return s.Text
}

func (s *statusError) Unwrap() error {
	return s.WrappedError
}

func (s *statusError) Is(target error) bool {
	if err, ok := target.(*statusError); ok {
		return err.Text == s.Text
	}
	return false
}

func Statusf(status int, format string, args ...any) error {
	return &statusError{Code: status, Text: fmt.Sprintf(format, args...)}
}

// WrapStatus keeps the text and code of the sentinel so errors.Is still matches it,
// while carrying the detail in the wrapped error.
func WrapStatus(sentinel error, detail error) error {
	var se *statusError
	if !errors.As(sentinel, &se) {
		return fmt.Errorf("%w: %w", sentinel, detail)
	}
	return &statusError{Code: se.Code, Text: se.Text, WrappedError: detail}
}

func ErrorCode(err error) int {
	if err == nil {
		return 200
	}
	var err2 *statusError
	if errors.As(err, &err2) {
		return err2.Code
	}
	return 500
}
