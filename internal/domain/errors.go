package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidAnswer   = errors.New("invalid answer")
	ErrDegenerateScore = errors.New("degenerate score")
	ErrProfileNotFound = errors.New("profile not found")
	ErrUnknownContent  = errors.New("unknown content")
)

// InvalidAnswerError describe la respuesta que impidio calcular la constitucion.
type InvalidAnswerError struct {
	Trait  TraitKey
	Value  string
	Reason string
}

func (e *InvalidAnswerError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid answer for %s: %s", e.Trait, e.Reason)
	}
	return fmt.Sprintf("invalid answer %q for %s: %s", e.Value, e.Trait, e.Reason)
}

func (e *InvalidAnswerError) Unwrap() error { return ErrInvalidAnswer }

// DegenerateScoreError se devuelve cuando el total agregado es cero.
type DegenerateScoreError struct {
	Raw DoshaVector
}

func (e *DegenerateScoreError) Error() string {
	return fmt.Sprintf("degenerate score: total of %+v is zero", e.Raw)
}

func (e *DegenerateScoreError) Unwrap() error { return ErrDegenerateScore }
