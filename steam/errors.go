package steam

import (
	"errors"
	"fmt"
)

var (
	// ErrGameNotFound is returned when a game name cannot be matched against
	// the public catalog.
	ErrGameNotFound = errors.New("no matching game in the steam catalog")
	// ErrGameNotOwned is returned when a catalog appid is not present in a
	// user's owned games.
	ErrGameNotOwned = errors.New("user does not own that game")
)

// NoResultError means the API returned nothing at all for a call.
type NoResultError struct {
	Where string
}

func (e NoResultError) Error() string {
	return fmt.Sprintf("%s: didn't get a result", e.Where)
}

// MissingKeyError means an expected key was absent from a response document,
// or held an empty/zero value.
type MissingKeyError struct {
	Where string
	Key   string
	Doc   Document
}

func (e MissingKeyError) Error() string {
	return fmt.Sprintf("%s: expected key %s. Details: %v", e.Where, e.Key, e.Doc)
}

// UnexpectedValueError means a key was present but did not hold the value an
// operation requires, eg. a success flag that isn't 1. It carries both sides
// of the comparison for diagnosis.
type UnexpectedValueError struct {
	Where    string
	Key      string
	Expected interface{}
	Actual   interface{}
	Doc      Document
}

func (e UnexpectedValueError) Error() string {
	return fmt.Sprintf("%s: expected value %v for key %s, got %v. Details: %v",
		e.Where, e.Expected, e.Key, e.Actual, e.Doc)
}
