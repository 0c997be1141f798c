// Package slot implements a single-value file-backed store. The master
// passphrase hash and the access token are both process-wide single slots:
// exactly zero or one value exists, and every mutation is a full overwrite.
// Routing all such state through an explicit Store keeps it out of ambient
// globals and makes the empty/occupied distinction testable.
package slot

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/passvault/internal/filex"
)

// ErrEmpty is returned by Load when no value has been stored yet.
var ErrEmpty = errors.New("slot is empty")

// Store persists a single value of type T in one file.
type Store[T any] struct {
	path   string
	encode func(T) ([]byte, error)
	decode func([]byte) (T, error)
}

// New constructs a Store over path with the given codec.
func New[T any](path string, encode func(T) ([]byte, error), decode func([]byte) (T, error)) *Store[T] {
	return &Store[T]{path: path, encode: encode, decode: decode}
}

// Exists reports whether a value is currently stored.
func (s *Store[T]) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Load reads and decodes the stored value. Returns ErrEmpty if nothing has
// been stored yet.
func (s *Store[T]) Load() (T, error) {
	var zero T
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return zero, ErrEmpty
		}
		return zero, fmt.Errorf("reading %s: %w", s.path, err)
	}
	return s.decode(data)
}

// Store encodes v and atomically overwrites the slot file. The previous
// value stays intact if encoding or writing fails.
func (s *Store[T]) Store(v T) error {
	data, err := s.encode(v)
	if err != nil {
		return err
	}
	return filex.ReplaceFile(s.path, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}

// Clear removes the stored value. Clearing an empty slot is not an error.
func (s *Store[T]) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("clearing %s: %w", s.path, err)
	}
	return nil
}
