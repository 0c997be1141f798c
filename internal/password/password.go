// Package password generates random passwords with crypto/rand.
package password

import (
	"crypto/rand"
	"errors"
	"math/big"
)

const (
	lowercase = "abcdefghijklmnopqrstuvwxyz"
	uppercase = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digits    = "0123456789"
	symbols   = "!@#$%^&*()_+-=[]{};:,.<>?"

	// DefaultLength is used when the caller does not care.
	DefaultLength = 24

	MinLength = 8
	MaxLength = 128
)

var ErrBadLength = errors.New("password length out of range")

var classes = []string{lowercase, uppercase, digits, symbols}

// Generate returns a random password of the given length drawn from
// lowercase, uppercase, digit and symbol characters. Every character
// class is guaranteed to appear at least once. Length must be between
// MinLength and MaxLength.
func Generate(length int) (string, error) {
	if length < MinLength || length > MaxLength {
		return "", ErrBadLength
	}

	all := lowercase + uppercase + digits + symbols

	out := make([]byte, length)

	// One character from each class first, the rest from the full set.
	for i, class := range classes {
		c, err := pick(class)
		if err != nil {
			return "", err
		}
		out[i] = c
	}
	for i := len(classes); i < length; i++ {
		c, err := pick(all)
		if err != nil {
			return "", err
		}
		out[i] = c
	}

	if err := shuffle(out); err != nil {
		return "", err
	}

	return string(out), nil
}

func pick(charset string) (byte, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
	if err != nil {
		return 0, err
	}
	return charset[n.Int64()], nil
}

// shuffle performs a Fisher-Yates shuffle so the guaranteed class
// characters do not always sit at the front.
func shuffle(b []byte) error {
	for i := len(b) - 1; i > 0; i-- {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return err
		}
		j := n.Int64()
		b[i], b[j] = b[j], b[i]
	}
	return nil
}
