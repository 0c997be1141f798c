package vault

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/passvault/internal/common"
	"github.com/dmitrijs2005/passvault/internal/filex"
)

const storeFileName = "credentials.csv"

var storeHeader = []string{"service", "username", "password"}

// Store is the durable collection of encrypted credential records, kept as
// one CSV file inside the vault directory. Records keep insertion order;
// every read returns them in storage order, and rewrites never reorder, so
// positional indexes stay valid between a search and a following delete.
type Store struct {
	path string
}

// NewStore returns a Store over dir. The backing file is created lazily on
// first append.
func NewStore(dir string) *Store {
	return &Store{path: filepath.Join(dir, storeFileName)}
}

// Append encrypts cred under passphrase and appends one row to the store.
// Existing rows are not re-read or re-encrypted.
func (s *Store) Append(passphrase []byte, cred Credential) error {
	enc, err := cred.Encrypt(passphrase)
	if err != nil {
		return err
	}

	isNew := !s.exists()

	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if isNew {
		if err := w.Write(storeHeader); err != nil {
			return err
		}
	}
	if err := w.Write([]string{enc.Service, enc.Username, enc.Secret}); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

// Import encrypts and appends each credential. Partial success is possible:
// rows appended before a failure remain, and the returned count says how
// many made it in.
func (s *Store) Import(creds []Credential, passphrase []byte) (int, error) {
	for n, cred := range creds {
		if err := s.Append(passphrase, cred); err != nil {
			return n, err
		}
	}
	return len(creds), nil
}

// ReadAll returns every encrypted record in storage order without
// decrypting. A missing store file is an empty vault, not an error.
func (s *Store) ReadAll() ([]EncryptedCredential, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening store: %w", err)
	}
	defer f.Close()
	return readAllFrom(f)
}

func readAllFrom(r io.Reader) ([]EncryptedCredential, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = len(storeHeader)

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrCorrupt, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	records := make([]EncryptedCredential, 0, len(rows)-1)
	for _, row := range rows[1:] { // skip header
		records = append(records, EncryptedCredential{Service: row[0], Username: row[1], Secret: row[2]})
	}
	return records, nil
}

// Search returns the credentials whose service or username matches pattern,
// in storage order. Matching is a case-insensitive regular expression. When
// passphrase is non-nil each match is decrypted; otherwise passwords are
// withheld. Zero matches is a success with an empty result.
func (s *Store) Search(passphrase []byte, pattern string) ([]Credential, error) {
	matcher, err := NewMatcher(pattern)
	if err != nil {
		return nil, err
	}

	records, err := s.ReadAll()
	if err != nil {
		return nil, err
	}

	var matches []Credential
	for _, rec := range records {
		if !matcher.Match(rec) {
			continue
		}
		if passphrase == nil {
			matches = append(matches, rec.WithoutPassword())
			continue
		}
		cred, err := rec.Decrypt(passphrase)
		if err != nil {
			return nil, err
		}
		matches = append(matches, cred)
	}
	return matches, nil
}

// Delete removes the records at the given zero-based positions and rewrites
// the store with the remainder, all-or-nothing. Positional matching is what
// keeps duplicate service entries distinguishable. Unknown positions are
// ignored.
func (s *Store) Delete(positions []int) error {
	records, err := s.ReadAll()
	if err != nil {
		return err
	}

	drop := make(map[int]struct{}, len(positions))
	for _, p := range positions {
		drop[p] = struct{}{}
	}

	return filex.ReplaceFile(s.path, func(w io.Writer) error {
		writer := csv.NewWriter(w)
		if err := writer.Write(storeHeader); err != nil {
			return err
		}
		for i, rec := range records {
			if _, ok := drop[i]; ok {
				continue
			}
			if err := writer.Write([]string{rec.Service, rec.Username, rec.Secret}); err != nil {
				return err
			}
		}
		writer.Flush()
		return writer.Error()
	})
}

// RewriteWithNewPassphrase decrypts every record with oldPassphrase,
// re-encrypts it with newPassphrase and streams the result to a temp file
// that atomically replaces the store. The first record that fails to
// decrypt aborts the whole operation with common.ErrIncorrectPassphrase
// before anything destructive happens; the original file is untouched
// unless the final rename succeeds. Returns the number of records rewritten.
func (s *Store) RewriteWithNewPassphrase(oldPassphrase, newPassphrase []byte) (int, error) {
	records, err := s.ReadAll()
	if err != nil {
		return 0, err
	}

	count := 0
	err = filex.ReplaceFile(s.path, func(w io.Writer) error {
		writer := csv.NewWriter(w)
		if err := writer.Write(storeHeader); err != nil {
			return err
		}
		for _, rec := range records {
			cred, err := rec.Decrypt(oldPassphrase)
			if err != nil {
				return err
			}
			reenc, err := cred.Encrypt(newPassphrase)
			if err != nil {
				return err
			}
			if err := writer.Write([]string{reenc.Service, reenc.Username, reenc.Secret}); err != nil {
				return err
			}
			count++
		}
		writer.Flush()
		return writer.Error()
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (s *Store) exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}
