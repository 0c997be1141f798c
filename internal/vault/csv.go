package vault

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// ReadCredentialsCSV parses a plaintext credential export: a header row
// `service,username,password` followed by one record per row. The caller
// decides what to do with the plaintext (typically Store.Import, which
// encrypts on the way in).
func ReadCredentialsCSV(r io.Reader) ([]Credential, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 3

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing CSV: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	if !strings.EqualFold(rows[0][0], "service") {
		return nil, fmt.Errorf("parsing CSV: expected header service,username,password")
	}

	creds := make([]Credential, 0, len(rows)-1)
	for _, row := range rows[1:] {
		creds = append(creds, Credential{Service: row[0], Username: row[1], Password: row[2]})
	}
	return creds, nil
}

// WriteCredentialsCSV writes credentials as a plaintext CSV with the
// standard header. The output contains decrypted passwords; it is the
// caller's responsibility to put it somewhere safe.
func WriteCredentialsCSV(w io.Writer, creds []Credential) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"service", "username", "password"}); err != nil {
		return err
	}
	for _, c := range creds {
		if err := writer.Write([]string{c.Service, c.Username, c.Password}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
