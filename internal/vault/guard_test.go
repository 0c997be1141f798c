package vault

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/passvault/internal/common"
	"github.com/stretchr/testify/require"
)

func confirmWith(passphrase string) func() ([]byte, error) {
	return func() ([]byte, error) { return []byte(passphrase), nil }
}

func TestGuard_RegisterOnFirstUse(t *testing.T) {
	dir := t.TempDir()
	g := NewGuard(dir)
	require.False(t, g.Initialized())

	err := g.RegisterOrVerify([]byte("correct-horse"), confirmWith("correct-horse"))
	require.NoError(t, err)
	require.True(t, g.Initialized())

	// the stored hash verifies the passphrase but does not contain it
	data, err := os.ReadFile(filepath.Join(dir, hashFileName))
	require.NoError(t, err)
	require.NotContains(t, string(data), "correct-horse")
	require.NoError(t, g.Verify([]byte("correct-horse")))
}

func TestGuard_RegisterMismatchPersistsNothing(t *testing.T) {
	dir := t.TempDir()
	g := NewGuard(dir)

	err := g.RegisterOrVerify([]byte("correct-horse"), confirmWith("wrong-retype"))
	require.ErrorIs(t, err, common.ErrPassphraseMismatch)
	require.False(t, g.Initialized())
}

func TestGuard_VerifyAfterRegistration(t *testing.T) {
	g := NewGuard(t.TempDir())
	require.NoError(t, g.RegisterOrVerify([]byte("correct-horse"), confirmWith("correct-horse")))

	// confirm must not be consulted once registered
	confirmCalled := false
	err := g.RegisterOrVerify([]byte("correct-horse"), func() ([]byte, error) {
		confirmCalled = true
		return nil, nil
	})
	require.NoError(t, err)
	require.False(t, confirmCalled)

	err = g.RegisterOrVerify([]byte("wrong-horse"), confirmWith("wrong-horse"))
	require.ErrorIs(t, err, common.ErrIncorrectPassphrase)
}

func TestGuard_Rotate(t *testing.T) {
	g := NewGuard(t.TempDir())
	require.NoError(t, g.RegisterOrVerify([]byte("correct-horse"), confirmWith("correct-horse")))

	count, err := g.Rotate([]byte("correct-horse"), []byte("battery-staple"), func(old, new []byte) (int, error) {
		require.Equal(t, "correct-horse", string(old))
		require.Equal(t, "battery-staple", string(new))
		return 3, nil
	})
	require.NoError(t, err)
	require.Equal(t, 3, count)

	require.NoError(t, g.Verify([]byte("battery-staple")))
	require.ErrorIs(t, g.Verify([]byte("correct-horse")), common.ErrIncorrectPassphrase)
}

func TestGuard_RotateWrongOldSkipsReencrypt(t *testing.T) {
	g := NewGuard(t.TempDir())
	require.NoError(t, g.RegisterOrVerify([]byte("correct-horse"), confirmWith("correct-horse")))

	called := false
	_, err := g.Rotate([]byte("wrong-horse"), []byte("battery-staple"), func(_, _ []byte) (int, error) {
		called = true
		return 0, nil
	})
	require.ErrorIs(t, err, common.ErrIncorrectPassphrase)
	require.False(t, called)
	require.NoError(t, g.Verify([]byte("correct-horse")))
}

func TestGuard_RotateReencryptFailureKeepsOldHash(t *testing.T) {
	g := NewGuard(t.TempDir())
	require.NoError(t, g.RegisterOrVerify([]byte("correct-horse"), confirmWith("correct-horse")))

	boom := errors.New("boom")
	_, err := g.Rotate([]byte("correct-horse"), []byte("battery-staple"), func(_, _ []byte) (int, error) {
		return 0, boom
	})
	require.ErrorIs(t, err, boom)

	// rotation must not be visible as succeeded
	require.NoError(t, g.Verify([]byte("correct-horse")))
	require.ErrorIs(t, g.Verify([]byte("battery-staple")), common.ErrIncorrectPassphrase)
}

func TestGuard_RotateWithStore(t *testing.T) {
	dir := t.TempDir()
	g := NewGuard(dir)
	s := NewStore(dir)

	require.NoError(t, g.RegisterOrVerify([]byte("correct-horse"), confirmWith("correct-horse")))
	require.NoError(t, s.Append([]byte("correct-horse"), Credential{Service: "alpha.example", Username: "alice", Password: "pw-a"}))

	count, err := g.Rotate([]byte("correct-horse"), []byte("battery-staple"), s.RewriteWithNewPassphrase)
	require.NoError(t, err)
	require.Equal(t, 1, count)

	matches, err := s.Search([]byte("battery-staple"), "alpha")
	require.NoError(t, err)
	require.Equal(t, "pw-a", matches[0].Password)
}
