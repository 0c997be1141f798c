package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	t.Run("length honoured", func(t *testing.T) {
		for _, n := range []int{MinLength, 16, DefaultLength, MaxLength} {
			p, err := Generate(n)
			require.NoError(t, err)
			assert.Len(t, p, n)
		}
	})

	t.Run("every class present", func(t *testing.T) {
		for range 20 {
			p, err := Generate(MinLength)
			require.NoError(t, err)
			assert.True(t, strings.ContainsAny(p, lowercase), p)
			assert.True(t, strings.ContainsAny(p, uppercase), p)
			assert.True(t, strings.ContainsAny(p, digits), p)
			assert.True(t, strings.ContainsAny(p, symbols), p)
		}
	})

	t.Run("successive passwords differ", func(t *testing.T) {
		p1, err := Generate(DefaultLength)
		require.NoError(t, err)
		p2, err := Generate(DefaultLength)
		require.NoError(t, err)
		assert.NotEqual(t, p1, p2)
	})

	t.Run("out of range length", func(t *testing.T) {
		for _, n := range []int{0, MinLength - 1, MaxLength + 1, -5} {
			_, err := Generate(n)
			assert.ErrorIs(t, err, ErrBadLength)
		}
	})
}
