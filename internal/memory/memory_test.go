package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/todos/pkg/types"
)

func TestSlotGetSet(t *testing.T) {
	s := New()

	_, err := s.Get("k")
	assert.ErrorIs(t, err, types.ErrSlotEmpty)

	require.NoError(t, s.Set("k", []byte("v1")))
	got, err := s.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v1", string(got))

	require.NoError(t, s.Set("k", []byte("v2")))
	got, err = s.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v2", string(got))
	assert.Equal(t, 2, s.Writes())
}

func TestSlotCopiesValues(t *testing.T) {
	s := New()
	buf := []byte("abc")
	require.NoError(t, s.Set("k", buf))
	buf[0] = 'x'

	got, err := s.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))

	got[0] = 'y'
	again, err := s.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(again))
}

func TestSlotQuota(t *testing.T) {
	s := New(WithQuota(10))

	require.NoError(t, s.Set("k", []byte("12345678")))
	err := s.Set("k", []byte("1234567890"))
	assert.ErrorIs(t, err, types.ErrQuotaExceeded)

	got, err := s.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "12345678", string(got), "failed write must keep the old value")

	err = s.Set("other", []byte("1"))
	assert.ErrorIs(t, err, types.ErrQuotaExceeded)
}

func TestSlotDisabled(t *testing.T) {
	s := New(WithValue("k", []byte("v")))
	s.SetDisabled(true)

	_, err := s.Get("k")
	assert.ErrorIs(t, err, types.ErrSlotDisabled)
	assert.ErrorIs(t, s.Set("k", []byte("w")), types.ErrSlotDisabled)

	s.SetDisabled(false)
	got, err := s.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v", string(got))
}

func TestSlotClose(t *testing.T) {
	s := New()
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	_, err := s.Get("k")
	assert.ErrorIs(t, err, types.ErrSlotClosed)
	assert.ErrorIs(t, s.Set("k", nil), types.ErrSlotClosed)
}

func TestSlotEmptyKey(t *testing.T) {
	s := New()
	assert.ErrorIs(t, s.Set("", []byte("v")), types.ErrInvalidKey)
	_, err := s.Get("")
	assert.ErrorIs(t, err, types.ErrInvalidKey)
}
