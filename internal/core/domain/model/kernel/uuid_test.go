package kernel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUUIDGeneratesUniqueValues(t *testing.T) {
	first := NewUUID()
	second := NewUUID()

	assert.NoError(t, first.Validate())
	assert.NoError(t, second.Validate())
	assert.False(t, first.IsEqual(second))
}

func TestUUIDFromStringRoundTrip(t *testing.T) {
	original := NewUUID()

	parsed, err := UUIDFromString(original.String())

	require.NoError(t, err)
	assert.True(t, original.IsEqual(parsed))
}

func TestUUIDFromStringRejectsGarbage(t *testing.T) {
	_, err := UUIDFromString("not-a-uuid")
	assert.Error(t, err)
}

func TestUUIDZeroValueIsInvalid(t *testing.T) {
	var zero UUID
	assert.ErrorIs(t, zero.Validate(), ErrUUIDIsNotConstructed)
}

func TestUUIDFromBytesRejectsNilUUID(t *testing.T) {
	_, err := UUIDFromBytes(make([]byte, 16))
	assert.ErrorIs(t, err, ErrUUIDIsNotConstructed)
}
