package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/pos_ledger/internal/apperrors"
)

func TestEncodeDecodeToken(t *testing.T) {
	entryDate := time.Date(2023, 5, 15, 0, 0, 0, 0, time.UTC)
	entryID := "01890a5d-ac96-774b-bcce-b302099a8057"

	token := EncodeToken(entryDate, entryID)
	assert.NotEmpty(t, token, "Token should not be empty")

	decodedDate, decodedID, err := DecodeToken(token)
	require.NoError(t, err)
	assert.Equal(t, entryDate, decodedDate, "Entry date should match after decode")
	assert.Equal(t, entryID, decodedID, "Entry id should match after decode")
}

func TestDecodeTokenError(t *testing.T) {
	_, _, err := DecodeToken("this is not base64!")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Contains(t, err.Error(), "base64 decode", "Error should mention base64 decoding")

	noSeparator := base64.StdEncoding.EncodeToString([]byte("2023-05-15T00:00:00Z"))
	_, _, err = DecodeToken(noSeparator)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Contains(t, err.Error(), "split", "Error should mention splitting issue")

	badDate := base64.StdEncoding.EncodeToString([]byte("notadate|0189"))
	_, _, err = DecodeToken(badDate)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Contains(t, err.Error(), "entry date parse", "Error should mention date parsing issue")
}

func TestAfter(t *testing.T) {
	day := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	prev := day.AddDate(0, 0, -1)

	assert.True(t, After(prev, "z", day, "a"), "older date comes later")
	assert.False(t, After(day, "a", prev, "z"))
	assert.True(t, After(day, "a", day, "b"), "same date orders by id descending")
	assert.False(t, After(day, "b", day, "b"))
}
