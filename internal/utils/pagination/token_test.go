package pagination_test

import (
	"testing"
	"time"

	"github.com/acmeerp/ledger_core/internal/utils/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	entryDate := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
	createdAt := time.Date(2024, time.January, 15, 10, 30, 0, 123456789, time.UTC)

	token := pagination.EncodeToken(entryDate, createdAt)
	gotDate, gotCreated, err := pagination.DecodeToken(token)
	require.NoError(t, err)
	assert.True(t, entryDate.Equal(gotDate))
	assert.True(t, createdAt.Equal(gotCreated))
}

func TestDecodeToken_Invalid(t *testing.T) {
	_, _, err := pagination.DecodeToken("not-base64!!!")
	assert.Error(t, err)

	_, _, err = pagination.DecodeToken("aGVsbG8=") // decodes, but no separator
	assert.Error(t, err)
}

func TestDateBasedTokenRoundTrip(t *testing.T) {
	date := time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC)
	token := pagination.EncodeDateBasedToken(date)
	got, err := pagination.DecodeDateBasedToken(token)
	require.NoError(t, err)
	assert.True(t, date.Equal(got))

	_, err = pagination.DecodeDateBasedToken("%%%")
	assert.Error(t, err)
}
