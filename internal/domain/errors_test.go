package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCityQuery(t *testing.T) {
	q, err := NewCityQuery("  Paris \t")
	require.NoError(t, err)
	assert.Equal(t, CityQuery("Paris"), q)

	for _, in := range []string{"", "   ", "\n\t"} {
		_, err := NewCityQuery(in)
		assert.ErrorIs(t, err, ErrEmptyInput)
		assert.Equal(t, KindEmptyInput, KindOf(err))
	}
}

func TestQueryError_IsMatchesKind(t *testing.T) {
	err := NewQueryError(KindNotFound, "City not found")

	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrUnauthorized)

	wrapped := fmt.Errorf("handler: %w", err)
	assert.ErrorIs(t, wrapped, ErrNotFound)
	assert.Equal(t, KindNotFound, KindOf(wrapped))
	assert.Equal(t, ErrorKind(""), KindOf(errors.New("plain")))
}

func TestNewHTTPError(t *testing.T) {
	err := NewHTTPError(500, "Internal Server Error")
	assert.Equal(t, "HTTP 500: Internal Server Error", err.Error())
	assert.Equal(t, &ErrorBody{Kind: KindHTTPError, Message: "HTTP 500: Internal Server Error"}, err.Body())
}

func TestNewNetworkError_Unwraps(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := NewNetworkError(cause)

	assert.Equal(t, "dial tcp: connection refused", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, ErrNetwork)
}

func TestNewLookupRecord(t *testing.T) {
	ok := NewLookupRecord("Paris", WeatherSummary{City: "Paris", Temperature: 21}, nil, 0)
	assert.Equal(t, OutcomeOK, ok.Outcome)
	require.NotNil(t, ok.Temperature)
	assert.Equal(t, 21, *ok.Temperature)

	failed := NewLookupRecord("Paris", WeatherSummary{}, NewQueryError(KindUnauthorized, "Invalid API key"), 0)
	assert.Equal(t, "Unauthorized", failed.Outcome)
	assert.Nil(t, failed.Temperature)
	assert.NotEqual(t, ok.ID, failed.ID)
}
