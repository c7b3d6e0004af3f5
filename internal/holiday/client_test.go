package holiday

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHolidays(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v3/PublicHolidays/2025/CL", r.URL.Path)
		fmt.Fprint(w, `[
			{"date":"2025-01-01","localName":"Año Nuevo"},
			{"date":"2025-05-01","localName":"Día del Trabajo"},
			{"date":"2025-09-18","localName":"Fiestas Patrias"}
		]`)
	}))
	defer server.Close()

	client := NewClientWithBaseURL("CL", server.URL)
	dates, err := client.Holidays(context.Background(), 2025)
	require.NoError(t, err)

	assert.Len(t, dates, 3)
	assert.True(t, dates.Contains("2025-01-01"))
	assert.True(t, dates.Contains("2025-09-18"))
	assert.False(t, dates.Contains("2025-12-25"))
}

func TestHolidaysNonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no holidays for country", http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClientWithBaseURL("XX", server.URL)
	dates, err := client.Holidays(context.Background(), 2025)

	assert.Error(t, err)
	assert.Nil(t, dates, "failure must not be mistaken for an empty holiday set")
	assert.Contains(t, err.Error(), "404")
}

func TestHolidaysMalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"not":"an array"}`)
	}))
	defer server.Close()

	client := NewClientWithBaseURL("CL", server.URL)
	_, err := client.Holidays(context.Background(), 2025)
	assert.Error(t, err)
}

func TestHolidaysTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	client := NewClientWithBaseURL("CL", server.URL)
	_, err := client.Holidays(context.Background(), 2025)
	assert.Error(t, err)
}
