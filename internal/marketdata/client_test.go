package marketdata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrentPrice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.Header.Get("x-access-token"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"price_gram_24k": 105.53, "price": 3282.41}`))
	}))
	defer srv.Close()

	client := NewSpotClientWithURL(srv.URL, "secret")
	price, err := client.CurrentPrice(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "105.53", price.String())
}

func TestCurrentPriceOunceFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"price": 3110.34768}`))
	}))
	defer srv.Close()

	client := NewSpotClientWithURL(srv.URL, "secret")
	price, err := client.CurrentPrice(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "100", price.String())
}

func TestCurrentPriceErrors(t *testing.T) {
	t.Run("missing token", func(t *testing.T) {
		client := NewSpotClientWithURL("http://unused", "")
		_, err := client.CurrentPrice(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), TokenEnvVar)
	})

	t.Run("non-200 status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer srv.Close()
		_, err := NewSpotClientWithURL(srv.URL, "secret").CurrentPrice(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "403")
	})

	t.Run("empty payload", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{}`))
		}))
		defer srv.Close()
		_, err := NewSpotClientWithURL(srv.URL, "secret").CurrentPrice(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no usable price")
	})
}
