package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			_, _ = w.Write([]byte("<html><body>$9.99</body></html>"))
		case "/missing":
			w.WriteHeader(http.StatusNotFound)
		case "/blocked":
			w.WriteHeader(http.StatusForbidden)
		}
	}))
	defer server.Close()

	f := NewFetcher(5 * time.Second)

	t.Run("success returns body", func(t *testing.T) {
		body, err := f.Fetch(context.Background(), server.URL+"/ok")
		require.NoError(t, err)
		assert.Contains(t, string(body), "$9.99")
	})

	t.Run("not found is an error", func(t *testing.T) {
		_, err := f.Fetch(context.Background(), server.URL+"/missing")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "404")
	})

	t.Run("blocked is an error", func(t *testing.T) {
		_, err := f.Fetch(context.Background(), server.URL+"/blocked")
		assert.Error(t, err)
	})

	t.Run("cancelled context is an error", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := f.Fetch(ctx, server.URL+"/ok")
		assert.Error(t, err)
	})
}

func TestFetcher_BrowserHeaders(t *testing.T) {
	t.Parallel()

	var gotUA, gotAccept, gotLang string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		gotLang = r.Header.Get("Accept-Language")
	}))
	defer server.Close()

	f := NewFetcher(0)
	_, err := f.Fetch(context.Background(), server.URL)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(gotUA, "Mozilla/5.0"))
	assert.Contains(t, gotAccept, "text/html")
	assert.Contains(t, gotLang, "en-US")
}

func TestRandomUserAgent(t *testing.T) {
	t.Parallel()

	for i := 0; i < 20; i++ {
		ua := RandomUserAgent()
		assert.Contains(t, userAgents, ua)
	}
}
