package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetReturnsBodyAndSendsUserAgent(t *testing.T) {
	var gotUserAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		w.Write([]byte("<html><body>hello</body></html>"))
	}))
	defer server.Close()

	client := New(0, "")
	body, err := client.Get(context.Background(), server.URL)

	require.NoError(t, err)
	assert.Equal(t, "<html><body>hello</body></html>", body)
	assert.Equal(t, DefaultUserAgent, gotUserAgent)
}

func TestGetNonSuccessStatusIsAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	client := New(0, "")
	_, err := client.Get(context.Background(), server.URL)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status")
}

func TestGetTimesOut(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer server.Close()

	client := New(50*time.Millisecond, "")
	_, err := client.Get(context.Background(), server.URL)

	assert.Error(t, err)
}

func TestRobotsTxtFetchesOriginRobots(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/robots.txt", r.URL.Path)
		w.Write([]byte("User-agent: *\nDisallow: /admin"))
	}))
	defer server.Close()

	client := New(0, "")
	text, targetPath, err := client.RobotsTxt(context.Background(), server.URL+"/admin/settings?tab=users")

	require.NoError(t, err)
	assert.Equal(t, "User-agent: *\nDisallow: /admin", text)
	assert.Equal(t, "/admin/settings", targetPath)
}

func TestRobotsTxtDefaultsPathToRoot(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Disallow: /x"))
	}))
	defer server.Close()

	client := New(0, "")
	_, targetPath, err := client.RobotsTxt(context.Background(), server.URL)

	require.NoError(t, err)
	assert.Equal(t, "/", targetPath)
}

func TestRobotsTxtMissingFileIsAFetchFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	client := New(0, "")
	_, _, err := client.RobotsTxt(context.Background(), server.URL+"/page")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "robots.txt fetch failed")
}

func TestRobotsTxtRejectsRelativeURL(t *testing.T) {
	client := New(0, "")
	_, _, err := client.RobotsTxt(context.Background(), "/no-host")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing scheme or host")
}
