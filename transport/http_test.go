package transport_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/txix-open/restx/transport"
)

func TestOpen(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(http.MethodGet, r.Method)
		require.Equal("1", r.URL.Query().Get("a"))
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	t.Cleanup(srv.Close)

	tr := transport.NewHTTP(srv.Client())
	handle, err := tr.Open(srv.URL + "?a=1")
	require.NoError(err)

	waitFinished(t, handle)
	require.NoError(handle.Err())
	require.Equal(`{"ok":true}`, string(handle.Body()))

	handle.Release()
	handle.Release()
	require.Nil(handle.Body())
}

func TestOpenServerError(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "broken", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	tr := transport.NewHTTP(srv.Client())
	handle, err := tr.Open(srv.URL)
	require.NoError(err)

	waitFinished(t, handle)
	require.Error(handle.Err())
	require.Contains(handle.Err().Error(), "500")
}

func TestOpenConnectionError(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	tr := transport.NewHTTP(nil)
	handle, err := tr.Open(url)
	require.NoError(err)

	waitFinished(t, handle)
	require.Error(handle.Err())
}

func TestReleaseDuringFlight(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(50 * time.Millisecond)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	t.Cleanup(srv.Close)

	tr := transport.NewHTTP(srv.Client())
	handle, err := tr.Open(srv.URL)
	require.NoError(err)

	// release before the request finishes, as the timeout path does
	time.Sleep(10 * time.Millisecond)
	handle.Release()

	waitFinished(t, handle)
	require.Nil(handle.Body())
}

func TestOpenBadURL(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	tr := transport.NewHTTP(nil)
	_, err := tr.Open("http://example.com/\x7f")
	require.Error(err)
}

func waitFinished(t *testing.T, handle transport.Handle) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !handle.Finished() {
		if time.Now().After(deadline) {
			t.Fatal("handle did not finish in time")
		}
		time.Sleep(5 * time.Millisecond)
	}
}
