package availability

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/parkwatch/internal/domain"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestFetch_Success(t *testing.T) {
	var gotPath, gotAccept, gotUA string
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAccept = r.Header.Get("Accept")
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"available_spaces": 12, "total": 50}`))
	})

	c := NewClient(srv.URL+"/", Options{UserAgent: "parkwatch/test"}, nil)
	snap, err := c.Fetch(context.Background())
	require.NoError(t, err)

	assert.Equal(t, domain.Snapshot{AvailableSpaces: 12, TotalSpaces: 50}, snap)
	assert.Equal(t, AvailabilityPath, gotPath)
	assert.Equal(t, "application/json", gotAccept)
	assert.Equal(t, "parkwatch/test", gotUA)
	assert.Equal(t, srv.URL+AvailabilityPath, c.Endpoint())
}

func TestFetch_DetectorPayload(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"available_spaces": 3, "occupied_spaces": 5, "unknown_spaces": 2, "total": 10}`))
	})

	snap, err := NewClient(srv.URL, Options{}, nil).Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.Snapshot{AvailableSpaces: 3, TotalSpaces: 10, OccupiedSpaces: 5, UnknownSpaces: 2}, snap)
}

func TestFetch_StatusErrorCarriesBackendMessage(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error": "Estado no disponible aún"}`))
	})

	_, err := NewClient(srv.URL, Options{}, nil).Fetch(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNetwork)

	var netErr *domain.NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Equal(t, http.StatusNotFound, netErr.StatusCode)
	assert.Equal(t, "Estado no disponible aún", netErr.Message)
	assert.Equal(t, "Error de red: Estado no disponible aún", domain.DisplayMessage(err))
}

func TestFetch_StatusErrorWithoutBody(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := NewClient(srv.URL, Options{}, nil).Fetch(context.Background())
	assert.ErrorIs(t, err, domain.ErrNetwork)
	assert.Equal(t, "Error de red: HTTP 502", domain.DisplayMessage(err))
}

func TestFetch_MalformedBody(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"total": 50}`))
	})

	_, err := NewClient(srv.URL, Options{}, nil).Fetch(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDecode)
	assert.NotErrorIs(t, err, domain.ErrNetwork)

	var decErr *domain.DecodeError
	require.ErrorAs(t, err, &decErr)
	assert.Equal(t, "available_spaces", decErr.Field)
}

func TestFetch_OversizedBody(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"available_spaces": 1, "total": 2, "pad": "`))
		w.Write([]byte(strings.Repeat("x", maxBodySize)))
		w.Write([]byte(`"}`))
	})

	_, err := NewClient(srv.URL, Options{}, nil).Fetch(context.Background())
	assert.ErrorIs(t, err, domain.ErrDecode)
}

func TestFetch_ConnectionRefused(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	_, err = NewClient("http://"+addr, Options{ConnectTimeout: time.Second}, nil).Fetch(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNetwork)
	assert.True(t, strings.HasPrefix(domain.DisplayMessage(err), "Error de red: "))
}

func TestFetch_ReadTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	start := time.Now()
	_, err := NewClient(srv.URL, Options{ReadTimeout: 50 * time.Millisecond}, nil).Fetch(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNetwork)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestFetch_ContextCancelled(t *testing.T) {
	release := make(chan struct{})
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := NewClient(srv.URL, Options{}, nil).Fetch(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNetwork)
	assert.True(t, errors.Is(err, context.Canceled))
}
