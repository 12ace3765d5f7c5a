// Copyright (c) 2026 Citely. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package remote_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/taibuivan/citely/internal/platform/remote"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// newServer starts a fake citation service and returns a client bound to it.
func newServer(t *testing.T, handler http.HandlerFunc, opts ...remote.Option) *remote.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	opts = append([]remote.Option{remote.WithHTTPClient(server.Client())}, opts...)
	return remote.NewClient(server.URL+"/", opts...)
}

/*
TestDo_SendsHeadersBodyAndQuery verifies the base URL prefix, the two default
negotiation headers, the JSON body, and the query string.
*/
func TestDo_SendsHeadersBodyAndQuery(t *testing.T) {
	var (
		gotPath   string
		gotQuery  url.Values
		gotHeader http.Header
		gotBody   map[string]any
	)

	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		gotHeader = r.Header.Clone()
		_ = json.NewDecoder(r.Body).Decode(&gotBody)

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id": 7, "title": "Design Patterns"}`)
	})

	var out struct {
		ID    int64  `json:"id"`
		Title string `json:"title"`
	}

	err := client.Do(context.Background(), remote.Request{
		Method: http.MethodPost,
		Path:   "/api/sources",
		Body:   map[string]any{"title": "Design Patterns", "year": 1994},
		Query:  url.Values{"dryRun": {"false"}},
	}, &out)
	require.NoError(t, err)

	assert.Equal(t, "/api/sources", gotPath)
	assert.Equal(t, "false", gotQuery.Get("dryRun"))
	assert.Equal(t, "application/json", gotHeader.Get("Content-Type"))
	assert.Equal(t, "application/json", gotHeader.Get("Accept"))
	assert.Equal(t, "Design Patterns", gotBody["title"])
	assert.EqualValues(t, 1994, gotBody["year"])

	assert.Equal(t, int64(7), out.ID)
	assert.Equal(t, "Design Patterns", out.Title)
}

/*
TestDo_NoBody verifies that a nil Body sends an empty request body.
*/
func TestDo_NoBody(t *testing.T) {
	var contentLength int64 = -1

	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		contentLength = r.ContentLength
		w.WriteHeader(http.StatusOK)
	})

	err := client.Do(context.Background(), remote.Request{Method: http.MethodPost, Path: "generate"}, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), contentLength)
}

/*
TestDo_StatusError verifies that any non-2xx status is a KindStatus failure
and the response body is discarded.
*/
func TestDo_StatusError(t *testing.T) {
	statuses := []int{http.StatusBadRequest, http.StatusNotFound, http.StatusInternalServerError, http.StatusServiceUnavailable}

	for _, status := range statuses {
		t.Run(http.StatusText(status), func(t *testing.T) {
			client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(status)
				_, _ = io.WriteString(w, `{"citation": "should never be read"}`)
			})

			var out map[string]any
			err := client.Do(context.Background(), remote.Request{Method: http.MethodGet, Path: "/api/sources/1"}, &out)

			require.Error(t, err)
			assert.True(t, remote.IsKind(err, remote.KindStatus))
			assert.Equal(t, status, remote.StatusCode(err))
			assert.Nil(t, out)
		})
	}
}

/*
TestDo_DecodeError verifies that a malformed success body is a KindDecode failure.
*/
func TestDo_DecodeError(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `<html>not json</html>`)
	})

	var out map[string]any
	err := client.Do(context.Background(), remote.Request{Method: http.MethodGet, Path: "/api/sources/1"}, &out)

	require.Error(t, err)
	assert.True(t, remote.IsKind(err, remote.KindDecode))
	assert.Equal(t, 0, remote.StatusCode(err))
}

/*
TestDo_EncodeError verifies that an unserializable body never reaches the wire.
*/
func TestDo_EncodeError(t *testing.T) {
	called := false
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	err := client.Do(context.Background(), remote.Request{
		Method: http.MethodPost,
		Path:   "/api/sources",
		Body:   map[string]any{"bad": make(chan int)},
	}, nil)

	require.Error(t, err)
	assert.True(t, remote.IsKind(err, remote.KindEncode))
	assert.False(t, called)
}

/*
TestDo_Timeout verifies that a slow service yields a KindNetwork failure
within the per-request timeout.
*/
func TestDo_Timeout(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})

	started := time.Now()
	err := client.Do(context.Background(), remote.Request{
		Method:  http.MethodGet,
		Path:    "/health",
		Timeout: 50 * time.Millisecond,
	}, nil)

	require.Error(t, err)
	assert.True(t, remote.IsKind(err, remote.KindNetwork))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(started), time.Second)
}

/*
TestPing_ClosedPort verifies that an unreachable service is reported as a
network failure rather than a panic.
*/
func TestPing_ClosedPort(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	deadURL := server.URL
	server.Close()

	client := remote.NewClient(deadURL)
	err := client.Ping(context.Background(), "/health", remote.HealthTimeout)

	require.Error(t, err)
	assert.True(t, remote.IsKind(err, remote.KindNetwork))
}

func TestNewClient_TrimsTrailingSlash(t *testing.T) {
	client := remote.NewClient("http://localhost:8080///")
	assert.Equal(t, "http://localhost:8080", client.BaseURL())
}
