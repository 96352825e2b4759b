package main

import (
	"context"
	"encoding/json"
	"github.com/lifeline-dispatch/lifeline/internal/e2etest"
	"github.com/stretchr/testify/require"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"
)

func testLookupEnv(key string) (string, bool) {
	switch key {
	case "LIFELINE_ADDR":
		return "localhost:0", true
	case "LIFELINE_PPROF_PORT":
		return "off", true
	case "MOCK_AI":
		return "1", true
	default:
		return "", false
	}
}

// startTestServer boots the real server in heuristic-only mode and returns the
// harness for making requests against it.
func startTestServer(t *testing.T) *e2etest.Server {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	server, err := e2etest.StartServer(ctx, io.Discard, testLookupEnv, run)
	require.NoError(t, err)
	return server
}

func getJSON(t *testing.T, server *e2etest.Server, urlPath string, v any) {
	t.Helper()
	resp, err := server.Client().Get(server.URL() + urlPath)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, resp.Body.Close())
	}()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func postJSON(t *testing.T, server *e2etest.Server, urlPath, body string) *http.Response {
	t.Helper()
	resp, err := server.Client().Post(server.URL()+urlPath, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	return resp
}

// postWebhook posts telephony-style form data and returns the response body.
func postWebhook(t *testing.T, server *e2etest.Server, urlPath string, form url.Values) string {
	t.Helper()
	resp, err := server.Client().PostForm(server.URL()+urlPath, form)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, resp.Body.Close())
	}()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "text/xml", resp.Header.Get("Content-Type"))
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}
