package server

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"notion_sync/generator"
	"notion_sync/notion"
)

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()

	// Fake Notion backend.
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/search":
			w.Write([]byte(`{"results":[{"id":"parent-1"}]}`))
		case "/pages":
			w.Write([]byte(`{"id":"page-1","url":"https://www.notion.so/page1"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(api.Close)

	client, err := notion.New(notion.Config{APIKey: "k", BaseURL: api.URL}, api.Client(), false, nil)
	require.NoError(t, err)

	agent, err := generator.NewAgent(generator.MockLLM{})
	require.NoError(t, err)

	srv, err := New(agent, client)
	require.NoError(t, err)

	web := httptest.NewServer(srv.Routes())
	t.Cleanup(web.Close)
	return srv, web
}

func postJSON(t *testing.T, url, body string) (int, gjson.Result) {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, gjson.ParseBytes(data)
}

func TestSessionLifecycle(t *testing.T) {
	_, web := newTestServer(t)

	status, created := postJSON(t, web.URL+"/api/sessions", `{"topic":"go notes"}`)
	require.Equal(t, http.StatusOK, status)
	id := created.Get("session_id").String()
	require.NotEmpty(t, id)
	assert.NotEmpty(t, created.Get("draft.markdown").String())

	t.Run("revise", func(t *testing.T) {
		status, revised := postJSON(t, web.URL+"/api/sessions/"+id, `{"comment":"tighter"}`)
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, int64(2), revised.Get("history.#").Int())
	})

	t.Run("publish", func(t *testing.T) {
		status, published := postJSON(t, web.URL+"/api/sessions/"+id+"/publish", `{}`)
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, "page-1", published.Get("page_id").String())
		assert.Equal(t, "https://www.notion.so/page1", published.Get("url").String())
	})

	t.Run("unknown session", func(t *testing.T) {
		status, _ := postJSON(t, web.URL+"/api/sessions/nope", `{"comment":"x"}`)
		assert.Equal(t, http.StatusNotFound, status)
	})
}

func TestPreview(t *testing.T) {
	_, web := newTestServer(t)

	status, body := postJSON(t, web.URL+"/api/preview", `{"markdown":"# Hi\n\n**bold**"}`)
	require.Equal(t, http.StatusOK, status)
	html := body.Get("html").String()
	assert.Contains(t, html, "<h1>Hi</h1>")
	assert.Contains(t, html, "<strong>bold</strong>")
}

func TestSessionCreateWithoutAgent(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	t.Cleanup(api.Close)
	client, err := notion.New(notion.Config{APIKey: "k", BaseURL: api.URL}, api.Client(), false, nil)
	require.NoError(t, err)

	srv, err := New(nil, client)
	require.NoError(t, err)
	web := httptest.NewServer(srv.Routes())
	t.Cleanup(web.Close)

	status, _ := postJSON(t, web.URL+"/api/sessions", `{"topic":"x"}`)
	assert.Equal(t, http.StatusServiceUnavailable, status)
}
