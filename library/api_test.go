package library

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedCall struct {
	Method string
	Path   string
	Query  string
	Body   string
}

type requestLog struct {
	mu    sync.Mutex
	calls []recordedCall
}

func (l *requestLog) add(c recordedCall) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, c)
}

func (l *requestLog) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.calls)
}

func (l *requestLog) all() []recordedCall {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]recordedCall(nil), l.calls...)
}

// startAPI runs a fake server that records every request before delegating to
// handler. A nil handler answers every call with a bare success envelope.
func startAPI(t *testing.T, handler http.HandlerFunc) (*APIClient, *requestLog) {
	t.Helper()
	log := &requestLog{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		log.add(recordedCall{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.RawQuery,
			Body:   string(body),
		})
		r.Body = io.NopCloser(bytes.NewReader(body))
		if handler != nil {
			handler(w, r)
			return
		}
		fmt.Fprint(w, `{"success":true}`)
	}))
	t.Cleanup(server.Close)
	return NewAPIClient(server.URL), log
}

func TestLoginPostsCredentialsAndDecodesUser(t *testing.T) {
	client, log := startAPI(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"success":true,"message":"ok","user":{"id":3,"username":"alice","role":"reader","email":null,"phone":null,"special_reader_type":null}}`)
	})

	resp, err := client.Login("alice", "secret")
	require.NoError(t, err)
	assert.True(t, resp.Success)
	require.NotNil(t, resp.User)
	assert.Equal(t, int64(3), resp.User.ID)
	assert.Equal(t, "alice", resp.User.Username)

	calls := log.all()
	require.Len(t, calls, 1)
	assert.Equal(t, http.MethodPost, calls[0].Method)
	assert.Equal(t, "/auth/login", calls[0].Path)

	var body map[string]string
	require.NoError(t, json.Unmarshal([]byte(calls[0].Body), &body))
	assert.Equal(t, "alice", body["username"])
	assert.Equal(t, "secret", body["password"])
}

func TestRequestsCarryJSONHeadersAndRequestID(t *testing.T) {
	var contentType, requestID string
	client, _ := startAPI(t, func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		requestID = r.Header.Get("X-Request-Id")
		fmt.Fprint(w, `{"success":true,"books":[]}`)
	})

	_, err := client.ListBooks()
	require.NoError(t, err)
	assert.Equal(t, "application/json", contentType)
	assert.NotEmpty(t, requestID)
}

func TestSearchBooksEncodesQuery(t *testing.T) {
	client, log := startAPI(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"success":true,"books":[]}`)
	})

	_, err := client.SearchBooks("go & fiction")
	require.NoError(t, err)

	calls := log.all()
	require.Len(t, calls, 1)
	assert.Equal(t, "/books/search", calls[0].Path)
	assert.Equal(t, "query=go+%26+fiction", calls[0].Query)
}

func TestBusinessFailureIsReturnedNotRaised(t *testing.T) {
	client, _ := startAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"success":false,"message":"insufficient stock"}`)
	})

	resp, err := client.Borrow(1, 2)
	require.NoError(t, err, "decodable envelopes are not errors")
	assert.False(t, resp.Success)
	assert.Equal(t, "insufficient stock", resp.Message)
}

func TestUndecodableBodyIsAnError(t *testing.T) {
	client, _ := startAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		fmt.Fprint(w, `<html>upstream down</html>`)
	})

	_, err := client.ListBooks()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 502")
}

func TestTransportFailureIsAnError(t *testing.T) {
	client, _ := startAPI(t, nil)
	// Point at a closed server to force a connection failure.
	dead := httptest.NewServer(http.NotFoundHandler())
	dead.Close()
	client = NewAPIClient(dead.URL)

	_, err := client.ListBooks()
	require.Error(t, err)
}

func TestEndpointPathsMatchTheAPISurface(t *testing.T) {
	client, log := startAPI(t, nil)

	_, _ = client.Register("bob", "pw", "", "")
	_, _ = client.ResetPassword("bob", "555", "pw2")
	_, _ = client.Return(11)
	_, _ = client.Renew(12)
	_, _ = client.MyBorrowings(42)
	_, _ = client.Rate(13, 5)
	_, _ = client.SubmitFeedback(42, "suggestion", "more sci-fi")
	_, _ = client.MyFeedbacks(42)
	_, _ = client.BookDetail(9)
	_, _ = client.Categories()
	_, _ = client.DeleteBook(9)
	_, _ = client.UpdateBook(9, NewBook{Title: "x"})
	_, _ = client.Users()
	_, _ = client.UserStatistics()
	_, _ = client.BorrowingStatistics()
	_, _ = client.Feedbacks()
	_, _ = client.ReplyFeedback(5, "done")

	want := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/auth/register"},
		{http.MethodPost, "/auth/reset-password"},
		{http.MethodPost, "/books/return"},
		{http.MethodPost, "/books/renew"},
		{http.MethodGet, "/books/my-borrowings/42"},
		{http.MethodPost, "/books/rate"},
		{http.MethodPost, "/books/feedback/submit"},
		{http.MethodGet, "/books/feedback/my/42"},
		{http.MethodGet, "/books/detail/9"},
		{http.MethodGet, "/books/categories"},
		{http.MethodDelete, "/admin/books/delete/9"},
		{http.MethodPut, "/admin/books/update/9"},
		{http.MethodGet, "/admin/users/list"},
		{http.MethodGet, "/admin/users/statistics"},
		{http.MethodGet, "/admin/borrowings/statistics"},
		{http.MethodGet, "/admin/feedback/list"},
		{http.MethodPut, "/admin/feedback/reply/5"},
	}

	calls := log.all()
	require.Len(t, calls, len(want))
	for i, w := range want {
		assert.Equal(t, w.method, calls[i].Method, "call %d", i)
		assert.Equal(t, w.path, calls[i].Path, "call %d", i)
	}
}
