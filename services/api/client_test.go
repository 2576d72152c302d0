package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	testutil "github.com/elimu-lms/elimu/tests"
)

func Test_client_bearerAndJSONBody(t *testing.T) {
	var gotAuth, gotContentType string
	var gotBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = w.Write([]byte(`{"message":"created"}`))
	}))
	defer srv.Close()

	notifier := new(testutil.NotifierRecorder)
	client := NewClient(notifier)

	_, err := client.Request(context.Background(), srv.URL, Options{
		Method: http.MethodPost,
		Body:   map[string]string{"category_name": "Design"},
		Token:  "tok-123",
	})
	assert.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "Design", gotBody["category_name"])

	notice, ok := notifier.Last()
	assert.True(t, ok)
	assert.Equal(t, "success", notice.Kind)
	assert.Equal(t, "created", notice.Message)
}

func Test_client_noTokenNoAuthHeader(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := NewClient(new(testutil.NotifierRecorder))
	_, err := client.Request(context.Background(), srv.URL, Options{})
	assert.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func Test_client_readerBodyKeepsContentType(t *testing.T) {
	var gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := NewClient(new(testutil.NotifierRecorder))
	_, err := client.Request(context.Background(), srv.URL, Options{
		Method: http.MethodPost,
		Body:   strings.NewReader("--boundary--"),
		Headers: map[string]string{
			"Content-Type": "multipart/form-data; boundary=boundary",
		},
		SuppressNotice: true,
	})
	assert.NoError(t, err)
	// the client must not override the caller's multipart boundary
	assert.Equal(t, "multipart/form-data; boundary=boundary", gotContentType)
}

func Test_client_errorMessageExtraction(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantMsg  string
	}{
		{"message field", http.StatusBadRequest, `{"message":"title is required"}`, "title is required"},
		{"error field", http.StatusConflict, `{"error":"duplicate category"}`, "duplicate category"},
		{"generic fallback", http.StatusBadGateway, `<html>boom</html>`, "Request failed (502)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			notifier := new(testutil.NotifierRecorder)
			client := NewClient(notifier)

			_, err := client.Request(context.Background(), srv.URL, Options{Method: http.MethodPost})
			var apiErr *Error
			assert.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.wantMsg, apiErr.Message)

			notice, ok := notifier.Last()
			assert.True(t, ok)
			assert.Equal(t, "error", notice.Kind)
			assert.Equal(t, tt.wantMsg, notice.Message)
		})
	}
}

func Test_client_noNoticeOnGetOrSuppressed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"message":"ok"}`))
	}))
	defer srv.Close()

	notifier := new(testutil.NotifierRecorder)
	client := NewClient(notifier)

	_, err := client.Request(context.Background(), srv.URL, Options{})
	assert.NoError(t, err)
	_, err = client.Request(context.Background(), srv.URL, Options{Method: http.MethodPost, SuppressNotice: true})
	assert.NoError(t, err)
	assert.Empty(t, notifier.Notices)
}

func Test_client_unparseableBodyIsEmptyObject(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	client := NewClient(new(testutil.NotifierRecorder))
	resp, err := client.Request(context.Background(), srv.URL, Options{})
	assert.NoError(t, err)
	assert.JSONEq(t, `{}`, string(resp.Raw()))
}
