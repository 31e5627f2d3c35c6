package notifications

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlackPost(t *testing.T) {
	var got map[string]interface{}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte("ok"))
	}))
	defer ts.Close()

	var n Notifier = NewSlackNotifier(ts.URL).SetChannel("#ci")
	require.NoError(t, n.Post("3 jobs reported, 0 failed"))
	assert.Equal(t, "3 jobs reported, 0 failed", got["text"])
	assert.Equal(t, "#ci", got["channel"])
}

func TestSlackPostNoChannel(t *testing.T) {
	var got map[string]interface{}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
	}))
	defer ts.Close()

	require.NoError(t, NewSlackNotifier(ts.URL).Post("hello"))
	_, ok := got["channel"]
	assert.False(t, ok)
}

func TestSlackPostErrors(t *testing.T) {
	assert.EqualError(t, NewSlackNotifier("").Post("x"),
		"Slack notification impossible; no webhook specified")

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid_payload", http.StatusBadRequest)
	}))
	defer ts.Close()

	err := NewSlackNotifier(ts.URL).Post("x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400 Bad Request")
	assert.Contains(t, err.Error(), "invalid_payload")
}
