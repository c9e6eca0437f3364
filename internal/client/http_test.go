package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/adityajain1310/folio/internal/content"
	"github.com/adityajain1310/folio/internal/inbox"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPortfolio(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(TokenHeader) != "secret" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		assert.Equal(t, "/api/portfolio", r.URL.Path)
		json.NewEncoder(w).Encode(content.Default())
	}))
	defer srv.Close()

	p, err := NewHTTPClient(srv.URL, "secret").Portfolio()
	require.NoError(t, err)
	assert.Equal(t, content.Default().Personal.Name, p.Personal.Name)

	_, err = NewHTTPClient(srv.URL, "wrong").Portfolio()
	assert.ErrorContains(t, err, "401")
}

func TestSendContact(t *testing.T) {
	var got inbox.Message
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/contact", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{"id": "abc"})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "")
	id, err := c.SendContact(inbox.Message{Name: "Ada", Email: "ada@example.com", Body: "Hi"})
	require.NoError(t, err)
	assert.Equal(t, "abc", id)
	assert.Equal(t, "Hi", got.Body)

	_, err = c.SendContact(inbox.Message{Name: "Ada"})
	assert.ErrorIs(t, err, inbox.ErrInvalid)
	assert.Equal(t, 1, calls, "invalid messages never reach the server")

	msg := c.SendContactCmd(inbox.Message{Name: "Ada", Email: "ada@example.com", Body: "Again"})()
	sent, ok := msg.(ContactSentMsg)
	require.True(t, ok)
	assert.NoError(t, sent.Err)
	assert.Equal(t, "abc", sent.ID)
}

func TestSendContactServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"could not store message"}`, http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewHTTPClient(srv.URL, "").SendContact(inbox.Message{Name: "Ada", Email: "a@b.c", Body: "x"})
	assert.ErrorContains(t, err, "500")
}
