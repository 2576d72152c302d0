package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/elimu-lms/elimu/services/api"
	testutil "github.com/elimu-lms/elimu/tests"
)

func setup(t *testing.T, backend http.HandlerFunc) *Store {
	t.Helper()
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)
	client := api.NewClient(new(testutil.NotifierRecorder))
	return NewStore(testutil.OpenKV(t), client, api.NewEndpoints(srv.URL+"/api"))
}

func loginOK(w http.ResponseWriter, r *http.Request) {
	_, _ = w.Write([]byte(`{
		"token": "tok-123",
		"user": {"_id":"u1","first_name":"Amani","last_name":"Njoro","email":"amani@acme.io","role":"admin","isActive":true}
	}`))
}

func Test_store_loginPersistsUserAndTokenTogether(t *testing.T) {
	store := setup(t, loginOK)

	usr, err := store.Login(context.Background(), "amani@acme.io", "pass1234")
	assert.NoError(t, err)
	assert.Equal(t, "u1", usr.ID)
	assert.Equal(t, RoleAdmin, usr.Role)

	sess := store.Current()
	assert.True(t, sess.Authenticated())
	assert.Equal(t, "tok-123", sess.Token)
	assert.Equal(t, "amani@acme.io", sess.User.Email)
}

func Test_store_failedLoginPersistsNothing(t *testing.T) {
	tests := []struct {
		name    string
		backend http.HandlerFunc
	}{
		{"backend rejects", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"invalid credentials"}`))
		}},
		{"token without user", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"token":"tok-123"}`))
		}},
		{"user without token", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"user":{"_id":"u1","email":"amani@acme.io","role":"admin"}}`))
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := setup(t, tt.backend)

			_, err := store.Login(context.Background(), "amani@acme.io", "wrong")
			assert.Error(t, err)

			// no partial session: neither user nor token persisted
			sess := store.Current()
			assert.False(t, sess.Authenticated())
			assert.Nil(t, sess.User)
			assert.Empty(t, sess.Token)
		})
	}
}

func Test_store_loginValidatesForm(t *testing.T) {
	store := setup(t, loginOK)

	_, err := store.Login(context.Background(), "not-an-email", "pass1234")
	assert.Error(t, err)
	_, err = store.Login(context.Background(), "amani@acme.io", "")
	assert.Error(t, err)
	assert.False(t, store.Current().Authenticated())
}

func Test_store_logoutIsIdempotent(t *testing.T) {
	store := setup(t, loginOK)

	_, err := store.Login(context.Background(), "amani@acme.io", "pass1234")
	assert.NoError(t, err)

	assert.NoError(t, store.Logout())
	sess := store.Current()
	assert.Nil(t, sess.User)
	assert.Empty(t, sess.Token)

	// repeated logout stays clean
	assert.NoError(t, store.Logout())
	assert.False(t, store.Current().Authenticated())
}

func Test_store_updateUserKeepsToken(t *testing.T) {
	store := setup(t, loginOK)

	usr, err := store.Login(context.Background(), "amani@acme.io", "pass1234")
	assert.NoError(t, err)

	usr.Bio = "Learning lead"
	assert.NoError(t, store.UpdateUser(usr))

	sess := store.Current()
	assert.Equal(t, "tok-123", sess.Token)
	assert.Equal(t, "Learning lead", sess.User.Bio)
	// role is immutable client-side; the record still carries it
	assert.Equal(t, RoleAdmin, sess.User.Role)
}

func Test_store_currentWithoutStorageIsEmpty(t *testing.T) {
	store := NewStore(nil, nil, api.NewEndpoints("http://localhost:4000/api"))
	sess := store.Current()
	assert.Nil(t, sess.User)
	assert.Empty(t, sess.Token)
	assert.False(t, sess.Authenticated())
}
