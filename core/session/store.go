// Package session holds the current user identity and bearer token,
// persisted to the client's durable storage.
package session

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"

	"github.com/elimu-lms/elimu/services/api"
	"github.com/elimu-lms/elimu/storage/kv"
)

// Durable storage keys.
const (
	userKey  = "session.user"
	tokenKey = "session.token"
)

var ErrLoginFailed = errors.New("login failed")

type Store struct {
	kv        *kv.Store
	client    *api.Client
	endpoints api.Endpoints
}

func NewStore(kvStore *kv.Store, client *api.Client, endpoints api.Endpoints) *Store {
	return &Store{kv: kvStore, client: client, endpoints: endpoints}
}

// Login authenticates against the backend. On success the user and
// token are persisted together, in one transaction: the store never
// holds a partial session.
func (s *Store) Login(ctx context.Context, email, password string) (User, error) {
	form := LoginForm{Email: email, Password: password}
	if err := form.Validate(); err != nil {
		return User{}, err
	}

	resp, err := s.client.Request(ctx, s.endpoints.AuthLogin(), api.Options{
		Method:         http.MethodPost,
		Body:           form,
		SuppressNotice: true,
	})
	if err != nil {
		return User{}, err
	}

	token := resp.String("token", "accessToken")
	usr, uErr := api.Object[User](resp, "user")
	if token == "" || uErr != nil || usr.Email == "" {
		return User{}, ErrLoginFailed
	}

	userData, err := json.Marshal(usr)
	if err != nil {
		return User{}, errors.Wrap(err, "marshalling user")
	}
	if err = s.kv.SetMulti(map[string][]byte{
		userKey:  userData,
		tokenKey: []byte(token),
	}); err != nil {
		return User{}, errors.Wrap(err, "persisting session")
	}
	return usr, nil
}

// Logout clears the persisted session unconditionally; idempotent.
func (s *Store) Logout() error {
	return errors.Wrap(s.kv.DeleteMulti(userKey, tokenKey), "clearing session")
}

// Current is a synchronous read of durable storage. A missing or
// unreadable store yields an empty session, never an error: user and
// token are co-dependent, so a lone half is treated as absent too.
func (s *Store) Current() Session {
	if s.kv == nil {
		return Session{}
	}
	userData, uErr := s.kv.Get(userKey)
	tokenData, tErr := s.kv.Get(tokenKey)
	if uErr != nil || tErr != nil {
		return Session{}
	}
	usr := new(User)
	if err := json.Unmarshal(userData, usr); err != nil {
		return Session{}
	}
	token := string(tokenData)
	if token == "" {
		return Session{}
	}
	return Session{User: usr, Token: token}
}

// UpdateUser overwrites the persisted user record, leaving the token
// untouched; used after profile edits.
func (s *Store) UpdateUser(usr User) error {
	userData, err := json.Marshal(usr)
	if err != nil {
		return errors.Wrap(err, "marshalling user")
	}
	return errors.Wrap(s.kv.Set(userKey, userData), "persisting user")
}

// Profile fetches the authoritative user record from the backend and
// refreshes the persisted copy.
func (s *Store) Profile(ctx context.Context) (User, error) {
	sess := s.Current()
	if !sess.Authenticated() {
		return User{}, errors.New("not authenticated")
	}
	resp, err := s.client.Request(ctx, s.endpoints.AuthProfile(), api.Options{Token: sess.Token})
	if err != nil {
		return User{}, err
	}
	usr, err := api.Object[User](resp, "user")
	if err != nil {
		return User{}, err
	}
	if err = s.UpdateUser(usr); err != nil {
		return User{}, err
	}
	return usr, nil
}

// ChangePassword asks the backend to rotate the password for the
// current session.
func (s *Store) ChangePassword(ctx context.Context, oldPwd, newPwd string) error {
	form := ChangePasswordForm{OldPassword: oldPwd, NewPassword: newPwd}
	if err := form.Validate(); err != nil {
		return err
	}
	sess := s.Current()
	if !sess.Authenticated() {
		return errors.New("not authenticated")
	}
	_, err := s.client.Request(ctx, s.endpoints.AuthChangePassword(), api.Options{
		Method: http.MethodPut,
		Body:   form,
		Token:  sess.Token,
	})
	return err
}
