package store

import (
	"context"

	"github.com/fastygo/taskboard/api/transport"
	"github.com/fastygo/taskboard/client/gateway"
)

// AuthAPI is the part of the gateway the session needs.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*transport.LoginResponse, error)
	Profile(ctx context.Context, token string) (*transport.ProfileResponse, error)
}

// Notifier shows transient success and error messages.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

type nopNotifier struct{}

func (nopNotifier) Success(string) {}
func (nopNotifier) Error(string)   {}

// Session runs the asynchronous auth actions against a Store.
type Session struct {
	store  *Store
	api    AuthAPI
	tokens TokenStorage
	notify Notifier
}

func NewSession(s *Store, api AuthAPI, tokens TokenStorage, notify Notifier) *Session {
	if tokens == nil {
		tokens = &MemoryTokens{}
	}
	if notify == nil {
		notify = nopNotifier{}
	}
	return &Session{store: s, api: api, tokens: tokens, notify: notify}
}

func (s *Session) Store() *Store {
	return s.store
}

// Login dispatches request, then success or failure, and persists the token.
func (s *Session) Login(ctx context.Context, email, password string) error {
	s.store.Dispatch(LoginRequested{})

	res, err := s.api.Login(ctx, email, password)
	if err != nil {
		msg := gateway.Message(err)
		s.store.Dispatch(LoginFailed{Msg: msg})
		s.notify.Error(msg)
		return err
	}

	s.store.Dispatch(LoginSucceeded{Token: res.Token, Account: res.Account, Msg: res.Msg})
	if err := s.tokens.Save(res.Token); err != nil {
		return err
	}
	s.notify.Success(res.Msg)
	return nil
}

// SaveProfile loads the profile for token. Failures leave the state untouched.
func (s *Session) SaveProfile(ctx context.Context, token string) {
	res, err := s.api.Profile(ctx, token)
	if err != nil {
		return
	}
	s.store.Dispatch(ProfileSaved{Account: res.Account, Token: token})
}

// Restore resumes a session from the stored token, if any.
func (s *Session) Restore(ctx context.Context) {
	token, err := s.tokens.Load()
	if err != nil || token == "" {
		return
	}
	s.SaveProfile(ctx, token)
}

// Logout forgets the token and resets the state.
func (s *Session) Logout() error {
	err := s.tokens.Clear()
	s.store.Dispatch(LoggedOut{})
	return err
}
