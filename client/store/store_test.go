package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/taskboard/api/transport"
	"github.com/fastygo/taskboard/client/gateway"
)

type unknownAction struct{}

func (unknownAction) action() {}

func TestReduceTransitions(t *testing.T) {
	ann := transport.Account{ID: "a1", Name: "Ann"}
	loggedIn := State{Account: ann, IsLoggedIn: true, Token: "tok", SuccessMsg: "Login successful.."}

	assert.Equal(t, State{Loading: true}, Reduce(loggedIn, LoginRequested{}))
	assert.Equal(t, loggedIn, Reduce(State{Loading: true}, LoginSucceeded{Token: "tok", Account: ann, Msg: "Login successful.."}))
	assert.Equal(t, State{ErrorMsg: "Password incorrect!!"}, Reduce(State{Loading: true}, LoginFailed{Msg: "Password incorrect!!"}))
	assert.Equal(t, State{}, Reduce(loggedIn, LoggedOut{}))
	assert.Equal(t, State{Account: ann, IsLoggedIn: true, Token: "tok"}, Reduce(State{}, ProfileSaved{Account: ann, Token: "tok"}))
	assert.Equal(t, loggedIn, Reduce(loggedIn, unknownAction{}))
}

func TestStoreNotifiesSubscribers(t *testing.T) {
	s := New(State{})
	var seen []State
	unsubscribe := s.Subscribe(func(st State) { seen = append(seen, st) })

	s.Dispatch(LoginRequested{})
	unsubscribe()
	s.Dispatch(LoggedOut{})

	require.Len(t, seen, 1)
	assert.True(t, seen[0].Loading)
	assert.Equal(t, State{}, s.State())
}

type fakeAuth struct {
	login   *transport.LoginResponse
	profile *transport.ProfileResponse
	err     error
}

func (f fakeAuth) Login(context.Context, string, string) (*transport.LoginResponse, error) {
	return f.login, f.err
}

func (f fakeAuth) Profile(context.Context, string) (*transport.ProfileResponse, error) {
	return f.profile, f.err
}

type recorder struct {
	successes []string
	errors    []string
}

func (r *recorder) Success(msg string) { r.successes = append(r.successes, msg) }
func (r *recorder) Error(msg string)   { r.errors = append(r.errors, msg) }

func TestSessionLoginSuccess(t *testing.T) {
	tokens := &MemoryTokens{}
	notes := &recorder{}
	api := fakeAuth{login: &transport.LoginResponse{Token: "tok", Account: transport.Account{ID: "a1"}, Status: true, Msg: "Login successful.."}}
	s := NewSession(New(State{}), api, tokens, notes)

	require.NoError(t, s.Login(context.Background(), "ann@example.com", "pass"))

	st := s.Store().State()
	assert.True(t, st.IsLoggedIn)
	assert.Equal(t, "tok", st.Token)
	saved, _ := tokens.Load()
	assert.Equal(t, "tok", saved)
	assert.Equal(t, []string{"Login successful.."}, notes.successes)
}

func TestSessionLoginFailure(t *testing.T) {
	notes := &recorder{}
	api := fakeAuth{err: &gateway.APIError{Status: 400, Msg: "Password incorrect!!"}}
	s := NewSession(New(State{}), api, nil, notes)

	require.Error(t, s.Login(context.Background(), "ann@example.com", "nope"))

	st := s.Store().State()
	assert.False(t, st.IsLoggedIn)
	assert.False(t, st.Loading)
	assert.Equal(t, "Password incorrect!!", st.ErrorMsg)
	assert.Equal(t, []string{"Password incorrect!!"}, notes.errors)
}

func TestSessionRestoreAndLogout(t *testing.T) {
	tokens := &MemoryTokens{}
	require.NoError(t, tokens.Save("tok"))
	api := fakeAuth{profile: &transport.ProfileResponse{Account: transport.Account{ID: "a1", Name: "Ann"}}}
	s := NewSession(New(State{}), api, tokens, nil)

	s.Restore(context.Background())
	st := s.Store().State()
	assert.True(t, st.IsLoggedIn)
	assert.Equal(t, "Ann", st.Account.Name)

	require.NoError(t, s.Logout())
	assert.Equal(t, State{}, s.Store().State())
	saved, _ := tokens.Load()
	assert.Empty(t, saved)
}

func TestSaveProfileSwallowsErrors(t *testing.T) {
	s := NewSession(New(State{}), fakeAuth{err: errors.New("offline")}, nil, nil)
	s.SaveProfile(context.Background(), "tok")
	assert.Equal(t, State{}, s.Store().State())
}

func TestFetcher(t *testing.T) {
	notes := &recorder{}
	f := NewFetcher[transport.TaskListResponse](notes)
	msg := func(r *transport.TaskListResponse) string { return r.Msg }

	data, err := f.Fetch(context.Background(), func(context.Context) (*transport.TaskListResponse, error) {
		assert.True(t, f.State().Loading)
		return &transport.TaskListResponse{Tasks: []transport.Task{}, Status: true, Msg: "Tasks found successfully.."}, nil
	}, msg, FetchOptions{HideSuccess: true})
	require.NoError(t, err)
	assert.NotNil(t, data)
	st := f.State()
	assert.False(t, st.Loading)
	assert.Equal(t, "Tasks found successfully..", st.SuccessMsg)
	assert.Empty(t, notes.successes)

	_, err = f.Fetch(context.Background(), func(context.Context) (*transport.TaskListResponse, error) {
		return nil, &gateway.APIError{Status: 401, Msg: "Invalid token"}
	}, msg, FetchOptions{})
	require.Error(t, err)
	st = f.State()
	assert.False(t, st.Loading)
	assert.Nil(t, st.Data)
	assert.Equal(t, "Invalid token", st.ErrorMsg)
	assert.Equal(t, []string{"Invalid token"}, notes.errors)
}

func TestFetcherDefaultsSuccessMessage(t *testing.T) {
	f := NewFetcher[struct{}](nil)
	_, err := f.Fetch(context.Background(), func(context.Context) (*struct{}, error) {
		return &struct{}{}, nil
	}, nil, FetchOptions{})
	require.NoError(t, err)
	assert.Equal(t, "success", f.State().SuccessMsg)
}

func TestFileTokens(t *testing.T) {
	tokens := NewFileTokens(filepath.Join(t.TempDir(), "cfg", "token"))

	tok, err := tokens.Load()
	require.NoError(t, err)
	assert.Empty(t, tok)

	require.NoError(t, tokens.Save("abc"))
	tok, err = tokens.Load()
	require.NoError(t, err)
	assert.Equal(t, "abc", tok)

	require.NoError(t, tokens.Clear())
	require.NoError(t, tokens.Clear())
	tok, _ = tokens.Load()
	assert.Empty(t, tok)
}
