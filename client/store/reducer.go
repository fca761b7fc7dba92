// Package store holds the client's authentication state. State changes only
// through Reduce, driven by the actions in this package.
package store

import "github.com/fastygo/taskboard/api/transport"

// State is the client's view of the session.
type State struct {
	Loading    bool
	Account    transport.Account
	IsLoggedIn bool
	Token      string
	SuccessMsg string
	ErrorMsg   string
}

// Action is one of the five transitions below.
type Action interface {
	action()
}

type LoginRequested struct{}

type LoginSucceeded struct {
	Token   string
	Account transport.Account
	Msg     string
}

type LoginFailed struct {
	Msg string
}

type LoggedOut struct{}

type ProfileSaved struct {
	Account transport.Account
	Token   string
}

func (LoginRequested) action() {}
func (LoginSucceeded) action() {}
func (LoginFailed) action()    {}
func (LoggedOut) action()      {}
func (ProfileSaved) action()   {}

// Reduce returns the state after a. Unknown actions leave s unchanged.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case LoginRequested:
		return State{Loading: true}
	case LoginSucceeded:
		return State{
			Account:    a.Account,
			IsLoggedIn: true,
			Token:      a.Token,
			SuccessMsg: a.Msg,
		}
	case LoginFailed:
		return State{ErrorMsg: a.Msg}
	case LoggedOut:
		return State{}
	case ProfileSaved:
		return State{
			Account:    a.Account,
			IsLoggedIn: true,
			Token:      a.Token,
		}
	default:
		return s
	}
}
