package store

import (
	"context"
	"sync"

	"github.com/fastygo/taskboard/client/gateway"
)

// FetchState tracks one request-to-state bridge.
type FetchState[T any] struct {
	Loading    bool
	Data       *T
	SuccessMsg string
	ErrorMsg   string
}

// FetchOptions silences notifications. The zero value shows both.
type FetchOptions struct {
	HideSuccess bool
	HideError   bool
}

// Fetcher performs calls and mirrors their outcome into its state. It knows nothing
// about authentication; callers pass the token into the call.
type Fetcher[T any] struct {
	mu     sync.Mutex
	state  FetchState[T]
	notify Notifier
}

func NewFetcher[T any](notify Notifier) *Fetcher[T] {
	if notify == nil {
		notify = nopNotifier{}
	}
	return &Fetcher[T]{notify: notify}
}

func (f *Fetcher[T]) State() FetchState[T] {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Fetch runs call. msg extracts the server message from a successful result.
func (f *Fetcher[T]) Fetch(ctx context.Context, call func(context.Context) (*T, error), msg func(*T) string, opts FetchOptions) (*T, error) {
	f.mu.Lock()
	f.state.Loading = true
	f.mu.Unlock()

	data, err := call(ctx)

	f.mu.Lock()
	if err != nil {
		f.state = FetchState[T]{ErrorMsg: gateway.Message(err)}
		if f.state.ErrorMsg == "" {
			f.state.ErrorMsg = "error"
		}
	} else {
		f.state = FetchState[T]{Data: data, SuccessMsg: "success"}
		if msg != nil && data != nil {
			if m := msg(data); m != "" {
				f.state.SuccessMsg = m
			}
		}
	}
	state := f.state
	f.mu.Unlock()

	if err != nil {
		if !opts.HideError {
			f.notify.Error(state.ErrorMsg)
		}
		return nil, err
	}
	if !opts.HideSuccess {
		f.notify.Success(state.SuccessMsg)
	}
	return data, nil
}
