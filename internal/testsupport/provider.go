// Package testsupport holds fakes and fixtures shared by package tests.
package testsupport

import (
	"context"
	"errors"
	"sync"

	"fitsync/backend/internal/generation"
)

// ErrUnexpectedCall is returned when a FakeProvider has no queued response.
var ErrUnexpectedCall = errors.New("fake provider: no response queued")

// FakeProvider replays queued responses and records every request.
type FakeProvider struct {
	mu    sync.Mutex
	json  [][]byte
	text  []string
	errs  []error
	calls []generation.Request
}

// NewFakeProvider returns a provider with nothing queued.
func NewFakeProvider() *FakeProvider {
	return &FakeProvider{}
}

// QueueJSON appends raw JSON responses.
func (f *FakeProvider) QueueJSON(responses ...string) *FakeProvider {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range responses {
		f.json = append(f.json, []byte(r))
	}
	return f
}

// QueueText appends free-text responses.
func (f *FakeProvider) QueueText(responses ...string) *FakeProvider {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.text = append(f.text, responses...)
	return f
}

// QueueError makes the next call of either kind fail with err.
func (f *FakeProvider) QueueError(err error) *FakeProvider {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs = append(f.errs, err)
	return f
}

// Calls returns the requests seen so far.
func (f *FakeProvider) Calls() []generation.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]generation.Request(nil), f.calls...)
}

// CallCount returns the number of provider calls.
func (f *FakeProvider) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *FakeProvider) GenerateJSON(ctx context.Context, req generation.Request) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, req)
	if err := f.nextErr(ctx); err != nil {
		return nil, err
	}
	if len(f.json) == 0 {
		return nil, ErrUnexpectedCall
	}
	out := f.json[0]
	f.json = f.json[1:]
	return out, nil
}

func (f *FakeProvider) GenerateText(ctx context.Context, req generation.Request) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, req)
	if err := f.nextErr(ctx); err != nil {
		return "", err
	}
	if len(f.text) == 0 {
		return "", ErrUnexpectedCall
	}
	out := f.text[0]
	f.text = f.text[1:]
	return out, nil
}

func (f *FakeProvider) nextErr(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(f.errs) == 0 {
		return nil
	}
	err := f.errs[0]
	f.errs = f.errs[1:]
	return err
}

var _ generation.Provider = (*FakeProvider)(nil)
