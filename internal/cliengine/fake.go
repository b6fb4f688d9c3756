package cliengine

import (
	"context"
	"sync"
)

// Fake is a Runner for tests: it records every call and returns a canned
// output or error.
type Fake struct {
	mu     sync.Mutex
	Output string
	Err    error
	Calls  []FakeCall
}

type FakeCall struct {
	Engine string
	Prompt string
}

func NewFake(output string) *Fake {
	return &Fake{Output: output}
}

func (f *Fake) Run(ctx context.Context, engine, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, FakeCall{Engine: engine, Prompt: prompt})
	if f.Err != nil {
		return "", f.Err
	}
	return f.Output, nil
}
