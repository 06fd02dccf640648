package tui

import (
	"context"
	"sync"
)

type pendingConfirm struct {
	title string
	onYes func(context.Context)
}

// prompter queues the screen's dialogs until the model renders them. Screen
// flows run inside commands, so access is guarded.
type prompter struct {
	mu      sync.Mutex
	alert   string
	confirm *pendingConfirm
}

func (p *prompter) Alert(title string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.alert = title
}

func (p *prompter) Confirm(title string, onYes func(context.Context)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.confirm = &pendingConfirm{title: title, onYes: onYes}
}

// takeAlert returns and clears the pending alert.
func (p *prompter) takeAlert() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	a := p.alert
	p.alert = ""
	return a
}

// takeConfirm returns and clears the pending confirmation.
func (p *prompter) takeConfirm() *pendingConfirm {
	p.mu.Lock()
	defer p.mu.Unlock()
	c := p.confirm
	p.confirm = nil
	return c
}
