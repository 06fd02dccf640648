package handler

import (
	"context"
)

// requestPrompter answers the screen's dialogs from the request: alerts are
// collected for the response and Confirm is answered by ?confirm=yes.
type requestPrompter struct {
	ctx     context.Context
	confirm bool

	alerts   []string
	asked    string
	answered bool
}

func (p *requestPrompter) Alert(title string) {
	p.alerts = append(p.alerts, title)
}

func (p *requestPrompter) Confirm(title string, onYes func(context.Context)) {
	p.asked = title
	if !p.confirm {
		return
	}
	p.answered = true
	onYes(p.ctx)
}

func parseConfirm(v string) bool {
	switch v {
	case "yes", "true", "1":
		return true
	}
	return false
}
