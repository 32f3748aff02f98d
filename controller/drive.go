package controller

import (
	"context"
)

// Drive dispatches events in order and runs the resulting commands until
// none remain. Commands run concurrently; their events are dispatched one
// at a time on the calling goroutine. Drive returns ctx.Err() if ctx ends
// while commands are pending.
func Drive(ctx context.Context, c *Controller, events ...Event) error {
	return drive(ctx, c, nil, nil, events)
}

// DriveObserved is Drive with a hook called after each event is dispatched,
// so the hook sees the state the event produced.
func DriveObserved(ctx context.Context, c *Controller, observe func(Event), events ...Event) error {
	return drive(ctx, c, observe, nil, events)
}

// Start runs the controller's Init commands to completion.
func Start(ctx context.Context, c *Controller) error {
	return drive(ctx, c, nil, c.Init(), nil)
}

func drive(ctx context.Context, c *Controller, observe func(Event), initial []Command, events []Event) error {
	results := make(chan Event)
	pending := 0

	run := func(cmds []Command) {
		for _, cmd := range cmds {
			if cmd == nil {
				continue
			}
			pending++
			go func() {
				ev := cmd(ctx)
				select {
				case results <- ev:
				case <-ctx.Done():
				}
			}()
		}
	}
	dispatch := func(ev Event) {
		run(c.Dispatch(ev))
		if observe != nil {
			observe(ev)
		}
	}

	run(initial)
	for _, ev := range events {
		dispatch(ev)
	}
	for pending > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-results:
			pending--
			if ev != nil {
				dispatch(ev)
			}
		}
	}
	return nil
}
