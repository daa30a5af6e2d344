package output

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/huh/spinner"
)

// SpinnerOption configures RunWithSpinner.
type SpinnerOption func(*spinnerConfig)

type spinnerConfig struct {
	title   string
	timeout time.Duration
}

// WithTitle sets the text shown next to the spinner.
func WithTitle(title string) SpinnerOption {
	return func(c *spinnerConfig) { c.title = title }
}

// WithTimeout bounds how long the action may run. Zero means no limit.
func WithTimeout(d time.Duration) SpinnerOption {
	return func(c *spinnerConfig) { c.timeout = d }
}

// RunWithSpinner runs action, drawing a spinner while it is in flight when
// stdout is a terminal. The action's own error is what comes back; when a
// timeout is set and expires first, the context error is returned instead.
// Without a terminal the spinner is skipped and the result awaited directly.
func RunWithSpinner(ctx context.Context, action func() error, opts ...SpinnerOption) error {
	cfg := spinnerConfig{title: "Working..."}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.timeout)
		defer cancel()
	}

	errCh := make(chan error, 1)
	go func() { errCh <- action() }()

	if !IsTTY() {
		return awaitAction(ctx, errCh)
	}

	var actionErr error
	spinErr := spinner.New().
		Title(cfg.title).
		Action(func() { actionErr = awaitAction(ctx, errCh) }).
		Run()
	if spinErr != nil {
		return fmt.Errorf("spinner: %w", spinErr)
	}
	return actionErr
}

// awaitAction blocks until the action delivers its result or ctx expires,
// whichever comes first. The buffered channel keeps the action goroutine
// from leaking when the context wins.
func awaitAction(ctx context.Context, errCh <-chan error) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}
