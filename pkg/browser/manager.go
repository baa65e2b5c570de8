// Package browser owns the Playwright lifecycle for an automation run:
// driver installation, browser launch, and teardown. Higher layers only
// ever see the Session's Page.
package browser

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/playwright-community/playwright-go"
)

// Manager starts and stops the single browser session a run uses.
type Manager struct {
	pw          *playwright.Playwright
	session     *Session
	initialized bool
}

// NewManager creates an uninitialized manager.
func NewManager() *Manager {
	return &Manager{}
}

// Initialize installs (if needed) and starts the Playwright driver.
// Must be called before Start. Driver output is discarded so it cannot
// interleave with test runner output.
func (m *Manager) Initialize() error {
	if m.initialized {
		return nil
	}

	opts := &playwright.RunOptions{
		Verbose: false,
		Stdout:  io.Discard,
		Stderr:  io.Discard,
	}

	if err := playwright.Install(opts); err != nil {
		return fmt.Errorf("installing playwright: %w", err)
	}

	pw, err := playwright.Run(opts)
	if err != nil {
		return fmt.Errorf("starting playwright: %w", err)
	}

	m.pw = pw
	m.initialized = true
	return nil
}

// Start launches Chromium and opens the session page.
func (m *Manager) Start(opts Options) (*Session, error) {
	if !m.initialized {
		return nil, errors.New("browser manager not initialized")
	}
	if m.session != nil {
		return nil, errors.New("session already started")
	}

	if opts.Viewport == nil {
		opts.Viewport = &Viewport{
			Width:  DefaultViewportWidth,
			Height: DefaultViewportHeight,
		}
	}
	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}

	b, err := m.pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
	})
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	ctx, err := b.NewContext(playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  opts.Viewport.Width,
			Height: opts.Viewport.Height,
		},
	})
	if err != nil {
		b.Close()
		return nil, fmt.Errorf("creating context: %w", err)
	}

	page, err := ctx.NewPage()
	if err != nil {
		ctx.Close()
		b.Close()
		return nil, fmt.Errorf("creating page: %w", err)
	}

	page.SetDefaultTimeout(float64(opts.Timeout.Milliseconds()))

	m.session = &Session{
		Browser:   b,
		Context:   ctx,
		Page:      page,
		Headless:  opts.Headless,
		CreatedAt: time.Now(),
	}
	return m.session, nil
}

// Session returns the active session, or an error when none is open.
func (m *Manager) Session() (*Session, error) {
	if m.session == nil {
		return nil, errors.New("no active session")
	}
	return m.session, nil
}

// Close tears down the session. Individual close errors are collected,
// not fatal, so one stuck resource does not leak the others.
func (m *Manager) Close() error {
	if m.session == nil {
		return nil
	}

	var errs []error
	if err := m.session.Page.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := m.session.Context.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := m.session.Browser.Close(); err != nil {
		errs = append(errs, err)
	}
	m.session = nil

	if len(errs) > 0 {
		return fmt.Errorf("closing session: %v", errs)
	}
	return nil
}

// Shutdown closes the session and stops the Playwright driver.
func (m *Manager) Shutdown() error {
	closeErr := m.Close()

	if m.initialized && m.pw != nil {
		if err := m.pw.Stop(); err != nil {
			return fmt.Errorf("stopping playwright: %w", err)
		}
		m.initialized = false
	}
	return closeErr
}
