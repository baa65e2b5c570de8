// Package uci drives the CRM's model-driven web UI: form fields, the
// main grid, sitemap navigation, and subgrids embedded in record forms.
//
// All layers share one Client, which wraps the session page and gates
// every interaction behind the host application's Xrm client object
// becoming available. Operations are sequential; the toolkit assumes
// one logical operation at a time against the single open page.
package uci

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/playwright-community/playwright-go"

	"github.com/nimbleqa/xrmkit/pkg/browser"
	"github.com/nimbleqa/xrmkit/pkg/config"
	"github.com/nimbleqa/xrmkit/pkg/logging"
)

// readyPollInterval is the spacing between readiness probes for the
// host client object.
const readyPollInterval = 500 * time.Millisecond

// appReadyJS probes for the host application's client API surface.
const appReadyJS = `() => typeof window.Xrm !== 'undefined' && window.Xrm.Page !== undefined && window.Xrm.Page !== null`

// Client is the bridge between the toolkit and the in-page Xrm client
// object. Settings are passed in explicitly; the client never reads
// ambient configuration.
type Client struct {
	page     playwright.Page
	settings config.Settings
	log      *logging.Logger
}

// NewClient wraps an open browser session.
func NewClient(session *browser.Session, settings config.Settings) *Client {
	log, _ := logging.NewLogger("uci")
	return &Client{
		page:     session.Page,
		settings: settings,
		log:      log,
	}
}

// Page exposes the underlying page for callers that need raw
// Playwright access alongside the typed layers.
func (c *Client) Page() playwright.Page {
	return c.page
}

// Login navigates to the app, completes the AAD-style credential form,
// and waits for the host client object to come up.
func (c *Client) Login(ctx context.Context) error {
	c.log.Infof("logging in to %s as %s", c.settings.AppURL, c.settings.Username)

	if _, err := c.page.Goto(c.settings.AppURL, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateLoad,
	}); err != nil {
		return fmt.Errorf("opening app: %w", err)
	}

	if err := c.page.Fill("input[type=email]", c.settings.Username); err != nil {
		return fmt.Errorf("filling username: %w", err)
	}
	if err := c.page.Click("input[type=submit]"); err != nil {
		return fmt.Errorf("submitting username: %w", err)
	}

	if err := c.page.Fill("input[type=password]", c.settings.Password); err != nil {
		return fmt.Errorf("filling password: %w", err)
	}
	if err := c.page.Click("input[type=submit]"); err != nil {
		return fmt.Errorf("submitting password: %w", err)
	}

	// "Stay signed in?" interstitial; absent on some tenants.
	if el, _ := c.page.QuerySelector("#idBtn_Back"); el != nil {
		if err := el.Click(); err != nil {
			return fmt.Errorf("dismissing stay-signed-in prompt: %w", err)
		}
	}

	return c.WaitForApp(ctx)
}

// WaitForApp polls until the host client object is reachable from the
// page, or the configured timeout elapses. Every other layer assumes
// this gate has passed.
func (c *Client) WaitForApp(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.settings.DefaultTimeout)
	defer cancel()

	probe := func() error {
		res, err := c.page.Evaluate(appReadyJS)
		if err != nil {
			return err
		}
		if ready, ok := res.(bool); ok && ready {
			return nil
		}
		return errors.New("host client object not available")
	}

	policy := backoff.WithContext(backoff.NewConstantBackOff(readyPollInterval), ctx)
	if err := backoff.Retry(probe, policy); err != nil {
		return fmt.Errorf("waiting for app readiness: %w", err)
	}

	c.log.Debugf("host client object available")
	return nil
}

// eval runs a page function with a single argument.
func (c *Client) eval(js string, arg any) (any, error) {
	return c.page.Evaluate(js, arg)
}

// settle serializes a pause through the automation layer so change
// handlers in the page get to run before the next step.
func (c *Client) settle(d time.Duration) {
	if d <= 0 {
		return
	}
	c.page.WaitForTimeout(float64(d.Milliseconds()))
}
