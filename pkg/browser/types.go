package browser

import (
	"time"

	"github.com/playwright-community/playwright-go"
)

// Session holds the Playwright resources behind one automation run.
type Session struct {
	// Browser is the Playwright browser instance.
	Browser playwright.Browser

	// Context is the isolated browser context.
	Context playwright.BrowserContext

	// Page is the single active page. The toolkit's execution model is
	// one logical operation at a time against this page.
	Page playwright.Page

	// Headless indicates whether the browser runs without a window.
	Headless bool

	// CreatedAt is when the session was opened.
	CreatedAt time.Time
}

// Options configures a new browser session.
type Options struct {
	// Headless controls whether the browser runs without a visible window.
	Headless bool

	// Viewport sets the initial viewport size.
	Viewport *Viewport

	// Timeout sets the default timeout for page operations.
	Timeout time.Duration
}

// Viewport represents the browser viewport dimensions.
type Viewport struct {
	Width  int
	Height int
}

// Default values applied when Options fields are zero.
const (
	DefaultTimeout        = 30 * time.Second
	DefaultViewportWidth  = 1440
	DefaultViewportHeight = 900
)
