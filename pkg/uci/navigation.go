package uci

import (
	"fmt"
	"strings"

	"github.com/playwright-community/playwright-go"
)

// Sitemap selectors. Areas live behind the area switcher at the bottom
// of the sidebar; groups and sub-areas are always rendered.
const (
	areaSwitcherSelector = `button[data-id="sitemap-areaSwitcher-expand-btn"]`
	areaEntrySelector    = `li[data-id^="sitemap-area-"]`
	groupHeaderSelector  = `h3[data-id^="sitemap-sitemapAreaGroup-"]`
	subAreaSelector      = `li[data-id^="sitemap-entity-"]`
)

// Navigation traverses the app's sidebar by visible label.
type Navigation struct {
	c *Client
}

// Navigation returns the sidebar accessor for this client.
func (c *Client) Navigation() *Navigation {
	return &Navigation{c: c}
}

// OpenArea switches to the named sitemap area.
func (n *Navigation) OpenArea(label string) error {
	if err := n.c.page.Click(areaSwitcherSelector); err != nil {
		return fmt.Errorf("expanding area switcher: %w", err)
	}

	entry, err := n.c.findByText(areaEntrySelector, label)
	if err != nil {
		return fmt.Errorf("area %q: %w", label, err)
	}
	if err := entry.Click(); err != nil {
		return fmt.Errorf("opening area %q: %w", label, err)
	}

	n.c.log.Infof("opened area %q", label)
	return nil
}

// OpenGroup scrolls the named group header into view. Group headers are
// not clickable; scrolling makes their sub-areas reachable.
func (n *Navigation) OpenGroup(label string) error {
	header, err := n.c.findByText(groupHeaderSelector, label)
	if err != nil {
		return fmt.Errorf("group %q: %w", label, err)
	}
	if err := header.ScrollIntoViewIfNeeded(); err != nil {
		return fmt.Errorf("scrolling to group %q: %w", label, err)
	}
	return nil
}

// OpenSubArea clicks the named sub-area entry and waits for its list to
// load.
func (n *Navigation) OpenSubArea(label string) error {
	entry, err := n.c.findByText(subAreaSelector, label)
	if err != nil {
		return fmt.Errorf("sub-area %q: %w", label, err)
	}
	if err := entry.Click(); err != nil {
		return fmt.Errorf("opening sub-area %q: %w", label, err)
	}

	n.c.log.Infof("opened sub-area %q", label)
	return n.c.Grid().WaitUntilIdle()
}

// findByText returns the first element matching selector whose trimmed
// text equals label, or ErrNotFound.
func (c *Client) findByText(selector, label string) (playwright.ElementHandle, error) {
	els, err := c.page.QuerySelectorAll(selector)
	if err != nil {
		return nil, err
	}
	for _, el := range els {
		text, err := el.TextContent()
		if err != nil {
			continue
		}
		if strings.TrimSpace(text) == label {
			return el, nil
		}
	}
	return nil, ErrNotFound
}
