package uci

import (
	"fmt"

	"github.com/playwright-community/playwright-go"
)

// Selectors for the main entity grid in the model-driven UI.
const (
	gridRowSelector       = `div[data-id="grid-container"] div[role="row"][row-index]`
	gridSpinnerSelector   = `div[data-id="grid-progress-indicator"]`
	gridQuickFindSelector = `input[data-id="quickFind-textbox"]`
	gridHeaderSelector    = `div[role="columnheader"]`
	gridPrimaryLink       = `a[data-id="grid-cell-primary-link"]`
	gridRowCheckbox       = `div[role="gridcell"][data-type="checkbox"]`
)

// Grid operates on the main entity list currently shown.
type Grid struct {
	c *Client
}

// Grid returns the grid accessor for this client.
func (c *Client) Grid() *Grid {
	return &Grid{c: c}
}

// WaitUntilIdle blocks until the grid's loading indicator clears.
// Resolves immediately when no indicator is present.
func (g *Grid) WaitUntilIdle() error {
	_, err := g.c.page.WaitForSelector(gridSpinnerSelector, playwright.PageWaitForSelectorOptions{
		State: playwright.WaitForSelectorStateHidden,
	})
	if err != nil {
		return fmt.Errorf("waiting for grid to settle: %w", err)
	}
	return nil
}

// RowCount returns the number of data rows currently rendered.
func (g *Grid) RowCount() (int, error) {
	if err := g.WaitUntilIdle(); err != nil {
		return 0, err
	}
	rows, err := g.c.page.QuerySelectorAll(gridRowSelector)
	if err != nil {
		return 0, fmt.Errorf("querying grid rows: %w", err)
	}
	return len(rows), nil
}

// Search types text into the quick-find box and submits it, then waits
// for the grid to reload.
func (g *Grid) Search(text string) error {
	if err := g.c.page.Fill(gridQuickFindSelector, text); err != nil {
		return fmt.Errorf("filling quick find: %w", err)
	}
	if err := g.c.page.Press(gridQuickFindSelector, "Enter"); err != nil {
		return fmt.Errorf("submitting quick find: %w", err)
	}
	return g.WaitUntilIdle()
}

// Sort clicks the header of the named column, toggling its sort order.
func (g *Grid) Sort(columnLabel string) error {
	header, err := g.c.findByText(gridHeaderSelector, columnLabel)
	if err != nil {
		return fmt.Errorf("column %q: %w", columnLabel, err)
	}
	if err := header.Click(); err != nil {
		return fmt.Errorf("sorting by %q: %w", columnLabel, err)
	}
	return g.WaitUntilIdle()
}

// SelectRow toggles the selection checkbox of the row at index.
func (g *Grid) SelectRow(index int) error {
	row, err := g.row(index)
	if err != nil {
		return err
	}

	checkbox, err := row.QuerySelector(gridRowCheckbox)
	if err != nil {
		return fmt.Errorf("selecting row %d: %w", index, err)
	}
	if checkbox != nil {
		if err := checkbox.Click(); err != nil {
			return fmt.Errorf("selecting row %d: %w", index, err)
		}
		return nil
	}

	// Grids without a checkbox column select on plain click.
	if err := row.Click(); err != nil {
		return fmt.Errorf("selecting row %d: %w", index, err)
	}
	return nil
}

// OpenRecord opens the record behind the row at index and waits for the
// record form to come up.
func (g *Grid) OpenRecord(index int) error {
	row, err := g.row(index)
	if err != nil {
		return err
	}

	link, err := row.QuerySelector(gridPrimaryLink)
	if err != nil {
		return fmt.Errorf("opening row %d: %w", index, err)
	}
	if link != nil {
		err = link.Click()
	} else {
		err = row.Dblclick()
	}
	if err != nil {
		return fmt.Errorf("opening row %d: %w", index, err)
	}

	g.c.log.Infof("opened grid record at index %d", index)
	return g.WaitUntilIdle()
}

// row fetches the row at index or fails with ErrOutOfRange.
func (g *Grid) row(index int) (playwright.ElementHandle, error) {
	if index < 0 {
		return nil, fmt.Errorf("row index %d: %w", index, ErrOutOfRange)
	}
	if err := g.WaitUntilIdle(); err != nil {
		return nil, err
	}
	rows, err := g.c.page.QuerySelectorAll(gridRowSelector)
	if err != nil {
		return nil, fmt.Errorf("querying grid rows: %w", err)
	}
	if index >= len(rows) {
		return nil, fmt.Errorf("row index %d of %d rows: %w", index, len(rows), ErrOutOfRange)
	}
	return rows[index], nil
}
