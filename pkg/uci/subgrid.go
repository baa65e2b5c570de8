package uci

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/nimbleqa/xrmkit/pkg/webapi"
)

// SubGrid reads the related-records views embedded in the open record
// form. Views are addressed by their subgrid control name.
type SubGrid struct {
	c *Client
}

// SubGrid returns the related-records accessor for this client.
func (c *Client) SubGrid() *SubGrid {
	return &SubGrid{c: c}
}

const subGridCountJS = `({ name }) => {
	const ctrl = window.Xrm.Page.getControl(name);
	if (!ctrl || typeof ctrl.getGrid !== 'function') { return { found: false }; }
	return { found: true, value: ctrl.getGrid().getTotalRecordCount() };
}`

const subGridIDsJS = `({ name }) => {
	const ctrl = window.Xrm.Page.getControl(name);
	if (!ctrl || typeof ctrl.getGrid !== 'function') { return { found: false }; }
	const ids = [];
	ctrl.getGrid().getRows().forEach(row => ids.push(row.getData().getEntity().getId()));
	return { found: true, value: ids };
}`

const subGridOpenJS = `({ name, index }) => {
	const ctrl = window.Xrm.Page.getControl(name);
	if (!ctrl || typeof ctrl.getGrid !== 'function') { return { found: false }; }
	const rows = ctrl.getGrid().getRows();
	if (index >= rows.getLength()) {
		return { found: true, outOfRange: true, length: rows.getLength() };
	}
	const entity = rows.get(index).getData().getEntity();
	window.Xrm.Navigation.openForm({ entityName: entity.getEntityName(), entityId: entity.getId() });
	return { found: true, outOfRange: false };
}`

// call runs a subgrid-scoped page function, mapping an unknown control
// name to ErrNotFound.
func (s *SubGrid) call(js, name string, arg map[string]any) (map[string]any, error) {
	res, err := s.c.eval(js, arg)
	if err != nil {
		return nil, fmt.Errorf("subgrid %q: %w", name, err)
	}
	env, ok := res.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("subgrid %q: unexpected page result %T", name, res)
	}
	if found, _ := env["found"].(bool); !found {
		return nil, fmt.Errorf("subgrid %q: %w", name, ErrNotFound)
	}
	return env, nil
}

// RecordCount returns the total number of records linked through the
// named subgrid, as reported by the host grid control.
func (s *SubGrid) RecordCount(name string) (int, error) {
	env, err := s.call(subGridCountJS, name, map[string]any{"name": name})
	if err != nil {
		return 0, err
	}
	count, ok := asInt(env["value"])
	if !ok {
		return 0, fmt.Errorf("subgrid %q: non-numeric record count %v", name, env["value"])
	}
	return count, nil
}

// RecordIDs returns the identifiers of the currently loaded subgrid
// rows, brace-stripped and lower-cased so they compare cleanly against
// Web API identifiers.
func (s *SubGrid) RecordIDs(name string) ([]string, error) {
	env, err := s.call(subGridIDsJS, name, map[string]any{"name": name})
	if err != nil {
		return nil, err
	}

	raw, _ := env["value"].([]any)
	ids := lo.Map(raw, func(v any, _ int) string {
		id, _ := v.(string)
		return webapi.NormalizeID(id)
	})
	return ids, nil
}

// OpenRecord opens the subgrid row at index in the record form.
func (s *SubGrid) OpenRecord(name string, index int) error {
	if index < 0 {
		return fmt.Errorf("subgrid %q row %d: %w", name, index, ErrOutOfRange)
	}

	env, err := s.call(subGridOpenJS, name, map[string]any{"name": name, "index": index})
	if err != nil {
		return err
	}
	if outOfRange, _ := env["outOfRange"].(bool); outOfRange {
		length, _ := asInt(env["length"])
		return fmt.Errorf("subgrid %q row %d of %d: %w", name, index, length, ErrOutOfRange)
	}

	s.c.log.Infof("opened subgrid %q record at index %d", name, index)
	return s.c.Grid().WaitUntilIdle()
}

// asInt accepts the numeric encodings the automation boundary may hand
// back for a whole number.
func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}
