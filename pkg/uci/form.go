package uci

import (
	"fmt"
	"time"
)

// isoMillis is the transport encoding for temporal values. The host
// client object cannot cross the automation boundary, so dates travel
// as ISO-8601 strings with millisecond precision and are rebuilt on
// each side.
const isoMillis = "2006-01-02T15:04:05.000Z07:00"

// Form reads and writes attributes on the currently displayed record
// form. It holds no state of its own; every call is one round trip
// against whatever form is loaded.
type Form struct {
	c *Client
}

// Form returns the form field accessor for this client.
func (c *Client) Form() *Form {
	return &Form{c: c}
}

// SetValueSettings tunes a single SetValue call.
type SetValueSettings struct {
	// SettleTime is how long to pause after firing the change
	// notification. Zero means the configured default.
	SettleTime time.Duration

	// ForceValue bypasses the editability check before writing.
	ForceValue bool
}

// resolveSetSettings accepts the loose settings forms SetValue takes: a
// bare number (settle milliseconds), a duration, or a full settings
// struct.
func resolveSetSettings(defaultSettle time.Duration, settings ...any) (SetValueSettings, error) {
	resolved := SetValueSettings{SettleTime: defaultSettle}

	if len(settings) == 0 {
		return resolved, nil
	}
	if len(settings) > 1 {
		return resolved, fmt.Errorf("at most one settings value allowed, got %d", len(settings))
	}

	switch v := settings[0].(type) {
	case nil:
	case time.Duration:
		resolved.SettleTime = v
	case int:
		resolved.SettleTime = time.Duration(v) * time.Millisecond
	case int64:
		resolved.SettleTime = time.Duration(v) * time.Millisecond
	case float64:
		resolved.SettleTime = time.Duration(v) * time.Millisecond
	case SetValueSettings:
		resolved.ForceValue = v.ForceValue
		if v.SettleTime > 0 {
			resolved.SettleTime = v.SettleTime
		}
	case *SetValueSettings:
		if v != nil {
			resolved.ForceValue = v.ForceValue
			if v.SettleTime > 0 {
				resolved.SettleTime = v.SettleTime
			}
		}
	default:
		return resolved, fmt.Errorf("unsupported settings type %T", settings[0])
	}

	return resolved, nil
}

// FieldAssignment pairs an attribute name with the value to write.
// SetValues applies assignments in slice order.
type FieldAssignment struct {
	Name  string
	Value any
}

const getValueJS = `({ name }) => {
	const attr = window.Xrm.Page.getAttribute(name);
	if (!attr) { return { found: false }; }
	const value = attr.getValue();
	if (value instanceof Date) {
		return { found: true, kind: 'datetime', value: value.toISOString() };
	}
	return { found: true, kind: 'plain', value: value };
}`

const setValueJS = `({ name, kind, value }) => {
	const attr = window.Xrm.Page.getAttribute(name);
	if (!attr) { return { found: false }; }
	attr.setValue(kind === 'datetime' ? new Date(value) : value);
	attr.fireOnChange();
	return { found: true };
}`

const attrMethodJS = `({ name, method }) => {
	const attr = window.Xrm.Page.getAttribute(name);
	if (!attr) { return { found: false }; }
	return { found: true, value: attr[method]() };
}`

const setRequiredLevelJS = `({ name, level }) => {
	const attr = window.Xrm.Page.getAttribute(name);
	if (!attr) { return { found: false }; }
	attr.setRequiredLevel(level);
	return { found: true };
}`

const getFormattedValueJS = `({ name }) => {
	const attr = window.Xrm.Page.getAttribute(name);
	if (!attr) { return { found: false }; }
	if (typeof attr.getFormattedValue === 'function') {
		return { found: true, value: attr.getFormattedValue() };
	}
	if (typeof attr.getText === 'function') {
		const text = attr.getText();
		return { found: true, value: Array.isArray(text) ? text.join('; ') : text };
	}
	const value = attr.getValue();
	return { found: true, value: value === null ? '' : String(value) };
}`

var isEditableJS = `({ name }) => {` + interactablePredicateJS + `
	const attr = window.Xrm.Page.getAttribute(name);
	if (!attr) { return { found: false }; }
	const controls = attr.controls.get();
	return { found: true, value: controls.some(xrmkitInteractable) };
}`

// attrCall runs an attribute-scoped page function and unwraps the
// found/value envelope, mapping a missing attribute to ErrNotFound.
func (f *Form) attrCall(js, name string, arg map[string]any) (map[string]any, error) {
	res, err := f.c.eval(js, arg)
	if err != nil {
		return nil, fmt.Errorf("attribute %q: %w", name, err)
	}
	env, ok := res.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("attribute %q: unexpected page result %T", name, res)
	}
	if found, _ := env["found"].(bool); !found {
		return nil, fmt.Errorf("attribute %q: %w", name, ErrNotFound)
	}
	return env, nil
}

// GetValue returns the attribute's current value. Temporal attributes
// come back as time.Time with millisecond precision.
func (f *Form) GetValue(name string) (any, error) {
	env, err := f.attrCall(getValueJS, name, map[string]any{"name": name})
	if err != nil {
		return nil, err
	}

	if kind, _ := env["kind"].(string); kind == "datetime" {
		raw, _ := env["value"].(string)
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, fmt.Errorf("attribute %q: decoding date %q: %w", name, raw, err)
		}
		return t, nil
	}
	return env["value"], nil
}

// SetValue writes value to the attribute, fires its change notification,
// and pauses for the settle time so change handlers finish before the
// next automation step.
//
// settings may be a bare number (settle milliseconds), a time.Duration,
// or a SetValueSettings. Unless ForceValue is set, the attribute must
// have at least one interactable control or the write fails with
// ErrNotEditable and nothing is written.
func (f *Form) SetValue(name string, value any, settings ...any) error {
	cfg, err := resolveSetSettings(f.c.settings.SettleTime, settings...)
	if err != nil {
		return fmt.Errorf("attribute %q: %w", name, err)
	}

	if !cfg.ForceValue {
		editable, err := f.IsEditable(name)
		if err != nil {
			return err
		}
		if !editable {
			return fmt.Errorf("attribute %q: %w", name, ErrNotEditable)
		}
	}

	arg := map[string]any{"name": name, "kind": "plain", "value": value}
	if t, ok := value.(time.Time); ok {
		arg["kind"] = "datetime"
		arg["value"] = t.UTC().Format(isoMillis)
	}

	if _, err := f.attrCall(setValueJS, name, arg); err != nil {
		return err
	}

	f.c.settle(cfg.SettleTime)
	return nil
}

// SetValues applies assignments one by one in slice order. Not atomic:
// the first failure stops the walk and earlier writes stay applied.
func (f *Form) SetValues(assignments []FieldAssignment, settings ...any) error {
	for _, a := range assignments {
		if err := f.SetValue(a.Name, a.Value, settings...); err != nil {
			return err
		}
	}
	return nil
}

// IsEditable reports whether the attribute has at least one control
// that is enabled, visible, and inside a fully visible container chain.
func (f *Form) IsEditable(name string) (bool, error) {
	env, err := f.attrCall(isEditableJS, name, map[string]any{"name": name})
	if err != nil {
		return false, err
	}
	editable, _ := env["value"].(bool)
	return editable, nil
}

// GetAttributeType returns the attribute's type tag as reported by the
// host client object (e.g. "string", "datetime", "optionset", "lookup").
func (f *Form) GetAttributeType(name string) (string, error) {
	return f.attrString(name, "getAttributeType")
}

// IsDirty reports whether the attribute has unsaved changes.
func (f *Form) IsDirty(name string) (bool, error) {
	env, err := f.attrCall(attrMethodJS, name, map[string]any{"name": name, "method": "getIsDirty"})
	if err != nil {
		return false, err
	}
	dirty, _ := env["value"].(bool)
	return dirty, nil
}

// GetRequiredLevel returns "none", "recommended", or "required".
func (f *Form) GetRequiredLevel(name string) (string, error) {
	return f.attrString(name, "getRequiredLevel")
}

// SetRequiredLevel sets the attribute's requirement level. The host
// application validates the level value itself.
func (f *Form) SetRequiredLevel(name, level string) error {
	_, err := f.attrCall(setRequiredLevelJS, name, map[string]any{"name": name, "level": level})
	return err
}

// GetFormattedValue returns the attribute's display text.
func (f *Form) GetFormattedValue(name string) (string, error) {
	env, err := f.attrCall(getFormattedValueJS, name, map[string]any{"name": name})
	if err != nil {
		return "", err
	}
	s, _ := env["value"].(string)
	return s, nil
}

func (f *Form) attrString(name, method string) (string, error) {
	env, err := f.attrCall(attrMethodJS, name, map[string]any{"name": name, "method": method})
	if err != nil {
		return "", err
	}
	s, _ := env["value"].(string)
	return s, nil
}
