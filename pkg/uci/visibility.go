package uci

// interactablePredicateJS defines the single in-page predicate deciding
// whether a control can actually be interacted with: not disabled,
// visible, and every ancestor container (section, tab) visible too. A
// field inside a collapsed section reports visible=true itself, so the
// ancestor walk is what catches it. Both the field-write path and the
// control-state queries inject this same snippet.
const interactablePredicateJS = `
function xrmkitInteractable(control) {
	if (typeof control.getDisabled === 'function' && control.getDisabled()) {
		return false;
	}
	if (typeof control.getVisible === 'function' && !control.getVisible()) {
		return false;
	}
	let parent = typeof control.getParent === 'function' ? control.getParent() : null;
	while (parent) {
		if (typeof parent.getVisible === 'function' && !parent.getVisible()) {
			return false;
		}
		parent = typeof parent.getParent === 'function' ? parent.getParent() : null;
	}
	return true;
}`
