package webapi

import (
	"strings"

	"github.com/google/uuid"
)

// NormalizeID canonicalizes a record identifier: surrounding braces
// stripped, lower-cased. The UI hands back "{1B2C...}" while the REST
// boundary uses bare lowercase GUIDs; normalizing both sides makes
// identifiers comparable with ==.
func NormalizeID(id string) string {
	trimmed := strings.Trim(strings.TrimSpace(id), "{}")
	if u, err := uuid.Parse(trimmed); err == nil {
		return u.String()
	}
	return strings.ToLower(trimmed)
}
