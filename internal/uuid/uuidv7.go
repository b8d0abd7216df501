// Package uuid generates the record identifiers used by every store backend.
package uuid

import (
	"regexp"

	googleuuid "github.com/google/uuid"
)

// canonical is the lowercase 8-4-4-4-12 form New produces. Ids arriving in
// URLs must match it exactly so one record never has two spellings.
var canonical = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

// New generates a UUIDv7 string. Version 7 ids sort by creation time, so
// listing by id keeps the natural insertion order in both SQL and MongoDB.
func New() string {
	id, err := googleuuid.NewV7()
	if err != nil {
		return googleuuid.NewString()
	}
	return id.String()
}

// IsValid reports whether s is a record id in canonical form.
func IsValid(s string) bool {
	return canonical.MatchString(s)
}
