package types

import (
	"strings"

	"github.com/oklog/ulid/v2"
)

const (
	UUID_PREFIX_PLAN           = "plan"
	UUID_PREFIX_DISCOUNT_AUDIT = "disc"
	UUID_PREFIX_REQUEST        = "req"
	UUID_PREFIX_WEBHOOK_EVENT  = "wh"
)

// GenerateUUID returns a lowercase ULID. ULIDs sort lexicographically by
// creation time, which keeps index pages warm on insert-heavy tables.
func GenerateUUID() string {
	return strings.ToLower(ulid.Make().String())
}

// GenerateUUIDWithPrefix returns a prefixed ULID, e.g. "plan_01hgw...".
func GenerateUUIDWithPrefix(prefix string) string {
	if prefix == "" {
		return GenerateUUID()
	}
	return prefix + "_" + GenerateUUID()
}
