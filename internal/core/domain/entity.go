package domain

import (
	"fmt"
	"strings"
)

// EntityKind tags the three user-managed entity collections.
type EntityKind string

const (
	EntityAccount EntityKind = "account"
	EntityLabel   EntityKind = "label"
	EntityRecord  EntityKind = "record"
)

// EntityKinds lists every kind in a stable order.
var EntityKinds = []EntityKind{EntityAccount, EntityLabel, EntityRecord}

// ParseEntityKind accepts singular or plural spellings ("records", "Record").
func ParseEntityKind(s string) (EntityKind, error) {
	k := strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), "s")
	for _, kind := range EntityKinds {
		if string(kind) == k {
			return kind, nil
		}
	}
	return "", fmt.Errorf("unknown entity kind %q", s)
}
