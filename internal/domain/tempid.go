package domain

import (
	"strings"

	"github.com/google/uuid"
)

// TempIDPrefix marks locally-synthesized ids. Server-issued ids never
// carry it, so the UI can tell unconfirmed entities apart and disable
// destructive actions on them.
const TempIDPrefix = "tmp-"

// NewTempID returns a fresh placeholder id for an entity that has not
// been confirmed by the server yet.
func NewTempID() string {
	return TempIDPrefix + uuid.NewString()
}

// IsTempID reports whether id was synthesized locally.
func IsTempID(id string) bool {
	return strings.HasPrefix(id, TempIDPrefix)
}
