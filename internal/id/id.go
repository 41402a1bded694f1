// Package id generates opaque unique identifiers for catalog records.
package id

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// New returns an opaque identifier: a base-36 millisecond timestamp followed
// by a random suffix. The timestamp prefix keeps ids roughly sortable by
// creation time; the suffix makes collisions within the same millisecond
// overwhelmingly unlikely.
func New() string {
	prefix := strconv.FormatInt(time.Now().UnixMilli(), 36)
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return prefix + suffix
}
