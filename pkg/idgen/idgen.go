// Package idgen produces the short string ids used for meal slots, days and
// grocery items.
package idgen

import (
	"strings"

	"github.com/google/uuid"
)

// New returns a new short unique id: the first group of a random UUID.
// Eight hex characters keep persisted blobs and export files compact while
// staying unique within a single user's data.
func New() string {
	id := uuid.NewString()
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}
