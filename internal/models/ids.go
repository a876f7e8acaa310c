package models

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

var idSeq atomic.Uint64

// NewMessageID returns an identifier that is unique for the lifetime of the
// process. The monotonic prefix keeps IDs ordered and trivially distinct even
// for submissions created in the same instant; the UUID suffix keeps them
// unguessable across restarts. Animators address placeholders by this ID, so
// a collision would let one submission overwrite another's content.
func NewMessageID() string {
	return fmt.Sprintf("%d-%s", idSeq.Add(1), uuid.New().String())
}
