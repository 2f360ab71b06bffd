package slot

import (
	"encoding/binary"
	"fmt"

	"github.com/google/uuid"
)

// Word is the 4-field record held by a single slot
// Scalar values are stored as [value, 0, 0, 0]
type Word [4]uint64

// ZeroWord is the value of an unset slot
var ZeroWord = Word{}

// NewWord returns a word holding a single scalar value
func NewWord(value uint64) Word {
	return Word{value, 0, 0, 0}
}

// Value returns the first field of the word
func (w Word) Value() uint64 {
	return w[0]
}

// IsZero returns true if every field is zero
func (w Word) IsZero() bool {
	return w == ZeroWord
}

// UUIDWord packs a UUID into the first two fields of a word
func UUIDWord(id uuid.UUID) Word {
	return Word{
		binary.BigEndian.Uint64(id[:8]),
		binary.BigEndian.Uint64(id[8:]),
		0,
		0,
	}
}

// UUID unpacks a UUID stored with UUIDWord
func (w Word) UUID() uuid.UUID {
	var id uuid.UUID
	binary.BigEndian.PutUint64(id[:8], w[0])
	binary.BigEndian.PutUint64(id[8:], w[1])
	return id
}

func (w Word) String() string {
	return fmt.Sprintf("[%d, %d, %d, %d]", w[0], w[1], w[2], w[3])
}
