package slot

import (
	"encoding/json"
	"sort"
)

// NumSlots is the number of addressable slots in an account (index is a u8)
const NumSlots = 256

// Storage is the complete slot area of an account.
// It is a value type: assigning a Storage copies every slot.
type Storage struct {
	items [NumSlots]Word
}

// GetItem returns the word stored at index
func (s *Storage) GetItem(index uint8) Word {
	return s.items[index]
}

// SetItem stores a word at index
func (s *Storage) SetItem(index uint8, w Word) {
	s.items[index] = w
}

// SetValue stores a scalar at index
func (s *Storage) SetValue(index uint8, value uint64) {
	s.items[index] = NewWord(value)
}

// Value returns the scalar stored at index
func (s *Storage) Value(index uint8) uint64 {
	return s.items[index].Value()
}

// NonZero returns every slot that holds a non-zero word
func (s *Storage) NonZero() map[uint8]Word {
	m := make(map[uint8]Word)
	for i, w := range s.items {
		if !w.IsZero() {
			m[uint8(i)] = w
		}
	}

	return m
}

// Indexes returns the sorted indexes of every non-zero slot
func (s *Storage) Indexes() []uint8 {
	idx := make([]uint8, 0)
	for i, w := range s.items {
		if !w.IsZero() {
			idx = append(idx, uint8(i))
		}
	}

	sort.Slice(idx, func(i, j int) bool { return idx[i] < idx[j] })
	return idx
}

// Diff returns the indexes whose words differ between s and other
func (s *Storage) Diff(other *Storage) []uint8 {
	diff := make([]uint8, 0)
	for i := range s.items {
		if s.items[i] != other.items[i] {
			diff = append(diff, uint8(i))
		}
	}

	return diff
}

// MarshalJSON encodes only the non-zero slots
func (s Storage) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.NonZero())
}

// UnmarshalJSON decodes a sparse slot map
func (s *Storage) UnmarshalJSON(b []byte) error {
	var m map[uint8]Word
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}

	*s = Storage{}
	for i, w := range m {
		s.items[i] = w
	}

	return nil
}
