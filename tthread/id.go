package tthread

import (
	"cmp"
	"strconv"
)

// ID identifies a thread of execution. IDs of threads that are alive at the
// same time differ, and IDs are totally ordered so they can be sorted and
// used as map keys. The zero ID belongs to no thread.
type ID uint64

// Compare returns -1, 0 or +1 depending on whether id orders before, equal
// to or after other.
func (id ID) Compare(other ID) int { return cmp.Compare(id, other) }

func (id ID) String() string {
	if id == 0 {
		return "none"
	}
	return strconv.FormatUint(uint64(id), 10)
}
