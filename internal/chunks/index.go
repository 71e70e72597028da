package chunks

import (
	"strconv"
	"strings"
)

// Index identifies one block by its position along every axis.
type Index []int

// Key renders the index as a block key: name followed by the coordinates,
// all separated by sep. An empty name yields just the coordinates.
// Example: Key("overlap-1", "."), index (1, 4) -> "overlap-1.1.4"
func (idx Index) Key(name, sep string) string {
	var sb strings.Builder
	sb.WriteString(name)
	for i, v := range idx {
		if i > 0 || name != "" {
			sb.WriteString(sep)
		}
		sb.WriteString(strconv.Itoa(v))
	}
	return sb.String()
}

// IsFirst reports whether the block is the first one along axis.
func (idx Index) IsFirst(axis int) bool {
	return idx[axis] == 0
}

// IsLast reports whether the block is the last one along axis of l.
func (idx Index) IsLast(l Layout, axis int) bool {
	return idx[axis] == l.NumBlocks(axis)-1
}

// Shift returns a copy of idx moved by delta along axis.
func (idx Index) Shift(axis, delta int) Index {
	out := append(Index(nil), idx...)
	out[axis] += delta
	return out
}

// With returns a copy of idx with the coordinate along axis set to pos.
func (idx Index) With(axis, pos int) Index {
	out := append(Index(nil), idx...)
	out[axis] = pos
	return out
}

func (idx Index) String() string {
	parts := make([]string, len(idx))
	for i, v := range idx {
		parts[i] = strconv.Itoa(v)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
