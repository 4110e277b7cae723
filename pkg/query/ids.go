package query

import "strconv"

type idKind int

const (
	idNone idKind = iota
	idScalar
	idList
)

// IDSet selects the records of an ID-based lookup: either a single raw
// ID or a collection of numeric IDs. The zero value selects nothing.
type IDSet struct {
	kind   idKind
	scalar string
	list   []int
}

// OneID selects a single ID given as its raw string form. Whether the
// value is numeric is decided at lookup time; a non-numeric scalar
// selects nothing.
func OneID(id string) IDSet {
	return IDSet{kind: idScalar, scalar: id}
}

// ManyIDs selects a collection of IDs. An empty collection selects
// nothing.
func ManyIDs(ids ...int) IDSet {
	return IDSet{kind: idList, list: ids}
}

// Scalar returns the single raw ID and whether the set holds one.
func (s IDSet) Scalar() (string, bool) {
	return s.scalar, s.kind == idScalar
}

// IDs returns the ID collection and whether the set holds one.
func (s IDSet) IDs() ([]int, bool) {
	return s.list, s.kind == idList
}

// Empty reports whether the set selects nothing: no value, a
// non-numeric scalar, or an empty collection.
func (s IDSet) Empty() bool {
	switch s.kind {
	case idScalar:
		return !IsNumeric(s.scalar)
	case idList:
		return len(s.list) == 0
	}
	return true
}

// IsNumeric reports whether v parses as a number.
func IsNumeric(v string) bool {
	if v == "" {
		return false
	}
	_, err := strconv.ParseFloat(v, 64)
	return err == nil
}

// Chunk partitions ids into consecutive slices of at most size
// elements. The last slice may be shorter; input order is preserved.
func Chunk(ids []int, size int) [][]int {
	if size <= 0 {
		size = 1
	}
	var chunks [][]int
	for start := 0; start < len(ids); start += size {
		end := start + size
		if end > len(ids) {
			end = len(ids)
		}
		chunks = append(chunks, ids[start:end])
	}
	return chunks
}
