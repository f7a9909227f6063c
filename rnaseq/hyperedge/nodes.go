package hyperedge

import (
	"encoding/binary"
	"sort"

	"github.com/dgryski/go-farm"
)

// nodeEntry is one distinct (sorted, 1-shifted) pexon-index list and its
// aggregated count.
type nodeEntry struct {
	ids   []int
	count int
}

// nodeTable accumulates hyperedge node lists (spec.md's "node map"). It is
// keyed by a farm.Hash64 bucket with exact-slice collision resolution,
// rather than a string-encoded key: the accumulation loop in build_hyper_
// edges2 runs once per read-name group in a bundle with potentially many
// thousands of reads, and hashing the raw int slice with a fast
// non-cryptographic hash (the same role github.com/dgryski/go-farm plays
// elsewhere in the grailbio/bio stack) avoids the string-formatting
// allocation a fmt.Sprint-based key would cost on every hit.
type nodeTable struct {
	buckets map[uint64][]*nodeEntry
}

func newNodeTable() *nodeTable {
	return &nodeTable{buckets: make(map[uint64][]*nodeEntry)}
}

func hashIDs(ids []int) uint64 {
	buf := make([]byte, 8*len(ids))
	for i, id := range ids {
		binary.LittleEndian.PutUint64(buf[i*8:], uint64(id))
	}
	return farm.Hash64(buf)
}

func equalIDs(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// addNodeList implements hyper_set.cc:add_node_list: sort the set, shift
// every index by +1 to line up with splice-graph vertex numbering (pexon i
// is splice-graph vertex i+1), and merge into an existing entry or insert a
// fresh one with count c.
func (t *nodeTable) addNodeList(ids []int, c int) {
	v := append([]int(nil), ids...)
	sort.Ints(v)
	v = dedupSorted(v)
	for i := range v {
		v[i]++
	}

	h := hashIDs(v)
	for _, e := range t.buckets[h] {
		if equalIDs(e.ids, v) {
			e.count += c
			return
		}
	}
	t.buckets[h] = append(t.buckets[h], &nodeEntry{ids: v, count: c})
}

func dedupSorted(v []int) []int {
	if len(v) == 0 {
		return v
	}
	out := v[:1]
	for _, x := range v[1:] {
		if x != out[len(out)-1] {
			out = append(out, x)
		}
	}
	return out
}

// entries returns every accumulated node list, in no particular order.
func (t *nodeTable) entries() []*nodeEntry {
	var out []*nodeEntry
	for _, bucket := range t.buckets {
		out = append(out, bucket...)
	}
	return out
}
