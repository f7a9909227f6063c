package hyperedge

import "sort"

// Interval is a single matched (aligned, non-indel, non-intron) interval of
// a hit against the reference, expressed as a genomic half-open [Lo, Hi).
type Interval struct {
	Lo, Hi int32
}

// HitView is the minimal read-level data build_hyper_edges2 needs: a read
// name to group paired/split alignments by, and the matched intervals that
// get projected onto pexon indices. Callers own the full alignment record
// (bundle.Hit); HitView is what they hand to this package to avoid a
// bundle<->hyperedge import cycle.
type HitView struct {
	QName    string
	Unmapped bool
	Matched  []Interval
}

// PexonLocator maps a genomic position to the index of the partial exon
// that should anchor a hyperedge's left (LocateLeft) or right (LocateRight)
// boundary. A negative return means no suitable partial exon was found and
// the interval is skipped, mirroring the original's locate_left_partial_
// exon/locate_right_partial_exon returning -1.
type PexonLocator struct {
	LocateLeft  func(p int32) int
	LocateRight func(p int32) int
}

// Aggregator implements build_hyper_edges2 (spec.md §4.11): it folds every
// hit's matched intervals into a run of pexon indices, and merges runs
// belonging to the same read-name group into a single ordered node list.
// When a run starts more than one pexon past the end of the accumulated
// list, the accumulated list is discarded and accumulation restarts from
// that run.
type Aggregator struct {
	loc   PexonLocator
	table *nodeTable
}

// NewAggregator constructs an Aggregator that resolves genomic positions to
// partial-exon indices via loc.
func NewAggregator(loc PexonLocator) *Aggregator {
	return &Aggregator{loc: loc, table: newNodeTable()}
}

// Add folds hits into the aggregator's node table. hits need not already be
// grouped by read name: Add stable-sorts a copy by QName first, mirroring
// the original's assumption that same-qname hits are processed
// consecutively.
func (a *Aggregator) Add(hits []HitView) {
	sorted := append([]HitView(nil), hits...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].QName < sorted[j].QName })

	var acc []int
	var accName string
	for _, h := range sorted {
		if h.Unmapped {
			continue
		}
		run := a.matchedRun(h)
		if len(run) == 0 {
			continue
		}

		newGroup := acc == nil || accName != h.QName
		accName = h.QName
		switch {
		case newGroup:
			a.flush(acc)
			acc = run
		case len(acc) > 0 && acc[len(acc)-1]+1 < run[0]:
			// The new run does not pick up where the accumulated run left
			// off: the two alignments for this read name are inconsistent,
			// so the accumulated list is dropped without being recorded.
			acc = run
		default:
			acc = append(acc, run...)
		}
	}
	a.flush(acc)
}

// flush commits an accumulated pexon-index run as one occurrence of a node
// list, but only if it spans at least two distinct pexons: a run that
// collapsed to a single pexon carries no path information and is
// discarded, matching spec.md §4.11's "if |set(sp)| >= 2 ... otherwise
// discard" rule.
func (a *Aggregator) flush(acc []int) {
	if distinctCount(acc) < 2 {
		return
	}
	a.table.addNodeList(acc, 1)
}

func distinctCount(v []int) int {
	seen := make(map[int]bool, len(v))
	for _, x := range v {
		seen[x] = true
	}
	return len(seen)
}

// matchedRun projects a hit's matched intervals onto a single ordered run
// of pexon indices, concatenating every interval's [left, right] pexon
// span in alignment order. Intervals that fail to locate on either end are
// skipped rather than aborting the whole hit.
func (a *Aggregator) matchedRun(h HitView) []int {
	var run []int
	for _, iv := range h.Matched {
		left := a.loc.LocateLeft(iv.Lo)
		right := a.loc.LocateRight(iv.Hi)
		if left < 0 || right < 0 || left > right {
			continue
		}
		for j := left; j <= right; j++ {
			run = append(run, j)
		}
	}
	return run
}

// Entries returns every aggregated node list (1-based, splice-graph vertex
// numbered) with its occurrence count.
func (a *Aggregator) Entries() []*nodeEntry {
	return a.table.entries()
}
