package hyperedge

import "github.com/grailbio/bio/rnaseq/splicegraph"

// route is one materialized hyperedge: an ordered chain of splice-graph
// edges with the aggregate read/read-pair support that produced it.
type route struct {
	edges []splicegraph.EdgeID
	count int
}

// Set is the materialized form of an Aggregator's node lists against a
// concrete splice graph (spec.md §4.12, hyper_set.cc): each vertex-index
// path becomes a chain of splice-graph edge ids, indexed both forwards
// (route list) and backwards (edge -> routes containing it) so that graph
// simplification passes can query and rewrite routes as the graph changes.
type Set struct {
	routes []route
	e2s    map[splicegraph.EdgeID][]int // edge -> indices into routes containing it
}

// Build converts every aggregated node list into a chain of splice-graph
// edges, dropping node lists below minCount or whose vertex chain is no
// longer realizable against gr (a consecutive pair with no edge between
// them: the partial-exon partition the node list was computed against has
// since changed).
func Build(gr *splicegraph.Graph, entries []*nodeEntry, minCount int) *Set {
	s := &Set{e2s: make(map[splicegraph.EdgeID][]int)}
	for _, ent := range entries {
		if ent.count < minCount || len(ent.ids) < 2 {
			continue
		}
		chain := make([]splicegraph.EdgeID, 0, len(ent.ids)-1)
		ok := true
		for i := 0; i+1 < len(ent.ids); i++ {
			eid, found := gr.FindEdge(ent.ids[i], ent.ids[i+1])
			if !found {
				ok = false
				break
			}
			chain = append(chain, eid)
		}
		if !ok || len(chain) == 0 {
			continue
		}
		s.addRoute(chain, ent.count)
	}
	return s
}

func (s *Set) addRoute(chain []splicegraph.EdgeID, count int) {
	idx := len(s.routes)
	s.routes = append(s.routes, route{edges: chain, count: count})
	for _, e := range chain {
		s.e2s[e] = append(s.e2s[e], idx)
	}
}

func (s *Set) rebuildIndex() {
	s.e2s = make(map[splicegraph.EdgeID][]int)
	for i, r := range s.routes {
		for _, e := range r.edges {
			s.e2s[e] = append(s.e2s[e], i)
		}
	}
}

// Purify drops routes that collapsed to a single edge (they carry no
// connectivity information beyond what the splice graph already states),
// merges routes that became identical chains after Replace rewrites
// (summing their counts), and then drops every remaining route that is a
// consecutive subsequence of some other, strictly longer, retained route:
// the shorter route's support is already implied by the longer one, so
// keeping both double-counts the same evidence. Ported from
// original_source/src/src/hyper_set.cc:159-178, which makes this decision
// via get_intersection (hyper_set.cc:91-107) — a route is dropped when the
// set of routes containing every one of its edges has size >= 2, i.e. some
// other route is a proper superset.
func (s *Set) Purify() {
	merged := make(map[string]int)
	var order []string
	chains := make(map[string][]splicegraph.EdgeID)
	for _, r := range s.routes {
		if len(r.edges) < 2 {
			continue
		}
		key := chainKey(r.edges)
		if _, ok := merged[key]; !ok {
			order = append(order, key)
			chains[key] = r.edges
		}
		merged[key] += r.count
	}
	s.routes = s.routes[:0]
	for _, key := range order {
		s.routes = append(s.routes, route{edges: chains[key], count: merged[key]})
	}
	s.rebuildIndex()

	kept := s.routes[:0]
	for _, r := range s.routes {
		if len(s.GetIntersection(r.edges)) < 2 {
			kept = append(kept, r)
		}
	}
	s.routes = kept
	s.rebuildIndex()
}

func chainKey(edges []splicegraph.EdgeID) string {
	b := make([]byte, 0, len(edges)*8)
	for _, e := range edges {
		v := uint64(e)
		b = append(b, byte(v), byte(v>>8), byte(v>>16), byte(v>>24),
			byte(v>>32), byte(v>>40), byte(v>>48), byte(v>>56))
	}
	return string(b)
}

// GetSuccessors returns, for every route that contains e, the edge
// immediately following it (deduplicated).
func (s *Set) GetSuccessors(e splicegraph.EdgeID) []splicegraph.EdgeID {
	seen := make(map[splicegraph.EdgeID]bool)
	var out []splicegraph.EdgeID
	for _, ri := range s.e2s[e] {
		edges := s.routes[ri].edges
		for i, x := range edges {
			if x == e && i+1 < len(edges) {
				nxt := edges[i+1]
				if !seen[nxt] {
					seen[nxt] = true
					out = append(out, nxt)
				}
			}
		}
	}
	return out
}

// GetPredecessors returns, for every route that contains e, the edge
// immediately preceding it (deduplicated).
func (s *Set) GetPredecessors(e splicegraph.EdgeID) []splicegraph.EdgeID {
	seen := make(map[splicegraph.EdgeID]bool)
	var out []splicegraph.EdgeID
	for _, ri := range s.e2s[e] {
		edges := s.routes[ri].edges
		for i, x := range edges {
			if x == e && i > 0 {
				prv := edges[i-1]
				if !seen[prv] {
					seen[prv] = true
					out = append(out, prv)
				}
			}
		}
	}
	return out
}

// GetIntersection returns the indices of routes whose edge chain contains
// every edge in v, used to test whether any observed read path supports a
// particular combination of edges before a graph simplification merges
// them.
func (s *Set) GetIntersection(v []splicegraph.EdgeID) []int {
	if len(v) == 0 {
		return nil
	}
	candidates := append([]int(nil), s.e2s[v[0]]...)
	for _, e := range v[1:] {
		present := make(map[int]bool)
		for _, ri := range s.e2s[e] {
			present[ri] = true
		}
		filtered := candidates[:0]
		for _, ri := range candidates {
			if present[ri] {
				filtered = append(filtered, ri)
			}
		}
		candidates = filtered
	}
	return candidates
}

// routePair is an (in-edge, out-edge) pair observed to be directly
// connected by some route passing through a shared vertex, with the
// aggregate count of routes supporting that specific connection.
type routePair struct {
	In, Out splicegraph.EdgeID
	Count   int
}

// GetRoutes returns, for vertex x, every (in-edge, out-edge) pair directly
// connected by a route through x, with aggregate support counts. This is
// the per-vertex evidence a bridging/decomposition pass (out of scope here)
// uses to decide which incoming edge continues into which outgoing edge.
func (s *Set) GetRoutes(x int, gr *splicegraph.Graph) []routePair {
	counts := make(map[[2]splicegraph.EdgeID]int)
	var order [][2]splicegraph.EdgeID
	for _, r := range s.routes {
		for i := 0; i+1 < len(r.edges); i++ {
			in, out := r.edges[i], r.edges[i+1]
			ie := gr.Edge(in)
			oe := gr.Edge(out)
			if ie.Target != x || oe.Source != x {
				continue
			}
			key := [2]splicegraph.EdgeID{in, out}
			if _, ok := counts[key]; !ok {
				order = append(order, key)
			}
			counts[key] += r.count
		}
	}
	out := make([]routePair, 0, len(order))
	for _, key := range order {
		out = append(out, routePair{In: key[0], Out: key[1], Count: counts[key]})
	}
	return out
}

// Replace rewrites every route: a contiguous occurrence of seq is collapsed
// into the single edge e. Used after a splice-graph simplification pass
// merges a chain of edges into one.
func (s *Set) Replace(seq []splicegraph.EdgeID, e splicegraph.EdgeID) {
	if len(seq) == 0 {
		return
	}
	for i, r := range s.routes {
		s.routes[i] = route{edges: replaceChain(r.edges, seq, e), count: r.count}
	}
	s.rebuildIndex()
}

func replaceChain(edges, seq []splicegraph.EdgeID, e splicegraph.EdgeID) []splicegraph.EdgeID {
	var out []splicegraph.EdgeID
	i := 0
	for i < len(edges) {
		if matchesAt(edges, seq, i) {
			out = append(out, e)
			i += len(seq)
			continue
		}
		out = append(out, edges[i])
		i++
	}
	return out
}

func matchesAt(edges, seq []splicegraph.EdgeID, at int) bool {
	if at+len(seq) > len(edges) {
		return false
	}
	for j, x := range seq {
		if edges[at+j] != x {
			return false
		}
	}
	return true
}

// Remove deletes edge e from every route that contains it. e must be the
// first or last edge of each such route — removing an interior edge would
// fragment a hyperedge's connectivity claim rather than merely shortening
// it, so that case panics instead of silently corrupting the route.
func (s *Set) Remove(e splicegraph.EdgeID) {
	for i, r := range s.routes {
		if len(r.edges) == 0 {
			continue
		}
		switch {
		case r.edges[0] == e && r.edges[len(r.edges)-1] == e && len(r.edges) == 1:
			s.routes[i].edges = nil
		case r.edges[0] == e:
			s.routes[i].edges = append([]splicegraph.EdgeID(nil), r.edges[1:]...)
		case r.edges[len(r.edges)-1] == e:
			s.routes[i].edges = append([]splicegraph.EdgeID(nil), r.edges[:len(r.edges)-1]...)
		default:
			if containsEdge(r.edges, e) {
				panic("hyperedge: Remove called on an interior edge")
			}
		}
	}
	s.rebuildIndex()
}

func containsEdge(edges []splicegraph.EdgeID, e splicegraph.EdgeID) bool {
	for _, x := range edges {
		if x == e {
			return true
		}
	}
	return false
}

// LeftExtend reports whether there is extension evidence for e: some route
// contains e somewhere other than its left (first) terminal, meaning a read
// or read pair has been observed connecting into e from another edge. A
// bridging/decomposition pass (out of scope here) uses this to decide
// whether e's source vertex should gain an incoming boundary edge. Ported
// from hyper_set::left_extend in original_source/src/src/hyper_set.cc: a
// read-only query, not a route-mutating operation.
func (s *Set) LeftExtend(e splicegraph.EdgeID) bool {
	for _, ri := range s.e2s[e] {
		edges := s.routes[ri].edges
		if len(edges) > 0 && edges[0] != e {
			return true
		}
	}
	return false
}

// RightExtend reports whether there is extension evidence for e: some route
// contains e somewhere other than its right (last) terminal. Ported from
// hyper_set::right_extend.
func (s *Set) RightExtend(e splicegraph.EdgeID) bool {
	for _, ri := range s.e2s[e] {
		edges := s.routes[ri].edges
		if len(edges) > 0 && edges[len(edges)-1] != e {
			return true
		}
	}
	return false
}

// Routes returns every materialized hyperedge's edge chain; Count returns
// the support of the route at the same index.
func (s *Set) Routes() [][]splicegraph.EdgeID {
	out := make([][]splicegraph.EdgeID, len(s.routes))
	for i, r := range s.routes {
		out[i] = r.edges
	}
	return out
}

// Count returns the aggregate support for route i, as returned by Routes.
func (s *Set) Count(i int) int {
	return s.routes[i].count
}
