package region

import (
	"testing"

	"github.com/grailbio/testutil/expect"

	"github.com/grailbio/bio/rnaseq/ivalmap"
	"github.com/grailbio/bio/rnaseq/junction"
	"github.com/grailbio/bio/rnaseq/rnaseqconfig"
)

func TestPartitionNoCuts(t *testing.T) {
	cov := ivalmap.New()
	cov.Add(0, 100, 10)
	indel := ivalmap.New()

	r := New(0, 100, StartBoundary, EndBoundary, cov, indel)
	pexons := r.Partition(rnaseqconfig.DefaultConfig)

	expect.EQ(t, len(pexons), 1)
	expect.EQ(t, pexons[0].LPos, PosType(0))
	expect.EQ(t, pexons[0].RPos, PosType(100))
	expect.EQ(t, pexons[0].Ave, 10.0)
}

func TestPartitionCutsOnCoverageDiscontinuity(t *testing.T) {
	cov := ivalmap.New()
	cov.Add(0, 50, 1)
	cov.Add(50, 100, 20)
	indel := ivalmap.New()

	cfg := rnaseqconfig.DefaultConfig
	r := New(0, 100, StartBoundary, EndBoundary, cov, indel)
	pexons := r.Partition(cfg)

	expect.EQ(t, len(pexons), 2)
	expect.EQ(t, pexons[0].RPos, PosType(50))
	expect.EQ(t, pexons[0].RType, LeftSplice)
	expect.EQ(t, pexons[1].LPos, PosType(50))
	expect.EQ(t, pexons[1].LType, RightSplice)
}

func TestPartitionCutsOnIndelSupport(t *testing.T) {
	cov := ivalmap.New()
	cov.Add(0, 100, 10)
	indel := ivalmap.New()
	indel.Add(40, 60, 5)

	cfg := rnaseqconfig.DefaultConfig
	r := New(0, 100, StartBoundary, EndBoundary, cov, indel)
	pexons := r.Partition(cfg)

	expect.EQ(t, len(pexons), 2)
	expect.EQ(t, pexons[0].RPos, PosType(40))
	expect.EQ(t, pexons[1].LPos, PosType(40))
}

func TestClampEnforcesMinimumOne(t *testing.T) {
	cov := ivalmap.New() // empty map -> Overlap is always 0
	indel := ivalmap.New()
	r := New(0, 10, StartBoundary, EndBoundary, cov, indel)
	pexons := r.Partition(rnaseqconfig.DefaultConfig)
	expect.EQ(t, len(pexons), 1)
	expect.EQ(t, pexons[0].Ave, 1.0)
	expect.EQ(t, pexons[0].Dev, 1.0)
}

func TestLocatePexonLeftAndRight(t *testing.T) {
	pexons := []PartialExon{
		{LPos: 0, RPos: 50, LType: StartBoundary, RType: LeftSplice},
		{LPos: 50, RPos: 100, LType: RightSplice, RType: EndBoundary},
	}
	idx := BuildPartialExonMap(pexons)
	cfg := rnaseqconfig.DefaultConfig

	expect.EQ(t, idx.LocatePexonLeft(10, cfg), 0)
	expect.EQ(t, idx.LocatePexonRight(50, cfg), 0)
	expect.EQ(t, idx.LocatePexonLeft(60, cfg), 1)
}

func TestLocatePexonOutsideRange(t *testing.T) {
	pexons := []PartialExon{{LPos: 0, RPos: 50}}
	idx := BuildPartialExonMap(pexons)
	cfg := rnaseqconfig.DefaultConfig
	expect.EQ(t, idx.LocatePexonLeft(100, cfg), -1)
}

func TestLinkJunctionsMatchesUniqueEndpoints(t *testing.T) {
	pexons := []PartialExon{
		{LPos: 0, RPos: 100},
		{LPos: 200, RPos: 300},
	}
	junctions := []junction.Junction{
		{LPos: 100, RPos: 200, Count: 3, LExon: -1, RExon: -1},
	}
	LinkJunctions(pexons, junctions)
	expect.EQ(t, junctions[0].LExon, 0)
	expect.EQ(t, junctions[0].RExon, 1)
}

func TestLinkJunctionsNoMatchLeavesUnlinked(t *testing.T) {
	pexons := []PartialExon{{LPos: 0, RPos: 100}}
	junctions := []junction.Junction{
		{LPos: 999, RPos: 1999, Count: 1, LExon: -1, RExon: -1},
	}
	LinkJunctions(pexons, junctions)
	expect.EQ(t, junctions[0].LExon, -1)
	expect.EQ(t, junctions[0].RExon, -1)
}

func TestLinkJunctionsPanicsOnDuplicateLPos(t *testing.T) {
	pexons := []PartialExon{
		{LPos: 0, RPos: 50},
		{LPos: 0, RPos: 100},
	}
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic for duplicate LPos")
		}
	}()
	LinkJunctions(pexons, nil)
}
