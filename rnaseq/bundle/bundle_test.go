package bundle

import (
	"testing"

	"github.com/grailbio/testutil/expect"

	"github.com/grailbio/bio/rnaseq/junction"
	"github.com/grailbio/bio/rnaseq/rnaseqconfig"
)

// twoExonHits builds a small bundle over [0,300): two read pairs spliced
// across one junction (100,200), giving 2x depth over [0,50) and [250,300).
func twoExonHits() []Hit {
	matched1 := []int64{junction.PackKey(0, 50)}
	matched2 := []int64{junction.PackKey(250, 300)}
	spliced := []int64{junction.PackKey(100, 200)}
	return []Hit{
		{QName: "r1", Pos: 0, RPos: 300, XS: XSPlus, Matched: matched1, SplicedGaps: spliced},
		{QName: "r1", Pos: 0, RPos: 300, XS: XSPlus, Matched: matched2, SplicedGaps: spliced},
		{QName: "r2", Pos: 0, RPos: 300, XS: XSPlus, Matched: matched1, SplicedGaps: spliced},
		{QName: "r2", Pos: 0, RPos: 300, XS: XSPlus, Matched: matched2, SplicedGaps: spliced},
	}
}

func TestBuildProducesSpliceGraphWithJunction(t *testing.T) {
	b := &Bundle{Chrm: "chr1", LPos: 0, RPos: 300, Hits: twoExonHits()}
	cfg := rnaseqconfig.DefaultConfig
	cfg.MinSpliceBoundaryHits = 1

	gr, hs, pexons, err := b.Build(cfg)
	expect.Nil(t, err)
	if gr == nil {
		t.Fatalf("expected a non-nil splice graph")
	}
	expect.True(t, len(pexons) >= 2)
	expect.EQ(t, b.Strand, XSPlus)
	_ = hs
}

func TestBuildIgnoresSingleExonWhenConfigured(t *testing.T) {
	hits := []Hit{
		{QName: "r1", Pos: 0, RPos: 100, Matched: []int64{junction.PackKey(0, 100)}},
	}
	b := &Bundle{Chrm: "chr1", LPos: 0, RPos: 100, Hits: hits}
	cfg := rnaseqconfig.DefaultConfig
	cfg.IgnoreSingleExonTranscripts = true

	gr, hs, pexons, err := b.Build(cfg)
	expect.Nil(t, err)
	if gr != nil {
		t.Fatalf("expected nil splice graph for single-exon bundle")
	}
	if hs != nil || pexons != nil {
		t.Fatalf("expected nil hyperedge set and pexons alongside nil graph")
	}
}

func TestBuildReportsMalformedInterval(t *testing.T) {
	hits := []Hit{
		{QName: "r1", Pos: 0, RPos: 100, Matched: []int64{junction.PackKey(50, 50)}},
	}
	b := &Bundle{Chrm: "chr1", LPos: 0, RPos: 100, Hits: hits}
	cfg := rnaseqconfig.DefaultConfig
	cfg.IgnoreSingleExonTranscripts = true

	_, _, _, err := b.Build(cfg)
	if err == nil {
		t.Fatalf("expected a malformed-interval error")
	}
}
