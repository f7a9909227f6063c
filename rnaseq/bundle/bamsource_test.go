package bundle

import (
	"context"
	"testing"

	"github.com/grailbio/hts/sam"
	"github.com/grailbio/testutil/expect"
)

func newTestRecord(name string, pos int, cigar sam.Cigar, flags sam.Flags) *sam.Record {
	r := sam.GetFromFreePool()
	r.Name = name
	r.Pos = pos
	r.Cigar = cigar
	r.Flags = flags
	return r
}

func TestHitsFromBAMSkipsUnmapped(t *testing.T) {
	recs := []*sam.Record{
		newTestRecord("r1", 0, sam.Cigar{sam.NewCigarOp(sam.CigarMatch, 10)}, sam.Unmapped),
	}
	hits, err := HitsFromBAM(context.Background(), recs)
	expect.Nil(t, err)
	expect.EQ(t, len(hits), 0)
}

func TestHitsFromBAMSimpleMatch(t *testing.T) {
	recs := []*sam.Record{
		newTestRecord("r1", 100, sam.Cigar{sam.NewCigarOp(sam.CigarMatch, 50)}, 0),
	}
	hits, err := HitsFromBAM(context.Background(), recs)
	expect.Nil(t, err)
	expect.EQ(t, len(hits), 1)
	expect.EQ(t, hits[0].Pos, PosType(100))
	expect.EQ(t, hits[0].RPos, PosType(150))
	expect.EQ(t, len(hits[0].Matched), 1)
}

func TestHitsFromBAMSplicedRead(t *testing.T) {
	recs := []*sam.Record{
		newTestRecord("r1", 100, sam.Cigar{
			sam.NewCigarOp(sam.CigarMatch, 20),
			sam.NewCigarOp(sam.CigarSkipped, 500),
			sam.NewCigarOp(sam.CigarMatch, 30),
		}, 0),
	}
	hits, err := HitsFromBAM(context.Background(), recs)
	expect.Nil(t, err)
	expect.EQ(t, len(hits), 1)
	h := hits[0]
	expect.EQ(t, len(h.Matched), 2)
	expect.EQ(t, len(h.SplicedGaps), 1)
	expect.EQ(t, h.RPos, PosType(100+20+500+30))
}

func TestHitsFromBAMIndels(t *testing.T) {
	recs := []*sam.Record{
		newTestRecord("r1", 0, sam.Cigar{
			sam.NewCigarOp(sam.CigarMatch, 10),
			sam.NewCigarOp(sam.CigarInsertion, 3),
			sam.NewCigarOp(sam.CigarMatch, 10),
			sam.NewCigarOp(sam.CigarDeletion, 2),
			sam.NewCigarOp(sam.CigarMatch, 10),
		}, 0),
	}
	hits, err := HitsFromBAM(context.Background(), recs)
	expect.Nil(t, err)
	h := hits[0]
	expect.EQ(t, len(h.Inserted), 1)
	expect.EQ(t, len(h.Deleted), 1)
	expect.EQ(t, len(h.Matched), 3)
}

func TestHitsFromBAMFlags(t *testing.T) {
	recs := []*sam.Record{
		newTestRecord("r1", 0, sam.Cigar{sam.NewCigarOp(sam.CigarMatch, 10)}, sam.Reverse|sam.Read1),
	}
	hits, err := HitsFromBAM(context.Background(), recs)
	expect.Nil(t, err)
	expect.True(t, hits[0].Flag&FlagReverse != 0)
	expect.True(t, hits[0].Flag&FlagRead1 != 0)
	expect.True(t, hits[0].Flag&FlagRead2 == 0)
}

func TestXSTagDefaultsToNone(t *testing.T) {
	r := newTestRecord("r1", 0, sam.Cigar{sam.NewCigarOp(sam.CigarMatch, 10)}, 0)
	expect.EQ(t, xsTag(r), XSNone)
}

func TestXSTagReadsAuxField(t *testing.T) {
	r := newTestRecord("r1", 0, sam.Cigar{sam.NewCigarOp(sam.CigarMatch, 10)}, 0)
	aux, err := sam.NewAux(xsSAMTag, "+")
	expect.Nil(t, err)
	r.AuxFields = append(r.AuxFields, aux)
	expect.EQ(t, xsTag(r), XSPlus)
}
