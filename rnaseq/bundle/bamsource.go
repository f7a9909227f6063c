package bundle

import (
	"context"
	"fmt"

	"github.com/grailbio/hts/sam"

	"github.com/grailbio/bio/rnaseq/junction"
)

// HitsFromBAM converts a slice of aligned, mapped *sam.Record into Hits,
// deriving Matched/Inserted/Deleted/SplicedGaps from each record's CIGAR
// string and XS from its "XS" optional tag. It is a convenience adapter
// demonstrating how the out-of-scope alignment-parser collaborator plugs
// into Bundle.Build; nothing in Bundle.Build calls it.
//
// recs must already be sorted by ascending position and restricted to one
// bundle's span; HitsFromBAM does not filter, sort, or bundle-partition.
func HitsFromBAM(ctx context.Context, recs []*sam.Record) ([]Hit, error) {
	hits := make([]Hit, 0, len(recs))
	for _, r := range recs {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		if r.Flags&sam.Unmapped != 0 {
			continue
		}
		h, err := hitFromRecord(r)
		if err != nil {
			return nil, fmt.Errorf("bundle: %s: %w", r.Name, err)
		}
		hits = append(hits, h)
	}
	return hits, nil
}

func hitFromRecord(r *sam.Record) (Hit, error) {
	h := Hit{
		QName: r.Name,
		Pos:   int32(r.Pos),
		XS:    xsTag(r),
	}
	if r.Flags&sam.Reverse != 0 {
		h.Flag |= FlagReverse
	}
	if r.Flags&sam.Read1 != 0 {
		h.Flag |= FlagRead1
	}
	if r.Flags&sam.Read2 != 0 {
		h.Flag |= FlagRead2
	}

	pos := int32(r.Pos)
	matchStart := pos
	for _, op := range r.Cigar {
		n := int32(op.Len())
		switch op.Type() {
		case sam.CigarMatch, sam.CigarEqual, sam.CigarMismatch:
			pos += n
		case sam.CigarInsertion:
			if matchStart < pos {
				h.Matched = append(h.Matched, junction.PackKey(matchStart, pos))
			}
			matchStart = pos
			if n > 0 {
				h.Inserted = append(h.Inserted, junction.PackKey(pos, pos+n))
			}
		case sam.CigarDeletion:
			if matchStart < pos {
				h.Matched = append(h.Matched, junction.PackKey(matchStart, pos))
			}
			if n > 0 {
				h.Deleted = append(h.Deleted, junction.PackKey(pos, pos+n))
			}
			pos += n
			matchStart = pos
		case sam.CigarSkipped:
			if matchStart < pos {
				h.Matched = append(h.Matched, junction.PackKey(matchStart, pos))
			}
			if n > 0 {
				h.SplicedGaps = append(h.SplicedGaps, junction.PackKey(pos, pos+n))
			}
			pos += n
			matchStart = pos
		case sam.CigarSoftClipped, sam.CigarHardClipped:
			// clips consume no reference coordinate.
		}
	}
	if matchStart < pos {
		h.Matched = append(h.Matched, junction.PackKey(matchStart, pos))
	}
	h.RPos = pos
	return h, nil
}

var xsSAMTag = sam.Tag{'X', 'S'}

func xsTag(r *sam.Record) byte {
	aux := r.AuxFields.Get(xsSAMTag)
	if aux == nil {
		return XSNone
	}
	switch v := aux.Value().(type) {
	case []byte:
		if len(v) == 1 {
			return v[0]
		}
	case string:
		if len(v) == 1 {
			return v[0]
		}
	case rune:
		return byte(v)
	}
	return XSNone
}
