package gtf

import (
	"fmt"
	"io"

	"github.com/grailbio/bio/rnaseq/bundle"
	"github.com/grailbio/bio/rnaseq/region"
)

// Path is one transcript: a splice-graph vertex path [0, v1, ..., vk, N+1]
// (source and sink included) with its estimated expression. Path decomposi-
// tion itself is out of scope (spec.md §1); Path is only the shape a
// router's output would take so WriteTranscripts has something to format.
type Path struct {
	V         []int
	Abundance float64
}

// WriteTranscripts writes one GTF-like record set per path: a `transcript`
// feature row spanning the path's first to last pexon, followed by one
// `exon` row per maximal run of genomically-adjacent pexons along the path,
// per spec.md §6 "Transcript output format". pexons must be the same
// partial-exon partition the path's vertex indices were computed against.
func WriteTranscripts(w io.Writer, b *bundle.Bundle, pexons []region.PartialExon, paths []Path, geneID, algo string) error {
	strand := strandChar(b.Strand)
	for ti, p := range paths {
		if len(p.V) < 3 {
			// Just [source, sink]: no pexons, nothing to emit.
			continue
		}
		interior := p.V[1 : len(p.V)-1]
		transcriptID := fmt.Sprintf("%s.%d", geneID, ti+1)

		first := pexons[interior[0]-1]
		last := pexons[interior[len(interior)-1]-1]
		tStart, tEnd := first.LPos+1, last.RPos

		attrs := fmt.Sprintf(`gene_id "%s"; transcript_id "%s"; expression "%.2f";`, geneID, transcriptID, p.Abundance)
		if err := writeRecord(w, b.Chrm, algo, "transcript", tStart, tEnd, strand, attrs); err != nil {
			return err
		}

		exonNum := 1
		i := 0
		for i < len(interior) {
			j := i
			for j+1 < len(interior) && pexons[interior[j]-1].RPos == pexons[interior[j+1]-1].LPos {
				j++
			}
			eStart := pexons[interior[i]-1].LPos + 1
			eEnd := pexons[interior[j]-1].RPos
			eAttrs := fmt.Sprintf(`gene_id "%s"; transcript_id "%s"; exon_number "%d"; expression "%.2f";`,
				geneID, transcriptID, exonNum, p.Abundance)
			if err := writeRecord(w, b.Chrm, algo, "exon", eStart, eEnd, strand, eAttrs); err != nil {
				return err
			}
			exonNum++
			i = j + 1
		}
	}
	return nil
}

func writeRecord(w io.Writer, chrm, algo, feature string, start, end int32, strand byte, attrs string) error {
	_, err := fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t1000\t%c\t.\t%s\n",
		chrm, algo, feature, start, end, strand, attrs)
	return err
}

func strandChar(s byte) byte {
	switch s {
	case '+', '-':
		return s
	default:
		return '.'
	}
}
