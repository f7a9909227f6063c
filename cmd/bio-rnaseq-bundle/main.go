/*
bio-rnaseq-bundle assembles one genomic bundle's worth of aligned,
coordinate-sorted reads from a BAM file into a splice graph and hyperedge
set, and writes a placeholder (whole-bundle) transcript record in the
nine-column transcript/exon TSV format.

Path decomposition — picking the actual set of transcripts a splice graph
and hyperedge set support — is a downstream concern this tool does not
implement; it exists to exercise the bundle-assembly pipeline end to end
and report what it built.
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/fileio"
	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
	hbam "github.com/grailbio/hts/bam"
	"github.com/grailbio/hts/sam"
	"github.com/klauspost/compress/gzip"

	"github.com/grailbio/bio/rnaseq/bundle"
	"github.com/grailbio/bio/rnaseq/gtf"
	"github.com/grailbio/bio/rnaseq/rnaseqconfig"
)

var (
	bamPath  = flag.String("bam", "", "Input coordinate-sorted BAM path (required)")
	region   = flag.String("region", "", "Region to treat as a single bundle, <contig>:<1-based start>-<end> (required)")
	outPath  = flag.String("out", "bio-rnaseq-bundle.gtf", "Output transcript TSV path")
	geneID   = flag.String("gene-id", "BUNDLE", "gene_id attribute to emit")
	algoName = flag.String("algo", "bio-rnaseq-bundle", "algorithm/source column value")

	minSpliceBoundaryHits = flag.Int("min-splice-boundary-hits", rnaseqconfig.DefaultConfig.MinSpliceBoundaryHits, "Minimum spliced-gap support to retain a junction")
	minFlankLength        = flag.Int("min-flank-length", int(rnaseqconfig.DefaultConfig.MinFlankLength), "Flank-reclassification threshold")
	ignoreSingleExon      = flag.Bool("ignore-single-exon-transcripts", rnaseqconfig.DefaultConfig.IgnoreSingleExonTranscripts, "Skip bundles with zero retained junctions")
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s -bam path.bam -region chr1:1000-2000 [OPTIONS]\n", os.Args[0])
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	shutdown := grail.Init()
	defer shutdown()

	if *bamPath == "" || *region == "" {
		log.Fatalf("-bam and -region are required")
	}
	chrm, start, end, err := parseRegion(*region)
	if err != nil {
		log.Fatalf("%v", err)
	}

	ctx := vcontext.Background()
	cfg := rnaseqconfig.DefaultConfig
	cfg.MinSpliceBoundaryHits = *minSpliceBoundaryHits
	cfg.MinFlankLength = int32(*minFlankLength)
	cfg.IgnoreSingleExonTranscripts = *ignoreSingleExon

	if err := run(ctx, *bamPath, chrm, start, end, *outPath, *geneID, *algoName, cfg); err != nil {
		log.Panicf("%v", err)
	}
	log.Debug.Printf("exiting")
}

func parseRegion(r string) (chrm string, start, end int32, err error) {
	parts := strings.SplitN(r, ":", 2)
	if len(parts) != 2 {
		return "", 0, 0, fmt.Errorf("malformed -region %q, want <contig>:<start>-<end>", r)
	}
	span := strings.SplitN(parts[1], "-", 2)
	if len(span) != 2 {
		return "", 0, 0, fmt.Errorf("malformed -region %q, want <contig>:<start>-<end>", r)
	}
	s, err := strconv.Atoi(span[0])
	if err != nil {
		return "", 0, 0, fmt.Errorf("malformed -region start: %w", err)
	}
	e, err := strconv.Atoi(span[1])
	if err != nil {
		return "", 0, 0, fmt.Errorf("malformed -region end: %w", err)
	}
	return parts[0], int32(s - 1), int32(e), nil
}

func run(ctx context.Context, bamPath, chrm string, start, end int32, outPath, geneID, algo string, cfg rnaseqconfig.Config) error {
	f, err := file.Open(ctx, bamPath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", bamPath, err)
	}
	defer f.Close(ctx) // nolint: errcheck

	reader, err := hbam.NewReader(f.Reader(ctx), 0)
	if err != nil {
		return fmt.Errorf("reading BAM header from %s: %w", bamPath, err)
	}
	defer reader.Close() // nolint: errcheck

	var recs []*sam.Record
	for {
		r, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("reading %s: %w", bamPath, err)
		}
		if r.Ref == nil || r.Ref.Name() != chrm {
			continue
		}
		if int32(r.Pos) >= end || int32(r.End()) <= start {
			continue
		}
		recs = append(recs, r)
	}
	sort.SliceStable(recs, func(i, j int) bool { return recs[i].Pos < recs[j].Pos })

	hits, err := bundle.HitsFromBAM(ctx, recs)
	if err != nil {
		return err
	}
	log.Debug.Printf("bundle %s:%d-%d: %d alignment records -> %d hits", chrm, start, end, len(recs), len(hits))

	b := &bundle.Bundle{Chrm: chrm, LPos: start, RPos: end, Hits: hits}
	gr, hs, pexons, err := b.Build(cfg)
	if err != nil {
		log.Error.Printf("bundle %s:%d-%d: %v (continuing with partial results)", chrm, start, end, err)
	}
	if gr == nil {
		log.Printf("bundle %s:%d-%d: no splice graph built (single-exon, ignored)", chrm, start, end)
		return nil
	}
	log.Printf("bundle %s:%d-%d: splice graph with %d vertices; %d hyperedges", chrm, start, end, gr.NumVertices(), len(hs.Routes()))

	out, err := file.Create(ctx, outPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", outPath, err)
	}
	defer out.Close(ctx) // nolint: errcheck

	if len(pexons) == 0 {
		log.Printf("bundle %s:%d-%d: no partial exons, nothing to write", chrm, start, end)
		return nil
	}
	var path gtf.Path
	for v := 0; v < gr.NumVertices(); v++ {
		path.V = append(path.V, v)
	}
	for _, e := range gr.OutEdges(0) {
		path.Abundance += gr.EdgeWeight(e)
	}

	w := io.Writer(out.Writer(ctx))
	if fileio.DetermineType(outPath) == fileio.Gzip {
		gz := gzip.NewWriter(w)
		defer gz.Close() // nolint: errcheck
		w = gz
	}
	return gtf.WriteTranscripts(w, b, pexons, []gtf.Path{path}, geneID, algo)
}
