package align

import (
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/hts/bam"
	"github.com/grailbio/hts/bgzf/index"
	"github.com/grailbio/hts/sam"
	"github.com/pkg/errors"
)

// FetchOpts adjusts how fetched records become Reads.
type FetchOpts struct {
	// TrimSoftClips drops soft-clipped bases from both read ends.
	TrimSoftClips bool
	// SplitSpliced expands reads whose CIGAR contains N into one Read per exon
	// segment.
	SplitSpliced bool
}

// FetchReads returns the reads overlapping the 0-based half-open region
// [beg, end) of chr, in file order.  A chromosome absent from the BAM header
// or a region with no alignments yields an empty slice, not an error.  The
// BAM file and its .bai index are opened per call; no state is shared between
// callers.
func FetchReads(path, chr string, beg, end int, opts FetchOpts) ([]*Read, error) {
	ctx := vcontext.Background()
	in, err := file.Open(ctx, path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open BAM file %s", path)
	}
	defer in.Close(ctx) // nolint: errcheck
	br, err := bam.NewReader(in.Reader(ctx), 1)
	if err != nil {
		return nil, errors.Wrapf(err, "bad header %s", path)
	}
	defer br.Close() // nolint: errcheck

	var ref *sam.Reference
	for _, r := range br.Header().Refs() {
		if r.Name() == chr {
			ref = r
			break
		}
	}
	if ref == nil {
		return nil, nil
	}
	if beg < 0 {
		beg = 0
	}
	if end > ref.Len() {
		end = ref.Len()
	}
	if end <= beg {
		end = beg + 1
		if end > ref.Len() {
			return nil, nil
		}
	}

	idxIn, err := file.Open(ctx, path+".bai")
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open BAM index %s.bai", path)
	}
	defer idxIn.Close(ctx) // nolint: errcheck
	idx, err := bam.ReadIndex(idxIn.Reader(ctx))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read BAM index %s.bai", path)
	}

	chunks, err := idx.Chunks(ref, beg, end)
	if err == index.ErrInvalid {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	it, err := bam.NewIterator(br, chunks)
	if err != nil {
		return nil, err
	}
	var reads []*Read
	for it.Next() {
		rec := it.Record()
		if rec.Pos >= end || rec.End() <= beg {
			continue
		}
		r := FromRecord(rec)
		if opts.TrimSoftClips {
			r.TrimSoftClips()
		}
		if opts.SplitSpliced {
			reads = append(reads, r.SpliceSegments()...)
		} else {
			reads = append(reads, r)
		}
	}
	return reads, it.Close()
}
