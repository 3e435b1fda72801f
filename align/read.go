// Package align models aligned reads fetched from a coordinate-sorted,
// indexed BAM file, in the form the likelihood engine consumes: uppercase
// bases, per-base log10 error rates, flags, CIGAR, and any XA alternative
// alignments.
package align

import (
	"strconv"
	"strings"

	"github.com/grailbio/hts/sam"
)

var xaTag = sam.NewTag("XA")

// AltAlignment is one alternative alignment from an XA aux tag: chromosome,
// signed 1-based position (the sign encodes strand), CIGAR string, and edit
// distance.
type AltAlignment struct {
	Chr   string
	Pos   int
	Cigar string
	NM    int
}

// Read is a single aligned read.  Pos is 0-based.  Qual holds per-base
// base-10 log error rates stored as non-positive values.  InferredLength is
// the query length implied by the CIGAR: the summed lengths of its
// query-consuming operations (hard clips are not counted).
type Read struct {
	Name           string
	Chr            string
	Tid            int
	Pos            int
	Length         int
	InferredLength int
	Seq            []byte
	Qual           []float64
	HasQual        bool
	Flags          sam.Flags
	Cigar          sam.Cigar
	Multimap       []AltAlignment
}

// Flag accessors mirror the SAM flag names.

func (r *Read) Unmapped() bool { return r.Flags&sam.Unmapped != 0 }
func (r *Read) Reverse() bool  { return r.Flags&sam.Reverse != 0 }
func (r *Read) Duplicate() bool {
	return r.Flags&sam.Duplicate != 0
}

// Secondary reports whether the read is a secondary or supplementary
// alignment.
func (r *Read) Secondary() bool {
	return r.Flags&(sam.Secondary|sam.Supplementary) != 0
}

// FromRecord converts a BAM record into a Read.
func FromRecord(rec *sam.Record) *Read {
	r := &Read{
		Name:  rec.Name,
		Tid:   rec.Ref.ID(),
		Chr:   rec.Ref.Name(),
		Pos:   rec.Pos,
		Flags: rec.Flags,
		Cigar: rec.Cigar,
	}
	r.Seq = rec.Seq.Expand()
	for i := range r.Seq {
		if r.Seq[i] >= 'a' && r.Seq[i] <= 'z' {
			r.Seq[i] -= 'a' - 'A'
		}
	}
	r.Length = len(r.Seq)
	r.HasQual = len(rec.Qual) > 0 && rec.Qual[0] != 0xff
	r.Qual = make([]float64, r.Length)
	for i := 0; i < r.Length && i < len(rec.Qual); i++ {
		r.Qual[i] = float64(rec.Qual[i]) / -10
	}
	for _, co := range rec.Cigar {
		if co.Type().Consumes().Query == 1 {
			r.InferredLength += co.Len()
		}
	}
	if aux := rec.AuxFields.Get(xaTag); aux != nil {
		if s, ok := aux.Value().(string); ok {
			r.Multimap = ParseXA(s)
		}
	}
	return r
}

// ParseXA parses the value of an XA aux tag: semicolon-delimited tuples of
// chr,signed-pos,cigar,edit-distance.  Malformed tuples are skipped.
func ParseXA(s string) []AltAlignment {
	var alts []AltAlignment
	for _, tok := range strings.Split(s, ";") {
		if tok == "" {
			continue
		}
		fields := strings.Split(tok, ",")
		if len(fields) < 2 {
			continue
		}
		pos, err := strconv.Atoi(fields[1])
		if err != nil {
			continue
		}
		alt := AltAlignment{Chr: fields[0], Pos: pos}
		if len(fields) > 2 {
			alt.Cigar = fields[2]
		}
		if len(fields) > 3 {
			if nm, err := strconv.Atoi(fields[3]); err == nil {
				alt.NM = nm
			}
		}
		alts = append(alts, alt)
	}
	return alts
}

// TrimSoftClips removes soft-clipped bases from both ends of the read,
// shrinking Seq, Qual, and the length fields accordingly.
func (r *Read) TrimSoftClips() {
	cigar := r.Cigar
	if len(cigar) > 0 && cigar[0].Type() == sam.CigarSoftClipped {
		n := cigar[0].Len()
		r.Seq = r.Seq[n:]
		r.Qual = r.Qual[n:]
		r.Length -= n
		r.InferredLength -= n
		cigar = cigar[1:]
	}
	if len(cigar) > 0 && cigar[len(cigar)-1].Type() == sam.CigarSoftClipped {
		n := cigar[len(cigar)-1].Len()
		r.Seq = r.Seq[:len(r.Seq)-n]
		r.Qual = r.Qual[:len(r.Qual)-n]
		r.Length -= n
		r.InferredLength -= n
		cigar = cigar[:len(cigar)-1]
	}
	r.Cigar = cigar
}

// SpliceSegments splits a spliced read (CIGAR containing N) into one Read per
// exon segment, each with its own position and bases.  A read without N ops
// is returned unchanged as a single segment.
func (r *Read) SpliceSegments() []*Read {
	hasSkip := false
	for _, co := range r.Cigar {
		if co.Type() == sam.CigarSkipped {
			hasSkip = true
			break
		}
	}
	if !hasSkip {
		return []*Read{r}
	}

	var segments []*Read
	refPos := r.Pos
	qOff := 0
	segRefStart := refPos
	segQStart := qOff
	var segOps sam.Cigar
	flush := func() {
		if len(segOps) == 0 {
			return
		}
		seg := &Read{
			Name:    r.Name,
			Chr:     r.Chr,
			Tid:     r.Tid,
			Pos:     segRefStart,
			Seq:     r.Seq[segQStart:qOff],
			Qual:    r.Qual[segQStart:qOff],
			HasQual: r.HasQual,
			Flags:   r.Flags,
			Cigar:   segOps,
		}
		seg.Length = len(seg.Seq)
		for _, co := range segOps {
			if co.Type().Consumes().Query == 1 {
				seg.InferredLength += co.Len()
			}
		}
		segments = append(segments, seg)
	}
	for _, co := range r.Cigar {
		consumes := co.Type().Consumes()
		if co.Type() == sam.CigarSkipped {
			flush()
			refPos += co.Len()
			segRefStart = refPos
			segQStart = qOff
			segOps = nil
			continue
		}
		segOps = append(segOps, co)
		refPos += co.Len() * consumes.Reference
		qOff += co.Len() * consumes.Query
	}
	flush()
	return segments
}
