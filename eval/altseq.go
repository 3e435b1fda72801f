package eval

import "github.com/dc-tw/eagle/variants"

// ConstructAltSeq applies a combination of variants, in ascending position
// order, to a copy of the reference sequence and returns the edited sequence.
// off is the 0-based offset of refseq[0] within the chromosome (0 when
// refseq is the whole chromosome).  Equal-length alleles overwrite in place;
// indels splice.  A "-" ref denotes pure insertion, a "-" alt pure deletion.
func ConstructAltSeq(refseq []byte, off int, combo []*variants.Variant) []byte {
	altseq := append([]byte(nil), refseq...)
	offset := 0
	for _, v := range combo {
		pos := v.Pos - 1 + offset - off
		ref, alt := v.Ref, v.Alt
		if ref == "-" {
			pos++
			ref = ""
		} else if alt == "-" {
			alt = ""
		}
		delta := len(alt) - len(ref)
		offset += delta
		if delta == 0 {
			copy(altseq[pos:pos+len(alt)], alt)
		} else {
			next := make([]byte, 0, len(altseq)+delta)
			next = append(next, altseq[:pos]...)
			next = append(next, alt...)
			next = append(next, altseq[pos+len(ref):]...)
			altseq = next
		}
	}
	return altseq
}
