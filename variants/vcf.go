package variants

import (
	"bufio"
	"strconv"
	"strings"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
	"github.com/pkg/errors"
)

// ReadVCF loads candidate variants from a whitespace-tokenized VCF: column 1
// is the chromosome, 2 the 1-based position, 4 the reference allele, and 5
// the alternative allele.  Lines starting with '#' and blank lines are
// skipped.  Comma-separated alleles expand to one variant per (ref, alt)
// token pair.  The returned store is sorted into natural order.
func ReadVCF(path string) ([]*Variant, error) {
	ctx := vcontext.Background()
	in, err := file.Open(ctx, path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open VCF file %s", path)
	}
	defer in.Close(ctx) // nolint: errcheck

	var vars []*Variant
	scanner := bufio.NewScanner(in.Reader(ctx))
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" || line[0] == '#' {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 5 {
			return nil, errors.Errorf("bad fields in VCF file %s: %q", path, line)
		}
		pos, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, errors.Wrapf(err, "bad position in VCF file %s: %q", path, line)
		}
		for _, ref := range strings.Split(fields[3], ",") {
			for _, alt := range strings.Split(fields[4], ",") {
				vars = append(vars, &Variant{Chr: fields[0], Pos: pos, Ref: ref, Alt: alt})
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to read VCF file %s", path)
	}
	Sort(vars)
	log.Printf("Read VCF: %s\t%d entries", path, len(vars))
	return vars, nil
}
