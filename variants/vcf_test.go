package variants_test

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/dc-tw/eagle/variants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeVCF(t *testing.T, content string) string {
	t.Helper()
	dir, err := ioutil.TempDir("", "eagle-vcf")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })
	path := filepath.Join(dir, "test.vcf")
	require.NoError(t, ioutil.WriteFile(path, []byte(content), 0644))
	return path
}

func TestReadVCF(t *testing.T) {
	path := writeVCF(t, "##fileformat=VCFv4.2\n"+
		"#CHROM\tPOS\tID\tREF\tALT\n"+
		"\n"+
		"chr1\t4\t.\tT\tA\t.\t.\t.\n"+
		"chr1\t10\t.\tAT\tA\n")
	vars, err := variants.ReadVCF(path)
	require.NoError(t, err)
	require.Len(t, vars, 2)
	assert.Equal(t, &variants.Variant{Chr: "chr1", Pos: 4, Ref: "T", Alt: "A"}, vars[0])
	assert.Equal(t, &variants.Variant{Chr: "chr1", Pos: 10, Ref: "AT", Alt: "A"}, vars[1])
}

func TestReadVCFAlleleExpansion(t *testing.T) {
	path := writeVCF(t, "chr1\t4\t.\tT\tA,G,C\n")
	vars, err := variants.ReadVCF(path)
	require.NoError(t, err)
	require.Len(t, vars, 3)
	for i, alt := range []string{"A", "G", "C"} {
		assert.Equal(t, "chr1", vars[i].Chr)
		assert.Equal(t, 4, vars[i].Pos)
		assert.Equal(t, "T", vars[i].Ref)
		assert.Equal(t, alt, vars[i].Alt)
	}
}

func TestReadVCFEmptyAllele(t *testing.T) {
	path := writeVCF(t, "chr1\t4\t.\t-\tAA\nchr1\t7\t.\tG\t-\n")
	vars, err := variants.ReadVCF(path)
	require.NoError(t, err)
	require.Len(t, vars, 2)
	assert.Equal(t, "-", vars[0].Ref)
	assert.Equal(t, "AA", vars[0].Alt)
	assert.Equal(t, "-", vars[1].Alt)
}

func TestReadVCFSorts(t *testing.T) {
	path := writeVCF(t, "chr10\t5\t.\tA\tC\n"+
		"chr2\t9\t.\tG\tT\n"+
		"chr2\t3\t.\tC\tA\n")
	vars, err := variants.ReadVCF(path)
	require.NoError(t, err)
	require.Len(t, vars, 3)
	assert.Equal(t, "chr2", vars[0].Chr)
	assert.Equal(t, 3, vars[0].Pos)
	assert.Equal(t, "chr2", vars[1].Chr)
	assert.Equal(t, 9, vars[1].Pos)
	assert.Equal(t, "chr10", vars[2].Chr)
}

func TestReadVCFBadFields(t *testing.T) {
	path := writeVCF(t, "chr1\t4\tT\n")
	_, err := variants.ReadVCF(path)
	assert.Error(t, err)
}

func TestReadVCFMissingFile(t *testing.T) {
	_, err := variants.ReadVCF("/nonexistent/path.vcf")
	assert.Error(t, err)
}
