// Package refseq caches reference chromosome sequences in memory, faulting
// them in lazily from an indexed FASTA file.
package refseq

import (
	"strings"
	"sync"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/bio/encoding/fasta"
	"github.com/pkg/errors"
)

// Entry is one cached chromosome: its name and uppercase sequence bytes.
// Entries live until process exit; pointers returned by Fetch stay valid.
type Entry struct {
	Name string
	Seq  []byte
}

// Cache maps chromosome name to cached sequence.  Each bucket holds the
// entries whose name hashed to that key; lookup returns the first exact-name
// match.  The whole lookup-through-insert critical section is serialized by a
// single mutex, so concurrent readers serialize but the cache warms quickly.
type Cache struct {
	path string

	mu      sync.Mutex
	buckets map[string][]*Entry
}

// NewCache returns a cache backed by the FASTA file at path; path+".fai" must
// exist.
func NewCache(path string) *Cache {
	return &Cache{path: path, buckets: make(map[string][]*Entry)}
}

// Fetch returns the cached sequence for name, loading it from the FASTA
// collaborator on first use.  It fails when the index cannot be loaded or
// name is absent from it.
func (c *Cache) Fetch(name string) (*Entry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, e := range c.buckets[name] {
		if e.Name == name {
			return e, nil
		}
	}

	e, err := c.load(name)
	if err != nil {
		return nil, err
	}
	c.buckets[name] = append(c.buckets[name], e)
	return e, nil
}

func (c *Cache) load(name string) (*Entry, error) {
	ctx := vcontext.Background()
	in, err := file.Open(ctx, c.path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open reference %s", c.path)
	}
	defer in.Close(ctx) // nolint: errcheck
	idx, err := file.Open(ctx, c.path+".fai")
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open FASTA index %s.fai", c.path)
	}
	defer idx.Close(ctx) // nolint: errcheck

	fa, err := fasta.NewIndexed(in.Reader(ctx), idx.Reader(ctx))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load FASTA index %s.fai", c.path)
	}
	n, err := fa.Len(name)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to find sequence %s in reference %s", name, c.path)
	}
	seq, err := fa.Get(name, 0, n)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to fetch sequence %s from reference %s", name, c.path)
	}
	return &Entry{Name: name, Seq: []byte(strings.ToUpper(seq))}, nil
}
