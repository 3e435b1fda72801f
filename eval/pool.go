package eval

import (
	"io"
	"sort"
	"sync"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"

	"github.com/dc-tw/eagle/refseq"
	"github.com/dc-tw/eagle/util"
	"github.com/dc-tw/eagle/variants"
)

// header precedes all data rows.
const header = "#SEQ\tPOS\tREF\tALT\tReads\tAltReads\tProb\tOdds\tSet\n"

// Process distributes the hypothesis sets over NumProc workers, collects the
// per-set output strings, sorts them into natural order, and writes the
// header plus all rows to w.  The task queue and the results vector are
// guarded by independent mutexes so that output assembly cannot block task
// dispatch; the reference cache carries its own lock.
func Process(w io.Writer, sets [][]*variants.Variant, bamPath string, cache *refseq.Cache, opts *Opts) error {
	numProc := opts.NumProc
	if numProc < 1 {
		numProc = 1
	}
	log.Printf("Start:\t%d procs\t%s", numProc, bamPath)

	queue := append([][]*variants.Variant(nil), sets...)
	var (
		qMu     sync.Mutex
		rMu     sync.Mutex
		results []string
		errs    errors.Once
		wg      sync.WaitGroup
	)
	for i := 0; i < numProc; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				qMu.Lock()
				if len(queue) == 0 {
					qMu.Unlock()
					return
				}
				set := queue[len(queue)-1]
				queue = queue[:len(queue)-1]
				qMu.Unlock()

				out, err := EvaluateSet(set, bamPath, cache, opts)
				if err != nil {
					errs.Set(err)
					return
				}
				if out == "" {
					continue
				}
				rMu.Lock()
				results = append(results, out)
				rMu.Unlock()
			}
		}()
	}
	wg.Wait()
	if err := errs.Err(); err != nil {
		return err
	}

	sort.SliceStable(results, func(i, j int) bool {
		return util.NaturalCompare(results[i], results[j]) < 0
	})
	if _, err := io.WriteString(w, header); err != nil {
		return err
	}
	for _, s := range results {
		if _, err := io.WriteString(w, s); err != nil {
			return err
		}
	}
	log.Printf("Done:\t%s", bamPath)
	return nil
}
