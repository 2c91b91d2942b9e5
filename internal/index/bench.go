package index

import (
	"fmt"
	"io"
	"time"

	"github.com/starford/eihwaz/internal/extract"
)

// QueryTiming records one benchmark query.
type QueryTiming struct {
	Query   string
	Elapsed time.Duration
	Hits    int
}

// BenchResult holds timings for one indexing-and-search run.
type BenchResult struct {
	Engine    string
	Messages  int
	IndexTime time.Duration
	Queries   []QueryTiming
	AvgSearch time.Duration
}

// Bench bulk-indexes rows and then runs each query once, timing both
// phases. The database should be freshly opened and empty.
func Bench(db *DB, rows []extract.Row, queries []string, limit int) (*BenchResult, error) {
	start := time.Now()
	if err := db.InsertRows(rows); err != nil {
		return nil, err
	}
	res := &BenchResult{
		Engine:    Engine,
		Messages:  len(rows),
		IndexTime: time.Since(start),
	}

	var total time.Duration
	for _, q := range queries {
		qStart := time.Now()
		hits, err := db.Search(q, limit)
		if err != nil {
			return nil, fmt.Errorf("index: bench query %q: %w", q, err)
		}
		elapsed := time.Since(qStart)
		res.Queries = append(res.Queries, QueryTiming{Query: q, Elapsed: elapsed, Hits: len(hits)})
		total += elapsed
	}
	if len(res.Queries) > 0 {
		res.AvgSearch = total / time.Duration(len(res.Queries))
	}
	return res, nil
}

// Render writes the benchmark results to w.
func (r *BenchResult) Render(w io.Writer) {
	fmt.Fprintf(w, "Engine:           %s\n", r.Engine)
	fmt.Fprintf(w, "Messages indexed: %d\n", r.Messages)
	fmt.Fprintf(w, "Indexing time:    %.3fs\n", r.IndexTime.Seconds())
	fmt.Fprintf(w, "Avg search time:  %.2fms\n", float64(r.AvgSearch.Microseconds())/1000)
	for _, q := range r.Queries {
		fmt.Fprintf(w, "  %-20q %8.2fms  %d hits\n", q.Query, float64(q.Elapsed.Microseconds())/1000, q.Hits)
	}
}
