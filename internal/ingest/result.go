// Package ingest loads player statistics from CSV and news from ESPN into
// the database, classifying articles with the model on the way in.
package ingest

import "fmt"

// Result tracks counts and errors from an ingestion run.
type Result struct {
	StatsUpserted    int
	RowsSkipped      int
	ArticlesFetched  int
	ArticlesInserted int
	InjuriesFetched  int
	ArticlesCleaned  int64
	Errors           []string
}

// AddErrorf records a formatted error message.
func (r *Result) AddErrorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// Summary returns a human-readable summary of the run.
func (r *Result) Summary() string {
	return fmt.Sprintf(
		"stats=%d skipped=%d articles=%d inserted=%d injuries=%d cleaned=%d errors=%d",
		r.StatsUpserted, r.RowsSkipped,
		r.ArticlesFetched, r.ArticlesInserted,
		r.InjuriesFetched, r.ArticlesCleaned,
		len(r.Errors),
	)
}
