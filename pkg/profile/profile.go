package profile

import (
	"context"

	"github.com/emcoglab/brysbaert-prevalence/pkg/prevalence"
)

// URLReport is the outcome of profiling one page.
type URLReport struct {
	URL     string
	Article Article
	Report  Report
	Err     error
}

// ProfileURLs fetches and analyzes urls with up to workers concurrent fetches.
// Results are returned in the order of urls; a failure is recorded on its own
// URLReport and does not stop the others.
func ProfileURLs(ctx context.Context, f *Fetcher, lookup prevalence.Lookuper, urls []string, workers int) []URLReport {
	results := make([]URLReport, len(urls))

	wp := NewWorkerPool(workers, len(urls))
	wp.Start(ctx)
	for i, u := range urls {
		i, u := i, u
		// The queue holds every url, so Submit never blocks here.
		_ = wp.Submit(func(ctx context.Context) {
			results[i] = profileOne(ctx, f, lookup, u)
		})
	}
	wp.Close()

	return results
}

func profileOne(ctx context.Context, f *Fetcher, lookup prevalence.Lookuper, u string) URLReport {
	res := URLReport{URL: u}
	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}
	article, err := f.Fetch(ctx, u)
	if err != nil {
		res.Err = err
		return res
	}
	res.Article = article

	report, err := Analyze(lookup, article.Text)
	if err != nil {
		res.Err = err
		return res
	}
	res.Report = report
	return res
}
