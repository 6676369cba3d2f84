package visibility

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

// Platform is a single configured answer engine the checker can query.
// Implementations live in the platform package; tests supply stubs.
type Platform interface {
	ID() string
	Ask(ctx context.Context, query string) (*Answer, error)
}

// Checker fans queries out to the configured platforms. Platforms are
// queried concurrently; queries within one platform run sequentially so a
// single slow platform cannot starve the others. A failed or timed-out
// call yields a Checked=false result, never a "not found", and is not
// retried.
type Checker struct {
	Platforms             []Platform
	MaxQueriesPerPlatform int
	QueryTimeout          time.Duration
}

const (
	defaultMaxQueriesPerPlatform = 3
	defaultQueryTimeout          = 20 * time.Second
)

// Check issues each query to each platform and classifies every answer
// against the target domain. Results keep platform declaration order.
func (c *Checker) Check(ctx context.Context, domain string, queries []string) []Result {
	maxQueries := c.MaxQueriesPerPlatform
	if maxQueries <= 0 {
		maxQueries = defaultMaxQueriesPerPlatform
	}
	if len(queries) > maxQueries {
		queries = queries[:maxQueries]
	}
	timeout := c.QueryTimeout
	if timeout <= 0 {
		timeout = defaultQueryTimeout
	}

	perPlatform := make([][]Result, len(c.Platforms))
	g, gCtx := errgroup.WithContext(ctx)
	for i, p := range c.Platforms {
		i, p := i, p
		g.Go(func() error {
			results := make([]Result, 0, len(queries))
			for _, q := range queries {
				results = append(results, c.ask(gCtx, p, domain, q, timeout))
			}
			perPlatform[i] = results
			return nil
		})
	}
	g.Wait() // workers never return errors; failures become unchecked results

	var all []Result
	for _, rs := range perPlatform {
		all = append(all, rs...)
	}
	return all
}

func (c *Checker) ask(ctx context.Context, p Platform, domain, query string, timeout time.Duration) Result {
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	answer, err := p.Ask(callCtx, query)
	if err != nil || answer == nil {
		// Infrastructure failure: mark unchecked so scoring can exclude
		// this pair instead of penalizing the domain.
		return Result{Platform: p.ID(), Query: query, Checked: false}
	}
	answer.Platform = p.ID()
	answer.Query = query
	return Classify(answer, domain)
}
