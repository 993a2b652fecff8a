package db

import (
	gocache "github.com/patrickmn/go-cache"

	"github.com/emcoglab/brysbaert-prevalence/pkg/prevalence"
)

// CachedLookup answers prevalence queries from the database and memoises the
// answers, including misses. Entries never expire: the stored table does not
// change while a process is reading it.
type CachedLookup struct {
	db    DBExecutor
	cache *gocache.Cache
}

type cachedResult struct {
	prevalence float64
	found      bool
}

// NewCachedLookup wraps db.
func NewCachedLookup(db DBExecutor) *CachedLookup {
	return &CachedLookup{
		db:    db,
		cache: gocache.New(gocache.NoExpiration, 0),
	}
}

// PrevalenceFor implements prevalence.Lookuper.
func (c *CachedLookup) PrevalenceFor(word string) (float64, error) {
	if v, ok := c.cache.Get(word); ok {
		r := v.(cachedResult)
		if !r.found {
			return 0, &prevalence.WordNotFoundError{Word: word}
		}
		return r.prevalence, nil
	}

	p, err := LookupPrevalence(c.db, word)
	switch {
	case err == nil:
		c.cache.Set(word, cachedResult{prevalence: p, found: true}, gocache.NoExpiration)
	case prevalence.IsWordNotFound(err):
		c.cache.Set(word, cachedResult{}, gocache.NoExpiration)
	}
	return p, err
}

// Cached is the number of memoised answers.
func (c *CachedLookup) Cached() int { return c.cache.ItemCount() }
