package cache

import (
	"time"

	"github.com/karlseguin/ccache/v3"

	"github.com/alquileresmvp/rental-system/internal/core/domain"
)

const (
	maxEntries = 1000
	keyFeed    = "feed"
	keySlug    = "slug:"
)

// ListingCache is a short-TTL in-process cache for the public, read-only
// listing endpoints. Authorization and availability reads never go through
// it — those must always see current state.
type ListingCache struct {
	feed *ccache.Cache[[]*domain.Property]
	one  *ccache.Cache[*domain.Property]
	ttl  time.Duration
}

func NewListingCache(ttl time.Duration) *ListingCache {
	return &ListingCache{
		feed: ccache.New(ccache.Configure[[]*domain.Property]().MaxSize(8)),
		one:  ccache.New(ccache.Configure[*domain.Property]().MaxSize(maxEntries)),
		ttl:  ttl,
	}
}

func (c *ListingCache) Feed() ([]*domain.Property, bool) {
	item := c.feed.Get(keyFeed)
	if item == nil || item.Expired() {
		return nil, false
	}
	return item.Value(), true
}

func (c *ListingCache) SetFeed(properties []*domain.Property) {
	c.feed.Set(keyFeed, properties, c.ttl)
}

func (c *ListingCache) BySlug(slug string) (*domain.Property, bool) {
	item := c.one.Get(keySlug + slug)
	if item == nil || item.Expired() {
		return nil, false
	}
	return item.Value(), true
}

func (c *ListingCache) SetBySlug(p *domain.Property) {
	c.one.Set(keySlug+p.Slug, p, c.ttl)
}

// Invalidate drops the cached feed and the given slugs after a mutation, so
// a host sees their own edit on the next read.
func (c *ListingCache) Invalidate(slugs ...string) {
	c.feed.Delete(keyFeed)
	for _, s := range slugs {
		c.one.Delete(keySlug + s)
	}
}
