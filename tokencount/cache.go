package tokencount

import lru "github.com/hashicorp/golang-lru/v2"

// Cache memoizes Estimate by exact text match. The budget controller calls
// tokens(render(file)) once per escalation rung (§4.7 step 3e); escalation
// rungs that leave most of a large file untouched re-render mostly
// identical text, so a small LRU avoids re-scanning it.
type Cache struct {
	lru *lru.Cache[string, int]
}

// NewCache builds a Cache holding up to size distinct texts.
func NewCache(size int) (*Cache, error) {
	c, err := lru.New[string, int](size)
	if err != nil {
		return nil, err
	}
	return &Cache{lru: c}, nil
}

// Estimate returns Estimate(text), memoized.
func (c *Cache) Estimate(text string) int {
	if v, ok := c.lru.Get(text); ok {
		return v
	}
	v := Estimate(text)
	c.lru.Add(text, v)
	return v
}
