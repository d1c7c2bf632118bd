package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"codechat/internal/domain"
	"codechat/internal/port"
)

// PredictionCache is a size- and age-bounded LRU of classifier predictions.
type PredictionCache struct {
	mu      sync.RWMutex
	entries map[string]*cacheEntry
	order   []string
	maxSize int
	ttl     time.Duration
	now     func() time.Time
}

type cacheEntry struct {
	prediction domain.Prediction
	timestamp  time.Time
}

func NewPredictionCache(maxSize int, ttl time.Duration) *PredictionCache {
	if maxSize <= 0 {
		maxSize = 256
	}
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &PredictionCache{
		entries: make(map[string]*cacheEntry),
		order:   make([]string, 0, maxSize),
		maxSize: maxSize,
		ttl:     ttl,
		now:     time.Now,
	}
}

func cacheKey(text string) string {
	hash := sha256.Sum256([]byte(text))
	return hex.EncodeToString(hash[:16])
}

func (c *PredictionCache) Get(text string) (domain.Prediction, bool) {
	key := cacheKey(text)

	c.mu.Lock()
	defer c.mu.Unlock()

	entry, exists := c.entries[key]
	if !exists {
		return domain.Prediction{}, false
	}

	if c.now().Sub(entry.timestamp) > c.ttl {
		delete(c.entries, key)
		c.removeFromOrder(key)
		return domain.Prediction{}, false
	}

	c.moveToEnd(key)
	return entry.prediction, true
}

func (c *PredictionCache) Put(text string, prediction domain.Prediction) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := cacheKey(text)
	entry := &cacheEntry{prediction: prediction, timestamp: c.now()}

	if _, exists := c.entries[key]; exists {
		c.entries[key] = entry
		c.moveToEnd(key)
		return
	}

	if len(c.entries) >= c.maxSize {
		c.evictOldest()
	}

	c.entries[key] = entry
	c.order = append(c.order, key)
}

func (c *PredictionCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *PredictionCache) evictOldest() {
	if len(c.order) == 0 {
		return
	}
	oldest := c.order[0]
	c.order = c.order[1:]
	delete(c.entries, oldest)
}

func (c *PredictionCache) moveToEnd(key string) {
	c.removeFromOrder(key)
	c.order = append(c.order, key)
}

func (c *PredictionCache) removeFromOrder(key string) {
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}

// CachedClassifier answers repeated questions from the cache. Classify is a
// pure function of the text, so entries never go stale while the model lives.
type CachedClassifier struct {
	classifier port.Classifier
	cache      *PredictionCache
}

func NewCachedClassifier(classifier port.Classifier, cache *PredictionCache) *CachedClassifier {
	return &CachedClassifier{
		classifier: classifier,
		cache:      cache,
	}
}

func (c *CachedClassifier) Classify(text string) domain.Prediction {
	if pred, hit := c.cache.Get(text); hit {
		return pred
	}

	pred := c.classifier.Classify(text)
	c.cache.Put(text, pred)
	return pred
}
