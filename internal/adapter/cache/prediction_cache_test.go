package cache

import (
	"sync"
	"testing"
	"time"

	"codechat/internal/domain"
)

type countingClassifier struct {
	mu    sync.Mutex
	calls int
}

func (c *countingClassifier) Classify(text string) domain.Prediction {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()
	return domain.Prediction{TopicID: text, Confidence: 0.5}
}

func TestPredictionCache_EvictsLeastRecentlyUsed(t *testing.T) {
	c := NewPredictionCache(2, time.Minute)
	c.Put("a", domain.Prediction{TopicID: "a"})
	c.Put("b", domain.Prediction{TopicID: "b"})

	if _, ok := c.Get("a"); !ok {
		t.Fatal("expected hit for a")
	}
	c.Put("c", domain.Prediction{TopicID: "c"})

	if _, ok := c.Get("b"); ok {
		t.Error("expected b to be evicted")
	}
	if _, ok := c.Get("a"); !ok {
		t.Error("expected a to survive")
	}
	if c.Size() != 2 {
		t.Errorf("expected size 2, got %d", c.Size())
	}
}

func TestPredictionCache_Expires(t *testing.T) {
	c := NewPredictionCache(10, time.Minute)
	now := time.Unix(1000, 0)
	c.now = func() time.Time { return now }

	c.Put("hello", domain.Prediction{TopicID: "greeting"})
	now = now.Add(2 * time.Minute)

	if _, ok := c.Get("hello"); ok {
		t.Error("expected expired entry to miss")
	}
	if c.Size() != 0 {
		t.Errorf("expected expired entry to be removed, size %d", c.Size())
	}
}

func TestCachedClassifier(t *testing.T) {
	inner := &countingClassifier{}
	cc := NewCachedClassifier(inner, NewPredictionCache(10, time.Minute))

	first := cc.Classify("python loop")
	second := cc.Classify("python loop")
	cc.Classify("java")

	if first.TopicID != second.TopicID || first.Confidence != second.Confidence {
		t.Errorf("expected identical predictions, got %+v and %+v", first, second)
	}
	if inner.calls != 2 {
		t.Errorf("expected 2 underlying calls, got %d", inner.calls)
	}
}

func TestCachedClassifier_Concurrent(t *testing.T) {
	cc := NewCachedClassifier(&countingClassifier{}, NewPredictionCache(4, time.Minute))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for _, q := range []string{"a", "b", "c", "d", "e"} {
				if got := cc.Classify(q); got.TopicID != q {
					t.Errorf("expected %s, got %s", q, got.TopicID)
				}
			}
		}(i)
	}
	wg.Wait()
}
