package throttle

import (
	"sync"
	"time"
)

type BucketGroup[K comparable] struct {
	conf    *BucketConf
	buckets sync.Map // K -> *Bucket[K]
}

func (g *BucketGroup[K]) GetBucket(id K) (*Bucket[K], bool) {
	bAny, ok := g.buckets.Load(id)
	if !ok {
		return nil, false
	}
	return bAny.(*Bucket[K]), true
}

// allow takes one token from id's bucket, creating a full bucket on first use
func (g *BucketGroup[K]) allow(id K, now time.Time) bool {
	if b, ok := g.GetBucket(id); ok {
		return b.Allow(now)
	}
	fresh := &Bucket[K]{tokens: g.conf.Burst, lastCheck: now, parentGroup: g}
	bAny, _ := g.buckets.LoadOrStore(id, fresh)
	return bAny.(*Bucket[K]).Allow(now)
}

// cleanup drops buckets untouched for longer than olderThan and returns how many
func (g *BucketGroup[K]) cleanup(olderThan time.Duration, now time.Time) int {
	n := 0
	g.buckets.Range(func(id, value any) bool {
		if now.Sub(value.(*Bucket[K]).idleSince()) > olderThan {
			g.buckets.Delete(id)
			n++
		}
		return true
	})
	return n
}
