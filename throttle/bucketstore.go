// Package throttle limits request rates with token buckets grouped per route family.
package throttle

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Christosun/flotech-report-system/svc"
	"go.uber.org/zap"
)

// BucketStore is a svc.Service; its background loop evicts idle buckets
type BucketStore[K comparable] struct {
	Ctx              context.Context    // Service Context
	cancel           context.CancelFunc // Service Context CancelFunc
	Now              func() time.Time
	state            int        // internal service state
	done             chan error // Shutdown Error Channel
	cleanupCycle     time.Duration
	cleanupOlderThan time.Duration

	mu     sync.RWMutex
	groups map[string]*BucketGroup[K]
}

// Ensure BucketStore implements svc.Service
var _ svc.Service = (*BucketStore[string])(nil)

func (s *BucketStore[K]) Name() string {
	return "ThrottleBucketStore"
}

func NewBucketStore[K comparable](parentCtx context.Context, cleanupCycle time.Duration, cleanupOlderThan time.Duration) *BucketStore[K] {
	svcCtx, svcCancel := context.WithCancel(parentCtx)
	return &BucketStore[K]{
		Ctx:              svcCtx,
		cancel:           svcCancel,
		Now:              time.Now,
		state:            svc.StateREADY,
		done:             make(chan error, 1),
		cleanupCycle:     cleanupCycle,
		cleanupOlderThan: cleanupOlderThan,
		groups:           make(map[string]*BucketGroup[K]),
	}
}

// Start starts the cleanup loop
func (s *BucketStore[K]) Start() error {
	if s.state == svc.StateRUNNING {
		return fmt.Errorf("already started")
	}
	if s.state != svc.StateREADY {
		return fmt.Errorf("cannot start. not ready")
	}
	if s.cleanupCycle <= 0 {
		return fmt.Errorf("invalid cleanup cycle %v", s.cleanupCycle)
	}
	s.state = svc.StateRUNNING
	zap.L().Info("throttle cleanup started",
		zap.Duration("cycle", s.cleanupCycle), zap.Duration("older_than", s.cleanupOlderThan))
	go s.run()
	return nil
}

func (s *BucketStore[K]) Stop() {
	if s.state != svc.StateRUNNING {
		zap.L().Error("throttle cannot stop. not running")
		return
	}
	s.cancel()
	s.state = svc.StateSTOPPED
}

func (s *BucketStore[K]) Done() <-chan error {
	return s.done
}

func (s *BucketStore[K]) run() {
	ticker := time.NewTicker(s.cleanupCycle)
	defer ticker.Stop()
	for {
		select {
		case <-s.Ctx.Done():
			zap.L().Info("throttle cleanup stopped")
			s.done <- nil
			return
		case <-ticker.C:
			func() {
				defer func() {
					if r := recover(); r != nil {
						zap.L().Error("panic recovered in throttle cleanup", zap.Any("panic", r))
					}
				}()
				s.Cleanup(s.Now())
			}()
		}
	}
}

// Cleanup evicts the buckets idle for longer than the configured age
func (s *BucketStore[K]) Cleanup(now time.Time) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, g := range s.groups {
		n += g.cleanup(s.cleanupOlderThan, now)
	}
	if n > 0 {
		zap.L().Debug("throttle buckets evicted", zap.Int("count", n))
	}
	return n
}

func (s *BucketStore[K]) GetBucketGroup(id string) (*BucketGroup[K], bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.groups[id]
	return g, ok
}

func (s *BucketStore[K]) GetBucket(groupID string, key K) (*Bucket[K], bool) {
	g, ok := s.GetBucketGroup(groupID)
	if !ok {
		return nil, false
	}
	return g.GetBucket(key)
}

func (s *BucketStore[K]) SetBucketGroup(id string, conf BucketConf) error {
	if !conf.valid() {
		return fmt.Errorf("throttle group %q: burst, increment and period must be positive", id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.groups[id] = &BucketGroup[K]{conf: &conf}
	return nil
}

// Allow takes one token from key's bucket in the group. Unknown groups always block.
func (s *BucketStore[K]) Allow(groupID string, key K, now time.Time) bool {
	g, ok := s.GetBucketGroup(groupID)
	if !ok {
		return false
	}
	return g.allow(key, now)
}
