package throttle

import (
	"math"
	"net/http"
	"strconv"

	"github.com/Christosun/flotech-report-system/responses"
	"go.uber.org/zap"
)

// LimitWrapper is a routing.HandlerWrapper answering 429 once Key(r) ran out of tokens
type LimitWrapper[K comparable] struct {
	Store *BucketStore[K]
	Group string
	Key   func(*http.Request) K
}

func (l *LimitWrapper[K]) Wrap(inner http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := l.Key(r)
		if l.Store.Allow(l.Group, key, l.Store.Now()) {
			inner.ServeHTTP(w, r)
			return
		}
		zap.L().Warn("request throttled", zap.String("group", l.Group), zap.Any("key", key))
		if g, ok := l.Store.GetBucketGroup(l.Group); ok {
			secs := math.Ceil(g.conf.Period().Seconds())
			w.Header().Set("Retry-After", strconv.Itoa(int(secs)))
		}
		responses.WriteError(w, http.StatusTooManyRequests, "Terlalu banyak permintaan, coba lagi nanti", responses.CodeThrottled)
	})
}
