package throttle

import "time"

type BucketConf struct {
	Burst     int   `json:"burst"`     // maximum number of tokens in the bucket
	Increment int   `json:"increment"` // how many tokens to add each period
	PeriodMS  int64 `json:"period_ms"` // how often to add Increment
}

func (c *BucketConf) Period() time.Duration {
	return time.Duration(c.PeriodMS) * time.Millisecond
}

func (c *BucketConf) valid() bool {
	return c.Burst > 0 && c.Increment > 0 && c.PeriodMS > 0
}
