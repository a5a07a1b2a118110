// Package memory is a process-local kvdb.Client for single-node deployments and tests.
package memory

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/Christosun/flotech-report-system/db/kvdb"
)

const KVType = "memory"

// Register makes "memory" available to kvdb.New
func Register() {
	kvdb.RegisterFactory(KVType, func(conf *kvdb.Conf) (kvdb.Client, error) {
		return New(conf), nil
	})
}

type entry struct {
	val      string
	expireAt time.Time // zero = no expiry
}

type Client struct {
	Conf *kvdb.Conf
	Now  func() time.Time

	mu   sync.Mutex
	data map[string]entry
}

// Ensure memory.Client implements kvdb.Client interface
var _ kvdb.Client = (*Client)(nil)

func New(conf *kvdb.Conf) *Client {
	if conf == nil {
		conf = &kvdb.Conf{Type: KVType}
	}
	return &Client{Conf: conf, Now: time.Now, data: make(map[string]entry)}
}

func (c *Client) Init() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.data == nil {
		c.data = make(map[string]entry)
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	return nil
}

func (c *Client) Close() error {
	return nil
}

func (c *Client) GetConf() *kvdb.Conf {
	return c.Conf
}

// lookup must be called with mu held
func (c *Client) lookup(key string) (entry, bool) {
	e, ok := c.data[key]
	if !ok {
		return entry{}, false
	}
	if !e.expireAt.IsZero() && !c.Now().Before(e.expireAt) {
		delete(c.data, key)
		return entry{}, false
	}
	return e, true
}

func (c *Client) Exists(_ context.Context, key string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.lookup(key)
	return ok, nil
}

func (c *Client) Delete(_ context.Context, keys ...string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var n int64
	for _, k := range keys {
		if _, ok := c.lookup(k); ok {
			delete(c.data, k)
			n++
		}
	}
	return n, nil
}

func (c *Client) Expire(_ context.Context, key string, expiration time.Duration) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.lookup(key)
	if !ok {
		return false, nil
	}
	e.expireAt = c.Now().Add(expiration)
	c.data[key] = e
	return true, nil
}

func (c *Client) Set(_ context.Context, key string, value any, expiration time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	e := entry{val: fmt.Sprint(value)}
	if expiration > 0 {
		e.expireAt = c.Now().Add(expiration)
	}
	c.data[key] = e
	return nil
}

func (c *Client) Get(_ context.Context, key string) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.lookup(key)
	return e.val, ok, nil
}

func (c *Client) Incr(_ context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, _ := c.lookup(key)
	var n int64
	if e.val != "" {
		var err error
		if n, err = strconv.ParseInt(e.val, 10, 64); err != nil {
			return 0, fmt.Errorf("value at %q is not an integer", key)
		}
	}
	n++
	e.val = strconv.FormatInt(n, 10)
	c.data[key] = e
	return n, nil
}
