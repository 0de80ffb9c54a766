package clock

import (
	"sync"
	"time"
)

// Clock 提供当前 unix 时间（秒）
type Clock interface {
	Now() int64
}

// SystemClock 系统时钟
type SystemClock struct{}

// Now 当前时间
func (SystemClock) Now() int64 {
	return time.Now().Unix()
}

// ManualClock 手动推进的时钟
type ManualClock struct {
	mu  sync.Mutex
	now int64
}

// NewManualClock 创建手动时钟
func NewManualClock(now int64) *ManualClock {
	return &ManualClock{now: now}
}

// Now 当前时间
func (c *ManualClock) Now() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Set 设置时间
func (c *ManualClock) Set(now int64) {
	c.mu.Lock()
	c.now = now
	c.mu.Unlock()
}

// Advance 向前推进若干秒
func (c *ManualClock) Advance(seconds int64) {
	c.mu.Lock()
	c.now += seconds
	c.mu.Unlock()
}
