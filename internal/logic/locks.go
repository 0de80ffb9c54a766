package logic

import (
	"fmt"
	"sync"
)

// recordLocks 进程内的记录级互斥锁，配合事务中的 FOR UPDATE 使用
type recordLocks struct {
	mu    sync.Mutex
	locks map[string]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

var locks = &recordLocks{locks: make(map[string]*lockEntry)}

func lockKey(kind string, id int64) string {
	return fmt.Sprintf("%s:%d", kind, id)
}

// Lock 按给定顺序加锁，返回解锁函数。调用方需保证全局一致的加锁顺序：campaign -> round -> sale -> grant
func (l *recordLocks) Lock(keys ...string) func() {
	entries := make([]*lockEntry, 0, len(keys))
	for _, key := range keys {
		l.mu.Lock()
		entry, ok := l.locks[key]
		if !ok {
			entry = &lockEntry{}
			l.locks[key] = entry
		}
		entry.refs++
		l.mu.Unlock()

		entry.mu.Lock()
		entries = append(entries, entry)
	}

	return func() {
		for i := len(entries) - 1; i >= 0; i-- {
			entries[i].mu.Unlock()
			l.release(keys[i])
		}
	}
}

func (l *recordLocks) release(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	entry := l.locks[key]
	entry.refs--
	if entry.refs == 0 {
		delete(l.locks, key)
	}
}

// size 当前持有的锁数量
func (l *recordLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
