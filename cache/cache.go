package cache

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Store is a concurrency-safe mapping from string keys to values of type V.
// Get and Put are O(1) for both retention policies.
type Store[V any] interface {
	// Get returns the value stored for key, if any. For a bounded store a
	// successful lookup refreshes the entry's recency.
	Get(key string) (V, bool)
	// Put stores a value for key, unconditionally overwriting a present
	// entry. A bounded store at capacity first evicts the
	// least-recently-used entry.
	Put(key string, value V)
	// Len returns the number of entries currently retained.
	Len() int
}

// New creates a Store with the given capacity. A capacity of 0 (or less)
// selects unbounded retention; a positive capacity selects bounded
// least-recently-used retention with at most capacity entries.
func New[V any](capacity int) Store[V] {
	if capacity <= 0 {
		tracer().Debugf("new unbounded store")
		return &mapStore[V]{entries: make(map[string]V)}
	}
	tracer().Debugf("new LRU store, capacity = %d", capacity)
	c, err := lru.New[string, V](capacity)
	if err != nil {
		panic(err) // unreachable, capacity is positive
	}
	return &lruStore[V]{lru: c}
}

// --- Unbounded store -------------------------------------------------------

// mapStore retains every entry ever put. Access is synchronized by a
// single read/write mutex.
type mapStore[V any] struct {
	lock    sync.RWMutex
	entries map[string]V
}

func (s *mapStore[V]) Get(key string) (V, bool) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	v, ok := s.entries[key]
	return v, ok
}

func (s *mapStore[V]) Put(key string, value V) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.entries[key] = value
}

func (s *mapStore[V]) Len() int {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return len(s.entries)
}

// --- Bounded store ---------------------------------------------------------

// lruStore is a thin wrapper around hashicorp's LRU cache, which is
// already safe for concurrent use.
type lruStore[V any] struct {
	lru *lru.Cache[string, V]
}

func (s *lruStore[V]) Get(key string) (V, bool) {
	return s.lru.Get(key)
}

func (s *lruStore[V]) Put(key string, value V) {
	if evicted := s.lru.Add(key, value); evicted {
		tracer().Debugf("store at capacity, evicted least-recently-used entry")
	}
}

func (s *lruStore[V]) Len() int {
	return s.lru.Len()
}
