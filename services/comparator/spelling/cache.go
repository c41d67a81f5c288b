// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package spelling

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/AleutianAI/ContentCompare/services/comparator/observability"
)

// Cache is the keyed, lazily-populated dictionary cache.
//
// # Description
//
// Dictionaries load on first request per language and stay cached for
// the process lifetime. Concurrent first requests for the same language
// collapse into a single in-flight load via singleflight: the second
// arrival awaits the first's result instead of triggering a duplicate
// download. Failed loads are not cached, so a transient network failure
// is retried on the next request.
//
// # Thread Safety
//
// Safe for concurrent use.
type Cache struct {
	source Source

	mu    sync.RWMutex
	dicts map[string]Dictionary

	group singleflight.Group
}

// NewCache creates a dictionary cache over the given source.
// Panics on a nil source (fail-fast for programming errors).
func NewCache(source Source) *Cache {
	if source == nil {
		panic("spelling.NewCache: source must not be nil")
	}
	return &Cache{
		source: source,
		dicts:  make(map[string]Dictionary),
	}
}

// Get returns the dictionary for lang, loading it on first use.
//
// # Outputs
//
//   - Dictionary: ready for use, shared across requests
//   - error: ErrNoDictionary (wrapped) when lang is unsupported, or the
//     underlying load failure
func (c *Cache) Get(ctx context.Context, lang string) (Dictionary, error) {
	c.mu.RLock()
	dict, ok := c.dicts[lang]
	c.mu.RUnlock()
	if ok {
		return dict, nil
	}

	result, err, _ := c.group.Do(lang, func() (any, error) {
		// Re-check under the group: a previous flight may have
		// populated the map between our read and this call.
		c.mu.RLock()
		cached, ok := c.dicts[lang]
		c.mu.RUnlock()
		if ok {
			return cached, nil
		}

		loaded, err := c.source.Load(ctx, lang)
		observability.RecordDictionaryLoad(lang, err == nil)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.dicts[lang] = loaded
		c.mu.Unlock()
		return loaded, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(Dictionary), nil
}

// Languages lists the language tags the underlying source supports.
func (c *Cache) Languages() []string {
	return c.source.Languages()
}

// Loaded reports whether a dictionary for lang is already in memory.
func (c *Cache) Loaded(lang string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.dicts[lang]
	return ok
}
