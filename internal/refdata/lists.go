// Playdex - Game Catalog List & Ranking Engine
// Copyright 2026 Playdex Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playdex/playdex

package refdata

import (
	"context"
	"time"

	"github.com/playdex/playdex/internal/models"
)

// Cache keys for the reference lists.
const (
	keyPlatforms = "refdata:platforms"
	keyGenres    = "refdata:genres"
	keyStores    = "refdata:stores"
)

// Loader loads the reference lists from storage.
type Loader interface {
	ListPlatforms(ctx context.Context) ([]models.Platform, error)
	ListGenres(ctx context.Context) ([]models.Genre, error)
	ListStores(ctx context.Context) ([]models.Store, error)
}

// Lists is a read-through cache over the reference lists.
type Lists struct {
	loader Loader
	cache  *Cache
}

// NewLists creates the service. ttl <= 0 defaults to five minutes.
func NewLists(loader Loader, ttl time.Duration) *Lists {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Lists{loader: loader, cache: NewCache(ttl)}
}

// Platforms returns the platform list, from cache when fresh.
func (l *Lists) Platforms(ctx context.Context) ([]models.Platform, error) {
	if v, ok := l.cache.Get(keyPlatforms); ok {
		return v.([]models.Platform), nil
	}
	platforms, err := l.loader.ListPlatforms(ctx)
	if err != nil {
		return nil, err
	}
	l.cache.Set(keyPlatforms, platforms)
	return platforms, nil
}

// Genres returns the genre list, from cache when fresh.
func (l *Lists) Genres(ctx context.Context) ([]models.Genre, error) {
	if v, ok := l.cache.Get(keyGenres); ok {
		return v.([]models.Genre), nil
	}
	genres, err := l.loader.ListGenres(ctx)
	if err != nil {
		return nil, err
	}
	l.cache.Set(keyGenres, genres)
	return genres, nil
}

// Stores returns the store list, from cache when fresh.
func (l *Lists) Stores(ctx context.Context) ([]models.Store, error) {
	if v, ok := l.cache.Get(keyStores); ok {
		return v.([]models.Store), nil
	}
	stores, err := l.loader.ListStores(ctx)
	if err != nil {
		return nil, err
	}
	l.cache.Set(keyStores, stores)
	return stores, nil
}

// Invalidate drops all cached lists, forcing a reload on next access.
func (l *Lists) Invalidate() {
	l.cache.Clear()
}

// Close stops the cache's cleanup loop.
func (l *Lists) Close() {
	l.cache.Stop()
}
