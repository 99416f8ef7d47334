// Playdex - Game Catalog List & Ranking Engine
// Copyright 2026 Playdex Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playdex/playdex

package rating

import "sync"

// entityLocks provides one mutex per entity ID so that concurrent votes on
// the same game serialize their read-modify-write, while votes on
// different games proceed in parallel. Lock entries are never reclaimed;
// the map grows with the set of games voted on in this process, which is
// bounded by the catalog size.
type entityLocks struct {
	locks sync.Map // int64 -> *sync.Mutex
}

// lock acquires the mutex for id and returns its unlock function.
func (e *entityLocks) lock(id int64) func() {
	v, _ := e.locks.LoadOrStore(id, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
