package cache

import (
	"sync"

	"github.com/sandwich-go/corrivalry/model"
)

// idIndex is an auxiliary guild→{ids} index, e.g. guild→channel ids or
// guild→member user ids. It is maintained in lockstep with its base table
// by every handler that touches that table, and is trivially rebuildable
// from the base table if it were ever to drift (spec §3's "recoverable if
// rebuilt from scratch").
type idIndex struct {
	mu sync.RWMutex
	m  map[model.Snowflake]map[model.Snowflake]struct{}
}

func newIDIndex() *idIndex {
	return &idIndex{m: make(map[model.Snowflake]map[model.Snowflake]struct{})}
}

func (x *idIndex) add(guildID, id model.Snowflake) {
	x.mu.Lock()
	defer x.mu.Unlock()
	set, ok := x.m[guildID]
	if !ok {
		set = make(map[model.Snowflake]struct{})
		x.m[guildID] = set
	}
	set[id] = struct{}{}
}

func (x *idIndex) remove(guildID, id model.Snowflake) {
	x.mu.Lock()
	defer x.mu.Unlock()
	set, ok := x.m[guildID]
	if !ok {
		return
	}
	delete(set, id)
	if len(set) == 0 {
		delete(x.m, guildID)
	}
}

// removeGuild drops the entire guild entry and returns the ids it held, so
// the caller can cascade the removal into the base table.
func (x *idIndex) removeGuild(guildID model.Snowflake) []model.Snowflake {
	x.mu.Lock()
	defer x.mu.Unlock()
	set, ok := x.m[guildID]
	if !ok {
		return nil
	}
	ids := make([]model.Snowflake, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	delete(x.m, guildID)
	return ids
}

// replaceGuild overwrites the guild's whole id set, used by GuildEmojisUpdate
// which replaces rather than merges.
func (x *idIndex) replaceGuild(guildID model.Snowflake, ids []model.Snowflake) {
	x.mu.Lock()
	defer x.mu.Unlock()
	set := make(map[model.Snowflake]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	if len(set) == 0 {
		delete(x.m, guildID)
		return
	}
	x.m[guildID] = set
}

func (x *idIndex) list(guildID model.Snowflake) []model.Snowflake {
	x.mu.RLock()
	defer x.mu.RUnlock()
	set, ok := x.m[guildID]
	if !ok {
		return nil
	}
	ids := make([]model.Snowflake, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	return ids
}
