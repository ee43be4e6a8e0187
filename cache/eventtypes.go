package cache

import "github.com/sandwich-go/corrivalry/gatewayevent"

// EventType is a single bit in the EventTypeSet bitset passed to New. Each
// bit gates exactly one dispatch-table row; a cleared bit makes that row a
// no-op at Apply time, same as a missing entry in state.go's OnInterface
// switch would.
type EventType uint64

const (
	EventChannelCreateUpdate EventType = 1 << iota
	EventChannelDelete
	EventChannelPinsUpdate
	EventGuildCreate
	EventGuildUpdate
	EventGuildDelete
	EventGuildEmojisUpdate
	EventMemberAdd
	EventMemberRemove
	EventMemberUpdate
	EventMemberChunk
	EventMessageCreate
	EventMessageDelete
	EventMessageUpdate
	EventPresenceUpdate
	EventReactionAdd
	EventReactionRemove
	EventReactionRemoveAll
	EventReady
	EventRoleCreateUpdate
	EventRoleDelete
	EventUserUpdate
	EventVoiceStateUpdate

	// EventTypeAll enables every row. Tests that want the full dispatch
	// table construct a cache with this set, matching spec scenario S1's
	// "all event types enabled".
	EventTypeAll EventType = (1 << iota) - 1
)

// EventTypeSet is the bitset a Cache is configured with.
type EventTypeSet = EventType

// Has reports whether every bit in want is set in s.
func (s EventTypeSet) Has(want EventType) bool {
	return s&want == want
}

// kindBit maps a gatewayevent.Kind to the EventType bit gating it. Kinds
// absent from this map (bans, invites, typing, webhooks, keepalives) are
// recognised by the gateway layer but never mutate cache state, matching
// the dispatch table's closing "all other event kinds ... do not mutate
// cache state" line.
var kindBit = map[gatewayevent.Kind]EventType{
	gatewayevent.KindChannelCreate:            EventChannelCreateUpdate,
	gatewayevent.KindChannelUpdate:            EventChannelCreateUpdate,
	gatewayevent.KindChannelDelete:            EventChannelDelete,
	gatewayevent.KindChannelPinsUpdate:        EventChannelPinsUpdate,
	gatewayevent.KindGuildCreate:              EventGuildCreate,
	gatewayevent.KindGuildUpdate:              EventGuildUpdate,
	gatewayevent.KindGuildDelete:              EventGuildDelete,
	gatewayevent.KindGuildEmojisUpdate:        EventGuildEmojisUpdate,
	gatewayevent.KindGuildMemberAdd:           EventMemberAdd,
	gatewayevent.KindGuildMemberRemove:        EventMemberRemove,
	gatewayevent.KindGuildMemberUpdate:        EventMemberUpdate,
	gatewayevent.KindGuildMembersChunk:        EventMemberChunk,
	gatewayevent.KindMessageCreate:            EventMessageCreate,
	gatewayevent.KindMessageDelete:            EventMessageDelete,
	gatewayevent.KindMessageDeleteBulk:        EventMessageDelete,
	gatewayevent.KindMessageUpdate:            EventMessageUpdate,
	gatewayevent.KindPresenceUpdate:           EventPresenceUpdate,
	gatewayevent.KindMessageReactionAdd:       EventReactionAdd,
	gatewayevent.KindMessageReactionRemove:    EventReactionRemove,
	gatewayevent.KindMessageReactionRemoveAll: EventReactionRemoveAll,
	gatewayevent.KindReady:                    EventReady,
	gatewayevent.KindGuildRoleCreate:          EventRoleCreateUpdate,
	gatewayevent.KindGuildRoleUpdate:          EventRoleCreateUpdate,
	gatewayevent.KindGuildRoleDelete:          EventRoleDelete,
	gatewayevent.KindUserUpdate:               EventUserUpdate,
	gatewayevent.KindVoiceStateUpdate:         EventVoiceStateUpdate,
}
