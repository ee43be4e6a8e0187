// Package gatewayevent defines the gateway wire envelope and the payload
// types carried inside it, decoded with a deferred-payload two-pass scheme:
// the outer Envelope is decoded first to learn Op/Sequence/Type, then the
// raw payload bytes are decoded a second time into the concrete type the
// dispatch table picks for that Type.
package gatewayevent

import jsoniter "github.com/json-iterator/go"

// JSON is the codec every payload in this package (and callers decoding
// Envelope.RawData a second time) should use, matching client/client.go's
// own jsoniter.ConfigCompatibleWithStandardLibrary choice.
var JSON = jsoniter.ConfigCompatibleWithStandardLibrary

// Op is the gateway opcode carried in every envelope.
type Op int

const (
	OpDispatch Op = iota
	OpHeartbeat
	OpIdentify
	OpPresenceUpdate
	OpVoiceStateUpdate
	_
	OpResume
	OpReconnect
	OpRequestGuildMembers
	OpInvalidSession
	OpHello
	OpHeartbeatACK
)

// Envelope is the outer gateway frame. RawData is decoded a second time
// once Type is known, against the concrete payload struct the dispatch
// table maps Type to.
type Envelope struct {
	Op       Op              `json:"op"`
	Sequence int64           `json:"s"`
	Type     string          `json:"t"`
	RawData  jsoniter.RawMessage `json:"d"`
}

// Kind enumerates the dispatch-relevant event types the cache and cluster
// care about. Event types outside this set are still fanned in to
// consumers as raw envelopes; the cache simply has no handler registered
// for them.
type Kind string

const (
	KindReady                    Kind = "READY"
	KindResumed                  Kind = "RESUMED"
	KindChannelCreate            Kind = "CHANNEL_CREATE"
	KindChannelUpdate            Kind = "CHANNEL_UPDATE"
	KindChannelDelete            Kind = "CHANNEL_DELETE"
	KindChannelPinsUpdate        Kind = "CHANNEL_PINS_UPDATE"
	KindGuildCreate              Kind = "GUILD_CREATE"
	KindGuildUpdate              Kind = "GUILD_UPDATE"
	KindGuildDelete              Kind = "GUILD_DELETE"
	KindGuildMemberAdd           Kind = "GUILD_MEMBER_ADD"
	KindGuildMemberUpdate        Kind = "GUILD_MEMBER_UPDATE"
	KindGuildMemberRemove        Kind = "GUILD_MEMBER_REMOVE"
	KindGuildMembersChunk        Kind = "GUILD_MEMBERS_CHUNK"
	KindGuildRoleCreate          Kind = "GUILD_ROLE_CREATE"
	KindGuildRoleUpdate          Kind = "GUILD_ROLE_UPDATE"
	KindGuildRoleDelete          Kind = "GUILD_ROLE_DELETE"
	KindGuildEmojisUpdate        Kind = "GUILD_EMOJIS_UPDATE"
	KindMessageCreate            Kind = "MESSAGE_CREATE"
	KindMessageUpdate            Kind = "MESSAGE_UPDATE"
	KindMessageDelete            Kind = "MESSAGE_DELETE"
	KindMessageDeleteBulk        Kind = "MESSAGE_DELETE_BULK"
	KindMessageReactionAdd       Kind = "MESSAGE_REACTION_ADD"
	KindMessageReactionRemove    Kind = "MESSAGE_REACTION_REMOVE"
	KindMessageReactionRemoveAll Kind = "MESSAGE_REACTION_REMOVE_ALL"
	KindPresenceUpdate           Kind = "PRESENCE_UPDATE"
	KindTypingStart              Kind = "TYPING_START"
	KindUserUpdate               Kind = "USER_UPDATE"
	KindVoiceStateUpdate         Kind = "VOICE_STATE_UPDATE"
	KindVoiceServerUpdate        Kind = "VOICE_SERVER_UPDATE"
)
