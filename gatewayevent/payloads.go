package gatewayevent

import "github.com/sandwich-go/corrivalry/model"

// Ready is the payload of the first Dispatch frame a shard receives after a
// successful identify.
type Ready struct {
	Version   int          `json:"v"`
	SessionID string       `json:"session_id"`
	User      *model.CurrentUser `json:"user"`
	Guilds    []*ReadyGuild `json:"guilds"`
	Shard     *[2]int       `json:"shard,omitempty"`
}

// ReadyGuild is Ready's guilds list entry. Most sessions see every guild
// start unavailable (`GuildStatus::Offline` in the cache library this is
// ground-truthed against) and get promoted to a full Guild row by its own
// later GuildCreate. A guild already resident in the session (the gateway
// had no need to lazy-load it) arrives inline instead, as a full guild
// payload (`GuildStatus::Online`) shaped exactly like a GuildCreate. The
// two cases are told apart by decoding into the stub shape first: a bare
// unavailable stub has nothing beyond id/unavailable, while an online entry
// carries the rest of GuildCreate's fields alongside them.
type ReadyGuild struct {
	ID          model.Snowflake
	Unavailable bool
	Guild       *GuildCreate // non-nil only for the online case
}

func (r *ReadyGuild) UnmarshalJSON(data []byte) error {
	var stub struct {
		ID          model.Snowflake `json:"id"`
		Unavailable bool            `json:"unavailable"`
	}
	if err := JSON.Unmarshal(data, &stub); err != nil {
		return err
	}
	r.ID = stub.ID
	r.Unavailable = stub.Unavailable
	if stub.Unavailable {
		return nil
	}

	var gc GuildCreate
	if err := JSON.Unmarshal(data, &gc); err != nil {
		return err
	}
	if gc.Guild == nil {
		// Present but without the fields a full guild payload carries:
		// treat it the same as an explicit unavailable stub rather than
		// fabricating a guild row from nothing.
		r.Unavailable = true
		return nil
	}
	r.Guild = &gc
	return nil
}

// MarshalJSON writes the entry in the same flat shape UnmarshalJSON reads:
// the full guild payload for the online case, or a bare id/unavailable stub.
func (r ReadyGuild) MarshalJSON() ([]byte, error) {
	if !r.Unavailable && r.Guild != nil {
		return JSON.Marshal(r.Guild)
	}
	return JSON.Marshal(struct {
		ID          model.Snowflake `json:"id"`
		Unavailable bool            `json:"unavailable"`
	}{r.ID, r.Unavailable})
}

type ChannelCreate struct{ *model.Channel }
type ChannelUpdate struct{ *model.Channel }
type ChannelDelete struct{ *model.Channel }

type ChannelPinsUpdate struct {
	GuildID          model.Snowflake `json:"guild_id,omitempty"`
	ChannelID        model.Snowflake `json:"channel_id"`
	LastPinTimestamp string          `json:"last_pin_timestamp,omitempty"`
}

type GuildCreate struct {
	*model.Guild
	Members    []*model.Member    `json:"members"`
	Roles      []*model.Role      `json:"roles"`
	Emojis     []*model.Emoji     `json:"emojis"`
	Presences  []*model.Presence  `json:"presences"`
	VoiceStates []*model.VoiceState `json:"voice_states"`
	Channels   []*model.Channel   `json:"channels"`
}

type GuildUpdate struct{ *model.Guild }

type GuildDelete struct {
	ID          model.Snowflake `json:"id"`
	Unavailable bool            `json:"unavailable"`
}

type GuildMemberAdd struct {
	GuildID model.Snowflake `json:"guild_id"`
	*model.Member
}

type GuildMemberUpdate struct {
	GuildID model.Snowflake `json:"guild_id"`
	Roles   []model.Snowflake `json:"roles"`
	User    *model.User     `json:"user"`
	Nick    string          `json:"nick,omitempty"`
}

type GuildMemberRemove struct {
	GuildID model.Snowflake `json:"guild_id"`
	User    *model.User     `json:"user"`
}

type GuildMembersChunk struct {
	GuildID model.Snowflake  `json:"guild_id"`
	Members []*model.Member  `json:"members"`
}

type GuildRoleCreate struct {
	GuildID model.Snowflake `json:"guild_id"`
	Role    *model.Role     `json:"role"`
}

type GuildRoleUpdate struct {
	GuildID model.Snowflake `json:"guild_id"`
	Role    *model.Role     `json:"role"`
}

type GuildRoleDelete struct {
	GuildID model.Snowflake `json:"guild_id"`
	RoleID  model.Snowflake `json:"role_id"`
}

type GuildEmojisUpdate struct {
	GuildID model.Snowflake `json:"guild_id"`
	Emojis  []*model.Emoji  `json:"emojis"`
}

type MessageCreate struct{ *model.Message }
type MessageUpdate struct{ *model.Message }

type MessageDelete struct {
	ID        model.Snowflake `json:"id"`
	ChannelID model.Snowflake `json:"channel_id"`
	GuildID   model.Snowflake `json:"guild_id,omitempty"`
}

type MessageDeleteBulk struct {
	IDs       []model.Snowflake `json:"ids"`
	ChannelID model.Snowflake   `json:"channel_id"`
	GuildID   model.Snowflake   `json:"guild_id,omitempty"`
}

type MessageReactionAdd struct {
	UserID    model.Snowflake  `json:"user_id"`
	MessageID model.Snowflake  `json:"message_id"`
	ChannelID model.Snowflake  `json:"channel_id"`
	GuildID   model.Snowflake  `json:"guild_id,omitempty"`
	Emoji     model.EmojiRef   `json:"emoji"`
}

type MessageReactionRemove struct {
	UserID    model.Snowflake `json:"user_id"`
	MessageID model.Snowflake `json:"message_id"`
	ChannelID model.Snowflake `json:"channel_id"`
	GuildID   model.Snowflake `json:"guild_id,omitempty"`
	Emoji     model.EmojiRef  `json:"emoji"`
}

type MessageReactionRemoveAll struct {
	MessageID model.Snowflake `json:"message_id"`
	ChannelID model.Snowflake `json:"channel_id"`
	GuildID   model.Snowflake `json:"guild_id,omitempty"`
}

type PresenceUpdate struct {
	GuildID    model.Snowflake    `json:"guild_id"`
	User       *model.User        `json:"user"`
	Status     model.Status       `json:"status"`
	Activities []model.Activity   `json:"activities"`
}

type TypingStart struct {
	GuildID   model.Snowflake `json:"guild_id,omitempty"`
	ChannelID model.Snowflake `json:"channel_id"`
	UserID    model.Snowflake `json:"user_id"`
	Timestamp int64           `json:"timestamp"`
}

type UserUpdate struct{ *model.User }

type VoiceStateUpdate struct{ *model.VoiceState }

type VoiceServerUpdate struct {
	Token    string          `json:"token"`
	GuildID  model.Snowflake `json:"guild_id"`
	Endpoint string          `json:"endpoint"`
}
