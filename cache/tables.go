package cache

import (
	"sync"

	"github.com/sandwich-go/corrivalry/model"
)

type memberKey struct{ GuildID, UserID model.Snowflake }
type presenceKey struct{ GuildID, UserID model.Snowflake }
type voiceKey struct{ GuildID, UserID model.Snowflake }

// userRow is the User table's row: the cached User plus the reverse index
// of guild ids this user is currently known in. The row is deleted the
// instant its guild set becomes empty (invariant 2).
type userRow struct {
	user   model.User
	guilds map[model.Snowflake]struct{}
}

// channelMessages is one channel's bounded message history. It is its own
// lock domain so that inserting into channel A's history never contends
// with channel B's.
type channelMessages struct {
	mu    sync.RWMutex
	byID  map[model.Snowflake]*model.Message
}

func newChannelMessages() *channelMessages {
	return &channelMessages{byID: make(map[model.Snowflake]*model.Message)}
}

// Cache is the event-driven in-memory projection of platform state. Every
// table is its own RWMutex-guarded map, mirroring state.go's per-State
// RWMutex but split one mutex per table so a read against one entity kind
// never blocks a write against another.
type Cache struct {
	eventTypes       EventTypeSet
	messageCacheSize int

	guildsMu sync.RWMutex
	guilds   map[model.Snowflake]*model.Guild

	unavailableMu sync.RWMutex
	unavailable   map[model.Snowflake]struct{}

	guildChannelsMu sync.RWMutex
	guildChannels   map[model.Snowflake]*model.Channel

	privateChannelsMu sync.RWMutex
	privateChannels   map[model.Snowflake]*model.Channel

	groupChannelsMu sync.RWMutex
	groupChannels   map[model.Snowflake]*model.Channel

	rolesMu sync.RWMutex
	roles   map[model.Snowflake]*model.Role

	emojisMu sync.RWMutex
	emojis   map[model.Snowflake]*model.Emoji

	membersMu sync.RWMutex
	members   map[memberKey]*model.Member

	presencesMu sync.RWMutex
	presences   map[presenceKey]*model.Presence

	voiceStatesMu sync.RWMutex
	voiceStates   map[voiceKey]*model.VoiceState

	usersMu sync.RWMutex
	users   map[model.Snowflake]*userRow

	messagesMu sync.RWMutex
	messages   map[model.Snowflake]*channelMessages

	currentUserMu sync.RWMutex
	currentUser   *model.CurrentUser

	guildChannelIDs *idIndex
	guildEmojiIDs   *idIndex
	guildRoleIDs    *idIndex
	guildMemberIDs  *idIndex
	guildPresenceIDs *idIndex
	guildVoiceStateIDs *idIndex
}

// Config parameterises a Cache at construction, per spec §4.1's
// "Configuration" section.
type Config struct {
	EventTypes       EventTypeSet
	MessageCacheSize int
}

// New builds an empty Cache. A MessageCacheSize <= 0 defaults to 1, the
// smallest size the testable-property suite exercises.
func New(cfg Config) *Cache {
	size := cfg.MessageCacheSize
	if size <= 0 {
		size = 1
	}
	return &Cache{
		eventTypes:       cfg.EventTypes,
		messageCacheSize: size,

		guilds:          make(map[model.Snowflake]*model.Guild),
		unavailable:     make(map[model.Snowflake]struct{}),
		guildChannels:   make(map[model.Snowflake]*model.Channel),
		privateChannels: make(map[model.Snowflake]*model.Channel),
		groupChannels:   make(map[model.Snowflake]*model.Channel),
		roles:           make(map[model.Snowflake]*model.Role),
		emojis:          make(map[model.Snowflake]*model.Emoji),
		members:         make(map[memberKey]*model.Member),
		presences:       make(map[presenceKey]*model.Presence),
		voiceStates:     make(map[voiceKey]*model.VoiceState),
		users:           make(map[model.Snowflake]*userRow),
		messages:        make(map[model.Snowflake]*channelMessages),

		guildChannelIDs:    newIDIndex(),
		guildEmojiIDs:      newIDIndex(),
		guildRoleIDs:       newIDIndex(),
		guildMemberIDs:     newIDIndex(),
		guildPresenceIDs:   newIDIndex(),
		guildVoiceStateIDs: newIDIndex(),
	}
}

// internUser upserts the User row and adds guildID to its reverse set.
// Called whenever a member or message author references a user, so the
// user table never holds a row no guild-scoped table points at. A zero
// guildID (e.g. a DM message author) interns nothing.
func (c *Cache) internUser(guildID model.Snowflake, u *model.User) {
	if u == nil || guildID == 0 {
		return
	}
	c.usersMu.Lock()
	defer c.usersMu.Unlock()
	row, ok := c.users[u.ID]
	if !ok {
		row = &userRow{guilds: make(map[model.Snowflake]struct{})}
		c.users[u.ID] = row
	}
	row.user = *u
	row.guilds[guildID] = struct{}{}
}

// uninternUser drops guildID from u's reverse set and removes the row
// entirely if that was its last guild. This is always called after the
// owning table's lock has been released (two-phase pattern, spec §5).
func (c *Cache) uninternUser(guildID, userID model.Snowflake) {
	c.usersMu.Lock()
	defer c.usersMu.Unlock()
	row, ok := c.users[userID]
	if !ok {
		return
	}
	delete(row.guilds, guildID)
	if len(row.guilds) == 0 {
		delete(c.users, userID)
	}
}
