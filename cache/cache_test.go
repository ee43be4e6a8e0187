package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandwich-go/corrivalry/gatewayevent"
	"github.com/sandwich-go/corrivalry/model"
)

func envelope(t *testing.T, kind gatewayevent.Kind, payload interface{}) *gatewayevent.Envelope {
	t.Helper()
	raw, err := gatewayevent.JSON.Marshal(payload)
	require.NoError(t, err)
	return &gatewayevent.Envelope{Type: string(kind), RawData: raw}
}

func TestGuildUpdate_S1(t *testing.T) {
	c := New(Config{EventTypes: EventTypeAll, MessageCacheSize: 50})

	c.Apply(envelope(t, gatewayevent.KindGuildCreate, gatewayevent.GuildCreate{
		Guild: &model.Guild{ID: 1, Name: "test", OwnerID: 1},
	}))
	c.Apply(envelope(t, gatewayevent.KindGuildUpdate, gatewayevent.GuildUpdate{
		Guild: &model.Guild{ID: 1, Name: "test2222", OwnerID: 2},
	}))

	g, ok := c.Guild(1)
	require.True(t, ok)
	assert.Equal(t, "test2222", g.Name)
	assert.Equal(t, model.Snowflake(2), g.OwnerID)
	assert.Equal(t, model.Snowflake(1), g.ID)
}

func TestChannelDelete_S2(t *testing.T) {
	c := New(Config{EventTypes: EventTypeAll, MessageCacheSize: 50})

	ch := &model.Channel{ID: 2, GuildID: 1, Type: model.ChannelTypeGuildText}
	c.Apply(envelope(t, gatewayevent.KindChannelCreate, gatewayevent.ChannelCreate{Channel: ch}))
	_, ok := c.Channel(2)
	require.True(t, ok)

	c.Apply(envelope(t, gatewayevent.KindChannelDelete, gatewayevent.ChannelDelete{Channel: ch}))

	_, ok = c.Channel(2)
	assert.False(t, ok)
	assert.Empty(t, c.guildChannelIDs.list(1))
}

func TestChannelUpdateIdempotent_S3(t *testing.T) {
	c := New(Config{EventTypes: EventTypeAll, MessageCacheSize: 50})

	ch := &model.Channel{ID: 2, GuildID: 1, Type: model.ChannelTypeGuildText, Name: "general"}
	c.Apply(envelope(t, gatewayevent.KindChannelUpdate, gatewayevent.ChannelCreate{Channel: ch}))
	got, ok := c.Channel(2)
	require.True(t, ok)
	assert.Equal(t, "general", got.Name)
	assert.Equal(t, []model.Snowflake{2}, c.guildChannelIDs.list(1))

	c.Apply(envelope(t, gatewayevent.KindChannelUpdate, gatewayevent.ChannelCreate{Channel: ch}))
	got2, ok := c.Channel(2)
	require.True(t, ok)
	assert.Equal(t, got, got2)
	assert.Equal(t, []model.Snowflake{2}, c.guildChannelIDs.list(1))
}

func TestVoiceStateMissingGuild_S4(t *testing.T) {
	c := New(Config{EventTypes: EventVoiceStateUpdate, MessageCacheSize: 50})

	assert.NotPanics(t, func() {
		c.Apply(envelope(t, gatewayevent.KindVoiceStateUpdate, gatewayevent.VoiceStateUpdate{
			VoiceState: &model.VoiceState{GuildID: 1, UserID: 1, ChannelID: 5, SessionID: "s"},
		}))
	})

	vs, ok := c.VoiceState(1, 1)
	require.True(t, ok)
	assert.Equal(t, model.Snowflake(5), vs.ChannelID)
}

func TestMessageCreateAuthorInterning_S5(t *testing.T) {
	c := New(Config{EventTypes: EventMessageCreate, MessageCacheSize: 1})

	c.Apply(envelope(t, gatewayevent.KindMessageCreate, gatewayevent.MessageCreate{
		Message: &model.Message{
			ID: 4, ChannelID: 2, GuildID: 1,
			Author: &model.User{ID: 3, Username: "alice"},
		},
	}))

	_, guilds, ok := c.User(3)
	require.True(t, ok)
	assert.Equal(t, []model.Snowflake{1}, guilds)

	_, ok = c.Member(1, 3)
	assert.True(t, ok)

	msg, ok := c.Message(2, 4)
	require.True(t, ok)
	assert.Equal(t, model.Snowflake(4), msg.ID)
}

func TestMessageCreatePartialMemberMerge(t *testing.T) {
	c := New(Config{EventTypes: EventTypeAll, MessageCacheSize: 50})

	c.Apply(envelope(t, gatewayevent.KindGuildMemberAdd, gatewayevent.GuildMemberAdd{
		GuildID: 1,
		Member: &model.Member{
			User: &model.User{ID: 3, Username: "alice"},
			Roles: []model.Snowflake{7}, JoinedAt: "2020-01-01", PremiumSince: "2021-01-01",
		},
	}))

	c.Apply(envelope(t, gatewayevent.KindMessageCreate, gatewayevent.MessageCreate{
		Message: &model.Message{
			ID: 4, ChannelID: 2, GuildID: 1,
			Author: &model.User{ID: 3, Username: "alice"},
			Member: &model.PartialMember{Nick: "al", Roles: []model.Snowflake{7}, JoinedAt: "2020-01-01"},
		},
	}))

	mem, ok := c.Member(1, 3)
	require.True(t, ok)
	assert.Equal(t, "al", mem.Nick)
	assert.Equal(t, "2021-01-01", mem.PremiumSince,
		"partial member merge must not erase fields the fuller GuildMemberAdd already populated")
}

func TestReadyAppliesOnlineGuildAsGuildCreate(t *testing.T) {
	c := New(Config{EventTypes: EventTypeAll, MessageCacheSize: 1})

	c.Apply(envelope(t, gatewayevent.KindReady, gatewayevent.Ready{
		SessionID: "sess",
		User:      &model.CurrentUser{User: model.User{ID: 9}},
		Guilds: []*gatewayevent.ReadyGuild{
			{ID: 1, Unavailable: true},
			{ID: 2, Guild: &gatewayevent.GuildCreate{Guild: &model.Guild{ID: 2, Name: "already-here"}}},
		},
	}))

	_, unavailable := c.Guild(1)
	assert.False(t, unavailable, "an unavailable Ready guild must not be cached as a full guild")

	g, ok := c.Guild(2)
	require.True(t, ok, "a Ready guild entry carrying a full payload must be applied as a GuildCreate")
	assert.Equal(t, "already-here", g.Name)
}

func TestReadyUnavailableGuildStub(t *testing.T) {
	raw, err := gatewayevent.JSON.Marshal(map[string]interface{}{"id": "3", "unavailable": true})
	require.NoError(t, err)

	var g gatewayevent.ReadyGuild
	require.NoError(t, gatewayevent.JSON.Unmarshal(raw, &g))
	assert.True(t, g.Unavailable)
	assert.Nil(t, g.Guild)
	assert.Equal(t, model.Snowflake(3), g.ID)
}

func TestPresenceUpdateDoesNotFabricateMember(t *testing.T) {
	c := New(Config{EventTypes: EventTypeAll, MessageCacheSize: 1})

	c.Apply(envelope(t, gatewayevent.KindPresenceUpdate, gatewayevent.PresenceUpdate{
		GuildID: 1,
		User:    &model.User{ID: 5, Username: "ghost"},
		Status:  model.StatusOnline,
	}))

	pr, ok := c.Presence(1, 5)
	require.True(t, ok)
	assert.Equal(t, model.StatusOnline, pr.Status)

	_, ok = c.Member(1, 5)
	assert.False(t, ok, "a PresenceUpdate for a user never seen via MemberAdd/Chunk/GuildCreate must not create a member row")
}

func TestMessageUpdatePatchesAttachmentsEmbedsMentionRoles(t *testing.T) {
	c := New(Config{EventTypes: EventTypeAll, MessageCacheSize: 50})

	c.Apply(envelope(t, gatewayevent.KindMessageCreate, gatewayevent.MessageCreate{
		Message: &model.Message{ID: 4, ChannelID: 2, GuildID: 1, Content: "hi"},
	}))

	c.Apply(envelope(t, gatewayevent.KindMessageUpdate, gatewayevent.MessageUpdate{
		Message: &model.Message{
			ID: 4, ChannelID: 2, GuildID: 1, Content: "hi edited",
			MentionRoles: []model.Snowflake{7, 8},
			Attachments:  []model.Attachment{{ID: 10, Filename: "a.png"}},
			Embeds:       []model.Embed{{Title: "card"}},
		},
	}))

	msg, ok := c.Message(2, 4)
	require.True(t, ok)
	assert.Equal(t, "hi edited", msg.Content)
	assert.Equal(t, []model.Snowflake{7, 8}, msg.MentionRoles)
	require.Len(t, msg.Attachments, 1)
	assert.Equal(t, "a.png", msg.Attachments[0].Filename)
	require.Len(t, msg.Embeds, 1)
	assert.Equal(t, "card", msg.Embeds[0].Title)
}

func TestMessageEviction_S6(t *testing.T) {
	c := New(Config{EventTypes: EventMessageCreate, MessageCacheSize: 1})

	c.Apply(envelope(t, gatewayevent.KindMessageCreate, gatewayevent.MessageCreate{
		Message: &model.Message{ID: 10, ChannelID: 2, Author: &model.User{ID: 1}},
	}))
	c.Apply(envelope(t, gatewayevent.KindMessageCreate, gatewayevent.MessageCreate{
		Message: &model.Message{ID: 20, ChannelID: 2, Author: &model.User{ID: 1}},
	}))

	_, ok := c.Message(2, 10)
	assert.True(t, ok, "the smaller id should survive — the documented eviction direction evicts the greatest id")
	_, ok = c.Message(2, 20)
	assert.False(t, ok)
}

func TestGuildDelete_Invariant2(t *testing.T) {
	c := New(Config{EventTypes: EventTypeAll, MessageCacheSize: 50})

	c.Apply(envelope(t, gatewayevent.KindGuildCreate, gatewayevent.GuildCreate{
		Guild:    &model.Guild{ID: 1, Name: "g"},
		Channels: []*model.Channel{{ID: 10, Type: model.ChannelTypeGuildText}},
		Roles:    []*model.Role{{ID: 20}},
		Emojis:   []*model.Emoji{{ID: 30}},
		Members:  []*model.Member{{User: &model.User{ID: 40}}},
	}))

	c.Apply(envelope(t, gatewayevent.KindGuildDelete, gatewayevent.GuildDelete{ID: 1}))

	_, ok := c.Guild(1)
	assert.False(t, ok)
	_, ok = c.Channel(10)
	assert.False(t, ok)
	_, ok = c.Role(20)
	assert.False(t, ok)
	_, ok = c.Emoji(30)
	assert.False(t, ok)
	_, ok = c.Member(1, 40)
	assert.False(t, ok)
	_, _, ok = c.User(40)
	assert.False(t, ok, "user with no remaining guilds must be fully removed")
}

func TestMemberRemove_Invariant3(t *testing.T) {
	c := New(Config{EventTypes: EventTypeAll, MessageCacheSize: 50})

	c.Apply(envelope(t, gatewayevent.KindGuildMemberAdd, gatewayevent.GuildMemberAdd{
		GuildID: 1, Member: &model.Member{User: &model.User{ID: 9}},
	}))
	c.Apply(envelope(t, gatewayevent.KindGuildMemberAdd, gatewayevent.GuildMemberAdd{
		GuildID: 2, Member: &model.Member{User: &model.User{ID: 9}},
	}))

	c.Apply(envelope(t, gatewayevent.KindGuildMemberRemove, gatewayevent.GuildMemberRemove{
		GuildID: 1, User: &model.User{ID: 9},
	}))

	_, guilds, ok := c.User(9)
	require.True(t, ok, "user still belongs to guild 2")
	assert.Equal(t, []model.Snowflake{2}, guilds)

	c.Apply(envelope(t, gatewayevent.KindGuildMemberRemove, gatewayevent.GuildMemberRemove{
		GuildID: 2, User: &model.User{ID: 9},
	}))
	_, _, ok = c.User(9)
	assert.False(t, ok)
}

func TestReactionAddRemoveRoundTrip_Invariant4(t *testing.T) {
	c := New(Config{EventTypes: EventTypeAll, MessageCacheSize: 50})
	c.Apply(envelope(t, gatewayevent.KindMessageCreate, gatewayevent.MessageCreate{
		Message: &model.Message{ID: 1, ChannelID: 1, Author: &model.User{ID: 1}},
	}))

	before, ok := c.Message(1, 1)
	require.True(t, ok)

	emoji := model.EmojiRef{Name: "👍"}
	c.Apply(envelope(t, gatewayevent.KindMessageReactionAdd, gatewayevent.MessageReactionAdd{
		UserID: 2, MessageID: 1, ChannelID: 1, Emoji: emoji,
	}))
	c.Apply(envelope(t, gatewayevent.KindMessageReactionRemove, gatewayevent.MessageReactionRemove{
		UserID: 2, MessageID: 1, ChannelID: 1, Emoji: emoji,
	}))

	after, ok := c.Message(1, 1)
	require.True(t, ok)
	assert.Equal(t, before.Reactions, after.Reactions)

	for i := 0; i < 3; i++ {
		c.Apply(envelope(t, gatewayevent.KindMessageReactionRemove, gatewayevent.MessageReactionRemove{
			UserID: 2, MessageID: 1, ChannelID: 1, Emoji: emoji,
		}))
	}
	final, ok := c.Message(1, 1)
	require.True(t, ok)
	for _, r := range final.Reactions {
		assert.GreaterOrEqual(t, r.Count, 0)
	}
}

func TestEventTypeGating(t *testing.T) {
	c := New(Config{EventTypes: EventMessageCreate, MessageCacheSize: 50})

	c.Apply(envelope(t, gatewayevent.KindGuildCreate, gatewayevent.GuildCreate{
		Guild: &model.Guild{ID: 1, Name: "g"},
	}))

	_, ok := c.Guild(1)
	assert.False(t, ok, "GuildCreate bit was not enabled, so the row must not be applied")
}
