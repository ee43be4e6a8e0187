package cache

import (
	"github.com/sandwich-go/corrivalry/gatewayevent"
	"github.com/sandwich-go/corrivalry/model"
)

// upsertMember inserts or overwrites a member row, interns its user, and
// maintains guild→members. Shared by MemberAdd, MemberChunk and
// GuildCreate's member split.
func (c *Cache) upsertMember(guildID model.Snowflake, m *model.Member) {
	if m == nil || m.User == nil {
		return
	}
	mp := *m
	mp.GuildID = guildID
	mp.UserID = m.User.ID
	c.membersMu.Lock()
	c.members[memberKey{guildID, mp.UserID}] = &mp
	c.membersMu.Unlock()
	c.guildMemberIDs.add(guildID, mp.UserID)
	c.internUser(guildID, m.User)
}

func (c *Cache) applyMemberAdd(guildID model.Snowflake, m *model.Member) {
	c.upsertMember(guildID, m)
}

// applyMemberRemove removes the member row and guild→members entry, then
// uninterns the user in a second step taken after the member lock is
// released — the two-phase pattern spec §5 mandates to avoid a
// lock-ordering cycle between the user table and guild-scoped tables.
func (c *Cache) applyMemberRemove(guildID, userID model.Snowflake) {
	c.membersMu.Lock()
	_, existed := c.members[memberKey{guildID, userID}]
	delete(c.members, memberKey{guildID, userID})
	c.membersMu.Unlock()
	if !existed {
		return
	}
	c.guildMemberIDs.remove(guildID, userID)
	c.uninternUser(guildID, userID)
}

// applyMemberUpdate patches nick and roles on an existing row; absent
// member (or a payload without a user) is a no-op. Joined-at is not
// patched: the GuildMemberUpdate payload carries no joined-at field.
func (c *Cache) applyMemberUpdate(p *gatewayevent.GuildMemberUpdate) {
	if p.User == nil {
		return
	}
	c.membersMu.Lock()
	defer c.membersMu.Unlock()
	existing, ok := c.members[memberKey{p.GuildID, p.User.ID}]
	if !ok {
		return
	}
	cp := *existing
	cp.Nick = p.Nick
	cp.Roles = p.Roles
	c.members[memberKey{p.GuildID, p.User.ID}] = &cp
	if p.User != nil {
		c.internUser(p.GuildID, p.User)
	}
}

// applyMemberChunk bulk inserts/overwrites members for a guild, unioning
// into guild→members rather than replacing it.
func (c *Cache) applyMemberChunk(p *gatewayevent.GuildMembersChunk) {
	for _, m := range p.Members {
		c.upsertMember(p.GuildID, m)
	}
}

func (c *Cache) applyUserUpdate(u *model.User) {
	// UserUpdate overwrites the current user record only: it has no
	// guild context, so it cannot intern into the reverse-indexed User
	// table (which requires a guild id to attribute the row to).
	c.currentUserMu.Lock()
	defer c.currentUserMu.Unlock()
	if c.currentUser == nil {
		c.currentUser = &model.CurrentUser{User: *u}
		return
	}
	c.currentUser.User = *u
}

func (c *Cache) applyVoiceStateUpdate(v *model.VoiceState) {
	key := voiceKey{v.GuildID, v.UserID}
	if v.ChannelID == 0 {
		c.voiceStatesMu.Lock()
		delete(c.voiceStates, key)
		c.voiceStatesMu.Unlock()
		c.guildVoiceStateIDs.remove(v.GuildID, v.UserID)
		return
	}
	vp := *v
	c.voiceStatesMu.Lock()
	c.voiceStates[key] = &vp
	c.voiceStatesMu.Unlock()
	c.guildVoiceStateIDs.add(v.GuildID, v.UserID)
}

func (c *Cache) applyPresenceUpdate(p *gatewayevent.PresenceUpdate) {
	pr := &model.Presence{
		GuildID:    p.GuildID,
		UserID:     p.User.ID,
		Status:     p.Status,
		Activities: p.Activities,
	}
	c.presencesMu.Lock()
	c.presences[presenceKey{p.GuildID, p.User.ID}] = pr
	c.presencesMu.Unlock()
	c.guildPresenceIDs.add(p.GuildID, p.User.ID)
}
