package cache

import (
	"github.com/sandwich-go/corrivalry/gatewayevent"
	"github.com/sandwich-go/corrivalry/model"
)

func (c *Cache) channelMessagesFor(channelID model.Snowflake) *channelMessages {
	c.messagesMu.Lock()
	defer c.messagesMu.Unlock()
	cm, ok := c.messages[channelID]
	if !ok {
		cm = newChannelMessages()
		c.messages[channelID] = cm
	}
	return cm
}

// applyMessageCreate obtains the channel's message map, inserts the new
// message, then — if that put the map over capacity — evicts whichever id
// in the map is now numerically greatest. Because ids are monotonically
// assigned, the greatest id is usually the message that was just
// inserted: this preserves the documented, intentionally-not-"fixed"
// eviction direction (see DESIGN.md and spec scenario S6) rather than
// evicting the oldest entry.
func (c *Cache) applyMessageCreate(m *model.Message) {
	cm := c.channelMessagesFor(m.ChannelID)

	cm.mu.Lock()
	mp := *m
	cm.byID[m.ID] = &mp
	if len(cm.byID) > c.messageCacheSize {
		var evict model.Snowflake
		first := true
		for id := range cm.byID {
			if first || id > evict {
				evict = id
				first = false
			}
		}
		if !first {
			delete(cm.byID, evict)
		}
	}
	cm.mu.Unlock()

	if m.Author != nil {
		m.AuthorID = m.Author.ID
		c.internUser(m.GuildID, m.Author)
		c.ensureMemberStub(m.GuildID, m.Author)
		if m.Member != nil {
			c.mergePartialMember(m.GuildID, m.Author, m.Member)
		}
	}
}

// ensureMemberStub records (guildID, author) in the member table if no row
// exists yet, so that sending a message always makes its author a known
// member of that guild even when the payload carries no inline member at
// all (spec scenario S5). It never touches a row that already exists.
func (c *Cache) ensureMemberStub(guildID model.Snowflake, author *model.User) {
	key := memberKey{guildID, author.ID}
	c.membersMu.Lock()
	_, ok := c.members[key]
	if !ok {
		c.members[key] = &model.Member{GuildID: guildID, UserID: author.ID, User: author}
	}
	c.membersMu.Unlock()
	c.guildMemberIDs.add(guildID, author.ID)
}

// mergePartialMember folds a message's inline partial member onto whatever
// row already exists for that user in that guild (ensureMemberStub
// guarantees one), rather than replacing it wholesale: a MESSAGE_CREATE's
// member payload omits fields a GUILD_MEMBER_ADD/UPDATE already populated
// (e.g. no premium_since), and blindly overwriting would erase data the
// fuller event contributed.
func (c *Cache) mergePartialMember(guildID model.Snowflake, author *model.User, pm *model.PartialMember) {
	key := memberKey{guildID, author.ID}

	c.membersMu.Lock()
	existing, ok := c.members[key]
	var mm model.Member
	if ok {
		mm = *existing
	} else {
		mm = model.Member{GuildID: guildID, UserID: author.ID}
	}
	mm.User = author
	mm.Nick = pm.Nick
	mm.Roles = pm.Roles
	mm.JoinedAt = pm.JoinedAt
	mm.Deaf = pm.Deaf
	mm.Mute = pm.Mute
	mm.Pending = pm.Pending
	c.members[key] = &mm
	c.membersMu.Unlock()

	c.guildMemberIDs.add(guildID, author.ID)
}

// applyMessageUpdate patches only the fields present in the payload;
// absent message is a no-op. Since this package decodes full Message
// values rather than an optional-field patch document, every field on p
// is treated as present — matching the common REST-client behavior of
// always sending the full row on MESSAGE_UPDATE.
func (c *Cache) applyMessageUpdate(p *model.Message) {
	c.messagesMu.RLock()
	cm, ok := c.messages[p.ChannelID]
	c.messagesMu.RUnlock()
	if !ok {
		return
	}
	cm.mu.Lock()
	defer cm.mu.Unlock()
	existing, ok := cm.byID[p.ID]
	if !ok {
		return
	}
	cp := *existing
	cp.Attachments = p.Attachments
	cp.Content = p.Content
	cp.EditedTimestamp = p.EditedTimestamp
	cp.Embeds = p.Embeds
	cp.MentionEveryone = p.MentionEveryone
	cp.MentionRoles = p.MentionRoles
	cp.Mentions = p.Mentions
	cp.Pinned = p.Pinned
	cp.Timestamp = p.Timestamp
	cp.TTS = p.TTS
	cm.byID[p.ID] = &cp
}

func (c *Cache) applyMessageDelete(channelID, messageID model.Snowflake) {
	c.messagesMu.RLock()
	cm, ok := c.messages[channelID]
	c.messagesMu.RUnlock()
	if !ok {
		return
	}
	cm.mu.Lock()
	delete(cm.byID, messageID)
	cm.mu.Unlock()
}

func emojiRefEqual(a, b model.EmojiRef) bool {
	if a.ID != 0 || b.ID != 0 {
		return a.ID == b.ID
	}
	return a.Name == b.Name
}

// applyReactionAdd increments an existing reaction's count or appends a
// new one, setting self true only when the adder is the cache's own
// current user.
func (c *Cache) applyReactionAdd(p *gatewayevent.MessageReactionAdd) {
	c.messagesMu.RLock()
	cm, ok := c.messages[p.ChannelID]
	c.messagesMu.RUnlock()
	if !ok {
		return
	}
	cm.mu.Lock()
	defer cm.mu.Unlock()
	msg, ok := cm.byID[p.MessageID]
	if !ok {
		return
	}
	isSelf := c.isCurrentUser(p.UserID)
	cp := *msg
	cp.Reactions = append([]model.Reaction(nil), msg.Reactions...)
	for i, r := range cp.Reactions {
		if emojiRefEqual(r.Emoji, p.Emoji) {
			cp.Reactions[i].Count++
			if isSelf {
				cp.Reactions[i].Self = true
			}
			cm.byID[p.MessageID] = &cp
			return
		}
	}
	cp.Reactions = append(cp.Reactions, model.Reaction{Emoji: p.Emoji, Count: 1, Self: isSelf})
	cm.byID[p.MessageID] = &cp
}

// applyReactionRemove decrements the matching reaction's count, clearing
// self if the remover is the current user, and drops the entry entirely
// once its count would reach 0.
func (c *Cache) applyReactionRemove(p *gatewayevent.MessageReactionRemove) {
	c.messagesMu.RLock()
	cm, ok := c.messages[p.ChannelID]
	c.messagesMu.RUnlock()
	if !ok {
		return
	}
	cm.mu.Lock()
	defer cm.mu.Unlock()
	msg, ok := cm.byID[p.MessageID]
	if !ok {
		return
	}
	isSelf := c.isCurrentUser(p.UserID)
	cp := *msg
	cp.Reactions = append([]model.Reaction(nil), msg.Reactions...)
	for i, r := range cp.Reactions {
		if !emojiRefEqual(r.Emoji, p.Emoji) {
			continue
		}
		if isSelf {
			cp.Reactions[i].Self = false
		}
		cp.Reactions[i].Count--
		if cp.Reactions[i].Count <= 0 {
			cp.Reactions = append(cp.Reactions[:i], cp.Reactions[i+1:]...)
			if len(cp.Reactions) == 0 {
				cp.Reactions = nil
			}
		}
		break
	}
	cm.byID[p.MessageID] = &cp
}

func (c *Cache) applyReactionRemoveAll(channelID, messageID model.Snowflake) {
	c.messagesMu.RLock()
	cm, ok := c.messages[channelID]
	c.messagesMu.RUnlock()
	if !ok {
		return
	}
	cm.mu.Lock()
	defer cm.mu.Unlock()
	msg, ok := cm.byID[messageID]
	if !ok {
		return
	}
	cp := *msg
	cp.Reactions = nil
	cm.byID[messageID] = &cp
}

func (c *Cache) isCurrentUser(id model.Snowflake) bool {
	c.currentUserMu.RLock()
	defer c.currentUserMu.RUnlock()
	return c.currentUser != nil && c.currentUser.ID == id
}
