package telegram

import (
	"sync"
	"time"

	tele "gopkg.in/telebot.v3"
)

type chatItem struct {
	chat      *tele.Chat
	expiresAt time.Time
}

// chatCache keeps resolved channels for a while to save getChat calls
type chatCache struct {
	items map[string]chatItem
	mutex sync.RWMutex
}

func newChatCache() *chatCache {
	return &chatCache{items: make(map[string]chatItem)}
}

// Get returns a non-expired chat
func (c *chatCache) Get(key string) (*tele.Chat, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	item, exists := c.items[key]
	if !exists || time.Now().After(item.expiresAt) {
		return nil, false
	}
	return item.chat, true
}

// Put stores chat for ttl
func (c *chatCache) Put(key string, chat *tele.Chat, ttl time.Duration) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.items[key] = chatItem{chat: chat, expiresAt: time.Now().Add(ttl)}
}
