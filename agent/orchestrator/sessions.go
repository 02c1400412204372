package orchestrator

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"

	contractx "github.com/i2gether/lic-agent/agent/contract"
)

// sessionCache caches agent runtime session handles under the exact key
// "userId:sessionId". Concurrent first use of the same key creates at most
// one handle; everyone observes the same one. Failed creations are not
// cached, so a later exchange can retry.
type sessionCache struct {
	mu      sync.RWMutex
	group   singleflight.Group
	handles map[string]contractx.AgentSession
}

func newSessionCache() *sessionCache {
	return &sessionCache{
		handles: make(map[string]contractx.AgentSession),
	}
}

func (c *sessionCache) getOrCreate(ctx context.Context, runtime contractx.AgentRuntime, appName, userID, sessionID string) (contractx.AgentSession, error) {
	key := userID + ":" + sessionID

	c.mu.RLock()
	handle, ok := c.handles[key]
	c.mu.RUnlock()
	if ok {
		return handle, nil
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		c.mu.RLock()
		cached, ok := c.handles[key]
		c.mu.RUnlock()
		if ok {
			return cached, nil
		}

		created, err := runtime.CreateSession(ctx, appName, userID, sessionID)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.handles[key] = created
		c.mu.Unlock()
		return created, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(contractx.AgentSession), nil
}
