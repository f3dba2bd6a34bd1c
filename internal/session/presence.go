package session

import "sync"

// PresenceManager tracks what each participant in a room points at. Name
// and color come from the participant's token and cannot be changed by
// presence updates.
type PresenceManager struct {
	mu        sync.RWMutex
	presences map[string]PresencePayload // userID -> presence
}

func NewPresenceManager() *PresenceManager {
	return &PresenceManager{
		presences: make(map[string]PresencePayload),
	}
}

func (pm *PresenceManager) Join(u User) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	pm.presences[u.ID] = PresencePayload{Name: u.Name, Color: u.Color, Cursor: u.Cursor}
}

// Move records a cursor and selection for a known participant and returns
// the merged presence.
func (pm *PresenceManager) Move(userID string, p PresencePayload) (PresencePayload, bool) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	cur, ok := pm.presences[userID]
	if !ok {
		return PresencePayload{}, false
	}
	cur.Cursor = p.Cursor
	cur.Selection = p.Selection
	pm.presences[userID] = cur
	return cur, true
}

func (pm *PresenceManager) Leave(userID string) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	delete(pm.presences, userID)
}

func (pm *PresenceManager) Snapshot() map[string]*PresencePayload {
	pm.mu.RLock()
	defer pm.mu.RUnlock()

	result := make(map[string]*PresencePayload, len(pm.presences))
	for id, p := range pm.presences {
		result[id] = &p
	}
	return result
}

func (pm *PresenceManager) StateMessage() *Message {
	return newMessage(TypePresenceState, PresenceStatePayload{Presences: pm.Snapshot()})
}
