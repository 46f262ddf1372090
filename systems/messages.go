package systems

import (
	"math"
	"slices"

	"github.com/pthm-cable/petsim/config"
	"github.com/pthm-cable/petsim/entity"
)

// Message is a speech bubble pinned above an entity.
type Message struct {
	Text   string
	Target entity.ID
	X, Y   float64 // anchor: bubble bottom center
	TTL    float64 // ms left
	MaxTTL float64
	Alpha  float64 // 0-100
}

// MessageService shows speech bubbles with a global cooldown.
type MessageService struct {
	store    *entity.Store
	cfg      config.MessagesConfig
	cooldown float64
	messages []Message
}

// NewMessageService creates a new message service.
func NewMessageService(store *entity.Store, cfg config.MessagesConfig) *MessageService {
	return &MessageService{store: store, cfg: cfg}
}

// Show posts a message above target. It returns false while the cooldown
// from the previous message is still running or the target is unknown.
func (s *MessageService) Show(target entity.ID, text string) bool {
	if s.cooldown > 0 || !s.store.Has(target) {
		return false
	}
	m := Message{Text: text, Target: target, TTL: s.cfg.TTL, MaxTTL: s.cfg.TTL, Alpha: 100}
	s.anchor(&m)
	s.messages = append(s.messages, m)
	s.cooldown = s.cfg.Cooldown
	return true
}

func (s *MessageService) anchor(m *Message) bool {
	sp := s.store.Sprite(m.Target)
	if sp == nil {
		return false
	}
	r := SpriteBounds(sp)
	m.X = r.CenterX()
	m.Y = r.Y - s.cfg.OffsetY
	return true
}

// Update ages messages, keeps them above their targets and fades them out
// during the second half of their life.
func (s *MessageService) Update(dtMs float64) {
	s.cooldown = math.Max(0, s.cooldown-dtMs)

	s.messages = slices.DeleteFunc(s.messages, func(m Message) bool {
		return m.TTL-dtMs <= 0 || !s.store.Has(m.Target)
	})
	for i := range s.messages {
		m := &s.messages[i]
		m.TTL -= dtMs
		s.anchor(m)
		half := m.MaxTTL / 2
		if half > 0 && m.TTL < half {
			m.Alpha = m.TTL / half * 100
		} else {
			m.Alpha = 100
		}
	}
}

// Messages returns the live messages.
func (s *MessageService) Messages() []Message {
	return slices.Clone(s.messages)
}

// Clear drops all messages. The cooldown keeps running.
func (s *MessageService) Clear() {
	s.messages = s.messages[:0]
}
