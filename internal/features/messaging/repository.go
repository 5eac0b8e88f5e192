package messaging

import (
	"context"
	"fmt"
	"sync"
	"time"

	"kliernav-crm/internal/common/apperr"
	"kliernav-crm/internal/common/models"
)

type ConversationRepository interface {
	FindByLead(ctx context.Context, leadID string) (*models.Conversation, error)
	List(ctx context.Context) ([]models.Conversation, error)
	Append(ctx context.Context, leadID string, msg models.DirectMessage, unread bool) (*models.Conversation, error)
	UpdateMessageStatus(ctx context.Context, leadID, messageID string, status models.MessageStatus) (*models.DirectMessage, error)
	MarkRead(ctx context.Context, leadID string) error
}

type MemoryConversationRepository struct {
	mu            sync.RWMutex
	conversations map[string]models.Conversation
	order         []string
}

func NewConversationRepository() ConversationRepository {
	r := &MemoryConversationRepository{conversations: make(map[string]models.Conversation)}
	seed := models.Conversation{
		LeadID:        "l1",
		UnreadCount:   2,
		LastMessageAt: time.Now(),
		Messages: []models.DirectMessage{
			{
				ID:        "m1",
				SenderID:  "u1",
				Text:      "¡Hola! Recibimos tu solicitud para E-commerce Express.",
				Timestamp: time.Now().Add(-24 * time.Hour),
				Status:    models.MessageRead,
			},
		},
	}
	r.conversations[seed.LeadID] = seed
	r.order = append(r.order, seed.LeadID)
	return r
}

func (r *MemoryConversationRepository) FindByLead(ctx context.Context, leadID string) (*models.Conversation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	conv, ok := r.conversations[leadID]
	if !ok {
		return nil, fmt.Errorf("%w: conversation for lead %q", apperr.ErrNotFound, leadID)
	}
	return &conv, nil
}

func (r *MemoryConversationRepository) List(ctx context.Context) ([]models.Conversation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Conversation, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.conversations[id])
	}
	return out, nil
}

// Append adds a message to the lead's conversation, creating the thread on
// first contact. Inbound messages bump the unread counter.
func (r *MemoryConversationRepository) Append(ctx context.Context, leadID string, msg models.DirectMessage, unread bool) (*models.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	conv, ok := r.conversations[leadID]
	if !ok {
		conv = models.Conversation{LeadID: leadID}
		r.order = append(r.order, leadID)
	}

	conv.Messages = append(conv.Messages, msg)
	conv.LastMessageAt = msg.Timestamp
	if unread {
		conv.UnreadCount++
	}
	r.conversations[leadID] = conv
	return &conv, nil
}

func (r *MemoryConversationRepository) UpdateMessageStatus(ctx context.Context, leadID, messageID string, status models.MessageStatus) (*models.DirectMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	conv, ok := r.conversations[leadID]
	if !ok {
		return nil, fmt.Errorf("%w: conversation for lead %q", apperr.ErrNotFound, leadID)
	}
	for i := range conv.Messages {
		if conv.Messages[i].ID == messageID {
			conv.Messages[i].Status = status
			r.conversations[leadID] = conv
			msg := conv.Messages[i]
			return &msg, nil
		}
	}
	return nil, fmt.Errorf("%w: message %q", apperr.ErrNotFound, messageID)
}

func (r *MemoryConversationRepository) MarkRead(ctx context.Context, leadID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	conv, ok := r.conversations[leadID]
	if !ok {
		return fmt.Errorf("%w: conversation for lead %q", apperr.ErrNotFound, leadID)
	}
	conv.UnreadCount = 0
	for i := range conv.Messages {
		conv.Messages[i].Status = models.MessageRead
	}
	r.conversations[leadID] = conv
	return nil
}
