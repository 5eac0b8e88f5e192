package messaging

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"kliernav-crm/internal/common/apperr"
	"kliernav-crm/internal/common/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LeadGetter resolves the lead behind a conversation. Satisfied by the lead
// feature's repository via an adapter in main.
type LeadGetter interface {
	LeadByID(ctx context.Context, id string) (*models.Lead, error)
}

type MessagingService interface {
	ListConversations(ctx context.Context) ([]models.Conversation, error)
	GetConversation(ctx context.Context, leadID string) (*models.Conversation, error)
	SendMessage(ctx context.Context, actor *models.User, leadID, text string) (*models.DirectMessage, error)
	ListTemplates(ctx context.Context, leadID string) ([]string, error)
}

type MessagingServiceImpl struct {
	Repo   ConversationRepository
	Leads  LeadGetter
	Hub    *Hub
	Logger *zap.Logger
}

func NewMessagingService(repo ConversationRepository, leads LeadGetter, hub *Hub, logger *zap.Logger) MessagingService {
	return &MessagingServiceImpl{
		Repo:   repo,
		Leads:  leads,
		Hub:    hub,
		Logger: logger,
	}
}

func (s *MessagingServiceImpl) ListConversations(ctx context.Context) ([]models.Conversation, error) {
	return s.Repo.List(ctx)
}

// GetConversation returns the thread and clears its unread counter, the same
// as opening a chat does.
func (s *MessagingServiceImpl) GetConversation(ctx context.Context, leadID string) (*models.Conversation, error) {
	if err := s.Repo.MarkRead(ctx, leadID); err != nil {
		return nil, err
	}
	return s.Repo.FindByLead(ctx, leadID)
}

func (s *MessagingServiceImpl) ListTemplates(ctx context.Context, leadID string) ([]string, error) {
	lead, err := s.Leads.LeadByID(ctx, leadID)
	if err != nil {
		return nil, err
	}
	return TemplatesFor(lead.ServiceType), nil
}

// SendMessage appends an outbound message and broadcasts it to the thread's
// websocket clients. Delivery receipts and the contact's reply arrive later
// over the same channel, simulating the WhatsApp Cloud API.
func (s *MessagingServiceImpl) SendMessage(ctx context.Context, actor *models.User, leadID, text string) (*models.DirectMessage, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: message text is required", apperr.ErrValidation)
	}
	lead, err := s.Leads.LeadByID(ctx, leadID)
	if err != nil {
		return nil, err
	}

	msg := models.DirectMessage{
		ID:        "m_" + uuid.NewString(),
		SenderID:  actor.ID,
		Text:      strings.TrimSpace(text),
		Timestamp: time.Now(),
		Status:    models.MessageSent,
	}
	if _, err := s.Repo.Append(ctx, leadID, msg, false); err != nil {
		return nil, err
	}
	s.Hub.Broadcast(leadID, msg)

	s.simulateContact(leadID, msg.ID, lead.ServiceType)
	return &msg, nil
}

// simulateContact walks the sent message through delivered and read, then
// posts a canned inbound reply after a randomized pause. Runs detached from
// the request.
func (s *MessagingServiceImpl) simulateContact(leadID, messageID string, serviceType models.ServiceType) {
	go func() {
		ctx := context.Background()

		time.Sleep(1200 * time.Millisecond)
		if msg, err := s.Repo.UpdateMessageStatus(ctx, leadID, messageID, models.MessageDelivered); err == nil {
			s.Hub.Broadcast(leadID, *msg)
		}

		time.Sleep(1300 * time.Millisecond)
		if msg, err := s.Repo.UpdateMessageStatus(ctx, leadID, messageID, models.MessageRead); err == nil {
			s.Hub.Broadcast(leadID, *msg)
		}

		time.Sleep(time.Duration(2000+rand.Intn(3000)) * time.Millisecond)
		templates := TemplatesFor(serviceType)
		reply := models.DirectMessage{
			ID:        "m_" + uuid.NewString(),
			SenderID:  "lead",
			Text:      templates[rand.Intn(len(templates))],
			Timestamp: time.Now(),
			Status:    models.MessageDelivered,
		}
		if _, err := s.Repo.Append(ctx, leadID, reply, true); err != nil {
			s.Logger.Warn("simulated reply dropped", zap.String("leadId", leadID), zap.Error(err))
			return
		}
		s.Hub.Broadcast(leadID, reply)
	}()
}
