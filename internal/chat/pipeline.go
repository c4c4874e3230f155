package chat

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/avolkov/slack-lite/internal/models"
	ws "github.com/avolkov/slack-lite/internal/websocket"
)

// Store is the slice of the durable store the pipeline needs.
type Store interface {
	FindUserByUsername(username string) (*models.User, error)
	FindChannelByName(name string) (*models.Channel, error)
	SaveMessage(message *models.Message) error
	GetMessage(id string) (*models.Message, error)
	UpdateMessage(message *models.Message) error
}

// Transport is the slice of the hub the pipeline needs.
type Transport interface {
	EmitToChannel(channel, event string, payload interface{}, exclude string)
}

// Pipeline validates, persists and fans out chat messages. Submissions are
// serialized by a single mutex so broadcast order always matches persist
// order within a channel.
type Pipeline struct {
	store     Store
	transport Transport

	mu sync.Mutex
}

func NewPipeline(store Store, transport Transport) *Pipeline {
	return &Pipeline{store: store, transport: transport}
}

// Submit persists an incoming chat event and fans it out to the channel.
// Submission is fire-and-forget over the socket: the caller logs the returned
// error and never surfaces it to the client. Unknown sender or channel, and
// events carrying neither text nor an image, are dropped the same way.
func (p *Pipeline) Submit(channelName, senderUsername, text, imageURL string) error {
	if text == "" && imageURL == "" {
		return fmt.Errorf("%w: message needs text or an image", models.ErrValidation)
	}

	user, err := p.store.FindUserByUsername(senderUsername)
	if err != nil {
		return fmt.Errorf("resolve sender %q: %w", senderUsername, err)
	}

	channel, err := p.store.FindChannelByName(channelName)
	if err != nil {
		return fmt.Errorf("resolve channel %q: %w", channelName, err)
	}

	message := &models.Message{
		ChannelID: channel.ID,
		UserID:    user.ID,
		CreatedAt: time.Now(),
	}
	if text != "" {
		message.Content = &text
	}
	if imageURL != "" {
		message.ImageURL = &imageURL
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.store.SaveMessage(message); err != nil {
		return fmt.Errorf("save message: %w", err)
	}

	p.transport.EmitToChannel(channelName, ws.EventChatMessage, NewMessageResponse(message, user), "")

	return nil
}

// Edit replaces a message's content in place. Only the author may edit, and
// the creation timestamp is never touched. On success the full updated
// message is broadcast to the owning channel.
func (p *Pipeline) Edit(messageID string, newContent string, requestorID uuid.UUID) (*models.Message, error) {
	message, err := p.store.GetMessage(messageID)
	if err != nil {
		return nil, err
	}

	if message.UserID != requestorID {
		return nil, models.ErrForbidden
	}

	now := time.Now()
	message.Content = &newContent
	message.EditedAt = &now

	if err := p.store.UpdateMessage(message); err != nil {
		return nil, err
	}

	p.transport.EmitToChannel(message.Channel.Name, ws.EventMessageUpdated, NewMessageResponse(message, &message.User), "")

	return message, nil
}
