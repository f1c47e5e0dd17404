package db

import (
	"context"

	"campus/services/errand/internal/domain/chat"

	"gorm.io/gorm"
)

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Create(ctx context.Context, message chat.Message) (chat.Message, error) {
	if r.db == nil {
		return chat.Message{}, errDBUnavailable
	}
	model := ChatMessageModel{
		SenderID:   message.SenderID,
		ReceiverID: message.ReceiverID,
		Content:    message.Content,
		Kind:       message.Kind,
		Read:       message.Read,
		CreatedAt:  message.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return chat.Message{}, err
	}
	message.ID = model.ID
	return message, nil
}

// MarkRead flags every unread message from sender to receiver as read.
func (r *MessageRepository) MarkRead(ctx context.Context, receiverID, senderID int64) error {
	if r.db == nil {
		return errDBUnavailable
	}
	return r.db.WithContext(ctx).
		Model(&ChatMessageModel{}).
		Where("receiver_id = ? AND sender_id = ? AND read = ?", receiverID, senderID, false).
		Update("read", true).Error
}

func (r *MessageRepository) ListConversation(ctx context.Context, userA, userB int64) ([]chat.Message, error) {
	if r.db == nil {
		return nil, errDBUnavailable
	}
	var models []ChatMessageModel
	err := r.db.WithContext(ctx).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userA, userB, userB, userA).
		Order("created_at").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	out := make([]chat.Message, 0, len(models))
	for _, model := range models {
		out = append(out, chat.Message{
			ID:         model.ID,
			SenderID:   model.SenderID,
			ReceiverID: model.ReceiverID,
			Content:    model.Content,
			Kind:       model.Kind,
			Read:       model.Read,
			CreatedAt:  model.CreatedAt,
		})
	}
	return out, nil
}
