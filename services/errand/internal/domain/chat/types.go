package chat

import "time"

const (
	KindText  = "text"
	KindImage = "image"
)

func ValidKind(kind string) bool {
	return kind == KindText || kind == KindImage
}

type Message struct {
	ID         int64
	SenderID   int64
	ReceiverID int64
	Content    string
	Kind       string
	Read       bool
	CreatedAt  time.Time
}
