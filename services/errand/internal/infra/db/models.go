package db

import "time"

type UserModel struct {
	ID           int64     `gorm:"primaryKey;autoIncrement"`
	Username     string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	Phone        string
	Role         string    `gorm:"not null"`
	Status       string    `gorm:"not null"`
	CreatedAt    time.Time `gorm:"not null"`
}

func (UserModel) TableName() string { return "users" }

type ErrandModel struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	PublisherID int64  `gorm:"index;not null"`
	RunnerID    *int64 `gorm:"index"`
	Title       string `gorm:"not null"`
	Detail      string `gorm:"type:text"`
	RewardCents int64  `gorm:"not null"`
	Status      string    `gorm:"index;not null"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

func (ErrandModel) TableName() string { return "errands" }

type ChatMessageModel struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	SenderID   int64     `gorm:"index;not null"`
	ReceiverID int64     `gorm:"index;not null"`
	Content    string    `gorm:"type:text;not null"`
	Kind       string    `gorm:"not null"`
	Read       bool      `gorm:"not null"`
	CreatedAt  time.Time `gorm:"not null"`
}

func (ChatMessageModel) TableName() string { return "chat_messages" }
