package chat

import "time"

// SenderType identifies the author of a message.
type SenderType string

const (
	SenderUser   SenderType = "User"
	SenderSystem SenderType = "System"
)

type User struct {
	ID   uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"type:varchar(30);uniqueIndex;not null" json:"name"`
}

func (User) TableName() string { return "users" }

type Thread struct {
	ID     uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID uint64 `gorm:"index;not null" json:"user_id"`
	User   User   `gorm:"foreignKey:UserID" json:"-"`
}

func (Thread) TableName() string { return "threads" }

type Message struct {
	ID         uint64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ThreadID   uint64     `gorm:"index;not null" json:"thread_id"`
	SenderType SenderType `gorm:"type:varchar(16);not null" json:"sender_type"`
	Content    string     `gorm:"type:text;not null" json:"content"`
	CreatedAt  time.Time  `json:"-"`
	Thread     Thread     `gorm:"foreignKey:ThreadID" json:"-"`
}

func (Message) TableName() string { return "messages" }
