package chat

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type Repo struct {
	db *gorm.DB
}

func NewRepo(db *gorm.DB) *Repo {
	return &Repo{db: db}
}

// GetOrCreateUser returns the user with the given name, creating it if absent.
// The users.name unique index is the only guard against concurrent creation:
// if the insert loses the race, the winner's row is re-read and returned.
func (r *Repo) GetOrCreateUser(ctx context.Context, name string) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&u).Error
	if err == nil {
		return &u, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	u = User{Name: name}
	createErr := r.db.WithContext(ctx).Create(&u).Error
	if createErr == nil {
		return &u, nil
	}

	// A concurrent caller may have inserted the same name first.
	var existing User
	getErr := r.db.WithContext(ctx).Where("name = ?", name).First(&existing).Error
	if getErr == nil {
		return &existing, nil
	}
	if errors.Is(getErr, gorm.ErrRecordNotFound) {
		return nil, createErr
	}
	return nil, getErr
}

func (r *Repo) ListUsers(ctx context.Context) ([]User, error) {
	var users []User
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// CreateThread inserts a thread owned by userID.
func (r *Repo) CreateThread(ctx context.Context, userID uint64) (*Thread, error) {
	t := Thread{UserID: userID}
	if err := r.db.WithContext(ctx).Create(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &t, nil
}

// CreateMessagePair stores a user message and its system reply in one
// transaction. When threadID is nil a new thread owned by userID is created
// first, inside the same transaction, so a failed pair never leaves a
// dangling thread.
func (r *Repo) CreateMessagePair(ctx context.Context, threadID *uint64, userID uint64, content, replyContent string) (userMsg, sysMsg *Message, err error) {
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var tid uint64
		if threadID != nil {
			tid = *threadID
		} else {
			t := Thread{UserID: userID}
			if err := tx.Create(&t).Error; err != nil {
				if errors.Is(err, gorm.ErrForeignKeyViolated) {
					return ErrUserNotFound
				}
				return err
			}
			tid = t.ID
		}

		um := Message{ThreadID: tid, SenderType: SenderUser, Content: content}
		if err := tx.Create(&um).Error; err != nil {
			if errors.Is(err, gorm.ErrForeignKeyViolated) {
				return ErrThreadNotFound
			}
			return err
		}

		sm := Message{ThreadID: tid, SenderType: SenderSystem, Content: replyContent}
		if err := tx.Create(&sm).Error; err != nil {
			return err
		}
		userMsg, sysMsg = &um, &sm
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return userMsg, sysMsg, nil
}

// ListMessages returns all messages in a thread in creation order, insertion
// order breaking timestamp ties. An empty slice is not an error here.
func (r *Repo) ListMessages(ctx context.Context, threadID uint64) ([]Message, error) {
	var msgs []Message
	if err := r.db.WithContext(ctx).
		Where("thread_id = ?", threadID).
		Order("created_at ASC, id ASC").
		Find(&msgs).Error; err != nil {
		return nil, err
	}
	return msgs, nil
}

// ListThreads returns all threads owned by a user. An empty slice is not an
// error here.
func (r *Repo) ListThreads(ctx context.Context, userID uint64) ([]Thread, error) {
	var threads []Thread
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&threads).Error; err != nil {
		return nil, err
	}
	return threads, nil
}
