package chat

import (
	"context"

	"github.com/QuincyForbes/thread-chat-backend/internal/reply"
)

type Service struct {
	repo *Repo
	gen  reply.Generator
}

func NewService(repo *Repo, gen reply.Generator) *Service {
	return &Service{repo: repo, gen: gen}
}

func (s *Service) GetOrCreateUser(ctx context.Context, name string) (*User, error) {
	return s.repo.GetOrCreateUser(ctx, name)
}

func (s *Service) ListUsers(ctx context.Context) ([]User, error) {
	return s.repo.ListUsers(ctx)
}

func (s *Service) CreateThread(ctx context.Context, userID uint64) (*Thread, error) {
	return s.repo.CreateThread(ctx, userID)
}

// PostMessage stores the user's message and a generated system reply as one
// atomic pair, creating a new thread for the user when threadID is nil.
// The reply content is generated before the transaction opens so that a slow
// generator never holds database locks. Both stored messages are returned;
// the system reply is what the API hands back to the caller.
func (s *Service) PostMessage(ctx context.Context, threadID *uint64, userID uint64, content string) (userMsg, sysMsg *Message, err error) {
	var tid uint64
	if threadID != nil {
		tid = *threadID
	}

	replyContent, err := s.gen.Reply(ctx, tid, content)
	if err != nil {
		return nil, nil, err
	}

	return s.repo.CreateMessagePair(ctx, threadID, userID, content, replyContent)
}

func (s *Service) ListMessages(ctx context.Context, threadID uint64) ([]Message, error) {
	return s.repo.ListMessages(ctx, threadID)
}

func (s *Service) ListThreads(ctx context.Context, userID uint64) ([]Thread, error) {
	return s.repo.ListThreads(ctx, userID)
}
