// Package reply produces the system response to a posted user message.
// Implementations are deliberately trivial placeholders; the Generator
// interface is the seam where a real response engine would plug in.
package reply

import (
	"context"
	"crypto/rand"
	"math/big"
	"strconv"
)

// Generator produces the system reply for a user message in a thread.
type Generator interface {
	Reply(ctx context.Context, threadID uint64, userMessage string) (string, error)
}

// Random replies with a random integer between 1 and 100 inclusive.
type Random struct{}

func NewRandom() *Random { return &Random{} }

func (*Random) Reply(ctx context.Context, threadID uint64, userMessage string) (string, error) {
	_ = ctx
	n, err := rand.Int(rand.Reader, big.NewInt(100))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n.Int64()+1, 10), nil
}

// Echo replies with the user's own message.
type Echo struct{}

func NewEcho() *Echo { return &Echo{} }

func (*Echo) Reply(ctx context.Context, threadID uint64, userMessage string) (string, error) {
	_ = ctx
	return userMessage, nil
}
