package mailer

import (
	"context"
	"fmt"
	"sync"
)

// RecordingSender is an in-memory Sender for tests in this and other packages.
// It records every email and returns Err when set.
type RecordingSender struct {
	mu     sync.Mutex
	Err    error
	Block  bool
	emails []*Email
}

// Send records the email. When Block is set it waits for ctx to end.
func (s *RecordingSender) Send(ctx context.Context, email *Email) (string, error) {
	if s.Block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return "", s.Err
	}
	s.emails = append(s.emails, email)
	return fmt.Sprintf("test-%d", len(s.emails)), nil
}

// Emails returns a copy of the recorded emails
func (s *RecordingSender) Emails() []*Email {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Email, len(s.emails))
	copy(out, s.emails)
	return out
}
