// Package audit records auth events (register, login, logout, password
// change) for later review. Recording is best-effort and never blocks or
// fails the request that triggered it.
package audit

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"pagecraft/backend/internal/audit/domain"
	auditrepo "pagecraft/backend/internal/audit/repository"
)

// IPExtractor returns the client IP from the request context.
type IPExtractor func(context.Context) string

// Recorder writes a single audit event. Implementations must be safe for
// concurrent use.
type Recorder interface {
	Record(ctx context.Context, userID, action, metadata string)
}

// Logger implements Recorder over the audit repository.
type Logger struct {
	repo        auditrepo.Repository
	ipExtractor IPExtractor
}

// NewLogger returns a Recorder that persists to repo and resolves client IP
// via ipExtractor. ipExtractor may be nil; then IP is recorded as "unknown".
// A nil repo yields a Recorder that drops every event.
func NewLogger(repo auditrepo.Repository, ipExtractor IPExtractor) *Logger {
	return &Logger{repo: repo, ipExtractor: ipExtractor}
}

// Record writes one audit entry. Best-effort: errors are logged, not returned.
func (l *Logger) Record(ctx context.Context, userID, action, metadata string) {
	if l.repo == nil {
		return
	}
	ip := "unknown"
	if l.ipExtractor != nil {
		if got := l.ipExtractor(ctx); got != "" {
			ip = got
		}
	}
	entry := &domain.Entry{
		ID:        uuid.New().String(),
		UserID:    userID,
		Action:    action,
		IP:        ip,
		Metadata:  metadata,
		CreatedAt: time.Now().UTC(),
	}
	if err := l.repo.Create(ctx, entry); err != nil {
		log.Printf("audit: failed to record %s: %v", action, err)
	}
}
