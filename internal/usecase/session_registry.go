package usecase

import (
	"context"
	"sync"
	"time"

	"cafepos/internal/domain/order"

	"go.uber.org/zap"
)

type terminalSession struct {
	mu    sync.Mutex
	order *order.Order
	// SessionRegistry.muで守る
	lastSeen time.Time
}

// SessionRegistry は端末セッションごとのカートを持つ。
// 同じセッションへの操作はエントリのロックで直列になる。
type SessionRegistry struct {
	mu       sync.Mutex
	sessions map[string]*terminalSession
	idleTTL  time.Duration
	clock    Clock
	log      *zap.Logger
}

func NewSessionRegistry(idleTTL time.Duration, clock Clock, log *zap.Logger) *SessionRegistry {
	return &SessionRegistry{
		sessions: make(map[string]*terminalSession),
		idleTTL:  idleTTL,
		clock:    clock,
		log:      log,
	}
}

// 無ければ空の注文で作る。lastSeenはr.muを持ったまま更新するので、
// 取り出した直後のエントリをSweepが消すことはない。
func (r *SessionRegistry) entry(sessionID string) *terminalSession {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[sessionID]
	if !ok {
		s = &terminalSession{order: order.New()}
		r.sessions[sessionID] = s
	}
	s.lastSeen = r.clock.Now()
	return s
}

// WithOrder はセッションのロックを取ったままfnを呼ぶ。
func (r *SessionRegistry) WithOrder(sessionID string, fn func(o *order.Order) error) error {
	s := r.entry(sessionID)

	s.mu.Lock()
	defer s.mu.Unlock()

	return fn(s.order)
}

// Discard はカートごとセッションを捨てる（ログアウト）。
func (r *SessionRegistry) Discard(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, sessionID)
}

func (r *SessionRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep はidleTTLより長く触られていないセッションを消して件数を返す。
func (r *SessionRegistry) Sweep() int {
	now := r.clock.Now()

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, s := range r.sessions {
		// 使用中のエントリは飛ばす
		if !s.mu.TryLock() {
			continue
		}
		idle := now.Sub(s.lastSeen) > r.idleTTL
		s.mu.Unlock()

		if idle {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}

// Run はctxが終わるまで定期的にSweepする。
func (r *SessionRegistry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				r.log.Info("idle terminal sessions removed", zap.Int("count", n))
			}
		}
	}
}
