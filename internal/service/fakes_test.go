package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/napowa/napowa-server/internal/model"
)

// memOTPStore mirrors the postgres OTP repository semantics in memory.
type memOTPStore struct {
	mu   sync.Mutex
	otps []model.OTP
}

func (s *memOTPStore) Replace(_ context.Context, otp model.OTP) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.otps[:0]
	for _, o := range s.otps {
		if o.UserID != otp.UserID || o.Purpose != otp.Purpose {
			kept = append(kept, o)
		}
	}
	s.otps = append(kept, otp)
	return nil
}

func (s *memOTPStore) GetLatestLive(_ context.Context, userID uuid.UUID, purpose model.OTPPurpose, now time.Time) (model.OTP, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latestLive(userID, purpose, now)
}

func (s *memOTPStore) latestLive(userID uuid.UUID, purpose model.OTPPurpose, now time.Time) (model.OTP, error) {
	var latest *model.OTP
	for i := range s.otps {
		o := &s.otps[i]
		if o.UserID != userID || o.Purpose != purpose || !o.ExpiresAt.After(now) {
			continue
		}
		if latest == nil || o.CreatedAt.After(latest.CreatedAt) {
			latest = o
		}
	}
	if latest == nil {
		return model.OTP{}, model.ErrNotFound
	}
	return *latest, nil
}

func (s *memOTPStore) ConsumeMatching(_ context.Context, userID uuid.UUID, purpose model.OTPPurpose, code string, now time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	latest, err := s.latestLive(userID, purpose, now)
	if errors.Is(err, model.ErrNotFound) || latest.Code != code {
		return false, nil
	}
	s.deleteAll(userID, purpose)
	return true, nil
}

func (s *memOTPStore) DeleteAll(_ context.Context, userID uuid.UUID, purpose model.OTPPurpose) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleteAll(userID, purpose)
	return nil
}

func (s *memOTPStore) deleteAll(userID uuid.UUID, purpose model.OTPPurpose) {
	kept := s.otps[:0]
	for _, o := range s.otps {
		if o.UserID != userID || o.Purpose != purpose {
			kept = append(kept, o)
		}
	}
	s.otps = kept
}

func (s *memOTPStore) count(userID uuid.UUID, purpose model.OTPPurpose) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, o := range s.otps {
		if o.UserID == userID && o.Purpose == purpose {
			n++
		}
	}
	return n
}

// memResetStore mirrors the postgres reset ticket repository in memory.
type memResetStore struct {
	mu        sync.Mutex
	tickets   map[uuid.UUID]model.ResetTicket
	passwords map[uuid.UUID]string
}

func newMemResetStore() *memResetStore {
	return &memResetStore{
		tickets:   make(map[uuid.UUID]model.ResetTicket),
		passwords: make(map[uuid.UUID]string),
	}
}

func (s *memResetStore) Replace(_ context.Context, ticket model.ResetTicket) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, t := range s.tickets {
		if t.UserID == ticket.UserID {
			delete(s.tickets, id)
		}
	}
	s.tickets[ticket.ID] = ticket
	return nil
}

func (s *memResetStore) GetLiveByHash(_ context.Context, tokenHash []byte, now time.Time) (model.ResetTicket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.live(tokenHash, now)
}

func (s *memResetStore) live(tokenHash []byte, now time.Time) (model.ResetTicket, error) {
	for _, t := range s.tickets {
		if string(t.TokenHash) == string(tokenHash) && t.ExpiresAt.After(now) {
			return t, nil
		}
	}
	return model.ResetTicket{}, model.ErrNotFound
}

func (s *memResetStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tickets, id)
	return nil
}

func (s *memResetStore) Redeem(_ context.Context, tokenHash []byte, now time.Time, passwordHash string) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, err := s.live(tokenHash, now)
	if err != nil {
		return uuid.Nil, err
	}
	delete(s.tickets, t.ID)
	s.passwords[t.UserID] = passwordHash
	return t.UserID, nil
}

type sentMail struct {
	to, subject, body string
}

// recordingMailer keeps every message instead of delivering it.
type recordingMailer struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (m *recordingMailer) Send(_ context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

func (m *recordingMailer) last() sentMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.sent) == 0 {
		return sentMail{}
	}
	return m.sent[len(m.sent)-1]
}

func (m *recordingMailer) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}
