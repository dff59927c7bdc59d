package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jinzhu/now"
	"github.com/pkg/errors"
	"max.ks1230/finances-ai/internal/entity/transaction"
	"max.ks1230/finances-ai/internal/entity/user"
	"max.ks1230/finances-ai/internal/model/customerr"
)

type session struct {
	userID    string
	expiresAt time.Time
}

// InMemStorage serves the same queries as PostgresStorage from process memory.
type InMemStorage struct {
	mu           sync.RWMutex
	users        map[string]user.Profile
	sessions     map[string]session
	transactions map[string][]transaction.Transaction
}

func NewInMemStorage() *InMemStorage {
	return &InMemStorage{
		users:        make(map[string]user.Profile),
		sessions:     make(map[string]session),
		transactions: make(map[string][]transaction.Transaction),
	}
}

func (s *InMemStorage) Close() error {
	return nil
}

func (s *InMemStorage) SaveUser(profile user.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[profile.ID] = profile
}

func (s *InMemStorage) SaveSession(token, userID string, expiresAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[token] = session{userID: userID, expiresAt: expiresAt}
}

func (s *InMemStorage) GetUserByID(_ context.Context, id string) (user.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return user.Profile{}, errors.Wrap(customerr.ErrNotFound, "get user")
	}
	return u, nil
}

func (s *InMemStorage) UserIDBySession(_ context.Context, token string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[token]
	if !ok || !sess.expiresAt.After(time.Now()) {
		return "", errors.Wrap(customerr.ErrNotFound, "get session")
	}
	return sess.userID, nil
}

func (s *InMemStorage) UserIDByTelegramID(_ context.Context, telegramID int64) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for id, u := range s.users {
		if u.TelegramID == telegramID {
			return id, nil
		}
	}
	return "", errors.Wrap(customerr.ErrNotFound, "get telegram user")
}

func (s *InMemStorage) LinkTelegram(_ context.Context, userID string, telegramID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return errors.Wrap(customerr.ErrNotFound, "link telegram")
	}
	for id, other := range s.users {
		if id != userID && other.TelegramID == telegramID {
			other.TelegramID = 0
			s.users[id] = other
		}
	}
	u.TelegramID = telegramID
	s.users[userID] = u
	return nil
}

func (s *InMemStorage) FindTransactions(_ context.Context, userID string, from, to time.Time) ([]transaction.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res := make([]transaction.Transaction, 0)
	for _, t := range s.transactions[userID] {
		if !t.Date.Before(from) && t.Date.Before(to) {
			res = append(res, t)
		}
	}
	sort.SliceStable(res, func(i, j int) bool {
		return res[i].Date.Before(res[j].Date)
	})
	return res, nil
}

func (s *InMemStorage) ListTransactions(_ context.Context, userID string, limit int) ([]transaction.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res := append([]transaction.Transaction{}, s.transactions[userID]...)
	sort.SliceStable(res, func(i, j int) bool {
		if res[i].Date.Equal(res[j].Date) {
			return res[i].CreatedAt.After(res[j].CreatedAt)
		}
		return res[i].Date.After(res[j].Date)
	})
	if limit > 0 && len(res) > limit {
		res = res[:limit]
	}
	return res, nil
}

func (s *InMemStorage) CountCreatedTransactions(_ context.Context, userID string, from, to time.Time) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.countCreated(userID, from, to), nil
}

func (s *InMemStorage) SaveTransaction(_ context.Context, rec transaction.Transaction, monthLimit int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if monthLimit > 0 {
		from := now.BeginningOfMonth()
		if s.countCreated(rec.UserID, from, from.AddDate(0, 1, 0)) >= monthLimit {
			return &customerr.LimitError{Err: "user limit exceeded"}
		}
	}
	s.transactions[rec.UserID] = append(s.transactions[rec.UserID], rec)
	return nil
}

func (s *InMemStorage) countCreated(userID string, from, to time.Time) int {
	count := 0
	for _, t := range s.transactions[userID] {
		if !t.CreatedAt.Before(from) && t.CreatedAt.Before(to) {
			count++
		}
	}
	return count
}
