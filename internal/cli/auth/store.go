package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"PartnerApp/internal/cli/repo"
)

// Ключи хранилища.
const (
	KeyAccessToken  = "accessToken"
	KeyRefreshToken = "refreshToken"
	KeyPartnerID    = "partnerId"
	KeyPartnerName  = "partnerName"
	KeyPhone        = "phone"
)

var (
	// ErrIncompletePair возвращается при попытке сохранить только один из токенов.
	ErrIncompletePair = errors.New("credential pair must contain both tokens")
	// ErrCredentialsChanged возвращается Rotate, если пара была заменена или удалена
	// после того, как вызывающий прочитал refresh-токен.
	ErrCredentialsChanged = errors.New("stored credentials changed concurrently")
)

// Pair — access/refresh токены партнёра.
type Pair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Complete сообщает, заданы ли оба токена.
func (p Pair) Complete() bool { return p.AccessToken != "" && p.RefreshToken != "" }

// Identity — сведения о текущем партнёре, сохраняемые рядом с токенами.
type Identity struct {
	PartnerID string
	Name      string
	Phone     string
}

// Store — единственный владелец пары токенов. Все чтения и записи идут через
// мьютекс, поэтому запись refresh и очистка при logout не перемешиваются.
type Store struct {
	mu sync.RWMutex
	kv repo.KVStore
}

// NewStore создаёт хранилище учётных данных поверх KV.
func NewStore(kv repo.KVStore) *Store {
	return &Store{kv: kv}
}

// Load возвращает сохранённую пару. Отсутствующие токены — пустые строки.
func (s *Store) Load(ctx context.Context) (Pair, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadLocked(ctx)
}

func (s *Store) loadLocked(ctx context.Context) (Pair, error) {
	access, err := s.get(ctx, KeyAccessToken)
	if err != nil {
		return Pair{}, err
	}
	refresh, err := s.get(ctx, KeyRefreshToken)
	if err != nil {
		return Pair{}, err
	}
	return Pair{AccessToken: access, RefreshToken: refresh}, nil
}

// AccessToken возвращает access-токен или пустую строку.
func (s *Store) AccessToken(ctx context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.get(ctx, KeyAccessToken)
}

// RefreshToken возвращает refresh-токен или пустую строку.
func (s *Store) RefreshToken(ctx context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.get(ctx, KeyRefreshToken)
}

// Save сохраняет пару целиком.
func (s *Store) Save(ctx context.Context, p Pair) error {
	if !p.Complete() {
		return ErrIncompletePair
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.kv.MultiSet(ctx, pairValues(p))
}

// SaveSession сохраняет пару и данные партнёра одной операцией (login/verify/register).
func (s *Store) SaveSession(ctx context.Context, p Pair, id Identity) error {
	if !p.Complete() {
		return ErrIncompletePair
	}
	values := pairValues(p)
	if id.PartnerID != "" {
		values[KeyPartnerID] = id.PartnerID
	}
	if id.Name != "" {
		values[KeyPartnerName] = id.Name
	}
	if id.Phone != "" {
		values[KeyPhone] = id.Phone
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.kv.MultiSet(ctx, values)
}

// Rotate заменяет пару, только если сохранённый refresh-токен всё ещё равен expectedRefresh.
// Иначе возвращает ErrCredentialsChanged и ничего не пишет.
func (s *Store) Rotate(ctx context.Context, expectedRefresh string, next Pair) error {
	if !next.Complete() {
		return ErrIncompletePair
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, err := s.get(ctx, KeyRefreshToken)
	if err != nil {
		return err
	}
	if cur == "" || cur != expectedRefresh {
		return ErrCredentialsChanged
	}
	return s.kv.MultiSet(ctx, pairValues(next))
}

// Clear удаляет токены и данные партнёра.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.kv.MultiRemove(ctx, KeyAccessToken, KeyRefreshToken, KeyPartnerID, KeyPartnerName, KeyPhone)
}

// Identity возвращает данные текущего партнёра.
func (s *Store) Identity(ctx context.Context) (Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var id Identity
	var err error
	if id.PartnerID, err = s.get(ctx, KeyPartnerID); err != nil {
		return Identity{}, err
	}
	if id.Name, err = s.get(ctx, KeyPartnerName); err != nil {
		return Identity{}, err
	}
	if id.Phone, err = s.get(ctx, KeyPhone); err != nil {
		return Identity{}, err
	}
	return id, nil
}

// get читает ключ, отсутствие ключа — пустая строка.
func (s *Store) get(ctx context.Context, key string) (string, error) {
	v, err := s.kv.Get(ctx, key)
	if errors.Is(err, repo.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", key, err)
	}
	return v, nil
}

func pairValues(p Pair) map[string]string {
	return map[string]string{
		KeyAccessToken:  p.AccessToken,
		KeyRefreshToken: p.RefreshToken,
	}
}
