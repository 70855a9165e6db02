package store

import (
	"context"
	"sync"
	"time"

	"github.com/awesome-cap/hashmap"

	"github.com/aaronzipp/who-is-the-wolf/internal/models"
)

// MemoryStore keeps sessions as encoded blobs in process memory
type MemoryStore struct {
	sessions *hashmap.HashMap // id -> []byte
	lobbies  *hashmap.HashMap // id -> models.Lobby
	scores   *hashmap.HashMap // user id -> models.Score

	scoresMu sync.Mutex
	clock    func() time.Time
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: hashmap.New(),
		lobbies:  hashmap.New(),
		scores:   hashmap.New(),
		clock:    func() time.Time { return time.Now().UTC() },
	}
}

// Load retrieves a session by id
func (m *MemoryStore) Load(_ context.Context, id string) (*models.Session, error) {
	v, ok := m.sessions.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return Decode(v.([]byte))
}

// Save stores a session; ended sessions leave the active index
func (m *MemoryStore) Save(_ context.Context, s *models.Session) error {
	data, err := Encode(s)
	if err != nil {
		return err
	}
	m.put(s, data)
	return nil
}

func (m *MemoryStore) put(s *models.Session, data []byte) {
	m.sessions.Set(s.ID, data)
	if s.Status == models.StatusEnded {
		m.lobbies.Del(s.ID)
	} else {
		m.lobbies.Set(s.ID, models.LobbyOf(s, m.clock()))
	}
}

// Exists checks if a session id is taken
func (m *MemoryStore) Exists(_ context.Context, id string) (bool, error) {
	_, ok := m.sessions.Get(id)
	return ok, nil
}

// Active lists the sessions that have not ended
func (m *MemoryStore) Active(_ context.Context) ([]models.Lobby, error) {
	list := make([]models.Lobby, 0)
	m.lobbies.Foreach(func(e *hashmap.Entry) {
		list = append(list, e.Value().(models.Lobby))
	})
	sortLobbies(list)
	return list, nil
}

// AddScores adds each award to the player's running total
func (m *MemoryStore) AddScores(_ context.Context, scores []models.Score) error {
	m.scoresMu.Lock()
	defer m.scoresMu.Unlock()
	m.addScores(scores)
	return nil
}

// Finish stores an ended session and its awards in one step
func (m *MemoryStore) Finish(_ context.Context, s *models.Session, scores []models.Score) error {
	data, err := Encode(s)
	if err != nil {
		return err
	}
	m.scoresMu.Lock()
	defer m.scoresMu.Unlock()
	m.addScores(scores)
	m.put(s, data)
	return nil
}

func (m *MemoryStore) addScores(scores []models.Score) {
	for _, award := range scores {
		total := models.Score{UserID: award.UserID}
		if v, ok := m.scores.Get(award.UserID); ok {
			total = v.(models.Score)
		}
		total.DisplayName = award.DisplayName
		total.Points += award.Points
		total.GamesWon += award.GamesWon
		total.GamesLost += award.GamesLost
		m.scores.Set(award.UserID, total)
	}
}

// TopScores returns the best totals; limit <= 0 returns all of them
func (m *MemoryStore) TopScores(_ context.Context, limit int) ([]models.Score, error) {
	list := make([]models.Score, 0)
	m.scores.Foreach(func(e *hashmap.Entry) {
		list = append(list, e.Value().(models.Score))
	})
	sortScores(list)
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

var _ Store = (*MemoryStore)(nil)
