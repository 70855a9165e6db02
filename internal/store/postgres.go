package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/aaronzipp/who-is-the-wolf/internal/models"
)

type sessionRecord struct {
	ID          string `gorm:"primaryKey;size:32"`
	CreatorID   string `gorm:"size:64"`
	Status      string `gorm:"size:16;index"`
	PlayerCount int
	Capacity    int
	State       datatypes.JSON
	CreatedAt   time.Time
	UpdatedAt   time.Time `gorm:"index"`
}

func (sessionRecord) TableName() string { return "sessions" }

type scoreRecord struct {
	UserID      string `gorm:"primaryKey;size:64"`
	DisplayName string `gorm:"size:64"`
	Points      int    `gorm:"index"`
	GamesWon    int
	GamesLost   int
	UpdatedAt   time.Time
}

func (scoreRecord) TableName() string { return "scores" }

// PostgresStore keeps sessions in PostgreSQL, one JSON document per session
type PostgresStore struct {
	db *gorm.DB
}

// OpenPostgres connects to dsn and migrates the schema
func OpenPostgres(dsn string) (*PostgresStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	if err := db.AutoMigrate(&sessionRecord{}, &scoreRecord{}); err != nil {
		return nil, fmt.Errorf("migrating schema: %w", err)
	}
	log.Info().Str("module", "store.postgres").Msg("database connected and migrated")
	return &PostgresStore{db: db}, nil
}

// Close releases the connection pool
func (p *PostgresStore) Close() error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (p *PostgresStore) Load(ctx context.Context, id string) (*models.Session, error) {
	var rec sessionRecord
	err := p.db.WithContext(ctx).Where("id = ?", id).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading session %s: %w", id, err)
	}
	return Decode(rec.State)
}

func recordOf(s *models.Session) (*sessionRecord, error) {
	data, err := Encode(s)
	if err != nil {
		return nil, err
	}
	return &sessionRecord{
		ID:          s.ID,
		CreatorID:   s.CreatorID,
		Status:      string(s.Status),
		PlayerCount: len(s.Players),
		Capacity:    s.Capacity,
		State:       datatypes.JSON(data),
		CreatedAt:   s.CreatedAt,
	}, nil
}

func (p *PostgresStore) Save(ctx context.Context, s *models.Session) error {
	rec, err := recordOf(s)
	if err != nil {
		return err
	}
	if err := p.db.WithContext(ctx).Save(rec).Error; err != nil {
		return fmt.Errorf("saving session %s: %w", s.ID, err)
	}
	return nil
}

// Finish writes the ended session and its awards in one transaction
func (p *PostgresStore) Finish(ctx context.Context, s *models.Session, scores []models.Score) error {
	rec, err := recordOf(s)
	if err != nil {
		return err
	}
	return p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(rec).Error; err != nil {
			return fmt.Errorf("saving session %s: %w", s.ID, err)
		}
		return upsertScores(tx, scores)
	})
}

func (p *PostgresStore) Exists(ctx context.Context, id string) (bool, error) {
	var n int64
	if err := p.db.WithContext(ctx).Model(&sessionRecord{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, fmt.Errorf("checking session %s: %w", id, err)
	}
	return n > 0, nil
}

func (p *PostgresStore) Active(ctx context.Context) ([]models.Lobby, error) {
	var recs []sessionRecord
	err := p.db.WithContext(ctx).
		Select("id", "creator_id", "status", "player_count", "capacity", "updated_at").
		Where("status <> ?", string(models.StatusEnded)).
		Order("updated_at desc, id").
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("listing active sessions: %w", err)
	}
	lobbies := make([]models.Lobby, 0, len(recs))
	for _, rec := range recs {
		lobbies = append(lobbies, models.Lobby{
			ID:          rec.ID,
			CreatorID:   rec.CreatorID,
			Status:      models.GameStatus(rec.Status),
			PlayerCount: rec.PlayerCount,
			Capacity:    rec.Capacity,
			UpdatedAt:   rec.UpdatedAt.UTC(),
		})
	}
	return lobbies, nil
}

// AddScores upserts every award, adding to existing totals
func (p *PostgresStore) AddScores(ctx context.Context, scores []models.Score) error {
	if len(scores) == 0 {
		return nil
	}
	return p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return upsertScores(tx, scores)
	})
}

func upsertScores(tx *gorm.DB, scores []models.Score) error {
	for _, award := range scores {
		rec := scoreRecord{
			UserID:      award.UserID,
			DisplayName: award.DisplayName,
			Points:      award.Points,
			GamesWon:    award.GamesWon,
			GamesLost:   award.GamesLost,
		}
		err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"display_name": gorm.Expr("excluded.display_name"),
				"points":       gorm.Expr("scores.points + excluded.points"),
				"games_won":    gorm.Expr("scores.games_won + excluded.games_won"),
				"games_lost":   gorm.Expr("scores.games_lost + excluded.games_lost"),
				"updated_at":   gorm.Expr("excluded.updated_at"),
			}),
		}).Create(&rec).Error
		if err != nil {
			return fmt.Errorf("recording score for %s: %w", award.UserID, err)
		}
	}
	return nil
}

func (p *PostgresStore) TopScores(ctx context.Context, limit int) ([]models.Score, error) {
	q := p.db.WithContext(ctx).Order("points desc, games_won desc, user_id")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var recs []scoreRecord
	if err := q.Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("listing scores: %w", err)
	}
	scores := make([]models.Score, 0, len(recs))
	for _, rec := range recs {
		scores = append(scores, models.Score{
			UserID:      rec.UserID,
			DisplayName: rec.DisplayName,
			Points:      rec.Points,
			GamesWon:    rec.GamesWon,
			GamesLost:   rec.GamesLost,
		})
	}
	return scores, nil
}

var _ Store = (*PostgresStore)(nil)
