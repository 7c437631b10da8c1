package store

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/exon-reyes/integra-ws/internal/models"
)

// NightLookup answers whether a position is inherently night-shift. Results
// are cached for the process lifetime; lookup failures degrade to false with
// a log entry so a flaky read never aborts a closure sweep.
type NightLookup struct {
	db              *gorm.DB
	nightPositionID uuid.UUID
	logger          *zap.Logger

	mu    sync.RWMutex
	cache map[uuid.UUID]bool
}

func NewNightLookup(db *gorm.DB, nightPositionID uuid.UUID, logger *zap.Logger) *NightLookup {
	return &NightLookup{
		db:              db,
		nightPositionID: nightPositionID,
		logger:          logger.Named("night-lookup"),
		cache:           make(map[uuid.UUID]bool),
	}
}

func (l *NightLookup) IsNightPosition(ctx context.Context, positionID uuid.UUID) bool {
	if positionID == uuid.Nil {
		return false
	}
	if l.nightPositionID != uuid.Nil && positionID == l.nightPositionID {
		return true
	}

	l.mu.RLock()
	night, ok := l.cache[positionID]
	l.mu.RUnlock()
	if ok {
		return night
	}

	var position models.Position
	err := l.db.WithContext(ctx).First(&position, "id = ?", positionID).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			l.logger.Error("position lookup failed", zap.String("positionId", positionID.String()), zap.Error(err))
			return false
		}
		position.Night = false
	}

	l.mu.Lock()
	l.cache[positionID] = position.Night
	l.mu.Unlock()
	return position.Night
}
