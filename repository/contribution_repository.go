package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Govind-619/BuyMeAChai/models"
	"gorm.io/gorm"
)

var (
	// ErrAlreadyRecorded is returned with the existing row when the
	// (order_id, payment_id) pair was stored before. It only occurs when the
	// dedupe index exists.
	ErrAlreadyRecorded = errors.New("contribution already recorded")

	ErrNotFound = errors.New("contribution not found")
)

// ContributionStore is the append-only store behind the message wall
type ContributionStore interface {
	Append(ctx context.Context, contribution *models.Contribution) (*models.Contribution, error)
	ListRecent(ctx context.Context) ([]models.Contribution, error)
	ListPage(ctx context.Context, before uint, limit int) ([]models.Contribution, error)
	Get(ctx context.Context, id uint) (*models.Contribution, error)
}

// GormContributionStore keeps contributions in a SQL database through gorm
type GormContributionStore struct {
	db  *gorm.DB
	now func() time.Time
}

// NewContributionStore wraps db
func NewContributionStore(db *gorm.DB) *GormContributionStore {
	return &GormContributionStore{db: db, now: time.Now}
}

// WithClock overrides the timestamp source
func (s *GormContributionStore) WithClock(now func() time.Time) *GormContributionStore {
	s.now = now
	return s
}

// Append assigns an id and creation time and inserts the row
func (s *GormContributionStore) Append(ctx context.Context, contribution *models.Contribution) (*models.Contribution, error) {
	row := *contribution
	row.ID = 0
	row.CreatedAt = s.now().UTC().Truncate(time.Microsecond)

	err := s.db.WithContext(ctx).Create(&row).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		var existing models.Contribution
		if findErr := s.db.WithContext(ctx).
			Where("order_id = ? AND payment_id = ?", row.OrderID, row.PaymentID).
			First(&existing).Error; findErr != nil {
			return nil, fmt.Errorf("failed to load recorded contribution: %w", findErr)
		}
		return &existing, ErrAlreadyRecorded
	}
	if err != nil {
		return nil, fmt.Errorf("failed to insert contribution: %w", err)
	}
	return &row, nil
}

// ListRecent returns every contribution, newest first
func (s *GormContributionStore) ListRecent(ctx context.Context) ([]models.Contribution, error) {
	return s.ListPage(ctx, 0, 0)
}

// ListPage returns contributions older than the contribution with id before,
// newest first. before == 0 starts at the newest; limit == 0 means no limit.
func (s *GormContributionStore) ListPage(ctx context.Context, before uint, limit int) ([]models.Contribution, error) {
	query := s.db.WithContext(ctx).Model(&models.Contribution{})

	if before > 0 {
		var cursor models.Contribution
		if err := s.db.WithContext(ctx).Select("id", "created_at").First(&cursor, before).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, fmt.Errorf("failed to load cursor: %w", err)
		}
		query = query.Where("created_at < ? OR (created_at = ? AND id < ?)", cursor.CreatedAt, cursor.CreatedAt, cursor.ID)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	contributions := make([]models.Contribution, 0)
	if err := query.Order("created_at DESC").Order("id DESC").Find(&contributions).Error; err != nil {
		return nil, fmt.Errorf("failed to list contributions: %w", err)
	}
	return contributions, nil
}

// Get returns one contribution by id
func (s *GormContributionStore) Get(ctx context.Context, id uint) (*models.Contribution, error) {
	var contribution models.Contribution
	if err := s.db.WithContext(ctx).First(&contribution, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load contribution: %w", err)
	}
	return &contribution, nil
}
