package scout

import (
	"errors"

	"gorm.io/gorm"

	"github.com/sportlink/backend/internal/models"
)

// ErrAlreadyShortlisted is returned when a player is added to a
// shortlist they are already on.
var ErrAlreadyShortlisted = errors.New("player already shortlisted")

// ReportFilter narrows a report listing. With neither ScoutID nor
// PlayerID set, CallerID is used to return reports where the caller is
// either the scout or the subject player.
type ReportFilter struct {
	ScoutID  string
	PlayerID string
	CallerID string
	Page     int
	Limit    int
}

type ScoutRepository interface {
	AddToShortlist(scoutID, playerID string) error
	RemoveFromShortlist(scoutID, playerID string) error
	Shortlist(scoutID string) ([]ShortlistEntry, error)
	CreateReport(r *ScoutReport) error
	ListReports(f ReportFilter) ([]ScoutReport, int64, error)
}

type scoutRepository struct {
	db *gorm.DB
}

// NewScoutRepository creates a new instance of ScoutRepository.
func NewScoutRepository(db *gorm.DB) ScoutRepository {
	return &scoutRepository{db: db}
}

// AddToShortlist inserts the pair; the unique index turns a duplicate
// add into ErrAlreadyShortlisted without a read-modify-write window.
func (r *scoutRepository) AddToShortlist(scoutID, playerID string) error {
	err := r.db.Create(&ShortlistEntry{ScoutID: scoutID, PlayerID: playerID}).Error
	if err != nil {
		if models.IsDuplicateKeyErr(err) {
			return ErrAlreadyShortlisted
		}
		return err
	}
	return nil
}

func (r *scoutRepository) RemoveFromShortlist(scoutID, playerID string) error {
	res := r.db.Where("scout_id = ? AND player_id = ?", scoutID, playerID).Delete(&ShortlistEntry{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *scoutRepository) Shortlist(scoutID string) ([]ShortlistEntry, error) {
	var entries []ShortlistEntry
	err := r.db.Where("scout_id = ?", scoutID).Order("created_at ASC").Find(&entries).Error
	return entries, err
}

func (r *scoutRepository) CreateReport(report *ScoutReport) error {
	return r.db.Create(report).Error
}

func (r *scoutRepository) ListReports(f ReportFilter) ([]ScoutReport, int64, error) {
	query := r.db.Model(&ScoutReport{})

	switch {
	case f.ScoutID != "" || f.PlayerID != "":
		if f.ScoutID != "" {
			query = query.Where("scout_id = ?", f.ScoutID)
		}
		if f.PlayerID != "" {
			query = query.Where("player_id = ?", f.PlayerID)
		}
	default:
		query = query.Where("scout_id = ? OR player_id = ?", f.CallerID, f.CallerID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reports []ScoutReport
	offset := (f.Page - 1) * f.Limit
	err := query.Order("created_at DESC").Offset(offset).Limit(f.Limit).Find(&reports).Error
	if err != nil {
		return nil, 0, err
	}
	return reports, total, nil
}
