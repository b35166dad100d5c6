package player

import (
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/sportlink/backend/internal/user"
)

// Summary is the flattened player view returned by search and trending.
type Summary struct {
	UserID       string           `json:"userId"`
	Name         string           `json:"name"`
	ProfileImage string           `json:"profileImage,omitempty"`
	Sport        string           `json:"sport"`
	Position     string           `json:"position"`
	Age          int              `json:"age"`
	Status       string           `json:"status"`
	ClubID       string           `json:"clubId,omitempty"`
	ClubName     string           `json:"clubName,omitempty"`
	Stats        user.PlayerStats `gorm:"embedded;embeddedPrefix:stat_" json:"stats"`
}

// SearchQuery narrows a player search. Sport and position are matched as
// case-insensitive substrings; status is an exact match.
type SearchQuery struct {
	Sport    string
	Position string
	Status   string
	Page     int
	Limit    int
}

// StatsUpdate carries independently settable stat fields.
type StatsUpdate struct {
	Matches *int
	Goals   *int
	Assists *int
}

type PlayerRepository interface {
	Search(q SearchQuery) ([]Summary, int64, error)
	Trending(limit int) ([]Summary, error)
	GetProfile(userID string) (*user.PlayerProfile, error)
	UpdateStats(userID string, upd StatsUpdate) error
	UpdateStatus(userID, status, clubID, clubName string) error
}

type playerRepository struct {
	db *gorm.DB
}

// NewPlayerRepository creates a new instance of PlayerRepository.
func NewPlayerRepository(db *gorm.DB) PlayerRepository {
	return &playerRepository{db: db}
}

func (r *playerRepository) base() *gorm.DB {
	return r.db.Table("player_profiles").
		Select("player_profiles.user_id, users.name, users.profile_image, player_profiles.sport, player_profiles.position, player_profiles.age, player_profiles.status, player_profiles.club_id, player_profiles.club_name, player_profiles.stat_matches, player_profiles.stat_goals, player_profiles.stat_assists").
		Joins("JOIN users ON users.id = player_profiles.user_id")
}

func (r *playerRepository) Search(q SearchQuery) ([]Summary, int64, error) {
	query := r.base()

	if q.Sport != "" {
		query = query.Where("LOWER(player_profiles.sport) LIKE ?", "%"+strings.ToLower(q.Sport)+"%")
	}
	if q.Position != "" {
		query = query.Where("LOWER(player_profiles.position) LIKE ?", "%"+strings.ToLower(q.Position)+"%")
	}
	if q.Status != "" {
		query = query.Where("player_profiles.status = ?", q.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var players []Summary
	offset := (q.Page - 1) * q.Limit
	err := query.Order("users.name ASC").Offset(offset).Limit(q.Limit).Scan(&players).Error
	if err != nil {
		return nil, 0, err
	}
	return players, total, nil
}

// Trending orders by goals, then assists. The tie-break is fixed.
func (r *playerRepository) Trending(limit int) ([]Summary, error) {
	var players []Summary
	err := r.base().
		Order("player_profiles.stat_goals DESC, player_profiles.stat_assists DESC").
		Limit(limit).
		Scan(&players).Error
	return players, err
}

func (r *playerRepository) GetProfile(userID string) (*user.PlayerProfile, error) {
	var p user.PlayerProfile
	if err := r.db.First(&p, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *playerRepository) UpdateStats(userID string, upd StatsUpdate) error {
	updates := map[string]interface{}{}
	if upd.Matches != nil {
		updates["stat_matches"] = *upd.Matches
	}
	if upd.Goals != nil {
		updates["stat_goals"] = *upd.Goals
	}
	if upd.Assists != nil {
		updates["stat_assists"] = *upd.Assists
	}
	if len(updates) == 0 {
		return nil
	}
	updates["updated_at"] = time.Now()

	res := r.db.Model(&user.PlayerProfile{}).Where("user_id = ?", userID).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdateStatus sets the player status; club fields are stored for Signed
// and cleared for every other status in the same statement.
func (r *playerRepository) UpdateStatus(userID, status, clubID, clubName string) error {
	updates := map[string]interface{}{
		"status":     status,
		"club_id":    clubID,
		"club_name":  clubName,
		"updated_at": time.Now(),
	}
	if status != user.StatusSigned {
		updates["club_id"] = ""
		updates["club_name"] = ""
	}

	res := r.db.Model(&user.PlayerProfile{}).Where("user_id = ?", userID).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
