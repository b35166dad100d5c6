package user

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sportlink/backend/internal/models"
)

const (
	RolePlayer = "player"
	RoleScout  = "scout"
	RoleCoach  = "coach"
	RoleClub   = "club"
)

// Player statuses.
const (
	StatusFreeAgent          = "FreeAgent"
	StatusSigned             = "Signed"
	StatusLookingToBeScouted = "LookingToBeScouted"
)

// Club tiers.
const (
	TierProfessional     = "Professional"
	TierSemiProfessional = "SemiProfessional"
	TierAmateur          = "Amateur"
	TierYouth            = "Youth"
)

// ValidRole reports whether r is one of the four supported roles.
func ValidRole(r string) bool {
	switch r {
	case RolePlayer, RoleScout, RoleCoach, RoleClub:
		return true
	}
	return false
}

// ValidPlayerStatus reports whether s is an allowed player status.
func ValidPlayerStatus(s string) bool {
	switch s {
	case StatusFreeAgent, StatusSigned, StatusLookingToBeScouted:
		return true
	}
	return false
}

// User is the account record. The role-specific sub-profile lives in a
// separate table per role; exactly one of the four associations is
// populated, matching Role. Role and Email are immutable after creation.
type User struct {
	ID           string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	Password     string    `gorm:"not null" json:"-"`
	Role         string    `gorm:"not null;index" json:"role"`
	ProfileImage string    `json:"profileImage,omitempty"`
	IsVerified   bool      `json:"isVerified"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	Player *PlayerProfile `gorm:"foreignKey:UserID" json:"playerProfile,omitempty"`
	Scout  *ScoutProfile  `gorm:"foreignKey:UserID" json:"scoutProfile,omitempty"`
	Coach  *CoachProfile  `gorm:"foreignKey:UserID" json:"coachProfile,omitempty"`
	Club   *ClubProfile   `gorm:"foreignKey:UserID" json:"clubProfile,omitempty"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// PlayerStats is the embedded match statistics block.
type PlayerStats struct {
	Matches int `json:"matches"`
	Goals   int `json:"goals"`
	Assists int `json:"assists"`
}

// PlayerProfile holds player-specific fields. ClubID/ClubName are set iff
// Status is Signed.
type PlayerProfile struct {
	ID        string      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    string      `gorm:"type:uuid;uniqueIndex;not null" json:"userId"`
	Sport     string      `json:"sport"`
	Position  string      `json:"position"`
	Age       int         `json:"age"`
	Status    string      `gorm:"default:FreeAgent" json:"status"`
	ClubID    string      `json:"clubId,omitempty"`
	ClubName  string      `json:"clubName,omitempty"`
	Stats     PlayerStats `gorm:"embedded;embeddedPrefix:stat_" json:"stats"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

func (p *PlayerProfile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Status == "" {
		p.Status = StatusFreeAgent
	}
	return nil
}

// ScoutProfile holds scout-specific fields. The shortlist is a separate
// table owned by the scout package; reports are queried by scoutId.
type ScoutProfile struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    string    `gorm:"type:uuid;uniqueIndex;not null" json:"userId"`
	ClubID    string    `json:"clubId,omitempty"`
	ClubName  string    `json:"clubName,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (s *ScoutProfile) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// Achievement is one entry in a coach's achievement history.
type Achievement struct {
	Title       string `json:"title"`
	Year        int    `json:"year"`
	Description string `json:"description,omitempty"`
	Level       string `json:"level"`
}

// AchievementList is a JSON column of achievements.
type AchievementList []Achievement

func (a AchievementList) Value() (driver.Value, error) {
	if a == nil {
		a = AchievementList{}
	}
	return json.Marshal(a)
}

func (a *AchievementList) Scan(src interface{}) error {
	return models.ScanJSON(src, a)
}

// CoachProfile holds coach-specific fields.
type CoachProfile struct {
	ID              string             `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          string             `gorm:"type:uuid;uniqueIndex;not null" json:"userId"`
	Specialization  string             `json:"specialization"`
	ExperienceYears int                `json:"experienceYears"`
	Certifications  models.StringSlice `gorm:"type:text" json:"certifications"`
	ClubID          string             `json:"clubId,omitempty"`
	ClubName        string             `json:"clubName,omitempty"`
	PlayersCoached  int                `json:"playersCoached"`
	Achievements    AchievementList    `gorm:"type:text" json:"achievements"`
	CreatedAt       time.Time          `json:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt"`
}

func (c *CoachProfile) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// ClubProfile holds club-specific fields. Coaches/Players/Scouts are sets
// of user ids.
type ClubProfile struct {
	ID           string             `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       string             `gorm:"type:uuid;uniqueIndex;not null" json:"userId"`
	Name         string             `json:"name"`
	Logo         string             `json:"logo,omitempty"`
	Location     string             `json:"location"`
	FoundedYear  int                `json:"foundedYear"`
	Description  string             `json:"description,omitempty"`
	Verified     bool               `json:"verified"`
	Website      string             `json:"website,omitempty"`
	Tier         string             `json:"tier"`
	League       string             `json:"league,omitempty"`
	Coaches      models.StringSlice `gorm:"type:text" json:"coaches"`
	Players      models.StringSlice `gorm:"type:text" json:"players"`
	Scouts       models.StringSlice `gorm:"type:text" json:"scouts"`
	Achievements models.StringSlice `gorm:"type:text" json:"achievements"`
	Facilities   models.StringSlice `gorm:"type:text" json:"facilities"`
	CreatedAt    time.Time          `json:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt"`
}

func (c *ClubProfile) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// NewProfileFor creates the empty sub-profile row matching role. Exactly
// one branch is ever created per user, which is what keeps the tagged
// union honest.
func NewProfileFor(u *User) interface{} {
	switch u.Role {
	case RolePlayer:
		return &PlayerProfile{UserID: u.ID, Status: StatusFreeAgent}
	case RoleScout:
		return &ScoutProfile{UserID: u.ID}
	case RoleCoach:
		return &CoachProfile{UserID: u.ID}
	case RoleClub:
		return &ClubProfile{UserID: u.ID, Name: u.Name}
	}
	return nil
}
