package user

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// SearchQuery carries the filters for a user search.
type SearchQuery struct {
	Query    string // case-insensitive substring on name/email
	Role     string
	Location string // case-insensitive substring on club location / player club name
	Page     int
	Limit    int
}

type UserRepository interface {
	Create(u *User) error
	GetByID(id string) (*User, error)
	GetByEmail(email string) (*User, error)
	EmailTaken(email string) (bool, error)
	Update(u *User) error
	Delete(id string) error
	Search(q SearchQuery) ([]User, int64, error)
	IDsByRole(role string) ([]string, error)
	NamesByID(ids []string) (map[string]string, error)
	Exists(id string) (bool, error)
	ExistsWithRole(id, role string) (bool, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create inserts the user and its role sub-profile in one transaction.
func (r *userRepository) Create(u *User) error {
	u.Email = strings.ToLower(u.Email)
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(u).Error; err != nil {
			return err
		}
		profile := NewProfileFor(u)
		if profile == nil {
			return errors.New("unknown role: " + u.Role)
		}
		return tx.Create(profile).Error
	})
}

func (r *userRepository) GetByID(id string) (*User, error) {
	var u User
	err := r.db.
		Preload("Player").Preload("Scout").Preload("Coach").Preload("Club").
		First(&u, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetByEmail(email string) (*User, error) {
	var u User
	err := r.db.
		Preload("Player").Preload("Scout").Preload("Coach").Preload("Club").
		First(&u, "email = ?", strings.ToLower(email)).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) EmailTaken(email string) (bool, error) {
	var count int64
	err := r.db.Model(&User{}).Where("email = ?", strings.ToLower(email)).Count(&count).Error
	return count > 0, err
}

func (r *userRepository) Update(u *User) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&User{ID: u.ID}).Updates(map[string]interface{}{
			"name":          u.Name,
			"profile_image": u.ProfileImage,
		}).Error; err != nil {
			return err
		}
		switch {
		case u.Player != nil:
			return tx.Save(u.Player).Error
		case u.Scout != nil:
			return tx.Save(u.Scout).Error
		case u.Coach != nil:
			return tx.Save(u.Coach).Error
		case u.Club != nil:
			return tx.Save(u.Club).Error
		}
		return nil
	})
}

// Delete hard-deletes the user and its role profile. Posts, messages,
// comments and reports authored by the user are intentionally left in
// place; read paths render their author as "Unknown User".
func (r *userRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		tx.Where("user_id = ?", id).Delete(&PlayerProfile{})
		tx.Where("user_id = ?", id).Delete(&ScoutProfile{})
		tx.Where("user_id = ?", id).Delete(&CoachProfile{})
		tx.Where("user_id = ?", id).Delete(&ClubProfile{})
		res := tx.Where("id = ?", id).Delete(&User{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *userRepository) Search(q SearchQuery) ([]User, int64, error) {
	var users []User
	var total int64

	query := r.db.Model(&User{})

	if q.Query != "" {
		pattern := "%" + strings.ToLower(q.Query) + "%"
		query = query.Where("LOWER(users.name) LIKE ? OR LOWER(users.email) LIKE ?", pattern, pattern)
	}
	if q.Role != "" {
		query = query.Where("users.role = ?", q.Role)
	}
	if q.Location != "" {
		pattern := "%" + strings.ToLower(q.Location) + "%"
		query = query.
			Joins("LEFT JOIN club_profiles ON club_profiles.user_id = users.id").
			Joins("LEFT JOIN player_profiles ON player_profiles.user_id = users.id").
			Where("LOWER(club_profiles.location) LIKE ? OR LOWER(player_profiles.club_name) LIKE ?", pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (q.Page - 1) * q.Limit
	err := query.
		Preload("Player").Preload("Scout").Preload("Coach").Preload("Club").
		Order("users.created_at DESC").
		Offset(offset).Limit(q.Limit).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *userRepository) IDsByRole(role string) ([]string, error) {
	var ids []string
	err := r.db.Model(&User{}).Where("role = ?", role).Pluck("id", &ids).Error
	return ids, err
}

// NamesByID resolves display names for a set of user ids. Missing ids are
// simply absent from the returned map.
func (r *userRepository) NamesByID(ids []string) (map[string]string, error) {
	names := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}
	var rows []struct {
		ID   string
		Name string
	}
	if err := r.db.Model(&User{}).Select("id", "name").Where("id IN ?", ids).Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		names[row.ID] = row.Name
	}
	return names, nil
}

func (r *userRepository) Exists(id string) (bool, error) {
	var count int64
	err := r.db.Model(&User{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *userRepository) ExistsWithRole(id, role string) (bool, error) {
	var count int64
	err := r.db.Model(&User{}).Where("id = ? AND role = ?", id, role).Count(&count).Error
	return count > 0, err
}
