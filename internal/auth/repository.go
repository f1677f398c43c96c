package auth

import (
	"gorm.io/gorm"
)

type Repository interface {
	Create(user *User) error
	FindByEmail(email string) (*User, error)
	FindByID(userID uint) (User, error)
	Update(user *User) error
	Delete(userID uint) error
	ListUsers(limit, offset int, search string) ([]User, int64, error)
	UpdateRole(userID uint, role string) error
	GetUserIDsByRole(role string) ([]uint, error)
}

type repository struct{ db *gorm.DB }

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

func (r *repository) Create(user *User) error {
	return r.db.Create(user).Error
}

func (r *repository) FindByEmail(email string) (*User, error) {
	var u User
	err := r.db.Where("email = ?", email).First(&u).Error
	return &u, err
}

func (r *repository) FindByID(userID uint) (User, error) {
	var user User
	err := r.db.First(&user, userID).Error
	return user, err
}

func (r *repository) Update(user *User) error {
	return r.db.Save(user).Error
}

func (r *repository) Delete(userID uint) error {
	return r.db.Delete(&User{}, userID).Error
}

func (r *repository) ListUsers(limit, offset int, search string) ([]User, int64, error) {
	var users []User
	var total int64

	query := r.db.Model(&User{})
	if search != "" {
		ilike := "%" + search + "%"
		query = query.Where("full_name ILIKE ? OR email ILIKE ?", ilike, ilike)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&users).Error

	return users, total, err
}

func (r *repository) UpdateRole(userID uint, role string) error {
	res := r.db.Model(&User{}).Where("id = ?", userID).Update("role", role)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) GetUserIDsByRole(role string) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&User{}).Where("role = ?", role).Pluck("id", &ids).Error
	return ids, err
}
