package db

import (
	"github.com/google/uuid"
	errs "github.com/terangamart/terangamart/errors"
	"github.com/terangamart/terangamart/models"
	"gorm.io/gorm"
)

// AuthRepository resolves the authenticated user id carried in a token
// to an account row.
type AuthRepository interface {
	FindUserByID(id uuid.UUID) (*models.User, error)
}

type authRepo struct {
	DB *gorm.DB
}

func NewAuthRepo(db *GormDB) AuthRepository {
	return &authRepo{db.DB}
}

func (a *authRepo) FindUserByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := a.DB.Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, errs.InActiveUserError
	}
	return &user, nil
}
