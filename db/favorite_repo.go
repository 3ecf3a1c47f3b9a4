package db

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/terangamart/terangamart/models"
	"gorm.io/gorm"
)

// FavoriteRepository is the store behind the favorite toggle. The
// (user, listing) unique index is what keeps concurrent toggles from
// ever producing two rows for the same pair.
type FavoriteRepository interface {
	Toggle(userID, listingID uuid.UUID) (bool, error)
	Create(userID, listingID uuid.UUID) (*models.Favorite, error)
	ListByUser(userID uuid.UUID) ([]models.Favorite, error)
	CountByUser(userID uuid.UUID) (int64, error)
	FindByID(id uuid.UUID) (*models.Favorite, error)
	Delete(id uuid.UUID) error
	CountForListing(listingID uuid.UUID) (int64, error)
	IsFavoritedBy(userID, listingID uuid.UUID) (bool, error)
}

type favoriteRepo struct {
	DB *gorm.DB
}

func NewFavoriteRepo(db *GormDB) FavoriteRepository {
	return &favoriteRepo{db.DB}
}

// Toggle removes the favorite if it exists, otherwise creates it. A
// duplicate-key failure means a concurrent toggle created the row
// between our delete and insert; treat it as "already favorited" and
// retry as a delete.
func (r *favoriteRepo) Toggle(userID, listingID uuid.UUID) (bool, error) {
	res := r.DB.Where("user_id = ? AND listing_id = ?", userID, listingID).Delete(&models.Favorite{})
	if res.Error != nil {
		return false, errors.Wrap(res.Error, "delete favorite")
	}
	if res.RowsAffected > 0 {
		return false, nil
	}

	favorite := models.Favorite{UserID: userID, ListingID: listingID}
	if err := r.DB.Create(&favorite).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			res = r.DB.Where("user_id = ? AND listing_id = ?", userID, listingID).Delete(&models.Favorite{})
			if res.Error != nil {
				return false, errors.Wrap(res.Error, "delete favorite after conflict")
			}
			return false, nil
		}
		return false, errors.Wrap(err, "create favorite")
	}
	return true, nil
}

// Create inserts a favorite without toggle semantics; a duplicate pair
// surfaces as gorm.ErrDuplicatedKey for the caller to map to a conflict.
func (r *favoriteRepo) Create(userID, listingID uuid.UUID) (*models.Favorite, error) {
	favorite := models.Favorite{UserID: userID, ListingID: listingID}
	if err := r.DB.Create(&favorite).Error; err != nil {
		return nil, err
	}
	return &favorite, nil
}

func (r *favoriteRepo) ListByUser(userID uuid.UUID) ([]models.Favorite, error) {
	var favorites []models.Favorite
	err := r.DB.Preload("Listing").Preload("Listing.Images").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&favorites).Error
	if err != nil {
		return nil, errors.Wrap(err, "list favorites")
	}
	return favorites, nil
}

func (r *favoriteRepo) CountByUser(userID uuid.UUID) (int64, error) {
	var count int64
	err := r.DB.Model(&models.Favorite{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *favoriteRepo) FindByID(id uuid.UUID) (*models.Favorite, error) {
	var favorite models.Favorite
	if err := r.DB.Where("id = ?", id).First(&favorite).Error; err != nil {
		return nil, err
	}
	return &favorite, nil
}

func (r *favoriteRepo) Delete(id uuid.UUID) error {
	return r.DB.Where("id = ?", id).Delete(&models.Favorite{}).Error
}

func (r *favoriteRepo) CountForListing(listingID uuid.UUID) (int64, error) {
	var count int64
	err := r.DB.Model(&models.Favorite{}).Where("listing_id = ?", listingID).Count(&count).Error
	return count, err
}

func (r *favoriteRepo) IsFavoritedBy(userID, listingID uuid.UUID) (bool, error) {
	var count int64
	err := r.DB.Model(&models.Favorite{}).
		Where("user_id = ? AND listing_id = ?", userID, listingID).
		Count(&count).Error
	return count > 0, err
}
