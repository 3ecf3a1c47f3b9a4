package services

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/terangamart/terangamart/config"
	"github.com/terangamart/terangamart/db"
	errs "github.com/terangamart/terangamart/errors"
	"github.com/terangamart/terangamart/models"
	"gorm.io/gorm"
)

// FavoriteService implements toggle/list/count/remove over the
// favorite store.
type FavoriteService interface {
	Toggle(userID, listingID uuid.UUID) (bool, error)
	List(userID uuid.UUID) ([]models.FavoriteResponse, error)
	Count(userID uuid.UUID) (int64, error)
	Remove(userID, favoriteID uuid.UUID) error
}

type favoriteService struct {
	Config       *config.Config
	favoriteRepo db.FavoriteRepository
	listingRepo  db.ListingRepository
	media        MediaService
}

func NewFavoriteService(favoriteRepo db.FavoriteRepository, listingRepo db.ListingRepository, media MediaService, conf *config.Config) FavoriteService {
	return &favoriteService{
		Config:       conf,
		favoriteRepo: favoriteRepo,
		listingRepo:  listingRepo,
		media:        media,
	}
}

func (s *favoriteService) Toggle(userID, listingID uuid.UUID) (bool, error) {
	if _, err := s.listingRepo.FindActiveByID(listingID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, errs.New("listing not found", http.StatusNotFound)
		}
		return false, err
	}
	return s.favoriteRepo.Toggle(userID, listingID)
}

func (s *favoriteService) List(userID uuid.UUID) ([]models.FavoriteResponse, error) {
	favorites, err := s.favoriteRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	items := make([]models.FavoriteResponse, 0, len(favorites))
	for _, favorite := range favorites {
		preview, err := s.listingPreview(&favorite.Listing, userID)
		if err != nil {
			return nil, err
		}
		items = append(items, models.FavoriteResponse{
			ID:        favorite.ID,
			Listing:   preview,
			CreatedAt: favorite.CreatedAt,
		})
	}
	return items, nil
}

func (s *favoriteService) Count(userID uuid.UUID) (int64, error) {
	return s.favoriteRepo.CountByUser(userID)
}

func (s *favoriteService) Remove(userID, favoriteID uuid.UUID) error {
	favorite, err := s.favoriteRepo.FindByID(favoriteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.New("favorite not found", http.StatusNotFound)
		}
		return err
	}
	if favorite.UserID != userID {
		return errs.New("you do not own this favorite", http.StatusForbidden)
	}
	return s.favoriteRepo.Delete(favoriteID)
}

func (s *favoriteService) listingPreview(listing *models.Listing, viewerID uuid.UUID) (models.ListingPreview, error) {
	favoritesCount, err := s.favoriteRepo.CountForListing(listing.ID)
	if err != nil {
		return models.ListingPreview{}, err
	}
	isFavorited, err := s.favoriteRepo.IsFavoritedBy(viewerID, listing.ID)
	if err != nil {
		return models.ListingPreview{}, err
	}
	return models.ListingPreview{
		ID:             listing.ID,
		Title:          listing.Title,
		Slug:           listing.Slug,
		Price:          listing.Price,
		IsNegotiable:   listing.IsNegotiable,
		Region:         listing.Region,
		Department:     listing.Department,
		PrimaryImage:   s.media.ResolveURL(listing.PrimaryImageKey()),
		ViewsCount:     listing.ViewsCount,
		FavoritesCount: favoritesCount,
		IsFavorited:    isFavorited,
		CreatedAt:      listing.CreatedAt,
	}, nil
}
