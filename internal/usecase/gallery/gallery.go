package gallery

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/nail-salon/internal/audit"
	"github.com/BruksfildServices01/nail-salon/internal/httperr"
	"github.com/BruksfildServices01/nail-salon/internal/imaging"
	"github.com/BruksfildServices01/nail-salon/internal/models"
)

type Repository interface {
	Create(ctx context.Context, img *models.GalleryImage) error
	Get(ctx context.Context, id uint) (*models.GalleryImage, error)
	List(ctx context.Context, activeOnly bool) ([]models.GalleryImage, error)
	Save(ctx context.Context, img *models.GalleryImage) error
	Delete(ctx context.Context, id uint) error
}

type ObjectStore interface {
	Put(ctx context.Context, key, contentType string, body []byte) (string, error)
	Delete(ctx context.Context, key string) error
}

type Options struct {
	MaxWidth int
	Quality  float32
}

// Service manages gallery images. Uploads are normalized to WebP before they
// reach the bucket.
type Service struct {
	repo  Repository
	store ObjectStore
	opts  Options
	audit *audit.Dispatcher
	log   zerolog.Logger
}

func NewService(
	repo Repository,
	store ObjectStore,
	opts Options,
	audit *audit.Dispatcher,
	log zerolog.Logger,
) *Service {
	return &Service{repo: repo, store: store, opts: opts, audit: audit, log: log}
}

type UploadInput struct {
	Title     string
	SortOrder int
	Image     io.Reader
}

func (s *Service) Upload(ctx context.Context, in UploadInput, adminID *uint) (*models.GalleryImage, error) {
	if s.store == nil {
		return nil, httperr.ErrBusiness("storage_not_configured")
	}

	res, err := imaging.ToWebP(in.Image, s.opts.MaxWidth, s.opts.Quality)
	if err != nil {
		if errors.Is(err, imaging.ErrUnsupportedImage) {
			return nil, httperr.Validation("invalid_image")
		}
		return nil, err
	}

	key := fmt.Sprintf("gallery/%s.webp", uuid.NewString())
	url, err := s.store.Put(ctx, key, "image/webp", res.Data)
	if err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("gallery upload failed")
		return nil, httperr.Persistence(err)
	}

	img := &models.GalleryImage{
		Title:     strings.TrimSpace(in.Title),
		ImageURL:  url,
		ObjectKey: key,
		Width:     res.Width,
		Height:    res.Height,
		SortOrder: in.SortOrder,
		IsActive:  true,
	}
	if err := s.repo.Create(ctx, img); err != nil {
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			s.log.Warn().Err(delErr).Str("key", key).Msg("orphaned gallery object")
		}
		return nil, err
	}

	s.audit.Dispatch(audit.Event{
		AdminID:  adminID,
		Action:   "gallery_uploaded",
		Entity:   "gallery_image",
		EntityID: fmt.Sprint(img.ID),
	})
	return img, nil
}

func (s *Service) List(ctx context.Context, activeOnly bool) ([]models.GalleryImage, error) {
	return s.repo.List(ctx, activeOnly)
}

type UpdateInput struct {
	Title     *string
	SortOrder *int
	IsActive  *bool
}

func (s *Service) Update(ctx context.Context, id uint, in UpdateInput, adminID *uint) (*models.GalleryImage, error) {
	img, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		img.Title = strings.TrimSpace(*in.Title)
	}
	if in.SortOrder != nil {
		img.SortOrder = *in.SortOrder
	}
	if in.IsActive != nil {
		img.IsActive = *in.IsActive
	}

	if err := s.repo.Save(ctx, img); err != nil {
		return nil, err
	}

	s.audit.Dispatch(audit.Event{
		AdminID:  adminID,
		Action:   "gallery_updated",
		Entity:   "gallery_image",
		EntityID: fmt.Sprint(img.ID),
	})
	return img, nil
}

// Delete removes the row, then the object. A failed object delete is logged
// only; the image is already gone from the site.
func (s *Service) Delete(ctx context.Context, id uint, adminID *uint) error {
	img, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if s.store != nil && img.ObjectKey != "" {
		if err := s.store.Delete(ctx, img.ObjectKey); err != nil {
			s.log.Warn().Err(err).Str("key", img.ObjectKey).Msg("gallery object delete failed")
		}
	}

	s.audit.Dispatch(audit.Event{
		AdminID:  adminID,
		Action:   "gallery_deleted",
		Entity:   "gallery_image",
		EntityID: fmt.Sprint(id),
	})
	return nil
}
