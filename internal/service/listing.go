package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"rentaroom/internal/domain"
	"rentaroom/internal/repository"
	"rentaroom/internal/storage"
)

const errListingNotFound = "Listing not found"

type ListingServiceImpl struct {
	repo    repository.ListingRepository
	files   storage.FileStorage
	baseURL string
	logger  *zap.Logger
}

func NewListingService(repo repository.ListingRepository, files storage.FileStorage, baseURL string, logger *zap.Logger) *ListingServiceImpl {
	return &ListingServiceImpl{
		repo:    repo,
		files:   files,
		baseURL: baseURL,
		logger:  logger,
	}
}

func (s *ListingServiceImpl) List(ctx context.Context) ([]domain.Listing, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("ошибка получения списка объявлений", zap.Error(err))
		return nil, domain.Internal("failed to load listings")
	}

	listings := make([]domain.Listing, 0, len(records))
	for _, rec := range records {
		listings = append(listings, ToWireShape(rec, s.baseURL))
	}

	return listings, nil
}

func (s *ListingServiceImpl) GetByID(ctx context.Context, id int64) (*domain.Listing, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, s.lookupError(id, err)
	}

	listing := ToWireShape(*rec, s.baseURL)
	return &listing, nil
}

func (s *ListingServiceImpl) Stats(ctx context.Context) (*domain.ListingStats, error) {
	rows, err := s.repo.ListForStats(ctx)
	if err != nil {
		s.logger.Error("ошибка получения статистики объявлений", zap.Error(err))
		return nil, domain.Internal("failed to load listing stats")
	}

	return computeStats(rows), nil
}

func computeStats(rows []domain.ListingStatsRow) *domain.ListingStats {
	stats := &domain.ListingStats{
		Total:  len(rows),
		Cities: []string{},
		Types:  []string{},
	}

	seenCities := make(map[string]bool)
	seenTypes := make(map[string]bool)
	for i, row := range rows {
		if row.LocationEn != "" && !seenCities[row.LocationEn] {
			seenCities[row.LocationEn] = true
			stats.Cities = append(stats.Cities, row.LocationEn)
		}
		if row.TypeEn != "" && !seenTypes[row.TypeEn] {
			seenTypes[row.TypeEn] = true
			stats.Types = append(stats.Types, row.TypeEn)
		}

		if i == 0 || row.Price < stats.MinPrice {
			stats.MinPrice = row.Price
		}
		if i == 0 || row.Price > stats.MaxPrice {
			stats.MaxPrice = row.Price
		}
	}

	return stats
}

func (s *ListingServiceImpl) Create(ctx context.Context, input domain.ListingInput, upload *domain.UploadedFile) (*domain.Listing, error) {
	stored, err := s.storeUpload(ctx, upload)
	if err != nil {
		return nil, err
	}

	fields := ToStorageShape(input, stored)

	rec, err := newListingRecord(fields)
	if err != nil {
		s.discardUpload(ctx, stored)
		return nil, err
	}

	created, err := s.repo.Create(ctx, rec)
	if err != nil {
		s.discardUpload(ctx, stored)
		if errors.Is(err, domain.ErrInvalidValue) {
			return nil, domain.Validation(errInvalidValue)
		}
		s.logger.Error("ошибка создания объявления", zap.Error(err))
		return nil, domain.Internal("failed to create listing")
	}

	s.logger.Info("объявление создано", zap.Int64("id", created.ID))

	listing := ToWireShape(*created, s.baseURL)
	return &listing, nil
}

// newListingRecord validates creation fields and fills the optional ones with
// their defaults.
func newListingRecord(f domain.ListingFields) (domain.ListingRecord, error) {
	if isBlank(f.NameEn) {
		return domain.ListingRecord{}, domain.Validation("name.en is required")
	}
	if isBlank(f.LocationEn) {
		return domain.ListingRecord{}, domain.Validation("location.en is required")
	}
	if isBlank(f.TypeEn) {
		return domain.ListingRecord{}, domain.Validation("type.en is required")
	}
	if err := validateCount("rooms", f.Rooms, true); err != nil {
		return domain.ListingRecord{}, err
	}
	if err := validateCount("price", f.Price, true); err != nil {
		return domain.ListingRecord{}, err
	}

	return domain.ListingRecord{
		NameEn:     *f.NameEn,
		NameRu:     valueOr(f.NameRu),
		NameTj:     valueOr(f.NameTj),
		LocationEn: *f.LocationEn,
		LocationRu: valueOr(f.LocationRu),
		LocationTj: valueOr(f.LocationTj),
		TypeEn:     *f.TypeEn,
		TypeRu:     valueOr(f.TypeRu),
		TypeTj:     valueOr(f.TypeTj),
		Rooms:      f.Rooms.Value,
		Price:      f.Price.Value,
		About:      valueOr(f.About),
		Image:      valueOr(f.Image),
	}, nil
}

func (s *ListingServiceImpl) Update(ctx context.Context, id int64, input domain.ListingInput, upload *domain.UploadedFile) (*domain.Listing, error) {
	fields := ToStorageShape(input, nil)
	if fields.IsEmpty() && upload == nil {
		return nil, domain.Validation("No fields to update")
	}
	if err := validateCount("rooms", fields.Rooms, false); err != nil {
		return nil, err
	}
	if err := validateCount("price", fields.Price, false); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, s.lookupError(id, err)
	}

	if err := validateRequiredTexts(fields); err != nil {
		return nil, err
	}

	stored, err := s.storeUpload(ctx, upload)
	if err != nil {
		return nil, err
	}
	if stored != nil {
		fields = ToStorageShape(input, stored)
	}

	updated, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		s.discardUpload(ctx, stored)
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, domain.NotFound(errListingNotFound)
		}
		if errors.Is(err, domain.ErrInvalidValue) {
			return nil, domain.Validation(errInvalidValue)
		}
		s.logger.Error("ошибка обновления объявления", zap.Int64("id", id), zap.Error(err))
		return nil, domain.Internal("failed to update listing")
	}

	if stored != nil && existing.Image != updated.Image {
		s.removeImage(ctx, existing.Image)
	}

	listing := ToWireShape(*updated, s.baseURL)
	return &listing, nil
}

// validateRequiredTexts keeps the English texts of a stored listing non-empty
// on partial updates.
func validateRequiredTexts(f domain.ListingFields) error {
	if f.NameEn != nil && isBlank(f.NameEn) {
		return domain.Validation("name.en must not be empty")
	}
	if f.LocationEn != nil && isBlank(f.LocationEn) {
		return domain.Validation("location.en must not be empty")
	}
	if f.TypeEn != nil && isBlank(f.TypeEn) {
		return domain.Validation("type.en must not be empty")
	}
	return nil
}

func (s *ListingServiceImpl) Delete(ctx context.Context, id int64) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return s.lookupError(id, err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return domain.NotFound(errListingNotFound)
		}
		s.logger.Error("ошибка удаления объявления", zap.Int64("id", id), zap.Error(err))
		return domain.Internal("failed to delete listing")
	}

	s.removeImage(ctx, existing.Image)

	return nil
}

func (s *ListingServiceImpl) lookupError(id int64, err error) error {
	if errors.Is(err, domain.ErrRecordNotFound) {
		return domain.NotFound(errListingNotFound)
	}
	s.logger.Error("ошибка получения объявления", zap.Int64("id", id), zap.Error(err))
	return domain.Internal("failed to load listing")
}

func (s *ListingServiceImpl) storeUpload(ctx context.Context, upload *domain.UploadedFile) (*domain.StoredFile, error) {
	if upload == nil {
		return nil, nil
	}
	if s.files == nil {
		return nil, domain.Validation("image uploads are not available")
	}

	name, err := s.files.UploadFile(ctx, upload.Data, upload.Filename)
	if err != nil {
		if errors.Is(err, storage.ErrNotImage) || errors.Is(err, storage.ErrEmptyFile) {
			return nil, domain.Validation("image must be a non-empty image file")
		}
		s.logger.Error("ошибка сохранения изображения", zap.String("filename", upload.Filename), zap.Error(err))
		return nil, domain.Internal("failed to store image")
	}

	return &domain.StoredFile{Name: name}, nil
}

func (s *ListingServiceImpl) discardUpload(ctx context.Context, stored *domain.StoredFile) {
	if stored == nil {
		return
	}
	if err := s.files.DeleteFile(ctx, stored.Name); err != nil {
		s.logger.Warn("не удалось удалить неиспользуемое изображение", zap.String("name", stored.Name), zap.Error(err))
	}
}

// removeImage deletes an image that lives in our file storage. External URLs
// and data URIs are left alone.
func (s *ListingServiceImpl) removeImage(ctx context.Context, image string) {
	if s.files == nil || !isStoredUpload(image) {
		return
	}
	s.discardUpload(ctx, &domain.StoredFile{Name: strings.TrimPrefix(image, UploadPathPrefix)})
}

func validateCount(field string, n *domain.Number, required bool) error {
	if n == nil {
		if required {
			return domain.Validation(field + " must be a number")
		}
		return nil
	}
	if !n.Valid {
		return domain.Validation(field + " must be a number")
	}
	if n.Value < 0 {
		return domain.Validation(field + " must not be negative")
	}
	return nil
}

func isBlank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}

func valueOr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
