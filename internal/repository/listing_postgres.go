package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"rentaroom/internal/domain"
)

const listingColumns = `id, name_en, name_ru, name_tj, location_en, location_ru, location_tj,
	type_en, type_ru, type_tj, rooms, price, about, image, created_at`

type ListingRepo struct {
	db *pgxpool.Pool
}

func NewListingRepository(db *pgxpool.Pool) *ListingRepo {
	return &ListingRepo{
		db: db,
	}
}

func scanListing(row pgx.Row) (*domain.ListingRecord, error) {
	var l domain.ListingRecord
	err := row.Scan(
		&l.ID,
		&l.NameEn,
		&l.NameRu,
		&l.NameTj,
		&l.LocationEn,
		&l.LocationRu,
		&l.LocationTj,
		&l.TypeEn,
		&l.TypeRu,
		&l.TypeTj,
		&l.Rooms,
		&l.Price,
		&l.About,
		&l.Image,
		&l.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *ListingRepo) Create(ctx context.Context, l domain.ListingRecord) (*domain.ListingRecord, error) {
	query := `
		INSERT INTO listings (name_en, name_ru, name_tj, location_en, location_ru, location_tj,
			type_en, type_ru, type_tj, rooms, price, about, image)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING ` + listingColumns

	created, err := scanListing(r.db.QueryRow(ctx, query,
		l.NameEn, l.NameRu, l.NameTj,
		l.LocationEn, l.LocationRu, l.LocationTj,
		l.TypeEn, l.TypeRu, l.TypeTj,
		l.Rooms, l.Price, l.About, l.Image,
	))
	if err != nil {
		return nil, wrapError("ошибка создания объявления", err)
	}

	return created, nil
}

func (r *ListingRepo) GetByID(ctx context.Context, id int64) (*domain.ListingRecord, error) {
	query := `SELECT ` + listingColumns + ` FROM listings WHERE id = $1`

	l, err := scanListing(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, wrapError(fmt.Sprintf("ошибка получения объявления с id %d", id), err)
	}

	return l, nil
}

// Update writes only the supplied fields. Numbers must already be validated.
func (r *ListingRepo) Update(ctx context.Context, id int64, f domain.ListingFields) (*domain.ListingRecord, error) {
	b := newUpdateBuilder(id)

	strs := []struct {
		column string
		value  *string
	}{
		{"name_en", f.NameEn}, {"name_ru", f.NameRu}, {"name_tj", f.NameTj},
		{"location_en", f.LocationEn}, {"location_ru", f.LocationRu}, {"location_tj", f.LocationTj},
		{"type_en", f.TypeEn}, {"type_ru", f.TypeRu}, {"type_tj", f.TypeTj},
		{"about", f.About}, {"image", f.Image},
	}
	for _, s := range strs {
		if s.value != nil {
			b.set(s.column, *s.value)
		}
	}
	if f.Rooms != nil {
		b.set("rooms", f.Rooms.Value)
	}
	if f.Price != nil {
		b.set("price", f.Price.Value)
	}

	if b.empty() {
		return r.GetByID(ctx, id)
	}

	l, err := scanListing(r.db.QueryRow(ctx, b.query("listings", listingColumns), b.args...))
	if err != nil {
		return nil, wrapError("ошибка обновления объявления", err)
	}

	return l, nil
}

func (r *ListingRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM listings WHERE id = $1`, id)
	if err != nil {
		return wrapError("ошибка удаления объявления", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("объявление с id %d: %w", id, domain.ErrRecordNotFound)
	}

	return nil
}

func (r *ListingRepo) List(ctx context.Context) ([]domain.ListingRecord, error) {
	query := `SELECT ` + listingColumns + ` FROM listings ORDER BY created_at DESC, id DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ошибка запроса списка объявлений: %w", err)
	}
	defer rows.Close()

	listings := []domain.ListingRecord{}
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка чтения данных объявления: %w", err)
		}
		listings = append(listings, *l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка обработки результатов: %w", err)
	}

	return listings, nil
}

func (r *ListingRepo) ListForStats(ctx context.Context) ([]domain.ListingStatsRow, error) {
	rows, err := r.db.Query(ctx, `SELECT location_en, type_en, price FROM listings ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("ошибка запроса статистики объявлений: %w", err)
	}
	defer rows.Close()

	var result []domain.ListingStatsRow
	for rows.Next() {
		var row domain.ListingStatsRow
		if err := rows.Scan(&row.LocationEn, &row.TypeEn, &row.Price); err != nil {
			return nil, fmt.Errorf("ошибка чтения статистики объявлений: %w", err)
		}
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка обработки результатов: %w", err)
	}

	return result, nil
}
