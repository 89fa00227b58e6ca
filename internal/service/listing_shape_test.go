package service

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentaroom/internal/domain"
)

const testBaseURL = "http://localhost:3000"

func decodeInput(t *testing.T, body string) domain.ListingInput {
	t.Helper()
	var input domain.ListingInput
	require.NoError(t, json.Unmarshal([]byte(body), &input))
	return input
}

func TestToStorageShape_RoundTrip(t *testing.T) {
	input := decodeInput(t, `{
		"name": {"en": "Loft", "ru": "Лофт", "tj": "Лофт"},
		"location": {"en": "Dushanbe", "ru": "Душанбе", "tj": "Душанбе"},
		"type": {"en": "Apartment", "ru": "Квартира", "tj": "Хона"},
		"rooms": 2,
		"price": 350,
		"about": "Near the park"
	}`)

	rec, err := newListingRecord(ToStorageShape(input, nil))
	require.NoError(t, err)
	rec.ID = 7
	rec.CreatedAt = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	wire := ToWireShape(rec, testBaseURL)

	assert.Equal(t, domain.I18nText{En: "Loft", Ru: "Лофт", Tj: "Лофт"}, wire.Name)
	assert.Equal(t, domain.I18nText{En: "Dushanbe", Ru: "Душанбе", Tj: "Душанбе"}, wire.Location)
	assert.Equal(t, domain.I18nText{En: "Apartment", Ru: "Квартира", Tj: "Хона"}, wire.Type)
	assert.Equal(t, int64(2), wire.Rooms)
	assert.Equal(t, int64(350), wire.Price)
	assert.Equal(t, "Near the park", wire.About)
	assert.Equal(t, "", wire.Image)
	assert.Equal(t, int64(7), wire.ID)
}

func TestToStorageShape_PlainStringBroadcasts(t *testing.T) {
	fields := ToStorageShape(domain.ListingInput{"name": "Studio"}, nil)

	require.NotNil(t, fields.NameEn)
	require.NotNil(t, fields.NameRu)
	require.NotNil(t, fields.NameTj)
	assert.Equal(t, "Studio", *fields.NameEn)
	assert.Equal(t, "Studio", *fields.NameRu)
	assert.Equal(t, "Studio", *fields.NameTj)
}

func TestToStorageShape_EncodedObject(t *testing.T) {
	fields := ToStorageShape(domain.ListingInput{
		"location": `{"en":"Khujand","ru":"Худжанд"}`,
		"type":     `"quoted"`,
	}, nil)

	require.NotNil(t, fields.LocationEn)
	assert.Equal(t, "Khujand", *fields.LocationEn)
	assert.Equal(t, "Худжанд", *fields.LocationRu)
	assert.Nil(t, fields.LocationTj)

	// a JSON string is broadcast without its quotes
	require.NotNil(t, fields.TypeEn)
	assert.Equal(t, "quoted", *fields.TypeEn)
	assert.Equal(t, "quoted", *fields.TypeTj)
}

func TestToStorageShape_EncodedScalars(t *testing.T) {
	fields := ToStorageShape(domain.ListingInput{
		"name":     `"Loft"`,
		"location": `42`,
		"type":     `{"en":null,"ru":"Квартира"}`,
	}, nil)

	require.NotNil(t, fields.NameEn)
	assert.Equal(t, "Loft", *fields.NameEn)
	assert.Equal(t, "Loft", *fields.NameRu)

	require.NotNil(t, fields.LocationEn)
	assert.Equal(t, "42", *fields.LocationEn)

	assert.Nil(t, fields.TypeEn)
	require.NotNil(t, fields.TypeRu)
	assert.Equal(t, "Квартира", *fields.TypeRu)
}

func TestToStorageShape_FlatKeysOverrideNested(t *testing.T) {
	fields := ToStorageShape(domain.ListingInput{
		"name":   map[string]any{"en": "Nested", "ru": "Вложенный"},
		"nameEn": "Flat",
	}, nil)

	assert.Equal(t, "Flat", *fields.NameEn)
	assert.Equal(t, "Вложенный", *fields.NameRu)
}

func TestToStorageShape_OnlySuppliedKeys(t *testing.T) {
	fields := ToStorageShape(domain.ListingInput{"price": 900}, nil)

	require.NotNil(t, fields.Price)
	assert.Equal(t, domain.Number{Value: 900, Valid: true}, *fields.Price)
	assert.Nil(t, fields.Rooms)
	assert.Nil(t, fields.NameEn)
	assert.Nil(t, fields.About)
	assert.Nil(t, fields.Image)
	assert.False(t, fields.IsEmpty())

	assert.True(t, ToStorageShape(domain.ListingInput{}, nil).IsEmpty())
}

func TestToStorageShape_NumberCoercion(t *testing.T) {
	cases := []struct {
		raw  any
		want domain.Number
	}{
		{float64(3), domain.Number{Value: 3, Valid: true}},
		{"12", domain.Number{Value: 12, Valid: true}},
		{" 5 ", domain.Number{Value: 5, Valid: true}},
		{"", domain.Number{Value: 0, Valid: true}},
		{true, domain.Number{Value: 1, Valid: true}},
		{"abc", domain.Number{}},
		{float64(2.5), domain.Number{}},
		{map[string]any{}, domain.Number{}},
	}

	for _, tc := range cases {
		fields := ToStorageShape(domain.ListingInput{"rooms": tc.raw}, nil)
		require.NotNil(t, fields.Rooms)
		assert.Equal(t, tc.want, *fields.Rooms, "%v", tc.raw)
	}
}

func TestToStorageShape_ImagePrecedence(t *testing.T) {
	input := domain.ListingInput{"image": "https://cdn.example.com/a.jpg"}

	fields := ToStorageShape(input, &domain.StoredFile{Name: "listing_1.png"})
	assert.Equal(t, "uploads/listing_1.png", *fields.Image)

	fields = ToStorageShape(input, nil)
	assert.Equal(t, "https://cdn.example.com/a.jpg", *fields.Image)
}

func TestToStorageShape_NilAboutBecomesEmpty(t *testing.T) {
	fields := ToStorageShape(domain.ListingInput{"about": nil}, nil)
	require.NotNil(t, fields.About)
	assert.Equal(t, "", *fields.About)
}

func TestResolveImageURL(t *testing.T) {
	assert.Equal(t, "", ResolveImageURL("", testBaseURL))
	assert.Equal(t, "https://cdn.example.com/a.jpg", ResolveImageURL("https://cdn.example.com/a.jpg", testBaseURL))
	assert.Equal(t, "http://other.host/b.png", ResolveImageURL("http://other.host/b.png", testBaseURL))
	assert.Equal(t, "data:image/png;base64,AAAA", ResolveImageURL("data:image/png;base64,AAAA", testBaseURL))
	assert.Equal(t, "http://localhost:3000/uploads/x.png", ResolveImageURL("uploads/x.png", testBaseURL))
	assert.Equal(t, "http://localhost:3000/uploads/x.png", ResolveImageURL("/uploads/x.png", testBaseURL+"/"))
}

func TestToWireShape_KeepsExternalImages(t *testing.T) {
	for _, image := range []string{"https://cdn.example.com/a.jpg", "data:image/png;base64,AAAA"} {
		wire := ToWireShape(domain.ListingRecord{Image: image}, testBaseURL)
		assert.Equal(t, image, wire.Image)
	}
}
