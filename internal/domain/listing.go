package domain

import (
	"time"
)

// I18nText is a string in the three supported languages.
type I18nText struct {
	En string `json:"en"`
	Ru string `json:"ru"`
	Tj string `json:"tj"`
}

// Listing is the wire shape returned by the API.
type Listing struct {
	ID        int64     `json:"id"`
	Name      I18nText  `json:"name"`
	Location  I18nText  `json:"location"`
	Type      I18nText  `json:"type"`
	Rooms     int64     `json:"rooms"`
	Price     int64     `json:"price"`
	About     string    `json:"about"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"createdAt"`
}

// ListingRecord is the flat storage shape. Image holds the raw reference.
type ListingRecord struct {
	ID         int64
	NameEn     string
	NameRu     string
	NameTj     string
	LocationEn string
	LocationRu string
	LocationTj string
	TypeEn     string
	TypeRu     string
	TypeTj     string
	Rooms      int64
	Price      int64
	About      string
	Image      string
	CreatedAt  time.Time
}

// Number is a coerced numeric input. Valid is false when coercion failed.
type Number struct {
	Value int64
	Valid bool
}

// ListingFields is a partial storage shape: nil means the field was not supplied.
type ListingFields struct {
	NameEn     *string
	NameRu     *string
	NameTj     *string
	LocationEn *string
	LocationRu *string
	LocationTj *string
	TypeEn     *string
	TypeRu     *string
	TypeTj     *string
	Rooms      *Number
	Price      *Number
	About      *string
	Image      *string
}

func (f ListingFields) IsEmpty() bool {
	return f.NameEn == nil && f.NameRu == nil && f.NameTj == nil &&
		f.LocationEn == nil && f.LocationRu == nil && f.LocationTj == nil &&
		f.TypeEn == nil && f.TypeRu == nil && f.TypeTj == nil &&
		f.Rooms == nil && f.Price == nil && f.About == nil && f.Image == nil
}

// ListingInput is the raw request body, decoded either from JSON or from a
// multipart form.
type ListingInput map[string]any

type LocalizedKind int

const (
	LocalizedAbsent LocalizedKind = iota
	LocalizedObject
	LocalizedEncoded
)

// LocalizedValue is one multilingual field as submitted: either a nested object
// or a string that may carry JSON.
type LocalizedValue struct {
	Kind    LocalizedKind
	Object  map[string]any
	Encoded string
}

// UploadedFile is a file received by the transport layer, not yet stored.
type UploadedFile struct {
	Filename string
	Data     []byte
}

// StoredFile describes a file already written to file storage.
type StoredFile struct {
	Name string
}

type ListingStats struct {
	Total    int      `json:"total"`
	Cities   []string `json:"cities"`
	Types    []string `json:"types"`
	MinPrice int64    `json:"minPrice"`
	MaxPrice int64    `json:"maxPrice"`
}

// ListingStatsRow is the projection used to compute ListingStats.
type ListingStatsRow struct {
	LocationEn string
	TypeEn     string
	Price      int64
}
