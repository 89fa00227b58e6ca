package service

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"rentaroom/internal/domain"
)

// UploadPathPrefix is prepended to stored file names in listing records.
const UploadPathPrefix = "uploads/"

var languages = [...]string{"en", "ru", "tj"}

// ToStorageShape converts a wire-shaped listing body into the flat storage
// fields. Only supplied keys populate the result, so the same output serves
// creation and partial updates. A stored upload takes precedence over any
// string image in the body. It never fails: malformed multilingual input is
// broadcast to all languages and failed numeric coercion is reported through
// Number.Valid.
func ToStorageShape(input domain.ListingInput, file *domain.StoredFile) domain.ListingFields {
	var out domain.ListingFields

	name := decodeLocalized(ParseLocalized(input["name"]))
	location := decodeLocalized(ParseLocalized(input["location"]))
	kind := decodeLocalized(ParseLocalized(input["type"]))

	out.NameEn, out.NameRu, out.NameTj = name["en"], name["ru"], name["tj"]
	out.LocationEn, out.LocationRu, out.LocationTj = location["en"], location["ru"], location["tj"]
	out.TypeEn, out.TypeRu, out.TypeTj = kind["en"], kind["ru"], kind["tj"]

	// Flat per-language keys win over the nested objects.
	flat := []struct {
		key string
		dst **string
	}{
		{"nameEn", &out.NameEn}, {"nameRu", &out.NameRu}, {"nameTj", &out.NameTj},
		{"locationEn", &out.LocationEn}, {"locationRu", &out.LocationRu}, {"locationTj", &out.LocationTj},
		{"typeEn", &out.TypeEn}, {"typeRu", &out.TypeRu}, {"typeTj", &out.TypeTj},
	}
	for _, f := range flat {
		if s, ok := textValue(input[f.key]); ok {
			*f.dst = &s
		}
	}

	if raw, ok := input["rooms"]; ok {
		n := toNumber(raw)
		out.Rooms = &n
	}
	if raw, ok := input["price"]; ok {
		n := toNumber(raw)
		out.Price = &n
	}

	if raw, ok := input["about"]; ok {
		about, _ := textValue(raw)
		out.About = &about
	}

	if file != nil {
		image := UploadPathPrefix + file.Name
		out.Image = &image
	} else if raw, ok := input["image"]; ok {
		image, _ := textValue(raw)
		out.Image = &image
	}

	return out
}

// ParseLocalized classifies a submitted multilingual value.
func ParseLocalized(raw any) domain.LocalizedValue {
	switch v := raw.(type) {
	case map[string]any:
		return domain.LocalizedValue{Kind: domain.LocalizedObject, Object: v}
	case string:
		if v == "" {
			return domain.LocalizedValue{}
		}
		return domain.LocalizedValue{Kind: domain.LocalizedEncoded, Encoded: v}
	default:
		return domain.LocalizedValue{}
	}
}

func decodeLocalized(v domain.LocalizedValue) map[string]*string {
	var obj map[string]any

	switch v.Kind {
	case domain.LocalizedObject:
		obj = v.Object
	case domain.LocalizedEncoded:
		s := v.Encoded
		var decoded any
		if err := json.Unmarshal([]byte(v.Encoded), &decoded); err == nil {
			switch d := decoded.(type) {
			case map[string]any:
				obj = d
			case string:
				s = d
			}
		}
		if obj == nil {
			return map[string]*string{"en": &s, "ru": &s, "tj": &s}
		}
	default:
		return map[string]*string{}
	}

	out := make(map[string]*string, len(languages))
	for _, lang := range languages {
		if s, ok := textValue(obj[lang]); ok {
			out[lang] = &s
		}
	}
	return out
}

// textValue renders a scalar the way it was typed by the client.
// A nil value is reported as absent.
func textValue(raw any) (string, bool) {
	switch v := raw.(type) {
	case nil:
		return "", false
	case string:
		return v, true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case bool:
		return strconv.FormatBool(v), true
	case json.Number:
		return v.String(), true
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return "", false
		}
		return string(b), true
	}
}

func toNumber(raw any) domain.Number {
	var f float64

	switch v := raw.(type) {
	case nil:
		return domain.Number{Valid: true}
	case float64:
		f = v
	case int:
		return domain.Number{Value: int64(v), Valid: true}
	case int64:
		return domain.Number{Value: v, Valid: true}
	case bool:
		if v {
			return domain.Number{Value: 1, Valid: true}
		}
		return domain.Number{Valid: true}
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return domain.Number{}
		}
		f = parsed
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return domain.Number{Valid: true}
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return domain.Number{}
		}
		f = parsed
	default:
		return domain.Number{}
	}

	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return domain.Number{}
	}
	if f > math.MaxInt64 || f < math.MinInt64 {
		return domain.Number{}
	}
	return domain.Number{Value: int64(f), Valid: true}
}

// ToWireShape rebuilds the nested multilingual objects and resolves the image
// reference against baseURL.
func ToWireShape(rec domain.ListingRecord, baseURL string) domain.Listing {
	return domain.Listing{
		ID:        rec.ID,
		Name:      domain.I18nText{En: rec.NameEn, Ru: rec.NameRu, Tj: rec.NameTj},
		Location:  domain.I18nText{En: rec.LocationEn, Ru: rec.LocationRu, Tj: rec.LocationTj},
		Type:      domain.I18nText{En: rec.TypeEn, Ru: rec.TypeRu, Tj: rec.TypeTj},
		Rooms:     rec.Rooms,
		Price:     rec.Price,
		About:     rec.About,
		Image:     ResolveImageURL(rec.Image, baseURL),
		CreatedAt: rec.CreatedAt,
	}
}

// ResolveImageURL returns absolute URLs and data URIs unchanged and prefixes
// storage-relative paths with baseURL.
func ResolveImageURL(image, baseURL string) string {
	if image == "" {
		return ""
	}
	if strings.HasPrefix(image, "http") || strings.HasPrefix(image, "data:") {
		return image
	}
	return strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(image, "/")
}

// isStoredUpload reports whether image points at a file in our file storage.
func isStoredUpload(image string) bool {
	return strings.HasPrefix(image, UploadPathPrefix)
}
