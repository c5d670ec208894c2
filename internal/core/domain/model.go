package domain

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

type Material string

const (
	MaterialPLA   Material = "PLA"
	MaterialABS   Material = "ABS"
	MaterialPETG  Material = "PETG"
	MaterialTPU   Material = "TPU"
	MaterialWood  Material = "Wood"
	MaterialMetal Material = "Metal"
)

var Materials = []Material{MaterialPLA, MaterialABS, MaterialPETG, MaterialTPU, MaterialWood, MaterialMetal}

func (m Material) Valid() bool {
	for _, v := range Materials {
		if m == v {
			return true
		}
	}
	return false
}

// Category values are the wire values stored by the backend.
type Category string

const (
	CategoryAll        Category = ""
	CategoryToys       Category = "Игрушки"
	CategoryDecor      Category = "Декор"
	CategoryTools      Category = "Инструменты"
	CategoryJewelry    Category = "Украшения"
	CategorySpareParts Category = "Запчасти"
	CategoryPrototypes Category = "Прототипы"
	CategoryEducation  Category = "Образование"
	CategoryMedicine   Category = "Медицина"
	CategoryOther      Category = "Другое"

	// AllCategoriesLabel is the chip label older clients used as a filter value.
	AllCategoriesLabel = "Все категории"
)

var Categories = []Category{
	CategoryToys, CategoryDecor, CategoryTools, CategoryJewelry, CategorySpareParts,
	CategoryPrototypes, CategoryEducation, CategoryMedicine, CategoryOther,
}

// ParseCategory maps user input to a concrete category or CategoryAll.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == AllCategoriesLabel {
		return CategoryAll, nil
	}
	for _, c := range Categories {
		if strings.EqualFold(s, string(c)) {
			return c, nil
		}
	}
	return CategoryAll, fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

func (c Category) Concrete() bool {
	return c != CategoryAll
}

// Model3D is the catalog projection of an uploaded model.
type Model3D struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Description        string    `json:"description"`
	Category           Category  `json:"category"`
	MaterialType       Material  `json:"material_type"`
	EstimatedPrintTime float64   `json:"estimated_print_time"`
	Price              *float64  `json:"price"`
	OwnerName          string    `json:"owner_name"`
	Likes              int       `json:"likes"`
	Downloads          int       `json:"downloads"`
	CreatedAt          Timestamp `json:"created_at"`
}

type ModelDetails struct {
	Model3D
	FileData   string `json:"file_data"`
	FileFormat string `json:"file_format"`
	IsPublic   *bool  `json:"is_public,omitempty"`
}

// File decodes the base64 payload. Details from servers that keep files on
// disk carry no payload and return nil.
func (d *ModelDetails) File() ([]byte, error) {
	if d.FileData == "" {
		return nil, nil
	}
	data, err := base64.StdEncoding.DecodeString(d.FileData)
	if err != nil {
		return nil, fmt.Errorf("decode model file: %w", err)
	}
	return data, nil
}

// ModelMetadata is the validated form part of an upload.
type ModelMetadata struct {
	Name               string
	Description        string
	Category           Category
	MaterialType       Material
	EstimatedPrintTime float64
	Price              *float64
	IsPublic           bool
}

type UploadResult struct {
	Message      string `json:"message"`
	ModelID      string `json:"model_id"`
	PointsEarned int    `json:"points_earned"`
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// Timestamp accepts ISO-8601 values with or without a zone offset.
// Values without an offset are taken as UTC.
type Timestamp struct {
	time.Time
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	s := string(b)
	if s == "null" || s == `""` {
		t.Time = time.Time{}
		return nil
	}
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("timestamp: expected string, got %s", s)
	}
	s = s[1 : len(s)-1]
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed.UTC()
			return nil
		}
	}
	return fmt.Errorf("timestamp: unsupported format %q", s)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.UTC().Format(time.RFC3339Nano) + `"`), nil
}
