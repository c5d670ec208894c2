package validation

import (
	"path/filepath"
	"strings"

	"printshop/internal/core/domain"
)

// MaxFileSize is the largest accepted model file: 50 MiB.
const MaxFileSize int64 = 50 * 1024 * 1024

var supportedFormats = map[string]bool{
	"stl":   true,
	"obj":   true,
	"3mf":   true,
	"gcode": true,
	"ply":   true,
}

type UploadForm struct {
	Name               string
	Description        string
	Category           string
	MaterialType       string
	EstimatedPrintTime string
	Price              string
	IsPublic           bool
}

func DefaultUploadForm() UploadForm {
	return UploadForm{
		Category:           string(domain.Categories[0]),
		MaterialType:       string(domain.MaterialPLA),
		EstimatedPrintTime: "2",
		IsPublic:           true,
	}
}

// FileFormat returns the lower-cased extension without the dot.
func FileFormat(filename string) string {
	ext := filepath.Ext(filename)
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// ValidateFileSelection accepts supported extensions (any case) up to
// MaxFileSize bytes inclusive.
func ValidateFileSelection(filename string, sizeBytes int64) error {
	if !supportedFormats[FileFormat(filename)] {
		return fail("file", MsgFileFormat)
	}
	if sizeBytes > MaxFileSize {
		return fail("file", MsgFileSize)
	}
	return nil
}

// ValidateUploadForm checks name, description, file presence, print time and
// the optional price, in that order.
func ValidateUploadForm(form UploadForm, hasSelectedFile bool) (domain.ModelMetadata, error) {
	if blank(form.Name) {
		return domain.ModelMetadata{}, fail("name", MsgModelName)
	}
	if blank(form.Description) {
		return domain.ModelMetadata{}, fail("description", MsgModelDescription)
	}
	if !hasSelectedFile {
		return domain.ModelMetadata{}, fail("file", MsgFileRequired)
	}

	printTime, ok := parseDecimal(form.EstimatedPrintTime)
	if !ok || printTime <= 0 || printTime > 100 {
		return domain.ModelMetadata{}, fail("estimated_print_time", MsgPrintTime)
	}

	var price *float64
	if !blank(form.Price) {
		p, ok := parseDecimal(form.Price)
		if !ok || p < 0 {
			return domain.ModelMetadata{}, fail("price", MsgNegativePrice)
		}
		price = &p
	}

	category, err := domain.ParseCategory(form.Category)
	if err != nil || !category.Concrete() {
		return domain.ModelMetadata{}, fail("category", MsgCategory)
	}

	material := domain.Material(form.MaterialType)
	if !material.Valid() {
		return domain.ModelMetadata{}, fail("material_type", MsgMaterial)
	}

	return domain.ModelMetadata{
		Name:               strings.TrimSpace(form.Name),
		Description:        strings.TrimSpace(form.Description),
		Category:           category,
		MaterialType:       material,
		EstimatedPrintTime: printTime,
		Price:              price,
		IsPublic:           form.IsPublic,
	}, nil
}
