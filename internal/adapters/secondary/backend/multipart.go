package backend

import (
	"io"
	"mime/multipart"
	"path/filepath"
	"strconv"

	"printshop/internal/core/domain"
	"printshop/internal/core/ports/output"
)

// newUploadBody streams the model metadata and file as multipart/form-data.
// The caller must close the returned reader.
func newUploadBody(meta domain.ModelMetadata, file ports.UploadFile) (io.ReadCloser, string) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		pw.CloseWithError(writeUploadParts(mw, meta, file))
	}()

	return pr, mw.FormDataContentType()
}

func writeUploadParts(mw *multipart.Writer, meta domain.ModelMetadata, file ports.UploadFile) error {
	fields := [][2]string{
		{"name", meta.Name},
		{"description", meta.Description},
		{"category", string(meta.Category)},
		{"material_type", string(meta.MaterialType)},
		{"estimated_print_time", strconv.FormatFloat(meta.EstimatedPrintTime, 'f', -1, 64)},
		{"is_public", strconv.FormatBool(meta.IsPublic)},
	}
	if meta.Price != nil {
		fields = append(fields, [2]string{"price", strconv.FormatFloat(*meta.Price, 'f', -1, 64)})
	}
	for _, f := range fields {
		if err := mw.WriteField(f[0], f[1]); err != nil {
			return err
		}
	}

	part, err := mw.CreateFormFile("file", filepath.Base(file.Name))
	if err != nil {
		return err
	}
	if file.Content != nil {
		if _, err := io.Copy(part, file.Content); err != nil {
			return err
		}
	}
	return mw.Close()
}
