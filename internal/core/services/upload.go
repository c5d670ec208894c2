package services

import (
	"context"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"

	"printshop/internal/core/domain"
	"printshop/internal/core/ports/output"
	"printshop/internal/core/validation"
)

type UploadService struct {
	api  ports.MarketplaceAPI
	auth *AuthService
}

func NewUploadService(api ports.MarketplaceAPI, auth *AuthService) *UploadService {
	return &UploadService{api: api, auth: auth}
}

// Upload validates the file and form, then publishes the model. file is nil
// when the user has not picked one yet.
func (s *UploadService) Upload(ctx context.Context, form validation.UploadForm, file *ports.UploadFile) (*domain.UploadResult, error) {
	if file != nil {
		if err := validation.ValidateFileSelection(file.Name, file.Size); err != nil {
			return nil, err
		}
		if strings.TrimSpace(form.Name) == "" {
			form.Name = NameFromFile(file.Name)
		}
	}

	meta, err := validation.ValidateUploadForm(form, file != nil)
	if err != nil {
		return nil, err
	}

	token, err := s.auth.Token(ctx)
	if err != nil {
		return nil, err
	}

	res, err := s.api.UploadModel(ctx, token, meta, *file)
	if err != nil {
		log.WithError(err).WithFields(log.Fields{
			"file":   file.Name,
			"size":   file.Size,
			"format": validation.FileFormat(file.Name),
		}).Warn("model upload failed")
		return nil, s.auth.handleAuthError(ctx, "upload", token, err)
	}

	log.WithFields(log.Fields{
		"model_id":      res.ModelID,
		"points_earned": res.PointsEarned,
	}).Info("model uploaded")
	return res, nil
}

// NameFromFile derives a model name from the file name without its extension.
func NameFromFile(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
