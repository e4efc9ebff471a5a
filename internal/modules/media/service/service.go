package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"anoa.com/edapp/pkg/apperror"
	"anoa.com/edapp/pkg/logger"
	"anoa.com/edapp/pkg/storage"
	"go.uber.org/zap"
)

const MaxImageSize = 5 << 20

type MediaService interface {
	PutProfileImage(ctx context.Context, userID uint, file *multipart.FileHeader) error
	ProfileImageURL(ctx context.Context, userID uint) (string, error)
	DeleteProfileImage(ctx context.Context, userID uint) error
	PutOrgIcon(ctx context.Context, orgID uint, file *multipart.FileHeader) error
	OrgIconURL(ctx context.Context, orgID uint) (string, error)
}

type mediaService struct {
	store      storage.ObjectStorage
	presignTTL time.Duration
}

func NewMediaService(store storage.ObjectStorage, presignTTL time.Duration) MediaService {
	return &mediaService{
		store:      store,
		presignTTL: presignTTL,
	}
}

func (s *mediaService) PutProfileImage(ctx context.Context, userID uint, file *multipart.FileHeader) error {
	key := storage.ProfileImageKey(userID)
	if err := s.put(ctx, key, file); err != nil {
		return err
	}

	logger.Log.Info("profile image stored", zap.Uint("user_id", userID), zap.String("key", key))
	return nil
}

func (s *mediaService) ProfileImageURL(ctx context.Context, userID uint) (string, error) {
	return s.presign(ctx, storage.ProfileImageKey(userID))
}

func (s *mediaService) DeleteProfileImage(ctx context.Context, userID uint) error {
	if err := s.store.Delete(ctx, storage.ProfileImageKey(userID)); err != nil {
		return fmt.Errorf("%w: delete profile image: %v", apperror.ErrUpstream, err)
	}
	return nil
}

func (s *mediaService) PutOrgIcon(ctx context.Context, orgID uint, file *multipart.FileHeader) error {
	key := storage.OrgIconKey(orgID)
	if err := s.put(ctx, key, file); err != nil {
		return err
	}

	logger.Log.Info("organisation icon stored", zap.Uint("org_id", orgID), zap.String("key", key))
	return nil
}

func (s *mediaService) OrgIconURL(ctx context.Context, orgID uint) (string, error) {
	return s.presign(ctx, storage.OrgIconKey(orgID))
}

func (s *mediaService) put(ctx context.Context, key string, file *multipart.FileHeader) error {
	if file.Size > MaxImageSize {
		return fmt.Errorf("%w: image larger than %d bytes", apperror.ErrInvalidInput, MaxImageSize)
	}

	f, err := file.Open()
	if err != nil {
		return fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, MaxImageSize+1))
	if err != nil {
		return fmt.Errorf("read upload: %w", err)
	}
	if len(data) > MaxImageSize {
		return fmt.Errorf("%w: image larger than %d bytes", apperror.ErrInvalidInput, MaxImageSize)
	}

	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		return fmt.Errorf("%w: expected an image, got %s", apperror.ErrInvalidInput, contentType)
	}

	if err := s.store.Put(ctx, key, bytes.NewReader(data), contentType); err != nil {
		return fmt.Errorf("%w: store %s: %v", apperror.ErrUpstream, key, err)
	}
	return nil
}

func (s *mediaService) presign(ctx context.Context, key string) (string, error) {
	url, err := s.store.PresignGet(ctx, key, s.presignTTL)
	if err != nil {
		return "", fmt.Errorf("%w: presign %s: %v", apperror.ErrUpstream, key, err)
	}
	return url, nil
}
