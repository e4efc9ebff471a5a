package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

type cloudinaryStorage struct {
	cld    *cloudinary.Cloudinary
	folder string
}

// NewCloudinaryStorage creates a Cloudinary-backed ObjectStorage.
// It expects CLOUDINARY_URL to be configured in the environment
// (see Cloudinary Go SDK docs). cloudName overrides the cloud from the URL.
func NewCloudinaryStorage(cloudName, folder string) (ObjectStorage, error) {
	// cloudinary.New() automatically reads CLOUDINARY_URL from environment if present.
	cld, err := cloudinary.New()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary client: %w", err)
	}

	// Ensure HTTPS URLs by default.
	cld.Config.URL.Secure = true

	if cloudName != "" {
		cld.Config.Cloud.CloudName = cloudName
	}

	return &cloudinaryStorage{cld: cld, folder: folder}, nil
}

func (s *cloudinaryStorage) Put(ctx context.Context, key string, r io.Reader, _ string) error {
	if s == nil || s.cld == nil {
		return fmt.Errorf("cloudinary storage is not initialized")
	}

	params := uploader.UploadParams{
		Folder:         s.folder,
		PublicID:       publicID(key),
		UniqueFilename: api.Bool(false),
		Overwrite:      api.Bool(true),
		Invalidate:     api.Bool(true),
	}

	resp, err := s.cld.Upload.Upload(ctx, r, params)
	if err != nil {
		return fmt.Errorf("failed to upload image to cloudinary: %w", err)
	}
	if resp.Error.Message != "" {
		return fmt.Errorf("cloudinary upload failed: %s", resp.Error.Message)
	}

	return nil
}

// PresignGet returns the signed delivery URL. Cloudinary URLs do not expire
// on the free tier, so ttl is not enforced here.
func (s *cloudinaryStorage) PresignGet(_ context.Context, key string, _ time.Duration) (string, error) {
	img, err := s.cld.Image(s.fullPublicID(key))
	if err != nil {
		return "", fmt.Errorf("failed to build cloudinary url: %w", err)
	}
	img.Config.URL.SignURL = true

	url, err := img.String()
	if err != nil {
		return "", fmt.Errorf("failed to build cloudinary url: %w", err)
	}
	return url, nil
}

func (s *cloudinaryStorage) Delete(ctx context.Context, key string) error {
	if s == nil || s.cld == nil {
		return fmt.Errorf("cloudinary storage is not initialized")
	}

	// Invalidate: true helps to clear CDN cache
	resp, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:   s.fullPublicID(key),
		Invalidate: api.Bool(true),
	})
	if err != nil {
		return fmt.Errorf("failed to delete image from cloudinary: %w", err)
	}

	if resp.Result != "ok" && resp.Result != "not found" {
		return fmt.Errorf("cloudinary destroy api returned result: %s", resp.Result)
	}

	return nil
}

func (s *cloudinaryStorage) fullPublicID(key string) string {
	if s.folder == "" {
		return publicID(key)
	}
	return s.folder + "/" + publicID(key)
}

// publicID maps an object key onto Cloudinary's allowed public ID alphabet.
func publicID(key string) string {
	return strings.NewReplacer(":", "-", " ", "_").Replace(key)
}
