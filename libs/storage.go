package libs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// ObjectStorage is the storage surface the controllers use: upload an object
// under a path, delete it by stored path, recover a path from a legacy
// public URL.
type ObjectStorage interface {
	UploadImage(ctx context.Context, file io.Reader, objectPath string) (url, storedPath string, err error)
	UploadFile(ctx context.Context, file io.Reader, objectPath string) (url, storedPath string, err error)
	Delete(ctx context.Context, storedPath string) error
	PathFromURL(publicURL string) string
}

// StorageService stores objects in Cloudinary under a single root folder
// (the "bucket"). Image uploads are re-encoded server-side to webp at
// quality 60.
type StorageService struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewStorageService(folder string) (*StorageService, error) {
	cloudName := os.Getenv("CLOUDINARY_CLOUD_NAME")
	apiKey := os.Getenv("CLOUDINARY_API_KEY")
	apiSecret := os.Getenv("CLOUDINARY_API_SECRET")

	var (
		cld *cloudinary.Cloudinary
		err error
	)
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		cldURL := os.Getenv("CLOUDINARY_URL")
		if cldURL == "" {
			return nil, errors.New("cloudinary credentials not configured")
		}
		cld, err = cloudinary.NewFromURL(cldURL)
	} else {
		cld, err = cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}

	return &StorageService{cld: cld, folder: folder}, nil
}

func (s *StorageService) UploadImage(ctx context.Context, file io.Reader, objectPath string) (string, string, error) {
	return s.upload(ctx, file, objectPath, "q_60/f_webp")
}

// UploadFile stores the object as-is, without re-encoding.
func (s *StorageService) UploadFile(ctx context.Context, file io.Reader, objectPath string) (string, string, error) {
	return s.upload(ctx, file, objectPath, "")
}

func (s *StorageService) upload(ctx context.Context, file io.Reader, objectPath, transformation string) (string, string, error) {
	publicID := s.folder + "/" + strings.TrimSuffix(objectPath, path.Ext(objectPath))

	resp, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		PublicID:       publicID,
		ResourceType:   "image",
		Overwrite:      api.Bool(true),
		Transformation: transformation,
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to upload to storage: %w", err)
	}

	url := resp.SecureURL
	if url == "" {
		url = resp.URL
	}
	if url == "" {
		return "", "", errors.New("storage returned no public URL")
	}
	return url, resp.PublicID, nil
}

func (s *StorageService) Delete(ctx context.Context, storedPath string) error {
	if storedPath == "" {
		return nil
	}

	result, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     storedPath,
		ResourceType: "image",
	})
	if err != nil {
		return fmt.Errorf("failed to delete from storage: %w", err)
	}
	if result.Result != "ok" && result.Result != "not found" {
		return fmt.Errorf("storage deletion failed: %s", result.Result)
	}
	return nil
}

// PathFromURL recovers a stored path from a public URL for legacy records
// that predate the image_path column. It locates the root folder segment and
// takes everything from it on, minus the delivery extension. Returns "" when
// the segment is absent, in which case deletion is skipped.
func (s *StorageService) PathFromURL(publicURL string) string {
	parts := strings.Split(publicURL, "/")
	for i, part := range parts {
		if part == s.folder {
			storedPath := strings.Join(parts[i:], "/")
			return strings.TrimSuffix(storedPath, path.Ext(storedPath))
		}
	}
	return ""
}
