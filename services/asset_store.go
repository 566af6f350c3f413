package services

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/cloudinary/cloudinary-go"
	"github.com/cloudinary/cloudinary-go/api/uploader"
)

// AssetKind selects the asset store resource type for a slot.
type AssetKind string

const (
	AssetImage AssetKind = "image"
	AssetVideo AssetKind = "video"
)

// UploadedAsset is the durable result of a successful upload. ThumbnailURL
// is set only for video assets, and may be empty when the store cannot
// derive one.
type UploadedAsset struct {
	URL          string
	ThumbnailURL string
	PublicID     string
}

// AssetStore is the remote asset collaborator. Upload and Delete are
// independent network calls; Delete is invoked best-effort by callers.
type AssetStore interface {
	Upload(ctx context.Context, content io.Reader, publicID, folder string, kind AssetKind) (*UploadedAsset, error)
	Delete(ctx context.Context, publicID string, kind AssetKind) error
}

// CloudinaryStore implements AssetStore against Cloudinary.
type CloudinaryStore struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinaryStore builds a store from the CLOUDINARY_URL environment.
func NewCloudinaryStore() (*CloudinaryStore, error) {
	cld, err := cloudinary.New()
	if err != nil {
		return nil, fmt.Errorf("cloudinary init error: %w", err)
	}
	cld.Config.URL.Secure = true
	return &CloudinaryStore{cld: cld}, nil
}

func (s *CloudinaryStore) Upload(ctx context.Context, content io.Reader, publicID, folder string, kind AssetKind) (*UploadedAsset, error) {
	resp, err := s.cld.Upload.Upload(ctx, content, uploader.UploadParams{
		PublicID:       publicID,
		Folder:         folder,
		ResourceType:   string(kind),
		UniqueFilename: false,
		Overwrite:      false,
	})
	if err != nil {
		return nil, err
	}
	if resp == nil || resp.SecureURL == "" {
		return nil, fmt.Errorf("upload returned empty response for %s", publicID)
	}

	asset := &UploadedAsset{
		URL:      resp.SecureURL,
		PublicID: resp.PublicID,
	}
	if kind == AssetVideo {
		asset.ThumbnailURL = videoThumbnailURL(resp.SecureURL)
	}
	return asset, nil
}

func (s *CloudinaryStore) Delete(ctx context.Context, publicID string, kind AssetKind) error {
	_, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: string(kind),
	})
	return err
}

// videoThumbnailURL derives the poster-frame URL Cloudinary serves when the
// delivery extension is swapped for an image one. Returns empty when the URL
// carries no extension to swap.
func videoThumbnailURL(videoURL string) string {
	slash := strings.LastIndex(videoURL, "/")
	dot := strings.LastIndex(videoURL, ".")
	if dot <= slash {
		return ""
	}
	return videoURL[:dot] + ".jpg"
}

// PublicIDFromURL recovers the durable asset identifier from a delivery URL:
// the path after the upload segment, minus the version prefix and the
// delivery extension. Returns empty for URLs not issued by the store.
func PublicIDFromURL(assetURL string) string {
	const marker = "/upload/"
	idx := strings.Index(assetURL, marker)
	if idx < 0 {
		return ""
	}
	path := assetURL[idx+len(marker):]

	// Strip the version segment (v<digits>/) when present.
	if strings.HasPrefix(path, "v") {
		if slash := strings.Index(path, "/"); slash > 1 {
			if isDigits(path[1:slash]) {
				path = path[slash+1:]
			}
		}
	}

	if dot := strings.LastIndex(path, "."); dot > strings.LastIndex(path, "/") {
		path = path[:dot]
	}
	return path
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
