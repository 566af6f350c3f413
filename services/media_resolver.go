package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"

	apperrors "catalog-service/common/errors"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"golang.org/x/sync/errgroup"
)

// Slot is one of the four media attachment positions on a product.
type Slot string

const (
	SlotMain   Slot = "main"
	SlotImage1 Slot = "image1"
	SlotImage2 Slot = "image2"
	SlotVideo  Slot = "video"
)

// Upload is an incoming file for one slot.
type Upload struct {
	Filename string
	Size     int64
	Content  io.Reader
}

// MediaSet holds the asset URLs currently attached to a product.
type MediaSet struct {
	Img            string
	Image1         string
	Image2         string
	Video          string
	VideoThumbnail string
}

// SupersededAsset identifies a previously attached asset that a fresh upload
// replaced. It must be deleted only after the new URLs are durably persisted.
type SupersededAsset struct {
	PublicID string
	Kind     AssetKind
}

// MediaChanges is the outcome of resolving a request's attachments: the new
// URL per uploaded slot, the derived video thumbnail, and the assets the
// uploads superseded.
type MediaChanges struct {
	URLs           map[Slot]string
	VideoThumbnail string
	Superseded     []SupersededAsset
}

// MediaLimits carries the per-kind size caps and extension allow-lists.
type MediaLimits struct {
	MaxImageSize    int64
	MaxVideoSize    int64
	ImageExtensions []string
	VideoExtensions []string
}

// DefaultMediaLimits mirrors the service defaults: 5MB images, 10MB videos.
func DefaultMediaLimits() MediaLimits {
	return MediaLimits{
		MaxImageSize:    5 * 1024 * 1024,
		MaxVideoSize:    10 * 1024 * 1024,
		ImageExtensions: []string{"jpg", "jpeg", "png", "webp"},
		VideoExtensions: []string{"mp4", "webm"},
	}
}

// Naming provides the inputs for derived asset names: the product name for
// the base file name and the category name for the folder.
type Naming struct {
	ProductName  string
	CategoryName string
}

// MediaResolver validates and uploads a request's attachments. All present
// files are validated before the first upload is attempted, and the uploads
// themselves run concurrently.
type MediaResolver struct {
	store  AssetStore
	limits MediaLimits
}

func NewMediaResolver(store AssetStore, limits MediaLimits) *MediaResolver {
	return &MediaResolver{store: store, limits: limits}
}

var slotSuffixes = map[Slot]string{
	SlotMain:   "",
	SlotImage1: "-image1",
	SlotImage2: "-image2",
	SlotVideo:  "-video",
}

func slotKind(s Slot) AssetKind {
	if s == SlotVideo {
		return AssetVideo
	}
	return AssetImage
}

// Resolve uploads every present slot and reports which existing assets were
// superseded. It never deletes anything itself; callers schedule deletions
// after the new record state is persisted.
func (r *MediaResolver) Resolve(ctx context.Context, existing MediaSet, files map[Slot]Upload, naming Naming) (*MediaChanges, error) {
	for s, f := range files {
		if err := r.validateFile(s, f); err != nil {
			return nil, err
		}
	}

	folder := slug.Make(naming.CategoryName)
	if folder == "" {
		folder = "products"
	}

	changes := &MediaChanges{URLs: make(map[Slot]string)}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	for s, f := range files {
		s, f := s, f
		g.Go(func() error {
			asset, err := r.store.Upload(gctx, f.Content, assetName(naming.ProductName, s), folder, slotKind(s))
			if err != nil {
				if errors.Is(err, context.DeadlineExceeded) {
					return apperrors.DependencyTimeout(err)
				}
				return apperrors.UploadFailed(err)
			}
			mu.Lock()
			defer mu.Unlock()
			changes.URLs[s] = asset.URL
			if s == SlotVideo {
				// Missing thumbnail degrades the slot, never fails it.
				changes.VideoThumbnail = asset.ThumbnailURL
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for s, old := range map[Slot]string{
		SlotMain:   existing.Img,
		SlotImage1: existing.Image1,
		SlotImage2: existing.Image2,
		SlotVideo:  existing.Video,
	} {
		if old == "" {
			continue
		}
		if _, uploaded := changes.URLs[s]; !uploaded {
			continue
		}
		if publicID := PublicIDFromURL(old); publicID != "" {
			changes.Superseded = append(changes.Superseded, SupersededAsset{
				PublicID: publicID,
				Kind:     slotKind(s),
			})
		}
	}

	return changes, nil
}

func (r *MediaResolver) validateFile(s Slot, f Upload) error {
	maxSize := r.limits.MaxImageSize
	allowed := r.limits.ImageExtensions
	if slotKind(s) == AssetVideo {
		maxSize = r.limits.MaxVideoSize
		allowed = r.limits.VideoExtensions
	}

	if f.Size > maxSize {
		return apperrors.MediaValidation(fmt.Sprintf(
			"%s file size exceeds limit (%dMB)", s, maxSize/(1024*1024)))
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(f.Filename), "."))
	for _, a := range allowed {
		if ext == a {
			return nil
		}
	}
	return apperrors.MediaValidation(fmt.Sprintf(
		"invalid %s extension %q, allowed: %s", s, ext, strings.Join(allowed, ", ")))
}

// assetName derives a collision-free public id: slugified product name, slot
// suffix, and a short uniqueness token so re-uploads never overwrite.
func assetName(productName string, s Slot) string {
	base := slug.Make(productName + slotSuffixes[s])
	token := strings.Split(uuid.NewString(), "-")[0]
	return base + "-" + token
}
