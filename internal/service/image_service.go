package service

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif" // register GIF decoder
	"image/jpeg"
	_ "image/png" // register PNG decoder
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"yatube/internal/config"
	"yatube/internal/models"

	"github.com/chai2010/webp"
	"github.com/google/uuid"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register WebP decoder
)

const (
	// PostImagePrefix is the media-relative directory post images live under.
	PostImagePrefix = "posts"

	DefaultMediaDir        = "/tmp/yatube/media"
	DefaultMaxUploadSizeMB = 10
	ThumbnailMaxSize       = 256
	ThumbnailWebPQuality   = 70
)

// ImageUpload is the raw content of a submitted image attachment.
type ImageUpload struct {
	Filename    string
	ContentType string
	Content     []byte
}

// ImageService validates image attachments and writes them under the media
// directory with a posts/ prefix, plus a WebP thumbnail for listings.
type ImageService struct {
	mediaDir       string
	maxUploadBytes int64
}

// NewImageService returns an ImageService configured from cfg.
func NewImageService(cfg *config.Config) *ImageService {
	mediaDir := DefaultMediaDir
	if cfg != nil && cfg.MediaDir != "" {
		mediaDir = cfg.MediaDir
	}
	return &ImageService{
		mediaDir:       mediaDir,
		maxUploadBytes: int64(DefaultMaxUploadSizeMB) * 1024 * 1024,
	}
}

// Store validates and persists an uploaded image, returning its
// media-relative path ("posts/<name>"). Malformed content yields a
// VALIDATION_ERROR so the caller can re-render the form.
func (s *ImageService) Store(in ImageUpload) (string, error) {
	if len(in.Content) == 0 {
		return "", models.NewValidationError("No file uploaded")
	}
	if int64(len(in.Content)) > s.maxUploadBytes {
		return "", models.NewValidationError(fmt.Sprintf("File too large (max %dMB)", s.maxUploadBytes/(1024*1024)))
	}

	detectedType := http.DetectContentType(in.Content)
	if !strings.HasPrefix(detectedType, "image/") {
		return "", models.NewValidationError("Invalid image type")
	}

	decoded, format, err := image.Decode(bytes.NewReader(in.Content))
	if err != nil {
		return "", models.NewValidationError("Invalid image file")
	}

	name := uuid.NewString()
	rel := filepath.ToSlash(filepath.Join(PostImagePrefix, name+"."+extForFormat(format)))
	abs := filepath.Join(s.mediaDir, filepath.FromSlash(rel))

	if err := writeBytesToFile(abs, in.Content); err != nil {
		return "", models.NewInternalError(err)
	}

	// Listing thumbnail. Failure here is not fatal to the upload.
	thumbRel := filepath.ToSlash(filepath.Join(PostImagePrefix, "thumbs", name+".webp"))
	if thumb, encErr := encodeThumbnail(decoded); encErr == nil {
		_ = writeBytesToFile(filepath.Join(s.mediaDir, filepath.FromSlash(thumbRel)), thumb)
	}

	return rel, nil
}

// Remove deletes a previously stored image and its thumbnail. Used when an
// edit replaces the attachment.
func (s *ImageService) Remove(rel string) {
	if rel == "" {
		return
	}
	_ = os.Remove(filepath.Join(s.mediaDir, filepath.FromSlash(rel)))

	base := strings.TrimSuffix(filepath.Base(rel), filepath.Ext(rel))
	_ = os.Remove(filepath.Join(s.mediaDir, PostImagePrefix, "thumbs", base+".webp"))
}

func extForFormat(format string) string {
	switch format {
	case "jpeg":
		return "jpg"
	case "png", "gif", "webp":
		return format
	default:
		return "jpg"
	}
}

func encodeThumbnail(src image.Image) ([]byte, error) {
	scaled := resizeToFit(src, ThumbnailMaxSize, ThumbnailMaxSize)
	var buf bytes.Buffer
	if err := webp.Encode(&buf, scaled, &webp.Options{Quality: ThumbnailWebPQuality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func resizeToFit(src image.Image, maxW, maxH int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxW && h <= maxH {
		return src
	}

	scale := float64(maxW) / float64(w)
	if s := float64(maxH) / float64(h); s < scale {
		scale = s
	}
	dstW := int(float64(w) * scale)
	dstH := int(float64(h) * scale)
	if dstW < 1 {
		dstW = 1
	}
	if dstH < 1 {
		dstH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, dstW, dstH))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, b, xdraw.Over, nil)
	return dst
}

func writeBytesToFile(path string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, content, 0o644)
}

// encodeJPEG is kept for callers that need a JPEG rendition of a decoded
// image (seeding, tests).
func encodeJPEG(src image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, src, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
