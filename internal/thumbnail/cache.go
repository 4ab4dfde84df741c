package thumbnail

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/alnah/go-chathtml/internal/logging"
	"github.com/disintegration/imaging"
	"github.com/sirupsen/logrus"
)

// Thumbnail geometry. Images taller than MaxHeight after scaling to Width
// are fit-cropped to Width x MaxHeight.
const (
	Width     = 350
	MaxHeight = 470
)

// DefaultDir is the cache directory used when none is configured.
const DefaultDir = "cache"

// cacheSuffix is appended to the source file name to build the output name.
const cacheSuffix = "_cache.png"

const dirPermissions = 0o750

// Sentinel errors for thumbnail operations.
var (
	ErrCacheDir       = errors.New("failed to prepare cache directory")
	ErrSourceImage    = errors.New("failed to read source image")
	ErrWriteThumbnail = errors.New("failed to write thumbnail")
)

// entry records the source mtime a thumbnail was generated from.
type entry struct {
	mtime time.Time
	path  string
}

// Option configures a Cache.
type Option func(*Cache)

// WithImager replaces the resize implementation.
func WithImager(im Imager) Option {
	return func(c *Cache) {
		c.imager = im
	}
}

// WithLogger sets the logger used for regeneration traces.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Cache) {
		c.log = l
	}
}

// Cache maps source image paths to resized PNG renditions on disk.
// A rendition is rebuilt whenever the source modification time differs from
// the one recorded at generation time. The index lives in memory only, so a
// new Cache regenerates each path once on first access.
//
// The index is safe for concurrent use. Regeneration is not serialized:
// concurrent calls for the same path may both rebuild the file, and the last
// write wins.
type Cache struct {
	dir    string
	imager Imager
	log    logrus.FieldLogger

	mu    sync.Mutex
	index map[string]entry
}

// New creates a Cache writing into dir. An empty dir selects DefaultDir.
// The directory is created lazily on first Get.
func New(dir string, opts ...Option) *Cache {
	if dir == "" {
		dir = DefaultDir
	}

	c := &Cache{
		dir:    dir,
		imager: LanczosImager{},
		log:    logging.Discard(),
		index:  make(map[string]entry),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Dir returns the cache directory.
func (c *Cache) Dir() string {
	return c.dir
}

// Get returns the path of the cached thumbnail for the image at path,
// regenerating it when the source has changed since the last call.
func (c *Cache) Get(path string) (string, error) {
	if err := os.MkdirAll(c.dir, dirPermissions); err != nil {
		return "", fmt.Errorf("%w: %v", ErrCacheDir, err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSourceImage, err)
	}
	mtime := info.ModTime()

	c.mu.Lock()
	cached, ok := c.index[path]
	c.mu.Unlock()

	if ok && cached.mtime.Equal(mtime) {
		return cached.path, nil
	}

	outPath := c.outputPath(path)
	c.log.WithFields(logrus.Fields{
		"source": path,
		"output": outPath,
		"stale":  ok,
	}).Debug("regenerating thumbnail")

	if err := WriteThumbnail(path, outPath, c.imager); err != nil {
		return "", err
	}

	c.mu.Lock()
	c.index[path] = entry{mtime: mtime, path: outPath}
	c.mu.Unlock()

	return outPath, nil
}

// outputPath builds <dir>/<source file name>_cache.png.
func (c *Cache) outputPath(path string) string {
	return filepath.ToSlash(filepath.Join(c.dir, filepath.Base(path)+cacheSuffix))
}

// WriteThumbnail decodes src, applies the thumbnail transform, and writes
// the result to dst as an opaque RGB PNG. A nil imager uses LanczosImager.
func WriteThumbnail(src, dst string, imager Imager) error {
	if imager == nil {
		imager = LanczosImager{}
	}

	img, err := imaging.Open(src)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSourceImage, err)
	}

	thumb := Make(img, imager)

	if err := imaging.Save(thumb, dst); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteThumbnail, err)
	}
	return nil
}

// Make scales img to Width, caps tall results at MaxHeight with a centered
// fit, and drops the alpha channel.
func Make(img image.Image, imager Imager) image.Image {
	img = imager.ResizeProportional(img, Width)
	if img.Bounds().Dy() > MaxHeight {
		img = imager.FitCrop(img, Width, MaxHeight)
	}
	return dropAlpha(img)
}

// dropAlpha keeps the color channels and marks every pixel opaque, which
// the PNG encoder then writes as plain RGB.
func dropAlpha(img image.Image) *image.NRGBA {
	out := imaging.Clone(img)
	for i := 3; i < len(out.Pix); i += 4 {
		out.Pix[i] = 0xff
	}
	return out
}
