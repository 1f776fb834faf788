package services

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/NguyenHongSon4/app-02/broker"
)

type UploadServiceInterface interface {
	SaveImage(file *multipart.FileHeader) (string, error)
}

// UploadService stores uploaded images under dir and names them after the
// upload time in milliseconds, keeping the original extension.
type UploadService struct {
	dir       string
	urlPrefix string
	clock     func() time.Time
	events    EventServiceInterface
}

func NewUploadService(dir, urlPrefix string, events EventServiceInterface) (*UploadService, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &UploadService{
		dir:       dir,
		urlPrefix: urlPrefix,
		clock:     time.Now,
		events:    events,
	}, nil
}

func (s *UploadService) Dir() string {
	return s.dir
}

func (s *UploadService) SetClock(clock func() time.Time) {
	s.clock = clock
}

// SaveImage writes the file and returns the public path it is served under.
// A name that is already taken is never overwritten; the timestamp is bumped
// until a free name is found.
func (s *UploadService) SaveImage(file *multipart.FileHeader) (string, error) {
	if file == nil {
		return "", ErrNoFile
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	ext := filepath.Ext(file.Filename)
	stamp := s.clock().UnixMilli()

	var (
		name string
		dst  *os.File
	)
	for {
		name = fmt.Sprintf("%d%s", stamp, ext)
		dst, err = os.OpenFile(filepath.Join(s.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, fs.ErrExist) {
			stamp++
			continue
		}
		if err != nil {
			return "", fmt.Errorf("failed to create %s: %w", name, err)
		}
		break
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(dst.Name())
		return "", fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("failed to write %s: %w", name, err)
	}

	imagePath := path.Join(s.urlPrefix, name)
	if s.events != nil {
		s.events.Publish(broker.ImageUploaded, "image", "create", "", map[string]interface{}{
			"imagePath": imagePath,
			"size":      file.Size,
		})
	}
	return imagePath, nil
}

var UploadServiceInstance UploadServiceInterface
