package storage

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	_ "golang.org/x/image/webp"
)

var (
	ErrFileTooLarge = errors.New("file too large")
	ErrInvalidImage = errors.New("not a valid image")
)

const maxKeyLength = 100

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/bmp":  true,
	"image/tiff": true,
	"image/webp": true,
}

// Image is an uploaded file that decoded as a picture.
type Image struct {
	Data        []byte
	ContentType string
	Extension   string
}

// ReadImage loads fh fully and checks both its sniffed type and that it
// decodes.
func ReadImage(fh *multipart.FileHeader, maxSize int64) (*Image, error) {
	if maxSize > 0 && fh.Size > maxSize {
		return nil, ErrFileTooLarge
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var r io.Reader = f
	if maxSize > 0 {
		r = io.LimitReader(f, maxSize+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if maxSize > 0 && int64(len(data)) > maxSize {
		return nil, ErrFileTooLarge
	}
	return DecodeImage(data)
}

func DecodeImage(data []byte) (*Image, error) {
	mt := mimetype.Detect(data)
	base := strings.SplitN(mt.String(), ";", 2)[0]
	if !allowedImageTypes[base] {
		return nil, ErrInvalidImage
	}
	if _, err := imaging.Decode(bytes.NewReader(data)); err != nil {
		return nil, ErrInvalidImage
	}
	return &Image{
		Data:        data,
		ContentType: base,
		Extension:   mt.Extension(),
	}, nil
}

// GenerateKey builds folder/<date>-<short id>-<name><ext>, short enough for
// a 100 character column.
func GenerateKey(folder string, filename string, ext string) string {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	name := slug.Make(base)
	if name == "" {
		name = "image"
	}
	prefix := fmt.Sprintf("%s/%s-%s-", strings.Trim(folder, "/"), time.Now().Format("20060102"), uuid.NewString()[:8])
	if room := maxKeyLength - len(prefix) - len(ext); room > 0 && len(name) > room {
		name = strings.TrimRight(name[:room], "-")
	}
	return prefix + name + ext
}
