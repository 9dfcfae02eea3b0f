// Package storage keeps uploaded media behind a small key based interface.
package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Storage saves objects by key and resolves them to URLs. URLs from the
// local backend are host relative.
type Storage interface {
	Save(ctx context.Context, key string, r io.Reader, contentType string) error
	Delete(ctx context.Context, key string) error
	URL(ctx context.Context, key string) (string, error)
}

var store Storage

func GetStorage() Storage {
	return store
}

func NewStorage(s Storage) {
	store = s
}

// LocalStorage writes under Root and serves from BaseURL.
type LocalStorage struct {
	Root    string
	BaseURL string
}

func NewLocalStorage(root string, baseURL string) *LocalStorage {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &LocalStorage{Root: root, BaseURL: baseURL}
}

func (l *LocalStorage) path(key string) string {
	return filepath.Join(l.Root, filepath.FromSlash(filepath.Clean("/"+key)))
}

func (l *LocalStorage) Save(ctx context.Context, key string, r io.Reader, contentType string) error {
	p := l.path(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.Create(p)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = io.Copy(f, r)
	return err
}

func (l *LocalStorage) Delete(ctx context.Context, key string) error {
	err := os.Remove(l.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (l *LocalStorage) URL(ctx context.Context, key string) (string, error) {
	return l.BaseURL + strings.TrimPrefix(key, "/"), nil
}
