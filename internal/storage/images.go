package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ImageStore 活動圖片的檔案儲存
type ImageStore interface {
	// Save 以隨機檔名寫入上傳檔案，回傳儲存路徑
	Save(file *multipart.FileHeader) (string, error)
	// Remove 移除已儲存的圖片，檔案不存在不算錯誤
	Remove(path string) error
}

type LocalImageStore struct {
	dir string
}

func NewLocalImageStore(dir string) (ImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalImageStore{dir: dir}, nil
}

func (s *LocalImageStore) Save(file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	ext := strings.ToLower(filepath.Ext(file.Filename))
	name := uuid.New().String() + ext
	path := filepath.Join(s.dir, name)

	dst, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(path)
		return "", err
	}

	return path, nil
}

func (s *LocalImageStore) Remove(path string) error {
	// 只允許刪除自己目錄下的檔案
	if filepath.Dir(path) != filepath.Clean(s.dir) {
		return fmt.Errorf("path outside upload dir: %s", path)
	}
	err := os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
