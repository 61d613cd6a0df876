package service

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/denhamvenom/inventoryapp/internal/config"

	"github.com/google/uuid"
)

// UploadService CSV 文件上传服务。
// 文件落盘后返回可访问链接，订单行只保存链接不保存内容。
type UploadService struct {
	cfg *config.Config
}

// NewUploadService 创建上传服务实例
func NewUploadService(cfg *config.Config) *UploadService {
	return &UploadService{cfg: cfg}
}

// SaveCSV 保存上传的 CSV 文件，返回文件访问链接
func (s *UploadService) SaveCSV(file *multipart.FileHeader) (string, error) {
	if file == nil || file.Size == 0 {
		return "", fmt.Errorf("%w: 文件为空", ErrUploadInvalid)
	}
	if s.cfg.Upload.MaxSize > 0 && file.Size > s.cfg.Upload.MaxSize {
		return "", fmt.Errorf("%w: 文件大小超过限制（最大 %d KB）", ErrUploadInvalid, s.cfg.Upload.MaxSize/1024)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !isAllowedExtension(ext, s.cfg.Upload.AllowedExtensions) {
		return "", fmt.Errorf("%w: 文件扩展名不被允许: %s", ErrUploadInvalid, ext)
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	filename := fmt.Sprintf("%s%s", uuid.New().String(), ext)
	savePath := filepath.Join(s.cfg.Upload.Dir, filename)
	if err := os.MkdirAll(filepath.Dir(savePath), 0755); err != nil {
		return "", err
	}

	dst, err := os.Create(savePath)
	if err != nil {
		return "", err
	}
	defer dst.Close()
	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	baseURL := strings.TrimSuffix(s.cfg.Upload.BaseURL, "/")
	return fmt.Sprintf("%s/%s", baseURL, filename), nil
}

func isAllowedExtension(ext string, allowed []string) bool {
	if ext == "" {
		return false
	}
	for _, a := range allowed {
		if strings.EqualFold(ext, a) {
			return true
		}
	}
	return false
}
