package service

import (
	"bytes"
	"context"
	"fmt"
	"geo_quiz/internal/config"
	"geo_quiz/internal/util"
	"geo_quiz/pkg/logger"
	"io"
	"os"
	"path/filepath"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// StorageProvider 地图快照存储接口
type StorageProvider interface {
	Upload(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (string, error)
	GetURL(filename string) string
}

// LocalStorageProvider 本地存储实现，每次覆盖同名文件
type LocalStorageProvider struct {
	Config *config.StorageConfig
}

func (p *LocalStorageProvider) Upload(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	dst := filepath.Join(p.Config.LocalPath, filename)
	dir := filepath.Dir(dst)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", err
		}
	}

	out, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, reader); err != nil {
		return "", err
	}

	return p.GetURL(filename), nil
}

func (p *LocalStorageProvider) GetURL(filename string) string {
	return filepath.Join(p.Config.LocalPath, filename)
}

// MinioStorageProvider MinIO存储实现
type MinioStorageProvider struct {
	Config *config.StorageConfig
	Client *minio.Client
}

func NewMinioStorageProvider(cfg *config.StorageConfig) (*MinioStorageProvider, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessID, cfg.MinioSecret, ""),
		Secure: cfg.MinioSecure,
	})
	if err != nil {
		return nil, err
	}
	return &MinioStorageProvider{Config: cfg, Client: client}, nil
}

func (p *MinioStorageProvider) Upload(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	_, err := p.Client.PutObject(ctx, p.Config.MinioBucket, filename, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}
	return p.GetURL(filename), nil
}

func (p *MinioStorageProvider) GetURL(filename string) string {
	return "/" + p.Config.MinioBucket + "/" + filename
}

// OSSStorageProvider 阿里云OSS存储实现
type OSSStorageProvider struct {
	Config *config.StorageConfig
	Client *oss.Client
}

func NewOSSStorageProvider(cfg *config.StorageConfig) (*OSSStorageProvider, error) {
	client, err := oss.New(cfg.OSSEndpoint, cfg.OSSAccessKey, cfg.OSSSecretKey)
	if err != nil {
		return nil, err
	}
	return &OSSStorageProvider{Config: cfg, Client: client}, nil
}

func (p *OSSStorageProvider) Upload(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	bucket, err := p.Client.Bucket(p.Config.OSSBucket)
	if err != nil {
		return "", err
	}

	if err := bucket.PutObject(filename, reader, oss.ContentType(contentType)); err != nil {
		return "", err
	}
	return p.GetURL(filename), nil
}

func (p *OSSStorageProvider) GetURL(filename string) string {
	return fmt.Sprintf("https://%s.%s/%s", p.Config.OSSBucket, p.Config.OSSEndpoint, filename)
}

// NoopStorageProvider 不保存快照
type NoopStorageProvider struct{}

func (NoopStorageProvider) Upload(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	return "", nil
}

func (NoopStorageProvider) GetURL(filename string) string {
	return ""
}

// StorageService 地图快照存储服务
type StorageService struct {
	Provider     StorageProvider
	snapshotName string
}

// newStorageProvider 按配置类型创建存储实现
func newStorageProvider(cfg *config.StorageConfig) (StorageProvider, error) {
	switch cfg.Type {
	case util.StorageLocal, "":
		return &LocalStorageProvider{Config: cfg}, nil
	case util.StorageMinio:
		return NewMinioStorageProvider(cfg)
	case util.StorageOSS:
		return NewOSSStorageProvider(cfg)
	case util.StorageNone:
		return NoopStorageProvider{}, nil
	}
	return nil, fmt.Errorf("%w: %q", util.ErrStorageUnsupported, cfg.Type)
}

// NewStorageService 创建失败时退回本地存储
func NewStorageService(cfg *config.Config) *StorageService {
	provider, err := newStorageProvider(&cfg.Storage)
	if err != nil {
		logger.Log.Warn("Storage provider unavailable, falling back to local storage",
			zap.String("type", cfg.Storage.Type), zap.Error(err))
		provider = &LocalStorageProvider{Config: &cfg.Storage}
	}

	name := cfg.Storage.SnapshotName
	if name == "" {
		name = "map.html"
	}
	return &StorageService{Provider: provider, snapshotName: name}
}

// SaveSnapshot 保存最新一次渲染的地图文档，覆盖之前的版本
func (s *StorageService) SaveSnapshot(ctx context.Context, content []byte) (string, error) {
	location, err := s.Provider.Upload(ctx, s.snapshotName, bytes.NewReader(content), int64(len(content)), util.MimeHTML)
	if err != nil {
		return "", fmt.Errorf("%w: %v", util.ErrSnapshotStore, err)
	}
	return location, nil
}
