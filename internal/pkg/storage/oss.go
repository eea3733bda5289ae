package storage

import (
	"bytes"
	"context"

	"redemption_report/internal/pkg/config"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
)

// OSSStore 阿里云 OSS 存储
type OSSStore struct {
	client *oss.Client
	bucket *oss.Bucket
	config config.OSSConfig
}

func NewOSSStore() (*OSSStore, error) {
	cfg := config.GlobalConfig.OSS
	client, err := oss.New(cfg.Endpoint, cfg.AccessKeyID, cfg.AccessKeySecret)
	if err != nil {
		return nil, err
	}

	bucket, err := client.Bucket(cfg.BucketName)
	if err != nil {
		return nil, err
	}

	return &OSSStore{
		client: client,
		bucket: bucket,
		config: cfg,
	}, nil
}

// Save 单次 PutObject 写入整个缓冲，OSS 侧对象要么完整可见、要么不存在
func (s *OSSStore) Save(ctx context.Context, relPath string, data []byte) error {
	return s.bucket.PutObject(relPath, bytes.NewReader(data))
}
