package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"redemption_report/internal/pkg/config"
)

// Store 导出文件存储
// Save 必须是原子的：失败时目标路径不能留下半写的文件
type Store interface {
	Save(ctx context.Context, relPath string, data []byte) error
}

// LocalStore 本地文件系统存储
type LocalStore struct {
	root string
}

func NewLocalStore(root string) *LocalStore {
	return &LocalStore{root: root}
}

// Save 写临时文件再 rename，保证目标路径要么不存在、要么是完整文件
func (s *LocalStore) Save(ctx context.Context, relPath string, data []byte) error {
	dst := filepath.Join(s.root, filepath.FromSlash(relPath))
	dir := filepath.Dir(dst)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	// 临时文件放在目标目录内，保证 rename 不跨文件系统
	tmp, err := os.CreateTemp(dir, ".export-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write export file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close export file: %w", err)
	}

	if err := os.Rename(tmpName, dst); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to move export file into place: %w", err)
	}
	return nil
}

// GlobalStore 实例
var GlobalStore Store

// InitStore 根据配置初始化存储后端
func InitStore() error {
	cfg := config.GlobalConfig.Export
	switch cfg.Backend {
	case "oss":
		store, err := NewOSSStore()
		if err != nil {
			return err
		}
		GlobalStore = store
	case "local":
		GlobalStore = NewLocalStore(cfg.LocalRoot)
	default:
		return fmt.Errorf("unknown export backend: %s", cfg.Backend)
	}
	return nil
}
