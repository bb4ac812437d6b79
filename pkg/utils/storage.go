package utils

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureWritableDir 确保目录存在并可写
// 导出 .sav/.xml 之前调用，避免每个输入框各自报告同一个目录错误。
func EnsureWritableDir(dir string) error {
	if dir == "" {
		return fmt.Errorf("directory path is empty")
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	testFile := filepath.Join(dir, ".write_test")
	if err := os.WriteFile(testFile, []byte("test"), 0o644); err != nil {
		return fmt.Errorf("directory %s is not writable: %w", dir, err)
	}
	os.Remove(testFile)

	return nil
}
