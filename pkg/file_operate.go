package pkg

import (
	"io"
	"os"
	"path/filepath"
)

// CheckFileExist 检查文件是否存在
func CheckFileExist(filePath string) (bool, error) {
	info, err := os.Stat(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return !info.IsDir(), nil
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

// OpenOutput 打开输出文件；路径为空或 "-" 时写到 fallback (通常是 stdout)
func OpenOutput(filePath string, fallback io.Writer) (io.WriteCloser, error) {
	if filePath == "" || filePath == "-" {
		return nopCloser{fallback}, nil
	}
	if dir := filepath.Dir(filePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return os.Create(filePath)
}
