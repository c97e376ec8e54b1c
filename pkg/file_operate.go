package pkg

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

var ErrFileNotExist = errors.New("file not exist")

// CheckFileExist 检查文件是否存在
func CheckFileExist(filePath string) (bool, error) {
	_, err := os.Lstat(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// ReadTextFile 读取文件内容, 文件不存在时返回 ErrFileNotExist
func ReadTextFile(filePath string) (string, error) {
	if filePath == "" {
		return "", errors.New("no input file path")
	}
	exist, err := CheckFileExist(filePath)
	if err != nil {
		return "", fmt.Errorf("check file exist: %w", err)
	}
	if !exist {
		return "", fmt.Errorf("%w: %s", ErrFileNotExist, filePath)
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// WriteOutput 写入输出文件; filePath 为空时写到 w
func WriteOutput(filePath string, data string, w io.Writer) error {
	if filePath == "" {
		_, err := io.WriteString(w, data)
		return err
	}
	// 先写临时文件再重命名, 避免写一半
	tmp, err := os.CreateTemp(filepath.Dir(filePath), "."+filepath.Base(filePath)+".*")
	if err != nil {
		return err
	}
	if _, err := tmp.WriteString(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), filePath)
}
