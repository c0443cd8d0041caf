package utils

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// RootEnv 显式指定项目根目录，用于在源码树之外运行编译好的程序
const RootEnv = "STUDENT_E2E_ROOT"

// rootMarkers 任意一个存在即视为项目根目录
var rootMarkers = []string{
	"go.mod",
	filepath.Join("config", "config.yaml"),
}

// GetProjectRoot 获取项目根目录，配置文件和场景文件都相对于它解析
// 优先级: 环境变量 > 工作目录向上查找 > 源码所在位置
func GetProjectRoot() (string, error) {
	if dir := os.Getenv(RootEnv); dir != "" {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return "", fmt.Errorf("解析 %s 失败: %w", RootEnv, err)
		}
		if !isDir(abs) {
			return "", fmt.Errorf("%s 指向的目录不存在: %s", RootEnv, abs)
		}
		return abs, nil
	}

	wd, err := os.Getwd()
	if err == nil {
		if dir, err := FindRoot(wd); err == nil {
			return dir, nil
		}
	}

	// 当前文件在 utils/ 下，向上一级就是根目录
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return "", errors.New("无法获取当前文件路径")
	}
	return FindRoot(filepath.Dir(filename))
}

// FindRoot 从 startDir 开始向上查找包含根目录标志文件的目录
func FindRoot(startDir string) (string, error) {
	current, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		for _, marker := range rootMarkers {
			if fileExists(filepath.Join(current, marker)) {
				return current, nil
			}
		}

		parent := filepath.Dir(current)
		if parent == current {
			return "", fmt.Errorf("从 %s 向上未找到项目根目录", startDir)
		}
		current = parent
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
