package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix 环境变量前缀，如 STUDENT_E2E_APP_BASEURL、STUDENT_E2E_BROWSER_DRIVER
const EnvPrefix = "STUDENT_E2E"

// 支持的浏览器驱动
const (
	DriverPlaywright = "playwright"
	DriverChromedp   = "chromedp"
	DriverSelenium   = "selenium"
)

// 全局配置结构体
type GlobalConfig struct {
	App       AppConfig       `mapstructure:"app"`
	Browser   BrowserConfig   `mapstructure:"browser"`
	Scenarios ScenariosConfig `mapstructure:"scenarios"`
	Log       LogConfig       `mapstructure:"log"`
}

// App 被测应用
type AppConfig struct {
	BaseURL string `mapstructure:"baseUrl"`
	Timeout int    `mapstructure:"timeout"` // 默认等待时限（秒）
}

// WaitTimeout 默认等待时限
func (c AppConfig) WaitTimeout() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

// 浏览器配置
type BrowserConfig struct {
	Driver      string `mapstructure:"driver"`
	Headless    bool   `mapstructure:"headless"`
	SeleniumURL string `mapstructure:"seleniumUrl"`
}

// 场景文件配置
type ScenariosConfig struct {
	File string `mapstructure:"file"`
}

// 日志配置
type LogConfig struct {
	Level string `mapstructure:"level"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.baseUrl", "http://localhost:3000/")
	v.SetDefault("app.timeout", 10)
	v.SetDefault("browser.driver", DriverPlaywright)
	v.SetDefault("browser.headless", true)
	v.SetDefault("browser.seleniumUrl", "http://localhost:4444/wd/hub")
	v.SetDefault("scenarios.file", "testdata/scenarios.yaml")
	v.SetDefault("log.level", "info")
}

// InitConfig 初始化配置：dir/.env -> dir/config.yaml -> 环境变量，后者覆盖前者
// 配置文件不存在时使用默认值
func InitConfig(dir string) (*GlobalConfig, error) {
	envFile := filepath.Join(dir, ".env")
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("读取.env失败: %w", err)
		}
	}

	v := viper.New()
	v.SetConfigName("config") // 配置文件名称（不带扩展名）
	v.SetConfigType("yaml")   // 配置文件类型
	v.AddConfigPath(dir)      // 配置文件路径
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
	}

	var config GlobalConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate 检查配置是否可用
func (c *GlobalConfig) Validate() error {
	if strings.TrimSpace(c.App.BaseURL) == "" {
		return fmt.Errorf("app.baseUrl 不能为空")
	}
	if c.App.Timeout <= 0 {
		return fmt.Errorf("app.timeout 必须为正数，当前为 %d", c.App.Timeout)
	}
	switch c.Browser.Driver {
	case DriverPlaywright, DriverChromedp:
	case DriverSelenium:
		if c.Browser.SeleniumURL == "" {
			return fmt.Errorf("selenium 驱动需要 browser.seleniumUrl")
		}
	default:
		return fmt.Errorf("未知的浏览器驱动 %q", c.Browser.Driver)
	}
	return nil
}
