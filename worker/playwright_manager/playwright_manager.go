// worker/playwright_manager/playwright_manager.go
package playwright_manager

import (
	"fmt"
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"
	log "github.com/sirupsen/logrus"
)

// Options 浏览器启动参数
type Options struct {
	Headless bool
	// Timeout 页面操作的默认时限，条件等待由上层控制
	Timeout time.Duration
	Args    []string
}

// PlaywrightManager 浏览器生命周期管理：一个浏览器，每个会话独立的上下文和页面
type PlaywrightManager struct {
	playwright *playwright.Playwright
	browser    playwright.Browser
	opts       Options

	mu       sync.Mutex
	sessions []*PageDriver
}

// NewPlaywrightManager 创建新的Playwright管理器
func NewPlaywrightManager(opts Options) *PlaywrightManager {
	return &PlaywrightManager{opts: opts}
}

// Init 启动 Playwright 和浏览器
func (pm *PlaywrightManager) Init() error {
	log.Info("========================================")
	log.Info("  初始化浏览器自动化引擎 (playwright)")
	log.Info("========================================")

	pw, err := playwright.Run()
	if err != nil {
		return fmt.Errorf("启动Playwright失败: %w", err)
	}
	pm.playwright = pw

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(pm.opts.Headless),
		Args:     append([]string{"--start-maximized"}, pm.opts.Args...),
	})
	if err != nil {
		_ = pw.Stop()
		return fmt.Errorf("启动浏览器失败: %w", err)
	}
	pm.browser = browser

	log.Info("✓ 浏览器自动化引擎初始化完成")
	return nil
}

// NewDriver 为一次测试创建独立的浏览器上下文和页面，不与其他会话共享 cookie
func (pm *PlaywrightManager) NewDriver() (*PageDriver, error) {
	if pm.browser == nil {
		return nil, fmt.Errorf("浏览器未初始化")
	}
	bc, err := pm.browser.NewContext(playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{Width: 1440, Height: 900},
	})
	if err != nil {
		return nil, fmt.Errorf("创建浏览器上下文失败: %w", err)
	}
	page, err := bc.NewPage()
	if err != nil {
		_ = bc.Close()
		return nil, fmt.Errorf("创建页面失败: %w", err)
	}
	if pm.opts.Timeout > 0 {
		page.SetDefaultTimeout(float64(pm.opts.Timeout.Milliseconds()))
	}

	d := &PageDriver{context: bc, page: page}
	pm.mu.Lock()
	pm.sessions = append(pm.sessions, d)
	pm.mu.Unlock()
	log.Debug("✓ Page已创建")
	return d, nil
}

// Close 清理资源
func (pm *PlaywrightManager) Close() {
	log.Info("开始关闭Playwright管理器...")

	pm.mu.Lock()
	sessions := pm.sessions
	pm.sessions = nil
	pm.mu.Unlock()
	for _, d := range sessions {
		d.Close()
	}

	if pm.browser != nil {
		if err := pm.browser.Close(); err != nil {
			log.Warnf("关闭浏览器失败: %v", err)
		} else {
			log.Debug("浏览器已关闭")
		}
	}
	if pm.playwright != nil {
		if err := pm.playwright.Stop(); err != nil {
			log.Warnf("关闭Playwright失败: %v", err)
		} else {
			log.Debug("Playwright实例已关闭")
		}
	}

	log.Info("Playwright管理器关闭完成")
}
