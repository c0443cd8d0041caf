package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	log "github.com/sirupsen/logrus"

	"student_e2e_go/config"
	"student_e2e_go/model"
	"student_e2e_go/pages"
	"student_e2e_go/service"
	"student_e2e_go/utils"
	"student_e2e_go/worker/chromedp_driver"
	"student_e2e_go/worker/driver"
	"student_e2e_go/worker/playwright_manager"
	"student_e2e_go/worker/selenium_driver"
)

type Application struct {
	cfg       *config.GlobalConfig
	scenarios []model.Scenario

	driver  driver.Driver
	closers []func()
	runner  *service.ScenarioService
}

// NewApplication 创建新的应用程序实例
func NewApplication() *Application {
	return &Application{}
}

// InitServices 读取配置、加载场景、启动浏览器
func (app *Application) InitServices() error {
	log.Info("========================================")
	log.Info("   初始化应用程序服务")
	log.Info("========================================")

	root, err := utils.GetProjectRoot()
	if err != nil {
		return fmt.Errorf("定位项目根目录失败: %w", err)
	}

	cfg, err := config.InitConfig(filepath.Join(root, "config"))
	if err != nil {
		return err
	}
	app.cfg = cfg
	if err := setupLogger(cfg.Log); err != nil {
		return err
	}
	log.Infof("被测应用: %s, 驱动: %s, 等待时限: %s", cfg.App.BaseURL, cfg.Browser.Driver, cfg.App.WaitTimeout())

	fixtures := service.NewFixtureService(root)
	scenarios, err := fixtures.LoadScenarios(cfg.Scenarios.File)
	if err != nil {
		return err
	}
	app.scenarios = scenarios

	if err := app.initDriver(); err != nil {
		return fmt.Errorf("浏览器驱动初始化失败: %w", err)
	}

	session := pages.NewSession(app.driver, cfg.App.BaseURL, cfg.App.WaitTimeout())
	app.runner = service.NewScenarioService(session, service.NewStudentRules())

	log.Info("✓ 所有服务初始化完成")
	return nil
}

// initDriver 按配置选择浏览器后端
func (app *Application) initDriver() error {
	b := app.cfg.Browser
	timeout := app.cfg.App.WaitTimeout()

	switch b.Driver {
	case config.DriverChromedp:
		d, err := chromedp_driver.New(chromedp_driver.Options{Headless: b.Headless, Timeout: timeout})
		if err != nil {
			return err
		}
		app.driver = d
		app.closers = append(app.closers, d.Close)
	case config.DriverSelenium:
		d, err := selenium_driver.New(selenium_driver.Options{URL: b.SeleniumURL, Headless: b.Headless})
		if err != nil {
			return err
		}
		app.driver = d
		app.closers = append(app.closers, d.Close)
	default:
		pm := playwright_manager.NewPlaywrightManager(playwright_manager.Options{Headless: b.Headless, Timeout: timeout})
		app.closers = append(app.closers, pm.Close)
		if err := pm.Init(); err != nil {
			return err
		}
		d, err := pm.NewDriver()
		if err != nil {
			return err
		}
		app.driver = d
	}
	return nil
}

// Start 依次执行全部场景
func (app *Application) Start(ctx context.Context) error {
	log.Info("========================================")
	log.Infof("   执行学生表单场景 (%d 个)", len(app.scenarios))
	log.Info("========================================")

	results := app.runner.RunAll(ctx, app.scenarios)
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("执行被中断: %w", err)
	}
	return service.Summary(results)
}

// Stop 释放浏览器资源
func (app *Application) Stop() {
	log.Info("停止应用程序...")
	for i := len(app.closers) - 1; i >= 0; i-- {
		app.closers[i]()
	}
	app.closers = nil
	log.Info("✓ 应用程序已安全停止")
}

func setupLogger(c config.LogConfig) error {
	level, err := log.ParseLevel(c.Level)
	if err != nil {
		return fmt.Errorf("日志级别配置错误: %w", err)
	}
	log.SetLevel(level)
	return nil
}

func main() {
	// 设置日志格式
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.Info("🚀 启动学生表单端到端检查...")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app := NewApplication()
	if err := app.InitServices(); err != nil {
		app.Stop()
		log.Fatalf("❌ 服务初始化失败: %v", err)
	}

	err := app.Start(ctx)
	app.Stop()
	if err != nil {
		log.Errorf("❌ %v", err)
		os.Exit(1)
	}
	log.Info("👋 全部场景通过")
}
