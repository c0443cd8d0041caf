// Package selenium_driver driver.Driver 的 WebDriver 实现，连接已启动的 Selenium / chromedriver 服务
package selenium_driver

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/tebeka/selenium"
	"github.com/tebeka/selenium/chrome"

	locators "student_e2e_go/Locators"
	"student_e2e_go/worker/driver"
)

// Options 远程会话参数
type Options struct {
	// URL WebDriver 服务地址，如 http://localhost:4444/wd/hub
	URL      string
	Headless bool
}

// WebDriver 一个远程浏览器会话
type WebDriver struct {
	wd selenium.WebDriver
}

var (
	_ driver.Driver  = (*WebDriver)(nil)
	_ driver.Element = (*element)(nil)
)

// New 创建远程会话
func New(opts Options) (*WebDriver, error) {
	args := []string{"--no-sandbox", "--window-size=1440,900"}
	if opts.Headless {
		args = append(args, "--headless=new")
	}
	caps := selenium.Capabilities{"browserName": "chrome"}
	caps.AddChrome(chrome.Capabilities{Args: args, W3C: true})

	wd, err := selenium.NewRemote(caps, opts.URL)
	if err != nil {
		return nil, fmt.Errorf("连接WebDriver失败(%s): %w", opts.URL, err)
	}
	log.Debugf("WebDriver会话已创建: %s", opts.URL)
	return &WebDriver{wd: wd}, nil
}

// Close 结束会话
func (d *WebDriver) Close() {
	if err := d.wd.Quit(); err != nil {
		log.Warnf("关闭WebDriver会话失败: %v", err)
	}
}

// By 定位器转换为 WebDriver 的定位方式
func By(loc locators.Locator) (by, value string) {
	switch loc.Strategy {
	case locators.ByID:
		return selenium.ByID, loc.Expression
	case locators.ByClass:
		return selenium.ByClassName, loc.Expression
	default:
		return selenium.ByXPATH, loc.Expression
	}
}

// normalize WebDriver 错误码映射到 driver 包的错误
func normalize(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "no such element"), strings.Contains(msg, "stale element reference"):
		return fmt.Errorf("%w: %w", driver.ErrElementNotFound, err)
	case strings.Contains(msg, "element click intercepted"):
		return fmt.Errorf("%w: %w", driver.ErrIntercepted, err)
	case strings.Contains(msg, "timeout"):
		return fmt.Errorf("%w: %w", driver.ErrTimeout, err)
	default:
		return err
	}
}

func (d *WebDriver) Navigate(ctx context.Context, url string) error {
	if err := driver.FromContext(ctx); err != nil {
		return err
	}
	if err := d.wd.Get(url); err != nil {
		return fmt.Errorf("页面导航失败: %w", normalize(err))
	}
	return nil
}

// Find FindElements 不会因为没有匹配而报错，空结果即不存在
func (d *WebDriver) Find(ctx context.Context, loc locators.Locator) (driver.Element, error) {
	if err := driver.FromContext(ctx); err != nil {
		return nil, err
	}
	by, value := By(loc)
	found, err := d.wd.FindElements(by, value)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", loc, normalize(err))
	}
	if len(found) == 0 {
		return nil, fmt.Errorf("%s: %w", loc, driver.ErrElementNotFound)
	}
	return &element{d: d, loc: loc, we: found[0]}, nil
}

func (d *WebDriver) ExecuteScript(ctx context.Context, script string, el driver.Element) (any, error) {
	e, ok := el.(*element)
	if !ok {
		return nil, fmt.Errorf("selenium: foreign element %T", el)
	}
	return e.script(ctx, script)
}

type element struct {
	d   *WebDriver
	loc locators.Locator
	we  selenium.WebElement
}

func (e *element) script(ctx context.Context, script string) (any, error) {
	if err := driver.FromContext(ctx); err != nil {
		return nil, err
	}
	v, err := e.d.wd.ExecuteScript("return ("+script+")(arguments[0]);", []interface{}{e.we})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", e.loc, normalize(err))
	}
	return v, nil
}

func (e *element) do(ctx context.Context, what string, fn func() error) error {
	if err := driver.FromContext(ctx); err != nil {
		return err
	}
	if err := fn(); err != nil {
		return fmt.Errorf("%s %s: %w", what, e.loc, normalize(err))
	}
	return nil
}

func (e *element) Click(ctx context.Context) error {
	return e.do(ctx, "click", e.we.Click)
}

func (e *element) Clear(ctx context.Context) error {
	return e.do(ctx, "clear", e.we.Clear)
}

func (e *element) Type(ctx context.Context, text string) error {
	return e.do(ctx, "type into", func() error { return e.we.SendKeys(text) })
}

// Value 读取 value 属性；GetAttribute 返回的是当前值而不是 HTML 初始值
func (e *element) Value(ctx context.Context) (v string, err error) {
	err = e.do(ctx, "value", func() error {
		v, err = e.we.GetAttribute("value")
		return err
	})
	return v, err
}

func (e *element) Text(ctx context.Context) (v string, err error) {
	err = e.do(ctx, "text", func() error {
		v, err = e.we.Text()
		return err
	})
	return v, err
}

func (e *element) IsDisplayed(ctx context.Context) (ok bool, err error) {
	err = e.do(ctx, "displayed", func() error {
		ok, err = e.we.IsDisplayed()
		return err
	})
	return ok, err
}

func (e *element) IsEnabled(ctx context.Context) (ok bool, err error) {
	err = e.do(ctx, "enabled", func() error {
		ok, err = e.we.IsEnabled()
		return err
	})
	return ok, err
}

func (e *element) IsSelected(ctx context.Context) (ok bool, err error) {
	err = e.do(ctx, "selected", func() error {
		ok, err = e.we.IsSelected()
		return err
	})
	return ok, err
}

func (e *element) selectBy(ctx context.Context, mode driver.SelectMode, want any) error {
	v, err := e.script(ctx, driver.SelectOptionScript(mode, want))
	if err != nil {
		return fmt.Errorf("select: %w", err)
	}
	if !driver.AsBool(v) {
		return fmt.Errorf("select %s: no option with %s %v", e.loc, mode, want)
	}
	return nil
}

func (e *element) SelectByText(ctx context.Context, text string) error {
	return e.selectBy(ctx, driver.SelectText, text)
}

func (e *element) SelectByValue(ctx context.Context, value string) error {
	return e.selectBy(ctx, driver.SelectValue, value)
}

func (e *element) SelectByIndex(ctx context.Context, index int) error {
	return e.selectBy(ctx, driver.SelectIndex, index)
}

func (e *element) SelectedText(ctx context.Context) (string, error) {
	v, err := e.script(ctx, driver.SelectedTextScript)
	if err != nil {
		return "", err
	}
	s, _ := v.(string)
	return s, nil
}
