package playwright_manager

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/playwright-community/playwright-go"

	locators "student_e2e_go/Locators"
	"student_e2e_go/worker/driver"
)

// PageDriver driver.Driver 的 playwright 实现，每个实例独占一个页面
type PageDriver struct {
	context playwright.BrowserContext
	page    playwright.Page
}

var (
	_ driver.Driver  = (*PageDriver)(nil)
	_ driver.Element = (*element)(nil)
)

// Page 底层页面
func (d *PageDriver) Page() playwright.Page {
	return d.page
}

// Selector 定位器转换为 playwright 选择器
func Selector(loc locators.Locator) string {
	if css, ok := loc.CSS(); ok {
		return css
	}
	return "xpath=" + loc.Expression
}

func (d *PageDriver) Navigate(ctx context.Context, url string) error {
	if err := driver.FromContext(ctx); err != nil {
		return err
	}
	if _, err := d.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	}); err != nil {
		return fmt.Errorf("页面导航失败: %w", normalize(err))
	}
	return nil
}

func (d *PageDriver) Find(ctx context.Context, loc locators.Locator) (driver.Element, error) {
	if err := driver.FromContext(ctx); err != nil {
		return nil, err
	}
	l := d.page.Locator(Selector(loc)).First()
	n, err := l.Count()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", loc, normalize(err))
	}
	if n == 0 {
		return nil, fmt.Errorf("%s: %w", loc, driver.ErrElementNotFound)
	}
	return &element{loc: loc, l: l}, nil
}

func (d *PageDriver) ExecuteScript(ctx context.Context, script string, el driver.Element) (any, error) {
	if err := driver.FromContext(ctx); err != nil {
		return nil, err
	}
	e, ok := el.(*element)
	if !ok {
		return nil, fmt.Errorf("playwright: foreign element %T", el)
	}
	v, err := e.l.Evaluate(script, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", e.loc, normalize(err))
	}
	return v, nil
}

// Close 关闭页面和上下文
func (d *PageDriver) Close() {
	if d.page != nil {
		_ = d.page.Close()
	}
	if d.context != nil {
		_ = d.context.Close()
	}
}

// normalize playwright 错误映射到 driver 包的错误
func normalize(err error) error {
	switch {
	case err == nil:
		return nil
	case strings.Contains(err.Error(), "intercepts pointer events"):
		return fmt.Errorf("%w: %w", driver.ErrIntercepted, err)
	case errors.Is(err, playwright.ErrTimeout):
		return fmt.Errorf("%w: %w", driver.ErrTimeout, err)
	default:
		return err
	}
}

type element struct {
	loc locators.Locator
	l   playwright.Locator
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
	return e.do(ctx, "click", func() error { return e.l.Click() })
}

func (e *element) Clear(ctx context.Context) error {
	return e.do(ctx, "clear", func() error { return e.l.Clear() })
}

// Type 逐字输入，触发页面的按键事件
func (e *element) Type(ctx context.Context, text string) error {
	return e.do(ctx, "type", func() error { return e.l.PressSequentially(text) })
}

func (e *element) Value(ctx context.Context) (v string, err error) {
	err = e.do(ctx, "value", func() error {
		v, err = e.l.InputValue()
		return err
	})
	return v, err
}

func (e *element) Text(ctx context.Context) (v string, err error) {
	err = e.do(ctx, "text", func() error {
		v, err = e.l.InnerText()
		return err
	})
	return v, err
}

func (e *element) IsDisplayed(ctx context.Context) (ok bool, err error) {
	err = e.do(ctx, "visible", func() error {
		ok, err = e.l.IsVisible()
		return err
	})
	return ok, err
}

func (e *element) IsEnabled(ctx context.Context) (ok bool, err error) {
	err = e.do(ctx, "enabled", func() error {
		ok, err = e.l.IsEnabled()
		return err
	})
	return ok, err
}

func (e *element) IsSelected(ctx context.Context) (ok bool, err error) {
	err = e.do(ctx, "checked", func() error {
		ok, err = e.l.IsChecked()
		return err
	})
	return ok, err
}

func (e *element) selectOption(ctx context.Context, values playwright.SelectOptionValues) error {
	return e.do(ctx, "select", func() error {
		_, err := e.l.SelectOption(values)
		return err
	})
}

func (e *element) SelectByText(ctx context.Context, text string) error {
	return e.selectOption(ctx, playwright.SelectOptionValues{Labels: &[]string{text}})
}

func (e *element) SelectByValue(ctx context.Context, value string) error {
	return e.selectOption(ctx, playwright.SelectOptionValues{Values: &[]string{value}})
}

func (e *element) SelectByIndex(ctx context.Context, index int) error {
	return e.selectOption(ctx, playwright.SelectOptionValues{Indexes: &[]int{index}})
}

func (e *element) SelectedText(ctx context.Context) (string, error) {
	var v any
	err := e.do(ctx, "selected text", func() (err error) {
		v, err = e.l.Evaluate(driver.SelectedTextScript, nil)
		return err
	})
	if err != nil {
		return "", err
	}
	s, _ := v.(string)
	return s, nil
}
