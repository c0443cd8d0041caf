// Package chromedp_driver driver.Driver 的 chromedp 实现
//
// 元素不持有节点 id：每次操作都按 XPath 重新解析，页面重新渲染后句柄仍然可用
package chromedp_driver

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
	log "github.com/sirupsen/logrus"

	locators "student_e2e_go/Locators"
	"student_e2e_go/worker/driver"
)

// Options 浏览器启动参数
type Options struct {
	Headless bool
	// Timeout 单个动作（点击、输入）的时限
	Timeout time.Duration
}

// ChromeDriver 一个独立的 Chrome 实例
type ChromeDriver struct {
	ctx     context.Context
	cancel  context.CancelFunc
	timeout time.Duration
}

var (
	_ driver.Driver  = (*ChromeDriver)(nil)
	_ driver.Element = (*element)(nil)
)

// New 启动浏览器
func New(opts Options) (*ChromeDriver, error) {
	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(),
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", opts.Headless),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.WindowSize(1440, 900),
		)...)
	ctx, cancel := chromedp.NewContext(allocCtx, chromedp.WithLogf(log.Debugf))

	// 先跑一个空动作把浏览器拉起来，启动失败在这里暴露
	if err := chromedp.Run(ctx); err != nil {
		cancel()
		allocCancel()
		return nil, fmt.Errorf("启动Chrome失败: %w", err)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &ChromeDriver{
		ctx: ctx,
		cancel: func() {
			cancel()
			allocCancel()
		},
		timeout: timeout,
	}, nil
}

// Close 关闭浏览器
func (d *ChromeDriver) Close() {
	d.cancel()
	log.Debug("Chrome已关闭")
}

// run 在浏览器 context 上执行动作，调用方 ctx 结束时中断
func (d *ChromeDriver) run(ctx context.Context, timeout time.Duration, actions ...chromedp.Action) error {
	if err := driver.FromContext(ctx); err != nil {
		return err
	}
	runCtx, cancel := context.WithCancel(d.ctx)
	defer cancel()
	if timeout > 0 {
		runCtx, cancel = context.WithTimeout(runCtx, timeout)
		defer cancel()
	}
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	err := chromedp.Run(runCtx, actions...)
	if err == nil {
		return nil
	}
	if cerr := driver.FromContext(ctx); cerr != nil {
		return cerr
	}
	if runCtx.Err() != nil {
		return fmt.Errorf("%w: %w", driver.ErrTimeout, err)
	}
	return err
}

func (d *ChromeDriver) Navigate(ctx context.Context, url string) error {
	if err := d.run(ctx, 0, chromedp.Navigate(url)); err != nil {
		return fmt.Errorf("页面导航失败: %w", err)
	}
	return nil
}

func (d *ChromeDriver) Find(ctx context.Context, loc locators.Locator) (driver.Element, error) {
	el := &element{d: d, loc: loc}
	if _, err := el.eval(ctx, `function(el) { return true; }`); err != nil {
		return nil, err
	}
	return el, nil
}

func (d *ChromeDriver) ExecuteScript(ctx context.Context, script string, el driver.Element) (any, error) {
	e, ok := el.(*element)
	if !ok {
		return nil, fmt.Errorf("chromedp: foreign element %T", el)
	}
	return e.eval(ctx, script)
}

// resolveExpression 按 XPath 取第一个匹配节点的 JS 表达式
func resolveExpression(loc locators.Locator) string {
	lit, _ := json.Marshal(loc.AsXPath())
	return fmt.Sprintf(
		"document.evaluate(%s, document, null, XPathResult.FIRST_ORDERED_NODE_TYPE, null).singleNodeValue", lit)
}

// 包装后的脚本返回 {found, value}，不存在时不抛异常
const wrapTemplate = `(function() {
	const el = %s;
	if (!el) return { found: false };
	return { found: true, value: (%s)(el) };
})()`

// asUserGesture 脚本点击按用户手势执行
func asUserGesture(p *runtime.EvaluateParams) *runtime.EvaluateParams {
	return p.WithUserGesture(true)
}

type evalResult struct {
	Found bool `json:"found"`
	Value any  `json:"value"`
}

type element struct {
	d   *ChromeDriver
	loc locators.Locator
}

func (e *element) eval(ctx context.Context, script string) (any, error) {
	var res evalResult
	expr := fmt.Sprintf(wrapTemplate, resolveExpression(e.loc), script)
	if err := e.d.run(ctx, e.d.timeout, chromedp.Evaluate(expr, &res, asUserGesture)); err != nil {
		return nil, fmt.Errorf("%s: %w", e.loc, err)
	}
	if !res.Found {
		return nil, fmt.Errorf("%s: %w", e.loc, driver.ErrElementNotFound)
	}
	return res.Value, nil
}

func (e *element) selector() string {
	return e.loc.AsXPath()
}

// Click 真实鼠标点击，落点由浏览器计算
func (e *element) Click(ctx context.Context) error {
	if err := e.d.run(ctx, e.d.timeout, chromedp.Click(e.selector(), chromedp.BySearch, chromedp.NodeVisible)); err != nil {
		return fmt.Errorf("click %s: %w", e.loc, err)
	}
	return nil
}

func (e *element) Clear(ctx context.Context) error {
	if err := e.d.run(ctx, e.d.timeout, chromedp.Clear(e.selector(), chromedp.BySearch)); err != nil {
		return fmt.Errorf("clear %s: %w", e.loc, err)
	}
	return nil
}

func (e *element) Type(ctx context.Context, text string) error {
	if err := e.d.run(ctx, e.d.timeout, chromedp.SendKeys(e.selector(), text, chromedp.BySearch)); err != nil {
		return fmt.Errorf("type into %s: %w", e.loc, err)
	}
	return nil
}

func (e *element) str(ctx context.Context, script string) (string, error) {
	v, err := e.eval(ctx, script)
	if err != nil {
		return "", err
	}
	s, _ := v.(string)
	return s, nil
}

func (e *element) flag(ctx context.Context, script string) (bool, error) {
	v, err := e.eval(ctx, script)
	if err != nil {
		return false, err
	}
	return driver.AsBool(v), nil
}

func (e *element) Value(ctx context.Context) (string, error) {
	return e.str(ctx, `function(el) { return el.value ?? ""; }`)
}

func (e *element) Text(ctx context.Context) (string, error) {
	return e.str(ctx, `function(el) { return el.innerText; }`)
}

func (e *element) IsDisplayed(ctx context.Context) (bool, error) {
	return e.flag(ctx, `function(el) {
	const style = window.getComputedStyle(el);
	return style.visibility !== "hidden" && style.display !== "none" && el.getClientRects().length > 0;
}`)
}

func (e *element) IsEnabled(ctx context.Context) (bool, error) {
	return e.flag(ctx, `function(el) { return !el.disabled; }`)
}

func (e *element) IsSelected(ctx context.Context) (bool, error) {
	return e.flag(ctx, `function(el) { return !!(el.checked || el.selected); }`)
}

func (e *element) selectBy(ctx context.Context, mode driver.SelectMode, want any) error {
	ok, err := e.flag(ctx, driver.SelectOptionScript(mode, want))
	if err != nil {
		return fmt.Errorf("select %s: %w", e.loc, err)
	}
	if !ok {
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
	return e.str(ctx, driver.SelectedTextScript)
}
