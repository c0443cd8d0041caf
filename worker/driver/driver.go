// Package driver 定义核心层依赖的最小浏览器自动化能力
package driver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	locators "student_e2e_go/Locators"
)

var (
	// ErrElementNotFound 当前 DOM 中不存在该元素
	ErrElementNotFound = errors.New("element not found")
	// ErrTimeout 等待条件在时限内未满足
	ErrTimeout = errors.New("wait timed out")
	// ErrIntercepted 元素存在但点击位置被其他元素遮挡
	ErrIntercepted = errors.New("interaction intercepted")
	// ErrCancelled 等待过程中被外部取消
	ErrCancelled = errors.New("wait cancelled")
)

// Driver 浏览器驱动：定位、执行脚本、导航
type Driver interface {
	// Navigate 打开 URL
	Navigate(ctx context.Context, url string) error
	// Find 定位单个元素，不存在时返回 ErrElementNotFound
	Find(ctx context.Context, loc locators.Locator) (Element, error)
	// ExecuteScript 以元素为唯一参数执行脚本，script 为 function(el) {...} 形式
	ExecuteScript(ctx context.Context, script string, el Element) (any, error)
}

// Element 已定位的元素句柄
type Element interface {
	Click(ctx context.Context) error
	Clear(ctx context.Context) error
	Type(ctx context.Context, text string) error

	// Value 读取 value 属性（输入框当前值）
	Value(ctx context.Context) (string, error)
	// Text 读取渲染后的文本
	Text(ctx context.Context) (string, error)

	IsDisplayed(ctx context.Context) (bool, error)
	IsEnabled(ctx context.Context) (bool, error)
	IsSelected(ctx context.Context) (bool, error)

	SelectByText(ctx context.Context, text string) error
	SelectByValue(ctx context.Context, value string) error
	SelectByIndex(ctx context.Context, index int) error
	// SelectedText 当前选中项的可见文本
	SelectedText(ctx context.Context) (string, error)
}

// 传给 ExecuteScript 的脚本，各后端统一按 function(el) 调用
const (
	// ScrollToBottomScript 滚动使元素贴近视口底部，避免被固定头部遮挡
	ScrollToBottomScript = `function(el) { el.scrollIntoView(false); return true; }`
	// ClickScript 绕过指针事件直接触发 click
	ClickScript = `function(el) { el.click(); return true; }`
	// HitTestScript 元素中心点命中的是否是元素自身（或其后代）
	HitTestScript = `function(el) {
	const r = el.getBoundingClientRect();
	const hit = document.elementFromPoint(r.left + r.width / 2, r.top + r.height / 2);
	return hit !== null && (hit === el || el.contains(hit));
}`
	// SelectedTextScript 读取 select 当前选中项的文本
	SelectedTextScript = `function(el) {
	const opt = el.options[el.selectedIndex];
	return opt ? opt.text : "";
}`
)

// FromContext 调用方 context 已结束时返回 ErrCancelled
func FromContext(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrCancelled, err)
	}
	return nil
}

// AsBool 解释脚本返回值
func AsBool(v any) bool {
	b, ok := v.(bool)
	return ok && b
}

// SelectMode 下拉框选项的匹配方式
type SelectMode string

const (
	SelectText  SelectMode = "text"
	SelectValue SelectMode = "value"
	SelectIndex SelectMode = "index"
)

// SelectOptionScript 没有原生下拉框支持的后端用脚本选择选项
// 选中后派发 change 事件，返回是否找到匹配项
func SelectOptionScript(mode SelectMode, want any) string {
	lit, _ := json.Marshal(want)
	return fmt.Sprintf(`function(el) {
	const want = %s;
	const opts = Array.from(el.options);
	const i = %s;
	if (i < 0 || i >= opts.length) return false;
	el.selectedIndex = i;
	el.dispatchEvent(new Event("input", { bubbles: true }));
	el.dispatchEvent(new Event("change", { bubbles: true }));
	return true;
}`, lit, selectMatcher(mode))
}

func selectMatcher(mode SelectMode) string {
	switch mode {
	case SelectValue:
		return `opts.findIndex(o => o.value === want)`
	case SelectIndex:
		return `want`
	default:
		return `opts.findIndex(o => o.text.trim() === want)`
	}
}
