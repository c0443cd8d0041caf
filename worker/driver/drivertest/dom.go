// Package drivertest 提供内存中的假 DOM，实现 driver.Driver，供单元测试使用
package drivertest

import (
	"context"
	"errors"
	"fmt"
	"sync"

	locators "student_e2e_go/Locators"
	"student_e2e_go/worker/driver"
)

// errNotInteractable 元素存在但不可见，无法自然点击
var errNotInteractable = errors.New("element not interactable")

// Option 下拉框选项
type Option struct {
	Value string
	Text  string
}

// Element 假元素。字段直接暴露，测试可随时修改
type Element struct {
	Name       string
	Displayed  bool
	Enabled    bool
	Selected   bool
	InputValue string
	InnerText  string

	// Group 非空时为单选按钮，点击后同组其他按钮取消选中（由"应用"保证互斥）
	Group string
	// Checkbox 点击切换 Selected
	Checkbox bool
	// Options 非空时为下拉框
	Options       []Option
	SelectedIndex int
	// Occluded 中心点被遮挡，自然点击会被拦截
	Occluded bool
	// Detached 元素已从文档移除但句柄仍被持有，读取返回 driver.ErrElementNotFound
	Detached bool

	// OnClick 点击（自然或脚本）后回调，此时不持有 DOM 锁
	OnClick func()

	Clicks       int
	ScriptClicks int
	Scrolls      int

	dom *DOM
}

// NewElement 可见、可用的元素
func NewElement() *Element {
	return &Element{Displayed: true, Enabled: true}
}

// DOM 假文档，按定位器注册元素
type DOM struct {
	mu       sync.Mutex
	elements map[locators.Locator]*Element
	events   []string
	urls     []string

	// OnNavigate 导航后回调
	OnNavigate func(url string)
}

var (
	_ driver.Driver  = (*DOM)(nil)
	_ driver.Element = (*Element)(nil)
)

// New 空文档
func New() *DOM {
	return &DOM{elements: make(map[locators.Locator]*Element)}
}

// Add 注册元素，返回元素便于链式设置
func (d *DOM) Add(loc locators.Locator, el *Element) *Element {
	d.mu.Lock()
	defer d.mu.Unlock()
	if el.Name == "" {
		el.Name = loc.Expression
	}
	el.dom = d
	d.elements[loc] = el
	return el
}

// Remove 移除元素
func (d *DOM) Remove(locs ...locators.Locator) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, loc := range locs {
		delete(d.elements, loc)
	}
}

// Reset 移除全部元素，模拟整页重新加载
func (d *DOM) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.elements = make(map[locators.Locator]*Element)
}

// Lookup 取已注册元素
func (d *DOM) Lookup(loc locators.Locator) (*Element, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	el, ok := d.elements[loc]
	return el, ok
}

// Update 在锁内修改元素状态，用于模拟异步渲染
func (d *DOM) Update(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fn()
}

// Events 交互记录，形如 "scroll:modal-age"、"click:modal-ok-btn"
func (d *DOM) Events() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.events...)
}

// ResetEvents 清空交互记录
func (d *DOM) ResetEvents() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = nil
}

// URLs 已导航过的地址
func (d *DOM) URLs() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.urls...)
}

func (d *DOM) record(kind string, el *Element) {
	d.events = append(d.events, kind+":"+el.Name)
}

// Navigate 记录地址并触发回调
func (d *DOM) Navigate(ctx context.Context, url string) error {
	if err := driver.FromContext(ctx); err != nil {
		return err
	}
	d.mu.Lock()
	d.urls = append(d.urls, url)
	hook := d.OnNavigate
	d.mu.Unlock()
	if hook != nil {
		hook(url)
	}
	return nil
}

// Find 按定位器查找
func (d *DOM) Find(ctx context.Context, loc locators.Locator) (driver.Element, error) {
	if err := driver.FromContext(ctx); err != nil {
		return nil, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	el, ok := d.elements[loc]
	if !ok {
		return nil, fmt.Errorf("%s: %w", loc, driver.ErrElementNotFound)
	}
	return el, nil
}

// ExecuteScript 只认识 driver 包里定义的脚本
func (d *DOM) ExecuteScript(ctx context.Context, script string, e driver.Element) (any, error) {
	if err := driver.FromContext(ctx); err != nil {
		return nil, err
	}
	el, ok := e.(*Element)
	if !ok {
		return nil, fmt.Errorf("drivertest: foreign element %T", e)
	}
	d.mu.Lock()
	switch script {
	case driver.ScrollToBottomScript:
		el.Scrolls++
		d.record("scroll", el)
		d.mu.Unlock()
		return true, nil
	case driver.HitTestScript:
		defer d.mu.Unlock()
		return !el.Occluded, nil
	case driver.SelectedTextScript:
		defer d.mu.Unlock()
		return el.selectedText(), nil
	case driver.ClickScript:
		el.ScriptClicks++
		d.record("jsclick", el)
		hook := el.activate()
		d.mu.Unlock()
		if hook != nil {
			hook()
		}
		return true, nil
	default:
		d.mu.Unlock()
		return nil, fmt.Errorf("drivertest: unsupported script %q", script)
	}
}

// activate 切换选中状态，调用方持有锁
func (el *Element) activate() func() {
	switch {
	case el.Checkbox:
		el.Selected = !el.Selected
	case el.Group != "":
		for _, other := range el.dom.elements {
			if other.Group == el.Group {
				other.Selected = false
			}
		}
		el.Selected = true
	}
	return el.OnClick
}

func (el *Element) selectedText() string {
	if el.SelectedIndex < 0 || el.SelectedIndex >= len(el.Options) {
		return ""
	}
	return el.Options[el.SelectedIndex].Text
}

// Click 自然点击：不可见或被遮挡时失败
func (el *Element) Click(ctx context.Context) error {
	if err := driver.FromContext(ctx); err != nil {
		return err
	}
	d := el.dom
	d.mu.Lock()
	if !el.Displayed || !el.Enabled {
		d.mu.Unlock()
		return fmt.Errorf("%s: %w", el.Name, errNotInteractable)
	}
	if el.Occluded {
		d.mu.Unlock()
		return fmt.Errorf("%s: %w", el.Name, driver.ErrIntercepted)
	}
	el.Clicks++
	d.record("click", el)
	hook := el.activate()
	d.mu.Unlock()
	if hook != nil {
		hook()
	}
	return nil
}

func (el *Element) Clear(ctx context.Context) error {
	return el.mutate(ctx, "clear", func() error {
		el.InputValue = ""
		return nil
	})
}

func (el *Element) Type(ctx context.Context, text string) error {
	return el.mutate(ctx, "type", func() error {
		el.InputValue += text
		return nil
	})
}

func (el *Element) Value(ctx context.Context) (string, error) {
	return el.read(ctx, func() string { return el.InputValue })
}

func (el *Element) Text(ctx context.Context) (string, error) {
	return el.read(ctx, func() string { return el.InnerText })
}

func (el *Element) IsDisplayed(ctx context.Context) (bool, error) {
	return el.readBool(ctx, func() bool { return el.Displayed })
}

func (el *Element) IsEnabled(ctx context.Context) (bool, error) {
	return el.readBool(ctx, func() bool { return el.Enabled })
}

func (el *Element) IsSelected(ctx context.Context) (bool, error) {
	return el.readBool(ctx, func() bool { return el.Selected })
}

func (el *Element) SelectByText(ctx context.Context, text string) error {
	return el.choose(ctx, func(i int, o Option) bool { return o.Text == text }, "text "+text)
}

func (el *Element) SelectByValue(ctx context.Context, value string) error {
	return el.choose(ctx, func(i int, o Option) bool { return o.Value == value }, "value "+value)
}

func (el *Element) SelectByIndex(ctx context.Context, index int) error {
	return el.choose(ctx, func(i int, o Option) bool { return i == index }, fmt.Sprintf("index %d", index))
}

func (el *Element) SelectedText(ctx context.Context) (string, error) {
	return el.read(ctx, el.selectedText)
}

func (el *Element) choose(ctx context.Context, match func(int, Option) bool, desc string) error {
	return el.mutate(ctx, "select", func() error {
		for i, o := range el.Options {
			if match(i, o) {
				el.SelectedIndex = i
				el.InputValue = o.Value
				return nil
			}
		}
		return fmt.Errorf("%s: no option with %s", el.Name, desc)
	})
}

func (el *Element) mutate(ctx context.Context, kind string, fn func() error) error {
	if err := driver.FromContext(ctx); err != nil {
		return err
	}
	el.dom.mu.Lock()
	defer el.dom.mu.Unlock()
	if !el.Displayed {
		return fmt.Errorf("%s: %w", el.Name, errNotInteractable)
	}
	el.dom.record(kind, el)
	return fn()
}

func (el *Element) read(ctx context.Context, fn func() string) (string, error) {
	if err := driver.FromContext(ctx); err != nil {
		return "", err
	}
	el.dom.mu.Lock()
	defer el.dom.mu.Unlock()
	if el.Detached {
		return "", fmt.Errorf("%s: stale element: %w", el.Name, driver.ErrElementNotFound)
	}
	return fn(), nil
}

func (el *Element) readBool(ctx context.Context, fn func() bool) (bool, error) {
	if err := driver.FromContext(ctx); err != nil {
		return false, err
	}
	el.dom.mu.Lock()
	defer el.dom.mu.Unlock()
	if el.Detached {
		return false, fmt.Errorf("%s: stale element: %w", el.Name, driver.ErrElementNotFound)
	}
	return fn(), nil
}
