package utils

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"k8s.io/apimachinery/pkg/util/wait"

	locators "student_e2e_go/Locators"
	"student_e2e_go/worker/driver"
)

// DefaultPollInterval 条件等待的轮询间隔
const DefaultPollInterval = 100 * time.Millisecond

// Synchronizer 同步工具：定位、条件等待、滚动、脚本点击
// 所有等待都阻塞调用方，超时直接返回错误，不自动重试
type Synchronizer struct {
	driver   driver.Driver
	timeout  time.Duration
	interval time.Duration
}

// NewSynchronizer 创建同步工具，timeout 为默认等待时限
func NewSynchronizer(drv driver.Driver, timeout time.Duration) *Synchronizer {
	return &Synchronizer{
		driver:   drv,
		timeout:  timeout,
		interval: DefaultPollInterval,
	}
}

// WithPollInterval 返回使用指定轮询间隔的副本
func (s *Synchronizer) WithPollInterval(interval time.Duration) *Synchronizer {
	cp := *s
	cp.interval = interval
	return &cp
}

// Driver 底层驱动
func (s *Synchronizer) Driver() driver.Driver {
	return s.driver
}

// Timeout 默认等待时限
func (s *Synchronizer) Timeout() time.Duration {
	return s.timeout
}

// Resolve 定位元素，不存在时返回 driver.ErrElementNotFound
func (s *Synchronizer) Resolve(ctx context.Context, loc locators.Locator) (driver.Element, error) {
	return s.driver.Find(ctx, loc)
}

// WaitUntil 轮询 cond 直到返回 true、返回错误或超时
// timeout <= 0 时使用默认时限
func (s *Synchronizer) WaitUntil(ctx context.Context, timeout time.Duration, what string, cond func(context.Context) (bool, error)) error {
	if timeout <= 0 {
		timeout = s.timeout
	}
	err := wait.PollUntilContextTimeout(ctx, s.interval, timeout, true, func(pollCtx context.Context) (bool, error) {
		ok, err := cond(pollCtx)
		if err != nil && pollCtx.Err() != nil {
			// 时限在一次检查中途到达，交给轮询器按超时处理
			return false, nil
		}
		return ok, err
	})
	if err == nil {
		return nil
	}
	if cerr := driver.FromContext(ctx); cerr != nil {
		return fmt.Errorf("%s: %w", what, cerr)
	}
	if wait.Interrupted(err) {
		return fmt.Errorf("%s: not satisfied within %s: %w", what, timeout, driver.ErrTimeout)
	}
	return fmt.Errorf("%s: %w", what, err)
}

// find 等待过程中的定位：元素不存在不算错误
func (s *Synchronizer) find(ctx context.Context, loc locators.Locator) (driver.Element, bool, error) {
	el, err := s.driver.Find(ctx, loc)
	if errors.Is(err, driver.ErrElementNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return el, true, nil
}

// WaitUntilVisible 等待元素出现并可见
func (s *Synchronizer) WaitUntilVisible(ctx context.Context, loc locators.Locator, timeout time.Duration) (driver.Element, error) {
	log.WithField("locator", loc.String()).Debug("等待元素可见")

	var visible driver.Element
	err := s.WaitUntil(ctx, timeout, "wait visible "+loc.String(), func(ctx context.Context) (bool, error) {
		el, ok, err := s.find(ctx, loc)
		if !ok || err != nil {
			return false, err
		}
		if shown, err := el.IsDisplayed(ctx); err != nil || !shown {
			return false, err
		}
		visible = el
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return visible, nil
}

// WaitUntilClickable 等待元素可见、可用且中心点未被遮挡
// 超时前最后一次检查若是被遮挡，错误同时包含 driver.ErrIntercepted
func (s *Synchronizer) WaitUntilClickable(ctx context.Context, loc locators.Locator, timeout time.Duration) (driver.Element, error) {
	log.WithField("locator", loc.String()).Debug("等待元素可点击")

	var (
		clickable   driver.Element
		intercepted bool
	)
	err := s.WaitUntil(ctx, timeout, "wait clickable "+loc.String(), func(ctx context.Context) (bool, error) {
		intercepted = false
		el, ok, err := s.find(ctx, loc)
		if !ok || err != nil {
			return false, err
		}
		if shown, err := el.IsDisplayed(ctx); err != nil || !shown {
			return false, err
		}
		if enabled, err := el.IsEnabled(ctx); err != nil || !enabled {
			return false, err
		}
		hit, err := s.driver.ExecuteScript(ctx, driver.HitTestScript, el)
		if err != nil {
			return false, err
		}
		if !driver.AsBool(hit) {
			intercepted = true
			return false, nil
		}
		clickable = el
		return true, nil
	})
	if err != nil {
		if intercepted && errors.Is(err, driver.ErrTimeout) {
			err = fmt.Errorf("%w: %w", err, driver.ErrIntercepted)
		}
		return nil, err
	}
	return clickable, nil
}

// ScrollIntoView 滚动使元素贴近视口底部
// 固定头部会遮住贴顶的元素，点击会落在头部上
func (s *Synchronizer) ScrollIntoView(ctx context.Context, loc locators.Locator) error {
	el, err := s.driver.Find(ctx, loc)
	if err != nil {
		return fmt.Errorf("scroll %s: %w", loc, err)
	}
	return s.scroll(ctx, loc, el)
}

func (s *Synchronizer) scroll(ctx context.Context, loc locators.Locator, el driver.Element) error {
	log.WithField("locator", loc.String()).Debug("滚动到元素")
	if _, err := s.driver.ExecuteScript(ctx, driver.ScrollToBottomScript, el); err != nil {
		return fmt.Errorf("scroll %s: %w", loc, err)
	}
	return nil
}

// ClickViaScript 通过脚本触发点击，绕过被固定定位祖先遮挡的指针事件
func (s *Synchronizer) ClickViaScript(ctx context.Context, loc locators.Locator) error {
	el, err := s.driver.Find(ctx, loc)
	if err != nil {
		return fmt.Errorf("script click %s: %w", loc, err)
	}
	log.WithField("locator", loc.String()).Debug("脚本点击")
	if _, err := s.driver.ExecuteScript(ctx, driver.ClickScript, el); err != nil {
		return fmt.Errorf("script click %s: %w", loc, err)
	}
	return nil
}

// Reveal 等待元素可见后滚动到视口底部，用于刚渲染出来的控件
func (s *Synchronizer) Reveal(ctx context.Context, loc locators.Locator) (driver.Element, error) {
	el, err := s.WaitUntilVisible(ctx, loc, 0)
	if err != nil {
		return nil, err
	}
	if err := s.scroll(ctx, loc, el); err != nil {
		return nil, err
	}
	return el, nil
}

// Click 等待可见、滚动、等待可点击后自然点击
func (s *Synchronizer) Click(ctx context.Context, loc locators.Locator) error {
	if _, err := s.Reveal(ctx, loc); err != nil {
		return err
	}
	el, err := s.WaitUntilClickable(ctx, loc, 0)
	if err != nil {
		return err
	}
	log.WithField("locator", loc.String()).Debug("点击")
	if err := el.Click(ctx); err != nil {
		return fmt.Errorf("click %s: %w", loc, err)
	}
	return nil
}

// SetText 等待可见、滚动、清空、输入
func (s *Synchronizer) SetText(ctx context.Context, loc locators.Locator, value string) error {
	el, err := s.Reveal(ctx, loc)
	if err != nil {
		return fmt.Errorf("set text: %w", err)
	}
	if err := el.Clear(ctx); err != nil {
		return fmt.Errorf("clear %s: %w", loc, err)
	}
	if err := el.Type(ctx, value); err != nil {
		return fmt.Errorf("type into %s: %w", loc, err)
	}
	return nil
}

// Value 读取输入框当前值
func (s *Synchronizer) Value(ctx context.Context, loc locators.Locator) (string, error) {
	el, err := s.driver.Find(ctx, loc)
	if err != nil {
		return "", err
	}
	return el.Value(ctx)
}

// IsVisible 查询：任何定位失败都视为不可见
func (s *Synchronizer) IsVisible(ctx context.Context, loc locators.Locator) bool {
	el, err := s.driver.Find(ctx, loc)
	if err != nil {
		return false
	}
	shown, err := el.IsDisplayed(ctx)
	return err == nil && shown
}

// TextOf 查询：任何定位失败都返回空串
func (s *Synchronizer) TextOf(ctx context.Context, loc locators.Locator) string {
	el, err := s.driver.Find(ctx, loc)
	if err != nil {
		return ""
	}
	text, err := el.Text(ctx)
	if err != nil {
		return ""
	}
	return text
}

// Delay 固定时长等待，只在没有可用的可见性条件时使用
func (s *Synchronizer) Delay(ctx context.Context, d time.Duration) error {
	log.WithField("delay", d).Debug("固定等待")
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("delay %s: %w", d, driver.FromContext(ctx))
	}
}
