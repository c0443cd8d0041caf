// Package pages 学生管理应用的页面对象
//
// 页面对象只是视图：持有会话和自己的定位器，导航方法返回目标页面对象，
// 不校验目标页面是否真的加载完成，断言留给调用方。
package pages

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"student_e2e_go/utils"
	"student_e2e_go/worker/driver"
)

// Session 一次测试独占的浏览器会话，显式传给每个页面对象
type Session struct {
	Driver  driver.Driver
	Sync    *utils.Synchronizer
	BaseURL string
}

// NewSession 创建会话，timeout 为默认等待时限
func NewSession(drv driver.Driver, baseURL string, timeout time.Duration) *Session {
	return &Session{
		Driver:  drv,
		Sync:    utils.NewSynchronizer(drv, timeout),
		BaseURL: baseURL,
	}
}

// Open 打开应用首页
func (s *Session) Open(ctx context.Context) (*HomePage, error) {
	log.Debugf("打开应用: %s", s.BaseURL)
	if err := s.Driver.Navigate(ctx, s.BaseURL); err != nil {
		return nil, fmt.Errorf("navigate to %s: %w", s.BaseURL, err)
	}
	return NewHomePage(s), nil
}
