package pages

import (
	"context"
	"strings"

	locators "student_e2e_go/Locators"
	"student_e2e_go/model"
)

// NotificationOracle 右上角通知查询，不等待、不返回错误
// 通知几秒后自动消失，需要等待时用 StudentModal.WaitForNotification
type NotificationOracle struct {
	session *Session
	loc     locators.NotificationLocators
}

func NewNotificationOracle(s *Session) *NotificationOracle {
	return &NotificationOracle{session: s, loc: locators.Notification}
}

func (n *NotificationOracle) IsNotificationVisible(ctx context.Context) bool {
	return n.session.Sync.IsVisible(ctx, n.loc.Region)
}

func (n *NotificationOracle) Title(ctx context.Context) string {
	return strings.TrimSpace(n.session.Sync.TextOf(ctx, n.loc.Title))
}

func (n *NotificationOracle) Body(ctx context.Context) string {
	return strings.TrimSpace(n.session.Sync.TextOf(ctx, n.loc.Message))
}

// SuccessMessageVisible 只匹配包含成功文案的消息
func (n *NotificationOracle) SuccessMessageVisible(ctx context.Context) bool {
	return n.session.Sync.IsVisible(ctx, n.loc.SuccessMessage)
}

func (n *NotificationOracle) SuccessMessageText(ctx context.Context) string {
	return strings.TrimSpace(n.session.Sync.TextOf(ctx, n.loc.SuccessMessage))
}

// State 当前通知快照
func (n *NotificationOracle) State(ctx context.Context) model.NotificationState {
	if !n.IsNotificationVisible(ctx) {
		return model.NotificationState{}
	}
	return model.NotificationState{
		Visible: true,
		Title:   n.Title(ctx),
		Body:    n.Body(ctx),
	}
}
