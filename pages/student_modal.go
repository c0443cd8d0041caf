package pages

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	locators "student_e2e_go/Locators"
	"student_e2e_go/model"
)

// StudentModal 新增/编辑学生弹窗
type StudentModal struct {
	session      *Session
	kind         model.ModalKind
	loc          locators.ModalLocators
	fields       map[string]model.FieldDescriptor
	errors       *ErrorResolver
	notification *NotificationOracle
}

// NewStudentModal kind 为打开弹窗的导航动作所期望的类型
func NewStudentModal(s *Session, kind model.ModalKind) *StudentModal {
	return &StudentModal{
		session:      s,
		kind:         kind,
		loc:          locators.Modal,
		fields:       modalFields(locators.Modal),
		errors:       NewErrorResolver(s),
		notification: NewNotificationOracle(s),
	}
}

// IsModalVisible 遮罩层存在且可见；任何查询失败都返回 false
func (m *StudentModal) IsModalVisible(ctx context.Context) bool {
	return m.session.Sync.IsVisible(ctx, m.loc.Overlay)
}

// State 当前弹窗状态，类型由标题判断
func (m *StudentModal) State(ctx context.Context) model.ModalState {
	if !m.IsModalVisible(ctx) {
		return model.ModalClosed
	}
	switch strings.TrimSpace(m.session.Sync.TextOf(ctx, m.loc.Title)) {
	case model.AddModalTitle:
		return model.ModalState{Open: true, Kind: model.ModalAdd}
	case model.EditModalTitle:
		return model.ModalState{Open: true, Kind: model.ModalEdit}
	default:
		return model.ModalState{Open: true, Kind: m.kind}
	}
}

// Title 弹窗标题
func (m *StudentModal) Title(ctx context.Context) (string, error) {
	el, err := m.session.Sync.Resolve(ctx, m.loc.Title)
	if err != nil {
		return "", fmt.Errorf("modal title: %w", err)
	}
	title, err := el.Text(ctx)
	if err != nil {
		return "", fmt.Errorf("modal title: %w", err)
	}
	return title, nil
}

// Close 点击右上角关闭
func (m *StudentModal) Close(ctx context.Context) (*StudentsPage, error) {
	return m.leave(ctx, m.loc.CloseButton, "close")
}

// Cancel 点击取消
func (m *StudentModal) Cancel(ctx context.Context) (*StudentsPage, error) {
	return m.leave(ctx, m.loc.CancelButton, "cancel")
}

// Submit 点击确定提交表单
func (m *StudentModal) Submit(ctx context.Context) (*StudentsPage, error) {
	return m.leave(ctx, m.loc.OkButton, "submit")
}

// Update 编辑弹窗的提交，与 Submit 是同一个按钮
func (m *StudentModal) Update(ctx context.Context) (*StudentsPage, error) {
	return m.Submit(ctx)
}

func (m *StudentModal) leave(ctx context.Context, button locators.Locator, action string) (*StudentsPage, error) {
	if err := m.session.Sync.Click(ctx, button); err != nil {
		return nil, fmt.Errorf("%s modal: %w", action, err)
	}
	log.Debugf("弹窗操作: %s", action)
	return NewStudentsPage(m.session), nil
}

// WaitForNotification 提交后等待通知出现
func (m *StudentModal) WaitForNotification(ctx context.Context) error {
	_, err := m.session.Sync.WaitUntilVisible(ctx, locators.Notification.Region, 0)
	return err
}

// WaitUntilClosed 等待遮罩层消失，通知可能先于弹窗关闭出现
func (m *StudentModal) WaitUntilClosed(ctx context.Context) error {
	return m.session.Sync.WaitUntil(ctx, 0, "wait modal closed", func(ctx context.Context) (bool, error) {
		return !m.IsModalVisible(ctx), nil
	})
}

// Errors 行内校验错误解析器
func (m *StudentModal) Errors() *ErrorResolver {
	return m.errors
}

// Notification 通知读取器
func (m *StudentModal) Notification() *NotificationOracle {
	return m.notification
}

// IsValidationErrorVisible 某字段的行内错误是否可见
func (m *StudentModal) IsValidationErrorVisible(ctx context.Context, field string) bool {
	return m.errors.IsErrorVisible(ctx, field)
}

// ValidationErrorMessage 某字段的行内错误文案
func (m *StudentModal) ValidationErrorMessage(ctx context.Context, field string) string {
	return m.errors.ErrorMessage(ctx, field)
}

// ValidationError 某字段的行内错误快照
func (m *StudentModal) ValidationError(ctx context.Context, field string) model.ValidationError {
	return m.errors.Error(ctx, field)
}

func (m *StudentModal) IsAlertNotificationVisible(ctx context.Context) bool {
	return m.notification.IsNotificationVisible(ctx)
}

func (m *StudentModal) AlertNotificationTitle(ctx context.Context) string {
	return m.notification.Title(ctx)
}

func (m *StudentModal) IsSuccessMessageVisible(ctx context.Context) bool {
	return m.notification.SuccessMessageVisible(ctx)
}

func (m *StudentModal) SuccessMessageText(ctx context.Context) string {
	return m.notification.SuccessMessageText(ctx)
}
