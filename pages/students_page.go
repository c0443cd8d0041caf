package pages

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	locators "student_e2e_go/Locators"
	"student_e2e_go/model"
)

// StudentsPage 学生列表页
type StudentsPage struct {
	session *Session
	loc     locators.StudentsLocators
}

func NewStudentsPage(s *Session) *StudentsPage {
	return &StudentsPage{session: s, loc: locators.Students}
}

// IsLoaded 新增按钮可见即视为列表页已渲染
func (p *StudentsPage) IsLoaded(ctx context.Context) bool {
	return p.session.Sync.IsVisible(ctx, p.loc.AddStudentButton)
}

// NavigateToAddStudent 打开新增弹窗
func (p *StudentsPage) NavigateToAddStudent(ctx context.Context) (*StudentModal, error) {
	if err := p.session.Sync.Click(ctx, p.loc.AddStudentButton); err != nil {
		return nil, fmt.Errorf("open add student modal: %w", err)
	}
	return NewStudentModal(p.session, model.ModalAdd), nil
}

// NavigateToEditStudent 打开某个学生的编辑弹窗
// 等待可点击后用脚本点击表格行内的按钮
func (p *StudentsPage) NavigateToEditStudent(ctx context.Context, studentID int) (*StudentModal, error) {
	s := p.session.Sync
	button := p.loc.EditStudentButton(studentID)

	if _, err := s.Reveal(ctx, button); err != nil {
		return nil, fmt.Errorf("open edit modal for student %d: %w", studentID, err)
	}
	if _, err := s.WaitUntilClickable(ctx, button, 0); err != nil {
		return nil, fmt.Errorf("open edit modal for student %d: %w", studentID, err)
	}
	if err := s.ClickViaScript(ctx, button); err != nil {
		return nil, fmt.Errorf("open edit modal for student %d: %w", studentID, err)
	}
	log.Debugf("打开学生 %d 的编辑弹窗", studentID)
	return NewStudentModal(p.session, model.ModalEdit), nil
}
