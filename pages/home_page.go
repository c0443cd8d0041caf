package pages

import (
	"context"
	"fmt"

	locators "student_e2e_go/Locators"
)

// HomePage 首页
type HomePage struct {
	session *Session
	loc     locators.HomeLocators
}

func NewHomePage(s *Session) *HomePage {
	return &HomePage{session: s, loc: locators.Home}
}

// NavigateToStudentsManagement 点击 "Students Management" 卡片进入学生列表
func (p *HomePage) NavigateToStudentsManagement(ctx context.Context) (*StudentsPage, error) {
	if err := p.session.Sync.Click(ctx, p.loc.StudentCard); err != nil {
		return nil, fmt.Errorf("open students management: %w", err)
	}
	return NewStudentsPage(p.session), nil
}
