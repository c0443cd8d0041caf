package pages

import (
	"context"
	"fmt"
	"strconv"

	log "github.com/sirupsen/logrus"

	locators "student_e2e_go/Locators"
	"student_e2e_go/model"
	"student_e2e_go/worker/driver"
)

// modalFields 弹窗字段表，读写和错误定位共用字段名
func modalFields(loc locators.ModalLocators) map[string]model.FieldDescriptor {
	fields := []model.FieldDescriptor{
		{Name: model.FieldFirstName, Locator: loc.FirstName, Kind: model.FieldText},
		{Name: model.FieldLastName, Locator: loc.LastName, Kind: model.FieldText},
		{Name: model.FieldAge, Locator: loc.Age, Kind: model.FieldText},
		{Name: model.FieldEmail, Locator: loc.Email, Kind: model.FieldText},
		{Name: model.FieldPhone, Locator: loc.Phone, Kind: model.FieldText},
		{Name: model.FieldEnrollmentDate, Locator: loc.EnrollmentDate, Kind: model.FieldText},
		{Name: model.FieldGender, Locator: loc.GenderGroup, Kind: model.FieldRadioGroup},
		{Name: model.FieldCourse, Locator: loc.Course, Kind: model.FieldSelect},
		{Name: model.FieldStatus, Locator: loc.Status, Kind: model.FieldCheckbox},
	}
	table := make(map[string]model.FieldDescriptor, len(fields))
	for _, f := range fields {
		table[f.Name] = f
	}
	return table
}

// Descriptor 字段描述
func (m *StudentModal) Descriptor(field string) (model.FieldDescriptor, bool) {
	d, ok := m.fields[field]
	return d, ok
}

// SetField 按字段类型写入
// 单选组接受 male/female/other，复选框接受 true/false
func (m *StudentModal) SetField(ctx context.Context, field, value string) error {
	d, ok := m.fields[field]
	if !ok {
		return fmt.Errorf("unknown field %q", field)
	}
	switch d.Kind {
	case model.FieldText:
		return m.SetText(ctx, field, value)
	case model.FieldRadioGroup:
		g, ok := model.ParseGender(value)
		if !ok {
			return fmt.Errorf("field %s: unknown option %q", field, value)
		}
		return m.SelectGender(ctx, g)
	case model.FieldSelect:
		return m.SelectCourseByText(ctx, value)
	case model.FieldCheckbox:
		active, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("field %s: %w", field, err)
		}
		return m.SetStatusActive(ctx, active)
	default:
		return fmt.Errorf("field %s: unsupported kind %s", field, d.Kind)
	}
}

// Field 按字段类型读取；读取失败返回空串
func (m *StudentModal) Field(ctx context.Context, field string) string {
	d, ok := m.fields[field]
	if !ok {
		return ""
	}
	switch d.Kind {
	case model.FieldText:
		return m.Text(ctx, field)
	case model.FieldRadioGroup:
		for _, g := range model.Genders {
			if m.IsGenderSelected(ctx, g) {
				return string(g)
			}
		}
		return ""
	case model.FieldSelect:
		return m.Course(ctx)
	case model.FieldCheckbox:
		return strconv.FormatBool(m.IsStatusActive(ctx))
	default:
		return ""
	}
}

// SetText 文本框：滚动、清空、输入
func (m *StudentModal) SetText(ctx context.Context, field, value string) error {
	d, ok := m.fields[field]
	if !ok || d.Kind != model.FieldText {
		return fmt.Errorf("%q is not a text field", field)
	}
	if err := m.session.Sync.SetText(ctx, d.Locator, value); err != nil {
		return fmt.Errorf("enter %s: %w", field, err)
	}
	return nil
}

// Text 文本框当前值（value，不是标签文本）
func (m *StudentModal) Text(ctx context.Context, field string) string {
	d, ok := m.fields[field]
	if !ok || d.Kind != model.FieldText {
		return ""
	}
	v, err := m.session.Sync.Value(ctx, d.Locator)
	if err != nil {
		return ""
	}
	return v
}

func (m *StudentModal) EnterFirstName(ctx context.Context, v string) error {
	return m.SetText(ctx, model.FieldFirstName, v)
}

func (m *StudentModal) EnterLastName(ctx context.Context, v string) error {
	return m.SetText(ctx, model.FieldLastName, v)
}

func (m *StudentModal) EnterAge(ctx context.Context, v string) error {
	return m.SetText(ctx, model.FieldAge, v)
}

func (m *StudentModal) EnterEmail(ctx context.Context, v string) error {
	return m.SetText(ctx, model.FieldEmail, v)
}

func (m *StudentModal) EnterPhone(ctx context.Context, v string) error {
	return m.SetText(ctx, model.FieldPhone, v)
}

func (m *StudentModal) EnterEnrollmentDate(ctx context.Context, v string) error {
	return m.SetText(ctx, model.FieldEnrollmentDate, v)
}

func (m *StudentModal) genderLocator(g model.Gender) (locators.Locator, bool) {
	switch g {
	case model.GenderMale:
		return m.loc.GenderMale, true
	case model.GenderFemale:
		return m.loc.GenderFemale, true
	case model.GenderOther:
		return m.loc.GenderOther, true
	default:
		return locators.Locator{}, false
	}
}

// SelectGender 只点击目标选项；互斥由页面保证，这里不取消其他选项
func (m *StudentModal) SelectGender(ctx context.Context, g model.Gender) error {
	loc, ok := m.genderLocator(g)
	if !ok {
		return fmt.Errorf("unknown gender %q", g)
	}
	if err := m.session.Sync.Click(ctx, loc); err != nil {
		return fmt.Errorf("select gender %s: %w", g, err)
	}
	return nil
}

// IsGenderSelected 每个选项独立查询
func (m *StudentModal) IsGenderSelected(ctx context.Context, g model.Gender) bool {
	loc, ok := m.genderLocator(g)
	if !ok {
		return false
	}
	el, err := m.session.Sync.Resolve(ctx, loc)
	if err != nil {
		return false
	}
	selected, err := el.IsSelected(ctx)
	return err == nil && selected
}

// IsAnyGenderSelected 三个选项的逻辑或
func (m *StudentModal) IsAnyGenderSelected(ctx context.Context) bool {
	for _, g := range model.Genders {
		if m.IsGenderSelected(ctx, g) {
			return true
		}
	}
	return false
}

// SelectCourseByText 按可见文本选择课程
func (m *StudentModal) SelectCourseByText(ctx context.Context, text string) error {
	el, err := m.courseSelect(ctx)
	if err != nil {
		return err
	}
	if err := el.SelectByText(ctx, text); err != nil {
		return fmt.Errorf("select course %q: %w", text, err)
	}
	return nil
}

// SelectCourseByValue 按 option value 选择课程
func (m *StudentModal) SelectCourseByValue(ctx context.Context, value string) error {
	el, err := m.courseSelect(ctx)
	if err != nil {
		return err
	}
	if err := el.SelectByValue(ctx, value); err != nil {
		return fmt.Errorf("select course value %q: %w", value, err)
	}
	return nil
}

// SelectCourseByIndex 按序号选择课程，0 为占位项
func (m *StudentModal) SelectCourseByIndex(ctx context.Context, index int) error {
	el, err := m.courseSelect(ctx)
	if err != nil {
		return err
	}
	if err := el.SelectByIndex(ctx, index); err != nil {
		return fmt.Errorf("select course #%d: %w", index, err)
	}
	return nil
}

func (m *StudentModal) courseSelect(ctx context.Context) (driver.Element, error) {
	el, err := m.session.Sync.Reveal(ctx, m.loc.Course)
	if err != nil {
		return nil, fmt.Errorf("course: %w", err)
	}
	return el, nil
}

// Course 当前选中课程的可见文本
func (m *StudentModal) Course(ctx context.Context) string {
	el, err := m.session.Sync.Resolve(ctx, m.loc.Course)
	if err != nil {
		return ""
	}
	text, err := el.SelectedText(ctx)
	if err != nil {
		return ""
	}
	return text
}

// SetStatusActive 只有当前状态与目标不同时才点击，重复调用不产生额外点击
func (m *StudentModal) SetStatusActive(ctx context.Context, active bool) error {
	el, err := m.session.Sync.Reveal(ctx, m.loc.Status)
	if err != nil {
		return fmt.Errorf("status: %w", err)
	}
	current, err := el.IsSelected(ctx)
	if err != nil {
		return fmt.Errorf("status: %w", err)
	}
	if current == active {
		return nil
	}
	if err := el.Click(ctx); err != nil {
		return fmt.Errorf("toggle status: %w", err)
	}
	return nil
}

// IsStatusActive 复选框是否勾选
func (m *StudentModal) IsStatusActive(ctx context.Context) bool {
	el, err := m.session.Sync.Resolve(ctx, m.loc.Status)
	if err != nil {
		return false
	}
	active, err := el.IsSelected(ctx)
	return err == nil && active
}

// FillValidStudentForm 一次填写完整表单：性别按标签、课程按文本、状态强制为启用
// 性别或课程为空时保持未选择，便于构造缺项的负向用例
func (m *StudentModal) FillValidStudentForm(ctx context.Context, s model.Student) error {
	steps := []struct {
		field string
		value string
	}{
		{model.FieldFirstName, s.FirstName},
		{model.FieldLastName, s.LastName},
		{model.FieldAge, s.Age},
		{model.FieldEmail, s.Email},
		{model.FieldPhone, s.Phone},
		{model.FieldEnrollmentDate, s.EnrollmentDate},
	}
	for _, step := range steps {
		if err := m.SetText(ctx, step.field, step.value); err != nil {
			return err
		}
	}

	if s.Gender != "" {
		g, ok := model.ParseGender(s.Gender)
		if !ok {
			return fmt.Errorf("unknown gender %q", s.Gender)
		}
		if err := m.SelectGender(ctx, g); err != nil {
			return err
		}
	}

	if s.Course != "" {
		if err := m.SelectCourseByText(ctx, s.Course); err != nil {
			return err
		}
	}
	if err := m.SetStatusActive(ctx, true); err != nil {
		return err
	}
	log.Debugf("表单填写完成: %s %s", s.FirstName, s.LastName)
	return nil
}
