package drivertest

import (
	"strings"
	"time"

	locators "student_e2e_go/Locators"
	"student_e2e_go/model"
)

// DefaultCourses 课程下拉框，第 0 项为占位
var DefaultCourses = []Option{
	{Value: "", Text: "Select a course"},
	{Value: "1", Text: "CS101 - Introduction to Programming"},
	{Value: "2", Text: "CS201 - Data Structures and Algorithms"},
	{Value: "3", Text: "MATH101 - Calculus I"},
}

// StudentApp 模拟学生管理页面：首页卡片、列表页、新增/编辑弹窗、通知
type StudentApp struct {
	DOM *DOM

	// Validate 提交时的客户端校验，返回 字段名 -> 错误文案
	Validate func(model.Student) map[string]string
	Courses  []Option
	// Students 列表中已有的记录，key 为学生 id
	Students map[int]StudentRecord
	// Submitted 校验通过并提交的记录
	Submitted []model.Student
	// 以下延迟模拟异步 UI，为 0 时在点击回调内同步渲染
	// ListDelay 点击首页卡片后列表页的渲染延迟
	ListDelay time.Duration
	// ModalDelay 点击新增/编辑后弹窗的渲染延迟
	ModalDelay time.Duration
	// NotificationDelay 提交后通知的渲染延迟
	NotificationDelay time.Duration
	// ModalCloseDelay 提交成功后弹窗晚于通知关闭
	ModalCloseDelay time.Duration

	mode    model.ModalKind
	editing int
}

// StudentRecord 列表中的一条记录
type StudentRecord struct {
	Student model.Student
	Active  bool
}

// NewStudentApp 创建应用，导航到任意地址都会清空页面并渲染首页
func NewStudentApp(validate func(model.Student) map[string]string) *StudentApp {
	a := &StudentApp{
		DOM:      New(),
		Validate: validate,
		Courses:  DefaultCourses,
		Students: map[int]StudentRecord{},
	}
	a.DOM.OnNavigate = func(string) {
		a.DOM.Reset()
		a.mode = 0
		a.renderHome()
	}
	return a
}

// later 延迟为 0 时立即执行
func later(d time.Duration, fn func()) {
	if d > 0 {
		time.AfterFunc(d, fn)
		return
	}
	fn()
}

func (a *StudentApp) renderHome() {
	card := NewElement()
	card.OnClick = func() { later(a.ListDelay, a.renderList) }
	a.DOM.Add(locators.Home.StudentCard, card)
}

func (a *StudentApp) renderList() {
	add := NewElement()
	add.OnClick = func() {
		later(a.ModalDelay, func() { a.openModal(model.ModalAdd, 0, StudentRecord{Active: true}) })
	}
	a.DOM.Add(locators.Students.AddStudentButton, add)
	a.DOM.Add(locators.Students.StudentTable, NewElement())

	for id, rec := range a.Students {
		id, rec := id, rec
		edit := NewElement()
		edit.OnClick = func() {
			later(a.ModalDelay, func() { a.openModal(model.ModalEdit, id, rec) })
		}
		a.DOM.Add(locators.Students.EditStudentButton(id), edit)
	}
}

func (a *StudentApp) modalInputs() []locators.Locator {
	m := locators.Modal
	return []locators.Locator{
		m.FirstName, m.LastName, m.Age, m.Email, m.Phone, m.EnrollmentDate,
	}
}

func (a *StudentApp) openModal(kind model.ModalKind, id int, rec StudentRecord) {
	a.mode = kind
	a.editing = id
	m := locators.Modal
	s := rec.Student

	a.DOM.Add(m.Overlay, NewElement())
	title := NewElement()
	title.InnerText = model.AddModalTitle
	if kind == model.ModalEdit {
		title.InnerText = model.EditModalTitle
	}
	a.DOM.Add(m.Title, title)

	closeBtn := NewElement()
	closeBtn.OnClick = a.closeModal
	a.DOM.Add(m.CloseButton, closeBtn)
	cancelBtn := NewElement()
	cancelBtn.OnClick = a.closeModal
	a.DOM.Add(m.CancelButton, cancelBtn)
	okBtn := NewElement()
	okBtn.OnClick = a.submit
	a.DOM.Add(m.OkButton, okBtn)

	values := map[locators.Locator]string{
		m.FirstName:      s.FirstName,
		m.LastName:       s.LastName,
		m.Age:            s.Age,
		m.Email:          s.Email,
		m.Phone:          s.Phone,
		m.EnrollmentDate: s.EnrollmentDate,
	}
	for _, loc := range a.modalInputs() {
		el := NewElement()
		el.InputValue = values[loc]
		a.DOM.Add(loc, el)
	}

	gender, _ := model.ParseGender(s.Gender)
	for g, loc := range genderLocators() {
		el := NewElement()
		el.Group = model.FieldGender
		el.Selected = g == gender
		a.DOM.Add(loc, el)
	}

	course := NewElement()
	course.Options = append([]Option(nil), a.Courses...)
	for i, o := range course.Options {
		if s.Course != "" && o.Text == s.Course {
			course.SelectedIndex = i
			course.InputValue = o.Value
		}
	}
	a.DOM.Add(m.Course, course)

	status := NewElement()
	status.Checkbox = true
	status.Selected = rec.Active
	a.DOM.Add(m.Status, status)
}

func genderLocators() map[model.Gender]locators.Locator {
	return map[model.Gender]locators.Locator{
		model.GenderMale:   locators.Modal.GenderMale,
		model.GenderFemale: locators.Modal.GenderFemale,
		model.GenderOther:  locators.Modal.GenderOther,
	}
}

// ErrorLocator 某字段错误文本在页面上的位置
func ErrorLocator(field string) locators.Locator {
	switch field {
	case model.FieldGender:
		return locators.GroupError("Gender")
	case model.FieldCourse:
		return locators.SelectError(field)
	default:
		return locators.InputError(field)
	}
}

func (a *StudentApp) clearErrors() {
	for _, f := range model.FormFields {
		a.DOM.Remove(ErrorLocator(f))
	}
}

func (a *StudentApp) closeModal() {
	m := locators.Modal
	a.DOM.Remove(m.Overlay, m.Title, m.CloseButton, m.CancelButton, m.OkButton, m.Course, m.Status)
	a.DOM.Remove(a.modalInputs()...)
	for _, loc := range genderLocators() {
		a.DOM.Remove(loc)
	}
	a.clearErrors()
	a.mode = 0
}

// collect 读取当前表单内容
func (a *StudentApp) collect() (model.Student, bool) {
	var s model.Student
	active := false
	m := locators.Modal
	a.DOM.Update(func() {
		els := a.DOM.elements
		get := func(loc locators.Locator) string {
			if el, ok := els[loc]; ok {
				return el.InputValue
			}
			return ""
		}
		s.FirstName = get(m.FirstName)
		s.LastName = get(m.LastName)
		s.Age = get(m.Age)
		s.Email = get(m.Email)
		s.Phone = get(m.Phone)
		s.EnrollmentDate = get(m.EnrollmentDate)
		for g, loc := range genderLocators() {
			if el, ok := els[loc]; ok && el.Selected {
				s.Gender = string(g)
			}
		}
		if el, ok := els[m.Course]; ok && el.InputValue != "" {
			s.Course = el.selectedText()
		}
		if el, ok := els[m.Status]; ok {
			active = el.Selected
		}
	})
	return s, active
}

func (a *StudentApp) submit() {
	s, active := a.collect()
	a.clearErrors()

	var errs map[string]string
	if a.Validate != nil {
		errs = a.Validate(s)
	}
	if len(errs) > 0 {
		for field, msg := range errs {
			el := NewElement()
			el.InnerText = msg
			a.DOM.Add(ErrorLocator(field), el)
		}
		a.notify(model.ErrorTitle, "Please fill in all required fields")
		return
	}

	a.Submitted = append(a.Submitted, s)
	if a.mode == model.ModalEdit {
		a.Students[a.editing] = StudentRecord{Student: s, Active: active}
	}
	a.notify(model.SuccessTitle, locators.SuccessPhrase)
	later(a.ModalCloseDelay, a.closeModal)
}

// notify 渲染通知
func (a *StudentApp) notify(title, body string) {
	render := func() {
		n := locators.Notification
		a.DOM.Remove(n.Region, n.Title, n.Message, n.SuccessMessage)
		a.DOM.Add(n.Region, NewElement())
		t := NewElement()
		t.InnerText = title
		a.DOM.Add(n.Title, t)
		msg := NewElement()
		msg.InnerText = body
		a.DOM.Add(n.Message, msg)
		if strings.Contains(body, locators.SuccessPhrase) {
			ok := NewElement()
			ok.InnerText = body
			a.DOM.Add(n.SuccessMessage, ok)
		}
	}
	later(a.NotificationDelay, render)
}

// DismissNotification 通知自动消失
func (a *StudentApp) DismissNotification() {
	n := locators.Notification
	a.DOM.Remove(n.Region, n.Title, n.Message, n.SuccessMessage)
}
