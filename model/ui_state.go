package model

import locators "student_e2e_go/Locators"

// FieldKind 表单控件类型
type FieldKind int

const (
	FieldText FieldKind = iota
	FieldRadioGroup
	FieldSelect
	FieldCheckbox
)

func (k FieldKind) String() string {
	switch k {
	case FieldText:
		return "text"
	case FieldRadioGroup:
		return "radio-group"
	case FieldSelect:
		return "select"
	case FieldCheckbox:
		return "checkbox"
	default:
		return "unknown"
	}
}

// FieldDescriptor 字段描述：读写操作和错误定位共用同一个 key
type FieldDescriptor struct {
	Name    string
	Locator locators.Locator
	Kind    FieldKind
}

// ModalKind 弹窗类型
type ModalKind int

const (
	ModalAdd ModalKind = iota + 1
	ModalEdit
)

// 弹窗标题
const (
	AddModalTitle  = "Add New Student"
	EditModalTitle = "Edit Student"
)

// ModalState 弹窗状态，同一时刻最多一个弹窗打开
type ModalState struct {
	Open bool
	Kind ModalKind
}

// ModalClosed 没有弹窗打开
var ModalClosed = ModalState{}

func (s ModalState) String() string {
	if !s.Open {
		return "Closed"
	}
	switch s.Kind {
	case ModalAdd:
		return "Open(Add)"
	case ModalEdit:
		return "Open(Edit)"
	default:
		return "Open"
	}
}

// ValidationError 行内校验错误，每次查询重新计算
type ValidationError struct {
	Field   string
	Visible bool
	Message string
}

// 通知标题
const (
	SuccessTitle = "Success!"
	ErrorTitle   = "Error!"
)

// NotificationState 右上角通知，几秒后自动消失
type NotificationState struct {
	Visible bool
	Title   string
	Body    string
}

// IsSuccess 成功通知
func (n NotificationState) IsSuccess() bool {
	return n.Visible && n.Title == SuccessTitle
}

// IsError 错误通知
func (n NotificationState) IsError() bool {
	return n.Visible && n.Title == ErrorTitle
}
