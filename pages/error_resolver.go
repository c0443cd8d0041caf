package pages

import (
	"context"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	locators "student_e2e_go/Locators"
	"student_e2e_go/model"
)

// FieldCategory 错误文本在 DOM 中的相对位置取决于控件类别
type FieldCategory int

const (
	PlainInput FieldCategory = iota
	GroupedControl
	NativeListbox
)

func (c FieldCategory) String() string {
	switch c {
	case PlainInput:
		return "plain-input"
	case GroupedControl:
		return "grouped-control"
	case NativeListbox:
		return "native-listbox"
	default:
		return "unknown"
	}
}

// ErrorLocatorStrategy 由字段名推导错误文本定位器
type ErrorLocatorStrategy func(field string) locators.Locator

// GroupedControlStrategy 组标签 -> 其后的组容器 -> 第一个错误文本
func GroupedControlStrategy(field string) locators.Locator {
	return locators.GroupError(groupLabel(field))
}

// NativeListboxStrategy select 后面的错误文本
func NativeListboxStrategy(field string) locators.Locator {
	return locators.SelectError(field)
}

// PlainInputStrategy input 后面的错误文本
func PlainInputStrategy(field string) locators.Locator {
	return locators.InputError(field)
}

var errorStrategies = map[FieldCategory]ErrorLocatorStrategy{
	PlainInput:     PlainInputStrategy,
	GroupedControl: GroupedControlStrategy,
	NativeListbox:  NativeListboxStrategy,
}

var fieldCategories = map[string]FieldCategory{
	model.FieldGender: GroupedControl,
	model.FieldCourse: NativeListbox,
}

// groupLabel gender -> Gender
func groupLabel(field string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(field, "-", " "))
}

// CategoryOf 未登记的字段都按普通输入框处理
func CategoryOf(field string) FieldCategory {
	if c, ok := fieldCategories[field]; ok {
		return c
	}
	return PlainInput
}

// ErrorLocatorFor 字段的错误文本定位器
func ErrorLocatorFor(field string) locators.Locator {
	return errorStrategies[CategoryOf(field)](field)
}

// ErrorResolver 行内校验错误查询，所有方法都不返回错误
type ErrorResolver struct {
	session *Session
}

func NewErrorResolver(s *Session) *ErrorResolver {
	return &ErrorResolver{session: s}
}

// IsErrorVisible 错误文本存在且可见
func (r *ErrorResolver) IsErrorVisible(ctx context.Context, field string) bool {
	return r.session.Sync.IsVisible(ctx, ErrorLocatorFor(field))
}

// ErrorMessage 错误文本，不存在时为空串
func (r *ErrorResolver) ErrorMessage(ctx context.Context, field string) string {
	return strings.TrimSpace(r.session.Sync.TextOf(ctx, ErrorLocatorFor(field)))
}

// Error 每次调用重新读取页面
func (r *ErrorResolver) Error(ctx context.Context, field string) model.ValidationError {
	e := model.ValidationError{Field: field, Visible: r.IsErrorVisible(ctx, field)}
	if e.Visible {
		e.Message = r.ErrorMessage(ctx, field)
	}
	return e
}

// VisibleErrors 当前可见的全部行内错误，key 为字段名
func (r *ErrorResolver) VisibleErrors(ctx context.Context) map[string]string {
	visible := make(map[string]string)
	for _, field := range model.FormFields {
		if e := r.Error(ctx, field); e.Visible {
			visible[field] = e.Message
		}
	}
	return visible
}
