package locators

import "fmt"

/**
 * 学生管理应用网页元素定位器
 * 按页面对象分组，集中管理所有页面元素的定位表达式
 */

// ErrorTextClass 行内校验错误文本的样式类
const ErrorTextClass = "text-red-500"

// SuccessPhrase 新增成功通知的固定文案
const SuccessPhrase = "Add student successful"

// HomeLocators 首页元素
type HomeLocators struct {
	StudentCard Locator
}

// Home 首页的 "Students Management" 卡片
var Home = HomeLocators{
	StudentCard: XPath("//div[@class='ant-card-body']//h3[text()='Students Management']/ancestor::div[@class='ant-card-body']"),
}

// StudentsLocators 学生列表页元素
type StudentsLocators struct {
	AddStudentButton Locator
	StudentTable     Locator
}

// Students 学生列表页
var Students = StudentsLocators{
	AddStudentButton: ID("add-student-btn"),
	StudentTable:     Class("ant-table"),
}

// EditStudentButton 列表中某个学生的编辑按钮
func (StudentsLocators) EditStudentButton(studentID int) Locator {
	return XPath(fmt.Sprintf("//button[@id='edit-student-btn-%d']", studentID))
}

// ModalLocators 新增/编辑学生弹窗元素
type ModalLocators struct {
	Overlay      Locator
	Title        Locator
	CloseButton  Locator
	CancelButton Locator
	OkButton     Locator

	FirstName      Locator
	LastName       Locator
	Age            Locator
	Email          Locator
	Phone          Locator
	Course         Locator
	EnrollmentDate Locator
	Status         Locator

	GenderGroup  Locator
	GenderMale   Locator
	GenderFemale Locator
	GenderOther  Locator
}

// Modal 弹窗
var Modal = ModalLocators{
	Overlay:      ID("student-modal-overlay"),
	Title:        ID("modal-title"),
	CloseButton:  ID("modal-close-btn"),
	CancelButton: ID("modal-cancel-btn"),
	OkButton:     ID("modal-ok-btn"),

	FirstName:      ID(ModalInputID("first-name")),
	LastName:       ID(ModalInputID("last-name")),
	Age:            ID(ModalInputID("age")),
	Email:          ID(ModalInputID("email")),
	Phone:          ID(ModalInputID("phone")),
	Course:         ID(ModalInputID("course")),
	EnrollmentDate: ID(ModalInputID("enrollment-date")),
	Status:         ID(ModalInputID("status")),

	GenderGroup:  XPath("//label[normalize-space()='Gender']/following::*[contains(@class,'gap-4')][1]"),
	GenderMale:   ID(ModalInputID("gender-male")),
	GenderFemale: ID(ModalInputID("gender-female")),
	GenderOther:  ID(ModalInputID("gender-other")),
}

// ModalInputID 弹窗内输入框 id 由字段名推导
func ModalInputID(fieldName string) string {
	return "modal-" + fieldName
}

// NotificationLocators 右上角提示通知
type NotificationLocators struct {
	Region         Locator
	Title          Locator
	Message        Locator
	SuccessMessage Locator
}

// Notification 通知区域
var Notification = NotificationLocators{
	Region:  Class("alert-notification"),
	Title:   XPath("//div[contains(@class, 'alert-notification')]//div[contains(@class, 'alert-title')]"),
	Message: XPath("//div[contains(@class, 'alert-notification')]//div[contains(@class, 'alert-message')]"),
	SuccessMessage: XPath("//div[contains(@class, 'alert-notification')]//div[contains(@class, 'alert-message') and contains(text(), " +
		xpathLiteral(SuccessPhrase) + ")]"),
}

/**
 * 行内校验错误
 * 错误文本没有独立 id，只能依赖与控件相邻的兄弟节点
 */

// InputError 普通输入框：input 后面紧跟的错误文本
func InputError(fieldName string) Locator {
	return XPath(fmt.Sprintf("//input[@id=%s]/following-sibling::p[contains(@class,%s)]",
		xpathLiteral(ModalInputID(fieldName)), xpathLiteral(ErrorTextClass)))
}

// SelectError 原生下拉框：select 后面紧跟的错误文本
func SelectError(fieldName string) Locator {
	return XPath(fmt.Sprintf("//select[@id=%s]/following-sibling::p[contains(@class,%s)]",
		xpathLiteral(ModalInputID(fieldName)), xpathLiteral(ErrorTextClass)))
}

// GroupError 单选组：标签 -> 其后的组容器 -> 容器后的第一个错误文本
func GroupError(label string) Locator {
	return XPath(fmt.Sprintf("//label[normalize-space()=%s]/following::*[contains(@class,'gap-4')][1]"+
		"/following-sibling::p[contains(@class,%s)][1]",
		xpathLiteral(label), xpathLiteral(ErrorTextClass)))
}
