// service/student_rules.go
package service

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"student_e2e_go/model"
)

// 页面客户端校验的文案
const (
	MsgFirstNameEmpty       = "FirstName cannot be empty"
	MsgFirstNameFormat      = "FirstName must follow the format [A-Za-z]"
	MsgLastNameEmpty        = "LastName cannot be empty"
	MsgLastNameFormat       = "Lastname must follow the format [A-Za-z]"
	MsgAgeEmpty             = "Age cannot be empty"
	MsgAgeFormat            = "Age must be a positive integer"
	MsgGenderRequired       = "Gender must be selected"
	MsgEmailEmpty           = "Email cannot be empty"
	MsgEmailFormat          = "Email must be in the correct format"
	MsgPhoneEmpty           = "Phone cannot be empty"
	MsgPhoneFormat          = "Phone must be 10-12 digits and in the range [0-9]"
	MsgCourseRequired       = "Course must be selected"
	MsgEnrollmentDateNeeded = "Enrollment Date must be selected"

	// MsgRequiredFields 校验失败时错误通知的正文
	MsgRequiredFields = "Please fill in all required fields"
)

var (
	namePattern  = regexp.MustCompile(`^[A-Za-z]+$`)
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^[0-9]{10,12}$`)
)

// StudentRules 学生表单的客户端校验规则，用来推导场景的预期结果
type StudentRules struct{}

func NewStudentRules() *StudentRules {
	return &StudentRules{}
}

// Validate 返回 字段名 -> 错误文案，全部通过时返回空 map
// 性别和课程只判断是否选择，不区分选项是否合法
func (r *StudentRules) Validate(s model.Student) map[string]string {
	errs := make(map[string]string)

	if msg := checkText(s.FirstName, namePattern, MsgFirstNameEmpty, MsgFirstNameFormat); msg != "" {
		errs[model.FieldFirstName] = msg
	}
	if msg := checkText(s.LastName, namePattern, MsgLastNameEmpty, MsgLastNameFormat); msg != "" {
		errs[model.FieldLastName] = msg
	}
	if msg := checkAge(s.Age); msg != "" {
		errs[model.FieldAge] = msg
	}
	if s.Gender == "" {
		errs[model.FieldGender] = MsgGenderRequired
	}
	if msg := checkText(s.Email, emailPattern, MsgEmailEmpty, MsgEmailFormat); msg != "" {
		errs[model.FieldEmail] = msg
	}
	if msg := checkText(s.Phone, phonePattern, MsgPhoneEmpty, MsgPhoneFormat); msg != "" {
		errs[model.FieldPhone] = msg
	}
	if s.Course == "" {
		errs[model.FieldCourse] = MsgCourseRequired
	}
	if s.EnrollmentDate == "" {
		errs[model.FieldEnrollmentDate] = MsgEnrollmentDateNeeded
	}
	return errs
}

func checkText(value string, pattern *regexp.Regexp, empty, format string) string {
	if value == "" {
		return empty
	}
	if !pattern.MatchString(value) {
		return format
	}
	return ""
}

// checkAge 与页面一致：按数值解析，必须是不小于 1 的整数（"2.0" 也算合法）
func checkAge(age string) string {
	if age == "" {
		return MsgAgeEmpty
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(age), 64)
	if err != nil || math.IsInf(n, 0) || math.Trunc(n) != n || n < 1 {
		return MsgAgeFormat
	}
	return ""
}
