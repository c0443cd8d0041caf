package model

import "strings"

// 表单字段名，与弹窗内控件 id 的后缀一致（modal-<name>）
const (
	FieldFirstName      = "first-name"
	FieldLastName       = "last-name"
	FieldAge            = "age"
	FieldGender         = "gender"
	FieldEmail          = "email"
	FieldPhone          = "phone"
	FieldCourse         = "course"
	FieldEnrollmentDate = "enrollment-date"
	FieldStatus         = "status"
)

// FormFields 表单字段的填写顺序
var FormFields = []string{
	FieldFirstName,
	FieldLastName,
	FieldAge,
	FieldEmail,
	FieldPhone,
	FieldEnrollmentDate,
	FieldGender,
	FieldCourse,
}

// Gender 单选组选项
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// Genders 单选组的全部选项
var Genders = []Gender{GenderMale, GenderFemale, GenderOther}

// ParseGender 不区分大小写解析性别标签
func ParseGender(tag string) (Gender, bool) {
	g := Gender(strings.ToLower(strings.TrimSpace(tag)))
	for _, known := range Genders {
		if g == known {
			return g, true
		}
	}
	return "", false
}

// Student 表单上的一条学生记录，全部按页面输入的字符串保存
type Student struct {
	FirstName      string `yaml:"firstName" json:"firstName"`           //名
	LastName       string `yaml:"lastName" json:"lastName"`             //姓
	Age            string `yaml:"age" json:"age"`                       //年龄
	Gender         string `yaml:"gender" json:"gender"`                 //性别标签 male/female/other
	Email          string `yaml:"email" json:"email"`                   //邮箱
	Phone          string `yaml:"phone" json:"phone"`                   //电话
	Course         string `yaml:"course" json:"course"`                 //课程下拉框的可见文本
	EnrollmentDate string `yaml:"enrollmentDate" json:"enrollmentDate"` //入学日期 yyyy-mm-dd
}

// Get 按字段名取值
func (s Student) Get(field string) string {
	switch field {
	case FieldFirstName:
		return s.FirstName
	case FieldLastName:
		return s.LastName
	case FieldAge:
		return s.Age
	case FieldGender:
		return s.Gender
	case FieldEmail:
		return s.Email
	case FieldPhone:
		return s.Phone
	case FieldCourse:
		return s.Course
	case FieldEnrollmentDate:
		return s.EnrollmentDate
	default:
		return ""
	}
}

// With 返回替换了某个字段的副本
func (s Student) With(field, value string) Student {
	switch field {
	case FieldFirstName:
		s.FirstName = value
	case FieldLastName:
		s.LastName = value
	case FieldAge:
		s.Age = value
	case FieldGender:
		s.Gender = value
	case FieldEmail:
		s.Email = value
	case FieldPhone:
		s.Phone = value
	case FieldCourse:
		s.Course = value
	case FieldEnrollmentDate:
		s.EnrollmentDate = value
	}
	return s
}
