package service

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"student_e2e_go/model"
)

func validStudent() model.Student {
	return model.Student{
		FirstName:      "John",
		LastName:       "Doe",
		Age:            "20",
		Gender:         "male",
		Email:          "john.doe@example.com",
		Phone:          "0123456789",
		Course:         "CS101 - Introduction to Programming",
		EnrollmentDate: "2024-09-01",
	}
}

func TestStudentRulesValidate(t *testing.T) {
	rules := NewStudentRules()

	tests := []struct {
		name  string
		field string
		value string
		want  map[string]string
	}{
		{name: "valid", want: map[string]string{}},
		{name: "empty first name", field: model.FieldFirstName, value: "",
			want: map[string]string{model.FieldFirstName: MsgFirstNameEmpty}},
		{name: "digits in first name", field: model.FieldFirstName, value: "J0hn",
			want: map[string]string{model.FieldFirstName: MsgFirstNameFormat}},
		{name: "space in last name", field: model.FieldLastName, value: "Van Doe",
			want: map[string]string{model.FieldLastName: MsgLastNameFormat}},
		{name: "zero age", field: model.FieldAge, value: "0",
			want: map[string]string{model.FieldAge: MsgAgeFormat}},
		{name: "fractional age", field: model.FieldAge, value: "20.5",
			want: map[string]string{model.FieldAge: MsgAgeFormat}},
		{name: "integral float age", field: model.FieldAge, value: "2.0", want: map[string]string{}},
		{name: "age beyond int64", field: model.FieldAge, value: "99999999999999999999", want: map[string]string{}},
		{name: "infinite age", field: model.FieldAge, value: "Infinity",
			want: map[string]string{model.FieldAge: MsgAgeFormat}},
		{name: "letters in age", field: model.FieldAge, value: "abc",
			want: map[string]string{model.FieldAge: MsgAgeFormat}},
		{name: "no gender", field: model.FieldGender, value: "",
			want: map[string]string{model.FieldGender: MsgGenderRequired}},
		{name: "malformed email", field: model.FieldEmail, value: "john.doe@example",
			want: map[string]string{model.FieldEmail: MsgEmailFormat}},
		{name: "repeated at signs", field: model.FieldEmail, value: "hahaa@@@gmail.com",
			want: map[string]string{model.FieldEmail: MsgEmailFormat}},
		{name: "empty email", field: model.FieldEmail, value: "",
			want: map[string]string{model.FieldEmail: MsgEmailEmpty}},
		{name: "phone 9 digits", field: model.FieldPhone, value: "012345678",
			want: map[string]string{model.FieldPhone: MsgPhoneFormat}},
		{name: "phone 10 digits", field: model.FieldPhone, value: "0123456789", want: map[string]string{}},
		{name: "phone 12 digits", field: model.FieldPhone, value: "012345678901", want: map[string]string{}},
		{name: "phone 13 digits", field: model.FieldPhone, value: "0123456789012",
			want: map[string]string{model.FieldPhone: MsgPhoneFormat}},
		{name: "phone 12 digits ending 912", field: model.FieldPhone, value: "012345678912", want: map[string]string{}},
		{name: "phone 13 digits ending 123", field: model.FieldPhone, value: "0123456789123",
			want: map[string]string{model.FieldPhone: MsgPhoneFormat}},
		{name: "phone with letters", field: model.FieldPhone, value: "01234abcde",
			want: map[string]string{model.FieldPhone: MsgPhoneFormat}},
		{name: "no course", field: model.FieldCourse, value: "",
			want: map[string]string{model.FieldCourse: MsgCourseRequired}},
		{name: "no enrollment date", field: model.FieldEnrollmentDate, value: "",
			want: map[string]string{model.FieldEnrollmentDate: MsgEnrollmentDateNeeded}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validStudent()
			if tt.field != "" {
				s = s.With(tt.field, tt.value)
			}
			if diff := cmp.Diff(tt.want, rules.Validate(s)); diff != "" {
				t.Errorf("Validate() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestStudentRulesAcceptsMinhHieu(t *testing.T) {
	s := model.Student{
		FirstName:      "Minh",
		LastName:       "Hieu",
		Age:            "18",
		Gender:         "Male",
		Email:          "minnhiuu@gmail.com",
		Phone:          "0703553341",
		Course:         "CS201 - Data Structures and Algorithms",
		EnrollmentDate: "2024-01-15",
	}
	if got := NewStudentRules().Validate(s); len(got) != 0 {
		t.Errorf("expected no errors, got %v", got)
	}
}

func TestStudentRulesEmptyForm(t *testing.T) {
	got := NewStudentRules().Validate(model.Student{})
	if len(got) != 8 {
		t.Fatalf("expected an error for every field, got %v", got)
	}
	if got[model.FieldPhone] != MsgPhoneEmpty {
		t.Errorf("phone: got %q", got[model.FieldPhone])
	}
}
