package pages_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	locators "student_e2e_go/Locators"
	"student_e2e_go/model"
	"student_e2e_go/pages"
	"student_e2e_go/worker/driver"
	"student_e2e_go/worker/driver/drivertest"
)

func TestSetStatusActiveIsIdempotent(t *testing.T) {
	ctx := context.Background()
	app, s := newApp(t, time.Second)
	modal := openAddModal(t, ctx, s)

	status, ok := app.DOM.Lookup(locators.Modal.Status)
	require.True(t, ok)
	require.True(t, modal.IsStatusActive(ctx), "status defaults to active")

	require.NoError(t, modal.SetStatusActive(ctx, true))
	require.NoError(t, modal.SetStatusActive(ctx, true))
	assert.Zero(t, status.Clicks)
	assert.True(t, modal.IsStatusActive(ctx))

	require.NoError(t, modal.SetStatusActive(ctx, false))
	require.NoError(t, modal.SetStatusActive(ctx, false))
	assert.Equal(t, 1, status.Clicks)
	assert.False(t, modal.IsStatusActive(ctx))

	require.NoError(t, modal.SetStatusActive(ctx, true))
	assert.Equal(t, 2, status.Clicks)
	assert.True(t, modal.IsStatusActive(ctx))
}

func TestGenderSelectionIsExclusive(t *testing.T) {
	ctx := context.Background()
	_, s := newApp(t, time.Second)
	modal := openAddModal(t, ctx, s)

	assert.False(t, modal.IsAnyGenderSelected(ctx))

	require.NoError(t, modal.SelectGender(ctx, model.GenderMale))
	assert.True(t, modal.IsGenderSelected(ctx, model.GenderMale))

	require.NoError(t, modal.SelectGender(ctx, model.GenderFemale))
	assert.True(t, modal.IsGenderSelected(ctx, model.GenderFemale))
	assert.False(t, modal.IsGenderSelected(ctx, model.GenderMale))
	assert.False(t, modal.IsGenderSelected(ctx, model.GenderOther))
	assert.True(t, modal.IsAnyGenderSelected(ctx))

	require.Error(t, modal.SelectGender(ctx, model.Gender("unknown")))
}

func TestCourseSelectionModesAgree(t *testing.T) {
	want := drivertest.DefaultCourses[2].Text

	selectors := map[string]func(*pages.StudentModal, context.Context) error{
		"text":  func(m *pages.StudentModal, ctx context.Context) error { return m.SelectCourseByText(ctx, want) },
		"value": func(m *pages.StudentModal, ctx context.Context) error { return m.SelectCourseByValue(ctx, "2") },
		"index": func(m *pages.StudentModal, ctx context.Context) error { return m.SelectCourseByIndex(ctx, 2) },
	}
	for name, sel := range selectors {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			_, s := newApp(t, time.Second)
			modal := openAddModal(t, ctx, s)

			assert.Equal(t, drivertest.DefaultCourses[0].Text, modal.Course(ctx))
			require.NoError(t, sel(modal, ctx))
			assert.Equal(t, want, modal.Course(ctx))
			assert.Equal(t, want, modal.Field(ctx, model.FieldCourse))
		})
	}
}

func TestSelectUnknownCourse(t *testing.T) {
	ctx := context.Background()
	_, s := newApp(t, time.Second)
	modal := openAddModal(t, ctx, s)

	require.Error(t, modal.SelectCourseByText(ctx, "PHYS999 - Nothing"))
	require.Error(t, modal.SelectCourseByIndex(ctx, 42))
}

func TestSetTextReplacesValue(t *testing.T) {
	ctx := context.Background()
	app, s := newApp(t, time.Second)
	modal := openAddModal(t, ctx, s)

	require.NoError(t, modal.EnterEmail(ctx, "first@example.com"))
	require.NoError(t, modal.EnterEmail(ctx, "second@example.com"))
	assert.Equal(t, "second@example.com", modal.Text(ctx, model.FieldEmail))

	email := locators.Modal.Email.Expression
	var seq []string
	for _, e := range app.DOM.Events() {
		if e == "scroll:"+email || e == "clear:"+email || e == "type:"+email {
			seq = append(seq, e)
		}
	}
	assert.Equal(t, []string{
		"scroll:" + email, "clear:" + email, "type:" + email,
		"scroll:" + email, "clear:" + email, "type:" + email,
	}, seq)

	require.Error(t, modal.SetText(ctx, model.FieldGender, "male"), "gender is not a text field")
	assert.Empty(t, modal.Text(ctx, model.FieldCourse))
}

func TestSetFieldDispatchesOnKind(t *testing.T) {
	ctx := context.Background()
	_, s := newApp(t, time.Second)
	modal := openAddModal(t, ctx, s)

	require.NoError(t, modal.SetField(ctx, model.FieldAge, "21"))
	require.NoError(t, modal.SetField(ctx, model.FieldGender, "OTHER"))
	require.NoError(t, modal.SetField(ctx, model.FieldCourse, drivertest.DefaultCourses[3].Text))
	require.NoError(t, modal.SetField(ctx, model.FieldStatus, "false"))

	assert.Equal(t, "21", modal.Field(ctx, model.FieldAge))
	assert.Equal(t, "other", modal.Field(ctx, model.FieldGender))
	assert.Equal(t, drivertest.DefaultCourses[3].Text, modal.Field(ctx, model.FieldCourse))
	assert.Equal(t, "false", modal.Field(ctx, model.FieldStatus))

	require.Error(t, modal.SetField(ctx, "nickname", "x"))
	require.Error(t, modal.SetField(ctx, model.FieldGender, "robot"))
	require.Error(t, modal.SetField(ctx, model.FieldStatus, "maybe"))
	assert.Empty(t, modal.Field(ctx, "nickname"))

	d, ok := modal.Descriptor(model.FieldGender)
	require.True(t, ok)
	assert.Equal(t, model.FieldRadioGroup, d.Kind)
	assert.Equal(t, locators.Modal.GenderGroup, d.Locator)
}

func TestFillValidStudentForm(t *testing.T) {
	ctx := context.Background()
	_, s := newApp(t, time.Second)
	modal := openAddModal(t, ctx, s)
	require.NoError(t, modal.SetStatusActive(ctx, false))

	student := johnDoe()
	require.NoError(t, modal.FillValidStudentForm(ctx, student))

	got := model.Student{}
	for _, field := range model.FormFields {
		got = got.With(field, modal.Field(ctx, field))
	}
	want := student
	want.Gender = string(model.GenderMale)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("form content mismatch (-want +got):\n%s", diff)
	}
	assert.True(t, modal.IsStatusActive(ctx), "status forced active")
}

func TestFillValidStudentFormUnknownGender(t *testing.T) {
	ctx := context.Background()
	_, s := newApp(t, time.Second)
	modal := openAddModal(t, ctx, s)

	student := johnDoe()
	student.Gender = "robot"
	err := modal.FillValidStudentForm(ctx, student)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "robot")
	assert.False(t, modal.IsAnyGenderSelected(ctx))
}

func TestFormQueriesAfterModalClosed(t *testing.T) {
	ctx := context.Background()
	_, s := newApp(t, 50*time.Millisecond)
	modal := openAddModal(t, ctx, s)
	_, err := modal.Cancel(ctx)
	require.NoError(t, err)

	assert.Empty(t, modal.Text(ctx, model.FieldFirstName))
	assert.Empty(t, modal.Course(ctx))
	assert.False(t, modal.IsStatusActive(ctx))
	assert.False(t, modal.IsAnyGenderSelected(ctx))
	require.ErrorIs(t, modal.EnterFirstName(ctx, "John"), driver.ErrTimeout)
}
