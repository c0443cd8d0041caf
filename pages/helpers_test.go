package pages_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"student_e2e_go/model"
	"student_e2e_go/pages"
	"student_e2e_go/service"
	"student_e2e_go/worker/driver/drivertest"
)

const baseURL = "http://localhost:3000/"

func newApp(t *testing.T, timeout time.Duration) (*drivertest.StudentApp, *pages.Session) {
	t.Helper()
	app := drivertest.NewStudentApp(service.NewStudentRules().Validate)
	return app, sessionFor(app, timeout)
}

func sessionFor(app *drivertest.StudentApp, timeout time.Duration) *pages.Session {
	s := pages.NewSession(app.DOM, baseURL, timeout)
	s.Sync = s.Sync.WithPollInterval(5 * time.Millisecond)
	return s
}

func openStudents(t *testing.T, ctx context.Context, s *pages.Session) *pages.StudentsPage {
	t.Helper()
	home, err := s.Open(ctx)
	require.NoError(t, err)
	list, err := home.NavigateToStudentsManagement(ctx)
	require.NoError(t, err)
	return list
}

func openAddModal(t *testing.T, ctx context.Context, s *pages.Session) *pages.StudentModal {
	t.Helper()
	modal, err := openStudents(t, ctx, s).NavigateToAddStudent(ctx)
	require.NoError(t, err)
	require.True(t, modal.IsModalVisible(ctx))
	return modal
}

func johnDoe() model.Student {
	return model.Student{
		FirstName:      "John",
		LastName:       "Doe",
		Age:            "20",
		Gender:         "Male",
		Email:          "john.doe@example.com",
		Phone:          "0123456789",
		Course:         "CS101 - Introduction to Programming",
		EnrollmentDate: "2024-09-01",
	}
}

func minhHieu() model.Student {
	return model.Student{
		FirstName:      "Minh",
		LastName:       "Hieu",
		Age:            "18",
		Gender:         "Male",
		Email:          "minnhiuu@gmail.com",
		Phone:          "0703553341",
		Course:         "CS201 - Data Structures and Algorithms",
		EnrollmentDate: "2024-01-15",
	}
}
