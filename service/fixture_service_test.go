package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"student_e2e_go/model"
)

func TestLoadBundledScenarios(t *testing.T) {
	scenarios, err := NewFixtureService("..").LoadScenarios("testdata/scenarios.yaml")
	require.NoError(t, err)
	require.NotEmpty(t, scenarios)

	first := scenarios[0]
	assert.Equal(t, "add valid student", first.Name)
	assert.Equal(t, model.ActionAdd, first.Action)
	assert.Equal(t, "0123456789", first.Student.Phone)
	require.NotNil(t, first.Expect.Success)
	assert.True(t, *first.Expect.Success)

	byName := map[string]model.Scenario{}
	for _, sc := range scenarios {
		byName[sc.Name] = sc
	}

	// 合并的锚点字段被显式字段覆盖
	short := byName["phone with 9 digits"]
	assert.Equal(t, "012345678", short.Student.Phone)
	assert.Equal(t, "John", short.Student.FirstName)
	assert.Equal(t, map[string]string{model.FieldPhone: MsgPhoneFormat}, short.Expect.Errors)

	inactive := byName["add inactive student"]
	require.NotNil(t, inactive.Status)
	assert.False(t, *inactive.Status)
	assert.Equal(t, "female", inactive.Student.Gender)
}

func TestResolve(t *testing.T) {
	f := NewFixtureService("/srv/project")
	assert.Equal(t, filepath.Join("/srv/project", "testdata/a.yaml"), f.Resolve("testdata/a.yaml"))
	assert.Equal(t, "/tmp/a.yaml", f.Resolve("/tmp/a.yaml"))
	assert.Equal(t, "a.yaml", NewFixtureService("").Resolve("a.yaml"))
}

func TestParseScenariosRejects(t *testing.T) {
	tests := map[string]string{
		"empty file":         ``,
		"no scenarios":       `scenarios: []`,
		"unknown field":      "scenarios:\n  - name: a\n    colour: red\n",
		"missing name":       "scenarios:\n  - action: add\n",
		"unknown action":     "scenarios:\n  - name: a\n    action: delete\n",
		"edit without id":    "scenarios:\n  - name: a\n    action: edit\n",
		"unknown gender":     "scenarios:\n  - name: a\n    student:\n      gender: robot\n",
		"unknown err field":  "scenarios:\n  - name: a\n    expect:\n      errors:\n        nickname: x\n",
		"success and errors": "scenarios:\n  - name: a\n    expect:\n      success: true\n      errors:\n        age: x\n",
		"duplicate names":    "scenarios:\n  - name: a\n  - name: a\n",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseScenarios([]byte(doc))
			require.Error(t, err)
		})
	}
}

func TestParseScenariosDefaultsToAdd(t *testing.T) {
	scenarios, err := ParseScenarios([]byte("scenarios:\n  - name: a\n  - name: b\n    action: edit\n    studentId: 4\n"))
	require.NoError(t, err)
	require.Len(t, scenarios, 2)
	assert.Equal(t, model.ActionAdd, scenarios[0].Action)
	assert.Equal(t, model.ActionEdit, scenarios[1].Action)
	assert.Equal(t, 4, scenarios[1].StudentID)
}

func TestLoadScenariosMissingFile(t *testing.T) {
	_, err := NewFixtureService(t.TempDir()).LoadScenarios("nope.yaml")
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
