package locators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocatorConversions(t *testing.T) {
	tests := []struct {
		name      string
		loc       Locator
		wantCSS   string
		wantOK    bool
		wantXPath string
	}{
		{
			name:      "id",
			loc:       ID("modal-title"),
			wantCSS:   `[id="modal-title"]`,
			wantOK:    true,
			wantXPath: "//*[@id='modal-title']",
		},
		{
			name:      "class",
			loc:       Class("alert-notification"),
			wantCSS:   ".alert-notification",
			wantOK:    true,
			wantXPath: "//*[contains(concat(' ', normalize-space(@class), ' '), ' alert-notification ')]",
		},
		{
			name:      "xpath",
			loc:       XPath("//h3"),
			wantXPath: "//h3",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			css, ok := tt.loc.CSS()
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantCSS, css)
			assert.Equal(t, tt.wantXPath, tt.loc.AsXPath())
		})
	}
}

func TestXPathLiteral(t *testing.T) {
	assert.Equal(t, "'plain'", xpathLiteral("plain"))
	assert.Equal(t, `"it's"`, xpathLiteral("it's"))
	assert.Equal(t, `concat('a"b', "'", 'c')`, xpathLiteral(`a"b'c`))
}

func TestErrorLocators(t *testing.T) {
	assert.Equal(t,
		"//input[@id='modal-first-name']/following-sibling::p[contains(@class,'text-red-500')]",
		InputError("first-name").Expression)
	assert.Equal(t,
		"//select[@id='modal-course']/following-sibling::p[contains(@class,'text-red-500')]",
		SelectError("course").Expression)
	assert.Equal(t,
		"//label[normalize-space()='Gender']/following::*[contains(@class,'gap-4')][1]/following-sibling::p[contains(@class,'text-red-500')][1]",
		GroupError("Gender").Expression)
	assert.Equal(t, ByXPath, InputError("age").Strategy)
}

func TestEditStudentButton(t *testing.T) {
	loc := Students.EditStudentButton(7)
	assert.Equal(t, XPath("//button[@id='edit-student-btn-7']"), loc)
	assert.Equal(t, "xpath=//button[@id='edit-student-btn-7']", loc.String())
}

func TestNotificationSuccessMessage(t *testing.T) {
	assert.Contains(t, Notification.SuccessMessage.Expression, "contains(text(), 'Add student successful')")
}
