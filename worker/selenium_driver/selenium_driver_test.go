package selenium_driver

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tebeka/selenium"

	locators "student_e2e_go/Locators"
	"student_e2e_go/worker/driver"
)

func TestBy(t *testing.T) {
	tests := []struct {
		loc       locators.Locator
		wantBy    string
		wantValue string
	}{
		{locators.ID("modal-ok-btn"), selenium.ByID, "modal-ok-btn"},
		{locators.Class("alert-notification"), selenium.ByClassName, "alert-notification"},
		{locators.XPath("//button[@id='x']"), selenium.ByXPATH, "//button[@id='x']"},
	}
	for _, tt := range tests {
		by, value := By(tt.loc)
		assert.Equal(t, tt.wantBy, by, tt.loc.String())
		assert.Equal(t, tt.wantValue, value, tt.loc.String())
	}
}

func TestNormalize(t *testing.T) {
	assert.NoError(t, normalize(nil))
	assert.ErrorIs(t, normalize(errors.New("no such element: Unable to locate element")), driver.ErrElementNotFound)
	assert.ErrorIs(t, normalize(errors.New("element click intercepted: Element is not clickable at point")), driver.ErrIntercepted)
	assert.ErrorIs(t, normalize(errors.New("timeout: Timed out receiving message")), driver.ErrTimeout)

	other := errors.New("invalid session id")
	assert.Same(t, other, normalize(other))
}
