package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseGender(t *testing.T) {
	for _, tag := range []string{"Male", "MALE", " male "} {
		g, ok := ParseGender(tag)
		assert.True(t, ok, tag)
		assert.Equal(t, GenderMale, g)
	}
	g, ok := ParseGender("Other")
	assert.True(t, ok)
	assert.Equal(t, GenderOther, g)

	_, ok = ParseGender("unknown")
	assert.False(t, ok)
	_, ok = ParseGender("")
	assert.False(t, ok)
}

func TestStudentWithAndGet(t *testing.T) {
	s := Student{FirstName: "Minh", Phone: "0703553341"}
	changed := s.With(FieldPhone, "012345678")

	assert.Equal(t, "0703553341", s.Get(FieldPhone), "original must not change")
	assert.Equal(t, "012345678", changed.Get(FieldPhone))
	assert.Equal(t, "Minh", changed.Get(FieldFirstName))
	assert.Empty(t, changed.Get("no-such-field"))

	for _, f := range FormFields {
		assert.Equal(t, "x", Student{}.With(f, "x").Get(f), f)
	}
}

func TestModalStateString(t *testing.T) {
	assert.Equal(t, "Closed", ModalClosed.String())
	assert.Equal(t, "Open(Add)", ModalState{Open: true, Kind: ModalAdd}.String())
	assert.Equal(t, "Open(Edit)", ModalState{Open: true, Kind: ModalEdit}.String())
}

func TestNotificationState(t *testing.T) {
	assert.True(t, NotificationState{Visible: true, Title: SuccessTitle}.IsSuccess())
	assert.False(t, NotificationState{Visible: false, Title: SuccessTitle}.IsSuccess())
	assert.True(t, NotificationState{Visible: true, Title: ErrorTitle}.IsError())
}
