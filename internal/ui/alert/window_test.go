package alert

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
)

func TestSilentCue(t *testing.T) {
	assert.True(t, Cue{Title: "Tea"}.Silent())
	assert.False(t, Cue{Alarm: true}.Silent())
	assert.False(t, Cue{Vibrate: true}.Silent())
}

func TestShowFillsLabelsAndDismissRunsHandler(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	alert := New(app)
	alert.Show(Cue{Title: "Timer finished", Message: "Tea is done.", Alarm: true})
	assert.Equal(t, "Timer finished", alert.titleLabel.Text)
	assert.Equal(t, "Tea is done.", alert.messageLabel.Text)

	alert.Show(Cue{Title: "ignored"})
	assert.Equal(t, "Timer finished", alert.titleLabel.Text)

	dismissed := 0
	alert.SetOnDismiss(func() { dismissed++ })
	alert.dismiss()
	assert.Equal(t, 1, dismissed)
}
