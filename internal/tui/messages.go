package tui

import (
	"github.com/MKhiriev/cyber-aware/internal/controller"
	"github.com/MKhiriev/cyber-aware/models"
)

// stateChangedMsg is delivered after the controller signals a change.
type stateChangedMsg struct{}

// routedMsg is a result addressed to one page regardless of which page is
// currently shown.
type routedMsg interface {
	target() controller.Screen
}

// actionDoneMsg reports the outcome of a controller call started by a page.
type actionDoneMsg struct {
	screen controller.Screen
	action string
	err    error
}

func (m actionDoneMsg) target() controller.Screen { return m.screen }

type quizGeneratedMsg struct {
	category  models.Category
	questions []models.QuizQuestion
}

func (quizGeneratedMsg) target() controller.Screen { return controller.ScreenUserDashboard }

type flashcardsGeneratedMsg struct {
	category models.Category
	cards    []models.Flashcard
}

func (flashcardsGeneratedMsg) target() controller.Screen { return controller.ScreenUserDashboard }

type copiedMsg struct {
	err error
}

func (copiedMsg) target() controller.Screen { return controller.ScreenSetup }

type clearStatusMsg struct {
	screen controller.Screen
}

func (m clearStatusMsg) target() controller.Screen { return m.screen }
