package tui

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/cyber-aware/models"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

type learningMode int

const (
	learnPick learningMode = iota
	learnGenerating
	learnQuiz
	learnQuizDone
	learnFlashcards
)

type learningKind int

const (
	kindQuiz learningKind = iota
	kindFlashcards
)

const msgGenerationFailed = "Generation failed. The assistant returned no usable set, try again."

// learningModel is the learning hub: a category picker, quiz mode and
// flashcard mode. Sets come from the assistant and live only here.
type learningModel struct {
	categories []models.Category
	catIdx     int

	mode     learningMode
	kind     learningKind
	category models.Category
	spinner  spinner.Model
	failed   string

	questions []models.QuizQuestion
	qIdx      int
	optIdx    int
	answered  bool
	chosen    int
	score     int

	cards   []models.Flashcard
	cardIdx int
	flipped bool
}

func newLearningModel() learningModel {
	s := spinner.New()
	s.Spinner = spinner.Pulse
	return learningModel{categories: models.LearningCategories(), spinner: s}
}

// nested reports whether esc should stay inside the hub.
func (m learningModel) nested() bool {
	return m.mode != learnPick
}

// start switches to the generating state. The caller issues the request.
func (m *learningModel) start(kind learningKind, category models.Category) tea.Cmd {
	m.mode = learnGenerating
	m.kind = kind
	m.category = category
	m.failed = ""
	return m.spinner.Tick
}

func (m *learningModel) quizReady(msg quizGeneratedMsg) {
	if m.mode != learnGenerating || m.kind != kindQuiz || msg.category != m.category {
		return
	}
	if len(msg.questions) == 0 {
		m.mode = learnPick
		m.failed = msgGenerationFailed
		return
	}
	m.questions = msg.questions
	m.qIdx, m.optIdx, m.score = 0, 0, 0
	m.answered = false
	m.mode = learnQuiz
}

func (m *learningModel) flashcardsReady(msg flashcardsGeneratedMsg) {
	if m.mode != learnGenerating || m.kind != kindFlashcards || msg.category != m.category {
		return
	}
	if len(msg.cards) == 0 {
		m.mode = learnPick
		m.failed = msgGenerationFailed
		return
	}
	m.cards = msg.cards
	m.cardIdx = 0
	m.flipped = false
	m.mode = learnFlashcards
}

// update handles a key. It returns the kind and category of a set to
// generate when the visitor asked for one.
func (m learningModel) update(msg tea.KeyMsg) (learningModel, *learningRequest) {
	switch m.mode {
	case learnPick:
		return m.updatePick(msg)
	case learnGenerating:
		if key.Matches(msg, keys.esc) {
			m.mode = learnPick
		}
	case learnQuiz:
		m = m.updateQuiz(msg)
	case learnQuizDone:
		switch {
		case key.Matches(msg, keys.retry):
			return m, &learningRequest{kind: kindQuiz, category: m.category}
		case key.Matches(msg, keys.esc), key.Matches(msg, keys.enter):
			m.mode = learnPick
		}
	case learnFlashcards:
		m = m.updateFlashcards(msg)
	}
	return m, nil
}

type learningRequest struct {
	kind     learningKind
	category models.Category
}

func (m learningModel) updatePick(msg tea.KeyMsg) (learningModel, *learningRequest) {
	switch {
	case key.Matches(msg, keys.up):
		if m.catIdx > 0 {
			m.catIdx--
		}
	case key.Matches(msg, keys.down):
		if m.catIdx < len(m.categories)-1 {
			m.catIdx++
		}
	case key.Matches(msg, keys.enter):
		return m, &learningRequest{kind: kindQuiz, category: m.categories[m.catIdx]}
	case msg.String() == "f":
		return m, &learningRequest{kind: kindFlashcards, category: m.categories[m.catIdx]}
	}
	return m, nil
}

func (m learningModel) updateQuiz(msg tea.KeyMsg) learningModel {
	if key.Matches(msg, keys.esc) {
		m.mode = learnPick
		return m
	}

	q := m.questions[m.qIdx]
	if m.answered {
		if key.Matches(msg, keys.enter) {
			if m.qIdx == len(m.questions)-1 {
				m.mode = learnQuizDone
				return m
			}
			m.qIdx++
			m.optIdx = 0
			m.answered = false
		}
		return m
	}

	switch s := msg.String(); {
	case key.Matches(msg, keys.up):
		if m.optIdx > 0 {
			m.optIdx--
		}
	case key.Matches(msg, keys.down):
		if m.optIdx < len(q.Options)-1 {
			m.optIdx++
		}
	case len(s) == 1 && s[0] >= '1' && int(s[0]-'1') < len(q.Options):
		m.optIdx = int(s[0] - '1')
		m = m.answer(q)
	case key.Matches(msg, keys.enter):
		m = m.answer(q)
	}
	return m
}

// answer locks in the selected option. A question is answered only once.
func (m learningModel) answer(q models.QuizQuestion) learningModel {
	m.answered = true
	m.chosen = m.optIdx
	if q.IsCorrect(m.chosen) {
		m.score++
	}
	return m
}

func (m learningModel) updateFlashcards(msg tea.KeyMsg) learningModel {
	switch {
	case key.Matches(msg, keys.esc):
		m.mode = learnPick
	case key.Matches(msg, keys.flip), key.Matches(msg, keys.enter):
		m.flipped = !m.flipped
	case key.Matches(msg, keys.left):
		if m.cardIdx > 0 {
			m.cardIdx--
			m.flipped = false
		}
	case key.Matches(msg, keys.right):
		if m.cardIdx < len(m.cards)-1 {
			m.cardIdx++
			m.flipped = false
		}
	}
	return m
}

func (m learningModel) view() string {
	switch m.mode {
	case learnGenerating:
		what := "quiz"
		if m.kind == kindFlashcards {
			what = "flashcards"
		}
		return fmt.Sprintf("%s Generating %s for %s...", m.spinner.View(), what, m.category)
	case learnQuiz:
		return m.viewQuiz()
	case learnQuizDone:
		return fmt.Sprintf("Quiz complete: %s\n\nScore: %d / %d\n\n%s",
			m.category, m.score, len(m.questions), helpStyle.Render("r: retry │ enter/esc: back to topics"))
	case learnFlashcards:
		return m.viewFlashcards()
	default:
		return m.viewPick()
	}
}

func (m learningModel) viewPick() string {
	var b strings.Builder
	b.WriteString("Pick a security domain:\n\n")
	for i, c := range m.categories {
		line := cursor(i == m.catIdx) + c.String()
		if i == m.catIdx {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	if m.failed != "" {
		b.WriteString("\n" + errorStyle.Render(m.failed) + "\n")
	}
	b.WriteString("\n" + helpStyle.Render("enter: quiz │ f: flashcards"))
	return b.String()
}

func (m learningModel) viewQuiz() string {
	q := m.questions[m.qIdx]

	var b strings.Builder
	b.WriteString(mutedStyle.Render(fmt.Sprintf("%s · question %d of %d · score %d", m.category, m.qIdx+1, len(m.questions), m.score)))
	b.WriteString("\n\n")
	b.WriteString(wrap(q.Question, defaultWidth-8))
	b.WriteString("\n\n")

	for i, option := range q.Options {
		line := fmt.Sprintf("%s%d. %s", cursor(i == m.optIdx), i+1, option)
		switch {
		case m.answered && q.IsCorrect(i):
			line = okStyle.Render(line + "  ✓")
		case m.answered && i == m.chosen:
			line = errorStyle.Render(line + "  ✗")
		case !m.answered && i == m.optIdx:
			line = selectedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if m.answered {
		b.WriteString("\n")
		b.WriteString(wrap(q.Explanation, defaultWidth-8))
		next := "enter: next question"
		if m.qIdx == len(m.questions)-1 {
			next = "enter: finish"
		}
		b.WriteString("\n\n" + helpStyle.Render(next+" │ esc: quit quiz"))
	} else {
		b.WriteString("\n" + helpStyle.Render("1-4 or enter: answer │ esc: quit quiz"))
	}
	return b.String()
}

func (m learningModel) viewFlashcards() string {
	card := m.cards[m.cardIdx]
	side, text := "TERM", card.Front
	if m.flipped {
		side, text = "DEFINITION", card.Back
	}

	var b strings.Builder
	b.WriteString(mutedStyle.Render(fmt.Sprintf("%s · card %d of %d · %s", m.category, m.cardIdx+1, len(m.cards), side)))
	b.WriteString("\n\n")
	b.WriteString(cardStyle.Render(wrap(text, defaultWidth-12)))
	b.WriteString("\n\n" + helpStyle.Render("space: flip │ ←/→: prev/next │ esc: exit"))
	return b.String()
}
