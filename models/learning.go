package models

// QuizOptionCount is the number of answer options every quiz question has.
const QuizOptionCount = 4

// LearningSetSize is the number of questions or flashcards generated per set.
const LearningSetSize = 5

// QuizQuestion is a generated multiple-choice question. It is never persisted.
type QuizQuestion struct {
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctIndex"`
	Explanation  string   `json:"explanation"`
}

// IsCorrect reports whether option is the right answer.
func (q QuizQuestion) IsCorrect(option int) bool {
	return option == q.CorrectIndex
}

// Flashcard is a generated term/definition pair. It is never persisted.
type Flashcard struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// QuizQuestionDraft is a quiz question as the model returned it. Pointer
// fields tell a missing or null value apart from a zero one.
type QuizQuestionDraft struct {
	Question     *string  `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex *int     `json:"correctIndex"`
	Explanation  *string  `json:"explanation"`
}

// ToQuestion returns the domain question. Call it only on a validated draft.
func (d QuizQuestionDraft) ToQuestion() QuizQuestion {
	return QuizQuestion{
		Question:     *d.Question,
		Options:      d.Options,
		CorrectIndex: *d.CorrectIndex,
		Explanation:  *d.Explanation,
	}
}

// FlashcardDraft is a flashcard as the model returned it.
type FlashcardDraft struct {
	Front *string `json:"front"`
	Back  *string `json:"back"`
}

// ToFlashcard returns the domain card. Call it only on a validated draft.
func (d FlashcardDraft) ToFlashcard() Flashcard {
	return Flashcard{Front: *d.Front, Back: *d.Back}
}
