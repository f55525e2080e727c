package validators

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/cyber-aware/models"
)

type LearningValidator struct{}

// NewLearningValidator validates learning sets produced by the generative
// model. A set is accepted only as a whole: exactly
// [models.LearningSetSize] items, every quiz question with exactly
// [models.QuizOptionCount] non-empty options and a correct index inside
// them, every string non-empty. Drafts decoded from the model additionally
// must carry every field. Field scoping is not supported.
func NewLearningValidator() Validator {
	return &LearningValidator{}
}

func (v *LearningValidator) Validate(_ context.Context, obj any, fields ...string) error {
	if len(fields) > 0 {
		return ErrUnknownField
	}

	switch value := obj.(type) {
	case []models.QuizQuestion:
		return validateQuiz(value)
	case []models.Flashcard:
		return validateFlashcards(value)
	case []models.QuizQuestionDraft:
		return validateQuizDrafts(value)
	case []models.FlashcardDraft:
		return validateFlashcardDrafts(value)
	default:
		return ErrUnsupportedType
	}
}

func validateQuiz(questions []models.QuizQuestion) error {
	if len(questions) != models.LearningSetSize {
		return fmt.Errorf("%w: got %d questions", ErrWrongSetSize, len(questions))
	}

	for i, q := range questions {
		if err := validateQuizQuestion(q); err != nil {
			return fmt.Errorf("validation error at index %d: %w", i, err)
		}
	}

	return nil
}

func validateQuizQuestion(q models.QuizQuestion) error {
	if strings.TrimSpace(q.Question) == "" {
		return ErrEmptyQuestion
	}
	if len(q.Options) != models.QuizOptionCount {
		return ErrWrongOptionCount
	}
	for _, option := range q.Options {
		if strings.TrimSpace(option) == "" {
			return ErrEmptyOption
		}
	}
	if q.CorrectIndex < 0 || q.CorrectIndex >= models.QuizOptionCount {
		return ErrInvalidCorrectIdx
	}
	if strings.TrimSpace(q.Explanation) == "" {
		return ErrEmptyExplanation
	}

	return nil
}

func validateFlashcards(cards []models.Flashcard) error {
	if len(cards) != models.LearningSetSize {
		return fmt.Errorf("%w: got %d flashcards", ErrWrongSetSize, len(cards))
	}

	for i, c := range cards {
		if err := validateFlashcard(c); err != nil {
			return fmt.Errorf("validation error at index %d: %w", i, err)
		}
	}

	return nil
}

func validateFlashcard(c models.Flashcard) error {
	if strings.TrimSpace(c.Front) == "" || strings.TrimSpace(c.Back) == "" {
		return ErrEmptyCardSide
	}
	return nil
}

func validateQuizDrafts(drafts []models.QuizQuestionDraft) error {
	if len(drafts) != models.LearningSetSize {
		return fmt.Errorf("%w: got %d questions", ErrWrongSetSize, len(drafts))
	}

	for i, d := range drafts {
		if d.Question == nil || d.Options == nil || d.CorrectIndex == nil || d.Explanation == nil {
			return fmt.Errorf("validation error at index %d: %w", i, ErrMissingField)
		}
		if err := validateQuizQuestion(d.ToQuestion()); err != nil {
			return fmt.Errorf("validation error at index %d: %w", i, err)
		}
	}

	return nil
}

func validateFlashcardDrafts(drafts []models.FlashcardDraft) error {
	if len(drafts) != models.LearningSetSize {
		return fmt.Errorf("%w: got %d flashcards", ErrWrongSetSize, len(drafts))
	}

	for i, d := range drafts {
		if d.Front == nil || d.Back == nil {
			return fmt.Errorf("validation error at index %d: %w", i, ErrMissingField)
		}
		if err := validateFlashcard(d.ToFlashcard()); err != nil {
			return fmt.Errorf("validation error at index %d: %w", i, err)
		}
	}

	return nil
}
