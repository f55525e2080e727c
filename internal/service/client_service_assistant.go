// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/cyber-aware/internal/adapter"
	"github.com/MKhiriev/cyber-aware/internal/logger"
	"github.com/MKhiriev/cyber-aware/internal/validators"
	"github.com/MKhiriev/cyber-aware/models"
	"google.golang.org/genai"
)

// SystemInstruction is the fixed directive sent with every chat turn.
const SystemInstruction = `You are CyberAware, an elite cybersecurity assistant.
Only answer questions about cybersecurity, online safety, privacy, networking and threat intelligence.
If the user asks about anything else, politely decline and steer the conversation back to cybersecurity.
Keep answers concise and use bullet points where they help readability.`

// Replies used when the model gives nothing usable.
const (
	FallbackEmptyReply = "I'm sorry, I couldn't generate a response at this time."
	FallbackErrorReply = "Error communicating with the security brain. Please try again later."
)

const (
	chatTemperature = 0.7
	chatTopP        = 0.95
	chatTopK        = 64

	quizPrompt      = "Generate %d multiple-choice questions for a cybersecurity awareness quiz about: %s. Make them challenging but educational."
	flashcardPrompt = "Generate %d informative flashcards for cybersecurity awareness about: %s. The front should be a term or question, and the back should be a concise definition or answer."
)

type clientAssistantService struct {
	model     adapter.ModelAdapter
	validator validators.Validator
	logger    *logger.Logger
}

func NewClientAssistantService(model adapter.ModelAdapter, logger *logger.Logger) AssistantService {
	return &clientAssistantService{
		model:     model,
		validator: validators.NewLearningValidator(),
		logger:    logger,
	}
}

func (a *clientAssistantService) Chat(ctx context.Context, history []models.ChatMessage, message string) string {
	reply, err := a.model.GenerateText(ctx, adapter.ChatRequest{
		SystemInstruction: SystemInstruction,
		History:           history,
		Message:           message,
		Temperature:       chatTemperature,
		TopP:              chatTopP,
		TopK:              chatTopK,
	})
	if err != nil {
		if errors.Is(err, adapter.ErrEmptyResponse) {
			a.logger.Warn().Msg("model returned an empty chat reply")
			return FallbackEmptyReply
		}
		a.logger.Err(err).Msg("chat generation failed")
		return FallbackErrorReply
	}

	if strings.TrimSpace(reply) == "" {
		return FallbackEmptyReply
	}
	return reply
}

func (a *clientAssistantService) GenerateQuiz(ctx context.Context, category models.Category) []models.QuizQuestion {
	raw, err := a.model.GenerateJSON(ctx, adapter.StructuredRequest{
		Prompt: fmt.Sprintf(quizPrompt, models.LearningSetSize, category),
		Schema: quizSchema(),
	})
	if err != nil {
		a.logger.Err(err).Str("category", category.String()).Msg("quiz generation failed")
		return []models.QuizQuestion{}
	}

	var drafts []models.QuizQuestionDraft
	if err = json.Unmarshal(raw, &drafts); err != nil {
		a.logger.Err(err).Str("category", category.String()).Msg("quiz payload is not valid JSON")
		return []models.QuizQuestion{}
	}

	if err = a.validator.Validate(ctx, drafts); err != nil {
		a.logger.Warn().Err(err).Str("category", category.String()).Msg("quiz payload rejected")
		return []models.QuizQuestion{}
	}

	quiz := make([]models.QuizQuestion, len(drafts))
	for i, d := range drafts {
		quiz[i] = d.ToQuestion()
	}
	return quiz
}

func (a *clientAssistantService) GenerateFlashcards(ctx context.Context, category models.Category) []models.Flashcard {
	raw, err := a.model.GenerateJSON(ctx, adapter.StructuredRequest{
		Prompt: fmt.Sprintf(flashcardPrompt, models.LearningSetSize, category),
		Schema: flashcardSchema(),
	})
	if err != nil {
		a.logger.Err(err).Str("category", category.String()).Msg("flashcard generation failed")
		return []models.Flashcard{}
	}

	var drafts []models.FlashcardDraft
	if err = json.Unmarshal(raw, &drafts); err != nil {
		a.logger.Err(err).Str("category", category.String()).Msg("flashcard payload is not valid JSON")
		return []models.Flashcard{}
	}

	if err = a.validator.Validate(ctx, drafts); err != nil {
		a.logger.Warn().Err(err).Str("category", category.String()).Msg("flashcard payload rejected")
		return []models.Flashcard{}
	}

	cards := make([]models.Flashcard, len(drafts))
	for i, d := range drafts {
		cards[i] = d.ToFlashcard()
	}
	return cards
}

func quizSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"question": {Type: genai.TypeString},
				"options": {
					Type:  genai.TypeArray,
					Items: &genai.Schema{Type: genai.TypeString},
				},
				"correctIndex": {Type: genai.TypeInteger},
				"explanation":  {Type: genai.TypeString},
			},
			Required: []string{"question", "options", "correctIndex", "explanation"},
		},
	}
}

func flashcardSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"front": {Type: genai.TypeString},
				"back":  {Type: genai.TypeString},
			},
			Required: []string{"front", "back"},
		},
	}
}
