package conversation

import (
	"time"

	"github.com/abhisek/promptcraft/internal/script"
)

// MessageType tags which payload a Message carries and which widget renders it.
type MessageType string

const (
	TypeText         MessageType = "text"
	TypeChoice       MessageType = "choice"
	TypePromptResult MessageType = "prompt-result"
	TypeVideoPreview MessageType = "video-preview"
	TypeReference    MessageType = "reference"
	TypeLearnerCard  MessageType = "learner-card"
)

// Sender identifies who authored a message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderAI   Sender = "ai"
)

// ChoicePrompt is the payload of a choice message.
type ChoicePrompt struct {
	StepID  string                `json:"step_id"`
	Options []script.ChoiceOption `json:"options"`
}

// PromptResult is the payload of a prompt-result message.
type PromptResult struct {
	Prompt string `json:"prompt"`

	// Parameters maps step ID to the recorded selection label.
	Parameters map[string]string `json:"parameters"`
}

// Message is one entry of the conversation log. Messages are created once
// and never modified after they are appended.
type Message struct {
	ID        string      `json:"id"`
	Type      MessageType `json:"type"`
	Sender    Sender      `json:"sender"`
	Content   string      `json:"content"`
	Timestamp time.Time   `json:"timestamp"`

	Choices      *ChoicePrompt           `json:"choices,omitempty"`
	PromptResult *PromptResult           `json:"prompt_result,omitempty"`
	References   []script.Reference      `json:"references,omitempty"`
	LearnerCard  []script.KnowledgePoint `json:"learner_card,omitempty"`
}

// IsAI reports whether the message was authored by the assistant.
func (m Message) IsAI() bool {
	return m.Sender == SenderAI
}

// Clone returns a deep copy of m.
func (m Message) Clone() Message {
	out := m
	if m.Choices != nil {
		c := *m.Choices
		c.Options = append([]script.ChoiceOption(nil), m.Choices.Options...)
		out.Choices = &c
	}
	if m.PromptResult != nil {
		pr := PromptResult{
			Prompt:     m.PromptResult.Prompt,
			Parameters: make(map[string]string, len(m.PromptResult.Parameters)),
		}
		for k, v := range m.PromptResult.Parameters {
			pr.Parameters[k] = v
		}
		out.PromptResult = &pr
	}
	if m.References != nil {
		out.References = append([]script.Reference(nil), m.References...)
	}
	if m.LearnerCard != nil {
		out.LearnerCard = make([]script.KnowledgePoint, len(m.LearnerCard))
		for i, kp := range m.LearnerCard {
			out.LearnerCard[i] = script.KnowledgePoint{
				Step:   kp.Step,
				Points: append([]string(nil), kp.Points...),
			}
		}
	}
	return out
}
