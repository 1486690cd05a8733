package roles

import (
	"context"
	"fmt"
	"strings"

	"github.com/medscribe/scribe-flow/internal/llm"
	"github.com/medscribe/scribe-flow/internal/transcript"
)

const classifySystemPrompt = "You are a careful, deterministic classifier."

const classifyPromptTemplate = `You are labeling one speaker in a medical conversation.
Assign exactly one role from: doctor, patient, nurse, other.

Guidelines:
- doctor: clinician assessing, ordering tests, counseling.
- patient: describes symptoms and their own experience.
- nurse: triage, vitals, logistics.
- other: family member, admin staff, interpreter.

Reply with the single role word and nothing else.

Everything this speaker said:
"""
%s
"""`

type llmClassifier struct {
	provider llm.Provider
}

// NewLLMClassifier wraps a completion provider as a Classifier.
func NewLLMClassifier(provider llm.Provider) Classifier {
	return &llmClassifier{provider: provider}
}

// Classify asks the completion service for a role label and parses the
// reply defensively: a clean one-word answer is matched exactly, anything
// wordier is scanned for exactly one role mention, everything else is
// Other.
func (c *llmClassifier) Classify(ctx context.Context, speakerText string) (transcript.Role, error) {
	reply, err := c.provider.Complete(ctx, classifySystemPrompt, fmt.Sprintf(classifyPromptTemplate, speakerText))
	if err != nil {
		return transcript.RoleOther, fmt.Errorf("classify speaker: %w", err)
	}
	return parseRoleReply(reply), nil
}

func parseRoleReply(reply string) transcript.Role {
	cleaned := strings.Trim(strings.TrimSpace(reply), `."'`)
	if role, ok := transcript.ParseRole(cleaned); ok {
		return role
	}

	// Wordy reply: accept it only when exactly one role is mentioned.
	lower := strings.ToLower(reply)
	var found transcript.Role
	var hits int
	for _, role := range []transcript.Role{transcript.RoleDoctor, transcript.RolePatient, transcript.RoleNurse} {
		if strings.Contains(lower, string(role)) {
			found = role
			hits++
		}
	}
	if hits == 1 {
		return found
	}
	return transcript.RoleOther
}
