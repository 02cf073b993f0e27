package services

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/yungbote/elderbridge-backend/internal/logger"
	"github.com/yungbote/elderbridge-backend/internal/repos"
	"github.com/yungbote/elderbridge-backend/internal/types"
)

// ProfileCard is the flattened profile payload the frontend renders.
type ProfileCard struct {
	Name    string `json:"name"`
	Age     int    `json:"age"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

type ChatReply struct {
	Reply     string            `json:"reply"`
	Profile   *ProfileCard      `json:"profile,omitempty"`
	Reminders []*types.Reminder `json:"reminders,omitempty"`
}

// ChatService is the companion chat: profile lookups by name, otherwise a
// persona-prompted answer over a fixed knowledge base.
type ChatService interface {
	Chat(ctx context.Context, userID uuid.UUID, message string) (ChatReply, error)
}

type chatService struct {
	log           *logger.Logger
	gen           GenerativeClient
	elderRepo     repos.ElderRepo
	youngerRepo   repos.YoungerRepo
	reminderRepo  repos.ReminderRepo
	knowledgeText string
}

func NewChatService(
	log *logger.Logger,
	gen GenerativeClient,
	elderRepo repos.ElderRepo,
	youngerRepo repos.YoungerRepo,
	reminderRepo repos.ReminderRepo,
	knowledgePath string,
) ChatService {
	serviceLog := log.With("service", "ChatService")
	knowledge := ""
	if knowledgePath != "" {
		raw, err := os.ReadFile(knowledgePath)
		if err != nil {
			serviceLog.Warn("Knowledge base file not found", "path", knowledgePath, "error", err)
		} else {
			knowledge = strings.TrimSpace(string(raw))
			serviceLog.Info("Knowledge base loaded", "chars", len(knowledge))
		}
	}
	return &chatService{
		log:           serviceLog,
		gen:           gen,
		elderRepo:     elderRepo,
		youngerRepo:   youngerRepo,
		reminderRepo:  reminderRepo,
		knowledgeText: knowledge,
	}
}

func (cs *chatService) Chat(ctx context.Context, userID uuid.UUID, message string) (ChatReply, error) {
	lowered := strings.ToLower(strings.TrimSpace(message))

	// Profile lookup wins over generation: when a message mentions a known
	// family member by name, the reply is the stored profile card.
	elders, err := cs.elderRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		cs.log.Warn("Elder profile lookup failed", "error", err)
	}
	for _, elder := range elders {
		if !nameMentioned(lowered, elder.Name) {
			continue
		}
		reminders, rErr := cs.reminderRepo.Upcoming(ctx, nil, userID, elder.ID, 5)
		if rErr != nil {
			cs.log.Warn("Could not fetch reminders for elder", "elder_id", elder.ID, "error", rErr)
		}
		return ChatReply{
			Profile: &ProfileCard{
				Name:    elder.Name,
				Age:     elder.Age,
				Email:   elder.Email,
				Phone:   elder.Phone,
				Address: elder.Address,
				Notes:   elder.Notes,
			},
			Reminders: reminders,
		}, nil
	}

	youngers, err := cs.youngerRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		cs.log.Warn("Younger profile lookup failed", "error", err)
	}
	for _, younger := range youngers {
		if !nameMentioned(lowered, younger.Name) {
			continue
		}
		return ChatReply{
			Reply: fmt.Sprintf("Here is the younger profile of %s.", younger.Name),
			Profile: &ProfileCard{
				Name:    younger.Name,
				Age:     younger.Age,
				Email:   younger.Email,
				Phone:   younger.Phone,
				Address: younger.Address,
				Notes:   younger.Notes,
			},
		}, nil
	}

	answer, err := cs.gen.Generate(ctx, cs.personaPrompt(message))
	if err != nil {
		return ChatReply{}, err
	}
	return ChatReply{Reply: humanizeResponse(answer)}, nil
}

func nameMentioned(loweredMessage, name string) bool {
	name = strings.ToLower(strings.TrimSpace(name))
	return name != "" && strings.Contains(loweredMessage, name)
}

func (cs *chatService) personaPrompt(message string) string {
	if cs.knowledgeText == "" {
		return message
	}
	return fmt.Sprintf(`You are Rama, a warm and caring friend who happens to be very knowledgeable. You speak naturally, like a real person would - not like a formal AI assistant.

Below is your knowledge base:
---
%s
---

Now respond to this question as Rama would - naturally, warmly, and conversationally:
"%s"

Important guidelines:
- Write like a human friend, not an AI
- Use natural language and contractions (I'm, you're, don't, etc.)
- Avoid formal AI phrases like "I understand", "I can help you with", "Based on my knowledge"
- Don't use bullet points or numbered lists unless absolutely necessary
- Keep responses conversational and personal
- If you don't know something, say so naturally
- Use simple, everyday language
- Be warm and empathetic`, cs.knowledgeText, message)
}

// contractionReplacements are applied in order to soften stock AI phrasing.
var contractionReplacements = []struct {
	formal string
	casual string
}{
	{"I understand", "I see"},
	{"I can help you with", "I can tell you about"},
	{"Based on my knowledge", "From what I know"},
	{"I'm an AI", "I'm Rama"},
	{"As an AI", "As Rama"},
	{"I don't have", "I don't know"},
	{"I cannot", "I can't"},
	{"I will", "I'll"},
	{"I have", "I've"},
	{"I am", "I'm"},
	{"You are", "You're"},
	{"Do not", "Don't"},
	{"Cannot", "Can't"},
	{"Will not", "Won't"},
	{"Should not", "Shouldn't"},
	{"Would not", "Wouldn't"},
	{"Could not", "Couldn't"},
	{"Have not", "Haven't"},
	{"Has not", "Hasn't"},
	{"Is not", "Isn't"},
	{"Are not", "Aren't"},
	{"Was not", "Wasn't"},
	{"Were not", "Weren't"},
}

// humanizeResponse flattens list formatting and swaps formal phrasing for
// contractions so replies read like a person wrote them.
func humanizeResponse(text string) string {
	if text == "" {
		return text
	}
	for _, r := range contractionReplacements {
		text = strings.ReplaceAll(text, r.formal, r.casual)
	}
	text = strings.ReplaceAll(text, "...", ".")
	text = strings.ReplaceAll(text, "!!", "!")
	text = strings.ReplaceAll(text, "??", "?")

	var cleaned []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if isBulletLine(line) {
			line = strings.TrimLeft(line, "•-*0123456789. ")
			if line != "" {
				cleaned = append(cleaned, line+".")
			}
			continue
		}
		cleaned = append(cleaned, line)
	}
	return strings.TrimSpace(strings.Join(cleaned, " "))
}

func isBulletLine(line string) bool {
	for _, prefix := range []string{"•", "-", "*", "1.", "2.", "3.", "4.", "5.", "6.", "7.", "8.", "9."} {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}
