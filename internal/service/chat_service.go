package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"admitiq/internal/dto"
	"admitiq/internal/models"
	"admitiq/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrEmptyMessage = errors.New("message is empty")

const DefaultSupportEmail = "support@admitiq.edu"

var (
	greetingPhrases = []string{
		"hello", "hi", "hey", "good morning", "good afternoon", "good evening", "bonjour", "salut",
	}

	metaQuestionPhrases = []string{
		"what did i ask", "what was my question", "what did i say", "previous question", "my last question",
	}

	// Checked in order, first hit wins.
	fallbackTopics = []struct {
		trigger string
		topic   string
	}{
		{"cost", "financial aid and tuition costs"},
		{"money", "financial aid and scholarships"},
		{"class", "academic programs and course registration"},
		{"live", "campus housing and residential life"},
		{"dorm", "campus housing options"},
		{"food", "dining services and meal plans"},
		{"job", "career services and internships"},
		{"work", "work-study programs and career opportunities"},
		{"club", "student organizations and activities"},
		{"sport", "athletics and recreational sports"},
		{"health", "health services and counseling"},
		{"wifi", "technology resources and IT support"},
		{"library", "library services and study spaces"},
		{"parking", "parking and transportation options"},
	}

	quickReplies = []string{
		"What are admission requirements?",
		"How do I apply for scholarships?",
		"What majors are available?",
		"Tell me about campus housing",
	}
)

const (
	welcomeText = "Hello! I'm your AdmitIQ assistant. I can help you with questions about admissions, " +
		"financial aid, academics, campus life, and more. What would you like to know?"

	greetingText = "Hello! 👋 I'm your AdmitIQ assistant. I'm here to help you with any questions about our university. " +
		"I can assist with:\n\n" +
		"• Admissions & Applications\n" +
		"• Financial Aid & Scholarships\n" +
		"• Academic Programs\n" +
		"• Campus Life & Housing\n" +
		"• Career Services\n" +
		"• Technical Support\n\n" +
		"What would you like to know?"

	previousQuestionFormat = "Your previous question was: \"%s\"\n\n" +
		"Would you like me to answer that question, or do you have a different question?"

	firstQuestionText = "This is the first question you've asked in our conversation. How can I help you today?"

	answerFollowUp = "\n\n💡 Is there anything else you'd like to know about this topic?"

	clarifyFormat = "I understand you're interested in %s. While I don't have a specific answer to \"%s\" " +
		"in my current database, I'd be happy to help!\n\n" +
		"Could you be more specific? For example:\n" +
		"• What specific aspect interests you?\n" +
		"• Are you looking for requirements, costs, or availability?\n\n" +
		"Alternatively, you can contact our support team at %s for personalized assistance."

	fallbackFormat = "Thank you for your question: \"%s\"\n\n" +
		"I want to make sure I give you the most accurate information. " +
		"Could you help me understand better by choosing one of these topics?\n\n" +
		"• Admissions & Applications\n" +
		"• Financial Aid & Scholarships\n" +
		"• Academic Programs & Courses\n" +
		"• Campus Life & Housing\n" +
		"• Career Services & Internships\n" +
		"• Technical Support\n\n" +
		"Or feel free to rephrase your question, and I'll do my best to help! " +
		"You can also reach our support team at %s."
)

// Matcher ranks knowledge base records for a free-text query.
type Matcher interface {
	FindBestMatch(query string, role string) *models.QARecord
}

// ReplyObserver is notified of every reply the chat service produces.
type ReplyObserver interface {
	ObserveReply(kind string)
}

// ChatService is the conversation surface in front of the matcher.
type ChatService struct {
	matcher      Matcher
	sessions     *repository.SessionRepository
	observer     ReplyObserver
	supportEmail string
	now          func() time.Time
	logger       *zap.Logger
}

func NewChatService(
	matcher Matcher,
	sessions *repository.SessionRepository,
	observer ReplyObserver,
	supportEmail string,
	logger *zap.Logger,
) *ChatService {
	if supportEmail == "" {
		supportEmail = DefaultSupportEmail
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChatService{
		matcher:      matcher,
		sessions:     sessions,
		observer:     observer,
		supportEmail: supportEmail,
		now:          func() time.Time { return time.Now().UTC() },
		logger:       logger,
	}
}

// Welcome returns the opening message of a conversation.
func (s *ChatService) Welcome() *dto.ChatResponse {
	return s.reply(dto.ReplyKindWelcome, welcomeText)
}

// QuickReplies returns suggested first questions.
func (s *ChatService) QuickReplies() []string {
	return append([]string(nil), quickReplies...)
}

// Reply answers one user message. Greetings and questions about the previous
// message are handled before the knowledge base is consulted; when the matcher
// has no confident answer the reply asks the user to clarify.
func (s *ChatService) Reply(ctx context.Context, sessionID uuid.UUID, role string, message string) (*dto.ChatResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	message = sanitizeUTF8(message)
	if strings.TrimSpace(message) == "" {
		return nil, ErrEmptyMessage
	}

	prev, hasPrev := s.sessions.SwapLastMessage(sessionID, models.Role(role), message)
	lower := strings.ToLower(message)

	var resp *dto.ChatResponse
	switch {
	case containsAny(lower, greetingPhrases):
		resp = s.reply(dto.ReplyKindGreeting, greetingText)

	case containsAny(lower, metaQuestionPhrases):
		if hasPrev {
			resp = s.reply(dto.ReplyKindMeta, fmt.Sprintf(previousQuestionFormat, prev))
		} else {
			resp = s.reply(dto.ReplyKindMeta, firstQuestionText)
		}

	default:
		if match := s.matcher.FindBestMatch(message, role); match != nil {
			resp = s.reply(dto.ReplyKindAnswer, match.Answer+answerFollowUp)
			resp.RelatedQuestion = match.Question
		} else if topic := suggestTopic(lower); topic != "" {
			resp = s.reply(dto.ReplyKindClarify, fmt.Sprintf(clarifyFormat, topic, message, s.supportEmail))
			resp.SuggestedTopic = topic
		} else {
			resp = s.reply(dto.ReplyKindFallback, fmt.Sprintf(fallbackFormat, message, s.supportEmail))
		}
	}

	if s.observer != nil {
		s.observer.ObserveReply(string(resp.Kind))
	}
	s.logger.Debug("Chat reply",
		zap.String("session_id", sessionID.String()),
		zap.String("role", role),
		zap.String("kind", string(resp.Kind)),
	)

	return resp, nil
}

func (s *ChatService) reply(kind dto.ReplyKind, text string) *dto.ChatResponse {
	return &dto.ChatResponse{
		Kind:      kind,
		Text:      text,
		Timestamp: s.now(),
	}
}

func suggestTopic(lower string) string {
	for _, t := range fallbackTopics {
		if strings.Contains(lower, t.trigger) {
			return t.topic
		}
	}
	return ""
}

func containsAny(s string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}
