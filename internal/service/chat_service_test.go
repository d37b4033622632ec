package service

import (
	"context"
	"testing"
	"time"

	"admitiq/internal/dto"
	"admitiq/internal/models"
	"admitiq/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type kindRecorder struct {
	kinds []string
}

func (r *kindRecorder) ObserveReply(kind string) {
	r.kinds = append(r.kinds, kind)
}

// countingMatcher fails the test if the matcher is reached when it should not be.
type countingMatcher struct {
	inner Matcher
	calls int
}

func (m *countingMatcher) FindBestMatch(query, role string) *models.QARecord {
	m.calls++
	if m.inner == nil {
		return nil
	}
	return m.inner.FindBestMatch(query, role)
}

func newTestChatService(t *testing.T, matcher Matcher, observer ReplyObserver) *ChatService {
	t.Helper()
	if matcher == nil {
		matcher = newCorpusMatcher(t)
	}
	svc := NewChatService(matcher, repository.NewSessionRepository(nil), observer, "", nil)
	svc.now = func() time.Time { return time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC) }
	return svc
}

func TestReply_Greeting(t *testing.T) {
	matcher := &countingMatcher{}
	svc := newTestChatService(t, matcher, nil)

	for _, msg := range []string{"hello", "Hi there", "Good Evening!", "bonjour", "Which dorm is best?"} {
		t.Run(msg, func(t *testing.T) {
			resp, err := svc.Reply(context.Background(), uuid.New(), "student", msg)
			require.NoError(t, err)
			assert.Equal(t, dto.ReplyKindGreeting, resp.Kind)
			assert.Equal(t, greetingText, resp.Text)
			assert.Empty(t, resp.RelatedQuestion)
		})
	}
	assert.Zero(t, matcher.calls)
}

func TestReply_GreetingWinsOverMeta(t *testing.T) {
	svc := newTestChatService(t, &countingMatcher{}, nil)

	resp, err := svc.Reply(context.Background(), uuid.New(), "student", "hey, what did i ask?")
	require.NoError(t, err)
	assert.Equal(t, dto.ReplyKindGreeting, resp.Kind)
}

func TestReply_MetaQuestion(t *testing.T) {
	ctx := context.Background()

	t.Run("first message", func(t *testing.T) {
		matcher := &countingMatcher{}
		svc := newTestChatService(t, matcher, nil)

		resp, err := svc.Reply(ctx, uuid.New(), "student", "What did I ask?")
		require.NoError(t, err)
		assert.Equal(t, dto.ReplyKindMeta, resp.Kind)
		assert.Equal(t, firstQuestionText, resp.Text)
		assert.Zero(t, matcher.calls)
	})

	t.Run("echoes the previous message verbatim", func(t *testing.T) {
		svc := newTestChatService(t, nil, nil)
		session := uuid.New()

		_, err := svc.Reply(ctx, session, "student", "Where is the WiFi?")
		require.NoError(t, err)

		resp, err := svc.Reply(ctx, session, "student", "what was my question")
		require.NoError(t, err)
		assert.Equal(t, dto.ReplyKindMeta, resp.Kind)
		assert.Equal(t, "Your previous question was: \"Where is the WiFi?\"\n\n"+
			"Would you like me to answer that question, or do you have a different question?", resp.Text)
	})

	t.Run("meta questions are remembered too", func(t *testing.T) {
		svc := newTestChatService(t, nil, nil)
		session := uuid.New()

		_, err := svc.Reply(ctx, session, "student", "my last question")
		require.NoError(t, err)

		resp, err := svc.Reply(ctx, session, "student", "previous question")
		require.NoError(t, err)
		assert.Contains(t, resp.Text, "\"my last question\"")
	})

	t.Run("sessions are independent", func(t *testing.T) {
		svc := newTestChatService(t, nil, nil)

		_, err := svc.Reply(ctx, uuid.New(), "student", "wifi")
		require.NoError(t, err)

		resp, err := svc.Reply(ctx, uuid.New(), "student", "what did i say")
		require.NoError(t, err)
		assert.Equal(t, firstQuestionText, resp.Text)
	})
}

func TestReply_Answer(t *testing.T) {
	recorder := &kindRecorder{}
	svc := newTestChatService(t, nil, recorder)

	resp, err := svc.Reply(context.Background(), uuid.New(), "student", "What are the admission requirements?")
	require.NoError(t, err)

	assert.Equal(t, dto.ReplyKindAnswer, resp.Kind)
	assert.Equal(t, "What are the admission requirements?", resp.RelatedQuestion)
	assert.Contains(t, resp.Text, "GPA requirement is 3.0+ for regular admission.")
	assert.True(t, len(resp.Text) > len(answerFollowUp))
	assert.Equal(t, answerFollowUp, resp.Text[len(resp.Text)-len(answerFollowUp):])
	assert.Equal(t, time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC), resp.Timestamp)
	assert.Equal(t, []string{"answer"}, recorder.kinds)
}

func TestReply_AnswerUsesRole(t *testing.T) {
	svc := newTestChatService(t, nil, nil)
	ctx := context.Background()

	resp, err := svc.Reply(ctx, uuid.New(), "admin", "counseling")
	require.NoError(t, err)
	assert.Equal(t, dto.ReplyKindAnswer, resp.Kind)
	assert.Equal(t, "What counseling services are available?", resp.RelatedQuestion)

	resp, err = svc.Reply(ctx, uuid.New(), "alumni", "counseling")
	require.NoError(t, err)
	assert.Equal(t, dto.ReplyKindFallback, resp.Kind)
}

func TestReply_Clarify(t *testing.T) {
	svc := newTestChatService(t, nil, nil)

	tests := []struct {
		message string
		topic   string
	}{
		{"library hours", "library services and study spaces"},
		{"is there a sports team", "athletics and recreational sports"},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			resp, err := svc.Reply(context.Background(), uuid.New(), "student", tt.message)
			require.NoError(t, err)
			assert.Equal(t, dto.ReplyKindClarify, resp.Kind)
			assert.Equal(t, tt.topic, resp.SuggestedTopic)
			assert.Contains(t, resp.Text, "I understand you're interested in "+tt.topic+".")
			assert.Contains(t, resp.Text, "\""+tt.message+"\"")
			assert.Contains(t, resp.Text, DefaultSupportEmail)
		})
	}
}

func TestSuggestTopic_FirstTriggerWins(t *testing.T) {
	assert.Equal(t, "financial aid and tuition costs", suggestTopic("cost of a dorm with food"))
	assert.Equal(t, "campus housing options", suggestTopic("dorm food"))
	assert.Equal(t, "", suggestTopic("nothing here"))
}

func TestReply_Fallback(t *testing.T) {
	matcher := NewMatchService(staticSource{}, nil, nil)
	svc := NewChatService(matcher, repository.NewSessionRepository(nil), nil, "help@example.edu", nil)

	resp, err := svc.Reply(context.Background(), uuid.New(), "student", "asdf QWER zxcv")
	require.NoError(t, err)

	assert.Equal(t, dto.ReplyKindFallback, resp.Kind)
	assert.Empty(t, resp.SuggestedTopic)
	assert.Contains(t, resp.Text, "Thank you for your question: \"asdf QWER zxcv\"")
	assert.Contains(t, resp.Text, "help@example.edu")
	assert.NotContains(t, resp.Text, DefaultSupportEmail)
}

func TestReply_EmptyMessage(t *testing.T) {
	matcher := &countingMatcher{}
	svc := newTestChatService(t, matcher, nil)
	session := uuid.New()

	for _, msg := range []string{"", "   ", "\n\t"} {
		_, err := svc.Reply(context.Background(), session, "student", msg)
		assert.ErrorIs(t, err, ErrEmptyMessage)
	}
	assert.Zero(t, matcher.calls)

	// Blank messages are not remembered.
	resp, err := svc.Reply(context.Background(), session, "student", "what did i ask")
	require.NoError(t, err)
	assert.Equal(t, firstQuestionText, resp.Text)
}

func TestReply_CancelledContext(t *testing.T) {
	svc := newTestChatService(t, &countingMatcher{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Reply(ctx, uuid.New(), "student", "wifi")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWelcomeAndQuickReplies(t *testing.T) {
	svc := newTestChatService(t, &countingMatcher{}, nil)

	welcome := svc.Welcome()
	assert.Equal(t, dto.ReplyKindWelcome, welcome.Kind)
	assert.Contains(t, welcome.Text, "AdmitIQ assistant")

	replies := svc.QuickReplies()
	require.Len(t, replies, 4)
	replies[0] = "mutated"
	assert.Equal(t, "What are admission requirements?", svc.QuickReplies()[0])
}
