package telegram

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"complaintbox/backend/internal/localization"
	"complaintbox/backend/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chanSender struct {
	sent chan tgbotapi.Chattable
	err  error
}

func (s *chanSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	s.sent <- c
	return tgbotapi.Message{}, s.err
}

func newTestNotifier(t *testing.T, lang string, sender Sender) *Notifier {
	t.Helper()
	l, err := localization.NewDefault()
	require.NoError(t, err)
	log := logrus.New()
	log.SetOutput(io.Discard)
	return &Notifier{Bot: sender, ChatID: 4242, Lang: lang, Localizer: l, Log: log}
}

func TestNotifier_PublishCreated(t *testing.T) {
	sender := &chanSender{sent: make(chan tgbotapi.Chattable, 1)}
	n := newTestNotifier(t, "en", sender)

	n.Publish(context.Background(), models.ComplaintEvent{
		Type:        models.EventComplaintCreated,
		CaseID:      "tgcase0001",
		Category:    "Harassment",
		Location:    "Dhaka",
		HasEvidence: true,
	})

	select {
	case c := <-sender.sent:
		msg, ok := c.(tgbotapi.MessageConfig)
		require.True(t, ok)
		assert.Equal(t, int64(4242), msg.ChatID)
		assert.Contains(t, msg.Text, "New complaint received")
		assert.Contains(t, msg.Text, "Case ID: tgcase0001")
		assert.Contains(t, msg.Text, "Category: Harassment")
		assert.Contains(t, msg.Text, "Location: Dhaka")
		assert.Contains(t, msg.Text, "Evidence attached")
	case <-time.After(time.Second):
		t.Fatal("no message sent")
	}
}

func TestNotifier_IgnoresStatusUpdates(t *testing.T) {
	sender := &chanSender{sent: make(chan tgbotapi.Chattable, 1)}
	n := newTestNotifier(t, "en", sender)

	n.Publish(context.Background(), models.ComplaintEvent{Type: models.EventComplaintStatusUpdated, CaseID: "tgcase0002"})

	select {
	case <-sender.sent:
		t.Fatal("status updates must not be sent")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestNotifier_SendErrorIsLoggedOnly(t *testing.T) {
	sender := &chanSender{sent: make(chan tgbotapi.Chattable, 1), err: errors.New("bot blocked")}
	n := newTestNotifier(t, "en", sender)

	assert.NotPanics(t, func() {
		n.Publish(context.Background(), models.ComplaintEvent{Type: models.EventComplaintCreated, CaseID: "tgcase0003"})
	})
	<-sender.sent
}

func TestNotifier_FormatLocalized(t *testing.T) {
	n := newTestNotifier(t, "bn", nil)

	text := n.Format(models.ComplaintEvent{CaseID: "tgcase0004", Category: "Other", Location: "Sylhet"})

	assert.Contains(t, text, "নতুন অভিযোগ পাওয়া গেছে")
	assert.Contains(t, text, "tgcase0004")
	assert.NotContains(t, text, "Evidence attached")
}
