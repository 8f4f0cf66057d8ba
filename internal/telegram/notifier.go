// Package telegram notifies an operator chat when citizens file complaints.
package telegram

import (
	"context"
	"fmt"
	"strings"

	"complaintbox/backend/internal/localization"
	"complaintbox/backend/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

// Sender is the subset of *tgbotapi.BotAPI the notifier needs.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Notifier implements complaint.EventPublisher. Messages never include the
// description, the evidence link or anything derived from the PIN.
type Notifier struct {
	Bot       Sender
	ChatID    int64
	Lang      string
	Localizer *localization.Localizer
	Log       *logrus.Logger
}

// NewNotifier authorizes against the Bot API and loads the embedded locales.
func NewNotifier(token string, chatID int64, lang string, log *logrus.Logger) (*Notifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram authorize: %w", err)
	}
	bot.Debug = false
	log.WithField("account", bot.Self.UserName).Info("telegram notifier authorized")

	localizer, err := localization.NewDefault()
	if err != nil {
		return nil, fmt.Errorf("failed to create localizer: %w", err)
	}

	return &Notifier{
		Bot:       bot,
		ChatID:    chatID,
		Lang:      lang,
		Localizer: localizer,
		Log:       log,
	}, nil
}

// Publish sends a message for newly created complaints. Delivery happens in
// the background so the citizen's request never waits on Telegram.
func (n *Notifier) Publish(_ context.Context, event models.ComplaintEvent) {
	if event.Type != models.EventComplaintCreated {
		return
	}

	msg := tgbotapi.NewMessage(n.ChatID, n.Format(event))
	go func() {
		if _, err := n.Bot.Send(msg); err != nil {
			n.Log.WithError(err).WithField("case_id", event.CaseID).Warn("telegram notification failed")
		}
	}()
}

// Format renders the notification text for event.
func (n *Notifier) Format(event models.ComplaintEvent) string {
	t := func(key string) string { return n.Localizer.GetString(n.Lang, key) }

	var b strings.Builder
	b.WriteString(t("notify_new_complaint"))
	fmt.Fprintf(&b, "\n%s: %s", t("notify_case_id"), event.CaseID)
	fmt.Fprintf(&b, "\n%s: %s", t("notify_category"), event.Category)
	fmt.Fprintf(&b, "\n%s: %s", t("notify_location"), event.Location)
	if event.HasEvidence {
		b.WriteString("\n" + t("notify_evidence"))
	}
	return b.String()
}
