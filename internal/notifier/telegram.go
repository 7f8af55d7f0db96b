package notifier

import (
	"context"
	botApi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/maxaizer/job-radar/internal/entities"
	"github.com/maxaizer/job-radar/internal/logger"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"net/http"
	"strconv"
	"strings"
	"time"
)

type messageSender interface {
	Send(chattable botApi.Chattable) (botApi.Message, error)
}

// TelegramSink posts jobs to one chat. ChatID is either numeric or a public @channel name.
type TelegramSink struct {
	api    messageSender
	chatID string
}

func NewTelegramSink(token, chatID string) (*TelegramSink, error) {

	if strings.TrimSpace(chatID) == "" {
		return nil, errors.New("telegram chat id is empty")
	}

	api, err := botApi.NewBotAPIWithClient(token, botApi.APIEndpoint, &http.Client{Timeout: 15 * time.Second})
	if err != nil {
		return nil, errors.Wrap(err, "error authorizing telegram bot")
	}
	log.Infof("Authorized on account %s", api.Self.UserName)

	if err = botApi.SetLogger(log.StandardLogger()); err != nil {
		return nil, err
	}

	return newTelegramSink(api, chatID), nil
}

func newTelegramSink(api messageSender, chatID string) *TelegramSink {
	return &TelegramSink{api: api, chatID: strings.TrimSpace(chatID)}
}

func (t *TelegramSink) Notify(_ context.Context, job entities.JobRecord) error {
	msg := t.newMessage(formatJob(job))
	msg.DisableWebPagePreview = true

	if _, err := t.api.Send(msg); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeTgApi).Errorf("error occured while sending message: %v", err)
		return errors.Wrap(err, "error sending telegram message")
	}
	return nil
}

func (t *TelegramSink) newMessage(text string) botApi.MessageConfig {
	if id, err := strconv.ParseInt(t.chatID, 10, 64); err == nil {
		return botApi.NewMessage(id, text)
	}
	return botApi.NewMessageToChannel(t.chatID, text)
}
