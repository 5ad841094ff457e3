package notify

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type telegramAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Telegram sends messages through the Bot API to one chat or channel.
type Telegram struct {
	token string
	chat  string

	newAPI func(token string) (telegramAPI, error)

	mu  sync.Mutex
	api telegramAPI
}

// NewTelegram creates a Telegram sender. chat is a numeric chat id or an
// @channel name. The bot is authorized on first use.
func NewTelegram(token, chat string) *Telegram {
	return &Telegram{
		token: token,
		chat:  chat,
		newAPI: func(token string) (telegramAPI, error) {
			return tgbotapi.NewBotAPI(token)
		},
	}
}

// Notify sends body, split into Telegram-sized messages when needed.
func (t *Telegram) Notify(ctx context.Context, body string) error {
	api, err := t.client()
	if err != nil {
		return err
	}

	for _, part := range SplitMessage(body, TelegramLimit) {
		if err := ctx.Err(); err != nil {
			return err
		}
		msg, err := t.message(part)
		if err != nil {
			return err
		}
		if _, err := api.Send(msg); err != nil {
			return fmt.Errorf("send message: %w", err)
		}
	}
	return nil
}

func (t *Telegram) client() (telegramAPI, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.api != nil {
		return t.api, nil
	}
	api, err := t.newAPI(t.token)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}
	t.api = api
	return api, nil
}

func (t *Telegram) message(text string) (tgbotapi.MessageConfig, error) {
	var msg tgbotapi.MessageConfig
	if strings.HasPrefix(t.chat, "@") {
		msg = tgbotapi.NewMessageToChannel(t.chat, text)
	} else {
		chatID, err := strconv.ParseInt(t.chat, 10, 64)
		if err != nil {
			return msg, fmt.Errorf("parse chat id %q: %w", t.chat, err)
		}
		msg = tgbotapi.NewMessage(chatID, text)
	}
	msg.DisableWebPagePreview = true
	return msg, nil
}
