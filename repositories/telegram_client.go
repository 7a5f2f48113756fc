package repositories

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type BotAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type TelegramClient struct {
	bot BotAPI
}

func NewTelegramClient(token string) (*TelegramClient, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	return &TelegramClient{bot: bot}, nil
}

func NewTelegramClientWithBot(bot BotAPI) *TelegramClient {
	return &TelegramClient{bot: bot}
}

// SendPhoto uploads r as a photo. chatID is either a numeric chat id or a
// public channel username such as "@space".
func (c *TelegramClient) SendPhoto(ctx context.Context, chatID string, name string, r io.Reader) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	photo, err := newPhotoConfig(chatID, tgbotapi.FileReader{Name: name, Reader: r})
	if err != nil {
		return err
	}
	if _, err := c.bot.Send(photo); err != nil {
		return fmt.Errorf("failed to send photo %s to %s: %w", name, chatID, err)
	}
	return nil
}

func newPhotoConfig(chatID string, file tgbotapi.RequestFileData) (tgbotapi.PhotoConfig, error) {
	chatID = strings.TrimSpace(chatID)
	if strings.HasPrefix(chatID, "@") {
		return tgbotapi.NewPhotoToChannel(chatID, file), nil
	}
	id, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return tgbotapi.PhotoConfig{}, fmt.Errorf("invalid chat id %q: %w", chatID, err)
	}
	return tgbotapi.NewPhoto(id, file), nil
}
