package repositories

import (
	"context"
	"errors"
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockBot struct {
	mock.Mock
}

func (m *MockBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	args := m.Called(c)
	return tgbotapi.Message{}, args.Error(0)
}

func TestTelegramClient_SendPhoto_NumericChat(t *testing.T) {
	bot := new(MockBot)
	client := NewTelegramClientWithBot(bot)

	bot.On("Send", mock.MatchedBy(func(c tgbotapi.Chattable) bool {
		photo, ok := c.(tgbotapi.PhotoConfig)
		if !ok {
			return false
		}
		file, ok := photo.File.(tgbotapi.FileReader)
		return photo.ChatID == -100123 && ok && file.Name == "nasa1.jpg"
	})).Return(nil)

	err := client.SendPhoto(context.Background(), "-100123", "nasa1.jpg", strings.NewReader("jpeg"))
	assert.NoError(t, err)
	bot.AssertExpectations(t)
}

func TestTelegramClient_SendPhoto_Channel(t *testing.T) {
	bot := new(MockBot)
	client := NewTelegramClientWithBot(bot)

	bot.On("Send", mock.MatchedBy(func(c tgbotapi.Chattable) bool {
		photo, ok := c.(tgbotapi.PhotoConfig)
		return ok && photo.ChannelUsername == "@space_pics"
	})).Return(nil)

	err := client.SendPhoto(context.Background(), "@space_pics", "spacex1.jpg", strings.NewReader("jpeg"))
	assert.NoError(t, err)
	bot.AssertExpectations(t)
}

func TestTelegramClient_SendPhoto_InvalidChat(t *testing.T) {
	bot := new(MockBot)
	client := NewTelegramClientWithBot(bot)

	err := client.SendPhoto(context.Background(), "space", "spacex1.jpg", strings.NewReader("jpeg"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid chat id")
	bot.AssertNotCalled(t, "Send", mock.Anything)
}

func TestTelegramClient_SendPhoto_Error(t *testing.T) {
	bot := new(MockBot)
	client := NewTelegramClientWithBot(bot)

	bot.On("Send", mock.Anything).Return(errors.New("Bad Request: chat not found"))

	err := client.SendPhoto(context.Background(), "42", "nasa1.jpg", strings.NewReader("jpeg"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to send photo nasa1.jpg to 42")
}
