package bot

import (
	"context"
	"log/slog"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/furiafan/furiabot/internal/format"
	"github.com/furiafan/furiabot/internal/pipeline"
	"github.com/furiafan/furiabot/internal/pkg/config"
	"github.com/furiafan/furiabot/internal/router"
)

// pipelineTimeout bounds a single pipeline invocation so a stuck upstream
// cannot hold the handler forever.
const pipelineTimeout = 20 * time.Second

// Bot wires the Telegram transport to the router and the pipelines.
type Bot struct {
	api           *tgbotapi.BotAPI
	router        *router.Router
	pipelines     *pipeline.Service
	updateTimeout int
}

func New(cfg *config.TelegramConfig, r *router.Router, p *pipeline.Service) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, err
	}
	api.Debug = false

	return &Bot{
		api:           api,
		router:        r,
		pipelines:     p,
		updateTimeout: cfg.UpdateTimeout,
	}, nil
}

// Run starts the long-polling loop and blocks until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) {
	slog.Info("Authorized on Telegram", "account", b.api.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.updateTimeout
	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			slog.Info("Telegram bot stopped")
			return
		case update := <-updates:
			if update.Message == nil {
				continue
			}
			b.handleMessage(ctx, update.Message)
		}
	}
}

func (b *Bot) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	text := strings.TrimSpace(message.Text)
	if text == "" {
		return
	}

	reqCtx, cancel := context.WithTimeout(ctx, pipelineTimeout)
	defer cancel()

	var decision router.Decision
	if message.IsCommand() {
		name := message.Command()
		switch strings.ToLower(name) {
		case "start":
			b.send(message.Chat.ID, format.Greeting(firstName(message)))
			return
		case "help", "ajuda":
			b.send(message.Chat.ID, format.Help())
			return
		}
		decision = b.router.RouteCommand(router.Command{
			Name: name,
			Args: strings.Fields(message.CommandArguments()),
		})
	} else {
		var userID int64
		if message.From != nil {
			userID = message.From.ID
		}
		decision = b.router.RouteText(reqCtx, router.FreeText{Text: text, UserID: userID})
	}

	switch {
	case decision.OK:
		typing := tgbotapi.NewChatAction(message.Chat.ID, tgbotapi.ChatTyping)
		if _, err := b.api.Request(typing); err != nil {
			slog.Debug("Typing action failed", "error", err)
		}
		b.send(message.Chat.ID, b.pipelines.Handle(reqCtx, decision.Action))
	case decision.Prompt != "":
		b.send(message.Chat.ID, format.Render{Text: decision.Prompt})
	default:
		// Unrecognized input stays silent on purpose: replying to every
		// stray group message would make the bot unbearable.
	}
}

func (b *Bot) send(chatID int64, render format.Render) {
	if render.Text == "" {
		return
	}

	msg := tgbotapi.NewMessage(chatID, render.Text)
	if render.RichText {
		msg.ParseMode = tgbotapi.ModeMarkdown
	}
	if render.NoPreview {
		msg.DisableWebPagePreview = true
	}
	if _, err := b.api.Send(msg); err != nil {
		slog.Error("Failed to send message", "chat_id", chatID, "error", err)
	}
}

func firstName(message *tgbotapi.Message) string {
	if message.From == nil {
		return ""
	}
	return message.From.FirstName
}
