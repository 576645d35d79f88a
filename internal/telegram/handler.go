package telegram

import (
	"context"
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/kitbuilder587/founder-finder/internal/agent"
	"github.com/kitbuilder587/founder-finder/internal/domain"
	"github.com/kitbuilder587/founder-finder/internal/llm"
	"github.com/kitbuilder587/founder-finder/internal/search"
)

const (
	maxMessageLen = 4096 // лимит телеграма

	startText = `Hi! I find founders and other people on LinkedIn by industry and location.

Use /help to see how.`

	helpText = `<b>Commands:</b>

/start - Introduction
/help - Show this help
/find domain | location [| role] - Search LinkedIn profiles

<b>Examples:</b>
• /find Fintech | Delhi
• /find AI | Berlin | CTO

You can also just write a request, e.g. "Find founders in Edtech domain based in Mumbai".`
)

type Handler struct {
	bot *Bot
}

func NewHandler(bot *Bot) *Handler {
	return &Handler{bot: bot}
}

func (h *Handler) HandleMessage(ctx context.Context, msg *tgbotapi.Message) {
	cmd, args := ParseCommand(msg.Text)

	fields := []zap.Field{
		zap.Int64("chat_id", msg.Chat.ID),
		zap.String("command", cmd),
	}
	if msg.From != nil {
		fields = append(fields, zap.Int64("user_id", msg.From.ID), zap.String("username", msg.From.UserName))
	}
	h.bot.logger.Info("received message", fields...)

	switch cmd {
	case "":
		h.handleText(ctx, msg, args)
	case "start":
		h.bot.Send(msg.Chat.ID, startText)
	case "help":
		h.bot.Send(msg.Chat.ID, helpText)
	case "find":
		h.handleFind(ctx, msg, args)
	default:
		h.bot.Send(msg.Chat.ID, "Unknown command. Use /help to see available commands.")
	}
}

func (h *Handler) handleFind(ctx context.Context, msg *tgbotapi.Message, args string) {
	q, err := ParseFindArgs(args)
	if err != nil {
		h.bot.Send(msg.Chat.ID, mapErrorToMessage(err))
		return
	}

	h.bot.SendTyping(msg.Chat.ID)

	res, err := h.bot.finder.Find(ctx, q)
	if err != nil {
		h.bot.logger.Error("find founders failed",
			zap.Error(err),
			zap.String("query", q.String()),
		)
		h.bot.Send(msg.Chat.ID, mapErrorToMessage(err))
		return
	}

	h.bot.finder.ScheduleRefresh(q)
	h.reply(msg.Chat.ID, FormatProfiles(res.Query, res.Profiles))
}

func (h *Handler) handleText(ctx context.Context, msg *tgbotapi.Message, text string) {
	if h.bot.assistant == nil {
		h.bot.Send(msg.Chat.ID, mapErrorToMessage(llm.ErrNotConfigured))
		return
	}

	h.bot.SendTyping(msg.Chat.ID)

	res, err := h.bot.assistant.Run(ctx, text)
	if err != nil {
		h.bot.logger.Warn("agent request failed", zap.Error(err))
		h.bot.Send(msg.Chat.ID, mapErrorToMessage(err))
		return
	}

	h.reply(msg.Chat.ID, FormatProfiles(res.Query, res.Profiles))
}

func (h *Handler) reply(chatID int64, text string) {
	for _, m := range SplitMessage(text, maxMessageLen) {
		if err := h.bot.Send(chatID, m); err != nil {
			h.bot.logger.Error("failed to send message", zap.Error(err))
		}
	}
}

func mapErrorToMessage(err error) string {
	switch {
	case errors.Is(err, ErrFindUsage):
		return "Usage: /find domain | location [| role]\nExample: /find Fintech | Delhi"
	case errors.Is(err, domain.ErrEmptyDomain):
		return "Please specify a domain, e.g. Fintech."
	case errors.Is(err, domain.ErrEmptyLocation):
		return "Please specify a location, e.g. Delhi."
	case errors.Is(err, domain.ErrEmptyInput):
		return "Empty request. Tell me which founders to look for."
	case errors.Is(err, llm.ErrNotConfigured):
		return "Free-form requests are not available right now. Use /find domain | location [| role]."
	case errors.Is(err, agent.ErrUnparsableRequest):
		return "Could not understand the request. Try /find domain | location [| role]."
	case errors.Is(err, search.ErrSearchFailed):
		return "Search is temporarily unavailable. Please try again later."
	default:
		return "Something went wrong. Please try again later."
	}
}
