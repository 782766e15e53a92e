package bot

import (
	"context"
	"log/slog"
	"strings"

	"gopkg.in/telebot.v4"

	"github.com/NastyaGoryachaya/edge-rates-service/internal/consts"
	"github.com/NastyaGoryachaya/edge-rates-service/internal/pkg/botfmt"
)

// handleStart — отправляет справку по доступным командам бота
func (b *Bot) handleStart(c telebot.Context) error {
	return c.Send("Привет! Доступные команды:\n" +
		"/rate {актив} [дата] - курс актива в USD, например /rate " + consts.DefaultWarmUpAssets[0] + "\n" +
		"/fiat {код} [дата] - курс фиатной валюты в USD, например /fiat EUR\n" +
		"Дата в формате " + botfmt.DateHint)
}

// handleRate — курс одного актива; второй аргумент — дата ISO 8601
func (b *Bot) handleRate(c telebot.Context) error {
	args := c.Args()
	if len(args) == 0 || len(args) > 2 {
		return c.Send("Укажи актив: /rate bitcoin или /rate ethereum_0xdac17f958d2ee523a2206206994597c13d831ec7")
	}
	date := ""
	if len(args) == 2 {
		date = args[1]
	}

	ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
	defer cancel()

	item, err := b.rates.GetCryptoRate(ctx, strings.TrimSpace(args[0]), date)
	if err != nil {
		b.logger.Warn("bot: /rate failed",
			slog.Int64("chat_id", c.Chat().ID),
			slog.String("text", c.Text()),
			slog.String("error", err.Error()),
		)
		return c.Send(translateBotError(err))
	}
	return c.Send(botfmt.FormatRate(item.Label, item.IsoDate, item.Rate))
}

// handleFiat — курс фиатной валюты
func (b *Bot) handleFiat(c telebot.Context) error {
	args := c.Args()
	if len(args) == 0 || len(args) > 2 {
		return c.Send("Укажи валюту: /fiat EUR")
	}
	date := ""
	if len(args) == 2 {
		date = args[1]
	}

	ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
	defer cancel()

	item, err := b.rates.GetFiatRate(ctx, args[0], date)
	if err != nil {
		b.logger.Warn("bot: /fiat failed",
			slog.Int64("chat_id", c.Chat().ID),
			slog.String("text", c.Text()),
			slog.String("error", err.Error()),
		)
		return c.Send(translateBotError(err))
	}
	return c.Send(botfmt.FormatRate(item.Label, item.IsoDate, item.Rate))
}
