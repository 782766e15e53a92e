package bot

import (
	"context"
	"log/slog"
	"time"

	"gopkg.in/telebot.v4"
)

// Config — конфигурация бота
type Config struct {
	Token           string
	LongPollTimeout time.Duration
	RequestTimeout  time.Duration
}

// RateDTO — один курс в USD; Rate == nil, если курс не найден
type RateDTO struct {
	Label   string
	IsoDate time.Time
	Rate    *float64
}

// RatesReader — интерфейс для чтения курсов
type RatesReader interface {
	// GetCryptoRate — курс актива по плоскому ключу (chainId или chainId_tokenId); пустая дата — сейчас
	GetCryptoRate(ctx context.Context, flatAsset, isoDate string) (RateDTO, error)
	GetFiatRate(ctx context.Context, fiatCode, isoDate string) (RateDTO, error)
}

// Bot — основной тип приложения
type Bot struct {
	bot     *telebot.Bot
	rates   RatesReader
	timeout time.Duration
	logger  *slog.Logger
}

// New создаёт новый экземпляр приложения
func New(cfg Config, rates RatesReader, logger *slog.Logger) (*Bot, error) {
	if cfg.LongPollTimeout <= 0 {
		cfg.LongPollTimeout = 10 * time.Second
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 20 * time.Second
	}

	b, err := telebot.NewBot(telebot.Settings{
		Token:  cfg.Token,
		Poller: &telebot.LongPoller{Timeout: cfg.LongPollTimeout},
	})
	if err != nil {
		return nil, err
	}

	bot := &Bot{
		bot:     b,
		rates:   rates,
		timeout: cfg.RequestTimeout,
		logger:  logger,
	}

	// маршруты команд
	b.Handle("/start", bot.handleStart)
	b.Handle("/rate", bot.handleRate)
	b.Handle("/fiat", bot.handleFiat)
	return bot, nil
}

// Start запускает long polling в отдельной горутине
func (b *Bot) Start() {
	go b.bot.Start()
}

// Stop останавливает бота
func (b *Bot) Stop() {
	b.bot.Stop()
}
