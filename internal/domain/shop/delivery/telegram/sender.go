package telegram

import (
	"bytes"
	"context"
	"fmt"
	"time"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog"

	"github.com/makarov13/gastrobot/config"
	"github.com/makarov13/gastrobot/internal/domain/shop/dto"
)

// RequestTimeout bounds individual Telegram API calls
const RequestTimeout = 30 * time.Second

// Sender implements deps.TelegramSender on top of the bot API client
type Sender struct {
	bot           *tgbot.Bot
	providerToken string
	logger        zerolog.Logger
}

// NewSender creates a new Sender
func NewSender(bot *tgbot.Bot, payments *config.PaymentsConfig, logger zerolog.Logger) *Sender {
	return &Sender{
		bot:           bot,
		providerToken: payments.ProviderToken,
		logger:        logger,
	}
}

// SendMessage implements deps.TelegramSender interface
func (s *Sender) SendMessage(ctx context.Context, chatID int64, text string) error {
	if text == "" {
		s.logger.Warn().Int64("chat_id", chatID).Msg("Attempt to send empty message")
		return fmt.Errorf("message text cannot be empty")
	}

	msgCtx, cancel := context.WithTimeout(ctx, RequestTimeout)
	defer cancel()

	_, err := s.bot.SendMessage(msgCtx, &tgbot.SendMessageParams{
		ChatID:    chatID,
		Text:      text,
		ParseMode: models.ParseModeHTML,
	})
	if err != nil {
		s.logger.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to send message")
	}

	return err
}

// DeleteMessage removes a message, used to retract stale invoices
func (s *Sender) DeleteMessage(ctx context.Context, chatID int64, messageID int) error {
	msgCtx, cancel := context.WithTimeout(ctx, RequestTimeout)
	defer cancel()

	_, err := s.bot.DeleteMessage(msgCtx, &tgbot.DeleteMessageParams{
		ChatID:    chatID,
		MessageID: messageID,
	})
	if err != nil {
		s.logger.Warn().Err(err).Int64("chat_id", chatID).Int("message_id", messageID).Msg("Failed to delete message")
	}

	return err
}

// SendInvoice implements deps.TelegramSender interface. It returns the
// message ID of the invoice so it can be retracted once paid or replaced.
// Telegram Stars invoices must be sent without a provider token.
func (s *Sender) SendInvoice(ctx context.Context, chatID int64, invoice dto.InvoiceSpec) (int, error) {
	msgCtx, cancel := context.WithTimeout(ctx, RequestTimeout)
	defer cancel()

	prices := make([]models.LabeledPrice, 0, len(invoice.Prices))
	for _, p := range invoice.Prices {
		prices = append(prices, models.LabeledPrice{Label: p.Label, Amount: p.Amount})
	}

	providerToken := s.providerToken
	if invoice.Currency == "XTR" {
		providerToken = ""
	}

	msg, err := s.bot.SendInvoice(msgCtx, &tgbot.SendInvoiceParams{
		ChatID:        chatID,
		Title:         invoice.Title,
		Description:   invoice.Description,
		Payload:       invoice.Payload,
		ProviderToken: providerToken,
		Currency:      invoice.Currency,
		Prices:        prices,
	})
	if err != nil {
		s.logger.Error().Err(err).Int64("chat_id", chatID).Str("currency", invoice.Currency).Msg("Failed to send invoice")
		return 0, err
	}

	return msg.ID, nil
}

// SendDocument implements deps.TelegramSender interface
func (s *Sender) SendDocument(ctx context.Context, chatID int64, filename string, data []byte, caption string) error {
	msgCtx, cancel := context.WithTimeout(ctx, RequestTimeout)
	defer cancel()

	_, err := s.bot.SendDocument(msgCtx, &tgbot.SendDocumentParams{
		ChatID:   chatID,
		Document: &models.InputFileUpload{Filename: filename, Data: bytes.NewReader(data)},
		Caption:  caption,
	})
	if err != nil {
		s.logger.Error().Err(err).Int64("chat_id", chatID).Str("filename", filename).Msg("Failed to send document")
	}

	return err
}
