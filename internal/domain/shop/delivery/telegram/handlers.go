// Package telegram contains Telegram delivery handlers
package telegram

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog"

	"github.com/makarov13/gastrobot/internal/domain/shop/checkout"
	"github.com/makarov13/gastrobot/internal/domain/shop/consts"
	"github.com/makarov13/gastrobot/internal/domain/shop/dto"
	shoperrors "github.com/makarov13/gastrobot/internal/domain/shop/errors"
	"github.com/makarov13/gastrobot/internal/domain/shop/pricing"
	"github.com/makarov13/gastrobot/internal/domain/shop/session"
	"github.com/makarov13/gastrobot/internal/domain/shop/usecase/buissines"
)

// Handlers contains Telegram update handlers for the storefront
type Handlers struct {
	uc       *buissines.UseCase
	sessions *session.Store
	sender   *Sender
	bot      *tgbot.Bot
	logger   zerolog.Logger
}

// NewHandlers creates new Telegram handlers
func NewHandlers(uc *buissines.UseCase, sessions *session.Store, sender *Sender, bot *tgbot.Bot, logger zerolog.Logger) *Handlers {
	return &Handlers{
		uc:       uc,
		sessions: sessions,
		sender:   sender,
		bot:      bot,
		logger:   logger,
	}
}

// send delivers a message with an optional keyboard
func (h *Handlers) send(ctx context.Context, chatID int64, text string, markup models.ReplyMarkup) {
	msgCtx, cancel := context.WithTimeout(ctx, RequestTimeout)
	defer cancel()

	_, err := h.bot.SendMessage(msgCtx, &tgbot.SendMessageParams{
		ChatID:      chatID,
		Text:        text,
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: markup,
	})
	if err != nil {
		h.logger.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to send message")
	}
}

// edit rewrites an inline screen in place
func (h *Handlers) edit(ctx context.Context, chatID int64, messageID int, text string, markup models.ReplyMarkup) {
	msgCtx, cancel := context.WithTimeout(ctx, RequestTimeout)
	defer cancel()

	_, err := h.bot.EditMessageText(msgCtx, &tgbot.EditMessageTextParams{
		ChatID:      chatID,
		MessageID:   messageID,
		Text:        text,
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: markup,
	})
	if err != nil {
		h.logger.Warn().Err(err).Int64("chat_id", chatID).Int("message_id", messageID).Msg("Failed to edit message")
	}
}

func (h *Handlers) answerCallback(ctx context.Context, queryID, text string, alert bool) {
	msgCtx, cancel := context.WithTimeout(ctx, RequestTimeout)
	defer cancel()

	_, err := h.bot.AnswerCallbackQuery(msgCtx, &tgbot.AnswerCallbackQueryParams{
		CallbackQueryID: queryID,
		Text:            text,
		ShowAlert:       alert,
	})
	if err != nil {
		h.logger.Warn().Err(err).Msg("Failed to answer callback query")
	}
}

// HandleStart handles /start command
func (h *Handlers) HandleStart(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	userID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	fullName := strings.TrimSpace(update.Message.From.FirstName + " " + update.Message.From.LastName)
	user, err := h.uc.RegisterUser(ctx, userID, fullName)
	if err != nil {
		h.send(ctx, chatID, "❌ Произошла ошибка, попробуйте ещё раз", nil)
		return
	}

	if !user.HasPhone() {
		h.send(ctx, chatID,
			"👋 Добро пожаловать!\n\nЧтобы оформлять заказы, поделитесь номером телефона.",
			contactKeyboard())
		return
	}

	h.send(ctx, chatID, "👋 С возвращением! Выберите действие на клавиатуре ниже.", mainKeyboard(h.uc.IsAdmin(userID)))
}

// HandleMenu handles /menu command
func (h *Handlers) HandleMenu(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	h.showCategories(ctx, update.Message.Chat.ID, update.Message.From.ID, 0)
}

// HandleCart handles /cart command
func (h *Handlers) HandleCart(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	h.showCart(ctx, update.Message.Chat.ID, update.Message.From.ID, 0)
}

// onContact stores the shared phone number and unlocks the main menu
func (h *Handlers) onContact(ctx context.Context, m *models.Message) {
	contact := m.Contact
	// accept only the user's own contact
	if contact.UserID != m.From.ID {
		h.send(ctx, m.Chat.ID, "Пожалуйста, поделитесь своим собственным номером.", contactKeyboard())
		return
	}

	if err := h.uc.SavePhone(ctx, m.From.ID, contact.PhoneNumber); err != nil {
		h.send(ctx, m.Chat.ID, "❌ Не удалось сохранить номер, попробуйте ещё раз", nil)
		return
	}

	h.send(ctx, m.Chat.ID, "✅ Номер сохранён! Теперь вам доступно меню.", mainKeyboard(h.uc.IsAdmin(m.From.ID)))
}

// showCategories renders the catalog root. A non-zero messageID edits the
// existing screen instead of sending a new one.
func (h *Handlers) showCategories(ctx context.Context, chatID, userID int64, messageID int) {
	categories, err := h.uc.Categories(ctx)
	if err != nil {
		h.send(ctx, chatID, "❌ Не удалось загрузить меню", nil)
		return
	}

	if len(categories) == 0 {
		h.send(ctx, chatID, "Меню пока пустое, загляните позже 🙌", nil)
		return
	}

	text := "📋 <b>Меню</b>\n\nВыберите категорию:"
	kb := categoriesKeyboard(categories, h.uc.IsAdmin(userID))
	if messageID != 0 {
		h.edit(ctx, chatID, messageID, text, kb)
		return
	}
	h.send(ctx, chatID, text, kb)
}

func (h *Handlers) showCategoryProducts(ctx context.Context, chatID int64, categoryID uint, messageID int) {
	products, err := h.uc.CategoryProducts(ctx, categoryID)
	if err != nil {
		h.send(ctx, chatID, "❌ Не удалось загрузить товары", nil)
		return
	}

	text := "Выберите товар:"
	if len(products) == 0 {
		text = "В этой категории пока нет товаров."
	}

	kb := productsKeyboard(products)
	if messageID != 0 {
		h.edit(ctx, chatID, messageID, text, kb)
		return
	}
	h.send(ctx, chatID, text, kb)
}

// showProduct sends a product card, with photo when one is attached
func (h *Handlers) showProduct(ctx context.Context, chatID int64, productID uint) {
	product, err := h.uc.Product(ctx, productID)
	if err != nil {
		h.send(ctx, chatID, "❌ Товар не найден", nil)
		return
	}

	caption := fmt.Sprintf("<b>%s</b>\n", product.Title)
	if product.Description != nil && *product.Description != "" {
		caption += "\n" + *product.Description + "\n"
	}
	caption += fmt.Sprintf("\nЦена: <b>%s ₽</b>", product.Price.StringFixed(2))

	kb := productCardKeyboard(product)

	if product.PhotoFileID != nil && *product.PhotoFileID != "" {
		msgCtx, cancel := context.WithTimeout(ctx, RequestTimeout)
		defer cancel()

		_, err = h.bot.SendPhoto(msgCtx, &tgbot.SendPhotoParams{
			ChatID:      chatID,
			Photo:       &models.InputFileString{Data: *product.PhotoFileID},
			Caption:     caption,
			ParseMode:   models.ParseModeHTML,
			ReplyMarkup: kb,
		})
		if err != nil {
			h.logger.Error().Err(err).Int64("chat_id", chatID).Uint("product_id", productID).Msg("Failed to send product photo")
			h.send(ctx, chatID, caption, kb)
		}
		return
	}

	h.send(ctx, chatID, caption, kb)
}

func cartText(view *dto.CartView) string {
	if len(view.Lines) == 0 {
		return "🛒 Корзина пуста"
	}

	var b strings.Builder
	b.WriteString("🛒 <b>Корзина</b>\n\n")
	for _, line := range view.Lines {
		fmt.Fprintf(&b, "• %s × %d — %s ₽\n", line.Title, line.Qty, line.LineTotal.StringFixed(2))
	}
	if view.Discounted {
		fmt.Fprintf(&b, "\nСумма: %s ₽", view.Total.StringFixed(2))
		fmt.Fprintf(&b, "\nСо скидкой 15%%: <b>%s ₽</b>", view.Payable.StringFixed(2))
	} else {
		fmt.Fprintf(&b, "\nИтого: <b>%s ₽</b>", view.Payable.StringFixed(2))
	}
	return b.String()
}

func (h *Handlers) showCart(ctx context.Context, chatID, userID int64, messageID int) {
	s := h.sessions.Get(chatID)
	s.Lock()
	items := s.Cart.Snapshot()
	s.Unlock()

	view, err := h.uc.CartSummary(ctx, userID, items)
	if err != nil {
		h.send(ctx, chatID, "❌ Не удалось загрузить корзину", nil)
		return
	}

	text := cartText(view)
	kb := cartKeyboard(view)
	if messageID != 0 {
		h.edit(ctx, chatID, messageID, text, kb)
		return
	}
	h.send(ctx, chatID, text, kb)
}

// onMessage handles everything the exact command handlers did not match
func (h *Handlers) onMessage(ctx context.Context, m *models.Message) {
	if m.From == nil {
		return
	}

	if m.SuccessfulPayment != nil {
		h.onSuccessfulPayment(ctx, m)
		return
	}
	if m.Contact != nil {
		h.onContact(ctx, m)
		return
	}

	chatID := m.Chat.ID
	userID := m.From.ID
	s := h.sessions.Get(chatID)

	s.Lock()
	collecting := checkout.Collecting(s.Checkout)
	adminStep := s.AdminStep
	s.Unlock()

	if collecting && m.Text != "" {
		h.onCheckoutText(ctx, chatID, s, m.Text)
		return
	}

	if adminStep != session.AdminIdle && h.uc.IsAdmin(userID) {
		h.onAdminWizardInput(ctx, m, s)
		return
	}

	switch m.Text {
	case consts.ButtonMenu:
		h.showCategories(ctx, chatID, userID, 0)
	case consts.ButtonCart:
		h.showCart(ctx, chatID, userID, 0)
	case consts.ButtonSubscription:
		h.onSubscriptionButton(ctx, chatID, userID)
	case consts.ButtonSupport:
		h.send(ctx, chatID, "💬 По всем вопросам пишите @gastro_support", nil)
	case consts.ButtonOrders:
		h.showOrders(ctx, chatID, userID, 0)
	case consts.ButtonStats:
		h.showStats(ctx, chatID, userID)
	case consts.ButtonProducts:
		h.showAdminProducts(ctx, chatID, userID, true)
	case consts.ButtonActivateProduct:
		h.showAdminProducts(ctx, chatID, userID, false)
	case consts.ButtonAddCategory:
		h.startCategoryWizard(ctx, chatID, userID, s)
	case consts.ButtonAddProduct:
		h.startProductWizard(ctx, chatID, userID, s, 0)
	default:
		h.send(ctx, chatID, "🤖 Используйте кнопки меню или команду /menu", nil)
	}
}

// onCallback routes inline keyboard presses by their data prefix
func (h *Handlers) onCallback(ctx context.Context, cb *models.CallbackQuery) {
	if cb.Message.Message == nil {
		h.answerCallback(ctx, cb.ID, "", false)
		return
	}

	chatID := cb.Message.Message.Chat.ID
	messageID := cb.Message.Message.ID
	userID := cb.From.ID
	data := cb.Data

	switch {
	case strings.HasPrefix(data, consts.CallbackCategoryPrefix):
		h.answerCallback(ctx, cb.ID, "", false)
		h.showCategoryProducts(ctx, chatID, parseID(data, consts.CallbackCategoryPrefix), messageID)

	case strings.HasPrefix(data, consts.CallbackProductDetailsPrefix):
		h.answerCallback(ctx, cb.ID, "", false)
		h.showProduct(ctx, chatID, parseID(data, consts.CallbackProductDetailsPrefix))

	case strings.HasPrefix(data, consts.CallbackAddToCartPrefix):
		s := h.sessions.Get(chatID)
		s.Lock()
		s.Cart.Add(parseID(data, consts.CallbackAddToCartPrefix))
		s.Unlock()
		h.answerCallback(ctx, cb.ID, "Добавлено в корзину ✅", false)

	case strings.HasPrefix(data, consts.CallbackIncPrefix):
		h.adjustCart(ctx, cb, parseID(data, consts.CallbackIncPrefix), 1)

	case strings.HasPrefix(data, consts.CallbackDecPrefix):
		h.adjustCart(ctx, cb, parseID(data, consts.CallbackDecPrefix), -1)

	case strings.HasPrefix(data, consts.CallbackDelPrefix):
		s := h.sessions.Get(chatID)
		s.Lock()
		s.Cart.Remove(parseID(data, consts.CallbackDelPrefix))
		s.Unlock()
		h.answerCallback(ctx, cb.ID, "Удалено", false)
		h.showCart(ctx, chatID, userID, messageID)

	case data == consts.CallbackCart:
		h.answerCallback(ctx, cb.ID, "", false)
		h.showCart(ctx, chatID, userID, messageID)

	case data == consts.CallbackMenu, data == consts.CallbackMain:
		h.answerCallback(ctx, cb.ID, "", false)
		h.showCategories(ctx, chatID, userID, messageID)

	case data == consts.CallbackCheckout:
		h.beginCheckout(ctx, cb)

	case data == consts.CallbackCancelCheckout:
		h.cancelCheckout(ctx, cb)

	case data == consts.CallbackPayOnline:
		h.onPaymentChoice(ctx, cb, checkout.EventPayOnline)

	case data == consts.CallbackPayOnDelivery:
		h.onPaymentChoice(ctx, cb, checkout.EventPayOnDelivery)

	default:
		h.onAdminCallback(ctx, cb)
	}
}

func (h *Handlers) adjustCart(ctx context.Context, cb *models.CallbackQuery, productID uint, delta int) {
	chatID := cb.Message.Message.Chat.ID
	s := h.sessions.Get(chatID)
	s.Lock()
	s.Cart.Adjust(productID, delta)
	s.Unlock()

	h.answerCallback(ctx, cb.ID, "", false)
	h.showCart(ctx, chatID, cb.From.ID, cb.Message.Message.ID)
}

// beginCheckout validates the cart and starts the address wizard
func (h *Handlers) beginCheckout(ctx context.Context, cb *models.CallbackQuery) {
	chatID := cb.Message.Message.Chat.ID
	userID := cb.From.ID

	user, err := h.uc.GetUser(ctx, userID)
	if err != nil || !user.HasPhone() {
		h.answerCallback(ctx, cb.ID, "Сначала поделитесь номером телефона", true)
		h.send(ctx, chatID, "Чтобы оформить заказ, поделитесь номером телефона.", contactKeyboard())
		return
	}

	s := h.sessions.Get(chatID)
	s.Lock()
	items := s.Cart.Snapshot()
	s.Unlock()

	view, err := h.uc.CartSummary(ctx, userID, items)
	if err != nil {
		h.answerCallback(ctx, cb.ID, "Не удалось оформить заказ", true)
		return
	}
	if len(view.Lines) == 0 {
		h.answerCallback(ctx, cb.ID, "Корзина пуста", true)
		return
	}
	if !pricing.MeetsMinimum(view.Payable) {
		h.answerCallback(ctx, cb.ID,
			fmt.Sprintf("Минимальная сумма заказа %s ₽", pricing.MinOrderTotal.StringFixed(0)), true)
		return
	}

	s.Lock()
	s.Checkout, _ = checkout.Next(checkout.StateIdle, checkout.Event{Kind: checkout.EventBegin})
	s.Unlock()

	h.answerCallback(ctx, cb.ID, "", false)
	h.send(ctx, chatID,
		"📍 Укажите адрес доставки.\n\nНапример: <i>Москва, ул. Ленина, д. 10, кв. 5</i>",
		cancelCheckoutKeyboard())
}

func (h *Handlers) cancelCheckout(ctx context.Context, cb *models.CallbackQuery) {
	chatID := cb.Message.Message.Chat.ID
	s := h.sessions.Get(chatID)

	s.Lock()
	_, effect := checkout.Next(s.Checkout, checkout.Event{Kind: checkout.EventCancel})
	s.ResetCheckout()
	s.Unlock()

	if effect != checkout.EffectCancel {
		h.answerCallback(ctx, cb.ID, "", false)
		return
	}

	h.answerCallback(ctx, cb.ID, "Оформление отменено", false)
	h.send(ctx, chatID, "❌ Оформление заказа отменено. Корзина сохранена.", nil)
}

// onCheckoutText feeds wizard text into the checkout state machine
func (h *Handlers) onCheckoutText(ctx context.Context, chatID int64, s *session.Session, text string) {
	s.Lock()
	next, effect := checkout.Next(s.Checkout, checkout.Event{Kind: checkout.EventTextInput, Text: text})
	s.Checkout = next
	switch effect {
	case checkout.EffectStoreAddress:
		s.Address = strings.TrimSpace(text)
	case checkout.EffectStoreComment:
		if strings.TrimSpace(text) == "-" {
			s.Comment = ""
		} else {
			s.Comment = strings.TrimSpace(text)
		}
	}
	s.Unlock()

	switch effect {
	case checkout.EffectRetryAddress:
		h.send(ctx, chatID,
			"⚠️ Не удалось распознать адрес. Укажите его в формате:\n<i>Город, ул. Название, д. 1, кв. 2</i>",
			cancelCheckoutKeyboard())
	case checkout.EffectStoreAddress:
		h.send(ctx, chatID,
			"💬 Комментарий к заказу (или отправьте «-», чтобы пропустить):",
			cancelCheckoutKeyboard())
	case checkout.EffectStoreComment:
		h.send(ctx, chatID, "💳 Выберите способ оплаты:", paymentKeyboard())
	}
}

// onPaymentChoice finishes the wizard with the chosen payment method
func (h *Handlers) onPaymentChoice(ctx context.Context, cb *models.CallbackQuery, ev checkout.EventKind) {
	chatID := cb.Message.Message.Chat.ID
	userID := cb.From.ID
	s := h.sessions.Get(chatID)

	s.Lock()
	next, effect := checkout.Next(s.Checkout, checkout.Event{Kind: ev})
	s.Checkout = next
	s.Unlock()

	switch effect {
	case checkout.EffectFinalizeOnDelivery:
		h.answerCallback(ctx, cb.ID, "", false)
		h.finalizeOrder(ctx, chatID, userID, s, consts.PaymentMethodOnDelivery)

	case checkout.EffectSendInvoice:
		s.Lock()
		items := s.Cart.Snapshot()
		s.Unlock()

		view, err := h.uc.CartSummary(ctx, userID, items)
		if err != nil || len(view.Lines) == 0 {
			h.answerCallback(ctx, cb.ID, "Не удалось выставить счёт", true)
			return
		}

		invoice := h.uc.OrderInvoice(view)
		s.Lock()
		s.InvoicePayload = invoice.Payload
		s.Unlock()

		h.answerCallback(ctx, cb.ID, "", false)
		msgID, err := h.sender.SendInvoice(ctx, chatID, invoice)
		if err != nil {
			h.send(ctx, chatID, "❌ Не удалось выставить счёт, попробуйте ещё раз", nil)
			return
		}
		s.Lock()
		s.PendingInvoiceMessageID = msgID
		s.Unlock()

	default:
		h.answerCallback(ctx, cb.ID, "", false)
	}
}

// finalizeOrder places the order and resets the conversation on success
func (h *Handlers) finalizeOrder(ctx context.Context, chatID, userID int64, s *session.Session, paymentMethod string) {
	s.Lock()
	input := buissines.PlaceOrderInput{
		TelegramID:    userID,
		Items:         s.Cart.Snapshot(),
		Address:       s.Address,
		Comment:       s.Comment,
		PaymentMethod: paymentMethod,
	}
	s.Unlock()

	order, err := h.uc.PlaceOrder(ctx, input)
	if err != nil {
		s.Lock()
		s.ResetCheckout()
		s.Unlock()

		switch err {
		case shoperrors.ErrEmptyCart:
			h.send(ctx, chatID, "🛒 Корзина опустела, заказ не оформлен.", nil)
		case shoperrors.ErrOrderBelowMinimum:
			h.send(ctx, chatID,
				fmt.Sprintf("⚠️ Минимальная сумма заказа %s ₽.", pricing.MinOrderTotal.StringFixed(0)), nil)
		default:
			h.send(ctx, chatID, "❌ Не удалось оформить заказ, попробуйте ещё раз.", nil)
		}
		return
	}

	s.Lock()
	s.Cart.Clear()
	s.ResetCheckout()
	s.Unlock()

	h.send(ctx, chatID,
		fmt.Sprintf("✅ Заказ <b>#%d</b> оформлен!\n\nСумма: <b>%s ₽</b>\nМы сообщим, когда он будет готов.",
			order.ID, order.TotalPrice.StringFixed(2)), nil)
}

// onPreCheckout confirms the pre-checkout query so the payment can proceed
func (h *Handlers) onPreCheckout(ctx context.Context, q *models.PreCheckoutQuery) {
	msgCtx, cancel := context.WithTimeout(ctx, RequestTimeout)
	defer cancel()

	_, err := h.bot.AnswerPreCheckoutQuery(msgCtx, &tgbot.AnswerPreCheckoutQueryParams{
		PreCheckoutQueryID: q.ID,
		OK:                 true,
	})
	if err != nil {
		h.logger.Error().Err(err).Int64("user_id", q.From.ID).Msg("Failed to answer pre-checkout query")
	}
}

// onSuccessfulPayment routes the payment by currency: Telegram Stars buy a
// subscription, everything else pays for the current order.
func (h *Handlers) onSuccessfulPayment(ctx context.Context, m *models.Message) {
	sp := m.SuccessfulPayment
	chatID := m.Chat.ID
	userID := m.From.ID

	h.logger.Info().
		Int64("user_id", userID).
		Str("currency", sp.Currency).
		Int("total_amount", sp.TotalAmount).
		Msg("Payment received")

	s := h.sessions.Get(chatID)

	// retract the paid invoice so it cannot be paid twice
	s.Lock()
	paidInvoice := s.PendingInvoiceMessageID
	s.PendingInvoiceMessageID = 0
	s.Unlock()
	if paidInvoice != 0 {
		_ = h.sender.DeleteMessage(ctx, chatID, paidInvoice)
	}

	if sp.Currency == "XTR" {
		sub, err := h.uc.PurchaseSubscription(ctx, userID, sp.TotalAmount)
		if err != nil {
			h.send(ctx, chatID, "❌ Не удалось активировать подписку, напишите в поддержку.", nil)
			return
		}
		h.send(ctx, chatID,
			fmt.Sprintf("🤩 Подписка активна до <b>%s</b>!\nСкидка 15%% применяется автоматически.",
				sub.ExpiresAt.Format("02.01.2006")), nil)
		return
	}

	s.Lock()
	payloadMatches := s.InvoicePayload != "" && s.InvoicePayload == sp.InvoicePayload
	next, effect := checkout.Next(s.Checkout, checkout.Event{Kind: checkout.EventPaymentConfirmed})
	s.Checkout = next
	s.Unlock()

	if !payloadMatches {
		h.logger.Warn().Int64("user_id", userID).Msg("Payment payload does not match the pending invoice")
	}

	if effect == checkout.EffectFinalizeOnline {
		h.finalizeOrder(ctx, chatID, userID, s, consts.PaymentMethodOnline)
	}
}

// onSubscriptionButton shows subscription status and offers a purchase.
// A previously issued invoice is retracted before the new one goes out.
func (h *Handlers) onSubscriptionButton(ctx context.Context, chatID, userID int64) {
	user, err := h.uc.GetUser(ctx, userID)
	if err != nil {
		h.send(ctx, chatID, "❌ Произошла ошибка, попробуйте ещё раз", nil)
		return
	}

	s := h.sessions.Get(chatID)
	s.Lock()
	stale := s.PendingInvoiceMessageID
	s.PendingInvoiceMessageID = 0
	s.Unlock()
	if stale != 0 {
		_ = h.sender.DeleteMessage(ctx, chatID, stale)
	}

	if user.Subscribed(time.Now()) {
		h.send(ctx, chatID,
			fmt.Sprintf("🤩 Ваша подписка активна до <b>%s</b>.\nОплата ниже продлит её.",
				user.SubscriptionEnd.Format("02.01.2006")), nil)
	} else {
		h.send(ctx, chatID,
			"🤩 Подписка даёт скидку 15% на все заказы.\nОплатите счёт ниже, чтобы подключить её.", nil)
	}

	msgID, err := h.sender.SendInvoice(ctx, chatID, h.uc.SubscriptionInvoice())
	if err != nil {
		h.send(ctx, chatID, "❌ Не удалось выставить счёт, попробуйте позже", nil)
		return
	}
	s.Lock()
	s.PendingInvoiceMessageID = msgID
	s.Unlock()
}

// parseID extracts the numeric tail of callback data, 0 on garbage
func parseID(data, prefix string) uint {
	id, err := strconv.ParseUint(strings.TrimPrefix(data, prefix), 10, 32)
	if err != nil {
		return 0
	}
	return uint(id)
}
