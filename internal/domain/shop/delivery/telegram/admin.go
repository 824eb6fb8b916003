package telegram

import (
	"context"
	"fmt"
	"strings"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/shopspring/decimal"

	"github.com/makarov13/gastrobot/internal/domain/shop/consts"
	"github.com/makarov13/gastrobot/internal/domain/shop/dto"
	shoperrors "github.com/makarov13/gastrobot/internal/domain/shop/errors"
	"github.com/makarov13/gastrobot/internal/domain/shop/session"
)

// HandleAddCategory handles /add_category command
func (h *Handlers) HandleAddCategory(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID
	h.startCategoryWizard(ctx, chatID, update.Message.From.ID, h.sessions.Get(chatID))
}

// HandleAddProduct handles /add_product command
func (h *Handlers) HandleAddProduct(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID
	h.startProductWizard(ctx, chatID, update.Message.From.ID, h.sessions.Get(chatID), 0)
}

// HandleProducts handles /products command
func (h *Handlers) HandleProducts(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	h.showAdminProducts(ctx, update.Message.Chat.ID, update.Message.From.ID, true)
}

// HandleOrders handles /orders command
func (h *Handlers) HandleOrders(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	h.showOrders(ctx, update.Message.Chat.ID, update.Message.From.ID, 0)
}

// HandleStats handles /stats command
func (h *Handlers) HandleStats(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	h.showStats(ctx, update.Message.Chat.ID, update.Message.From.ID)
}

func (h *Handlers) startCategoryWizard(ctx context.Context, chatID, userID int64, s *session.Session) {
	if !h.uc.IsAdmin(userID) {
		return
	}

	s.Lock()
	s.ResetAdmin()
	s.AdminStep = session.AdminCategoryTitle
	s.Unlock()

	h.send(ctx, chatID, "✏️ Введите название категории:", nil)
}

// startProductWizard begins the add or edit product dialog. A non-zero
// productID prefills the draft from the existing record.
func (h *Handlers) startProductWizard(ctx context.Context, chatID, userID int64, s *session.Session, productID uint) {
	if !h.uc.IsAdmin(userID) {
		return
	}

	s.Lock()
	s.ResetAdmin()
	s.AdminStep = session.AdminProductTitle
	s.EditProductID = productID
	s.Unlock()

	if productID != 0 {
		product, err := h.uc.Product(ctx, productID)
		if err != nil {
			h.send(ctx, chatID, "❌ Товар не найден", nil)
			return
		}
		s.Lock()
		s.Draft = session.ProductDraft{
			Title:       product.Title,
			Description: product.Description,
			Price:       product.Price,
			CategoryID:  product.CategoryID,
			PhotoFileID: product.PhotoFileID,
		}
		s.Unlock()
		h.send(ctx, chatID,
			fmt.Sprintf("✏️ Редактирование «%s».\n\nВведите новое название:", product.Title), nil)
		return
	}

	h.send(ctx, chatID, "✏️ Введите название товара:", nil)
}

// onAdminWizardInput advances the catalog wizards on free text and photos
func (h *Handlers) onAdminWizardInput(ctx context.Context, m *models.Message, s *session.Session) {
	chatID := m.Chat.ID
	userID := m.From.ID
	text := strings.TrimSpace(m.Text)

	s.Lock()
	step := s.AdminStep
	s.Unlock()

	switch step {
	case session.AdminCategoryTitle:
		s.Lock()
		categoryID := s.EditCategoryID
		s.ResetAdmin()
		s.Unlock()

		if categoryID != 0 {
			if err := h.uc.RenameCategory(ctx, userID, categoryID, text); err != nil {
				h.send(ctx, chatID, "❌ Не удалось переименовать категорию: "+adminErrorText(err), nil)
				return
			}
			h.send(ctx, chatID, "✅ Категория переименована", nil)
			return
		}

		category, err := h.uc.CreateCategory(ctx, userID, text)
		if err != nil {
			h.send(ctx, chatID, "❌ Не удалось создать категорию: "+adminErrorText(err), nil)
			return
		}
		h.send(ctx, chatID, fmt.Sprintf("✅ Категория «%s» создана", category.Title), nil)

	case session.AdminProductTitle:
		if text == "" {
			h.send(ctx, chatID, "Название не может быть пустым, попробуйте ещё раз:", nil)
			return
		}
		s.Lock()
		s.Draft.Title = text
		s.AdminStep = session.AdminProductDescription
		s.Unlock()
		h.send(ctx, chatID, "📝 Описание товара (или «-», чтобы пропустить):", nil)

	case session.AdminProductDescription:
		s.Lock()
		if text == "-" {
			s.Draft.Description = nil
		} else {
			desc := text
			s.Draft.Description = &desc
		}
		s.AdminStep = session.AdminProductPrice
		s.Unlock()
		h.send(ctx, chatID, "💰 Цена в рублях, например 450 или 450.50:", nil)

	case session.AdminProductPrice:
		price, err := decimal.NewFromString(strings.ReplaceAll(text, ",", "."))
		if err != nil || !price.IsPositive() {
			h.send(ctx, chatID, "⚠️ Введите цену положительным числом:", nil)
			return
		}
		s.Lock()
		s.Draft.Price = price
		s.AdminStep = session.AdminProductCategory
		s.Unlock()

		categories, err := h.uc.Categories(ctx)
		if err != nil {
			h.send(ctx, chatID, "❌ Не удалось загрузить категории", nil)
			return
		}
		h.send(ctx, chatID, "📂 Выберите категорию:", pickCategoryKeyboard(categories))

	case session.AdminProductCategory:
		h.send(ctx, chatID, "Выберите категорию кнопкой выше 👆", nil)

	case session.AdminProductPhoto:
		if len(m.Photo) > 0 {
			fileID := m.Photo[len(m.Photo)-1].FileID
			s.Lock()
			s.Draft.PhotoFileID = &fileID
			s.Unlock()
		} else if text != "-" {
			h.send(ctx, chatID, "Отправьте фото товара или «-», чтобы пропустить:", nil)
			return
		}

		s.Lock()
		s.AdminStep = session.AdminProductConfirm
		draft := s.Draft
		s.Unlock()

		h.send(ctx, chatID, draftSummary(draft), &models.InlineKeyboardMarkup{
			InlineKeyboard: [][]models.InlineKeyboardButton{
				{{Text: "💾 Сохранить", CallbackData: consts.CallbackWizardSave}},
				{{Text: "❌ Отменить", CallbackData: consts.CallbackWizardCancel}},
			},
		})

	case session.AdminProductConfirm:
		h.send(ctx, chatID, "Подтвердите сохранение кнопками выше 👆", nil)
	}
}

func draftSummary(draft session.ProductDraft) string {
	var b strings.Builder
	b.WriteString("📦 <b>Проверьте товар</b>\n\n")
	fmt.Fprintf(&b, "Название: %s\n", draft.Title)
	if draft.Description != nil {
		fmt.Fprintf(&b, "Описание: %s\n", *draft.Description)
	}
	fmt.Fprintf(&b, "Цена: %s ₽\n", draft.Price.StringFixed(2))
	if draft.PhotoFileID != nil {
		b.WriteString("Фото: прикреплено\n")
	}
	return b.String()
}

// onAdminCallback routes admin inline keyboard presses
func (h *Handlers) onAdminCallback(ctx context.Context, cb *models.CallbackQuery) {
	chatID := cb.Message.Message.Chat.ID
	messageID := cb.Message.Message.ID
	userID := cb.From.ID
	data := cb.Data

	if !h.uc.IsAdmin(userID) {
		h.answerCallback(ctx, cb.ID, "", false)
		return
	}

	s := h.sessions.Get(chatID)

	switch {
	case strings.HasPrefix(data, consts.CallbackEditCategoryPrefix):
		s.Lock()
		s.ResetAdmin()
		s.AdminStep = session.AdminCategoryTitle
		s.EditCategoryID = parseID(data, consts.CallbackEditCategoryPrefix)
		s.Unlock()
		h.answerCallback(ctx, cb.ID, "", false)
		h.send(ctx, chatID, "✏️ Введите новое название категории:", nil)

	case strings.HasPrefix(data, consts.CallbackRemoveCategoryPrefix):
		if err := h.uc.DeleteCategory(ctx, userID, parseID(data, consts.CallbackRemoveCategoryPrefix)); err != nil {
			h.answerCallback(ctx, cb.ID, "Не удалось удалить категорию", true)
			return
		}
		h.answerCallback(ctx, cb.ID, "Категория удалена", false)
		h.showCategories(ctx, chatID, userID, messageID)

	case strings.HasPrefix(data, consts.CallbackEditProductPrefix):
		h.answerCallback(ctx, cb.ID, "", false)
		h.startProductWizard(ctx, chatID, userID, s, parseID(data, consts.CallbackEditProductPrefix))

	case strings.HasPrefix(data, consts.CallbackRemoveProductPrefix):
		if err := h.uc.SetProductActive(ctx, userID, parseID(data, consts.CallbackRemoveProductPrefix), false); err != nil {
			h.answerCallback(ctx, cb.ID, "Не удалось скрыть товар", true)
			return
		}
		h.answerCallback(ctx, cb.ID, "Товар скрыт из меню", false)

	case data == consts.CallbackShowDisabled:
		h.answerCallback(ctx, cb.ID, "", false)
		h.showAdminProducts(ctx, chatID, userID, false)

	case strings.HasPrefix(data, consts.CallbackActivatePrefix):
		if err := h.uc.SetProductActive(ctx, userID, parseID(data, consts.CallbackActivatePrefix), true); err != nil {
			h.answerCallback(ctx, cb.ID, "Не удалось активировать товар", true)
			return
		}
		h.answerCallback(ctx, cb.ID, "Товар снова в меню", false)

	case strings.HasPrefix(data, consts.CallbackPickCategoryPrefix):
		h.onPickCategory(ctx, cb, s)

	case data == consts.CallbackWizardCancel:
		s.Lock()
		s.ResetAdmin()
		s.Unlock()
		h.answerCallback(ctx, cb.ID, "Отменено", false)

	case data == consts.CallbackWizardSave:
		h.saveProductDraft(ctx, cb, s)

	case strings.HasPrefix(data, consts.CallbackOrderPrefix):
		h.answerCallback(ctx, cb.ID, "", false)
		h.showOrderDetails(ctx, chatID, userID, parseID(data, consts.CallbackOrderPrefix), messageID)

	case strings.HasPrefix(data, consts.CallbackOrderProcessPrefix):
		h.changeOrderStatus(ctx, cb, parseID(data, consts.CallbackOrderProcessPrefix), consts.OrderStatusInProgress)

	case strings.HasPrefix(data, consts.CallbackOrderDonePrefix):
		h.changeOrderStatus(ctx, cb, parseID(data, consts.CallbackOrderDonePrefix), consts.OrderStatusCompleted)

	case strings.HasPrefix(data, consts.CallbackOrderCancelPrefix):
		h.changeOrderStatus(ctx, cb, parseID(data, consts.CallbackOrderCancelPrefix), consts.OrderStatusCanceled)

	case data == consts.CallbackOrdersBack:
		h.answerCallback(ctx, cb.ID, "", false)
		h.showOrders(ctx, chatID, userID, messageID)

	case data == consts.CallbackStatsExport:
		h.exportOrders(ctx, cb)

	default:
		h.answerCallback(ctx, cb.ID, "", false)
	}
}

func (h *Handlers) onPickCategory(ctx context.Context, cb *models.CallbackQuery, s *session.Session) {
	chatID := cb.Message.Message.Chat.ID

	s.Lock()
	if s.AdminStep != session.AdminProductCategory {
		s.Unlock()
		h.answerCallback(ctx, cb.ID, "", false)
		return
	}
	if id := parseID(cb.Data, consts.CallbackPickCategoryPrefix); id != 0 {
		s.Draft.CategoryID = &id
	} else {
		s.Draft.CategoryID = nil
	}
	s.AdminStep = session.AdminProductPhoto
	s.Unlock()

	h.answerCallback(ctx, cb.ID, "", false)
	h.send(ctx, chatID, "📷 Отправьте фото товара (или «-», чтобы пропустить):", nil)
}

func (h *Handlers) saveProductDraft(ctx context.Context, cb *models.CallbackQuery, s *session.Session) {
	chatID := cb.Message.Message.Chat.ID
	userID := cb.From.ID

	s.Lock()
	if s.AdminStep != session.AdminProductConfirm {
		s.Unlock()
		h.answerCallback(ctx, cb.ID, "", false)
		return
	}
	draft := s.Draft
	editID := s.EditProductID
	s.ResetAdmin()
	s.Unlock()

	input := dto.ProductInput{
		Title:       draft.Title,
		Description: draft.Description,
		Price:       draft.Price,
		CategoryID:  draft.CategoryID,
		PhotoFileID: draft.PhotoFileID,
	}

	var err error
	if editID != 0 {
		_, err = h.uc.UpdateProduct(ctx, userID, editID, input)
	} else {
		_, err = h.uc.CreateProduct(ctx, userID, input)
	}
	if err != nil {
		h.answerCallback(ctx, cb.ID, "Не удалось сохранить товар", true)
		return
	}

	h.answerCallback(ctx, cb.ID, "", false)
	h.send(ctx, chatID, fmt.Sprintf("✅ Товар «%s» сохранён", draft.Title), nil)
}

func (h *Handlers) showAdminProducts(ctx context.Context, chatID, userID int64, active bool) {
	products, err := h.uc.Products(ctx, userID, active)
	if err != nil {
		return
	}

	if active {
		if len(products) == 0 {
			h.send(ctx, chatID, "Товаров пока нет. Добавьте первый через «Добавить товар».", nil)
			return
		}
		h.send(ctx, chatID, "🛍️ <b>Товары</b>\n\nНажмите на товар для редактирования, 🚫 скрывает его из меню.",
			adminProductsKeyboard(products, false))
		return
	}

	if len(products) == 0 {
		h.send(ctx, chatID, "Скрытых товаров нет.", nil)
		return
	}
	h.send(ctx, chatID, "Скрытые товары. Нажмите, чтобы вернуть в меню:", adminProductsKeyboard(products, true))
}

func (h *Handlers) showOrders(ctx context.Context, chatID, userID int64, messageID int) {
	orders, err := h.uc.ActiveOrders(ctx, userID)
	if err != nil {
		return
	}

	text := "🛒 <b>Активные заказы</b>"
	if len(orders) == 0 {
		text = "Активных заказов нет 🎉"
	}

	kb := ordersKeyboard(orders)
	if messageID != 0 {
		h.edit(ctx, chatID, messageID, text, kb)
		return
	}
	h.send(ctx, chatID, text, kb)
}

func (h *Handlers) showOrderDetails(ctx context.Context, chatID, userID int64, orderID uint, messageID int) {
	order, owner, err := h.uc.OrderDetails(ctx, userID, orderID)
	if err != nil {
		h.send(ctx, chatID, "❌ Заказ не найден", nil)
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📦 <b>Заказ #%d</b> · %s\n\n", order.ID, statusLabel(order.Status))
	fmt.Fprintf(&b, "Клиент: %s\n", owner.FullName)
	if owner.HasPhone() {
		fmt.Fprintf(&b, "Телефон: %s\n", *owner.Phone)
	}
	fmt.Fprintf(&b, "Адрес: %s\n", order.Address)
	if order.Comment != "" {
		fmt.Fprintf(&b, "Комментарий: %s\n", order.Comment)
	}
	fmt.Fprintf(&b, "Оплата: %s\n\n", paymentLabel(order.PaymentMethod))
	for _, item := range order.Items {
		fmt.Fprintf(&b, "• %s × %d — %s ₽\n", item.Title, item.Qty, item.ItemPrice.StringFixed(2))
	}
	fmt.Fprintf(&b, "\nИтого: <b>%s ₽</b>", order.TotalPrice.StringFixed(2))

	kb := orderActionsKeyboard(order)
	if messageID != 0 {
		h.edit(ctx, chatID, messageID, b.String(), kb)
		return
	}
	h.send(ctx, chatID, b.String(), kb)
}

func (h *Handlers) changeOrderStatus(ctx context.Context, cb *models.CallbackQuery, orderID uint, status string) {
	chatID := cb.Message.Message.Chat.ID
	userID := cb.From.ID

	if err := h.uc.AdvanceOrderStatus(ctx, userID, orderID, status); err != nil {
		h.answerCallback(ctx, cb.ID, "Не удалось изменить статус", true)
		return
	}

	h.answerCallback(ctx, cb.ID, "Статус обновлён", false)
	h.showOrderDetails(ctx, chatID, userID, orderID, cb.Message.Message.ID)
}

func (h *Handlers) showStats(ctx context.Context, chatID, userID int64) {
	report, err := h.uc.Stats(ctx, userID)
	if err != nil {
		return
	}

	var b strings.Builder
	b.WriteString("📊 <b>Статистика</b>\n\n")
	fmt.Fprintf(&b, "Пользователей: %d (+%d сегодня)\n", report.TotalUsers, report.NewUsersToday)
	fmt.Fprintf(&b, "Заказов всего: %d\n", report.TotalOrders)
	fmt.Fprintf(&b, "В работе: %d\n", report.InProgressOrders)
	fmt.Fprintf(&b, "Выполнено: %d\n", report.CompletedOrders)
	fmt.Fprintf(&b, "Отменено: %d\n", report.CanceledOrders)
	fmt.Fprintf(&b, "Выручка: %s ₽\n", report.Revenue.StringFixed(2))
	fmt.Fprintf(&b, "Средний чек: %s ₽\n", report.AverageOrderValue.StringFixed(2))
	fmt.Fprintf(&b, "Активных подписок: %d\n", report.ActiveSubscriptions)

	h.send(ctx, chatID, b.String(), statsKeyboard())
}

func (h *Handlers) exportOrders(ctx context.Context, cb *models.CallbackQuery) {
	chatID := cb.Message.Message.Chat.ID
	userID := cb.From.ID

	data, err := h.uc.ExportOrders(ctx, userID)
	if err != nil {
		h.answerCallback(ctx, cb.ID, "Не удалось подготовить выгрузку", true)
		return
	}

	h.answerCallback(ctx, cb.ID, "", false)
	if err := h.sender.SendDocument(ctx, chatID, "orders.json", data, "Выгрузка заказов"); err != nil {
		h.send(ctx, chatID, "❌ Не удалось отправить файл", nil)
	}
}

func adminErrorText(err error) string {
	switch err {
	case shoperrors.ErrCategoryExists:
		return "такая категория уже есть"
	case shoperrors.ErrEmptyTitle:
		return "название не может быть пустым"
	case shoperrors.ErrCategoryNotFound:
		return "категория не найдена"
	}
	return "попробуйте ещё раз"
}

func paymentLabel(method string) string {
	switch method {
	case consts.PaymentMethodOnline:
		return "онлайн"
	case consts.PaymentMethodOnDelivery:
		return "при получении"
	}
	return method
}
