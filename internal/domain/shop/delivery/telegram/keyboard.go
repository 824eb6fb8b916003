package telegram

import (
	"fmt"

	"github.com/go-telegram/bot/models"

	"github.com/makarov13/gastrobot/internal/domain/shop/consts"
	"github.com/makarov13/gastrobot/internal/domain/shop/dto"
	"github.com/makarov13/gastrobot/internal/domain/shop/entities"
)

// mainKeyboard is the persistent reply keyboard shown to every user.
// Admins get an extra block of management buttons.
func mainKeyboard(isAdmin bool) *models.ReplyKeyboardMarkup {
	rows := [][]models.KeyboardButton{
		{{Text: consts.ButtonMenu}, {Text: consts.ButtonCart}},
		{{Text: consts.ButtonSubscription}, {Text: consts.ButtonSupport}},
	}
	if isAdmin {
		rows = append(rows,
			[]models.KeyboardButton{{Text: consts.ButtonOrders}, {Text: consts.ButtonStats}},
			[]models.KeyboardButton{{Text: consts.ButtonProducts}, {Text: consts.ButtonActivateProduct}},
			[]models.KeyboardButton{{Text: consts.ButtonAddCategory}, {Text: consts.ButtonAddProduct}},
		)
	}

	return &models.ReplyKeyboardMarkup{
		Keyboard:       rows,
		ResizeKeyboard: true,
	}
}

// contactKeyboard asks the user to share their phone number
func contactKeyboard() *models.ReplyKeyboardMarkup {
	return &models.ReplyKeyboardMarkup{
		Keyboard: [][]models.KeyboardButton{
			{{Text: consts.ButtonSharePhoneRequest, RequestContact: true}},
		},
		ResizeKeyboard:  true,
		OneTimeKeyboard: true,
	}
}

// categoriesKeyboard lists catalog categories. With admin set, each category
// gets rename and delete buttons next to it.
func categoriesKeyboard(categories []entities.Category, admin bool) *models.InlineKeyboardMarkup {
	var rows [][]models.InlineKeyboardButton
	for _, c := range categories {
		rows = append(rows, []models.InlineKeyboardButton{
			{Text: c.Title, CallbackData: fmt.Sprintf("%s%d", consts.CallbackCategoryPrefix, c.ID)},
		})
		if admin {
			rows = append(rows, []models.InlineKeyboardButton{
				{Text: "✏️ Переименовать", CallbackData: fmt.Sprintf("%s%d", consts.CallbackEditCategoryPrefix, c.ID)},
				{Text: "🗑 Удалить", CallbackData: fmt.Sprintf("%s%d", consts.CallbackRemoveCategoryPrefix, c.ID)},
			})
		}
	}
	rows = append(rows, []models.InlineKeyboardButton{
		{Text: "🛒 Корзина", CallbackData: consts.CallbackCart},
	})

	return &models.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// productsKeyboard lists products of one category
func productsKeyboard(products []entities.Product) *models.InlineKeyboardMarkup {
	var rows [][]models.InlineKeyboardButton
	for _, p := range products {
		label := fmt.Sprintf("%s — %s ₽", p.Title, p.Price.StringFixed(2))
		rows = append(rows, []models.InlineKeyboardButton{
			{Text: label, CallbackData: fmt.Sprintf("%s%d", consts.CallbackProductDetailsPrefix, p.ID)},
		})
	}
	rows = append(rows, []models.InlineKeyboardButton{
		{Text: "⬅️ Назад", CallbackData: consts.CallbackMenu},
	})

	return &models.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// productCardKeyboard is shown under a single product card
func productCardKeyboard(product *entities.Product) *models.InlineKeyboardMarkup {
	rows := [][]models.InlineKeyboardButton{
		{{Text: "➕ В корзину", CallbackData: fmt.Sprintf("%s%d", consts.CallbackAddToCartPrefix, product.ID)}},
	}

	back := consts.CallbackMenu
	if product.CategoryID != nil {
		back = fmt.Sprintf("%s%d", consts.CallbackCategoryPrefix, *product.CategoryID)
	}
	rows = append(rows, []models.InlineKeyboardButton{
		{Text: "⬅️ Назад", CallbackData: back},
		{Text: "🛒 Корзина", CallbackData: consts.CallbackCart},
	})

	return &models.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// cartKeyboard renders quantity controls for every cart line
func cartKeyboard(view *dto.CartView) *models.InlineKeyboardMarkup {
	var rows [][]models.InlineKeyboardButton
	for _, line := range view.Lines {
		rows = append(rows, []models.InlineKeyboardButton{
			{Text: "➖", CallbackData: fmt.Sprintf("%s%d", consts.CallbackDecPrefix, line.ProductID)},
			{Text: fmt.Sprintf("%s × %d", line.Title, line.Qty), CallbackData: fmt.Sprintf("%s%d", consts.CallbackProductDetailsPrefix, line.ProductID)},
			{Text: "➕", CallbackData: fmt.Sprintf("%s%d", consts.CallbackIncPrefix, line.ProductID)},
			{Text: "🗑", CallbackData: fmt.Sprintf("%s%d", consts.CallbackDelPrefix, line.ProductID)},
		})
	}
	if len(view.Lines) > 0 {
		rows = append(rows, []models.InlineKeyboardButton{
			{Text: "✅ Оформить заказ", CallbackData: consts.CallbackCheckout},
		})
	}
	rows = append(rows, []models.InlineKeyboardButton{
		{Text: "⬅️ В меню", CallbackData: consts.CallbackMenu},
	})

	return &models.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// paymentKeyboard offers the payment method choice during checkout
func paymentKeyboard() *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{{Text: "💳 Оплатить онлайн", CallbackData: consts.CallbackPayOnline}},
			{{Text: "💵 При получении", CallbackData: consts.CallbackPayOnDelivery}},
			{{Text: "❌ Отменить", CallbackData: consts.CallbackCancelCheckout}},
		},
	}
}

// cancelCheckoutKeyboard is attached to the wizard prompts
func cancelCheckoutKeyboard() *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{{Text: "❌ Отменить оформление", CallbackData: consts.CallbackCancelCheckout}},
		},
	}
}

// pickCategoryKeyboard lets the admin wizard attach a product to a category
func pickCategoryKeyboard(categories []entities.Category) *models.InlineKeyboardMarkup {
	var rows [][]models.InlineKeyboardButton
	for _, c := range categories {
		rows = append(rows, []models.InlineKeyboardButton{
			{Text: c.Title, CallbackData: fmt.Sprintf("%s%d", consts.CallbackPickCategoryPrefix, c.ID)},
		})
	}
	rows = append(rows, []models.InlineKeyboardButton{
		{Text: "Без категории", CallbackData: consts.CallbackPickCategoryPrefix + "0"},
	})
	rows = append(rows, []models.InlineKeyboardButton{
		{Text: "❌ Отменить", CallbackData: consts.CallbackWizardCancel},
	})

	return &models.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// adminProductsKeyboard lists products with edit and remove controls.
// With activate set, it shows disabled products with restore buttons instead.
func adminProductsKeyboard(products []entities.Product, activate bool) *models.InlineKeyboardMarkup {
	var rows [][]models.InlineKeyboardButton
	for _, p := range products {
		label := fmt.Sprintf("%s — %s ₽", p.Title, p.Price.StringFixed(2))
		if activate {
			rows = append(rows, []models.InlineKeyboardButton{
				{Text: label, CallbackData: fmt.Sprintf("%s%d", consts.CallbackActivatePrefix, p.ID)},
			})
			continue
		}
		rows = append(rows, []models.InlineKeyboardButton{
			{Text: label, CallbackData: fmt.Sprintf("%s%d", consts.CallbackEditProductPrefix, p.ID)},
			{Text: "🚫", CallbackData: fmt.Sprintf("%s%d", consts.CallbackRemoveProductPrefix, p.ID)},
		})
	}
	if !activate {
		rows = append(rows, []models.InlineKeyboardButton{
			{Text: "🚫 Скрытые товары", CallbackData: consts.CallbackShowDisabled},
		})
	}

	return &models.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// ordersKeyboard lists active orders for the admin board
func ordersKeyboard(orders []dto.OrderSummary) *models.InlineKeyboardMarkup {
	var rows [][]models.InlineKeyboardButton
	for _, o := range orders {
		label := fmt.Sprintf("#%d · %s · %s ₽", o.ID, statusLabel(o.Status), o.TotalPrice.StringFixed(2))
		rows = append(rows, []models.InlineKeyboardButton{
			{Text: label, CallbackData: fmt.Sprintf("%s%d", consts.CallbackOrderPrefix, o.ID)},
		})
	}

	return &models.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// orderActionsKeyboard offers status transitions for one order
func orderActionsKeyboard(order *entities.Order) *models.InlineKeyboardMarkup {
	var rows [][]models.InlineKeyboardButton
	switch order.Status {
	case consts.OrderStatusAccepted:
		rows = append(rows, []models.InlineKeyboardButton{
			{Text: "👨‍🍳 В работу", CallbackData: fmt.Sprintf("%s%d", consts.CallbackOrderProcessPrefix, order.ID)},
		})
		rows = append(rows, []models.InlineKeyboardButton{
			{Text: "❌ Отменить", CallbackData: fmt.Sprintf("%s%d", consts.CallbackOrderCancelPrefix, order.ID)},
		})
	case consts.OrderStatusInProgress:
		rows = append(rows, []models.InlineKeyboardButton{
			{Text: "✅ Выполнен", CallbackData: fmt.Sprintf("%s%d", consts.CallbackOrderDonePrefix, order.ID)},
		})
		rows = append(rows, []models.InlineKeyboardButton{
			{Text: "❌ Отменить", CallbackData: fmt.Sprintf("%s%d", consts.CallbackOrderCancelPrefix, order.ID)},
		})
	}
	rows = append(rows, []models.InlineKeyboardButton{
		{Text: "⬅️ К заказам", CallbackData: consts.CallbackOrdersBack},
	})

	return &models.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// statsKeyboard is attached to the stats report
func statsKeyboard() *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{{Text: "📤 Выгрузить заказы (JSON)", CallbackData: consts.CallbackStatsExport}},
		},
	}
}

func statusLabel(status string) string {
	switch status {
	case consts.OrderStatusAccepted:
		return "новый"
	case consts.OrderStatusInProgress:
		return "в работе"
	case consts.OrderStatusCompleted:
		return "выполнен"
	case consts.OrderStatusCanceled:
		return "отменён"
	}
	return status
}
