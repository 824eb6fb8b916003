// Package consts contains constants for the shop domain
package consts

// Command represents a bot command
type Command struct {
	Name        string
	Description string
}

// Bot commands
var (
	CommandStart = Command{Name: "start", Description: "Запуск бота"}
	CommandMenu  = Command{Name: "menu", Description: "Открыть меню"}
	CommandCart  = Command{Name: "cart", Description: "Открыть корзину"}

	CommandAddCategory = Command{Name: "add_category", Description: "Добавить категорию"}
	CommandAddProduct  = Command{Name: "add_product", Description: "Добавить товар"}
	CommandProducts    = Command{Name: "products", Description: "Список товаров"}
	CommandOrders      = Command{Name: "orders", Description: "Заказы"}
	CommandStats       = Command{Name: "stats", Description: "Статистика заказов"}
)

// UserCommands are registered for every chat
var UserCommands = []Command{
	CommandStart,
	CommandMenu,
	CommandCart,
}

// AdminCommands are registered per admin chat in addition to UserCommands
var AdminCommands = []Command{
	CommandAddCategory,
	CommandAddProduct,
	CommandProducts,
	CommandOrders,
	CommandStats,
}

// Order statuses
const (
	OrderStatusAccepted   = "accepted"
	OrderStatusInProgress = "in_progress"
	OrderStatusCompleted  = "completed"
	OrderStatusCanceled   = "canceled"
)

// OrderStatusTerminal reports whether no further transitions are allowed
func OrderStatusTerminal(status string) bool {
	return status == OrderStatusCompleted || status == OrderStatusCanceled
}

// Payment method tags stored on orders
const (
	PaymentMethodOnline     = "online"
	PaymentMethodOnDelivery = "on_delivery"
)

// Reply keyboard button labels
const (
	ButtonMenu         = "📋 Открыть меню"
	ButtonCart         = "🛒 Корзина"
	ButtonSubscription = "🤩 Подписка"
	ButtonSupport      = "💬 Поддержка"

	ButtonStats             = "📊 Статистика"
	ButtonOrders            = "🛒 Заказы"
	ButtonProducts          = "🛍️ Продукты"
	ButtonAddCategory       = "➕ Добавить категорию"
	ButtonAddProduct        = "➕ Добавить товар"
	ButtonActivateProduct   = "➕ Активировать товар"
	ButtonSharePhoneRequest = "📱 Отправить номер"
)

// Callback data prefixes and values
const (
	CallbackCategoryPrefix       = "cat:"
	CallbackProductDetailsPrefix = "product:"
	CallbackAddToCartPrefix      = "add:"
	CallbackIncPrefix            = "inc:"
	CallbackDecPrefix            = "dec:"
	CallbackDelPrefix            = "del:"
	CallbackCart                 = "cart"
	CallbackMenu                 = "menu"
	CallbackMain                 = "main"
	CallbackCheckout             = "checkout"
	CallbackCancelCheckout       = "checkout_cancel"
	CallbackPayOnline            = "pay_online"
	CallbackPayOnDelivery        = "pay_cash"

	CallbackEditCategoryPrefix   = "admin_cat_edit:"
	CallbackRemoveCategoryPrefix = "admin_cat_remove:"
	CallbackEditProductPrefix    = "admin_prod_edit:"
	CallbackRemoveProductPrefix  = "admin_prod_remove:"
	CallbackShowDisabled         = "admin_prod_disabled"
	CallbackActivatePrefix       = "admin_prod_activate:"
	CallbackPickCategoryPrefix   = "admin_pick_cat:"
	CallbackWizardCancel         = "admin_wizard_cancel"
	CallbackWizardSave           = "admin_wizard_save"
	CallbackOrderPrefix          = "order:"
	CallbackOrderProcessPrefix   = "order_process:"
	CallbackOrderDonePrefix      = "order_done:"
	CallbackOrderCancelPrefix    = "order_cancel:"
	CallbackOrdersBack           = "orders_back"
	CallbackStatsExport          = "stats_export"
)

// Kafka topics for order lifecycle events
const (
	TopicOrderCreated          = "orders.created"
	TopicOrderStatusChanged    = "orders.status_changed"
	TopicSubscriptionPurchased = "subscriptions.purchased"
)
