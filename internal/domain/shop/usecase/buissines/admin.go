package buissines

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/makarov13/gastrobot/internal/domain/shop/consts"
	"github.com/makarov13/gastrobot/internal/domain/shop/dto"
	"github.com/makarov13/gastrobot/internal/domain/shop/entities"
	shoperrors "github.com/makarov13/gastrobot/internal/domain/shop/errors"
)

// CreateCategory creates a catalog category with a unique title
func (uc *UseCase) CreateCategory(ctx context.Context, actorID int64, title string) (*entities.Category, error) {
	if !uc.IsAdmin(actorID) {
		return nil, shoperrors.ErrNotAdmin
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, shoperrors.ErrEmptyTitle
	}

	category, err := uc.catalog.CreateCategory(ctx, title)
	if err != nil {
		return nil, err
	}

	uc.logger.Info().
		Uint("category_id", category.ID).
		Str("title", title).
		Msg("Category created")

	return category, nil
}

// RenameCategory changes a category title
func (uc *UseCase) RenameCategory(ctx context.Context, actorID int64, id uint, title string) error {
	if !uc.IsAdmin(actorID) {
		return shoperrors.ErrNotAdmin
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return shoperrors.ErrEmptyTitle
	}

	return uc.catalog.UpdateCategoryTitle(ctx, id, title)
}

// DeleteCategory removes a category. Its products are detached and deactivated,
// so they drop out of the storefront until an admin reactivates them.
func (uc *UseCase) DeleteCategory(ctx context.Context, actorID int64, id uint) error {
	if !uc.IsAdmin(actorID) {
		return shoperrors.ErrNotAdmin
	}

	if err := uc.catalog.DeleteCategory(ctx, id); err != nil {
		return err
	}

	uc.logger.Info().Uint("category_id", id).Msg("Category deleted")
	return nil
}

// CreateProduct validates and saves a new product
func (uc *UseCase) CreateProduct(ctx context.Context, actorID int64, input dto.ProductInput) (*entities.Product, error) {
	if !uc.IsAdmin(actorID) {
		return nil, shoperrors.ErrNotAdmin
	}

	if err := validateProductInput(input); err != nil {
		return nil, err
	}

	product := &entities.Product{
		CategoryID:  input.CategoryID,
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		Price:       input.Price,
		IsActive:    true,
		PhotoFileID: input.PhotoFileID,
	}
	if err := uc.catalog.CreateProduct(ctx, product); err != nil {
		return nil, err
	}

	uc.logger.Info().
		Uint("product_id", product.ID).
		Str("title", product.Title).
		Str("price", product.Price.String()).
		Msg("Product created")

	return product, nil
}

// UpdateProduct overwrites product fields collected by the edit wizard
func (uc *UseCase) UpdateProduct(ctx context.Context, actorID int64, id uint, input dto.ProductInput) (*entities.Product, error) {
	if !uc.IsAdmin(actorID) {
		return nil, shoperrors.ErrNotAdmin
	}

	if err := validateProductInput(input); err != nil {
		return nil, err
	}

	product, err := uc.catalog.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	product.Title = strings.TrimSpace(input.Title)
	product.Description = input.Description
	product.Price = input.Price
	product.CategoryID = input.CategoryID
	if input.PhotoFileID != nil {
		product.PhotoFileID = input.PhotoFileID
	}

	if err := uc.catalog.UpdateProduct(ctx, product); err != nil {
		return nil, err
	}

	uc.logger.Info().Uint("product_id", id).Msg("Product updated")
	return product, nil
}

// SetProductActive toggles product visibility in the catalog
func (uc *UseCase) SetProductActive(ctx context.Context, actorID int64, id uint, active bool) error {
	if !uc.IsAdmin(actorID) {
		return shoperrors.ErrNotAdmin
	}

	if err := uc.catalog.SetProductActive(ctx, id, active); err != nil {
		return err
	}

	uc.logger.Info().Uint("product_id", id).Bool("active", active).Msg("Product visibility changed")
	return nil
}

// Products returns products by activity flag for the admin catalog screens
func (uc *UseCase) Products(ctx context.Context, actorID int64, active bool) ([]entities.Product, error) {
	if !uc.IsAdmin(actorID) {
		return nil, shoperrors.ErrNotAdmin
	}
	return uc.catalog.ListProducts(ctx, active)
}

// ActiveOrders returns orders still in progress for the admin order board
func (uc *UseCase) ActiveOrders(ctx context.Context, actorID int64) ([]dto.OrderSummary, error) {
	if !uc.IsAdmin(actorID) {
		return nil, shoperrors.ErrNotAdmin
	}
	return uc.orders.ListActive(ctx)
}

// OrderDetails returns an order with its items and the owning user
func (uc *UseCase) OrderDetails(ctx context.Context, actorID int64, id uint) (*entities.Order, *entities.User, error) {
	if !uc.IsAdmin(actorID) {
		return nil, nil, shoperrors.ErrNotAdmin
	}

	order, err := uc.orders.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	user, err := uc.users.GetByID(ctx, order.UserID)
	if err != nil {
		return nil, nil, err
	}

	return order, user, nil
}

// AdvanceOrderStatus moves an order to a new status and notifies the owner.
// Completed and canceled orders cannot be changed again.
func (uc *UseCase) AdvanceOrderStatus(ctx context.Context, actorID int64, orderID uint, newStatus string) error {
	if !uc.IsAdmin(actorID) {
		return shoperrors.ErrNotAdmin
	}

	order, err := uc.orders.GetByID(ctx, orderID)
	if err != nil {
		return err
	}

	if consts.OrderStatusTerminal(order.Status) {
		return shoperrors.ErrOrderFinalized
	}

	oldStatus := order.Status
	if err := uc.orders.UpdateStatus(ctx, orderID, newStatus); err != nil {
		return err
	}
	order.Status = newStatus

	uc.logger.Info().
		Uint("order_id", orderID).
		Str("old_status", oldStatus).
		Str("new_status", newStatus).
		Msg("Order status changed")

	if err := uc.producer.SendOrderStatusChanged(ctx, order, oldStatus); err != nil {
		uc.logger.Error().Err(err).Uint("order_id", orderID).Msg("Failed to publish status change event")
	}

	uc.notifyOrderOwner(ctx, order)

	return nil
}

// notifyOrderOwner tells the customer about the status change, best effort.
func (uc *UseCase) notifyOrderOwner(ctx context.Context, order *entities.Order) {
	if uc.sender == nil {
		uc.logger.Error().Msg("TelegramSender is not set")
		return
	}

	user, err := uc.users.GetByID(ctx, order.UserID)
	if err != nil {
		uc.logger.Error().Err(err).Uint("order_id", order.ID).Msg("Failed to load order owner")
		return
	}

	var text string
	switch order.Status {
	case consts.OrderStatusInProgress:
		text = fmt.Sprintf("👨‍🍳 Заказ #%d принят в работу", order.ID)
	case consts.OrderStatusCompleted:
		text = fmt.Sprintf("✅ Заказ #%d выполнен. Спасибо за покупку!", order.ID)
	case consts.OrderStatusCanceled:
		text = fmt.Sprintf("❌ Заказ #%d отменён", order.ID)
	default:
		return
	}

	if err := uc.sender.SendMessage(ctx, user.TelegramID, text); err != nil {
		uc.logger.Error().Err(err).Int64("user_id", user.TelegramID).Msg("Failed to notify order owner")
	}
}

// Stats assembles the admin dashboard report
func (uc *UseCase) Stats(ctx context.Context, actorID int64) (*dto.StatsReport, error) {
	if !uc.IsAdmin(actorID) {
		return nil, shoperrors.ErrNotAdmin
	}

	report := &dto.StatsReport{}

	var err error
	if report.TotalUsers, err = uc.users.Count(ctx); err != nil {
		return nil, err
	}
	if report.TotalOrders, err = uc.orders.Count(ctx); err != nil {
		return nil, err
	}
	if report.CompletedOrders, err = uc.orders.CountByStatus(ctx, consts.OrderStatusCompleted); err != nil {
		return nil, err
	}
	if report.CanceledOrders, err = uc.orders.CountByStatus(ctx, consts.OrderStatusCanceled); err != nil {
		return nil, err
	}
	if report.InProgressOrders, err = uc.orders.CountByStatus(ctx, consts.OrderStatusInProgress); err != nil {
		return nil, err
	}
	if report.Revenue, err = uc.orders.Revenue(ctx); err != nil {
		return nil, err
	}

	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if report.NewUsersToday, err = uc.users.CountCreatedSince(ctx, startOfDay); err != nil {
		return nil, err
	}
	if report.ActiveSubscriptions, err = uc.subscriptions.CountActive(ctx, now); err != nil {
		return nil, err
	}

	// average check over completed orders; revenue covers only those
	if report.CompletedOrders > 0 {
		report.AverageOrderValue = report.Revenue.
			Div(decimal.NewFromInt(report.CompletedOrders)).
			Round(2)
	} else {
		report.AverageOrderValue = decimal.Zero
	}

	return report, nil
}

// ExportOrders renders every order as an indented JSON document
func (uc *UseCase) ExportOrders(ctx context.Context, actorID int64) ([]byte, error) {
	if !uc.IsAdmin(actorID) {
		return nil, shoperrors.ErrNotAdmin
	}

	orders, err := uc.orders.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	export := make([]dto.ExportOrder, 0, len(orders))
	for _, o := range orders {
		items := make([]dto.ExportItem, 0, len(o.Items))
		for _, it := range o.Items {
			items = append(items, dto.ExportItem{
				Title:     it.Title,
				Qty:       it.Qty,
				ItemPrice: it.ItemPrice.StringFixed(2),
			})
		}
		export = append(export, dto.ExportOrder{
			ID:         o.ID,
			UserID:     o.UserID,
			Status:     o.Status,
			Title:      o.Title,
			TotalPrice: o.TotalPrice.StringFixed(2),
			Payment:    o.PaymentMethod,
			Address:    o.Address,
			Comment:    o.Comment,
			CreatedAt:  o.CreatedAt,
			Items:      items,
		})
	}

	return json.MarshalIndent(export, "", "  ")
}

func validateProductInput(input dto.ProductInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return shoperrors.ErrEmptyTitle
	}
	if !input.Price.IsPositive() {
		return shoperrors.ErrInvalidPrice
	}
	return nil
}
