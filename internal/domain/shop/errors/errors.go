// Package errors contains domain-specific errors for the shop domain
package errors

import (
	pkgerrors "github.com/makarov13/gastrobot/pkg/errors"
)

// Domain errors for storefront operations
var (
	ErrUserNotFound     = pkgerrors.NewNotFoundError("user not found")
	ErrCategoryNotFound = pkgerrors.NewNotFoundError("category not found")
	ErrProductNotFound  = pkgerrors.NewNotFoundError("product not found")
	ErrOrderNotFound    = pkgerrors.NewNotFoundError("order not found")

	ErrCategoryExists = pkgerrors.NewConflictError("category already exists")

	ErrPhoneRequired     = pkgerrors.NewPermissionError("phone number is required")
	ErrNotAdmin          = pkgerrors.NewPermissionError("admin access required")
	ErrInvalidAddress    = pkgerrors.NewValidationError("address does not match the delivery format")
	ErrInvalidPrice      = pkgerrors.NewValidationError("price must be a positive number")
	ErrEmptyTitle        = pkgerrors.NewValidationError("title cannot be empty")
	ErrEmptyCart         = pkgerrors.NewValidationError("cart is empty")
	ErrOrderBelowMinimum = pkgerrors.NewValidationError("order total is below the minimum")
	ErrOrderFinalized    = pkgerrors.NewConflictError("order status is terminal")

	ErrMessageDeliveryFailed = pkgerrors.NewInternalError("message delivery failed")
	ErrDatabaseOperation     = pkgerrors.NewInternalError("database operation failed")
)
