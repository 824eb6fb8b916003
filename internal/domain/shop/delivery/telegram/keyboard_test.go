package telegram

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/makarov13/gastrobot/internal/domain/shop/consts"
	"github.com/makarov13/gastrobot/internal/domain/shop/entities"
)

func testProduct(id uint, title string, price int64) entities.Product {
	return entities.Product{ID: id, Title: title, Price: decimal.NewFromInt(price), IsActive: true}
}

func TestAdminProductsKeyboard_SwitchToHidden(t *testing.T) {
	kb := adminProductsKeyboard([]entities.Product{testProduct(1, "Сет", 1500)}, false)

	require.Len(t, kb.InlineKeyboard, 2)
	last := kb.InlineKeyboard[len(kb.InlineKeyboard)-1]
	require.Len(t, last, 1)
	assert.Equal(t, consts.CallbackShowDisabled, last[0].CallbackData)
}

func TestAdminProductsKeyboard_ActivateModeHasNoSwitch(t *testing.T) {
	kb := adminProductsKeyboard([]entities.Product{testProduct(1, "Сет", 1500)}, true)

	require.Len(t, kb.InlineKeyboard, 1)
	assert.Equal(t, consts.CallbackActivatePrefix+"1", kb.InlineKeyboard[0][0].CallbackData)
}

func TestPickCategoryKeyboard_NoCategoryOption(t *testing.T) {
	kb := pickCategoryKeyboard([]entities.Category{{ID: 3, Title: "Пицца"}})

	require.Len(t, kb.InlineKeyboard, 3)
	assert.Equal(t, consts.CallbackPickCategoryPrefix+"3", kb.InlineKeyboard[0][0].CallbackData)
	assert.Equal(t, consts.CallbackPickCategoryPrefix+"0", kb.InlineKeyboard[1][0].CallbackData)
	assert.Equal(t, consts.CallbackWizardCancel, kb.InlineKeyboard[2][0].CallbackData)
}
