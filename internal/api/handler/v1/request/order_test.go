package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateOrderRequestValidate(t *testing.T) {
	valid := CreateOrderRequest{
		TableNumber: 1,
		Items:       []CartItemInput{{MenuItemID: 1, Quantity: 1}},
	}
	assert.NoError(t, valid.Validate())

	withToken := valid
	withToken.GuestToken = "guest_abc12345"
	assert.NoError(t, withToken.Validate())

	noTable := valid
	noTable.TableNumber = 0
	assert.Error(t, noTable.Validate())

	noItems := valid
	noItems.Items = nil
	assert.Error(t, noItems.Validate())
}

func TestValidateGuestToken(t *testing.T) {
	// Empty means "mint one for me".
	assert.NoError(t, validateGuestToken(""))

	assert.NoError(t, validateGuestToken("guest_550e8400-e29b-41d4-a716-446655440000"))
	assert.NoError(t, validateGuestToken("client.minted-TOKEN_01"))

	assert.Error(t, validateGuestToken("short"))
	assert.Error(t, validateGuestToken("has spaces in it"))
	assert.Error(t, validateGuestToken("emoji🙂token"))
	assert.Error(t, validateGuestToken(12345))
}
