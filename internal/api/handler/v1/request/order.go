package request

import (
	"fmt"

	"github.com/dlclark/regexp2"
	validation "github.com/go-ozzo/ozzo-validation"
)

// guestTokenPattern matches both server-minted tokens and the opaque tokens
// clients persist across visits.
var guestTokenPattern = regexp2.MustCompile(`^[A-Za-z0-9_.-]{8,128}$`, regexp2.None)

type CartItemInput struct {
	MenuItemID uint `json:"menu_item_id"`
	Quantity   int  `json:"quantity"`
}

type CreateOrderRequest struct {
	TableNumber int             `json:"table_number"`
	Items       []CartItemInput `json:"items"`
	GuestToken  string          `json:"guest_token"`
}

func (req *CreateOrderRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.TableNumber, validation.Required, validation.Min(1)),
		validation.Field(&req.Items, validation.Required, validation.Length(1, 0)),
		validation.Field(&req.GuestToken, validation.By(validateGuestToken)),
	)
}

func validateGuestToken(value interface{}) error {
	token, ok := value.(string)
	if !ok {
		return fmt.Errorf("invalid guest token")
	}
	if token == "" {
		return nil
	}

	matched, err := guestTokenPattern.MatchString(token)
	if err != nil || !matched {
		return fmt.Errorf("malformed guest token")
	}

	return nil
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

func (req *UpdateOrderStatusRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Status, validation.Required),
	)
}
