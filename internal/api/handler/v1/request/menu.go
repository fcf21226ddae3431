package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateCategoryRequest struct {
	Name string `json:"name"`
}

func (req *CreateCategoryRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 50)),
	)
}

type CreateMenuItemRequest struct {
	CategoryID      uint    `json:"category_id"`
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	Price           float64 `json:"price"`
	IsAvailable     *bool   `json:"is_available"`
	PreparationTime int     `json:"preparation_time"`
	ImageKey        string  `json:"image_key"`
}

func (req *CreateMenuItemRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.CategoryID, validation.Required, validation.Min(uint(1))),
		validation.Field(&req.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Description, validation.Length(0, 500)),
		validation.Field(&req.Price, validation.Required, validation.Min(0.0)),
		validation.Field(&req.PreparationTime, validation.Min(0)),
	)
}

type UpdateMenuItemRequest struct {
	CategoryID      uint    `json:"category_id"`
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	Price           float64 `json:"price"`
	IsAvailable     *bool   `json:"is_available"`
	PreparationTime int     `json:"preparation_time"`
	ImageKey        string  `json:"image_key"`
}

func (req *UpdateMenuItemRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Description, validation.Length(0, 500)),
		validation.Field(&req.Price, validation.Required, validation.Min(0.0)),
		validation.Field(&req.PreparationTime, validation.Min(0)),
	)
}
