package dto

type CreateCategoryDTO struct {
	Name  string  `json:"name" validate:"required"`
	Color int16   `json:"color" validate:"omitempty,gte=0,lte=11"`
	Note  *string `json:"note,omitempty" validate:"omitempty"`
}

type UpdateCategoryDTO struct {
	Name  *string `json:"name,omitempty" validate:"omitempty"`
	Color *int16  `json:"color,omitempty" validate:"omitempty,gte=0,lte=11"`
	Note  *string `json:"note,omitempty" validate:"omitempty"`
}

type CategoryDTO struct {
	ID             uint64  `json:"id"`
	Name           string  `json:"name"`
	Color          int16   `json:"color"`
	Note           *string `json:"note,omitempty"`
	EquipmentCount uint64  `json:"equipment_count"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
}

type ShortCategoryDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}
