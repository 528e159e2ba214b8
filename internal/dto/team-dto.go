package dto

type CreateTeamDTO struct {
	Name      string   `json:"name" validate:"required"`
	Color     int16    `json:"color" validate:"omitempty,gte=0,lte=11"`
	MemberIDs []uint64 `json:"member_ids" validate:"omitempty,dive,gt=0"`
}

type UpdateTeamDTO struct {
	Name      *string   `json:"name,omitempty" validate:"omitempty"`
	Color     *int16    `json:"color,omitempty" validate:"omitempty,gte=0,lte=11"`
	Active    *bool     `json:"active,omitempty" validate:"omitempty"`
	MemberIDs *[]uint64 `json:"member_ids,omitempty" validate:"omitempty,dive,gt=0"`
}

type TeamDTO struct {
	ID               uint64         `json:"id"`
	Name             string         `json:"name"`
	Color            int16          `json:"color"`
	Active           bool           `json:"active"`
	Members          []ShortUserDTO `json:"members"`
	OpenRequestCount uint64         `json:"open_request_count"`
	TodoRequestCount uint64         `json:"todo_request_count"`
	EquipmentCount   uint64         `json:"equipment_count"`
	CreatedAt        string         `json:"created_at"`
	UpdatedAt        string         `json:"updated_at"`
}

type ShortTeamDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}
