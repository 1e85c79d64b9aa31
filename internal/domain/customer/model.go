package customer

import (
	"time"

	"github.com/google/uuid"
)

type Customer struct {
	ID        uuid.UUID
	UserID    int
	ClientID  string
	Name      string
	Phone     string // нормализованный E.164, если номер удалось разобрать
	Location  string
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Record struct {
	ID        string    `json:"id" maxLength:"64" validate:"required,max=64"`
	Synced    bool      `json:"synced,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
	Name      string    `json:"name" maxLength:"200" validate:"required,max=200"`
	Phone     string    `json:"phone" maxLength:"32" validate:"required,max=32"`
	Location  string    `json:"location,omitempty" validate:"max=200"`
	Notes     string    `json:"notes,omitempty"`
}

func (c Customer) ToRecord() Record {
	return Record{
		ID:        c.ClientID,
		Synced:    true,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		Name:      c.Name,
		Phone:     c.Phone,
		Location:  c.Location,
		Notes:     c.Notes,
	}
}
