package models

import "time"

// Client is an organization assets are deployed to. Referenced by
// assignments and by an asset's current location while with the client.
type Client struct {
	ID            int       `json:"id" db:"id"`
	Name          string    `json:"client_name" db:"client_name"`
	ContactPerson string    `json:"contact_person" db:"contact_person"`
	Email         string    `json:"email" db:"email"`
	Phone         string    `json:"phone" db:"phone"`
	City          string    `json:"city" db:"city"`
	BillingRate   float64   `json:"billing_rate" db:"billing_rate"`
	Active        bool      `json:"active" db:"active"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

type CreateClientRequest struct {
	Name          string  `json:"client_name" binding:"required"`
	ContactPerson string  `json:"contact_person"`
	Email         string  `json:"email"`
	Phone         string  `json:"phone"`
	City          string  `json:"city"`
	BillingRate   float64 `json:"billing_rate"`
}

type ClientChanges struct {
	ContactPerson *string  `json:"contact_person"`
	Email         *string  `json:"email"`
	Phone         *string  `json:"phone"`
	City          *string  `json:"city"`
	BillingRate   *float64 `json:"billing_rate"`
	Active        *bool    `json:"active"`
}

func (c *ClientChanges) HasChanges() bool {
	return c.ContactPerson != nil || c.Email != nil || c.Phone != nil ||
		c.City != nil || c.BillingRate != nil || c.Active != nil
}
