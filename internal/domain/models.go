package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

const (
	TypeSushi    = "Sushi"
	TypeAlitas   = "Alitas"
	TypeBoneless = "Boneless"
	TypeBebida   = "Bebida"
	TypePapas    = "Papas"
	TypeExtra    = "Extra"
	TypePostre   = "Postres"
)

// ClientName absorbs the two historical payload shapes for a client
// name: a plain string, or an object with a "name" field. Exports and
// comparisons always see the flat string.
type ClientName string

func (c *ClientName) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*c = ClientName(s)
		return nil
	}
	var obj struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("client name: %w", err)
	}
	*c = ClientName(obj.Name)
	return nil
}

func (c ClientName) String() string { return string(c) }

type LineItem struct {
	Type          string     `json:"type"`
	Name          string     `json:"name"`
	Price         float64    `json:"price"`
	OriginalPrice float64    `json:"originalPrice,omitempty"`
	IsPromotional bool       `json:"isPromotional,omitempty"`
	Details       string     `json:"details,omitempty"`
	Time          time.Time  `json:"time"`
	ClientID      string     `json:"clientId,omitempty"`
	ClientName    ClientName `json:"clientName,omitempty"`
}

type Client struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Discount  float64   `json:"discount,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type Expense struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	CreatedAt   time.Time `json:"created_at"`
}

type RegisterInfo struct {
	CashInBox  float64   `json:"cash_in_box"`
	Date       string    `json:"date"`
	WorkerName string    `json:"worker_name"`
	Address    string    `json:"address,omitempty"`
	Hours      string    `json:"hours,omitempty"`
	SavedAt    time.Time `json:"saved_at"`
}

type DaySnapshot struct {
	Date    string     `json:"date"`
	Items   []LineItem `json:"items"`
	SavedAt time.Time  `json:"saved_at"`
}

const (
	InventoryStatusMucho   = "mucho"
	InventoryStatusEstable = "estable"
	InventoryStatusPoco    = "poco"
	InventoryStatusAgotado = "agotado"
)

type InventoryItem struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Status        string   `json:"status"`
	Packages      *float64 `json:"packages,omitempty"`
	ExactQuantity *int     `json:"exact_quantity,omitempty"`
}

type InventoryCreateRequest struct {
	Name          string   `json:"name"`
	Status        string   `json:"status,omitempty"`
	Packages      *float64 `json:"packages,omitempty"`
	ExactQuantity *int     `json:"exact_quantity,omitempty"`
}

type InventoryUpdateRequest struct {
	Status        *string  `json:"status,omitempty"`
	Packages      *float64 `json:"packages,omitempty"`
	ExactQuantity *int     `json:"exact_quantity,omitempty"`
}

type Dessert struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	ImageURI string  `json:"image_uri,omitempty"`
}

type DessertCreateRequest struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	ImageURI string  `json:"image_uri,omitempty"`
}

type DessertUpdateRequest struct {
	Name     *string  `json:"name,omitempty"`
	Price    *float64 `json:"price,omitempty"`
	ImageURI *string  `json:"image_uri,omitempty"`
}

type OrderItemRequest struct {
	Type   string `json:"type"`
	Name   string `json:"name"`
	Option string `json:"option,omitempty"`
}

type OrderStateResponse struct {
	Items       []LineItem `json:"items"`
	Count       int        `json:"count"`
	Total       float64    `json:"total"`
	PromoActive bool       `json:"promo_active"`
}

const (
	CheckoutModeExisting = "existing"
	CheckoutModeNew      = "new"
	CheckoutModeDiscount = "discount"
)

type CheckoutRequest struct {
	Mode     string   `json:"mode"`
	ClientID string   `json:"client_id,omitempty"`
	Name     string   `json:"name,omitempty"`
	Discount *float64 `json:"discount,omitempty"`
}

type CheckoutResponse struct {
	Client    Client  `json:"client"`
	ItemCount int     `json:"item_count"`
	Total     float64 `json:"total"`
	CreatedAt string  `json:"created_at"`
}

type ExpenseCreateRequest struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

type RegisterSaveRequest struct {
	CashInBox  float64 `json:"cash_in_box"`
	Date       string  `json:"date"`
	WorkerName string  `json:"worker_name"`
	Address    string  `json:"address,omitempty"`
	Hours      string  `json:"hours,omitempty"`
}

type CalculatorPressRequest struct {
	Key string `json:"key"`
}

type CalculatorState struct {
	Buffer string   `json:"buffer"`
	Trail  []string `json:"trail"`
}

type PromoToggleRequest struct {
	Active bool `json:"active"`
}

type ConfirmRequest struct {
	Confirm bool `json:"confirm"`
}

type TicketRenderResponse struct {
	ClientID     string `json:"client_id"`
	EscposBase64 string `json:"escpos_base64"`
	PreviewText  string `json:"preview_text"`
	FileName     string `json:"file_name"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	Role        string `json:"role"`
	ExpiresAt   string `json:"expires_at"`
}

type Actor struct {
	Username string
	Role     string
}

type CashierCreateRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type CashierUser struct {
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// UserAccount is an internal persistence model for auth credentials.
type UserAccount struct {
	Username  string
	Password  string
	Role      string
	Active    bool
	CreatedAt time.Time
}
