package domain

import (
	"errors"
	"time"
)

var ErrMemberNotFound = errors.New("member not found")
var ErrProductNotFound = errors.New("product not found")

// MemberStatus is the account state shown in the users table.
type MemberStatus string

const (
	MemberActive   MemberStatus = "active"
	MemberInactive MemberStatus = "inactive"
)

// Member is a row of the users management table.
type Member struct {
	ID        int64        `json:"id"`
	Name      string       `json:"name"`
	Email     string       `json:"email"`
	Role      Role         `json:"role"`
	Status    MemberStatus `json:"status"`
	AvatarURL string       `json:"avatar,omitempty"`
	JoinedAt  time.Time    `json:"joined_at"`
	LastLogin time.Time    `json:"last_login"`
}

// StockStatus summarises product availability.
type StockStatus string

const (
	StockIn  StockStatus = "in_stock"
	StockLow StockStatus = "low_stock"
	StockOut StockStatus = "out_of_stock"
)

// lowStockThreshold is the stock level below which a product is flagged low.
const lowStockThreshold = 10

// Product is a row of the products catalogue.
type Product struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Category     string  `json:"category"`
	Price        float64 `json:"price"`
	Stock        int     `json:"stock"`
	Discontinued bool    `json:"discontinued,omitempty"`
	ImageURL     string  `json:"image,omitempty"`
}

// StockStatus derives availability from the stock level and the discontinued flag.
func (p Product) StockStatus() StockStatus {
	switch {
	case p.Discontinued || p.Stock == 0:
		return StockOut
	case p.Stock < lowStockThreshold:
		return StockLow
	default:
		return StockIn
	}
}
