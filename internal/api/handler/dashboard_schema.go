package handler

import (
	"github.com/panelkit/admin-console/internal/core/domain"
	"github.com/panelkit/admin-console/internal/core/ports"
)

type overviewStats struct {
	Members       int `json:"members"`
	ActiveMembers int `json:"active_members"`
	Products      int `json:"products"`
	LowStock      int `json:"low_stock"`
	OutOfStock    int `json:"out_of_stock"`
}

type overviewResponse struct {
	User  domain.Identity `json:"user"`
	Stats overviewStats   `json:"stats"`
}

type membersResponse struct {
	Items []domain.Member `json:"items"`
	Total int             `json:"total"`
}

type productsResponse struct {
	Items      []ports.ProductView `json:"items"`
	Total      int                 `json:"total"`
	Categories []string            `json:"categories"`
}

type addProductViewResponse struct {
	View       string   `json:"view"`
	Categories []string `json:"categories"`
}

type categoryFigures struct {
	Products   int     `json:"products"`
	Units      int     `json:"units"`
	StockValue float64 `json:"stock_value"`
}

type analyticsResponse struct {
	ByCategory map[string]categoryFigures `json:"by_category"`
	ByStatus   map[domain.StockStatus]int `json:"by_status"`
}

type settingsResponse struct {
	User domain.Identity `json:"user"`
}
