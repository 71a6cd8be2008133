package ports

import (
	"context"

	"github.com/panelkit/admin-console/internal/core/domain"
)

// ListMembersFilter narrows the users table. "all" or empty Role means no role filter.
type ListMembersFilter struct {
	Search string // case-insensitive match on name or email
	Role   string
}

// ListProductsFilter narrows the products catalogue. "all" or empty Category means no filter.
type ListProductsFilter struct {
	Search   string // case-insensitive match on name or description
	Category string
}

// ProductView is a product plus its derived stock status.
type ProductView struct {
	domain.Product
	Status domain.StockStatus `json:"status"`
}

// DirectoryService serves the mock users and products tables.
type DirectoryService interface {
	ListMembers(ctx context.Context, f ListMembersFilter) []domain.Member
	DeleteMember(ctx context.Context, id int64) error
	ListProducts(ctx context.Context, f ListProductsFilter) []ProductView
	DeleteProduct(ctx context.Context, id int64) error
	Categories() []string
}
