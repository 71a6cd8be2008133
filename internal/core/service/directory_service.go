package service

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/panelkit/admin-console/internal/core/domain"
	"github.com/panelkit/admin-console/internal/core/ports"
)

const filterAll = "all"

// DirectoryService serves the in-memory users and products tables shown on the
// dashboard. Deletions last for the process lifetime only.
type DirectoryService struct {
	mu       sync.RWMutex
	members  []domain.Member
	products []domain.Product
	logger   zerolog.Logger
}

// NewDirectoryService returns a DirectoryService seeded with the demo tables.
func NewDirectoryService(logger zerolog.Logger) *DirectoryService {
	return NewDirectoryServiceWith(seedMembers(), seedProducts(), logger)
}

// NewDirectoryServiceWith returns a DirectoryService over the given rows.
func NewDirectoryServiceWith(members []domain.Member, products []domain.Product, logger zerolog.Logger) *DirectoryService {
	return &DirectoryService{
		members:  slices.Clone(members),
		products: slices.Clone(products),
		logger:   logger,
	}
}

func (s *DirectoryService) ListMembers(_ context.Context, f ports.ListMembersFilter) []domain.Member {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Member, 0, len(s.members))
	for _, m := range s.members {
		if !matchesAny(f.Search, m.Name, m.Email) {
			continue
		}
		if !matchesFilter(f.Role, string(m.Role)) {
			continue
		}
		out = append(out, m)
	}
	return out
}

func (s *DirectoryService) DeleteMember(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.members, func(m domain.Member) bool { return m.ID == id })
	if i < 0 {
		return domain.ErrMemberNotFound
	}
	s.members = slices.Delete(s.members, i, i+1)
	s.logger.Info().Int64("member_id", id).Msg("member deleted")
	return nil
}

func (s *DirectoryService) ListProducts(_ context.Context, f ports.ListProductsFilter) []ports.ProductView {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]ports.ProductView, 0, len(s.products))
	for _, p := range s.products {
		if !matchesAny(f.Search, p.Name, p.Description) {
			continue
		}
		if !matchesFilter(f.Category, p.Category) {
			continue
		}
		out = append(out, ports.ProductView{Product: p, Status: p.StockStatus()})
	}
	return out
}

func (s *DirectoryService) DeleteProduct(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.products, func(p domain.Product) bool { return p.ID == id })
	if i < 0 {
		return domain.ErrProductNotFound
	}
	s.products = slices.Delete(s.products, i, i+1)
	s.logger.Info().Int64("product_id", id).Msg("product deleted")
	return nil
}

// Categories lists the distinct product categories in first-seen order.
func (s *DirectoryService) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []string
	for _, p := range s.products {
		if !slices.Contains(out, p.Category) {
			out = append(out, p.Category)
		}
	}
	return out
}

func matchesAny(search string, fields ...string) bool {
	search = strings.ToLower(strings.TrimSpace(search))
	if search == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), search) {
			return true
		}
	}
	return false
}

func matchesFilter(filter, value string) bool {
	return filter == "" || filter == filterAll || filter == value
}

func seedMembers() []domain.Member {
	day := func(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }
	return []domain.Member{
		{ID: 1, Name: "Ahmet Yilmaz", Email: "ahmet@example.com", Role: domain.RoleAdmin, Status: domain.MemberActive, JoinedAt: day(2023, 1, 15), LastLogin: day(2024, 1, 20)},
		{ID: 2, Name: "Ayse Demir", Email: "ayse@example.com", Role: domain.RoleManager, Status: domain.MemberActive, JoinedAt: day(2023, 2, 10), LastLogin: day(2024, 1, 19)},
		{ID: 3, Name: "Mehmet Kaya", Email: "mehmet@example.com", Role: domain.RoleUser, Status: domain.MemberActive, JoinedAt: day(2023, 3, 5), LastLogin: day(2024, 1, 18)},
		{ID: 4, Name: "Fatma Sahin", Email: "fatma@example.com", Role: domain.RoleUser, Status: domain.MemberInactive, JoinedAt: day(2023, 4, 12), LastLogin: day(2023, 12, 15)},
		{ID: 5, Name: "Ali Ozkan", Email: "ali@example.com", Role: domain.RoleManager, Status: domain.MemberActive, JoinedAt: day(2023, 5, 20), LastLogin: day(2024, 1, 17)},
	}
}

func seedProducts() []domain.Product {
	return []domain.Product{
		{ID: 1, Name: "iPhone 15 Pro", Description: "Apple's newest flagship smartphone", Category: "electronics", Price: 45999, Stock: 25},
		{ID: 2, Name: "MacBook Air M2", Description: "Lightweight, powerful laptop", Category: "electronics", Price: 32999, Stock: 12},
		{ID: 3, Name: "AirPods Pro", Description: "Wireless earbuds with noise cancellation", Category: "electronics", Price: 7999, Stock: 45},
		{ID: 4, Name: "Nike Air Max", Description: "Comfortable, stylish running shoes", Category: "fashion", Price: 2499, Stock: 0, Discontinued: true},
		{ID: 5, Name: "Samsung Galaxy Watch", Description: "Smart watch with health tracking", Category: "electronics", Price: 8999, Stock: 8},
		{ID: 6, Name: "Levi's 501 Jeans", Description: "Classic cut denim jeans", Category: "fashion", Price: 899, Stock: 32},
	}
}
