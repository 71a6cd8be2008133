package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/panelkit/admin-console/internal/core/domain"
	"github.com/panelkit/admin-console/internal/core/ports"
)

func TestDirectoryService_ListMembers(t *testing.T) {
	svc := NewDirectoryService(zerolog.Nop())
	ctx := context.Background()

	if got := svc.ListMembers(ctx, ports.ListMembersFilter{}); len(got) != 5 {
		t.Fatalf("expected all 5 members, got %d", len(got))
	}
	if got := svc.ListMembers(ctx, ports.ListMembersFilter{Role: "all"}); len(got) != 5 {
		t.Fatalf("expected 'all' to disable the role filter, got %d", len(got))
	}
	if got := svc.ListMembers(ctx, ports.ListMembersFilter{Role: "manager"}); len(got) != 2 {
		t.Fatalf("expected 2 managers, got %d", len(got))
	}
	got := svc.ListMembers(ctx, ports.ListMembersFilter{Search: "AYSE@"})
	if len(got) != 1 || got[0].Name != "Ayse Demir" {
		t.Fatalf("expected case-insensitive email match, got %+v", got)
	}
	if got := svc.ListMembers(ctx, ports.ListMembersFilter{Search: "kaya", Role: "admin"}); len(got) != 0 {
		t.Fatalf("expected filters to combine, got %+v", got)
	}
}

func TestDirectoryService_DeleteMember(t *testing.T) {
	svc := NewDirectoryService(zerolog.Nop())
	ctx := context.Background()

	if err := svc.DeleteMember(ctx, 3); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got := svc.ListMembers(ctx, ports.ListMembersFilter{}); len(got) != 4 {
		t.Fatalf("expected 4 members left, got %d", len(got))
	}
	if err := svc.DeleteMember(ctx, 3); !errors.Is(err, domain.ErrMemberNotFound) {
		t.Fatalf("expected ErrMemberNotFound, got %v", err)
	}
}

func TestDirectoryService_ListProducts(t *testing.T) {
	svc := NewDirectoryService(zerolog.Nop())
	ctx := context.Background()

	fashion := svc.ListProducts(ctx, ports.ListProductsFilter{Category: "fashion"})
	if len(fashion) != 2 {
		t.Fatalf("expected 2 fashion products, got %d", len(fashion))
	}

	got := svc.ListProducts(ctx, ports.ListProductsFilter{Search: "noise"})
	if len(got) != 1 || got[0].Name != "AirPods Pro" {
		t.Fatalf("expected description match, got %+v", got)
	}

	statuses := map[int64]domain.StockStatus{}
	for _, p := range svc.ListProducts(ctx, ports.ListProductsFilter{}) {
		statuses[p.ID] = p.Status
	}
	if statuses[4] != domain.StockOut || statuses[5] != domain.StockLow || statuses[1] != domain.StockIn {
		t.Fatalf("unexpected stock statuses %v", statuses)
	}
}

func TestDirectoryService_DeleteProductAndCategories(t *testing.T) {
	svc := NewDirectoryService(zerolog.Nop())
	ctx := context.Background()

	if cats := svc.Categories(); len(cats) != 2 || cats[0] != "electronics" || cats[1] != "fashion" {
		t.Fatalf("unexpected categories %v", cats)
	}
	if err := svc.DeleteProduct(ctx, 99); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
	if err := svc.DeleteProduct(ctx, 4); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got := svc.ListProducts(ctx, ports.ListProductsFilter{Category: "fashion"}); len(got) != 1 {
		t.Fatalf("expected 1 fashion product left, got %d", len(got))
	}
}
