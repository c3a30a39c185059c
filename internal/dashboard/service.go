package dashboard

import (
	"context"

	"github.com/pariney/saree-storefront/pkg/db/models"
	"github.com/pariney/saree-storefront/pkg/enums"
	pkgerrors "github.com/pariney/saree-storefront/pkg/errors"
	"golang.org/x/sync/errgroup"
)

const recentOrderLimit = 5

// Stats are the headline counters of the admin dashboard. Revenue counts
// delivered orders only.
type Stats struct {
	TotalProducts int64 `json:"totalProducts"`
	TotalOrders   int64 `json:"totalOrders"`
	TotalUsers    int64 `json:"totalUsers"`
	TotalRevenue  int64 `json:"totalRevenue"`
}

type Summary struct {
	Stats        Stats          `json:"stats"`
	RecentOrders []models.Order `json:"recentOrders"`
}

type Service interface {
	Summary(ctx context.Context) (*Summary, error)
}

type counter interface {
	Count(ctx context.Context) (int64, error)
}

type orderReader interface {
	counter
	SumTotal(ctx context.Context, status enums.OrderStatus) (int64, error)
	Recent(ctx context.Context, limit int) ([]models.Order, error)
}

type ServiceParams struct {
	Products counter
	Profiles counter
	Orders   orderReader
}

type service struct {
	products counter
	profiles counter
	orders   orderReader
}

func NewService(params ServiceParams) (Service, error) {
	if params.Products == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product repo is required")
	}
	if params.Profiles == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "profile repo is required")
	}
	if params.Orders == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order repo is required")
	}
	return &service{
		products: params.Products,
		profiles: params.Profiles,
		orders:   params.Orders,
	}, nil
}

// Summary runs the reads concurrently. The first failing read fails the
// whole summary; partial results are never returned.
func (s *service) Summary(ctx context.Context) (*Summary, error) {
	var out Summary
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := s.products.Count(gctx)
		if err != nil {
			return pkgerrors.Store(err, "count products")
		}
		out.Stats.TotalProducts = n
		return nil
	})
	g.Go(func() error {
		n, err := s.orders.Count(gctx)
		if err != nil {
			return pkgerrors.Store(err, "count orders")
		}
		out.Stats.TotalOrders = n
		return nil
	})
	g.Go(func() error {
		n, err := s.profiles.Count(gctx)
		if err != nil {
			return pkgerrors.Store(err, "count users")
		}
		out.Stats.TotalUsers = n
		return nil
	})
	g.Go(func() error {
		sum, err := s.orders.SumTotal(gctx, enums.OrderStatusDelivered)
		if err != nil {
			return pkgerrors.Store(err, "sum revenue")
		}
		out.Stats.TotalRevenue = sum
		return nil
	})
	g.Go(func() error {
		recent, err := s.orders.Recent(gctx, recentOrderLimit)
		if err != nil {
			return pkgerrors.Store(err, "recent orders")
		}
		out.RecentOrders = recent
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &out, nil
}
