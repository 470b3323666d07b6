package services

import (
	"context"

	"github.com/sm8ta/webike_rental_service/internal/core/domain"
	"github.com/sm8ta/webike_rental_service/internal/core/ports"

	"golang.org/x/sync/errgroup"
)

type DashboardService struct {
	userRepo    ports.UserRepository
	bikeRepo    ports.BikeRepository
	bookingRepo ports.BookingRepository
	logger      ports.LoggerPort
}

func NewDashboardService(
	userRepo ports.UserRepository,
	bikeRepo ports.BikeRepository,
	bookingRepo ports.BookingRepository,
	logger ports.LoggerPort,
) *DashboardService {
	return &DashboardService{
		userRepo:    userRepo,
		bikeRepo:    bikeRepo,
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// Stats counts users, bikes, bookings and confirmed bookings concurrently.
func (s *DashboardService) Stats(ctx context.Context) (*domain.DashboardStats, error) {
	var stats domain.DashboardStats
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		stats.TotalUsers, err = s.userRepo.CountUsers(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalBikes, err = s.bikeRepo.CountBikes(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalBookings, err = s.bookingRepo.CountBookings(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.ActiveBookings, err = s.bookingRepo.CountBookingsByStatus(gctx, domain.BookingConfirmed)
		return err
	})

	if err := g.Wait(); err != nil {
		s.logger.Error("Failed to compute dashboard stats", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, err
	}
	return &stats, nil
}
