package commands

//go:generate mockgen -destination=../../../tests/mock/commands/mock_commands.go -package=commandsmock space-booking/internal/usecase/commands ReservationCommands,SpaceCommands,UserCommands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"space-booking/internal/domain/reservation"
	"space-booking/internal/domain/space"
	"space-booking/internal/domain/user"
	"space-booking/internal/pkg/clock"
	"space-booking/internal/pkg/errs"
	"space-booking/internal/pkg/metrics"
	"space-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateReservationInput struct {
	SpaceID uuid.UUID
	UserID  uuid.UUID
	Start   time.Time
	End     time.Time
}

type ReservationCommands interface {
	Create(ctx context.Context, in CreateReservationInput) (*reservation.Reservation, error)
	Cancel(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status reservation.Status) (*reservation.Reservation, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type reservationUseCaseImpl struct {
	uow      shared.UnitOfWork
	services *reservation.Services
	clock    clock.Clock
	metrics  *metrics.Metrics
}

func NewReservationUseCase(
	uow shared.UnitOfWork,
	clk clock.Clock,
	pricing reservation.PriceCalculator,
	m *metrics.Metrics,
) ReservationCommands {
	return &reservationUseCaseImpl{
		uow: uow,
		services: &reservation.Services{
			Clock:           clk,
			PriceCalculator: pricing,
		},
		clock:   clk,
		metrics: m,
	}
}

// Create checks space, user, range and conflicts in that order before writing
// anything. The space stays locked from lookup to commit.
func (uc *reservationUseCaseImpl) Create(ctx context.Context, in CreateReservationInput) (*reservation.Reservation, error) {
	var created *reservation.Reservation
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		sp, err := tx.Spaces().FindByIDForUpdate(ctx, in.SpaceID)
		if err != nil {
			return shared.MapRepoErr(err, space.ErrSpaceNotFound)
		}
		if _, err := tx.Users().FindByID(ctx, in.UserID); err != nil {
			return shared.MapRepoErr(err, user.ErrUserNotFound)
		}

		slot, err := reservation.NewTimeSlot(in.Start, in.End)
		if err != nil {
			return err
		}

		existing, err := tx.Reservations().ListByIDs(ctx, sp.ReservationIDs())
		if err != nil {
			return shared.MapRepoErr(err, space.ErrSpaceNotFound)
		}
		if conflict := reservation.FindConflict(existing, slot); conflict != nil {
			return errs.Wrapf(reservation.ErrReservationConflict,
				"space %s is reserved by %s during %s", sp.ID(), conflict.ID(), conflict.TimeSlot())
		}

		res, err := reservation.NewReservation(uc.services, sp, in.UserID, slot)
		if err != nil {
			return err
		}

		if err := tx.Reservations().Create(ctx, res); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if err := tx.Spaces().AppendReservation(ctx, sp.ID(), res.ID()); err != nil {
			return shared.MapRepoErr(err, space.ErrSpaceNotFound)
		}
		if err := tx.Users().AppendReservation(ctx, in.UserID, res.ID()); err != nil {
			return shared.MapRepoErr(err, user.ErrUserNotFound)
		}

		created = res
		return nil
	})

	uc.metrics.RecordReservation(createOutcome(err))
	if err != nil {
		return nil, err
	}

	slog.Info("reservation created",
		"reservation_id", created.ID().String(),
		"space_id", created.SpaceID().String(),
		"user_id", created.UserID().String(),
		"total_price", created.TotalPrice())
	return created, nil
}

// Cancel keeps the reservation listed on its space and user.
func (uc *reservationUseCaseImpl) Cancel(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	var cancelled *reservation.Reservation
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := tx.Reservations().FindByID(ctx, id)
		if err != nil {
			return shared.MapRepoErr(err, reservation.ErrReservationNotFound)
		}

		res.Cancel(uc.clock.Now())
		if err := tx.Reservations().UpdateStatus(ctx, res); err != nil {
			return shared.MapRepoErr(err, reservation.ErrReservationNotFound)
		}

		cancelled = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.RecordStatusChange(reservation.StatusCancelled.String())
	slog.Info("reservation cancelled", "reservation_id", id.String())
	return cancelled, nil
}

// UpdateStatus accepts any transition, including out of CANCELLED.
func (uc *reservationUseCaseImpl) UpdateStatus(ctx context.Context, id uuid.UUID, status reservation.Status) (*reservation.Reservation, error) {
	if !status.IsValid() {
		return nil, reservation.ErrInvalidStatus
	}

	var updated *reservation.Reservation
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := tx.Reservations().FindByID(ctx, id)
		if err != nil {
			return shared.MapRepoErr(err, reservation.ErrReservationNotFound)
		}

		if err := res.UpdateStatus(status, uc.clock.Now()); err != nil {
			return err
		}
		if err := tx.Reservations().UpdateStatus(ctx, res); err != nil {
			return shared.MapRepoErr(err, reservation.ErrReservationNotFound)
		}

		updated = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.RecordStatusChange(status.String())
	slog.Info("reservation status updated",
		"reservation_id", id.String(),
		"status", status.String())
	return updated, nil
}

// Delete removes the reservation and its entries in the space and user lists.
func (uc *reservationUseCaseImpl) Delete(ctx context.Context, id uuid.UUID) error {
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := tx.Reservations().FindByID(ctx, id)
		if err != nil {
			return shared.MapRepoErr(err, reservation.ErrReservationNotFound)
		}

		if err := tx.Reservations().Delete(ctx, id); err != nil {
			return shared.MapRepoErr(err, reservation.ErrReservationNotFound)
		}
		if err := tx.Spaces().RemoveReservation(ctx, res.SpaceID(), id); err != nil {
			return shared.MapRepoErr(err, space.ErrSpaceNotFound)
		}
		if err := tx.Users().RemoveReservation(ctx, res.UserID(), id); err != nil {
			return shared.MapRepoErr(err, user.ErrUserNotFound)
		}
		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("reservation deleted", "reservation_id", id.String())
	return nil
}

func createOutcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeCreated
	case errors.Is(err, errs.ErrConflict):
		return metrics.OutcomeConflict
	case errors.Is(err, errs.ErrInvalidRange):
		return metrics.OutcomeInvalidRange
	case errors.Is(err, errs.ErrNotFound):
		return metrics.OutcomeNotFound
	default:
		return metrics.OutcomeError
	}
}
