package commands

import (
	"context"
	"log/slog"

	"space-booking/internal/domain/space"
	"space-booking/internal/pkg/clock"
	"space-booking/internal/pkg/errs"
	"space-booking/internal/usecase/shared"
)

type CreateSpaceInput struct {
	Name       string
	Category   string
	Capacity   int
	HourlyRate float64
}

type SpaceCommands interface {
	Create(ctx context.Context, in CreateSpaceInput) (*space.Space, error)
}

type spaceUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewSpaceUseCase(uow shared.UnitOfWork, clk clock.Clock) SpaceCommands {
	return &spaceUseCaseImpl{uow: uow, clock: clk}
}

func (uc *spaceUseCaseImpl) Create(ctx context.Context, in CreateSpaceInput) (*space.Space, error) {
	category, err := space.NewCategory(in.Category)
	if err != nil {
		return nil, err
	}
	sp, err := space.NewSpace(in.Name, category, in.Capacity, in.HourlyRate, uc.clock.Now())
	if err != nil {
		return nil, err
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Spaces().Create(ctx, sp); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("space created",
		"space_id", sp.ID().String(),
		"category", sp.Category().String())
	return sp, nil
}
