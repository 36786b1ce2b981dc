//go:build unit

package commands_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"space-booking/internal/domain/reservation"
	"space-booking/internal/domain/space"
	"space-booking/internal/domain/user"
	"space-booking/internal/infra/memstore"
	"space-booking/internal/pkg/clock"
	"space-booking/internal/pkg/errs"
	"space-booking/internal/pkg/metrics"
	"space-booking/internal/usecase/commands"
	"space-booking/internal/usecase/shared"
	"space-booking/tests/common/builder"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
)

var day = time.Date(2030, 1, 7, 0, 0, 0, 0, time.UTC)

func at(hour, minute int) time.Time {
	return day.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

type ReservationCommandsTestSuite struct {
	suite.Suite
	ctx     context.Context
	store   *memstore.Store
	clock   *clock.MockClock
	metrics *metrics.Metrics

	spaces       commands.SpaceCommands
	users        commands.UserCommands
	reservations commands.ReservationCommands
}

func (s *ReservationCommandsTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = memstore.New()
	s.clock = clock.NewMockClock(day.Add(-24 * time.Hour))
	s.metrics = metrics.NewNop()

	s.spaces = commands.NewSpaceUseCase(s.store, s.clock)
	s.users = commands.NewUserUseCase(s.store, s.clock)
	s.reservations = commands.NewReservationUseCase(s.store, s.clock, reservation.NewHourlyPriceCalculator(), s.metrics)
}

func TestReservationCommandsSuite(t *testing.T) {
	suite.Run(t, new(ReservationCommandsTestSuite))
}

func (s *ReservationCommandsTestSuite) createSpace(rate float64) *space.Space {
	sp, err := s.spaces.Create(s.ctx, builder.NewSpaceBuilder().With(func(b *builder.SpaceBuilder) {
		b.HourlyRate = rate
	}).BuildCreateInput())
	s.Require().NoError(err)
	return sp
}

func (s *ReservationCommandsTestSuite) createUser() *user.User {
	u, err := s.users.Create(s.ctx, builder.NewUserBuilder().BuildCreateInput())
	s.Require().NoError(err)
	return u
}

func (s *ReservationCommandsTestSuite) book(spaceID, userID uuid.UUID, start, end time.Time) (*reservation.Reservation, error) {
	return s.reservations.Create(s.ctx, commands.CreateReservationInput{
		SpaceID: spaceID,
		UserID:  userID,
		Start:   start,
		End:     end,
	})
}

func (s *ReservationCommandsTestSuite) outcomes(outcome string) float64 {
	return testutil.ToFloat64(s.metrics.ReservationsTotal.WithLabelValues(outcome))
}

// ================================================================================
// Create
// ================================================================================

func (s *ReservationCommandsTestSuite) TestCreate() {
	s.Run("success: pending reservation linked to space and user", func() {
		sp := s.createSpace(10)
		u := s.createUser()

		res, err := s.book(sp.ID(), u.ID(), at(9, 0), at(10, 0))
		s.Require().NoError(err)

		s.Equal(reservation.StatusPending, res.Status())
		s.Equal(sp.ID(), res.SpaceID())
		s.Equal(u.ID(), res.UserID())
		s.Equal(10.0, res.TotalPrice())
		s.Equal(s.clock.Now(), res.CreatedAt())
		s.Equal(s.clock.Now(), res.UpdatedAt())

		s.Require().NoError(s.store.WithinReadOnly(s.ctx, func(ctx context.Context, tx shared.Tx) error {
			gotSpace, err := tx.Spaces().FindByID(ctx, sp.ID())
			s.Require().NoError(err)
			s.Equal([]uuid.UUID{res.ID()}, gotSpace.ReservationIDs())

			gotUser, err := tx.Users().FindByID(ctx, u.ID())
			s.Require().NoError(err)
			s.Equal([]uuid.UUID{res.ID()}, gotUser.ReservationIDs())
			return nil
		}))
	})

	s.Run("price is hourly rate times fractional hours", func() {
		sp := s.createSpace(20)
		u := s.createUser()

		res, err := s.book(sp.ID(), u.ID(), at(8, 0), at(10, 30))
		s.Require().NoError(err)
		s.Equal(50.0, res.TotalPrice())
	})

	s.Run("error: overlapping slot conflicts", func() {
		sp := s.createSpace(10)
		u := s.createUser()

		first, err := s.book(sp.ID(), u.ID(), at(9, 0), at(10, 0))
		s.Require().NoError(err)

		_, err = s.book(sp.ID(), u.ID(), at(9, 30), at(10, 30))
		s.Require().Error(err)
		s.True(errors.Is(err, errs.ErrConflict))
		s.True(errors.Is(err, reservation.ErrReservationConflict))
		s.Contains(err.Error(), first.ID().String())
	})

	// Closed intervals: a reservation ending at 10:00 blocks one starting at 10:00.
	s.Run("error: touching boundary conflicts", func() {
		sp := s.createSpace(10)
		u := s.createUser()

		_, err := s.book(sp.ID(), u.ID(), at(9, 0), at(10, 0))
		s.Require().NoError(err)

		_, err = s.book(sp.ID(), u.ID(), at(10, 0), at(11, 0))
		s.True(errors.Is(err, errs.ErrConflict))

		_, err = s.book(sp.ID(), u.ID(), at(8, 0), at(9, 0))
		s.True(errors.Is(err, errs.ErrConflict))
	})

	s.Run("other spaces are independent", func() {
		spA := s.createSpace(10)
		spB := s.createSpace(10)
		u := s.createUser()

		_, err := s.book(spA.ID(), u.ID(), at(9, 0), at(10, 0))
		s.Require().NoError(err)
		_, err = s.book(spB.ID(), u.ID(), at(9, 0), at(10, 0))
		s.NoError(err)
	})

	s.Run("error: start not before end is an invalid range", func() {
		sp := s.createSpace(10)
		u := s.createUser()

		cases := []struct {
			name       string
			start, end time.Time
		}{
			{name: "equal", start: at(9, 0), end: at(9, 0)},
			{name: "reversed", start: at(10, 0), end: at(9, 0)},
			{name: "reversed by a nanosecond", start: at(9, 0).Add(time.Nanosecond), end: at(9, 0)},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				_, err := s.book(sp.ID(), u.ID(), tc.start, tc.end)
				s.True(errors.Is(err, errs.ErrInvalidRange), "got %v", err)
			})
		}
	})

	s.Run("error: unknown space or user", func() {
		sp := s.createSpace(10)
		u := s.createUser()

		_, err := s.book(uuid.New(), u.ID(), at(9, 0), at(10, 0))
		s.True(errors.Is(err, space.ErrSpaceNotFound))
		s.True(errors.Is(err, errs.ErrNotFound))

		_, err = s.book(sp.ID(), uuid.New(), at(9, 0), at(10, 0))
		s.True(errors.Is(err, user.ErrUserNotFound))
	})

	s.Run("existence is checked before the range", func() {
		u := s.createUser()

		_, err := s.book(uuid.New(), u.ID(), at(10, 0), at(9, 0))
		s.True(errors.Is(err, errs.ErrNotFound))
		s.False(errors.Is(err, errs.ErrInvalidRange))
	})

	s.Run("failed create leaves no trace", func() {
		sp := s.createSpace(10)
		u := s.createUser()

		_, err := s.book(sp.ID(), u.ID(), at(9, 0), at(10, 0))
		s.Require().NoError(err)
		_, err = s.book(sp.ID(), u.ID(), at(9, 30), at(10, 30))
		s.Require().Error(err)

		s.Require().NoError(s.store.WithinReadOnly(s.ctx, func(ctx context.Context, tx shared.Tx) error {
			gotSpace, err := tx.Spaces().FindByID(ctx, sp.ID())
			s.Require().NoError(err)
			s.Len(gotSpace.ReservationIDs(), 1)

			gotUser, err := tx.Users().FindByID(ctx, u.ID())
			s.Require().NoError(err)
			s.Len(gotUser.ReservationIDs(), 1)
			return nil
		}))
	})
}

func (s *ReservationCommandsTestSuite) TestCreateRecordsOutcomes() {
	sp := s.createSpace(10)
	u := s.createUser()

	_, _ = s.book(sp.ID(), u.ID(), at(9, 0), at(10, 0))
	_, _ = s.book(sp.ID(), u.ID(), at(9, 0), at(10, 0))
	_, _ = s.book(sp.ID(), u.ID(), at(12, 0), at(11, 0))
	_, _ = s.book(uuid.New(), u.ID(), at(12, 0), at(13, 0))

	s.Equal(1.0, s.outcomes(metrics.OutcomeCreated))
	s.Equal(1.0, s.outcomes(metrics.OutcomeConflict))
	s.Equal(1.0, s.outcomes(metrics.OutcomeInvalidRange))
	s.Equal(1.0, s.outcomes(metrics.OutcomeNotFound))
}

func (s *ReservationCommandsTestSuite) TestConcurrentCreateOnlyOneWins() {
	sp := s.createSpace(10)
	u := s.createUser()

	const workers = 16
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.book(sp.ID(), u.ID(), at(9, 0), at(10, 0))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, errs.ErrConflict):
				conflicts++
			}
		}()
	}
	wg.Wait()

	s.Equal(1, succeeded)
	s.Equal(workers-1, conflicts)
}

// ================================================================================
// Cancel
// ================================================================================

func (s *ReservationCommandsTestSuite) TestCancel() {
	s.Run("cancellation frees the slot and keeps back-references", func() {
		sp := s.createSpace(10)
		u := s.createUser()

		r1, err := s.book(sp.ID(), u.ID(), at(9, 0), at(10, 0))
		s.Require().NoError(err)

		_, err = s.book(sp.ID(), u.ID(), at(9, 30), at(10, 30))
		s.Require().True(errors.Is(err, errs.ErrConflict))

		s.clock.Add(time.Minute)
		cancelled, err := s.reservations.Cancel(s.ctx, r1.ID())
		s.Require().NoError(err)
		s.Equal(reservation.StatusCancelled, cancelled.Status())
		s.Equal(s.clock.Now(), cancelled.UpdatedAt())
		s.Equal(r1.TotalPrice(), cancelled.TotalPrice())

		r2, err := s.book(sp.ID(), u.ID(), at(9, 30), at(10, 30))
		s.Require().NoError(err)

		s.Require().NoError(s.store.WithinReadOnly(s.ctx, func(ctx context.Context, tx shared.Tx) error {
			gotSpace, err := tx.Spaces().FindByID(ctx, sp.ID())
			s.Require().NoError(err)
			s.Equal([]uuid.UUID{r1.ID(), r2.ID()}, gotSpace.ReservationIDs())

			gotUser, err := tx.Users().FindByID(ctx, u.ID())
			s.Require().NoError(err)
			s.Equal([]uuid.UUID{r1.ID(), r2.ID()}, gotUser.ReservationIDs())
			return nil
		}))
	})

	s.Run("error: unknown reservation", func() {
		_, err := s.reservations.Cancel(s.ctx, uuid.New())
		s.True(errors.Is(err, reservation.ErrReservationNotFound))
		s.True(errors.Is(err, errs.ErrNotFound))
	})
}

// ================================================================================
// UpdateStatus
// ================================================================================

func (s *ReservationCommandsTestSuite) TestUpdateStatus() {
	s.Run("idempotent confirm", func() {
		sp := s.createSpace(10)
		u := s.createUser()
		res, err := s.book(sp.ID(), u.ID(), at(9, 0), at(10, 0))
		s.Require().NoError(err)

		first, err := s.reservations.UpdateStatus(s.ctx, res.ID(), reservation.StatusConfirmed)
		s.Require().NoError(err)
		second, err := s.reservations.UpdateStatus(s.ctx, res.ID(), reservation.StatusConfirmed)
		s.Require().NoError(err)

		s.Equal(reservation.StatusConfirmed, first.Status())
		s.Equal(first.Status(), second.Status())
		s.Equal(first.TotalPrice(), second.TotalPrice())
		s.Equal(first.TimeSlot(), second.TimeSlot())
	})

	s.Run("cancelled reservation can be revived", func() {
		sp := s.createSpace(10)
		u := s.createUser()
		res, err := s.book(sp.ID(), u.ID(), at(9, 0), at(10, 0))
		s.Require().NoError(err)

		_, err = s.reservations.Cancel(s.ctx, res.ID())
		s.Require().NoError(err)

		revived, err := s.reservations.UpdateStatus(s.ctx, res.ID(), reservation.StatusConfirmed)
		s.Require().NoError(err)
		s.Equal(reservation.StatusConfirmed, revived.Status())

		_, err = s.book(sp.ID(), u.ID(), at(9, 0), at(10, 0))
		s.True(errors.Is(err, errs.ErrConflict))
	})

	s.Run("setting CANCELLED frees the slot", func() {
		sp := s.createSpace(10)
		u := s.createUser()
		res, err := s.book(sp.ID(), u.ID(), at(9, 0), at(10, 0))
		s.Require().NoError(err)

		_, err = s.reservations.UpdateStatus(s.ctx, res.ID(), reservation.StatusCancelled)
		s.Require().NoError(err)

		_, err = s.book(sp.ID(), u.ID(), at(9, 0), at(10, 0))
		s.NoError(err)
	})

	s.Run("records status changes", func() {
		sp := s.createSpace(10)
		u := s.createUser()
		res, err := s.book(sp.ID(), u.ID(), at(15, 0), at(16, 0))
		s.Require().NoError(err)

		before := testutil.ToFloat64(s.metrics.ReservationStatusChanges.WithLabelValues("CONFIRMED"))
		_, err = s.reservations.UpdateStatus(s.ctx, res.ID(), reservation.StatusConfirmed)
		s.Require().NoError(err)
		after := testutil.ToFloat64(s.metrics.ReservationStatusChanges.WithLabelValues("CONFIRMED"))
		s.Equal(before+1, after)
	})

	s.Run("error: invalid status", func() {
		sp := s.createSpace(10)
		u := s.createUser()
		res, err := s.book(sp.ID(), u.ID(), at(18, 0), at(19, 0))
		s.Require().NoError(err)

		_, err = s.reservations.UpdateStatus(s.ctx, res.ID(), reservation.Status("ARCHIVED"))
		s.True(errors.Is(err, errs.ErrValidation))
	})

	s.Run("error: unknown reservation", func() {
		_, err := s.reservations.UpdateStatus(s.ctx, uuid.New(), reservation.StatusConfirmed)
		s.True(errors.Is(err, errs.ErrNotFound))
	})
}

// ================================================================================
// Delete
// ================================================================================

func (s *ReservationCommandsTestSuite) TestDelete() {
	s.Run("removes the reservation and both back-references", func() {
		sp := s.createSpace(10)
		u := s.createUser()
		r1, err := s.book(sp.ID(), u.ID(), at(9, 0), at(10, 0))
		s.Require().NoError(err)
		r2, err := s.book(sp.ID(), u.ID(), at(11, 0), at(12, 0))
		s.Require().NoError(err)

		s.Require().NoError(s.reservations.Delete(s.ctx, r1.ID()))

		s.Require().NoError(s.store.WithinReadOnly(s.ctx, func(ctx context.Context, tx shared.Tx) error {
			_, err := tx.Reservations().FindByID(ctx, r1.ID())
			s.Error(err)

			gotSpace, err := tx.Spaces().FindByID(ctx, sp.ID())
			s.Require().NoError(err)
			s.Equal([]uuid.UUID{r2.ID()}, gotSpace.ReservationIDs())

			gotUser, err := tx.Users().FindByID(ctx, u.ID())
			s.Require().NoError(err)
			s.Equal([]uuid.UUID{r2.ID()}, gotUser.ReservationIDs())
			return nil
		}))

		_, err = s.book(sp.ID(), u.ID(), at(9, 0), at(10, 0))
		s.NoError(err)
	})

	s.Run("error: unknown reservation", func() {
		err := s.reservations.Delete(s.ctx, uuid.New())
		s.True(errors.Is(err, reservation.ErrReservationNotFound))
	})
}
