package components

import (
	"space-booking/internal/handler"
	"space-booking/internal/handler/api"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewSpaceHandler,
		api.NewUserHandler,
		api.NewReservationHandler,
		handler.NewHandlers,
	),
	fx.Invoke(handler.NewRouter),
)
