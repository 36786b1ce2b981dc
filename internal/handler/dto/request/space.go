package request

import (
	"time"

	"space-booking/internal/usecase/commands"
)

type CreateSpaceRequest struct {
	Name       string  `json:"name" binding:"required,max=255"`
	Category   string  `json:"category" binding:"required,oneof=DESK MEETING_ROOM PRIVATE_OFFICE"`
	Capacity   int     `json:"capacity" binding:"required,gt=0"`
	HourlyRate float64 `json:"hourlyRate" binding:"required,gt=0"`
}

func (r CreateSpaceRequest) ToInput() commands.CreateSpaceInput {
	return commands.CreateSpaceInput{
		Name:       r.Name,
		Category:   r.Category,
		Capacity:   r.Capacity,
		HourlyRate: r.HourlyRate,
	}
}

type AvailableSpacesQuery struct {
	StartTime time.Time `form:"startTime" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	EndTime   time.Time `form:"endTime" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
}
