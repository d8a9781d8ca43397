package get_available_slots

import (
	getAvailableSlots "github.com/hyukraeyo/reservation-app-sub000/internal/usecase/get_available_slots"
)

// SlotResponse is one grid position of the availability view
type SlotResponse struct {
	StartTime string `json:"startTime"` // "10:30"
	Available bool   `json:"available"`
}

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date            string          `json:"date"` // "2025-10-15"
	ServiceID       int64           `json:"serviceId"`
	DurationMinutes int             `json:"durationMinutes"`
	Slots           []*SlotResponse `json:"slots"`
}

// FromUseCaseResponse converts the usecase response to the HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]*SlotResponse, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = &SlotResponse{
			StartTime: slot.StartTime.String(),
			Available: slot.Available,
		}
	}

	return &AvailableSlotsResponse{
		Date:            resp.Date.String(),
		ServiceID:       resp.ServiceID,
		DurationMinutes: resp.DurationMinutes,
		Slots:           slots,
	}
}
