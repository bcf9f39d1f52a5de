package dto

import (
	"time"

	"github.com/google/uuid"

	"patitas/internal/domains/appointment/model"
	"patitas/internal/domains/appointment/schedule"
	"patitas/shared"
	gDto "patitas/shared/dto"
	gModel "patitas/shared/model"
	"patitas/shared/timezone"
)

// ReserveRequest is a client (or admin-assisted) reservation. Date arrives in
// ISO form straight from a date input. OwnerID and Blocked are honored only
// for admin callers; for clients the service overwrites them.
type ReserveRequest struct {
	Date    string  `json:"date"     validate:"required"`
	Hour    string  `json:"hour"     validate:"required,len=2"`
	PetID   *string `json:"pet_id"   validate:"omitempty,uuid"`
	OwnerID *string `json:"owner_id" validate:"omitempty,uuid"`
	Blocked bool    `json:"blocked"  validate:"omitempty"`
	Label   *string `json:"label"    validate:"omitempty,max=120"`
	Notes   *string `json:"notes"    validate:"omitempty,max=500"`
}

func (r *ReserveRequest) ToModel(date time.Time, ownerID string, blocked bool, user string) model.Appointment {
	petID := r.PetID
	if blocked {
		petID = nil
	}

	var label *string
	if blocked {
		label = r.Label
	}

	return model.Appointment{
		ID:          uuid.NewString(),
		Date:        date,
		Hour:        r.Hour,
		PetID:       petID,
		OwnerID:     ownerID,
		Blocked:     blocked,
		ClientLabel: label,
		Status:      model.StatusPending,
		Notes:       r.Notes,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

// BlockHourRequest closes a single hour of the calendar. Label records why the
// hour was closed ("vacation", "urgent unavailability", ...).
type BlockHourRequest struct {
	Date  string `json:"date"  validate:"required"`
	Hour  string `json:"hour"  validate:"required,len=2"`
	Label string `json:"label" validate:"required,max=120"`
}

// BlockDayRequest closes every still-free hour of a date in one sweep.
type BlockDayRequest struct {
	Date  string `json:"date"  validate:"required"`
	Label string `json:"label" validate:"required,max=120"`
}

func blockModel(date time.Time, hour, label, adminID string) model.Appointment {
	labelCopy := label

	return model.Appointment{
		ID:          uuid.NewString(),
		Date:        date,
		Hour:        hour,
		OwnerID:     adminID,
		Blocked:     true,
		ClientLabel: &labelCopy,
		Status:      model.StatusPending,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  adminID,
			ModifiedBy: adminID,
		},
	}
}

func (r *BlockHourRequest) ToModel(date time.Time, adminID string) model.Appointment {
	return blockModel(date, r.Hour, r.Label, adminID)
}

func (r *BlockDayRequest) ToModel(date time.Time, hour, adminID string) model.Appointment {
	return blockModel(date, hour, r.Label, adminID)
}

type AppointmentResponse struct {
	ID          string  `json:"id"`
	Date        string  `json:"date"`
	Hour        string  `json:"hour"`
	PetID       *string `json:"pet_id,omitempty"`
	PetName     *string `json:"pet_name,omitempty"`
	OwnerID     string  `json:"owner_id"`
	Blocked     bool    `json:"blocked"`
	ClientLabel *string `json:"client_label,omitempty"`
	Status      string  `json:"status"`
	Notes       *string `json:"notes,omitempty"`
	gDto.Metadata
}

func (r *AppointmentResponse) FromModel(mod model.Appointment) {
	r.ID = mod.ID
	r.Date = schedule.FormatDate(mod.Date)
	r.Hour = mod.Hour
	r.PetID = mod.PetID
	r.PetName = mod.PetName
	r.OwnerID = mod.OwnerID
	r.Blocked = mod.Blocked
	r.ClientLabel = mod.ClientLabel
	r.Status = mod.Status
	r.Notes = mod.Notes
	r.Metadata.FromModel(mod.Metadata)
}

type GetAppointmentsResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	TotalPage    int                   `json:"total_page"`
	TotalData    int                   `json:"total_data"`
}

func (r *GetAppointmentsResponse) FromModels(models []model.Appointment, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Appointments = make([]AppointmentResponse, len(models))
	for i, mod := range models {
		r.Appointments[i].FromModel(mod)
	}
}

// BlockDayResponse reports the per-hour outcome of a day sweep. The sweep is
// best-effort: hours already taken are skipped, hours lost to a concurrent
// reservation are reported as failed, and neither aborts the rest.
type BlockDayResponse struct {
	Date    string   `json:"date"`
	Blocked []string `json:"blocked"`
	Skipped []string `json:"skipped"`
	Failed  []string `json:"failed"`
}

// AvailabilityResponse lists the still-bookable hour labels of a date,
// ascending. An empty list means the salon is closed or fully booked.
type AvailabilityResponse struct {
	Date  string   `json:"date"`
	Hours []string `json:"hours"`
}
