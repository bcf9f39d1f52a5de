package model

import (
	"time"

	"patitas/shared/model"
)

const (
	TableName  = "appointments"
	EntityName = "appointment"

	FieldID          = "id"
	FieldDate        = "date"
	FieldHour        = "hour"
	FieldPetID       = "pet_id"
	FieldOwnerID     = "owner_id"
	FieldBlocked     = "blocked"
	FieldClientLabel = "client_label"
	FieldStatus      = "status"
	FieldNotes       = "notes"
)

const (
	StatusPending   = "pending"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

// Appointment is one slot of the salon calendar. (Date, Hour) is the natural
// key: a partial unique index over non-cancelled rows guarantees at most one
// active appointment per slot. A blocked slot is an administrative closure and
// carries no pet, only a ClientLabel explaining the closure.
type Appointment struct {
	ID          string    `db:"id"`
	Date        time.Time `db:"date"`
	Hour        string    `db:"hour"`
	PetID       *string   `db:"pet_id"`
	OwnerID     string    `db:"owner_id"`
	Blocked     bool      `db:"blocked"`
	ClientLabel *string   `db:"client_label"`
	Status      string    `db:"status"`
	Notes       *string   `db:"notes"`
	PetName     *string   `db:"pet_name" table:"pets" column:"name"`
	model.Metadata
}

func (a Appointment) GetJoinQuery() string {
	return "LEFT JOIN pets ON pets.id = appointments.pet_id"
}

// Active reports whether the appointment still occupies its slot.
func (a *Appointment) Active() bool {
	return a.Status != StatusCancelled
}
