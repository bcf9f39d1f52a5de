package service

import (
	"net/http"

	"patitas/shared/failure"
)

// The scheduling failure taxonomy. Each class tells the caller how to react:
// pick another date (closed day), pick a later hour (lead time), re-fetch
// availability (slot taken), or fix the payload. Conflicts are expected under
// normal concurrent load and are never treated as server faults.
var (
	ErrClosedDay = &failure.Failure{
		Code:    http.StatusUnprocessableEntity,
		Message: "the salon is closed on the requested date",
	}

	ErrLeadTime = &failure.Failure{
		Code:    http.StatusUnprocessableEntity,
		Message: "same-day reservations need more notice, pick a later hour",
	}

	ErrSlotTaken = &failure.Failure{
		Code:    http.StatusConflict,
		Message: "that hour was just reserved, pick another one",
	}

	ErrUnknownHour = &failure.Failure{
		Code:    http.StatusBadRequest,
		Message: "hour is not one of the salon's working hours",
	}

	ErrPetRequired = &failure.Failure{
		Code:    http.StatusBadRequest,
		Message: "a reservation needs a pet",
	}

	ErrNotYourPet = &failure.Failure{
		Code:    http.StatusForbidden,
		Message: "the pet does not belong to you",
	}

	ErrNotFound = &failure.Failure{
		Code:    http.StatusNotFound,
		Message: "appointment not found",
	}
)
