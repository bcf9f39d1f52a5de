package model

import "patitas/shared/model"

const (
	TableName  = "pets"
	EntityName = "pet"

	FieldID      = "id"
	FieldName    = "name"
	FieldSpecies = "species"
	FieldBreed   = "breed"
	FieldOwnerID = "owner_id"
	FieldPhoto   = "photo"
	FieldNotes   = "notes"
)

// Pet belongs to exactly one owner. Ownership gates who may book and cancel
// appointments for it.
type Pet struct {
	ID      string  `db:"id"`
	Name    string  `db:"name"`
	Species string  `db:"species"`
	Breed   *string `db:"breed"`
	OwnerID string  `db:"owner_id"`
	Photo   string  `db:"photo"`
	Notes   *string `db:"notes"`
	model.Metadata
}
