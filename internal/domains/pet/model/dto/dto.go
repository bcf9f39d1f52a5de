package dto

import (
	"mime/multipart"

	"github.com/google/uuid"

	"patitas/internal/domains/pet/model"
	"patitas/shared"
	gDto "patitas/shared/dto"
	gModel "patitas/shared/model"
	"patitas/shared/timezone"
)

// CreatePetRequest registers a pet. OwnerID is honored only for admin
// callers; a client always registers pets under their own account.
type CreatePetRequest struct {
	Name      string                `json:"name"     validate:"required,max=100"`
	Species   string                `json:"species"  validate:"required,max=50"`
	Breed     *string               `json:"breed"    validate:"omitempty,max=100"`
	OwnerID   *string               `json:"owner_id" validate:"omitempty,uuid"`
	Notes     *string               `json:"notes"    validate:"omitempty,max=500"`
	Photo     *multipart.FileHeader `json:"photo"    validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	PhotoFile multipart.File        `json:"-"`
}

func (c *CreatePetRequest) ToModel(ownerID, user, photoURL string) model.Pet {
	return model.Pet{
		ID:      uuid.NewString(),
		Name:    c.Name,
		Species: c.Species,
		Breed:   c.Breed,
		OwnerID: ownerID,
		Photo:   photoURL,
		Notes:   c.Notes,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdatePetRequest struct {
	Name      string                `db:"name"    json:"name"    validate:"omitempty,max=100"`
	Species   string                `db:"species" json:"species" validate:"omitempty,max=50"`
	Breed     *string               `db:"breed"   json:"breed"   validate:"omitempty,max=100"`
	Notes     *string               `db:"notes"   json:"notes"   validate:"omitempty,max=500"`
	Photo     *multipart.FileHeader `json:"photo" validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	PhotoFile multipart.File        `json:"-"`
}

type PetResponse struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Species string  `json:"species"`
	Breed   *string `json:"breed,omitempty"`
	OwnerID string  `json:"owner_id"`
	Photo   string  `json:"photo"`
	Notes   *string `json:"notes,omitempty"`
	gDto.Metadata
}

func (r *PetResponse) FromModel(mod model.Pet) {
	r.ID = mod.ID
	r.Name = mod.Name
	r.Species = mod.Species
	r.Breed = mod.Breed
	r.OwnerID = mod.OwnerID
	r.Photo = mod.Photo
	r.Notes = mod.Notes
	r.Metadata.FromModel(mod.Metadata)
}

type GetPetsResponse struct {
	Pets      []PetResponse `json:"pets"`
	TotalPage int           `json:"total_page"`
	TotalData int           `json:"total_data"`
}

func (r *GetPetsResponse) FromModels(models []model.Pet, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Pets = make([]PetResponse, len(models))
	for i, mod := range models {
		r.Pets[i].FromModel(mod)
	}
}
