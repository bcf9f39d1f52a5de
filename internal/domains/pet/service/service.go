package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"patitas/config"
	"patitas/infras/otel"
	"patitas/infras/s3"
	"patitas/internal/domains/pet/model"
	"patitas/internal/domains/pet/model/dto"
	"patitas/internal/domains/pet/repository"
	"patitas/shared"
	"patitas/shared/cache"
	"patitas/shared/constant"
	gDto "patitas/shared/dto"
	"patitas/shared/failure"
)

const (
	cacheGetPet    = "pet:get"
	cacheGetAllPet = "pet:gets"
	cacheCountPet  = "pet:count"
)

type Pet interface {
	Create(ctx context.Context, req dto.CreatePetRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetPetsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.PetResponse, error)
	Update(ctx context.Context, req dto.UpdatePetRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.Pet
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
	s3    s3.S3
}

func New(repo repository.Pet, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, s3 s3.S3) Pet {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
		s3:    s3,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreatePetRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	// A client registers pets under their own account, whatever the payload
	// says. Admins may register on behalf of an owner.
	ownerID := user
	if req.OwnerID != nil && (role == constant.RoleAdmin || role == constant.RoleSuperAdmin) {
		ownerID = *req.OwnerID
	}

	photoURL := constant.Empty
	var uploadedObjectName string
	if req.Photo != nil {
		bucketName := s.cfg.External.S3.BucketName
		filename := uuid.NewString()

		parts := strings.Split(req.Photo.Filename, ".")
		if len(parts) > 1 {
			filename = fmt.Sprintf("%s.%s", filename, parts[len(parts)-1])
		}

		url, err := s.s3.UploadFile(ctx, bucketName, model.EntityName, req.PhotoFile, req.Photo, filename)
		if err != nil {
			log.Error().Err(err).Msg("failed to upload photo to S3")

			return fmt.Errorf("failed to upload photo: %w", err)
		}
		photoURL = url
		uploadedObjectName = filename
	}

	if err = s.repo.Insert(ctx, req.ToModel(ownerID, user, photoURL)); err != nil {
		if uploadedObjectName != constant.Empty {
			bucketName := s.cfg.External.S3.BucketName
			_ = s.s3.DeleteFile(ctx, bucketName, model.EntityName, uploadedObjectName)
		}

		return err
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllPet)
		shared.InvalidateCaches(c, s.cache, cacheCountPet)
	}()

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetPetsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllPet, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for pets")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count pets")

		return res, fmt.Errorf("failed to count pets: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get pets")

		return res, fmt.Errorf("failed to get pets: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save pets to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountPet, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for pet count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count pets")

		return res, fmt.Errorf("failed to count pets: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save pet count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.PetResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetPet, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for pet")

		return res, nil
	}

	pet, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get pet")

		return res, fmt.Errorf("failed to get pet: %w", err)
	}

	if pet.ID == constant.Empty {
		return res, failure.NotFound("pet not found") //nolint:wrapcheck
	}

	res.FromModel(pet)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save pet to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdatePetRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	currentPet, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check pet existence")

		return err
	}

	if currentPet.ID == constant.Empty {
		log.Error().Msg("pet not found")

		return failure.NotFound("pet not found")
	}

	if err = s.authorize(ctx, currentPet); err != nil {
		return err
	}

	return s.updateInternal(ctx, req, currentPet, user, filter)
}

func (s *serviceImpl) updateInternal(ctx context.Context, req dto.UpdatePetRequest, currentPet model.Pet, user string, filter gDto.FilterGroup) error {
	photoURL := constant.Empty
	var uploadedObjectName string
	bucketName := s.cfg.External.S3.BucketName

	if req.Photo != nil {
		filename := uuid.NewString()

		parts := strings.Split(req.Photo.Filename, ".")
		if len(parts) > 1 {
			filename = fmt.Sprintf("%s.%s", filename, parts[len(parts)-1])
		}

		url, err := s.s3.UploadFile(ctx, bucketName, model.EntityName, req.PhotoFile, req.Photo, filename)
		if err != nil {
			return fmt.Errorf("failed to upload photo: %w", err)
		}
		photoURL = url
		uploadedObjectName = filename
	}

	updatedFields := shared.TransformFields(req, user)
	if photoURL != constant.Empty {
		updatedFields[model.FieldPhoto] = photoURL
	}

	if err := s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update pet")

		if uploadedObjectName != constant.Empty {
			_ = s.s3.DeleteFile(ctx, bucketName, model.EntityName, uploadedObjectName)
		}

		return fmt.Errorf("failed to update pet: %w", err)
	}

	if photoURL != constant.Empty && currentPet.Photo != constant.Empty {
		oldObjectName := s.s3.GetObjectNameFromURL(bucketName, currentPet.Photo)
		if oldObjectName != constant.Empty {
			_ = s.s3.DeleteFile(ctx, bucketName, model.EntityName, oldObjectName)
		}
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetPet, currentPet.ID)); err != nil {
			log.Error().Err(err).Msg("failed to delete pet cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllPet)
		shared.InvalidateCaches(c, s.cache, cacheCountPet)
	}()

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	pet, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if pet exists")

		return fmt.Errorf("failed to check if pet exists: %w", err)
	}

	if pet.ID == constant.Empty {
		log.Error().Msg("pet not found")

		return failure.NotFound("pet not found") //nolint:wrapcheck
	}

	if err = s.authorize(ctx, pet); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete pet")

		return fmt.Errorf("failed to delete pet: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetPet, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete pet from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllPet)
		shared.InvalidateCaches(c, s.cache, cacheCountPet)
	}()

	return nil
}

// authorize allows admins and the pet's owner, nobody else.
func (s *serviceImpl) authorize(ctx context.Context, pet model.Pet) error {
	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	if role == constant.RoleAdmin || role == constant.RoleSuperAdmin {
		return nil
	}

	if pet.OwnerID != user {
		return failure.ForbiddenError //nolint:wrapcheck
	}

	return nil
}
