package usecase

import (
	"context"
	"fmt"
	"time"

	"sauna-booking/internal/data/entity"
	"sauna-booking/internal/data/repository"
	"sauna-booking/internal/dto/request"
	"sauna-booking/internal/dto/response"
	"sauna-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AdminService covers the back-office tables the booking flow reads:
// blackout dates, the price table and the add-on catalogue.
type AdminService interface {
	ListClosures(ctx context.Context) ([]response.ClosureResponse, error)
	CreateClosure(ctx context.Context, req *request.CreateClosureRequest) (*response.ClosureResponse, error)
	DeleteClosure(ctx context.Context, id string) error

	ListPriceSettings(ctx context.Context) ([]response.PriceSettingResponse, error)
	UpsertPriceSetting(ctx context.Context, guestCount int, req *request.UpsertPriceSettingRequest) (*response.PriceSettingResponse, error)

	ListOptions(ctx context.Context) ([]response.OptionResponse, error)
	ListActiveOptions(ctx context.Context) ([]response.OptionResponse, error)
	CreateOption(ctx context.Context, req *request.CreateOptionRequest) (*response.OptionResponse, error)
	UpdateOption(ctx context.Context, id string, req *request.UpdateOptionRequest) (*response.OptionResponse, error)
}

type adminService struct {
	repo      *repository.Repository
	maxGuests int
	loc       *time.Location
	log       *zap.Logger
}

func NewAdminService(repo *repository.Repository, config *utils.Config, loc *time.Location, log *zap.Logger) AdminService {
	return &adminService{
		repo:      repo,
		maxGuests: config.Booking.MaxGuestCount,
		loc:       loc,
		log:       log.With(zap.String("service", "admin")),
	}
}

func (s *adminService) ListClosures(ctx context.Context) ([]response.ClosureResponse, error) {
	closures, err := s.repo.Closure.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list closures: %w", err)
	}

	responses := make([]response.ClosureResponse, len(closures))
	for i, closure := range closures {
		responses[i] = response.ClosureToResponse(closure)
	}
	return responses, nil
}

func (s *adminService) CreateClosure(ctx context.Context, req *request.CreateClosureRequest) (*response.ClosureResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	date, err := time.ParseInLocation("2006-01-02", req.Date, s.loc)
	if err != nil {
		return nil, validationErrorf("invalid date %s", req.Date)
	}

	closure := &entity.ShopClosure{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		ClosedDate: date,
		Reason:     req.Reason,
	}

	if err := s.repo.Closure.Create(ctx, closure); err != nil {
		return nil, fmt.Errorf("create closure: %w", err)
	}

	s.log.Info("Shop closure created", zap.String("date", req.Date))

	resp := response.ClosureToResponse(closure)
	return &resp, nil
}

func (s *adminService) DeleteClosure(ctx context.Context, id string) error {
	closureID, err := uuid.Parse(id)
	if err != nil {
		return validationErrorf("invalid closure ID %s", id)
	}

	if err := s.repo.Closure.Delete(ctx, closureID); err != nil {
		return fmt.Errorf("delete closure %s: %w", id, err)
	}

	s.log.Info("Shop closure deleted", zap.String("closure_id", id))
	return nil
}

func (s *adminService) ListPriceSettings(ctx context.Context) ([]response.PriceSettingResponse, error) {
	settings, err := s.repo.PriceSetting.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list price settings: %w", err)
	}

	responses := make([]response.PriceSettingResponse, len(settings))
	for i, setting := range settings {
		responses[i] = response.PriceSettingToResponse(setting)
	}
	return responses, nil
}

func (s *adminService) UpsertPriceSetting(ctx context.Context, guestCount int, req *request.UpsertPriceSettingRequest) (*response.PriceSettingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}
	if guestCount < 1 || guestCount > s.maxGuests {
		return nil, validationErrorf("guest count must be between 1 and %d", s.maxGuests)
	}

	setting := &entity.PriceSetting{
		GuestCount:     guestCount,
		PricePerPerson: req.PricePerPerson,
		UpdatedAt:      time.Now(),
	}

	if err := s.repo.PriceSetting.Upsert(ctx, setting); err != nil {
		return nil, fmt.Errorf("upsert price setting: %w", err)
	}

	s.log.Info("Price setting updated",
		zap.Int("guest_count", guestCount),
		zap.Int("price_per_person", req.PricePerPerson),
	)

	resp := response.PriceSettingToResponse(setting)
	return &resp, nil
}

func (s *adminService) ListOptions(ctx context.Context) ([]response.OptionResponse, error) {
	options, err := s.repo.Option.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list options: %w", err)
	}
	return optionsToResponses(options), nil
}

func (s *adminService) ListActiveOptions(ctx context.Context) ([]response.OptionResponse, error) {
	options, err := s.repo.Option.FindAllActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active options: %w", err)
	}
	return optionsToResponses(options), nil
}

func optionsToResponses(options []*entity.Option) []response.OptionResponse {
	responses := make([]response.OptionResponse, len(options))
	for i, option := range options {
		responses[i] = response.OptionToResponse(option)
	}
	return responses
}

func (s *adminService) CreateOption(ctx context.Context, req *request.CreateOptionRequest) (*response.OptionResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	now := time.Now()
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	option := &entity.Option{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:        req.Name,
		PricingMode: entity.OptionPricingMode(req.PricingMode),
		Price:       req.Price,
		IsActive:    active,
	}

	if err := s.repo.Option.Create(ctx, option); err != nil {
		return nil, fmt.Errorf("create option: %w", err)
	}

	s.log.Info("Option created", zap.String("name", req.Name))

	resp := response.OptionToResponse(option)
	return &resp, nil
}

func (s *adminService) UpdateOption(ctx context.Context, id string, req *request.UpdateOptionRequest) (*response.OptionResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	optionID, err := uuid.Parse(id)
	if err != nil {
		return nil, validationErrorf("invalid option ID %s", id)
	}

	option, err := s.repo.Option.FindByID(ctx, optionID)
	if err != nil {
		return nil, fmt.Errorf("find option %s: %w", id, err)
	}
	if option == nil {
		return nil, ErrNotFound
	}

	if req.Name != nil {
		option.Name = *req.Name
	}
	if req.PricingMode != nil {
		option.PricingMode = entity.OptionPricingMode(*req.PricingMode)
	}
	if req.Price != nil {
		option.Price = *req.Price
	}
	if req.IsActive != nil {
		option.IsActive = *req.IsActive
	}
	option.UpdatedAt = time.Now()

	if err := s.repo.Option.Update(ctx, option); err != nil {
		return nil, fmt.Errorf("update option %s: %w", id, err)
	}

	s.log.Info("Option updated", zap.String("option_id", id))

	resp := response.OptionToResponse(option)
	return &resp, nil
}
