package timeslots

import (
	"context"
	"errors"
	"fmt"

	timeslotRepo "github.com/m04kA/EquestrianHub/internal/infra/storage/timeslot"
	"github.com/m04kA/EquestrianHub/internal/service/timeslots/models"
)

// Service сервис еженедельных шаблонов слотов (администратор)
type Service struct {
	templateRepo TemplateRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса шаблонов
func NewService(templateRepo TemplateRepository, logger Logger) *Service {
	return &Service{
		templateRepo: templateRepo,
		logger:       logger,
	}
}

// Create создает новый шаблон слота
func (s *Service) Create(ctx context.Context, req *models.CreateTemplateRequest) (*models.TemplateResponse, error) {
	s.logger.Info("Create: creating time slot day=%d %s-%s", req.DayOfWeek, req.StartTime, req.EndTime)

	// 1. Валидируем входные данные
	template, err := req.ToDomainTemplate()
	if err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := template.Validate(); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 2. Сохраняем: дубликат отсекает уникальный ключ
	created, err := s.templateRepo.Create(ctx, template)
	if err != nil {
		if errors.Is(err, timeslotRepo.ErrTemplateExists) {
			s.logger.Warn("Create: time slot day=%d %s-%s already exists", req.DayOfWeek, req.StartTime, req.EndTime)
			return nil, ErrTemplateExists
		}
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created time slot id=%d", created.ID)
	return models.FromDomainTemplate(created), nil
}

// GetByID получает шаблон по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.TemplateResponse, error) {
	template, err := s.templateRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, timeslotRepo.ErrTemplateNotFound) {
			s.logger.Warn("GetByID: time slot id=%d not found", id)
			return nil, ErrTemplateNotFound
		}
		s.logger.Error("GetByID: repository error for time slot id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainTemplate(template), nil
}

// List все шаблоны, включая выключенные
func (s *Service) List(ctx context.Context) (*models.TemplateListResponse, error) {
	templates, err := s.templateRepo.List(ctx, true)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d time slots", len(templates))
	return models.FromDomainTemplateList(templates), nil
}

// Update частичное обновление шаблона
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateTemplateRequest) (*models.TemplateResponse, error) {
	s.logger.Info("Update: updating time slot id=%d", id)

	// 1. Получаем существующий шаблон
	template, err := s.templateRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, timeslotRepo.ErrTemplateNotFound) {
			s.logger.Warn("Update: time slot id=%d not found", id)
			return nil, ErrTemplateNotFound
		}
		s.logger.Error("Update: repository error for time slot id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	// 2. Применяем обновления и валидируем результат
	if err := req.ApplyToTemplate(template); err != nil {
		s.logger.Warn("Update: validation failed for time slot id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := template.Validate(); err != nil {
		s.logger.Warn("Update: validation failed for time slot id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 3. Сохраняем
	updated, err := s.templateRepo.Update(ctx, template)
	if err != nil {
		switch {
		case errors.Is(err, timeslotRepo.ErrTemplateNotFound):
			return nil, ErrTemplateNotFound
		case errors.Is(err, timeslotRepo.ErrTemplateExists):
			s.logger.Warn("Update: time slot id=%d collides with an existing one", id)
			return nil, ErrTemplateExists
		default:
			s.logger.Error("Update: repository error for time slot id=%d: %v", id, err)
			return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}
	}

	s.logger.Info("Update: successfully updated time slot id=%d", id)
	return models.FromDomainTemplate(updated), nil
}

// Delete удаляет шаблон. Существующие записи не затрагиваются
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.templateRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, timeslotRepo.ErrTemplateNotFound) {
			s.logger.Warn("Delete: time slot id=%d not found", id)
			return ErrTemplateNotFound
		}
		s.logger.Error("Delete: repository error for time slot id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted time slot id=%d", id)
	return nil
}
