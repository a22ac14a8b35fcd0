package models

import (
	"fmt"
	"time"

	"github.com/m04kA/EquestrianHub/internal/domain"
	"github.com/m04kA/EquestrianHub/pkg/types"
)

// Request модели

// CreateTemplateRequest запрос на создание шаблона слота
type CreateTemplateRequest struct {
	DayOfWeek int    `json:"dayOfWeek"` // 0 = воскресенье
	StartTime string `json:"startTime"` // "HH:MM"
	EndTime   string `json:"endTime"`
	Active    *bool  `json:"active,omitempty"` // по умолчанию true
}

// UpdateTemplateRequest частичное обновление: меняются только переданные поля
type UpdateTemplateRequest struct {
	DayOfWeek *int    `json:"dayOfWeek,omitempty"`
	StartTime *string `json:"startTime,omitempty"`
	EndTime   *string `json:"endTime,omitempty"`
	Active    *bool   `json:"active,omitempty"`
}

// Response модели

// TemplateResponse шаблон слота
type TemplateResponse struct {
	ID              int64     `json:"id"`
	DayOfWeek       int       `json:"dayOfWeek"`
	DayName         string    `json:"dayName"`
	StartTime       string    `json:"startTime"`
	EndTime         string    `json:"endTime"`
	DurationMinutes int       `json:"durationMinutes"`
	Active          bool      `json:"active"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// TemplateListResponse список шаблонов
type TemplateListResponse struct {
	TimeSlots []TemplateResponse `json:"timeSlots"`
}

// ToDomainTemplate конвертирует CreateTemplateRequest в domain модель
func (r *CreateTemplateRequest) ToDomainTemplate() (*domain.TimeSlotTemplate, error) {
	start, err := parseTime("startTime", r.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := parseTime("endTime", r.EndTime)
	if err != nil {
		return nil, err
	}

	active := true
	if r.Active != nil {
		active = *r.Active
	}

	return &domain.TimeSlotTemplate{
		DayOfWeek: time.Weekday(r.DayOfWeek),
		StartTime: start,
		EndTime:   end,
		Active:    active,
	}, nil
}

// ApplyToTemplate применяет обновления к существующему шаблону
func (r *UpdateTemplateRequest) ApplyToTemplate(t *domain.TimeSlotTemplate) error {
	if r.DayOfWeek != nil {
		t.DayOfWeek = time.Weekday(*r.DayOfWeek)
	}
	if r.StartTime != nil {
		start, err := parseTime("startTime", *r.StartTime)
		if err != nil {
			return err
		}
		t.StartTime = start
	}
	if r.EndTime != nil {
		end, err := parseTime("endTime", *r.EndTime)
		if err != nil {
			return err
		}
		t.EndTime = end
	}
	if r.Active != nil {
		t.Active = *r.Active
	}
	return nil
}

// FromDomainTemplate конвертирует domain модель в DTO
func FromDomainTemplate(t *domain.TimeSlotTemplate) *TemplateResponse {
	if t == nil {
		return nil
	}
	return &TemplateResponse{
		ID:              t.ID,
		DayOfWeek:       int(t.DayOfWeek),
		DayName:         t.DayOfWeek.String(),
		StartTime:       t.StartTime.String(),
		EndTime:         t.EndTime.String(),
		DurationMinutes: t.DurationMinutes(),
		Active:          t.Active,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}

// FromDomainTemplateList конвертирует список domain моделей в DTO
func FromDomainTemplateList(templates []*domain.TimeSlotTemplate) *TemplateListResponse {
	resp := &TemplateListResponse{
		TimeSlots: make([]TemplateResponse, 0, len(templates)),
	}
	for _, t := range templates {
		if dto := FromDomainTemplate(t); dto != nil {
			resp.TimeSlots = append(resp.TimeSlots, *dto)
		}
	}
	return resp
}

func parseTime(field, value string) (types.TimeString, error) {
	ts, err := types.NewTimeStringFromString(value)
	if err != nil {
		return types.TimeString{}, fmt.Errorf("%w: %s must be HH:MM", domain.ErrValidation, field)
	}
	return ts, nil
}
