package create_reservation

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/EquestrianHub/internal/domain"
	"github.com/m04kA/EquestrianHub/pkg/types"
)

// validateRequest проверяет поля запроса, которые не требуют обращения к БД
func validateRequest(req *Request, today time.Time, maxProofBytes int) (*parsedRequest, error) {
	if req.UserID <= 0 {
		return nil, fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}
	if req.LessonTypeID <= 0 {
		return nil, fmt.Errorf("%w: lessonTypeId is required", ErrInvalidInput)
	}
	if req.WeeksBooked < domain.MinWeeksBooked || req.WeeksBooked > domain.MaxWeeksBooked {
		return nil, fmt.Errorf("%w: weeksBooked must be between %d and %d", ErrInvalidInput, domain.MinWeeksBooked, domain.MaxWeeksBooked)
	}
	if !req.TotalAmount.IsPositive() {
		return nil, fmt.Errorf("%w: totalAmount must be positive", ErrInvalidInput)
	}
	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return nil, fmt.Errorf("%w: notes longer than %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	date, err := domain.ParseDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}
	if date.Before(domain.DateOnly(today)) {
		return nil, fmt.Errorf("%w: date %s is in the past", ErrInvalidInput, req.Date)
	}

	start, err := types.NewTimeStringFromString(req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: startTime must be HH:MM", ErrInvalidInput)
	}
	end, err := types.NewTimeStringFromString(req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: endTime must be HH:MM", ErrInvalidInput)
	}
	if !start.IsBefore(end) {
		return nil, fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
	}

	if err := validateProof(req.Proof, maxProofBytes); err != nil {
		return nil, err
	}

	return &parsedRequest{date: date, start: start, end: end}, nil
}

func validateProof(proof PaymentProof, maxBytes int) error {
	if len(proof.Data) == 0 {
		return fmt.Errorf("%w: payment proof is required", ErrInvalidInput)
	}
	if _, ok := domain.AllowedProofContentTypes[strings.ToLower(proof.ContentType)]; !ok {
		return fmt.Errorf("%w: payment proof must be JPEG, PNG, WEBP or PDF", ErrInvalidInput)
	}
	if maxBytes > 0 && len(proof.Data) > maxBytes {
		return fmt.Errorf("%w: payment proof exceeds %d bytes", ErrInvalidInput, maxBytes)
	}
	return nil
}
