package checkout_order

import (
	"fmt"
	"strings"

	"github.com/m04kA/EquestrianHub/internal/domain"
)

func validateRequest(req *Request, maxProofBytes int) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}
	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes longer than %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	proof := req.Proof
	if len(proof.Data) == 0 {
		return fmt.Errorf("%w: payment proof is required", ErrInvalidInput)
	}
	if _, ok := domain.AllowedProofContentTypes[strings.ToLower(proof.ContentType)]; !ok {
		return fmt.Errorf("%w: payment proof must be JPEG, PNG, WEBP or PDF", ErrInvalidInput)
	}
	if maxProofBytes > 0 && len(proof.Data) > maxProofBytes {
		return fmt.Errorf("%w: payment proof exceeds %d bytes", ErrInvalidInput, maxProofBytes)
	}
	return nil
}

// checkLines каждая строка корзины должна ссылаться на существующий активный товар
func checkLines(lines []domain.CartLine, products map[int64]*domain.Product) error {
	for _, line := range lines {
		p, ok := products[line.ProductID]
		if !ok || !p.Active {
			return fmt.Errorf("%w: product id=%d", ErrProductUnavailable, line.ProductID)
		}
		if line.Quantity <= 0 {
			return fmt.Errorf("%w: quantity for product id=%d must be positive", ErrInvalidInput, line.ProductID)
		}
	}
	return nil
}
