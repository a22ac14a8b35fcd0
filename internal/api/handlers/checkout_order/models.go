package checkout_order

import (
	"github.com/m04kA/EquestrianHub/internal/api/handlers"
	checkoutOrder "github.com/m04kA/EquestrianHub/internal/usecase/checkout_order"
)

// CheckoutRequest HTTP request model
type CheckoutRequest struct {
	PickupLocation string                       `json:"pickupLocation,omitempty"`
	Notes          *string                      `json:"notes,omitempty"`
	PaymentProof   handlers.PaymentProofPayload `json:"paymentProof"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CheckoutRequest) ToUseCaseRequest(userID int64) (*checkoutOrder.Request, error) {
	contentType, data, err := r.PaymentProof.Decode()
	if err != nil {
		return nil, err
	}

	return &checkoutOrder.Request{
		UserID:         userID,
		PickupLocation: r.PickupLocation,
		Notes:          r.Notes,
		Proof: checkoutOrder.PaymentProof{
			FileName:    r.PaymentProof.FileName,
			ContentType: contentType,
			Data:        data,
		},
	}, nil
}
