package checkout_order

// PaymentProof загруженный документ
type PaymentProof struct {
	FileName    string
	ContentType string
	Data        []byte
}

// Request оформление заказа из корзины пользователя
type Request struct {
	UserID         int64
	PickupLocation string // пусто = место по умолчанию
	Notes          *string
	Proof          PaymentProof
}
