package orders

// NotesRequest тело PATCH /admin/orders/{id}/notes
type NotesRequest struct {
	Notes string `json:"notes"`
}
