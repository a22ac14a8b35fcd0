package reservations

import (
	"net/url"

	"github.com/m04kA/EquestrianHub/internal/service/reservations/models"
)

// NotesRequest тело PATCH .../notes
type NotesRequest struct {
	Notes string `json:"notes"`
}

// ToListRequest фильтр админского списка из query параметров.
// status можно передать несколько раз или через запятую
func ToListRequest(query url.Values) *models.ListReservationsRequest {
	req := &models.ListReservationsRequest{Statuses: query["status"]}
	if from := query.Get("from"); from != "" {
		req.From = &from
	}
	if to := query.Get("to"); to != "" {
		req.To = &to
	}
	return req
}
