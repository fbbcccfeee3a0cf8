package get_all_bookings

import (
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
// user_id, from, to (YYYY-MM-DD) опциональны
func ToServiceRequest(r *http.Request) (*models.ListBookingsRequest, error) {
	userID, err := handlers.QueryID(r, "user_id")
	if err != nil {
		return nil, err
	}

	from, err := handlers.QueryDate(r, "from")
	if err != nil {
		return nil, err
	}

	to, err := handlers.QueryDate(r, "to")
	if err != nil {
		return nil, err
	}

	return &models.ListBookingsRequest{
		UserID: userID,
		From:   from,
		To:     to,
	}, nil
}
