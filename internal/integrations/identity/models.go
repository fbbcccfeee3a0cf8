package identity

import "github.com/m04kA/SMC-ReservationService/internal/domain"

// Me ответ провайдера на GET /internal/auth/me
type Me struct {
	ID      int64 `json:"id"`
	IsAdmin bool  `json:"is_admin"`
}

// ToPrincipal конвертирует ответ провайдера в domain модель
func (m *Me) ToPrincipal() domain.Principal {
	return domain.Principal{UserID: m.ID, IsAdmin: m.IsAdmin}
}

// RoleAdmin значение claim role у администратора
const RoleAdmin = "admin"
