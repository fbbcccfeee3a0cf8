package booking

import (
	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor
type TxExecutor = dbmetrics.TxExecutor

// ConstraintNoOverlap имя ограничения, запрещающего пересечение бронирований
const ConstraintNoOverlap = "bookings_no_overlap"
