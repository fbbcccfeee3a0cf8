package availability

import (
	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// ConstraintNoOverlap имя ограничения, запрещающего пересечение окон одного дня
const ConstraintNoOverlap = "availability_windows_no_overlap"
