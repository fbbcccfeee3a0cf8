package export

import "errors"

// ErrExport возвращается при ошибке формирования файла
var ErrExport = errors.New("export: failed to build workbook")
