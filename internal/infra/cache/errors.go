package cache

import "errors"

// ErrCache возвращается при ошибке обращения к Redis
var ErrCache = errors.New("cache: redis operation failed")
