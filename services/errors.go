package services

import "errors"

// Общие ошибки, используемые в разных сервисах и маппинге HTTP.
var (
	// Ресурс не найден (универсальная)
	ErrNotFound = errors.New("requested resource not found")

	// Ошибки валидации и бизнес-правил
	ErrValidationFailed       = errors.New("validation failed")
	ErrUsernameRequired       = errors.New("username is required")
	ErrNameRequired           = errors.New("name is required")
	ErrPasswordRequired       = errors.New("password is required")
	ErrTournamentNameRequired = errors.New("tournament name is required")
	ErrInvalidRole            = errors.New("invalid user role")
	ErrResultRequired         = errors.New("game result is required")
	ErrPairingsRequired       = errors.New("round pairings are required")

	// Ошибки конфликтов
	ErrUsernameConflict       = errors.New("username is already in use")
	ErrCityNameConflict       = errors.New("city name already exists")
	ErrFormatNameConflict     = errors.New("format name already exists")
	ErrTournamentNameConflict = errors.New("tournament name already exists")

	// Ошибки аутентификации и авторизации
	ErrAuthInvalidCredentials = errors.New("invalid username or password")
	ErrUserBlocked            = errors.New("user is blocked")
	ErrForbiddenOperation     = errors.New("operation not allowed for the current user")

	// Ошибки, специфичные для сущностей
	ErrUserNotFound       = errors.New("user not found")
	ErrCityNotFound       = errors.New("city not found")
	ErrFormatNotFound     = errors.New("format not found")
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrGameNotFound       = errors.New("game not found")
	ErrNoGamesFound       = errors.New("no games found for this tournament")

	// Испорченные данные турнира (невалидный документ раундов и т.п.)
	ErrMalformedTournamentData = errors.New("malformed tournament data")

	// Хранилище файлов не сконфигурировано
	ErrStorageUnavailable = errors.New("file storage is not configured")
)
