package projects

import "errors"

var (
	// ErrProjectNotFound возвращается, когда настройки проекта не найдены
	ErrProjectNotFound = errors.New("service.projects: project not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("service.projects: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service.projects: internal error")
)
