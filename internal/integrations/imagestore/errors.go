package imagestore

import "errors"

var (
	// ErrDeleteFailed возвращается, когда хранилище не смогло удалить файлы
	ErrDeleteFailed = errors.New("imagestore: failed to delete images")

	// ErrInvalidResponse возвращается при неожиданном ответе хранилища
	ErrInvalidResponse = errors.New("imagestore: invalid response")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("imagestore: internal error")
)
