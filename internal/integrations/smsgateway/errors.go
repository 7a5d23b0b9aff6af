package smsgateway

import "errors"

var (
	// ErrSendFailed возвращается, когда шлюз не принял сообщение
	// Ошибки отправки логируются и никогда не откатывают бизнес-операцию
	ErrSendFailed = errors.New("smsgateway: failed to send message")

	// ErrInvalidResponse возвращается при неожиданном ответе шлюза
	ErrInvalidResponse = errors.New("smsgateway: invalid response")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("smsgateway: internal error")
)
