package crm

import "fmt"

// Ошибки CRM-клиента. Обе ретраябельны для retry policy в syncer:
// политика намеренно не различает 4xx и 5xx (поведение исходной
// системы; см. DESIGN.md).

// RemoteRejectedError — CRM ответил не-2xx статусом.
type RemoteRejectedError struct {
	// Status — HTTP-код ответа.
	Status int
}

func (e *RemoteRejectedError) Error() string {
	return fmt.Sprintf("crm rejected request: HTTP %d", e.Status)
}

// TransportError — запрос до CRM не дошёл или ответ не был получен:
// connection refused, таймаут соединения/чтения, обрыв I/O.
type TransportError struct {
	Cause error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("crm transport failure: %v", e.Cause)
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}
