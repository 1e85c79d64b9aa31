package pos

import "errors"

// Тексты совпадают с сообщениями, которые попадают в результаты синхронизации
var (
	ErrUnauthenticated = errors.New("User not authenticated")
	ErrOffline         = errors.New("No internet connection")
)
