package syncer

// Result - итог операции синхронизации
type Result struct {
	Success bool     `json:"success"`
	Errors  []string `json:"errors"`
	Synced  int      `json:"synced"`
}

func failed(err error) Result {
	return Result{Errors: []string{err.Error()}}
}

// PullResult - записи, полученные с сервера, уже помеченные synced=true
type PullResult[T any] struct {
	Records []T
	Errors  []string
}
