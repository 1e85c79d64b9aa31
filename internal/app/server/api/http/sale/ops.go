package sale

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

const basePath = "/api/v1/sales"

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "sales-list",
		Method:      http.MethodGet,
		Path:        basePath,
		Summary:     "Список продаж пользователя",
		Tags:        []string{"sales"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) createOp() huma.Operation {
	return huma.Operation{
		OperationID:   "sales-create",
		Method:        http.MethodPost,
		Path:          basePath,
		Summary:       "Сохранить продажу",
		Tags:          []string{"sales"},
		DefaultStatus: http.StatusCreated,
		Security:      []map[string][]string{{"bearer": {}}},
		Middlewares:   h.middleware,
	}
}

func (h *Handler) lookupOp() huma.Operation {
	return huma.Operation{
		OperationID: "sales-lookup",
		Method:      http.MethodGet,
		Path:        basePath + "/lookup",
		Summary:     "Проверить, есть ли запись на сервере",
		Tags:        []string{"sales"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}
