package customer

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

const basePath = "/api/v1/customers"

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "customers-list",
		Method:      http.MethodGet,
		Path:        basePath,
		Summary:     "Список покупателей пользователя",
		Tags:        []string{"customers"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) createOp() huma.Operation {
	return huma.Operation{
		OperationID:   "customers-create",
		Method:        http.MethodPost,
		Path:          basePath,
		Summary:       "Сохранить покупателя",
		Tags:          []string{"customers"},
		DefaultStatus: http.StatusCreated,
		Security:      []map[string][]string{{"bearer": {}}},
		Middlewares:   h.middleware,
	}
}

func (h *Handler) lookupOp() huma.Operation {
	return huma.Operation{
		OperationID: "customers-lookup",
		Method:      http.MethodGet,
		Path:        basePath + "/lookup",
		Summary:     "Проверить, есть ли запись на сервере",
		Tags:        []string{"customers"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}
