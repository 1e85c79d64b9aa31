package product

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

const basePath = "/api/v1/products"

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "products-list",
		Method:      http.MethodGet,
		Path:        basePath,
		Summary:     "Список товаров пользователя",
		Tags:        []string{"products"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) createOp() huma.Operation {
	return huma.Operation{
		OperationID:   "products-create",
		Method:        http.MethodPost,
		Path:          basePath,
		Summary:       "Сохранить товар",
		Tags:          []string{"products"},
		DefaultStatus: http.StatusCreated,
		Security:      []map[string][]string{{"bearer": {}}},
		Middlewares:   h.middleware,
	}
}

func (h *Handler) lookupOp() huma.Operation {
	return huma.Operation{
		OperationID: "products-lookup",
		Method:      http.MethodGet,
		Path:        basePath + "/lookup",
		Summary:     "Проверить, есть ли запись на сервере",
		Tags:        []string{"products"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}
