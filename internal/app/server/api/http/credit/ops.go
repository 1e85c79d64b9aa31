package credit

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

const basePath = "/api/v1/credit-transactions"

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "credit-transactions-list",
		Method:      http.MethodGet,
		Path:        basePath,
		Summary:     "Список кредитных операций пользователя",
		Tags:        []string{"credit"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) createOp() huma.Operation {
	return huma.Operation{
		OperationID:   "credit-transactions-create",
		Method:        http.MethodPost,
		Path:          basePath,
		Summary:       "Сохранить кредитную операцию",
		Tags:          []string{"credit"},
		DefaultStatus: http.StatusCreated,
		Security:      []map[string][]string{{"bearer": {}}},
		Middlewares:   h.middleware,
	}
}

func (h *Handler) lookupOp() huma.Operation {
	return huma.Operation{
		OperationID: "credit-transactions-lookup",
		Method:      http.MethodGet,
		Path:        basePath + "/lookup",
		Summary:     "Проверить, есть ли запись на сервере",
		Tags:        []string{"credit"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}
