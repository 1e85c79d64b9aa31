package credit

import "shopkeeper/internal/domain/credit"

type listInput struct{}

type listOutput struct {
	Body ListResponse
}

type ListResponse struct {
	Status string          `json:"status"`
	Items  []credit.Record `json:"items"`
}

type createInput struct {
	Body credit.Record
}

type createOutput struct {
	Body CreateResponse
}

type CreateResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type lookupInput struct {
	Key string `query:"key" required:"true" maxLength:"200" doc:"Клиентский id операции"`
}

type lookupOutput struct {
	Body LookupResponse
}

type LookupResponse struct {
	Found  bool   `json:"found"`
	Status string `json:"status"`
}
