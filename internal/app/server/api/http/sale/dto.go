package sale

import "shopkeeper/internal/domain/sale"

type listInput struct{}

type listOutput struct {
	Body ListResponse
}

type ListResponse struct {
	Status string        `json:"status"`
	Items  []sale.Record `json:"items"`
}

type createInput struct {
	Body sale.Record
}

type createOutput struct {
	Body CreateResponse
}

type CreateResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type lookupInput struct {
	Key string `query:"key" required:"true" maxLength:"200" doc:"Клиентский id продажи"`
}

type lookupOutput struct {
	Body LookupResponse
}

type LookupResponse struct {
	Found  bool   `json:"found"`
	Status string `json:"status"`
}
