package health

type Input struct{}

type Output struct {
	Body Response
}

type Response struct {
	Status   string `json:"status" example:"Ok" doc:"Сервер принимает запросы"`
	Database string `json:"database" example:"up" doc:"Состояние базы данных"`
}
