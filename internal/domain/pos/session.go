package pos

// Session - явный контекст пользователя, передается во все вызовы синхронизации и хранилища
type Session struct {
	UserID string `json:"user_id"`
	Login  string `json:"login,omitempty"`
	Token  string `json:"token"`
}

func (s Session) Authenticated() bool {
	return s.UserID != "" && s.Token != ""
}
