package remote

import (
	"context"
	"net/http"
	"strconv"

	"shopkeeper/internal/domain/pos"
)

type credentials struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

func (c *Client) Register(ctx context.Context, login, password string) (int, error) {
	var resp struct {
		ID int `json:"user_id"`
	}

	err := c.call(ctx, "", http.MethodPost, "/api/v1/user/register", credentials{login, password}, &resp)
	if err != nil {
		return 0, err
	}

	return resp.ID, nil
}

// Login возвращает сессию с токеном и идентификатором пользователя
func (c *Client) Login(ctx context.Context, login, password string) (pos.Session, error) {
	var resp struct {
		Token  string `json:"token"`
		UserID int    `json:"user_id"`
	}

	err := c.call(ctx, "", http.MethodPost, "/api/v1/user/login", credentials{login, password}, &resp)
	if err != nil {
		return pos.Session{}, err
	}

	return pos.Session{
		UserID: strconv.Itoa(resp.UserID),
		Login:  login,
		Token:  resp.Token,
	}, nil
}

// CurrentUser проверяет токен сессии на сервере
func (c *Client) CurrentUser(ctx context.Context, sess pos.Session) (pos.Session, error) {
	var resp struct {
		UserID int    `json:"user_id"`
		Login  string `json:"login"`
	}

	if err := c.call(ctx, sess.Token, http.MethodGet, "/api/v1/user/me", nil, &resp); err != nil {
		return pos.Session{}, err
	}

	return pos.Session{
		UserID: strconv.Itoa(resp.UserID),
		Login:  resp.Login,
		Token:  sess.Token,
	}, nil
}
