package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"shopkeeper/internal/domain/pos"
)

var testSession = pos.Session{UserID: "7", Token: "tok"}

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL, 0, slog.Default())
}

func TestBaseURL(t *testing.T) {
	assert.Equal(t, "http://localhost:8080", BaseURL("localhost:8080", false))
	assert.Equal(t, "https://pos.example.com", BaseURL("pos.example.com", true))
}

func TestClient_Login(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/user/login", r.URL.Path)

		var body credentials
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "shop", body.Login)

		w.Write([]byte(`{"status":"Ok","token":"abc","user_id":7}`))
	})

	sess, err := c.Login(context.Background(), "shop", "secret")

	require.NoError(t, err)
	assert.Equal(t, pos.Session{UserID: "7", Login: "shop", Token: "abc"}, sess)
}

func TestClient_Login_StatusError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"status":"Error","error":"Invalid credentials"}`))
	})

	_, err := c.Login(context.Background(), "shop", "bad")

	assert.ErrorIs(t, err, ErrServer)
	assert.Contains(t, err.Error(), "Invalid credentials")
}

func TestClient_CurrentUser(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.Write([]byte(`{"status":"Ok","user_id":7,"login":"shop"}`))
	})

	sess, err := c.CurrentUser(context.Background(), testSession)

	require.NoError(t, err)
	assert.Equal(t, "7", sess.UserID)
	assert.Equal(t, "shop", sess.Login)
	assert.Equal(t, "tok", sess.Token)
}

func TestCollection_Find(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, PathCustomers+"/lookup", r.URL.Path)
		assert.Equal(t, "+16502530000", r.URL.Query().Get("key"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.Write([]byte(`{"status":"Ok","found":true}`))
	})

	found, err := Customers(c, "US").Find(context.Background(), testSession, pos.Customer{Phone: "(650) 253-0000"})

	require.NoError(t, err)
	assert.True(t, found)
}

func TestCollection_Insert(t *testing.T) {
	var got pos.Product
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"status":"Ok"}`))
	})

	p := pos.Product{Meta: pos.Meta{ID: "p1"}, Name: "Rice", Quantity: 3, SellingPrice: decimal.RequireFromString("1.50")}
	err := Products(c).Insert(context.Background(), testSession, p)

	require.NoError(t, err)
	assert.Equal(t, "Rice", got.Name)
	assert.True(t, p.SellingPrice.Equal(got.SellingPrice))
}

func TestCollection_Insert_ServerErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{name: "error field", status: http.StatusConflict, body: `{"status":"Error","error":"duplicate"}`, message: "duplicate"},
		{name: "huma detail", status: http.StatusUnprocessableEntity, body: `{"title":"Unprocessable","detail":"name is required"}`, message: "name is required"},
		{name: "no body", status: http.StatusBadGateway, body: ``, message: "status 502"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			err := Sales(c).Insert(context.Background(), testSession, pos.Sale{Meta: pos.Meta{ID: "s1"}})

			assert.ErrorIs(t, err, ErrServer)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestCollection_List(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, PathCreditTransactions, r.URL.Path)
		w.Write([]byte(`{"status":"Ok","items":[{"id":"credit_1","customerId":"c1","type":"sale","amount":"12.5"}]}`))
	})

	items, err := CreditTransactions(c).List(context.Background(), testSession)

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "credit_1", items[0].ID)
	assert.Equal(t, pos.TxnSale, items[0].Type)
	assert.True(t, decimal.RequireFromString("12.5").Equal(items[0].Amount))
}
