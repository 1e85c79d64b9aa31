// POST /api/v1/user/register              регистрация (публичный)
// POST /api/v1/user/login                 логин (публичный)
// GET  /api/v1/user/me                    текущий пользователь (auth)
// GET  /api/v1/{kind}                     все записи пользователя (auth)
// POST /api/v1/{kind}                     сохранить запись (auth)
// GET  /api/v1/{kind}/lookup?key=         есть ли запись с таким ключом (auth)
//
// kind: products, customers, credit-transactions, sales

package api

import (
	"path"
	"reflect"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"golang.org/x/exp/slog"

	creditAPI "shopkeeper/internal/app/server/api/http/credit"
	customerAPI "shopkeeper/internal/app/server/api/http/customer"
	healthAPI "shopkeeper/internal/app/server/api/http/health"
	"shopkeeper/internal/app/server/api/http/middleware"
	"shopkeeper/internal/app/server/api/http/middleware/auth"
	"shopkeeper/internal/app/server/api/http/middleware/logger"
	productAPI "shopkeeper/internal/app/server/api/http/product"
	saleAPI "shopkeeper/internal/app/server/api/http/sale"
	userAPI "shopkeeper/internal/app/server/api/http/user"
	"shopkeeper/internal/domain/credit"
	"shopkeeper/internal/domain/customer"
	"shopkeeper/internal/domain/product"
	"shopkeeper/internal/domain/sale"
	"shopkeeper/internal/domain/session"
	"shopkeeper/internal/domain/user"
	"shopkeeper/internal/infrastructure/storage/postgres"
)

type Options struct {
	PhoneRegion string
}

type Handlers struct {
	Health   *healthAPI.Handler
	User     *userAPI.Handler
	Product  *productAPI.Handler
	Customer *customerAPI.Handler
	Credit   *creditAPI.Handler
	Sale     *saleAPI.Handler
}

// New создает *chi.Mux с ВСЕМИ операциями через huma.Register
func New(storage *postgres.Storage, opts Options, log *slog.Logger) *chi.Mux {
	mux := chi.NewMux()

	config := huma.DefaultConfig("Shopkeeper API", "1.0.0")
	config.Components.Schemas = huma.NewMapRegistry("#/components/schemas/", schemaNamer)
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {Type: "http", Scheme: "bearer"},
	}

	API := humachi.New(mux, config)

	h := handlers(storage, opts, log)
	h.Health.SetupRoutes(API)
	h.User.SetupRoutes(API)
	h.Product.SetupRoutes(API)
	h.Customer.SetupRoutes(API)
	h.Credit.SetupRoutes(API)
	h.Sale.SetupRoutes(API)

	return mux
}

func handlers(storage *postgres.Storage, opts Options, log *slog.Logger) *Handlers {
	pool := storage.Pool()

	sessionRepo := postgres.NewSessionRepository(pool, log)
	sessionService := session.NewService(sessionRepo, log)
	authMW := auth.New(sessionService, log)
	loggerMW := logger.New(log)
	middlewares := middleware.NewContainer()

	middlewares.Add(loggerMW.Middleware())
	healthHandler := healthAPI.NewHandler(storage, log, middlewares.GetAllAndClear())

	userRepo := postgres.NewUserRepository(pool, log)
	userService := user.NewService(userRepo, user.NewCredentialsValidator(), log)
	middlewares.Add(loggerMW.Middleware())
	public := middlewares.GetAllAndClear()
	userHandler := userAPI.NewHandler(userService, sessionService, log, public, protected(middlewares, authMW, loggerMW))

	productService := product.NewService(postgres.NewProductRepository(pool, log), log)
	productHandler := productAPI.NewHandler(productService, log, protected(middlewares, authMW, loggerMW))

	customerService := customer.NewService(postgres.NewCustomerRepository(pool, log), opts.PhoneRegion, log)
	customerHandler := customerAPI.NewHandler(customerService, log, protected(middlewares, authMW, loggerMW))

	creditService := credit.NewService(postgres.NewCreditRepository(pool, log), log)
	creditHandler := creditAPI.NewHandler(creditService, log, protected(middlewares, authMW, loggerMW))

	saleService := sale.NewService(postgres.NewSaleRepository(pool, log), log)
	saleHandler := saleAPI.NewHandler(saleService, log, protected(middlewares, authMW, loggerMW))

	return &Handlers{
		Health:   healthHandler,
		User:     userHandler,
		Product:  productHandler,
		Customer: customerHandler,
		Credit:   creditHandler,
		Sale:     saleHandler,
	}
}

func protected(c *middleware.Container, authMW *auth.Auth, loggerMW *logger.Logger) huma.Middlewares {
	c.Add(loggerMW.Middleware())
	c.Add(authMW.Middleware())
	return c.GetAllAndClear()
}

// schemaNamer добавляет имя пакета: Record есть в нескольких доменных пакетах
func schemaNamer(t reflect.Type, hint string) string {
	name := huma.DefaultSchemaNamer(t, hint)

	for t.Kind() == reflect.Pointer || t.Kind() == reflect.Slice || t.Kind() == reflect.Array || t.Kind() == reflect.Map {
		t = t.Elem()
	}
	if t.Name() == "" || t.PkgPath() == "" {
		return name
	}

	pkg := path.Base(t.PkgPath())
	return strings.ToUpper(pkg[:1]) + pkg[1:] + name
}
