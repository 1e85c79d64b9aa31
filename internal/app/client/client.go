package client

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	gosync "sync"
	"syscall"

	"golang.org/x/exp/slog"

	"shopkeeper/internal/app/client/config"
	"shopkeeper/internal/app/client/connectivity"
	"shopkeeper/internal/app/client/remote"
	"shopkeeper/internal/app/client/sales"
	"shopkeeper/internal/app/client/storage"
	"shopkeeper/internal/app/client/syncer"
	"shopkeeper/internal/domain/pos"
)

type App struct {
	config   *config.Config
	log      *slog.Logger
	store    *storage.Store
	remote   *remote.Client
	probe    *connectivity.Probe
	adapters *syncer.Adapters
	sync     *syncer.Orchestrator
	puller   *syncer.PullManager
	sales    *sales.Service
	session  pos.Session
	wg       gosync.WaitGroup
	cancel   context.CancelFunc
	mu       gosync.RWMutex
}

// New открывает локальное хранилище SQLite. Без него приложение не запускается:
// кэш в памяти потерял бы продажи при выходе из процесса
func New(cfg *config.Config, log *slog.Logger) (*App, error) {
	kv, err := storage.NewSQLiteKV(cfg.DataPath)
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть локальное хранилище %s: %w", cfg.DataPath, err)
	}

	app, err := newApp(cfg, log, kv)
	if err != nil {
		kv.Close()
		return nil, err
	}
	return app, nil
}

func newApp(cfg *config.Config, log *slog.Logger, kv storage.KV) (*App, error) {
	baseURL := remote.BaseURL(cfg.ServerAddress, cfg.EnableTLS)

	store := storage.New(kv, log)
	rc := remote.New(baseURL, cfg.HTTPTimeout, log)
	probe := connectivity.NewProbe(baseURL, cfg.ProbeTimeout, log)

	salesRemote := remote.Sales(rc)
	adapters := syncer.NewAdapters(store, log,
		remote.Products(rc),
		remote.Customers(rc, cfg.PhoneRegion),
		remote.CreditTransactions(rc),
		salesRemote,
	)

	app := &App{
		config:   cfg,
		log:      log.With("component", "client_app"),
		store:    store,
		remote:   rc,
		probe:    probe,
		adapters: adapters,
		sync:     syncer.NewOrchestrator(probe, cfg.SyncInterval, log, adapters.Pushers()...),
		puller:   syncer.NewPullManager(store, probe, log, adapters.Refreshers()...),
		sales:    sales.NewService(store, salesRemote, cfg.PhoneRegion, log),
	}

	sess, err := loadSession(cfg.SessionPath)
	if err != nil {
		app.log.Warn("Не удалось загрузить сессию", "error", err)
	}
	app.session = sess

	return app, nil
}

// Session возвращает текущую сессию. Пустая сессия означает, что вход не выполнен
func (a *App) Session() pos.Session {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.session
}

// IsAuthenticated проверяет, есть ли сохраненная сессия
func (a *App) IsAuthenticated() bool {
	return a.Session().Authenticated()
}

func (a *App) Sales() *sales.Service {
	return a.sales
}

func (a *App) Store() *storage.Store {
	return a.store
}

// Register регистрирует нового пользователя
func (a *App) Register(ctx context.Context, login, password string) error {
	if _, err := a.remote.Register(ctx, login, password); err != nil {
		return err
	}

	a.log.Info("Пользователь успешно зарегистрирован", "login", login)
	return nil
}

type LoginResult struct {
	Session pos.Session
	// Pending - несинхронизированные записи пользователя на момент входа
	Pending int
	// Pulled - данные сервера загружены в локальный кэш
	Pulled bool
}

// Login выполняет вход и сохраняет сессию. Данные сервера подтягиваются только если
// у пользователя нет неотправленных записей: pull заменяет коллекции целиком
func (a *App) Login(ctx context.Context, login, password string) (LoginResult, error) {
	sess, err := a.remote.Login(ctx, login, password)
	if err != nil {
		return LoginResult{}, err
	}

	if err := saveSession(a.config.SessionPath, sess); err != nil {
		return LoginResult{}, fmt.Errorf("ошибка сохранения сессии: %w", err)
	}

	a.mu.Lock()
	a.session = sess
	a.mu.Unlock()

	a.log.Info("Вход выполнен успешно", "login", login, "user_id", sess.UserID)

	res := LoginResult{Session: sess, Pending: total(a.Pending(sess))}
	if res.Pending > 0 {
		a.log.Warn("Есть неотправленные записи, загрузка с сервера пропущена", "pending", res.Pending)
		return res, nil
	}

	pulled, err := a.puller.PullFromRemote(ctx, sess)
	switch {
	case err != nil:
		a.log.Warn("Не удалось загрузить данные после входа", "error", err)
	case !pulled.Success:
		a.log.Warn("Данные загружены с ошибками", "errors", pulled.Errors)
	default:
		res.Pulled = true
	}

	return res, nil
}

// Logout удаляет сессию. Локальные данные пользователя остаются в его пространстве ключей
func (a *App) Logout() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := clearSession(a.config.SessionPath); err != nil {
		return fmt.Errorf("ошибка удаления сессии: %w", err)
	}
	a.session = pos.Session{}

	return nil
}

// WhoAmI проверяет сессию на сервере
func (a *App) WhoAmI(ctx context.Context) (pos.Session, error) {
	sess := a.Session()
	if !sess.Authenticated() {
		return pos.Session{}, pos.ErrUnauthenticated
	}

	return a.remote.CurrentUser(ctx, sess)
}

// CheckConnection проверяет соединение с сервером
func (a *App) CheckConnection(ctx context.Context) error {
	if !a.probe.CheckConnectivity(ctx) {
		return pos.ErrOffline
	}
	return nil
}

// Push отправляет на сервер все несинхронизированные записи
func (a *App) Push(ctx context.Context) (syncer.Result, error) {
	return a.sync.PushAll(ctx, a.Session())
}

// Pull заменяет локальные коллекции данными сервера
func (a *App) Pull(ctx context.Context) (syncer.Result, error) {
	return a.puller.PullFromRemote(ctx, a.Session())
}

type Status struct {
	Session  pos.Session
	Online   bool
	LastPull pos.SyncMeta
	Push     syncer.Stats
	// Pending - число несинхронизированных записей по видам
	Pending map[string]int
}

func (a *App) Status(ctx context.Context) Status {
	sess := a.Session()

	return Status{
		Session:  sess,
		Online:   a.probe.CheckConnectivity(ctx),
		LastPull: a.puller.LastSync(sess),
		Push:     a.sync.GetStats(),
		Pending:  a.Pending(sess),
	}
}

func (a *App) Pending(sess pos.Session) map[string]int {
	return map[string]int{
		syncer.KindProducts:           countUnsynced(storage.Load(a.store, sess.UserID, storage.KeyProducts, []pos.Product{})),
		syncer.KindCustomers:          countUnsynced(storage.Load(a.store, sess.UserID, storage.KeyCustomers, []pos.Customer{})),
		syncer.KindCreditTransactions: countUnsynced(storage.Load(a.store, sess.UserID, storage.KeyCreditTransactions, []pos.CreditTransaction{})),
		syncer.KindSales:              countUnsynced(storage.Load(a.store, sess.UserID, storage.KeySales, []pos.Sale{})),
	}
}

func total(counts map[string]int) int {
	n := 0
	for _, c := range counts {
		n += c
	}
	return n
}

func countUnsynced[T interface{ IsSynced() bool }](records []T) int {
	n := 0
	for _, r := range records {
		if !r.IsSynced() {
			n++
		}
	}
	return n
}

// Run запускает автосинхронизацию и ждет сигнала завершения
func (a *App) Run() error {
	sess := a.Session()
	if !sess.Authenticated() {
		return pos.ErrUnauthenticated
	}

	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel

	go a.handleSignals()

	changes, unsubscribe := a.store.Subscribe()
	defer unsubscribe()

	a.wg.Add(2)
	go func() {
		defer a.wg.Done()
		a.sync.StartAutoSync(ctx, sess)
	}()
	go func() {
		defer a.wg.Done()
		a.watchChanges(ctx, changes)
	}()

	a.log.Info("Автосинхронизация запущена",
		"server", a.config.ServerAddress,
		"interval", a.config.SyncInterval.String(),
	)

	a.wg.Wait()
	return nil
}

func (a *App) watchChanges(ctx context.Context, changes <-chan storage.Change) {
	for {
		select {
		case <-ctx.Done():
			return
		case c, ok := <-changes:
			if !ok {
				return
			}
			a.log.Debug("Локальные данные изменились", "key", c.Key, "user_id", c.UserID)
		}
	}
}

func (a *App) handleSignals() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer signal.Stop(sigChan)

	sig := <-sigChan
	a.log.Info("Получен сигнал завершения", "signal", sig.String())

	if a.cancel != nil {
		a.cancel()
	}
}

// Shutdown останавливает фоновые задачи и закрывает хранилище
func (a *App) Shutdown() {
	if a.cancel != nil {
		a.cancel()
	}

	a.wg.Wait()

	if err := a.store.Close(); err != nil && !errors.Is(err, storage.ErrClosed) {
		a.log.Error("Ошибка закрытия хранилища", "error", err)
	}
}
