package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"sync"

	"github.com/labstack/echo/v4"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"

	httpin "restaurant/internal/adapters/in/http"
	"restaurant/internal/adapters/in/tcp"
	"restaurant/internal/adapters/out/flatfile"
	"restaurant/internal/adapters/out/memstore"
	"restaurant/internal/adapters/out/postgres/snapshotrepo"
	"restaurant/internal/core/application/dispatch"
	"restaurant/internal/core/application/snapshot"
	"restaurant/internal/core/application/usecases/admin"
	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/application/usecases/queries"
	"restaurant/internal/core/application/watch"
	"restaurant/internal/core/domain/services/ledger"
	"restaurant/internal/core/ports"
	"restaurant/internal/jobs"
	"restaurant/internal/workers"
)

// CompositionRoot wires the whole server together and owns its lifecycle.
type CompositionRoot struct {
	config Config
	logger *slog.Logger

	ledger      *ledger.Ledger
	broadcaster *watch.Broadcaster
	pool        *workers.Pool
	dispatcher  *dispatch.Dispatcher
	tcpServer   *tcp.Server
	echoServer  *echo.Echo
	snapshots   *snapshot.Service
	jobManager  *jobs.JobManager

	// Admin is the management facade for back-office callers.
	Admin *admin.Service

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewCompositionRoot assembles the server from configuration. Persistence is
// postgres when DBHost is set, the flat-file description otherwise.
func NewCompositionRoot(config Config, logger *slog.Logger) (*CompositionRoot, error) {
	store, err := buildSnapshotStore(config)
	if err != nil {
		return nil, err
	}

	l := ledger.NewLedger()
	users := memstore.NewUserRepository()
	postcodes := memstore.NewPostcodeRepository()
	suppliers := memstore.NewSupplierRepository()
	orders := memstore.NewOrderRepository()

	broadcaster := watch.NewBroadcaster()
	pool := workers.NewPool(l, config.CookMin, config.CookMax, config.TransitScale, broadcaster.Publish, logger)

	dispatcher := dispatch.NewDispatcher(
		commands.NewRegisterUserCommandHandler(users, postcodes, broadcaster),
		commands.NewCheckoutBasketCommandHandler(users, orders, l, broadcaster),
		commands.NewCancelOrderCommandHandler(orders, l, broadcaster),
		queries.NewLoginQueryHandler(users),
		queries.NewGetOrdersQueryHandler(orders),
		queries.NewGetDishesQueryHandler(l),
		queries.NewGetPostcodesQueryHandler(postcodes),
		logger,
	)
	tcpServer := tcp.NewServer(dispatcher, logger)

	e := echo.New()
	e.HideBanner = true
	httpin.NewServer(l, orders, pool).RegisterRoutes(e)

	snapshots := snapshot.NewService(store, l, suppliers, postcodes, users, orders, pool, logger)

	return &CompositionRoot{
		config:      config,
		logger:      logger,
		ledger:      l,
		broadcaster: broadcaster,
		pool:        pool,
		dispatcher:  dispatcher,
		tcpServer:   tcpServer,
		echoServer:  e,
		snapshots:   snapshots,
		jobManager:  jobs.NewJobManager(snapshots, l, config.AutosaveCron, logger),
		Admin:       admin.NewService(l, suppliers, postcodes, users, pool, broadcaster, logger),
	}, nil
}

// Start restores persisted state and brings every component up: agents,
// executor, TCP multiplexer, HTTP dashboard and background jobs.
func (c *CompositionRoot) Start(ctx context.Context) error {
	runCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel

	if err := c.snapshots.Restore(runCtx); err != nil {
		cancel()
		return fmt.Errorf("restore state: %w", err)
	}

	c.pool.Start(runCtx)

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		c.dispatcher.Run(runCtx, c.tcpServer)
	}()

	listener, err := net.Listen("tcp", ":"+c.config.TCPPort)
	if err != nil {
		cancel()
		return fmt.Errorf("listen on tcp port %s: %w", c.config.TCPPort, err)
	}

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		if serveErr := c.tcpServer.Serve(runCtx, listener); serveErr != nil {
			c.logger.Error("tcp server failed", "error", serveErr)
		}
	}()

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		if httpErr := c.echoServer.Start(":" + c.config.HTTPPort); httpErr != nil {
			c.logger.Info("http server stopped", "error", httpErr)
		}
	}()

	if err = c.jobManager.StartAll(); err != nil {
		cancel()
		return err
	}

	c.logger.Info("server started", "tcp", c.config.TCPPort, "http", c.config.HTTPPort)
	return nil
}

// Stop shuts everything down and persists a final snapshot once the agents
// have drained.
func (c *CompositionRoot) Stop(ctx context.Context) {
	c.jobManager.StopAll()

	if c.cancel != nil {
		c.cancel()
	}
	c.pool.Stop()

	if err := c.echoServer.Shutdown(ctx); err != nil {
		c.logger.Warn("http shutdown failed", "error", err)
	}
	c.wg.Wait()

	if err := c.snapshots.Save(ctx); err != nil {
		c.logger.Error("final save failed", "error", err)
	}
	c.logger.Info("server stopped")
}

func buildSnapshotStore(config Config) (ports.SnapshotStore, error) {
	if config.DBHost == "" {
		return flatfile.NewStore(config.DataFile), nil
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		config.DBHost, config.DBPort, config.DBUser, config.DBPassword, config.DBName, config.DBSslMode)
	db, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	if err = snapshotrepo.Migrate(db); err != nil {
		return nil, fmt.Errorf("migrate snapshot schema: %w", err)
	}
	return snapshotrepo.NewStore(db), nil
}
