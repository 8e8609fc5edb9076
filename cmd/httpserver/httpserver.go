// Package httpserver manages server creation and api routing.
package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/splitbook/splitbook/internal/domain"
	"github.com/splitbook/splitbook/internal/expensedelivery"
	"github.com/splitbook/splitbook/internal/expenserepo"
	"github.com/splitbook/splitbook/internal/expenseservice"
	"github.com/splitbook/splitbook/internal/ledgerdelivery"
	"github.com/splitbook/splitbook/internal/ledgerrepo"
	"github.com/splitbook/splitbook/internal/ledgerservice"
	"github.com/splitbook/splitbook/internal/middleware"
	"github.com/splitbook/splitbook/internal/overviewdelivery"
	"github.com/splitbook/splitbook/internal/overviewservice"
	"github.com/splitbook/splitbook/internal/settlementdelivery"
	"github.com/splitbook/splitbook/internal/settlementrepo"
	"github.com/splitbook/splitbook/internal/settlementservice"
	"github.com/splitbook/splitbook/pkg/configpkg"
	"github.com/splitbook/splitbook/pkg/ledgerapi"
)

// Server holds the ledger client, handlers router and configuration.
type Server struct {
	Client *ledgerapi.Client
	Engine *gin.Engine
	Config configpkg.Config
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// New creates Server type with instantiated domains and routes.
func New(client *ledgerapi.Client, logger zerolog.Logger, config configpkg.Config) (*Server, error) {
	parties := domain.Parties{
		A: domain.Party(config.PartyA),
		B: domain.Party(config.PartyB),
	}

	expenseRepo := expenserepo.NewRepoHTTP(client)
	settlementRepo := settlementrepo.NewRepoHTTP(client)
	ledgerRepo := ledgerrepo.NewRepoHTTP(client)

	ledgerService := ledgerservice.New(ledgerRepo, parties)
	expenseService := expenseservice.New(expenseRepo, settlementRepo, parties)
	settlementService := settlementservice.New(settlementRepo, ledgerService)
	overviewService := overviewservice.New(expenseService, settlementService, ledgerService)

	expenseHandler := expensedelivery.NewHandler(expenseService)
	settlementHandler := settlementdelivery.NewHandler(settlementService)
	ledgerHandler := ledgerdelivery.NewHandler(ledgerService)
	overviewHandler := overviewdelivery.NewHandler(overviewService)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gin.Recovery())
	engine.Use(middleware.Metrics())

	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	sessionRoutes := engine.Group("/").Use(middleware.SessionMiddleware(parties))

	sessionRoutes.POST("/expenses", expenseHandler.Create)
	sessionRoutes.GET("/expenses", expenseHandler.List)
	sessionRoutes.GET("/expenses/:id", expenseHandler.Get)
	sessionRoutes.PUT("/expenses/:id", expenseHandler.Update)
	sessionRoutes.DELETE("/expenses/:id", expenseHandler.Delete)

	sessionRoutes.POST("/settlements", settlementHandler.Request)
	sessionRoutes.GET("/settlements", settlementHandler.List)
	sessionRoutes.POST("/settlements/:id/approve", settlementHandler.Approve)
	sessionRoutes.POST("/settlements/:id/reject", settlementHandler.Reject)

	sessionRoutes.GET("/balance", ledgerHandler.Balance)
	sessionRoutes.GET("/ledger/:refId/entries", ledgerHandler.Entries)

	sessionRoutes.GET("/overview", overviewHandler.Get)

	server := &Server{
		Client: client,
		Engine: engine,
		Config: config,
	}

	return server, nil
}
