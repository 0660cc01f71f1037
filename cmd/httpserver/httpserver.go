// Package httpserver manages server creation and api routing.
package httpserver

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/vporoshin/bank-ledger/internal/accountdelivery"
	"github.com/vporoshin/bank-ledger/internal/accountrepo"
	"github.com/vporoshin/bank-ledger/internal/accountservice"
	"github.com/vporoshin/bank-ledger/internal/importservice"
	"github.com/vporoshin/bank-ledger/internal/middleware"
	"github.com/vporoshin/bank-ledger/internal/transferdelivery"
	"github.com/vporoshin/bank-ledger/internal/transferrepo"
	"github.com/vporoshin/bank-ledger/internal/transferservice"
	"github.com/vporoshin/bank-ledger/pkg/configpkg"
	"github.com/vporoshin/bank-ledger/pkg/moneypkg"
)

// Server holds db connection, handlers router and configuration.
type Server struct {
	DB     *sql.DB
	Engine *gin.Engine
	Config configpkg.Config
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// New creates Server type with instantiated domains and routes.
//
// A nil conn wires the in-memory repositories instead of Postgres,
// which is what STORAGE=memory selects.
func New(conn *sql.DB, logger zerolog.Logger, config configpkg.Config) (*Server, error) {
	var (
		accountRepo  accountservice.Repo
		deltaRepo    transferservice.AccountRepo
		transferRepo transferservice.HistoryRepo
	)

	if conn != nil {
		pgs := accountrepo.NewRepoPGS(conn)
		accountRepo = pgs
		deltaRepo = pgs
		transferRepo = transferrepo.NewRepoPGS(conn)
	} else {
		mem := accountrepo.NewRepoMem()
		accountRepo = mem
		deltaRepo = mem
		transferRepo = transferrepo.NewRepoMem()
	}

	accountService := accountservice.New(accountRepo)
	transferService := transferservice.New(deltaRepo, transferRepo)
	importService := importservice.New(accountRepo)

	accountHandler := accountdelivery.NewHandler(accountService, importService)
	transferHandler := transferdelivery.NewHandler(transferService)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gin.Recovery())

	engine.POST("/accounts", accountHandler.Create)
	engine.GET("/accounts/:id", accountHandler.Get)
	engine.GET("/accounts", accountHandler.List)
	engine.POST("/accounts/import", accountHandler.Import)

	engine.POST("/transfers", transferHandler.Create)
	engine.GET("/transfers/:id", transferHandler.Get)
	engine.GET("/transfers", transferHandler.List)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		err := v.RegisterValidation("amount", moneypkg.ValidAmount)
		if err != nil {
			return nil, errors.New("cannot register amount validator")
		}
	}

	server := &Server{
		DB:     conn,
		Engine: engine,
		Config: config,
	}

	return server, nil
}
