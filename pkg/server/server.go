package server

import (
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/openagri/aegis/pkg/config"
	"github.com/openagri/aegis/pkg/server/store"
	gormstore "github.com/openagri/aegis/pkg/server/store/gorm"
	"github.com/openagri/aegis/pkg/token"
)

type Server struct {
	Router *mux.Router
	DB     *gorm.DB
	Config *config.Config

	Issuer    *token.Issuer
	Validator *token.Validator

	Users       store.UserStore
	Registry    store.RegistryStore
	Resolver    store.ResolverStore
	Revocations store.RevocationStore
	Health      store.HealthStore

	srv *http.Server
}

// NewServer wires the stores, token machinery and router into one server.
func NewServer(cfg *config.Config, db *gorm.DB) (*Server, error) {
	signingKey, err := cfg.SigningKeyBytes()
	if err != nil {
		return nil, err
	}

	revocations := gormstore.NewRevocationStore(db)

	issuer := token.NewIssuer(signingKey, cfg.Issuer, cfg.AccessTokenTTL(), cfg.RefreshTokenTTL())
	validator := token.NewValidator(signingKey, cfg.Issuer, revocations)

	router := mux.NewRouter().UseEncodedPath()
	srv := &http.Server{
		Handler: handlers.LoggingHandler(os.Stdout, router),
		Addr:    cfg.BindAddress + ":" + cfg.Port,
		// Good practice: enforce timeouts for servers you create!
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	return &Server{
		Router:      router,
		DB:          db,
		Config:      cfg,
		Issuer:      issuer,
		Validator:   validator,
		Users:       gormstore.NewUserStore(db),
		Registry:    gormstore.NewRegistryStore(db),
		Resolver:    gormstore.NewResolverStore(db),
		Revocations: revocations,
		Health:      gormstore.NewHealthStore(db),
		srv:         srv,
	}, nil
}

func (s *Server) Start() error {
	return s.srv.ListenAndServe()
}
