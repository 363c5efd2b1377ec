package router

import (
	"time"

	"stationops/internal/config"
	"stationops/internal/handler"
	"stationops/internal/infra"
	"stationops/internal/middleware"
	"stationops/internal/repository"
	"stationops/internal/service"
	"stationops/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, forecourt *infra.ForecourtClient) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	utilisateurRepo := repository.NewUtilisateurRepository(db)
	fournisseurRepo := repository.NewFournisseurRepository(db)
	produitRepo := repository.NewProduitRepository(db)
	commandeRepo := repository.NewCommandeRepository(db)
	receptionRepo := repository.NewReceptionRepository(db)
	citerneRepo := repository.NewCiterneRepository(db)
	caisseRepo := repository.NewCaisseRepository(db)
	quartRepo := repository.NewQuartRepository(db)
	clientRepo := repository.NewClientRepository(db)
	depenseRepo := repository.NewDepenseRepository(db)
	factureRepo := repository.NewFactureRepository(db)
	reclamationRepo := repository.NewReclamationRepository(db)
	activiteRepo := repository.NewActiviteRepository(db)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(utilisateurRepo, cfg)
	catalogueSvc := service.NewCatalogueService(produitRepo, rdb)
	fournisseurSvc := service.NewFournisseurService(fournisseurRepo)
	commandeSvc := service.NewCommandeService(commandeRepo, fournisseurRepo, produitRepo, activiteRepo)
	receptionSvc := service.NewReceptionService(commandeRepo, receptionRepo, produitRepo, activiteRepo, dispatcher)
	citerneSvc := service.NewCiterneService(citerneRepo, activiteRepo, dispatcher)
	caisseSvc := service.NewCaisseService(caisseRepo, activiteRepo, dispatcher)
	quartSvc := service.NewQuartService(quartRepo, citerneRepo, caisseRepo, citerneSvc, caisseSvc, forecourt, activiteRepo)
	clientSvc := service.NewClientService(clientRepo)
	depenseSvc := service.NewDepenseService(depenseRepo)
	factureSvc := service.NewFactureService(factureRepo, clientRepo, activiteRepo, dispatcher)
	reclamationSvc := service.NewReclamationService(reclamationRepo, clientRepo)
	activiteSvc := service.NewActiviteService(activiteRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	utilisateursH := handler.NewUtilisateurHandler(authSvc)
	catalogueH := handler.NewCatalogueHandler(catalogueSvc)
	fournisseursH := handler.NewFournisseurHandler(fournisseurSvc)
	commandesH := handler.NewCommandeHandler(commandeSvc)
	receptionsH := handler.NewReceptionHandler(receptionSvc)
	citernesH := handler.NewCiterneHandler(citerneSvc)
	caissesH := handler.NewCaisseHandler(caisseSvc)
	quartsH := handler.NewQuartHandler(quartSvc)
	clientsH := handler.NewClientHandler(clientSvc)
	depensesH := handler.NewDepenseHandler(depenseSvc)
	facturesH := handler.NewFactureHandler(factureSvc)
	reclamationsH := handler.NewReclamationHandler(reclamationSvc)
	activitesH := handler.NewActiviteHandler(activiteSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb, forecourt))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Price check for pump displays — no auth required
	r.GET("/v1/prix/:sku", catalogueH.ConsulterPrix)

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Roles: pompiste, superviseur, gerant — declared per-endpoint

		// Commandes fournisseur — superviseur drafts and submits, gerant settles disputes
		v1.POST("/commandes", middleware.RequireRole("superviseur", "gerant"), commandesH.Creer)
		v1.GET("/commandes", middleware.RequireRole("pompiste", "superviseur", "gerant"), commandesH.List)
		v1.GET("/commandes/:id", middleware.RequireRole("pompiste", "superviseur", "gerant"), commandesH.Get)
		v1.POST("/commandes/:id/soumettre", middleware.RequireRole("superviseur", "gerant"), commandesH.Soumettre)
		v1.POST("/commandes/:id/annuler", middleware.RequireRole("superviseur", "gerant"), commandesH.Annuler)
		v1.POST("/commandes/:id/litige", middleware.RequireRole("gerant"), commandesH.Litige)

		// Réceptions — recorded at the pump island when the truck arrives
		v1.POST("/commandes/:id/receptions", middleware.RequireRole("pompiste", "superviseur", "gerant"), receptionsH.Recevoir)
		v1.GET("/commandes/:id/receptions", middleware.RequireRole("pompiste", "superviseur", "gerant"), receptionsH.ListByCommande)

		// Citernes et relevés
		v1.GET("/citernes", middleware.RequireRole("pompiste", "superviseur", "gerant"), citernesH.List)
		v1.POST("/citernes", middleware.RequireRole("gerant"), citernesH.Creer)
		v1.GET("/releves/:id", middleware.RequireRole("pompiste", "superviseur", "gerant"), citernesH.GetReleve)
		v1.POST("/releves/:id/cloturer", middleware.RequireRole("superviseur", "gerant"), citernesH.CloturerReleve)

		// Caisses et sessions
		v1.GET("/caisses", middleware.RequireRole("pompiste", "superviseur", "gerant"), caissesH.List)
		v1.POST("/caisses", middleware.RequireRole("gerant"), caissesH.Creer)
		v1.GET("/sessions/:id", middleware.RequireRole("pompiste", "superviseur", "gerant"), caissesH.GetSession)
		v1.POST("/sessions/:id/cloturer", middleware.RequireRole("superviseur", "gerant"), caissesH.CloturerSession)

		// Quarts de travail
		quarts := v1.Group("/quarts", middleware.RequireRole("superviseur", "gerant"))
		{
			quarts.POST("", quartsH.Ouvrir)
			quarts.GET("", quartsH.List)
			quarts.GET("/:id", quartsH.Get)
			quarts.GET("/:id/summary", quartsH.Summary)
			quarts.POST("/:id/cloturer", quartsH.Cloturer)
			quarts.GET("/:id/export", quartsH.Export)
		}

		// Catalogue — gerant can write, all authenticated can read
		v1.GET("/produits", middleware.RequireRole("pompiste", "superviseur", "gerant"), catalogueH.List)
		v1.GET("/produits/:id", middleware.RequireRole("pompiste", "superviseur", "gerant"), catalogueH.Get)
		produits := v1.Group("/produits", middleware.RequireRole("gerant"))
		{
			produits.POST("", catalogueH.Creer)
			produits.PUT("/:id", catalogueH.Modifier)
			produits.DELETE("/:id", catalogueH.Desactiver)
		}

		fournisseurs := v1.Group("/fournisseurs", middleware.RequireRole("superviseur", "gerant"))
		{
			fournisseurs.POST("", fournisseursH.Creer)
			fournisseurs.GET("", fournisseursH.List)
			fournisseurs.GET("/:id", fournisseursH.Get)
			fournisseurs.PUT("/:id", fournisseursH.Modifier)
			fournisseurs.DELETE("/:id", fournisseursH.Desactiver)
		}

		clients := v1.Group("/clients", middleware.RequireRole("superviseur", "gerant"))
		{
			clients.POST("", clientsH.Creer)
			clients.GET("", clientsH.List)
			clients.GET("/:id", clientsH.Get)
			clients.DELETE("/:id", clientsH.Desactiver)
		}

		depenses := v1.Group("/depenses", middleware.RequireRole("superviseur", "gerant"))
		{
			depenses.POST("", depensesH.Creer)
			depenses.GET("", depensesH.List)
			depenses.GET("/:id", depensesH.Get)
			depenses.PUT("/:id", depensesH.Modifier)
			depenses.DELETE("/:id", depensesH.Supprimer)
		}

		factures := v1.Group("/factures", middleware.RequireRole("superviseur", "gerant"))
		{
			factures.POST("", facturesH.Creer)
			factures.GET("", facturesH.List)
			factures.GET("/:id", facturesH.Get)
			factures.POST("/:id/emettre", facturesH.Emettre)
			factures.POST("/:id/payer", facturesH.MarquerPayee)
			factures.POST("/:id/annuler", facturesH.Annuler)
		}

		reclamations := v1.Group("/reclamations", middleware.RequireRole("pompiste", "superviseur", "gerant"))
		{
			reclamations.POST("", reclamationsH.Creer)
			reclamations.GET("", reclamationsH.List)
			reclamations.GET("/:id", reclamationsH.Get)
		}
		v1.POST("/reclamations/:id/traiter", middleware.RequireRole("superviseur", "gerant"), reclamationsH.Traiter)

		v1.GET("/activites", middleware.RequireRole("superviseur", "gerant"), activitesH.List)

		utilisateurs := v1.Group("/utilisateurs", middleware.RequireRole("gerant"))
		{
			utilisateurs.POST("", utilisateursH.Creer)
			utilisateurs.GET("", utilisateursH.List)
			utilisateurs.PUT("/:id", utilisateursH.Modifier)
			utilisateurs.DELETE("/:id", utilisateursH.Desactiver)
			utilisateurs.PATCH("/:id/reactiver", utilisateursH.Reactiver)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
