package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/tableside/cafe-ordering-api/docs"
	v1 "github.com/tableside/cafe-ordering-api/internal/api/handler/v1"
	"github.com/tableside/cafe-ordering-api/internal/api/middleware"
	"github.com/tableside/cafe-ordering-api/internal/config"
	"github.com/tableside/cafe-ordering-api/internal/repository"
	"github.com/tableside/cafe-ordering-api/internal/repository/dao"
	"github.com/tableside/cafe-ordering-api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, db *gorm.DB) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	menuHandler := s.initMenuHandler(db)
	orderHandler := s.initOrderHandler(db)
	tableHandler := s.initTableHandler(db)
	s.MountHandlers(menuHandler, orderHandler, tableHandler)

	return s
}

func (s *Server) initMenuHandler(db *gorm.DB) *v1.MenuHandler {
	menuDAO := dao.NewMenuDAO(db)
	repo := repository.NewMenuRepository(menuDAO)
	svc := service.NewMenuService(repo, s.initSessionService(db), s.Config.Storage.PublicBaseURL)
	handler := v1.NewMenuHandler(svc)

	return handler
}

func (s *Server) initOrderHandler(db *gorm.DB) *v1.OrderHandler {
	orderDAO := dao.NewOrderDAO(db)
	repo := repository.NewOrderRepository(orderDAO)
	menuRepo := repository.NewMenuRepository(dao.NewMenuDAO(db))
	tableRepo := repository.NewTableRepository(dao.NewTableDAO(db))
	svc := service.NewOrderService(repo, menuRepo, tableRepo, s.initSessionService(db))
	handler := v1.NewOrderHandler(svc)

	return handler
}

func (s *Server) initTableHandler(db *gorm.DB) *v1.TableHandler {
	svc := s.initSessionService(db)
	handler := v1.NewTableHandler(svc)

	return handler
}

func (s *Server) initSessionService(db *gorm.DB) *service.SessionService {
	sessionDAO := dao.NewSessionDAO(db)
	repo := repository.NewSessionRepository(sessionDAO)
	tableRepo := repository.NewTableRepository(dao.NewTableDAO(db))

	return service.NewSessionService(repo, tableRepo)
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(menuHandler *v1.MenuHandler, orderHandler *v1.OrderHandler, tableHandler *v1.TableHandler) {
	const basePath = "/api/v1"

	menu := s.Router.Group(basePath)
	{
		menu.GET("/menu", menuHandler.HandleGetMenu)
		menu.POST("/menu/categories", menuHandler.HandleAddCategory)
		menu.DELETE("/menu/categories/:categoryID", menuHandler.HandleDeleteCategory)
		menu.POST("/menu/items", menuHandler.HandleAddMenuItem)
		menu.PUT("/menu/items/:itemID", menuHandler.HandleUpdateMenuItem)
		menu.DELETE("/menu/items/:itemID", menuHandler.HandleDeleteMenuItem)
	}

	orders := s.Router.Group(basePath)
	{
		orders.POST("/orders", orderHandler.HandleCreateOrder)
		orders.GET("/orders/:orderID", orderHandler.HandleGetOrder)
		orders.GET("/orders/table/:tableNumber", orderHandler.HandleGetOrdersForTable)
		orders.PATCH("/orders/:orderID/status", orderHandler.HandleUpdateOrderStatus)
	}

	tables := s.Router.Group(basePath)
	{
		tables.GET("/tables", tableHandler.HandleListTables)
		tables.POST("/tables/:tableNumber/session/end", tableHandler.HandleEndTableSession)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Cafe Ordering API"
	docs.SwaggerInfo.Description = "Table-side QR code ordering backend."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
