package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/sem-titulo/controle-financeiro/internal/config"
)

// SetupRouter wires middlewares and routes. The route names follow the
// paths the frontend already calls.
func SetupRouter(db *gorm.DB, rdb *redis.Client, cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(RecoveryMiddleware())
	r.Use(LoggerMiddleware())
	r.Use(CORSMiddleware())

	h := NewHandler(db, rdb, cfg)
	auth := AuthMiddleware(cfg.Auth.JWTSecret)

	balance := r.Group("/balance", auth)
	{
		balance.POST("/", h.CriarBalanco)
		balance.GET("/", h.ListarBalancos)
		balance.GET("/resumo_mensal", h.ResumoMensal)
		balance.GET("/:id", h.BuscarBalanco)
		balance.PUT("/:id", h.EditarBalanco)
		balance.DELETE("/deletar/:id", h.DeletarBalanco)
		balance.POST("/upload", h.UploadBalanco)
	}

	recurrent := r.Group("/recurrent", auth)
	{
		recurrent.POST("/", h.CriarRecorrente)
		recurrent.GET("/", h.ListarRecorrentes)
		recurrent.POST("/gerar-balance", h.GerarBalancos)
		recurrent.GET("/:id", h.BuscarRecorrente)
		recurrent.PUT("/:id", h.EditarRecorrente)
		recurrent.DELETE("/:id", h.DeletarRecorrente)
	}

	r.POST("/upload-financeiro", auth, h.UploadFinanceiro)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
