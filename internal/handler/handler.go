package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/sem-titulo/controle-financeiro/internal/config"
	"github.com/sem-titulo/controle-financeiro/internal/importer"
	"github.com/sem-titulo/controle-financeiro/internal/repository"
	"github.com/sem-titulo/controle-financeiro/internal/service"
	"github.com/sem-titulo/controle-financeiro/pkg/response"
)

// Handler bundles the services behind the HTTP routes.
type Handler struct {
	balancoService    *service.BalancoService
	recorrenteService *service.RecorrenteService
}

func NewHandler(db *gorm.DB, rdb *redis.Client, cfg *config.Config) *Handler {
	balancoService := service.NewBalancoService(db, rdb, cfg)
	return &Handler{
		balancoService:    balancoService,
		recorrenteService: service.NewRecorrenteService(db, balancoService.InvalidarResumo),
	}
}

// tratarErro maps service errors onto their HTTP statuses. Anything not
// recognized is an internal error; its detail stays in the log.
func tratarErro(c *gin.Context, err error) {
	var decodeErr *importer.DecodeError
	switch {
	case errors.As(err, &decodeErr):
		response.ErroParametro(c, decodeErr.Error())
	case errors.Is(err, service.ErrFormatoInvalido),
		errors.Is(err, service.ErrNenhumRegistro):
		response.ErroParametro(c, err.Error())
	case errors.Is(err, repository.ErrBalancoNotFound),
		errors.Is(err, repository.ErrRecorrenteNotFound):
		response.NaoEncontrado(c, err.Error())
	default:
		logrus.WithError(err).WithField("caminho", c.Request.URL.Path).Error("erro não tratado")
		response.ErroInterno(c, "erro interno do servidor")
	}
}
