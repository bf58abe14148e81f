package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the JSON envelope of every endpoint. Unlike a code-in-body
// style, errors carry their real HTTP status: the frontend relies on
// 400/401/404/500 semantics.
type Response struct {
	Mensagem string      `json:"mensagem,omitempty"`
	Erro     string      `json:"error,omitempty"`
	Data     interface{} `json:"data,omitempty"`
}

func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

func Criado(c *gin.Context, mensagem string, data interface{}) {
	c.JSON(http.StatusCreated, Response{Mensagem: mensagem, Data: data})
}

func Mensagem(c *gin.Context, mensagem string) {
	c.JSON(http.StatusOK, Response{Mensagem: mensagem})
}

func Erro(c *gin.Context, status int, mensagem string) {
	c.JSON(status, Response{Erro: mensagem})
}

func ErroParametro(c *gin.Context, mensagem string) {
	Erro(c, http.StatusBadRequest, mensagem)
}

func NaoEncontrado(c *gin.Context, mensagem string) {
	Erro(c, http.StatusNotFound, mensagem)
}

func ErroInterno(c *gin.Context, mensagem string) {
	Erro(c, http.StatusInternalServerError, mensagem)
}
