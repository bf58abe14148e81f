package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/sem-titulo/controle-financeiro/internal/model"
	"github.com/sem-titulo/controle-financeiro/internal/service"
	"github.com/sem-titulo/controle-financeiro/pkg/response"
)

type criarRecorrenteRequest struct {
	Descricao string  `json:"descricao" binding:"required"`
	Valor     float64 `json:"valor" binding:"required,gt=0"`
	Tipo      string  `json:"tipo" binding:"required"`
	Categoria string  `json:"categoria"`
	Tag       string  `json:"tag"`
	Dia       int     `json:"dia" binding:"required,gte=1,lte=31"`
	Inicio    *string `json:"inicio"`
	Fim       *string `json:"fim"`
}

// CriarRecorrente registers a recurring-transaction template.
// POST /recurrent/
func (h *Handler) CriarRecorrente(c *gin.Context) {
	var req criarRecorrenteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErroParametro(c, "parâmetros inválidos: "+err.Error())
		return
	}
	if !model.TipoValido(req.Tipo) {
		response.ErroParametro(c, "tipo deve ser Entrada ou Saída")
		return
	}
	if req.Categoria != "" && !model.CategoriaValida(req.Categoria) {
		response.ErroParametro(c, "categoria inválida: "+req.Categoria)
		return
	}
	if req.Tag != "" && !model.TagValida(req.Tag) {
		response.ErroParametro(c, "tag inválida: "+req.Tag)
		return
	}

	rec, err := h.recorrenteService.Criar(c.Request.Context(), usuarioDoContexto(c), service.CriarRecorrenteInput{
		Descricao: req.Descricao,
		Valor:     decimal.NewFromFloat(req.Valor),
		Tipo:      req.Tipo,
		Categoria: req.Categoria,
		Tag:       req.Tag,
		Dia:       req.Dia,
		Inicio:    req.Inicio,
		Fim:       req.Fim,
	})
	if err != nil {
		tratarErro(c, err)
		return
	}

	response.Criado(c, "Recorrente criada com sucesso", gin.H{"id": rec.ID})
}

// ListarRecorrentes lists the caller's templates.
// GET /recurrent/
func (h *Handler) ListarRecorrentes(c *gin.Context) {
	recs, err := h.recorrenteService.Listar(c.Request.Context(), usuarioDoContexto(c))
	if err != nil {
		tratarErro(c, err)
		return
	}
	response.OK(c, recs)
}

// BuscarRecorrente returns one template by id.
// GET /recurrent/:id
func (h *Handler) BuscarRecorrente(c *gin.Context) {
	rec, err := h.recorrenteService.Buscar(c.Request.Context(), usuarioDoContexto(c), c.Param("id"))
	if err != nil {
		tratarErro(c, err)
		return
	}
	response.OK(c, rec)
}

type atualizarRecorrenteRequest struct {
	Descricao *string  `json:"descricao"`
	Valor     *float64 `json:"valor" binding:"omitempty,gt=0"`
	Tipo      *string  `json:"tipo"`
	Categoria *string  `json:"categoria"`
	Tag       *string  `json:"tag"`
	Dia       *int     `json:"dia" binding:"omitempty,gte=1,lte=31"`
	Inicio    *string  `json:"inicio"`
	Fim       *string  `json:"fim"`
}

func (r atualizarRecorrenteRequest) campos() map[string]interface{} {
	campos := map[string]interface{}{}
	if r.Descricao != nil {
		campos["descricao"] = *r.Descricao
	}
	if r.Valor != nil {
		campos["valor"] = decimal.NewFromFloat(*r.Valor).Abs()
	}
	if r.Tipo != nil {
		campos["tipo"] = *r.Tipo
	}
	if r.Categoria != nil {
		campos["categoria"] = *r.Categoria
	}
	if r.Tag != nil {
		campos["tag"] = *r.Tag
	}
	if r.Dia != nil {
		campos["dia"] = *r.Dia
	}
	if r.Inicio != nil {
		campos["inicio"] = *r.Inicio
	}
	if r.Fim != nil {
		campos["fim"] = *r.Fim
	}
	return campos
}

// EditarRecorrente merges the provided fields into an existing template.
// PUT /recurrent/:id
func (h *Handler) EditarRecorrente(c *gin.Context) {
	var req atualizarRecorrenteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErroParametro(c, "parâmetros inválidos: "+err.Error())
		return
	}
	if req.Tipo != nil && !model.TipoValido(*req.Tipo) {
		response.ErroParametro(c, "tipo deve ser Entrada ou Saída")
		return
	}

	err := h.recorrenteService.Atualizar(c.Request.Context(), usuarioDoContexto(c), c.Param("id"), req.campos())
	if err != nil {
		tratarErro(c, err)
		return
	}
	response.Mensagem(c, "Recorrente editada com sucesso")
}

// DeletarRecorrente removes one template.
// DELETE /recurrent/:id
func (h *Handler) DeletarRecorrente(c *gin.Context) {
	err := h.recorrenteService.Deletar(c.Request.Context(), usuarioDoContexto(c), c.Param("id"))
	if err != nil {
		tratarErro(c, err)
		return
	}
	response.Mensagem(c, "Recorrente deletada com sucesso")
}

// GerarBalancos materializes the caller's templates into records for the
// current month.
// POST /recurrent/gerar-balance
func (h *Handler) GerarBalancos(c *gin.Context) {
	quantidade, err := h.recorrenteService.GerarBalancos(c.Request.Context(), usuarioDoContexto(c))
	if err != nil {
		tratarErro(c, err)
		return
	}

	response.OK(c, gin.H{
		"mensagem":          fmt.Sprintf("%d balanços gerados com sucesso", quantidade),
		"quantidade_criada": quantidade,
	})
}
