package handler

import (
	"fmt"
	"io"
	"mime/multipart"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/sem-titulo/controle-financeiro/internal/model"
	"github.com/sem-titulo/controle-financeiro/internal/repository"
	"github.com/sem-titulo/controle-financeiro/internal/service"
	"github.com/sem-titulo/controle-financeiro/pkg/response"
)

type criarBalancoRequest struct {
	Fonte      string  `json:"fonte" binding:"required"`
	Valor      float64 `json:"valor" binding:"required"`
	Tipo       string  `json:"tipo" binding:"required"`
	Mes        string  `json:"mes" binding:"required"`
	Ano        int     `json:"ano"`
	Observacao string  `json:"observacao"`
	Tag        string  `json:"tag"`
	Categoria  string  `json:"categoria"`
}

// CriarBalanco registers a single transaction.
// POST /balance/
func (h *Handler) CriarBalanco(c *gin.Context) {
	var req criarBalancoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErroParametro(c, "parâmetros inválidos: "+err.Error())
		return
	}
	if !model.TipoValido(req.Tipo) {
		response.ErroParametro(c, "tipo deve ser Entrada ou Saída")
		return
	}
	if !model.MesValido(req.Mes) {
		response.ErroParametro(c, "mês inválido: "+req.Mes)
		return
	}
	if req.Tag != "" && !model.TagValida(req.Tag) {
		response.ErroParametro(c, "tag inválida: "+req.Tag)
		return
	}
	if req.Categoria != "" && !model.CategoriaValida(req.Categoria) {
		response.ErroParametro(c, "categoria inválida: "+req.Categoria)
		return
	}

	b, err := h.balancoService.Criar(c.Request.Context(), usuarioDoContexto(c), service.CriarBalancoInput{
		Fonte:      req.Fonte,
		Valor:      decimal.NewFromFloat(req.Valor),
		Tipo:       req.Tipo,
		Mes:        req.Mes,
		Ano:        req.Ano,
		Observacao: req.Observacao,
		Tag:        req.Tag,
		Categoria:  req.Categoria,
	})
	if err != nil {
		tratarErro(c, err)
		return
	}

	response.Criado(c, "Balanço criado com sucesso", gin.H{"id": b.ID})
}

// ListarBalancos lists the caller's records, newest first. All filters are
// optional and combine with AND.
// GET /balance/?mes=&ano=&tipo=&categoria=&tag=
func (h *Handler) ListarBalancos(c *gin.Context) {
	f := repository.Filtros{
		Mes:       c.Query("mes"),
		Tipo:      c.Query("tipo"),
		Categoria: c.Query("categoria"),
		Tag:       c.Query("tag"),
	}
	if bruto := c.Query("ano"); bruto != "" {
		ano, err := strconv.Atoi(bruto)
		if err != nil {
			response.ErroParametro(c, "ano inválido: "+bruto)
			return
		}
		f.Ano = ano
	}

	registros, err := h.balancoService.Listar(c.Request.Context(), usuarioDoContexto(c), f)
	if err != nil {
		tratarErro(c, err)
		return
	}
	response.OK(c, registros)
}

// BuscarBalanco returns one record by id.
// GET /balance/:id
func (h *Handler) BuscarBalanco(c *gin.Context) {
	b, err := h.balancoService.Buscar(c.Request.Context(), usuarioDoContexto(c), c.Param("id"))
	if err != nil {
		tratarErro(c, err)
		return
	}
	response.OK(c, b)
}

type atualizarBalancoRequest struct {
	Fonte      *string  `json:"fonte"`
	Valor      *float64 `json:"valor"`
	Tipo       *string  `json:"tipo"`
	Mes        *string  `json:"mes"`
	Ano        *int     `json:"ano"`
	Observacao *string  `json:"observacao"`
	Tag        *string  `json:"tag"`
	Categoria  *string  `json:"categoria"`
}

// campos builds the partial-update map from the fields the client actually
// sent. Absent fields never touch the stored record.
func (r atualizarBalancoRequest) campos() map[string]interface{} {
	campos := map[string]interface{}{}
	if r.Fonte != nil {
		campos["fonte"] = *r.Fonte
	}
	if r.Valor != nil {
		campos["valor"] = decimal.NewFromFloat(*r.Valor).Abs()
	}
	if r.Tipo != nil {
		campos["tipo"] = *r.Tipo
	}
	if r.Mes != nil {
		campos["mes"] = *r.Mes
	}
	if r.Ano != nil {
		campos["ano"] = *r.Ano
	}
	if r.Observacao != nil {
		campos["observacao"] = *r.Observacao
	}
	if r.Tag != nil {
		campos["tag"] = *r.Tag
	}
	if r.Categoria != nil {
		campos["categoria"] = *r.Categoria
	}
	return campos
}

// EditarBalanco merges the provided fields into an existing record.
// PUT /balance/:id
func (h *Handler) EditarBalanco(c *gin.Context) {
	var req atualizarBalancoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErroParametro(c, "parâmetros inválidos: "+err.Error())
		return
	}
	if req.Tipo != nil && !model.TipoValido(*req.Tipo) {
		response.ErroParametro(c, "tipo deve ser Entrada ou Saída")
		return
	}
	if req.Mes != nil && !model.MesValido(*req.Mes) {
		response.ErroParametro(c, "mês inválido: "+*req.Mes)
		return
	}
	if req.Tag != nil && *req.Tag != "" && !model.TagValida(*req.Tag) {
		response.ErroParametro(c, "tag inválida: "+*req.Tag)
		return
	}
	if req.Categoria != nil && *req.Categoria != "" && !model.CategoriaValida(*req.Categoria) {
		response.ErroParametro(c, "categoria inválida: "+*req.Categoria)
		return
	}

	err := h.balancoService.Atualizar(c.Request.Context(), usuarioDoContexto(c), c.Param("id"), req.campos())
	if err != nil {
		tratarErro(c, err)
		return
	}
	response.Mensagem(c, "Balanço editado com sucesso")
}

// DeletarBalanco removes one record.
// DELETE /balance/deletar/:id
func (h *Handler) DeletarBalanco(c *gin.Context) {
	err := h.balancoService.Deletar(c.Request.Context(), usuarioDoContexto(c), c.Param("id"))
	if err != nil {
		tratarErro(c, err)
		return
	}
	response.Mensagem(c, "Balanço deletado com sucesso")
}

// ResumoMensal returns the 12-month summary of one year.
// GET /balance/resumo_mensal?ano=2025
func (h *Handler) ResumoMensal(c *gin.Context) {
	ano, err := strconv.Atoi(c.Query("ano"))
	if err != nil {
		response.ErroParametro(c, "ano inválido: "+c.Query("ano"))
		return
	}

	resumo, err := h.balancoService.ResumoMensal(c.Request.Context(), usuarioDoContexto(c), ano)
	if err != nil {
		tratarErro(c, err)
		return
	}
	response.OK(c, resumo)
}

// UploadBalanco ingests one bank export file.
// POST /balance/upload (multipart: file, tipo_arquivo, mes, ano)
func (h *Handler) UploadBalanco(c *gin.Context) {
	arquivo, err := c.FormFile("file")
	if err != nil {
		response.ErroParametro(c, "arquivo não enviado")
		return
	}
	tipoArquivo := c.PostForm("tipo_arquivo")
	if tipoArquivo == "" {
		response.ErroParametro(c, "tipo_arquivo é obrigatório")
		return
	}
	mes := c.PostForm("mes")
	if !model.MesValido(mes) {
		response.ErroParametro(c, "mês inválido: "+mes)
		return
	}
	ano, err := strconv.Atoi(c.PostForm("ano"))
	if err != nil || ano <= 0 {
		response.ErroParametro(c, "ano inválido: "+c.PostForm("ano"))
		return
	}

	dados, err := lerArquivo(arquivo)
	if err != nil {
		response.ErroParametro(c, "falha ao ler o arquivo enviado")
		return
	}

	quantidade, err := h.balancoService.ProcessarUpload(c.Request.Context(), usuarioDoContexto(c), tipoArquivo, mes, ano, dados)
	if err != nil {
		tratarErro(c, err)
		return
	}

	response.OK(c, gin.H{
		"status":               "sucesso",
		"quantidade_registros": quantidade,
	})
}

// UploadFinanceiro ingests the two-file spreadsheet export: one CSV of
// incomes and one of expenses.
// POST /upload-financeiro (multipart: income_file, expenses_file)
func (h *Handler) UploadFinanceiro(c *gin.Context) {
	entradas, err := c.FormFile("income_file")
	if err != nil {
		response.ErroParametro(c, "income_file não enviado")
		return
	}
	saidas, err := c.FormFile("expenses_file")
	if err != nil {
		response.ErroParametro(c, "expenses_file não enviado")
		return
	}

	dadosEntradas, err := lerArquivo(entradas)
	if err != nil {
		response.ErroParametro(c, "falha ao ler income_file")
		return
	}
	dadosSaidas, err := lerArquivo(saidas)
	if err != nil {
		response.ErroParametro(c, "falha ao ler expenses_file")
		return
	}

	total, err := h.balancoService.ImportarNotion(c.Request.Context(), usuarioDoContexto(c), dadosEntradas, dadosSaidas)
	if err != nil {
		tratarErro(c, err)
		return
	}

	response.Criado(c, fmt.Sprintf("%d registros criados com sucesso.", total), nil)
}

func lerArquivo(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
