package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/sem-titulo/controle-financeiro/internal/config"
	"github.com/sem-titulo/controle-financeiro/internal/importer"
	"github.com/sem-titulo/controle-financeiro/internal/model"
	"github.com/sem-titulo/controle-financeiro/internal/repository"
)

// Store contracts consumed by the services; satisfied by the gorm
// repositories and by fakes in tests.
type balancoStore interface {
	Create(ctx context.Context, tx *gorm.DB, b *model.Balanco) error
	CreateBatch(ctx context.Context, tx *gorm.DB, registros []*model.Balanco) error
	GetByID(ctx context.Context, usuarioID, id string) (*model.Balanco, error)
	Update(ctx context.Context, usuarioID, id string, campos map[string]interface{}) error
	Delete(ctx context.Context, usuarioID, id string) error
	List(ctx context.Context, usuarioID string, f repository.Filtros) ([]*model.Balanco, error)
	ListByAno(ctx context.Context, usuarioID string, ano int) ([]*model.Balanco, error)
}

type outboxStore interface {
	Create(ctx context.Context, tx *gorm.DB, msg *model.OutboxMessage) error
}

type txManager interface {
	Transaction(fc func(tx *gorm.DB) error, opts ...*sql.TxOptions) error
}

// BalancoService owns the balanço lifecycle: direct entry, CSV uploads,
// Notion imports, partial updates and the yearly summary.
type BalancoService struct {
	db        txManager
	registros balancoStore
	outbox    outboxStore
	rdb       *redis.Client // nil disables the resumo cache
	registry  *importer.Registry
	notionAno int
	topico    string
	cacheTTL  time.Duration
	agora     func() time.Time
}

func NewBalancoService(db *gorm.DB, rdb *redis.Client, cfg *config.Config) *BalancoService {
	return &BalancoService{
		db:        db,
		registros: repository.NewBalancoRepository(db),
		outbox:    repository.NewOutboxRepository(db),
		rdb:       rdb,
		registry:  importer.DefaultRegistry(cfg.Importer.Rules()),
		notionAno: cfg.Importer.NotionAnoOuPadrao(),
		topico:    cfg.Kafka.Topic.BalancoEvents,
		cacheTTL:  time.Duration(cfg.Business.ResumoCacheTTLMinutes) * time.Minute,
		agora:     time.Now,
	}
}

// CriarBalancoInput carries the validated fields of a direct entry.
type CriarBalancoInput struct {
	Fonte      string
	Valor      decimal.Decimal
	Tipo       string
	Mes        string
	Ano        int
	Observacao string
	Tag        string
	Categoria  string
}

// Criar assigns id, owner, creation timestamp and the default year, then
// persists the record together with its outbox event.
func (s *BalancoService) Criar(ctx context.Context, usuarioID string, in CriarBalancoInput) (*model.Balanco, error) {
	b := &model.Balanco{
		ID:         uuid.NewString(),
		Fonte:      in.Fonte,
		Valor:      in.Valor.Abs(),
		Tipo:       in.Tipo,
		Mes:        in.Mes,
		Ano:        in.Ano,
		Observacao: in.Observacao,
		Tag:        in.Tag,
		Categoria:  in.Categoria,
		UsuarioID:  usuarioID,
		CriadoEm:   s.agora(),
	}
	if b.Ano == 0 {
		b.Ano = s.agora().Year()
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.registros.Create(ctx, tx, b); err != nil {
			return err
		}
		return s.enfileirarEvento(ctx, tx, model.BalancoEvent{
			Evento:    model.EventBalancoCriado,
			UsuarioID: usuarioID,
			BalancoID: b.ID,
			Ano:       b.Ano,
		})
	})
	if err != nil {
		return nil, err
	}

	s.invalidarResumo(ctx, usuarioID, b.Ano)
	return b, nil
}

func (s *BalancoService) Buscar(ctx context.Context, usuarioID, id string) (*model.Balanco, error) {
	return s.registros.GetByID(ctx, usuarioID, id)
}

// Listar never returns a nil slice; an empty result serializes as [].
func (s *BalancoService) Listar(ctx context.Context, usuarioID string, f repository.Filtros) ([]*model.Balanco, error) {
	registros, err := s.registros.List(ctx, usuarioID, f)
	if err != nil {
		return nil, err
	}
	if registros == nil {
		registros = []*model.Balanco{}
	}
	return registros, nil
}

// Atualizar merges only the provided fields into the record. Owner and
// creation metadata are never among them; the handler builds the map from
// the request's non-null fields only.
func (s *BalancoService) Atualizar(ctx context.Context, usuarioID, id string, campos map[string]interface{}) error {
	atual, err := s.registros.GetByID(ctx, usuarioID, id)
	if err != nil {
		return err
	}

	if err := s.registros.Update(ctx, usuarioID, id, campos); err != nil {
		return err
	}

	if err := s.enfileirarEvento(ctx, nil, model.BalancoEvent{
		Evento:    model.EventBalancoEditado,
		UsuarioID: usuarioID,
		BalancoID: id,
		Ano:       atual.Ano,
	}); err != nil {
		logrus.WithError(err).Warn("falha ao enfileirar evento de edição")
	}

	s.invalidarResumo(ctx, usuarioID, atual.Ano)
	if novoAno, ok := campos["ano"].(int); ok && novoAno != atual.Ano {
		s.invalidarResumo(ctx, usuarioID, novoAno)
	}
	return nil
}

func (s *BalancoService) Deletar(ctx context.Context, usuarioID, id string) error {
	atual, err := s.registros.GetByID(ctx, usuarioID, id)
	if err != nil {
		return err
	}

	if err := s.registros.Delete(ctx, usuarioID, id); err != nil {
		return err
	}

	if err := s.enfileirarEvento(ctx, nil, model.BalancoEvent{
		Evento:    model.EventBalancoDeletado,
		UsuarioID: usuarioID,
		BalancoID: id,
		Ano:       atual.Ano,
	}); err != nil {
		logrus.WithError(err).Warn("falha ao enfileirar evento de exclusão")
	}

	s.invalidarResumo(ctx, usuarioID, atual.Ano)
	return nil
}

// ResumoMensal returns the 12-month entradas/saidas/liquido view for a
// year, cached per (usuario, ano).
func (s *BalancoService) ResumoMensal(ctx context.Context, usuarioID string, ano int) (map[string]model.ResumoMes, error) {
	chave := chaveResumo(usuarioID, ano)
	if s.rdb != nil {
		if bruto, err := s.rdb.Get(ctx, chave).Result(); err == nil {
			var resumo map[string]model.ResumoMes
			if err := json.Unmarshal([]byte(bruto), &resumo); err == nil {
				return resumo, nil
			}
		}
	}

	registros, err := s.registros.ListByAno(ctx, usuarioID, ano)
	if err != nil {
		return nil, err
	}
	resumo := montarResumo(registros)

	if s.rdb != nil {
		if bruto, err := json.Marshal(resumo); err == nil {
			if err := s.rdb.Set(ctx, chave, bruto, s.cacheTTL).Err(); err != nil {
				logrus.WithError(err).Warn("falha ao gravar resumo no cache")
			}
		}
	}
	return resumo, nil
}

// montarResumo accumulates every record under its month. All 12 months are
// present in the output; records with an unknown mes are ignored.
func montarResumo(registros []*model.Balanco) map[string]model.ResumoMes {
	resumo := make(map[string]model.ResumoMes, len(model.Meses))
	for _, mes := range model.Meses {
		resumo[mes] = model.ResumoMes{
			Entradas: decimal.Zero,
			Saidas:   decimal.Zero,
			Liquido:  decimal.Zero,
		}
	}

	for _, r := range registros {
		m, ok := resumo[r.Mes]
		if !ok {
			continue
		}
		switch r.Tipo {
		case model.TipoEntrada:
			m.Entradas = m.Entradas.Add(r.Valor)
		case model.TipoSaida:
			m.Saidas = m.Saidas.Add(r.Valor)
		default:
			continue
		}
		m.Liquido = m.Entradas.Sub(m.Saidas)
		resumo[r.Mes] = m
	}
	return resumo
}

// ProcessarUpload runs one bank-statement file through its format parser
// and persists the surviving candidates in a single batch. Returns how many
// records were inserted.
func (s *BalancoService) ProcessarUpload(ctx context.Context, usuarioID, formato, mes string, ano int, arquivo []byte) (int, error) {
	parser := s.registry.Get(formato)
	if parser == nil {
		return 0, ErrFormatoInvalido
	}

	candidatos, pulos, err := parser.Parse(arquivo, mes, ano)
	if err != nil {
		return 0, err
	}
	logPulos(formato, pulos)

	if len(candidatos) == 0 {
		return 0, ErrNenhumRegistro
	}

	agora := s.agora()
	registros := make([]*model.Balanco, len(candidatos))
	for i := range candidatos {
		c := candidatos[i]
		c.UsuarioID = usuarioID
		c.CriadoEm = agora
		registros[i] = &c
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.registros.CreateBatch(ctx, tx, registros); err != nil {
			return err
		}
		return s.enfileirarEvento(ctx, tx, model.BalancoEvent{
			Evento:     model.EventBalancoImportado,
			UsuarioID:  usuarioID,
			Ano:        ano,
			Quantidade: len(registros),
		})
	})
	if err != nil {
		return 0, err
	}

	s.invalidarResumo(ctx, usuarioID, ano)
	return len(registros), nil
}

// ImportarNotion ingests the generic two-file export: one CSV of incomes,
// one of expenses. Malformed rows are filtered by the parser; a row that
// fails to persist aborts the import, the error goes back to the caller and
// the rows already written stay.
func (s *BalancoService) ImportarNotion(ctx context.Context, usuarioID string, entradas, saidas []byte) (int, error) {
	notion := importer.Notion{Ano: s.notionAno}

	candEntradas, pulosE, err := notion.Parse(entradas, model.TipoEntrada)
	if err != nil {
		return 0, err
	}
	candSaidas, pulosS, err := notion.Parse(saidas, model.TipoSaida)
	if err != nil {
		return 0, err
	}
	logPulos("notion", append(pulosE, pulosS...))

	agora := s.agora()
	total := 0
	anos := map[int]bool{}
	for _, cand := range append(candEntradas, candSaidas...) {
		c := cand
		c.UsuarioID = usuarioID
		c.CriadoEm = agora
		if err := s.registros.Create(ctx, nil, &c); err != nil {
			for ano := range anos {
				s.invalidarResumo(ctx, usuarioID, ano)
			}
			return total, err
		}
		total++
		anos[c.Ano] = true
	}

	if total > 0 {
		if err := s.enfileirarEvento(ctx, nil, model.BalancoEvent{
			Evento:     model.EventBalancoImportado,
			UsuarioID:  usuarioID,
			Quantidade: total,
		}); err != nil {
			logrus.WithError(err).Warn("falha ao enfileirar evento de import")
		}
	}
	for ano := range anos {
		s.invalidarResumo(ctx, usuarioID, ano)
	}
	return total, nil
}

// InvalidarResumo drops the cached summary for one (usuario, ano). Exposed
// so the recorrente materializer can call it after posting records.
func (s *BalancoService) InvalidarResumo(ctx context.Context, usuarioID string, ano int) {
	s.invalidarResumo(ctx, usuarioID, ano)
}

func (s *BalancoService) invalidarResumo(ctx context.Context, usuarioID string, ano int) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, chaveResumo(usuarioID, ano)).Err(); err != nil {
		logrus.WithError(err).Warn("falha ao invalidar cache do resumo")
	}
}

func (s *BalancoService) enfileirarEvento(ctx context.Context, tx *gorm.DB, ev model.BalancoEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return s.outbox.Create(ctx, tx, &model.OutboxMessage{
		MessageKey: ev.UsuarioID,
		Topic:      s.topico,
		Payload:    string(payload),
		Status:     model.OutboxStatusPending,
	})
}

func chaveResumo(usuarioID string, ano int) string {
	return fmt.Sprintf("resumo_mensal:%s:%d", usuarioID, ano)
}

func logPulos(formato string, pulos []importer.Skip) {
	for _, p := range pulos {
		logrus.WithFields(logrus.Fields{
			"formato": formato,
			"linha":   p.Linha,
			"motivo":  p.Motivo,
		}).Debug("linha ignorada na importação")
	}
}
