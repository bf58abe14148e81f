package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/sem-titulo/controle-financeiro/internal/model"
	"github.com/sem-titulo/controle-financeiro/internal/repository"
)

type recorrenteStore interface {
	Create(ctx context.Context, rec *model.Recorrente) error
	GetByID(ctx context.Context, usuarioID, id string) (*model.Recorrente, error)
	List(ctx context.Context, usuarioID string) ([]*model.Recorrente, error)
	Update(ctx context.Context, usuarioID, id string, campos map[string]interface{}) error
	Delete(ctx context.Context, usuarioID, id string) error
}

type balancoCreator interface {
	Create(ctx context.Context, tx *gorm.DB, b *model.Balanco) error
}

// RecorrenteService manages recurring-transaction templates and their
// on-demand materialization into balanço records.
type RecorrenteService struct {
	recorrentes recorrenteStore
	balancos    balancoCreator
	// invalidarResumo drops the cached yearly summary after materialization;
	// nil-safe for tests.
	invalidarResumo func(ctx context.Context, usuarioID string, ano int)
	agora           func() time.Time
}

func NewRecorrenteService(db *gorm.DB, invalidarResumo func(ctx context.Context, usuarioID string, ano int)) *RecorrenteService {
	return &RecorrenteService{
		recorrentes:     repository.NewRecorrenteRepository(db),
		balancos:        repository.NewBalancoRepository(db),
		invalidarResumo: invalidarResumo,
		agora:           time.Now,
	}
}

// CriarRecorrenteInput carries the validated fields of a new template.
type CriarRecorrenteInput struct {
	Descricao string
	Valor     decimal.Decimal
	Tipo      string
	Categoria string
	Tag       string
	Dia       int
	Inicio    *string
	Fim       *string
}

func (s *RecorrenteService) Criar(ctx context.Context, usuarioID string, in CriarRecorrenteInput) (*model.Recorrente, error) {
	rec := &model.Recorrente{
		ID:        uuid.NewString(),
		Descricao: in.Descricao,
		Valor:     in.Valor.Abs(),
		Tipo:      in.Tipo,
		Categoria: in.Categoria,
		Tag:       in.Tag,
		Dia:       in.Dia,
		Inicio:    in.Inicio,
		Fim:       in.Fim,
		UsuarioID: usuarioID,
	}
	if err := s.recorrentes.Create(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *RecorrenteService) Buscar(ctx context.Context, usuarioID, id string) (*model.Recorrente, error) {
	return s.recorrentes.GetByID(ctx, usuarioID, id)
}

// Listar never returns a nil slice; an empty result serializes as [].
func (s *RecorrenteService) Listar(ctx context.Context, usuarioID string) ([]*model.Recorrente, error) {
	recs, err := s.recorrentes.List(ctx, usuarioID)
	if err != nil {
		return nil, err
	}
	if recs == nil {
		recs = []*model.Recorrente{}
	}
	return recs, nil
}

func (s *RecorrenteService) Atualizar(ctx context.Context, usuarioID, id string, campos map[string]interface{}) error {
	return s.recorrentes.Update(ctx, usuarioID, id, campos)
}

func (s *RecorrenteService) Deletar(ctx context.Context, usuarioID, id string) error {
	return s.recorrentes.Delete(ctx, usuarioID, id)
}

// GerarBalancos materializes every template of the caller into a balanço
// for the current month and year. A template that is malformed or outside
// its inicio/fim bounds is skipped; the remaining templates still post.
// Returns the number of records actually created.
func (s *RecorrenteService) GerarBalancos(ctx context.Context, usuarioID string) (int, error) {
	recs, err := s.recorrentes.List(ctx, usuarioID)
	if err != nil {
		return 0, err
	}

	agora := s.agora()
	mes := model.MesDe(agora.Month())
	ano := agora.Year()

	criados := 0
	for _, rec := range recs {
		if motivo := validarRecorrente(rec, agora); motivo != "" {
			logrus.WithFields(logrus.Fields{
				"recorrente": rec.ID,
				"motivo":     motivo,
			}).Debug("recorrente ignorada na geração")
			continue
		}

		b := &model.Balanco{
			ID:         uuid.NewString(),
			Fonte:      rec.Descricao,
			Valor:      rec.Valor,
			Tipo:       rec.Tipo,
			Mes:        mes,
			Ano:        ano,
			Observacao: "Gerado automaticamente da recorrente: " + rec.Descricao,
			Tag:        rec.Tag,
			Categoria:  rec.Categoria,
			UsuarioID:  usuarioID,
			CriadoEm:   agora,
		}
		if err := s.balancos.Create(ctx, nil, b); err != nil {
			logrus.WithError(err).WithField("recorrente", rec.ID).Warn("falha ao gerar balanço da recorrente")
			continue
		}
		criados++
	}

	if criados > 0 && s.invalidarResumo != nil {
		s.invalidarResumo(ctx, usuarioID, ano)
	}
	return criados, nil
}

// validarRecorrente returns a non-empty skip reason when the template must
// not post this month.
func validarRecorrente(rec *model.Recorrente, agora time.Time) string {
	if rec.Descricao == "" {
		return "descrição vazia"
	}
	if !model.TipoValido(rec.Tipo) {
		return "tipo inválido"
	}
	if rec.Dia < 1 || rec.Dia > 31 {
		return "dia fora do intervalo"
	}
	if !rec.Valor.IsPositive() {
		return "valor não positivo"
	}
	if rec.Inicio != nil && *rec.Inicio != "" {
		inicio, err := time.Parse("2006-01-02", *rec.Inicio)
		if err != nil {
			return "data de início inválida"
		}
		if agora.Before(inicio) {
			return "antes do início da vigência"
		}
	}
	if rec.Fim != nil && *rec.Fim != "" {
		fim, err := time.Parse("2006-01-02", *rec.Fim)
		if err != nil {
			return "data de fim inválida"
		}
		if agora.After(fim.AddDate(0, 0, 1)) {
			return "após o fim da vigência"
		}
	}
	return ""
}
