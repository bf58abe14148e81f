package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/sem-titulo/controle-financeiro/internal/model"
)

// ErrBalancoNotFound covers both a missing id and an id owned by another
// user; callers must not be able to tell the two apart.
var ErrBalancoNotFound = errors.New("registro de balanço não encontrado")

// Filtros are the optional equality filters of a balanço listing. Zero
// values mean "no filter"; everything set is ANDed.
type Filtros struct {
	Mes       string
	Ano       int
	Tipo      string
	Categoria string
	Tag       string
}

// BalancoRepository is the owner-scoped data access for balanço records.
// Every method takes the owner id; there is no unscoped accessor, so
// cross-owner reads or writes are structurally impossible.
type BalancoRepository struct {
	db *gorm.DB
}

func NewBalancoRepository(db *gorm.DB) *BalancoRepository {
	return &BalancoRepository{db: db}
}

func (r *BalancoRepository) Create(ctx context.Context, tx *gorm.DB, b *model.Balanco) error {
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx).Create(b).Error
}

// CreateBatch inserts all candidates in one statement. Either the whole
// batch lands or the caller gets an error; there is no partial commit here.
func (r *BalancoRepository) CreateBatch(ctx context.Context, tx *gorm.DB, registros []*model.Balanco) error {
	if len(registros) == 0 {
		return nil
	}
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx).Create(&registros).Error
}

func (r *BalancoRepository) GetByID(ctx context.Context, usuarioID, id string) (*model.Balanco, error) {
	var b model.Balanco
	err := r.db.WithContext(ctx).
		Where("id = ? AND usuario_id = ?", id, usuarioID).
		First(&b).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBalancoNotFound
		}
		return nil, err
	}
	return &b, nil
}

// Update applies a partial update: only the given columns change. MySQL
// reports zero affected rows for a no-op update, so a miss is confirmed
// with an existence probe before being reported as not found — repeating
// the same update stays idempotent.
func (r *BalancoRepository) Update(ctx context.Context, usuarioID, id string, campos map[string]interface{}) error {
	if len(campos) == 0 {
		_, err := r.GetByID(ctx, usuarioID, id)
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&model.Balanco{}).
		Where("id = ? AND usuario_id = ?", id, usuarioID).
		Updates(campos)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		if _, err := r.GetByID(ctx, usuarioID, id); err != nil {
			return err
		}
	}
	return nil
}

func (r *BalancoRepository) Delete(ctx context.Context, usuarioID, id string) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND usuario_id = ?", id, usuarioID).
		Delete(&model.Balanco{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBalancoNotFound
	}
	return nil
}

func (r *BalancoRepository) List(ctx context.Context, usuarioID string, f Filtros) ([]*model.Balanco, error) {
	query := r.db.WithContext(ctx).
		Model(&model.Balanco{}).
		Where("usuario_id = ?", usuarioID)

	if f.Mes != "" {
		query = query.Where("mes = ?", f.Mes)
	}
	if f.Ano != 0 {
		query = query.Where("ano = ?", f.Ano)
	}
	if f.Tipo != "" {
		query = query.Where("tipo = ?", f.Tipo)
	}
	if f.Categoria != "" {
		query = query.Where("categoria = ?", f.Categoria)
	}
	if f.Tag != "" {
		query = query.Where("tag = ?", f.Tag)
	}

	registros := []*model.Balanco{}
	err := query.Order("criado_em DESC").Find(&registros).Error
	return registros, err
}

func (r *BalancoRepository) ListByAno(ctx context.Context, usuarioID string, ano int) ([]*model.Balanco, error) {
	registros := []*model.Balanco{}
	err := r.db.WithContext(ctx).
		Where("usuario_id = ? AND ano = ?", usuarioID, ano).
		Find(&registros).Error
	return registros, err
}
