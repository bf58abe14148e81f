package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/sem-titulo/controle-financeiro/internal/model"
)

var ErrRecorrenteNotFound = errors.New("transação recorrente não encontrada")

// RecorrenteRepository is the owner-scoped data access for recurring
// transaction templates.
type RecorrenteRepository struct {
	db *gorm.DB
}

func NewRecorrenteRepository(db *gorm.DB) *RecorrenteRepository {
	return &RecorrenteRepository{db: db}
}

func (r *RecorrenteRepository) Create(ctx context.Context, rec *model.Recorrente) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *RecorrenteRepository) GetByID(ctx context.Context, usuarioID, id string) (*model.Recorrente, error) {
	var rec model.Recorrente
	err := r.db.WithContext(ctx).
		Where("id = ? AND usuario_id = ?", id, usuarioID).
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecorrenteNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (r *RecorrenteRepository) List(ctx context.Context, usuarioID string) ([]*model.Recorrente, error) {
	recs := []*model.Recorrente{}
	err := r.db.WithContext(ctx).
		Where("usuario_id = ?", usuarioID).
		Find(&recs).Error
	return recs, err
}

func (r *RecorrenteRepository) Update(ctx context.Context, usuarioID, id string, campos map[string]interface{}) error {
	if len(campos) == 0 {
		_, err := r.GetByID(ctx, usuarioID, id)
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&model.Recorrente{}).
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

func (r *RecorrenteRepository) Delete(ctx context.Context, usuarioID, id string) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND usuario_id = ?", id, usuarioID).
		Delete(&model.Recorrente{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRecorrenteNotFound
	}
	return nil
}
