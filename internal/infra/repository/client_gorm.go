package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

type ClientGormRepository struct {
	db *gorm.DB
}

func NewClientGormRepository(db *gorm.DB) *ClientGormRepository {
	return &ClientGormRepository{db: db}
}

func (r *ClientGormRepository) CreateClient(ctx context.Context, c *models.Client) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *ClientGormRepository) GetClient(ctx context.Context, id uint) (*models.Client, error) {
	var c models.Client
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

// GetClientByEmail returns the oldest client registered with the email.
func (r *ClientGormRepository) GetClientByEmail(ctx context.Context, email string) (*models.Client, error) {
	var c models.Client
	if err := r.db.WithContext(ctx).
		Where("email = ?", email).
		Order("id ASC").
		First(&c).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (r *ClientGormRepository) ListClients(ctx context.Context) ([]models.Client, error) {
	var clients []models.Client
	if err := r.db.WithContext(ctx).
		Order("full_name ASC").
		Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

func (r *ClientGormRepository) UpdateClient(ctx context.Context, c *models.Client) error {
	return r.db.WithContext(ctx).Save(c).Error
}

// DeleteClient removes the client with its appointments and their messages.
func (r *ClientGormRepository) DeleteClient(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Client{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.ErrNotFound
		}

		apIDs := tx.Model(&models.Appointment{}).Select("id").Where("client_id = ?", id)

		if err := tx.Where("appointment_id IN (?)", apIDs).
			Delete(&models.Message{}).Error; err != nil {
			return err
		}
		if err := tx.Exec(
			"DELETE FROM appointment_services WHERE appointment_id IN (?)", apIDs,
		).Error; err != nil {
			return err
		}
		return tx.Where("client_id = ?", id).Delete(&models.Appointment{}).Error
	})
}

func (r *ClientGormRepository) ClientEmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Client{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
