package repository

import (
	"github.com/yukikurage/scrum-board-api/internal/database"
	"github.com/yukikurage/scrum-board-api/internal/filters"
	"github.com/yukikurage/scrum-board-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSprintRepository is a GORM implementation of SprintRepository
type GormSprintRepository struct {
	db *gorm.DB
}

// NewSprintRepository creates a new SprintRepository
func NewSprintRepository(db *gorm.DB) SprintRepository {
	return &GormSprintRepository{db: db}
}

// Create creates a new sprint
func (r *GormSprintRepository) Create(sprint *models.Sprint) error {
	return r.db.Omit(clause.Associations).Create(sprint).Error
}

// FindByID finds a sprint by ID
func (r *GormSprintRepository) FindByID(id uint64) (*models.Sprint, error) {
	var sprint models.Sprint
	if err := r.db.First(&sprint, id).Error; err != nil {
		return nil, err
	}
	return &sprint, nil
}

// List retrieves sprints with filtering, search, ordering and pagination
func (r *GormSprintRepository) List(filter SprintFilter) ([]models.Sprint, int64, error) {
	query := r.db.Model(&models.Sprint{}).
		Scopes(filter.Clauses.Scopes()...).
		Scopes(filters.SprintSearch.Scope(filter.Search))

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sprints := []models.Sprint{}
	if err := query.
		Scopes(filters.SprintOrdering.Scope(filter.Ordering)).
		Scopes(database.Paginate(filter.Pagination)).
		Find(&sprints).Error; err != nil {
		return nil, 0, err
	}

	return sprints, total, nil
}

// Update replaces the stored sprint
func (r *GormSprintRepository) Update(sprint *models.Sprint) error {
	return r.db.Omit(clause.Associations).Save(sprint).Error
}

// Delete deletes a sprint and its tasks in a transaction
func (r *GormSprintRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("sprint_id = ?", id).Delete(&models.Task{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.Sprint{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
