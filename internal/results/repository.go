package results

import "gorm.io/gorm"

// Repository is append-only: there is no update or delete.
type Repository interface {
	Create(result *QuizResult) error
	ListAll() ([]QuizResult, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(result *QuizResult) error {
	return r.db.Create(result).Error
}

func (r *repository) ListAll() ([]QuizResult, error) {
	var all []QuizResult
	if err := r.db.Order("seq ASC").Find(&all).Error; err != nil {
		return nil, err
	}
	return all, nil
}
