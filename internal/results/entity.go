package results

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// QuizResult is one immutable entry in the historical collection. Rows are
// only ever inserted; Seq preserves append order for read-side views.
type QuizResult struct {
	ID             uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Seq            int64          `gorm:"autoIncrement;uniqueIndex" json:"-"`
	UserID         uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	UserName       string         `gorm:"type:text;not null" json:"user_name"`
	Score          int            `gorm:"not null" json:"score"`
	TimeTaken      int            `gorm:"not null" json:"time_taken"`
	CorrectAnswers int            `gorm:"not null" json:"correct_answers"`
	TotalQuestions int            `gorm:"not null" json:"total_questions"`
	Skills         datatypes.JSON `gorm:"type:jsonb;not null" json:"skills"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
}
