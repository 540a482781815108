package model

import "time"

// QuizProgress is the per-caller quiz record.
// swagger:model QuizProgress
type QuizProgress struct {
	PrincipalID   string    `gorm:"primaryKey;size:36" json:"-"`
	AttemptsCount uint64    `gorm:"default:0" json:"attemptsCount"`
	BestScore     uint64    `gorm:"default:0" json:"bestScore"`
	LastScore     uint64    `gorm:"default:0" json:"lastScore"`
	UpdatedAt     time.Time `json:"-"`
}

func (QuizProgress) TableName() string {
	return "quiz_progress"
}

// NextQuizProgress folds one finished session into the previous record.
// An absent record counts as zero attempts and a best score of zero.
func NextQuizProgress(prev Option[QuizProgress], score uint64) QuizProgress {
	p, _ := prev.Get()
	best := p.BestScore
	if score > best {
		best = score
	}
	return QuizProgress{
		PrincipalID:   p.PrincipalID,
		AttemptsCount: p.AttemptsCount + 1,
		BestScore:     best,
		LastScore:     score,
	}
}
