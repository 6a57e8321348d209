package results

// Entry is the input for appending a completed quiz to the history.
type Entry struct {
	UserID         string
	UserName       string
	Score          int
	TimeTaken      int
	CorrectAnswers int
	TotalQuestions int
	Skills         []string
}

// ResultResponse is the wire shape of a quiz result; it is also the value
// stored under the user's "latest result" key.
type ResultResponse struct {
	UserID         string   `json:"userId"`
	UserName       string   `json:"userName"`
	Score          int      `json:"score"`
	TimeTaken      int      `json:"timeTaken"`
	CorrectAnswers int      `json:"correctAnswers"`
	TotalQuestions int      `json:"totalQuestions"`
	Skills         []string `json:"skills"`
}

// SortField names the single column a ranking view is ordered by.
type SortField string

const (
	SortByName    SortField = "userName"
	SortByScore   SortField = "score"
	SortByTime    SortField = "timeTaken"
	SortByCorrect SortField = "correctAnswers"
	SortByTotal   SortField = "totalQuestions"
)

var allSortFields = []SortField{SortByName, SortByScore, SortByTime, SortByCorrect, SortByTotal}

func (f SortField) IsValid() bool {
	for _, v := range allSortFields {
		if f == v {
			return true
		}
	}
	return false
}

// RankQuery describes a read-side view over the history: sorted by one
// field, optionally filtered by a case-insensitive skill substring.
type RankQuery struct {
	SortBy SortField
	Desc   bool
	Skill  string
}
