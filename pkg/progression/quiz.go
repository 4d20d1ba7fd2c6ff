package progression

import "math"

// DefaultPassingScore applies when a quiz has no explicit threshold.
const DefaultPassingScore = 70

// Answer is one selectable option of a quiz question
type Answer struct {
	ID      uint
	Correct bool
}

// Question carries its options; only correctness matters for scoring
type Question struct {
	ID      uint
	Answers []Answer
}

// Result is a scored quiz attempt
type Result struct {
	Score   int `json:"score"` // rounded percentage 0-100
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// ScoreQuiz grades a selection map (questionID -> chosen answerID) against
// the quiz questions. A question with no selection, or with a selection that
// is not one of its correct answers, counts as incorrect. An empty quiz
// scores 0 and can never pass.
func ScoreQuiz(questions []Question, selections map[uint]uint) Result {
	total := len(questions)
	if total == 0 {
		return Result{}
	}

	correct := 0
	for _, q := range questions {
		chosen, ok := selections[q.ID]
		if !ok {
			continue
		}
		for _, a := range q.Answers {
			if a.ID == chosen && a.Correct {
				correct++
				break
			}
		}
	}

	return Result{
		Score:   roundPercent(correct, total),
		Correct: correct,
		Total:   total,
	}
}

// PassedAgainst reports whether the result meets the passing threshold.
// A non-positive threshold falls back to DefaultPassingScore. An empty quiz
// (Total == 0) never passes.
func (r Result) PassedAgainst(passingScore int) bool {
	if r.Total == 0 {
		return false
	}
	if passingScore <= 0 {
		passingScore = DefaultPassingScore
	}
	return r.Score >= passingScore
}

// Summary is the course-level progress aggregate
type Summary struct {
	CompletedLessons      int `json:"completed_lessons"`
	TotalLessons          int `json:"total_lessons"`
	CompletionPercentage  int `json:"completion_percentage"`
	TotalWatchTimeSeconds int `json:"total_watch_time_seconds"`
}

// Summarize computes display statistics. It depends only on counts, never on
// lesson order, so reordering a course leaves the percentage unchanged.
func Summarize(totalLessons, completedLessons, watchTimeSeconds int) Summary {
	s := Summary{
		CompletedLessons:      completedLessons,
		TotalLessons:          totalLessons,
		TotalWatchTimeSeconds: watchTimeSeconds,
	}
	if totalLessons > 0 {
		s.CompletionPercentage = roundPercent(completedLessons, totalLessons)
	}
	return s
}

func roundPercent(part, whole int) int {
	return int(math.Round(100 * float64(part) / float64(whole)))
}
