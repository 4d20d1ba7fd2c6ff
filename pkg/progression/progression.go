// Package progression computes lesson access, advancement and progress for a
// course. All functions are pure: callers load the course tree and the
// learner's completion set, and persist whatever intents come back.
package progression

import (
	"errors"
	"sort"
)

// Access states for a lesson, from the learner's point of view
const (
	Accessible               = "ACCESSIBLE"
	LockedNoCourseAccess     = "LOCKED_NO_COURSE_ACCESS"
	LockedPreviousIncomplete = "LOCKED_PREVIOUS_INCOMPLETE"
)

// ErrDuplicateLesson is returned when the same lesson ID appears more than
// once in a course tree. Such a tree cannot be ordered.
var ErrDuplicateLesson = errors.New("progression: duplicate lesson id in course tree")

// Lesson is a node in the course tree
type Lesson struct {
	ID       uint
	Position int
}

// Chapter is an ordered group of lessons. Chapters affect display grouping
// only; gating runs over the flattened course-wide sequence.
type Chapter struct {
	ID       uint
	Position int
	Lessons  []Lesson
}

// Access is the resolved lock state for one lesson
type Access struct {
	State            string `json:"state"`
	RequiredLessonID uint   `json:"required_lesson_id,omitempty"` // set for LOCKED_PREVIOUS_INCOMPLETE
}

// Flatten orders the course tree into a single lesson sequence by
// (chapter position, lesson position). The sort is stable so authoring-time
// ties keep their original order.
func Flatten(chapters []Chapter) ([]Lesson, error) {
	ordered := make([]Chapter, len(chapters))
	copy(ordered, chapters)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Position < ordered[j].Position
	})

	var flat []Lesson
	seen := make(map[uint]bool)
	for _, ch := range ordered {
		lessons := make([]Lesson, len(ch.Lessons))
		copy(lessons, ch.Lessons)
		sort.SliceStable(lessons, func(i, j int) bool {
			return lessons[i].Position < lessons[j].Position
		})
		for _, l := range lessons {
			if seen[l.ID] {
				return nil, ErrDuplicateLesson
			}
			seen[l.ID] = true
			flat = append(flat, l)
		}
	}
	return flat, nil
}

// ResolveAccess decides the lock state of every lesson in the tree.
//
// A lesson is accessible when the learner has course access and either it is
// the first lesson of the course or the preceding lesson in the flattened
// sequence is completed. Completed lessons stay accessible regardless of
// what precedes them, so a reorder never revokes already-seen content.
func ResolveAccess(chapters []Chapter, completed map[uint]bool, hasCourseAccess bool) (map[uint]Access, error) {
	flat, err := Flatten(chapters)
	if err != nil {
		return nil, err
	}

	decisions := make(map[uint]Access, len(flat))
	for i, l := range flat {
		switch {
		case !hasCourseAccess:
			decisions[l.ID] = Access{State: LockedNoCourseAccess}
		case completed[l.ID]:
			decisions[l.ID] = Access{State: Accessible}
		case i == 0 || completed[flat[i-1].ID]:
			decisions[l.ID] = Access{State: Accessible}
		default:
			decisions[l.ID] = Access{State: LockedPreviousIncomplete, RequiredLessonID: flat[i-1].ID}
		}
	}
	return decisions, nil
}

// NextLesson returns the lesson that follows lessonID in the flattened
// sequence. The second return is false when lessonID is the last lesson of
// the course (course complete) or is not part of the tree. The hint is
// advisory navigation only; ResolveAccess remains the authority on locks.
func NextLesson(chapters []Chapter, lessonID uint) (uint, bool) {
	flat, err := Flatten(chapters)
	if err != nil {
		return 0, false
	}
	for i, l := range flat {
		if l.ID == lessonID {
			if i+1 < len(flat) {
				return flat[i+1].ID, true
			}
			return 0, false
		}
	}
	return 0, false
}
