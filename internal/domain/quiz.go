package domain

// Quiz is a single quiz: a description plus the locale tag it is written
// in. A quiz is immutable once created.
//
// Questions is nil unless the caller explicitly loaded them; listing
// operations never populate it.
type Quiz struct {
	ID int64

	Description string
	Language    string

	Questions []QuizQuestion
}

// QuizQuestion is one question belonging to exactly one quiz. Deleting
// the owning quiz deletes its questions.
type QuizQuestion struct {
	ID     int64
	QuizID int64

	Question string
}

// QuizAnswer is one answer option belonging to exactly one question.
// Deleting the owning question deletes its answers. The literal answer
// text is unique within a question.
type QuizAnswer struct {
	ID         int64
	QuestionID int64

	Value string
	Right bool
}
