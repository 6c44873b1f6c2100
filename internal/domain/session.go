package domain

// QuizSession is one user's single attempt at one quiz. A user may
// attempt a given quiz at most once.
//
// Description and Language are copied from the quiz at session-creation
// time so the historical record stays stable even if the quiz changes or
// is deleted later. QuizID is nil once the source quiz has been deleted.
type QuizSession struct {
	ID     int64
	QuizID *int64
	UserID int64

	Description string
	Language    string
}

// QuizSessionAnswer is one recorded answer inside a session. Question,
// Answer and Right are copied from the source question and answer at
// submission time; AnswerID is nil once the source answer has been
// deleted. Deleting the owning session deletes its recorded answers.
type QuizSessionAnswer struct {
	ID        int64
	AnswerID  *int64
	SessionID int64

	Question string
	Answer   string
	Right    bool
}

// QuizSessionDetail is the read-side view of a session assembled in
// memory after submission: the persisted session row plus the quiz it was
// taken from and the recorded answers. The attached Quiz and Answers are
// a convenience for callers and are not persisted as part of the session.
type QuizSessionDetail struct {
	QuizSession

	Quiz    *Quiz
	Answers []QuizSessionAnswer
}
