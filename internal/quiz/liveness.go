package quiz

import "time"

// IsLive reports whether the quiz currently accepts submissions.
//
// The shipped rule is a disjunction with inclusive bounds: a quiz is live
// once its schedule date has arrived OR while its end date has not passed.
// The only way to be not-live is a schedule date in the future and an end
// date in the past at the same time.
//
// TODO: confirm with product whether this should be a conjunction (a closed
// schedule..end window). As written almost every quiz is perpetually live.
func (q Quiz) IsLive(now time.Time) bool {
	return !now.Before(q.ScheduleDate) || !now.After(q.EndDate)
}
