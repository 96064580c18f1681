package engine

// AttemptQuota bounds the retry loop of a single run.
//
// Two ceilings apply: the number of passes and the digit count a pass may
// use. Digits double on most retries, so the digit ceiling normally bites
// first; the attempt ceiling catches configurations that start high.
type AttemptQuota struct {
	maxAttempts int
	maxDigits   int
	attempts    int
}

// NewAttemptQuota creates a quota. Non-positive limits fall back to
// DefaultMaxAttempts and DefaultMaxDigits.
func NewAttemptQuota(maxAttempts, maxDigits int) *AttemptQuota {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	if maxDigits <= 0 {
		maxDigits = DefaultMaxDigits
	}
	return &AttemptQuota{maxAttempts: maxAttempts, maxDigits: maxDigits}
}

// Allow records one more pass at digits. It returns false, without
// recording, if that pass would exceed either ceiling.
func (q *AttemptQuota) Allow(digits int) bool {
	if q.attempts >= q.maxAttempts || digits > q.maxDigits {
		return false
	}
	q.attempts++
	return true
}

// Attempts returns the number of passes allowed so far.
func (q *AttemptQuota) Attempts() int {
	return q.attempts
}

// MaxAttempts returns the attempt ceiling.
func (q *AttemptQuota) MaxAttempts() int {
	return q.maxAttempts
}

// MaxDigits returns the digit ceiling.
func (q *AttemptQuota) MaxDigits() int {
	return q.maxDigits
}
