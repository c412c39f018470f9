package spacedrep

// Ease factor bounds. New cards start at MaxEaseFactor.
const (
	MinEaseFactor = 1.3
	MaxEaseFactor = 2.5
)

// KnownEaseStep is added to the ease factor when a card is known.
const KnownEaseStep = 0.15

// UnknownEaseStep is subtracted from the ease factor when a card is not known.
const UnknownEaseStep = 0.2

// IntervalMultiplier turns an ease factor into an interval in days:
// days = ceil(ease * IntervalMultiplier).
const IntervalMultiplier = 2

// RelearnIntervalDays is the interval after an unknown outcome.
const RelearnIntervalDays = 1
