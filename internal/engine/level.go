package engine

// LevelXPCoef sets the quadratic leveling curve: reaching level L takes
// LevelXPCoef * L^2 total XP. Early levels come fast, later ones need
// sustained engagement.
const LevelXPCoef = 100

// XPRequiredForLevel returns the total XP threshold for the given level.
// Level 0 requires 0 XP.
func XPRequiredForLevel(level int) int {
	if level <= 0 {
		return 0
	}
	return LevelXPCoef * level * level
}

// CalculateLevel returns the highest level L such that
// totalXP >= XPRequiredForLevel(L). Monotonic in totalXP.
func CalculateLevel(totalXP int) int {
	if totalXP <= 0 {
		return 0
	}

	// Exponential search upper bound, then binary search.
	low := 0
	high := 1
	for XPRequiredForLevel(high) <= totalXP {
		low = high
		high *= 2
		if high > 1_000_000 {
			break
		}
	}

	for low+1 < high {
		mid := low + (high-low)/2
		if XPRequiredForLevel(mid) <= totalXP {
			low = mid
		} else {
			high = mid
		}
	}
	return low
}

type LevelProgress struct {
	// Current is the XP earned since the start of the current level band.
	Current int
	// Max is the XP width of the band.
	Max int
	// Percentage is always in [0,100].
	Percentage float64
}

// GetLevelProgress returns progress within the current level band, for
// progress-bar rendering.
func GetLevelProgress(totalXP int) LevelProgress {
	if totalXP < 0 {
		totalXP = 0
	}
	level := CalculateLevel(totalXP)
	floor := XPRequiredForLevel(level)
	ceil := XPRequiredForLevel(level + 1)

	p := LevelProgress{
		Current: totalXP - floor,
		Max:     ceil - floor,
	}
	if p.Max > 0 {
		p.Percentage = 100 * float64(p.Current) / float64(p.Max)
	}
	if p.Percentage > 100 {
		p.Percentage = 100
	}
	return p
}
