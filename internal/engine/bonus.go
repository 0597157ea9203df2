package engine

// SectionBonusXP is the fixed award for completing every task in a category,
// independent of how many tasks it holds.
const SectionBonusXP = 20

// QuestBonusAmount returns the quest-completion bonus, scaled by how many
// categories the quest carries.
func QuestBonusAmount(categoryCount int) int {
	switch {
	case categoryCount <= 0:
		return 0
	case categoryCount <= 2:
		return 80
	case categoryCount <= 5:
		return 120
	default:
		return 180
	}
}
