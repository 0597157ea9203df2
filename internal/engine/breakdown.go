package engine

import (
	"encoding/json"
	"fmt"
	"strings"
)

// BreakdownGroup is one category descriptor produced by the external
// breakdown collaborator.
type BreakdownGroup struct {
	Title string               `json:"title"`
	Tasks []BreakdownGroupTask `json:"tasks"`
}

type BreakdownGroupTask struct {
	Name        string `json:"name"`
	Difficulty  string `json:"difficulty"`
	Skill       string `json:"skillCategory"`
	Description string `json:"description,omitempty"`
}

// ParseBreakdown decodes and validates a collaborator batch. The input is
// untrusted structured data: every group needs a title and every task a name
// before anything is applied. An empty list is valid (it resets the quest to
// no categories). Unknown difficulty or skill values fall back to defaults
// instead of failing, matching how user input is treated elsewhere.
func ParseBreakdown(data []byte) ([]QuestCategory, error) {
	var groups []BreakdownGroup
	if err := json.Unmarshal(data, &groups); err != nil {
		return nil, fmt.Errorf("decode breakdown: %w", err)
	}
	return ValidateBreakdown(groups)
}

// ValidateBreakdown converts descriptor groups into quest categories,
// rejecting the whole batch on the first missing required field.
func ValidateBreakdown(groups []BreakdownGroup) ([]QuestCategory, error) {
	cats := make([]QuestCategory, 0, len(groups))
	for gi, g := range groups {
		if strings.TrimSpace(g.Title) == "" {
			return nil, BreakdownError{Group: gi, Task: -1, Reason: "title is required"}
		}
		cat := QuestCategory{
			ID:    NewID(),
			Title: strings.TrimSpace(g.Title),
			Tasks: make([]QuestTask, 0, len(g.Tasks)),
		}
		for ti, bt := range g.Tasks {
			if strings.TrimSpace(bt.Name) == "" {
				return nil, BreakdownError{Group: gi, Task: ti, Reason: "name is required"}
			}
			d := Difficulty(strings.ToLower(strings.TrimSpace(bt.Difficulty)))
			if !d.IsValid() {
				d = DefaultDifficulty
			}
			sk := Skill(strings.ToLower(strings.TrimSpace(bt.Skill)))
			if !sk.IsValid() {
				sk = SkillDefault
			}
			cat.Tasks = append(cat.Tasks, QuestTask{
				ID:          NewID(),
				Name:        strings.TrimSpace(bt.Name),
				Status:      StatusPending,
				Difficulty:  d,
				Skill:       sk,
				Description: strings.TrimSpace(bt.Description),
			})
		}
		cats = append(cats, cat)
	}
	return cats, nil
}
