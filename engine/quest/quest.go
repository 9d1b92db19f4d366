// Package quest tracks quest progress and hands out rewards.
package quest

import (
	"fmt"

	"github.com/nathoo/emberwood/types"
)

// Advance records one game event against every incomplete quest that
// matches its kind and target. A quest that reaches its count is marked
// completed and its reward is granted exactly once. The returned lines
// narrate progress and completion.
func Advance(quests []*types.Quest, p *types.Player, kind types.QuestKind, target string) []string {
	var lines []string
	for _, q := range quests {
		if q.Completed || q.Kind != kind || q.Target != target {
			continue
		}
		q.Progress++
		if q.Progress < q.Count {
			lines = append(lines, fmt.Sprintf("Quest progress: %s (%d/%d)", q.Narrative, q.Progress, q.Count))
			continue
		}
		q.Progress = q.Count
		q.Completed = true
		p.XP += q.RewardXP
		p.Gold += q.RewardGold
		lines = append(lines, fmt.Sprintf("Quest complete: %s! You gain %d xp and %d gold.", q.Narrative, q.RewardXP, q.RewardGold))
	}
	return lines
}

// Describe renders one quest as a journal line.
func Describe(q *types.Quest) string {
	if q.Completed {
		return fmt.Sprintf("[done] %s", q.Narrative)
	}
	return fmt.Sprintf("[%d/%d] %s", q.Progress, q.Count, q.Narrative)
}

// AllComplete reports whether every quest has been completed.
func AllComplete(quests []*types.Quest) bool {
	for _, q := range quests {
		if !q.Completed {
			return false
		}
	}
	return len(quests) > 0
}
