// Package quest tracks learning quests that reward coins.
//
// The tracker never runs code. After each execution the caller hands it a
// Context describing session state, and Check completes every unlocked
// quest whose objectives all hold.
package quest

import (
	"fmt"
	"strings"

	"github.com/you-not-fish/cang/internal/coins"
	"github.com/you-not-fish/cang/internal/eval"
)

// Difficulty grades a quest.
type Difficulty uint8

const (
	Beginner Difficulty = iota
	Intermediate
	Advanced
)

var difficultyNames = [...]string{
	Beginner:     "Beginner",
	Intermediate: "Intermediate",
	Advanced:     "Advanced",
}

func (d Difficulty) String() string {
	if int(d) < len(difficultyNames) {
		return difficultyNames[d]
	}
	return fmt.Sprintf("Difficulty(%d)", d)
}

// ParseDifficulty maps a case-insensitive name to a Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	for d, name := range difficultyNames {
		if strings.EqualFold(s, name) {
			return Difficulty(d), nil
		}
	}
	return 0, fmt.Errorf("unknown difficulty %q", s)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Difficulty) UnmarshalText(b []byte) error {
	v, err := ParseDifficulty(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// Quest is a goal with objectives and coin rewards.
type Quest struct {
	ID            string
	Title         string
	Description   string
	Difficulty    Difficulty
	Objectives    []Objective
	Rewards       []coins.Reward
	Prerequisites []string // IDs that must be completed first

	Unlocked  bool
	Completed bool
}

// New returns a quest that is unlocked when it has no prerequisites.
func New(id, title, description string, d Difficulty, objectives []Objective, rewards []coins.Reward, prereqs ...string) *Quest {
	return &Quest{
		ID:            id,
		Title:         title,
		Description:   description,
		Difficulty:    d,
		Objectives:    objectives,
		Rewards:       rewards,
		Prerequisites: prereqs,
		Unlocked:      len(prereqs) == 0,
	}
}

// Heading returns "[Difficulty] Title".
func (q *Quest) Heading() string {
	return fmt.Sprintf("[%s] %s", q.Difficulty, q.Title)
}

// Context is the session state objectives are checked against.
type Context struct {
	Variables map[string]int64
	Functions []*eval.FuncBinding
	Output    []string
	Executed  []string // executed nodes, each "Kind: summary"
}

// NewContext snapshots env together with the session's output and
// executed nodes.
func NewContext(env *eval.Environment, output, executed []string) *Context {
	return &Context{
		Variables: env.Numbers(),
		Functions: env.Funcs(),
		Output:    output,
		Executed:  executed,
	}
}

// Progress reports which objectives of a quest currently hold.
type Progress struct {
	QuestID  string
	Met      []bool
	Complete bool
}

// Done returns the number of objectives met.
func (p Progress) Done() int {
	n := 0
	for _, ok := range p.Met {
		if ok {
			n++
		}
	}
	return n
}

func (p Progress) String() string {
	return fmt.Sprintf("%s: %d/%d objectives", p.QuestID, p.Done(), len(p.Met))
}
