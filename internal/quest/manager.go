package quest

import (
	"slices"

	"github.com/emirpasic/gods/maps/linkedhashmap"

	"github.com/you-not-fish/cang/internal/coins"
)

// Manager holds quests in the order they were added.
type Manager struct {
	quests *linkedhashmap.Map // ID -> *Quest
}

// NewManager returns an empty manager.
func NewManager() *Manager {
	return &Manager{quests: linkedhashmap.New()}
}

// Add registers q. A quest whose ID is already known is ignored and
// Add reports false.
func (m *Manager) Add(q *Quest) bool {
	if _, found := m.quests.Get(q.ID); found {
		return false
	}
	m.quests.Put(q.ID, q)
	return true
}

// Get returns the quest with the given ID.
func (m *Manager) Get(id string) (*Quest, bool) {
	v, found := m.quests.Get(id)
	if !found {
		return nil, false
	}
	return v.(*Quest), true
}

// Len returns the number of quests.
func (m *Manager) Len() int {
	return m.quests.Size()
}

// All returns every quest in insertion order.
func (m *Manager) All() []*Quest {
	return m.filter(func(*Quest) bool { return true })
}

// Available returns the unlocked, incomplete quests.
func (m *Manager) Available() []*Quest {
	return m.filter(func(q *Quest) bool { return q.Unlocked && !q.Completed })
}

// Locked returns the quests still waiting on prerequisites.
func (m *Manager) Locked() []*Quest {
	return m.filter(func(q *Quest) bool { return !q.Unlocked })
}

// Completed returns the completed quests.
func (m *Manager) Completed() []*Quest {
	return m.filter(func(q *Quest) bool { return q.Completed })
}

func (m *Manager) filter(keep func(*Quest) bool) []*Quest {
	var qs []*Quest
	it := m.quests.Iterator()
	for it.Next() {
		if q := it.Value().(*Quest); keep(q) {
			qs = append(qs, q)
		}
	}
	return qs
}

// Progress reports the objectives of quest id that hold in ctx.
func (m *Manager) Progress(id string, ctx *Context) (Progress, bool) {
	q, ok := m.Get(id)
	if !ok {
		return Progress{}, false
	}
	p := Progress{QuestID: id, Met: make([]bool, len(q.Objectives)), Complete: q.Completed}
	for i, o := range q.Objectives {
		p.Met[i] = o.Met(ctx)
	}
	return p, true
}

// Check completes every available quest whose objectives all hold in ctx
// and returns their rewards in quest order. A locked quest that lists one
// of the newly completed quests as a prerequisite is unlocked once all of
// its prerequisites are complete; it is checked on the next call.
func (m *Manager) Check(ctx *Context) []coins.Reward {
	var (
		rewards []coins.Reward
		done    []*Quest
	)
	for _, q := range m.Available() {
		if allMet(q.Objectives, ctx) {
			rewards = append(rewards, q.Rewards...)
			done = append(done, q)
		}
	}
	for _, q := range done {
		q.Completed = true
	}
	if len(done) > 0 {
		m.unlock(done)
	}
	return rewards
}

// unlock opens locked quests that depend on a quest in done and whose
// prerequisites are all complete.
func (m *Manager) unlock(done []*Quest) {
	for _, q := range m.Locked() {
		if !dependsOnAny(q, done) {
			continue
		}
		ready := true
		for _, id := range q.Prerequisites {
			if p, ok := m.Get(id); !ok || !p.Completed {
				ready = false
				break
			}
		}
		if ready {
			q.Unlocked = true
		}
	}
}

func dependsOnAny(q *Quest, done []*Quest) bool {
	for _, d := range done {
		if slices.Contains(q.Prerequisites, d.ID) {
			return true
		}
	}
	return false
}

func allMet(objs []Objective, ctx *Context) bool {
	for _, o := range objs {
		if !o.Met(ctx) {
			return false
		}
	}
	return true
}
