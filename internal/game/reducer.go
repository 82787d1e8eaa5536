package game

import (
	"math/rand/v2"

	"github.com/google/uuid"
	"github.com/sandeepkv93/todorpg/internal/model"
)

// Deps carries the sources of non-determinism used while reducing.
type Deps struct {
	NewID func() string
	Pick  func(options []string) string
}

func DefaultDeps() Deps {
	return Deps{NewID: uuid.NewString, Pick: RandomPick}
}

func RandomPick(options []string) string {
	if len(options) == 0 {
		return ""
	}
	return options[rand.IntN(len(options))]
}

func (d Deps) withDefaults() Deps {
	if d.NewID == nil {
		d.NewID = uuid.NewString
	}
	if d.Pick == nil {
		d.Pick = RandomPick
	}
	return d
}

// Outcome describes what a single command did to the store.
type Outcome struct {
	Changed bool
	// Defeated is set when this command moved a block into the completed state.
	Defeated bool
	BlockID  string
	TaskID   string
}

// Reduce applies cmd to s and returns the next snapshot. Invalid targets and
// unknown commands return s unchanged; s itself is never mutated.
func Reduce(s model.Store, cmd Command, deps Deps) model.Store {
	next, _ := Apply(s, cmd, deps)
	return next
}

func Apply(s model.Store, cmd Command, deps Deps) (model.Store, Outcome) {
	deps = deps.withDefaults()
	switch c := cmd.(type) {
	case CreateBlock:
		return createBlock(s, c, deps)
	case AppendTasks:
		return appendTasks(s, c, deps)
	case CompleteTask:
		return completeTask(s, c)
	case RemoveBlock:
		return removeBlock(s, c)
	default:
		return s, Outcome{}
	}
}

func newTasks(texts []string, deps Deps) []model.Task {
	out := make([]model.Task, 0, len(texts))
	for _, text := range texts {
		out = append(out, model.Task{ID: deps.NewID(), Text: text})
	}
	return out
}

func createBlock(s model.Store, c CreateBlock, deps Deps) (model.Store, Outcome) {
	tasks := newTasks(c.Texts, deps)
	block := model.Block{
		ID:        deps.NewID(),
		Title:     c.Title,
		Tasks:     tasks,
		HP:        len(tasks),
		Max:       len(tasks),
		Completed: len(tasks) == 0,
		CharID:    deps.Pick(model.Characters),
	}
	next := s.Clone()
	next.Blocks = append(next.Blocks, block)
	return next, Outcome{Changed: true, BlockID: block.ID}
}

func appendTasks(s model.Store, c AppendTasks, deps Deps) (model.Store, Outcome) {
	i := s.BlockIndex(c.BlockID)
	if i < 0 || len(c.Texts) == 0 || s.Blocks[i].Completed {
		return s, Outcome{}
	}
	next := s.Clone()
	b := &next.Blocks[i]
	added := newTasks(c.Texts, deps)
	b.Tasks = append(b.Tasks, added...)
	b.HP += len(added)
	b.Max += len(added)
	return next, Outcome{Changed: true, BlockID: b.ID}
}

func completeTask(s model.Store, c CompleteTask) (model.Store, Outcome) {
	i := s.BlockIndex(c.BlockID)
	if i < 0 || s.Blocks[i].HP <= 0 {
		return s, Outcome{}
	}
	j := s.Blocks[i].TaskIndex(c.TaskID)
	if j < 0 || s.Blocks[i].Tasks[j].Done {
		return s, Outcome{}
	}
	next := s.Clone()
	b := &next.Blocks[i]
	b.Tasks[j].Done = true
	b.HP--
	defeated := false
	if b.HP == 0 && !b.Completed {
		b.Completed = true
		defeated = true
	}
	return next, Outcome{Changed: true, Defeated: defeated, BlockID: b.ID, TaskID: c.TaskID}
}

func removeBlock(s model.Store, c RemoveBlock) (model.Store, Outcome) {
	i := s.BlockIndex(c.BlockID)
	if i < 0 {
		return s, Outcome{}
	}
	next := s.Clone()
	next.Blocks = append(next.Blocks[:i], next.Blocks[i+1:]...)
	return next, Outcome{Changed: true, BlockID: c.BlockID}
}

// Backfill assigns a character to blocks persisted before characters existed.
func Backfill(s model.Store, deps Deps) model.Store {
	deps = deps.withDefaults()
	next := s.Clone()
	if next.Blocks == nil {
		next.Blocks = []model.Block{}
	}
	for i := range next.Blocks {
		if !model.IsCharacter(next.Blocks[i].CharID) {
			next.Blocks[i].CharID = deps.Pick(model.Characters)
		}
	}
	if next.Progress.Level == 0 {
		next.Progress.Level = 1
	}
	return next
}
