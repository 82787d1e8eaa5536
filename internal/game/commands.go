package game

// Command is one of the closed set of store transitions understood by Reduce.
type Command interface {
	command()
}

type CreateBlock struct {
	Title string
	Texts []string
}

type AppendTasks struct {
	BlockID string
	Texts   []string
}

type CompleteTask struct {
	BlockID string
	TaskID  string
}

type RemoveBlock struct {
	BlockID string
}

func (CreateBlock) command()  {}
func (AppendTasks) command()  {}
func (CompleteTask) command() {}
func (RemoveBlock) command()  {}
