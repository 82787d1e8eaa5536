package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Add    func(AddArgs) (Result, error)
	Append func(AppendArgs) (Result, error)
	Remove func(RemoveArgs) (Result, error)
	Preset func(PresetArgs) (Result, error)
	Mode   func(ModeArgs) (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeAdd:
		if handlers.Add == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "add handler not configured"}
		}
		return handlers.Add(*cmd.Add)
	case TypeAppend:
		if handlers.Append == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "append handler not configured"}
		}
		return handlers.Append(*cmd.Append)
	case TypeRemove:
		if handlers.Remove == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "remove handler not configured"}
		}
		return handlers.Remove(*cmd.Remove)
	case TypePreset:
		if handlers.Preset == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "preset handler not configured"}
		}
		return handlers.Preset(*cmd.Preset)
	case TypeMode:
		if handlers.Mode == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "mode handler not configured"}
		}
		return handlers.Mode(*cmd.Mode)
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}
