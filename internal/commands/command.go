package commands

import (
	"fmt"
	"strings"
)

type Type string

const (
	TypeAdd    Type = "add"
	TypeAppend Type = "append"
	TypeRemove Type = "remove"
	TypePreset Type = "preset"
	TypeMode   Type = "mode"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type AddArgs struct {
	Input BulkInput
}

// AppendArgs targets the block selected in the UI; the palette does not
// address blocks by id.
type AppendArgs struct {
	Texts []string
}

type RemoveArgs struct{}

type PresetAction string

const (
	PresetSave PresetAction = "save"
	PresetUse  PresetAction = "use"
	PresetRm   PresetAction = "rm"
	PresetList PresetAction = "list"
)

type PresetArgs struct {
	Action PresetAction
	Name   string
	Body   string
}

type ModeArgs struct {
	// Target is "daily", "longterm" or empty for a toggle.
	Target string
}

type Command struct {
	Type   Type
	Raw    string
	Add    *AddArgs
	Append *AppendArgs
	Remove *RemoveArgs
	Preset *PresetArgs
	Mode   *ModeArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	head, rest := splitHead(raw)
	switch Type(strings.ToLower(head)) {
	case TypeAdd:
		return parseAdd(input, rest)
	case TypeAppend:
		return parseAppend(input, rest)
	case TypeRemove, "rm":
		return Command{Type: TypeRemove, Raw: input, Remove: &RemoveArgs{}}, nil
	case TypePreset:
		return parsePreset(input, rest)
	case TypeMode:
		return parseMode(input, rest)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

// splitHead separates the verb from the remainder, keeping the remainder's
// inner layout so bulk bodies survive.
func splitHead(raw string) (string, string) {
	idx := strings.IndexFunc(raw, isSeparator)
	if idx < 0 {
		return raw, ""
	}
	return raw[:idx], strings.TrimSpace(raw[idx:])
}

func parseAdd(raw, rest string) (Command, error) {
	in := ParseBulkInput(rest)
	if len(in.Texts) == 0 && in.Title == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a title or tasks"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &AddArgs{Input: in}}, nil
}

func parseAppend(raw, rest string) (Command, error) {
	texts := ParseTaskList(rest)
	if len(texts) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "append requires at least one task"}
	}
	return Command{Type: TypeAppend, Raw: raw, Append: &AppendArgs{Texts: texts}}, nil
}

func parsePreset(raw, rest string) (Command, error) {
	action, tail := splitHead(rest)
	args := &PresetArgs{Action: PresetAction(strings.ToLower(action))}
	switch args.Action {
	case PresetList, "":
		args.Action = PresetList
	case PresetSave:
		name, body := splitHead(tail)
		if name == "" || strings.TrimSpace(body) == "" {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "preset save requires a name and a body"}
		}
		args.Name, args.Body = name, body
	case PresetUse, PresetRm, "remove":
		name := strings.TrimSpace(tail)
		if name == "" {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("preset %s requires a name", action)}
		}
		if args.Action == "remove" {
			args.Action = PresetRm
		}
		args.Name = name
	default:
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown preset action: %s", action)}
	}
	return Command{Type: TypePreset, Raw: raw, Preset: args}, nil
}

func parseMode(raw, rest string) (Command, error) {
	target := strings.ToLower(strings.TrimSpace(rest))
	switch target {
	case "", "toggle":
		target = ""
	case "daily", "day":
		target = "daily"
	case "long", "longterm", "long-term":
		target = "longterm"
	default:
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown mode: %s", rest)}
	}
	return Command{Type: TypeMode, Raw: raw, Mode: &ModeArgs{Target: target}}, nil
}
