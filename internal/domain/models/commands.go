package models

import "strings"

// CommandType enumerates the text commands farmers can send over WhatsApp.
type CommandType string

const (
	CommandRecommend CommandType = "recommend"
	CommandCrops     CommandType = "crops"
	CommandHelp      CommandType = "help"
	CommandUnknown   CommandType = "unknown"
)

// Command is a parsed farmer instruction extracted from a WhatsApp text.
type Command struct {
	Type CommandType
	Raw  string
	Args []string
}

// ParseCommand derives a Command from a free-form text message.
// The leading slash is optional and matching is case-insensitive.
func ParseCommand(message string) Command {
	normalized := strings.TrimSpace(strings.ToLower(message))
	cmd := Command{Raw: message, Type: CommandUnknown}

	tokens := strings.Fields(normalized)
	if len(tokens) == 0 {
		return cmd
	}

	switch head := strings.TrimPrefix(tokens[0], "/"); head {
	case string(CommandRecommend), "rec":
		cmd.Type = CommandRecommend
	case string(CommandCrops):
		cmd.Type = CommandCrops
	case string(CommandHelp), "start":
		cmd.Type = CommandHelp
	}

	if len(tokens) > 1 {
		cmd.Args = tokens[1:]
	}

	return cmd
}
