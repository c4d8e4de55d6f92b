package cmd

import (
	"slices"
	"strings"

	"github.com/c-bata/go-prompt"
	"github.com/ponyo877/chatroom/chatpb"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// roomCommands take a room name as their first argument.
var roomCommands = []string{"cd", "cat", "chat", "tail", "who"}

// roomCompletionFunc completes room names for cobra's shell completion.
func roomCompletionFunc(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	if chatClient == nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	rooms, err := listRooms("")
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return slices.DeleteFunc(rooms, func(room string) bool {
		return !strings.HasPrefix(room, toComplete)
	}), cobra.ShellCompDirectiveNoFileComp
}

// completeLine feeds the interactive prompt: command names for the first
// word and room names for commands in roomCommands.
func completeLine(d prompt.Document) []prompt.Suggest {
	word := d.GetWordBeforeCursor()
	fields := strings.Fields(d.TextBeforeCursor())
	if len(fields) == 0 || (len(fields) == 1 && word != "") {
		return prompt.FilterHasPrefix(commandSuggestions(), word, true)
	}
	if !slices.Contains(roomCommands, fields[0]) || strings.HasPrefix(word, "-") {
		return nil
	}
	return prompt.FilterHasPrefix(roomSuggestions(), word, true)
}

func commandSuggestions() []prompt.Suggest {
	var suggestions []prompt.Suggest
	for _, c := range rootCmd.Commands() {
		if c.Hidden || c.Name() == "help" || c.Name() == "completion" {
			continue
		}
		suggestions = append(suggestions, prompt.Suggest{Text: c.Name(), Description: c.Short})
	}
	return append(suggestions, prompt.Suggest{Text: "exit", Description: "Leave interactive mode"})
}

// roomSuggestions dials the server on demand since the REPL closes the
// connection after every command.
func roomSuggestions() []prompt.Suggest {
	conn, err := grpc.NewClient(grpcServerAddress, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil
	}
	defer conn.Close()

	var res chatpb.ListRoomsResponse
	if err := invoke(chatpb.NewChatServiceClient(conn).ListRooms, chatpb.ListRoomsRequest{}, &res); err != nil {
		return nil
	}
	suggestions := make([]prompt.Suggest, 0, len(res.Rooms))
	for _, room := range res.Rooms {
		suggestions = append(suggestions, prompt.Suggest{Text: room, Description: "room"})
	}
	return suggestions
}
