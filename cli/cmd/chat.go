package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/ponyo877/chatroom/chatpb"
	"github.com/ponyo877/chatroom/server/domain"
	"github.com/rivo/tview"
	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat [room]",
	Short: "Starts a chat session in a tview-based interface",
	Long: `Starts a chat session over the StreamMessage RPC with a tview-based interface.
You can type messages at the bottom and see the room above.

Lines starting with a slash are commands:
  /join <room>               switch room
  /mkroom <room>             create a room
  /dm <user> <text>          send a private message
  /react <id> <emoji>        add a reaction to a message
  /unreact <id> <emoji>      remove a reaction
  /read <id>                 mark a message as read
  /search <query>            search the current room
  /more                      load older messages
  /clear [room]              clear unread counts, all rooms by default
  /quit                      leave`,
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: roomCompletionFunc,
	RunE: func(cmd *cobra.Command, args []string) error {
		userName, _ := cmd.Flags().GetString("name")
		if userName == "" {
			name, err := displayName()
			if err != nil {
				return fmt.Errorf("error getting config to retrieve display name, use the -n flag: %w", err)
			}
			userName = name
		}
		return runChatUITview(userName, roomArg(args, 0))
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
	chatCmd.Flags().StringP("name", "n", "", "Your name for the chat session (optional, defaults to DisplayName in config)")
}

// chatView is the state drawn by the UI goroutine. It is only touched from
// tview callbacks.
type chatView struct {
	app      *tview.Application
	messages *tview.TextView
	status   *tview.TextView
	input    *tview.InputField

	userName string
	room     string
	page     int
	users    map[string]string
	typing   []string
	unread   map[string]int
}

func (v *chatView) printf(format string, args ...any) {
	fmt.Fprintf(v.messages, format, args...)
	v.messages.ScrollToEnd()
}

func (v *chatView) printMessage(msg domain.Message) {
	color := "blue"
	if msg.Private {
		color = "fuchsia"
	}
	v.printf("[gray]%s [white][%s] [%s]%s[white]: %s",
		msg.ID,
		msg.Timestamp.Local().Format("15:04:05"),
		color,
		tview.Escape(msg.Sender),
		tview.Escape(msg.Text))
	for _, reaction := range slices.Sorted(maps.Keys(msg.Reactions)) {
		v.printf(" [yellow]%s×%d", reaction, len(msg.Reactions[reaction]))
	}
	v.printf("[white]\n")
}

func (v *chatView) refreshStatus() {
	v.status.Clear()
	fmt.Fprintf(v.status, "[green]#%s[white]", v.room)
	if len(v.typing) > 0 {
		fmt.Fprintf(v.status, "  %s typing…", strings.Join(v.typing, ", "))
	}
	for _, room := range slices.Sorted(maps.Keys(v.unread)) {
		if v.unread[room] > 0 {
			fmt.Fprintf(v.status, "  [red]%s(%d)[white]", room, v.unread[room])
		}
	}
}

// handle applies one server frame to the view.
func (v *chatView) handle(frame chatpb.ServerFrame) {
	switch frame.Event {
	case "message_history":
		var messages []domain.Message
		if frame.DecodePayload(&messages) == nil {
			v.messages.Clear()
			v.page = 0
			v.printf("[green]Welcome to %s! You are %s. (Ctrl+C to exit)\n", v.room, v.userName)
			for _, msg := range messages {
				v.printMessage(msg)
			}
		}
	case "paginated_messages":
		var page domain.PageResult
		if frame.DecodePayload(&page) == nil {
			v.printf("[gray]-- page %d of older messages --\n", page.Page)
			for _, msg := range page.Messages {
				v.printMessage(msg)
			}
		}
	case "receive_message", "private_message":
		var msg domain.Message
		if frame.DecodePayload(&msg) == nil {
			v.printMessage(msg)
		}
	case "search_results":
		var messages []domain.Message
		if frame.DecodePayload(&messages) == nil {
			v.printf("[gray]-- %d result(s) --\n", len(messages))
			for _, msg := range messages {
				v.printMessage(msg)
			}
		}
	case "user_list":
		var users []domain.UserInfo
		if frame.DecodePayload(&users) == nil {
			v.users = map[string]string{}
			for _, user := range users {
				v.users[user.Username] = user.ID
			}
		}
	case "user_joined", "user_left":
		var p domain.PresencePayload
		if frame.DecodePayload(&p) == nil {
			verb := "joined"
			if frame.Event == "user_left" {
				verb = "left"
			}
			v.printf("[gray]* %s %s\n", tview.Escape(p.Username), verb)
		}
	case "typing_users":
		var names []string
		if frame.DecodePayload(&names) == nil {
			v.typing = slices.DeleteFunc(names, func(name string) bool { return name == v.userName })
		}
	case "unread_update":
		var counts map[string]int
		if frame.DecodePayload(&counts) == nil {
			v.unread = counts
		}
	case "reaction_added", "reaction_removed":
		var p domain.ReactionPayload
		if frame.DecodePayload(&p) == nil {
			v.printf("[gray]* %s on %s\n", p.Reaction, p.MessageID)
		}
	case "message_read":
		var p domain.ReadPayload
		if frame.DecodePayload(&p) == nil {
			v.printf("[gray]* %s read by %s\n", p.MessageID, p.UserID)
		}
	case "room_list":
		var rooms []string
		if frame.DecodePayload(&rooms) == nil {
			v.printf("[gray]rooms: %s\n", strings.Join(rooms, ", "))
		}
	case "room_created":
		var room string
		if frame.DecodePayload(&room) == nil {
			v.printf("[green]room %s created\n", tview.Escape(room))
		}
	case "error", "room_error":
		var p domain.ErrorPayload
		if frame.DecodePayload(&p) == nil {
			v.printf("[red]%s\n", tview.Escape(p.Message))
		}
	}
	v.refreshStatus()
}

const maxInputLength = 1000

var errQuit = errors.New("quit")

// command turns one input line into a client frame.
func (v *chatView) command(line string) (string, any, error) {
	if !strings.HasPrefix(line, "/") {
		return "send_message", chatpb.SendMessagePayload{Message: line}, nil
	}
	fields := strings.Fields(line)
	name, args := fields[0], fields[1:]
	need := func(n int) error {
		if len(args) < n {
			return fmt.Errorf("%s needs %d argument(s)", name, n)
		}
		return nil
	}
	switch name {
	case "/join":
		if err := need(1); err != nil {
			return "", nil, err
		}
		v.room = args[0]
		return "join_room", chatpb.RoomPayload{RoomID: args[0]}, nil
	case "/mkroom":
		if err := need(1); err != nil {
			return "", nil, err
		}
		return "create_room", chatpb.RoomPayload{Name: args[0]}, nil
	case "/dm":
		if err := need(2); err != nil {
			return "", nil, err
		}
		to, ok := v.users[args[0]]
		if !ok {
			to = args[0]
		}
		return "private_message", chatpb.PrivateMessagePayload{To: to, Message: strings.Join(args[1:], " ")}, nil
	case "/react", "/unreact":
		if err := need(2); err != nil {
			return "", nil, err
		}
		typ := "add_reaction"
		if name == "/unreact" {
			typ = "remove_reaction"
		}
		return typ, chatpb.ReactionPayload{MessageID: args[0], Reaction: args[1], RoomID: v.room}, nil
	case "/read":
		if err := need(1); err != nil {
			return "", nil, err
		}
		return "mark_read", chatpb.MarkReadPayload{MessageID: args[0], RoomID: v.room}, nil
	case "/search":
		if err := need(1); err != nil {
			return "", nil, err
		}
		return "search_messages", chatpb.SearchPayload{Query: strings.Join(args, " "), RoomID: v.room}, nil
	case "/more":
		v.page++
		return "get_messages", chatpb.PagePayload{RoomID: v.room, Page: v.page, Limit: domain.DefaultPageSize}, nil
	case "/clear":
		var bucket string
		if len(args) > 0 {
			bucket = args[0]
		}
		return "clear_unread", chatpb.ClearUnreadPayload{RoomID: bucket}, nil
	case "/quit":
		return "", nil, errQuit
	default:
		return "", nil, fmt.Errorf("unknown command %s", name)
	}
}

func runChatUITview(userName, room string) error {
	app := tview.NewApplication()

	v := &chatView{
		app:      app,
		userName: userName,
		room:     room,
		users:    map[string]string{},
		unread:   map[string]int{},
	}
	v.messages = tview.NewTextView().
		SetDynamicColors(true).
		SetRegions(true).
		SetWordWrap(true).
		SetScrollable(true).
		ScrollToEnd()
	v.status = tview.NewTextView().SetDynamicColors(true)
	v.input = tview.NewInputField().
		SetLabel(userName + " ❯❯ ").
		SetFieldWidth(0).
		SetAcceptanceFunc(tview.InputFieldMaxLength(maxInputLength))

	flex := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(v.messages, 0, 1, false).
		AddItem(v.status, 1, 0, false).
		AddItem(v.input, 1, 0, true)

	app.SetRoot(flex, true).SetFocus(v.input)
	v.refreshStatus()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stream, err := openStream(ctx)
	if err != nil {
		return err
	}
	defer stream.Close()

	if err := stream.Join(userName, room); err != nil {
		return fmt.Errorf("failed to send join message: %w", err)
	}

	go func() {
		for {
			frame, err := stream.Recv()
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				app.QueueUpdateDraw(func() {
					if errors.Is(err, io.EOF) {
						v.printf("[red]Stream closed by server.\n")
					} else {
						v.printf("[red]Error receiving message: %v\n", err)
					}
				})
				return
			}
			app.QueueUpdateDraw(func() { v.handle(frame) })
		}
	}()

	typing := false
	setTyping := func(on bool) {
		if typing == on {
			return
		}
		typing = on
		if err := stream.Send("typing", chatpb.TypingPayload{IsTyping: on, RoomID: v.room}); err != nil {
			v.printf("[red]Failed to send typing state: %v\n", err)
		}
	}
	v.input.SetChangedFunc(func(text string) {
		setTyping(text != "" && !strings.HasPrefix(text, "/"))
	})

	// Send messages when Enter is pressed
	v.input.SetDoneFunc(func(key tcell.Key) {
		if key != tcell.KeyEnter {
			return
		}
		text := strings.TrimSpace(v.input.GetText())
		if text == "" {
			return
		}
		v.input.SetText("")
		typing = false

		typ, payload, err := v.command(text)
		if errors.Is(err, errQuit) {
			cancel()
			app.Stop()
			return
		}
		if err != nil {
			v.printf("[red]%v\n", err)
			return
		}
		if err := stream.Send(typ, payload); err != nil {
			v.printf("[red]Failed to send message: %v\n", err)
		}
	})

	// Logout and exit on Ctrl+C
	app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyCtrlC {
			cancel()
			app.Stop()
			return nil
		}
		return event
	})

	if err := app.Run(); err != nil {
		return err
	}
	return nil
}
