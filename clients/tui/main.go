package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/dohr-michael/chatwidget/clients/tui/molecules"
	"github.com/dohr-michael/chatwidget/clients/tui/organisms"
	"github.com/dohr-michael/chatwidget/internal/conversation"
	"github.com/dohr-michael/chatwidget/internal/events"
	"github.com/dohr-michael/chatwidget/internal/responder"
)

// Options configures the widget.
type Options struct {
	Context         context.Context // bounds responder calls; cancelled on exit
	Sender          responder.Sender
	Endpoint        string // shown in the status bar
	ConversationID  string // generated when empty
	Bus             *events.Bus
	Logger          *slog.Logger
	BotName         string
	Greeting        string
	Placeholder     string
	Suggestions     []string
	ScrollThreshold int
	MarkdownStyle   string // glamour style for bot replies; "" = auto
}

// MainModel is the root bubbletea model of the conversation widget.
type MainModel struct {
	ctx            context.Context
	sender         responder.Sender
	bus            *events.Bus
	logger         *slog.Logger
	conversationID string

	state       conversation.State
	suggestions conversation.Suggestions

	width  int
	height int

	chat        organisms.ChatPanel
	interaction organisms.InteractionPanel
	info        organisms.InformationPanel
}

// NewMainModel creates the root model with an empty conversation.
func NewMainModel(opts Options) MainModel {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	botName := opts.BotName
	if botName == "" {
		botName = "Bot"
	}
	suggestions := opts.Suggestions
	if suggestions == nil {
		suggestions = conversation.DefaultSuggestions
	}

	styles := organisms.ChatPanelStyles{
		User:          UserStyle,
		Bot:           BotStyle,
		Greeting:      GreetingStyle,
		Muted:         MutedStyle,
		Thinking:      ColorMuted,
		MarkdownStyle: opts.MarkdownStyle,
	}
	if styles.MarkdownStyle == "" {
		styles.MarkdownStyle = "auto"
	}

	conversationID := opts.ConversationID
	if conversationID == "" {
		conversationID = uuid.NewString()
	}

	return MainModel{
		ctx:            ctx,
		sender:         opts.Sender,
		bus:            opts.Bus,
		logger:         logger.With("conversation_id", conversationID),
		conversationID: conversationID,
		state:          conversation.New(conversation.WithScrollThreshold(opts.ScrollThreshold)),
		suggestions:    conversation.Suggestions(suggestions),
		chat:           organisms.NewChatPanel(80, 20, botName, opts.Greeting, styles),
		interaction:    organisms.NewInteractionPanel(opts.Placeholder, suggestions, ChipStyle, ChipDisabledStyle),
		info:           organisms.NewInformationPanel(StatusBarStyle, conversationID, opts.Endpoint),
	}
}

// State returns the current conversation snapshot.
func (m MainModel) State() conversation.State { return m.state }

// ConversationID returns the id attached to diagnostics for this widget instance.
func (m MainModel) ConversationID() string { return m.conversationID }

// Init implements tea.Model.
func (m MainModel) Init() tea.Cmd {
	return nil
}

// Update processes all incoming messages.
func (m MainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.interaction.SetWidth(m.width)
		m.chat.SetSize(m.width, m.chatHeight())
		m.info.SetWidth(m.width)
		if m.state.Following() {
			m.chat.GotoBottom()
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case molecules.SubmitMsg:
		return m.submit(conversation.Submit{Text: msg.Content})

	case ReplyMsg:
		return m.handleReply(msg)

	case FailureMsg:
		return m.handleFailure(msg)
	}

	// Pass through to chat panel (spinner ticks).
	var cmd tea.Cmd
	m.chat, cmd = m.chat.Update(msg)
	return m, cmd
}

func (m MainModel) chatHeight() int {
	h := m.height - m.interaction.Height() - 1 // status bar
	if h < 1 {
		h = 1
	}
	return h
}

func (m MainModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit

	case tea.KeyCtrlS:
		return m.sendInput()

	case tea.KeyPgUp:
		m.chat.PageUp()
		return m.userScrolled()

	case tea.KeyPgDown:
		m.chat.PageDown()
		return m.userScrolled()
	}

	if i, ok := suggestionKey(msg.String()); ok {
		return m.pickSuggestion(i)
	}

	var cmd tea.Cmd
	m.interaction, cmd = m.interaction.Update(msg)
	return m, cmd
}

// suggestionKey maps alt+1..alt+9 to a 0-based suggestion index.
func suggestionKey(key string) (int, bool) {
	digit, ok := strings.CutPrefix(key, "alt+")
	if !ok || len(digit) != 1 || digit[0] < '1' || digit[0] > '9' {
		return 0, false
	}
	return int(digit[0] - '1'), true
}

func (m MainModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown:
		var cmd tea.Cmd
		m.chat, cmd = m.chat.Update(msg)
		next, scrollCmd := m.userScrolled()
		return next, tea.Batch(cmd, scrollCmd)

	case msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress:
		// The interaction panel sits right below the chat viewport.
		row := msg.Y - m.chatHeight()
		if row < 0 || row >= m.interaction.Height() {
			return m, nil
		}
		if i, ok := m.interaction.SuggestionAt(row, msg.X); ok {
			return m.pickSuggestion(i)
		}
		if m.interaction.SendAt(row, msg.X) {
			return m.sendInput()
		}
	}
	return m, nil
}

// sendInput submits the pending input, as the send button does.
func (m MainModel) sendInput() (tea.Model, tea.Cmd) {
	if m.interaction.Disabled() {
		return m, nil
	}
	return m.submit(conversation.Submit{Text: m.interaction.InputValue()})
}

func (m MainModel) pickSuggestion(i int) (tea.Model, tea.Cmd) {
	ev, ok := m.suggestions.Pick(i)
	if !ok || m.state.Busy() {
		return m, nil
	}
	return m.submit(ev)
}

// userScrolled feeds the viewport position to the autoscroll policy.
func (m MainModel) userScrolled() (tea.Model, tea.Cmd) {
	next, eff := conversation.Reduce(m.state, conversation.Scroll{DistanceFromBottom: m.chat.DistanceFromBottom()})
	m.state = next
	if eff.ModeChanged {
		m.logger.Debug("viewport mode changed", "mode", m.state.ScrollMode().String())
		m.publish(events.SourceViewport, events.ViewportModePayload{Mode: m.state.ScrollMode().String()})
	}
	m.info.SetState(m.state)
	return m, nil
}

func (m MainModel) submit(ev conversation.Submit) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(ev.Text) == "/quit" {
		return m, tea.Quit
	}

	next, eff := conversation.Reduce(m.state, ev)
	if !eff.Changed || eff.Send == nil {
		return m, nil
	}
	m.state = next
	m.interaction.ResetInput(ev.Text)

	turn, _ := m.state.Last()
	m.publish(events.SourceWidget, events.TurnPayload{Role: string(turn.Role), Content: turn.Content, Index: m.state.Len() - 1})
	m.publish(events.SourceWidget, events.BusyPayload{Busy: true, Token: uint64(eff.Send.Token)})
	m.publish(events.SourceResponder, events.ResponderRequestedPayload{Token: uint64(eff.Send.Token), Endpoint: m.info.Endpoint()})

	cmd := m.sync(eff)
	return m, tea.Batch(cmd, m.send(*eff.Send))
}

func (m MainModel) handleReply(msg ReplyMsg) (tea.Model, tea.Cmd) {
	next, eff := conversation.Reduce(m.state, conversation.Reply{Token: msg.Token, Content: msg.Content})
	if !eff.Changed {
		m.logger.Debug("dropping stale reply", "token", msg.Token)
		return m, nil
	}
	m.state = next
	m.info.SetLastError("")

	turn, _ := m.state.Last()
	m.publish(events.SourceWidget, events.TurnPayload{Role: string(turn.Role), Content: turn.Content, Index: m.state.Len() - 1})
	m.publish(events.SourceWidget, events.BusyPayload{Busy: false, Token: uint64(msg.Token)})
	if eff.ModeChanged {
		m.publish(events.SourceViewport, events.ViewportModePayload{Mode: m.state.ScrollMode().String()})
	}
	m.logger.Debug("reply received", "token", msg.Token, "elapsed", msg.Elapsed)

	return m, m.sync(eff)
}

func (m MainModel) handleFailure(msg FailureMsg) (tea.Model, tea.Cmd) {
	next, eff := conversation.Reduce(m.state, conversation.Failure{Token: msg.Token, Err: msg.Err})
	if !eff.Changed {
		return m, nil
	}
	m.state = next

	kind := string(responder.KindOf(msg.Err))
	if kind == "" {
		kind = "unknown"
	}
	m.info.SetLastError(kind)
	m.logger.Warn("responder failed", "token", msg.Token, "kind", kind, "elapsed", msg.Elapsed, "error", msg.Err)
	m.publish(events.SourceResponder, events.ResponderFailedPayload{
		Token:      uint64(msg.Token),
		Kind:       kind,
		Error:      errString(msg.Err),
		DurationMs: msg.Elapsed.Milliseconds(),
	})
	m.publish(events.SourceWidget, events.BusyPayload{Busy: false, Token: uint64(msg.Token)})

	return m, m.sync(eff)
}

// sync pushes the conversation snapshot to the panels.
func (m *MainModel) sync(eff conversation.Effect) tea.Cmd {
	m.chat.SyncTurns(m.state.Turns())
	cmd := m.chat.SetThinking(m.state.Busy())
	m.interaction.SetDisabled(m.state.Busy())
	m.info.SetState(m.state)
	if eff.ScrollToBottom {
		m.chat.GotoBottom()
	}
	return cmd
}

// send runs the responder exchange off the UI loop. Whatever happens, exactly one
// ReplyMsg or FailureMsg comes back for req.Token.
func (m MainModel) send(req conversation.Request) tea.Cmd {
	sender, ctx := m.sender, m.ctx
	return func() (msg tea.Msg) {
		start := time.Now()
		defer func() {
			if r := recover(); r != nil {
				msg = FailureMsg{Token: req.Token, Err: fmt.Errorf("responder panic: %v", r), Elapsed: time.Since(start)}
			}
		}()
		if sender == nil {
			return FailureMsg{Token: req.Token, Err: fmt.Errorf("no responder configured"), Elapsed: time.Since(start)}
		}
		reply, err := sender.Send(ctx, req.Text)
		if err != nil {
			return FailureMsg{Token: req.Token, Err: err, Elapsed: time.Since(start)}
		}
		return ReplyMsg{Token: req.Token, Content: reply, Elapsed: time.Since(start)}
	}
}

func (m MainModel) publish(source events.EventSource, payload events.EventPayload) {
	if m.bus == nil {
		return
	}
	m.bus.Publish(events.NewTypedEvent(source, payload, m.conversationID))
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// View renders the full TUI layout.
func (m MainModel) View() string {
	return fmt.Sprintf("%s\n%s\n%s", m.chat.View(), m.interaction.View(), m.info.View())
}
