package shell

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/GriffinCanCode/ChimeraOS/backend/internal/ai"
	"github.com/GriffinCanCode/ChimeraOS/backend/internal/domain/apps"
	"github.com/GriffinCanCode/ChimeraOS/backend/internal/infrastructure/logging"
)

// ChatGreeting opens every conversation.
const ChatGreeting = "Hello! I'm Nova, your HybridOS AI assistant. How can I help you navigate your hybrid workflow today?"

var ErrChatBusy = errors.New("assistant is still typing")

// Asker answers free-form questions. where describes the calling context.
type Asker interface {
	Ask(ctx context.Context, prompt, where string) string
}

// Role is the author of a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one chat bubble.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// ChatState is the conversation as rendered.
type ChatState struct {
	Messages []Message `json:"messages"`
	Typing   bool      `json:"typing"`
}

// ChatView is the assistant app: a conversation with one request in
// flight at most.
type ChatView struct {
	asker   Asker
	logger  *logging.Logger
	publish func(Event)

	mu       sync.Mutex
	messages []Message
	typing   bool
	closed   bool
}

func newChatView(env *Env, _ apps.ID, _ LaunchOptions) View {
	return &ChatView{
		asker:    env.Assistant,
		logger:   logging.OrNop(env.Logger).Named("chat"),
		publish:  env.Publish,
		messages: []Message{{Role: RoleAssistant, Content: ChatGreeting}},
	}
}

func (v *ChatView) AppID() apps.ID { return apps.AI }

// Close drops any reply still on its way.
func (v *ChatView) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.closed = true
	v.typing = false
}

// Send posts a user message and asks the assistant in the background.
// Blank text is ignored.
func (v *ChatView) Send(text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	v.mu.Lock()
	if v.typing {
		v.mu.Unlock()
		return ErrChatBusy
	}
	v.messages = append(v.messages, Message{Role: RoleUser, Content: text})
	v.typing = true
	state := v.state()
	v.mu.Unlock()

	v.emit(state)
	go v.reply(text)
	return nil
}

func (v *ChatView) reply(text string) {
	answer := ai.FailedReply
	if v.asker != nil {
		answer = v.asker.Ask(context.Background(), text, "")
	}

	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		v.logger.Debug("Dropped assistant reply for closed chat")
		return
	}
	v.messages = append(v.messages, Message{Role: RoleAssistant, Content: answer})
	v.typing = false
	state := v.state()
	v.mu.Unlock()

	v.emit(state)
}

// State returns a copy of the conversation.
func (v *ChatView) State() ChatState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state()
}

func (v *ChatView) state() ChatState {
	return ChatState{
		Messages: append([]Message(nil), v.messages...),
		Typing:   v.typing,
	}
}

func (v *ChatView) emit(state ChatState) {
	if v.publish != nil {
		v.publish(Event{Type: EventChat, Data: state})
	}
}
