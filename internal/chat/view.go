package chat

import "context"

// View is everything the controller needs from its host.
type View interface {
	AppendMessage(msg Message)
	ScrollToEnd()
	SetTypingIndicator(visible bool)
	SetWelcomeVisible(visible bool)
	InputValue() string
	SetInputValue(value string)
	// ResetLog replaces the log with an empty one. The typing indicator
	// scaffold is kept, hidden.
	ResetLog()
	SetSendEmphasis(emphasized bool)
}

// Confirmer asks the user a blocking yes/no question.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, prompt string) (bool, error)

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) (bool, error) {
	return f(ctx, prompt)
}

// Answered returns a Confirmer that always gives answer. Hosts that collect
// the answer asynchronously (a form overlay) use it to replay the choice.
func Answered(answer bool) Confirmer {
	return ConfirmFunc(func(context.Context, string) (bool, error) {
		return answer, nil
	})
}
