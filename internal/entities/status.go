package entities

import "fmt"

// Status - состояние заказа в конвейере обработки.
//
//	Pending ──> Processing ──> Completed
//
// Автоматические переходы выполняет только воркер. Ручная корректировка
// (PATCH /orders/{id}/status) может выставить любой статус из набора.
type Status string

const (
	StatusPending    Status = "Pending"
	StatusProcessing Status = "Processing"
	StatusCompleted  Status = "Completed"
)

func (s Status) String() string { return string(s) }

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusCompleted:
		return true
	default:
		return false
	}
}

// ParseStatus проверяет только принадлежность к набору статусов, порядок переходов не учитывается.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	return status, nil
}

func (s Status) stage() int {
	switch s {
	case StatusPending:
		return 1
	case StatusProcessing:
		return 2
	case StatusCompleted:
		return 3
	default:
		return 0
	}
}

// Transition - автоматический переход конвейера.
type Transition struct {
	From Status
	To   Status
}

var (
	StartProcessing    = Transition{From: StatusPending, To: StatusProcessing}
	CompleteProcessing = Transition{From: StatusProcessing, To: StatusCompleted}
)

func (t Transition) String() string {
	return fmt.Sprintf("%s->%s", t.From, t.To)
}

// Apply возвращает статус после перехода и признак того, что статус изменился.
// Переход идемпотентен: если заказ уже в целевом статусе или дальше, это no-op.
func (t Transition) Apply(current Status) (Status, bool, error) {
	if !current.IsValid() {
		return current, false, fmt.Errorf("%w: %q", ErrInvalidStatus, current)
	}
	if current == t.From {
		return t.To, true, nil
	}
	if current.stage() >= t.To.stage() {
		return current, false, nil
	}
	return current, false, fmt.Errorf("%w: %s from %s", ErrTransitionNotAllowed, t, current)
}
