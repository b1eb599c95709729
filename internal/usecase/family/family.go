package family

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"familytree/internal/domain/command"
	"familytree/internal/domain/event"
	"familytree/internal/domain/genealogy"
	"familytree/internal/render"
)

type EventPublisher interface {
	PublishTreeChanged(ctx context.Context, ev event.TreeEvent) error
}

type Journal interface {
	Append(ctx context.Context, entry event.JournalEntry) error
	Recent(ctx context.Context, sessionID string, limit int64) ([]event.JournalEntry, error)
}

// Result is the outcome of one command. Names is filled for queries only.
// A dropped line never parsed; an unapplied mutation parsed but left the tree as it was.
type Result struct {
	ID      string           `json:"id"`
	Line    string           `json:"line"`
	Command *command.Command `json:"command,omitempty"`
	Applied bool             `json:"applied"`
	Dropped bool             `json:"dropped"`
	Status  string           `json:"status,omitempty"`
	Names   []string         `json:"names"`
}

// FamilyUseCase owns one tree and runs commands against it one at a time.
type FamilyUseCase struct {
	mu         sync.Mutex
	tree       *genealogy.Tree
	sessionID  string
	log        *zap.SugaredLogger
	journal    Journal
	publishers []EventPublisher
	now        func() time.Time
}

func NewFamilyUseCase(log *zap.SugaredLogger, journal Journal, publishers ...EventPublisher) *FamilyUseCase {
	return &FamilyUseCase{
		tree:       genealogy.NewTree(),
		sessionID:  uuid.New().String(),
		log:        log,
		journal:    journal,
		publishers: publishers,
		now:        time.Now,
	}
}

func (f *FamilyUseCase) SessionID() string {
	return f.sessionID
}

// Subscribe adds a publisher after construction, e.g. a websocket hub.
func (f *FamilyUseCase) Subscribe(p EventPublisher) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.publishers = append(f.publishers, p)
}

// Execute parses line and dispatches it. Lines that do not parse are dropped
// without touching the tree.
func (f *FamilyUseCase) Execute(ctx context.Context, line string) Result {
	cmd, err := command.Parse(line)
	if err != nil {
		f.log.Debugf("dropping command %q: %v", line, err)
		return Result{
			ID:      uuid.New().String(),
			Line:    line,
			Dropped: true,
			Status:  err.Error(),
		}
	}
	return f.dispatch(ctx, line, cmd)
}

func (f *FamilyUseCase) Dispatch(ctx context.Context, cmd command.Command) Result {
	return f.dispatch(ctx, cmd.String(), cmd)
}

func (f *FamilyUseCase) dispatch(ctx context.Context, line string, cmd command.Command) Result {
	f.mu.Lock()
	defer f.mu.Unlock()

	res := Result{
		ID:      uuid.New().String(),
		Line:    line,
		Command: &cmd,
	}

	var err error
	switch cmd.Kind {
	case command.KindRoot:
		err = f.tree.AddRoot(cmd.Name)
	case command.KindLeft:
		err = f.tree.AddLeftChild(cmd.Parent, cmd.Child)
	case command.KindRight:
		err = f.tree.AddRightChild(cmd.Parent, cmd.Child)
	case command.KindAncestors:
		res.Names = f.tree.Ancestors(cmd.Name)
	case command.KindDescendants:
		res.Names = f.tree.Descendants(cmd.Name)
	default:
		f.log.Debugf("dropping command of unknown kind %d", int(cmd.Kind))
		res.Command = nil
		res.Dropped = true
		res.Status = "unknown command " + cmd.Kind.String()
		return res
	}

	switch {
	case err != nil:
		res.Status = err.Error()
		f.log.Debugf("command %q had no effect: %v", line, err)
	case cmd.Kind.IsMutation():
		res.Applied = true
		f.publish(ctx, res)
	default:
		res.Applied = true
	}

	f.record(ctx, res)
	return res
}

func (f *FamilyUseCase) publish(ctx context.Context, res Result) {
	ev := event.TreeEvent{
		SessionID: f.sessionID,
		CommandID: res.ID,
		Command:   *res.Command,
		Size:      f.tree.Len(),
		Tree:      render.NewView(f.tree.Root()),
		At:        f.now(),
	}
	for _, p := range f.publishers {
		if err := p.PublishTreeChanged(ctx, ev); err != nil {
			f.log.Errorf("failed to publish tree event %s: %v", ev.CommandID, err)
		}
	}
}

func (f *FamilyUseCase) record(ctx context.Context, res Result) {
	if f.journal == nil {
		return
	}
	entry := event.JournalEntry{
		ID:        res.ID,
		SessionID: f.sessionID,
		Line:      res.Line,
		Command:   *res.Command,
		Applied:   res.Applied,
		Status:    res.Status,
		Names:     res.Names,
		At:        f.now(),
	}
	if err := f.journal.Append(ctx, entry); err != nil {
		f.log.Errorf("failed to journal command %s: %v", res.ID, err)
	}
}

// Snapshot copies the current tree for rendering.
func (f *FamilyUseCase) Snapshot() *render.View {
	f.mu.Lock()
	defer f.mu.Unlock()
	return render.NewView(f.tree.Root())
}

// WithSnapshot calls fn with the current tree while holding the command lock.
// Whatever fn registers sees every event published after this snapshot and
// none published before it. fn must not call back into the use case.
func (f *FamilyUseCase) WithSnapshot(fn func(v *render.View)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(render.NewView(f.tree.Root()))
}

func (f *FamilyUseCase) Size() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tree.Len()
}

func (f *FamilyUseCase) Ancestors(ctx context.Context, name string) []string {
	return f.Dispatch(ctx, command.Command{Kind: command.KindAncestors, Name: name}).Names
}

func (f *FamilyUseCase) Descendants(ctx context.Context, name string) []string {
	return f.Dispatch(ctx, command.Command{Kind: command.KindDescendants, Name: name}).Names
}

// History lists this session's journal, newest first.
func (f *FamilyUseCase) History(ctx context.Context, limit int64) ([]event.JournalEntry, error) {
	if f.journal == nil {
		return []event.JournalEntry{}, nil
	}
	return f.journal.Recent(ctx, f.sessionID, limit)
}
