package cmd

import (
	"context"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studioops/internal/cache"
	"studioops/internal/domain"
	"studioops/internal/ports"
	"studioops/internal/services"
)

// fakeSessionAPI counts delete calls so tests can assert whether the
// confirmation prompt gated the mutation.
type fakeSessionAPI struct {
	deleteCalls int32
}

func (f *fakeSessionAPI) List(ctx context.Context, date, trainer string) ([]domain.SessionRecord, error) {
	return nil, nil
}

func (f *fakeSessionAPI) Daily(ctx context.Context, date string) ([]domain.SessionRecord, error) {
	return nil, nil
}

func (f *fakeSessionAPI) Trainers(ctx context.Context) (*domain.TrainerList, error) {
	return &domain.TrainerList{}, nil
}

func (f *fakeSessionAPI) Create(ctx context.Context, payload domain.SessionCreate) (*domain.SessionRecord, error) {
	return &domain.SessionRecord{ID: 1}, nil
}

func (f *fakeSessionAPI) Update(ctx context.Context, id int, payload domain.SessionCreate) (*domain.SessionRecord, error) {
	return &domain.SessionRecord{ID: id}, nil
}

func (f *fakeSessionAPI) Delete(ctx context.Context, id int) error {
	atomic.AddInt32(&f.deleteCalls, 1)
	return nil
}

func (f *fakeSessionAPI) TodayStats(ctx context.Context) (map[string]any, error) {
	return map[string]any{}, nil
}

func newDelFixture(t *testing.T) (*CLI, *fakeSessionAPI) {
	t.Helper()
	fake := &fakeSessionAPI{}
	c := cache.New(5 * time.Minute)
	t.Cleanup(c.Close)
	svc := services.NewDataService(ports.Backend{Sessions: fake}, c, 30*time.Second)
	return &CLI{Container: &Container{DataService: svc}}, fake
}

func TestSessionsDel_PromptDeclinedCancels(t *testing.T) {
	cli, fake := newDelFixture(t)

	cmd := SessionsDelCmd{ID: 7, confirmInput: strings.NewReader("n\n")}
	require.NoError(t, cmd.Run(cli))

	assert.Equal(t, int32(0), atomic.LoadInt32(&fake.deleteCalls), "declined prompt must not delete")
}

func TestSessionsDel_PromptAcceptedDeletes(t *testing.T) {
	cli, fake := newDelFixture(t)

	cmd := SessionsDelCmd{ID: 7, confirmInput: strings.NewReader("y\n")}
	require.NoError(t, cmd.Run(cli))

	assert.Equal(t, int32(1), atomic.LoadInt32(&fake.deleteCalls))
}

func TestSessionsDel_ForceSkipsPrompt(t *testing.T) {
	cli, fake := newDelFixture(t)

	// No input reader wired: a prompt would block on stdin
	cmd := SessionsDelCmd{Force: true, ID: 7}
	require.NoError(t, cmd.Run(cli))

	assert.Equal(t, int32(1), atomic.LoadInt32(&fake.deleteCalls))
}
