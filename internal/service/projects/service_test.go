package projects

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dks-soft/DKS-HandoverService/internal/domain"
	projectStorage "github.com/dks-soft/DKS-HandoverService/internal/infra/storage/project"
	"github.com/dks-soft/DKS-HandoverService/internal/service/projects/models"
	"github.com/dks-soft/DKS-HandoverService/pkg/ptr"
)

type fakeProjectRepo struct {
	project  *domain.Project
	upserted *domain.Project
}

func (f *fakeProjectRepo) GetByName(_ context.Context, _ string) (*domain.Project, error) {
	if f.project == nil {
		return nil, projectStorage.ErrProjectNotFound
	}
	return f.project, nil
}

func (f *fakeProjectRepo) Upsert(_ context.Context, p *domain.Project) (*domain.Project, error) {
	f.upserted = p
	return p, nil
}

type fakeContractRepo struct {
	names []string
}

func (f *fakeContractRepo) ListProjectNames(_ context.Context) ([]string, error) {
	return f.names, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestUpdateSlots_Success(t *testing.T) {
	repo := &fakeProjectRepo{}
	s := NewService(repo, &fakeContractRepo{}, nopLogger{})

	resp, err := s.UpdateSlots(context.Background(), &models.UpdateSlotsRequest{
		ProjectName: "riviera",
		SlotsLimit:  2,
		AddressRu:   ptr.Ptr("ул. Набережная, 1"),
	})

	require.NoError(t, err)
	assert.Equal(t, 2, resp.SlotsLimit)
	assert.Equal(t, 12, resp.DailyCapacity)
	require.NotNil(t, repo.upserted)
	assert.Equal(t, "riviera", repo.upserted.Name)
}

func TestUpdateSlots_InvalidLimit(t *testing.T) {
	s := NewService(&fakeProjectRepo{}, &fakeContractRepo{}, nopLogger{})

	_, err := s.UpdateSlots(context.Background(), &models.UpdateSlotsRequest{
		ProjectName: "riviera",
		SlotsLimit:  0,
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetSettings_DefaultsWhenMissing(t *testing.T) {
	s := NewService(&fakeProjectRepo{}, &fakeContractRepo{}, nopLogger{})

	resp, err := s.GetSettings(context.Background(), "riviera")

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSlotsLimit, resp.SlotsLimit)
	assert.Equal(t, domain.SlotsPerDay*domain.DefaultSlotsLimit, resp.DailyCapacity)
}

func TestListProjects(t *testing.T) {
	s := NewService(&fakeProjectRepo{}, &fakeContractRepo{names: []string{"akay", "riviera"}}, nopLogger{})

	names, err := s.ListProjects(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"akay", "riviera"}, names)
}
