package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jobtrail/jobtrail/internal/dtos"
	"github.com/jobtrail/jobtrail/internal/models"
	"github.com/jobtrail/jobtrail/internal/store"
)

func newTestService(t *testing.T) *JobService {
	t.Helper()
	slot := store.NewFileSlot(filepath.Join(t.TempDir(), "jobtrail.json"))
	st := store.New(slot, zap.NewNop())
	return NewJobService(context.Background(), st, zap.NewNop())
}

func TestCreateAndGet(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	rec, err := svc.Create(ctx, &dtos.JobCreationRequest{Company: "Acme", Role: "Engineer"})
	require.NoError(t, err)
	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, models.StatusApplied, rec.Status)
	assert.NotNil(t, rec.Contacts)

	got, found := svc.Get(ctx, rec.ID)
	require.True(t, found)
	assert.Equal(t, "Acme", got.Company)
}

func TestCreateCoercesUnknownStatus(t *testing.T) {
	svc := newTestService(t)

	rec, err := svc.Create(context.Background(), &dtos.JobCreationRequest{
		Company: "Acme", Role: "Engineer", Status: "ghosted",
	})
	require.NoError(t, err)
	assert.Equal(t, models.DefaultStatus, rec.Status)
}

func TestUpdateMissingRecord(t *testing.T) {
	svc := newTestService(t)

	company := "Beta"
	_, found, err := svc.Update(context.Background(), "nope", &dtos.JobUpdateRequest{Company: &company})
	require.NoError(t, err)
	assert.False(t, found)
}

func TestUpdateAppliesOnlyProvidedFields(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	rec, err := svc.Create(ctx, &dtos.JobCreationRequest{Company: "Acme", Role: "Engineer", Notes: "keep me"})
	require.NoError(t, err)

	status := "interviewing"
	got, found, err := svc.Update(ctx, rec.ID, &dtos.JobUpdateRequest{Status: &status})
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, models.StatusInterviewing, got.Status)
	assert.Equal(t, "keep me", got.Notes)
}

func TestDelete(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	rec, err := svc.Create(ctx, &dtos.JobCreationRequest{Company: "Acme", Role: "Engineer"})
	require.NoError(t, err)

	found, err := svc.Delete(ctx, rec.ID)
	require.NoError(t, err)
	assert.True(t, found)

	_, found = svc.Get(ctx, rec.ID)
	assert.False(t, found)

	found, err = svc.Delete(ctx, rec.ID)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestAddEmailAndEvent(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	rec, err := svc.Create(ctx, &dtos.JobCreationRequest{Company: "Acme", Role: "Engineer"})
	require.NoError(t, err)

	got, found, err := svc.AddEmail(ctx, rec.ID, models.EmailEntry{From: "dana@acme.com", Body: "hi"})
	require.NoError(t, err)
	require.True(t, found)
	require.Len(t, got.Emails, 1)
	assert.NotEmpty(t, got.Emails[0].ID)
	assert.False(t, got.Emails[0].Date.IsZero())

	got, found, err = svc.AddEvent(ctx, rec.ID, models.Event{Type: models.EventInterview, Title: "Screen"})
	require.NoError(t, err)
	require.True(t, found)
	require.Len(t, got.Events, 1)
}

func TestReplaceAllPersists(t *testing.T) {
	slot := store.NewFileSlot(filepath.Join(t.TempDir(), "jobtrail.json"))
	st := store.New(slot, zap.NewNop())
	svc := NewJobService(context.Background(), st, zap.NewNop())
	ctx := context.Background()

	_, err := svc.Create(ctx, &dtos.JobCreationRequest{Company: "Old", Role: "Engineer"})
	require.NoError(t, err)

	replacement := []models.Record{models.NewRecord("New", "Designer")}
	require.NoError(t, svc.ReplaceAll(ctx, replacement))

	assert.Len(t, svc.List(ctx), 1)
	assert.Equal(t, "New", svc.List(ctx)[0].Company)

	// A fresh service over the same slot sees the replacement.
	svc2 := NewJobService(ctx, st, zap.NewNop())
	got := svc2.List(ctx)
	require.Len(t, got, 1)
	assert.Equal(t, "New", got[0].Company)
}

func TestListReturnsSnapshot(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, &dtos.JobCreationRequest{Company: "Acme", Role: "Engineer"})
	require.NoError(t, err)

	snapshot := svc.List(ctx)
	snapshot[0].Company = "Mutated"

	assert.Equal(t, "Acme", svc.List(ctx)[0].Company)
}

func TestMatcherService(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, &dtos.JobCreationRequest{Company: "Stripe", Role: "Engineer"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, &dtos.JobCreationRequest{Company: "Go", Role: "Engineer"}) // too short to match
	require.NoError(t, err)

	matcher := NewMatcherService(svc)

	rec, ok := matcher.MatchRecord(ctx, "Update on your application to Stripe", "noreply@example.com")
	require.True(t, ok)
	assert.Equal(t, "Stripe", rec.Company)

	rec, ok = matcher.MatchRecord(ctx, "Interview", "Stripe Recruiting <jobs@stripe.com>")
	require.True(t, ok)
	assert.Equal(t, "Stripe", rec.Company)

	rec, ok = matcher.MatchRecord(ctx, "Hello", "someone@stripe.com")
	require.True(t, ok)
	assert.Equal(t, "Stripe", rec.Company)

	_, ok = matcher.MatchRecord(ctx, "Your order has shipped", "shop@webshop.example")
	assert.False(t, ok)
}
