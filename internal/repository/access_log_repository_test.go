package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"siscav/internal/model"
)

func seedAccessLogs(t *testing.T, repo AccessLogRepository) []*model.AccessLog {
	t.Helper()
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	logs := []*model.AccessLog{
		{Timestamp: base, PlateStringDetected: "ABC-1234", Status: model.AccessStatusAuthorized, ImageStorageKey: "a.jpg"},
		{Timestamp: base.Add(1 * time.Hour), PlateStringDetected: "abc 1234", Status: model.AccessStatusDenied, ImageStorageKey: "b.jpg"},
		{Timestamp: base.Add(2 * time.Hour), PlateStringDetected: "XYZ-9999", Status: model.AccessStatusDenied, ImageStorageKey: "c.jpg"},
		{Timestamp: base.Add(3 * time.Hour), PlateStringDetected: "QWE1D23", Status: model.AccessStatusAuthorized, ImageStorageKey: "d.png"},
	}
	for _, l := range logs {
		require.NoError(t, repo.Create(ctx, l))
	}
	return logs
}

func TestAccessLogRepository_ListPage_OrderAndTotal(t *testing.T) {
	repo := NewAccessLogRepository(newTestDB(t))
	seedAccessLogs(t, repo)

	items, total, err := repo.ListPage(context.Background(), 0, 10, AccessLogFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 4, total)
	require.Len(t, items, 4)

	// Most recent first.
	for i := 1; i < len(items); i++ {
		assert.False(t, items[i].Timestamp.After(items[i-1].Timestamp))
	}
}

func TestAccessLogRepository_ListPage_PlateSubstringCaseInsensitive(t *testing.T) {
	repo := NewAccessLogRepository(newTestDB(t))
	seedAccessLogs(t, repo)

	items, total, err := repo.ListPage(context.Background(), 0, 10, AccessLogFilter{Plate: "abc"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, items, 2)
}

func TestAccessLogRepository_ListPage_ConjunctiveFilters(t *testing.T) {
	repo := NewAccessLogRepository(newTestDB(t))
	seedAccessLogs(t, repo)

	// Plate AND status must both match.
	items, total, err := repo.ListPage(context.Background(), 0, 10, AccessLogFilter{
		Plate:  "abc",
		Status: model.AccessStatusDenied,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, "abc 1234", items[0].PlateStringDetected)
}

func TestAccessLogRepository_ListPage_TimeRange(t *testing.T) {
	repo := NewAccessLogRepository(newTestDB(t))
	seedAccessLogs(t, repo)

	from := time.Date(2025, 6, 1, 13, 0, 0, 0, time.UTC)
	to := time.Date(2025, 6, 1, 14, 0, 0, 0, time.UTC)
	items, total, err := repo.ListPage(context.Background(), 0, 10, AccessLogFilter{From: &from, To: &to})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, items, 2)
}

func TestAccessLogRepository_ListPage_Pagination(t *testing.T) {
	repo := NewAccessLogRepository(newTestDB(t))
	seedAccessLogs(t, repo)

	items, total, err := repo.ListPage(context.Background(), 3, 2, AccessLogFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 4, total)
	assert.Len(t, items, 1)
}
