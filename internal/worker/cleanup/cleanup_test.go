package cleanup

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"
)

type fakeResult struct {
	rowsAffected int64
}

func (r *fakeResult) LastInsertId() (int64, error) { return 0, nil }
func (r *fakeResult) RowsAffected() (int64, error) { return r.rowsAffected, nil }

// mockExecutor はExecutorのモック実装。実行されたクエリと引数を記録する。
type mockExecutor struct {
	queries []string
	args    [][]interface{}
	results []sql.Result
	err     error
}

func (m *mockExecutor) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	m.queries = append(m.queries, query)
	m.args = append(m.args, args)
	if m.err != nil {
		return nil, m.err
	}
	idx := len(m.queries) - 1
	if idx < len(m.results) {
		return m.results[idx], nil
	}
	return &fakeResult{}, nil
}

// mockRecorder はCleanupRecorderのモック実装。
type mockRecorder struct {
	sessionsCleaned       int
	announcementsArchived int
}

func (m *mockRecorder) RecordSessionsCleaned(count int)       { m.sessionsCleaned += count }
func (m *mockRecorder) RecordAnnouncementsArchived(count int) { m.announcementsArchived += count }

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(&bytes.Buffer{}, nil))
}

func TestCleanupJob_Run_DeletesSessionsAndArchivesAnnouncements(t *testing.T) {
	exec := &mockExecutor{
		results: []sql.Result{
			&fakeResult{rowsAffected: 3}, // セッション削除
			&fakeResult{rowsAffected: 2}, // お知らせアーカイブ
		},
	}
	metrics := &mockRecorder{}
	job := NewCleanupJob(exec, newTestLogger(), metrics, 30*time.Minute)

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(exec.queries) != 2 {
		t.Fatalf("queries = %d, want 2", len(exec.queries))
	}

	if !strings.Contains(exec.queries[0], "DELETE FROM sessions") {
		t.Errorf("first query should delete sessions: %q", exec.queries[0])
	}
	if !strings.Contains(exec.queries[0], "last_seen_at") {
		t.Errorf("session query should include idle expiry: %q", exec.queries[0])
	}
	if len(exec.args[0]) != 1 || exec.args[0][0] != "1800 seconds" {
		t.Errorf("session query args = %v, want [1800 seconds]", exec.args[0])
	}

	if !strings.Contains(exec.queries[1], "UPDATE announcements") {
		t.Errorf("second query should archive announcements: %q", exec.queries[1])
	}
	if !strings.Contains(exec.queries[1], "'archived'") {
		t.Errorf("archive query should set archived status: %q", exec.queries[1])
	}

	if metrics.sessionsCleaned != 3 {
		t.Errorf("sessionsCleaned = %d, want 3", metrics.sessionsCleaned)
	}
	if metrics.announcementsArchived != 2 {
		t.Errorf("announcementsArchived = %d, want 2", metrics.announcementsArchived)
	}
}

func TestCleanupJob_Run_WithoutIdleTimeout(t *testing.T) {
	exec := &mockExecutor{}
	job := NewCleanupJob(exec, newTestLogger(), &mockRecorder{}, 0)

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if strings.Contains(exec.queries[0], "last_seen_at") {
		t.Errorf("session query should not include idle expiry: %q", exec.queries[0])
	}
	if len(exec.args[0]) != 0 {
		t.Errorf("session query args = %v, want empty", exec.args[0])
	}
}

func TestCleanupJob_Run_NothingToClean(t *testing.T) {
	exec := &mockExecutor{}
	metrics := &mockRecorder{}
	job := NewCleanupJob(exec, newTestLogger(), metrics, time.Hour)

	// 削除対象がなくてもエラーにならず、メトリクスも記録しない
	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if metrics.sessionsCleaned != 0 {
		t.Errorf("sessionsCleaned = %d, want 0", metrics.sessionsCleaned)
	}
	if metrics.announcementsArchived != 0 {
		t.Errorf("announcementsArchived = %d, want 0", metrics.announcementsArchived)
	}
}

func TestCleanupJob_Run_DatabaseError(t *testing.T) {
	exec := &mockExecutor{err: errors.New("connection refused")}
	job := NewCleanupJob(exec, newTestLogger(), &mockRecorder{}, time.Hour)

	if err := job.Run(context.Background()); err == nil {
		t.Fatal("Run() should return error on database failure")
	}
}

func TestCleanupJob_Start_StopsOnContextCancel(t *testing.T) {
	exec := &mockExecutor{}
	job := NewCleanupJob(exec, newTestLogger(), &mockRecorder{}, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		job.Start(ctx, time.Hour)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Start did not stop after context cancel")
	}

	// 起動直後の1回分は実行されている
	if len(exec.queries) < 2 {
		t.Errorf("queries = %d, want at least 2", len(exec.queries))
	}
}
