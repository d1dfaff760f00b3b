package database

import (
	"testing"
)

func TestStartAndCompleteLog(t *testing.T) {
	db := newTestDB(t)
	repo := NewLogRepository(db)

	id, err := repo.StartLog("rss", "AI")
	if err != nil {
		t.Fatal(err)
	}

	logs, err := repo.GetRecentLogs(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(logs) != 1 {
		t.Fatalf("Expected 1 log row, got %d", len(logs))
	}
	if logs[0].Status != LogStatusRunning {
		t.Errorf("Expected status '%s', got '%s'", LogStatusRunning, logs[0].Status)
	}
	if logs[0].CompletedAt != nil {
		t.Error("Expected running log to have no completion time")
	}

	if err := repo.CompleteLog(id, 10, 3, LogStatusSuccess, ""); err != nil {
		t.Fatal(err)
	}

	logs, err = repo.GetRecentLogs(10)
	if err != nil {
		t.Fatal(err)
	}
	if logs[0].Status != LogStatusSuccess {
		t.Errorf("Expected status '%s', got '%s'", LogStatusSuccess, logs[0].Status)
	}
	if logs[0].ArticlesFound != 10 || logs[0].ArticlesNew != 3 {
		t.Errorf("Expected counts 10/3, got %d/%d", logs[0].ArticlesFound, logs[0].ArticlesNew)
	}
	if logs[0].CompletedAt == nil {
		t.Error("Expected completed log to have a completion time")
	}
}

func TestGetRecentLogsLimit(t *testing.T) {
	db := newTestDB(t)
	repo := NewLogRepository(db)

	for i := 0; i < 5; i++ {
		if _, err := repo.StartLog("rss", "AI"); err != nil {
			t.Fatal(err)
		}
	}

	logs, err := repo.GetRecentLogs(3)
	if err != nil {
		t.Fatal(err)
	}
	if len(logs) != 3 {
		t.Errorf("Expected 3 log rows, got %d", len(logs))
	}
}
