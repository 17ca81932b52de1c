package storage

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/guttosm/tradeledger/internal/domain/models"
)

type dummyErr struct{}

func (dummyErr) Error() string { return "dummy" }

func newMockRepo(t *testing.T) (*ledgerRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	repo := &ledgerRepository{db: db}
	cleanup := func() { _ = db.Close() }
	return repo, mock, cleanup
}

func TestLoadRows_SQLMock(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	rows := sqlmock.NewRows([]string{"source_file", "line", "trade_date", "client_id", "scrip_name", "buy_qty", "buy_price", "sell_qty", "sell_price"}).
		AddRow("jan.csv", 2, "2024-01-01", "C1", "S1", "10", "100", nil, nil).
		AddRow("feb.csv", 3, "2024-01-02", "C2", "S2", nil, nil, "5", "20.5")
	mock.ExpectQuery(`SELECT source_file, line, trade_date, .* FROM ledger_rows ORDER BY id`).WillReturnRows(rows)

	out, err := repo.LoadRows(context.Background())
	if err != nil {
		t.Fatalf("LoadRows: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("want 2 rows got %d", len(out))
	}
	want := models.RawRow{Source: "jan.csv", Line: 2, TradeDate: "2024-01-01", ClientID: "C1", ScripName: "S1", BuyQty: "10", BuyPrice: "100"}
	if out[0] != want {
		t.Fatalf("unexpected first row: %+v", out[0])
	}
	if out[1].BuyQty != "" || out[1].SellPrice != "20.5" {
		t.Fatalf("NULL cells must come back empty: %+v", out[1])
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestLoadRows_QueryError(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	mock.ExpectQuery(`FROM ledger_rows`).WillReturnError(dummyErr{})
	if _, err := repo.LoadRows(context.Background()); err == nil {
		t.Fatalf("expected query error")
	}
}

func TestHasIngestionForFile_SQLMock(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM ingestion_log WHERE file_name = $1)")).
		WithArgs("ledger.csv").WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	ok, err := repo.HasIngestionForFile(context.Background(), "ledger.csv")
	if err != nil || !ok {
		t.Fatalf("HasIngestionForFile: ok=%v err=%v", ok, err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestNewLedgerRepository_Construct(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer func() { _ = db.Close() }()
	if r := NewLedgerRepository(db); r == nil {
		t.Fatalf("expected non-nil repository")
	}
}

const (
	setLocalSQL   = "SET LOCAL synchronous_commit = OFF"
	deleteRowsSQL = "DELETE FROM ledger_rows WHERE source_file = $1"
	upsertLogSQL  = "INSERT INTO ingestion_log (file_name, row_count) VALUES ($1, $2) ON CONFLICT (file_name) DO UPDATE SET row_count = EXCLUDED.row_count, ingested_at = NOW()"
)

// expectCopy registers one COPY chunk: a prepare, one exec per row and the flush.
func expectCopy(mock sqlmock.Sqlmock, rows int) {
	prep := mock.ExpectPrepare("COPY")
	for i := 0; i < rows; i++ {
		prep.ExpectExec().WillReturnResult(sqlmock.NewResult(0, 1))
	}
	mock.ExpectExec("COPY").WillReturnResult(sqlmock.NewResult(0, 0))
}

func ledgerRows(n int) []models.RawRow {
	rows := make([]models.RawRow, n)
	for i := range rows {
		rows[i] = models.RawRow{Line: i + 2, TradeDate: "2024-01-01", ClientID: "C1", ScripName: "S1", BuyQty: "10", BuyPrice: "100"}
	}
	return rows
}

func TestIngestFile_SQLMock(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(setLocalSQL)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(deleteRowsSQL)).WithArgs("ledger.csv").WillReturnResult(sqlmock.NewResult(0, 4))
	expectCopy(mock, 2)
	expectCopy(mock, 1)
	mock.ExpectExec(regexp.QuoteMeta(upsertLogSQL)).WithArgs("ledger.csv", 3).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	if err := repo.IngestFile(context.Background(), "ledger.csv", ledgerRows(3), 2); err != nil {
		t.Fatalf("IngestFile: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

// A failing chunk must roll back the delete and leave the ingestion log alone.
func TestIngestFile_RollsBackOnFailure(t *testing.T) {
	cases := []struct {
		name  string
		setup func(mock sqlmock.Sqlmock)
	}{
		{
			name: "begin",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin().WillReturnError(dummyErr{})
			},
		},
		{
			name: "delete",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta(setLocalSQL)).WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectExec(regexp.QuoteMeta(deleteRowsSQL)).WillReturnError(dummyErr{})
				mock.ExpectRollback()
			},
		},
		{
			name: "second chunk row",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta(setLocalSQL)).WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectExec(regexp.QuoteMeta(deleteRowsSQL)).WillReturnResult(sqlmock.NewResult(0, 3))
				expectCopy(mock, 1)
				mock.ExpectPrepare("COPY").ExpectExec().WillReturnError(dummyErr{})
				mock.ExpectRollback()
			},
		},
		{
			name: "flush",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta(setLocalSQL)).WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectExec(regexp.QuoteMeta(deleteRowsSQL)).WillReturnResult(sqlmock.NewResult(0, 0))
				prep := mock.ExpectPrepare("COPY")
				prep.ExpectExec().WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec("COPY").WillReturnError(dummyErr{})
				mock.ExpectRollback()
			},
		},
		{
			name: "ingestion log",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta(setLocalSQL)).WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectExec(regexp.QuoteMeta(deleteRowsSQL)).WillReturnResult(sqlmock.NewResult(0, 0))
				expectCopy(mock, 1)
				expectCopy(mock, 1)
				mock.ExpectExec(regexp.QuoteMeta(upsertLogSQL)).WillReturnError(dummyErr{})
				mock.ExpectRollback()
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo, mock, done := newMockRepo(t)
			defer done()
			tc.setup(mock)
			if err := repo.IngestFile(context.Background(), "f.csv", ledgerRows(2), 1); err == nil {
				t.Fatalf("expected error on %s", tc.name)
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Fatalf("unmet expectations: %v", err)
			}
		})
	}
}

func TestPing_SQLMock(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer func() { _ = db.Close() }()
	mock.ExpectPing()
	if err := NewLedgerRepository(db).Ping(context.Background()); err != nil {
		t.Fatalf("Ping: %v", err)
	}
}
