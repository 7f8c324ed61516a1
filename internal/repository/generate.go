package repository

import (
	"fmt"
	"os"

	"gorm.io/gen"

	"OnShift/internal/model"
	"OnShift/storage/database"
)

// WorkerQuerier covers the account lookups.
type WorkerQuerier interface {
	// GetByEmail looks up the login identity.
	//
	// SELECT * FROM @@table WHERE email = @email LIMIT 1
	GetByEmail(email string) (*gen.T, error)

	// GetByPublicID resolves the API-facing worker ID.
	//
	// SELECT * FROM @@table WHERE public_id = @publicID LIMIT 1
	GetByPublicID(publicID int64) (*gen.T, error)

	// ListByRole lists workers by role.
	//
	// SELECT * FROM @@table WHERE role = @role ORDER BY name
	ListByRole(role string) ([]*gen.T, error)
}

// TimeRecordQuerier covers the clock state reads.
type TimeRecordQuerier interface {
	// GetByWorkerID fetches one worker's clock record.
	//
	// SELECT * FROM @@table WHERE worker_id = @workerID LIMIT 1
	GetByWorkerID(workerID int64) (*gen.T, error)

	// ListByWorkerIDs fetches clock records for the team view.
	//
	// SELECT * FROM @@table WHERE worker_id IN @workerIDs
	ListByWorkerIDs(workerIDs []int64) ([]*gen.T, error)

	// CountByStatus feeds the status distribution chart.
	//
	// SELECT status, COUNT(*) as count
	// FROM @@table
	// GROUP BY status
	CountByStatus() ([]gen.M, error)

	// ListOpenSince finds sessions open since before the cutoff.
	//
	// SELECT * FROM @@table
	// WHERE status = 'clocked_in' AND session_start <= @cutoff
	ListOpenSince(cutoff string) ([]*gen.T, error)
}

// WorkSessionQuerier covers the banked-session analytics.
type WorkSessionQuerier interface {
	// SumDailyDurations feeds the daily hours trend.
	//
	// SELECT work_date, SUM(duration_ms) as total_ms
	// FROM @@table
	// WHERE work_date >= @fromDate::date
	// GROUP BY work_date
	// ORDER BY work_date
	SumDailyDurations(fromDate string) ([]gen.M, error)

	// ListByWorkerAndDate lists one worker's sessions for a day.
	//
	// SELECT * FROM @@table
	// WHERE worker_id = @workerID AND work_date = @date::date
	// ORDER BY started_at
	ListByWorkerAndDate(workerID int64, date string) ([]*gen.T, error)
}

func Generate() error {
	if err := database.Init(); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := database.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migration: %w", err)
	}

	db := database.DB()
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}

	g := gen.NewGenerator(gen.Config{
		OutPath:           "./internal/repository/query",
		ModelPkgPath:      "OnShift/internal/model",
		Mode:              gen.WithDefaultQuery | gen.WithQueryInterface | gen.WithoutContext,
		FieldNullable:     true,
		FieldCoverable:    false,
		FieldSignable:     false,
		FieldWithIndexTag: false,
		FieldWithTypeTag:  true,
	})

	g.UseDB(db)

	g.ApplyBasic(
		&model.Worker{},
		&model.WorkerTimeRecord{},
		&model.WorkSession{},
	)

	g.ApplyInterface(func(WorkerQuerier) {}, &model.Worker{})
	g.ApplyInterface(func(TimeRecordQuerier) {}, &model.WorkerTimeRecord{})
	g.ApplyInterface(func(WorkSessionQuerier) {}, &model.WorkSession{})

	g.Execute()

	return nil
}

func RunGenerate() {
	if err := Generate(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to generate code: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Code generation completed successfully!")
}
