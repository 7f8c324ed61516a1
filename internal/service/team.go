package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"OnShift/internal/cache"
	"OnShift/internal/model"
	"OnShift/internal/model/dto"
	"OnShift/internal/timeclock"
	pkgerrors "OnShift/pkg/errors"
	"OnShift/pkg/logger"
	"OnShift/pkg/snowflake"
	"OnShift/storage/database"
	"OnShift/utils"
)

var (
	teamService *TeamService
	teamOnce    sync.Once
)

func Team() *TeamService {
	teamOnce.Do(func() {
		teamService = &TeamService{}
	})
	return teamService
}

type TeamService struct{}

// CreateWorker provisions an employee account together with its
// zeroed time record, in one transaction.
func (s *TeamService) CreateWorker(ctx context.Context, req *dto.CreateWorkerRequest) (*dto.CreateWorkerData, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !utils.ValidateEmail(email) {
		return nil, pkgerrors.WithField("email")
	}
	if req.Phone != "" && !utils.ValidatePhone(req.Phone) {
		return nil, pkgerrors.WithField("phone")
	}

	var existing model.Worker
	err := database.DB().WithContext(ctx).
		Where("email = ?", email).
		First(&existing).Error
	if err == nil {
		return nil, pkgerrors.EmailAlreadyTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	publicID, err := snowflake.NextID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate worker ID: %w", err)
	}

	worker := model.Worker{
		PublicID:     publicID,
		Email:        email,
		Name:         strings.TrimSpace(req.Name),
		Role:         model.RoleEmployee,
		PasswordHash: passwordHash,
		Phone:        req.Phone,
	}
	if req.Timezone != "" {
		worker.Timezone = req.Timezone
	}

	err = database.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&worker).Error; err != nil {
			return fmt.Errorf("failed to create worker: %w", err)
		}
		record := model.WorkerTimeRecord{
			WorkerID:      publicID,
			Status:        model.StatusClockedOut,
			TaskLog:       model.TaskLogEntries{},
			AssignedTasks: model.AssignedTasks{},
		}
		if err := tx.Create(&record).Error; err != nil {
			return fmt.Errorf("failed to create time record: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Logger.Info("Provisioned worker",
		zap.Int64("worker_id", publicID),
		zap.String("email", email),
	)

	return &dto.CreateWorkerData{
		WorkerID: utils.FormatWorkerID(publicID),
		Email:    email,
	}, nil
}

// GetTeamStatus builds the employer dashboard table. Served from a
// short-TTL cache; any clock transition invalidates it.
func (s *TeamService) GetTeamStatus(ctx context.Context) (*dto.TeamStatusData, error) {
	if cached, err := cache.GetTeamStatus(ctx); err != nil {
		logger.Logger.Warn("Team status cache read failed", zap.Error(err))
	} else if cached != nil {
		return cached, nil
	}

	rows, err := s.employeeRecords(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	data := &dto.TeamStatusData{
		Members: make([]dto.TeamMemberStatus, 0, len(rows)),
		AsOf:    now,
	}
	for i := range rows {
		row := &rows[i]
		data.Members = append(data.Members, dto.TeamMemberStatus{
			WorkerID:     utils.FormatWorkerID(row.record.WorkerID),
			Name:         row.worker.Name,
			Email:        row.worker.Email,
			Status:       string(row.record.Status),
			SessionStart: row.record.SessionStart,
			HoursTodayMs: timeclock.HoursToday(&row.record, now),
			TotalHours:   row.record.TotalHours,
			TaskCount:    len(row.record.AssignedTasks),
		})
	}

	if err := cache.SetTeamStatus(ctx, data); err != nil {
		logger.Logger.Warn("Team status cache write failed", zap.Error(err))
	}
	return data, nil
}

// GetStatusDistribution counts employees per clock status.
func (s *TeamService) GetStatusDistribution(ctx context.Context) (*dto.StatusDistributionData, error) {
	type statusCount struct {
		Status string
		Count  int
	}

	var counts []statusCount
	err := database.DB().WithContext(ctx).
		Model(&model.WorkerTimeRecord{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate status distribution: %w", err)
	}

	data := &dto.StatusDistributionData{}
	for _, c := range counts {
		switch model.SessionStatus(c.Status) {
		case model.StatusClockedIn:
			data.ClockedIn = c.Count
		case model.StatusClockedOut:
			data.ClockedOut = c.Count
		case model.StatusOnBreak:
			data.OnBreak = c.Count
		}
	}
	return data, nil
}

// GetTotalHours returns the lifetime hours per employee.
func (s *TeamService) GetTotalHours(ctx context.Context) (*dto.TotalHoursData, error) {
	rows, err := s.employeeRecords(ctx)
	if err != nil {
		return nil, err
	}

	data := &dto.TotalHoursData{Workers: make([]dto.WorkerHours, 0, len(rows))}
	for i := range rows {
		row := &rows[i]
		data.Workers = append(data.Workers, dto.WorkerHours{
			WorkerID:   utils.FormatWorkerID(row.record.WorkerID),
			Name:       row.worker.Name,
			TotalHours: row.record.TotalHours,
		})
	}
	return data, nil
}

// GetDailyHours sums closed-session hours across the team per day for
// the trailing window.
func (s *TeamService) GetDailyHours(ctx context.Context, days int) (*dto.DailyHoursData, error) {
	if days <= 0 {
		days = 7
	}
	if days > 90 {
		days = 90
	}

	type dayRow struct {
		WorkDate   time.Time
		DurationMs int64
	}

	since := time.Now().AddDate(0, 0, -days)
	var rows []dayRow
	err := database.DB().WithContext(ctx).
		Model(&model.WorkSession{}).
		Select("work_date, sum(duration_ms) as duration_ms").
		Where("work_date >= ?", since).
		Group("work_date").
		Order("work_date").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate daily hours: %w", err)
	}

	data := &dto.DailyHoursData{Days: make([]dto.DailyHours, 0, len(rows))}
	for _, row := range rows {
		data.Days = append(data.Days, dto.DailyHours{
			Date:  row.WorkDate.Format("2006-01-02"),
			Hours: float64(row.DurationMs) / 3_600_000.0,
		})
	}
	return data, nil
}

// RequireEmployer checks that the caller holds the employer role and
// returns their display name for task attribution.
func (s *TeamService) RequireEmployer(ctx context.Context, workerID string) (string, error) {
	id, err := utils.ParseWorkerID(workerID)
	if err != nil {
		return "", err
	}

	var worker model.Worker
	err = database.DB().WithContext(ctx).
		Where("public_id = ?", id).
		First(&worker).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", pkgerrors.WorkerNotFound
		}
		return "", fmt.Errorf("failed to query worker: %w", err)
	}

	if worker.Role != model.RoleEmployer {
		return "", pkgerrors.EmployerOnly
	}
	if worker.Name != "" {
		return worker.Name, nil
	}
	return worker.Email, nil
}

// OverdueSession is one open session past the missed-clock-out limit.
type OverdueSession struct {
	WorkerID     int64
	Phone        string
	SessionStart time.Time
}

// ListOverdueSessions finds sessions open since before the cutoff,
// for the scheduler's missed-clock-out sweep.
func (s *TeamService) ListOverdueSessions(ctx context.Context, cutoff time.Time) ([]OverdueSession, error) {
	rows, err := s.employeeRecords(ctx)
	if err != nil {
		return nil, err
	}

	var overdue []OverdueSession
	for i := range rows {
		row := &rows[i]
		if row.record.Status != model.StatusClockedIn || row.record.SessionStart == nil {
			continue
		}
		if row.record.SessionStart.After(cutoff) {
			continue
		}
		overdue = append(overdue, OverdueSession{
			WorkerID:     row.record.WorkerID,
			Phone:        row.worker.Phone,
			SessionStart: *row.record.SessionStart,
		})
	}
	return overdue, nil
}

// WorkerDay pairs a worker with their timezone for the daily sweep.
type WorkerDay struct {
	WorkerID int64
	Timezone string
}

// ListWorkers returns every employee's ID and timezone.
func (s *TeamService) ListWorkers(ctx context.Context) ([]WorkerDay, error) {
	var workers []model.Worker
	err := database.DB().WithContext(ctx).
		Where("role = ?", model.RoleEmployee).
		Find(&workers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list workers: %w", err)
	}

	days := make([]WorkerDay, 0, len(workers))
	for _, w := range workers {
		days = append(days, WorkerDay{WorkerID: w.PublicID, Timezone: w.Timezone})
	}
	return days, nil
}

type employeeRecord struct {
	worker model.Worker
	record model.WorkerTimeRecord
}

// employeeRecords loads every employee with their time record.
func (s *TeamService) employeeRecords(ctx context.Context) ([]employeeRecord, error) {
	var workers []model.Worker
	err := database.DB().WithContext(ctx).
		Where("role = ?", model.RoleEmployee).
		Order("name").
		Find(&workers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list workers: %w", err)
	}
	if len(workers) == 0 {
		return nil, nil
	}

	ids := make([]int64, 0, len(workers))
	for _, w := range workers {
		ids = append(ids, w.PublicID)
	}

	var records []model.WorkerTimeRecord
	err = database.DB().WithContext(ctx).
		Where("worker_id IN ?", ids).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list time records: %w", err)
	}

	byWorker := make(map[int64]model.WorkerTimeRecord, len(records))
	for _, rec := range records {
		byWorker[rec.WorkerID] = rec
	}

	rows := make([]employeeRecord, 0, len(workers))
	for _, w := range workers {
		rec, ok := byWorker[w.PublicID]
		if !ok {
			// Provisioning creates the record in the same transaction;
			// a miss here means manual data surgery. Skip the row.
			logger.Logger.Warn("Worker has no time record", zap.Int64("worker_id", w.PublicID))
			continue
		}
		rows = append(rows, employeeRecord{worker: w, record: rec})
	}
	return rows, nil
}
