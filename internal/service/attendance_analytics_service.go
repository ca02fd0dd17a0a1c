package service

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/sma-gradebook-api/internal/dto"
	"github.com/noah-isme/sma-gradebook-api/internal/models"
	appErrors "github.com/noah-isme/sma-gradebook-api/pkg/errors"
)

type attendanceLister interface {
	List(ctx context.Context, filter models.AttendanceFilter) ([]models.AttendanceRecordDetail, error)
}

// AttendanceAnalyticsService derives attendance patterns and class rollups from active records.
type AttendanceAnalyticsService struct {
	repo     attendanceLister
	cache    *CacheService
	metrics  *MetricsService
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewAttendanceAnalyticsService constructs the analytics service.
func NewAttendanceAnalyticsService(repo attendanceLister, cache *CacheService, metrics *MetricsService, cacheTTL time.Duration, logger *zap.Logger) *AttendanceAnalyticsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AttendanceAnalyticsService{repo: repo, cache: cache, metrics: metrics, cacheTTL: cacheTTL, logger: logger}
}

// Patterns returns one attendance profile per student, optionally limited to a class.
func (s *AttendanceAnalyticsService) Patterns(ctx context.Context, teacher *models.Teacher, classID string) ([]dto.AttendancePattern, bool, error) {
	key := AttendanceKey(teacher.ID, "patterns", classID)
	var cached []dto.AttendancePattern
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return cached, true, nil
	}

	start := time.Now()
	records, err := s.load(ctx, teacher, classID)
	if err != nil {
		return nil, false, err
	}
	patterns := buildPatterns(records)
	s.metrics.ObserveAggregation("attendance_patterns", time.Since(start))

	s.store(ctx, key, patterns)
	return patterns, false, nil
}

// Analytics rolls patterns up per class. Records are grouped by the class they were taken in;
// classID only narrows the input.
func (s *AttendanceAnalyticsService) Analytics(ctx context.Context, teacher *models.Teacher, classID string) (*dto.AttendanceAnalytics, bool, error) {
	key := AttendanceKey(teacher.ID, "analytics", classID)
	var cached dto.AttendanceAnalytics
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return &cached, true, nil
	}

	start := time.Now()
	records, err := s.load(ctx, teacher, classID)
	if err != nil {
		return nil, false, err
	}
	analytics := buildAnalytics(records)
	s.metrics.ObserveAggregation("attendance_analytics", time.Since(start))

	s.store(ctx, key, analytics)
	return analytics, false, nil
}

func (s *AttendanceAnalyticsService) load(ctx context.Context, teacher *models.Teacher, classID string) ([]models.AttendanceRecordDetail, error) {
	records, err := s.repo.List(ctx, models.AttendanceFilter{TeacherID: teacher.ID, ClassID: classID})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load attendance records")
	}
	return records, nil
}

func (s *AttendanceAnalyticsService) store(ctx context.Context, key string, value interface{}) {
	if err := s.cache.Set(ctx, key, value, s.cacheTTL); err != nil {
		s.logger.Warn("cache attendance view", zap.String("key", key), zap.Error(err))
	}
}

// AttendanceBucket classifies an attendance percentage.
func AttendanceBucket(percentage float64, totalDays int) string {
	switch {
	case totalDays == 0:
		return dto.AttendanceNoData
	case percentage >= 90:
		return dto.AttendanceExcellent
	case percentage >= 80:
		return dto.AttendanceGood
	case percentage >= 70:
		return dto.AttendanceFair
	default:
		return dto.AttendancePoor
	}
}

// buildPatterns folds records per student. Late arrivals count as attended.
func buildPatterns(records []models.AttendanceRecordDetail) []dto.AttendancePattern {
	index := make(map[string]int)
	patterns := make([]dto.AttendancePattern, 0)
	latest := make(map[string]time.Time)

	for _, record := range records {
		i, ok := index[record.StudentID]
		if !ok {
			i = len(patterns)
			index[record.StudentID] = i
			patterns = append(patterns, dto.AttendancePattern{StudentID: record.StudentID, StudentName: record.StudentName})
		}
		p := &patterns[i]
		p.TotalDays++
		switch record.Status {
		case models.AttendanceStatusPresent:
			p.PresentDays++
		case models.AttendanceStatusAbsent:
			p.AbsentDays++
		case models.AttendanceStatusLate:
			p.LateDays++
		case models.AttendanceStatusExcused:
			p.ExcusedDays++
		case models.AttendanceStatusSick:
			p.SickDays++
		}
		if record.Date.After(latest[record.StudentID]) || p.ClassID == "" {
			latest[record.StudentID] = record.Date
			p.ClassID = record.ClassID
		}
		if p.LastRecordedAt == nil || record.RecordedAt.After(*p.LastRecordedAt) {
			at := record.RecordedAt
			p.LastRecordedAt = &at
		}
	}

	for i := range patterns {
		scorePattern(&patterns[i])
	}

	sort.SliceStable(patterns, func(i, j int) bool {
		if patterns[i].StudentName != patterns[j].StudentName {
			return patterns[i].StudentName < patterns[j].StudentName
		}
		return patterns[i].StudentID < patterns[j].StudentID
	})
	return patterns
}

// scorePattern buckets on the exact ratio and rounds only the reported percentage.
func scorePattern(p *dto.AttendancePattern) {
	if p.TotalDays == 0 {
		p.AttendancePercentage = 0
		p.Status = AttendanceBucket(0, 0)
		return
	}
	ratio := float64(p.PresentDays+p.LateDays) / float64(p.TotalDays) * 100
	p.AttendancePercentage = round2(ratio)
	p.Status = AttendanceBucket(ratio, p.TotalDays)
}

func buildAnalytics(records []models.AttendanceRecordDetail) *dto.AttendanceAnalytics {
	byClass := make(map[string][]models.AttendanceRecordDetail)
	names := make(map[string]string)
	for _, record := range records {
		byClass[record.ClassID] = append(byClass[record.ClassID], record)
		names[record.ClassID] = record.ClassName
	}

	classes := make([]dto.ClassAttendanceAnalytics, 0, len(byClass))
	for classID, classRecords := range byClass {
		rollup := dto.ClassAttendanceAnalytics{ClassID: classID, ClassName: names[classID]}
		var mean meanAccumulator
		for _, pattern := range buildPatterns(classRecords) {
			rollup.TotalStudents++
			mean.add(pattern.AttendancePercentage)
			switch pattern.Status {
			case dto.AttendanceExcellent:
				rollup.Excellent++
			case dto.AttendanceGood:
				rollup.Good++
			case dto.AttendanceFair:
				rollup.Fair++
			case dto.AttendancePoor:
				rollup.Poor++
			}
		}
		rollup.AverageAttendance = mean.mean()
		classes = append(classes, rollup)
	}
	sort.Slice(classes, func(i, j int) bool {
		if classes[i].ClassName != classes[j].ClassName {
			return classes[i].ClassName < classes[j].ClassName
		}
		return classes[i].ClassID < classes[j].ClassID
	})

	overall := buildPatterns(records)
	var mean meanAccumulator
	for _, pattern := range overall {
		mean.add(pattern.AttendancePercentage)
	}
	return &dto.AttendanceAnalytics{
		Classes:           classes,
		TotalStudents:     len(overall),
		AverageAttendance: mean.mean(),
	}
}
