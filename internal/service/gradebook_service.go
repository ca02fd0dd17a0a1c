package service

import (
	"context"
	"math"
	"sort"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/sma-gradebook-api/internal/dto"
	"github.com/noah-isme/sma-gradebook-api/internal/models"
	appErrors "github.com/noah-isme/sma-gradebook-api/pkg/errors"
)

type teachingLinkLister interface {
	ListByTeacher(ctx context.Context, teacherID string) ([]models.TeacherAssignmentDetail, error)
}

type assignmentLister interface {
	List(ctx context.Context, filter models.AssignmentFilter) ([]models.AssignmentDetail, error)
}

type teacherRecordLister interface {
	ListByTeacher(ctx context.Context, teacherID string) ([]models.AcademicRecord, error)
}

type rosterCounter interface {
	CountRosterByClasses(ctx context.Context, classIDs []string) (map[string]int, error)
}

// GradebookConfig tunes the overview read model.
type GradebookConfig struct {
	CacheTTL          time.Duration
	RecentAssignments int
}

// GradebookService builds read-side views over assignments and academic records.
type GradebookService struct {
	links       teachingLinkLister
	assignments assignmentLister
	records     teacherRecordLister
	rosters     rosterCounter
	cache       *CacheService
	metrics     *MetricsService
	config      GradebookConfig
	logger      *zap.Logger
}

// NewGradebookService constructs the gradebook aggregation service.
func NewGradebookService(links teachingLinkLister, assignments assignmentLister, records teacherRecordLister, rosters rosterCounter, cache *CacheService, metrics *MetricsService, config GradebookConfig, logger *zap.Logger) *GradebookService {
	if config.RecentAssignments <= 0 {
		config.RecentAssignments = 5
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GradebookService{links: links, assignments: assignments, records: records, rosters: rosters, cache: cache, metrics: metrics, config: config, logger: logger}
}

// Overview returns the teacher's grading statistics. The boolean reports a cache hit.
func (s *GradebookService) Overview(ctx context.Context, teacher *models.Teacher) (*dto.GradebookOverview, bool, error) {
	key := GradebookKey(teacher.ID)
	var cached dto.GradebookOverview
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return &cached, true, nil
	}

	start := time.Now()
	var (
		links       []models.TeacherAssignmentDetail
		assignments []models.AssignmentDetail
		records     []models.AcademicRecord
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		links, err = s.links.ListByTeacher(gctx, teacher.ID)
		return err
	})
	g.Go(func() error {
		var err error
		assignments, err = s.assignments.List(gctx, models.AssignmentFilter{TeacherID: teacher.ID})
		return err
	})
	g.Go(func() error {
		var err error
		records, err = s.records.ListByTeacher(gctx, teacher.ID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load gradebook")
	}

	rosters, err := s.rosters.CountRosterByClasses(ctx, assignmentClassIDs(assignments))
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count rosters")
	}

	overview := buildOverview(teacher.ID, links, assignments, records, rosters, s.config.RecentAssignments)
	s.metrics.ObserveAggregation("gradebook_overview", time.Since(start))

	if err := s.cache.Set(ctx, key, overview, s.config.CacheTTL); err != nil {
		s.logger.Warn("cache gradebook overview", zap.String("teacher_id", teacher.ID), zap.Error(err))
	}
	return overview, false, nil
}

type classSubjectKey struct {
	classID   string
	subjectID string
}

type meanAccumulator struct {
	sum   float64
	count int
}

func (m *meanAccumulator) add(v float64) {
	m.sum += v
	m.count++
}

func (m meanAccumulator) mean() float64 {
	if m.count == 0 {
		return 0
	}
	return round2(m.sum / float64(m.count))
}

func buildOverview(teacherID string, links []models.TeacherAssignmentDetail, assignments []models.AssignmentDetail, records []models.AcademicRecord, rosters map[string]int, recentLimit int) *dto.GradebookOverview {
	graded := make(map[string]map[string]struct{})
	scores := make(map[classSubjectKey]*meanAccumulator)
	var overall meanAccumulator

	for _, record := range records {
		overall.add(record.Percentage)
		key := classSubjectKey{record.ClassID, record.SubjectID}
		if scores[key] == nil {
			scores[key] = &meanAccumulator{}
		}
		scores[key].add(record.Percentage)

		if record.AssignmentID == nil {
			continue
		}
		students, ok := graded[*record.AssignmentID]
		if !ok {
			students = make(map[string]struct{})
			graded[*record.AssignmentID] = students
		}
		students[record.StudentID] = struct{}{}
	}

	assignmentCounts := make(map[classSubjectKey]int)
	pending := 0
	for _, assignment := range assignments {
		assignmentCounts[classSubjectKey{assignment.ClassID, assignment.SubjectID}]++
		if missing := rosters[assignment.ClassID] - len(graded[assignment.ID]); missing > 0 {
			pending += missing
		}
	}

	classes := make([]dto.ClassPerformance, 0, len(links))
	seen := make(map[classSubjectKey]struct{}, len(links))
	for _, link := range links {
		key := classSubjectKey{link.ClassID, link.SubjectID}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		perf := dto.ClassPerformance{
			ClassID:         link.ClassID,
			ClassName:       link.ClassName,
			SubjectID:       link.SubjectID,
			SubjectName:     link.SubjectName,
			StudentCount:    link.StudentCount,
			AssignmentCount: assignmentCounts[key],
		}
		if acc := scores[key]; acc != nil {
			perf.AverageScore = acc.mean()
		}
		classes = append(classes, perf)
	}

	sorted := make([]models.AssignmentDetail, len(assignments))
	copy(sorted, assignments)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].CreatedAt.After(sorted[j].CreatedAt) })
	if len(sorted) > recentLimit {
		sorted = sorted[:recentLimit]
	}
	recent := make([]dto.RecentAssignment, 0, len(sorted))
	for _, assignment := range sorted {
		recent = append(recent, dto.RecentAssignment{
			ID:             assignment.ID,
			Title:          assignment.Title,
			ClassID:        assignment.ClassID,
			SubjectID:      assignment.SubjectID,
			DueDate:        assignment.DueDate,
			CreatedAt:      assignment.CreatedAt,
			GradedStudents: len(graded[assignment.ID]),
			TotalStudents:  rosters[assignment.ClassID],
		})
	}

	return &dto.GradebookOverview{
		TeacherID:          teacherID,
		TotalAssignments:   len(assignments),
		TotalGrades:        len(records),
		PendingGrades:      pending,
		AveragePerformance: overall.mean(),
		Classes:            classes,
		RecentAssignments:  recent,
	}
}

func assignmentClassIDs(assignments []models.AssignmentDetail) []string {
	seen := make(map[string]struct{}, len(assignments))
	ids := make([]string, 0, len(assignments))
	for _, assignment := range assignments {
		if _, ok := seen[assignment.ClassID]; ok {
			continue
		}
		seen[assignment.ClassID] = struct{}{}
		ids = append(ids, assignment.ClassID)
	}
	return ids
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
