package service

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/noah-isme/sma-gradebook-api/internal/models"
	"github.com/noah-isme/sma-gradebook-api/internal/repository"
)

type fakeTeachingLinks struct {
	links []models.TeacherAssignmentDetail
	err   error
}

func newFakeTeachingLinks() *fakeTeachingLinks {
	return &fakeTeachingLinks{}
}

func (f *fakeTeachingLinks) add(teacherID, classID, subjectID string) *fakeTeachingLinks {
	f.links = append(f.links, models.TeacherAssignmentDetail{
		TeacherAssignment: models.TeacherAssignment{
			ID:        fmt.Sprintf("ta-%d", len(f.links)+1),
			TeacherID: teacherID,
			ClassID:   classID,
			SubjectID: subjectID,
			TermID:    "term-1",
			Active:    true,
		},
		ClassName:   "Class " + classID,
		SubjectName: "Subject " + subjectID,
	})
	return f
}

func (f *fakeTeachingLinks) ExistsActive(_ context.Context, teacherID, classID, subjectID string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	for _, link := range f.links {
		if link.TeacherID == teacherID && link.ClassID == classID && link.SubjectID == subjectID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeTeachingLinks) TeachesClass(_ context.Context, teacherID, classID string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	for _, link := range f.links {
		if link.TeacherID == teacherID && link.ClassID == classID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeTeachingLinks) ListByTeacher(_ context.Context, teacherID string) ([]models.TeacherAssignmentDetail, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.TeacherAssignmentDetail
	for _, link := range f.links {
		if link.TeacherID == teacherID {
			out = append(out, link)
		}
	}
	return out, nil
}

type fakeAssignmentRepo struct {
	items   map[string]models.AssignmentDetail
	seq     int
	deleted []string
	clock   time.Time
}

func newFakeAssignmentRepo() *fakeAssignmentRepo {
	return &fakeAssignmentRepo{
		items: map[string]models.AssignmentDetail{},
		clock: time.Date(2024, 8, 1, 8, 0, 0, 0, time.UTC),
	}
}

func (f *fakeAssignmentRepo) Create(_ context.Context, assignment *models.Assignment) error {
	f.seq++
	assignment.ID = fmt.Sprintf("asg-%d", f.seq)
	assignment.CreatedAt = f.clock.Add(time.Duration(f.seq) * time.Hour)
	assignment.UpdatedAt = assignment.CreatedAt
	f.items[assignment.ID] = models.AssignmentDetail{Assignment: *assignment, ClassName: "Class " + assignment.ClassID}
	return nil
}

func (f *fakeAssignmentRepo) FindByIDForTeacher(_ context.Context, id, teacherID string) (*models.AssignmentDetail, error) {
	item, ok := f.items[id]
	if !ok || item.TeacherID != teacherID {
		return nil, sql.ErrNoRows
	}
	return &item, nil
}

func (f *fakeAssignmentRepo) Update(_ context.Context, assignment *models.Assignment) error {
	item, ok := f.items[assignment.ID]
	if !ok || item.TeacherID != assignment.TeacherID {
		return sql.ErrNoRows
	}
	item.Assignment = *assignment
	f.items[assignment.ID] = item
	return nil
}

func (f *fakeAssignmentRepo) Delete(_ context.Context, id, teacherID string) error {
	item, ok := f.items[id]
	if !ok || item.TeacherID != teacherID {
		return sql.ErrNoRows
	}
	delete(f.items, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeAssignmentRepo) List(_ context.Context, filter models.AssignmentFilter) ([]models.AssignmentDetail, error) {
	var out []models.AssignmentDetail
	for _, item := range f.items {
		if item.TeacherID != filter.TeacherID {
			continue
		}
		if filter.ClassID != "" && item.ClassID != filter.ClassID {
			continue
		}
		if filter.SubjectID != "" && item.SubjectID != filter.SubjectID {
			continue
		}
		if filter.TermID != "" && item.TermID != filter.TermID {
			continue
		}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// fakeRecordRepo mirrors the unique index on the academic record identity tuple.
type fakeRecordRepo struct {
	items     map[string]models.AcademicRecord
	seq       int
	createErr error
	updates   int
}

func newFakeRecordRepo() *fakeRecordRepo {
	return &fakeRecordRepo{items: map[string]models.AcademicRecord{}}
}

func recordKey(r models.AcademicRecord) models.AcademicRecordKey {
	key := models.AcademicRecordKey{StudentID: r.StudentID, SubjectID: r.SubjectID, ClassID: r.ClassID, TermID: r.TermID}
	if r.AssignmentID != nil {
		key.AssignmentID = *r.AssignmentID
	}
	return key
}

func (f *fakeRecordRepo) FindByKey(_ context.Context, key models.AcademicRecordKey) (*models.AcademicRecord, error) {
	for _, item := range f.items {
		if item.IsActive && recordKey(item) == key {
			record := item
			return &record, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeRecordRepo) FindByIDForTeacher(_ context.Context, id, teacherID string) (*models.AcademicRecord, error) {
	item, ok := f.items[id]
	if !ok || item.TeacherID != teacherID {
		return nil, sql.ErrNoRows
	}
	return &item, nil
}

func (f *fakeRecordRepo) FindDetailByID(_ context.Context, id string) (*models.AcademicRecordDetail, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &models.AcademicRecordDetail{AcademicRecord: item, StudentName: "Student " + item.StudentID}, nil
}

func (f *fakeRecordRepo) Create(_ context.Context, record *models.AcademicRecord) error {
	if f.createErr != nil {
		return f.createErr
	}
	for _, item := range f.items {
		if recordKey(item) == recordKey(*record) {
			return repository.ErrDuplicate
		}
	}
	f.seq++
	record.ID = fmt.Sprintf("rec-%d", f.seq)
	f.items[record.ID] = *record
	return nil
}

func (f *fakeRecordRepo) Update(_ context.Context, record *models.AcademicRecord) error {
	if _, ok := f.items[record.ID]; !ok {
		return sql.ErrNoRows
	}
	f.updates++
	f.items[record.ID] = *record
	return nil
}

func (f *fakeRecordRepo) List(_ context.Context, filter models.AcademicRecordFilter) ([]models.AcademicRecordDetail, error) {
	var out []models.AcademicRecordDetail
	for _, item := range f.items {
		if item.TeacherID != filter.TeacherID {
			continue
		}
		if filter.AssignmentID != "" && (item.AssignmentID == nil || *item.AssignmentID != filter.AssignmentID) {
			continue
		}
		out = append(out, models.AcademicRecordDetail{AcademicRecord: item})
	}
	return out, nil
}

func (f *fakeRecordRepo) ListByTeacher(_ context.Context, teacherID string) ([]models.AcademicRecord, error) {
	var out []models.AcademicRecord
	for _, item := range f.items {
		if item.TeacherID == teacherID && item.IsActive {
			out = append(out, item)
		}
	}
	return out, nil
}

func (f *fakeRecordRepo) CountByAssignment(_ context.Context, assignmentID string) (int, error) {
	count := 0
	for _, item := range f.items {
		if item.AssignmentID != nil && *item.AssignmentID == assignmentID {
			count++
		}
	}
	return count, nil
}

func (f *fakeRecordRepo) SetPublished(_ context.Context, teacherID, assignmentID string, published bool, at time.Time) (int64, error) {
	var affected int64
	for id, item := range f.items {
		if item.TeacherID != teacherID || item.AssignmentID == nil || *item.AssignmentID != assignmentID || item.IsPublished == published {
			continue
		}
		item.IsPublished = published
		if published {
			stamp := at
			item.PublishedAt = &stamp
		} else {
			item.PublishedAt = nil
		}
		f.items[id] = item
		affected++
	}
	return affected, nil
}

func (f *fakeRecordRepo) only() models.AcademicRecord {
	for _, item := range f.items {
		return item
	}
	return models.AcademicRecord{}
}

// fakeAttendanceRepo enforces one active record per student and date.
type fakeAttendanceRepo struct {
	items     []models.AttendanceRecordDetail
	seq       int
	listErr   error
	listCalls int
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{}
}

func (f *fakeAttendanceRepo) ExistsActive(_ context.Context, studentID string, date time.Time) (bool, error) {
	for _, item := range f.items {
		if item.IsActive && item.StudentID == studentID && item.Date.Equal(date) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAttendanceRepo) Create(ctx context.Context, record *models.AttendanceRecord) error {
	if exists, _ := f.ExistsActive(ctx, record.StudentID, record.Date); exists {
		return repository.ErrDuplicate
	}
	f.seq++
	record.ID = fmt.Sprintf("att-%d", f.seq)
	record.IsActive = true
	if record.RecordedAt.IsZero() {
		record.RecordedAt = record.Date.Add(8 * time.Hour)
	}
	f.items = append(f.items, models.AttendanceRecordDetail{
		AttendanceRecord: *record,
		StudentName:      "Student " + record.StudentID,
		ClassName:        "Class " + record.ClassID,
	})
	return nil
}

func (f *fakeAttendanceRepo) find(id, teacherID string) int {
	for i, item := range f.items {
		if item.ID == id && item.TeacherID == teacherID && item.IsActive {
			return i
		}
	}
	return -1
}

func (f *fakeAttendanceRepo) FindByIDForTeacher(_ context.Context, id, teacherID string) (*models.AttendanceRecord, error) {
	i := f.find(id, teacherID)
	if i < 0 {
		return nil, sql.ErrNoRows
	}
	record := f.items[i].AttendanceRecord
	return &record, nil
}

func (f *fakeAttendanceRepo) Update(_ context.Context, record *models.AttendanceRecord) error {
	i := f.find(record.ID, record.TeacherID)
	if i < 0 {
		return sql.ErrNoRows
	}
	f.items[i].Status = record.Status
	f.items[i].Reason = record.Reason
	return nil
}

func (f *fakeAttendanceRepo) SoftDelete(_ context.Context, id, teacherID string) error {
	i := f.find(id, teacherID)
	if i < 0 {
		return sql.ErrNoRows
	}
	f.items[i].IsActive = false
	return nil
}

func (f *fakeAttendanceRepo) List(_ context.Context, filter models.AttendanceFilter) ([]models.AttendanceRecordDetail, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []models.AttendanceRecordDetail
	for _, item := range f.items {
		if !item.IsActive || item.TeacherID != filter.TeacherID {
			continue
		}
		if filter.ClassID != "" && item.ClassID != filter.ClassID {
			continue
		}
		if filter.DateFrom != nil && item.Date.Before(*filter.DateFrom) {
			continue
		}
		if filter.DateTo != nil && item.Date.After(*filter.DateTo) {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

func (f *fakeAttendanceRepo) seed(teacherID, classID, studentID string, day int, status models.AttendanceStatus) {
	date := time.Date(2024, 5, day, 0, 0, 0, 0, time.UTC)
	_ = f.Create(context.Background(), &models.AttendanceRecord{
		StudentID: studentID, ClassID: classID, TeacherID: teacherID, TermID: "term-1", Date: date, Status: status,
	})
}
