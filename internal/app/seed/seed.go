// Package seed drives backend smoke checks and sample data creation through
// the tool dispatcher, so both exercise the same request shaping as MCP
// callers.
package seed

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"yunitemcp/internal/domain"
)

// Dispatcher executes a named tool.
type Dispatcher interface {
	Dispatch(ctx context.Context, name string, args map[string]any) domain.Result
}

const (
	SampleDepartmentCode = "TEST-DS"
	samplePassword       = "test123"
	sampleAdmissionYear  = 2025
	sampleStudents       = 3
)

// Report summarizes what a seed run created or reused.
type Report struct {
	CollegeID       int64    `json:"college_id"`
	DepartmentID    int64    `json:"department_id"`
	ProgramID       int64    `json:"program_id"`
	CohortID        int64    `json:"cohort_id"`
	ClassIDs        []int64  `json:"class_ids"`
	StudentsCreated int      `json:"students_created"`
	StaffCreated    bool     `json:"staff_created"`
	PostCreated     bool     `json:"post_created"`
	Warnings        []string `json:"warnings,omitempty"`
}

// Seeder creates a sample department, students, a faculty member and a post
// on top of the first existing program, cohort and classes.
type Seeder struct {
	dispatcher Dispatcher
	logger     *zap.Logger
}

func NewSeeder(dispatcher Dispatcher, logger *zap.Logger) *Seeder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Seeder{dispatcher: dispatcher, logger: logger.Named("seed")}
}

// Run executes the seed chain. Steps that locate prerequisites abort the
// run; failures creating users or the post are recorded as warnings.
func (s *Seeder) Run(ctx context.Context) (Report, error) {
	var report Report

	profile, err := s.object(ctx, "get_my_profile", nil)
	if err != nil {
		return report, err
	}
	collegeID, ok := intField(profile, "college_id")
	if !ok {
		return report, fmt.Errorf("profile has no college_id")
	}
	report.CollegeID = collegeID

	departmentID, err := s.ensureDepartment(ctx, collegeID)
	if err != nil {
		return report, err
	}
	report.DepartmentID = departmentID

	programs, err := s.list(ctx, "list_programs", nil)
	if err != nil {
		return report, err
	}
	if len(programs) == 0 {
		return report, fmt.Errorf("no programs found; create a program first")
	}
	program := programs[0]
	report.ProgramID, _ = intField(program, "id")
	if id, ok := intField(program, "department_id"); ok {
		report.DepartmentID = id
	}

	cohorts, err := s.list(ctx, "list_cohorts", nil)
	if err != nil {
		return report, err
	}
	if len(cohorts) == 0 {
		return report, fmt.Errorf("no cohorts found; create a cohort first")
	}
	cohort := cohorts[0]
	for _, candidate := range cohorts {
		if id, ok := intField(candidate, "program_id"); ok && id == report.ProgramID {
			cohort = candidate
			break
		}
	}
	report.CohortID, _ = intField(cohort, "id")

	classes, err := s.list(ctx, "list_classes", nil)
	if err != nil {
		return report, err
	}
	if len(classes) == 0 {
		return report, fmt.Errorf("no classes found; create sections first")
	}
	for _, class := range classes {
		if id, ok := intField(class, "cohort_id"); ok && id == report.CohortID {
			if classID, ok := intField(class, "id"); ok {
				report.ClassIDs = append(report.ClassIDs, classID)
			}
		}
	}
	if len(report.ClassIDs) == 0 {
		report.Warnings = append(report.Warnings, fmt.Sprintf("no classes for cohort %d; using the first available", report.CohortID))
		for _, class := range classes[:min(2, len(classes))] {
			if classID, ok := intField(class, "id"); ok {
				report.ClassIDs = append(report.ClassIDs, classID)
			}
		}
	}
	if len(report.ClassIDs) == 0 {
		return report, fmt.Errorf("classes carry no ids")
	}

	for i := 1; i <= sampleStudents; i++ {
		result := s.dispatcher.Dispatch(ctx, "create_student", map[string]any{
			"username":       fmt.Sprintf("test_student_%d", i),
			"email":          fmt.Sprintf("test.student%d@test.edu", i),
			"full_name":      fmt.Sprintf("Test Student %d", i),
			"password":       samplePassword,
			"college_id":     collegeID,
			"department_id":  report.DepartmentID,
			"program_id":     report.ProgramID,
			"cohort_id":      report.CohortID,
			"class_id":       report.ClassIDs[i%len(report.ClassIDs)],
			"admission_year": sampleAdmissionYear,
		})
		if !result.OK() {
			report.Warnings = append(report.Warnings, fmt.Sprintf("student %d: %s", i, result.Failure.Message))
			continue
		}
		report.StudentsCreated++
	}

	staff := s.dispatcher.Dispatch(ctx, "create_staff", map[string]any{
		"username":      "test_faculty_1",
		"email":         "test.faculty@test.edu",
		"full_name":     "Test Faculty Member",
		"password":      samplePassword,
		"college_id":    collegeID,
		"department_id": report.DepartmentID,
		"role":          "faculty",
	})
	report.StaffCreated = staff.OK()
	if !staff.OK() {
		report.Warnings = append(report.Warnings, "staff: "+staff.Failure.Message)
	}

	post := s.dispatcher.Dispatch(ctx, "create_post", map[string]any{
		"title":   "Welcome to Test Department!",
		"content": "This is a test post created by the seed command. Welcome all test students to the Data Science program!",
	})
	report.PostCreated = post.OK()
	if !post.OK() {
		report.Warnings = append(report.Warnings, "post: "+post.Failure.Message)
	}

	s.logger.Info("seed completed",
		zap.Int64("department_id", report.DepartmentID),
		zap.Int("students", report.StudentsCreated),
		zap.Int("warnings", len(report.Warnings)),
	)
	return report, nil
}

func (s *Seeder) ensureDepartment(ctx context.Context, collegeID int64) (int64, error) {
	created := s.dispatcher.Dispatch(ctx, "create_department", map[string]any{
		"college_id":  collegeID,
		"name":        "Test Department - Data Science",
		"code":        SampleDepartmentCode,
		"description": "Test department for data science programs",
		"is_active":   true,
	})
	if created.OK() {
		var dept map[string]any
		if err := created.Decode(&dept); err == nil {
			if id, ok := intField(dept, "id"); ok {
				return id, nil
			}
		}
	} else {
		s.logger.Info("department creation failed; looking for an existing one", zap.String("message", created.Failure.Message))
	}

	departments, err := s.list(ctx, "list_departments", nil)
	if err != nil {
		return 0, err
	}
	for _, dept := range departments {
		if code, _ := dept["code"].(string); code == SampleDepartmentCode {
			if id, ok := intField(dept, "id"); ok {
				return id, nil
			}
		}
	}
	return 0, fmt.Errorf("department %s could not be created or found", SampleDepartmentCode)
}

func (s *Seeder) object(ctx context.Context, tool string, args map[string]any) (map[string]any, error) {
	result := s.dispatcher.Dispatch(ctx, tool, args)
	if !result.OK() {
		return nil, fmt.Errorf("%s: %s", tool, result.Failure.Message)
	}
	var out map[string]any
	if err := result.Decode(&out); err != nil {
		return nil, fmt.Errorf("%s: %w", tool, err)
	}
	return out, nil
}

func (s *Seeder) list(ctx context.Context, tool string, args map[string]any) ([]map[string]any, error) {
	result := s.dispatcher.Dispatch(ctx, tool, args)
	if !result.OK() {
		return nil, fmt.Errorf("%s: %s", tool, result.Failure.Message)
	}
	items, _, err := decodeItems(result.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", tool, err)
	}
	return items, nil
}

// decodeItems accepts either a bare array or an object wrapping one under
// items, data or results. The second return is the advertised count when
// present, otherwise the number of items.
func decodeItems(body json.RawMessage) ([]map[string]any, int, error) {
	var list []map[string]any
	if err := json.Unmarshal(body, &list); err == nil {
		return list, len(list), nil
	}
	var object map[string]any
	if err := json.Unmarshal(body, &object); err != nil {
		return nil, 0, fmt.Errorf("response is neither a list nor an object")
	}
	for _, key := range []string{"items", "data", "results"} {
		raw, ok := object[key].([]any)
		if !ok {
			continue
		}
		list = make([]map[string]any, 0, len(raw))
		for _, item := range raw {
			if entry, ok := item.(map[string]any); ok {
				list = append(list, entry)
			}
		}
		break
	}
	count := len(list)
	if advertised, ok := intField(object, "count"); ok {
		count = int(advertised)
	}
	return list, count, nil
}

func intField(object map[string]any, key string) (int64, bool) {
	switch v := object[key].(type) {
	case float64:
		return int64(v), true
	case json.Number:
		n, err := v.Int64()
		return n, err == nil
	case int:
		return int64(v), true
	case int64:
		return v, true
	default:
		return 0, false
	}
}
