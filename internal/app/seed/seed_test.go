package seed

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yunitemcp/internal/domain"
)

type call struct {
	tool string
	args map[string]any
}

type scriptedDispatcher struct {
	mu        sync.Mutex
	responses map[string]domain.Result
	calls     []call
}

func newScriptedDispatcher(responses map[string]string) *scriptedDispatcher {
	d := &scriptedDispatcher{responses: make(map[string]domain.Result, len(responses))}
	for tool, body := range responses {
		d.responses[tool] = domain.Success(json.RawMessage(body))
	}
	return d
}

func (d *scriptedDispatcher) fail(tool string, result domain.Result) *scriptedDispatcher {
	d.responses[tool] = result
	return d
}

func (d *scriptedDispatcher) Dispatch(_ context.Context, name string, args map[string]any) domain.Result {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls = append(d.calls, call{tool: name, args: args})
	if result, ok := d.responses[name]; ok {
		return result
	}
	return domain.Failf("Unknown tool: %s", name)
}

func (d *scriptedDispatcher) callsTo(tool string) []call {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []call
	for _, c := range d.calls {
		if c.tool == tool {
			out = append(out, c)
		}
	}
	return out
}

func happyBackend() *scriptedDispatcher {
	return newScriptedDispatcher(map[string]string{
		"get_my_profile":    `{"id":1,"username":"admin","college_id":3}`,
		"create_department": `{"id":11,"code":"TEST-DS"}`,
		"list_programs":     `[{"id":21,"department_id":12,"name":"MDS"}]`,
		"list_cohorts":      `[{"id":30,"program_id":99},{"id":31,"program_id":21}]`,
		"list_classes":      `{"items":[{"id":40,"cohort_id":30},{"id":41,"cohort_id":31},{"id":42,"cohort_id":31}],"count":3}`,
		"create_student":    `{"id":100}`,
		"create_staff":      `{"id":200}`,
		"create_post":       `{"id":300}`,
	})
}

func TestSeeder_RunCreatesChain(t *testing.T) {
	dispatcher := happyBackend()

	report, err := NewSeeder(dispatcher, nil).Run(context.Background())
	require.NoError(t, err)

	require.Equal(t, int64(3), report.CollegeID)
	require.Equal(t, int64(12), report.DepartmentID, "program's department wins")
	require.Equal(t, int64(21), report.ProgramID)
	require.Equal(t, int64(31), report.CohortID, "cohort matching the program")
	require.Equal(t, []int64{41, 42}, report.ClassIDs)
	require.Equal(t, 3, report.StudentsCreated)
	require.True(t, report.StaffCreated)
	require.True(t, report.PostCreated)
	require.Empty(t, report.Warnings)

	students := dispatcher.callsTo("create_student")
	require.Len(t, students, 3)
	assert.Equal(t, "test_student_1", students[0].args["username"])
	assert.Equal(t, int64(42), students[0].args["class_id"])
	assert.Equal(t, int64(41), students[1].args["class_id"])
	assert.Equal(t, int64(31), students[2].args["cohort_id"])
	assert.Equal(t, sampleAdmissionYear, students[2].args["admission_year"])

	staff := dispatcher.callsTo("create_staff")
	require.Len(t, staff, 1)
	assert.Equal(t, "faculty", staff[0].args["role"])

	department := dispatcher.callsTo("create_department")
	require.Len(t, department, 1)
	assert.Equal(t, int64(3), department[0].args["college_id"])
	assert.Equal(t, SampleDepartmentCode, department[0].args["code"])
}

func TestSeeder_ReusesExistingDepartment(t *testing.T) {
	dispatcher := happyBackend().
		fail("create_department", domain.HTTPFailure(400, "Client error '400 Bad Request' for url 'http://backend/departments/'", `{"detail":"exists"}`))
	dispatcher.responses["list_departments"] = domain.Success(json.RawMessage(`[{"id":5,"code":"CS"},{"id":7,"code":"TEST-DS"}]`))
	dispatcher.responses["list_programs"] = domain.Success(json.RawMessage(`[{"id":21}]`))

	report, err := NewSeeder(dispatcher, nil).Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(7), report.DepartmentID)
}

func TestSeeder_FallsBackToFirstClasses(t *testing.T) {
	dispatcher := happyBackend()
	dispatcher.responses["list_classes"] = domain.Success(json.RawMessage(`[{"id":50,"cohort_id":1},{"id":51,"cohort_id":2},{"id":52,"cohort_id":3}]`))

	report, err := NewSeeder(dispatcher, nil).Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, []int64{50, 51}, report.ClassIDs)
	require.Len(t, report.Warnings, 1)
}

func TestSeeder_RecordsCreationFailuresAsWarnings(t *testing.T) {
	dispatcher := happyBackend().
		fail("create_student", domain.HTTPFailure(409, "Client error '409 Conflict' for url 'http://backend/admin/users'", "")).
		fail("create_post", domain.Fail("boom"))

	report, err := NewSeeder(dispatcher, nil).Run(context.Background())
	require.NoError(t, err)
	require.Zero(t, report.StudentsCreated)
	require.True(t, report.StaffCreated)
	require.False(t, report.PostCreated)
	require.Len(t, report.Warnings, 4)
}

func TestSeeder_AbortsWithoutPrerequisites(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*scriptedDispatcher)
		wantErr string
	}{
		{
			name:    "profile failure",
			mutate:  func(d *scriptedDispatcher) { d.fail("get_my_profile", domain.Fail("Failed to obtain token")) },
			wantErr: "get_my_profile: Failed to obtain token",
		},
		{
			name: "no college",
			mutate: func(d *scriptedDispatcher) {
				d.responses["get_my_profile"] = domain.Success(json.RawMessage(`{"id":1}`))
			},
			wantErr: "college_id",
		},
		{
			name: "department missing",
			mutate: func(d *scriptedDispatcher) {
				d.fail("create_department", domain.Fail("nope"))
				d.responses["list_departments"] = domain.Success(json.RawMessage(`[]`))
			},
			wantErr: "TEST-DS",
		},
		{
			name: "no programs",
			mutate: func(d *scriptedDispatcher) {
				d.responses["list_programs"] = domain.Success(json.RawMessage(`[]`))
			},
			wantErr: "no programs",
		},
		{
			name: "no cohorts",
			mutate: func(d *scriptedDispatcher) {
				d.responses["list_cohorts"] = domain.Success(json.RawMessage(`{"items":[]}`))
			},
			wantErr: "no cohorts",
		},
		{
			name: "no classes",
			mutate: func(d *scriptedDispatcher) {
				d.responses["list_classes"] = domain.Success(json.RawMessage(`[]`))
			},
			wantErr: "no classes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dispatcher := happyBackend()
			tt.mutate(dispatcher)

			_, err := NewSeeder(dispatcher, nil).Run(context.Background())
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.wantErr)
			require.Empty(t, dispatcher.callsTo("create_student"))
		})
	}
}

func TestDecodeItems(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantLen   int
		wantCount int
		wantErr   bool
	}{
		{name: "array", body: `[{"id":1},{"id":2}]`, wantLen: 2, wantCount: 2},
		{name: "items", body: `{"items":[{"id":1}]}`, wantLen: 1, wantCount: 1},
		{name: "data with count", body: `{"data":[{"id":1}],"count":12}`, wantLen: 1, wantCount: 12},
		{name: "count only", body: `{"count":4}`, wantLen: 0, wantCount: 4},
		{name: "scalar", body: `"text"`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, count, err := decodeItems(json.RawMessage(tt.body))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Len(t, items, tt.wantLen)
			require.Equal(t, tt.wantCount, count)
		})
	}
}
