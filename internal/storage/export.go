// ABOUTME: Export and import of every SmartFit record.
// ABOUTME: Supports JSON and YAML dumps, an XLSX workbook, and JSON restore.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/harperreed/smartfit/internal/models"
	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"
)

// ExportVersion is written into every export and checked on import.
const ExportVersion = "1.0"

// ExportData represents the full export format.
type ExportData struct {
	Version            string                      `json:"version" yaml:"version"`
	ExportedAt         time.Time                   `json:"exported_at" yaml:"exported_at"`
	Tool               string                      `json:"tool" yaml:"tool"`
	Profiles           []*models.UserProfile       `json:"profiles" yaml:"profiles"`
	Workouts           []*models.Workout           `json:"workouts" yaml:"workouts"`
	EventLogs          []*models.EventLog          `json:"event_logs" yaml:"event_logs"`
	UserMetrics        []*models.UserMetric        `json:"user_metrics" yaml:"user_metrics"`
	FatiguePredictions []*models.FatiguePrediction `json:"fatigue_predictions" yaml:"fatigue_predictions"`
}

// ImportSummary holds counts of imported records.
type ImportSummary struct {
	Profiles           int
	Workouts           int
	WorkoutSteps       int
	EventLogs          int
	UserMetrics        int
	FatiguePredictions int
}

// GetAllData retrieves all data for export, oldest records first.
func (d *DB) GetAllData(ctx context.Context) (*ExportData, error) {
	profiles, err := d.listProfiles(ctx)
	if err != nil {
		return nil, err
	}

	workouts, err := d.ListWorkouts(ctx, 0)
	if err != nil {
		return nil, err
	}
	// ListWorkouts is newest first; exports read better in id order.
	sort.Slice(workouts, func(i, j int) bool { return workouts[i].ID < workouts[j].ID })

	logs, err := d.selectEventLogs(ctx, `
		SELECT id, user_id, workout_id, exercise_name, set_number, reps, weight, rpe, completed, logged_at
		FROM event_logs ORDER BY id`)
	if err != nil {
		return nil, err
	}

	metrics, err := d.selectUserMetrics(ctx, `
		SELECT id, user_id, date, sleep_hours, energy_level, available_time, target_workout, notes, created_at
		FROM user_metrics ORDER BY id`)
	if err != nil {
		return nil, err
	}

	predictions, err := d.selectPredictions(ctx, `
		SELECT id, user_id, date, predicted_fatigue, predicted_success_rate, acwr, warning_level, created_at
		FROM fatigue_predictions ORDER BY id`)
	if err != nil {
		return nil, err
	}

	return &ExportData{
		Version:            ExportVersion,
		ExportedAt:         d.now().UTC(),
		Tool:               "smartfit",
		Profiles:           profiles,
		Workouts:           workouts,
		EventLogs:          logs,
		UserMetrics:        metrics,
		FatiguePredictions: predictions,
	}, nil
}

// ImportData writes every record in data inside one transaction.
// Records get fresh ids; event log workout references are remapped to the new workout ids.
// A profile whose user_id already exists aborts the import with ErrConflict.
func (d *DB) ImportData(ctx context.Context, data *ExportData) (*ImportSummary, error) {
	if data.Version != "" && data.Version != ExportVersion {
		return nil, fmt.Errorf("import: unsupported export version %q", data.Version)
	}

	if err := validateImport(data); err != nil {
		return nil, fmt.Errorf("import: %w", err)
	}

	tx, err := d.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("import: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	summary := &ImportSummary{}

	for _, p := range data.Profiles {
		if p.CreatedAt == "" {
			p.CreatedAt = d.now().UTC().Format(models.ProfileTimeLayout)
		}
		if p.UpdatedAt == "" {
			p.UpdatedAt = p.CreatedAt
		}
		if err := insertProfile(ctx, tx, p); err != nil {
			return nil, fmt.Errorf("import profile for user %d: %w", p.UserID, err)
		}
		summary.Profiles++
	}

	workoutIDs := make(map[int64]int64, len(data.Workouts))
	for _, w := range data.Workouts {
		oldID := w.ID
		if err := d.insertWorkout(ctx, tx, w); err != nil {
			return nil, fmt.Errorf("import workout %d: %w", oldID, err)
		}
		workoutIDs[oldID] = w.ID
		summary.Workouts++
		summary.WorkoutSteps += len(w.Steps)
	}

	for _, e := range data.EventLogs {
		if e.WorkoutID != nil {
			newID, ok := workoutIDs[*e.WorkoutID]
			if !ok {
				return nil, fmt.Errorf("import event log %d: workout %d: %w", e.ID, *e.WorkoutID, ErrNotFound)
			}
			e.WorkoutID = &newID
		}
		if e.LoggedAt.IsZero() {
			e.LoggedAt = d.now().UTC()
		}
		if err := insertEventLog(ctx, tx, e); err != nil {
			return nil, fmt.Errorf("import event log: %w", err)
		}
		summary.EventLogs++
	}

	for _, m := range data.UserMetrics {
		if m.CreatedAt.IsZero() {
			m.CreatedAt = d.now().UTC()
		}
		if err := insertUserMetric(ctx, tx, m); err != nil {
			return nil, fmt.Errorf("import user metric: %w", err)
		}
		summary.UserMetrics++
	}

	for _, p := range data.FatiguePredictions {
		if p.CreatedAt.IsZero() {
			p.CreatedAt = d.now().UTC()
		}
		if err := insertPrediction(ctx, tx, p); err != nil {
			return nil, fmt.Errorf("import fatigue prediction: %w", err)
		}
		summary.FatiguePredictions++
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("import: %w", err)
	}
	return summary, nil
}

// validateImport runs every record through the same rules the HTTP API applies
// on create, so a restore cannot store rows the API would have rejected.
// The first failure is returned as a *models.ValidationError wrapped with
// the record's position in the file.
func validateImport(data *ExportData) error {
	for i, p := range data.Profiles {
		if p == nil {
			return fmt.Errorf("profiles[%d]: empty record", i)
		}
		in := models.UserProfileCreate{
			UserID:          p.UserID,
			Height:          p.Height,
			Weight:          p.Weight,
			Sex:             p.Sex,
			Age:             p.Age,
			UnitSystem:      p.UnitSystem,
			ExperienceLevel: p.ExperienceLevel,
			PrimaryGoal:     p.PrimaryGoal,
			WeeklyFrequency: p.WeeklyFrequency,
		}
		if err := models.Validate(in); err != nil {
			return fmt.Errorf("profiles[%d]: %w", i, err)
		}
	}

	for i, w := range data.Workouts {
		if w == nil {
			return fmt.Errorf("workouts[%d]: empty record", i)
		}
		in := models.WorkoutCreate{
			Name:        w.Name,
			Description: w.Description,
			Steps:       make([]models.WorkoutStepCreate, 0, len(w.Steps)),
		}
		for _, st := range w.Steps {
			name, order := st.ExerciseName, st.Order
			in.Steps = append(in.Steps, models.WorkoutStepCreate{
				ExerciseName: &name,
				TargetSets:   st.TargetSets,
				TargetReps:   st.TargetReps,
				TargetWeight: st.TargetWeight,
				Order:        &order,
			})
		}
		if err := models.Validate(in); err != nil {
			return fmt.Errorf("workouts[%d]: %w", i, err)
		}
	}

	for i, e := range data.EventLogs {
		if e == nil {
			return fmt.Errorf("event_logs[%d]: empty record", i)
		}
		in := models.EventLogCreate{
			UserID:       e.UserID,
			WorkoutID:    e.WorkoutID,
			ExerciseName: &e.ExerciseName,
			SetNumber:    &e.SetNumber,
			Reps:         &e.Reps,
			Weight:       &e.Weight,
			RPE:          e.RPE,
		}
		if err := models.Validate(in); err != nil {
			return fmt.Errorf("event_logs[%d]: %w", i, err)
		}
	}

	for i, m := range data.UserMetrics {
		if m == nil {
			return fmt.Errorf("user_metrics[%d]: empty record", i)
		}
		in := models.UserMetricCreate{
			UserID:        m.UserID,
			Date:          m.Date.Format(time.RFC3339),
			SleepHours:    m.SleepHours,
			EnergyLevel:   m.EnergyLevel,
			AvailableTime: m.AvailableTime,
			TargetWorkout: m.TargetWorkout,
		}
		if err := models.Validate(in); err != nil {
			return fmt.Errorf("user_metrics[%d]: %w", i, err)
		}
	}

	for i, p := range data.FatiguePredictions {
		if p == nil {
			return fmt.Errorf("fatigue_predictions[%d]: empty record", i)
		}
		if p.UserID <= 0 {
			return fmt.Errorf("fatigue_predictions[%d]: %w", i,
				models.NewValidationError([]string{"body", "user_id"}, "Input should be greater than 0", "greater_than"))
		}
		if p.WarningLevel != nil && !p.WarningLevel.Valid() {
			return fmt.Errorf("fatigue_predictions[%d]: %w", i,
				models.NewValidationError([]string{"body", "warning_level"},
					"Input should be "+models.QuoteJoin(p.WarningLevel.Options()), "enum"))
		}
	}
	return nil
}

// ExportJSON exports all data as JSON.
func (d *DB) ExportJSON(ctx context.Context) ([]byte, error) {
	data, err := d.GetAllData(ctx)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(data, "", "  ")
}

// ImportJSON imports data from JSON bytes.
func (d *DB) ImportJSON(ctx context.Context, raw []byte) (*ImportSummary, error) {
	var data ExportData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("unmarshal JSON: %w", err)
	}
	return d.ImportData(ctx, &data)
}

// ExportYAML exports all data as YAML with per-user records grouped together.
func (d *DB) ExportYAML(ctx context.Context) ([]byte, error) {
	data, err := d.GetAllData(ctx)
	if err != nil {
		return nil, err
	}

	users := map[int64]*yamlUser{}
	user := func(id int64) *yamlUser {
		u, ok := users[id]
		if !ok {
			u = &yamlUser{UserID: id}
			users[id] = u
		}
		return u
	}
	for _, p := range data.Profiles {
		user(p.UserID).Profile = p
	}
	for _, e := range data.EventLogs {
		u := user(e.UserID)
		u.EventLogs = append(u.EventLogs, e)
	}
	for _, m := range data.UserMetrics {
		u := user(m.UserID)
		u.Metrics = append(u.Metrics, m)
	}
	for _, p := range data.FatiguePredictions {
		u := user(p.UserID)
		u.FatiguePredictions = append(u.FatiguePredictions, p)
	}

	ids := make([]int64, 0, len(users))
	for id := range users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := yamlExport{
		Version:    data.Version,
		ExportedAt: data.ExportedAt.Format(time.RFC3339),
		Tool:       data.Tool,
		Workouts:   data.Workouts,
		Users:      make([]*yamlUser, 0, len(ids)),
	}
	for _, id := range ids {
		out.Users = append(out.Users, users[id])
	}

	return yaml.Marshal(out)
}

type yamlExport struct {
	Version    string            `yaml:"version"`
	ExportedAt string            `yaml:"exported_at"`
	Tool       string            `yaml:"tool"`
	Workouts   []*models.Workout `yaml:"workouts"`
	Users      []*yamlUser       `yaml:"users"`
}

type yamlUser struct {
	UserID             int64                       `yaml:"user_id"`
	Profile            *models.UserProfile         `yaml:"profile,omitempty"`
	EventLogs          []*models.EventLog          `yaml:"event_logs,omitempty"`
	Metrics            []*models.UserMetric        `yaml:"metrics,omitempty"`
	FatiguePredictions []*models.FatiguePrediction `yaml:"fatigue_predictions,omitempty"`
}

// ExportXLSX exports all data as an Excel workbook with one sheet per record type.
func (d *DB) ExportXLSX(ctx context.Context) ([]byte, error) {
	data, err := d.GetAllData(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheets := []struct {
		name   string
		header []interface{}
		rows   [][]interface{}
	}{
		{"Profiles", []interface{}{"user_id", "height", "weight", "sex", "age", "unit_system", "experience_level", "primary_goal", "weekly_frequency", "created_at", "updated_at"}, profileRows(data.Profiles)},
		{"Workouts", []interface{}{"workout_id", "name", "description", "created_at", "order", "exercise_name", "target_sets", "target_reps", "target_weight"}, workoutRows(data.Workouts)},
		{"EventLogs", []interface{}{"id", "user_id", "workout_id", "exercise_name", "set_number", "reps", "weight", "rpe", "completed", "logged_at"}, eventLogRows(data.EventLogs)},
		{"UserMetrics", []interface{}{"id", "user_id", "date", "sleep_hours", "energy_level", "available_time", "target_workout", "notes"}, userMetricRows(data.UserMetrics)},
		{"FatiguePredictions", []interface{}{"id", "user_id", "date", "predicted_fatigue", "predicted_success_rate", "acwr", "warning_level"}, predictionRows(data.FatiguePredictions)},
	}

	for i, s := range sheets {
		if i == 0 {
			f.SetSheetName("Sheet1", s.name)
		} else if _, err := f.NewSheet(s.name); err != nil {
			return nil, fmt.Errorf("create sheet %s: %w", s.name, err)
		}
		if err := writeSheetRow(f, s.name, 1, s.header); err != nil {
			return nil, err
		}
		for r, row := range s.rows {
			if err := writeSheetRow(f, s.name, r+2, row); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSheetRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("sheet %s row %d: %w", sheet, row, err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("sheet %s row %d: %w", sheet, row, err)
	}
	return nil
}

// deref turns optional values into blank cells.
func deref[T any](p *T) interface{} {
	if p == nil {
		return nil
	}
	return *p
}

func profileRows(profiles []*models.UserProfile) [][]interface{} {
	rows := make([][]interface{}, 0, len(profiles))
	for _, p := range profiles {
		rows = append(rows, []interface{}{
			p.UserID, p.Height, p.Weight, string(p.Sex), p.Age, string(p.UnitSystem),
			string(p.ExperienceLevel), string(p.PrimaryGoal), p.WeeklyFrequency, p.CreatedAt, p.UpdatedAt,
		})
	}
	return rows
}

func workoutRows(workouts []*models.Workout) [][]interface{} {
	var rows [][]interface{}
	for _, w := range workouts {
		base := []interface{}{w.ID, w.Name, deref(w.Description), w.CreatedAt.Format(time.RFC3339)}
		if len(w.Steps) == 0 {
			rows = append(rows, base)
			continue
		}
		for _, s := range w.Steps {
			row := append([]interface{}{}, base...)
			row = append(row, s.Order, s.ExerciseName, s.TargetSets, deref(s.TargetReps), deref(s.TargetWeight))
			rows = append(rows, row)
		}
	}
	return rows
}

func eventLogRows(logs []*models.EventLog) [][]interface{} {
	rows := make([][]interface{}, 0, len(logs))
	for _, e := range logs {
		rows = append(rows, []interface{}{
			e.ID, e.UserID, deref(e.WorkoutID), e.ExerciseName, e.SetNumber, e.Reps, e.Weight,
			deref(e.RPE), e.Completed, e.LoggedAt.Format(time.RFC3339),
		})
	}
	return rows
}

func userMetricRows(metrics []*models.UserMetric) [][]interface{} {
	rows := make([][]interface{}, 0, len(metrics))
	for _, m := range metrics {
		parts := make([]string, len(m.TargetWorkout))
		for i, b := range m.TargetWorkout {
			parts[i] = string(b)
		}
		target, _ := json.Marshal(parts)
		rows = append(rows, []interface{}{
			m.ID, m.UserID, m.Date.Format("2006-01-02"), deref(m.SleepHours), deref(m.EnergyLevel),
			deref(m.AvailableTime), string(target), deref(m.Notes),
		})
	}
	return rows
}

func predictionRows(predictions []*models.FatiguePrediction) [][]interface{} {
	rows := make([][]interface{}, 0, len(predictions))
	for _, p := range predictions {
		var warning interface{}
		if p.WarningLevel != nil {
			warning = string(*p.WarningLevel)
		}
		rows = append(rows, []interface{}{
			p.ID, p.UserID, p.Date.Format("2006-01-02"), p.PredictedFatigue,
			deref(p.PredictedSuccessRate), deref(p.ACWR), warning,
		})
	}
	return rows
}
