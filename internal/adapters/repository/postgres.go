package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"github.com/iPranay05/OneAthleteOneNation-sub000/internal/domain/model"
)

// Rows keep the record body as jsonb keyed by its natural ID. The engine
// never queries inside a record, so one column per collection row is enough.

type coachRow struct {
	ID        string         `gorm:"column:id;primaryKey"`
	Data      datatypes.JSON `gorm:"column:data;type:jsonb;not null"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
}

func (coachRow) TableName() string { return "coaches" }

type availabilityRow struct {
	CoachID   string         `gorm:"column:coach_id;primaryKey"`
	Data      datatypes.JSON `gorm:"column:data;type:jsonb;not null"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
}

func (availabilityRow) TableName() string { return "coach_availability" }

type assignmentRow struct {
	AthleteID string         `gorm:"column:athlete_id;primaryKey"`
	Data      datatypes.JSON `gorm:"column:data;type:jsonb;not null"`
	Version   int64          `gorm:"column:version;not null;default:0"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
}

func (assignmentRow) TableName() string { return "assignments" }

// PostgresStore persists state through gorm.
type PostgresStore struct {
	db *gorm.DB
}

// OpenPostgres connects to dsn and migrates the schema.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return NewPostgresStore(ctx, db)
}

// NewPostgresStore wraps an open gorm handle and migrates the schema.
func NewPostgresStore(ctx context.Context, db *gorm.DB) (*PostgresStore, error) {
	if err := db.WithContext(ctx).AutoMigrate(&coachRow{}, &availabilityRow{}, &assignmentRow{}); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

func (p *PostgresStore) LoadState(ctx context.Context) (model.State, error) {
	db := p.db.WithContext(ctx)
	var st model.State

	var coaches []coachRow
	if err := db.Order("id").Find(&coaches).Error; err != nil {
		return model.State{}, fmt.Errorf("load coaches: %w", err)
	}
	st.Coaches = make([]model.Coach, 0, len(coaches))
	for _, r := range coaches {
		var c model.Coach
		if err := json.Unmarshal(r.Data, &c); err != nil {
			return model.State{}, fmt.Errorf("decode coach %s: %w", r.ID, err)
		}
		st.Coaches = append(st.Coaches, c)
	}

	var avail []availabilityRow
	if err := db.Order("coach_id").Find(&avail).Error; err != nil {
		return model.State{}, fmt.Errorf("load availability: %w", err)
	}
	st.Availability = make([]model.Availability, 0, len(avail))
	for _, r := range avail {
		var a model.Availability
		if err := json.Unmarshal(r.Data, &a); err != nil {
			return model.State{}, fmt.Errorf("decode availability %s: %w", r.CoachID, err)
		}
		st.Availability = append(st.Availability, a)
	}

	var assigns []assignmentRow
	if err := db.Order("athlete_id").Find(&assigns).Error; err != nil {
		return model.State{}, fmt.Errorf("load assignments: %w", err)
	}
	st.Assignments = make([]model.Assignment, 0, len(assigns))
	for _, r := range assigns {
		var a model.Assignment
		if err := json.Unmarshal(r.Data, &a); err != nil {
			return model.State{}, fmt.Errorf("decode assignment %s: %w", r.AthleteID, err)
		}
		st.Assignments = append(st.Assignments, a)
	}
	return st, nil
}

// SaveState upserts every carried record in one transaction.
func (p *PostgresStore) SaveState(ctx context.Context, patch model.StatePatch) error {
	if patch.Empty() {
		return nil
	}
	now := time.Now().UTC()
	return p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if patch.ReplaceCoaches {
			keep := make([]string, 0, len(patch.Coaches))
			for _, c := range patch.Coaches {
				keep = append(keep, c.ID)
			}
			q := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
			if len(keep) > 0 {
				q = q.Where("id NOT IN ?", keep)
			}
			if err := q.Delete(&coachRow{}).Error; err != nil {
				return fmt.Errorf("replace coaches: %w", err)
			}
		}
		if len(patch.Coaches) > 0 {
			rows := make([]coachRow, 0, len(patch.Coaches))
			for _, c := range patch.Coaches {
				raw, err := json.Marshal(c)
				if err != nil {
					return fmt.Errorf("encode coach %s: %w", c.ID, err)
				}
				rows = append(rows, coachRow{ID: c.ID, Data: datatypes.JSON(raw), UpdatedAt: now})
			}
			if err := upsert(tx, "id", &rows); err != nil {
				return fmt.Errorf("save coaches: %w", err)
			}
		}
		if len(patch.Availability) > 0 {
			rows := make([]availabilityRow, 0, len(patch.Availability))
			for _, a := range patch.Availability {
				raw, err := json.Marshal(a)
				if err != nil {
					return fmt.Errorf("encode availability %s: %w", a.CoachID, err)
				}
				rows = append(rows, availabilityRow{CoachID: a.CoachID, Data: datatypes.JSON(raw), UpdatedAt: now})
			}
			if err := upsert(tx, "coach_id", &rows); err != nil {
				return fmt.Errorf("save availability: %w", err)
			}
		}
		if len(patch.Assignments) > 0 {
			rows := make([]assignmentRow, 0, len(patch.Assignments))
			for _, a := range patch.Assignments {
				raw, err := json.Marshal(a)
				if err != nil {
					return fmt.Errorf("encode assignment %s: %w", a.AthleteID, err)
				}
				rows = append(rows, assignmentRow{AthleteID: a.AthleteID, Data: datatypes.JSON(raw), Version: a.Version, UpdatedAt: now})
			}
			if err := upsertAssignments(tx, &rows); err != nil {
				return fmt.Errorf("save assignments: %w", err)
			}
		}
		return nil
	})
}

func upsert(tx *gorm.DB, key string, rows any) error {
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: key}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(rows).Error
}

// upsertAssignments leaves a row alone when it already holds a newer version.
func upsertAssignments(tx *gorm.DB, rows *[]assignmentRow) error {
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "athlete_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "version", "updated_at"}),
		Where: clause.Where{Exprs: []clause.Expression{
			clause.Expr{SQL: "assignments.version <= excluded.version"},
		}},
	}).Create(rows).Error
}

func (p *PostgresStore) Close() error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return fmt.Errorf("get sql db: %w", err)
	}
	return sqlDB.Close()
}
