package repositories

import (
	"context"
	"database/sql"
	"github.com/lifeline-dispatch/lifeline/internal/db"
	"github.com/lifeline-dispatch/lifeline/internal/errors"
	"github.com/lifeline-dispatch/lifeline/internal/models"
	"log/slog"
	"time"
)

type IncidentRepository struct {
	dbs    *db.DBs
	logger *slog.Logger
}

func NewIncidentRepository(dbs *db.DBs, logger *slog.Logger) *IncidentRepository {
	return &IncidentRepository{
		dbs:    dbs,
		logger: logger.With("source", "IncidentRepository"),
	}
}

// Insert stores the incident and returns it with its assigned ID. IDs are
// sequential, assigned as current count plus one; they are unique but not
// guaranteed gap-free.
func (r *IncidentRepository) Insert(ctx context.Context, incident models.Incident) (models.Incident, error) {
	stmt := `INSERT INTO incidents (id, emergency_type, location, people_involved, severity, summary, timestamp)
	VALUES ((SELECT COUNT(*) + 1 FROM incidents), ?, ?, ?, ?, ?, ?)
	RETURNING id`
	if err := r.dbs.ReadWriteDB.QueryRowContext(ctx, stmt,
		string(incident.EmergencyType),
		incident.Location,
		incident.PeopleInvolved,
		string(incident.Severity),
		incident.Summary,
		incident.Timestamp.Format(time.RFC3339Nano),
	).Scan(&incident.ID); err != nil {
		return models.Incident{}, errors.Wrap(err, "insert incident")
	}
	return incident, nil
}

// List returns all incidents, newest first.
func (r *IncidentRepository) List(ctx context.Context) ([]models.Incident, error) {
	var (
		err  error
		rows *sql.Rows
	)

	stmt := `SELECT id, emergency_type, location, people_involved, severity, summary, timestamp
	FROM incidents
	ORDER BY id DESC`
	if rows, err = r.dbs.ReadDB.QueryContext(ctx, stmt); err != nil {
		return nil, errors.Wrap(err, "query incidents")
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			r.logger.Error("could not close rows", errors.SlogError(closeErr))
		}
	}()

	incidents := make([]models.Incident, 0)
	for rows.Next() {
		var (
			incident  models.Incident
			timestamp string
		)
		if err = rows.Scan(
			&incident.ID,
			&incident.EmergencyType,
			&incident.Location,
			&incident.PeopleInvolved,
			&incident.Severity,
			&incident.Summary,
			&timestamp,
		); err != nil {
			return nil, errors.Wrap(err, "scan incident")
		}
		if incident.Timestamp, err = time.Parse(time.RFC3339Nano, timestamp); err != nil {
			return nil, errors.Wrap(err, "parse timestamp", slog.String("timestamp", timestamp))
		}
		incidents = append(incidents, incident)
	}
	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "rows error")
	}

	return incidents, nil
}

// Count returns the number of stored incidents.
func (r *IncidentRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.dbs.ReadDB.QueryRowContext(ctx, `SELECT COUNT(*) FROM incidents`).Scan(&count); err != nil {
		return 0, errors.Wrap(err, "count incidents")
	}
	return count, nil
}
