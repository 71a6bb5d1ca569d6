package venuedb

import (
	"context"
)

const insertReconcileAction = `
INSERT INTO reconcile_actions (
    id, station_id, listing_id, outlet_id, listing_name, outlet_name, tier, auto_retired, created_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`

type InsertReconcileActionParams struct {
	ID          string
	StationID   string
	ListingID   string
	OutletID    string
	ListingName string
	OutletName  string
	Tier        string
	AutoRetired int64
	CreatedAt   int64
}

func (q *Queries) InsertReconcileAction(ctx context.Context, arg InsertReconcileActionParams) error {
	_, err := q.db.ExecContext(ctx, insertReconcileAction,
		arg.ID, arg.StationID, arg.ListingID, arg.OutletID,
		arg.ListingName, arg.OutletName, arg.Tier, arg.AutoRetired, arg.CreatedAt)
	return err
}

const listReconcileActionsForStation = `
SELECT id, station_id, listing_id, outlet_id, listing_name, outlet_name, tier, auto_retired, created_at
FROM reconcile_actions
WHERE station_id = ?
ORDER BY created_at DESC, id
`

func (q *Queries) ListReconcileActionsForStation(ctx context.Context, stationID string) ([]ReconcileAction, error) {
	rows, err := q.db.QueryContext(ctx, listReconcileActionsForStation, stationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck // closing is also checked explicitly below
	var items []ReconcileAction
	for rows.Next() {
		var i ReconcileAction
		if err := rows.Scan(
			&i.ID, &i.StationID, &i.ListingID, &i.OutletID,
			&i.ListingName, &i.OutletName, &i.Tier, &i.AutoRetired, &i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
