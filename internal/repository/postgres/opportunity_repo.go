// internal/repository/postgres/opportunity_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"tripdesk-service/internal/domain/opportunity"
	xerrors "tripdesk-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// OpportunityRepository persists the opportunity aggregate. Sub-collections
// (options, components, tasks, payments, history, drafts, bookings) are the
// unit of persistence: every save deletes the existing rows for the parent
// and bulk-inserts the current in-memory list. All delete+insert pairs for
// one parent run inside a single transaction, so a save either lands whole
// or not at all.
type OpportunityRepository struct {
	db *pgxpool.Pool
}

func NewOpportunityRepository(db *pgxpool.Pool) *OpportunityRepository {
	return &OpportunityRepository{db: db}
}

const opportunityColumns = `
	id, client_id, title, stage, status, budget, adults, children,
	temperature, trip_reason, destination, departure_date, quote_expiry,
	proposal_status, finalized_at, sent_at, last_interaction_at,
	created_at, updated_at
`

func scanOpportunity(row pgx.Row, o *opportunity.Opportunity) error {
	return row.Scan(
		&o.ID, &o.ClientID, &o.Title, &o.Stage, &o.Status, &o.Budget,
		&o.Adults, &o.Children, &o.Temperature, &o.TripReason,
		&o.Destination, &o.DepartureDate, &o.QuoteExpiry,
		&o.ProposalStatus, &o.FinalizedAt, &o.SentAt,
		&o.LastInteractionAt, &o.CreatedAt, &o.UpdatedAt,
	)
}

// Create inserts the parent row and the initial sub-collections.
func (r *OpportunityRepository) Create(ctx context.Context, o *opportunity.Opportunity) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO opportunities (
			client_id, title, stage, status, budget, adults, children,
			temperature, trip_reason, destination, departure_date,
			quote_expiry, proposal_status, finalized_at, sent_at,
			last_interaction_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
		RETURNING id, created_at, updated_at
	`

	err = tx.QueryRow(ctx, query,
		o.ClientID, o.Title, o.Stage, o.Status, o.Budget, o.Adults,
		o.Children, o.Temperature, o.TripReason, o.Destination,
		o.DepartureDate, o.QuoteExpiry, o.ProposalStatus, o.FinalizedAt,
		o.SentAt, o.LastInteractionAt,
	).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create opportunity: %w", err)
	}

	if err := r.replaceSubCollections(ctx, tx, o); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// Save patches the parent row and replaces every sub-collection.
func (r *OpportunityRepository) Save(ctx context.Context, o *opportunity.Opportunity) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		UPDATE opportunities SET
			client_id = $2, title = $3, stage = $4, status = $5,
			budget = $6, adults = $7, children = $8, temperature = $9,
			trip_reason = $10, destination = $11, departure_date = $12,
			quote_expiry = $13, proposal_status = $14, finalized_at = $15,
			sent_at = $16, last_interaction_at = $17, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err = tx.QueryRow(ctx, query,
		o.ID, o.ClientID, o.Title, o.Stage, o.Status, o.Budget, o.Adults,
		o.Children, o.Temperature, o.TripReason, o.Destination,
		o.DepartureDate, o.QuoteExpiry, o.ProposalStatus, o.FinalizedAt,
		o.SentAt, o.LastInteractionAt,
	).Scan(&o.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return xerrors.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update opportunity: %w", err)
	}

	if err := r.replaceSubCollections(ctx, tx, o); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// FindByID loads the full aggregate.
func (r *OpportunityRepository) FindByID(ctx context.Context, id int64) (*opportunity.Opportunity, error) {
	query := `SELECT ` + opportunityColumns + ` FROM opportunities WHERE id = $1`

	var o opportunity.Opportunity
	err := scanOpportunity(r.db.QueryRow(ctx, query, id), &o)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find opportunity: %w", err)
	}

	byID := map[int64]*opportunity.Opportunity{o.ID: &o}
	if err := r.loadSubCollections(ctx, byID, "WHERE opportunity_id = $1", id); err != nil {
		return nil, err
	}

	return &o, nil
}

// FindAll loads every opportunity with its sub-collections. Called once at
// startup to seed the application state store.
func (r *OpportunityRepository) FindAll(ctx context.Context) ([]*opportunity.Opportunity, error) {
	query := `SELECT ` + opportunityColumns + ` FROM opportunities ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list opportunities: %w", err)
	}
	defer rows.Close()

	var list []*opportunity.Opportunity
	byID := make(map[int64]*opportunity.Opportunity)
	for rows.Next() {
		var o opportunity.Opportunity
		if err := scanOpportunity(rows, &o); err != nil {
			return nil, fmt.Errorf("failed to scan opportunity: %w", err)
		}
		list = append(list, &o)
		byID[o.ID] = &o
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate opportunities: %w", err)
	}

	if len(list) == 0 {
		return list, nil
	}

	if err := r.loadSubCollections(ctx, byID, ""); err != nil {
		return nil, err
	}

	return list, nil
}

// ---- sub-collection loading ----

func (r *OpportunityRepository) loadSubCollections(ctx context.Context, byID map[int64]*opportunity.Opportunity, where string, args ...any) error {
	loaders := []func(context.Context, map[int64]*opportunity.Opportunity, string, ...any) error{
		r.loadOptions,
		r.loadComponents,
		r.loadTasks,
		r.loadPayments,
		r.loadHistory,
		r.loadDrafts,
		r.loadBookings,
	}
	for _, load := range loaders {
		if err := load(ctx, byID, where, args...); err != nil {
			return err
		}
	}
	return nil
}

func (r *OpportunityRepository) loadOptions(ctx context.Context, byID map[int64]*opportunity.Opportunity, where string, args ...any) error {
	query := `
		SELECT id, opportunity_id, label, description, inclusions,
		       quality_score, version, is_accepted, total_price
		FROM proposal_options ` + where + ` ORDER BY opportunity_id, position`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to load proposal options: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var opt opportunity.ProposalOption
		if err := rows.Scan(&opt.ID, &opt.OpportunityID, &opt.Label,
			&opt.Description, &opt.Inclusions, &opt.QualityScore,
			&opt.Version, &opt.IsAccepted, &opt.TotalPrice); err != nil {
			return fmt.Errorf("failed to scan proposal option: %w", err)
		}
		if o, ok := byID[opt.OpportunityID]; ok {
			o.Options = append(o.Options, opt)
		}
	}
	return rows.Err()
}

func (r *OpportunityRepository) loadComponents(ctx context.Context, byID map[int64]*opportunity.Opportunity, where string, args ...any) error {
	query := `
		SELECT opportunity_id, id, option_id, kind, description, cost, margin
		FROM proposal_components ` + where + ` ORDER BY opportunity_id, position`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to load proposal components: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var oppID int64
		var comp opportunity.ProposalComponent
		if err := rows.Scan(&oppID, &comp.ID, &comp.OptionID, &comp.Kind,
			&comp.Description, &comp.Cost, &comp.Margin); err != nil {
			return fmt.Errorf("failed to scan proposal component: %w", err)
		}
		o, ok := byID[oppID]
		if !ok {
			continue
		}
		for i := range o.Options {
			if o.Options[i].ID == comp.OptionID {
				o.Options[i].Components = append(o.Options[i].Components, comp)
				break
			}
		}
	}
	return rows.Err()
}

func (r *OpportunityRepository) loadTasks(ctx context.Context, byID map[int64]*opportunity.Opportunity, where string, args ...any) error {
	query := `
		SELECT opportunity_id, id, title, type, due_date, done, created_at
		FROM tasks ` + where + ` ORDER BY opportunity_id, position`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to load tasks: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var oppID int64
		var t opportunity.Task
		if err := rows.Scan(&oppID, &t.ID, &t.Title, &t.Type, &t.DueDate,
			&t.Done, &t.CreatedAt); err != nil {
			return fmt.Errorf("failed to scan task: %w", err)
		}
		if o, ok := byID[oppID]; ok {
			o.Tasks = append(o.Tasks, t)
		}
	}
	return rows.Err()
}

func (r *OpportunityRepository) loadPayments(ctx context.Context, byID map[int64]*opportunity.Opportunity, where string, args ...any) error {
	query := `
		SELECT opportunity_id, id, label, amount, paid_amount, due_date, status
		FROM payment_milestones ` + where + ` ORDER BY opportunity_id, position`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to load payment milestones: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var oppID int64
		var m opportunity.PaymentMilestone
		if err := rows.Scan(&oppID, &m.ID, &m.Label, &m.Amount,
			&m.PaidAmount, &m.DueDate, &m.Status); err != nil {
			return fmt.Errorf("failed to scan payment milestone: %w", err)
		}
		if o, ok := byID[oppID]; ok {
			o.Payments = append(o.Payments, m)
		}
	}
	return rows.Err()
}

func (r *OpportunityRepository) loadHistory(ctx context.Context, byID map[int64]*opportunity.Opportunity, where string, args ...any) error {
	query := `
		SELECT opportunity_id, id, actor, action, at
		FROM audit_logs ` + where + ` ORDER BY opportunity_id, position`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to load audit logs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var oppID int64
		var e opportunity.AuditLog
		if err := rows.Scan(&oppID, &e.ID, &e.Actor, &e.Action, &e.At); err != nil {
			return fmt.Errorf("failed to scan audit log: %w", err)
		}
		if o, ok := byID[oppID]; ok {
			o.History = append(o.History, e)
		}
	}
	return rows.Err()
}

func (r *OpportunityRepository) loadDrafts(ctx context.Context, byID map[int64]*opportunity.Opportunity, where string, args ...any) error {
	query := `
		SELECT opportunity_id, id, kind, content, source, created_at
		FROM drafts ` + where + ` ORDER BY opportunity_id, position`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to load drafts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var oppID int64
		var d opportunity.Draft
		if err := rows.Scan(&oppID, &d.ID, &d.Kind, &d.Content, &d.Source, &d.CreatedAt); err != nil {
			return fmt.Errorf("failed to scan draft: %w", err)
		}
		if o, ok := byID[oppID]; ok {
			o.Drafts = append(o.Drafts, d)
		}
	}
	return rows.Err()
}

func (r *OpportunityRepository) loadBookings(ctx context.Context, byID map[int64]*opportunity.Opportunity, where string, args ...any) error {
	query := `
		SELECT opportunity_id, id, supplier_id, description, amount, status
		FROM supplier_bookings ` + where + ` ORDER BY opportunity_id, position`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to load supplier bookings: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var oppID int64
		var b opportunity.SupplierBooking
		if err := rows.Scan(&oppID, &b.ID, &b.SupplierID, &b.Description,
			&b.Amount, &b.Status); err != nil {
			return fmt.Errorf("failed to scan supplier booking: %w", err)
		}
		if o, ok := byID[oppID]; ok {
			o.Bookings = append(o.Bookings, b)
		}
	}
	return rows.Err()
}

// ---- sub-collection replacement ----

// replaceSubCollections issues the delete+insert pairs sequentially in a
// fixed order, all on the caller's transaction.
func (r *OpportunityRepository) replaceSubCollections(ctx context.Context, tx pgx.Tx, o *opportunity.Opportunity) error {
	if err := r.replaceOptions(ctx, tx, o); err != nil {
		return err
	}
	if err := r.replaceTasks(ctx, tx, o); err != nil {
		return err
	}
	if err := r.replacePayments(ctx, tx, o); err != nil {
		return err
	}
	if err := r.replaceHistory(ctx, tx, o); err != nil {
		return err
	}
	if err := r.replaceDrafts(ctx, tx, o); err != nil {
		return err
	}
	return r.replaceBookings(ctx, tx, o)
}

func (r *OpportunityRepository) replaceOptions(ctx context.Context, tx pgx.Tx, o *opportunity.Opportunity) error {
	if _, err := tx.Exec(ctx, `DELETE FROM proposal_components WHERE opportunity_id = $1`, o.ID); err != nil {
		return fmt.Errorf("failed to clear proposal components: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM proposal_options WHERE opportunity_id = $1`, o.ID); err != nil {
		return fmt.Errorf("failed to clear proposal options: %w", err)
	}

	for i, opt := range o.Options {
		_, err := tx.Exec(ctx, `
			INSERT INTO proposal_options (
				id, opportunity_id, label, description, inclusions,
				quality_score, version, is_accepted, total_price, position
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
			opt.ID, o.ID, opt.Label, opt.Description, opt.Inclusions,
			opt.QualityScore, opt.Version, opt.IsAccepted, opt.TotalPrice, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert proposal option: %w", err)
		}

		for j, comp := range opt.Components {
			_, err := tx.Exec(ctx, `
				INSERT INTO proposal_components (
					id, option_id, opportunity_id, kind, description,
					cost, margin, position
				) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
				comp.ID, opt.ID, o.ID, comp.Kind, comp.Description,
				comp.Cost, comp.Margin, j,
			)
			if err != nil {
				return fmt.Errorf("failed to insert proposal component: %w", err)
			}
		}
	}
	return nil
}

func (r *OpportunityRepository) replaceTasks(ctx context.Context, tx pgx.Tx, o *opportunity.Opportunity) error {
	if _, err := tx.Exec(ctx, `DELETE FROM tasks WHERE opportunity_id = $1`, o.ID); err != nil {
		return fmt.Errorf("failed to clear tasks: %w", err)
	}
	for i, t := range o.Tasks {
		_, err := tx.Exec(ctx, `
			INSERT INTO tasks (id, opportunity_id, title, type, due_date, done, created_at, position)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
			t.ID, o.ID, t.Title, t.Type, t.DueDate, t.Done, t.CreatedAt, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert task: %w", err)
		}
	}
	return nil
}

func (r *OpportunityRepository) replacePayments(ctx context.Context, tx pgx.Tx, o *opportunity.Opportunity) error {
	if _, err := tx.Exec(ctx, `DELETE FROM payment_milestones WHERE opportunity_id = $1`, o.ID); err != nil {
		return fmt.Errorf("failed to clear payment milestones: %w", err)
	}
	for i, m := range o.Payments {
		_, err := tx.Exec(ctx, `
			INSERT INTO payment_milestones (id, opportunity_id, label, amount, paid_amount, due_date, status, position)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
			m.ID, o.ID, m.Label, m.Amount, m.PaidAmount, m.DueDate, m.Status, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert payment milestone: %w", err)
		}
	}
	return nil
}

func (r *OpportunityRepository) replaceHistory(ctx context.Context, tx pgx.Tx, o *opportunity.Opportunity) error {
	if _, err := tx.Exec(ctx, `DELETE FROM audit_logs WHERE opportunity_id = $1`, o.ID); err != nil {
		return fmt.Errorf("failed to clear audit logs: %w", err)
	}
	for i, e := range o.History {
		_, err := tx.Exec(ctx, `
			INSERT INTO audit_logs (id, opportunity_id, actor, action, at, position)
			VALUES ($1,$2,$3,$4,$5,$6)`,
			e.ID, o.ID, e.Actor, e.Action, e.At, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert audit log: %w", err)
		}
	}
	return nil
}

func (r *OpportunityRepository) replaceDrafts(ctx context.Context, tx pgx.Tx, o *opportunity.Opportunity) error {
	if _, err := tx.Exec(ctx, `DELETE FROM drafts WHERE opportunity_id = $1`, o.ID); err != nil {
		return fmt.Errorf("failed to clear drafts: %w", err)
	}
	for i, d := range o.Drafts {
		_, err := tx.Exec(ctx, `
			INSERT INTO drafts (id, opportunity_id, kind, content, source, created_at, position)
			VALUES ($1,$2,$3,$4,$5,$6,$7)`,
			d.ID, o.ID, d.Kind, d.Content, d.Source, d.CreatedAt, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert draft: %w", err)
		}
	}
	return nil
}

func (r *OpportunityRepository) replaceBookings(ctx context.Context, tx pgx.Tx, o *opportunity.Opportunity) error {
	if _, err := tx.Exec(ctx, `DELETE FROM supplier_bookings WHERE opportunity_id = $1`, o.ID); err != nil {
		return fmt.Errorf("failed to clear supplier bookings: %w", err)
	}
	for i, b := range o.Bookings {
		_, err := tx.Exec(ctx, `
			INSERT INTO supplier_bookings (id, opportunity_id, supplier_id, description, amount, status, position)
			VALUES ($1,$2,$3,$4,$5,$6,$7)`,
			b.ID, o.ID, b.SupplierID, b.Description, b.Amount, b.Status, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert supplier booking: %w", err)
		}
	}
	return nil
}
