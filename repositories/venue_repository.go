package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Dosada05/court-finder/db"
	"github.com/Dosada05/court-finder/models"
)

var ErrVenueNotFound = errors.New("venue not found")

// VenueColumn is a writable column of the venues table.
type VenueColumn string

const (
	ColName                  VenueColumn = "name"
	ColDescription           VenueColumn = "description"
	ColAddress               VenueColumn = "address"
	ColMTRStation            VenueColumn = "mtr_station"
	ColMTRExit               VenueColumn = "mtr_exit"
	ColWalkingDistance       VenueColumn = "walking_distance"
	ColCeilingHeight         VenueColumn = "ceiling_height"
	ColStartingPrice         VenueColumn = "starting_price"
	ColPricing               VenueColumn = "pricing"
	ColImages                VenueColumn = "images"
	ColAmenities             VenueColumn = "amenities"
	ColWhatsApp              VenueColumn = "whatsapp"
	ColSocialLink            VenueColumn = "social_link"
	ColOrgIcon               VenueColumn = "org_icon"
	ColCoordinates           VenueColumn = "coordinates"
	ColSortOrder             VenueColumn = "sort_order"
	ColAdminPassword         VenueColumn = "admin_password"
	ColMembershipEnabled     VenueColumn = "membership_enabled"
	ColMembershipDescription VenueColumn = "membership_description"
	ColMembershipJoinLink    VenueColumn = "membership_join_link"
)

// VenueUpdate is an ordered list of column assignments for a partial update.
type VenueUpdate struct {
	columns []VenueColumn
	values  []interface{}
}

func (u *VenueUpdate) Set(col VenueColumn, value interface{}) {
	u.columns = append(u.columns, col)
	u.values = append(u.values, value)
}

func (u *VenueUpdate) Len() int {
	return len(u.columns)
}

func (u *VenueUpdate) Columns() []VenueColumn {
	return u.columns
}

type VenueRepository interface {
	List(ctx context.Context, exec SQLExecutor) ([]models.Venue, error)
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Venue, error)
	Create(ctx context.Context, exec SQLExecutor, venue *models.Venue) error
	Update(ctx context.Context, exec SQLExecutor, id int, update VenueUpdate) error
	Delete(ctx context.Context, exec SQLExecutor, id int) error
	SetSortOrders(ctx context.Context, exec SQLExecutor, orderedIDs []int) error
	SetSportSortOrders(ctx context.Context, exec SQLExecutor, sportID int, orderedIDs []int) error
	ListAdminCredentials(ctx context.Context) ([]models.AdminCredential, error)
	SetAdminPassword(ctx context.Context, exec SQLExecutor, id int, password *string) error
	ListSportLinks(ctx context.Context, exec SQLExecutor, venueIDs []int) (map[int][]models.SportLink, error)
	ReplaceSportLinks(ctx context.Context, exec SQLExecutor, venueID int, links []models.SportLink) error
	DeleteSportLinks(ctx context.Context, exec SQLExecutor, venueID int) error
	ListIDs(ctx context.Context) ([]int, error)
}

type sqlVenueRepository struct {
	db      *sql.DB
	dialect db.Dialect
	caps    db.Capabilities
}

func NewVenueRepository(conn *sql.DB, dialect db.Dialect, caps db.Capabilities) VenueRepository {
	return &sqlVenueRepository{db: conn, dialect: dialect, caps: caps}
}

const venueSelectColumns = `id, name, description, address, mtr_station, mtr_exit,
	walking_distance, ceiling_height, starting_price, pricing, images, amenities,
	whatsapp, social_link, org_icon, coordinates, sort_order, admin_password,
	membership_enabled, membership_description, membership_join_link`

// Колонки INSERT в том же порядке, что и venueInsertArgs
const venueInsertColumns = `name, description, address, mtr_station, mtr_exit,
	walking_distance, ceiling_height, starting_price, pricing, images, amenities,
	whatsapp, social_link, org_icon, coordinates, sort_order, admin_password,
	membership_enabled, membership_description, membership_join_link`

func venueInsertArgs(v *models.Venue) []interface{} {
	return []interface{}{
		v.Name, v.Description, v.Address, v.MTRStation, v.MTRExit,
		v.WalkingDistance, v.CeilingHeight, v.StartingPrice, v.Pricing, v.Images, v.Amenities,
		v.WhatsApp, v.SocialLink, v.OrgIcon, v.Coordinates, v.SortOrder, v.AdminPassword,
		v.MembershipEnabled, v.MembershipDescription, v.MembershipJoinLink,
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanVenue(row rowScanner) (models.Venue, error) {
	var v models.Venue
	err := row.Scan(
		&v.ID, &v.Name, &v.Description, &v.Address, &v.MTRStation, &v.MTRExit,
		&v.WalkingDistance, &v.CeilingHeight, &v.StartingPrice, &v.Pricing, &v.Images, &v.Amenities,
		&v.WhatsApp, &v.SocialLink, &v.OrgIcon, &v.Coordinates, &v.SortOrder, &v.AdminPassword,
		&v.MembershipEnabled, &v.MembershipDescription, &v.MembershipJoinLink,
	)
	v.SportData = []models.SportLink{}
	return v, err
}

func (r *sqlVenueRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *sqlVenueRepository) List(ctx context.Context, exec SQLExecutor) ([]models.Venue, error) {
	executor := r.getExecutor(exec)
	// sort_order IS NULL даёт NULLS LAST во всех трёх диалектах
	query := `SELECT ` + venueSelectColumns + ` FROM venues
		ORDER BY sort_order IS NULL, sort_order ASC, name ASC`

	rows, err := executor.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query venues: %w", err)
	}
	defer rows.Close()

	venues := make([]models.Venue, 0)
	for rows.Next() {
		v, scanErr := scanVenue(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan venue: %w", scanErr)
		}
		venues = append(venues, v)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return venues, nil
}

func (r *sqlVenueRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Venue, error) {
	executor := r.getExecutor(exec)
	query := r.dialect.Rebind(`SELECT ` + venueSelectColumns + ` FROM venues WHERE id = ?`)

	v, err := scanVenue(executor.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVenueNotFound
		}
		return nil, fmt.Errorf("failed to get venue %d: %w", id, err)
	}
	return &v, nil
}

func (r *sqlVenueRepository) Create(ctx context.Context, exec SQLExecutor, venue *models.Venue) error {
	executor := r.getExecutor(exec)
	args := venueInsertArgs(venue)
	query := `INSERT INTO venues (` + venueInsertColumns + `) VALUES (` + r.dialect.Placeholders(len(args)) + `)`

	if r.dialect.SupportsReturning() {
		if err := executor.QueryRowContext(ctx, query+` RETURNING id`, args...).Scan(&venue.ID); err != nil {
			return fmt.Errorf("failed to insert venue: %w", err)
		}
		return nil
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to insert venue: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read venue id: %w", err)
	}
	venue.ID = int(id)
	return nil
}

func (r *sqlVenueRepository) Update(ctx context.Context, exec SQLExecutor, id int, update VenueUpdate) error {
	if update.Len() == 0 {
		return nil
	}
	executor := r.getExecutor(exec)

	sets := make([]string, len(update.columns))
	for i, col := range update.columns {
		sets[i] = string(col) + ` = ?`
	}
	query := r.dialect.Rebind(`UPDATE venues SET ` + strings.Join(sets, ", ") + ` WHERE id = ?`)
	args := append(append([]interface{}{}, update.values...), id)

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update venue %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrVenueNotFound)
}

func (r *sqlVenueRepository) Delete(ctx context.Context, exec SQLExecutor, id int) error {
	executor := r.getExecutor(exec)
	query := r.dialect.Rebind(`DELETE FROM venues WHERE id = ?`)

	result, err := executor.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete venue %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrVenueNotFound)
}

func (r *sqlVenueRepository) SetSortOrders(ctx context.Context, exec SQLExecutor, orderedIDs []int) error {
	executor := r.getExecutor(exec)
	query := r.dialect.Rebind(`UPDATE venues SET sort_order = ? WHERE id = ?`)

	for pos, id := range orderedIDs {
		result, err := executor.ExecContext(ctx, query, pos, id)
		if err != nil {
			return fmt.Errorf("failed to set sort order of venue %d: %w", id, err)
		}
		if err := checkAffectedRows(result, fmt.Errorf("%w: id %d", ErrVenueNotFound, id)); err != nil {
			return err
		}
	}
	return nil
}

func (r *sqlVenueRepository) SetSportSortOrders(ctx context.Context, exec SQLExecutor, sportID int, orderedIDs []int) error {
	if !r.caps.SportTables {
		return ErrSportsUnavailable
	}
	executor := r.getExecutor(exec)
	query := r.dialect.Rebind(`UPDATE venue_sports SET sort_order = ? WHERE sport_id = ? AND venue_id = ?`)

	for pos, id := range orderedIDs {
		result, err := executor.ExecContext(ctx, query, pos, sportID, id)
		if err != nil {
			return fmt.Errorf("failed to set sort order of venue %d in sport %d: %w", id, sportID, err)
		}
		if err := checkAffectedRows(result, fmt.Errorf("%w: id %d is not linked to sport %d", ErrVenueNotFound, id, sportID)); err != nil {
			return err
		}
	}
	return nil
}

func (r *sqlVenueRepository) ListAdminCredentials(ctx context.Context) ([]models.AdminCredential, error) {
	query := `SELECT id, admin_password FROM venues
		WHERE admin_password IS NOT NULL AND admin_password <> ''
		ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query admin credentials: %w", err)
	}
	defer rows.Close()

	creds := make([]models.AdminCredential, 0)
	for rows.Next() {
		var c models.AdminCredential
		if err := rows.Scan(&c.VenueID, &c.Password); err != nil {
			return nil, err
		}
		creds = append(creds, c)
	}
	return creds, rows.Err()
}

func (r *sqlVenueRepository) SetAdminPassword(ctx context.Context, exec SQLExecutor, id int, password *string) error {
	executor := r.getExecutor(exec)
	query := r.dialect.Rebind(`UPDATE venues SET admin_password = ? WHERE id = ?`)

	result, err := executor.ExecContext(ctx, query, password, id)
	if err != nil {
		return fmt.Errorf("failed to set admin password of venue %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrVenueNotFound)
}

// ListSportLinks returns the sport associations per venue id. An empty
// venueIDs slice loads the links of every venue.
func (r *sqlVenueRepository) ListSportLinks(ctx context.Context, exec SQLExecutor, venueIDs []int) (map[int][]models.SportLink, error) {
	links := make(map[int][]models.SportLink)
	if !r.caps.SportTables {
		return links, nil
	}
	executor := r.getExecutor(exec)

	nameZh := "s.name_zh"
	if !r.caps.SportNameZh {
		nameZh = "NULL"
	}
	query := `SELECT vs.venue_id, vs.sport_id, s.name, ` + nameZh + `, s.slug, vs.sort_order
		FROM venue_sports vs
		JOIN sports s ON s.id = vs.sport_id`
	var args []interface{}
	if len(venueIDs) > 0 {
		query += ` WHERE vs.venue_id IN (` + r.dialect.Placeholders(len(venueIDs)) + `)`
		args = intsToArgs(venueIDs)
	}
	query += ` ORDER BY vs.venue_id, vs.sort_order, s.name`

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query sport links: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var venueID int
		var l models.SportLink
		if err := rows.Scan(&venueID, &l.SportID, &l.Name, &l.NameZh, &l.Slug, &l.SortOrder); err != nil {
			return nil, fmt.Errorf("failed to scan sport link: %w", err)
		}
		links[venueID] = append(links[venueID], l)
	}
	return links, rows.Err()
}

// ReplaceSportLinks deletes the venue's links and inserts the given ones.
// Only SportID and SortOrder of each link are written.
func (r *sqlVenueRepository) ReplaceSportLinks(ctx context.Context, exec SQLExecutor, venueID int, links []models.SportLink) error {
	if !r.caps.SportTables {
		return ErrSportsUnavailable
	}
	if err := r.DeleteSportLinks(ctx, exec, venueID); err != nil {
		return err
	}

	executor := r.getExecutor(exec)
	query := r.dialect.Rebind(`INSERT INTO venue_sports (venue_id, sport_id, sort_order) VALUES (?, ?, ?)`)
	for _, l := range links {
		if _, err := executor.ExecContext(ctx, query, venueID, l.SportID, l.SortOrder); err != nil {
			if isForeignKeyViolation(err) {
				return fmt.Errorf("%w: sport %d", ErrSportReference, l.SportID)
			}
			return fmt.Errorf("failed to link venue %d to sport %d: %w", venueID, l.SportID, err)
		}
	}
	return nil
}

func (r *sqlVenueRepository) DeleteSportLinks(ctx context.Context, exec SQLExecutor, venueID int) error {
	if !r.caps.SportTables {
		return nil
	}
	executor := r.getExecutor(exec)
	query := r.dialect.Rebind(`DELETE FROM venue_sports WHERE venue_id = ?`)

	if _, err := executor.ExecContext(ctx, query, venueID); err != nil {
		return fmt.Errorf("failed to delete sport links of venue %d: %w", venueID, err)
	}
	return nil
}

func (r *sqlVenueRepository) ListIDs(ctx context.Context) ([]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM venues ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query venue ids: %w", err)
	}
	defer rows.Close()

	ids := make([]int, 0)
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
