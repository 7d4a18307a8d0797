package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/huandu/go-sqlbuilder"
	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/fyyur/internal/database"
)

// RecentLimit is how many recently listed venues or artists the home page shows.
const RecentLimit = 10

// flavorOf picks the SQL dialect matching the connection's driver.
func flavorOf(db *sqlx.DB) sqlbuilder.Flavor {
	return database.Flavor(db.DriverName())
}

// utc normalizes a timestamp the way shows.start_time is stored: UTC with
// whole seconds, so textual comparisons in sqlite agree with time order.
func utc(t time.Time) time.Time {
	return t.UTC().Truncate(time.Second)
}

// likeEscape is the ESCAPE character used by nameContains. Both MySQL and
// sqlite accept it without extra quoting.
const likeEscape = "!"

var likeReplacer = strings.NewReplacer(
	likeEscape, likeEscape+likeEscape,
	"%", likeEscape+"%",
	"_", likeEscape+"_",
)

// likePattern turns a user search term into a case-insensitive substring
// pattern. Wildcards typed by the user match literally. An empty term matches
// everything.
func likePattern(term string) string {
	return "%" + likeReplacer.Replace(strings.ToLower(strings.TrimSpace(term))) + "%"
}

// nameContains builds the search condition on column for term.
func nameContains(sb *sqlbuilder.SelectBuilder, column, term string) string {
	return fmt.Sprintf("LOWER(%s) LIKE %s ESCAPE '%s'", column, sb.Var(likePattern(term)), likeEscape)
}

// exists reports whether table holds a row with the given id.
func exists(ctx context.Context, q sqlx.QueryerContext, flavor sqlbuilder.Flavor, table string, id uint64) (bool, error) {
	sb := flavor.NewSelectBuilder()
	sb.Select("COUNT(*)").From(table).Where(sb.Equal("id", id))
	query, args := sb.Build()

	var n int
	if err := sqlx.GetContext(ctx, q, &n, query, args...); err != nil {
		return false, fmt.Errorf("check %s %d: %w", table, id, err)
	}
	return n > 0, nil
}
