package catalog

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/aatrey56/ff-draft-assistant/internal/model"
	"github.com/aatrey56/ff-draft-assistant/internal/store"
)

// DefaultSnapshotFile is the document the data-fetch layer writes under the store root.
const DefaultSnapshotFile = "players.json"

// Open loads a snapshot from path. format is "json" or "sqlite"; empty picks
// by extension (.db, .sqlite and .sqlite3 are SQLite, anything else JSON).
func Open(path, format string) (*Snapshot, error) {
	if format == "" {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".db", ".sqlite", ".sqlite3":
			format = "sqlite"
		default:
			format = "json"
		}
	}
	switch format {
	case "sqlite":
		return OpenSQLite(path)
	case "json":
		return LoadJSON(store.NewJSONStore(filepath.Dir(path)), filepath.Base(path))
	default:
		return nil, fmt.Errorf("unknown catalog format %q", format)
	}
}

type snapshotFile struct {
	GeneratedAtUTC string         `json:"generated_at_utc,omitempty"`
	Players        []model.Player `json:"players"`
}

// LoadJSON reads a {"players": [...]} snapshot from st.
func LoadJSON(st *store.JSONStore, rel string) (*Snapshot, error) {
	if rel == "" {
		rel = DefaultSnapshotFile
	}
	var f snapshotFile
	if err := st.ReadJSON(rel, &f); err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return NewSnapshot(normalize(f.Players)), nil
}

// WriteJSON persists players in the layout LoadJSON reads.
func WriteJSON(st *store.JSONStore, rel string, players []model.Player, generatedAtUTC string) error {
	if rel == "" {
		rel = DefaultSnapshotFile
	}
	return st.WriteJSON(rel, snapshotFile{GeneratedAtUTC: generatedAtUTC, Players: players})
}

const schema = `
CREATE TABLE IF NOT EXISTS players (
	id TEXT PRIMARY KEY,
	full_name TEXT NOT NULL,
	position TEXT NOT NULL,
	team TEXT,
	age INTEGER,
	years_experience INTEGER,
	adp REAL,
	projected_points REAL,
	projected_receptions REAL,
	proj_standard REAL,
	proj_half_ppr REAL,
	proj_ppr REAL,
	injury_status TEXT,
	trending_add_rank INTEGER,
	trending_drop_rank INTEGER,
	depth_chart_order INTEGER
);
`

// InitSQLiteSchema creates the players table when missing.
func InitSQLiteSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}

// OpenSQLite loads every row of the players table at path into a Snapshot.
// The database is closed before returning; the snapshot holds no handle.
func OpenSQLite(path string) (*Snapshot, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	return LoadSQLite(db)
}

func LoadSQLite(db *sql.DB) (*Snapshot, error) {
	rows, err := db.Query(`SELECT id, full_name, position, team, age, years_experience, adp,
		projected_points, projected_receptions, proj_standard, proj_half_ppr, proj_ppr,
		injury_status, trending_add_rank, trending_drop_rank, depth_chart_order FROM players`)
	if err != nil {
		return nil, fmt.Errorf("query players: %w", err)
	}
	defer rows.Close()

	players := make([]model.Player, 0)
	for rows.Next() {
		var (
			p                              model.Player
			pos                            string
			team, injury                   sql.NullString
			age, exp, add, drop, depth     sql.NullInt64
			adp, proj, rec, std, half, ppr sql.NullFloat64
		)
		if err := rows.Scan(&p.ID, &p.FullName, &pos, &team, &age, &exp, &adp,
			&proj, &rec, &std, &half, &ppr, &injury, &add, &drop, &depth); err != nil {
			return nil, fmt.Errorf("scan player: %w", err)
		}
		p.Position = model.Position(pos)
		p.Team = team.String
		p.InjuryStatus = injury.String
		p.Age = intPtr(age)
		p.YearsExperience = intPtr(exp)
		p.TrendingAddRank = intPtr(add)
		p.TrendingDropRank = intPtr(drop)
		p.DepthChartOrder = intPtr(depth)
		p.ADP = floatPtr(adp)
		p.ProjectedPoints = floatPtr(proj)
		p.ProjectedReceptions = floatPtr(rec)
		for format, v := range map[model.ScoringFormat]sql.NullFloat64{model.Standard: std, model.HalfPPR: half, model.PPR: ppr} {
			if !v.Valid {
				continue
			}
			if p.Projections == nil {
				p.Projections = make(map[model.ScoringFormat]float64, 3)
			}
			p.Projections[format] = v.Float64
		}
		players = append(players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return NewSnapshot(normalize(players)), nil
}

// normalize upper-cases team codes and maps position spellings; players with
// an unknown position are dropped.
func normalize(players []model.Player) []model.Player {
	out := make([]model.Player, 0, len(players))
	for _, p := range players {
		pos, ok := model.ParsePosition(string(p.Position))
		if !ok {
			continue
		}
		p.Position = pos
		p.Team = strings.ToUpper(strings.TrimSpace(p.Team))
		out = append(out, p)
	}
	return out
}

func intPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
