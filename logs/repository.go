package logs

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // repository assumes sqlite
)

type Repository struct {
	db *sqlx.DB

	insert *sqlx.NamedStmt
}

type Game struct {
	ID        int64     `db:"id"`
	Timestamp time.Time `db:"time"`
	PlayerX   string    `db:"player_x"`
	PlayerO   string    `db:"player_o"`
	Rule      string    `db:"rule"`
	Winner    string    `db:"winner"`
	Plies     int       `db:"plies"`
	Record    string    `db:"record"`
}

// Standing counts one player's games with one result.
type Standing struct {
	Player string `db:"player"`
	Result string `db:"win"`
	Games  int    `db:"games"`
}

func Open(path string) (*Repository, error) {
	db, err := sqlx.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	// ":memory:" databases are per-connection.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(createGameTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("create game table: %w", err)
	}
	if _, err := db.Exec(createPlayerView); err != nil {
		db.Close()
		return nil, fmt.Errorf("create player_games view: %w", err)
	}

	repo := &Repository{db: db}
	repo.insert, err = db.PrepareNamed(insertStmt)
	if err != nil {
		repo.Close()
		return nil, fmt.Errorf("prepare: %w", err)
	}
	return repo, nil
}

func (r *Repository) InsertGame(g *Game) error {
	return r.insertGame(r.insert, g)
}

func (r *Repository) insertGame(stmt *sqlx.NamedStmt, g *Game) error {
	res, err := stmt.Exec(g)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	g.ID = id
	return nil
}

func (r *Repository) InsertGames(gs []*Game) error {
	txn, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer txn.Rollback()
	stmt := txn.NamedStmt(r.insert)
	for _, g := range gs {
		if e := r.insertGame(stmt, g); e != nil {
			return e
		}
	}
	return txn.Commit()
}

// Games returns up to limit games, newest first.
func (r *Repository) Games(limit int) ([]Game, error) {
	var out []Game
	if err := r.db.Select(&out, selectRecent, limit); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repository) Standings() ([]Standing, error) {
	var out []Standing
	if err := r.db.Select(&out, selectStandings); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repository) Close() error {
	if r.insert != nil {
		r.insert.Close()
	}
	return r.db.Close()
}
