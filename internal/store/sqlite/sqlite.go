package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	sqlitemigrate "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"

	"github.com/rest1/board/internal/model"
	"github.com/rest1/board/internal/store"

	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrations embed.FS

type Store struct {
	db *sqlx.DB
}

var _ store.Store = (*Store)(nil)

func Open(path string) (*Store, error) {
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// A single connection serializes writers and keeps in-memory
	// databases alive for the lifetime of the store.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := migrateUp(db.DB); err != nil {
		_ = db.Close()
		return nil, err
	}
	return newStore(db), nil
}

func newStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Close() error {
	return s.db.Close()
}

// migrateUp applies the embedded migrations. The migrate instance is not
// closed because its database driver would close db with it.
func migrateUp(db *sql.DB) error {
	src, err := iofs.New(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("load migrations: %w", err)
	}
	driver, err := sqlitemigrate.WithInstance(db, &sqlitemigrate.Config{})
	if err != nil {
		return fmt.Errorf("create migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("create migration instance: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

type memberRow struct {
	ID         int64  `db:"id"`
	Username   string `db:"username"`
	Password   string `db:"password"`
	Nickname   string `db:"nickname"`
	APIKey     string `db:"api_key"`
	CreatedAt  int64  `db:"created_at"`
	ModifiedAt int64  `db:"modified_at"`
}

func (r memberRow) model() model.Member {
	return model.Member{
		ID:         r.ID,
		Username:   r.Username,
		Password:   r.Password,
		Nickname:   r.Nickname,
		APIKey:     r.APIKey,
		CreatedAt:  fromMicros(r.CreatedAt),
		ModifiedAt: fromMicros(r.ModifiedAt),
	}
}

type postRow struct {
	ID         int64  `db:"id"`
	Title      string `db:"title"`
	Content    string `db:"content"`
	AuthorID   int64  `db:"author_id"`
	AuthorName string `db:"author_name"`
	CreatedAt  int64  `db:"created_at"`
	ModifiedAt int64  `db:"modified_at"`
}

func (r postRow) model() model.Post {
	return model.Post{
		ID:         r.ID,
		Title:      r.Title,
		Content:    r.Content,
		AuthorID:   r.AuthorID,
		AuthorName: r.AuthorName,
		CreatedAt:  fromMicros(r.CreatedAt),
		ModifiedAt: fromMicros(r.ModifiedAt),
	}
}

type commentRow struct {
	ID         int64  `db:"id"`
	PostID     int64  `db:"post_id"`
	Content    string `db:"content"`
	AuthorID   int64  `db:"author_id"`
	AuthorName string `db:"author_name"`
	CreatedAt  int64  `db:"created_at"`
	ModifiedAt int64  `db:"modified_at"`
}

func (r commentRow) model() model.Comment {
	return model.Comment{
		ID:         r.ID,
		PostID:     r.PostID,
		Content:    r.Content,
		AuthorID:   r.AuthorID,
		AuthorName: r.AuthorName,
		CreatedAt:  fromMicros(r.CreatedAt),
		ModifiedAt: fromMicros(r.ModifiedAt),
	}
}

const memberColumns = `id, username, password, nickname, api_key, created_at, modified_at`

const postSelect = `
SELECT p.id, p.title, p.content, p.author_id, COALESCE(m.nickname, '') AS author_name, p.created_at, p.modified_at
FROM posts p
LEFT JOIN members m ON m.id = p.author_id
`

const commentSelect = `
SELECT c.id, c.post_id, c.content, c.author_id, COALESCE(m.nickname, '') AS author_name, c.created_at, c.modified_at
FROM comments c
LEFT JOIN members m ON m.id = c.author_id
`

func (s *Store) CreateMember(ctx context.Context, member *model.Member) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
INSERT INTO members (username, password, nickname, api_key, created_at, modified_at)
VALUES (?, ?, ?, ?, ?, ?)
`, member.Username, member.Password, member.Nickname, member.APIKey, member.CreatedAt.UnixMicro(), member.ModifiedAt.UnixMicro())
	if err != nil {
		if isUniqueViolation(err) {
			if strings.Contains(err.Error(), "api_key") {
				return 0, store.ErrDuplicateAPIKey
			}
			return 0, store.ErrDuplicateUsername
		}
		return 0, err
	}
	return res.LastInsertId()
}

func (s *Store) GetMember(ctx context.Context, id int64) (model.Member, error) {
	return s.getMember(ctx, `SELECT `+memberColumns+` FROM members WHERE id = ?`, id)
}

func (s *Store) FindMemberByUsername(ctx context.Context, username string) (model.Member, error) {
	return s.getMember(ctx, `SELECT `+memberColumns+` FROM members WHERE username = ?`, username)
}

func (s *Store) FindMemberByAPIKey(ctx context.Context, apiKey string) (model.Member, error) {
	return s.getMember(ctx, `SELECT `+memberColumns+` FROM members WHERE api_key = ?`, apiKey)
}

func (s *Store) getMember(ctx context.Context, query string, arg any) (model.Member, error) {
	var row memberRow
	if err := s.db.GetContext(ctx, &row, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Member{}, store.ErrNotFound
		}
		return model.Member{}, err
	}
	return row.model(), nil
}

func (s *Store) CountMembers(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM members`)
	return n, err
}

func (s *Store) CreatePost(ctx context.Context, post *model.Post) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
INSERT INTO posts (title, content, author_id, created_at, modified_at)
VALUES (?, ?, ?, ?, ?)
`, post.Title, post.Content, post.AuthorID, post.CreatedAt.UnixMicro(), post.ModifiedAt.UnixMicro())
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// GetPost reads the post and its comments in one transaction so the
// aggregate is never observed half-deleted.
func (s *Store) GetPost(ctx context.Context, id int64) (model.Post, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return model.Post{}, err
	}
	defer func() { _ = tx.Rollback() }()

	var row postRow
	if err := tx.GetContext(ctx, &row, postSelect+`WHERE p.id = ?`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Post{}, store.ErrNotFound
		}
		return model.Post{}, err
	}
	var rows []commentRow
	if err := tx.SelectContext(ctx, &rows, commentSelect+`WHERE c.post_id = ? ORDER BY c.id ASC`, id); err != nil {
		return model.Post{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.Post{}, err
	}

	post := row.model()
	post.Comments = make([]model.Comment, 0, len(rows))
	for _, r := range rows {
		post.Comments = append(post.Comments, r.model())
	}
	return post, nil
}

func (s *Store) ListPosts(ctx context.Context) ([]model.Post, error) {
	var rows []postRow
	if err := s.db.SelectContext(ctx, &rows, postSelect+`ORDER BY p.id DESC`); err != nil {
		return nil, err
	}
	posts := make([]model.Post, 0, len(rows))
	for _, r := range rows {
		posts = append(posts, r.model())
	}
	return posts, nil
}

func (s *Store) UpdatePost(ctx context.Context, id int64, title, content string, modifiedAt time.Time) error {
	res, err := s.db.ExecContext(ctx, `
UPDATE posts SET title = ?, content = ?, modified_at = ? WHERE id = ?
`, title, content, modifiedAt.UnixMicro(), id)
	if err != nil {
		return err
	}
	return expectOneRow(res)
}

func (s *Store) DeletePost(ctx context.Context, id int64) (err error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM comments WHERE post_id = ?`, id); err != nil {
		return fmt.Errorf("delete comments of post %d: %w", id, err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM posts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete post %d: %w", id, err)
	}
	if err = expectOneRow(res); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) CountPosts(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM posts`)
	return n, err
}

func (s *Store) CreateComment(ctx context.Context, comment *model.Comment) (id int64, err error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var exists int
	if err = tx.GetContext(ctx, &exists, `SELECT COUNT(*) FROM posts WHERE id = ?`, comment.PostID); err != nil {
		return 0, err
	}
	if exists == 0 {
		err = store.ErrNotFound
		return 0, err
	}
	res, err := tx.ExecContext(ctx, `
INSERT INTO comments (post_id, content, author_id, created_at, modified_at)
VALUES (?, ?, ?, ?, ?)
`, comment.PostID, comment.Content, comment.AuthorID, comment.CreatedAt.UnixMicro(), comment.ModifiedAt.UnixMicro())
	if err != nil {
		return 0, err
	}
	if id, err = res.LastInsertId(); err != nil {
		return 0, err
	}
	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

func (s *Store) UpdateComment(ctx context.Context, postID, commentID int64, content string, modifiedAt time.Time) error {
	res, err := s.db.ExecContext(ctx, `
UPDATE comments SET content = ?, modified_at = ? WHERE id = ? AND post_id = ?
`, content, modifiedAt.UnixMicro(), commentID, postID)
	if err != nil {
		return err
	}
	return expectOneRow(res)
}

func (s *Store) DeleteComment(ctx context.Context, postID, commentID int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM comments WHERE id = ? AND post_id = ?`, commentID, postID)
	if err != nil {
		return err
	}
	return expectOneRow(res)
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func fromMicros(v int64) time.Time {
	return time.UnixMicro(v)
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "PRIMARY KEY")
}
